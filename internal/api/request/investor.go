package request

type CreateInvestorRequest struct {
	Name string `json:"name"`
}

type UpdateKycStatusRequest struct {
	KycStatus string `json:"kycStatus"`
}
