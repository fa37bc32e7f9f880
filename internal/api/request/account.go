package request

type OpenAccountsRequest struct {
	InvestorID    string `json:"investorId"`
	FundID        string `json:"fundId"`
	AccountNumber string `json:"accountNumber"`
}

type UpdateAccountStateRequest struct {
	State string `json:"state"`
}

type DepositRequest struct {
	Amount float64 `json:"amount"`
}

type WithdrawRequest struct {
	Amount float64 `json:"amount"`
}
