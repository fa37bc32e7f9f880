package request

type BondScheduleRequest struct {
	FaceValue    float64 `json:"faceValue"`
	CouponRate   float64 `json:"couponRate"`
	Frequency    string  `json:"frequency"`
	IssueDate    string  `json:"issueDate"`
	ValueDate    string  `json:"valueDate"`
	MaturityDate string  `json:"maturityDate"`
}

type BondAnalysisRequest struct {
	BondScheduleRequest
	MarketPrice float64 `json:"marketPrice"`
	AsOf        string  `json:"asOf"`
}
