package request

type PublishNAVRequest struct {
	FundID     string  `json:"fundId"`
	ShareClass string  `json:"shareClass"`
	Date       string  `json:"date"`
	Value      float64 `json:"value"`
}
