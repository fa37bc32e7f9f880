package request

type CreateOrderRequest struct {
	Side            string  `json:"side"`
	InvestorID      string  `json:"investorId"`
	FundID          string  `json:"fundId"`
	RequestedAmount float64 `json:"requestedAmount"`
	RequestedUnits  float64 `json:"requestedUnits"`
	RedemptionType  string  `json:"redemptionType"`
}

// ValidateOrderRequest carries the optional confirmation token returned by a
// previous validate attempt that detected NAV drift.
type ValidateOrderRequest struct {
	ConfirmToken string `json:"confirmToken"`
}
