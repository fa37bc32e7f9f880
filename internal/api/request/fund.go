package request

type CreateFundRequest struct {
	Name                 string  `json:"name"`
	Currency             string  `json:"currency"`
	ShareClass           string  `json:"shareClass"`
	SubscriptionFeeRate  float64 `json:"subscriptionFeeRate"`
	RedemptionFeeRate    float64 `json:"redemptionFeeRate"`
	AllowFractionalUnits bool    `json:"allowFractionalUnits"`
	RedemptionDelay      string  `json:"redemptionDelay"`
}

type UpdateFundStateRequest struct {
	State string `json:"state"`
}
