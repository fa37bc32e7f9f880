package model

import "time"

// Fund lifecycle states.
const (
	FundStateDraft     = "draft"
	FundStateActive    = "active"
	FundStateSuspended = "suspended"
)

// Redemption settlement delays: the NAV applicable to a redemption is the one
// published N business days after the request.
const (
	RedemptionDelaySameDay = "T"
	RedemptionDelayNextDay = "T1"
	RedemptionDelayTwoDays = "T2"
)

// Fund represents a fund from the database, including the fee policy the
// quantization engine reads.
type Fund struct {
	ID                   string    `json:"id"`
	Name                 string    `json:"name"`
	Currency             string    `json:"currency"`
	ShareClass           string    `json:"shareClass"`
	SubscriptionFeeRate  float64   `json:"subscriptionFeeRate"`
	RedemptionFeeRate    float64   `json:"redemptionFeeRate"`
	AllowFractionalUnits bool      `json:"allowFractionalUnits"`
	RedemptionDelay      string    `json:"redemptionDelay"`
	State                string    `json:"state"`
	CreatedAt            time.Time `json:"createdAt,omitempty"`
}

// RedemptionDelayDays maps the fund's redemption delay to calendar days.
func (f Fund) RedemptionDelayDays() int {
	switch f.RedemptionDelay {
	case RedemptionDelaySameDay:
		return 0
	case RedemptionDelayNextDay:
		return 1
	default:
		return 2
	}
}
