package model

import "time"

// Order sides.
const (
	OrderSideSubscription = "subscription"
	OrderSideRedemption   = "redemption"
)

// Order lifecycle states. accounted is terminal; cancelled is terminal and
// reachable from every non-accounted state.
const (
	OrderStateDraft     = "draft"
	OrderStateSubmitted = "submitted"
	OrderStateValidated = "validated"
	OrderStateAccounted = "accounted"
	OrderStateCancelled = "cancelled"
)

// Redemption types. A total redemption resolves to the account's full current
// holding at submit time.
const (
	RedemptionTypePartial = "partial"
	RedemptionTypeTotal   = "total"
)

// Order is a subscription or redemption request. A subscription carries a
// requested cash amount; a redemption carries a requested unit count. The
// applied NAV and the computed quantities are captured by the lifecycle
// transitions and become immutable once the order is accounted.
type Order struct {
	ID             string     `json:"id"`
	Side           string     `json:"side"`
	FundID         string     `json:"fundId"`
	InvestorID     string     `json:"investorId"`
	CashAccountID  string     `json:"cashAccountId"`
	UnitAccountID  string     `json:"unitAccountId"`
	RedemptionType string     `json:"redemptionType,omitempty"`
	RequestedAmount float64   `json:"requestedAmount,omitempty"`
	RequestedUnits  float64   `json:"requestedUnits,omitempty"`
	NavDate        time.Time  `json:"navDate,omitempty"`
	AppliedNAV     float64    `json:"appliedNav,omitempty"`
	Units          float64    `json:"units,omitempty"`
	CashUsed       float64    `json:"cashUsed,omitempty"`
	Fee            float64    `json:"fee,omitempty"`
	Refund         float64    `json:"refund,omitempty"`
	State          string     `json:"state"`
	CreatedAt      time.Time  `json:"createdAt,omitempty"`
	SettledAt      *time.Time `json:"settledAt,omitempty"`
}

// Terminal reports whether the order can no longer transition.
func (o Order) Terminal() bool {
	return o.State == OrderStateAccounted || o.State == OrderStateCancelled
}
