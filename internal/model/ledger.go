package model

import "time"

// Cash entry kinds. Amounts are stored positive; the kind determines the sign
// applied when deriving a balance.
const (
	CashKindDeposit         = "deposit"
	CashKindWithdraw        = "withdraw"
	CashKindSubscriptionNet = "subscription_net"
	CashKindSubscriptionFee = "subscription_fee"
	CashKindRedemptionNet   = "redemption_net"
	CashKindRedemptionFee   = "redemption_fee"
	CashKindRefund          = "refund"
	CashKindCoupon          = "coupon"
	CashKindCapitalReturn   = "capital_return"
)

// Unit entry kinds.
const (
	UnitKindSubscription = "subscription"
	UnitKindRedemption   = "redemption"
)

// CashEntry is an immutable cash movement. Entries are created by order
// settlement or by deposit/withdraw operations, and are never edited or
// deleted once written.
type CashEntry struct {
	ID            string    `json:"id"`
	CashAccountID string    `json:"cashAccountId"`
	Kind          string    `json:"kind"`
	Amount        float64   `json:"amount"`
	OrderID       string    `json:"orderId,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Signed returns the entry amount with the sign implied by its kind.
func (e CashEntry) Signed() float64 {
	return float64(CashKindSign(e.Kind)) * e.Amount
}

// CashKindSign returns +1 for kinds that credit the account and -1 for kinds
// that debit it.
func CashKindSign(kind string) int {
	switch kind {
	case CashKindWithdraw, CashKindSubscriptionNet, CashKindSubscriptionFee, CashKindRedemptionFee:
		return -1
	default:
		return 1
	}
}

// UnitEntry is an immutable unit movement, created only by order settlement.
type UnitEntry struct {
	ID            string    `json:"id"`
	UnitAccountID string    `json:"unitAccountId"`
	Kind          string    `json:"kind"`
	Units         float64   `json:"units"`
	OrderID       string    `json:"orderId,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Signed returns the unit quantity with the sign implied by its kind.
func (e UnitEntry) Signed() float64 {
	if e.Kind == UnitKindRedemption {
		return -e.Units
	}
	return e.Units
}
