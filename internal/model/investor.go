package model

import "time"

// Investor KYC statuses. Only compliant investors may settle orders.
const (
	KycStatusPending   = "pending"
	KycStatusCompliant = "compliant"
	KycStatusRejected  = "rejected"
)

// Investor represents an investor from the database.
type Investor struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	KycStatus string    `json:"kycStatus"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}

// Eligible reports whether the investor passes the compliance gate.
func (i Investor) Eligible() bool {
	return i.KycStatus == KycStatusCompliant
}
