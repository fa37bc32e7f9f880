package model

import "time"

// Account lifecycle states, shared by cash and unit accounts.
const (
	AccountStateDraft     = "draft"
	AccountStateActive    = "active"
	AccountStateSuspended = "suspended"
)

// CashAccount is the cash side of an investor's position in a fund. The
// balance is not a field: it is always derived as the signed sum of the
// account's ledger entries.
type CashAccount struct {
	ID            string    `json:"id"`
	AccountNumber string    `json:"accountNumber"`
	InvestorID    string    `json:"investorId"`
	FundID        string    `json:"fundId"`
	Currency      string    `json:"currency"`
	State         string    `json:"state"`
	OpenedAt      time.Time `json:"openedAt,omitempty"`
}

// UnitAccount is the unit-holding side of an investor's position in a fund.
// The holding is derived from ledger entries, same as CashAccount.
type UnitAccount struct {
	ID            string    `json:"id"`
	AccountNumber string    `json:"accountNumber"`
	InvestorID    string    `json:"investorId"`
	FundID        string    `json:"fundId"`
	State         string    `json:"state"`
	OpenedAt      time.Time `json:"openedAt,omitempty"`
}

// AccountPair bundles the two accounts opened together for an investor in a
// fund, with their ledger-derived balances.
type AccountPair struct {
	Cash        CashAccount `json:"cash"`
	Units       UnitAccount `json:"units"`
	CashBalance float64     `json:"cashBalance"`
	UnitHolding float64     `json:"unitHolding"`
}
