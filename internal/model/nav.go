package model

import "time"

// NAVQuote is the published price per unit for a fund/share class on a given
// date. Only validated quotes may be applied to settlement.
type NAVQuote struct {
	ID         string    `json:"id"`
	FundID     string    `json:"fundId"`
	ShareClass string    `json:"shareClass"`
	Date       time.Time `json:"date"`
	Value      float64   `json:"value"`
	Validated  bool      `json:"validated"`
	CreatedAt  time.Time `json:"createdAt,omitempty"`
}
