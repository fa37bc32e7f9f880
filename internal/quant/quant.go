// Package quant computes order quantities, fees, and residuals from a cash
// amount or unit count and a published NAV. All functions are pure: the same
// calculation backs the live preview at submit time and the final numbers at
// settlement time.
//
// Arithmetic is done in decimals to keep the fee split and the 4-decimal unit
// rounding exact; results are converted to float64 at the boundary.
package quant

import (
	"github.com/shopspring/decimal"

	"github.com/solasterfm/fund-engine/internal/apperrors"
)

// unitPrecision is the number of decimal places kept on fractional units,
// the customary precision for open-end fund units.
const unitPrecision = 4

var hundred = decimal.NewFromInt(100)

// Subscription is the outcome of quantizing a subscription request.
//
// Invariants: CashUsed + Fee + Refund == the requested amount, Refund >= 0,
// and Refund < GrossUnitPrice (at most one unit's worth of residual cash).
type Subscription struct {
	Units          float64 `json:"units"`
	UnitPrice      float64 `json:"unitPrice"`      // NAV applied
	GrossUnitPrice float64 `json:"grossUnitPrice"` // NAV plus subscription fee
	CashUsed       float64 `json:"cashUsed"`
	Fee            float64 `json:"fee"`
	Refund         float64 `json:"refund"`
}

// Redemption is the outcome of quantizing a redemption request.
type Redemption struct {
	Units     float64 `json:"units"`
	UnitPrice float64 `json:"unitPrice"`
	Gross     float64 `json:"gross"`
	Fee       float64 `json:"fee"`
	NetPayout float64 `json:"netPayout"`
}

// Subscribe converts a cash amount into fund units at the given NAV.
//
// The gross unit price includes the subscription fee: P = nav*(1+rate/100).
// Funds that allow fractional units get units truncated to 4 decimals; other
// funds get whole units only. Truncation (rather than half-up rounding) keeps
// the refund non-negative.
func Subscribe(amount, nav, feeRate float64, fractional bool) (Subscription, error) {
	if nav <= 0 {
		return Subscription{}, apperrors.ErrInvalidNAV
	}
	if amount <= 0 {
		return Subscription{}, apperrors.ErrNonPositiveAmount
	}

	amt := decimal.NewFromFloat(amount)
	value := decimal.NewFromFloat(nav)
	rate := decimal.NewFromFloat(feeRate)

	grossPrice := value.Mul(decimal.NewFromInt(1).Add(rate.Div(hundred)))

	units := amt.Div(grossPrice)
	if fractional {
		units = units.RoundDown(unitPrecision)
	} else {
		units = units.Floor()
	}

	if !units.IsPositive() {
		return Subscription{}, apperrors.ErrInsufficientAmount
	}

	cashUsed := units.Mul(value)
	fee := cashUsed.Mul(rate).Div(hundred)
	refund := amt.Sub(cashUsed).Sub(fee)

	return Subscription{
		Units:          units.InexactFloat64(),
		UnitPrice:      nav,
		GrossUnitPrice: grossPrice.InexactFloat64(),
		CashUsed:       cashUsed.InexactFloat64(),
		Fee:            fee.InexactFloat64(),
		Refund:         refund.InexactFloat64(),
	}, nil
}

// Redeem converts a unit count into a cash payout at the given NAV.
// Resolution of "all units" to a concrete count is the caller's job; this
// function only prices what it is given.
func Redeem(units, nav, feeRate float64, fractional bool) (Redemption, error) {
	if nav <= 0 {
		return Redemption{}, apperrors.ErrInvalidNAV
	}
	if units <= 0 {
		return Redemption{}, apperrors.ErrNonPositiveUnits
	}

	qty := decimal.NewFromFloat(units)
	if !fractional && !qty.Equal(qty.Floor()) {
		return Redemption{}, apperrors.ErrNonIntegerUnits
	}

	value := decimal.NewFromFloat(nav)
	rate := decimal.NewFromFloat(feeRate)

	gross := qty.Mul(value)
	fee := gross.Mul(rate).Div(hundred)
	net := gross.Sub(fee)

	return Redemption{
		Units:     units,
		UnitPrice: nav,
		Gross:     gross.InexactFloat64(),
		Fee:       fee.InexactFloat64(),
		NetPayout: net.InexactFloat64(),
	}, nil
}
