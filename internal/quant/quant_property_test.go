package quant

import (
	"errors"
	"math"
	"testing"

	"pgregory.net/rapid"

	"github.com/solasterfm/fund-engine/internal/apperrors"
)

// Conservation: for every quantized subscription, cash used plus fee plus
// refund reconstructs the requested amount, and the refund stays strictly
// below one fee-inclusive unit price.
func TestSubscribeConservation(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		amount := rapid.Float64Range(1, 1e9).Draw(t, "amount")
		nav := rapid.Float64Range(0.01, 1e6).Draw(t, "nav")
		feeRate := rapid.Float64Range(0, 10).Draw(t, "feeRate")
		fractional := rapid.Bool().Draw(t, "fractional")

		result, err := Subscribe(amount, nav, feeRate, fractional)
		if errors.Is(err, apperrors.ErrInsufficientAmount) {
			return // amount below one unit, nothing to check
		}
		if err != nil {
			t.Fatalf("Subscribe(%v, %v, %v, %v) failed: %v", amount, nav, feeRate, fractional, err)
		}

		total := result.CashUsed + result.Fee + result.Refund
		if math.Abs(total-amount) > 0.01 {
			t.Fatalf("conservation violated: %v + %v + %v = %v, want %v",
				result.CashUsed, result.Fee, result.Refund, total, amount)
		}

		if result.Refund < 0 {
			t.Fatalf("negative refund %v", result.Refund)
		}
		if result.Refund >= result.GrossUnitPrice {
			t.Fatalf("refund %v not below gross unit price %v", result.Refund, result.GrossUnitPrice)
		}
	})
}

// Integral units: funds that disallow fractional units never produce a
// fractional quantity.
func TestSubscribeIntegralUnits(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		amount := rapid.Float64Range(1, 1e9).Draw(t, "amount")
		nav := rapid.Float64Range(0.01, 1e6).Draw(t, "nav")
		feeRate := rapid.Float64Range(0, 10).Draw(t, "feeRate")

		result, err := Subscribe(amount, nav, feeRate, false)
		if err != nil {
			return
		}

		if result.Units != math.Trunc(result.Units) {
			t.Fatalf("fractional units %v from a whole-units fund", result.Units)
		}
	})
}

// Redemption payout split: gross always equals fee plus net payout.
func TestRedeemSplit(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		units := float64(rapid.IntRange(1, 1_000_000).Draw(t, "units"))
		nav := rapid.Float64Range(0.01, 1e6).Draw(t, "nav")
		feeRate := rapid.Float64Range(0, 10).Draw(t, "feeRate")

		result, err := Redeem(units, nav, feeRate, false)
		if err != nil {
			t.Fatalf("Redeem(%v, %v, %v) failed: %v", units, nav, feeRate, err)
		}

		if math.Abs(result.Gross-(result.Fee+result.NetPayout)) > 0.01 {
			t.Fatalf("split violated: gross %v != fee %v + net %v", result.Gross, result.Fee, result.NetPayout)
		}
		if result.Fee < 0 || result.NetPayout < 0 {
			t.Fatalf("negative component: fee %v, net %v", result.Fee, result.NetPayout)
		}
	})
}
