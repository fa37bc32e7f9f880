package quant

import (
	"errors"
	"math"
	"testing"

	"github.com/solasterfm/fund-engine/internal/apperrors"
)

const tolerance = 0.01

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < tolerance
}

func TestSubscribe(t *testing.T) {
	t.Run("integer units with fee and refund", func(t *testing.T) {
		// 1,000,000 at NAV 10,000 with a 1% subscription fee gives a gross
		// unit price of 10,100: 99 whole units, 100 returned.
		result, err := Subscribe(1_000_000, 10_000, 1.0, false)
		if err != nil {
			t.Fatalf("Subscribe failed: %v", err)
		}

		if result.Units != 99 {
			t.Errorf("Expected 99 units, got %v", result.Units)
		}
		if !almostEqual(result.GrossUnitPrice, 10_100) {
			t.Errorf("Expected gross unit price 10100, got %v", result.GrossUnitPrice)
		}
		if !almostEqual(result.CashUsed, 990_000) {
			t.Errorf("Expected cash used 990000, got %v", result.CashUsed)
		}
		if !almostEqual(result.Fee, 9_900) {
			t.Errorf("Expected fee 9900, got %v", result.Fee)
		}
		if !almostEqual(result.Refund, 100) {
			t.Errorf("Expected refund 100, got %v", result.Refund)
		}
	})

	t.Run("fractional units use four decimals", func(t *testing.T) {
		result, err := Subscribe(1_000, 300, 0, true)
		if err != nil {
			t.Fatalf("Subscribe failed: %v", err)
		}

		// 1000/300 = 3.3333...; truncated at four decimals.
		if result.Units != 3.3333 {
			t.Errorf("Expected 3.3333 units, got %v", result.Units)
		}
		if result.Refund < 0 {
			t.Errorf("Expected non-negative refund, got %v", result.Refund)
		}
	})

	t.Run("exact amount leaves no refund", func(t *testing.T) {
		result, err := Subscribe(1_010_000, 10_000, 1.0, false)
		if err != nil {
			t.Fatalf("Subscribe failed: %v", err)
		}

		if result.Units != 100 {
			t.Errorf("Expected 100 units, got %v", result.Units)
		}
		if !almostEqual(result.Refund, 0) {
			t.Errorf("Expected zero refund, got %v", result.Refund)
		}
	})

	t.Run("rejects amount below one unit", func(t *testing.T) {
		_, err := Subscribe(5_000, 10_000, 1.0, false)
		if !errors.Is(err, apperrors.ErrInsufficientAmount) {
			t.Errorf("Expected ErrInsufficientAmount, got %v", err)
		}
	})

	t.Run("rejects non-positive NAV", func(t *testing.T) {
		for _, nav := range []float64{0, -10} {
			_, err := Subscribe(1_000_000, nav, 1.0, false)
			if !errors.Is(err, apperrors.ErrInvalidNAV) {
				t.Errorf("NAV %v: expected ErrInvalidNAV, got %v", nav, err)
			}
		}
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		_, err := Subscribe(0, 10_000, 1.0, false)
		if !errors.Is(err, apperrors.ErrNonPositiveAmount) {
			t.Errorf("Expected ErrNonPositiveAmount, got %v", err)
		}
	})
}

func TestRedeem(t *testing.T) {
	t.Run("redemption with fee", func(t *testing.T) {
		// 50 units at NAV 10,000 with a 2% redemption fee.
		result, err := Redeem(50, 10_000, 2.0, false)
		if err != nil {
			t.Fatalf("Redeem failed: %v", err)
		}

		if !almostEqual(result.Gross, 500_000) {
			t.Errorf("Expected gross 500000, got %v", result.Gross)
		}
		if !almostEqual(result.Fee, 10_000) {
			t.Errorf("Expected fee 10000, got %v", result.Fee)
		}
		if !almostEqual(result.NetPayout, 490_000) {
			t.Errorf("Expected net payout 490000, got %v", result.NetPayout)
		}
	})

	t.Run("fee-free redemption pays gross", func(t *testing.T) {
		result, err := Redeem(10, 250.5, 0, true)
		if err != nil {
			t.Fatalf("Redeem failed: %v", err)
		}

		if !almostEqual(result.NetPayout, 2_505) {
			t.Errorf("Expected net payout 2505, got %v", result.NetPayout)
		}
		if result.Fee != 0 {
			t.Errorf("Expected zero fee, got %v", result.Fee)
		}
	})

	t.Run("rejects fractional units when fund disallows them", func(t *testing.T) {
		_, err := Redeem(10.5, 10_000, 2.0, false)
		if !errors.Is(err, apperrors.ErrNonIntegerUnits) {
			t.Errorf("Expected ErrNonIntegerUnits, got %v", err)
		}
	})

	t.Run("accepts fractional units when fund allows them", func(t *testing.T) {
		if _, err := Redeem(10.5, 10_000, 2.0, true); err != nil {
			t.Errorf("Expected success, got %v", err)
		}
	})

	t.Run("rejects non-positive NAV", func(t *testing.T) {
		_, err := Redeem(50, 0, 2.0, false)
		if !errors.Is(err, apperrors.ErrInvalidNAV) {
			t.Errorf("Expected ErrInvalidNAV, got %v", err)
		}
	})

	t.Run("rejects non-positive units", func(t *testing.T) {
		_, err := Redeem(-1, 10_000, 2.0, false)
		if !errors.Is(err, apperrors.ErrNonPositiveUnits) {
			t.Errorf("Expected ErrNonPositiveUnits, got %v", err)
		}
	})
}
