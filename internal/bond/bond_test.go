package bond

import (
	"errors"
	"math"
	"testing"
	"time"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

// bulletTerms is a 3-year annual 5% bullet bond on 1,000,000 face value.
// The dates avoid a leap day so each period is exactly 365 days.
func bulletTerms() Terms {
	return Terms{
		FaceValue:    1_000_000,
		CouponRate:   5,
		Frequency:    FrequencyAnnual,
		IssueDate:    date(2021, 1, 1),
		ValueDate:    date(2021, 1, 15),
		MaturityDate: date(2024, 1, 15),
	}
}

func TestAmortization(t *testing.T) {
	t.Run("three year bullet bond", func(t *testing.T) {
		lines, err := Amortization(bulletTerms())
		if err != nil {
			t.Fatalf("Amortization failed: %v", err)
		}

		if len(lines) != 3 {
			t.Fatalf("Expected 3 installments, got %d", len(lines))
		}

		for i, line := range lines {
			if line.Number != i+1 {
				t.Errorf("Installment %d: expected number %d, got %d", i, i+1, line.Number)
			}
			if line.Interest != 50_000 {
				t.Errorf("Installment %d: expected interest 50000, got %v", i+1, line.Interest)
			}
		}

		if lines[0].PrincipalRepayment != 0 || lines[1].PrincipalRepayment != 0 {
			t.Error("Expected zero principal repayment before the final installment")
		}

		last := lines[2]
		if last.PrincipalRepayment != 1_000_000 {
			t.Errorf("Expected final repayment 1000000, got %v", last.PrincipalRepayment)
		}
		if last.ClosingPrincipal != 0 {
			t.Errorf("Expected zero closing principal, got %v", last.ClosingPrincipal)
		}
		if last.TotalPayment != 1_050_000 {
			t.Errorf("Expected final payment 1050000, got %v", last.TotalPayment)
		}
	})

	t.Run("principal carries forward", func(t *testing.T) {
		terms := bulletTerms()
		terms.Frequency = FrequencySemiAnnual

		lines, err := Amortization(terms)
		if err != nil {
			t.Fatalf("Amortization failed: %v", err)
		}

		if len(lines) != 6 {
			t.Fatalf("Expected 6 installments, got %d", len(lines))
		}

		for i := 1; i < len(lines); i++ {
			if lines[i].OpeningPrincipal != lines[i-1].ClosingPrincipal {
				t.Errorf("Installment %d opening %v != previous closing %v",
					i+1, lines[i].OpeningPrincipal, lines[i-1].ClosingPrincipal)
			}
		}

		// Semi-annual interest is half the annual coupon.
		if lines[0].Interest != 25_000 {
			t.Errorf("Expected interest 25000, got %v", lines[0].Interest)
		}
	})

	t.Run("rejects inconsistent dates", func(t *testing.T) {
		terms := bulletTerms()
		terms.MaturityDate = terms.ValueDate

		if _, err := Amortization(terms); !errors.Is(err, ErrDatesOutOfOrder) {
			t.Errorf("Expected ErrDatesOutOfOrder, got %v", err)
		}
	})
}

func TestCouponSchedule(t *testing.T) {
	t.Run("maturity closes an unaligned schedule", func(t *testing.T) {
		terms := bulletTerms()
		terms.MaturityDate = date(2023, 7, 15) // 2.5 years, annual coupons

		events, err := CouponSchedule(terms)
		if err != nil {
			t.Fatalf("CouponSchedule failed: %v", err)
		}

		if len(events) != 3 {
			t.Fatalf("Expected 3 coupons, got %d", len(events))
		}
		if !events[2].PaymentDate.Equal(terms.MaturityDate) {
			t.Errorf("Expected final coupon on maturity %v, got %v", terms.MaturityDate, events[2].PaymentDate)
		}
	})

	t.Run("at maturity frequency pays once", func(t *testing.T) {
		terms := bulletTerms()
		terms.Frequency = FrequencyAtMaturity

		events, err := CouponSchedule(terms)
		if err != nil {
			t.Fatalf("CouponSchedule failed: %v", err)
		}

		if len(events) != 1 {
			t.Fatalf("Expected 1 coupon, got %d", len(events))
		}
		if !events[0].PaymentDate.Equal(terms.MaturityDate) {
			t.Errorf("Expected payment on maturity, got %v", events[0].PaymentDate)
		}
	})

	t.Run("quarterly schedule", func(t *testing.T) {
		terms := bulletTerms()
		terms.Frequency = FrequencyQuarterly

		events, err := CouponSchedule(terms)
		if err != nil {
			t.Fatalf("CouponSchedule failed: %v", err)
		}

		if len(events) != 12 {
			t.Fatalf("Expected 12 coupons, got %d", len(events))
		}
		if events[0].Amount != 12_500 {
			t.Errorf("Expected coupon 12500, got %v", events[0].Amount)
		}
	})
}

func TestYieldToMaturity(t *testing.T) {
	t.Run("par bond yields the coupon rate", func(t *testing.T) {
		terms := bulletTerms()
		flows := CashFlows(terms, terms.ValueDate)

		ytm := YieldToMaturity(100, flows, terms.CouponRate)
		if math.Abs(ytm-5) > 1e-4 {
			t.Errorf("Expected YTM 5%% at par, got %v", ytm)
		}
	})

	t.Run("discount bond yields above the coupon", func(t *testing.T) {
		terms := bulletTerms()
		flows := CashFlows(terms, terms.ValueDate)

		ytm := YieldToMaturity(95, flows, terms.CouponRate)
		if ytm <= 5 {
			t.Errorf("Expected YTM above 5%% at a discount, got %v", ytm)
		}
	})

	t.Run("premium bond yields below the coupon", func(t *testing.T) {
		terms := bulletTerms()
		flows := CashFlows(terms, terms.ValueDate)

		ytm := YieldToMaturity(105, flows, terms.CouponRate)
		if ytm >= 5 {
			t.Errorf("Expected YTM below 5%% at a premium, got %v", ytm)
		}
	})

	t.Run("solution reprices the bond", func(t *testing.T) {
		terms := bulletTerms()
		terms.Frequency = FrequencySemiAnnual
		flows := CashFlows(terms, terms.ValueDate)

		price := 97.3
		ytm := YieldToMaturity(price, flows, terms.CouponRate)
		if math.Abs(priceAt(flows, ytm/100)-price) > 1e-4 {
			t.Errorf("YTM %v does not reprice to %v", ytm, price)
		}
	})
}

func TestDurationsAndConvexity(t *testing.T) {
	terms := bulletTerms()
	flows := CashFlows(terms, terms.ValueDate)
	ytm := YieldToMaturity(100, flows, terms.CouponRate)

	macaulay, modified := Durations(flows, 100, ytm)

	// A 3-year coupon bond has duration between 2.5 and 3 years.
	if macaulay < 2.5 || macaulay > 3 {
		t.Errorf("Macaulay duration %v outside (2.5, 3)", macaulay)
	}
	if modified >= macaulay {
		t.Errorf("Modified duration %v should be below Macaulay %v", modified, macaulay)
	}

	convexity := Convexity(flows, 100, ytm)
	if convexity <= 0 {
		t.Errorf("Expected positive convexity, got %v", convexity)
	}
}

func TestAccruedInterest(t *testing.T) {
	t.Run("actual 360 convention", func(t *testing.T) {
		terms := bulletTerms()

		// 30 days at 5% on 1,000,000 under Actual/360.
		accrued := AccruedInterest(terms, terms.ValueDate.AddDate(0, 0, 30))
		expected := 1_000_000 * 0.05 / 360 * 30
		if math.Abs(accrued-expected) > 0.01 {
			t.Errorf("Expected accrued %v, got %v", expected, accrued)
		}
	})

	t.Run("nothing accrues before the value date", func(t *testing.T) {
		terms := bulletTerms()

		if accrued := AccruedInterest(terms, terms.ValueDate.AddDate(0, 0, -1)); accrued != 0 {
			t.Errorf("Expected zero accrued before value date, got %v", accrued)
		}
	})
}

func TestAnalyze(t *testing.T) {
	t.Run("full report", func(t *testing.T) {
		terms := bulletTerms()

		report, err := Analyze(terms, 100, terms.ValueDate)
		if err != nil {
			t.Fatalf("Analyze failed: %v", err)
		}

		if math.Abs(report.YieldToMaturity-5) > 1e-4 {
			t.Errorf("Expected YTM 5, got %v", report.YieldToMaturity)
		}
		if math.Abs(report.CurrentYield-5) > 1e-6 {
			t.Errorf("Expected current yield 5, got %v", report.CurrentYield)
		}
		if report.DaysToMaturity != 3*365 {
			t.Errorf("Expected 1095 days to maturity, got %v", report.DaysToMaturity)
		}
		if report.AccruedInterest != 0 {
			t.Errorf("Expected zero accrued on the value date, got %v", report.AccruedInterest)
		}
	})

	t.Run("rejects non-positive price", func(t *testing.T) {
		terms := bulletTerms()

		if _, err := Analyze(terms, 0, terms.ValueDate); !errors.Is(err, ErrInvalidPrice) {
			t.Errorf("Expected ErrInvalidPrice, got %v", err)
		}
	})

	t.Run("rejects evaluation after maturity", func(t *testing.T) {
		terms := bulletTerms()

		_, err := Analyze(terms, 100, terms.MaturityDate.AddDate(0, 0, 1))
		if !errors.Is(err, ErrNoRemainingFlows) {
			t.Errorf("Expected ErrNoRemainingFlows, got %v", err)
		}
	})

	t.Run("rejects missing value date", func(t *testing.T) {
		terms := bulletTerms()
		terms.ValueDate = time.Time{}

		_, err := Analyze(terms, 100, date(2022, 1, 1))
		if !errors.Is(err, ErrMissingValueDate) {
			t.Errorf("Expected ErrMissingValueDate, got %v", err)
		}
	})
}
