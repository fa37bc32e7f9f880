// Package bond generates coupon and amortization schedules for fixed-rate
// bullet bonds and solves for yield, duration, and convexity. It is a
// stateless calculation layer: it reads an instrument's static terms and a
// market price, and writes nothing.
package bond

import (
	"errors"
	"time"
)

// Coupon frequencies.
const (
	FrequencyAnnual     = "annual"
	FrequencySemiAnnual = "semi_annual"
	FrequencyQuarterly  = "quarterly"
	FrequencyMonthly    = "monthly"
	FrequencyAtMaturity = "at_maturity"
)

// Validation errors for bond terms.
var (
	ErrInvalidFaceValue  = errors.New("face value must be positive")
	ErrNegativeCoupon    = errors.New("coupon rate cannot be negative")
	ErrInvalidFrequency  = errors.New("unknown coupon frequency")
	ErrMissingValueDate  = errors.New("value date must be set before coupon calculations")
	ErrDatesOutOfOrder   = errors.New("dates must satisfy issue <= value < maturity")
	ErrInvalidPrice      = errors.New("market price must be positive")
	ErrNoRemainingFlows  = errors.New("no cash flows remain after the evaluation date")
)

// Terms are the static terms of a fixed-rate bullet bond.
type Terms struct {
	FaceValue    float64   `json:"faceValue"`
	CouponRate   float64   `json:"couponRate"` // annual rate in percent
	Frequency    string    `json:"frequency"`
	IssueDate    time.Time `json:"issueDate"`
	ValueDate    time.Time `json:"valueDate"` // interest start
	MaturityDate time.Time `json:"maturityDate"`
}

// Validate checks the terms for internal consistency.
func (t Terms) Validate() error {
	if t.FaceValue <= 0 {
		return ErrInvalidFaceValue
	}
	if t.CouponRate < 0 {
		return ErrNegativeCoupon
	}
	if periodsPerYear(t.Frequency) == 0 {
		return ErrInvalidFrequency
	}
	if t.ValueDate.IsZero() {
		return ErrMissingValueDate
	}
	if t.IssueDate.After(t.ValueDate) || !t.ValueDate.Before(t.MaturityDate) {
		return ErrDatesOutOfOrder
	}
	return nil
}

// CouponEvent is one scheduled coupon payment.
type CouponEvent struct {
	Number      int       `json:"number"`
	PaymentDate time.Time `json:"paymentDate"`
	Amount      float64   `json:"amount"`
}

// Installment is one line of the amortization table. Under the bullet
// convention the principal is repaid in full on the final installment only.
type Installment struct {
	Number             int       `json:"number"`
	DueDate            time.Time `json:"dueDate"`
	OpeningPrincipal   float64   `json:"openingPrincipal"`
	Interest           float64   `json:"interest"`
	PrincipalRepayment float64   `json:"principalRepayment"`
	ClosingPrincipal   float64   `json:"closingPrincipal"`
	TotalPayment       float64   `json:"totalPayment"`
}

func periodsPerYear(frequency string) int {
	switch frequency {
	case FrequencyAnnual, FrequencyAtMaturity:
		return 1
	case FrequencySemiAnnual:
		return 2
	case FrequencyQuarterly:
		return 4
	case FrequencyMonthly:
		return 12
	default:
		return 0
	}
}

// nextCouponDate advances a date by one coupon period.
func (t Terms) nextCouponDate(from time.Time) time.Time {
	switch t.Frequency {
	case FrequencyAnnual:
		return from.AddDate(1, 0, 0)
	case FrequencySemiAnnual:
		return from.AddDate(0, 6, 0)
	case FrequencyQuarterly:
		return from.AddDate(0, 3, 0)
	case FrequencyMonthly:
		return from.AddDate(0, 1, 0)
	default: // at_maturity
		return t.MaturityDate
	}
}

// CouponDates walks from the value date one period at a time until maturity.
// The maturity date itself closes the schedule when the period grid does not
// land on it exactly.
func CouponDates(t Terms) []time.Time {
	var dates []time.Time
	current := t.ValueDate

	for current.Before(t.MaturityDate) {
		next := t.nextCouponDate(current)
		if next.After(t.MaturityDate) {
			dates = append(dates, t.MaturityDate)
			break
		}
		dates = append(dates, next)
		current = next
	}

	if len(dates) == 0 || !dates[len(dates)-1].Equal(t.MaturityDate) {
		dates = append(dates, t.MaturityDate)
	}

	return dates
}

// CouponSchedule returns the coupon payment schedule. Each coupon pays the
// annual coupon divided by the number of periods per year.
func CouponSchedule(t Terms) ([]CouponEvent, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}

	amount := t.FaceValue * (t.CouponRate / 100) / float64(periodsPerYear(t.Frequency))

	dates := CouponDates(t)
	events := make([]CouponEvent, 0, len(dates))
	for i, date := range dates {
		events = append(events, CouponEvent{
			Number:      i + 1,
			PaymentDate: date,
			Amount:      amount,
		})
	}
	return events, nil
}

// Amortization returns the bullet amortization table: interest accrues on the
// full principal every period, and the principal comes back in one piece on
// the final installment.
func Amortization(t Terms) ([]Installment, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}

	interest := t.FaceValue * (t.CouponRate / 100) / float64(periodsPerYear(t.Frequency))

	dates := CouponDates(t)
	lines := make([]Installment, 0, len(dates))
	principal := t.FaceValue

	for i, date := range dates {
		repayment := 0.0
		if i == len(dates)-1 {
			repayment = principal
		}
		closing := principal - repayment

		lines = append(lines, Installment{
			Number:             i + 1,
			DueDate:            date,
			OpeningPrincipal:   principal,
			Interest:           interest,
			PrincipalRepayment: repayment,
			ClosingPrincipal:   closing,
			TotalPayment:       interest + repayment,
		})

		principal = closing
	}

	return lines, nil
}
