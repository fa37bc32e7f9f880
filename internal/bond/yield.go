package bond

import (
	"math"
	"time"
)

// Newton-Raphson solver parameters.
const (
	solverTolerance  = 1e-6
	solverIterations = 100
)

// daysInYearA360 is the Actual/360 day-count convention used for accrued
// interest.
const daysInYearA360 = 360

// CashFlow is a single future payment, expressed in percent of face value so
// that it is directly comparable with a clean market price quote.
type CashFlow struct {
	Years  float64 `json:"years"`
	Amount float64 `json:"amount"`
}

// Report is the full analytics output for a bond at a market price.
type Report struct {
	YieldToMaturity  float64 `json:"yieldToMaturity"` // percent
	CurrentYield     float64 `json:"currentYield"`    // percent
	MacaulayDuration float64 `json:"macaulayDuration"`
	ModifiedDuration float64 `json:"modifiedDuration"`
	Convexity        float64 `json:"convexity"`
	AccruedInterest  float64 `json:"accruedInterest"` // absolute, on face value
	DirtyPrice       float64 `json:"dirtyPrice"`
	DaysToMaturity   int     `json:"daysToMaturity"`
	YearsToMaturity  float64 `json:"yearsToMaturity"`
}

// CashFlows lists the remaining payments after asOf: one coupon per period
// plus the principal bundled into the final flow. Amounts are in percent of
// face, matching a clean price quote.
func CashFlows(t Terms, asOf time.Time) []CashFlow {
	couponPct := t.CouponRate / float64(periodsPerYear(t.Frequency))

	var flows []CashFlow
	for _, date := range CouponDates(t) {
		if !date.After(asOf) {
			continue
		}

		years := date.Sub(asOf).Hours() / 24 / 365
		amount := couponPct
		if date.Equal(t.MaturityDate) {
			amount += 100
		}
		flows = append(flows, CashFlow{Years: years, Amount: amount})
	}
	return flows
}

// priceAt discounts the flows at yield y (decimal).
func priceAt(flows []CashFlow, y float64) float64 {
	price := 0.0
	for _, cf := range flows {
		price += cf.Amount / math.Pow(1+y, cf.Years)
	}
	return price
}

// YieldToMaturity solves price = sum(CF_t / (1+y)^t) for y with
// Newton-Raphson, starting from the coupon rate. When the derivative
// degenerates the guess is damped by 0.99 instead of dividing by zero.
// The result is in percent.
func YieldToMaturity(price float64, flows []CashFlow, couponRate float64) float64 {
	if len(flows) == 0 {
		return 0
	}

	y := couponRate / 100

	for i := 0; i < solverIterations; i++ {
		err := priceAt(flows, y) - price

		if math.Abs(err) < solverTolerance {
			break
		}

		derivative := 0.0
		for _, cf := range flows {
			derivative += -cf.Years * cf.Amount / math.Pow(1+y, cf.Years+1)
		}

		if derivative == 0 {
			y *= 0.99
			continue
		}
		y -= err / derivative
	}

	return y * 100
}

// Durations returns the Macaulay and modified durations at yield y (percent).
func Durations(flows []CashFlow, price, yieldPct float64) (macaulay, modified float64) {
	if price <= 0 {
		return 0, 0
	}

	y := yieldPct / 100
	weighted := 0.0
	for _, cf := range flows {
		weighted += cf.Years * cf.Amount / math.Pow(1+y, cf.Years)
	}

	macaulay = weighted / price
	modified = macaulay / (1 + y)
	return macaulay, modified
}

// Convexity returns the second-order price sensitivity at yield y (percent).
func Convexity(flows []CashFlow, price, yieldPct float64) float64 {
	if price <= 0 {
		return 0
	}

	y := yieldPct / 100
	sum := 0.0
	for _, cf := range flows {
		sum += cf.Years * (cf.Years + 1) * cf.Amount / math.Pow(1+y, cf.Years+2)
	}
	return sum / price
}

// AccruedInterest computes interest accrued since the value date under the
// Actual/360 convention. Nothing accrues before the value date.
func AccruedInterest(t Terms, asOf time.Time) float64 {
	if t.ValueDate.IsZero() || asOf.Before(t.ValueDate) {
		return 0
	}

	days := int(asOf.Sub(t.ValueDate).Hours() / 24)
	dailyRate := t.CouponRate / 100 / daysInYearA360
	return t.FaceValue * dailyRate * float64(days)
}

// Analyze runs the full analytics pass for a clean market price quoted in
// percent of face value.
func Analyze(t Terms, marketPrice float64, asOf time.Time) (Report, error) {
	if err := t.Validate(); err != nil {
		return Report{}, err
	}
	if marketPrice <= 0 {
		return Report{}, ErrInvalidPrice
	}

	flows := CashFlows(t, asOf)
	if len(flows) == 0 {
		return Report{}, ErrNoRemainingFlows
	}

	ytm := YieldToMaturity(marketPrice, flows, t.CouponRate)
	macaulay, modified := Durations(flows, marketPrice, ytm)
	accrued := AccruedInterest(t, asOf)

	report := Report{
		YieldToMaturity:  ytm,
		CurrentYield:     t.CouponRate / marketPrice * 100,
		MacaulayDuration: macaulay,
		ModifiedDuration: modified,
		Convexity:        Convexity(flows, marketPrice, ytm),
		AccruedInterest:  accrued,
		DirtyPrice:       marketPrice + accrued/t.FaceValue*100,
	}

	if asOf.Before(t.MaturityDate) {
		report.DaysToMaturity = int(t.MaturityDate.Sub(asOf).Hours() / 24)
		report.YearsToMaturity = float64(report.DaysToMaturity) / 365
	}

	return report, nil
}
