package validation

import (
	"fmt"

	"github.com/solasterfm/fund-engine/internal/api/request"
	"github.com/solasterfm/fund-engine/internal/bond"
)

var ValidFrequency = map[string]bool{
	bond.FrequencyAnnual:     true,
	bond.FrequencySemiAnnual: true,
	bond.FrequencyQuarterly:  true,
	bond.FrequencyMonthly:    true,
	bond.FrequencyAtMaturity: true,
}

func ValidateBondSchedule(req request.BondScheduleRequest) error {
	errors := bondScheduleFieldErrors(req)
	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}

func ValidateBondAnalysis(req request.BondAnalysisRequest) error {
	errors := bondScheduleFieldErrors(req.BondScheduleRequest)

	if req.MarketPrice <= 0 {
		errors["marketPrice"] = "market price must be positive"
	}
	if req.AsOf != "" {
		if _, err := ParseDate(req.AsOf); err != nil {
			errors["asOf"] = "asOf must be YYYY-MM-DD"
		}
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}

func bondScheduleFieldErrors(req request.BondScheduleRequest) map[string]string {
	errors := make(map[string]string)

	if req.FaceValue <= 0 {
		errors["faceValue"] = "face value must be positive"
	}
	if req.CouponRate < 0 {
		errors["couponRate"] = "coupon rate cannot be negative"
	}
	if !ValidFrequency[req.Frequency] {
		errors["frequency"] = fmt.Sprintf("invalid coupon frequency: %s", req.Frequency)
	}

	if req.ValueDate == "" {
		errors["valueDate"] = "value date is required"
	} else if _, err := ParseDate(req.ValueDate); err != nil {
		errors["valueDate"] = "value date must be YYYY-MM-DD"
	}

	if req.MaturityDate == "" {
		errors["maturityDate"] = "maturity date is required"
	} else if _, err := ParseDate(req.MaturityDate); err != nil {
		errors["maturityDate"] = "maturity date must be YYYY-MM-DD"
	}

	if req.IssueDate != "" {
		if _, err := ParseDate(req.IssueDate); err != nil {
			errors["issueDate"] = "issue date must be YYYY-MM-DD"
		}
	}

	return errors
}
