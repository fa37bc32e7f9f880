package service

import (
	"fmt"
	"time"

	"github.com/solasterfm/fund-engine/internal/api/request"
	"github.com/solasterfm/fund-engine/internal/bond"
)

// BondService translates API requests into the stateless bond calculators.
// It holds no dependencies and touches no storage.
type BondService struct{}

// NewBondService creates a new BondService.
func NewBondService() *BondService {
	return &BondService{}
}

// CouponSchedule generates the coupon payment schedule for the given terms.
func (s *BondService) CouponSchedule(req request.BondScheduleRequest) ([]bond.CouponEvent, error) {
	terms, err := parseTerms(req)
	if err != nil {
		return nil, err
	}
	return bond.CouponSchedule(terms)
}

// Amortization generates the bullet amortization table for the given terms.
func (s *BondService) Amortization(req request.BondScheduleRequest) ([]bond.Installment, error) {
	terms, err := parseTerms(req)
	if err != nil {
		return nil, err
	}
	return bond.Amortization(terms)
}

// Analyze produces the full yield report for the given terms and market price.
func (s *BondService) Analyze(req request.BondAnalysisRequest) (bond.Report, error) {
	terms, err := parseTerms(req.BondScheduleRequest)
	if err != nil {
		return bond.Report{}, err
	}

	asOf := terms.ValueDate
	if req.AsOf != "" {
		if asOf, err = time.Parse("2006-01-02", req.AsOf); err != nil {
			return bond.Report{}, fmt.Errorf("invalid asOf date: %w", err)
		}
	}

	return bond.Analyze(terms, req.MarketPrice, asOf)
}

func parseTerms(req request.BondScheduleRequest) (bond.Terms, error) {
	terms := bond.Terms{
		FaceValue:  req.FaceValue,
		CouponRate: req.CouponRate,
		Frequency:  req.Frequency,
	}

	var err error
	if terms.ValueDate, err = time.Parse("2006-01-02", req.ValueDate); err != nil {
		return bond.Terms{}, fmt.Errorf("invalid value date: %w", err)
	}
	if terms.MaturityDate, err = time.Parse("2006-01-02", req.MaturityDate); err != nil {
		return bond.Terms{}, fmt.Errorf("invalid maturity date: %w", err)
	}

	if req.IssueDate != "" {
		if terms.IssueDate, err = time.Parse("2006-01-02", req.IssueDate); err != nil {
			return bond.Terms{}, fmt.Errorf("invalid issue date: %w", err)
		}
	} else {
		terms.IssueDate = terms.ValueDate
	}

	return terms, nil
}
