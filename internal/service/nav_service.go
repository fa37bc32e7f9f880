package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/solasterfm/fund-engine/internal/api/request"
	"github.com/solasterfm/fund-engine/internal/model"
	"github.com/solasterfm/fund-engine/internal/repository"
)

// NAVService handles quote publication and validation. Orders only ever price
// against validated quotes.
type NAVService struct {
	navRepo  *repository.NAVRepository
	fundRepo *repository.FundRepository
}

// NewNAVService creates a new NAVService with the provided repository dependencies.
func NewNAVService(navRepo *repository.NAVRepository, fundRepo *repository.FundRepository) *NAVService {
	return &NAVService{navRepo: navRepo, fundRepo: fundRepo}
}

// PublishQuote records an unvalidated quote for a fund and date.
func (s *NAVService) PublishQuote(ctx context.Context, req request.PublishNAVRequest) (*model.NAVQuote, error) {
	fund, err := s.fundRepo.GetByID(ctx, req.FundID)
	if err != nil {
		return nil, err
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, fmt.Errorf("invalid quote date: %w", err)
	}

	shareClass := req.ShareClass
	if shareClass == "" {
		shareClass = fund.ShareClass
	}

	quote := &model.NAVQuote{
		ID:         uuid.New().String(),
		FundID:     fund.ID,
		ShareClass: shareClass,
		Date:       date,
		Value:      req.Value,
	}

	if err := s.navRepo.Insert(ctx, quote); err != nil {
		return nil, err
	}

	return quote, nil
}

// ValidateQuote marks a quote as usable for settlement.
func (s *NAVService) ValidateQuote(ctx context.Context, id string) (*model.NAVQuote, error) {
	if err := s.navRepo.Validate(ctx, id); err != nil {
		return nil, err
	}
	return s.navRepo.GetByID(ctx, id)
}

// CurrentQuote retrieves the most recent validated quote for a fund.
func (s *NAVService) CurrentQuote(ctx context.Context, fundID string) (*model.NAVQuote, error) {
	fund, err := s.fundRepo.GetByID(ctx, fundID)
	if err != nil {
		return nil, err
	}
	return s.navRepo.GetCurrentValidated(ctx, fund.ID, fund.ShareClass)
}

// QuoteAsOf retrieves the latest validated quote on or before the given date.
func (s *NAVService) QuoteAsOf(ctx context.Context, fundID string, asOf time.Time) (*model.NAVQuote, error) {
	fund, err := s.fundRepo.GetByID(ctx, fundID)
	if err != nil {
		return nil, err
	}
	return s.navRepo.GetValidatedAsOf(ctx, fund.ID, fund.ShareClass, asOf)
}

// ListQuotes retrieves all quotes of a fund.
func (s *NAVService) ListQuotes(ctx context.Context, fundID string) ([]model.NAVQuote, error) {
	if _, err := s.fundRepo.GetByID(ctx, fundID); err != nil {
		return nil, err
	}
	return s.navRepo.ListByFund(ctx, fundID)
}

// Sweep validates pending quotes of active funds, one per fund per run,
// oldest first. The scheduler runs it daily.
func (s *NAVService) Sweep(ctx context.Context) (int, error) {
	pending, err := s.navRepo.ListPendingValidation(ctx)
	if err != nil {
		return 0, err
	}

	validated := 0
	seen := make(map[string]bool)
	for _, quote := range pending {
		if seen[quote.FundID] {
			continue
		}
		seen[quote.FundID] = true

		if err := s.navRepo.Validate(ctx, quote.ID); err != nil {
			log.Printf("nav sweep: failed to validate quote %s: %v", quote.ID, err)
			continue
		}
		validated++
	}

	return validated, nil
}
