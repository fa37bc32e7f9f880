package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/solasterfm/fund-engine/internal/api/request"
	"github.com/solasterfm/fund-engine/internal/model"
	"github.com/solasterfm/fund-engine/internal/repository"
)

// FundService handles fund master data and the fee policy orders read.
type FundService struct {
	fundRepo *repository.FundRepository
}

// NewFundService creates a new FundService with the provided repository dependencies.
func NewFundService(fundRepo *repository.FundRepository) *FundService {
	return &FundService{fundRepo: fundRepo}
}

// CreateFund records a new fund in the draft state. Orders are only accepted
// once the fund is activated.
func (s *FundService) CreateFund(ctx context.Context, req request.CreateFundRequest) (*model.Fund, error) {
	shareClass := req.ShareClass
	if shareClass == "" {
		shareClass = "default"
	}
	delay := req.RedemptionDelay
	if delay == "" {
		delay = model.RedemptionDelayTwoDays
	}

	fund := &model.Fund{
		ID:                   uuid.New().String(),
		Name:                 req.Name,
		Currency:             req.Currency,
		ShareClass:           shareClass,
		SubscriptionFeeRate:  req.SubscriptionFeeRate,
		RedemptionFeeRate:    req.RedemptionFeeRate,
		AllowFractionalUnits: req.AllowFractionalUnits,
		RedemptionDelay:      delay,
		State:                model.FundStateDraft,
	}

	if err := s.fundRepo.Insert(ctx, fund); err != nil {
		return nil, fmt.Errorf("failed to create fund: %w", err)
	}

	return fund, nil
}

// GetFund retrieves a single fund by its ID.
func (s *FundService) GetFund(ctx context.Context, id string) (model.Fund, error) {
	return s.fundRepo.GetByID(ctx, id)
}

// ListFunds retrieves all funds.
func (s *FundService) ListFunds(ctx context.Context) ([]model.Fund, error) {
	return s.fundRepo.List(ctx)
}

// SetFundState moves a fund between draft, active, and suspended.
func (s *FundService) SetFundState(ctx context.Context, id, state string) (model.Fund, error) {
	if err := s.fundRepo.UpdateState(ctx, id, state); err != nil {
		return model.Fund{}, err
	}
	return s.fundRepo.GetByID(ctx, id)
}
