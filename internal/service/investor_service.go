package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/solasterfm/fund-engine/internal/api/request"
	"github.com/solasterfm/fund-engine/internal/model"
	"github.com/solasterfm/fund-engine/internal/repository"
)

// InvestorService handles investor master data and the KYC compliance gate.
type InvestorService struct {
	investorRepo *repository.InvestorRepository
}

// NewInvestorService creates a new InvestorService with the provided repository dependencies.
func NewInvestorService(investorRepo *repository.InvestorRepository) *InvestorService {
	return &InvestorService{investorRepo: investorRepo}
}

// CreateInvestor records a new investor with a pending KYC status.
func (s *InvestorService) CreateInvestor(ctx context.Context, req request.CreateInvestorRequest) (*model.Investor, error) {
	investor := &model.Investor{
		ID:        uuid.New().String(),
		Name:      req.Name,
		KycStatus: model.KycStatusPending,
	}

	if err := s.investorRepo.Insert(ctx, investor); err != nil {
		return nil, fmt.Errorf("failed to create investor: %w", err)
	}

	return investor, nil
}

// GetInvestor retrieves a single investor by its ID.
func (s *InvestorService) GetInvestor(ctx context.Context, id string) (model.Investor, error) {
	return s.investorRepo.GetByID(ctx, id)
}

// SetKycStatus updates the investor's compliance status. Orders of a
// non-compliant investor fail at validation and settlement.
func (s *InvestorService) SetKycStatus(ctx context.Context, id, status string) (model.Investor, error) {
	if err := s.investorRepo.UpdateKycStatus(ctx, id, status); err != nil {
		return model.Investor{}, err
	}
	return s.investorRepo.GetByID(ctx, id)
}
