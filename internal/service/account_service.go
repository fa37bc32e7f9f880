package service

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/google/uuid"

	"github.com/solasterfm/fund-engine/internal/api/request"
	"github.com/solasterfm/fund-engine/internal/model"
	"github.com/solasterfm/fund-engine/internal/repository"
)

// AccountService manages the cash/unit account pair an investor holds per
// fund. The pair is opened and transitions state together; balances are
// always derived from the ledger.
type AccountService struct {
	accountRepo  *repository.AccountRepository
	fundRepo     *repository.FundRepository
	investorRepo *repository.InvestorRepository
	ledgerRepo   *repository.LedgerRepository
}

// NewAccountService creates a new AccountService with the provided repository dependencies.
func NewAccountService(
	accountRepo *repository.AccountRepository,
	fundRepo *repository.FundRepository,
	investorRepo *repository.InvestorRepository,
	ledgerRepo *repository.LedgerRepository,
) *AccountService {
	return &AccountService{
		accountRepo:  accountRepo,
		fundRepo:     fundRepo,
		investorRepo: investorRepo,
		ledgerRepo:   ledgerRepo,
	}
}

// OpenAccounts opens the cash and unit accounts for an investor in a fund,
// both in the draft state. The unit account number derives from the cash one.
func (s *AccountService) OpenAccounts(ctx context.Context, req request.OpenAccountsRequest) (*model.AccountPair, error) {
	fund, err := s.fundRepo.GetByID(ctx, req.FundID)
	if err != nil {
		return nil, err
	}
	if _, err := s.investorRepo.GetByID(ctx, req.InvestorID); err != nil {
		return nil, err
	}

	number := req.AccountNumber
	if number == "" {
		number = generateAccountNumber()
	}

	cash := &model.CashAccount{
		ID:            uuid.New().String(),
		AccountNumber: number,
		InvestorID:    req.InvestorID,
		FundID:        req.FundID,
		Currency:      fund.Currency,
		State:         model.AccountStateDraft,
	}
	units := &model.UnitAccount{
		ID:            uuid.New().String(),
		AccountNumber: number + "-U",
		InvestorID:    req.InvestorID,
		FundID:        req.FundID,
		State:         model.AccountStateDraft,
	}

	if err := s.accountRepo.InsertPair(ctx, cash, units); err != nil {
		return nil, fmt.Errorf("failed to open accounts: %w", err)
	}

	return &model.AccountPair{Cash: *cash, Units: *units}, nil
}

// GetPosition retrieves the account pair with its ledger-derived balances.
func (s *AccountService) GetPosition(ctx context.Context, investorID, fundID string) (*model.AccountPair, error) {
	cash, units, err := s.accountRepo.GetPair(ctx, investorID, fundID)
	if err != nil {
		return nil, err
	}

	balance, err := s.ledgerRepo.CashBalance(ctx, s.ledgerRepo.DB(), cash.ID)
	if err != nil {
		return nil, err
	}
	holding, err := s.ledgerRepo.UnitHolding(ctx, s.ledgerRepo.DB(), units.ID)
	if err != nil {
		return nil, err
	}

	return &model.AccountPair{
		Cash:        cash,
		Units:       units,
		CashBalance: balance,
		UnitHolding: holding,
	}, nil
}

// SetAccountState moves both accounts of the pair to the given state.
func (s *AccountService) SetAccountState(ctx context.Context, investorID, fundID, state string) (*model.AccountPair, error) {
	if err := s.accountRepo.UpdatePairState(ctx, investorID, fundID, state); err != nil {
		return nil, err
	}
	return s.GetPosition(ctx, investorID, fundID)
}

func generateAccountNumber() string {
	return fmt.Sprintf("AC%08d", rand.Intn(100000000))
}
