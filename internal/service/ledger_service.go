package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/solasterfm/fund-engine/internal/apperrors"
	"github.com/solasterfm/fund-engine/internal/model"
	"github.com/solasterfm/fund-engine/internal/repository"
)

// LedgerService handles direct cash movements and statement reads. Everything
// else that writes the ledger goes through order settlement.
type LedgerService struct {
	accountRepo *repository.AccountRepository
	ledgerRepo  *repository.LedgerRepository
}

// NewLedgerService creates a new LedgerService with the provided repository dependencies.
func NewLedgerService(
	accountRepo *repository.AccountRepository,
	ledgerRepo *repository.LedgerRepository,
) *LedgerService {
	return &LedgerService{
		accountRepo: accountRepo,
		ledgerRepo:  ledgerRepo,
	}
}

// Deposit credits external cash into an active cash account.
func (s *LedgerService) Deposit(ctx context.Context, accountID string, amount float64) (*model.CashEntry, error) {
	if amount <= 0 {
		return nil, apperrors.ErrNonPositiveAmount
	}

	account, err := s.accountRepo.GetCashAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account.State != model.AccountStateActive {
		return nil, apperrors.ErrAccountNotActive
	}

	entry := &model.CashEntry{
		ID:            uuid.New().String(),
		CashAccountID: account.ID,
		Kind:          model.CashKindDeposit,
		Amount:        amount,
	}

	if err := s.ledgerRepo.InsertCashEntry(ctx, s.ledgerRepo.DB(), entry); err != nil {
		return nil, err
	}

	return entry, nil
}

// Withdraw debits cash out of an active cash account. The derived balance
// must cover the full amount.
func (s *LedgerService) Withdraw(ctx context.Context, accountID string, amount float64) (*model.CashEntry, error) {
	if amount <= 0 {
		return nil, apperrors.ErrNonPositiveAmount
	}

	account, err := s.accountRepo.GetCashAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account.State != model.AccountStateActive {
		return nil, apperrors.ErrAccountNotActive
	}

	balance, err := s.ledgerRepo.CashBalance(ctx, s.ledgerRepo.DB(), account.ID)
	if err != nil {
		return nil, err
	}
	if balance < amount {
		return nil, apperrors.ErrInsufficientFunds
	}

	entry := &model.CashEntry{
		ID:            uuid.New().String(),
		CashAccountID: account.ID,
		Kind:          model.CashKindWithdraw,
		Amount:        amount,
	}

	if err := s.ledgerRepo.InsertCashEntry(ctx, s.ledgerRepo.DB(), entry); err != nil {
		return nil, err
	}

	return entry, nil
}

// CashStatement retrieves the full cash entry history of an account.
func (s *LedgerService) CashStatement(ctx context.Context, accountID string) ([]model.CashEntry, error) {
	if _, err := s.accountRepo.GetCashAccount(ctx, accountID); err != nil {
		return nil, err
	}
	return s.ledgerRepo.ListCashEntries(ctx, s.ledgerRepo.DB(), accountID)
}

// UnitStatement retrieves the full unit entry history of an account.
func (s *LedgerService) UnitStatement(ctx context.Context, accountID string) ([]model.UnitEntry, error) {
	if _, err := s.accountRepo.GetUnitAccount(ctx, accountID); err != nil {
		return nil, err
	}
	return s.ledgerRepo.ListUnitEntries(ctx, s.ledgerRepo.DB(), accountID)
}
