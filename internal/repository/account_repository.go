package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/solasterfm/fund-engine/internal/apperrors"
	"github.com/solasterfm/fund-engine/internal/model"
)

// AccountRepository provides data access methods for the cash_account and
// unit_account tables. The two accounts of an investor's position in a fund
// are always opened together.
type AccountRepository struct {
	db *sql.DB
}

// NewAccountRepository creates a new AccountRepository with the provided database connection.
func NewAccountRepository(db *sql.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

// InsertPair persists a cash account and a unit account in one transaction.
func (r *AccountRepository) InsertPair(ctx context.Context, cash *model.CashAccount, units *model.UnitAccount) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	_, err = tx.ExecContext(ctx, `
		INSERT INTO cash_account (id, account_number, investor_id, fund_id, currency, state)
		VALUES (?, ?, ?, ?, ?, ?)
	`, cash.ID, cash.AccountNumber, cash.InvestorID, cash.FundID, cash.Currency, cash.State)
	if err != nil {
		if isConstraintViolation(err) {
			return apperrors.ErrDuplicateEntry
		}
		return fmt.Errorf("failed to insert cash account: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO unit_account (id, account_number, investor_id, fund_id, state)
		VALUES (?, ?, ?, ?, ?)
	`, units.ID, units.AccountNumber, units.InvestorID, units.FundID, units.State)
	if err != nil {
		return fmt.Errorf("failed to insert unit account: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit account pair: %w", err)
	}

	return nil
}

// GetCashAccount retrieves a cash account by its ID.
func (r *AccountRepository) GetCashAccount(ctx context.Context, id string) (model.CashAccount, error) {
	query := `
		SELECT id, account_number, investor_id, fund_id, currency, state, opened_at
		FROM cash_account
		WHERE id = ?
	`

	var acc model.CashAccount
	var openedAtStr string

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&acc.ID, &acc.AccountNumber, &acc.InvestorID, &acc.FundID, &acc.Currency, &acc.State, &openedAtStr,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return model.CashAccount{}, apperrors.ErrAccountNotFound
	}
	if err != nil {
		return model.CashAccount{}, fmt.Errorf("failed to query cash account: %w", err)
	}

	acc.OpenedAt, err = ParseTime(openedAtStr)
	if err != nil {
		return model.CashAccount{}, err
	}

	return acc, nil
}

// GetUnitAccount retrieves a unit account by its ID.
func (r *AccountRepository) GetUnitAccount(ctx context.Context, id string) (model.UnitAccount, error) {
	query := `
		SELECT id, account_number, investor_id, fund_id, state, opened_at
		FROM unit_account
		WHERE id = ?
	`

	var acc model.UnitAccount
	var openedAtStr string

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&acc.ID, &acc.AccountNumber, &acc.InvestorID, &acc.FundID, &acc.State, &openedAtStr,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return model.UnitAccount{}, apperrors.ErrAccountNotFound
	}
	if err != nil {
		return model.UnitAccount{}, fmt.Errorf("failed to query unit account: %w", err)
	}

	acc.OpenedAt, err = ParseTime(openedAtStr)
	if err != nil {
		return model.UnitAccount{}, err
	}

	return acc, nil
}

// GetPair retrieves both accounts for an (investor, fund) combination.
func (r *AccountRepository) GetPair(ctx context.Context, investorID, fundID string) (model.CashAccount, model.UnitAccount, error) {
	var cash model.CashAccount
	var cashOpenedAt string

	err := r.db.QueryRowContext(ctx, `
		SELECT id, account_number, investor_id, fund_id, currency, state, opened_at
		FROM cash_account
		WHERE investor_id = ? AND fund_id = ?
	`, investorID, fundID).Scan(
		&cash.ID, &cash.AccountNumber, &cash.InvestorID, &cash.FundID, &cash.Currency, &cash.State, &cashOpenedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return model.CashAccount{}, model.UnitAccount{}, apperrors.ErrAccountNotFound
	}
	if err != nil {
		return model.CashAccount{}, model.UnitAccount{}, fmt.Errorf("failed to query cash account: %w", err)
	}
	if cash.OpenedAt, err = ParseTime(cashOpenedAt); err != nil {
		return model.CashAccount{}, model.UnitAccount{}, err
	}

	var units model.UnitAccount
	var unitOpenedAt string

	err = r.db.QueryRowContext(ctx, `
		SELECT id, account_number, investor_id, fund_id, state, opened_at
		FROM unit_account
		WHERE investor_id = ? AND fund_id = ?
	`, investorID, fundID).Scan(
		&units.ID, &units.AccountNumber, &units.InvestorID, &units.FundID, &units.State, &unitOpenedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return model.CashAccount{}, model.UnitAccount{}, apperrors.ErrAccountNotFound
	}
	if err != nil {
		return model.CashAccount{}, model.UnitAccount{}, fmt.Errorf("failed to query unit account: %w", err)
	}
	if units.OpenedAt, err = ParseTime(unitOpenedAt); err != nil {
		return model.CashAccount{}, model.UnitAccount{}, err
	}

	return cash, units, nil
}

// UpdatePairState sets the lifecycle state of both accounts of an
// (investor, fund) pair. Activation and suspension always apply to the pair.
func (r *AccountRepository) UpdatePairState(ctx context.Context, investorID, fundID, state string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	result, err := tx.ExecContext(ctx,
		`UPDATE cash_account SET state = ? WHERE investor_id = ? AND fund_id = ?`,
		state, investorID, fundID)
	if err != nil {
		return fmt.Errorf("failed to update cash account state: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrAccountNotFound
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE unit_account SET state = ? WHERE investor_id = ? AND fund_id = ?`,
		state, investorID, fundID); err != nil {
		return fmt.Errorf("failed to update unit account state: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit account state: %w", err)
	}

	return nil
}
