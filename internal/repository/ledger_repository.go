package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/solasterfm/fund-engine/internal/model"
)

// LedgerRepository provides append-only access to the cash_entry and
// unit_entry tables. Entries are never updated or deleted; balances are
// derived by summing signed entries, never read from a stored counter.
//
// Write methods accept a DBTX so settlement can post all of an order's
// entries inside one transaction.
type LedgerRepository struct {
	db *sql.DB
}

// NewLedgerRepository creates a new LedgerRepository with the provided database connection.
func NewLedgerRepository(db *sql.DB) *LedgerRepository {
	return &LedgerRepository{db: db}
}

// InsertCashEntry appends a cash movement.
func (r *LedgerRepository) InsertCashEntry(ctx context.Context, dbtx DBTX, entry *model.CashEntry) error {
	query := `
		INSERT INTO cash_entry (id, cash_account_id, kind, amount, order_id)
		VALUES (?, ?, ?, ?, ?)
	`

	orderID := sql.NullString{String: entry.OrderID, Valid: entry.OrderID != ""}

	_, err := dbtx.ExecContext(ctx, query, entry.ID, entry.CashAccountID, entry.Kind, entry.Amount, orderID)
	if err != nil {
		return fmt.Errorf("failed to insert cash entry: %w", err)
	}

	return nil
}

// InsertUnitEntry appends a unit movement.
func (r *LedgerRepository) InsertUnitEntry(ctx context.Context, dbtx DBTX, entry *model.UnitEntry) error {
	query := `
		INSERT INTO unit_entry (id, unit_account_id, kind, units, order_id)
		VALUES (?, ?, ?, ?, ?)
	`

	orderID := sql.NullString{String: entry.OrderID, Valid: entry.OrderID != ""}

	_, err := dbtx.ExecContext(ctx, query, entry.ID, entry.UnitAccountID, entry.Kind, entry.Units, orderID)
	if err != nil {
		return fmt.Errorf("failed to insert unit entry: %w", err)
	}

	return nil
}

// ListCashEntries retrieves all cash movements of an account, oldest first.
func (r *LedgerRepository) ListCashEntries(ctx context.Context, dbtx DBTX, accountID string) ([]model.CashEntry, error) {
	query := `
		SELECT id, cash_account_id, kind, amount, order_id, created_at
		FROM cash_entry
		WHERE cash_account_id = ?
		ORDER BY created_at ASC, id ASC
	`

	rows, err := dbtx.QueryContext(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to query cash entries: %w", err)
	}
	defer rows.Close()

	entries := make([]model.CashEntry, 0)
	for rows.Next() {
		var e model.CashEntry
		var orderID sql.NullString
		var createdAtStr string

		if err := rows.Scan(&e.ID, &e.CashAccountID, &e.Kind, &e.Amount, &orderID, &createdAtStr); err != nil {
			return nil, fmt.Errorf("failed to scan cash entry: %w", err)
		}

		e.OrderID = orderID.String
		if e.CreatedAt, err = ParseTime(createdAtStr); err != nil {
			return nil, err
		}

		entries = append(entries, e)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cash entries: %w", err)
	}

	return entries, nil
}

// ListUnitEntries retrieves all unit movements of an account, oldest first.
func (r *LedgerRepository) ListUnitEntries(ctx context.Context, dbtx DBTX, accountID string) ([]model.UnitEntry, error) {
	query := `
		SELECT id, unit_account_id, kind, units, order_id, created_at
		FROM unit_entry
		WHERE unit_account_id = ?
		ORDER BY created_at ASC, id ASC
	`

	rows, err := dbtx.QueryContext(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to query unit entries: %w", err)
	}
	defer rows.Close()

	entries := make([]model.UnitEntry, 0)
	for rows.Next() {
		var e model.UnitEntry
		var orderID sql.NullString
		var createdAtStr string

		if err := rows.Scan(&e.ID, &e.UnitAccountID, &e.Kind, &e.Units, &orderID, &createdAtStr); err != nil {
			return nil, fmt.Errorf("failed to scan unit entry: %w", err)
		}

		e.OrderID = orderID.String
		if e.CreatedAt, err = ParseTime(createdAtStr); err != nil {
			return nil, err
		}

		entries = append(entries, e)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating unit entries: %w", err)
	}

	return entries, nil
}

// CashBalance derives the account balance as the signed sum of its entries.
// The sign convention lives in model.CashKindSign; there is deliberately no
// SQL-side duplicate of it.
func (r *LedgerRepository) CashBalance(ctx context.Context, dbtx DBTX, accountID string) (float64, error) {
	entries, err := r.ListCashEntries(ctx, dbtx, accountID)
	if err != nil {
		return 0, err
	}

	balance := 0.0
	for _, e := range entries {
		balance += e.Signed()
	}
	return balance, nil
}

// UnitHolding derives the unit holding as the signed sum of its entries.
func (r *LedgerRepository) UnitHolding(ctx context.Context, dbtx DBTX, accountID string) (float64, error) {
	entries, err := r.ListUnitEntries(ctx, dbtx, accountID)
	if err != nil {
		return 0, err
	}

	holding := 0.0
	for _, e := range entries {
		holding += e.Signed()
	}
	return holding, nil
}

// CountOrderEntries returns how many cash entries reference the given order,
// used to assert settlement idempotency.
func (r *LedgerRepository) CountOrderEntries(ctx context.Context, orderID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM cash_entry WHERE order_id = ?`, orderID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count order entries: %w", err)
	}
	return count, nil
}

// DB exposes the underlying handle for read paths that do not run inside a
// transaction.
func (r *LedgerRepository) DB() DBTX {
	return r.db
}
