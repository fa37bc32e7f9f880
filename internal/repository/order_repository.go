package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/solasterfm/fund-engine/internal/apperrors"
	"github.com/solasterfm/fund-engine/internal/model"
)

// OrderRepository handles database operations for fund orders.
type OrderRepository struct {
	db *sql.DB
}

// NewOrderRepository creates a new OrderRepository with the provided database connection.
func NewOrderRepository(db *sql.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// Insert persists a new draft order.
func (r *OrderRepository) Insert(ctx context.Context, order *model.Order) error {
	query := `
		INSERT INTO fund_order (
			id, side, fund_id, investor_id, cash_account_id, unit_account_id,
			redemption_type, requested_amount, requested_units,
			nav_date, applied_nav, units, cash_used, fee, refund, state
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		order.ID, order.Side, order.FundID, order.InvestorID,
		order.CashAccountID, order.UnitAccountID,
		nullString(order.RedemptionType),
		order.RequestedAmount, order.RequestedUnits,
		nullDate(order.NavDate), order.AppliedNAV,
		order.Units, order.CashUsed, order.Fee, order.Refund,
		order.State,
	)
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}

	return nil
}

// GetByID retrieves an order by its ID.
func (r *OrderRepository) GetByID(ctx context.Context, id string) (*model.Order, error) {
	query := `
		SELECT id, side, fund_id, investor_id, cash_account_id, unit_account_id,
		       redemption_type, requested_amount, requested_units,
		       nav_date, applied_nav, units, cash_used, fee, refund,
		       state, created_at, settled_at
		FROM fund_order
		WHERE id = ?
	`

	order, err := scanOrder(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, apperrors.ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	return order, nil
}

// ListByInvestor retrieves all orders of an investor, newest first.
func (r *OrderRepository) ListByInvestor(ctx context.Context, investorID string) ([]model.Order, error) {
	query := `
		SELECT id, side, fund_id, investor_id, cash_account_id, unit_account_id,
		       redemption_type, requested_amount, requested_units,
		       nav_date, applied_nav, units, cash_used, fee, refund,
		       state, created_at, settled_at
		FROM fund_order
		WHERE investor_id = ?
		ORDER BY created_at DESC, id DESC
	`

	rows, err := r.db.QueryContext(ctx, query, investorID)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	orders := make([]model.Order, 0)
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, *order)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating orders: %w", err)
	}

	return orders, nil
}

// UpdateState moves an order to a new state without touching its economics.
func (r *OrderRepository) UpdateState(ctx context.Context, id, state string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE fund_order SET state = ? WHERE id = ?`, state, id)
	if err != nil {
		return fmt.Errorf("failed to update order state: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.ErrOrderNotFound
	}

	return nil
}

// UpdateEconomics records the captured NAV and the quantized economics along
// with a state transition. Submit and validate both go through here: submit
// stores the preview, validate stores the binding numbers.
func (r *OrderRepository) UpdateEconomics(ctx context.Context, order *model.Order, state string) error {
	query := `
		UPDATE fund_order
		SET nav_date = ?, applied_nav = ?, requested_units = ?,
		    units = ?, cash_used = ?, fee = ?, refund = ?, state = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		nullDate(order.NavDate), order.AppliedNAV, order.RequestedUnits,
		order.Units, order.CashUsed, order.Fee, order.Refund,
		state, order.ID)
	if err != nil {
		return fmt.Errorf("failed to update order economics: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.ErrOrderNotFound
	}

	return nil
}

// MarkAccounted moves a validated order to accounted inside the settlement
// transaction. The state guard in the WHERE clause makes settlement
/// idempotent: a second attempt matches zero rows and returns
// ErrAlreadySettled without posting anything.
func (r *OrderRepository) MarkAccounted(ctx context.Context, tx *sql.Tx, id string) error {
	result, err := tx.ExecContext(ctx, `
		UPDATE fund_order
		SET state = ?, settled_at = CURRENT_TIMESTAMP
		WHERE id = ? AND state = ?
	`, model.OrderStateAccounted, id, model.OrderStateValidated)
	if err != nil {
		return fmt.Errorf("failed to mark order accounted: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.ErrAlreadySettled
	}

	return nil
}

func scanOrder(row rowScanner) (*model.Order, error) {
	var order model.Order
	var redemptionType, navDate, settledAt sql.NullString
	var requestedAmount, requestedUnits, appliedNAV sql.NullFloat64
	var units, cashUsed, fee, refund sql.NullFloat64
	var createdAtStr string

	err := row.Scan(
		&order.ID, &order.Side, &order.FundID, &order.InvestorID,
		&order.CashAccountID, &order.UnitAccountID,
		&redemptionType, &requestedAmount, &requestedUnits,
		&navDate, &appliedNAV, &units, &cashUsed, &fee, &refund,
		&order.State, &createdAtStr, &settledAt,
	)
	if err != nil {
		return nil, err
	}

	order.RedemptionType = redemptionType.String
	order.RequestedAmount = requestedAmount.Float64
	order.RequestedUnits = requestedUnits.Float64
	order.AppliedNAV = appliedNAV.Float64
	order.Units = units.Float64
	order.CashUsed = cashUsed.Float64
	order.Fee = fee.Float64
	order.Refund = refund.Float64

	if navDate.Valid {
		if order.NavDate, err = ParseTime(navDate.String); err != nil {
			return nil, err
		}
	}

	if settledAt.Valid {
		t, err := ParseTime(settledAt.String)
		if err != nil {
			return nil, err
		}
		order.SettledAt = &t
	}

	if order.CreatedAt, err = ParseTime(createdAtStr); err != nil {
		return nil, err
	}

	return &order, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullDate(t time.Time) sql.NullString {
	if t.IsZero() {
		return sql.NullString{}
	}
	return sql.NullString{String: t.Format("2006-01-02"), Valid: true}
}
