package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/solasterfm/fund-engine/internal/apperrors"
	"github.com/solasterfm/fund-engine/internal/model"
)

// FundRepository provides data access methods for the fund table.
type FundRepository struct {
	db *sql.DB
}

// NewFundRepository creates a new FundRepository with the provided database connection.
func NewFundRepository(db *sql.DB) *FundRepository {
	return &FundRepository{db: db}
}

// Insert persists a new fund.
func (r *FundRepository) Insert(ctx context.Context, fund *model.Fund) error {
	query := `
		INSERT INTO fund (id, name, currency, share_class, subscription_fee_rate,
			redemption_fee_rate, allow_fractional_units, redemption_delay, state)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		fund.ID,
		fund.Name,
		fund.Currency,
		fund.ShareClass,
		fund.SubscriptionFeeRate,
		fund.RedemptionFeeRate,
		fund.AllowFractionalUnits,
		fund.RedemptionDelay,
		fund.State,
	)
	if err != nil {
		return fmt.Errorf("failed to insert fund: %w", err)
	}

	return nil
}

// GetByID retrieves a single fund by its ID.
func (r *FundRepository) GetByID(ctx context.Context, id string) (model.Fund, error) {
	query := `
		SELECT id, name, currency, share_class, subscription_fee_rate,
			redemption_fee_rate, allow_fractional_units, redemption_delay, state, created_at
		FROM fund
		WHERE id = ?
	`

	fund, err := scanFund(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Fund{}, apperrors.ErrFundNotFound
	}
	if err != nil {
		return model.Fund{}, fmt.Errorf("failed to query fund: %w", err)
	}

	return fund, nil
}

// List retrieves all funds ordered by name.
func (r *FundRepository) List(ctx context.Context) ([]model.Fund, error) {
	query := `
		SELECT id, name, currency, share_class, subscription_fee_rate,
			redemption_fee_rate, allow_fractional_units, redemption_delay, state, created_at
		FROM fund
		ORDER BY name ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query funds: %w", err)
	}
	defer rows.Close()

	funds := make([]model.Fund, 0)
	for rows.Next() {
		fund, err := scanFund(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan fund: %w", err)
		}
		funds = append(funds, fund)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating funds: %w", err)
	}

	return funds, nil
}

// UpdateState sets the lifecycle state of a fund.
func (r *FundRepository) UpdateState(ctx context.Context, id, state string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE fund SET state = ? WHERE id = ?`, state, id)
	if err != nil {
		return fmt.Errorf("failed to update fund state: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrFundNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanFund(row rowScanner) (model.Fund, error) {
	var f model.Fund
	var createdAtStr string

	err := row.Scan(
		&f.ID,
		&f.Name,
		&f.Currency,
		&f.ShareClass,
		&f.SubscriptionFeeRate,
		&f.RedemptionFeeRate,
		&f.AllowFractionalUnits,
		&f.RedemptionDelay,
		&f.State,
		&createdAtStr,
	)
	if err != nil {
		return model.Fund{}, err
	}

	f.CreatedAt, err = ParseTime(createdAtStr)
	if err != nil {
		return model.Fund{}, err
	}

	return f, nil
}
