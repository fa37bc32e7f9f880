package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/solasterfm/fund-engine/internal/apperrors"
	"github.com/solasterfm/fund-engine/internal/model"
)

// InvestorRepository provides data access methods for the investor table.
type InvestorRepository struct {
	db *sql.DB
}

// NewInvestorRepository creates a new InvestorRepository with the provided database connection.
func NewInvestorRepository(db *sql.DB) *InvestorRepository {
	return &InvestorRepository{db: db}
}

// Insert persists a new investor.
func (r *InvestorRepository) Insert(ctx context.Context, investor *model.Investor) error {
	query := `INSERT INTO investor (id, name, kyc_status) VALUES (?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query, investor.ID, investor.Name, investor.KycStatus)
	if err != nil {
		return fmt.Errorf("failed to insert investor: %w", err)
	}

	return nil
}

// GetByID retrieves a single investor by its ID.
func (r *InvestorRepository) GetByID(ctx context.Context, id string) (model.Investor, error) {
	query := `SELECT id, name, kyc_status, created_at FROM investor WHERE id = ?`

	var inv model.Investor
	var createdAtStr string

	err := r.db.QueryRowContext(ctx, query, id).Scan(&inv.ID, &inv.Name, &inv.KycStatus, &createdAtStr)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Investor{}, apperrors.ErrInvestorNotFound
	}
	if err != nil {
		return model.Investor{}, fmt.Errorf("failed to query investor: %w", err)
	}

	inv.CreatedAt, err = ParseTime(createdAtStr)
	if err != nil {
		return model.Investor{}, err
	}

	return inv, nil
}

// UpdateKycStatus sets the investor's compliance status.
func (r *InvestorRepository) UpdateKycStatus(ctx context.Context, id, status string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE investor SET kyc_status = ? WHERE id = ?`, status, id)
	if err != nil {
		return fmt.Errorf("failed to update kyc status: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrInvestorNotFound
	}

	return nil
}
