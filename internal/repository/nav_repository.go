package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/solasterfm/fund-engine/internal/apperrors"
	"github.com/solasterfm/fund-engine/internal/model"
)

// NAVRepository handles database operations for published NAV quotes.
type NAVRepository struct {
	db *sql.DB
}

// NewNAVRepository creates a new NAVRepository with the provided database connection.
func NewNAVRepository(db *sql.DB) *NAVRepository {
	return &NAVRepository{db: db}
}

// Insert publishes a quote. The unique constraint on (fund, share class, date)
// rejects a second quote for the same day.
func (r *NAVRepository) Insert(ctx context.Context, quote *model.NAVQuote) error {
	query := `
		INSERT INTO nav_quote (id, fund_id, share_class, date, value, validated)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		quote.ID, quote.FundID, quote.ShareClass,
		quote.Date.Format("2006-01-02"), quote.Value, quote.Validated)
	if err != nil {
		if isConstraintViolation(err) {
			return apperrors.ErrDuplicateEntry
		}
		return fmt.Errorf("failed to insert NAV quote: %w", err)
	}

	return nil
}

// Validate marks a quote as usable for settlement.
func (r *NAVRepository) Validate(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE nav_quote SET validated = TRUE WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to validate NAV quote: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.ErrNAVNotFound
	}

	return nil
}

// GetByID retrieves a quote by its ID.
func (r *NAVRepository) GetByID(ctx context.Context, id string) (*model.NAVQuote, error) {
	query := `
		SELECT id, fund_id, share_class, date, value, validated, created_at
		FROM nav_quote
		WHERE id = ?
	`

	quote, err := scanNAVQuote(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, apperrors.ErrNAVNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get NAV quote: %w", err)
	}

	return quote, nil
}

// GetCurrentValidated retrieves the most recent validated quote for a fund and
// share class.
func (r *NAVRepository) GetCurrentValidated(ctx context.Context, fundID, shareClass string) (*model.NAVQuote, error) {
	query := `
		SELECT id, fund_id, share_class, date, value, validated, created_at
		FROM nav_quote
		WHERE fund_id = ? AND share_class = ? AND validated = TRUE
		ORDER BY date DESC
		LIMIT 1
	`

	quote, err := scanNAVQuote(r.db.QueryRowContext(ctx, query, fundID, shareClass))
	if err == sql.ErrNoRows {
		return nil, apperrors.ErrNAVNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get current NAV quote: %w", err)
	}

	return quote, nil
}

// GetValidatedAsOf retrieves the latest validated quote dated on or before the
// given date, used for delayed redemption pricing.
func (r *NAVRepository) GetValidatedAsOf(ctx context.Context, fundID, shareClass string, asOf time.Time) (*model.NAVQuote, error) {
	query := `
		SELECT id, fund_id, share_class, date, value, validated, created_at
		FROM nav_quote
		WHERE fund_id = ? AND share_class = ? AND validated = TRUE AND date <= ?
		ORDER BY date DESC
		LIMIT 1
	`

	quote, err := scanNAVQuote(r.db.QueryRowContext(ctx, query,
		fundID, shareClass, asOf.Format("2006-01-02")))
	if err == sql.ErrNoRows {
		return nil, apperrors.ErrNAVNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get NAV quote as of date: %w", err)
	}

	return quote, nil
}

// ListByFund retrieves all quotes for a fund, newest first.
func (r *NAVRepository) ListByFund(ctx context.Context, fundID string) ([]model.NAVQuote, error) {
	query := `
		SELECT id, fund_id, share_class, date, value, validated, created_at
		FROM nav_quote
		WHERE fund_id = ?
		ORDER BY date DESC
	`

	rows, err := r.db.QueryContext(ctx, query, fundID)
	if err != nil {
		return nil, fmt.Errorf("failed to query NAV quotes: %w", err)
	}
	defer rows.Close()

	quotes := make([]model.NAVQuote, 0)
	for rows.Next() {
		quote, err := scanNAVQuote(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan NAV quote: %w", err)
		}
		quotes = append(quotes, *quote)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating NAV quotes: %w", err)
	}

	return quotes, nil
}

// ListPendingValidation retrieves the latest unvalidated quote per active
// fund, used by the scheduled NAV sweep.
func (r *NAVRepository) ListPendingValidation(ctx context.Context) ([]model.NAVQuote, error) {
	query := `
		SELECT q.id, q.fund_id, q.share_class, q.date, q.value, q.validated, q.created_at
		FROM nav_quote q
		JOIN fund f ON f.id = q.fund_id
		WHERE q.validated = FALSE AND f.state = ?
		ORDER BY q.fund_id, q.date ASC
	`

	rows, err := r.db.QueryContext(ctx, query, model.FundStateActive)
	if err != nil {
		return nil, fmt.Errorf("failed to query pending NAV quotes: %w", err)
	}
	defer rows.Close()

	quotes := make([]model.NAVQuote, 0)
	for rows.Next() {
		quote, err := scanNAVQuote(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan NAV quote: %w", err)
		}
		quotes = append(quotes, *quote)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating pending NAV quotes: %w", err)
	}

	return quotes, nil
}

func scanNAVQuote(row rowScanner) (*model.NAVQuote, error) {
	var quote model.NAVQuote
	var dateStr, createdAtStr string

	err := row.Scan(&quote.ID, &quote.FundID, &quote.ShareClass,
		&dateStr, &quote.Value, &quote.Validated, &createdAtStr)
	if err != nil {
		return nil, err
	}

	if quote.Date, err = ParseTime(dateStr); err != nil {
		return nil, err
	}
	if quote.CreatedAt, err = ParseTime(createdAtStr); err != nil {
		return nil, err
	}

	return &quote, nil
}
