package testutil

import (
	"database/sql"
	"math/rand"
	"testing"

	"github.com/fernet/fernet-go"
	"github.com/google/uuid"

	"github.com/solasterfm/fund-engine/internal/repository"
	"github.com/solasterfm/fund-engine/internal/service"
)

func NewTestFundService(t *testing.T, db *sql.DB) *service.FundService {
	t.Helper()

	return service.NewFundService(repository.NewFundRepository(db))
}

func NewTestInvestorService(t *testing.T, db *sql.DB) *service.InvestorService {
	t.Helper()

	return service.NewInvestorService(repository.NewInvestorRepository(db))
}

func NewTestAccountService(t *testing.T, db *sql.DB) *service.AccountService {
	t.Helper()

	return service.NewAccountService(
		repository.NewAccountRepository(db),
		repository.NewFundRepository(db),
		repository.NewInvestorRepository(db),
		repository.NewLedgerRepository(db),
	)
}

func NewTestLedgerService(t *testing.T, db *sql.DB) *service.LedgerService {
	t.Helper()

	return service.NewLedgerService(
		repository.NewAccountRepository(db),
		repository.NewLedgerRepository(db),
	)
}

func NewTestNAVService(t *testing.T, db *sql.DB) *service.NAVService {
	t.Helper()

	return service.NewNAVService(
		repository.NewNAVRepository(db),
		repository.NewFundRepository(db),
	)
}

func NewTestOrderService(t *testing.T, db *sql.DB) *service.OrderService {
	t.Helper()

	return service.NewOrderService(
		db,
		repository.NewOrderRepository(db),
		repository.NewFundRepository(db),
		repository.NewInvestorRepository(db),
		repository.NewAccountRepository(db),
		repository.NewLedgerRepository(db),
		repository.NewNAVRepository(db),
		NewTestConfirmKey(t),
	)
}

func NewTestSystemService(t *testing.T, db *sql.DB) *service.SystemService {
	t.Helper()

	return service.NewSystemService(db)
}

// NewTestConfirmKey generates a fresh fernet key for confirmation tokens.
func NewTestConfirmKey(t *testing.T) *fernet.Key {
	t.Helper()

	key := &fernet.Key{}
	if err := key.Generate(); err != nil {
		t.Fatalf("Failed to generate confirmation key: %v", err)
	}
	return key
}

// MakeID generates a UUID string for use in tests.
//
// Example usage:
//
//	id := testutil.MakeID()
//	// Returns: "550e8400-e29b-41d4-a716-446655440000"
func MakeID() string {
	return uuid.New().String()
}

// MakeName generates a unique entity name for testing.
//
// Example usage:
//
//	name := testutil.MakeName("Test Fund")
//	// Returns: "Test Fund ABC123"
func MakeName(base string) string {
	if base == "" {
		base = "Entity"
	}
	return base + " " + randomAlphanumeric(6)
}

// randomAlphanumeric generates a random alphanumeric string of specified length.
func randomAlphanumeric(length int) string {
	const charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	result := make([]byte, length)
	for i := range result {
		result[i] = charset[rand.Intn(len(charset))]
	}
	return string(result)
}
