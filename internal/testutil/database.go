package testutil

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite" // Test Package
)

// SetupTestDB creates an in-memory SQLite database for testing.
// The database is automatically cleaned up when the test completes.
//
// Example usage:
//
//	func TestSomething(t *testing.T) {
//	    db := testutil.SetupTestDB(t)
//	    // db is ready to use with schema created
//	}
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	// In-memory database (destroyed when connection closes)
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		t.Fatalf("Failed to ping test database: %v", err)
	}

	// Configure SQLite for testing
	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA timezone = 'UTC'",
		"PRAGMA journal_mode = MEMORY", // Faster for tests
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			t.Fatalf("Failed to set pragma: %v", err)
		}
	}

	// Create schema
	if err := createTestSchema(db); err != nil {
		t.Fatalf("Failed to create test schema: %v", err)
	}

	// Cleanup when test ends
	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// createTestSchema creates all database tables for testing.
// Schema is synchronized with the production database schema.
func createTestSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE fund (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			name VARCHAR(100) NOT NULL,
			currency VARCHAR(3) NOT NULL,
			share_class VARCHAR(20) NOT NULL DEFAULT 'default',
			subscription_fee_rate FLOAT NOT NULL DEFAULT 0,
			redemption_fee_rate FLOAT NOT NULL DEFAULT 0,
			allow_fractional_units BOOLEAN NOT NULL DEFAULT FALSE,
			redemption_delay VARCHAR(2) NOT NULL DEFAULT 'T2',
			state VARCHAR(10) NOT NULL DEFAULT 'draft',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE investor (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			name VARCHAR(100) NOT NULL,
			kyc_status VARCHAR(10) NOT NULL DEFAULT 'pending',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE cash_account (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			account_number VARCHAR(20) NOT NULL,
			investor_id VARCHAR(36) NOT NULL,
			fund_id VARCHAR(36) NOT NULL,
			currency VARCHAR(3) NOT NULL,
			state VARCHAR(10) NOT NULL DEFAULT 'draft',
			opened_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY(investor_id) REFERENCES investor(id) ON DELETE CASCADE,
			FOREIGN KEY(fund_id) REFERENCES fund(id) ON DELETE CASCADE,
			CONSTRAINT unique_cash_account_number UNIQUE (account_number, fund_id),
			CONSTRAINT unique_cash_account_investor UNIQUE (investor_id, fund_id)
		);

		CREATE TABLE unit_account (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			account_number VARCHAR(20) NOT NULL,
			investor_id VARCHAR(36) NOT NULL,
			fund_id VARCHAR(36) NOT NULL,
			state VARCHAR(10) NOT NULL DEFAULT 'draft',
			opened_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY(investor_id) REFERENCES investor(id) ON DELETE CASCADE,
			FOREIGN KEY(fund_id) REFERENCES fund(id) ON DELETE CASCADE,
			CONSTRAINT unique_unit_account_number UNIQUE (account_number, fund_id),
			CONSTRAINT unique_unit_account_investor UNIQUE (investor_id, fund_id)
		);

		CREATE TABLE cash_entry (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			cash_account_id VARCHAR(36) NOT NULL,
			kind VARCHAR(20) NOT NULL,
			amount FLOAT NOT NULL,
			order_id VARCHAR(36),
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY(cash_account_id) REFERENCES cash_account(id)
		);

		CREATE INDEX idx_cash_entry_account ON cash_entry(cash_account_id);

		CREATE TABLE unit_entry (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			unit_account_id VARCHAR(36) NOT NULL,
			kind VARCHAR(20) NOT NULL,
			units FLOAT NOT NULL,
			order_id VARCHAR(36),
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY(unit_account_id) REFERENCES unit_account(id)
		);

		CREATE INDEX idx_unit_entry_account ON unit_entry(unit_account_id);

		CREATE TABLE fund_order (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			side VARCHAR(12) NOT NULL,
			fund_id VARCHAR(36) NOT NULL,
			investor_id VARCHAR(36) NOT NULL,
			cash_account_id VARCHAR(36) NOT NULL,
			unit_account_id VARCHAR(36) NOT NULL,
			redemption_type VARCHAR(8),
			requested_amount FLOAT,
			requested_units FLOAT,
			nav_date DATE,
			applied_nav FLOAT,
			units FLOAT,
			cash_used FLOAT,
			fee FLOAT,
			refund FLOAT,
			state VARCHAR(10) NOT NULL DEFAULT 'draft',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			settled_at DATETIME,
			FOREIGN KEY(fund_id) REFERENCES fund(id),
			FOREIGN KEY(investor_id) REFERENCES investor(id),
			FOREIGN KEY(cash_account_id) REFERENCES cash_account(id),
			FOREIGN KEY(unit_account_id) REFERENCES unit_account(id)
		);

		CREATE INDEX idx_fund_order_investor ON fund_order(investor_id, fund_id);

		CREATE TABLE nav_quote (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			fund_id VARCHAR(36) NOT NULL,
			share_class VARCHAR(20) NOT NULL DEFAULT 'default',
			date DATE NOT NULL,
			value FLOAT NOT NULL,
			validated BOOLEAN NOT NULL DEFAULT FALSE,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY(fund_id) REFERENCES fund(id) ON DELETE CASCADE,
			CONSTRAINT unique_nav_quote UNIQUE (fund_id, share_class, date)
		);
	`

	_, err := db.Exec(schema)
	return err
}
