package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/solasterfm/fund-engine/internal/model"
)

// FundBuilder provides a fluent interface for creating test funds.
//
// Example usage:
//
//	// Simple creation with defaults
//	fund := testutil.NewFund().Build(t, db)
//
//	// Customized fund
//	fund := testutil.NewFund().
//	    WithSubscriptionFeeRate(1.0).
//	    Fractional().
//	    Build(t, db)
type FundBuilder struct {
	ID                   string
	Name                 string
	Currency             string
	ShareClass           string
	SubscriptionFeeRate  float64
	RedemptionFeeRate    float64
	AllowFractionalUnits bool
	RedemptionDelay      string
	State                string
}

// NewFund creates a FundBuilder with sensible defaults: an active fund with
// no fees, whole units only, and same-day redemption pricing.
func NewFund() *FundBuilder {
	return &FundBuilder{
		ID:              MakeID(),
		Name:            MakeName("Test Fund"),
		Currency:        "EUR",
		ShareClass:      "default",
		RedemptionDelay: model.RedemptionDelaySameDay,
		State:           model.FundStateActive,
	}
}

// WithID sets a custom ID.
func (b *FundBuilder) WithID(id string) *FundBuilder {
	b.ID = id
	return b
}

// WithName sets a custom name.
func (b *FundBuilder) WithName(name string) *FundBuilder {
	b.Name = name
	return b
}

// WithSubscriptionFeeRate sets the subscription fee rate in percent.
func (b *FundBuilder) WithSubscriptionFeeRate(rate float64) *FundBuilder {
	b.SubscriptionFeeRate = rate
	return b
}

// WithRedemptionFeeRate sets the redemption fee rate in percent.
func (b *FundBuilder) WithRedemptionFeeRate(rate float64) *FundBuilder {
	b.RedemptionFeeRate = rate
	return b
}

// WithRedemptionDelay sets the redemption settlement delay.
func (b *FundBuilder) WithRedemptionDelay(delay string) *FundBuilder {
	b.RedemptionDelay = delay
	return b
}

// WithState sets the fund lifecycle state.
func (b *FundBuilder) WithState(state string) *FundBuilder {
	b.State = state
	return b
}

// Fractional allows fractional units.
func (b *FundBuilder) Fractional() *FundBuilder {
	b.AllowFractionalUnits = true
	return b
}

// Build creates the fund in the database and returns it.
func (b *FundBuilder) Build(t *testing.T, db *sql.DB) model.Fund {
	t.Helper()

	query := `
		INSERT INTO fund (id, name, currency, share_class, subscription_fee_rate,
			redemption_fee_rate, allow_fractional_units, redemption_delay, state)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := db.Exec(query, b.ID, b.Name, b.Currency, b.ShareClass,
		b.SubscriptionFeeRate, b.RedemptionFeeRate, b.AllowFractionalUnits,
		b.RedemptionDelay, b.State)
	if err != nil {
		t.Fatalf("Failed to create test fund: %v", err)
	}

	return model.Fund{
		ID:                   b.ID,
		Name:                 b.Name,
		Currency:             b.Currency,
		ShareClass:           b.ShareClass,
		SubscriptionFeeRate:  b.SubscriptionFeeRate,
		RedemptionFeeRate:    b.RedemptionFeeRate,
		AllowFractionalUnits: b.AllowFractionalUnits,
		RedemptionDelay:      b.RedemptionDelay,
		State:                b.State,
	}
}

// InvestorBuilder provides a fluent interface for creating test investors.
type InvestorBuilder struct {
	ID        string
	Name      string
	KycStatus string
}

// NewInvestor creates an InvestorBuilder defaulting to a compliant investor.
func NewInvestor() *InvestorBuilder {
	return &InvestorBuilder{
		ID:        MakeID(),
		Name:      MakeName("Test Investor"),
		KycStatus: model.KycStatusCompliant,
	}
}

// WithID sets a custom ID.
func (b *InvestorBuilder) WithID(id string) *InvestorBuilder {
	b.ID = id
	return b
}

// WithKycStatus sets the KYC status.
func (b *InvestorBuilder) WithKycStatus(status string) *InvestorBuilder {
	b.KycStatus = status
	return b
}

// Pending marks the investor as awaiting KYC clearance.
func (b *InvestorBuilder) Pending() *InvestorBuilder {
	b.KycStatus = model.KycStatusPending
	return b
}

// Build creates the investor in the database and returns it.
func (b *InvestorBuilder) Build(t *testing.T, db *sql.DB) model.Investor {
	t.Helper()

	_, err := db.Exec(`INSERT INTO investor (id, name, kyc_status) VALUES (?, ?, ?)`,
		b.ID, b.Name, b.KycStatus)
	if err != nil {
		t.Fatalf("Failed to create test investor: %v", err)
	}

	return model.Investor{ID: b.ID, Name: b.Name, KycStatus: b.KycStatus}
}

// AccountPairBuilder provides a fluent interface for creating the cash/unit
// account pair of an investor in a fund.
type AccountPairBuilder struct {
	CashID        string
	UnitID        string
	AccountNumber string
	InvestorID    string
	FundID        string
	Currency      string
	State         string
}

// NewAccountPair creates an AccountPairBuilder defaulting to active accounts.
func NewAccountPair(investorID, fundID string) *AccountPairBuilder {
	return &AccountPairBuilder{
		CashID:        MakeID(),
		UnitID:        MakeID(),
		AccountNumber: "AC" + randomAlphanumeric(8),
		InvestorID:    investorID,
		FundID:        fundID,
		Currency:      "EUR",
		State:         model.AccountStateActive,
	}
}

// WithState sets the state of both accounts.
func (b *AccountPairBuilder) WithState(state string) *AccountPairBuilder {
	b.State = state
	return b
}

// Draft marks both accounts as not yet activated.
func (b *AccountPairBuilder) Draft() *AccountPairBuilder {
	b.State = model.AccountStateDraft
	return b
}

// Build creates both accounts in the database and returns the pair.
func (b *AccountPairBuilder) Build(t *testing.T, db *sql.DB) model.AccountPair {
	t.Helper()

	_, err := db.Exec(`
		INSERT INTO cash_account (id, account_number, investor_id, fund_id, currency, state)
		VALUES (?, ?, ?, ?, ?, ?)
	`, b.CashID, b.AccountNumber, b.InvestorID, b.FundID, b.Currency, b.State)
	if err != nil {
		t.Fatalf("Failed to create test cash account: %v", err)
	}

	_, err = db.Exec(`
		INSERT INTO unit_account (id, account_number, investor_id, fund_id, state)
		VALUES (?, ?, ?, ?, ?)
	`, b.UnitID, b.AccountNumber+"-U", b.InvestorID, b.FundID, b.State)
	if err != nil {
		t.Fatalf("Failed to create test unit account: %v", err)
	}

	return model.AccountPair{
		Cash: model.CashAccount{
			ID:            b.CashID,
			AccountNumber: b.AccountNumber,
			InvestorID:    b.InvestorID,
			FundID:        b.FundID,
			Currency:      b.Currency,
			State:         b.State,
		},
		Units: model.UnitAccount{
			ID:            b.UnitID,
			AccountNumber: b.AccountNumber + "-U",
			InvestorID:    b.InvestorID,
			FundID:        b.FundID,
			State:         b.State,
		},
	}
}

// NAVQuoteBuilder provides a fluent interface for creating test NAV quotes.
type NAVQuoteBuilder struct {
	ID         string
	FundID     string
	ShareClass string
	Date       time.Time
	Value      float64
	Validated  bool
}

// NewNAVQuote creates a NAVQuoteBuilder defaulting to a validated quote of
// 100.0 dated today.
func NewNAVQuote(fundID string) *NAVQuoteBuilder {
	return &NAVQuoteBuilder{
		ID:         MakeID(),
		FundID:     fundID,
		ShareClass: "default",
		Date:       time.Now().Truncate(24 * time.Hour),
		Value:      100.0,
		Validated:  true,
	}
}

// WithValue sets the quote value.
func (b *NAVQuoteBuilder) WithValue(value float64) *NAVQuoteBuilder {
	b.Value = value
	return b
}

// WithDate sets the quote date.
func (b *NAVQuoteBuilder) WithDate(date time.Time) *NAVQuoteBuilder {
	b.Date = date
	return b
}

// Unvalidated marks the quote as not yet usable for settlement.
func (b *NAVQuoteBuilder) Unvalidated() *NAVQuoteBuilder {
	b.Validated = false
	return b
}

// Build creates the quote in the database and returns it.
func (b *NAVQuoteBuilder) Build(t *testing.T, db *sql.DB) model.NAVQuote {
	t.Helper()

	_, err := db.Exec(`
		INSERT INTO nav_quote (id, fund_id, share_class, date, value, validated)
		VALUES (?, ?, ?, ?, ?, ?)
	`, b.ID, b.FundID, b.ShareClass, b.Date.Format("2006-01-02"), b.Value, b.Validated)
	if err != nil {
		t.Fatalf("Failed to create test NAV quote: %v", err)
	}

	return model.NAVQuote{
		ID:         b.ID,
		FundID:     b.FundID,
		ShareClass: b.ShareClass,
		Date:       b.Date,
		Value:      b.Value,
		Validated:  b.Validated,
	}
}

// DepositCash writes a deposit entry directly, giving an account spendable
// balance without going through the ledger service.
func DepositCash(t *testing.T, db *sql.DB, cashAccountID string, amount float64) {
	t.Helper()

	_, err := db.Exec(`
		INSERT INTO cash_entry (id, cash_account_id, kind, amount)
		VALUES (?, ?, ?, ?)
	`, MakeID(), cashAccountID, model.CashKindDeposit, amount)
	if err != nil {
		t.Fatalf("Failed to create test deposit: %v", err)
	}
}

// GrantUnits writes a subscription unit entry directly, giving an account a
// holding to redeem against.
func GrantUnits(t *testing.T, db *sql.DB, unitAccountID string, units float64) {
	t.Helper()

	_, err := db.Exec(`
		INSERT INTO unit_entry (id, unit_account_id, kind, units)
		VALUES (?, ?, ?, ?)
	`, MakeID(), unitAccountID, model.UnitKindSubscription, units)
	if err != nil {
		t.Fatalf("Failed to create test unit grant: %v", err)
	}
}
