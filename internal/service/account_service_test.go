package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/solasterfm/fund-engine/internal/api/request"
	"github.com/solasterfm/fund-engine/internal/apperrors"
	"github.com/solasterfm/fund-engine/internal/model"
	"github.com/solasterfm/fund-engine/internal/testutil"
)

// TestAccountService_OpenAccounts covers pair creation and the draft-first
// account lifecycle.
func TestAccountService_OpenAccounts(t *testing.T) {
	ctx := context.Background()

	t.Run("opens a draft pair with derived account numbers", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestAccountService(t, db)

		fund := testutil.NewFund().Build(t, db)
		investor := testutil.NewInvestor().Build(t, db)

		pair, err := svc.OpenAccounts(ctx, request.OpenAccountsRequest{
			InvestorID:    investor.ID,
			FundID:        fund.ID,
			AccountNumber: "AC00000042",
		})
		if err != nil {
			t.Fatalf("OpenAccounts failed: %v", err)
		}

		if pair.Cash.State != model.AccountStateDraft || pair.Units.State != model.AccountStateDraft {
			t.Errorf("Expected both accounts draft, got %s / %s", pair.Cash.State, pair.Units.State)
		}
		if pair.Cash.AccountNumber != "AC00000042" {
			t.Errorf("Expected requested account number, got %s", pair.Cash.AccountNumber)
		}
		if pair.Units.AccountNumber != "AC00000042-U" {
			t.Errorf("Expected derived unit account number, got %s", pair.Units.AccountNumber)
		}
		if pair.Cash.Currency != fund.Currency {
			t.Errorf("Expected fund currency %s, got %s", fund.Currency, pair.Cash.Currency)
		}
	})

	t.Run("generates an account number when none is given", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestAccountService(t, db)

		fund := testutil.NewFund().Build(t, db)
		investor := testutil.NewInvestor().Build(t, db)

		pair, err := svc.OpenAccounts(ctx, request.OpenAccountsRequest{
			InvestorID: investor.ID,
			FundID:     fund.ID,
		})
		if err != nil {
			t.Fatalf("OpenAccounts failed: %v", err)
		}
		if !strings.HasPrefix(pair.Cash.AccountNumber, "AC") {
			t.Errorf("Expected generated AC number, got %s", pair.Cash.AccountNumber)
		}
	})

	t.Run("unknown fund or investor is rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestAccountService(t, db)

		fund := testutil.NewFund().Build(t, db)
		investor := testutil.NewInvestor().Build(t, db)

		_, err := svc.OpenAccounts(ctx, request.OpenAccountsRequest{
			InvestorID: investor.ID,
			FundID:     testutil.MakeID(),
		})
		if !errors.Is(err, apperrors.ErrFundNotFound) {
			t.Errorf("Expected ErrFundNotFound, got %v", err)
		}

		_, err = svc.OpenAccounts(ctx, request.OpenAccountsRequest{
			InvestorID: testutil.MakeID(),
			FundID:     fund.ID,
		})
		if !errors.Is(err, apperrors.ErrInvestorNotFound) {
			t.Errorf("Expected ErrInvestorNotFound, got %v", err)
		}
	})
}

// TestAccountService_Position checks the ledger-derived balances on the
// position view and the paired state transition.
func TestAccountService_Position(t *testing.T) {
	ctx := context.Background()

	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestAccountService(t, db)

	fund := testutil.NewFund().Build(t, db)
	investor := testutil.NewInvestor().Build(t, db)
	pair := testutil.NewAccountPair(investor.ID, fund.ID).Draft().Build(t, db)

	testutil.DepositCash(t, db, pair.Cash.ID, 1500)
	testutil.GrantUnits(t, db, pair.Units.ID, 12)

	position, err := svc.GetPosition(ctx, investor.ID, fund.ID)
	if err != nil {
		t.Fatalf("GetPosition failed: %v", err)
	}
	if position.CashBalance != 1500 {
		t.Errorf("Expected cash balance 1500, got %v", position.CashBalance)
	}
	if position.UnitHolding != 12 {
		t.Errorf("Expected unit holding 12, got %v", position.UnitHolding)
	}

	activated, err := svc.SetAccountState(ctx, investor.ID, fund.ID, model.AccountStateActive)
	if err != nil {
		t.Fatalf("SetAccountState failed: %v", err)
	}
	if activated.Cash.State != model.AccountStateActive || activated.Units.State != model.AccountStateActive {
		t.Errorf("Expected both accounts active, got %s / %s", activated.Cash.State, activated.Units.State)
	}

	_, err = svc.GetPosition(ctx, investor.ID, testutil.MakeID())
	if !errors.Is(err, apperrors.ErrAccountNotFound) {
		t.Errorf("Expected ErrAccountNotFound, got %v", err)
	}
}
