package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/solasterfm/fund-engine/internal/api/handlers"
	"github.com/solasterfm/fund-engine/internal/model"
	"github.com/solasterfm/fund-engine/internal/testutil"
)

func TestFundHandler_CreateFund(t *testing.T) {
	t.Run("creates a draft fund with defaults applied", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewFundHandler(testutil.NewTestFundService(t, db))

		body := map[string]interface{}{
			"name":                "Global Equity Fund",
			"currency":            "EUR",
			"subscriptionFeeRate": 1.5,
		}
		req := testutil.NewJSONRequest(t, "POST", "/api/fund", body, nil)
		w := httptest.NewRecorder()

		handler.CreateFund(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("Expected status 201, got %d: %s", w.Code, w.Body.String())
		}

		var fund model.Fund
		if err := json.NewDecoder(w.Body).Decode(&fund); err != nil {
			t.Fatalf("Failed to decode fund response: %v", err)
		}
		if fund.State != model.FundStateDraft {
			t.Errorf("Expected draft state, got %s", fund.State)
		}
		if fund.ShareClass != "default" {
			t.Errorf("Expected default share class, got %s", fund.ShareClass)
		}
		if fund.RedemptionDelay != model.RedemptionDelayTwoDays {
			t.Errorf("Expected T2 redemption delay, got %s", fund.RedemptionDelay)
		}
	})

	t.Run("rejects an out-of-range fee rate", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewFundHandler(testutil.NewTestFundService(t, db))

		body := map[string]interface{}{
			"name":                "Bad Fee Fund",
			"currency":            "EUR",
			"subscriptionFeeRate": 150.0,
		}
		req := testutil.NewJSONRequest(t, "POST", "/api/fund", body, nil)
		w := httptest.NewRecorder()

		handler.CreateFund(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", w.Code)
		}
	})

	t.Run("rejects a missing name", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewFundHandler(testutil.NewTestFundService(t, db))

		req := testutil.NewJSONRequest(t, "POST", "/api/fund", map[string]interface{}{"currency": "EUR"}, nil)
		w := httptest.NewRecorder()

		handler.CreateFund(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", w.Code)
		}
	})
}

func TestFundHandler_GetFund(t *testing.T) {
	t.Run("retrieves an existing fund", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewFundHandler(testutil.NewTestFundService(t, db))

		fund := testutil.NewFund().Build(t, db)

		req := testutil.NewRequestWithURLParams("GET", "/api/fund/"+fund.ID, map[string]string{"uuid": fund.ID})
		w := httptest.NewRecorder()

		handler.GetFund(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d", w.Code)
		}
		var got model.Fund
		if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
			t.Fatalf("Failed to decode fund response: %v", err)
		}
		if got.ID != fund.ID {
			t.Errorf("Expected fund %s, got %s", fund.ID, got.ID)
		}
	})

	t.Run("returns 404 for an unknown fund", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewFundHandler(testutil.NewTestFundService(t, db))

		id := testutil.MakeID()
		req := testutil.NewRequestWithURLParams("GET", "/api/fund/"+id, map[string]string{"uuid": id})
		w := httptest.NewRecorder()

		handler.GetFund(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected status 404, got %d", w.Code)
		}
	})
}

func TestFundHandler_SetFundState(t *testing.T) {
	t.Run("activates a draft fund", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewFundHandler(testutil.NewTestFundService(t, db))

		fund := testutil.NewFund().WithState(model.FundStateDraft).Build(t, db)

		req := testutil.NewJSONRequest(t, "PUT", "/api/fund/"+fund.ID+"/state",
			map[string]string{"state": model.FundStateActive}, map[string]string{"uuid": fund.ID})
		w := httptest.NewRecorder()

		handler.SetFundState(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
		}
		var got model.Fund
		if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
			t.Fatalf("Failed to decode fund response: %v", err)
		}
		if got.State != model.FundStateActive {
			t.Errorf("Expected active state, got %s", got.State)
		}
	})

	t.Run("rejects an unknown state", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewFundHandler(testutil.NewTestFundService(t, db))

		fund := testutil.NewFund().Build(t, db)

		req := testutil.NewJSONRequest(t, "PUT", "/api/fund/"+fund.ID+"/state",
			map[string]string{"state": "liquidated"}, map[string]string{"uuid": fund.ID})
		w := httptest.NewRecorder()

		handler.SetFundState(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", w.Code)
		}
	})
}

func TestFundHandler_Funds(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := handlers.NewFundHandler(testutil.NewTestFundService(t, db))

	testutil.NewFund().Build(t, db)
	testutil.NewFund().Build(t, db)

	req := testutil.NewRequestWithURLParams("GET", "/api/fund", nil)
	w := httptest.NewRecorder()

	handler.Funds(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	var funds []model.Fund
	if err := json.NewDecoder(w.Body).Decode(&funds); err != nil {
		t.Fatalf("Failed to decode funds response: %v", err)
	}
	if len(funds) != 2 {
		t.Errorf("Expected 2 funds, got %d", len(funds))
	}
}
