package handlers_test

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/solasterfm/fund-engine/internal/api/handlers"
	"github.com/solasterfm/fund-engine/internal/model"
	"github.com/solasterfm/fund-engine/internal/testutil"
)

type orderFixture struct {
	db       *sql.DB
	handler  *handlers.OrderHandler
	fund     model.Fund
	investor model.Investor
	pair     model.AccountPair
}

func setupOrderFixture(t *testing.T) orderFixture {
	t.Helper()

	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestOrderService(t, db)

	fund := testutil.NewFund().Build(t, db)
	investor := testutil.NewInvestor().Build(t, db)
	pair := testutil.NewAccountPair(investor.ID, fund.ID).Build(t, db)

	return orderFixture{
		db:       db,
		handler:  handlers.NewOrderHandler(svc),
		fund:     fund,
		investor: investor,
		pair:     pair,
	}
}

func decodeOrder(t *testing.T, w *httptest.ResponseRecorder) model.Order {
	t.Helper()

	var order model.Order
	if err := json.NewDecoder(w.Body).Decode(&order); err != nil {
		t.Fatalf("Failed to decode order response: %v", err)
	}
	return order
}

func TestOrderHandler_CreateOrder(t *testing.T) {
	t.Run("creates a draft subscription", func(t *testing.T) {
		f := setupOrderFixture(t)

		body := map[string]interface{}{
			"side":            model.OrderSideSubscription,
			"investorId":      f.investor.ID,
			"fundId":          f.fund.ID,
			"requestedAmount": 1000.0,
		}
		req := testutil.NewJSONRequest(t, "POST", "/api/order", body, nil)
		w := httptest.NewRecorder()

		f.handler.CreateOrder(w, req)

		if w.Code != http.StatusCreated {
			t.Errorf("Expected status 201, got %d: %s", w.Code, w.Body.String())
		}
		order := decodeOrder(t, w)
		if order.State != model.OrderStateDraft {
			t.Errorf("Expected draft state, got %s", order.State)
		}
		if order.CashAccountID != f.pair.Cash.ID {
			t.Errorf("Expected cash account %s, got %s", f.pair.Cash.ID, order.CashAccountID)
		}
	})

	t.Run("returns 400 for a redemption without units", func(t *testing.T) {
		f := setupOrderFixture(t)

		body := map[string]interface{}{
			"side":       model.OrderSideRedemption,
			"investorId": f.investor.ID,
			"fundId":     f.fund.ID,
		}
		req := testutil.NewJSONRequest(t, "POST", "/api/order", body, nil)
		w := httptest.NewRecorder()

		f.handler.CreateOrder(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", w.Code)
		}
	})

	t.Run("returns 400 for unknown fields", func(t *testing.T) {
		f := setupOrderFixture(t)

		body := map[string]interface{}{
			"side":            model.OrderSideSubscription,
			"investorId":      f.investor.ID,
			"fundId":          f.fund.ID,
			"requestedAmount": 1000.0,
			"bogus":           true,
		}
		req := testutil.NewJSONRequest(t, "POST", "/api/order", body, nil)
		w := httptest.NewRecorder()

		f.handler.CreateOrder(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", w.Code)
		}
	})

	t.Run("returns 422 for a suspended fund", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewOrderHandler(testutil.NewTestOrderService(t, db))

		fund := testutil.NewFund().WithState(model.FundStateSuspended).Build(t, db)
		investor := testutil.NewInvestor().Build(t, db)
		testutil.NewAccountPair(investor.ID, fund.ID).Build(t, db)

		body := map[string]interface{}{
			"side":            model.OrderSideSubscription,
			"investorId":      investor.ID,
			"fundId":          fund.ID,
			"requestedAmount": 1000.0,
		}
		req := testutil.NewJSONRequest(t, "POST", "/api/order", body, nil)
		w := httptest.NewRecorder()

		handler.CreateOrder(w, req)

		if w.Code != http.StatusUnprocessableEntity {
			t.Errorf("Expected status 422, got %d: %s", w.Code, w.Body.String())
		}
	})
}

func TestOrderHandler_Lifecycle(t *testing.T) {
	t.Run("submit, validate, settle over HTTP", func(t *testing.T) {
		f := setupOrderFixture(t)
		testutil.NewNAVQuote(f.fund.ID).WithValue(100).Build(t, f.db)
		testutil.DepositCash(t, f.db, f.pair.Cash.ID, 5000)

		body := map[string]interface{}{
			"side":            model.OrderSideSubscription,
			"investorId":      f.investor.ID,
			"fundId":          f.fund.ID,
			"requestedAmount": 5000.0,
		}
		req := testutil.NewJSONRequest(t, "POST", "/api/order", body, nil)
		w := httptest.NewRecorder()
		f.handler.CreateOrder(w, req)
		if w.Code != http.StatusCreated {
			t.Fatalf("CreateOrder returned %d: %s", w.Code, w.Body.String())
		}
		order := decodeOrder(t, w)

		params := map[string]string{"uuid": order.ID}

		w = httptest.NewRecorder()
		f.handler.SubmitOrder(w, testutil.NewRequestWithURLParams("POST", "/api/order/"+order.ID+"/submit", params))
		if w.Code != http.StatusOK {
			t.Fatalf("SubmitOrder returned %d: %s", w.Code, w.Body.String())
		}

		w = httptest.NewRecorder()
		f.handler.ValidateOrder(w, testutil.NewRequestWithURLParams("POST", "/api/order/"+order.ID+"/validate", params))
		if w.Code != http.StatusOK {
			t.Fatalf("ValidateOrder returned %d: %s", w.Code, w.Body.String())
		}

		w = httptest.NewRecorder()
		f.handler.SettleOrder(w, testutil.NewRequestWithURLParams("POST", "/api/order/"+order.ID+"/settle", params))
		if w.Code != http.StatusOK {
			t.Fatalf("SettleOrder returned %d: %s", w.Code, w.Body.String())
		}
		settled := decodeOrder(t, w)
		if settled.State != model.OrderStateAccounted {
			t.Errorf("Expected accounted state, got %s", settled.State)
		}

		// Settling again conflicts.
		w = httptest.NewRecorder()
		f.handler.SettleOrder(w, testutil.NewRequestWithURLParams("POST", "/api/order/"+order.ID+"/settle", params))
		if w.Code != http.StatusConflict {
			t.Errorf("Expected status 409 on double settle, got %d", w.Code)
		}

		// So does cancelling after settlement.
		w = httptest.NewRecorder()
		f.handler.CancelOrder(w, testutil.NewRequestWithURLParams("POST", "/api/order/"+order.ID+"/cancel", params))
		if w.Code != http.StatusConflict {
			t.Errorf("Expected status 409 on cancel after settle, got %d", w.Code)
		}
	})

	t.Run("returns 404 for an unknown order", func(t *testing.T) {
		f := setupOrderFixture(t)

		id := testutil.MakeID()
		w := httptest.NewRecorder()
		f.handler.GetOrder(w, testutil.NewRequestWithURLParams("GET", "/api/order/"+id, map[string]string{"uuid": id}))

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected status 404, got %d", w.Code)
		}
	})
}

func TestOrderHandler_NavDrift(t *testing.T) {
	f := setupOrderFixture(t)
	testutil.DepositCash(t, f.db, f.pair.Cash.ID, 5000)
	yesterday := time.Now().AddDate(0, 0, -1)
	testutil.NewNAVQuote(f.fund.ID).WithValue(100).WithDate(yesterday).Build(t, f.db)

	body := map[string]interface{}{
		"side":            model.OrderSideSubscription,
		"investorId":      f.investor.ID,
		"fundId":          f.fund.ID,
		"requestedAmount": 5000.0,
	}
	req := testutil.NewJSONRequest(t, "POST", "/api/order", body, nil)
	w := httptest.NewRecorder()
	f.handler.CreateOrder(w, req)
	order := decodeOrder(t, w)
	params := map[string]string{"uuid": order.ID}

	w = httptest.NewRecorder()
	f.handler.SubmitOrder(w, testutil.NewRequestWithURLParams("POST", "/api/order/"+order.ID+"/submit", params))
	if w.Code != http.StatusOK {
		t.Fatalf("SubmitOrder returned %d: %s", w.Code, w.Body.String())
	}

	// The NAV moves after submission; validation must surface the drift.
	testutil.NewNAVQuote(f.fund.ID).WithValue(104).Build(t, f.db)

	w = httptest.NewRecorder()
	f.handler.ValidateOrder(w, testutil.NewRequestWithURLParams("POST", "/api/order/"+order.ID+"/validate", params))
	if w.Code != http.StatusConflict {
		t.Fatalf("Expected status 409, got %d: %s", w.Code, w.Body.String())
	}

	var drift struct {
		OrderID      string  `json:"orderId"`
		CapturedNAV  float64 `json:"capturedNav"`
		CurrentNAV   float64 `json:"currentNav"`
		ConfirmToken string  `json:"confirmToken"`
	}
	if err := json.NewDecoder(w.Body).Decode(&drift); err != nil {
		t.Fatalf("Failed to decode drift response: %v", err)
	}
	if drift.OrderID != order.ID {
		t.Errorf("Expected drift for order %s, got %s", order.ID, drift.OrderID)
	}
	if drift.CapturedNAV != 100 || drift.CurrentNAV != 104 {
		t.Errorf("Expected drift 100 -> 104, got %v -> %v", drift.CapturedNAV, drift.CurrentNAV)
	}
	if drift.ConfirmToken == "" {
		t.Fatal("Expected a confirmation token in the drift response")
	}

	// A garbage token is a client error and leaves the order submitted.
	w = httptest.NewRecorder()
	f.handler.ConfirmOrder(w, testutil.NewJSONRequest(t, "POST", "/api/order/"+order.ID+"/confirm",
		map[string]string{"confirmToken": "bogus"}, params))
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 for a bad token, got %d", w.Code)
	}

	// Confirming with the token validates at the new NAV.
	confirmBody := map[string]string{"confirmToken": drift.ConfirmToken}
	w = httptest.NewRecorder()
	f.handler.ConfirmOrder(w, testutil.NewJSONRequest(t, "POST", "/api/order/"+order.ID+"/confirm", confirmBody, params))
	if w.Code != http.StatusOK {
		t.Fatalf("ConfirmOrder returned %d: %s", w.Code, w.Body.String())
	}
	confirmed := decodeOrder(t, w)
	if confirmed.State != model.OrderStateValidated {
		t.Errorf("Expected validated state, got %s", confirmed.State)
	}
	if confirmed.AppliedNAV != 104 {
		t.Errorf("Expected NAV 104 after confirmation, got %v", confirmed.AppliedNAV)
	}
}
