package handlers_test

import (
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/solasterfm/fund-engine/internal/api/handlers"
	"github.com/solasterfm/fund-engine/internal/bond"
	"github.com/solasterfm/fund-engine/internal/service"
	"github.com/solasterfm/fund-engine/internal/testutil"
)

func bondScheduleBody() map[string]interface{} {
	return map[string]interface{}{
		"faceValue":    1000.0,
		"couponRate":   5.0,
		"frequency":    bond.FrequencyAnnual,
		"valueDate":    "2025-01-15",
		"maturityDate": "2030-01-15",
	}
}

func TestBondHandler_CouponSchedule(t *testing.T) {
	handler := handlers.NewBondHandler(service.NewBondService())

	t.Run("returns one coupon per year", func(t *testing.T) {
		req := testutil.NewJSONRequest(t, "POST", "/api/bond/schedule", bondScheduleBody(), nil)
		w := httptest.NewRecorder()

		handler.CouponSchedule(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
		}

		var schedule []bond.CouponEvent
		if err := json.NewDecoder(w.Body).Decode(&schedule); err != nil {
			t.Fatalf("Failed to decode schedule response: %v", err)
		}
		if len(schedule) != 5 {
			t.Fatalf("Expected 5 coupons, got %d", len(schedule))
		}
		for _, event := range schedule {
			if event.Amount != 50 {
				t.Errorf("Expected 50 per annual coupon, got %v", event.Amount)
			}
		}
	})

	t.Run("rejects an unknown frequency", func(t *testing.T) {
		body := bondScheduleBody()
		body["frequency"] = "weekly"
		req := testutil.NewJSONRequest(t, "POST", "/api/bond/schedule", body, nil)
		w := httptest.NewRecorder()

		handler.CouponSchedule(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", w.Code)
		}
	})

	t.Run("rejects maturity before value date", func(t *testing.T) {
		body := bondScheduleBody()
		body["maturityDate"] = "2024-01-15"
		req := testutil.NewJSONRequest(t, "POST", "/api/bond/schedule", body, nil)
		w := httptest.NewRecorder()

		handler.CouponSchedule(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", w.Code)
		}
	})
}

func TestBondHandler_Amortization(t *testing.T) {
	handler := handlers.NewBondHandler(service.NewBondService())

	req := testutil.NewJSONRequest(t, "POST", "/api/bond/amortization", bondScheduleBody(), nil)
	w := httptest.NewRecorder()

	handler.Amortization(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var table []bond.Installment
	if err := json.NewDecoder(w.Body).Decode(&table); err != nil {
		t.Fatalf("Failed to decode amortization response: %v", err)
	}
	if len(table) != 5 {
		t.Fatalf("Expected 5 installments, got %d", len(table))
	}

	// Bullet repayment: principal only in the final installment.
	for _, row := range table[:len(table)-1] {
		if row.PrincipalRepayment != 0 {
			t.Errorf("Expected no principal before maturity, got %v", row.PrincipalRepayment)
		}
	}
	last := table[len(table)-1]
	if last.PrincipalRepayment != 1000 || last.ClosingPrincipal != 0 {
		t.Errorf("Expected full principal at maturity, got %v repaid / %v closing",
			last.PrincipalRepayment, last.ClosingPrincipal)
	}
}

func TestBondHandler_Yield(t *testing.T) {
	handler := handlers.NewBondHandler(service.NewBondService())

	t.Run("par bond yields the coupon rate", func(t *testing.T) {
		body := bondScheduleBody()
		body["marketPrice"] = 100.0
		req := testutil.NewJSONRequest(t, "POST", "/api/bond/yield", body, nil)
		w := httptest.NewRecorder()

		handler.Yield(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
		}

		var report bond.Report
		if err := json.NewDecoder(w.Body).Decode(&report); err != nil {
			t.Fatalf("Failed to decode yield response: %v", err)
		}
		if math.Abs(report.YieldToMaturity-5.0) > 0.05 {
			t.Errorf("Expected YTM near 5%%, got %v", report.YieldToMaturity)
		}
		if report.ModifiedDuration <= 0 || report.ModifiedDuration >= report.MacaulayDuration+0.001 {
			t.Errorf("Expected 0 < modified <= macaulay, got %v vs %v",
				report.ModifiedDuration, report.MacaulayDuration)
		}
	})

	t.Run("rejects a non-positive market price", func(t *testing.T) {
		body := bondScheduleBody()
		body["marketPrice"] = 0.0
		req := testutil.NewJSONRequest(t, "POST", "/api/bond/yield", body, nil)
		w := httptest.NewRecorder()

		handler.Yield(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", w.Code)
		}
	})
}
