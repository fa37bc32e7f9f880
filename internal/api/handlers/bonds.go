package handlers

import (
	"net/http"

	"github.com/solasterfm/fund-engine/internal/api/request"
	"github.com/solasterfm/fund-engine/internal/api/response"
	"github.com/solasterfm/fund-engine/internal/service"
	"github.com/solasterfm/fund-engine/internal/validation"
)

// BondHandler handles HTTP requests for the stateless bond calculators.
type BondHandler struct {
	bondService *service.BondService
}

// NewBondHandler creates a new BondHandler with the provided service dependency.
func NewBondHandler(bondService *service.BondService) *BondHandler {
	return &BondHandler{
		bondService: bondService,
	}
}

// CouponSchedule handles POST requests to generate a coupon payment schedule.
//
// Endpoint: POST /api/bond/schedule
// Request Body: BondScheduleRequest
// Response: 200 OK with array of CouponEvent
// Error: 400 Bad Request if the terms are invalid
func (h *BondHandler) CouponSchedule(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.BondScheduleRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateBondSchedule(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	schedule, err := h.bondService.CouponSchedule(req)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid bond terms", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, schedule)
}

// Amortization handles POST requests to generate the bullet amortization table.
//
// Endpoint: POST /api/bond/amortization
// Request Body: BondScheduleRequest
// Response: 200 OK with array of Installment
// Error: 400 Bad Request if the terms are invalid
func (h *BondHandler) Amortization(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.BondScheduleRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateBondSchedule(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	table, err := h.bondService.Amortization(req)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid bond terms", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, table)
}

// Yield handles POST requests to produce the full yield report for a bond at
// a market price: YTM, durations, convexity, accrued interest, dirty price.
//
// Endpoint: POST /api/bond/yield
// Request Body: BondAnalysisRequest
// Response: 200 OK with Report
// Error: 400 Bad Request if the terms or price are invalid
func (h *BondHandler) Yield(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.BondAnalysisRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateBondAnalysis(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	report, err := h.bondService.Analyze(req)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid bond terms", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, report)
}
