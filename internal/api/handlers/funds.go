package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/solasterfm/fund-engine/internal/api/request"
	"github.com/solasterfm/fund-engine/internal/api/response"
	"github.com/solasterfm/fund-engine/internal/service"
	"github.com/solasterfm/fund-engine/internal/validation"
)

// FundHandler handles HTTP requests for fund endpoints.
// It serves as the HTTP layer adapter, parsing requests and delegating
// business logic to the fundService.
type FundHandler struct {
	fundService *service.FundService
}

// NewFundHandler creates a new FundHandler with the provided service dependency.
func NewFundHandler(fundService *service.FundService) *FundHandler {
	return &FundHandler{
		fundService: fundService,
	}
}

// Funds handles GET requests to retrieve all funds.
//
// Endpoint: GET /api/fund
// Response: 200 OK with array of Fund
// Error: 500 Internal Server Error if retrieval fails
func (h *FundHandler) Funds(w http.ResponseWriter, r *http.Request) {
	funds, err := h.fundService.ListFunds(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}

	response.RespondJSON(w, http.StatusOK, funds)
}

// GetFund handles GET requests to retrieve a single fund.
//
// Endpoint: GET /api/fund/{uuid}
// Response: 200 OK with Fund
// Error: 404 Not Found if the fund does not exist
func (h *FundHandler) GetFund(w http.ResponseWriter, r *http.Request) {
	fund, err := h.fundService.GetFund(r.Context(), chi.URLParam(r, "uuid"))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	response.RespondJSON(w, http.StatusOK, fund)
}

// CreateFund handles POST requests to create a new fund in the draft state.
//
// Endpoint: POST /api/fund
// Request Body: CreateFundRequest
// Response: 201 Created with Fund
// Error: 400 Bad Request if validation fails or request body is invalid
func (h *FundHandler) CreateFund(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateFundRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateFund(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	fund, err := h.fundService.CreateFund(r.Context(), req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	response.RespondJSON(w, http.StatusCreated, fund)
}

// SetFundState handles PUT requests to move a fund between lifecycle states.
//
// Endpoint: PUT /api/fund/{uuid}/state
// Request Body: UpdateFundStateRequest
// Response: 200 OK with updated Fund
// Error: 400 Bad Request if the state is unknown
// Error: 404 Not Found if the fund does not exist
func (h *FundHandler) SetFundState(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.UpdateFundStateRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateUpdateFundState(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	fund, err := h.fundService.SetFundState(r.Context(), chi.URLParam(r, "uuid"), req.State)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	response.RespondJSON(w, http.StatusOK, fund)
}
