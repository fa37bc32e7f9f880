package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/solasterfm/fund-engine/internal/api/request"
	"github.com/solasterfm/fund-engine/internal/api/response"
	"github.com/solasterfm/fund-engine/internal/service"
	"github.com/solasterfm/fund-engine/internal/validation"
)

// InvestorHandler handles HTTP requests for investor endpoints.
type InvestorHandler struct {
	investorService *service.InvestorService
	orderService    *service.OrderService
}

// NewInvestorHandler creates a new InvestorHandler with the provided service dependencies.
func NewInvestorHandler(investorService *service.InvestorService, orderService *service.OrderService) *InvestorHandler {
	return &InvestorHandler{
		investorService: investorService,
		orderService:    orderService,
	}
}

// GetInvestor handles GET requests to retrieve a single investor.
//
// Endpoint: GET /api/investor/{uuid}
// Response: 200 OK with Investor
// Error: 404 Not Found if the investor does not exist
func (h *InvestorHandler) GetInvestor(w http.ResponseWriter, r *http.Request) {
	investor, err := h.investorService.GetInvestor(r.Context(), chi.URLParam(r, "uuid"))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	response.RespondJSON(w, http.StatusOK, investor)
}

// CreateInvestor handles POST requests to create a new investor with a
// pending KYC status.
//
// Endpoint: POST /api/investor
// Request Body: CreateInvestorRequest
// Response: 201 Created with Investor
// Error: 400 Bad Request if validation fails or request body is invalid
func (h *InvestorHandler) CreateInvestor(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateInvestorRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateInvestor(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	investor, err := h.investorService.CreateInvestor(r.Context(), req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	response.RespondJSON(w, http.StatusCreated, investor)
}

// SetKycStatus handles PUT requests to update an investor's KYC status.
//
// Endpoint: PUT /api/investor/{uuid}/kyc
// Request Body: UpdateKycStatusRequest
// Response: 200 OK with updated Investor
// Error: 400 Bad Request if the status is unknown
// Error: 404 Not Found if the investor does not exist
func (h *InvestorHandler) SetKycStatus(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.UpdateKycStatusRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateUpdateKycStatus(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	investor, err := h.investorService.SetKycStatus(r.Context(), chi.URLParam(r, "uuid"), req.KycStatus)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	response.RespondJSON(w, http.StatusOK, investor)
}

// InvestorOrders handles GET requests to list all orders of an investor.
//
// Endpoint: GET /api/investor/{uuid}/orders
// Response: 200 OK with array of Order
// Error: 404 Not Found if the investor does not exist
func (h *InvestorHandler) InvestorOrders(w http.ResponseWriter, r *http.Request) {
	investorID := chi.URLParam(r, "uuid")

	if _, err := h.investorService.GetInvestor(r.Context(), investorID); err != nil {
		respondServiceError(w, err)
		return
	}

	orders, err := h.orderService.ListOrders(r.Context(), investorID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	response.RespondJSON(w, http.StatusOK, orders)
}
