package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/solasterfm/fund-engine/internal/api/request"
	"github.com/solasterfm/fund-engine/internal/api/response"
	"github.com/solasterfm/fund-engine/internal/service"
	"github.com/solasterfm/fund-engine/internal/validation"
)

// OrderHandler handles HTTP requests for the order lifecycle. Each lifecycle
// transition is its own POST endpoint; the state machine itself lives in the
// order service.
type OrderHandler struct {
	orderService *service.OrderService
}

// NewOrderHandler creates a new OrderHandler with the provided service dependency.
func NewOrderHandler(orderService *service.OrderService) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
	}
}

// CreateOrder handles POST requests to record a new draft order.
//
// Endpoint: POST /api/order
// Request Body: CreateOrderRequest
// Response: 201 Created with Order
// Error: 400 Bad Request if validation fails
// Error: 404 Not Found if the fund, investor, or account pair does not exist
// Error: 422 Unprocessable Entity if the fund is not active
func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateOrderRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateOrder(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	order, err := h.orderService.CreateOrder(r.Context(), req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	response.RespondJSON(w, http.StatusCreated, order)
}

// GetOrder handles GET requests to retrieve a single order.
//
// Endpoint: GET /api/order/{uuid}
// Response: 200 OK with Order
// Error: 404 Not Found if the order does not exist
func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.orderService.GetOrder(r.Context(), chi.URLParam(r, "uuid"))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	response.RespondJSON(w, http.StatusOK, order)
}

// SubmitOrder handles POST requests to move a draft order to submitted,
// capturing the applicable NAV and previewing the economics.
//
// Endpoint: POST /api/order/{uuid}/submit
// Response: 200 OK with Order
// Error: 404 Not Found if the order or a validated NAV does not exist
// Error: 409 Conflict if the order is not in the draft state
func (h *OrderHandler) SubmitOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.orderService.Submit(r.Context(), chi.URLParam(r, "uuid"))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	response.RespondJSON(w, http.StatusOK, order)
}

// ValidateOrder handles POST requests to move a submitted order to validated.
// If the applicable NAV drifted since submission, the response is a 409 whose
// body carries the replacement NAV and a confirmation token for ConfirmOrder.
//
// Endpoint: POST /api/order/{uuid}/validate
// Response: 200 OK with Order
// Error: 409 Conflict with NavDriftError body if the NAV moved
// Error: 422 Unprocessable Entity if the investor is not compliant
func (h *OrderHandler) ValidateOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.orderService.Validate(r.Context(), chi.URLParam(r, "uuid"))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	response.RespondJSON(w, http.StatusOK, order)
}

// ConfirmOrder handles POST requests to complete a validation interrupted by
// NAV drift, presenting the confirmation token from the drift response.
//
// Endpoint: POST /api/order/{uuid}/confirm
// Request Body: ValidateOrderRequest (confirmToken)
// Response: 200 OK with Order
// Error: 400 Bad Request if the token is missing, expired, or tampered
func (h *OrderHandler) ConfirmOrder(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.ValidateOrderRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	order, err := h.orderService.Confirm(r.Context(), chi.URLParam(r, "uuid"), req.ConfirmToken)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	response.RespondJSON(w, http.StatusOK, order)
}

// SettleOrder handles POST requests to post a validated order to the ledger.
//
// Endpoint: POST /api/order/{uuid}/settle
// Response: 200 OK with accounted Order
// Error: 409 Conflict if already settled or the NAV went stale
// Error: 422 Unprocessable Entity if funds, units, or eligibility are lacking
func (h *OrderHandler) SettleOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.orderService.Settle(r.Context(), chi.URLParam(r, "uuid"))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	response.RespondJSON(w, http.StatusOK, order)
}

// CancelOrder handles POST requests to abandon an order.
//
// Endpoint: POST /api/order/{uuid}/cancel
// Response: 200 OK with cancelled Order
// Error: 409 Conflict if the order is already accounted or cancelled
func (h *OrderHandler) CancelOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.orderService.Cancel(r.Context(), chi.URLParam(r, "uuid"))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	response.RespondJSON(w, http.StatusOK, order)
}
