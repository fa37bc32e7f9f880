package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/solasterfm/fund-engine/internal/api/request"
	"github.com/solasterfm/fund-engine/internal/api/response"
	"github.com/solasterfm/fund-engine/internal/service"
	"github.com/solasterfm/fund-engine/internal/validation"
)

// NAVHandler handles HTTP requests for NAV quote endpoints.
type NAVHandler struct {
	navService *service.NAVService
}

// NewNAVHandler creates a new NAVHandler with the provided service dependency.
func NewNAVHandler(navService *service.NAVService) *NAVHandler {
	return &NAVHandler{
		navService: navService,
	}
}

// PublishQuote handles POST requests to record a new unvalidated NAV quote.
//
// Endpoint: POST /api/nav
// Request Body: PublishNAVRequest
// Response: 201 Created with NAVQuote
// Error: 400 Bad Request if validation fails
// Error: 404 Not Found if the fund does not exist
// Error: 409 Conflict if a quote already exists for the fund/class/date
func (h *NAVHandler) PublishQuote(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.PublishNAVRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidatePublishNAV(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	quote, err := h.navService.PublishQuote(r.Context(), req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	response.RespondJSON(w, http.StatusCreated, quote)
}

// ValidateQuote handles POST requests to mark a quote as usable for settlement.
//
// Endpoint: POST /api/nav/{uuid}/validate
// Response: 200 OK with updated NAVQuote
// Error: 404 Not Found if the quote does not exist
func (h *NAVHandler) ValidateQuote(w http.ResponseWriter, r *http.Request) {
	quote, err := h.navService.ValidateQuote(r.Context(), chi.URLParam(r, "uuid"))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	response.RespondJSON(w, http.StatusOK, quote)
}

// CurrentQuote handles GET requests for the most recent validated quote of a
// fund. With an `asOf` query parameter (YYYY-MM-DD) it returns the latest
// validated quote on or before that date instead.
//
// Endpoint: GET /api/nav/fund/{uuid}/current?asOf=2024-01-15
// Response: 200 OK with NAVQuote
// Error: 404 Not Found if no validated quote exists
func (h *NAVHandler) CurrentQuote(w http.ResponseWriter, r *http.Request) {
	fundID := chi.URLParam(r, "uuid")

	if asOf := r.URL.Query().Get("asOf"); asOf != "" {
		date, err := time.Parse("2006-01-02", asOf)
		if err != nil {
			response.RespondError(w, http.StatusBadRequest, "invalid asOf date", err.Error())
			return
		}

		quote, err := h.navService.QuoteAsOf(r.Context(), fundID, date)
		if err != nil {
			respondServiceError(w, err)
			return
		}
		response.RespondJSON(w, http.StatusOK, quote)
		return
	}

	quote, err := h.navService.CurrentQuote(r.Context(), fundID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	response.RespondJSON(w, http.StatusOK, quote)
}

// FundQuotes handles GET requests to list all quotes of a fund, newest first.
//
// Endpoint: GET /api/nav/fund/{uuid}
// Response: 200 OK with array of NAVQuote
// Error: 404 Not Found if the fund does not exist
func (h *NAVHandler) FundQuotes(w http.ResponseWriter, r *http.Request) {
	quotes, err := h.navService.ListQuotes(r.Context(), chi.URLParam(r, "uuid"))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	response.RespondJSON(w, http.StatusOK, quotes)
}
