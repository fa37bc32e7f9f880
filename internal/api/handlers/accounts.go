package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/solasterfm/fund-engine/internal/api/request"
	"github.com/solasterfm/fund-engine/internal/api/response"
	"github.com/solasterfm/fund-engine/internal/service"
	"github.com/solasterfm/fund-engine/internal/validation"
)

// AccountHandler handles HTTP requests for account and ledger endpoints.
type AccountHandler struct {
	accountService *service.AccountService
	ledgerService  *service.LedgerService
}

// NewAccountHandler creates a new AccountHandler with the provided service dependencies.
func NewAccountHandler(accountService *service.AccountService, ledgerService *service.LedgerService) *AccountHandler {
	return &AccountHandler{
		accountService: accountService,
		ledgerService:  ledgerService,
	}
}

// OpenAccounts handles POST requests to open the cash/unit account pair for
// an investor in a fund.
//
// Endpoint: POST /api/account
// Request Body: OpenAccountsRequest
// Response: 201 Created with AccountPair
// Error: 400 Bad Request if validation fails
// Error: 404 Not Found if the fund or investor does not exist
func (h *AccountHandler) OpenAccounts(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.OpenAccountsRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateOpenAccounts(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	pair, err := h.accountService.OpenAccounts(r.Context(), req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	response.RespondJSON(w, http.StatusCreated, pair)
}

// Position handles GET requests to retrieve an investor's account pair in a
// fund, with the ledger-derived cash balance and unit holding.
//
// Endpoint: GET /api/account/{uuid}/fund/{fundId}
// Response: 200 OK with AccountPair
// Error: 404 Not Found if no accounts exist for the pair
func (h *AccountHandler) Position(w http.ResponseWriter, r *http.Request) {
	investorID := chi.URLParam(r, "uuid")
	fundID := chi.URLParam(r, "fundId")

	if err := validation.ValidateUUID(fundID); err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid UUID format", err.Error())
		return
	}

	pair, err := h.accountService.GetPosition(r.Context(), investorID, fundID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	response.RespondJSON(w, http.StatusOK, pair)
}

// SetAccountState handles PUT requests to move both accounts of a pair to a
// new state (activation or suspension).
//
// Endpoint: PUT /api/account/{uuid}/fund/{fundId}/state
// Request Body: UpdateAccountStateRequest
// Response: 200 OK with updated AccountPair
// Error: 400 Bad Request if the state is unknown
// Error: 404 Not Found if no accounts exist for the pair
func (h *AccountHandler) SetAccountState(w http.ResponseWriter, r *http.Request) {
	investorID := chi.URLParam(r, "uuid")
	fundID := chi.URLParam(r, "fundId")

	if err := validation.ValidateUUID(fundID); err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid UUID format", err.Error())
		return
	}

	req, err := parseJSON[request.UpdateAccountStateRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateUpdateAccountState(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	pair, err := h.accountService.SetAccountState(r.Context(), investorID, fundID, req.State)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	response.RespondJSON(w, http.StatusOK, pair)
}

// Deposit handles POST requests to credit external cash into a cash account.
//
// Endpoint: POST /api/ledger/{uuid}/deposit
// Request Body: DepositRequest
// Response: 201 Created with CashEntry
// Error: 400 Bad Request if the amount is not positive
// Error: 422 Unprocessable Entity if the account is not active
func (h *AccountHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.DepositRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	entry, err := h.ledgerService.Deposit(r.Context(), chi.URLParam(r, "uuid"), req.Amount)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	response.RespondJSON(w, http.StatusCreated, entry)
}

// Withdraw handles POST requests to debit cash out of a cash account.
//
// Endpoint: POST /api/ledger/{uuid}/withdraw
// Request Body: WithdrawRequest
// Response: 201 Created with CashEntry
// Error: 400 Bad Request if the amount is not positive
// Error: 422 Unprocessable Entity if the balance does not cover the amount
func (h *AccountHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.WithdrawRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	entry, err := h.ledgerService.Withdraw(r.Context(), chi.URLParam(r, "uuid"), req.Amount)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	response.RespondJSON(w, http.StatusCreated, entry)
}

// CashStatement handles GET requests to retrieve the full cash entry history
// of an account, oldest first.
//
// Endpoint: GET /api/ledger/{uuid}/cash
// Response: 200 OK with array of CashEntry
// Error: 404 Not Found if the account does not exist
func (h *AccountHandler) CashStatement(w http.ResponseWriter, r *http.Request) {
	entries, err := h.ledgerService.CashStatement(r.Context(), chi.URLParam(r, "uuid"))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	response.RespondJSON(w, http.StatusOK, entries)
}

// UnitStatement handles GET requests to retrieve the full unit entry history
// of an account, oldest first.
//
// Endpoint: GET /api/ledger/{uuid}/units
// Response: 200 OK with array of UnitEntry
// Error: 404 Not Found if the account does not exist
func (h *AccountHandler) UnitStatement(w http.ResponseWriter, r *http.Request) {
	entries, err := h.ledgerService.UnitStatement(r.Context(), chi.URLParam(r, "uuid"))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	response.RespondJSON(w, http.StatusOK, entries)
}
