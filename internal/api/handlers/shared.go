package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/solasterfm/fund-engine/internal/api/response"
	"github.com/solasterfm/fund-engine/internal/apperrors"
	"github.com/solasterfm/fund-engine/internal/service"
)

// parseJSON decodes the request body into a request DTO. Unknown fields are
// rejected so typos surface as 400s instead of silently dropped fields.
func parseJSON[T any](r *http.Request) (T, error) {
	var req T
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	err := decoder.Decode(&req)
	return req, err
}

// respondServiceError maps service-layer errors onto HTTP status codes:
// not-found sentinels to 404, input errors to 400, policy violations to 422,
// and lifecycle/staleness conflicts to 409. A NAV drift is a 409 whose body
// carries the replacement NAV and the confirmation token.
func respondServiceError(w http.ResponseWriter, err error) {
	var drift *service.NavDriftError
	if errors.As(err, &drift) {
		response.RespondJSON(w, http.StatusConflict, drift)
		return
	}

	switch {
	case errors.Is(err, apperrors.ErrFundNotFound),
		errors.Is(err, apperrors.ErrInvestorNotFound),
		errors.Is(err, apperrors.ErrAccountNotFound),
		errors.Is(err, apperrors.ErrOrderNotFound),
		errors.Is(err, apperrors.ErrNAVNotFound):
		response.RespondError(w, http.StatusNotFound, err.Error(), "")

	case errors.Is(err, apperrors.ErrInvalidNAV),
		errors.Is(err, apperrors.ErrInsufficientAmount),
		errors.Is(err, apperrors.ErrNonIntegerUnits),
		errors.Is(err, apperrors.ErrNonPositiveAmount),
		errors.Is(err, apperrors.ErrNonPositiveUnits),
		errors.Is(err, apperrors.ErrInvalidUUID),
		errors.Is(err, apperrors.ErrEmptyID),
		errors.Is(err, apperrors.ErrInvalidConfirmToken):
		response.RespondError(w, http.StatusBadRequest, err.Error(), "")

	case errors.Is(err, apperrors.ErrInsufficientFunds),
		errors.Is(err, apperrors.ErrInsufficientUnits),
		errors.Is(err, apperrors.ErrInvestorNotEligible),
		errors.Is(err, apperrors.ErrAccountNotActive),
		errors.Is(err, apperrors.ErrFundNotActive):
		response.RespondError(w, http.StatusUnprocessableEntity, err.Error(), "")

	case errors.Is(err, apperrors.ErrDuplicateEntry),
		errors.Is(err, apperrors.ErrStaleNAV),
		errors.Is(err, apperrors.ErrAlreadySettled),
		errors.Is(err, apperrors.ErrOrderNotCancellable),
		errors.Is(err, apperrors.ErrInvalidStateTransition):
		response.RespondError(w, http.StatusConflict, err.Error(), "")

	default:
		response.RespondError(w, http.StatusInternalServerError, "internal error", err.Error())
	}
}
