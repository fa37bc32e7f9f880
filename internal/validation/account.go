package validation

import (
	"fmt"
	"strings"

	"github.com/solasterfm/fund-engine/internal/api/request"
	"github.com/solasterfm/fund-engine/internal/model"
)

var ValidAccountState = map[string]bool{
	model.AccountStateDraft: true, model.AccountStateActive: true, model.AccountStateSuspended: true,
}

func ValidateOpenAccounts(req request.OpenAccountsRequest) error {
	errors := make(map[string]string)

	if err := ValidateUUID(req.InvestorID); err != nil {
		errors["investorId"] = "investor id must be a valid UUID"
	}
	if err := ValidateUUID(req.FundID); err != nil {
		errors["fundId"] = "fund id must be a valid UUID"
	}

	// optional, generated when empty
	if len(req.AccountNumber) > 20 {
		errors["accountNumber"] = "account number must be 20 characters or less"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}

func ValidateUpdateAccountState(req request.UpdateAccountStateRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.State) == "" {
		errors["state"] = "state is required"
	} else if !ValidAccountState[req.State] {
		errors["state"] = fmt.Sprintf("invalid account state: %s", req.State)
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}
