package validation

import (
	"fmt"
	"strings"

	"github.com/solasterfm/fund-engine/internal/api/request"
	"github.com/solasterfm/fund-engine/internal/model"
)

var ValidKycStatus = map[string]bool{
	model.KycStatusPending: true, model.KycStatusCompliant: true, model.KycStatusRejected: true,
}

func ValidateCreateInvestor(req request.CreateInvestorRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.Name) == "" {
		errors["name"] = "name is required"
	} else if len(req.Name) > 100 {
		errors["name"] = "name must be 100 characters or less"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}

func ValidateUpdateKycStatus(req request.UpdateKycStatusRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.KycStatus) == "" {
		errors["kycStatus"] = "kyc status is required"
	} else if !ValidKycStatus[req.KycStatus] {
		errors["kycStatus"] = fmt.Sprintf("invalid kyc status: %s", req.KycStatus)
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}
