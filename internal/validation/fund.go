package validation

import (
	"fmt"
	"strings"

	"github.com/solasterfm/fund-engine/internal/api/request"
	"github.com/solasterfm/fund-engine/internal/model"
)

var ValidRedemptionDelay = map[string]bool{
	model.RedemptionDelaySameDay: true,
	model.RedemptionDelayNextDay: true,
	model.RedemptionDelayTwoDays: true,
}

var ValidFundState = map[string]bool{
	model.FundStateDraft: true, model.FundStateActive: true, model.FundStateSuspended: true,
}

func ValidateCreateFund(req request.CreateFundRequest) error {
	errors := make(map[string]string)

	// Required field
	if strings.TrimSpace(req.Name) == "" {
		errors["name"] = "name is required"
	} else if len(req.Name) > 100 {
		errors["name"] = "name must be 100 characters or less"
	}

	if strings.TrimSpace(req.Currency) == "" {
		errors["currency"] = "currency is required"
	} else if len(req.Currency) != 3 {
		errors["currency"] = "currency must be a 3-letter code (USD, EUR)"
	}

	if req.SubscriptionFeeRate < 0 || req.SubscriptionFeeRate > 100 {
		errors["subscriptionFeeRate"] = "subscription fee rate must be between 0 and 100"
	}
	if req.RedemptionFeeRate < 0 || req.RedemptionFeeRate > 100 {
		errors["redemptionFeeRate"] = "redemption fee rate must be between 0 and 100"
	}

	// optional, defaults to T2
	if req.RedemptionDelay != "" && !ValidRedemptionDelay[req.RedemptionDelay] {
		errors["redemptionDelay"] = fmt.Sprintf("invalid redemption delay: %s", req.RedemptionDelay)
	}

	if len(req.ShareClass) > 20 {
		errors["shareClass"] = "share class must be 20 characters or less"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}

func ValidateUpdateFundState(req request.UpdateFundStateRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.State) == "" {
		errors["state"] = "state is required"
	} else if !ValidFundState[req.State] {
		errors["state"] = fmt.Sprintf("invalid fund state: %s", req.State)
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}
