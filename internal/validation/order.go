package validation

import (
	"fmt"

	"github.com/solasterfm/fund-engine/internal/api/request"
	"github.com/solasterfm/fund-engine/internal/model"
)

var ValidOrderSide = map[string]bool{
	model.OrderSideSubscription: true, model.OrderSideRedemption: true,
}

var ValidRedemptionType = map[string]bool{
	model.RedemptionTypePartial: true, model.RedemptionTypeTotal: true,
}

func ValidateCreateOrder(req request.CreateOrderRequest) error {
	errors := make(map[string]string)

	if !ValidOrderSide[req.Side] {
		errors["side"] = fmt.Sprintf("invalid order side: %s", req.Side)
	}

	if err := ValidateUUID(req.InvestorID); err != nil {
		errors["investorId"] = "investor id must be a valid UUID"
	}
	if err := ValidateUUID(req.FundID); err != nil {
		errors["fundId"] = "fund id must be a valid UUID"
	}

	switch req.Side {
	case model.OrderSideSubscription:
		if req.RequestedAmount <= 0 {
			errors["requestedAmount"] = "requested amount must be positive"
		}
		if req.RedemptionType != "" {
			errors["redemptionType"] = "redemption type is not valid on a subscription"
		}
	case model.OrderSideRedemption:
		if req.RedemptionType != "" && !ValidRedemptionType[req.RedemptionType] {
			errors["redemptionType"] = fmt.Sprintf("invalid redemption type: %s", req.RedemptionType)
		}
		// A total redemption resolves its unit count at submit time.
		if req.RedemptionType != model.RedemptionTypeTotal && req.RequestedUnits <= 0 {
			errors["requestedUnits"] = "requested units must be positive"
		}
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}
