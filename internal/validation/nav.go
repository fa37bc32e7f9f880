package validation

import (
	"github.com/solasterfm/fund-engine/internal/api/request"
)

func ValidatePublishNAV(req request.PublishNAVRequest) error {
	errors := make(map[string]string)

	if err := ValidateUUID(req.FundID); err != nil {
		errors["fundId"] = "fund id must be a valid UUID"
	}

	if req.Date == "" {
		errors["date"] = "date is required"
	} else if _, err := ParseDate(req.Date); err != nil {
		errors["date"] = "date must be YYYY-MM-DD"
	}

	if req.Value <= 0 {
		errors["value"] = "nav value must be positive"
	}

	if len(req.ShareClass) > 20 {
		errors["shareClass"] = "share class must be 20 characters or less"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}
