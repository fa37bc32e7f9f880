package service

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/fernet/fernet-go"

	"github.com/solasterfm/fund-engine/internal/apperrors"
)

// confirmTokenTTL bounds how long an operator has to confirm a drifted NAV
// before the token expires and validate must be re-run.
const confirmTokenTTL = 15 * time.Minute

// confirmPayload binds a confirmation token to one order and one specific NAV.
// If the NAV moves again before the operator confirms, the token no longer
// matches and a fresh drift cycle starts.
type confirmPayload struct {
	OrderID string  `json:"orderId"`
	NAV     float64 `json:"nav"`
	NavDate string  `json:"navDate"`
}

// mintConfirmToken issues a signed token acknowledging the given NAV for the
// given order.
func mintConfirmToken(key *fernet.Key, orderID string, nav float64, navDate time.Time) (string, error) {
	payload, err := json.Marshal(confirmPayload{
		OrderID: orderID,
		NAV:     nav,
		NavDate: navDate.Format("2006-01-02"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode confirmation payload: %w", err)
	}

	token, err := fernet.EncryptAndSign(payload, key)
	if err != nil {
		return "", fmt.Errorf("failed to sign confirmation token: %w", err)
	}

	return string(token), nil
}

// verifyConfirmToken checks signature and TTL and returns the payload the
// token was minted for. A tampered, expired, or foreign token yields
// ErrInvalidConfirmToken.
func verifyConfirmToken(key *fernet.Key, token string) (confirmPayload, error) {
	payload := fernet.VerifyAndDecrypt([]byte(token), confirmTokenTTL, []*fernet.Key{key})
	if payload == nil {
		return confirmPayload{}, apperrors.ErrInvalidConfirmToken
	}

	var decoded confirmPayload
	if err := json.Unmarshal(payload, &decoded); err != nil {
		return confirmPayload{}, apperrors.ErrInvalidConfirmToken
	}

	return decoded, nil
}
