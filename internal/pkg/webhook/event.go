// Package webhook verifies and parses card issuer webhook deliveries into a
// closed set of typed events.
package webhook

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"strings"
)

const (
	TypeAuthorizationRequest = "authorization.request"
	TypeAuthorizationCreated = "authorization.created"
)

// ErrMalformed is returned for bodies that are not a valid event envelope
var ErrMalformed = errors.New("webhook: malformed event")

// Event is one of AuthorizationRequest, AuthorizationCreated or Ignored
type Event interface {
	EventID() string
	Type() string
	sealed()
}

// Authorization holds the amounts and merchant of one card authorization.
// Amounts are minor units as base-10 integer strings.
type Authorization struct {
	ExternalID          string
	CardExternalID      string
	ProgramAmountMinor  string
	ProgramCurrency     string
	MerchantName        string
	MerchantAmountMinor string
	MerchantCurrency    string
}

// AuthorizationRequest asks for a real-time approve or decline
type AuthorizationRequest struct {
	ID string
	Authorization
}

// AuthorizationCreated finalizes an authorization with its final amounts
type AuthorizationCreated struct {
	ID       string
	Approved bool
	Authorization
}

// Ignored is any event type settlement does not act on
type Ignored struct {
	ID        string
	EventType string
}

func (e AuthorizationRequest) EventID() string { return e.ID }
func (e AuthorizationRequest) Type() string    { return TypeAuthorizationRequest }
func (AuthorizationRequest) sealed()           {}

func (e AuthorizationCreated) EventID() string { return e.ID }
func (e AuthorizationCreated) Type() string    { return TypeAuthorizationCreated }
func (AuthorizationCreated) sealed()           {}

func (e Ignored) EventID() string { return e.ID }
func (e Ignored) Type() string    { return e.EventType }
func (Ignored) sealed()           {}

type envelope struct {
	ID   string          `json:"id"`
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

type authorizationData struct {
	ID               string      `json:"id"`
	CardID           string      `json:"cardId"`
	Amount           json.Number `json:"amount"`
	Currency         string      `json:"currency"`
	MerchantName     string      `json:"merchantName"`
	MerchantAmount   json.Number `json:"merchantAmount"`
	MerchantCurrency string      `json:"merchantCurrency"`
	Approved         *bool       `json:"approved"`
}

// Parse validates the envelope and maps it to a typed event.
// Unknown types become Ignored without inspecting data.
func Parse(body []byte) (Event, error) {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if env.Type == "" {
		return nil, fmt.Errorf("%w: missing type", ErrMalformed)
	}

	switch env.Type {
	case TypeAuthorizationRequest:
		auth, _, err := parseAuthorization(env.Data, true)
		if err != nil {
			return nil, err
		}
		return AuthorizationRequest{ID: env.ID, Authorization: auth}, nil

	case TypeAuthorizationCreated:
		auth, approved, err := parseAuthorization(env.Data, false)
		if err != nil {
			return nil, err
		}
		return AuthorizationCreated{ID: env.ID, Approved: approved, Authorization: auth}, nil

	default:
		return Ignored{ID: env.ID, EventType: env.Type}, nil
	}
}

func parseAuthorization(raw json.RawMessage, requireCard bool) (Authorization, bool, error) {
	if len(bytes.TrimSpace(raw)) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return Authorization{}, false, fmt.Errorf("%w: missing data", ErrMalformed)
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var data authorizationData
	if err := dec.Decode(&data); err != nil {
		return Authorization{}, false, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	if strings.TrimSpace(data.ID) == "" {
		return Authorization{}, false, fmt.Errorf("%w: missing authorization id", ErrMalformed)
	}
	if requireCard && strings.TrimSpace(data.CardID) == "" {
		return Authorization{}, false, fmt.Errorf("%w: missing card id", ErrMalformed)
	}

	amount, err := minorUnits("amount", data.Amount)
	if err != nil {
		return Authorization{}, false, err
	}
	merchantAmount, err := minorUnits("merchantAmount", data.MerchantAmount)
	if err != nil {
		return Authorization{}, false, err
	}

	approved := data.Approved != nil && *data.Approved

	return Authorization{
		ExternalID:          data.ID,
		CardExternalID:      data.CardID,
		ProgramAmountMinor:  amount,
		ProgramCurrency:     strings.ToUpper(data.Currency),
		MerchantName:        data.MerchantName,
		MerchantAmountMinor: merchantAmount,
		MerchantCurrency:    strings.ToUpper(data.MerchantCurrency),
	}, approved, nil
}

// minorUnits accepts a non-negative integer, as a JSON number or string.
// A missing value is zero.
func minorUnits(field string, n json.Number) (string, error) {
	if n == "" {
		return "0", nil
	}
	v, ok := new(big.Int).SetString(n.String(), 10)
	if !ok || v.Sign() < 0 {
		return "", fmt.Errorf("%w: %s must be a non-negative integer, got %q", ErrMalformed, field, n.String())
	}
	return v.String(), nil
}
