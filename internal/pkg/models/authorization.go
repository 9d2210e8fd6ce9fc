package models

import "math/big"

// DeclineReason explains why an authorization was declined
type DeclineReason string

const (
	DeclineCardNotFound          DeclineReason = "card_not_found"
	DeclineUserNotFound          DeclineReason = "user_not_found"
	DeclineInsufficientAllowance DeclineReason = "insufficient_allowance"
	DeclineInsufficientBalance   DeclineReason = "insufficient_balance"
	DeclineChainUnavailable      DeclineReason = "chain_unavailable"
	DeclineRateUnavailable       DeclineReason = "rate_unavailable"
	DeclineCardInactive          DeclineReason = "card_inactive"
	DeclineInvalidAmount         DeclineReason = "invalid_amount"
	DeclineLedgerUnavailable     DeclineReason = "ledger_unavailable"
)

// AuthorizationDecision is the approve or decline answer for a card authorization
type AuthorizationDecision struct {
	Approved bool
	Reason   DeclineReason
	// PaymentID is empty when the decline happened before a payment existed
	PaymentID string
	Required  *big.Int
}

// Approve builds an approving decision
func Approve(paymentID string, required *big.Int) AuthorizationDecision {
	return AuthorizationDecision{Approved: true, PaymentID: paymentID, Required: required}
}

// Decline builds a declining decision
func Decline(paymentID string, reason DeclineReason) AuthorizationDecision {
	return AuthorizationDecision{Approved: false, Reason: reason, PaymentID: paymentID}
}

// DecisionMetadata is the optional metadata returned to the card network
type DecisionMetadata struct {
	Reason DeclineReason `json:"reason"`
}

// DecisionResponse is the JSON body answered to an authorization request
type DecisionResponse struct {
	Approved bool              `json:"approved"`
	Metadata *DecisionMetadata `json:"metadata,omitempty"`
}

// Response converts the decision into the card network response body
func (d AuthorizationDecision) Response() DecisionResponse {
	if d.Approved {
		return DecisionResponse{Approved: true}
	}
	return DecisionResponse{Approved: false, Metadata: &DecisionMetadata{Reason: d.Reason}}
}
