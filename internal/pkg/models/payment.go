package models

import (
	"math/big"
	"time"

	"github.com/google/uuid"
)

// PaymentStatus represents the status of a card authorization lifecycle
type PaymentStatus string

const (
	PaymentStatusStarted   PaymentStatus = "started"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusCancelled PaymentStatus = "cancelled"
)

// Payment is one card authorization from request to finalization.
// Amounts are minor units encoded as base-10 integer strings.
type Payment struct {
	ID                  uuid.UUID     `json:"id" db:"id"`
	CardID              uuid.UUID     `json:"card_id" db:"card_id"`
	ExternalID          string        `json:"external_id" db:"external_id"`
	ProgramAmountMinor  string        `json:"program_amount_minor" db:"program_amount_minor"`
	ProgramCurrency     string        `json:"program_currency" db:"program_currency"`
	MerchantName        string        `json:"merchant_name" db:"merchant_name"`
	MerchantAmountMinor string        `json:"merchant_amount_minor" db:"merchant_amount_minor"`
	MerchantCurrency    string        `json:"merchant_currency" db:"merchant_currency"`
	Status              PaymentStatus `json:"status" db:"status"`
	CreatedAt           time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt           time.Time     `json:"updated_at" db:"updated_at"`
}

// IsFinal reports whether the payment has left the started state
func (p *Payment) IsFinal() bool {
	return p.Status == PaymentStatusCompleted || p.Status == PaymentStatusCancelled
}

// ProgramAmount parses the program amount. Unparseable or negative values yield zero.
func (p *Payment) ProgramAmount() *big.Int {
	amount, ok := new(big.Int).SetString(p.ProgramAmountMinor, 10)
	if !ok || amount.Sign() < 0 {
		return new(big.Int)
	}
	return amount
}

// FinalizePaymentParams carries the final values of an authorization
type FinalizePaymentParams struct {
	ExternalID          string
	Status              PaymentStatus
	ProgramAmountMinor  string
	ProgramCurrency     string
	MerchantName        string
	MerchantAmountMinor string
	MerchantCurrency    string
}

// ExecutionStatus is the state of a settlement attempt for a payment
type ExecutionStatus string

const (
	ExecutionStatusPending  ExecutionStatus = "pending_execution"
	ExecutionStatusExecuted ExecutionStatus = "executed"
	ExecutionStatusFailed   ExecutionStatus = "failed"
	ExecutionStatusUnknown  ExecutionStatus = "unknown"
)

// ExecutionClaim is the per-payment mutex row taken before any chain call
type ExecutionClaim struct {
	PaymentID uuid.UUID       `json:"payment_id" db:"payment_id"`
	Status    ExecutionStatus `json:"status" db:"status"`
	TxHash    *string         `json:"tx_hash,omitempty" db:"tx_hash"`
	Error     *string         `json:"error,omitempty" db:"error"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt time.Time       `json:"updated_at" db:"updated_at"`
}

// Hash returns the claim tx hash or an empty string
func (c *ExecutionClaim) Hash() string {
	if c == nil || c.TxHash == nil {
		return ""
	}
	return *c.TxHash
}

// Execution is the on-chain settlement of exactly one payment
type Execution struct {
	ID            uuid.UUID `json:"id" db:"id"`
	PaymentID     uuid.UUID `json:"payment_id" db:"payment_id"`
	AssetSymbol   string    `json:"asset_symbol" db:"asset_symbol"`
	AmountMinor   string    `json:"amount_minor" db:"amount_minor"`
	AssetDecimals int       `json:"asset_decimals" db:"asset_decimals"`
	TxHash        string    `json:"tx_hash" db:"tx_hash"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}

// AmountSummary is a currency and minor-unit amount pair
type AmountSummary struct {
	Currency    string `json:"currency"`
	AmountMinor string `json:"amountMinor"`
}

// MerchantSummary describes the merchant side of a payment
type MerchantSummary struct {
	Name        string `json:"name"`
	Currency    string `json:"currency"`
	AmountMinor string `json:"amountMinor"`
}

// AssetSummary describes the settlement asset movement
type AssetSummary struct {
	Address     string `json:"address"`
	AmountMinor string `json:"amountMinor"`
}

// ExecutionResult is returned by a successful settlement
type ExecutionResult struct {
	OK          bool            `json:"ok"`
	TxHash      string          `json:"txHash"`
	UserAddress string          `json:"userAddress"`
	Program     AmountSummary   `json:"program"`
	Merchant    MerchantSummary `json:"merchant"`
	USDC        AssetSummary    `json:"usdc"`
	Conversion  Conversion      `json:"conversion"`
	Points      string          `json:"points,omitempty"`
}

// PaymentDetails is the operator view of a payment and its settlement state
type PaymentDetails struct {
	Payment   *Payment        `json:"payment"`
	Claim     *ExecutionClaim `json:"claim,omitempty"`
	Execution *Execution      `json:"execution,omitempty"`
}

// ExecutePaymentRequest is the body of the internal settlement trigger
type ExecutePaymentRequest struct {
	PaymentID string `json:"paymentId"`
}
