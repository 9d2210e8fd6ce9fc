package models

import "time"

// PointsAwardEvent asks for loyalty points to be minted for a settled payment
type PointsAwardEvent struct {
	PaymentID     string    `json:"payment_id"`
	UserAddress   string    `json:"user_address"`
	Points        string    `json:"points"`
	SettlementTx  string    `json:"settlement_tx"`
	SettledAmount string    `json:"settled_amount"`
	EmittedAt     time.Time `json:"emitted_at"`
}

// ReconcileEvent flags a settlement whose on-chain outcome could not be confirmed
type ReconcileEvent struct {
	PaymentID string    `json:"payment_id"`
	TxHash    string    `json:"tx_hash"`
	Reason    string    `json:"reason"`
	EmittedAt time.Time `json:"emitted_at"`
}
