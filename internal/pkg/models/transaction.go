package models

import (
	"time"

	"github.com/google/uuid"
)

// Transfer is an audit record of any on-chain value movement from or to a user
type Transfer struct {
	ID              uuid.UUID `json:"id" db:"id"`
	UserID          uuid.UUID `json:"user_id" db:"user_id"`
	AssetSymbol     string    `json:"asset_symbol" db:"asset_symbol"`
	AmountMinor     string    `json:"amount_minor" db:"amount_minor"`
	Decimals        int       `json:"decimals" db:"decimals"`
	SenderAddress   string    `json:"sender_address" db:"sender_address"`
	ReceiverAddress string    `json:"receiver_address" db:"receiver_address"`
	TxHash          string    `json:"tx_hash" db:"tx_hash"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
}
