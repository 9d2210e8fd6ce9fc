package models

import (
	"time"

	"github.com/google/uuid"
)

// CardStatus represents the lifecycle status of an issued card
type CardStatus string

const (
	CardStatusActive   CardStatus = "active"
	CardStatusInactive CardStatus = "inactive"
	CardStatusDeleted  CardStatus = "deleted"
)

// User represents a wallet holder. Only the wallet address matters to settlement.
type User struct {
	ID              uuid.UUID `json:"id" db:"id"`
	WalletAddress   string    `json:"wallet_address" db:"wallet_address"`
	DisplayName     string    `json:"display_name" db:"display_name"`
	BalanceSnapshot string    `json:"balance_snapshot" db:"balance_snapshot"`
	Provider        string    `json:"provider" db:"provider"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`
}

// Card represents a payment card bound to one user
type Card struct {
	ID         uuid.UUID  `json:"id" db:"id"`
	UserID     uuid.UUID  `json:"user_id" db:"user_id"`
	ExternalID string     `json:"external_id" db:"external_id"`
	Status     CardStatus `json:"status" db:"status"`
	CreatedAt  time.Time  `json:"created_at" db:"created_at"`
}
