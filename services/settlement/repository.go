package settlement

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/piresc/cardsettle/internal/pkg/models"
)

// LedgerRepo defines the interface for payment ledger data access operations
// go:generate mockgen -destination=../mocks/mock_repository.go -package=mocks github.com/piresc/cardsettle/services/settlement LedgerRepo,CacheRepo
type LedgerRepo interface {
	GetCardByExternalID(ctx context.Context, externalID string) (*models.Card, error)
	GetCardByID(ctx context.Context, id uuid.UUID) (*models.Card, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)

	// UpsertPayment inserts the payment or fetches the row already stored for
	// its external id. The bool reports whether this call created the row.
	UpsertPayment(ctx context.Context, payment *models.Payment) (*models.Payment, bool, error)
	// FinalizePayment moves a started payment to its final status. A payment
	// that is already final is returned unchanged with false.
	FinalizePayment(ctx context.Context, params models.FinalizePaymentParams) (*models.Payment, bool, error)
	GetPaymentByID(ctx context.Context, id uuid.UUID) (*models.Payment, error)
	GetPaymentByExternalID(ctx context.Context, externalID string) (*models.Payment, error)

	// ClaimExecution takes the per-payment execution claim. When another
	// caller holds it the existing claim is returned with false.
	ClaimExecution(ctx context.Context, paymentID uuid.UUID) (*models.ExecutionClaim, bool, error)
	ReleaseExecutionClaim(ctx context.Context, paymentID uuid.UUID) error
	UpdateExecutionClaim(ctx context.Context, paymentID uuid.UUID, status models.ExecutionStatus, txHash, errMsg string) error
	GetExecutionClaim(ctx context.Context, paymentID uuid.UUID) (*models.ExecutionClaim, error)
	RecordExecution(ctx context.Context, execution *models.Execution, transfer *models.Transfer) error
	GetExecutionByPaymentID(ctx context.Context, paymentID uuid.UUID) (*models.Execution, error)
}

// CacheRepo defines the interface for Redis backed settlement state
type CacheRepo interface {
	// GetRate returns nil without error on a miss
	GetRate(ctx context.Context, base, quote string) (*models.FXRate, error)
	SetRate(ctx context.Context, rate models.FXRate, ttl time.Duration) error
	// ClaimPointsAward reports whether this caller won the award for paymentID
	ClaimPointsAward(ctx context.Context, paymentID string, ttl time.Duration) (bool, error)
	ReleasePointsAward(ctx context.Context, paymentID string) error
}
