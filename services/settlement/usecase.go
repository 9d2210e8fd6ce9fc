package settlement

import (
	"context"

	"github.com/google/uuid"
	"github.com/piresc/cardsettle/internal/pkg/models"
	"github.com/piresc/cardsettle/internal/pkg/webhook"
)

// SettlementUC defines the interface for settlement business logic
// go:generate mockgen -destination=../mocks/mock_usecase.go -package=mocks github.com/piresc/cardsettle/services/settlement SettlementUC
type SettlementUC interface {
	// Authorize decides a started payment against on-chain allowance and balance
	Authorize(ctx context.Context, payment *models.Payment) models.AuthorizationDecision
	ExecutePayment(ctx context.Context, paymentID uuid.UUID) (*models.ExecutionResult, error)
	// HandleWebhookEvent drives the payment lifecycle for one verified event.
	// A nil decision means the event is acknowledged with "ok".
	HandleWebhookEvent(ctx context.Context, event webhook.Event) (*models.DecisionResponse, error)
	GetPaymentDetails(ctx context.Context, paymentID uuid.UUID) (*models.PaymentDetails, error)
	AwardPoints(ctx context.Context, event models.PointsAwardEvent) (string, error)
}
