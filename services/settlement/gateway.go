package settlement

import (
	"context"
	"math/big"

	"github.com/piresc/cardsettle/internal/pkg/models"
)

// ChainGW defines the interface for settlement chain operations.
// Amounts are minor units of the settlement asset.
// go:generate mockgen -destination=../mocks/mock_gateway.go -package=mocks github.com/piresc/cardsettle/services/settlement ChainGW,RateGW,EventGW
type ChainGW interface {
	ReadAllowance(ctx context.Context, owner string) (*big.Int, error)
	ReadBalance(ctx context.Context, owner string) (*big.Int, error)
	// PullTransfer returns once the transfer is broadcast. On ErrBroadcastUnknown
	// the returned hash identifies the transaction that may have been sent.
	PullTransfer(ctx context.Context, owner string, amount *big.Int) (string, error)
	WaitForConfirmation(ctx context.Context, txHash string) error
	AwardPoints(ctx context.Context, to string, amount *big.Int) (string, error)
	TokenAddress() string
	TreasuryAddress() string
}

// RateGW defines the interface for exchange-rate lookups
type RateGW interface {
	GetRate(ctx context.Context, base, quote string) (models.FXRate, error)
}

// EventGW defines the interface for settlement event publishing
type EventGW interface {
	PublishPointsAward(ctx context.Context, event models.PointsAwardEvent) error
	PublishReconcile(ctx context.Context, event models.ReconcileEvent) error
}
