package usecase

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/piresc/cardsettle/internal/pkg/logger"
	"github.com/piresc/cardsettle/internal/pkg/models"
	"github.com/piresc/cardsettle/services/settlement"
)

// pointsGuardTTL outlives any realistic redelivery window of the queue
const pointsGuardTTL = 30 * 24 * time.Hour

// AwardPoints mints points for a settled payment at most once per payment id
func (uc *settlementUC) AwardPoints(ctx context.Context, event models.PointsAwardEvent) (string, error) {
	points, ok := new(big.Int).SetString(event.Points, 10)
	if !ok || points.Sign() <= 0 {
		return "", fmt.Errorf("invalid points amount %q", event.Points)
	}
	if event.PaymentID == "" || event.UserAddress == "" {
		return "", errors.New("points award needs a payment id and a user address")
	}

	won, err := uc.cache.ClaimPointsAward(ctx, event.PaymentID, pointsGuardTTL)
	if err != nil {
		return "", err
	}
	if !won {
		return "", settlement.ErrPointsAlreadyAwarded
	}

	txHash, err := uc.chainGW.AwardPoints(ctx, event.UserAddress, points)
	if err != nil {
		// A possibly broadcast award keeps its guard
		if !errors.Is(err, settlement.ErrBroadcastUnknown) {
			if releaseErr := uc.cache.ReleasePointsAward(ctx, event.PaymentID); releaseErr != nil {
				logger.WarnCtx(ctx, "Failed to release points award guard",
					logger.String("payment_id", event.PaymentID),
					logger.Err(releaseErr))
			}
		}
		return txHash, fmt.Errorf("award points: %w", err)
	}

	return txHash, nil
}
