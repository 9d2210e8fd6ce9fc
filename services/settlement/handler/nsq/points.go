package nsq

import (
	"context"
	"errors"
	"fmt"

	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/piresc/cardsettle/internal/pkg/logger"
	"github.com/piresc/cardsettle/internal/pkg/models"
	nrpkg "github.com/piresc/cardsettle/internal/pkg/newrelic"
	nsqpkg "github.com/piresc/cardsettle/internal/pkg/nsq"
	"github.com/piresc/cardsettle/services/settlement"
)

// PointsHandler consumes points award events and mints them on chain
type PointsHandler struct {
	settlementUC settlement.SettlementUC
	cfg          models.NSQConfig
	nrApp        *newrelic.Application
	consumer     *nsqpkg.Consumer
}

// NewPointsHandler creates a new points NSQ handler
func NewPointsHandler(settlementUC settlement.SettlementUC, cfg models.NSQConfig, nrApp *newrelic.Application) *PointsHandler {
	return &PointsHandler{
		settlementUC: settlementUC,
		cfg:          cfg,
		nrApp:        nrApp,
	}
}

// InitConsumers subscribes to the points award topic
func (h *PointsHandler) InitConsumers() error {
	logger.Info("Initializing NSQ consumers for settlement service",
		logger.String("topic", h.cfg.PointsTopic),
		logger.String("channel", h.cfg.PointsChannel))

	consumer, err := nsqpkg.NewConsumer(h.cfg.PointsTopic, h.cfg.PointsChannel, h.cfg.NSQDAddress, h.cfg.LookupdAddress, h.HandlePointsAward)
	if err != nil {
		return fmt.Errorf("failed to create points consumer: %w", err)
	}
	h.consumer = consumer
	return nil
}

// Stop drains the consumer
func (h *PointsHandler) Stop() {
	if h.consumer != nil {
		h.consumer.Stop()
	}
}

// HandlePointsAward processes one points award message. Every outcome is
// logged and the message finished, so a failed mint is never retried blindly.
func (h *PointsHandler) HandlePointsAward(body []byte) error {
	ctx, end := nrpkg.StartBackgroundTransaction(context.Background(), h.nrApp, "NSQ.Settlement.AwardPoints")
	defer end()

	var event models.PointsAwardEvent
	if err := nsqpkg.UnmarshalMessage(body, &event); err != nil {
		logger.ErrorCtx(ctx, "Dropping malformed points award event",
			logger.Int("message_size", len(body)),
			logger.Err(err))
		return nil
	}

	if txn := nrpkg.FromContext(ctx); txn != nil {
		nrpkg.AddTransactionAttribute(txn, "payment.id", event.PaymentID)
		nrpkg.AddTransactionAttribute(txn, "points", event.Points)
	}

	txHash, err := h.settlementUC.AwardPoints(ctx, event)
	switch {
	case errors.Is(err, settlement.ErrPointsAlreadyAwarded):
		logger.InfoCtx(ctx, "Points already awarded for payment",
			logger.String("payment_id", event.PaymentID))
	case errors.Is(err, settlement.ErrBroadcastUnknown):
		logger.ErrorCtx(ctx, "Points award outcome unknown",
			logger.String("payment_id", event.PaymentID),
			logger.String("user_address", event.UserAddress),
			logger.String("points", event.Points),
			logger.String("tx_hash", txHash),
			logger.Err(err))
	case err != nil:
		nrpkg.NoticeTransactionError(nrpkg.FromContext(ctx), err)
		logger.ErrorCtx(ctx, "Points award failed",
			logger.String("payment_id", event.PaymentID),
			logger.String("user_address", event.UserAddress),
			logger.String("points", event.Points),
			logger.String("settlement_tx", event.SettlementTx),
			logger.Err(err))
	default:
		logger.InfoCtx(ctx, "Points awarded",
			logger.String("payment_id", event.PaymentID),
			logger.String("user_address", event.UserAddress),
			logger.String("points", event.Points),
			logger.String("tx_hash", txHash))
	}

	return nil
}
