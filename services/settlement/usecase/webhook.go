package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/piresc/cardsettle/internal/pkg/logger"
	"github.com/piresc/cardsettle/internal/pkg/models"
	"github.com/piresc/cardsettle/internal/pkg/webhook"
	"github.com/piresc/cardsettle/services/settlement"
)

// HandleWebhookEvent drives the payment lifecycle for one verified event
func (uc *settlementUC) HandleWebhookEvent(ctx context.Context, event webhook.Event) (*models.DecisionResponse, error) {
	switch e := event.(type) {
	case webhook.AuthorizationRequest:
		resp := uc.handleAuthorizationRequest(ctx, e)
		return &resp, nil
	case webhook.AuthorizationCreated:
		return nil, uc.handleAuthorizationCreated(ctx, e)
	case webhook.Ignored:
		logger.DebugCtx(ctx, "Ignoring webhook event",
			logger.String("event_id", e.ID),
			logger.String("event_type", e.EventType))
		return nil, nil
	default:
		return nil, fmt.Errorf("unsupported webhook event %T", event)
	}
}

// handleAuthorizationRequest answers the card network synchronously. It never settles.
func (uc *settlementUC) handleAuthorizationRequest(ctx context.Context, e webhook.AuthorizationRequest) models.DecisionResponse {
	card, err := uc.ledger.GetCardByExternalID(ctx, e.CardExternalID)
	if err != nil {
		reason := models.DeclineLedgerUnavailable
		if errors.Is(err, settlement.ErrCardNotFound) {
			reason = models.DeclineCardNotFound
		}
		logger.InfoCtx(ctx, "Authorization declined before payment creation",
			logger.String("external_id", e.ExternalID),
			logger.String("card_external_id", e.CardExternalID),
			logger.String("reason", string(reason)),
			logger.Err(err))
		return models.Decline("", reason).Response()
	}

	payment, created, err := uc.ledger.UpsertPayment(ctx, &models.Payment{
		CardID:              card.ID,
		ExternalID:          e.ExternalID,
		ProgramAmountMinor:  e.ProgramAmountMinor,
		ProgramCurrency:     e.ProgramCurrency,
		MerchantName:        e.MerchantName,
		MerchantAmountMinor: e.MerchantAmountMinor,
		MerchantCurrency:    e.MerchantCurrency,
		Status:              models.PaymentStatusStarted,
	})
	if err != nil {
		logger.ErrorCtx(ctx, "Failed to store payment for authorization",
			logger.String("external_id", e.ExternalID),
			logger.Err(err))
		return models.Decline("", models.DeclineLedgerUnavailable).Response()
	}

	logger.InfoCtx(ctx, "Authorization request received",
		logger.String("payment_id", payment.ID.String()),
		logger.String("external_id", e.ExternalID),
		logger.Bool("created", created))

	// A redelivered request for a finalized payment repeats the final answer
	if payment.IsFinal() {
		if payment.Status == models.PaymentStatusCompleted {
			return models.DecisionResponse{Approved: true}
		}
		return models.DecisionResponse{Approved: false}
	}

	return uc.Authorize(ctx, payment).Response()
}

// handleAuthorizationCreated finalizes the payment and settles approved ones.
// Settlement failures are logged, never returned.
func (uc *settlementUC) handleAuthorizationCreated(ctx context.Context, e webhook.AuthorizationCreated) error {
	status := models.PaymentStatusCancelled
	if e.Approved {
		status = models.PaymentStatusCompleted
	}

	payment, changed, err := uc.ledger.FinalizePayment(ctx, models.FinalizePaymentParams{
		ExternalID:          e.ExternalID,
		Status:              status,
		ProgramAmountMinor:  e.ProgramAmountMinor,
		ProgramCurrency:     e.ProgramCurrency,
		MerchantName:        e.MerchantName,
		MerchantAmountMinor: e.MerchantAmountMinor,
		MerchantCurrency:    e.MerchantCurrency,
	})
	if err != nil {
		if errors.Is(err, settlement.ErrPaymentNotFound) {
			logger.WarnCtx(ctx, "Authorization created for unknown payment",
				logger.String("external_id", e.ExternalID))
			return nil
		}
		return fmt.Errorf("finalize payment: %w", err)
	}

	if !changed {
		logger.InfoCtx(ctx, "Payment already finalized",
			logger.String("payment_id", payment.ID.String()),
			logger.String("status", string(payment.Status)))
	}

	if payment.Status != models.PaymentStatusCompleted {
		return nil
	}

	result, err := uc.ExecutePayment(ctx, payment.ID)
	if err != nil {
		var dup *settlement.DuplicateExecutionError
		if errors.As(err, &dup) {
			logger.InfoCtx(ctx, "Settlement skipped for duplicate delivery",
				logger.String("payment_id", payment.ID.String()),
				logger.String("tx_hash", dup.TxHash))
			return nil
		}
		logger.ErrorCtx(ctx, "Settlement failed after authorization",
			logger.String("payment_id", payment.ID.String()),
			logger.Err(err))
		return nil
	}

	logger.InfoCtx(ctx, "Settlement completed from webhook",
		logger.String("payment_id", payment.ID.String()),
		logger.String("tx_hash", result.TxHash))
	return nil
}
