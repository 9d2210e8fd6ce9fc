package usecase

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"
	"github.com/piresc/cardsettle/internal/pkg/logger"
	"github.com/piresc/cardsettle/internal/pkg/models"
	nrpkg "github.com/piresc/cardsettle/internal/pkg/newrelic"
	"github.com/piresc/cardsettle/services/settlement"
)

const pointsPublishTimeout = 10 * time.Second

// ExecutePayment settles a payment on chain at most once.
//
// The execution claim is taken before any chain call. It is released only when
// nothing was broadcast, so a later retry is possible. Once a transaction may
// exist the claim stays and carries its hash.
func (uc *settlementUC) ExecutePayment(ctx context.Context, paymentID uuid.UUID) (*models.ExecutionResult, error) {
	segment := nrpkg.StartSegment(nrpkg.FromContext(ctx), "Settlement.ExecutePayment")
	if segment != nil {
		defer segment.End()
	}

	payment, err := uc.ledger.GetPaymentByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	switch payment.Status {
	case models.PaymentStatusCompleted:
	case models.PaymentStatusCancelled:
		return nil, settlement.ErrPaymentCancelled
	default:
		// Only the final amount is settled
		return nil, fmt.Errorf("%w: status %s", settlement.ErrPaymentNotFinal, payment.Status)
	}

	claim, won, err := uc.ledger.ClaimExecution(ctx, paymentID)
	if err != nil {
		return nil, fmt.Errorf("claim execution: %w", err)
	}
	if !won {
		logger.InfoCtx(ctx, "Payment already claimed for execution",
			logger.String("payment_id", paymentID.String()),
			logger.String("status", string(claim.Status)),
			logger.String("tx_hash", claim.Hash()))
		return nil, &settlement.DuplicateExecutionError{
			PaymentID: paymentID.String(),
			TxHash:    claim.Hash(),
			Status:    claim.Status,
		}
	}

	// From here the claim is ours; a dropped caller must not strand it
	ctx = context.WithoutCancel(ctx)

	card, user, _, err := uc.resolveOwner(ctx, payment)
	if err != nil {
		uc.releaseClaim(ctx, paymentID, err)
		return nil, err
	}

	rate, err := uc.rateGW.GetRate(ctx, payment.ProgramCurrency, uc.cfg.FX.QuoteAsset)
	if err != nil {
		uc.releaseClaim(ctx, paymentID, err)
		return nil, fmt.Errorf("%w: %v", settlement.ErrRateUnavailable, err)
	}
	conversion, err := uc.converter.Convert(payment.ProgramAmount(), rate)
	if err != nil {
		uc.releaseClaim(ctx, paymentID, err)
		return nil, fmt.Errorf("%w: %v", settlement.ErrRateUnavailable, err)
	}
	needed := conversion.AmountMinor

	// The final amount may differ from the one authorized, so funds are read again
	current, err := uc.readFunds(ctx, user.WalletAddress)
	if err != nil {
		uc.releaseClaim(ctx, paymentID, err)
		return nil, fmt.Errorf("%w: %v", settlement.ErrChainUnavailable, err)
	}
	if reason, available, short := current.shortfall(needed); short {
		insufficient := &settlement.InsufficientFundsError{Reason: reason, Needed: needed, Available: available}
		uc.releaseClaim(ctx, paymentID, insufficient)
		return nil, insufficient
	}

	txHash, err := uc.chainGW.PullTransfer(ctx, user.WalletAddress, needed)
	if err != nil {
		if errors.Is(err, settlement.ErrBroadcastUnknown) {
			return nil, uc.markUnknown(ctx, paymentID, txHash, "broadcast_unknown", err)
		}
		uc.releaseClaim(ctx, paymentID, err)
		return nil, &settlement.SubmissionError{Err: err}
	}

	logger.InfoCtx(ctx, "Settlement transfer broadcast",
		logger.String("payment_id", paymentID.String()),
		logger.String("tx_hash", txHash),
		logger.String("amount", needed.String()))

	// Duplicates arriving while the receipt is awaited see the hash
	uc.updateClaim(ctx, paymentID, models.ExecutionStatusPending, txHash, "")

	execution := &models.Execution{
		PaymentID:     paymentID,
		AssetSymbol:   uc.cfg.Chain.TokenSymbol,
		AmountMinor:   needed.String(),
		AssetDecimals: uc.cfg.Chain.TokenDecimals,
		TxHash:        txHash,
	}
	transfer := &models.Transfer{
		UserID:          card.UserID,
		AssetSymbol:     uc.cfg.Chain.TokenSymbol,
		AmountMinor:     needed.String(),
		Decimals:        uc.cfg.Chain.TokenDecimals,
		SenderAddress:   user.WalletAddress,
		ReceiverAddress: uc.chainGW.TreasuryAddress(),
		TxHash:          txHash,
	}
	if err := uc.ledger.RecordExecution(ctx, execution, transfer); err != nil {
		// The transfer is on its way regardless, so only flag it
		logger.ErrorCtx(ctx, "Failed to record broadcast settlement",
			logger.String("payment_id", paymentID.String()),
			logger.String("tx_hash", txHash),
			logger.Err(err))
		uc.updateClaim(ctx, paymentID, models.ExecutionStatusPending, txHash, "record execution: "+err.Error())
		uc.publishReconcile(ctx, paymentID, txHash, "ledger_write_failed")
	}

	if err := uc.chainGW.WaitForConfirmation(ctx, txHash); err != nil {
		if errors.Is(err, settlement.ErrTxReverted) {
			logger.ErrorCtx(ctx, "Settlement transfer reverted",
				logger.String("payment_id", paymentID.String()),
				logger.String("tx_hash", txHash))
			uc.updateClaim(ctx, paymentID, models.ExecutionStatusFailed, txHash, err.Error())
			return nil, &settlement.ExecutionFailedError{PaymentID: paymentID.String(), TxHash: txHash}
		}
		return nil, uc.markUnknown(ctx, paymentID, txHash, "confirmation_timeout", err)
	}

	uc.updateClaim(ctx, paymentID, models.ExecutionStatusExecuted, txHash, "")

	result := &models.ExecutionResult{
		OK:          true,
		TxHash:      txHash,
		UserAddress: user.WalletAddress,
		Program: models.AmountSummary{
			Currency:    payment.ProgramCurrency,
			AmountMinor: payment.ProgramAmountMinor,
		},
		Merchant: models.MerchantSummary{
			Name:        payment.MerchantName,
			Currency:    payment.MerchantCurrency,
			AmountMinor: payment.MerchantAmountMinor,
		},
		USDC: models.AssetSummary{
			Address:     uc.chainGW.TokenAddress(),
			AmountMinor: needed.String(),
		},
		Conversion: conversion,
	}

	points := new(big.Int).Quo(needed, uc.divisor)
	if points.Sign() > 0 {
		result.Points = points.String()
		uc.emitPointsAward(models.PointsAwardEvent{
			PaymentID:     paymentID.String(),
			UserAddress:   user.WalletAddress,
			Points:        points.String(),
			SettlementTx:  txHash,
			SettledAmount: needed.String(),
			EmittedAt:     time.Now().UTC(),
		})
	}

	logger.InfoCtx(ctx, "Payment settled",
		logger.String("payment_id", paymentID.String()),
		logger.String("tx_hash", txHash),
		logger.String("settled", needed.String()),
		logger.String("points", points.String()))

	return result, nil
}

// markUnknown parks the claim for reconciliation; nothing retries it automatically
func (uc *settlementUC) markUnknown(ctx context.Context, paymentID uuid.UUID, txHash, reason string, cause error) error {
	logger.ErrorCtx(ctx, "Settlement outcome unknown",
		logger.String("payment_id", paymentID.String()),
		logger.String("tx_hash", txHash),
		logger.String("reason", reason),
		logger.Err(cause))

	uc.updateClaim(ctx, paymentID, models.ExecutionStatusUnknown, txHash, cause.Error())
	uc.publishReconcile(ctx, paymentID, txHash, reason)

	return &settlement.ConfirmationUnknownError{PaymentID: paymentID.String(), TxHash: txHash, Err: cause}
}

func (uc *settlementUC) releaseClaim(ctx context.Context, paymentID uuid.UUID, cause error) {
	if err := uc.ledger.ReleaseExecutionClaim(ctx, paymentID); err != nil {
		logger.ErrorCtx(ctx, "Failed to release execution claim",
			logger.String("payment_id", paymentID.String()),
			logger.String("cause", cause.Error()),
			logger.Err(err))
		// Nothing was broadcast, but retries see a duplicate until the claim is cleared
		uc.publishReconcile(ctx, paymentID, "", "claim_release_failed")
		return
	}
	logger.InfoCtx(ctx, "Execution claim released",
		logger.String("payment_id", paymentID.String()),
		logger.String("cause", cause.Error()))
}

func (uc *settlementUC) updateClaim(ctx context.Context, paymentID uuid.UUID, status models.ExecutionStatus, txHash, errMsg string) {
	if err := uc.ledger.UpdateExecutionClaim(ctx, paymentID, status, txHash, errMsg); err != nil {
		logger.ErrorCtx(ctx, "Failed to update execution claim",
			logger.String("payment_id", paymentID.String()),
			logger.String("status", string(status)),
			logger.String("tx_hash", txHash),
			logger.Err(err))
	}
}

func (uc *settlementUC) publishReconcile(ctx context.Context, paymentID uuid.UUID, txHash, reason string) {
	event := models.ReconcileEvent{
		PaymentID: paymentID.String(),
		TxHash:    txHash,
		Reason:    reason,
		EmittedAt: time.Now().UTC(),
	}
	if err := uc.eventGW.PublishReconcile(ctx, event); err != nil {
		logger.ErrorCtx(ctx, "Failed to publish reconcile event",
			logger.String("payment_id", event.PaymentID),
			logger.String("tx_hash", txHash),
			logger.Err(err))
	}
}

// emitPointsAward publishes the award on a detached goroutine. Its outcome is
// only logged and never reaches the settlement result.
func (uc *settlementUC) emitPointsAward(event models.PointsAwardEvent) {
	uc.background.Add(1)
	go func() {
		defer uc.background.Done()
		defer func() {
			if r := recover(); r != nil {
				logger.Error("Points award publish panicked",
					logger.String("payment_id", event.PaymentID),
					logger.Any("panic", r))
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), pointsPublishTimeout)
		defer cancel()

		if err := uc.eventGW.PublishPointsAward(ctx, event); err != nil {
			logger.Error("Failed to publish points award",
				logger.String("payment_id", event.PaymentID),
				logger.String("tx_hash", event.SettlementTx),
				logger.String("points", event.Points),
				logger.Err(err))
			return
		}
		logger.Info("Points award published",
			logger.String("payment_id", event.PaymentID),
			logger.String("tx_hash", event.SettlementTx),
			logger.String("points", event.Points))
	}()
}
