package usecase

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/piresc/cardsettle/internal/pkg/models"
	"github.com/piresc/cardsettle/services/settlement"
)

// GetPaymentDetails returns a payment with its claim and execution, when present
func (uc *settlementUC) GetPaymentDetails(ctx context.Context, paymentID uuid.UUID) (*models.PaymentDetails, error) {
	payment, err := uc.ledger.GetPaymentByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	details := &models.PaymentDetails{Payment: payment}

	claim, err := uc.ledger.GetExecutionClaim(ctx, paymentID)
	switch {
	case err == nil:
		details.Claim = claim
	case !errors.Is(err, settlement.ErrNotFound):
		return nil, err
	}

	execution, err := uc.ledger.GetExecutionByPaymentID(ctx, paymentID)
	switch {
	case err == nil:
		details.Execution = execution
	case !errors.Is(err, settlement.ErrNotFound):
		return nil, err
	}

	return details, nil
}
