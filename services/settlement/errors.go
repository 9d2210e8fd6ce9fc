package settlement

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/piresc/cardsettle/internal/pkg/models"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrPaymentNotFound = fmt.Errorf("payment %w", ErrNotFound)
	ErrCardNotFound    = fmt.Errorf("card %w", ErrNotFound)
	ErrUserNotFound    = fmt.Errorf("user %w", ErrNotFound)

	// ErrBroadcastUnknown means a transaction may have reached the network
	ErrBroadcastUnknown = errors.New("broadcast outcome unknown")
	// ErrTxReverted means the transaction was mined and failed
	ErrTxReverted = errors.New("transaction reverted")
	// ErrConfirmationTimeout means no receipt was seen in time
	ErrConfirmationTimeout = errors.New("confirmation timed out")
	ErrChainUnavailable    = errors.New("chain unavailable")
	ErrRateUnavailable     = errors.New("exchange rate unavailable")

	// ErrPaymentCancelled is returned when settling a declined authorization
	ErrPaymentCancelled = errors.New("payment was cancelled")
	// ErrPaymentNotFinal is returned when the authorization has not been finalized yet
	ErrPaymentNotFinal = errors.New("payment is not finalized")
	// ErrPointsAlreadyAwarded is returned for a redelivered points award
	ErrPointsAlreadyAwarded = errors.New("points already awarded")
)

// DuplicateExecutionError is returned when the payment already has an execution claim
type DuplicateExecutionError struct {
	PaymentID string
	TxHash    string
	Status    models.ExecutionStatus
}

func (e *DuplicateExecutionError) Error() string {
	return fmt.Sprintf("payment %s already executed (status=%s, tx=%s)", e.PaymentID, e.Status, e.TxHash)
}

// InsufficientFundsError is returned when allowance or balance is below the settlement amount
type InsufficientFundsError struct {
	Reason    models.DeclineReason
	Needed    *big.Int
	Available *big.Int
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("%s: needed %s, available %s", e.Reason, e.Needed, e.Available)
}

// SubmissionError means nothing was broadcast; the payment is safe to retry
type SubmissionError struct {
	Err error
}

func (e *SubmissionError) Error() string {
	return "submit settlement: " + e.Err.Error()
}

func (e *SubmissionError) Unwrap() error { return e.Err }

// ConfirmationUnknownError means a transaction may be on chain but its outcome
// was not observed. It must be reconciled before any resubmission.
type ConfirmationUnknownError struct {
	PaymentID string
	TxHash    string
	Err       error
}

func (e *ConfirmationUnknownError) Error() string {
	return fmt.Sprintf("settlement of payment %s has unknown outcome (tx=%s): %v", e.PaymentID, e.TxHash, e.Err)
}

func (e *ConfirmationUnknownError) Unwrap() error { return e.Err }

// ExecutionFailedError means the settlement transaction was mined and reverted
type ExecutionFailedError struct {
	PaymentID string
	TxHash    string
}

func (e *ExecutionFailedError) Error() string {
	return fmt.Sprintf("settlement of payment %s reverted (tx=%s)", e.PaymentID, e.TxHash)
}

func (e *ExecutionFailedError) Unwrap() error { return ErrTxReverted }
