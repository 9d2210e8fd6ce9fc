package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/piresc/cardsettle/internal/pkg/logger"
	"github.com/piresc/cardsettle/internal/pkg/models"
	nrpkg "github.com/piresc/cardsettle/internal/pkg/newrelic"
	"github.com/piresc/cardsettle/services/settlement"
)

const (
	paymentColumns = `id, card_id, external_id,
		program_amount_minor::text AS program_amount_minor, program_currency,
		merchant_name, merchant_amount_minor::text AS merchant_amount_minor, merchant_currency,
		status, created_at, updated_at`
	claimColumns     = `payment_id, status, tx_hash, error, created_at, updated_at`
	executionColumns = `id, payment_id, asset_symbol, amount_minor::text AS amount_minor, asset_decimals, tx_hash, created_at`
)

// LedgerRepo is the Postgres payment ledger
type LedgerRepo struct {
	cfg *models.Config
	db  *sqlx.DB
	now func() time.Time
}

// NewLedgerRepository creates a new ledger repository
func NewLedgerRepository(
	cfg *models.Config,
	db *sqlx.DB,
) *LedgerRepo {
	return &LedgerRepo{
		cfg: cfg,
		db:  db,
		now: func() time.Time { return time.Now().UTC() },
	}
}

func endSegment(seg *newrelic.DatastoreSegment) {
	if seg != nil {
		seg.End()
	}
}

// GetCardByExternalID retrieves a card by its card-processor id
func (r *LedgerRepo) GetCardByExternalID(ctx context.Context, externalID string) (*models.Card, error) {
	defer endSegment(nrpkg.StartDatastoreSegment(ctx, "cards", "SELECT"))

	query := `SELECT id, user_id, external_id, status, created_at FROM cards WHERE external_id = $1`

	var card models.Card
	if err := r.db.GetContext(ctx, &card, query, externalID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, settlement.ErrCardNotFound
		}
		return nil, fmt.Errorf("failed to get card: %w", err)
	}
	return &card, nil
}

// GetCardByID retrieves a card by id
func (r *LedgerRepo) GetCardByID(ctx context.Context, id uuid.UUID) (*models.Card, error) {
	defer endSegment(nrpkg.StartDatastoreSegment(ctx, "cards", "SELECT"))

	query := `SELECT id, user_id, external_id, status, created_at FROM cards WHERE id = $1`

	var card models.Card
	if err := r.db.GetContext(ctx, &card, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, settlement.ErrCardNotFound
		}
		return nil, fmt.Errorf("failed to get card: %w", err)
	}
	return &card, nil
}

// GetUserByID retrieves the wallet holder of a card
func (r *LedgerRepo) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	defer endSegment(nrpkg.StartDatastoreSegment(ctx, "users", "SELECT"))

	query := `
		SELECT id, wallet_address, display_name, balance_snapshot::text AS balance_snapshot,
			provider, created_at, updated_at
		FROM users
		WHERE id = $1
	`

	var user models.User
	if err := r.db.GetContext(ctx, &user, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, settlement.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

// UpsertPayment is the atomic upsert-or-fetch on the external authorization id.
// Concurrent callers with the same external id all end up with the same row.
func (r *LedgerRepo) UpsertPayment(ctx context.Context, payment *models.Payment) (*models.Payment, bool, error) {
	seg := nrpkg.StartDatastoreSegment(ctx, "payments", "UPSERT")
	defer endSegment(seg)

	if payment.ID == uuid.Nil {
		payment.ID = uuid.New()
	}
	if payment.Status == "" {
		payment.Status = models.PaymentStatusStarted
	}
	now := r.now()

	query := `
		INSERT INTO payments (
			id, card_id, external_id,
			program_amount_minor, program_currency,
			merchant_name, merchant_amount_minor, merchant_currency,
			status, created_at, updated_at
		) VALUES ($1, $2, $3, $4::numeric, $5, $6, $7::numeric, $8, $9, $10, $10)
		ON CONFLICT (external_id) DO NOTHING
		RETURNING ` + paymentColumns

	var stored models.Payment
	err := r.db.GetContext(ctx, &stored, query,
		payment.ID,
		payment.CardID,
		payment.ExternalID,
		payment.ProgramAmountMinor,
		payment.ProgramCurrency,
		payment.MerchantName,
		payment.MerchantAmountMinor,
		payment.MerchantCurrency,
		payment.Status,
		now,
	)
	if err == nil {
		return &stored, true, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, false, fmt.Errorf("failed to upsert payment: %w", err)
	}

	// Lost the race or a redelivery: the row for this external id already exists
	existing, err := r.GetPaymentByExternalID(ctx, payment.ExternalID)
	if err != nil {
		return nil, false, err
	}
	logger.Debug("Payment already exists for authorization",
		logger.String("external_id", payment.ExternalID),
		logger.String("payment_id", existing.ID.String()))
	return existing, false, nil
}

// FinalizePayment applies the final status and amounts only while the payment is started
func (r *LedgerRepo) FinalizePayment(ctx context.Context, params models.FinalizePaymentParams) (*models.Payment, bool, error) {
	seg := nrpkg.StartDatastoreSegment(ctx, "payments", "UPDATE")
	defer endSegment(seg)

	if params.Status != models.PaymentStatusCompleted && params.Status != models.PaymentStatusCancelled {
		return nil, false, fmt.Errorf("invalid final payment status %q", params.Status)
	}

	query := `
		UPDATE payments
		SET status = $2,
			program_amount_minor = $3::numeric,
			program_currency = $4,
			merchant_name = $5,
			merchant_amount_minor = $6::numeric,
			merchant_currency = $7,
			updated_at = $8
		WHERE external_id = $1 AND status = 'started'
		RETURNING ` + paymentColumns

	var updated models.Payment
	err := r.db.GetContext(ctx, &updated, query,
		params.ExternalID,
		params.Status,
		params.ProgramAmountMinor,
		params.ProgramCurrency,
		params.MerchantName,
		params.MerchantAmountMinor,
		params.MerchantCurrency,
		r.now(),
	)
	if err == nil {
		return &updated, true, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, false, fmt.Errorf("failed to finalize payment: %w", err)
	}

	existing, err := r.GetPaymentByExternalID(ctx, params.ExternalID)
	if err != nil {
		return nil, false, err
	}
	return existing, false, nil
}

// GetPaymentByID retrieves a payment by id
func (r *LedgerRepo) GetPaymentByID(ctx context.Context, id uuid.UUID) (*models.Payment, error) {
	defer endSegment(nrpkg.StartDatastoreSegment(ctx, "payments", "SELECT"))

	query := `SELECT ` + paymentColumns + ` FROM payments WHERE id = $1`

	var payment models.Payment
	if err := r.db.GetContext(ctx, &payment, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, settlement.ErrPaymentNotFound
		}
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}
	return &payment, nil
}

// GetPaymentByExternalID retrieves a payment by its external authorization id
func (r *LedgerRepo) GetPaymentByExternalID(ctx context.Context, externalID string) (*models.Payment, error) {
	defer endSegment(nrpkg.StartDatastoreSegment(ctx, "payments", "SELECT"))

	query := `SELECT ` + paymentColumns + ` FROM payments WHERE external_id = $1`

	var payment models.Payment
	if err := r.db.GetContext(ctx, &payment, query, externalID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, settlement.ErrPaymentNotFound
		}
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}
	return &payment, nil
}

// ClaimExecution inserts the execution claim for a payment if none exists.
// The loser of a race gets the winner's claim back.
func (r *LedgerRepo) ClaimExecution(ctx context.Context, paymentID uuid.UUID) (*models.ExecutionClaim, bool, error) {
	seg := nrpkg.StartDatastoreSegment(ctx, "execution_claims", "INSERT")
	defer endSegment(seg)

	query := `
		INSERT INTO execution_claims (payment_id, status, created_at, updated_at)
		VALUES ($1, $2, $3, $3)
		ON CONFLICT (payment_id) DO NOTHING
		RETURNING ` + claimColumns

	// A released claim can disappear between the insert and the lookup; one more round settles it
	for attempt := 0; attempt < 2; attempt++ {
		var claim models.ExecutionClaim
		err := r.db.GetContext(ctx, &claim, query, paymentID, models.ExecutionStatusPending, r.now())
		if err == nil {
			return &claim, true, nil
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return nil, false, fmt.Errorf("failed to claim execution: %w", err)
		}

		existing, err := r.GetExecutionClaim(ctx, paymentID)
		if err == nil {
			return existing, false, nil
		}
		if !errors.Is(err, settlement.ErrNotFound) {
			return nil, false, err
		}
	}
	return nil, false, fmt.Errorf("failed to claim execution for payment %s: claim contended", paymentID)
}

// ReleaseExecutionClaim drops a claim that never broadcast anything
func (r *LedgerRepo) ReleaseExecutionClaim(ctx context.Context, paymentID uuid.UUID) error {
	defer endSegment(nrpkg.StartDatastoreSegment(ctx, "execution_claims", "DELETE"))

	query := `DELETE FROM execution_claims WHERE payment_id = $1 AND status = 'pending_execution' AND tx_hash IS NULL`

	if _, err := r.db.ExecContext(ctx, query, paymentID); err != nil {
		return fmt.Errorf("failed to release execution claim: %w", err)
	}
	return nil
}

// UpdateExecutionClaim records the state of a claim. Empty txHash keeps the stored hash.
func (r *LedgerRepo) UpdateExecutionClaim(ctx context.Context, paymentID uuid.UUID, status models.ExecutionStatus, txHash, errMsg string) error {
	defer endSegment(nrpkg.StartDatastoreSegment(ctx, "execution_claims", "UPDATE"))

	query := `
		UPDATE execution_claims
		SET status = $2,
			tx_hash = COALESCE(NULLIF($3, ''), tx_hash),
			error = NULLIF($4, ''),
			updated_at = $5
		WHERE payment_id = $1
	`

	result, err := r.db.ExecContext(ctx, query, paymentID, status, txHash, errMsg, r.now())
	if err != nil {
		return fmt.Errorf("failed to update execution claim: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("execution claim for payment %s: %w", paymentID, settlement.ErrNotFound)
	}
	return nil
}

// GetExecutionClaim retrieves the claim of a payment
func (r *LedgerRepo) GetExecutionClaim(ctx context.Context, paymentID uuid.UUID) (*models.ExecutionClaim, error) {
	defer endSegment(nrpkg.StartDatastoreSegment(ctx, "execution_claims", "SELECT"))

	query := `SELECT ` + claimColumns + ` FROM execution_claims WHERE payment_id = $1`

	var claim models.ExecutionClaim
	if err := r.db.GetContext(ctx, &claim, query, paymentID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("execution claim: %w", settlement.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get execution claim: %w", err)
	}
	return &claim, nil
}

// RecordExecution writes the execution and its transfer audit row in one transaction
func (r *LedgerRepo) RecordExecution(ctx context.Context, execution *models.Execution, transfer *models.Transfer) error {
	seg := nrpkg.StartDatastoreSegment(ctx, "executions", "INSERT")
	defer endSegment(seg)

	now := r.now()
	if execution.ID == uuid.Nil {
		execution.ID = uuid.New()
	}
	if transfer.ID == uuid.Nil {
		transfer.ID = uuid.New()
	}
	execution.CreatedAt = now
	transfer.CreatedAt = now

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
				logger.Error("Failed to rollback execution transaction", logger.Err(rbErr))
			}
		}
	}()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO executions (id, payment_id, asset_symbol, amount_minor, asset_decimals, tx_hash, created_at)
		VALUES ($1, $2, $3, $4::numeric, $5, $6, $7)
	`,
		execution.ID,
		execution.PaymentID,
		execution.AssetSymbol,
		execution.AmountMinor,
		execution.AssetDecimals,
		execution.TxHash,
		now,
	)
	if err != nil {
		return fmt.Errorf("failed to insert execution: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO transfers (id, user_id, asset_symbol, amount_minor, decimals, sender_address, receiver_address, tx_hash, created_at)
		VALUES ($1, $2, $3, $4::numeric, $5, $6, $7, $8, $9)
	`,
		transfer.ID,
		transfer.UserID,
		transfer.AssetSymbol,
		transfer.AmountMinor,
		transfer.Decimals,
		transfer.SenderAddress,
		transfer.ReceiverAddress,
		transfer.TxHash,
		now,
	)
	if err != nil {
		return fmt.Errorf("failed to insert transfer: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit execution: %w", err)
	}
	return nil
}

// GetExecutionByPaymentID retrieves the execution of a payment
func (r *LedgerRepo) GetExecutionByPaymentID(ctx context.Context, paymentID uuid.UUID) (*models.Execution, error) {
	defer endSegment(nrpkg.StartDatastoreSegment(ctx, "executions", "SELECT"))

	query := `SELECT ` + executionColumns + ` FROM executions WHERE payment_id = $1`

	var execution models.Execution
	if err := r.db.GetContext(ctx, &execution, query, paymentID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("execution: %w", settlement.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get execution: %w", err)
	}
	return &execution, nil
}
