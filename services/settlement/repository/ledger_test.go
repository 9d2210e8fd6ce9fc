package repository_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/piresc/cardsettle/internal/pkg/models"
	"github.com/piresc/cardsettle/services/settlement"
	"github.com/piresc/cardsettle/services/settlement/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var paymentRowColumns = []string{
	"id", "card_id", "external_id",
	"program_amount_minor", "program_currency",
	"merchant_name", "merchant_amount_minor", "merchant_currency",
	"status", "created_at", "updated_at",
}

func setupMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })
	db := sqlx.NewDb(mockDB, "sqlmock")
	return db, mock
}

func paymentRow(p *models.Payment) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(paymentRowColumns).AddRow(
		p.ID.String(), p.CardID.String(), p.ExternalID,
		p.ProgramAmountMinor, p.ProgramCurrency,
		p.MerchantName, p.MerchantAmountMinor, p.MerchantCurrency,
		string(p.Status), now, now,
	)
}

func newPayment() *models.Payment {
	return &models.Payment{
		ID:                  uuid.New(),
		CardID:              uuid.New(),
		ExternalID:          "auth_123",
		ProgramAmountMinor:  "375",
		ProgramCurrency:     "GBP",
		MerchantName:        "Coffee Shop",
		MerchantAmountMinor: "450",
		MerchantCurrency:    "EUR",
		Status:              models.PaymentStatusStarted,
	}
}

func TestUpsertPayment_Created(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := repository.NewLedgerRepository(&models.Config{}, db)
	p := newPayment()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO payments")).
		WithArgs(p.ID, p.CardID, p.ExternalID, "375", "GBP", "Coffee Shop", "450", "EUR", p.Status, sqlmock.AnyArg()).
		WillReturnRows(paymentRow(p))

	stored, created, err := repo.UpsertPayment(context.Background(), p)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, p.ID, stored.ID)
	assert.Equal(t, models.PaymentStatusStarted, stored.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsertPayment_ConflictFetchesExisting(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := repository.NewLedgerRepository(&models.Config{}, db)

	existing := newPayment()
	incoming := newPayment()

	mock.ExpectQuery(regexp.QuoteMeta("ON CONFLICT (external_id) DO NOTHING")).
		WillReturnRows(sqlmock.NewRows(paymentRowColumns))
	mock.ExpectQuery(regexp.QuoteMeta("FROM payments WHERE external_id = $1")).
		WithArgs("auth_123").
		WillReturnRows(paymentRow(existing))

	stored, created, err := repo.UpsertPayment(context.Background(), incoming)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, existing.ID, stored.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsertPayment_AssignsIDAndStatus(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := repository.NewLedgerRepository(&models.Config{}, db)

	p := newPayment()
	p.ID = uuid.Nil
	p.Status = ""

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO payments")).
		WillReturnRows(sqlmock.NewRows(paymentRowColumns).AddRow(
			uuid.NewString(), p.CardID.String(), p.ExternalID, "375", "GBP", "Coffee Shop", "450", "EUR", "started", time.Now(), time.Now()))

	_, _, err := repo.UpsertPayment(context.Background(), p)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, p.ID)
	assert.Equal(t, models.PaymentStatusStarted, p.Status)
}

func TestUpsertPayment_DatabaseError(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := repository.NewLedgerRepository(&models.Config{}, db)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO payments")).
		WillReturnError(errors.New("connection reset"))

	_, _, err := repo.UpsertPayment(context.Background(), newPayment())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to upsert payment")
}

func TestFinalizePayment_Started(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := repository.NewLedgerRepository(&models.Config{}, db)

	p := newPayment()
	p.Status = models.PaymentStatusCompleted
	p.ProgramAmountMinor = "400"

	mock.ExpectQuery(regexp.QuoteMeta("WHERE external_id = $1 AND status = 'started'")).
		WithArgs("auth_123", models.PaymentStatusCompleted, "400", "GBP", "Coffee Shop", "450", "EUR", sqlmock.AnyArg()).
		WillReturnRows(paymentRow(p))

	updated, changed, err := repo.FinalizePayment(context.Background(), models.FinalizePaymentParams{
		ExternalID:          "auth_123",
		Status:              models.PaymentStatusCompleted,
		ProgramAmountMinor:  "400",
		ProgramCurrency:     "GBP",
		MerchantName:        "Coffee Shop",
		MerchantAmountMinor: "450",
		MerchantCurrency:    "EUR",
	})
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, "400", updated.ProgramAmountMinor)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFinalizePayment_AlreadyFinalIsUnchanged(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := repository.NewLedgerRepository(&models.Config{}, db)

	final := newPayment()
	final.Status = models.PaymentStatusCancelled

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE payments")).
		WillReturnRows(sqlmock.NewRows(paymentRowColumns))
	mock.ExpectQuery(regexp.QuoteMeta("FROM payments WHERE external_id = $1")).
		WithArgs("auth_123").
		WillReturnRows(paymentRow(final))

	got, changed, err := repo.FinalizePayment(context.Background(), models.FinalizePaymentParams{
		ExternalID: "auth_123",
		Status:     models.PaymentStatusCompleted,
	})
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, models.PaymentStatusCancelled, got.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFinalizePayment_Missing(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := repository.NewLedgerRepository(&models.Config{}, db)

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE payments")).
		WillReturnRows(sqlmock.NewRows(paymentRowColumns))
	mock.ExpectQuery(regexp.QuoteMeta("FROM payments WHERE external_id = $1")).
		WillReturnRows(sqlmock.NewRows(paymentRowColumns))

	_, _, err := repo.FinalizePayment(context.Background(), models.FinalizePaymentParams{
		ExternalID: "missing",
		Status:     models.PaymentStatusCompleted,
	})
	assert.ErrorIs(t, err, settlement.ErrPaymentNotFound)
}

func TestFinalizePayment_RejectsStarted(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := repository.NewLedgerRepository(&models.Config{}, db)

	_, _, err := repo.FinalizePayment(context.Background(), models.FinalizePaymentParams{
		ExternalID: "auth_123",
		Status:     models.PaymentStatusStarted,
	})
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetPaymentByID_NotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := repository.NewLedgerRepository(&models.Config{}, db)

	id := uuid.New()
	mock.ExpectQuery(regexp.QuoteMeta("FROM payments WHERE id = $1")).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(paymentRowColumns))

	_, err := repo.GetPaymentByID(context.Background(), id)
	assert.ErrorIs(t, err, settlement.ErrPaymentNotFound)
	assert.ErrorIs(t, err, settlement.ErrNotFound)
}

func TestGetCardByExternalID(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := repository.NewLedgerRepository(&models.Config{}, db)

	cardID, userID := uuid.New(), uuid.New()
	mock.ExpectQuery(regexp.QuoteMeta("FROM cards WHERE external_id = $1")).
		WithArgs("card_ext").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "external_id", "status", "created_at"}).
			AddRow(cardID.String(), userID.String(), "card_ext", "active", time.Now()))
	mock.ExpectQuery(regexp.QuoteMeta("FROM cards WHERE external_id = $1")).
		WithArgs("nope").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	card, err := repo.GetCardByExternalID(context.Background(), "card_ext")
	require.NoError(t, err)
	assert.Equal(t, userID, card.UserID)
	assert.Equal(t, models.CardStatusActive, card.Status)

	_, err = repo.GetCardByExternalID(context.Background(), "nope")
	assert.ErrorIs(t, err, settlement.ErrCardNotFound)
}

func TestGetUserByID_NotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := repository.NewLedgerRepository(&models.Config{}, db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM users")).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetUserByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, settlement.ErrUserNotFound)
}

func TestClaimExecution_Won(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := repository.NewLedgerRepository(&models.Config{}, db)

	paymentID := uuid.New()
	mock.ExpectQuery(regexp.QuoteMeta("ON CONFLICT (payment_id) DO NOTHING")).
		WithArgs(paymentID, models.ExecutionStatusPending, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"payment_id", "status", "tx_hash", "error", "created_at", "updated_at"}).
			AddRow(paymentID.String(), "pending_execution", nil, nil, time.Now(), time.Now()))

	claim, won, err := repo.ClaimExecution(context.Background(), paymentID)
	require.NoError(t, err)
	assert.True(t, won)
	assert.Equal(t, models.ExecutionStatusPending, claim.Status)
	assert.Empty(t, claim.Hash())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClaimExecution_LostReturnsExisting(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := repository.NewLedgerRepository(&models.Config{}, db)

	paymentID := uuid.New()
	claimCols := []string{"payment_id", "status", "tx_hash", "error", "created_at", "updated_at"}

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO execution_claims")).
		WillReturnRows(sqlmock.NewRows(claimCols))
	mock.ExpectQuery(regexp.QuoteMeta("FROM execution_claims WHERE payment_id = $1")).
		WithArgs(paymentID).
		WillReturnRows(sqlmock.NewRows(claimCols).
			AddRow(paymentID.String(), "executed", "0xabc", nil, time.Now(), time.Now()))

	claim, won, err := repo.ClaimExecution(context.Background(), paymentID)
	require.NoError(t, err)
	assert.False(t, won)
	assert.Equal(t, models.ExecutionStatusExecuted, claim.Status)
	assert.Equal(t, "0xabc", claim.Hash())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClaimExecution_RetriesWhenClaimVanishes(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := repository.NewLedgerRepository(&models.Config{}, db)

	paymentID := uuid.New()
	claimCols := []string{"payment_id", "status", "tx_hash", "error", "created_at", "updated_at"}

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO execution_claims")).
		WillReturnRows(sqlmock.NewRows(claimCols))
	mock.ExpectQuery(regexp.QuoteMeta("FROM execution_claims WHERE payment_id = $1")).
		WillReturnRows(sqlmock.NewRows(claimCols))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO execution_claims")).
		WillReturnRows(sqlmock.NewRows(claimCols).
			AddRow(paymentID.String(), "pending_execution", nil, nil, time.Now(), time.Now()))

	_, won, err := repo.ClaimExecution(context.Background(), paymentID)
	require.NoError(t, err)
	assert.True(t, won)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReleaseExecutionClaim(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := repository.NewLedgerRepository(&models.Config{}, db)

	paymentID := uuid.New()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM execution_claims WHERE payment_id = $1 AND status = 'pending_execution'")).
		WithArgs(paymentID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.ReleaseExecutionClaim(context.Background(), paymentID))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateExecutionClaim(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := repository.NewLedgerRepository(&models.Config{}, db)

	paymentID := uuid.New()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE execution_claims")).
		WithArgs(paymentID, models.ExecutionStatusUnknown, "0xabc", "receipt timeout", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE execution_claims")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateExecutionClaim(context.Background(), paymentID, models.ExecutionStatusUnknown, "0xabc", "receipt timeout")
	require.NoError(t, err)

	err = repo.UpdateExecutionClaim(context.Background(), uuid.New(), models.ExecutionStatusExecuted, "", "")
	assert.ErrorIs(t, err, settlement.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordExecution_Commits(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := repository.NewLedgerRepository(&models.Config{}, db)

	paymentID, userID := uuid.New(), uuid.New()
	exec := &models.Execution{PaymentID: paymentID, AssetSymbol: "USDC", AmountMinor: "4762500", AssetDecimals: 6, TxHash: "0xabc"}
	transfer := &models.Transfer{UserID: userID, AssetSymbol: "USDC", AmountMinor: "4762500", Decimals: 6, SenderAddress: "0xuser", ReceiverAddress: "0xtreasury", TxHash: "0xabc"}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO executions")).
		WithArgs(sqlmock.AnyArg(), paymentID, "USDC", "4762500", 6, "0xabc", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO transfers")).
		WithArgs(sqlmock.AnyArg(), userID, "USDC", "4762500", 6, "0xuser", "0xtreasury", "0xabc", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.RecordExecution(context.Background(), exec, transfer))
	assert.NotEqual(t, uuid.Nil, exec.ID)
	assert.NotEqual(t, uuid.Nil, transfer.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordExecution_RollsBackOnTransferFailure(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := repository.NewLedgerRepository(&models.Config{}, db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO executions")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO transfers")).
		WillReturnError(errors.New("duplicate key value violates unique constraint"))
	mock.ExpectRollback()

	err := repo.RecordExecution(context.Background(), &models.Execution{PaymentID: uuid.New()}, &models.Transfer{UserID: uuid.New()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to insert transfer")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetExecutionByPaymentID(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := repository.NewLedgerRepository(&models.Config{}, db)

	paymentID := uuid.New()
	mock.ExpectQuery(regexp.QuoteMeta("FROM executions WHERE payment_id = $1")).
		WithArgs(paymentID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "payment_id", "asset_symbol", "amount_minor", "asset_decimals", "tx_hash", "created_at"}).
			AddRow(uuid.NewString(), paymentID.String(), "USDC", "4762500", 6, "0xabc", time.Now()))
	mock.ExpectQuery(regexp.QuoteMeta("FROM executions WHERE payment_id = $1")).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	exec, err := repo.GetExecutionByPaymentID(context.Background(), paymentID)
	require.NoError(t, err)
	assert.Equal(t, "0xabc", exec.TxHash)

	_, err = repo.GetExecutionByPaymentID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, settlement.ErrNotFound)
}
