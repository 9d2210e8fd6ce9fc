package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/piresc/cardsettle/internal/pkg/models"
	"github.com/piresc/cardsettle/internal/pkg/webhook"
	"github.com/piresc/cardsettle/services/settlement"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func authorization(externalID, amount string) webhook.Authorization {
	return webhook.Authorization{
		ExternalID:          externalID,
		CardExternalID:      "card_ext_1",
		ProgramAmountMinor:  amount,
		ProgramCurrency:     "GBP",
		MerchantName:        "Coffee Shop",
		MerchantAmountMinor: "450",
		MerchantCurrency:    "EUR",
	}
}

func TestHandleWebhookEvent_RequestThenCreatedSettles(t *testing.T) {
	h := newHarness(t, 100_000_000, 100_000_000)
	ctx := context.Background()

	resp, err := h.uc.HandleWebhookEvent(ctx, webhook.AuthorizationRequest{ID: "evt_1", Authorization: authorization("auth_1", "375")})
	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.True(t, resp.Approved)
	assert.Nil(t, resp.Metadata)

	payment, err := h.ledger.GetPaymentByExternalID(ctx, "auth_1")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusStarted, payment.Status)
	assert.Zero(t, h.chain.transfers.Load())

	// Final amount differs from the requested one
	resp, err = h.uc.HandleWebhookEvent(ctx, webhook.AuthorizationCreated{ID: "evt_2", Approved: true, Authorization: authorization("auth_1", "400")})
	require.NoError(t, err)
	assert.Nil(t, resp)
	h.uc.Wait()

	payment, err = h.ledger.GetPaymentByExternalID(ctx, "auth_1")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusCompleted, payment.Status)
	assert.Equal(t, "400", payment.ProgramAmountMinor)

	assert.Equal(t, int64(1), h.chain.transfers.Load())
	execution, err := h.ledger.GetExecutionByPaymentID(ctx, payment.ID)
	require.NoError(t, err)
	assert.Equal(t, "5080000", execution.AmountMinor)
	assert.Equal(t, 1, h.events.awardCount())

	// Redelivery of the created event does not settle again
	_, err = h.uc.HandleWebhookEvent(ctx, webhook.AuthorizationCreated{ID: "evt_2", Approved: true, Authorization: authorization("auth_1", "400")})
	require.NoError(t, err)
	assert.Equal(t, int64(1), h.chain.transfers.Load())

	// A late request redelivery repeats the final answer
	resp, err = h.uc.HandleWebhookEvent(ctx, webhook.AuthorizationRequest{ID: "evt_1", Authorization: authorization("auth_1", "375")})
	require.NoError(t, err)
	assert.True(t, resp.Approved)
}

func TestHandleWebhookEvent_DeclinedRequestThenCancelled(t *testing.T) {
	h := newHarness(t, 1_000_000, 100_000_000)
	ctx := context.Background()

	resp, err := h.uc.HandleWebhookEvent(ctx, webhook.AuthorizationRequest{ID: "evt_1", Authorization: authorization("auth_2", "200")})
	require.NoError(t, err)
	assert.False(t, resp.Approved)
	require.NotNil(t, resp.Metadata)
	assert.Equal(t, models.DeclineInsufficientAllowance, resp.Metadata.Reason)

	_, err = h.uc.HandleWebhookEvent(ctx, webhook.AuthorizationCreated{ID: "evt_2", Approved: false, Authorization: authorization("auth_2", "200")})
	require.NoError(t, err)

	payment, err := h.ledger.GetPaymentByExternalID(ctx, "auth_2")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusCancelled, payment.Status)
	assert.Zero(t, h.chain.transfers.Load())

	_, err = h.uc.ExecutePayment(ctx, payment.ID)
	assert.ErrorIs(t, err, settlement.ErrPaymentCancelled)

	resp, err = h.uc.HandleWebhookEvent(ctx, webhook.AuthorizationRequest{ID: "evt_1", Authorization: authorization("auth_2", "200")})
	require.NoError(t, err)
	assert.False(t, resp.Approved)
}

func TestHandleWebhookEvent_ExecuteWaitsForFinalAmount(t *testing.T) {
	h := newHarness(t, 100_000_000, 100_000_000)
	ctx := context.Background()

	resp, err := h.uc.HandleWebhookEvent(ctx, webhook.AuthorizationRequest{ID: "evt_1", Authorization: authorization("auth_5", "375")})
	require.NoError(t, err)
	assert.True(t, resp.Approved)

	payment, err := h.ledger.GetPaymentByExternalID(ctx, "auth_5")
	require.NoError(t, err)

	// An early trigger must not settle the pending amount
	_, err = h.uc.ExecutePayment(ctx, payment.ID)
	assert.ErrorIs(t, err, settlement.ErrPaymentNotFinal)
	assert.Zero(t, h.chain.transfers.Load())
	assert.Equal(t, models.ExecutionStatus(""), h.ledger.claimStatus(payment.ID))

	_, err = h.uc.HandleWebhookEvent(ctx, webhook.AuthorizationCreated{ID: "evt_2", Approved: true, Authorization: authorization("auth_5", "500")})
	require.NoError(t, err)
	h.uc.Wait()

	assert.Equal(t, int64(1), h.chain.transfers.Load())
	execution, err := h.ledger.GetExecutionByPaymentID(ctx, payment.ID)
	require.NoError(t, err)
	assert.Equal(t, "6350000", execution.AmountMinor)
}

func TestHandleWebhookEvent_UnknownCardCreatesNoPayment(t *testing.T) {
	f := newFixture(t)
	f.ledger.EXPECT().GetCardByExternalID(gomock.Any(), "card_missing").Return(nil, settlement.ErrCardNotFound)
	f.ledger.EXPECT().UpsertPayment(gomock.Any(), gomock.Any()).Times(0)

	auth := authorization("auth_4", "375")
	auth.CardExternalID = "card_missing"
	resp, err := f.uc.HandleWebhookEvent(context.Background(), webhook.AuthorizationRequest{ID: "evt_1", Authorization: auth})

	require.NoError(t, err)
	assert.False(t, resp.Approved)
	assert.Equal(t, models.DeclineCardNotFound, resp.Metadata.Reason)
}

func TestHandleWebhookEvent_LedgerDownDeclines(t *testing.T) {
	f := newFixture(t)
	f.ledger.EXPECT().GetCardByExternalID(gomock.Any(), "card_ext_1").Return(f.card, nil)
	f.ledger.EXPECT().UpsertPayment(gomock.Any(), gomock.Any()).Return(nil, false, errors.New("pool exhausted"))

	resp, err := f.uc.HandleWebhookEvent(context.Background(), webhook.AuthorizationRequest{ID: "evt_1", Authorization: authorization("auth_5", "375")})

	require.NoError(t, err)
	assert.False(t, resp.Approved)
	assert.Equal(t, models.DeclineLedgerUnavailable, resp.Metadata.Reason)
}

func TestHandleWebhookEvent_CreatedForUnknownPayment(t *testing.T) {
	f := newFixture(t)
	f.ledger.EXPECT().FinalizePayment(gomock.Any(), gomock.Any()).Return(nil, false, settlement.ErrPaymentNotFound)

	resp, err := f.uc.HandleWebhookEvent(context.Background(), webhook.AuthorizationCreated{ID: "evt_2", Approved: true, Authorization: authorization("auth_6", "375")})

	assert.NoError(t, err)
	assert.Nil(t, resp)
}

func TestHandleWebhookEvent_FinalizeErrorIsReturned(t *testing.T) {
	f := newFixture(t)
	f.ledger.EXPECT().FinalizePayment(gomock.Any(), gomock.Any()).Return(nil, false, errors.New("deadlock detected"))

	_, err := f.uc.HandleWebhookEvent(context.Background(), webhook.AuthorizationCreated{ID: "evt_2", Approved: true, Authorization: authorization("auth_7", "375")})

	assert.EqualError(t, err, "finalize payment: deadlock detected")
}

func TestHandleWebhookEvent_SettlementFailureIsAcknowledged(t *testing.T) {
	f := newFixture(t)
	f.payment.Status = models.PaymentStatusCompleted

	f.ledger.EXPECT().FinalizePayment(gomock.Any(), models.FinalizePaymentParams{
		ExternalID:          "auth_1",
		Status:              models.PaymentStatusCompleted,
		ProgramAmountMinor:  "375",
		ProgramCurrency:     "GBP",
		MerchantName:        "Coffee Shop",
		MerchantAmountMinor: "450",
		MerchantCurrency:    "EUR",
	}).Return(f.payment, true, nil)
	f.expectFundedSettlement(1_000, 10_000_000)
	f.ledger.EXPECT().ReleaseExecutionClaim(gomock.Any(), f.payment.ID).Return(nil)

	resp, err := f.uc.HandleWebhookEvent(context.Background(), webhook.AuthorizationCreated{ID: "evt_2", Approved: true, Authorization: authorization("auth_1", "375")})

	assert.NoError(t, err)
	assert.Nil(t, resp)
}

func TestHandleWebhookEvent_Ignored(t *testing.T) {
	f := newFixture(t)

	resp, err := f.uc.HandleWebhookEvent(context.Background(), webhook.Ignored{ID: "evt_9", EventType: "card.updated"})

	assert.NoError(t, err)
	assert.Nil(t, resp)
}

func TestHandleWebhookEvent_DuplicateCreatedDuringSettlement(t *testing.T) {
	f := newFixture(t)
	f.payment.Status = models.PaymentStatusCompleted

	f.ledger.EXPECT().FinalizePayment(gomock.Any(), gomock.Any()).Return(f.payment, false, nil)
	f.ledger.EXPECT().GetPaymentByID(gomock.Any(), f.payment.ID).Return(f.payment, nil)
	f.ledger.EXPECT().ClaimExecution(gomock.Any(), f.payment.ID).
		Return(&models.ExecutionClaim{PaymentID: f.payment.ID, Status: models.ExecutionStatusPending}, false, nil)
	f.chain.EXPECT().PullTransfer(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	_, err := f.uc.HandleWebhookEvent(context.Background(), webhook.AuthorizationCreated{ID: "evt_2", Approved: true, Authorization: authorization("auth_1", "375")})
	assert.NoError(t, err)
}
