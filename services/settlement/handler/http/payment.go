package http

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/newrelic"
	ctxpkg "github.com/piresc/cardsettle/internal/pkg/context"
	"github.com/piresc/cardsettle/internal/pkg/logger"
	"github.com/piresc/cardsettle/internal/pkg/models"
	nrpkg "github.com/piresc/cardsettle/internal/pkg/newrelic"
	"github.com/piresc/cardsettle/internal/utils"
	"github.com/piresc/cardsettle/services/settlement"
)

// PaymentHandler serves the settlement trigger and the operator payment view
type PaymentHandler struct {
	settlementUC settlement.SettlementUC
}

// NewPaymentHandler creates a new payment HTTP handler
func NewPaymentHandler(settlementUC settlement.SettlementUC) *PaymentHandler {
	return &PaymentHandler{
		settlementUC: settlementUC,
	}
}

// ExecutePayment settles a completed payment on chain
func (h *PaymentHandler) ExecutePayment(c echo.Context) error {
	txn := nrpkg.FromEchoContext(c)
	nrpkg.SetTransactionName(txn, "Settlement.ExecutePayment")

	var req models.ExecutePaymentRequest
	if err := c.Bind(&req); err != nil {
		nrpkg.NoticeTransactionError(txn, err)
		return utils.BadRequestResponse(c, "Invalid request body: "+err.Error())
	}

	paymentID, err := uuid.Parse(req.PaymentID)
	if err != nil {
		return utils.BadRequestResponse(c, "paymentId must be a valid UUID")
	}
	nrpkg.AddTransactionAttribute(txn, "payment.id", paymentID.String())

	ctx := ctxpkg.WithPaymentID(c.Request().Context(), paymentID.String())
	c.SetRequest(c.Request().WithContext(ctx))

	result, err := h.settlementUC.ExecutePayment(ctx, paymentID)
	if err != nil {
		return h.settlementError(c, txn, err)
	}

	logger.InfoCtx(ctx, "Payment executed",
		logger.String("tx_hash", result.TxHash),
		logger.String("amount", result.USDC.AmountMinor))

	return c.JSON(http.StatusOK, result)
}

// GetPayment returns a payment with its settlement state
func (h *PaymentHandler) GetPayment(c echo.Context) error {
	txn := nrpkg.FromEchoContext(c)
	nrpkg.SetTransactionName(txn, "Settlement.GetPayment")

	paymentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return utils.BadRequestResponse(c, "Payment ID must be a valid UUID")
	}

	details, err := h.settlementUC.GetPaymentDetails(c.Request().Context(), paymentID)
	if err != nil {
		if errors.Is(err, settlement.ErrNotFound) {
			return utils.NotFoundResponse(c, "Payment not found")
		}
		nrpkg.NoticeTransactionError(txn, err)
		logger.ErrorCtx(c.Request().Context(), "Failed to load payment",
			logger.String("payment_id", paymentID.String()),
			logger.Err(err))
		return utils.InternalServerErrorResponse(c, "")
	}

	return utils.SuccessResponse(c, http.StatusOK, "Payment retrieved", details)
}

// settlementError maps executor failures onto HTTP statuses
func (h *PaymentHandler) settlementError(c echo.Context, txn *newrelic.Transaction, err error) error {
	ctx := c.Request().Context()

	var (
		duplicate    *settlement.DuplicateExecutionError
		insufficient *settlement.InsufficientFundsError
		submission   *settlement.SubmissionError
		unknown      *settlement.ConfirmationUnknownError
		failed       *settlement.ExecutionFailedError
	)

	switch {
	case errors.As(err, &duplicate):
		return utils.ErrorResponseWithDetails(c, http.StatusConflict, "Payment already executed", map[string]string{
			"txHash": duplicate.TxHash,
			"status": string(duplicate.Status),
		})
	case errors.Is(err, settlement.ErrPaymentCancelled):
		return utils.ErrorResponseHandler(c, http.StatusConflict, "Payment was cancelled")
	case errors.Is(err, settlement.ErrPaymentNotFinal):
		return utils.ErrorResponseHandler(c, http.StatusConflict, "Payment is not finalized yet")
	case errors.As(err, &insufficient):
		return utils.ErrorResponseWithDetails(c, http.StatusPaymentRequired, "Insufficient funds", map[string]string{
			"reason":    string(insufficient.Reason),
			"needed":    insufficient.Needed.String(),
			"available": insufficient.Available.String(),
		})
	case errors.Is(err, settlement.ErrNotFound):
		return utils.NotFoundResponse(c, err.Error())
	}

	nrpkg.NoticeTransactionError(txn, err)
	logger.ErrorCtx(ctx, "Payment execution failed", logger.Err(err))

	switch {
	case errors.As(err, &submission):
		return utils.ErrorResponseHandler(c, http.StatusBadGateway, "Settlement transaction was not submitted")
	case errors.As(err, &unknown):
		return utils.ErrorResponseWithDetails(c, http.StatusGatewayTimeout, "Settlement outcome unknown", map[string]string{
			"txHash": unknown.TxHash,
		})
	case errors.As(err, &failed):
		return utils.ErrorResponseWithDetails(c, http.StatusBadGateway, "Settlement transaction reverted", map[string]string{
			"txHash": failed.TxHash,
		})
	case errors.Is(err, settlement.ErrChainUnavailable), errors.Is(err, settlement.ErrRateUnavailable):
		return utils.ServiceUnavailableResponse(c, err.Error())
	default:
		return utils.InternalServerErrorResponse(c, "")
	}
}
