package http

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/piresc/cardsettle/internal/pkg/logger"
	"github.com/piresc/cardsettle/internal/pkg/models"
	nrpkg "github.com/piresc/cardsettle/internal/pkg/newrelic"
	"github.com/piresc/cardsettle/internal/pkg/webhook"
	"github.com/piresc/cardsettle/internal/utils"
	"github.com/piresc/cardsettle/services/settlement"
)

const maxWebhookBody = 1 << 20

// WebhookHandler receives card issuer webhook deliveries
type WebhookHandler struct {
	cfg          models.WebhookConfig
	settlementUC settlement.SettlementUC
}

// NewWebhookHandler creates a new webhook HTTP handler
func NewWebhookHandler(cfg models.WebhookConfig, settlementUC settlement.SettlementUC) *WebhookHandler {
	return &WebhookHandler{
		cfg:          cfg,
		settlementUC: settlementUC,
	}
}

// Receive verifies, parses and dispatches one webhook delivery
func (h *WebhookHandler) Receive(c echo.Context) error {
	txn := nrpkg.FromEchoContext(c)
	nrpkg.SetTransactionName(txn, "Settlement.Webhook")
	ctx := c.Request().Context()

	body, err := io.ReadAll(io.LimitReader(c.Request().Body, maxWebhookBody))
	if err != nil {
		return utils.BadRequestResponse(c, "Unable to read request body")
	}

	// Nothing is parsed until the signature matches the raw body
	if err := webhook.Verify(h.cfg.Secret, body, c.Request().Header.Get(h.cfg.SignatureHeader)); err != nil {
		requestID, _ := c.Get("request_id").(string)
		logger.WarnCtx(ctx, "Webhook signature rejected",
			logger.Bool("security_event", true),
			logger.String("remote_ip", c.RealIP()),
			logger.String("request_id", requestID),
			logger.Int("body_size", len(body)))
		nrpkg.AddTransactionAttribute(txn, "webhook.signature_valid", false)
		return utils.BadRequestResponse(c, "Invalid signature")
	}

	event, err := webhook.Parse(body)
	if err != nil {
		logger.WarnCtx(ctx, "Malformed webhook event", logger.Err(err))
		return utils.BadRequestResponse(c, "Malformed event")
	}

	nrpkg.AddTransactionAttribute(txn, "webhook.event_id", event.EventID())
	nrpkg.AddTransactionAttribute(txn, "webhook.event_type", event.Type())

	resp, err := h.settlementUC.HandleWebhookEvent(ctx, event)
	if err != nil {
		// A 5xx makes the card network redeliver
		logger.ErrorCtx(ctx, "Failed to handle webhook event",
			logger.String("event_id", event.EventID()),
			logger.String("event_type", event.Type()),
			logger.Err(err))
		nrpkg.NoticeTransactionError(txn, err)
		return utils.InternalServerErrorResponse(c, "")
	}

	if resp != nil {
		return c.JSON(http.StatusOK, resp)
	}
	return c.JSON(http.StatusOK, "ok")
}

