package handler

import (
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/piresc/cardsettle/internal/pkg/models"
	"github.com/piresc/cardsettle/services/settlement"
	httpHandler "github.com/piresc/cardsettle/services/settlement/handler/http"
	nsqHandler "github.com/piresc/cardsettle/services/settlement/handler/nsq"
)

// Handler combines all handlers for the settlement service
type Handler struct {
	webhookHTTP *httpHandler.WebhookHandler
	paymentHTTP *httpHandler.PaymentHandler
	pointsNSQ   *nsqHandler.PointsHandler
	cfg         *models.Config
}

// NewHandler creates a new combined handler
func NewHandler(
	settlementUC settlement.SettlementUC,
	cfg *models.Config,
	nrApp *newrelic.Application,
) *Handler {
	return &Handler{
		webhookHTTP: httpHandler.NewWebhookHandler(cfg.Webhook, settlementUC),
		paymentHTTP: httpHandler.NewPaymentHandler(settlementUC),
		pointsNSQ:   nsqHandler.NewPointsHandler(settlementUC, cfg.NSQ, nrApp),
		cfg:         cfg,
	}
}
