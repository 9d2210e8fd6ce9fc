package handler

import (
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
	"github.com/piresc/cardsettle/internal/pkg/middleware"
)

const (
	opsRateLimit  = 60
	opsRatePeriod = time.Minute
)

// RegisterRoutes registers all HTTP routes
func (h *Handler) RegisterRoutes(e *echo.Echo, apiKeys *middleware.APIKeyValidator, redisClient *redis.Client) {
	// Card network webhook, authenticated by its body signature
	e.POST("/webhook", h.webhookHTTP.Receive)

	// Internal routes for service-to-service communication (API key required)
	internal := e.Group("/internal", apiKeys.ValidateAPIKey("webhook-service", "operator-service"))
	internal.POST("/execute-payment", h.paymentHTTP.ExecutePayment)

	// Operator routes for reconciliation (JWT required)
	ops := e.Group("/ops",
		middleware.JWTAuthMiddleware(h.cfg.JWT),
		middleware.RequireRole("operator", "admin"),
		middleware.IPRateLimiter(opsRateLimit, opsRatePeriod, redisClient))
	ops.GET("/payments/:id", h.paymentHTTP.GetPayment)
}

// InitNSQConsumers initializes all NSQ consumers
func (h *Handler) InitNSQConsumers() error {
	return h.pointsNSQ.InitConsumers()
}

// StopNSQConsumers drains all NSQ consumers
func (h *Handler) StopNSQConsumers() {
	h.pointsNSQ.Stop()
}
