package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/piresc/cardsettle/internal/pkg/models"
	"github.com/piresc/cardsettle/internal/utils"
)

const (
	APIKeyHeader = "X-API-Key"
)

// APIKeyValidator checks service-to-service keys against the configured set
type APIKeyValidator struct {
	keys map[string]string
}

// NewAPIKeyValidator creates a validator from the configured service keys
func NewAPIKeyValidator(cfg models.APIKeyConfig) *APIKeyValidator {
	keys := make(map[string]string, len(cfg.Keys))
	for service, key := range cfg.Keys {
		keys[service] = key
	}
	return &APIKeyValidator{keys: keys}
}

// ValidateAPIKey middleware validates the API key for service-to-service communication
func (v *APIKeyValidator) ValidateAPIKey(allowedServices ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			apiKey := c.Request().Header.Get(APIKeyHeader)
			if apiKey == "" {
				return utils.ErrorResponseHandler(c, http.StatusUnauthorized, "API key is required")
			}

			for _, service := range allowedServices {
				expected := v.keys[service]
				if expected != "" && subtle.ConstantTimeCompare([]byte(apiKey), []byte(expected)) == 1 {
					c.Set("caller_service", service)
					return next(c)
				}
			}

			return utils.ErrorResponseHandler(c, http.StatusUnauthorized, "Invalid API key")
		}
	}
}
