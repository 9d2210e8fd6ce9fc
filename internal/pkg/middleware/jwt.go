package middleware

import (
	"fmt"
	"strings"

	"github.com/labstack/echo/v4"
	jwtpkg "github.com/piresc/cardsettle/internal/pkg/jwt"
	"github.com/piresc/cardsettle/internal/pkg/models"
	"github.com/piresc/cardsettle/internal/utils"
)

// JWTAuthMiddleware creates a middleware for operator JWT authentication
func JWTAuthMiddleware(config models.JWTConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return utils.UnauthorizedResponse(c, "Authorization header is required")
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				return utils.UnauthorizedResponse(c, "Invalid authorization format")
			}

			claims, err := jwtpkg.ValidateToken(parts[1], config.Secret)
			if err != nil {
				return utils.UnauthorizedResponse(c, "Invalid token")
			}

			operator, ok := (*claims)["operator"]
			if !ok {
				return utils.UnauthorizedResponse(c, "Invalid token: missing operator claim")
			}

			role, ok := (*claims)["role"]
			if !ok {
				return utils.UnauthorizedResponse(c, "Invalid token: missing role claim")
			}

			c.Set("operator", fmt.Sprintf("%v", operator))
			c.Set("operator_role", fmt.Sprintf("%v", role))

			return next(c)
		}
	}
}

// RequireRole rejects operators whose role is not in the allowed list
func RequireRole(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get("operator_role").(string)
			for _, allowed := range roles {
				if role == allowed {
					return next(c)
				}
			}
			return utils.ForbiddenResponse(c, "Operator role not permitted")
		}
	}
}
