package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"hello-web/internal/service"

	"github.com/labstack/echo/v4"
)

const ContextAdminKey = "admin"

func extractClaims(c echo.Context, secret string) (*service.AdminClaims, error) {
	authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
	if authHeader == "" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing token")
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header format")
	}
	claims, err := service.VerifyAdminToken(secret, parts[1])
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, fmt.Sprintf("invalid token: %v", err))
	}
	return claims, nil
}

// RequireAdmin 要求帶有管理員權限的 Bearer JWT
func RequireAdmin(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, err := extractClaims(c, secret)
			if err != nil {
				return err
			}
			if !claims.IsAdmin {
				return echo.NewHTTPError(http.StatusForbidden, "admin privileges required")
			}
			c.Set(ContextAdminKey, claims)
			return next(c)
		}
	}
}
