package middleware // middleware provides shared request processing for handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/smartmeet/room-booking/internal/auth"
)

// BearerAuth returns an Echo middleware that validates a Bearer token with
// the given verifier and injects the resulting identity into the request
// context. Handlers behind it can read the caller via c.Get("username")
// and c.Get("role"). Any Verifier implementation plugs in without the
// handlers changing.
func BearerAuth(v auth.Verifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
			}
			raw := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
			id, err := v.Verify(raw)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}
			c.Set("username", id.Username)
			c.Set("role", id.Role)
			return next(c)
		}
	}
}
