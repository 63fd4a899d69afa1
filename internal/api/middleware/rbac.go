package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sweetshop/inventory-system/internal/core/domain"
)

// Permit gates a route on the permission table for the given operation. The
// role is taken from the context set by Auth; denial renders the operation's
// contract message with a 403.
func Permit(op domain.Operation) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get(CtxRole).(string)
			if !domain.Allow(domain.Role(role), op) {
				return echo.NewHTTPError(http.StatusForbidden, domain.ForbiddenMessage(op))
			}
			return next(c)
		}
	}
}
