package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/openstay/hotel-room-booking/internal/guard"
)

// RequireRole enforces that the resolved identity holds one of the
// given roles. LoadIdentity must run earlier in the chain; a missing
// identity is treated as unauthorized rather than forbidden. The
// check uses the role read from the user row, never the token claim.
func RequireRole(roles ...guard.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ident, ok := CurrentIdentity(c)
			if !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
			}
			if !ident.Allowed(roles...) {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
