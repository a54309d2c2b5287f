package middleware

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/openstay/hotel-room-booking/internal/guard"
)

// identityKey is the context key under which the resolved identity is
// stored for handlers and downstream middleware.
const identityKey = "identity"

// LoadIdentity resolves the authenticated caller against the current
// user record. JWTAuth must run first. The guard re-reads the user
// row, so a deactivated account is rejected here with 401 even while
// its access token is still cryptographically valid, and role changes
// apply without waiting for token expiry.
func LoadIdentity(g *guard.Guard) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			uid, err := userIDFromContext(c)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
			}
			ident, err := g.Resolve(c.Request().Context(), uid)
			if err != nil {
				if errors.Is(err, guard.ErrUnauthorized) {
					return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
				}
				return c.JSON(http.StatusInternalServerError, echo.Map{"error": "identity lookup failed"})
			}
			c.Set(identityKey, ident)
			return next(c)
		}
	}
}

// CurrentIdentity returns the identity stored by LoadIdentity. The
// boolean is false when the middleware did not run on this route.
func CurrentIdentity(c echo.Context) (guard.Identity, bool) {
	ident, ok := c.Get(identityKey).(guard.Identity)
	return ident, ok
}

// userIDFromContext converts the "user_id" claim stored by JWTAuth
// into a uint64. JSON numbers arrive as float64; tokens issued by
// other stacks may carry strings.
func userIDFromContext(c echo.Context) (uint64, error) {
	switch t := c.Get("user_id").(type) {
	case uint64:
		return t, nil
	case int:
		return uint64(t), nil
	case int64:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid user_id in context")
}
