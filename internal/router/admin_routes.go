package router

import (
	"github.com/labstack/echo/v4"

	"github.com/openstay/hotel-room-booking/internal/guard"
	"github.com/openstay/hotel-room-booking/internal/handler"
	"github.com/openstay/hotel-room-booking/internal/middleware"
)

// RegisterAdmin registers the admin-only moderation endpoints.
func RegisterAdmin(e *echo.Echo, h *handler.HotelHandler, g *guard.Guard, jwtSecret string) {
	grp := e.Group(
		"/v1/admin",
		middleware.JWTAuth(jwtSecret),
		middleware.LoadIdentity(g),
		middleware.RequireRole(guard.RoleAdmin),
	)

	grp.PATCH("/hotels/:id/status", h.SetStatus)
}
