package router

import (
	"github.com/labstack/echo/v4"

	"github.com/openstay/hotel-room-booking/internal/guard"
	"github.com/openstay/hotel-room-booking/internal/handler"
	"github.com/openstay/hotel-room-booking/internal/middleware"
)

// RegisterBookings registers the booking lifecycle endpoints. All
// three roles are admitted; the handlers scope what each identity may
// see and which transitions it may perform.
func RegisterBookings(e *echo.Echo, b *handler.BookingHandler, g *guard.Guard, jwtSecret string) {
	grp := e.Group(
		"/v1/bookings",
		middleware.JWTAuth(jwtSecret),
		middleware.LoadIdentity(g),
		middleware.RequireRole(guard.RoleCustomer, guard.RoleOwner, guard.RoleAdmin),
	)

	grp.POST("", b.Create)
	grp.GET("", b.List)
	grp.GET("/:id", b.Get)
	grp.PATCH("/:id/status", b.SetStatus)
}
