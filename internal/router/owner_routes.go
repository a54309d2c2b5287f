package router

import (
	"github.com/labstack/echo/v4"

	"github.com/openstay/hotel-room-booking/internal/guard"
	"github.com/openstay/hotel-room-booking/internal/handler"
	"github.com/openstay/hotel-room-booking/internal/middleware"
)

// RegisterOwner registers the hotel-owner catalog endpoints. Admins
// are also admitted: ownership checks inside the repositories let them
// bypass the per-row owner match.
func RegisterOwner(e *echo.Echo, h *handler.HotelHandler, r *handler.RoomHandler, g *guard.Guard, jwtSecret string) {
	grp := e.Group(
		"/v1/owner",
		middleware.JWTAuth(jwtSecret),
		middleware.LoadIdentity(g),
		middleware.RequireRole(guard.RoleOwner, guard.RoleAdmin),
	)

	grp.POST("/hotels", h.Create)
	grp.GET("/hotels", h.ListMine)
	grp.PUT("/hotels/:id", h.Update)
	grp.DELETE("/hotels/:id", h.Delete)
	grp.GET("/hotels/:id/rooms", r.ListByHotel)

	grp.POST("/rooms", r.Create)
	grp.PUT("/rooms/:id", r.Update)
	grp.PATCH("/rooms/:id/active", r.SetActive)
	grp.DELETE("/rooms/:id", r.Delete)
}
