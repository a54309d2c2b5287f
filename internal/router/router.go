// Package router wires HTTP routes to handlers and middleware. Routes
// are grouped by audience: public browse endpoints carry no
// middleware, authenticated groups run JWTAuth followed by
// LoadIdentity (which re-reads the user row through the guard) and a
// role requirement.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/openstay/hotel-room-booking/internal/guard"
	"github.com/openstay/hotel-room-booking/internal/handler"
	"github.com/openstay/hotel-room-booking/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the authentication endpoints. Register,
// login, refresh and logout live under /v1/auth and carry no JWT
// middleware; /v1/me requires a full identity.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, g *guard.Guard, jwtSecret string) {
	grp := e.Group("/v1/auth")
	grp.POST("/register", a.Register)
	grp.POST("/login", a.Login)
	grp.POST("/refresh", a.Refresh)
	grp.POST("/refresh-access", a.RefreshAccess)
	// Logout works with either a bearer token or a refresh token in
	// the body, so it is registered without the JWT middleware.
	grp.POST("/logout", a.Logout)

	auth := e.Group("/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.LoadIdentity(g),
	)
	auth.GET("/me", a.Me)
}

// RegisterPublic registers the unauthenticated browse endpoints:
// approved hotels, their bookable rooms and the availability preview.
// The response cache applies only here; authenticated routes must
// never serve one caller's response to another.
func RegisterPublic(e *echo.Echo, h *handler.HotelHandler, r *handler.RoomHandler, cache echo.MiddlewareFunc) {
	grp := e.Group("/v1", cache)
	grp.GET("/hotels", h.ListPublic)
	grp.GET("/hotels/:id", h.GetPublic)
	grp.GET("/hotels/:id/rooms", h.ListRoomsPublic)
	grp.GET("/rooms", r.ListPublic)
	grp.GET("/rooms/:id", r.GetPublic)
	// Advisory only; booking creation re-checks under the room lock.
	grp.GET("/rooms/:id/availability", r.Availability)
}
