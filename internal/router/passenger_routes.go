package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/railway-reservation/internal/handler"
	"github.com/iliyamo/railway-reservation/internal/middleware"
)

// RegisterPassenger registers the booking endpoints under /v1.  All
// routes require a valid JWT; both roles may book, since an admin
// travelling is still a passenger.
func RegisterPassenger(e *echo.Echo, h *handler.BookingHandler, jwtSecret string) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("PASSENGER", "ADMIN"),
	)
	g.POST("/bookings", h.Create)
	g.GET("/bookings/:id", h.Get)
	g.POST("/bookings/:id/cancel", h.Cancel)
	g.DELETE("/bookings/:id", h.Cancel)
	g.GET("/my-bookings", h.MyBookings)
}
