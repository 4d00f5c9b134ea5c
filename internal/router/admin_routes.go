package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/railway-reservation/internal/handler"
	"github.com/iliyamo/railway-reservation/internal/middleware"
)

// RegisterAdmin registers the catalog management and booking
// administration endpoints under /v1/admin, restricted to the ADMIN
// role.
func RegisterAdmin(e *echo.Echo, catalog *handler.AdminCatalogHandler, bookings *handler.AdminBookingHandler, jwtSecret string) {
	g := e.Group(
		"/v1/admin",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("ADMIN"),
	)

	g.POST("/stations", catalog.CreateStation)
	g.POST("/classes", catalog.CreateClass)
	g.POST("/trains", catalog.CreateTrain)
	g.PATCH("/trains/:id/active", catalog.SetTrainActive)
	g.POST("/trains/:id/compartments", catalog.CreateCompartment)
	g.GET("/trains/:id/compartments", catalog.ListCompartments)
	g.POST("/schedules", catalog.CreateSchedule)
	g.PATCH("/schedules/:id/active", catalog.SetScheduleActive)

	g.GET("/bookings", bookings.List)
	g.GET("/bookings/:id", bookings.Get)
	g.PUT("/bookings/:id/status", bookings.UpdateStatus)
}
