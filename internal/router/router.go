// Package router wires handlers to URL paths and attaches the auth,
// role, cache and rate-limit middleware per route group.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/railway-reservation/internal/handler"
	"github.com/iliyamo/railway-reservation/internal/middleware"
)

// RegisterRoutes registers routes that carry no authentication at all.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the auth endpoints.  Register, login and
// refresh are open; me and logout require a valid access token.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.Use(middleware.RequireRole("ADMIN", "PASSENGER"))
	auth.GET("/me", a.Me)
	auth.POST("/logout", a.Logout)
}

// RegisterPublic registers the unauthenticated catalog browse
// endpoints.  The cacheable catalog reads take the Redis cache
// middleware; the seat map and fare quote stay uncached because their
// payloads change with every sale.
func RegisterPublic(e *echo.Echo, p *handler.PublicHandler, cache echo.MiddlewareFunc) {
	e.GET("/v1/stations", p.ListStations, cache)
	e.GET("/v1/classes", p.ListClasses, cache)
	e.GET("/v1/trains", p.ListTrains, cache)
	e.GET("/v1/schedules", p.SearchSchedules, cache)
	e.GET("/v1/schedules/:id", p.GetSchedule, cache)
	e.GET("/v1/schedules/:id/seats", p.GetScheduleSeats)
	e.GET("/v1/schedules/:id/fare", p.GetFare)
}
