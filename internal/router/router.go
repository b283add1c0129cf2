package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/hirearena/contest-api/internal/config"
	"github.com/hirearena/contest-api/internal/handler"
	"github.com/hirearena/contest-api/internal/middleware"
	"github.com/hirearena/contest-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	ContestHandler      *handler.ContestHandler
	ApplicationHandler  *handler.ApplicationHandler
	TrackerHandler      *handler.TrackerHandler
	NotificationHandler *handler.NotificationHandler
	PaymentHandler      *handler.PaymentHandler
	JWTMiddleware       fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))
	app.Get("/metrics", observability.MetricsHandler())

	// Use provided JWT middleware, or a no-op if nil
	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		jwtMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}

	if deps.ContestHandler != nil {
		// No group-level JWT; the contest handler keeps its public listings
		// open and guards the owner routes itself.
		contests := app.Group("/api/v1/contests")
		deps.ContestHandler.Register(contests, jwtMiddleware)
	}

	if deps.ApplicationHandler != nil {
		applications := app.Group("/api/v1/applications", jwtMiddleware)
		deps.ApplicationHandler.Register(applications)
	}

	if deps.TrackerHandler != nil {
		tracker := app.Group("/api/v1/tracker", jwtMiddleware,
			middleware.RequireRole(middleware.RoleEmployer, middleware.RoleAdmin))
		deps.TrackerHandler.Register(tracker)
	}

	if deps.NotificationHandler != nil {
		notifications := app.Group("/api/v1/notifications", jwtMiddleware)
		deps.NotificationHandler.Register(notifications)
	}

	if deps.PaymentHandler != nil {
		payments := app.Group("/api/v1/payments", jwtMiddleware,
			middleware.RequireRole(middleware.RoleEmployer, middleware.RoleAdmin),
			middleware.RateLimit("payments", cfg.PaymentRateLimit, cfg.PaymentRateWindow))
		deps.PaymentHandler.Register(payments)
	}
}
