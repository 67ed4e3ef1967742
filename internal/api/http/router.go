package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/spec-kit/helpdesk-service/internal/api/http/handlers"
	"github.com/spec-kit/helpdesk-service/internal/observability"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health   *handlers.HealthHandler
	Tickets  *handlers.TicketsHandler
	Comments *handlers.CommentsHandler
	Stats    *handlers.StatsHandler
	Metrics  *observability.Metrics
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	if cfg.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(cfg.Metrics.Handler()))
	}

	api := app.Group("/api")
	api.Get("/tickets", cfg.Tickets.List)
	api.Post("/tickets", cfg.Tickets.Create)
	api.Get("/tickets/:id", cfg.Tickets.Get)
	api.Put("/tickets/:id", cfg.Tickets.UpdateStatus)
	api.Delete("/tickets/:id", cfg.Tickets.Delete)

	api.Get("/tickets/:id/comments", cfg.Comments.List)
	api.Post("/tickets/:id/comments", cfg.Comments.Create)

	api.Get("/stats", cfg.Stats.Get)
	api.Get("/debug/tables", cfg.Stats.Dump)
}
