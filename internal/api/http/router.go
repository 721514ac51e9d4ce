package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/fixkit/repairdesk/internal/api/http/handlers"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health      *handlers.HealthHandler
	Customers   *handlers.CustomersHandler
	Technicians *handlers.TechniciansHandler
	Devices     *handlers.DevicesHandler
	Tickets     *handlers.TicketsHandler
	Transfer    *handlers.TransferHandler
	Metrics     *handlers.MetricsHandler
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/customers", cfg.Customers.Create)
	app.Get("/customers", cfg.Customers.List)

	app.Post("/technicians", cfg.Technicians.Create)
	app.Get("/technicians", cfg.Technicians.List)

	app.Post("/devices", cfg.Devices.Create)
	app.Get("/devices", cfg.Devices.List)

	app.Post("/tickets", cfg.Tickets.Create)
	app.Get("/tickets", cfg.Tickets.List)
	app.Get("/tickets/:id", cfg.Tickets.Get)
	app.Patch("/tickets/:id", cfg.Tickets.Update)
	app.Delete("/tickets/:id", cfg.Tickets.Delete)

	app.Get("/export", cfg.Transfer.Export)
	app.Post("/import", cfg.Transfer.Import)

	app.Get("/internal/metrics", cfg.Metrics.Report)
}
