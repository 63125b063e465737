package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/warden-register/internal/api/http/handlers"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health  *handlers.HealthHandler
	Wardens *handlers.WardensHandler
}

// RegisterRoutes wires HTTP routes. Paths keep the /api prefix the kiosk
// clients were built against.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	api := app.Group("/api")

	api.Get("/health", cfg.Health.Live)
	api.Get("/health/ready", cfg.Health.Ready)

	api.Get("/warden/:id", cfg.Wardens.Lookup)
	api.Get("/wardens", cfg.Wardens.List)
	api.Post("/register", cfg.Wardens.Register)
	api.Put("/update", cfg.Wardens.UpdateLocation)
	api.Put("/amend", cfg.Wardens.Amend)
	api.Delete("/checkout/:id", cfg.Wardens.Checkout)
}
