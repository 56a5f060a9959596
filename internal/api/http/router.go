package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Davi3103/chamados4/internal/api/http/handlers"
	"github.com/Davi3103/chamados4/pkg/util"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health *handlers.HealthHandler
	Intake *handlers.IntakeHandler
}

// RegisterRoutes wires HTTP routes. /tickets accepts POST and the CORS
// preflight; every other method is rejected.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/tickets", cfg.Intake.Create)
	app.Options("/tickets", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})
	app.All("/tickets", func(c *fiber.Ctx) error {
		return util.NewMethodNotAllowed()
	})
}
