package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Davi3103/chamados4/internal/observability"
	"github.com/Davi3103/chamados4/internal/persistence"
)

// HealthHandler exposes liveness and readiness probes.
type HealthHandler struct {
	pg      *persistence.Postgres
	redis   *persistence.Redis
	metrics *observability.Metrics
}

// NewHealthHandler constructs the handler.
func NewHealthHandler(pg *persistence.Postgres, redis *persistence.Redis, metrics *observability.Metrics) *HealthHandler {
	return &HealthHandler{pg: pg, redis: redis, metrics: metrics}
}

// Live GET /health/live.
func (h *HealthHandler) Live(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// Ready GET /health/ready. Postgres is required; Redis only degrades ticket
// number generation, so its state is reported but never fails the probe.
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	if err := h.pg.PoolHandle().Ping(c.Context()); err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status": "unavailable",
			"detail": "postgres unreachable",
		})
	}

	redisStatus := "ok"
	if err := h.redis.Ping(c.Context()); err != nil {
		redisStatus = "degraded"
	}

	return c.JSON(fiber.Map{
		"status":          "ok",
		"redis":           redisStatus,
		"requests_served": h.metrics.TotalRequests(),
		"avg_request_ms":  h.metrics.AverageDuration().Milliseconds(),
	})
}
