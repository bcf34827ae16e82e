// Package api serves the operational HTTP endpoints: health and metrics.
package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/celestiaorg/vmbot/internal/api/middleware"
)

// GatewayStatus reports whether the chat gateway is connected
type GatewayStatus interface {
	Connected() bool
}

// NewServer builds the fiber app exposing /health and /metrics
func NewServer(gateway GatewayStatus, gatherer prometheus.Gatherer) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler:          customErrorHandler,
		DisableStartupMessage: true,
	})

	app.Use(middleware.Logger())

	app.Get("/health", func(c *fiber.Ctx) error {
		if gateway != nil && !gateway.Connected() {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status":  "degraded",
				"gateway": "disconnected",
			})
		}
		return c.JSON(fiber.Map{"status": "healthy", "gateway": "connected"})
	})

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	return app
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
	})
}
