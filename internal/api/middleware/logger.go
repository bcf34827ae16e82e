package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/celestiaorg/vmbot/internal/logger"
)

// Logger returns a middleware that logs HTTP requests at debug level
func Logger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		logger.DebugWithFields("Request", logger.Fields{
			"status":  c.Response().StatusCode(),
			"latency": time.Since(start).String(),
			"ip":      c.IP(),
			"method":  c.Method(),
			"path":    c.Path(),
		})

		return err
	}
}
