package middleware

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"leadtrack-crm/internal/pkg/metrics"
)

// Metrics observes request latency by route template, so /leads/1 and
// /leads/2 share a series.
func Metrics() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			status, _ = classify(err)
		}

		metrics.HTTPRequestDuration.
			WithLabelValues(c.Method(), c.Route().Path, strconv.Itoa(status)).
			Observe(time.Since(start).Seconds())

		return err
	}
}
