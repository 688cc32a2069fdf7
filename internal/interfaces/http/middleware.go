package http

import (
	"strconv"

	"github.com/Maxito7/heey_portfolio/internal/application"
	"github.com/gofiber/fiber/v2"
)

// RateLimit rejects clients that exceed the limiter's window, keyed by remote IP.
func RateLimit(rl *application.RateLimiter) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ip := c.IP()
		ok, err := rl.Allow(ip)
		c.Set("X-RateLimit-Remaining", strconv.Itoa(rl.GetRemaining(ip)))
		if !ok {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Next()
	}
}
