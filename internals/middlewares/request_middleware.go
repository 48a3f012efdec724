package middlewares

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/utils"
)

const (
	HeaderRequestID       = "X-Request-ID"
	DefaultRequestTimeout = 5 * time.Second
)

// RequestID reuses an incoming X-Request-ID or mints one, and echoes it back.
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(HeaderRequestID)
		if id == "" {
			id = utils.UUID()
		}
		c.Locals("requestid", id)
		c.Set(HeaderRequestID, id)
		return c.Next()
	}
}

// RequestTimeout attaches a deadline to the request context. Services reach
// it through c.UserContext().
func RequestTimeout(d time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), d)
		defer cancel()
		c.SetUserContext(ctx)
		return c.Next()
	}
}
