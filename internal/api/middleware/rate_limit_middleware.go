package middleware

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/postplannerhq/postplanner/internal/ratelimit"
)

type RateLimitMiddleware struct {
	store ratelimit.Store
}

func NewRateLimitMiddleware(store ratelimit.Store) *RateLimitMiddleware {
	return &RateLimitMiddleware{store: store}
}

// Limit counts requests per identifier into the named bucket over a fixed
// window. The identifier is the signed-in user when available, the client IP
// otherwise.
func (m *RateLimitMiddleware) Limit(bucket string, limit int, window time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identifier := c.IP()
		if userID, ok := c.Locals("user_id").(string); ok && userID != "" {
			identifier = userID
		}

		count, resetAt, err := m.store.Increment(c.Context(), identifier, bucket, window)
		if err != nil {
			slog.Info(err.Error())
			return c.Next()
		}

		remaining := limit - count
		if remaining < 0 {
			remaining = 0
		}

		c.Set("X-RateLimit-Limit", fmt.Sprintf("%d", limit))
		c.Set("X-RateLimit-Remaining", fmt.Sprintf("%d", remaining))
		c.Set("X-RateLimit-Reset", fmt.Sprintf("%d", resetAt.Unix()))

		if count > limit {
			retryAfter := int(time.Until(resetAt).Seconds())
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Set("Retry-After", fmt.Sprintf("%d", retryAfter))
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests, slow down",
			})
		}

		return c.Next()
	}
}
