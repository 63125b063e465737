package http

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/warden-register/internal/config"
	"github.com/spec-kit/warden-register/internal/persistence"
)

// RateLimiter returns a fixed-window per-IP rate limiting middleware backed
// by Redis. When Redis is not configured the middleware is a pass-through;
// if Redis becomes unreachable requests are allowed rather than refused.
func RateLimiter(store *persistence.Redis, cfg config.RateLimitConfig) fiber.Handler {
	window := time.Duration(cfg.WindowSeconds) * time.Second

	return func(c *fiber.Ctx) error {
		if !store.Enabled() || cfg.MaxRequests <= 0 {
			return c.Next()
		}

		ctx := c.UserContext()
		key := "rate-limit:" + c.IP()

		count, err := store.Client.Incr(ctx, key).Result()
		if err != nil {
			return c.Next()
		}
		if count == 1 {
			_ = store.Client.Expire(ctx, key, window).Err()
		}

		remaining := int64(cfg.MaxRequests) - count
		if remaining < 0 {
			remaining = 0
		}
		c.Set("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

		if count > int64(cfg.MaxRequests) {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"message": "Rate limit exceeded",
			})
		}
		return c.Next()
	}
}
