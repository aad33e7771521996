package api

import (
	"fmt"
	"net"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/storage/redis/v3"
)

// newRedisStorage connects the limiter's counter store to Redis.
func newRedisStorage(addr string) (*redis.Storage, error) {
	host, rawPort, err := net.SplitHostPort(addr)
	if err != nil {
		return nil, fmt.Errorf("invalid redis address %q: %w", addr, err)
	}
	port, err := strconv.Atoi(rawPort)
	if err != nil {
		return nil, fmt.Errorf("invalid redis port %q: %w", rawPort, err)
	}

	return redis.New(redis.Config{
		Host: host,
		Port: port,
	}), nil
}

// newRateLimiter limits requests per client IP. A nil storage keeps the
// counters in memory.
func newRateLimiter(config Config, storage fiber.Storage) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        config.RateLimitMax,
		Expiration: config.RateLimitWindow,
		KeyGenerator: func(c *fiber.Ctx) string {
			return "auth:" + c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(ErrorResponse{
				Error:   "too_many_requests",
				Message: "Too many requests, please try again later",
			})
		},
		Storage: storage,
	})
}
