package api

import (
	"log"
	"os"
	"strconv"
	"time"
)

// Config holds the HTTP server settings.
type Config struct {
	Addr         string
	CookieSecure bool

	// RateLimitMax requests per RateLimitWindow are allowed per client IP on
	// the /api/auth routes.
	RateLimitMax    int
	RateLimitWindow time.Duration

	// RedisAddr stores rate-limit counters in Redis when set (host:port).
	RedisAddr string
}

// DefaultConfig returns the settings used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		Addr:            ":3000",
		RateLimitMax:    20,
		RateLimitWindow: time.Minute,
	}
}

// LoadConfig reads the HTTP settings from the environment.
func LoadConfig() Config {
	config := DefaultConfig()

	if addr := os.Getenv("HTTP_ADDR"); addr != "" {
		config.Addr = addr
	}
	config.CookieSecure = os.Getenv("COOKIE_SECURE") == "true"

	if raw := os.Getenv("RATE_LIMIT_MAX"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			config.RateLimitMax = n
		} else {
			log.Printf("[api] Ignoring invalid RATE_LIMIT_MAX %q", raw)
		}
	}
	if raw := os.Getenv("RATE_LIMIT_WINDOW"); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil && d > 0 {
			config.RateLimitWindow = d
		} else {
			log.Printf("[api] Ignoring invalid RATE_LIMIT_WINDOW %q", raw)
		}
	}
	config.RedisAddr = os.Getenv("RATE_LIMIT_REDIS_ADDR")

	return config
}
