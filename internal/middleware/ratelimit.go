package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/smartmeet/room-booking/internal/config"
)

// RateLimit returns a fixed-window request limiter backed by Redis, keyed
// by client IP and route. When the limiter is disabled or Redis is
// unavailable (nil client, or an error mid-request) requests pass
// through untouched.
func RateLimit(cfg config.RateLimitConfig, rdb *redis.Client) echo.MiddlewareFunc {
	if !cfg.Enabled || rdb == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error { return next(c) }
		}
	}

	windowSecs := int64(cfg.Window / time.Second)
	if windowSecs < 1 {
		windowSecs = 1
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			// Only mutating requests consume budget.
			switch c.Request().Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				return next(c)
			}

			ctx := c.Request().Context()
			key := rateKey(cfg.Prefix, c, windowSecs)

			count, err := rdb.Incr(ctx, key).Result()
			if err != nil {
				return next(c)
			}
			if count == 1 {
				_ = rdb.Expire(ctx, key, cfg.Window).Err()
			}

			remaining := int64(cfg.Limit) - count
			if remaining < 0 {
				remaining = 0
			}
			c.Response().Header().Set("X-RateLimit-Limit", strconv.Itoa(cfg.Limit))
			c.Response().Header().Set("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

			if count > int64(cfg.Limit) {
				c.Response().Header().Set("Retry-After", strconv.FormatInt(windowSecs, 10))
				return c.JSON(http.StatusTooManyRequests, echo.Map{
					"error":   "too_many_requests",
					"message": "rate limit exceeded",
				})
			}
			return next(c)
		}
	}
}

// rateKey buckets requests by IP and route into the current window.
func rateKey(prefix string, c echo.Context, windowSecs int64) string {
	ip := c.RealIP()
	if ip == "" {
		ip = "unknown"
	}
	window := time.Now().Unix() / windowSecs
	parts := []string{prefix, ip, c.Request().Method, c.Path(), strconv.FormatInt(window, 10)}
	return strings.Join(parts, ":")
}
