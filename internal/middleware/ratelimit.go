package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"

	"github.com/roomus/rooms-api/internal/config"
)

// RateLimiter applies a shared token bucket to the routes it is attached to.
// A zero config disables limiting. name appears in the 429 message.
func RateLimiter(name string, cfg config.RateLimitConfig) echo.MiddlewareFunc {
	if cfg.Requests <= 0 || cfg.Interval <= 0 {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return next
		}
	}

	perRequest := cfg.Interval / time.Duration(cfg.Requests)
	if perRequest <= 0 {
		perRequest = time.Second
	}

	limiter := rate.NewLimiter(rate.Every(perRequest), cfg.Requests)
	var mu sync.Mutex
	message := name + " rate limit exceeded"

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			mu.Lock()
			reservation := limiter.Reserve()
			delay := reservation.Delay()
			if delay > 0 {
				reservation.Cancel()
			}
			mu.Unlock()

			if delay > 0 {
				seconds := int(delay.Round(time.Second) / time.Second)
				if seconds < 1 {
					seconds = 1
				}
				c.Response().Header().Set("Retry-After", strconv.Itoa(seconds))
				return c.JSON(http.StatusTooManyRequests, map[string]string{
					"status":  "error",
					"message": message,
				})
			}

			return next(c)
		}
	}
}
