package middleware

import (
	"math"
	"strconv"

	"github.com/labstack/echo/v4"

	"kitnetia/internal/infrastructure/ratelimit"
	"kitnetia/pkg/errors"
	"kitnetia/pkg/logger"
	"kitnetia/pkg/response"
)

type RateLimitMiddleware struct {
	limiter *ratelimit.RateLimiter
}

func NewRateLimitMiddleware(limiter *ratelimit.RateLimiter) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		limiter: limiter,
	}
}

// Limit throttles action per authenticated user, falling back to the client IP.
func (m *RateLimitMiddleware) Limit(action string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := UserID(c)
			if key == "" {
				key = c.RealIP()
			}

			allowed, wait := m.limiter.Allow(key, action)
			if !allowed {
				logger.Warn("RATE LIMIT: %s exceeded for %s", action, key)
				c.Response().Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(wait.Seconds()))))
				return response.Error(c, errors.TooManyRequests("Too many requests, please try again later"))
			}

			return next(c)
		}
	}
}
