package middleware

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// LoginLimiter decides whether another attempt is allowed for a client.
type LoginLimiter interface {
	Allow(ctx context.Context, kind, identity string) (bool, error)
}

// LoginThrottle limits login attempts per client IP. Requests over budget
// receive 429. A limiter failure fails open: authentication still decides,
// only throttling is lost.
func LoginThrottle(limiter LoginLimiter, kind string, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ip := c.RealIP()
			if ip == "" {
				return next(c)
			}

			ok, err := limiter.Allow(c.Request().Context(), kind, ip)
			if err != nil {
				log.Warn().Err(err).Msg("login throttle unavailable, allowing request")
				return next(c)
			}
			if !ok {
				return echo.NewHTTPError(http.StatusTooManyRequests, "too many login attempts, try again later")
			}

			return next(c)
		}
	}
}
