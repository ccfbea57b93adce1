package middleware

import (
	"log/slog"
	"math"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	apperrors "github.com/evanWh1te/cville-kitchen-website-sub000/internal/errors"
	"github.com/evanWh1te/cville-kitchen-website-sub000/internal/ratelimit"
)

// RateLimitConfig limits requests per client address within a sliding window.
type RateLimitConfig struct {
	Store   ratelimit.Store
	Name    string
	Limit   int
	Window  time.Duration
	Message string
	Logger  *slog.Logger
}

// RateLimit rejects requests beyond the quota with 429 and a Retry-After header.
// A failing store lets the request through.
func RateLimit(cfg RateLimitConfig) echo.MiddlewareFunc {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Message == "" {
		cfg.Message = "Too many requests, please try again later"
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := cfg.Name + ":" + c.RealIP()
			d, err := cfg.Store.Allow(c.Request().Context(), key, cfg.Limit, cfg.Window)
			if err != nil {
				cfg.Logger.ErrorContext(c.Request().Context(), "rate limit check failed",
					slog.String("limiter", cfg.Name), slog.Any("error", err))
				return next(c)
			}
			if !d.Allowed {
				seconds := int(math.Ceil(d.RetryAfter.Seconds()))
				if seconds < 1 {
					seconds = 1
				}
				c.Response().Header().Set("Retry-After", strconv.Itoa(seconds))
				return apperrors.New(apperrors.ErrRateLimited, cfg.Message)
			}
			c.Response().Header().Set("X-RateLimit-Remaining", strconv.Itoa(d.Remaining))
			return next(c)
		}
	}
}
