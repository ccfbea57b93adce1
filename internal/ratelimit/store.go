package ratelimit

import (
	"context"
	"log/slog"
	"time"
)

// Decision is the outcome of one Allow call.
type Decision struct {
	Allowed    bool
	Remaining  int
	RetryAfter time.Duration
}

// Store counts hits per key inside a sliding window.
type Store interface {
	// Allow records a hit for key and reports whether it fits in limit hits per window.
	// Rejected hits are not recorded.
	Allow(ctx context.Context, key string, limit int, window time.Duration) (Decision, error)
}

// Fallback uses Primary and switches to Secondary for any call Primary fails.
type Fallback struct {
	Primary   Store
	Secondary Store
	Logger    *slog.Logger
}

// Allow implements Store.
func (f *Fallback) Allow(ctx context.Context, key string, limit int, window time.Duration) (Decision, error) {
	d, err := f.Primary.Allow(ctx, key, limit, window)
	if err == nil {
		return d, nil
	}
	logger := f.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.WarnContext(ctx, "rate limit store unavailable, using fallback", slog.Any("error", err))
	return f.Secondary.Allow(ctx, key, limit, window)
}
