package ratelimit

import (
	"context"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"curbo/internal/platform/middleware"
)

var rejectionsTotal = promauto.NewCounter(prometheus.CounterOpts{
	Name: "curbo_rate_limit_rejections_total",
	Help: "Recall lookups rejected by the per-caller rate limit",
})

// Limiter applies the configured per-caller limit. Callers are keyed by
// authenticated user id when present, client IP otherwise.
type Limiter struct {
	store    BucketStore
	limit    int
	window   time.Duration
	logger   *slog.Logger
	disabled bool
}

type Option func(*Limiter)

// WithDisabled disables rate limiting entirely (demo mode).
func WithDisabled(disabled bool) Option {
	return func(l *Limiter) {
		l.disabled = disabled
	}
}

func New(store BucketStore, limit int, window time.Duration, logger *slog.Logger, opts ...Option) *Limiter {
	l := &Limiter{
		store:  store,
		limit:  limit,
		window: window,
		logger: logger,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// CallerKey derives the rate-limit key from the request context.
func CallerKey(ctx context.Context) string {
	if userID := middleware.GetUserID(ctx); userID != "" {
		return "user:" + userID
	}
	return "ip:" + middleware.GetClientIP(ctx)
}

// Check reports whether the caller may proceed, without consuming quota.
// Store failures are logged and reported as allowed: the limiter's own
// availability must never block the feature.
func (l *Limiter) Check(ctx context.Context, key string) *Result {
	if l.disabled {
		return l.openResult()
	}

	result, err := l.store.Peek(ctx, key, l.limit, l.window)
	if err != nil {
		l.logger.WarnContext(ctx, "rate limit check failed, allowing request",
			"key", key,
			"error", err,
		)
		return l.openResult()
	}
	if !result.Allowed {
		rejectionsTotal.Inc()
	}
	return result
}

// RecordSuccess consumes one unit of quota. Call only after the guarded
// operation succeeded; errors are logged, never surfaced.
func (l *Limiter) RecordSuccess(ctx context.Context, key string) {
	if l.disabled {
		return
	}
	if err := l.store.Record(ctx, key, l.window); err != nil {
		l.logger.WarnContext(ctx, "failed to record rate limit attempt",
			"key", key,
			"error", err,
		)
	}
}

func (l *Limiter) openResult() *Result {
	return &Result{
		Allowed:   true,
		Limit:     l.limit,
		Remaining: l.limit,
		ResetAt:   time.Now().Add(l.window),
	}
}
