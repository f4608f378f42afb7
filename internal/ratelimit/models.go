// Package ratelimit enforces per-caller limits on recall refreshes. The
// limiter is evaluated before the upstream call and the attempt is recorded
// only after a confirmed success, so a failed upstream call never consumes a
// caller's quota. The limiter's own infrastructure failures are swallowed
// and logged, defaulting to allowed: its availability must never block the
// feature.
package ratelimit

import "time"

// Result represents the outcome of a rate limit check.
type Result struct {
	Allowed    bool      `json:"allowed"`
	Limit      int       `json:"limit"`
	Remaining  int       `json:"remaining"`
	ResetAt    time.Time `json:"reset_at"`
	RetryAfter int       `json:"retry_after,omitempty"` // seconds, only set when not allowed
}
