package ratelimit

import (
	"context"
	"time"
)

// BucketStore tracks attempts per key over a sliding window. Peek and Record
// are split so a caller can check the limit before an expensive operation
// and consume quota only when the operation succeeds.
type BucketStore interface {
	// Peek reports the current state for a key without consuming quota.
	Peek(ctx context.Context, key string, limit int, window time.Duration) (*Result, error)
	// Record consumes one unit of quota for a key.
	Record(ctx context.Context, key string, window time.Duration) error
	// Reset clears the counter for a key.
	Reset(ctx context.Context, key string) error
}
