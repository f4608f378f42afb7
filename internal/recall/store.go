package recall

import "context"

// CacheStore persists recall cache entries, upserting by vehicle id. The
// upsert is idempotent, so concurrent refreshes for the same vehicle are an
// accepted last-writer-wins race.
type CacheStore interface {
	Find(ctx context.Context, vehicleID string) (*CacheEntry, error)
	Upsert(ctx context.Context, entry CacheEntry) error
}

// StandingStore persists vehicle standing, upserting by vehicle id.
type StandingStore interface {
	Find(ctx context.Context, vehicleID string) (*StandingRecord, error)
	Upsert(ctx context.Context, record StandingRecord) error
}
