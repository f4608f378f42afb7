package verification

import "context"

// ProfileSource supplies profile snapshots and the pending-verification
// worklist.
type ProfileSource interface {
	FindByID(ctx context.Context, profileID string) (*Profile, error)
	ListPendingIDs(ctx context.Context) ([]string, error)
}

// AuditStore persists bot runs, upserting by (profile id, document type).
// Re-running the bot replaces the prior audit, never appends.
type AuditStore interface {
	Upsert(ctx context.Context, record AuditRecord) error
	FindByProfile(ctx context.Context, profileID string) ([]AuditRecord, error)
}
