package policy

import "context"

// Store persists dealer policies. Implementations return
// sentinel.ErrNotFound when a dealer has no stored policy; the service
// substitutes the platform default in that case.
type Store interface {
	FindByDealer(ctx context.Context, dealerID string) (*DealerPolicy, error)
	Upsert(ctx context.Context, p *DealerPolicy) error
}
