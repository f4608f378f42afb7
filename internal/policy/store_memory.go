package policy

import (
	"context"
	"sync"

	"curbo/pkg/platform/sentinel"
)

// InMemoryStore keeps dealer policies in a map. Unit tests and demo mode use
// it in place of Postgres.
type InMemoryStore struct {
	mu       sync.RWMutex
	policies map[string]DealerPolicy
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{policies: make(map[string]DealerPolicy)}
}

func (s *InMemoryStore) FindByDealer(_ context.Context, dealerID string) (*DealerPolicy, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.policies[dealerID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	copied := p
	copied.AllowedTiers = append(copied.AllowedTiers[:0:0], p.AllowedTiers...)
	return &copied, nil
}

func (s *InMemoryStore) Upsert(_ context.Context, p *DealerPolicy) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := *p
	stored.AllowedTiers = append(stored.AllowedTiers[:0:0], p.AllowedTiers...)
	s.policies[p.DealerID] = stored
	return nil
}
