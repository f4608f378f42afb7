package vehicle

import (
	"context"
	"sync"

	"curbo/pkg/platform/sentinel"
)

// InMemoryStore keeps vehicles in a map for unit tests and demo mode.
type InMemoryStore struct {
	mu       sync.RWMutex
	vehicles map[string]Vehicle
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{vehicles: make(map[string]Vehicle)}
}

func (s *InMemoryStore) Put(v Vehicle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vehicles[v.ID] = v
}

func (s *InMemoryStore) FindByID(_ context.Context, vehicleID string) (*Vehicle, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.vehicles[vehicleID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &v, nil
}
