package recall

import (
	"context"
	"sync"

	"curbo/pkg/platform/sentinel"
)

// InMemoryCacheStore keeps cache entries in a map. Unit tests and demo mode
// use it in place of Postgres.
type InMemoryCacheStore struct {
	mu      sync.RWMutex
	entries map[string]CacheEntry
}

func NewInMemoryCacheStore() *InMemoryCacheStore {
	return &InMemoryCacheStore{entries: make(map[string]CacheEntry)}
}

func (s *InMemoryCacheStore) Find(_ context.Context, vehicleID string) (*CacheEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[vehicleID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	copied := e
	copied.Recalls = append(copied.Recalls[:0:0], e.Recalls...)
	return &copied, nil
}

func (s *InMemoryCacheStore) Upsert(_ context.Context, entry CacheEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry.Recalls = append(entry.Recalls[:0:0], entry.Recalls...)
	s.entries[entry.VehicleID] = entry
	return nil
}

// InMemoryStandingStore keeps standing records in a map.
type InMemoryStandingStore struct {
	mu      sync.RWMutex
	records map[string]StandingRecord
}

func NewInMemoryStandingStore() *InMemoryStandingStore {
	return &InMemoryStandingStore{records: make(map[string]StandingRecord)}
}

func (s *InMemoryStandingStore) Find(_ context.Context, vehicleID string) (*StandingRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.records[vehicleID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	copied := r
	copied.Standing.Reasons = append(copied.Standing.Reasons[:0:0], r.Standing.Reasons...)
	return &copied, nil
}

func (s *InMemoryStandingStore) Upsert(_ context.Context, record StandingRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	record.Standing.Reasons = append(record.Standing.Reasons[:0:0], record.Standing.Reasons...)
	s.records[record.VehicleID] = record
	return nil
}
