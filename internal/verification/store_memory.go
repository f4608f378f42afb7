package verification

import (
	"context"
	"sort"
	"sync"

	"curbo/pkg/platform/sentinel"
)

type auditKey struct {
	profileID    string
	documentType DocumentType
}

// InMemoryAuditStore keeps bot audits in a map. Unit tests and demo mode use
// it in place of Postgres.
type InMemoryAuditStore struct {
	mu      sync.RWMutex
	records map[auditKey]AuditRecord
}

func NewInMemoryAuditStore() *InMemoryAuditStore {
	return &InMemoryAuditStore{records: make(map[auditKey]AuditRecord)}
}

func (s *InMemoryAuditStore) Upsert(_ context.Context, record AuditRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	record.Flags = append(record.Flags[:0:0], record.Flags...)
	s.records[auditKey{record.ProfileID, record.DocumentType}] = record
	return nil
}

func (s *InMemoryAuditStore) FindByProfile(_ context.Context, profileID string) ([]AuditRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []AuditRecord
	for key, record := range s.records {
		if key.profileID == profileID {
			copied := record
			copied.Flags = append(copied.Flags[:0:0], record.Flags...)
			out = append(out, copied)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].DocumentType < out[j].DocumentType
	})
	return out, nil
}

// InMemoryProfileStore holds profile snapshots for tests and demo mode.
type InMemoryProfileStore struct {
	mu       sync.RWMutex
	profiles map[string]Profile
	pending  []string
}

func NewInMemoryProfileStore() *InMemoryProfileStore {
	return &InMemoryProfileStore{profiles: make(map[string]Profile)}
}

func (s *InMemoryProfileStore) Put(p Profile, pending bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles[p.ID] = p
	if pending {
		s.pending = append(s.pending, p.ID)
	}
}

func (s *InMemoryProfileStore) FindByID(_ context.Context, profileID string) (*Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.profiles[profileID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	copied := p
	copied.Documents = append(copied.Documents[:0:0], p.Documents...)
	return &copied, nil
}

func (s *InMemoryProfileStore) ListPendingIDs(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append(s.pending[:0:0], s.pending...), nil
}
