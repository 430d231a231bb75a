package history

import (
	"sort"
	"sync"
)

// InMemoryStore is a thread-safe, in-memory implementation of Store.
// Useful for tests and for running without persistence.
type InMemoryStore struct {
	mu         sync.RWMutex
	requesters map[string][]Record
}

// NewInMemoryStore creates a new empty store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		requesters: make(map[string][]Record),
	}
}

// Compile-time interface check.
var _ Store = (*InMemoryStore)(nil)

// Save stores a record, replacing any existing record with the same session
// ID, and keeps the requester's slice sorted by EndedAt descending.
func (s *InMemoryStore) Save(requesterID string, rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := s.requesters[requesterID]
	replaced := false
	for i := range records {
		if records[i].SessionID == rec.SessionID {
			records[i] = rec
			replaced = true
			break
		}
	}
	if !replaced {
		records = append(records, rec)
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].EndedAt.After(records[j].EndedAt)
	})
	s.requesters[requesterID] = records
	return nil
}

// RecordsForRequester returns a copy of the requester's records, newest first.
func (s *InMemoryStore) RecordsForRequester(requesterID string) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records, ok := s.requesters[requesterID]
	if !ok {
		return nil, nil
	}

	result := make([]Record, len(records))
	copy(result, records)
	return result, nil
}

// Purge removes all records for a requester.
func (s *InMemoryStore) Purge(requesterID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.requesters, requesterID)
}

// Len returns the number of records stored for a requester.
func (s *InMemoryStore) Len(requesterID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.requesters[requesterID])
}
