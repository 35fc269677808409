package logging

import (
	"context"
	"sync"
)

// MemoryStore keeps records in memory. It is lost on restart.
type MemoryStore struct {
	mu   sync.RWMutex
	recs []TripRecord
}

func NewMemoryStore() *MemoryStore { return &MemoryStore{} }

func (s *MemoryStore) Append(_ context.Context, rec TripRecord) error {
	s.mu.Lock()
	s.recs = append(s.recs, rec)
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Query(_ context.Context, q LogQuery) ([]TripRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var res []TripRecord
	for _, r := range s.recs {
		if q.Match(r) {
			res = append(res, r)
		}
	}
	return res, nil
}

func (s *MemoryStore) Close() error { return nil }
