package upload

import (
	"context"
	"sort"
	"sync"
)

// InMemoryIndex keeps upload records in memory, keyed by SDS id.
type InMemoryIndex struct {
	mu      sync.RWMutex
	records map[string]Record
}

func NewInMemoryIndex() *InMemoryIndex {
	return &InMemoryIndex{records: make(map[string]Record)}
}

func (s *InMemoryIndex) Put(_ context.Context, record Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[record.SDSID] = record
	return nil
}

func (s *InMemoryIndex) List(_ context.Context) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Record, 0, len(s.records))
	for _, r := range s.records {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].UploadedAt.After(out[j].UploadedAt)
	})
	return out, nil
}
