package cache

import (
	"context"
	"strings"
	"sync"

	"hazcom/internal/sds/models"
	"hazcom/pkg/platform/sentinel"
)

// InMemoryStore mirrors the PostgreSQL tier semantics over a slice. Newest
// records win within a tier, matching the lookup_date ordering in SQL.
type InMemoryStore struct {
	mu      sync.RWMutex
	records []models.Record
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

func (s *InMemoryStore) Find(_ context.Context, productName, manufacturer string) (*models.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	// Tier 1: exact product name.
	if r := s.match(func(r models.Record) bool {
		return r.ProductName == productName
	}, 1); len(r) > 0 {
		return &r[0], nil
	}

	// Tier 2: case-insensitive product name.
	if r := s.match(func(r models.Record) bool {
		return strings.EqualFold(r.ProductName, productName)
	}, 1); len(r) > 0 {
		return &r[0], nil
	}

	// Tier 3: substring on the first tokens.
	if term := searchTokens(productName); term != "" {
		needle := strings.ToLower(term)
		candidates := s.match(func(r models.Record) bool {
			return strings.Contains(strings.ToLower(r.ProductName), needle)
		}, substringLimit)
		if picked := pickCandidate(candidates, manufacturer); picked != nil {
			return picked, nil
		}
	}

	return nil, sentinel.ErrNotFound
}

func (s *InMemoryStore) Insert(_ context.Context, record models.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, record)
	return nil
}

// match collects up to limit records satisfying pred, newest lookup first.
// Must be called while holding s.mu.
func (s *InMemoryStore) match(pred func(models.Record) bool, limit int) []models.Record {
	var out []models.Record
	for i := len(s.records) - 1; i >= 0 && len(out) < limit; i-- {
		if pred(s.records[i]) {
			out = append(out, s.records[i])
		}
	}
	return out
}
