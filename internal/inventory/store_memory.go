package inventory

import (
	"context"
	"sync"
)

// InMemoryStore holds chemical and employee collections in memory. It backs
// development mode and unit tests; production reads from PostgresStore.
type InMemoryStore struct {
	mu        sync.RWMutex
	chemicals []Chemical
	employees []Employee
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

func (s *InMemoryStore) ListChemicals(_ context.Context) ([]Chemical, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Chemical{}, s.chemicals...), nil
}

func (s *InMemoryStore) ListEmployees(_ context.Context) ([]Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Employee{}, s.employees...), nil
}

// SeedChemicals replaces the chemical collection.
func (s *InMemoryStore) SeedChemicals(chemicals []Chemical) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chemicals = append([]Chemical{}, chemicals...)
}

// SeedEmployees replaces the employee collection.
func (s *InMemoryStore) SeedEmployees(employees []Employee) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.employees = append([]Employee{}, employees...)
}
