package inventory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type InMemoryStoreSuite struct {
	suite.Suite
	store *InMemoryStore
	ctx   context.Context
}

func TestInMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(InMemoryStoreSuite))
}

func (s *InMemoryStoreSuite) SetupTest() {
	s.store = NewInMemoryStore()
	s.ctx = context.Background()
}

func (s *InMemoryStoreSuite) TestListChemicals() {
	s.Run("empty store lists nothing", func() {
		chemicals, err := s.store.ListChemicals(s.ctx)
		s.Require().NoError(err)
		s.Empty(chemicals)
	})

	s.Run("seed replaces the collection", func() {
		s.store.SeedChemicals([]Chemical{{ID: "c1", ProductName: "Acetone"}})
		s.store.SeedChemicals([]Chemical{{ID: "c2", ProductName: "Toluene"}})

		chemicals, err := s.store.ListChemicals(s.ctx)
		s.Require().NoError(err)
		s.Require().Len(chemicals, 1)
		s.Equal("Toluene", chemicals[0].ProductName)
	})

	s.Run("listed slice is a copy", func() {
		s.store.SeedChemicals([]Chemical{{ID: "c1", ProductName: "Acetone"}})

		chemicals, err := s.store.ListChemicals(s.ctx)
		s.Require().NoError(err)
		chemicals[0].ProductName = "mutated"

		again, err := s.store.ListChemicals(s.ctx)
		s.Require().NoError(err)
		s.Equal("Acetone", again[0].ProductName)
	})
}

func (s *InMemoryStoreSuite) TestListEmployees() {
	last := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	s.store.SeedEmployees([]Employee{
		{ID: "e1", Name: "Dana", CompletedModules: []ModuleID{"intro"}, LastTraining: &last},
	})

	employees, err := s.store.ListEmployees(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(employees, 1)
	s.Equal("Dana", employees[0].Name)
	s.Equal([]ModuleID{"intro"}, employees[0].CompletedModules)
}
