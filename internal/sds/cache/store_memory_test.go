package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"hazcom/internal/sds/models"
	"hazcom/pkg/platform/sentinel"
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

func (s *InMemoryStoreSuite) record(product, manufacturer, url string) models.Record {
	return models.Record{
		ProductName:  product,
		Manufacturer: manufacturer,
		SDSURL:       url,
		SDSSource:    "manufacturer website",
		Confidence:   0.9,
		LookupDate:   time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (s *InMemoryStoreSuite) TestFind() {
	s.Run("empty store returns not found", func() {
		_, err := s.store.Find(s.ctx, "Acetone", "")
		s.ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("exact match wins", func() {
		s.Require().NoError(s.store.Insert(s.ctx, s.record("Acetone", "Sunnyside", "https://a.example/sds.pdf")))

		found, err := s.store.Find(s.ctx, "Acetone", "")
		s.Require().NoError(err)
		s.Equal("https://a.example/sds.pdf", found.SDSURL)
	})

	s.Run("case-insensitive match when exact misses", func() {
		s.Require().NoError(s.store.Insert(s.ctx, s.record("Brake Cleaner", "CRC", "https://b.example/sds.pdf")))

		found, err := s.store.Find(s.ctx, "BRAKE CLEANER", "")
		s.Require().NoError(err)
		s.Equal("https://b.example/sds.pdf", found.SDSURL)
	})

	s.Run("substring match on leading tokens", func() {
		s.Require().NoError(s.store.Insert(s.ctx, s.record("3M Hi-Strength 90 Spray Adhesive", "3M", "https://c.example/sds.pdf")))

		// Only the first three tokens participate in the search term.
		found, err := s.store.Find(s.ctx, "3M Hi-Strength 90 Contact Adhesive Aerosol", "")
		s.Require().NoError(err)
		s.Equal("https://c.example/sds.pdf", found.SDSURL)
	})

	s.Run("wildcard characters are stripped from the search term", func() {
		s.Require().NoError(s.store.Insert(s.ctx, s.record("Mineral Spirits", "Klean-Strip", "https://d.example/sds.pdf")))

		found, err := s.store.Find(s.ctx, "Mineral%_ Spirits", "")
		s.Require().NoError(err)
		s.Equal("https://d.example/sds.pdf", found.SDSURL)
	})

	s.Run("manufacturer preference within substring candidates", func() {
		s.Require().NoError(s.store.Insert(s.ctx, s.record("Industrial Acetone Solvent 55 Gallon", "Sunnyside", "https://sunnyside.example/sds.pdf")))
		s.Require().NoError(s.store.Insert(s.ctx, s.record("Industrial Acetone Solvent 5 Gallon", "Fisher Scientific", "https://fisher.example/sds.pdf")))

		// Newest insert would win by default; the manufacturer hint pulls
		// the older Sunnyside row instead.
		found, err := s.store.Find(s.ctx, "Industrial Acetone Solvent Drum", "sunnyside")
		s.Require().NoError(err)
		s.Equal("https://sunnyside.example/sds.pdf", found.SDSURL)
	})

	s.Run("unmatched manufacturer falls back to the newest candidate", func() {
		s.Require().NoError(s.store.Insert(s.ctx, s.record("Toluene Reagent Grade Bottle", "Alpha", "https://alpha.example/sds.pdf")))
		s.Require().NoError(s.store.Insert(s.ctx, s.record("Toluene Reagent Grade Drum", "Beta", "https://beta.example/sds.pdf")))

		found, err := s.store.Find(s.ctx, "Toluene Reagent Grade Pail", "NoSuchCo")
		s.Require().NoError(err)
		s.Equal("https://beta.example/sds.pdf", found.SDSURL)
	})

	s.Run("no tier matches returns not found", func() {
		s.Require().NoError(s.store.Insert(s.ctx, s.record("Acetone", "Sunnyside", "https://a.example/sds.pdf")))

		_, err := s.store.Find(s.ctx, "Xylene", "")
		s.ErrorIs(err, sentinel.ErrNotFound)
	})
}

func (s *InMemoryStoreSuite) TestInsert() {
	s.Run("duplicate inserts are kept and newest wins", func() {
		old := s.record("Acetone", "Sunnyside", "https://old.example/sds.pdf")
		newer := s.record("Acetone", "Sunnyside", "https://new.example/sds.pdf")
		s.Require().NoError(s.store.Insert(s.ctx, old))
		s.Require().NoError(s.store.Insert(s.ctx, newer))

		found, err := s.store.Find(s.ctx, "Acetone", "")
		s.Require().NoError(err)
		s.Equal("https://new.example/sds.pdf", found.SDSURL)
	})
}

func (s *InMemoryStoreSuite) TestSearchTokens() {
	cases := []struct {
		in   string
		want string
	}{
		{"Acetone", "Acetone"},
		{"Brake Cleaner", "Brake Cleaner"},
		{"One Two Three Four Five", "One Two Three"},
		{"Wild%card_Name", "WildcardName"},
		{"  padded   spacing  ", "padded spacing"},
		{"%_", ""},
	}
	for _, tc := range cases {
		s.Equal(tc.want, searchTokens(tc.in), "input=%q", tc.in)
	}
}
