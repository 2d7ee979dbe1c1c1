// Package cache implements the tiered safety-document cache. Lookups try
// exact, case-insensitive, then token-substring matches on the product name;
// inserts append without uniqueness, so duplicate rows for one product are
// possible and acceptable.
package cache

import (
	"context"
	"strings"

	"hazcom/internal/sds/models"
)

// Store is the document cache contract. Find returns sentinel.ErrNotFound
// when no tier matches; fail-soft policy on other errors belongs to the
// orchestrator, not the store.
type Store interface {
	Find(ctx context.Context, productName, manufacturer string) (*models.Record, error)
	Insert(ctx context.Context, record models.Record) error
}

// searchTokens produces the substring-tier search term: SQL wildcard
// characters stripped, then the first three whitespace-separated tokens.
func searchTokens(productName string) string {
	cleaned := strings.NewReplacer("%", "", "_", "").Replace(productName)
	tokens := strings.Fields(cleaned)
	if len(tokens) > 3 {
		tokens = tokens[:3]
	}
	return strings.Join(tokens, " ")
}

// substringLimit caps the candidates considered by the substring tier.
const substringLimit = 5

// pickCandidate applies the substring-tier preference: with a manufacturer
// supplied, the first candidate whose manufacturer contains it
// (case-insensitive) wins; otherwise the first candidate does.
func pickCandidate(candidates []models.Record, manufacturer string) *models.Record {
	if len(candidates) == 0 {
		return nil
	}
	if manufacturer != "" {
		needle := strings.ToLower(manufacturer)
		for i := range candidates {
			if strings.Contains(strings.ToLower(candidates[i].Manufacturer), needle) {
				return &candidates[i]
			}
		}
	}
	return &candidates[0]
}
