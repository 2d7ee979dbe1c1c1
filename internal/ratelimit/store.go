// Package ratelimit guards the resolve endpoint: external lookups are
// metered, so each client IP gets a bounded number per window. Limiter
// failures fail open — losing rate limiting is better than losing resolution.
package ratelimit

import (
	"context"
	"time"
)

// Result describes one rate-limit decision.
type Result struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetAt   time.Time
}

// BucketStore counts requests per key within a window.
type BucketStore interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (*Result, error)
}
