// Package service sequences the resolution protocol: cache lookup, confidence
// gate, external fallback, and best-effort asynchronous cache write-back.
package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"hazcom/internal/sds/cache"
	"hazcom/internal/sds/metrics"
	"hazcom/internal/sds/models"
	dErrors "hazcom/pkg/domain-errors"
	"hazcom/pkg/platform/sentinel"
)

// Resolver is the external lookup dependency.
type Resolver interface {
	Resolve(ctx context.Context, productName, manufacturer string) (*models.Record, string, error)
}

// Service is the resolution orchestrator.
type Service struct {
	cache      cache.Store
	resolver   Resolver
	writebacks chan<- models.Record
	group      singleflight.Group
	timeout    time.Duration
	logger     *slog.Logger
	metrics    *metrics.Metrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithTimeout bounds each external lookup call.
func WithTimeout(d time.Duration) Option {
	return func(s *Service) {
		s.timeout = d
	}
}

func New(store cache.Store, resolver Resolver, writebacks chan<- models.Record, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, errors.New("cache store is required")
	}
	if resolver == nil {
		return nil, errors.New("resolver client is required")
	}

	svc := &Service{
		cache:      store,
		resolver:   resolver,
		writebacks: writebacks,
		timeout:    30 * time.Second,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

// Resolve finds a safety-document reference for the product. Concurrent calls
// for the same normalized (product, manufacturer) key share one execution, so
// at most one external lookup is in flight per key.
func (s *Service) Resolve(ctx context.Context, productName, manufacturer string) (*models.Resolution, error) {
	if strings.TrimSpace(productName) == "" {
		return nil, dErrors.New(dErrors.CodeBadRequest, "product_name is required")
	}
	if strings.TrimSpace(manufacturer) == "" {
		return nil, dErrors.New(dErrors.CodeBadRequest, "manufacturer is required")
	}

	key := normalizeKey(productName, manufacturer)
	v, err, _ := s.group.Do(key, func() (any, error) {
		return s.resolve(ctx, productName, manufacturer)
	})
	if err != nil {
		return nil, err
	}
	return v.(*models.Resolution), nil
}

func (s *Service) resolve(ctx context.Context, productName, manufacturer string) (*models.Resolution, error) {
	start := time.Now()
	defer func() {
		s.metrics.ObserveResolution(time.Since(start))
	}()

	// CacheLookup. Store errors degrade to the external path; the cache is
	// never a hard dependency.
	record, err := s.cache.Find(ctx, productName, manufacturer)
	if err != nil && !errors.Is(err, sentinel.ErrNotFound) {
		s.logger.WarnContext(ctx, "sds cache lookup failed, falling back to external lookup",
			"product_name", productName,
			"error", err.Error(),
		)
	}
	if record != nil && record.Usable() {
		return &models.Resolution{Record: *record, Cached: true}, nil
	}

	// ExternalLookup. Failures surface to the caller; no retry.
	s.metrics.IncrementExternalCalls()
	lookupCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	resolved, notes, err := s.resolver.Resolve(lookupCtx, productName, manufacturer)
	if err != nil {
		s.metrics.IncrementExternalFailures()
		return nil, err
	}

	// Write-back is best-effort and must not block the response. A record
	// with neither URL carries nothing worth caching.
	if resolved.SDSURL != "" || resolved.ManufacturerPortalURL != "" {
		select {
		case s.writebacks <- *resolved:
			s.metrics.IncrementWritebacks()
		default:
			s.logger.WarnContext(ctx, "sds write-back queue full, dropping record",
				"product_name", resolved.ProductName,
			)
		}
	}

	return &models.Resolution{Record: *resolved, Notes: notes}, nil
}

func normalizeKey(productName, manufacturer string) string {
	return strings.ToLower(strings.TrimSpace(productName)) + "|" + strings.ToLower(strings.TrimSpace(manufacturer))
}
