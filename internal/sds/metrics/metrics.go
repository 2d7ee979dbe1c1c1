package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	CacheHits          *prometheus.CounterVec
	CacheMisses        prometheus.Counter
	ExternalCalls      prometheus.Counter
	ExternalFailures   prometheus.Counter
	Writebacks         prometheus.Counter
	WritebackFailures  prometheus.Counter
	ResolutionDuration prometheus.Histogram
}

func New() *Metrics {
	return &Metrics{
		CacheHits: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "hazcom_sds_cache_hits_total",
			Help: "Total SDS cache hits by match tier (exact, fold, substring)",
		}, []string{"tier"}),
		CacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "hazcom_sds_cache_misses_total",
			Help: "Total SDS cache lookups that matched no tier",
		}),
		ExternalCalls: promauto.NewCounter(prometheus.CounterOpts{
			Name: "hazcom_sds_external_lookups_total",
			Help: "Total external generative-search lookups issued",
		}),
		ExternalFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "hazcom_sds_external_failures_total",
			Help: "Total external lookups that failed (service or parse)",
		}),
		Writebacks: promauto.NewCounter(prometheus.CounterOpts{
			Name: "hazcom_sds_cache_writebacks_total",
			Help: "Total cache write-backs dispatched to the worker",
		}),
		WritebackFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "hazcom_sds_cache_writeback_failures_total",
			Help: "Total cache write-backs that failed to persist",
		}),
		ResolutionDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "hazcom_sds_resolution_duration_seconds",
			Help:    "End-to-end SDS resolution latency",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

// All methods are nil-safe so components built without metrics don't panic.

func (m *Metrics) ObserveCacheHit(tier string) {
	if m == nil {
		return
	}
	m.CacheHits.WithLabelValues(tier).Inc()
}

func (m *Metrics) ObserveCacheMiss() {
	if m == nil {
		return
	}
	m.CacheMisses.Inc()
}

func (m *Metrics) IncrementExternalCalls() {
	if m == nil {
		return
	}
	m.ExternalCalls.Inc()
}

func (m *Metrics) IncrementExternalFailures() {
	if m == nil {
		return
	}
	m.ExternalFailures.Inc()
}

func (m *Metrics) IncrementWritebacks() {
	if m == nil {
		return
	}
	m.Writebacks.Inc()
}

func (m *Metrics) IncrementWritebackFailures() {
	if m == nil {
		return
	}
	m.WritebackFailures.Inc()
}

func (m *Metrics) ObserveResolution(d time.Duration) {
	if m == nil {
		return
	}
	m.ResolutionDuration.Observe(d.Seconds())
}
