package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds application-level Prometheus metrics. Domain packages define
// their own Metrics structs for domain-specific counters.
type Metrics struct {
	RequestDuration *prometheus.HistogramVec
	ScoreRequests   prometheus.Counter
}

// New creates and registers all application-level Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		RequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "hazcom_http_request_duration_seconds",
			Help:    "HTTP request latency by route and status",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "status"}),
		ScoreRequests: promauto.NewCounter(prometheus.CounterOpts{
			Name: "hazcom_compliance_score_requests_total",
			Help: "Total number of compliance score computations served",
		}),
	}
}

// ObserveRequest records one HTTP request observation. Nil-safe so handlers
// constructed without metrics in tests don't panic.
func (m *Metrics) ObserveRequest(route, status string, d time.Duration) {
	if m == nil {
		return
	}
	m.RequestDuration.WithLabelValues(route, status).Observe(d.Seconds())
}

// IncrementScoreRequests bumps the score computation counter by 1.
func (m *Metrics) IncrementScoreRequests() {
	if m == nil {
		return
	}
	m.ScoreRequests.Inc()
}
