package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	StatusSuccess = "success"
	StatusFailure = "failure"
)

// Recorder collects metrics of customers querying and screens usage
type Recorder struct {
	queries        *prometheus.CounterVec
	queryDuration  *prometheus.HistogramVec
	cacheLookups   *prometheus.CounterVec
	refreshes      *prometheus.CounterVec
	staleResponses prometheus.Counter
	activeSessions prometheus.Gauge
}

// NewRecorder registers metrics within provided registerer
func NewRecorder(reg prometheus.Registerer) *Recorder {
	f := promauto.With(reg)
	return &Recorder{
		queries: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "graphql_queries_total",
				Help: "Total number of GraphQL queries sent to the backend",
			},
			[]string{"operation", "status"},
		),
		queryDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "graphql_query_duration_seconds",
				Help:    "GraphQL query round trip duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		cacheLookups: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "customers_cache_lookups_total",
				Help: "Customers result cache lookups by outcome",
			},
			[]string{"outcome"},
		),
		refreshes: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "user_list_refreshes_total",
				Help: "Pull to refresh actions by outcome",
			},
			[]string{"status"},
		),
		staleResponses: f.NewCounter(
			prometheus.CounterOpts{
				Name: "user_list_stale_responses_total",
				Help: "Responses discarded because a newer request was already applied",
			},
		),
		activeSessions: f.NewGauge(
			prometheus.GaugeOpts{
				Name: "sessions_active",
				Help: "Number of live visitor sessions",
			},
		),
	}
}

// NewNopRecorder builds recorder backed by a private registry, handy for tests and tools
func NewNopRecorder() *Recorder {
	return NewRecorder(prometheus.NewRegistry())
}

func (r *Recorder) ObserveQuery(operation string, d time.Duration, err error) {
	status := StatusSuccess
	if err != nil {
		status = StatusFailure
	}
	r.queries.WithLabelValues(operation, status).Inc()
	r.queryDuration.WithLabelValues(operation).Observe(d.Seconds())
}

func (r *Recorder) CacheHit() {
	r.cacheLookups.WithLabelValues("hit").Inc()
}

func (r *Recorder) CacheMiss() {
	r.cacheLookups.WithLabelValues("miss").Inc()
}

func (r *Recorder) Refresh(err error) {
	status := StatusSuccess
	if err != nil {
		status = StatusFailure
	}
	r.refreshes.WithLabelValues(status).Inc()
}

func (r *Recorder) StaleResponse() {
	r.staleResponses.Inc()
}

func (r *Recorder) SetActiveSessions(n int) {
	r.activeSessions.Set(float64(n))
}
