package recall

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics tracks cache effectiveness and upstream registry behavior.
type Metrics struct {
	cacheHits       prometheus.Counter
	cacheMisses     prometheus.Counter
	staleServed     prometheus.Counter
	upstreamLatency *prometheus.HistogramVec
}

func NewMetrics() *Metrics {
	return newMetrics(prometheus.DefaultRegisterer)
}

func newMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		cacheHits: factory.NewCounter(prometheus.CounterOpts{
			Name: "curbo_recall_cache_hits_total",
			Help: "Recall lookups served from a fresh cache entry",
		}),
		cacheMisses: factory.NewCounter(prometheus.CounterOpts{
			Name: "curbo_recall_cache_misses_total",
			Help: "Recall lookups that required an upstream fetch",
		}),
		staleServed: factory.NewCounter(prometheus.CounterOpts{
			Name: "curbo_recall_stale_served_total",
			Help: "Recall lookups served from an expired entry after a failed refresh",
		}),
		upstreamLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "curbo_recall_upstream_latency_seconds",
			Help:    "Latency of recall registry and VIN decoder calls",
			Buckets: prometheus.DefBuckets,
		}, []string{"upstream"}),
	}
}

func (m *Metrics) ObserveCacheHit() {
	if m == nil {
		return
	}
	m.cacheHits.Inc()
}

func (m *Metrics) ObserveCacheMiss() {
	if m == nil {
		return
	}
	m.cacheMisses.Inc()
}

func (m *Metrics) ObserveStaleServed() {
	if m == nil {
		return
	}
	m.staleServed.Inc()
}

func (m *Metrics) ObserveUpstreamLatency(upstream string, d time.Duration) {
	if m == nil {
		return
	}
	m.upstreamLatency.WithLabelValues(upstream).Observe(d.Seconds())
}
