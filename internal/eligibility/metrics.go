package eligibility

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics tracks eligibility evaluation outcomes and fact-gathering latency.
type Metrics struct {
	decisions   *prometheus.CounterVec
	factLatency *prometheus.HistogramVec
}

func NewMetrics() *Metrics {
	return &Metrics{
		decisions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "curbo_eligibility_decisions_total",
			Help: "Eligibility evaluations by outcome",
		}, []string{"outcome"}),
		factLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "curbo_eligibility_fact_latency_seconds",
			Help:    "Latency of eligibility fact fetches by source",
			Buckets: prometheus.DefBuckets,
		}, []string{"source"}),
	}
}

func (m *Metrics) ObserveDecision(ok bool) {
	if m == nil {
		return
	}
	outcome := "blocked"
	if ok {
		outcome = "eligible"
	}
	m.decisions.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveFactLatency(source string, d time.Duration) {
	if m == nil {
		return
	}
	m.factLatency.WithLabelValues(source).Observe(d.Seconds())
}
