package http

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	io_prometheus_client "github.com/prometheus/client_model/go"
)

// MetricsRegistry holds the Prometheus metrics for the trade API.
type MetricsRegistry struct {
	ValidationsTotal   *prometheus.CounterVec
	ViolationsTotal    prometheus.Counter
	ConsentFlagged     prometheus.Counter
	ValidationDuration prometheus.Histogram

	CacheHits     *prometheus.CounterVec
	CacheMisses   *prometheus.CounterVec
	CacheHitRatio prometheus.Gauge
}

// NewMetricsRegistry creates and registers all trade API metrics.
func NewMetricsRegistry(reg prometheus.Registerer) *MetricsRegistry {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &MetricsRegistry{
		ValidationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "franchise_trade_validations_total",
				Help: "Trade validations processed, labeled by outcome",
			},
			[]string{"result"},
		),
		ViolationsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "franchise_trade_violations_total",
				Help: "Individual rule violations reported across all validations",
			},
		),
		ConsentFlagged: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "franchise_trade_consent_flagged_total",
				Help: "Validations that required player consent",
			},
		),
		ValidationDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "franchise_trade_validation_duration_seconds",
				Help:    "Wall time of one validation pass",
				Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
			},
		),
		CacheHits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "franchise_snapshot_cache_hits_total",
				Help: "Snapshot cache hits by payload kind",
			},
			[]string{"kind"},
		),
		CacheMisses: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "franchise_snapshot_cache_misses_total",
				Help: "Snapshot cache misses by payload kind",
			},
			[]string{"kind"},
		),
		CacheHitRatio: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "franchise_snapshot_cache_hit_ratio",
				Help: "Current snapshot cache hit ratio (0.0 to 1.0)",
			},
		),
	}

	reg.MustRegister(
		m.ValidationsTotal,
		m.ViolationsTotal,
		m.ConsentFlagged,
		m.ValidationDuration,
		m.CacheHits,
		m.CacheMisses,
		m.CacheHitRatio,
	)
	return m
}

// ObserveValidation records one validation outcome.
func (m *MetricsRegistry) ObserveValidation(valid bool, issues int, consent bool, elapsed time.Duration) {
	result := "valid"
	if !valid {
		result = "invalid"
	}
	m.ValidationsTotal.WithLabelValues(result).Inc()
	m.ViolationsTotal.Add(float64(issues))
	if consent {
		m.ConsentFlagged.Inc()
	}
	m.ValidationDuration.Observe(elapsed.Seconds())
	m.updateCacheHitRatio()
}

// RecordCacheHit / RecordCacheMiss track snapshot cache outcomes. The
// cached store calls these on every read, so the ratio gauge is recomputed
// here rather than waiting for the next validation.
func (m *MetricsRegistry) RecordCacheHit(kind string) {
	m.CacheHits.WithLabelValues(kind).Inc()
	m.updateCacheHitRatio()
}

func (m *MetricsRegistry) RecordCacheMiss(kind string) {
	m.CacheMisses.WithLabelValues(kind).Inc()
	m.updateCacheHitRatio()
}

// updateCacheHitRatio recomputes the hit-ratio gauge from the counters.
func (m *MetricsRegistry) updateCacheHitRatio() {
	hitMetric := &io_prometheus_client.Metric{}
	missMetric := &io_prometheus_client.Metric{}

	var totalHits, totalMisses float64
	for _, kind := range []string{"contracts", "picks"} {
		if hit, err := m.CacheHits.GetMetricWithLabelValues(kind); err == nil {
			if err := hit.Write(hitMetric); err == nil {
				totalHits += hitMetric.GetCounter().GetValue()
			}
		}
		if miss, err := m.CacheMisses.GetMetricWithLabelValues(kind); err == nil {
			if err := miss.Write(missMetric); err == nil {
				totalMisses += missMetric.GetCounter().GetValue()
			}
		}
	}

	if total := totalHits + totalMisses; total > 0 {
		m.CacheHitRatio.Set(totalHits / total)
	}
}

// Handler exposes the metrics endpoint.
func (m *MetricsRegistry) Handler() http.Handler {
	return promhttp.Handler()
}
