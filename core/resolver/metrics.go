package resolver

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/siherrmann/coref/model"
)

// Metrics contains the resolver metrics. Collectors are safe to share between resolvers.
type Metrics struct {
	DocumentsResolved *prometheus.CounterVec
	EntitiesEmitted   *prometheus.CounterVec
	MergesTotal       *prometheus.CounterVec
	PairComputations  prometheus.Histogram
	ResolveDuration   *prometheus.HistogramVec
}

// NewMetrics creates unregistered resolver metrics
func NewMetrics() *Metrics {
	return &Metrics{
		DocumentsResolved: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "coref",
				Subsystem: "resolver",
				Name:      "documents_total",
				Help:      "Total number of documents resolved",
			},
			[]string{"language"},
		),

		EntitiesEmitted: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "coref",
				Subsystem: "resolver",
				Name:      "entities_total",
				Help:      "Total number of entities emitted",
			},
			[]string{"language", "entity_type"},
		),

		MergesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "coref",
				Subsystem: "resolver",
				Name:      "merges_total",
				Help:      "Total number of group merges of emitted entities",
			},
			[]string{"merger"},
		),

		PairComputations: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: "coref",
				Subsystem: "resolver",
				Name:      "pair_computations",
				Help:      "Mention pair feature computations per document",
				Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
			},
		),

		ResolveDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "coref",
				Subsystem: "resolver",
				Name:      "duration_seconds",
				Help:      "Document resolution duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"language"},
		),
	}
}

// Register registers all collectors with reg
func (m *Metrics) Register(reg prometheus.Registerer) error {
	for _, collector := range []prometheus.Collector{
		m.DocumentsResolved,
		m.EntitiesEmitted,
		m.MergesTotal,
		m.PairComputations,
		m.ResolveDuration,
	} {
		if err := reg.Register(collector); err != nil {
			return err
		}
	}
	return nil
}

func (m *Metrics) observe(language string, set *model.EntitySet, pairComputations int, elapsed time.Duration) {
	if m == nil {
		return
	}

	m.DocumentsResolved.WithLabelValues(language).Inc()
	m.ResolveDuration.WithLabelValues(language).Observe(elapsed.Seconds())
	m.PairComputations.Observe(float64(pairComputations))
	for _, entity := range set.Entities {
		m.EntitiesEmitted.WithLabelValues(language, string(entity.Type)).Inc()
	}
	for _, link := range set.Links {
		m.MergesTotal.WithLabelValues(link.Merger).Inc()
	}
}
