package observability

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/couchcryptid/bite-score-engine/internal/domain"
)

const namespace = "bite_engine"

// Metrics holds the Prometheus counters, histograms, and gauges for the
// forecast pipeline and the activity event ingester.
type Metrics struct {
	MessagesConsumed prometheus.Counter
	MessagesProduced prometheus.Counter
	TransformErrors  prometheus.Counter
	PipelineRunning  prometheus.Gauge

	// Batch processing metrics.
	BatchSize               prometheus.Histogram
	BatchProcessingDuration prometheus.Histogram

	// Scoring metrics.
	ForecastDuration prometheus.Histogram
	MissingFields    *prometheus.CounterVec // labels: field
	ColdFrontState   *prometheus.GaugeVec   // labels: state; exactly one is 1

	// Activity event metrics.
	EventsIngested  *prometheus.CounterVec // labels: kind
	EventsRejected  prometheus.Counter
	EventsDuplicate prometheus.Counter
	EventWindowSize prometheus.Gauge
}

func newMetrics() *Metrics {
	return &Metrics{
		MessagesConsumed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "snapshots_consumed_total",
			Help:      "Total snapshot messages read from the snapshot topic.",
		}),
		MessagesProduced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "forecasts_produced_total",
			Help:      "Total forecasts written to the forecast topic.",
		}),
		TransformErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transform_errors_total",
			Help:      "Total snapshots that could not be turned into a forecast.",
		}),
		PipelineRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "pipeline_running",
			Help:      "1 when the forecast pipeline is active, 0 when shut down.",
		}),
		BatchSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "batch_size",
			Help:      "Number of messages per batch extracted from Kafka.",
			Buckets:   []float64{1, 5, 10, 20, 30, 40, 50, 75, 100},
		}),
		BatchProcessingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "batch_processing_duration_seconds",
			Help:      "Duration of a complete extract-score-load cycle.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10},
		}),
		ForecastDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "forecast_duration_seconds",
			Help:      "Time to score every species and bait in every zone for one snapshot.",
			Buckets:   []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1},
		}),
		MissingFields: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "missing_snapshot_fields_total",
			Help:      "Snapshot readings that were absent and scored as neutral, by field.",
		}, []string{"field"}),
		ColdFrontState: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "cold_front_state",
			Help:      "Site cold-front state of the latest snapshot; the active state is 1.",
		}, []string{"state"}),
		EventsIngested: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_ingested_total",
			Help:      "Activity events added to the event window, by kind.",
		}, []string{"kind"}),
		EventsRejected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_rejected_total",
			Help:      "Activity events that failed to parse and were skipped.",
		}),
		EventsDuplicate: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_duplicate_total",
			Help:      "Activity events ignored as replays or as older than the window.",
		}),
		EventWindowSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "event_window_size",
			Help:      "Activity events currently held inside the event horizon.",
		}),
	}
}

func (m *Metrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.MessagesConsumed,
		m.MessagesProduced,
		m.TransformErrors,
		m.PipelineRunning,
		m.BatchSize,
		m.BatchProcessingDuration,
		m.ForecastDuration,
		m.MissingFields,
		m.ColdFrontState,
		m.EventsIngested,
		m.EventsRejected,
		m.EventsDuplicate,
		m.EventWindowSize,
	}
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(m.collectors()...)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

// SetColdFront marks state as the active cold-front state.
func (m *Metrics) SetColdFront(state domain.ColdFront) {
	for _, s := range []domain.ColdFront{domain.ColdFrontNone, domain.ColdFrontModerate, domain.ColdFrontStrong} {
		v := 0.0
		if s == state {
			v = 1
		}
		m.ColdFrontState.WithLabelValues(string(s)).Set(v)
	}
}
