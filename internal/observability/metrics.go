package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "weather_analytics"

// Sink load outcomes used as the "outcome" label of SinkLoads.
const (
	OutcomeSuccess = "success"
	OutcomeRetry   = "retry"
	OutcomeError   = "error"
)

// Metrics holds the Prometheus counters, histograms, and gauges for report runs.
type Metrics struct {
	ReportsGenerated prometheus.Counter
	RunErrors        prometheus.Counter
	PipelineRunning  prometheus.Gauge
	SeriesDays       prometheus.Gauge

	// Per-stage timing: stage={generate,descriptive,seasonal,...}.
	StageDuration *prometheus.HistogramVec
	RunDuration   prometheus.Histogram

	// Degenerate analyzer outcomes: section, variable.
	DegenerateResults *prometheus.CounterVec

	// Sink delivery: sink, outcome={success,retry,error}.
	SinkLoads *prometheus.CounterVec

	// On-demand report cache lookups: result={hit,miss}.
	ReportCache *prometheus.CounterVec
}

func newMetrics() *Metrics {
	return &Metrics{
		ReportsGenerated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reports_generated_total",
			Help:      "Total analytics reports produced.",
		}),
		RunErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "run_errors_total",
			Help:      "Total runs that failed before a report was produced.",
		}),
		PipelineRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "pipeline_running",
			Help:      "1 while a report run is in progress, 0 otherwise.",
		}),
		SeriesDays: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "series_days",
			Help:      "Day count of the most recently generated series.",
		}),
		StageDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "stage_duration_seconds",
			Help:      "Duration of each report stage.",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}, []string{"stage"}),
		RunDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Duration of a complete generate-analyze-load run.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10},
		}),
		DegenerateResults: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "degenerate_results_total",
			Help:      "Report statistics left undefined by degenerate input.",
		}, []string{"section", "variable"}),
		SinkLoads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sink_loads_total",
			Help:      "Report deliveries by sink and outcome.",
		}, []string{"sink", "outcome"}),
		ReportCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "report_cache_total",
			Help:      "On-demand report cache lookups by result.",
		}, []string{"result"}),
	}
}

func (m *Metrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.ReportsGenerated,
		m.RunErrors,
		m.PipelineRunning,
		m.SeriesDays,
		m.StageDuration,
		m.RunDuration,
		m.DegenerateResults,
		m.SinkLoads,
		m.ReportCache,
	}
}

// NewMetrics creates and registers all report metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(m.collectors()...)
	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	m := newMetrics()
	prometheus.NewRegistry().MustRegister(m.collectors()...)
	return m
}
