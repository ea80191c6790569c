package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// analysis service.
type Metrics struct {
	DatasetsLoaded prometheus.Counter
	LoadErrors     prometheus.Counter
	DatasetRows    prometheus.Histogram
	DatasetCache   *prometheus.CounterVec // labels: result={hit,miss}

	// Report generation metrics.
	ReportRequests *prometheus.CounterVec // labels: outcome={success,auth_error,network_error,service_error}
	ReportDuration prometheus.Histogram
	ReportInFlight prometheus.Gauge
}

// NewMetrics creates and registers all service metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		DatasetsLoaded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "sea_ice",
			Name:      "datasets_loaded_total",
			Help:      "Total CSV datasets successfully loaded.",
		}),
		LoadErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "sea_ice",
			Name:      "load_errors_total",
			Help:      "Total CSV loads rejected for malformed input.",
		}),
		DatasetRows: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "sea_ice",
			Name:      "dataset_rows",
			Help:      "Rows per successfully loaded dataset.",
			Buckets:   []float64{10, 100, 1000, 10000, 50000, 100000},
		}),
		DatasetCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sea_ice",
			Name:      "dataset_cache_total",
			Help:      "Content-addressed dataset cache lookups by result.",
		}, []string{"result"}),
		ReportRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sea_ice",
			Name:      "report_requests_total",
			Help:      "Chat-completion report requests by outcome.",
		}, []string{"outcome"}),
		ReportDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "sea_ice",
			Name:      "report_duration_seconds",
			Help:      "Duration of a complete report request, including the model call.",
			Buckets:   []float64{0.5, 1, 2.5, 5, 10, 20, 30, 60},
		}),
		ReportInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "sea_ice",
			Name:      "report_in_flight",
			Help:      "1 while a report request is outstanding, 0 otherwise.",
		}),
	}

	prometheus.MustRegister(
		m.DatasetsLoaded,
		m.LoadErrors,
		m.DatasetRows,
		m.DatasetCache,
		m.ReportRequests,
		m.ReportDuration,
		m.ReportInFlight,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		DatasetsLoaded: prometheus.NewCounter(prometheus.CounterOpts{Namespace: "sea_ice", Name: "datasets_loaded_total"}),
		LoadErrors:     prometheus.NewCounter(prometheus.CounterOpts{Namespace: "sea_ice", Name: "load_errors_total"}),
		DatasetRows:    prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "sea_ice", Name: "dataset_rows"}),
		DatasetCache:   prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "sea_ice", Name: "dataset_cache_total"}, []string{"result"}),
		ReportRequests: prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "sea_ice", Name: "report_requests_total"}, []string{"outcome"}),
		ReportDuration: prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "sea_ice", Name: "report_duration_seconds"}),
		ReportInFlight: prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "sea_ice", Name: "report_in_flight"}),
	}
}
