package observability

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors describing a report run.
type Metrics struct {
	RowsLoaded     prometheus.Gauge
	SeriesPoints   prometheus.Gauge
	DeltaPoints    prometheus.Gauge
	ChartsRendered prometheus.Counter
	RunSuccess     prometheus.Gauge
	LastRun        prometheus.Gauge

	// StageDuration is labelled by stage: load, select, normalize, persist, derive, render.
	StageDuration *prometheus.HistogramVec

	registry *prometheus.Registry
}

// NewMetrics creates the run metrics on a private registry. A batch process
// has no scrape endpoint, so the registry is flushed with WriteTextfile.
func NewMetrics() *Metrics {
	m := &Metrics{
		RowsLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "casereport",
			Name:      "rows_loaded",
			Help:      "County rows read from the source table.",
		}),
		SeriesPoints: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "casereport",
			Name:      "series_points",
			Help:      "Dated points in the selected cumulative series.",
		}),
		DeltaPoints: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "casereport",
			Name:      "delta_points",
			Help:      "Points in the derived daily-new series.",
		}),
		ChartsRendered: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "casereport",
			Name:      "charts_rendered_total",
			Help:      "Chart images written.",
		}),
		RunSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "casereport",
			Name:      "run_success",
			Help:      "1 when the last run completed, 0 when it failed.",
		}),
		LastRun: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "casereport",
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time the last run finished.",
		}),
		StageDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "casereport",
			Name:      "stage_duration_seconds",
			Help:      "Duration of each pipeline stage.",
			Buckets:   []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1, 2.5, 5},
		}, []string{"stage"}),
		registry: prometheus.NewRegistry(),
	}

	m.registry.MustRegister(
		m.RowsLoaded,
		m.SeriesPoints,
		m.DeltaPoints,
		m.ChartsRendered,
		m.RunSuccess,
		m.LastRun,
		m.StageDuration,
	)

	return m
}

// WriteTextfile writes every metric to path in the text exposition format,
// for pickup by the node_exporter textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
