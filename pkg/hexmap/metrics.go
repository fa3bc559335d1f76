package hexmap

import (
	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "hexmap"

// Skip reasons recorded by Metrics.
const (
	skipNoVertices = "no_vertices"
	skipOutside    = "outside_viewport"
	skipIndexError = "index_error"
)

// Metrics holds the Prometheus collectors for the renderer and data store.
//
// All methods are safe to call on a nil *Metrics.
type Metrics struct {
	passesStarted   prometheus.Counter
	passesFinished  *prometheus.CounterVec
	cellsEmitted    prometheus.Counter
	featuresSkipped *prometheus.CounterVec
	visibleCells    prometheus.Gauge
	resolution      prometheus.Gauge
	batchesPerPass  prometheus.Histogram
	datasetLoads    *prometheus.CounterVec
	datasetFeatures prometheus.Gauge
}

// NewMetrics creates the collectors and registers them on reg. A nil reg
// leaves them unregistered, which is useful in tests.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		passesStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "passes_started_total",
			Help:      "Render passes started.",
		}),
		passesFinished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "passes_finished_total",
			Help:      "Render passes that stopped, by outcome.",
		}, []string{"outcome"}),
		cellsEmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "cells_emitted_total",
			Help:      "Hexagon cells added to the display layer.",
		}),
		featuresSkipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "features_skipped_total",
			Help:      "Features evaluated but not drawn, by reason.",
		}, []string{"reason"}),
		visibleCells: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "visible_cells",
			Help:      "Cells drawn by the last completed pass.",
		}),
		resolution: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "resolution",
			Help:      "H3 resolution of the most recent pass.",
		}),
		batchesPerPass: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "batches_per_pass",
			Help:      "Scheduler turns used by completed passes.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
		}),
		datasetLoads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "dataset_loads_total",
			Help:      "Dataset load attempts, by status.",
		}, []string{"status"}),
		datasetFeatures: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "dataset_features",
			Help:      "Features in the current dataset.",
		}),
	}

	if reg != nil {
		reg.MustRegister(
			m.passesStarted,
			m.passesFinished,
			m.cellsEmitted,
			m.featuresSkipped,
			m.visibleCells,
			m.resolution,
			m.batchesPerPass,
			m.datasetLoads,
			m.datasetFeatures,
		)
	}
	return m
}

func (m *Metrics) passStarted(res Resolution) {
	if m == nil {
		return
	}
	m.passesStarted.Inc()
	m.resolution.Set(float64(res))
}

func (m *Metrics) passSuperseded() {
	if m == nil {
		return
	}
	m.passesFinished.WithLabelValues("superseded").Inc()
}

func (m *Metrics) passCompleted(r PassResult) {
	if m == nil {
		return
	}
	outcome := "completed"
	if r.Capped {
		outcome = "capped"
	}
	m.passesFinished.WithLabelValues(outcome).Inc()
	m.visibleCells.Set(float64(r.Visible))
	m.batchesPerPass.Observe(float64(r.Batches))
}

func (m *Metrics) cellEmitted() {
	if m == nil {
		return
	}
	m.cellsEmitted.Inc()
}

func (m *Metrics) featureSkipped(reason string) {
	if m == nil {
		return
	}
	m.featuresSkipped.WithLabelValues(reason).Inc()
}

func (m *Metrics) datasetLoaded(ds *Dataset) {
	if m == nil {
		return
	}
	m.datasetLoads.WithLabelValues("ok").Inc()
	m.datasetFeatures.Set(float64(len(ds.Features)))
}

func (m *Metrics) datasetFailed() {
	if m == nil {
		return
	}
	m.datasetLoads.WithLabelValues("error").Inc()
}
