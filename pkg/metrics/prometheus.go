package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	chartsComputed *prometheus.CounterVec
	transitScans   prometheus.Counter
	errorsTotal    *prometheus.CounterVec
	streamClients  prometheus.Gauge
	latency        *prometheus.HistogramVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		chartsComputed: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stellium_charts_computed_total",
				Help: "Total number of natal charts computed",
			},
			[]string{"outcome"},
		),
		transitScans: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "stellium_transit_scans_total",
				Help: "Total number of transit scans performed",
			},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stellium_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		streamClients: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "stellium_stream_clients",
				Help: "Currently connected transit stream clients",
			},
		),
		latency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "stellium_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordChartComputed records a chart computation outcome ("ok" or "error").
func (r *Recorder) RecordChartComputed(outcome string) {
	r.chartsComputed.WithLabelValues(outcome).Inc()
}

// RecordTransitScan records one completed transit scan.
func (r *Recorder) RecordTransitScan() {
	r.transitScans.Inc()
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// StreamClientConnected adjusts the connected stream client gauge.
func (r *Recorder) StreamClientConnected(delta int) {
	r.streamClients.Add(float64(delta))
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}
