package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// simulation engine and its adapters.
type Metrics struct {
	CyclesTotal    prometheus.Counter
	CycleDuration  prometheus.Histogram
	StationsOnline prometheus.Gauge
	AlertLogSize   prometheus.Gauge
	StationErrors  prometheus.Counter
	EngineRunning  prometheus.Gauge
	FramesDropped  prometheus.Counter
	AlertsEmitted  *prometheus.CounterVec // labels: kind={watch,alert}

	// Alert forwarding metrics.
	AlertsForwarded  prometheus.Counter
	ForwardErrors    prometheus.Counter
	ForwarderEnabled prometheus.Gauge

	// Snapshot stream metrics.
	StreamClients prometheus.Gauge
}

// NewMetrics creates and registers all engine metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		CyclesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "floodwatch",
			Name:      "cycles_total",
			Help:      "Total update cycles executed, including the bootstrap cycle.",
		}),
		CycleDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "floodwatch",
			Name:      "cycle_duration_seconds",
			Help:      "Duration of a complete simulate-classify-record-publish cycle.",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		}),
		StationsOnline: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "floodwatch",
			Name:      "stations_online",
			Help:      "Stations reporting online after the latest cycle.",
		}),
		AlertLogSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "floodwatch",
			Name:      "alert_log_size",
			Help:      "Entries currently held in the bounded alert log.",
		}),
		StationErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "floodwatch",
			Name:      "station_errors_total",
			Help:      "Per-station update failures isolated from their cycle.",
		}),
		EngineRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "floodwatch",
			Name:      "engine_running",
			Help:      "1 while the cycle scheduler is active, 0 once stopped.",
		}),
		FramesDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "floodwatch",
			Name:      "frames_dropped_total",
			Help:      "Snapshot frames dropped because a subscriber had not drained the previous one.",
		}),
		AlertsEmitted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "floodwatch",
			Name:      "alerts_emitted_total",
			Help:      "Alert events recorded, by kind.",
		}, []string{"kind"}),
		AlertsForwarded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "floodwatch",
			Name:      "alerts_forwarded_total",
			Help:      "Alert events successfully published to the Kafka sink.",
		}),
		ForwardErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "floodwatch",
			Name:      "forward_errors_total",
			Help:      "Failed Kafka publishes of cycle alert batches.",
		}),
		ForwarderEnabled: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "floodwatch",
			Name:      "forwarder_enabled",
			Help:      "1 when Kafka alert forwarding is enabled, 0 otherwise.",
		}),
		StreamClients: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "floodwatch",
			Name:      "stream_clients",
			Help:      "WebSocket clients currently subscribed to the snapshot stream.",
		}),
	}

	prometheus.MustRegister(
		m.CyclesTotal,
		m.CycleDuration,
		m.StationsOnline,
		m.AlertLogSize,
		m.StationErrors,
		m.EngineRunning,
		m.FramesDropped,
		m.AlertsEmitted,
		m.AlertsForwarded,
		m.ForwardErrors,
		m.ForwarderEnabled,
		m.StreamClients,
	)

	return m
}

// NewMetricsForTesting creates Metrics with unregistered collectors to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		CyclesTotal:      prometheus.NewCounter(prometheus.CounterOpts{Namespace: "floodwatch", Name: "cycles_total"}),
		CycleDuration:    prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "floodwatch", Name: "cycle_duration_seconds"}),
		StationsOnline:   prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "floodwatch", Name: "stations_online"}),
		AlertLogSize:     prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "floodwatch", Name: "alert_log_size"}),
		StationErrors:    prometheus.NewCounter(prometheus.CounterOpts{Namespace: "floodwatch", Name: "station_errors_total"}),
		EngineRunning:    prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "floodwatch", Name: "engine_running"}),
		FramesDropped:    prometheus.NewCounter(prometheus.CounterOpts{Namespace: "floodwatch", Name: "frames_dropped_total"}),
		AlertsEmitted:    prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "floodwatch", Name: "alerts_emitted_total"}, []string{"kind"}),
		AlertsForwarded:  prometheus.NewCounter(prometheus.CounterOpts{Namespace: "floodwatch", Name: "alerts_forwarded_total"}),
		ForwardErrors:    prometheus.NewCounter(prometheus.CounterOpts{Namespace: "floodwatch", Name: "forward_errors_total"}),
		ForwarderEnabled: prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "floodwatch", Name: "forwarder_enabled"}),
		StreamClients:    prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "floodwatch", Name: "stream_clients"}),
	}
}
