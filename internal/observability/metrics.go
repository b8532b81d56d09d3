package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the predictor.
type Metrics struct {
	Predictions       *prometheus.CounterVec // labels: label={No Damage,...,Unknown}
	PredictionErrors  *prometheus.CounterVec // labels: reason={invalid_input,inference}
	InferenceDuration prometheus.Histogram
	PipelineLoaded    prometheus.Gauge
}

// NewMetrics creates and registers all predictor metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.Predictions,
		m.PredictionErrors,
		m.InferenceDuration,
		m.PipelineLoaded,
	)
	return m
}

// NewMetricsForTesting creates Metrics that are not registered anywhere, so
// tests can build as many as they like.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		Predictions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "wildfire_predictor",
			Name:      "predictions_total",
			Help:      "Predictions served, by damage label.",
		}, []string{"label"}),
		PredictionErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "wildfire_predictor",
			Name:      "prediction_errors_total",
			Help:      "Failed prediction requests, by reason.",
		}, []string{"reason"}),
		InferenceDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "wildfire_predictor",
			Name:      "inference_duration_seconds",
			Help:      "Time spent inside the prediction pipeline per request.",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}),
		PipelineLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "wildfire_predictor",
			Name:      "pipeline_loaded",
			Help:      "1 once the prediction pipeline is loaded and serving.",
		}),
	}
}
