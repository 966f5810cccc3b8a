// Package metrics provides Prometheus metrics for the relay and batch flows.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels shared by the counters.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
	OutcomeInvalid = "invalid"
	OutcomeStale   = "stale"
)

// PredictionMetrics contains all metrics for prediction traffic.
type PredictionMetrics struct {
	RelayRequests     *prometheus.CounterVec
	RelayLatency      prometheus.Histogram
	BatchUploads      *prometheus.CounterVec
	PredictionsServed prometheus.Counter
	PredictedPriceUSD prometheus.Histogram
	registry          *prometheus.Registry
}

// NewPredictionMetrics creates and registers the metrics on registry.
func NewPredictionMetrics(registry *prometheus.Registry) (*PredictionMetrics, error) {
	m := &PredictionMetrics{registry: registry}
	m.initMetrics()
	if err := registry.Register(m); err != nil {
		return nil, fmt.Errorf("failed to register prediction metrics: %w", err)
	}
	return m, nil
}

func (m *PredictionMetrics) initMetrics() {
	m.RelayRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "carprice_relay_requests_total",
		Help: "Total number of relayed prediction requests by outcome",
	}, []string{"outcome"})

	m.RelayLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "carprice_relay_upstream_latency_seconds",
		Help:    "Latency of upstream predictor calls in seconds",
		Buckets: prometheus.ExponentialBuckets(0.005, 2, 12),
	})

	m.BatchUploads = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "carprice_batch_uploads_total",
		Help: "Total number of batch uploads by outcome",
	}, []string{"outcome"})

	m.PredictionsServed = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "carprice_predictions_total",
		Help: "Total number of car price predictions returned to users",
	})

	m.PredictedPriceUSD = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "carprice_predicted_price_usd",
		Help:    "Distribution of predicted car prices in USD",
		Buckets: prometheus.ExponentialBuckets(2500, 1.5, 12),
	})
}

// Describe implements prometheus.Collector.
func (m *PredictionMetrics) Describe(ch chan<- *prometheus.Desc) {
	m.RelayRequests.Describe(ch)
	m.RelayLatency.Describe(ch)
	m.BatchUploads.Describe(ch)
	m.PredictionsServed.Describe(ch)
	m.PredictedPriceUSD.Describe(ch)
}

// Collect implements prometheus.Collector.
func (m *PredictionMetrics) Collect(ch chan<- prometheus.Metric) {
	m.RelayRequests.Collect(ch)
	m.RelayLatency.Collect(ch)
	m.BatchUploads.Collect(ch)
	m.PredictionsServed.Collect(ch)
	m.PredictedPriceUSD.Collect(ch)
}

// ObserveRelay records one relayed request.
func (m *PredictionMetrics) ObserveRelay(outcome string, seconds float64) {
	if m == nil {
		return
	}
	m.RelayRequests.WithLabelValues(outcome).Inc()
	if seconds > 0 {
		m.RelayLatency.Observe(seconds)
	}
}

// ObserveBatch records the outcome of one batch upload.
func (m *PredictionMetrics) ObserveBatch(outcome string) {
	if m == nil {
		return
	}
	m.BatchUploads.WithLabelValues(outcome).Inc()
}

// ObservePredictions records prices returned to a user.
func (m *PredictionMetrics) ObservePredictions(prices ...float64) {
	if m == nil {
		return
	}
	for _, p := range prices {
		m.PredictionsServed.Inc()
		m.PredictedPriceUSD.Observe(p)
	}
}
