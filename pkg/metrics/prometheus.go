package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	recordsGenerated prometheus.Counter
	recordsDropped   *prometheus.CounterVec
	passRate         prometheus.Gauge
	trainingDuration prometheus.Histogram
	modelR2          prometheus.Gauge
	predictions      prometheus.Counter
	lastPrice        prometheus.Gauge
	errorsTotal      *prometheus.CounterVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		recordsGenerated: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "pricecast_records_generated_total",
				Help: "Total number of pricing records generated",
			},
		),
		recordsDropped: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pricecast_records_dropped_total",
				Help: "Records dropped by the quality validator, per check",
			},
			[]string{"check"},
		),
		passRate: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "pricecast_batch_pass_rate",
				Help: "Pass rate of the most recent validated batch",
			},
		),
		trainingDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "pricecast_training_duration_seconds",
				Help:    "Duration of model training runs in seconds",
				Buckets: prometheus.ExponentialBuckets(0.1, 2, 10),
			},
		),
		modelR2: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "pricecast_model_r2",
				Help: "R-squared of the current model on its held-out partition",
			},
		),
		predictions: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "pricecast_predictions_total",
				Help: "Total number of price predictions served",
			},
		),
		lastPrice: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "pricecast_last_predicted_price",
				Help: "Most recent predicted price",
			},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pricecast_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
	}
}

// RecordGenerated records generated record count.
func (r *Recorder) RecordGenerated(n int) {
	r.recordsGenerated.Add(float64(n))
}

// RecordDropped records records dropped by a validation check.
func (r *Recorder) RecordDropped(check string, n int) {
	r.recordsDropped.WithLabelValues(check).Add(float64(n))
}

// RecordPassRate records the latest batch pass rate.
func (r *Recorder) RecordPassRate(rate float64) {
	r.passRate.Set(rate)
}

// RecordTrainingDuration records a training run duration in seconds.
func (r *Recorder) RecordTrainingDuration(seconds float64) {
	r.trainingDuration.Observe(seconds)
}

// RecordModelR2 records the current model R-squared.
func (r *Recorder) RecordModelR2(r2 float64) {
	r.modelR2.Set(r2)
}

// RecordPrediction records a served prediction.
func (r *Recorder) RecordPrediction(price float64) {
	r.predictions.Inc()
	r.lastPrice.Set(price)
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}
