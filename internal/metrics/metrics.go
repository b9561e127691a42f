// Package metrics defines the Prometheus collectors exported on /metrics.
//
// Usage:
//
//	metrics.RecordPrediction("pos", 350*time.Microsecond)
//	metrics.RecordPredictionError("not_ready")
//	metrics.RecordHTTPRequest("POST", "/api/predict", "200", 2*time.Millisecond)
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// PredictionsTotal counts successful predictions by sentiment.
	PredictionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sentiment_predictions_total",
			Help: "Total number of sentiment predictions",
		},
		[]string{"sentiment"},
	)

	// PredictionErrorsTotal counts failed predictions by reason.
	PredictionErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sentiment_prediction_errors_total",
			Help: "Total number of failed sentiment predictions",
		},
		[]string{"reason"},
	)

	// PredictionDuration tracks vectorize + predict latency.
	PredictionDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "sentiment_prediction_duration_seconds",
			Help:    "Duration of a single prediction in seconds",
			Buckets: []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05},
		},
	)

	// PredictionCacheHitsTotal counts predictions answered from the cache.
	PredictionCacheHitsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sentiment_prediction_cache_hits_total",
			Help: "Total number of predictions served from the cache",
		},
	)

	// ModelReady is 1 once the model is trained.
	ModelReady = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "sentiment_model_ready",
			Help: "Whether the sentiment model is trained and serving (1) or not (0)",
		},
	)

	// VocabularySize is the number of features of the trained model.
	VocabularySize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "sentiment_vocabulary_size",
			Help: "Number of features in the trained vocabulary",
		},
	)

	// TrainingDuration is how long startup training took.
	TrainingDuration = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "sentiment_training_duration_seconds",
			Help: "Duration of model training in seconds",
		},
	)

	// HTTPRequestsTotal counts API requests by method, route and status.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	// HTTPRequestDuration tracks request latency by method and route.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
)

// RecordPrediction records a successful prediction.
func RecordPrediction(sentiment string, d time.Duration) {
	PredictionsTotal.WithLabelValues(sentiment).Inc()
	PredictionDuration.Observe(d.Seconds())
}

// RecordPredictionError records a failed prediction.
func RecordPredictionError(reason string) {
	PredictionErrorsTotal.WithLabelValues(reason).Inc()
}

// RecordCacheHit records a prediction served from cache.
func RecordCacheHit() {
	PredictionCacheHitsTotal.Inc()
}

// RecordModelTrained publishes the trained model's shape.
func RecordModelTrained(vocabulary int, d time.Duration) {
	VocabularySize.Set(float64(vocabulary))
	TrainingDuration.Set(d.Seconds())
	ModelReady.Set(1)
}

// RecordHTTPRequest records one served request.
func RecordHTTPRequest(method, route, status string, d time.Duration) {
	HTTPRequestsTotal.WithLabelValues(method, route, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}
