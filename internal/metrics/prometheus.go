package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"krishimitra/pkg/errors"
)

var (
	// Inference metrics
	InferenceRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "krishimitra_inference_requests_total",
			Help: "Total number of inference requests",
		},
		[]string{"domain", "status"}, // status: success|invalid_input|unavailable|error
	)

	InferenceDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "krishimitra_inference_duration_seconds",
			Help:    "Inference duration in seconds, including encoding and formatting",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5},
		},
		[]string{"domain"},
	)

	InferenceConfidence = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "krishimitra_inference_confidence",
			Help:    "Confidence of the top predicted class",
			Buckets: []float64{0.1, 0.25, 0.5, 0.75, 0.9, 0.95, 0.99, 1},
		},
		[]string{"domain"},
	)

	// Model state metrics
	ModelReady = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "krishimitra_model_ready",
			Help: "Whether the model artifact for a domain loaded successfully (1=ready)",
		},
		[]string{"domain"},
	)

	// HTTP metrics
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "krishimitra_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"path", "method", "status"},
	)

	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "krishimitra_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"path"},
	)

	// Bot metrics
	BotUpdates = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "krishimitra_bot_updates_total",
			Help: "Total number of Telegram updates handled",
		},
		[]string{"kind", "status"}, // kind: command|form_input|photo|callback
	)
)

func Init() {
	prometheus.MustRegister(InferenceRequests)
	prometheus.MustRegister(InferenceDuration)
	prometheus.MustRegister(InferenceConfidence)
	prometheus.MustRegister(ModelReady)
	prometheus.MustRegister(HTTPRequests)
	prometheus.MustRegister(HTTPDuration)
	prometheus.MustRegister(BotUpdates)
}

// Handler returns Prometheus HTTP handler
func Handler() http.Handler {
	return promhttp.Handler()
}

// RecordInference records one inference call outcome
func RecordInference(domain string, duration time.Duration, confidence float64, err error) {
	InferenceRequests.WithLabelValues(domain, statusLabel(err)).Inc()
	InferenceDuration.WithLabelValues(domain).Observe(duration.Seconds())
	if err == nil {
		InferenceConfidence.WithLabelValues(domain).Observe(confidence)
	}
}

// SetModelReady publishes the ready state of a domain's model
func SetModelReady(domain string, ready bool) {
	v := 0.0
	if ready {
		v = 1.0
	}
	ModelReady.WithLabelValues(domain).Set(v)
}

// RecordHTTPRequest records one HTTP request
func RecordHTTPRequest(path, method, status string, duration time.Duration) {
	HTTPRequests.WithLabelValues(path, method, status).Inc()
	HTTPDuration.WithLabelValues(path).Observe(duration.Seconds())
}

// RecordBotUpdate records one handled Telegram update
func RecordBotUpdate(kind string, err error) {
	BotUpdates.WithLabelValues(kind, statusLabel(err)).Inc()
}

func statusLabel(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, errors.ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, errors.ErrNotFound):
		return "not_found"
	case errors.Is(err, errors.ErrUnavailable):
		return "unavailable"
	default:
		return "error"
	}
}
