package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"krishimitra/internal/metrics"
	"krishimitra/pkg/logger"
)

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// withMiddleware wraps a handler with CORS headers, a per-request ID,
// request logging and Prometheus metrics.
func withMiddleware(log *logger.Logger, path string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		requestID := uuid.NewString()
		w.Header().Set("X-Request-ID", requestID)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next(rec, r)
		elapsed := time.Since(start)

		metrics.RecordHTTPRequest(path, r.Method, strconv.Itoa(rec.status), elapsed)
		log.With("request_id", requestID).
			Debugf("%s %s -> %d (%s)", r.Method, r.URL.Path, rec.status, elapsed)
	}
}
