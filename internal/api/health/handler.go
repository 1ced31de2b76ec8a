package health

import (
	"encoding/json"
	"net/http"
	"time"

	"krishimitra/pkg/logger"
)

// Component is anything whose readiness the health endpoints report.
// Model-backed services implement this: a failed artifact load means
// Ready() is false and LoadError() carries the message.
type Component interface {
	Ready() bool
	LoadError() string
}

// Handler provides health check endpoints
type Handler struct {
	log         *logger.Logger
	components  map[string]Component
	startTime   time.Time
	serviceName string
	version     string
}

// New creates a new health check handler over the named components.
func New(log *logger.Logger, components map[string]Component, serviceName, version string) *Handler {
	return &Handler{
		log:         log,
		components:  components,
		startTime:   time.Now(),
		serviceName: serviceName,
		version:     version,
	}
}

// HealthStatus represents the overall health status
type HealthStatus struct {
	Status    string                     `json:"status"` // "healthy", "degraded", "unhealthy"
	Service   string                     `json:"service"`
	Version   string                     `json:"version"`
	Uptime    string                     `json:"uptime"`
	Timestamp string                     `json:"timestamp"`
	Checks    map[string]ComponentHealth `json:"checks"`
}

// ComponentHealth represents health of a single component
type ComponentHealth struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// HandleLiveness returns 200 OK if service is running
// Used by Kubernetes liveness probe
func (h *Handler) HandleLiveness(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{
		"status": "alive",
	})
}

// HandleReadiness checks if all models are loaded and the service is ready
// to accept inference traffic. Used by Kubernetes readiness probe.
func (h *Handler) HandleReadiness(w http.ResponseWriter, r *http.Request) {
	status, healthy, total := h.check()

	statusCode := http.StatusOK
	if healthy < total {
		statusCode = http.StatusServiceUnavailable
		h.log.Warnf("readiness check failed: %d/%d models ready", healthy, total)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(status)
}

// HandleHealth returns detailed health status. A process with some but not
// all models loaded reports "degraded" with 200, matching the design that
// startup load failures keep the process serving.
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	status, healthy, _ := h.check()

	statusCode := http.StatusOK
	if healthy == 0 {
		statusCode = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(status)
}

func (h *Handler) check() (HealthStatus, int, int) {
	checks := make(map[string]ComponentHealth, len(h.components))
	healthy := 0
	for name, c := range h.components {
		if c.Ready() {
			checks[name] = ComponentHealth{Status: "healthy"}
			healthy++
		} else {
			checks[name] = ComponentHealth{Status: "unhealthy", Error: c.LoadError()}
		}
	}

	overall := "healthy"
	switch {
	case healthy == 0:
		overall = "unhealthy"
	case healthy < len(h.components):
		overall = "degraded"
	}

	return HealthStatus{
		Status:    overall,
		Service:   h.serviceName,
		Version:   h.version,
		Uptime:    time.Since(h.startTime).String(),
		Timestamp: time.Now().Format(time.RFC3339),
		Checks:    checks,
	}, healthy, len(h.components)
}
