package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"krishimitra/internal/api/health"
	"krishimitra/internal/metrics"
	"krishimitra/pkg/errors"
	"krishimitra/pkg/logger"
)

// ServerConfig contains configuration for HTTP server
type ServerConfig struct {
	Port        int
	ServiceName string
	Version     string
}

// Handlers groups the per-domain REST handlers mounted on the server.
type Handlers struct {
	Health     *health.Handler
	Disease    *DiseaseHandler
	Crop       *CropHandler
	Irrigation *IrrigationHandler
}

// Server wraps HTTP server with lifecycle management
type Server struct {
	httpServer *http.Server
	log        *logger.Logger
}

// NewServer creates and configures HTTP server with all routes
func NewServer(cfg ServerConfig, h Handlers, log *logger.Logger) *Server {
	mux := http.NewServeMux()

	// Health check endpoints (Kubernetes probes)
	mux.HandleFunc("/health", h.Health.HandleHealth)
	mux.HandleFunc("/ready", h.Health.HandleReadiness)
	mux.HandleFunc("/live", h.Health.HandleLiveness)

	// Prometheus metrics endpoint
	mux.Handle("/metrics", metrics.Handler())

	// Disease domain
	mux.HandleFunc("/api/v1/disease/predict",
		withMiddleware(log, "/api/v1/disease/predict", h.Disease.HandlePredict))
	mux.HandleFunc("/api/v1/disease/classes",
		withMiddleware(log, "/api/v1/disease/classes", h.Disease.HandleClasses))

	// Crop domain
	mux.HandleFunc("/api/v1/crop/predict",
		withMiddleware(log, "/api/v1/crop/predict", h.Crop.HandlePredict))
	mux.HandleFunc("/api/v1/crop/fertilizer",
		withMiddleware(log, "/api/v1/crop/fertilizer", h.Crop.HandleFertilizer))
	mux.HandleFunc("/api/v1/crop/options",
		withMiddleware(log, "/api/v1/crop/options", h.Crop.HandleOptions))

	// Irrigation domain
	mux.HandleFunc("/api/v1/irrigation/predict",
		withMiddleware(log, "/api/v1/irrigation/predict", h.Irrigation.HandlePredict))
	mux.HandleFunc("/api/v1/irrigation/model-info",
		withMiddleware(log, "/api/v1/irrigation/model-info", h.Irrigation.HandleModelInfo))

	// Root endpoint (service info)
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = fmt.Fprintf(w, `{"service":"%s","version":"%s","status":"running"}`,
			cfg.ServiceName, cfg.Version)
	})

	port := 8080
	if cfg.Port > 0 {
		port = cfg.Port
	}

	log.Infof("HTTP server configured on port %d", port)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      mux,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Server{
		httpServer: httpServer,
		log:        log,
	}
}

// Start begins listening for HTTP requests
// Blocks until server is stopped or encounters an error
func (s *Server) Start() error {
	s.log.Infof("Starting HTTP server on %s", s.httpServer.Addr)

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return errors.Wrap(err, "http server failed")
	}

	return nil
}

// Shutdown gracefully stops the HTTP server
// Waits for active connections to complete within timeout
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info("Stopping HTTP server...")

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return errors.Wrap(err, "http server shutdown failed")
	}

	s.log.Info("✓ HTTP server stopped")
	return nil
}
