package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"krishimitra/internal/adapters/config"
	"krishimitra/internal/adapters/errors/noop"
	"krishimitra/internal/adapters/errors/sentry"
	"krishimitra/internal/bootstrap"
	"krishimitra/internal/metrics"
	"krishimitra/pkg/errors"
	"krishimitra/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := loadConfig()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize logger
	if err := initLogger(cfg); err != nil {
		panic("failed to init logger: " + err.Error())
	}
	defer logger.Sync()

	log := logger.Get()
	log.Infof("Starting %s in %s mode", cfg.App.Name, cfg.App.Env)

	// Initialize error tracker
	errorTracker := initErrorTracker(cfg, log)
	logger.SetErrorTracker(errorTracker)

	// Initialize Prometheus metrics
	metrics.Init()

	// Build the dependency container: ONNX runtime, model services,
	// HTTP server and Telegram bot
	container := bootstrap.NewContainer()
	container.MustInit()

	if err := container.Start(); err != nil {
		log.Fatalf("Failed to start: %v", err)
	}

	log.Info("System initialized successfully")

	// Wait for shutdown signal
	waitForShutdown(container, errorTracker, log)
}

// loadConfig loads application configuration from environment
func loadConfig() (*config.Config, error) {
	return config.Load()
}

// initLogger initializes structured logging
func initLogger(cfg *config.Config) error {
	return logger.Init(cfg.App.LogLevel, cfg.App.Env)
}

// initErrorTracker initializes error tracking (Sentry or no-op)
func initErrorTracker(cfg *config.Config, log *logger.Logger) errors.Tracker {
	if !cfg.ErrorTracking.Enabled || cfg.ErrorTracking.SentryDSN == "" {
		log.Info("Error tracking disabled")
		return noop.New()
	}

	tracker, err := sentry.New(cfg.ErrorTracking.SentryDSN, cfg.ErrorTracking.Environment)
	if err != nil {
		log.Warnf("Failed to initialize Sentry: %v", err)
		return noop.New()
	}

	log.Info("Error tracking initialized (Sentry)")
	return tracker
}

// waitForShutdown blocks until a termination signal arrives, then runs the
// coordinated shutdown sequence.
func waitForShutdown(container *bootstrap.Container, tracker errors.Tracker, log *logger.Logger) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		log.Infof("Received signal: %v", sig)
	case <-container.Context.Done():
		log.Info("Application context cancelled")
	}

	container.Shutdown()

	flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = tracker.Flush(flushCtx)

	log.Info("Shutdown complete")
}
