package bootstrap

import (
	"context"
	"sync"
	"time"

	"krishimitra/internal/adapters/config"
	tghandler "krishimitra/internal/adapters/telegram"
	"krishimitra/internal/api"
	"krishimitra/internal/api/health"
	"krishimitra/internal/domain/crop"
	"krishimitra/internal/domain/disease"
	"krishimitra/internal/domain/irrigation"
	"krishimitra/internal/metrics"
	"krishimitra/internal/ml"
	"krishimitra/pkg/errors"
	"krishimitra/pkg/logger"
	tg "krishimitra/pkg/telegram"
)

// Services groups the domain inference services.
type Services struct {
	Disease    *disease.Service
	Crop       *crop.Service
	Irrigation *irrigation.Service
}

// Application groups the user-facing surfaces.
type Application struct {
	HTTPServer *api.Server
	Bot        *tg.Client
	BotHandler *tghandler.Handler
}

// Container wires configuration, the ONNX runtime, the domain services
// and both surfaces together. Construction order matters: runtime before
// models, models before handlers.
type Container struct {
	Config *config.Config
	Log    *logger.Logger

	Services    *Services
	Application *Application

	WG      *sync.WaitGroup
	Context context.Context
	Cancel  context.CancelFunc
}

// NewContainer creates an empty dependency container.
func NewContainer() *Container {
	ctx, cancel := context.WithCancel(context.Background())

	return &Container{
		Services:    &Services{},
		Application: &Application{},
		WG:          &sync.WaitGroup{},
		Context:     ctx,
		Cancel:      cancel,
	}
}

// MustInit initializes all components in the correct order.
// Panics on wiring errors; model load failures are non-fatal and leave
// the affected service degraded.
func (c *Container) MustInit() {
	c.MustInitConfig()
	c.MustInitRuntime()
	c.InitServices()
	c.MustInitApplication()
}

// MustInitConfig loads configuration and the logger.
func (c *Container) MustInitConfig() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}
	c.Config = cfg
	c.Log = logger.Get().With("component", "bootstrap")
}

// MustInitRuntime initializes the shared ONNX Runtime environment.
func (c *Container) MustInitRuntime() {
	if err := ml.InitEnvironment(c.Config.Models.SharedLibPath); err != nil {
		panic("failed to initialize onnxruntime: " + err.Error())
	}
	c.Log.Info("ONNX Runtime environment initialized")
}

// InitServices loads the three model pipelines. Each artifact is tried as
// .onnx first, then as a pre-optimized .ort file.
func (c *Container) InitServices() {
	models := c.Config.Models
	log := logger.Get()

	c.Services.Disease = disease.NewService(artifactPaths(models, models.Disease), log)
	c.Services.Crop = crop.NewService(
		artifactPaths(models, models.Crop),
		c.Config.Dataset.CropFertilizerCSV,
		log,
	)
	c.Services.Irrigation = irrigation.NewService(
		artifactPaths(models, models.Irrigation),
		models.Path(models.FeatureNames),
		models.Path(models.ModelInfo),
		log,
	)

	metrics.SetModelReady("disease", c.Services.Disease.Ready())
	metrics.SetModelReady("crop", c.Services.Crop.Ready())
	metrics.SetModelReady("irrigation", c.Services.Irrigation.Ready())
}

// MustInitApplication builds the HTTP server and, when enabled, the
// Telegram bot.
func (c *Container) MustInitApplication() {
	log := logger.Get()

	healthHandler := health.New(log, map[string]health.Component{
		"disease":    c.Services.Disease,
		"crop":       c.Services.Crop,
		"irrigation": c.Services.Irrigation,
	}, c.Config.App.Name, c.Config.App.Version)

	c.Application.HTTPServer = api.NewServer(
		api.ServerConfig{
			Port:        c.Config.Server.Port,
			ServiceName: c.Config.App.Name,
			Version:     c.Config.App.Version,
		},
		api.Handlers{
			Health:     healthHandler,
			Disease:    api.NewDiseaseHandler(c.Services.Disease, log),
			Crop:       api.NewCropHandler(c.Services.Crop, log),
			Irrigation: api.NewIrrigationHandler(c.Services.Irrigation, log),
		},
		log,
	)

	if !c.Config.Telegram.Enabled {
		c.Log.Info("Telegram bot disabled")
		return
	}

	bot, err := tg.NewClient(tg.Config{Token: c.Config.Telegram.BotToken}, log)
	if err != nil {
		panic("failed to create telegram bot: " + err.Error())
	}
	c.Application.Bot = bot
	c.Application.BotHandler = tghandler.NewHandler(
		bot,
		c.Services.Disease,
		c.Services.Crop,
		c.Services.Irrigation,
		log,
	)
	bot.SetHandler(c.Application.BotHandler.HandleUpdate)
}

// Start launches the HTTP server and the bot polling loop.
func (c *Container) Start() error {
	c.Log.Info("Starting all systems...")

	c.WG.Add(1)
	go func() {
		defer c.WG.Done()
		if err := c.Application.HTTPServer.Start(); err != nil {
			c.Log.Errorf("HTTP server failed: %v", err)
			c.Cancel()
		}
	}()

	if c.Application.Bot != nil {
		c.WG.Add(1)
		go func() {
			defer c.WG.Done()
			if err := c.Application.Bot.Start(c.Context); err != nil && !errors.Is(err, context.Canceled) {
				c.Log.Errorf("Telegram bot stopped: %v", err)
			}
		}()
		c.Log.Info("✓ Telegram bot started")
	}

	c.Log.Info("✓ All systems operational")
	return nil
}

// Shutdown performs coordinated cleanup: surfaces first, then models,
// then the shared runtime.
func (c *Container) Shutdown() {
	c.Log.Info("Initiating graceful shutdown...")
	c.Cancel()

	if c.Application.Bot != nil {
		c.Application.Bot.Stop()
		c.Log.Info("✓ Telegram bot stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := c.Application.HTTPServer.Shutdown(shutdownCtx); err != nil {
		c.Log.Errorf("HTTP server shutdown error: %v", err)
	} else {
		c.Log.Info("✓ HTTP server stopped")
	}

	c.WG.Wait()

	c.Services.Disease.Close()
	c.Services.Crop.Close()
	c.Services.Irrigation.Close()
	ml.DestroyEnvironment()
	c.Log.Info("✓ Model sessions released")
}

// artifactPaths returns the candidate file paths for one model artifact.
func artifactPaths(models config.ModelConfig, name string) []string {
	return []string{
		models.Path(name + ".onnx"),
		models.Path(name + ".ort"),
	}
}
