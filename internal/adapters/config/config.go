package config

import (
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"krishimitra/pkg/errors"
)

type Config struct {
	App           AppConfig
	Server        ServerConfig
	Models        ModelConfig
	Dataset       DatasetConfig
	Telegram      TelegramConfig
	ErrorTracking ErrorTrackingConfig
}

type AppConfig struct {
	Name     string `envconfig:"APP_NAME" default:"krishimitra"`
	Env      string `envconfig:"APP_ENV" default:"development"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
	Version  string `envconfig:"APP_VERSION" default:"1.0.0"`
}

type ServerConfig struct {
	Port int `envconfig:"HTTP_PORT" default:"8080"`
}

// ModelConfig locates the pretrained artifacts on local storage.
// Artifacts are produced by an external training process and loaded
// once at startup.
type ModelConfig struct {
	Dir           string `envconfig:"MODELS_DIR" default:"models"`
	Disease       string `envconfig:"DISEASE_MODEL" default:"plant_disease"`
	Crop          string `envconfig:"CROP_MODEL" default:"crop_recommendation"`
	Irrigation    string `envconfig:"IRRIGATION_MODEL" default:"irrigation"`
	FeatureNames  string `envconfig:"IRRIGATION_FEATURE_NAMES" default:"feature_names.json"`
	ModelInfo     string `envconfig:"IRRIGATION_MODEL_INFO" default:"model_info.json"`
	SharedLibPath string `envconfig:"ONNXRUNTIME_SHARED_LIB"`
}

// Path joins the models directory with a file name.
func (c ModelConfig) Path(name string) string {
	return filepath.Join(c.Dir, name)
}

type DatasetConfig struct {
	CropFertilizerCSV string `envconfig:"CROP_FERTILIZER_CSV" default:"data/crop_and_fertilizer.csv"`
}

type TelegramConfig struct {
	Enabled  bool   `envconfig:"TELEGRAM_ENABLED" default:"false"`
	BotToken string `envconfig:"TELEGRAM_BOT_TOKEN"`
}

type ErrorTrackingConfig struct {
	Enabled     bool   `envconfig:"ERROR_TRACKING_ENABLED" default:"true"`
	SentryDSN   string `envconfig:"SENTRY_DSN"`
	Environment string `envconfig:"SENTRY_ENVIRONMENT" default:"production"`
}

// Load reads configuration from environment variables
// It first tries to load .env file (useful for local development)
func Load() (*Config, error) {
	// Load .env file if exists (ignore error if not exists)
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, errors.Wrap(err, "failed to process env config")
	}

	return &cfg, nil
}
