package config

import (
	"errors"
	"net/url"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Local artifact pair, used when ModelServerURL is empty.
	PreprocessorPath string
	ModelPath        string

	// Remote model server configuration.
	ModelServerURL string
	PredictTimeout time.Duration
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	predictTimeout, err := time.ParseDuration(sharedcfg.EnvOrDefault("PREDICT_TIMEOUT", "5s"))
	if err != nil || predictTimeout <= 0 {
		return nil, errors.New("invalid PREDICT_TIMEOUT")
	}

	cfg := &Config{
		HTTPAddr:         sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:         sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:        sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout:  shutdownTimeout,
		PreprocessorPath: sharedcfg.EnvOrDefault("PREPROCESSOR_PATH", "preprocessor.json"),
		ModelPath:        sharedcfg.EnvOrDefault("MODEL_PATH", "xgb_model.json"),
		ModelServerURL:   sharedcfg.EnvOrDefault("MODEL_SERVER_URL", ""),
		PredictTimeout:   predictTimeout,
	}

	if cfg.ModelServerURL != "" {
		u, err := url.Parse(cfg.ModelServerURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return nil, errors.New("MODEL_SERVER_URL must be an absolute http(s) URL")
		}
	}

	return cfg, nil
}

// UseModelServer reports whether predictions go to a remote model server
// instead of the local artifacts.
func (c *Config) UseModelServer() bool {
	return c.ModelServerURL != ""
}
