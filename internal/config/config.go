// Package config loads application configuration from environment variables.
// All variables are prefixed with SHARKGUARD_, e.g. SHARKGUARD_LOG_LEVEL.
package config

import (
	"github.com/kelseyhightower/envconfig"
)

// Config holds every runtime setting of the application.
type Config struct {
	// LogLevel is the minimum log level (debug, info, warn, error).
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// TelemetryEnabled turns on the OpenTelemetry pipelines. The OTLP
	// endpoint is taken from the standard OTEL_EXPORTER_OTLP_* variables.
	TelemetryEnabled bool `envconfig:"TELEMETRY_ENABLED" default:"false"`

	// EtherscanAPIKey authenticates against the blockchain explorer. Without
	// it, analyses run over an empty transaction history.
	EtherscanAPIKey string `envconfig:"ETHERSCAN_API_KEY"`

	// EtherscanBaseURL overrides the explorer endpoint, for compatible
	// explorers or private mirrors. Empty selects the public Etherscan API.
	EtherscanBaseURL string `envconfig:"ETHERSCAN_BASE_URL"`

	// ModelPath is where the trained model artifact is persisted.
	ModelPath string `envconfig:"MODEL_PATH" default:"models/isolation_model.json"`

	// DatasetPath is where generated feature datasets are persisted.
	DatasetPath string `envconfig:"DATASET_PATH" default:"data/simulated_features.csv"`

	// ModelSeed seeds model training for reproducible artifacts.
	ModelSeed int64 `envconfig:"MODEL_SEED" default:"42"`

	// SuspicionThreshold is the normalized score at or above which a wallet
	// is labeled suspicious.
	SuspicionThreshold float64 `envconfig:"SUSPICION_THRESHOLD" default:"0.5"`

	// RedisAddr enables the Redis-backed watchlist when non-empty.
	RedisAddr     string `envconfig:"REDIS_ADDR"`
	RedisUsername string `envconfig:"REDIS_USERNAME"`
	RedisPassword string `envconfig:"REDIS_PASSWORD"`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`
}

// Load reads the configuration from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("sharkguard", &cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}
