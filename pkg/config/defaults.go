package config

import (
	"os"
	"time"

	"github.com/ccollicutt/logextract/pkg/store"
)

// Default values for configuration.
const (
	DefaultDatabase       = "database.db"
	DefaultOutputDir      = "user_logs"
	DefaultSummaryFormat  = "text"
	DefaultLogLevel       = "info"
	DefaultLogFormat      = "console"
	DefaultWebhookTimeout = 10 * time.Second
)

// Environment variable names.
const (
	EnvDatabase  = "LOGEXTRACT_DB"
	EnvOutputDir = "LOGEXTRACT_OUTPUT_DIR"
	EnvTable     = "LOGEXTRACT_TABLE"
	EnvLogLevel  = "LOGEXTRACT_LOG_LEVEL"
)

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Database:      DefaultDatabase,
		OutputDir:     DefaultOutputDir,
		Table:         store.DefaultTable,
		SummaryFormat: DefaultSummaryFormat,
		LogLevel:      DefaultLogLevel,
		LogFormat:     DefaultLogFormat,
	}
}

// applyEnvironmentOverrides applies environment variable overrides to the config.
func (c *Config) applyEnvironmentOverrides() {
	if v := os.Getenv(EnvDatabase); v != "" {
		c.Database = v
	}
	if v := os.Getenv(EnvOutputDir); v != "" {
		c.OutputDir = v
	}
	if v := os.Getenv(EnvTable); v != "" {
		c.Table = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
}
