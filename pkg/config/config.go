package config

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/ccollicutt/logextract/pkg/store"
)

// Load reads and validates a configuration file. An empty path yields the
// defaults with environment overrides applied.
func Load(_ context.Context, path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path) // #nosec G304 -- user-provided config path is expected
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}

		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.applyEnvironmentOverrides()

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// Validate checks a configuration for errors and fills webhook defaults.
func Validate(cfg *Config) error {
	if err := ValidateSettings(cfg); err != nil {
		return err
	}

	// Webhooks are optional, but validate if present
	for i := range cfg.Webhooks {
		if err := ValidateWebhook(&cfg.Webhooks[i]); err != nil {
			name := cfg.Webhooks[i].Name
			if name == "" {
				name = cfg.Webhooks[i].URL
			}
			return fmt.Errorf("webhooks[%d] (%s): %w", i, name, err)
		}
	}

	return nil
}

// ValidateSettings checks every field except webhooks. It can be rerun after
// command-line flags have overridden loaded values.
func ValidateSettings(cfg *Config) error {
	if cfg.Database == "" {
		return errors.New("database: a database path or DSN is required")
	}

	if cfg.OutputDir == "" {
		return errors.New("output_dir: an output directory is required")
	}

	if !store.ValidTableName(cfg.Table) {
		return fmt.Errorf("table: invalid table name %q", cfg.Table)
	}

	switch cfg.SummaryFormat {
	case "text", "json":
	default:
		return fmt.Errorf("summary_format: invalid format %q (must be text or json)", cfg.SummaryFormat)
	}

	if _, err := zapcore.ParseLevel(cfg.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}

	switch cfg.LogFormat {
	case "console", "json":
	default:
		return fmt.Errorf("log_format: invalid format %q (must be console or json)", cfg.LogFormat)
	}

	return nil
}

// ValidateWebhook checks a webhook definition, expands its token from the
// environment and fills the trigger and timeout defaults.
func ValidateWebhook(wh *WebhookConfig) error {
	if wh.URL == "" {
		return errors.New("url is required")
	}

	u, err := url.Parse(wh.URL)
	if err != nil {
		return fmt.Errorf("invalid url: %w", err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("url scheme must be http or https, got %q", u.Scheme)
	}

	if u.Host == "" {
		return errors.New("url must have a host")
	}

	wh.Token = expandEnvVar(wh.Token)

	switch wh.Trigger {
	case "":
		wh.Trigger = WebhookTriggerAlways
	case WebhookTriggerAlways, WebhookTriggerOnFallback, WebhookTriggerNever:
	default:
		return fmt.Errorf("invalid trigger %q (must be always, on_fallback, or never)", wh.Trigger)
	}

	if wh.Timeout <= 0 {
		wh.Timeout = DefaultWebhookTimeout
	}

	return nil
}

// expandEnvVar expands environment variables in the format ${VAR} or $VAR.
func expandEnvVar(s string) string {
	if s == "" {
		return s
	}

	if strings.HasPrefix(s, "${") && strings.HasSuffix(s, "}") {
		return os.Getenv(s[2 : len(s)-1])
	}

	if strings.HasPrefix(s, "$") && !strings.HasPrefix(s, "${") {
		return os.Getenv(s[1:])
	}

	return s
}
