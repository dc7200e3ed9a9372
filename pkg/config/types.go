// Package config provides configuration loading and validation for logextract.
package config

import "time"

// Config is the root configuration structure loaded from YAML.
type Config struct {
	// Database is a SQLite file path or a postgres:// DSN.
	Database string `yaml:"database"`

	// OutputDir is the root directory for exported files.
	OutputDir string `yaml:"output_dir"`

	// Pretty indents exported files and sorts their keys.
	Pretty bool `yaml:"pretty"`

	// Table is the log table to read.
	Table string `yaml:"table"`

	// SummaryFormat is the summary output format (text|json).
	SummaryFormat string `yaml:"summary_format"`

	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`

	Webhooks []WebhookConfig `yaml:"webhooks,omitempty"`
}

// WebhookTrigger determines when a webhook fires.
type WebhookTrigger string

const (
	// WebhookTriggerAlways fires after every export (default).
	WebhookTriggerAlways WebhookTrigger = "always"
	// WebhookTriggerOnFallback fires only when some event_data could not be decoded.
	WebhookTriggerOnFallback WebhookTrigger = "on_fallback"
	// WebhookTriggerNever disables the webhook.
	WebhookTriggerNever WebhookTrigger = "never"
)

// WebhookConfig defines a webhook endpoint for export summaries.
type WebhookConfig struct {
	// Name is an optional identifier for the webhook.
	Name string `yaml:"name,omitempty"`

	// URL is the webhook endpoint (required).
	URL string `yaml:"url"`

	// Token is an optional bearer token for authentication.
	Token string `yaml:"token,omitempty"`

	// Trigger determines when the webhook fires.
	// Defaults to "always" if not specified.
	Trigger WebhookTrigger `yaml:"trigger,omitempty"`

	// Timeout is the HTTP request timeout.
	// Defaults to 10s if not specified.
	Timeout time.Duration `yaml:"timeout,omitempty"`
}
