package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/logextract/pkg/config"
	"github.com/ccollicutt/logextract/pkg/store"
)

// StoreOptions holds the flags shared by every command that reads the store.
type StoreOptions struct {
	ConfigFile string
	Database   string
	Table      string
	LogLevel   string
	LogFormat  string
}

func addStoreFlags(cmd *cobra.Command, opts *StoreOptions) {
	cmd.Flags().StringVar(&opts.ConfigFile, "config", "", "Path to a YAML config file")
	cmd.Flags().StringVar(&opts.Database, "db", config.DefaultDatabase, "Path to SQLite database or postgres:// DSN")
	cmd.Flags().StringVar(&opts.Table, "table", store.DefaultTable, "Name of the log table")
	cmd.Flags().StringVar(&opts.LogLevel, "log-level", config.DefaultLogLevel, "Diagnostic log level (debug|info|warn|error)")
	cmd.Flags().StringVar(&opts.LogFormat, "log-format", config.DefaultLogFormat, "Diagnostic log format (console|json)")
}

// loadConfig loads the config file (if any) and lets explicitly set flags
// override it.
func loadConfig(cmd *cobra.Command, opts *StoreOptions, overrides func(*config.Config)) (*config.Config, error) {
	cfg, err := config.Load(commandContext(cmd), opts.ConfigFile)
	if err != nil {
		return nil, usageError(fmt.Errorf("loading config: %w", err))
	}

	flags := cmd.Flags()
	if flags.Changed("db") {
		cfg.Database = opts.Database
	}
	if flags.Changed("table") {
		cfg.Table = opts.Table
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = opts.LogLevel
	}
	if flags.Changed("log-format") {
		cfg.LogFormat = opts.LogFormat
	}
	if overrides != nil {
		overrides(cfg)
	}

	if err := config.ValidateSettings(cfg); err != nil {
		return nil, usageError(fmt.Errorf("invalid options: %w", err))
	}

	return cfg, nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
