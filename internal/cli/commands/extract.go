package commands

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ccollicutt/logextract/internal/logging"
	"github.com/ccollicutt/logextract/pkg/config"
	"github.com/ccollicutt/logextract/pkg/export"
	"github.com/ccollicutt/logextract/pkg/group"
	"github.com/ccollicutt/logextract/pkg/output"
	"github.com/ccollicutt/logextract/pkg/record"
	"github.com/ccollicutt/logextract/pkg/store"
	"github.com/ccollicutt/logextract/pkg/webhook"
)

// ExtractOptions holds command-line options for an extraction.
type ExtractOptions struct {
	StoreOptions

	OutputDir     string
	Pretty        bool
	SummaryFormat string
	Verbose       bool
	Quiet         bool

	// Webhook options
	WebhookURL     string
	WebhookToken   string
	WebhookTrigger string
}

// NewExtractCommand creates the extraction command. It serves as the root
// command, so `logextract P1` runs an extraction.
func NewExtractCommand() *cobra.Command {
	opts := &ExtractOptions{}

	cmd := &cobra.Command{
		Use:   "logextract <user_id>",
		Short: "Extract a user's logs into one JSON file per task",
		Long: `Extract every log row of one user from the log store, group the rows by
the system and taskNumber fields of their event_data, and write one JSON file
per group to <output-dir>/<user_id>/<user_id>_system<system>_task<taskNumber>.json.

Rows whose event_data cannot be parsed are kept with {"raw": <text>} as their
event_data and grouped under systemunknown_taskunknown.

A user id equal to a subcommand name (users, validate, version, help) must
come after "--", with all flags before it:

  logextract --db ./mydata.db -- users

Exit codes:
  0 - Logs exported, or no logs found for the user
  1 - Database missing or unreadable, an output file could not be written,
      or any other runtime failure
  2 - Usage or configuration error`,
		Example: `  logextract P1
  logextract P2 --db ./mydata.db --pretty
  logextract P1 --db postgres://app@localhost/logs --output-dir exports`,
		Args: usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(cmd, args, opts)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.SetFlagErrorFunc(UsageFlagError)
	addStoreFlags(cmd, &opts.StoreOptions)
	cmd.Flags().StringVar(&opts.OutputDir, "output-dir", config.DefaultOutputDir, "Directory to save output JSON files")
	cmd.Flags().BoolVar(&opts.Pretty, "pretty", false, "Pretty print JSON output")
	cmd.Flags().StringVar(&opts.SummaryFormat, "summary-format", config.DefaultSummaryFormat, "Summary format (text|json)")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Include run metadata in the summary")
	cmd.Flags().BoolVarP(&opts.Quiet, "quiet", "q", false, "One-line summary")

	cmd.Flags().StringVar(&opts.WebhookURL, "webhook-url", "", "Webhook endpoint notified after the export")
	cmd.Flags().StringVar(&opts.WebhookToken, "webhook-token", "", "Bearer token for webhook auth")
	cmd.Flags().StringVar(&opts.WebhookTrigger, "webhook-trigger", string(config.WebhookTriggerAlways), "When to fire webhook (always|on_fallback|never)")

	return cmd
}

func runExtract(cmd *cobra.Command, args []string, opts *ExtractOptions) error {
	userID := args[0]
	ctx := commandContext(cmd)

	if err := export.ValidateUserID(userID); err != nil {
		return err
	}

	cfg, err := loadConfig(cmd, &opts.StoreOptions, func(cfg *config.Config) {
		flags := cmd.Flags()
		if flags.Changed("output-dir") {
			cfg.OutputDir = opts.OutputDir
		}
		if flags.Changed("pretty") {
			cfg.Pretty = opts.Pretty
		}
		if flags.Changed("summary-format") {
			cfg.SummaryFormat = opts.SummaryFormat
		}
	})
	if err != nil {
		return err
	}

	webhooks, err := collectWebhooks(cfg, opts)
	if err != nil {
		return usageError(err)
	}

	logger, err := logging.New(logging.Options{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		Output: cmd.ErrOrStderr(),
	})
	if err != nil {
		return usageError(err)
	}
	defer func() { _ = logger.Sync() }()

	runID := logging.NewRunID()
	logger = logger.With(zap.String("run_id", runID), zap.String("user_id", userID))

	// Progress lines would corrupt a JSON summary on stdout.
	progress := cmd.OutOrStdout()
	if cfg.SummaryFormat == "json" {
		progress = cmd.ErrOrStderr()
	}

	start := time.Now()
	location := store.DisplayLocation(cfg.Database)

	fmt.Fprintf(progress, "Extracting logs for user: %s\n", userID)
	fmt.Fprintf(progress, "From database: %s\n", location)

	rows, err := store.FetchUserLogs(ctx, cfg.Database, userID, store.WithTable(cfg.Table))
	if err != nil {
		return fmt.Errorf("reading logs: %w", err)
	}

	if len(rows) == 0 {
		fmt.Fprintf(progress, "No logs found for user %s\n", userID)
		return nil
	}

	fmt.Fprintf(progress, "Found %d total logs\n", len(rows))

	records, fallbacks := record.DecodeAll(rows, logger)
	groups := group.ByTask(records)
	logger.Debug("Grouped logs",
		zap.Int("rows", len(rows)),
		zap.Int("groups", groups.Len()),
		zap.Int("fallbacks", fallbacks))

	writer := export.NewWriter(cfg.OutputDir,
		export.WithPretty(cfg.Pretty),
		export.WithCreatedHook(func(path string, count int) {
			fmt.Fprintf(progress, "Created: %s (%d logs)\n", path, count)
		}),
	)

	paths, err := writer.Write(userID, groups)
	if err != nil {
		return fmt.Errorf("exporting logs: %w", err)
	}

	report := output.NewReport(userID, groups, output.Metadata{
		RunID:       runID,
		Database:    location,
		OutputDir:   cfg.OutputDir,
		ExtractedAt: start.UTC(),
		Duration:    time.Since(start),
	})
	report.SetFiles(paths)

	formatter, err := output.NewFormatter(cfg.SummaryFormat, output.FormatOptions{
		Verbose: opts.Verbose,
		Quiet:   opts.Quiet,
	})
	if err != nil {
		return usageError(err)
	}

	if err := formatter.Format(ctx, report, cmd.OutOrStdout()); err != nil {
		return fmt.Errorf("formatting summary: %w", err)
	}

	if formatter.Name() == "text" && !opts.Quiet {
		printFooter(progress, len(paths), cfg.OutputDir)
	}

	// Webhook failures are logged but don't fail the export.
	sendWebhooks(ctx, webhooks, report, logger)

	return nil
}

func printFooter(w io.Writer, files int, outputDir string) {
	fmt.Fprintf(w, "\n%s\n", output.Rule)
	fmt.Fprintf(w, "Successfully created %d files in %s\n", files, outputDir)
}

// collectWebhooks merges config file webhooks with the CLI webhook.
func collectWebhooks(cfg *config.Config, opts *ExtractOptions) ([]config.WebhookConfig, error) {
	webhooks := make([]config.WebhookConfig, 0, len(cfg.Webhooks)+1)
	webhooks = append(webhooks, cfg.Webhooks...)

	if opts.WebhookURL != "" {
		wh := config.WebhookConfig{
			Name:    "cli",
			URL:     opts.WebhookURL,
			Token:   opts.WebhookToken,
			Trigger: config.WebhookTrigger(opts.WebhookTrigger),
		}
		if err := config.ValidateWebhook(&wh); err != nil {
			return nil, fmt.Errorf("webhook: %w", err)
		}
		webhooks = append(webhooks, wh)
	}

	return webhooks, nil
}

// sendWebhooks sends the report to every webhook whose trigger matches.
func sendWebhooks(ctx context.Context, webhooks []config.WebhookConfig, report *output.Report, logger *zap.Logger) {
	if len(webhooks) == 0 {
		return
	}

	client := webhook.NewClient()

	for _, wh := range webhooks {
		if !webhook.ShouldFire(wh.Trigger, report) {
			continue
		}

		resp := client.Send(ctx, report, webhook.SendOptions{
			URL:     wh.URL,
			Token:   wh.Token,
			Timeout: wh.Timeout,
		})

		name := wh.Name
		if name == "" {
			name = wh.URL
		}

		if resp.Success() {
			logger.Info("Webhook sent",
				zap.String("webhook", name),
				zap.Int("status", resp.StatusCode),
				zap.Duration("duration", resp.Duration))
		} else {
			logger.Warn("Webhook failed",
				zap.String("webhook", name),
				zap.Error(resp.Error))
		}
	}
}
