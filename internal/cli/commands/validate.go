package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/logextract/pkg/store"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	opts := &StoreOptions{}

	cmd := &cobra.Command{
		Use:   "validate [config-file]",
		Short: "Validate configuration and the log store",
		Long: `Validate a logextract configuration without extracting anything.

Checks:
  - YAML syntax and field values
  - Webhook definitions
  - The database exists and can be opened
  - The log table has the id, user_id, timestamp, message, event_data
    and created_at columns`,
		Args: usageArgs(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				opts.ConfigFile = args[0]
			}
			return runValidate(cmd, opts)
		},
	}

	cmd.SetFlagErrorFunc(UsageFlagError)
	addStoreFlags(cmd, opts)

	return cmd
}

func runValidate(cmd *cobra.Command, opts *StoreOptions) error {
	ctx := commandContext(cmd)
	out := cmd.OutOrStdout()

	source := opts.ConfigFile
	if source == "" {
		source = "defaults"
	}
	fmt.Fprintf(out, "Validating %s...\n", source)

	cfg, err := loadConfig(cmd, opts, nil)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	fmt.Fprintf(out, "\nConfiguration valid!\n")
	fmt.Fprintf(out, "  Database:   %s\n", store.DisplayLocation(cfg.Database))
	fmt.Fprintf(out, "  Table:      %s\n", cfg.Table)
	fmt.Fprintf(out, "  Output dir: %s\n", cfg.OutputDir)
	fmt.Fprintf(out, "  Pretty:     %t\n", cfg.Pretty)
	fmt.Fprintf(out, "  Webhooks:   %d\n", len(cfg.Webhooks))
	for i, wh := range cfg.Webhooks {
		name := wh.Name
		if name == "" {
			name = wh.URL
		}
		fmt.Fprintf(out, "    %d. %s [%s]\n", i+1, name, wh.Trigger)
	}

	r, err := store.Open(ctx, cfg.Database, store.WithTable(cfg.Table))
	if err != nil {
		return err
	}
	defer r.Close()

	if err := r.CheckSchema(ctx); err != nil {
		return err
	}

	fmt.Fprintf(out, "\nStore valid: %s table %s has all required columns\n", r.Dialect(), r.Table())

	return nil
}
