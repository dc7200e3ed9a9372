package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/logextract/pkg/store"
)

// NewUsersCommand creates the users command.
func NewUsersCommand() *cobra.Command {
	opts := &StoreOptions{}

	cmd := &cobra.Command{
		Use:   "users",
		Short: "List users with logs in the store",
		Long: `List every user id found in the log table together with its number of
log rows. Use it to find the ids to pass to an extraction.`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUsers(cmd, opts)
		},
	}

	cmd.SetFlagErrorFunc(UsageFlagError)
	addStoreFlags(cmd, opts)

	return cmd
}

func runUsers(cmd *cobra.Command, opts *StoreOptions) error {
	ctx := commandContext(cmd)

	cfg, err := loadConfig(cmd, opts, nil)
	if err != nil {
		return err
	}

	r, err := store.Open(ctx, cfg.Database, store.WithTable(cfg.Table))
	if err != nil {
		return err
	}
	defer r.Close()

	users, err := r.ListUsers(ctx)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(users) == 0 {
		fmt.Fprintf(out, "No users found in %s\n", r.Table())
		return nil
	}

	total := 0
	fmt.Fprintf(out, "Users in %s (%s):\n", store.DisplayLocation(cfg.Database), r.Table())
	for _, u := range users {
		fmt.Fprintf(out, "  %s: %d logs\n", u.UserID, u.Rows)
		total += u.Rows
	}
	fmt.Fprintf(out, "\n%d users, %d logs\n", len(users), total)

	return nil
}
