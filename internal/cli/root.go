// Package cli provides the command-line interface for logextract.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/logextract/internal/cli/commands"
)

// Execute runs the root command and returns the exit code.
func Execute() int {
	return run(NewRootCommand(), os.Args[1:])
}

func run(rootCmd *cobra.Command, args []string) int {
	rootCmd.SetArgs(args)

	if err := rootCmd.Execute(); err != nil {
		// Print error to stderr (SilenceErrors prevents Cobra from doing this)
		_, _ = fmt.Fprintf(rootCmd.ErrOrStderr(), "Error: %v\n", err)
		return commands.ExitCodeFor(err)
	}
	return commands.ExitOK
}

// NewRootCommand creates the root cobra command. The root command itself
// extracts logs; the subcommands inspect the store and configuration. A user
// id that names a subcommand must follow "--".
func NewRootCommand() *cobra.Command {
	rootCmd := commands.NewExtractCommand()

	rootCmd.AddCommand(commands.NewUsersCommand())
	rootCmd.AddCommand(commands.NewValidateCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	return rootCmd
}
