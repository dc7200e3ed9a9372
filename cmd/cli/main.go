// logextract - User Log Export Tool
//
// logextract reads one user's rows from a log table, groups them by the
// system and task recorded in each row's event data, and writes one JSON
// file per group.
package main

import (
	"os"

	"github.com/ccollicutt/logextract/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
