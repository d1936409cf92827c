// Command pointings scans survey directory trees for radio-telescope
// pointing metadata.
package main

import (
	"os"

	"github.com/petabyte-project/pointings/internal/cli/cobra"
	"github.com/petabyte-project/pointings/internal/errors"
)

func main() {
	err := cobra.Execute(os.Stdout, os.Stderr)
	if err != nil {
		// Use verbose mode if --verbose global flag was set
		opts := errors.PrintOptions{
			Verbose: cobra.GetGlobalOpts().Verbose,
		}
		errors.PrintWithOptions(os.Stderr, err, opts)
		os.Exit(errors.ExitCode(err))
	}
}
