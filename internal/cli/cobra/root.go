// Package cobra provides the Cobra-based CLI command tree for pointings.
package cobra

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/petabyte-project/pointings/internal/version"
)

// GlobalOpts holds global options parsed before subcommand dispatch.
type GlobalOpts struct {
	Verbose bool
}

// globalOpts stores the parsed global options for access by subcommands.
var globalOpts GlobalOpts

// GetGlobalOpts returns the parsed global options.
func GetGlobalOpts() GlobalOpts {
	return globalOpts
}

// NewRootCmd creates the root cobra command for pointings.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "pointings",
		Short: "Scan survey directories for radio-telescope pointing metadata",
		Long: `pointings - pointing metadata scanner for pulsar survey archives

Pointings walks survey directory trees for observation files (.fits, .fil),
reads each file's header with the external readfile and psredit tools, and
writes one tab-separated report of pointing metadata plus lists of files
that could not be read (broken symlinks, empty files, encoding errors,
tool errors).`,
		Version:       version.FullVersion(),
		SilenceErrors: true, // We handle error printing in main.go
		SilenceUsage:  true, // We handle usage printing manually
	}

	rootCmd.PersistentFlags().BoolVar(&globalOpts.Verbose, "verbose", false, "show detailed error context")

	rootCmd.AddCommand(
		newScanCmd(),
		newVersionCmd(),
	)

	return rootCmd
}

// Execute runs the root command with the given output writers.
// This is the main entry point from main.go.
func Execute(stdout, stderr io.Writer) error {
	rootCmd := NewRootCmd()
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	return rootCmd.Execute()
}
