package cobra

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/petabyte-project/pointings/internal/version"
)

func newVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print pointings version",
		Long:  "Print the pointings version string.",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "pointings %s\n", version.FullVersion())
		},
	}

	return cmd
}
