package cobra

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/petabyte-project/pointings/internal/commands"
	"github.com/petabyte-project/pointings/internal/exec"
)

func newScanCmd() *cobra.Command {
	var ignorePath string
	var configPath string
	var strict bool

	cmd := &cobra.Command{
		Use:   "scan <dir-list> <output-prefix>",
		Short: "Scan survey directories and write the pointing report",
		Long: `Scan every survey listed in the tab-separated directory list and write
<output-prefix>_output_list.txt plus one failure list per non-empty
failure category.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			stdout := cmd.OutOrStdout()
			stderr := cmd.ErrOrStderr()

			cr := exec.NewRealRunner()
			ctx := context.Background()

			opts := commands.ScanOpts{
				DirListPath:  args[0],
				OutputPrefix: args[1],
				IgnorePath:   ignorePath,
				ConfigPath:   configPath,
				Strict:       strict,
			}

			return commands.Scan(ctx, cr, opts, stdout, stderr)
		},
	}

	cmd.Flags().StringVar(&ignorePath, "ignore", "", "file listing data files and directories to skip")
	cmd.Flags().StringVar(&configPath, "config", "", "YAML tool config (binaries, extensions, calibration marker)")
	cmd.Flags().BoolVar(&strict, "strict", false, "abort the whole run when the header tool fails for any file")

	return cmd
}
