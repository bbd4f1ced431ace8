package commands

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"go.trai.ch/pnprune/internal/app"
	"go.trai.ch/pnprune/internal/ui/style"
)

func (c *CLI) newPruneCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prune [workspaces...]",
		Short: "Write a pruned copy of the monorepo for the given workspaces",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				_ = cmd.Help()
				return nil
			}
			outDir, _ := cmd.Flags().GetString("out-dir")
			docker, _ := cmd.Flags().GetBool("docker")
			prod, _ := cmd.Flags().GetBool("prod")
			noCache, _ := cmd.Flags().GetBool("no-cache")

			result, err := c.app.Prune(cmd.Context(), args, app.PruneOptions{
				OutDir:     outDir,
				Docker:     docker,
				Production: prod,
				NoCache:    noCache,
			})
			if err != nil {
				return err
			}

			printPruneSummary(cmd.OutOrStdout(), result)
			return nil
		},
	}
	cmd.Flags().StringP("out-dir", "o", "", "Output directory, relative to the workspace root (default \"out\")")
	cmd.Flags().Bool("docker", false, "Split output into json/ (manifests) and full/ (sources)")
	cmd.Flags().Bool("prod", false, "Skip devDependencies when computing the package closure")
	cmd.Flags().BoolP("no-cache", "n", false, "Bypass the closure cache")
	return cmd
}

func printPruneSummary(w io.Writer, result *app.PruneResult) {
	source := "computed"
	if result.CacheHit {
		source = "cached"
	}
	_, _ = fmt.Fprintln(w, style.Success.Render(style.Check)+" "+style.Heading.Render(result.OutDir))
	_, _ = fmt.Fprintln(w, style.Muted.Render(fmt.Sprintf(
		"  %d workspace(s), %d package(s), lockfile %s, %s closure",
		len(result.Workspaces), result.Packages, humanize.Bytes(uint64(result.LockfileSize)), source,
	)))
}
