package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *CLI) newDiffCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "diff <other-lockfile>",
		Short: "Report whether another lockfile changes settings shared by every workspace",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			changed, err := c.app.Diff(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if changed {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "global change: every workspace is affected")
				return nil
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no global change")
			return nil
		},
	}
}
