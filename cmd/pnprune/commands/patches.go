package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *CLI) newPatchesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "patches",
		Short: "List the patch files the lockfile references",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			patches, err := c.app.Patches(cmd.Context())
			if err != nil {
				return err
			}
			for _, p := range patches {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), p)
			}
			return nil
		},
	}
}
