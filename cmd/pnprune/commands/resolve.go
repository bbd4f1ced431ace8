package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.trai.ch/pnprune/internal/core/domain"
	"go.trai.ch/zerr"
)

func (c *CLI) newResolveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <workspace> <name> <specifier>",
		Short: "Print the locked package a workspace gets for a dependency",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			pkg, err := c.app.Resolve(cmd.Context(), args[0], args[1], args[2])
			if err != nil {
				return err
			}
			if !pkg.Found {
				err := zerr.With(domain.ErrMissingPackage, "dependency", args[1]+"@"+args[2])
				return zerr.With(err, "workspace", args[0])
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", pkg.Key, pkg.Version)
			return nil
		},
	}
}
