// Package commands implements the CLI commands for pnprune.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/pnprune/internal/app"
	"go.trai.ch/pnprune/internal/build"
	"go.trai.ch/pnprune/internal/core/domain"
)

// CLI represents the command line interface for pnprune.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
}

// Application represents the application logic interface.
type Application interface {
	Configure(opts app.Options)
	Prune(ctx context.Context, workspaces []string, opts app.PruneOptions) (*app.PruneResult, error)
	Resolve(ctx context.Context, workspace, name, specifier string) (domain.Package, error)
	Deps(ctx context.Context, key string) (map[string]string, error)
	Patches(ctx context.Context) ([]string, error)
	Diff(ctx context.Context, otherPath string) (bool, error)
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	rootCmd := &cobra.Command{
		Use:           "pnprune",
		Short:         "Prune pnpm monorepos down to the workspaces you deploy",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	// Registered before the version flag so -v stays bound to --verbose.
	rootCmd.PersistentFlags().String("cwd", "", "Directory to discover the workspace root from")
	rootCmd.PersistentFlags().Bool("json", false, "Write logs as JSON lines")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logs and step progress")

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, _ []string) {
		cwd, _ := cmd.Flags().GetString("cwd")
		jsonLogs, _ := cmd.Flags().GetBool("json")
		verbose, _ := cmd.Flags().GetBool("verbose")
		a.Configure(app.Options{Cwd: cwd, JSON: jsonLogs, Verbose: verbose})
	}

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	rootCmd.AddCommand(c.newPruneCmd())
	rootCmd.AddCommand(c.newResolveCmd())
	rootCmd.AddCommand(c.newDepsCmd())
	rootCmd.AddCommand(c.newPatchesCmd())
	rootCmd.AddCommand(c.newDiffCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}
