// Package commands implements the CLI commands for smelt.
package commands

import (
	"context"

	"github.com/spf13/cobra"
	"go.smelt.dev/smelt/internal/adapters/config"
	"go.smelt.dev/smelt/internal/app"
)

// CLI represents the command line interface for smelt.
type CLI struct {
	app     *app.App
	rootCmd *cobra.Command
}

// New creates a new CLI instance with the given app.
func New(a *app.App, loader *config.Loader) *CLI {
	rootCmd := &cobra.Command{
		Use:           "smelt",
		Short:         "Resolve build configuration and orchestrate the packaging pipeline",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringP("config", "c", config.DefaultFilename, "Path to configuration file")
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		path, err := cmd.Flags().GetString("config")
		if err != nil {
			return err
		}
		loader.Filename = path
		return nil
	}

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	rootCmd.AddCommand(c.newBuildCmd())
	rootCmd.AddCommand(c.newCheckCmd())
	rootCmd.AddCommand(c.newShellCmd())
	rootCmd.AddCommand(c.newSnapshotCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// addPipelineFlags registers the flags shared by the pipeline commands.
func addPipelineFlags(cmd *cobra.Command) {
	cmd.Flags().String("platform", "", "Target platform (linux, darwin, other); detected when omitted")
	cmd.Flags().String("revision", "", "Revision identifier recorded in the version string")
}

func pipelineOptions(cmd *cobra.Command) app.PipelineOptions {
	platform, _ := cmd.Flags().GetString("platform")
	revision, _ := cmd.Flags().GetString("revision")
	return app.PipelineOptions{
		Platform: platform,
		Revision: revision,
	}
}
