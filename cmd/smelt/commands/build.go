package commands

import (
	"github.com/spf13/cobra"
)

// newBuildCmd creates the build command.
func (c *CLI) newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build the release package and generate its artifacts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts := pipelineOptions(cmd)
			opts.Dest, _ = cmd.Flags().GetString("dest")
			return c.app.Build(cmd.Context(), opts)
		},
	}

	addPipelineFlags(cmd)
	cmd.Flags().String("dest", "dist", "Installation root for release artifacts")

	return cmd
}
