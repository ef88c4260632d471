package commands

import (
	"github.com/spf13/cobra"
)

// newShellCmd creates the shell command.
func (c *CLI) newShellCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shell",
		Short: "Print the development shell environment as an export script",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.Shell(cmd.Context(), pipelineOptions(cmd), cmd.OutOrStdout())
		},
	}

	addPipelineFlags(cmd)

	return cmd
}
