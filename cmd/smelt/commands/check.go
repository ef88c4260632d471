package commands

import (
	"github.com/spf13/cobra"
)

// newCheckCmd creates the check command.
func (c *CLI) newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Run the test suite under the continuous integration profile",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.Check(cmd.Context(), pipelineOptions(cmd))
		},
	}

	addPipelineFlags(cmd)

	return cmd
}
