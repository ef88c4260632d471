package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.smelt.dev/smelt/internal/build"
)

// newVersionCmd creates the version command.
func (c *CLI) newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the smelt version",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), build.Version)
			return err
		},
	}
}
