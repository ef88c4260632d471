package commands

import (
	"github.com/spf13/cobra"
	"go.smelt.dev/smelt/internal/app"
)

// newSnapshotCmd creates the snapshot command.
func (c *CLI) newSnapshotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshot <dest>",
		Short: "Copy the filtered source tree into dest and record its digest",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, _ := cmd.Flags().GetString("root")
			return c.app.Snapshot(cmd.Context(), app.SnapshotOptions{
				Root: root,
				Dest: args[0],
			})
		},
	}

	cmd.Flags().String("root", ".", "Source tree root")

	return cmd
}
