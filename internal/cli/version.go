package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newVersionCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("format") {
				return writeOut(cmd, app, map[string]any{"data": map[string]any{"version": Version}})
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), "chute", Version)
			return err
		},
	}
}
