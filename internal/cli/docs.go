package cli

import (
	"fmt"
	"sort"

	"chute-cli/internal/docs"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
)

func newDocsCmd(app *App) *cobra.Command {
	var raw bool
	var width int

	cmd := &cobra.Command{
		Use:   "docs [topic]",
		Short: "Show the built-in documentation",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				topics := docs.Topics()
				sort.Strings(topics)
				return writeOut(cmd, app, map[string]any{"data": map[string]any{"topics": topics}})
			}

			topic := args[0]
			body, ok := docs.Get(topic)
			if !ok {
				return writeErr(cmd, fmt.Errorf("unknown docs topic: %q (run `chute docs` to list topics)", topic))
			}

			if raw {
				_, err := fmt.Fprint(cmd.OutOrStdout(), body)
				return err
			}
			if cmd.Flags().Changed("format") {
				return writeOut(cmd, app, map[string]any{"data": map[string]any{"topic": topic, "markdown": body}})
			}

			r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(width))
			if err != nil {
				return writeErr(cmd, err)
			}
			out, err := r.Render(body)
			if err != nil {
				return writeErr(cmd, err)
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), out)
			return err
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "Print raw markdown")
	cmd.Flags().IntVar(&width, "width", 80, "Wrap width for rendered markdown")

	return cmd
}
