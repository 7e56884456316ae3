package cli

import (
	"fmt"

	"chute-cli/internal/clock"
	"chute-cli/internal/config"
	"chute-cli/internal/model"
	"chute-cli/internal/store"

	"github.com/spf13/cobra"
)

func newLogCmd(app *App) *cobra.Command {
	var day string

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Show the activity journal for a day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d := clock.System{}.Today()
			if day != "" {
				parsed, err := model.ParseDate(day)
				if err != nil {
					return writeErr(cmd, err)
				}
				d = parsed
			}

			statePath, err := store.ResolveStatePath(config.Load().StatePath, app.StatePath)
			if err != nil {
				return writeErr(cmd, err)
			}
			j, err := store.OpenJournal(cmd.Context(), store.JournalPath(statePath))
			if err != nil {
				return writeErr(cmd, fmt.Errorf("open journal: %w", err))
			}
			defer j.Close()

			entries, err := j.ListDay(cmd.Context(), d)
			if err != nil {
				return writeErr(cmd, err)
			}
			if entries == nil {
				entries = []store.Entry{}
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{
				"day":     d.String(),
				"entries": entries,
			}})
		},
	}

	cmd.Flags().StringVar(&day, "day", "", "Day to show (YYYY-MM-DD; default today)")
	return cmd
}
