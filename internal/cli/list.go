package cli

import (
	"fmt"
	"io"
	"strings"

	planner "chute-cli/internal/app"
	"chute-cli/internal/config"
	"chute-cli/internal/model"
	"chute-cli/internal/schedule"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"
)

func newListCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:       "list [today|future|past]",
		Short:     "Print a list as a table (or json/edn with --format)",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"today", "future", "past"},
		RunE: func(cmd *cobra.Command, args []string) error {
			view := planner.ViewToday
			if len(args) == 1 {
				v, ok := parseView(args[0])
				if !ok {
					return writeErr(cmd, fmt.Errorf("unknown list %q (want today, future or past)", args[0]))
				}
				view = v
			}
			a, _, err := loadPlanner(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			tasks := a.List(view).Tasks()

			if cmd.Flags().Changed("format") {
				return writeOut(cmd, app, map[string]any{"data": map[string]any{
					"view":  strings.ToLower(view.String()),
					"tasks": tasks,
				}})
			}
			return printTable(cmd.OutOrStdout(), a, view, tasks)
		},
	}
	return cmd
}

func parseView(s string) (planner.View, bool) {
	for _, v := range planner.Views {
		if strings.EqualFold(v.String(), strings.TrimSpace(s)) {
			return v, true
		}
	}
	return 0, false
}

func printTable(w io.Writer, a *planner.App, view planner.View, tasks []model.Task) error {
	bold := color.New(color.Bold)
	if view == planner.ViewToday {
		totals := schedule.TotalsOf(tasks)
		fmt.Fprintf(w, "%s  ESD %s | Est %s | Act %s\n",
			bold.Sprint(a.Day().String()),
			schedule.FormatHHMM(schedule.ESD(a.Today(), a.NowMinutes())),
			schedule.FormatMinSec(totals.EstimateSec),
			schedule.FormatMinSec(totals.ActualSec),
		)
	}
	if len(tasks) == 0 {
		_, err := fmt.Fprintln(w, color.New(color.Faint).Sprint("nothing planned"))
		return err
	}

	var starts []int
	if view == planner.ViewToday {
		starts = schedule.PlannedStarts(a.DayStart(), tasks)
	}
	cats := a.Config().Categories

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 48
	tbl.AddRow(bold.Sprint("PLAN"), bold.Sprint("STATE"), bold.Sprint("TITLE"), bold.Sprint("EST"), bold.Sprint("ACT"), bold.Sprint("CATEGORY"))
	for i, t := range tasks {
		plan := t.PlannedDate.String()
		switch {
		case starts != nil:
			plan = schedule.FormatHHMM(starts[i])
		case view == planner.ViewPast && t.DoneDate != nil:
			plan = t.DoneDate.String()
		}
		tbl.AddRow(
			plan,
			stateColor(t.State).Sprint(t.State.String()),
			t.Title,
			fmt.Sprintf("%dm", t.EstimateMin),
			fmt.Sprintf("%dm", t.ActualMin),
			categoryColor(cats, t.Category).Sprint(cats.Name(t.Category)),
		)
	}
	_, err := fmt.Fprintln(w, tbl)
	return err
}

func stateColor(s model.State) *color.Color {
	switch s {
	case model.StateActive:
		return color.New(color.FgGreen, color.Bold)
	case model.StatePaused:
		return color.New(color.FgYellow)
	case model.StateDone:
		return color.New(color.Faint)
	default:
		return color.New(color.Reset)
	}
}

// categoryColor maps the configured palette color onto the nearest basic
// terminal color; hex colors fall back to the default foreground.
func categoryColor(cats config.Categories, c model.Category) *color.Color {
	switch cats.Color(c) {
	case "0":
		return color.New(color.FgBlack)
	case "1":
		return color.New(color.FgRed)
	case "2":
		return color.New(color.FgGreen)
	case "3":
		return color.New(color.FgYellow)
	case "4":
		return color.New(color.FgBlue)
	case "5":
		return color.New(color.FgMagenta)
	case "6":
		return color.New(color.FgCyan)
	case "8":
		return color.New(color.FgHiBlack)
	default:
		return color.New(color.FgWhite)
	}
}
