package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	planner "chute-cli/internal/app"
	"chute-cli/internal/clock"
	"chute-cli/internal/config"
	"chute-cli/internal/format"
	"chute-cli/internal/logging"
	"chute-cli/internal/schedule"
	"chute-cli/internal/store"
	"chute-cli/internal/tui"

	"github.com/spf13/cobra"
)

// Version is stamped at build time with -ldflags "-X chute-cli/internal/cli.Version=...".
var Version = "dev"

type App struct {
	StatePath   string
	ConfigPath  string
	SetDayStart string
	InitConfig  bool
	PrettyJSON  bool
	Format      string

	closeLog func() error
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "chute",
		Short:        "Chute: a terminal day planner",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Plan the day in the interactive TUI
  chute

  # Write a commented default config and print its path
  chute --init-config

  # Move the start of the planning day
  chute --set-day-start 08:30

  # Today's schedule as a table, or as JSON
  chute list
  chute list future --format json
`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			switch {
			case app.InitConfig:
				return runInitConfig(cmd)
			case strings.TrimSpace(app.SetDayStart) != "":
				return runSetDayStart(cmd, app.SetDayStart)
			}
			return runTUI(app)
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if _, err := format.Parse(app.Format); err != nil {
			return writeErr(cmd, err)
		}
		if app.ConfigPath != "" {
			if err := os.Setenv(config.EnvConfig, app.ConfigPath); err != nil {
				return err
			}
		}
		mode := logging.ModeCLI
		if !cmd.HasParent() && !app.InitConfig && app.SetDayStart == "" {
			mode = logging.ModeTUI
		}
		closeFn, err := logging.Init(logging.Config{}, logging.InitOptions{Version: Version, Mode: mode})
		if err != nil {
			return writeErr(cmd, fmt.Errorf("init logging: %w", err))
		}
		app.closeLog = closeFn
		return nil
	}

	cmd.PersistentPostRunE = func(cmd *cobra.Command, args []string) error {
		if app.closeLog == nil {
			return nil
		}
		return app.closeLog()
	}

	cmd.PersistentFlags().StringVar(&app.StatePath, "state", "", "Snapshot file (default: $CHUTE_STATE, else $XDG_DATA_HOME/chute/snapshot.toml)")
	cmd.PersistentFlags().StringVar(&app.ConfigPath, "config", "", "Config file (sets CHUTE_CONFIG)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("CHUTE_FORMAT", "json"), "Output format (json|edn)")
	cmd.Flags().StringVar(&app.SetDayStart, "set-day-start", "", "Write day_start (HH:MM or HHMM) to the config file and exit")
	cmd.Flags().BoolVar(&app.InitConfig, "init-config", false, "Write the default config file (if missing) and print its path")

	cmd.AddCommand(newListCmd(app))
	cmd.AddCommand(newLogCmd(app))
	cmd.AddCommand(newDocsCmd(app))
	cmd.AddCommand(newVersionCmd(app))

	return cmd
}

func runInitConfig(cmd *cobra.Command) error {
	path, err := config.WriteDefaultFile()
	if err != nil {
		return writeErr(cmd, err)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), path)
	return err
}

func runSetDayStart(cmd *cobra.Command, value string) error {
	minutes, err := schedule.ParseHHMM(value)
	if err != nil {
		return writeErr(cmd, fmt.Errorf("--set-day-start %q: %w", value, err))
	}
	path, err := config.WriteDayStart(minutes)
	if err != nil {
		return writeErr(cmd, err)
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "day_start = %s (%s)\n", schedule.FormatHHMM(minutes), path)
	return err
}

func runTUI(app *App) error {
	a, statePath, err := loadPlanner(app)
	if err != nil {
		return err
	}
	journal, err := store.OpenJournal(context.Background(), store.JournalPath(statePath))
	if err != nil {
		// The planner works without a journal; only history is lost.
		slog.Warn("activity journal unavailable", "err", err)
		journal = nil
	}
	defer journal.Close()
	slog.Info("starting", "state", statePath, "day", a.Day().String())
	return tui.Run(tui.Options{App: a, StatePath: statePath, Journal: journal})
}

// loadPlanner builds the planner from config and the saved snapshot.
func loadPlanner(app *App) (*planner.App, string, error) {
	cfg := config.Load()
	statePath, err := store.ResolveStatePath(cfg.StatePath, app.StatePath)
	if err != nil {
		return nil, "", err
	}
	snap, err := store.LoadFile(statePath)
	if err != nil {
		return nil, "", err
	}
	a := planner.New(cfg, clock.System{})
	a.ApplySnapshot(snap)
	return a, statePath, nil
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
