// Package tui is the interactive planner: a bubbletea program that renders
// the app state, resolves keys and mouse positions into app events, feeds it
// elapsed time and persists whatever changed.
package tui

import (
	"chute-cli/internal/app"
	"chute-cli/internal/store"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
)

type Options struct {
	App *app.App
	// StatePath is where the snapshot is saved; empty disables saving.
	StatePath string
	// Journal receives lifecycle activity; nil disables journaling.
	Journal *store.Journal
}

func Run(opts Options) error {
	applyColorProfilePreference()
	applyThemePreference()
	applyGlyphPreference()
	zone.NewGlobal()
	defer zone.Close()

	m := newModel(opts)
	final, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion()).Run()
	if fm, ok := final.(appModel); ok {
		fm.flush(true)
	}
	return err
}
