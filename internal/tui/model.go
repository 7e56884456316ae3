package tui

import (
	"context"
	"log/slog"
	"time"

	"chute-cli/internal/app"
	"chute-cli/internal/config"
	"chute-cli/internal/model"
	"chute-cli/internal/store"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	tickInterval = 250 * time.Millisecond
	// Tick-only changes (work time accruing) are saved at most this often.
	tickSaveInterval = 15 * time.Second
)

type tickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

type appModel struct {
	app     *app.App
	keys    config.KeyMap
	help    help.Model
	journal *store.Journal

	statePath string
	savedRev  uint64
	lastSave  time.Time

	width  int
	height int

	lastTick time.Time
	pending  time.Duration

	// status is the last persistence error, shown in the footer.
	status string

	// sliderHeld keeps a slider drag attached to the slider when the pointer
	// leaves its row.
	sliderHeld bool
}

func newModel(opts Options) appModel {
	h := help.New()
	h.Styles.ShortKey = h.Styles.ShortKey.Foreground(colorAccent)
	h.Styles.ShortDesc = styleMuted()
	h.Styles.ShortSeparator = styleMuted()
	return appModel{
		app:       opts.App,
		keys:      opts.App.Config().Keys,
		help:      h,
		journal:   opts.Journal,
		statePath: opts.StatePath,
		savedRev:  opts.App.Revision(),
		width:     80,
		height:    24,
	}
}

func (m appModel) Init() tea.Cmd {
	return tickCmd()
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	tickOnly := false
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tickMsg:
		m.handleTick(time.Time(msg))
		tickOnly = true
		cmd = tickCmd()

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.flush(true)
			return m, tea.Quit
		}
		m.handleKey(msg)

	case tea.MouseMsg:
		m.handleMouse(msg)
	}

	if m.app.ShouldQuit() {
		m.flush(true)
		return m, tea.Quit
	}
	m.flush(!tickOnly)
	return m, cmd
}

// handleTick credits whole elapsed seconds to the app. Time that passes
// while a popup is open is dropped.
func (m *appModel) handleTick(now time.Time) {
	if m.lastTick.IsZero() {
		m.lastTick = now
		return
	}
	elapsed := now.Sub(m.lastTick)
	m.lastTick = now
	if elapsed < 0 || m.app.Blocking() {
		return
	}
	m.pending += elapsed
	secs := int(m.pending / time.Second)
	m.pending -= time.Duration(secs) * time.Second
	m.app.Tick(secs)
}

func (m *appModel) handleKey(msg tea.KeyMsg) {
	if msg.Paste {
		m.app.HandlePaste(string(msg.Runes))
		return
	}
	// Several runes in one message come from IME composition.
	if msg.Type == tea.KeyRunes && len(msg.Runes) > 1 {
		m.app.HandlePaste(string(msg.Runes))
		return
	}
	m.app.HandleKey(keyEvent(msg, m.keys))
}

func keyEvent(msg tea.KeyMsg, km config.KeyMap) app.KeyEvent {
	ev := app.KeyEvent{Kind: app.KeyPress, Action: km.ActionFor(msg)}
	switch msg.Type {
	case tea.KeyRunes:
		if len(msg.Runes) > 0 && !msg.Alt {
			ev.Code, ev.Rune = app.KeyRune, msg.Runes[0]
		}
	case tea.KeySpace:
		ev.Code, ev.Rune = app.KeyRune, ' '
	case tea.KeyEnter:
		ev.Code = app.KeyEnter
	case tea.KeyEsc:
		ev.Code = app.KeyEsc
	case tea.KeyBackspace:
		ev.Code = app.KeyBackspace
	case tea.KeyDelete:
		ev.Code = app.KeyDelete
	case tea.KeyUp:
		ev.Code = app.KeyUp
	case tea.KeyDown:
		ev.Code = app.KeyDown
	case tea.KeyLeft:
		ev.Code = app.KeyLeft
	case tea.KeyRight:
		ev.Code = app.KeyRight
	case tea.KeyTab:
		ev.Code = app.KeyTab
	case tea.KeyShiftTab:
		ev.Code = app.KeyBackTab
	}
	return ev
}

// flush hands queued effects to their collaborators and saves the snapshot
// when the revision moved. Unless force is set, a save is skipped if the
// last one happened less than tickSaveInterval ago.
func (m *appModel) flush(force bool) {
	for _, eff := range m.app.TakeEffects() {
		switch e := eff.(type) {
		case app.EffectJournal:
			m.journalActivity(e.Activity)
		case app.EffectPersistDayStart:
			if path, err := config.WriteDayStart(e.Minutes); err != nil {
				slog.Error("persist day start", "err", err)
				m.status = "could not save day start: " + err.Error()
			} else {
				slog.Info("day start saved", "path", path, "minutes", e.Minutes)
			}
		}
	}

	rev := m.app.Revision()
	if rev == m.savedRev || m.statePath == "" {
		return
	}
	now := time.Now()
	if !force && now.Sub(m.lastSave) < tickSaveInterval {
		return
	}
	if err := store.SaveFile(m.statePath, m.app.Snapshot()); err != nil {
		slog.Error("save snapshot", "path", m.statePath, "err", err)
		m.status = "save failed: " + err.Error()
		return
	}
	m.status = ""
	m.savedRev = rev
	m.lastSave = now
}

func (m *appModel) journalActivity(a model.Activity) {
	if a.Kind == model.ActivityFinish {
		slog.Info(model.TCLogLine(a.Task))
	}
	if m.journal == nil {
		return
	}
	if _, err := m.journal.Append(context.Background(), store.EntryFromActivity(a)); err != nil {
		slog.Error("journal append", "kind", a.Kind, "err", err)
		m.status = "journal: " + err.Error()
	}
}
