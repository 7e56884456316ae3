package tui

import (
	"time"

	"chute-cli/internal/app"
	"chute-cli/internal/config"
	"chute-cli/internal/model"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
)

func zoneInfo(id string) (*zone.ZoneInfo, bool) {
	if zone.DefaultManager == nil {
		return nil, false
	}
	z := zone.Get(id)
	if z == nil || z.IsZero() {
		return nil, false
	}
	return z, true
}

func inZone(id string, msg tea.MouseMsg) bool {
	z, ok := zoneInfo(id)
	return ok && z.InBounds(msg)
}

func (m *appModel) handleMouse(msg tea.MouseMsg) {
	if msg.Button == tea.MouseButtonWheelUp || msg.Button == tea.MouseButtonWheelDown {
		if msg.Action == tea.MouseActionPress {
			m.wheel(msg.Button == tea.MouseButtonWheelUp)
		}
		return
	}

	ev := app.PointerEvent{At: time.Now()}
	switch msg.Action {
	case tea.MouseActionPress:
		ev.Kind = app.PointerDown
	case tea.MouseActionRelease:
		ev.Kind = app.PointerUp
	default:
		ev.Kind = app.PointerMove
		if msg.Button != tea.MouseButtonNone {
			ev.Kind = app.PointerDrag
		}
	}
	switch msg.Button {
	case tea.MouseButtonLeft:
		ev.Button = app.ButtonLeft
	case tea.MouseButtonRight:
		ev.Button = app.ButtonRight
	case tea.MouseButtonNone:
	default:
		return
	}

	ev.Target = m.hitTest(msg, ev.Kind)
	switch ev.Kind {
	case app.PointerDown:
		m.sliderHeld = ev.Target.Kind == app.TargetSlider
	case app.PointerUp:
		m.sliderHeld = false
	}
	m.app.HandlePointer(ev)
}

// wheel scrolls the selection, or nudges the open popup's value.
func (m *appModel) wheel(up bool) {
	if m.app.Blocking() {
		code := app.KeyDown
		if up {
			code = app.KeyUp
		}
		m.app.HandleKey(app.KeyEvent{Kind: app.KeyPress, Code: code})
		return
	}
	act := config.ActionSelectDown
	if up {
		act = config.ActionSelectUp
	}
	m.app.HandleKey(app.KeyEvent{Kind: app.KeyPress, Action: act})
}

// hitTest resolves the pointer to whatever was rendered under it in the last
// frame.
func (m appModel) hitTest(msg tea.MouseMsg, kind app.PointerKind) app.Target {
	if m.app.Blocking() {
		return m.hitTestPopup(msg, kind)
	}

	for _, b := range app.HeaderButtons {
		if inZone(zoneHeader(b.String()), msg) {
			return app.Target{Kind: app.TargetHeader, Header: b}
		}
	}
	for i, v := range app.Views {
		if inZone(zoneTab(i), msg) {
			return app.Target{Kind: app.TargetTab, Tab: v}
		}
	}

	list, ok := zoneInfo(zoneList)
	if !ok {
		return app.Target{}
	}
	offset, _ := m.listWindow()
	row := msg.Y - list.StartY - 1 + offset
	if kind == app.PointerDrag {
		// Rows above or below the list still count while dragging.
		return app.Target{Kind: app.TargetRow, Row: row}
	}
	if !list.InBounds(msg) || msg.Y == list.StartY {
		return app.Target{}
	}
	if inZone(zoneDot(row), msg) {
		return app.Target{Kind: app.TargetCategoryDot, Row: row}
	}
	return app.Target{Kind: app.TargetRow, Row: row}
}

func (m appModel) hitTestPopup(msg tea.MouseMsg, kind app.PointerKind) app.Target {
	if s, ok := zoneInfo(zoneSlider); ok && (s.InBounds(msg) || (kind == app.PointerDrag && m.sliderHeld)) {
		return app.Target{
			Kind:  app.TargetSlider,
			X:     msg.X - s.StartX,
			Width: s.EndX - s.StartX + 1,
		}
	}
	switch {
	case inZone(zoneDatePrev, msg):
		return app.Target{Kind: app.TargetDatePrev}
	case inZone(zoneDateNext, msg):
		return app.Target{Kind: app.TargetDateNext}
	case inZone(zonePopupOK, msg):
		return app.Target{Kind: app.TargetPopupOK}
	case inZone(zonePopupClose, msg):
		return app.Target{Kind: app.TargetPopupCancel}
	}
	for i, c := range model.Categories {
		if inZone(zoneCategory(i), msg) {
			return app.Target{Kind: app.TargetCategoryOption, Category: c}
		}
	}
	return app.Target{}
}
