package tui

import (
	"fmt"
	"strings"

	"chute-cli/internal/app"
	"chute-cli/internal/config"
	"chute-cli/internal/model"
	"chute-cli/internal/schedule"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

// Lines above and below the table: title, tabs, banner, table header, footer.
const chromeLines = 5

const (
	colPlan   = 5
	colState  = 1
	colEst    = 5
	colAct    = 7
	colActual = 11
	colDot    = 1
)

func (m appModel) View() string {
	parts := []string{
		m.renderTitleBar(),
		m.renderTabs(),
		m.renderBanner(),
		m.renderTable(),
	}
	if m.app.ShowBlocks() {
		parts = append(parts, m.renderTimeline())
	}
	body := normalizePane(strings.Join(parts, "\n"), m.width, m.height-1)
	body += "\n" + fitLine(m.renderFooter(), m.width)

	if popup := m.renderPopup(); popup != "" {
		body = overlayCenter(body, popup, m.width, m.height)
	}
	return scanZones(body)
}

func (m appModel) timelineLines() int {
	if m.app.ShowBlocks() {
		return 2
	}
	return 0
}

// listWindow returns the first visible row and how many rows fit.
func (m appModel) listWindow() (offset, rows int) {
	rows = max(1, m.height-chromeLines-m.timelineLines())
	n := m.app.List(m.app.View()).Len()
	sel := m.app.Selected()
	if sel >= rows {
		offset = sel - rows + 1
	}
	return min(offset, max(0, n-rows)), rows
}

func (m appModel) renderTitleBar() string {
	today := m.app.Today()
	now := m.app.NowMinutes()
	totals := schedule.TotalsOf(today.Tasks())
	title := lipgloss.NewStyle().Bold(true).Foreground(colorAccent).Render("Chute")
	stats := fmt.Sprintf("ESD %s | Est %s | Act %s",
		schedule.FormatHHMM(schedule.ESD(today, now)),
		schedule.FormatMinSec(totals.EstimateSec),
		schedule.FormatMinSec(totals.ActualSec),
	)
	left := title + "  " + stats

	enabled := lipgloss.NewStyle().Padding(0, 1).Foreground(colorSurfaceFg).Background(colorControlBg)
	disabled := enabled.Foreground(colorMuted)
	hover := enabled.Foreground(colorSelectedFg).Background(colorSelectedBg)
	ht := m.app.HoverTarget()
	buttons := make([]string, 0, len(app.HeaderButtons))
	for _, b := range app.HeaderButtons {
		st := enabled
		switch {
		case !m.app.HeaderEnabled(b):
			st = disabled
		case ht.Kind == app.TargetHeader && ht.Header == b:
			st = hover
		}
		buttons = append(buttons, mark(zoneHeader(b.String()), st.Render(b.String())))
	}
	right := strings.Join(buttons, " ")
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return left
	}
	return left + strings.Repeat(" ", gap) + right
}

func (m appModel) renderTabs() string {
	active := lipgloss.NewStyle().Padding(0, 1).Bold(true).Foreground(colorAccentFg).Background(colorAccent)
	idle := lipgloss.NewStyle().Padding(0, 1).Foreground(colorSurfaceFg)
	tabs := make([]string, 0, len(app.Views))
	for i, v := range app.Views {
		label := fmt.Sprintf("%s (%d)", v, m.app.List(v).Len())
		st := idle
		if v == m.app.View() {
			st = active
		}
		tabs = append(tabs, mark(zoneTab(i), st.Render(label)))
	}
	return strings.Join(tabs, " ")
}

func (m appModel) renderBanner() string {
	t, ok := m.app.Today().ActiveTask()
	if !ok {
		return styleMuted().Render("Now: –")
	}
	act := schedule.FormatMinSec(t.ActualMin*60 + t.ActualCarrySec)
	return lipgloss.NewStyle().Bold(true).Foreground(colorActive).
		Render(fmt.Sprintf("Now: %s %s (est %dm, act %s)", glyphs().play, t.Title, t.EstimateMin, act))
}

// planColumn is the Plan cell: a projected start in Today, a date elsewhere.
func (m appModel) planColumn(v app.View, t model.Task, start int) string {
	switch v {
	case app.ViewToday:
		return schedule.FormatHHMM(start)
	case app.ViewPast:
		if t.DoneDate != nil {
			return t.DoneDate.String()[5:]
		}
	}
	if t.PlannedDate.IsZero() {
		return "--"
	}
	return t.PlannedDate.String()[5:]
}

func actualColumn(t model.Task) string {
	first, ok := t.FirstStartMin()
	if !ok {
		return ""
	}
	if t.State == model.StateActive {
		return schedule.FormatHHMM(first) + "-"
	}
	if last, ok := t.LastFinishMin(); ok {
		return schedule.FormatHHMM(first) + "-" + schedule.FormatHHMM(last)
	}
	return schedule.FormatHHMM(first) + "-"
}

func (m appModel) renderTable() string {
	v := m.app.View()
	list := m.app.List(v)
	tasks := list.Tasks()
	cats := m.app.Config().Categories
	offset, rows := m.listWindow()
	titleW := max(8, m.width-colPlan-colState-colEst-colAct-colActual-colDot-7)

	cell := func(s string, w int) string { return fitLine(s, w) }
	header := styleMuted().Render(strings.Join([]string{
		cell("Plan", colPlan), cell("", colState), cell("Title", titleW),
		cell("Est", colEst), cell("Act", colAct), cell("Actual", colActual), cell("", colDot),
	}, " "))

	var starts []int
	if v == app.ViewToday {
		starts = schedule.PlannedStarts(m.app.DayStart(), tasks)
	}
	hovered, hasHover := m.app.Hovered()
	drag, dragging := m.app.Mode().(app.Dragging)

	lines := []string{header}
	if len(tasks) == 0 {
		lines = append(lines, styleMuted().Render("  nothing planned"))
	}
	for i := offset; i < len(tasks) && i < offset+rows; i++ {
		t := tasks[i]
		start := 0
		if starts != nil {
			start = starts[i]
		}
		dot := mark(zoneDot(i), lipgloss.NewStyle().Foreground(cats.Color(t.Category)).Render(glyphs().dot))
		text := strings.Join([]string{
			cell(m.planColumn(v, t, start), colPlan),
			cell(stateIcon(t.State), colState),
			cell(t.Title, titleW),
			cell(fmt.Sprintf("%dm", t.EstimateMin), colEst),
			cell(fmt.Sprintf("%dm", t.ActualMin), colAct),
			cell(actualColumn(t), colActual),
		}, " ")

		st := lipgloss.NewStyle()
		switch t.State {
		case model.StateDone:
			st = styleMuted().Strikethrough(true)
		case model.StateActive:
			st = st.Foreground(colorActive).Bold(true)
		}
		switch {
		case dragging && i == drag.SourceIndex:
			st = st.Foreground(colorWarn)
		case dragging && hasHover && i == hovered:
			st = st.Underline(true).Background(colorHoverBg)
		case i == m.app.Selected():
			st = st.Background(colorSelectedBg).Foreground(colorSelectedFg)
		case hasHover && i == hovered:
			st = st.Background(colorHoverBg)
		}
		lines = append(lines, mark(zoneRow(i), st.Render(text)+" "+dot))
	}
	return mark(zoneList, strings.Join(lines, "\n"))
}

// renderTimeline draws Today's plan as category-colored blocks from the day
// start to the ESD, with an hour ruler below.
func (m appModel) renderTimeline() string {
	today := m.app.Today()
	base := m.app.DayStart()
	end := max(schedule.ESD(today, base), schedule.ESD(today, m.app.NowMinutes()))
	span := max(60, end-base)
	width := max(10, m.width)
	cats := m.app.Config().Categories

	cells := make([]string, width)
	g := glyphs()
	for i := range cells {
		cells[i] = styleMuted().Render(g.gap)
	}
	starts := schedule.PlannedStarts(base, today.Tasks())
	for i, t := range today.Tasks() {
		from := (starts[i] - base) * width / span
		to := (starts[i] + t.EstimateMin - base) * width / span
		glyph := g.block
		if t.State == model.StateDone {
			glyph = g.doneBlock
		}
		block := lipgloss.NewStyle().Foreground(cats.Color(t.Category)).Render(glyph)
		for x := max(0, from); x < min(width, max(to, from+1)); x++ {
			cells[x] = block
		}
	}

	ruler := []rune(strings.Repeat(" ", width))
	for h := (base + 59) / 60 * 60; h <= base+span; h += 60 {
		x := (h - base) * width / span
		label := []rune(schedule.FormatHHMM(h)[:2])
		if x+len(label) <= width {
			copy(ruler[x:], label)
		}
	}
	return strings.Join(cells, "") + "\n" + styleMuted().Render(string(ruler))
}

func (m appModel) renderFooter() string {
	if m.status != "" {
		return lipgloss.NewStyle().Foreground(colorDanger).Render(m.status)
	}
	if app.IsPopup(m.app.Mode()) {
		return styleMuted().Render("esc: cancel")
	}
	if _, ok := m.app.Mode().(app.Dragging); ok {
		return styleMuted().Render("release to drop   esc: cancel")
	}
	acts := []config.Action{config.ActionAddTask, config.ActionStartOrResume, config.ActionFinishActive, config.ActionEstimatePlus}
	switch m.app.View() {
	case app.ViewToday:
		acts = append(acts, config.ActionPostpone, config.ActionPopup)
	case app.ViewFuture:
		acts = append(acts, config.ActionBringToToday)
	}
	acts = append(acts, config.ActionViewNext, config.ActionCommand, config.ActionHelp, config.ActionQuit)
	bindings := make([]key.Binding, 0, len(acts))
	for _, a := range acts {
		bindings = append(bindings, m.keys.Binding(a))
	}
	return m.help.ShortHelpView(bindings)
}
