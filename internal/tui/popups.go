package tui

import (
	"fmt"
	"strings"

	"chute-cli/internal/app"
	"chute-cli/internal/model"
	"chute-cli/internal/schedule"

	"github.com/charmbracelet/lipgloss"
)

// sliderWidth is the track length for a modal of the given body width.
func sliderWidth(bodyW int) int {
	return max(10, min(49, bodyW-8))
}

func renderSlider(s app.Slider, value, width int) string {
	pos := s.OffsetFor(value, width)
	filled := lipgloss.NewStyle().Foreground(colorAccent)
	empty := styleMuted()
	g := glyphs()
	knob := lipgloss.NewStyle().Foreground(colorAccent).Bold(true).Render(g.knob)
	track := filled.Render(strings.Repeat(g.trackFilled, pos)) + knob + empty.Render(strings.Repeat(g.trackEmpty, max(0, width-pos-1)))
	return mark(zoneSlider, track)
}

func renderDateLine(d model.Date, today model.Date) string {
	label := d.String()
	switch d {
	case today:
		label += " (today)"
	case today.AddDays(1):
		label += " (tomorrow)"
	}
	btn := lipgloss.NewStyle().Padding(0, 1).Background(colorControlBg).Foreground(colorSurfaceFg)
	return mark(zoneDatePrev, btn.Render("◀")) + " " + label + " " + mark(zoneDateNext, btn.Render("▶"))
}

func (m appModel) taskTitle(i int) string {
	t, ok := m.app.List(m.app.View()).At(i)
	if !ok {
		return ""
	}
	return t.Title
}

// renderPopup draws the popup for the current mode, or "" when none is open.
func (m appModel) renderPopup() string {
	bodyW := modalBodyWidth(m.width)
	sw := sliderWidth(bodyW)
	today := m.app.Day()
	help := func(s string) string { return styleMuted().Render(s) }

	switch md := m.app.Mode().(type) {
	case app.TextInput:
		title := "New task"
		if md.Purpose == app.PurposeInterrupt {
			title = "Interrupt"
		}
		return renderModalBox(m.width, title, strings.Join([]string{
			"Title",
			renderInputLine(bodyW, md.Buffer),
			"",
			renderButtons("Next", "Cancel"),
			"",
			help("enter: next   esc: cancel"),
		}, "\n"))

	case app.NewTaskEstimate:
		return renderModalBox(m.width, "Estimate: "+md.Title, strings.Join([]string{
			fmt.Sprintf("%3dm  %s", md.Minutes, renderSlider(app.EstimateSlider, md.Minutes, sw)),
			"",
			renderDateLine(md.Date.OrToday(today), today),
			"",
			renderButtons("Add", "Cancel"),
			"",
			help("↑/↓ ±5m   ,/. ±1 day   enter: add   esc: cancel"),
		}, "\n"))

	case app.EstimateEdit:
		return renderModalBox(m.width, "Edit: "+m.taskTitle(md.TaskIndex), strings.Join([]string{
			fmt.Sprintf("%3dm  %s", md.Minutes, renderSlider(app.EstimateSlider, md.Minutes, sw)),
			"",
			renderDateLine(md.Date.OrToday(today), today),
			"",
			renderButtons("Save", "Cancel"),
			"",
			help("↑/↓ ±5m   ,/. ±1 day   enter: save   esc: cancel"),
		}, "\n"))

	case app.StartTimeEdit:
		return renderModalBox(m.width, "Start time: "+m.taskTitle(md.TaskIndex), strings.Join([]string{
			fmt.Sprintf("%s  %s", schedule.FormatHHMM(md.Minutes), renderSlider(app.StartTimeSlider, md.Minutes, sw)),
			"",
			renderButtons("Set", "Cancel"),
			"",
			help("↑/↓ ±5m   enter: set   backspace: clear   esc: cancel"),
		}, "\n"))

	case app.CommandPalette:
		return renderModalBox(m.width, "Command", strings.Join([]string{
			renderInputLine(bodyW, append([]rune(":"), md.Buffer...)),
			"",
			renderButtons("Run", "Cancel"),
			"",
			help("est +15m | est 90m | at 13:30 | at - | base 0830"),
		}, "\n"))

	case app.CategoryPicker:
		cats := m.app.Config().Categories
		lines := make([]string, 0, len(model.Categories)+2)
		for i, c := range model.Categories {
			dot := lipgloss.NewStyle().Foreground(cats.Color(c)).Render(glyphs().dot)
			row := fitLine(" "+dot+" "+cats.Name(c), bodyW)
			if c == md.Highlighted {
				row = lipgloss.NewStyle().Background(colorSelectedBg).Foreground(colorSelectedFg).Bold(true).Render(row)
			}
			lines = append(lines, mark(zoneCategory(i), row))
		}
		lines = append(lines, "", help("↑/↓ move   enter: pick   esc: cancel"))
		return renderModalBox(m.width, "Category: "+m.taskTitle(md.TaskIndex), strings.Join(lines, "\n"))

	case app.ConfirmDelete:
		body := fmt.Sprintf("Delete %q?", m.taskTitle(md.TaskIndex))
		return renderConfirmModal(m.width, "Delete task", lipgloss.NewStyle().Foreground(colorDanger).Render(body), "Delete", "Cancel")
	}

	if m.app.ShowHelp() {
		return renderModalBox(m.width, "Key reference", renderMarkdown(keyReferenceMarkdown(m.keys), bodyW))
	}
	return ""
}
