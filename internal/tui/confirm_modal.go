package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

const (
	modalMaxWidth = 64
	modalPadX     = 2
)

func modalWidth(screenW int) int {
	return max(24, min(modalMaxWidth, screenW-4))
}

func modalBodyWidth(screenW int) int {
	return modalWidth(screenW) - 2*modalPadX
}

// renderModalBox draws a titled, filled box. No border is used because some
// terminals leave background artifacts around bordered boxes with a fill.
func renderModalBox(screenW int, title, content string) string {
	w := modalWidth(screenW)
	bodyW := modalBodyWidth(screenW)

	header := lipgloss.NewStyle().
		Width(w).
		Padding(0, modalPadX).
		Bold(true).
		Foreground(colorSurfaceFg).
		Background(colorControlBg).
		Render(xansi.Truncate(title, bodyW, "…"))

	lines := strings.Split(content, "\n")
	for i, ln := range lines {
		lines[i] = fitLine(ln, bodyW)
	}
	body := lipgloss.NewStyle().
		Width(w).
		Padding(1, modalPadX).
		Foreground(colorSurfaceFg).
		Background(colorSurfaceBg).
		Render(strings.Join(lines, "\n"))

	return lipgloss.JoinVertical(lipgloss.Left, header, body)
}

// renderButtons draws the OK/Cancel pair as clickable zones.
func renderButtons(okLabel, cancelLabel string) string {
	btn := lipgloss.NewStyle().
		Padding(0, 1).
		Foreground(colorSurfaceFg).
		Background(colorControlBg)
	primary := btn.
		Foreground(colorSelectedFg).
		Background(colorSelectedBg).
		Bold(true)
	ok := mark(zonePopupOK, primary.Render(okLabel))
	cancel := mark(zonePopupClose, btn.Render(cancelLabel))
	return ok + " " + cancel
}

func renderConfirmModal(width int, title, body, confirmLabel, cancelLabel string) string {
	help := styleMuted().Render("enter/y: confirm   esc/n: cancel")
	content := strings.Join([]string{
		body,
		"",
		renderButtons(confirmLabel, cancelLabel),
		"",
		help,
	}, "\n")
	return renderModalBox(width, title, content)
}

// overlayCenter draws fg centered on top of bg, keeping the rest of bg
// visible.
func overlayCenter(bg, fg string, width, height int) string {
	bgLines := strings.Split(normalizePane(bg, width, height), "\n")
	fgLines := strings.Split(fg, "\n")
	fgW := lipgloss.Width(fg)
	x := max(0, (width-fgW)/2)
	y := max(0, (height-len(fgLines))/2)
	for i, ln := range fgLines {
		row := y + i
		if row >= len(bgLines) {
			break
		}
		base := bgLines[row]
		left := xansi.Cut(base, 0, x)
		right := xansi.Cut(base, x+fgW, width)
		bgLines[row] = left + "\x1b[0m" + fitLine(ln, fgW) + "\x1b[0m" + right
	}
	return strings.Join(bgLines, "\n")
}
