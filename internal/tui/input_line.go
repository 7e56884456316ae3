package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

// renderInputLine draws a single-line text buffer with a block cursor at the
// end, scrolled so the cursor stays visible.
func renderInputLine(bodyW int, buf []rune) string {
	bodyW = max(10, bodyW)

	text := strings.NewReplacer("\n", " ", "\r", " ").Replace(string(buf))
	cursor := lipgloss.NewStyle().Foreground(colorAccentFg).Background(colorAccent).Render(" ")

	avail := bodyW - 3
	if w := xansi.StringWidth(text); w > avail {
		text = "…" + xansi.TruncateLeft(text, w-avail+1, "")
	}
	line := lipgloss.PlaceHorizontal(
		bodyW,
		lipgloss.Left,
		" "+text+cursor,
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceBackground(colorInputBg),
	)
	if xansi.StringWidth(line) > bodyW {
		line = xansi.Cut(line, 0, bodyW) + "\x1b[0m"
	}
	return line
}
