package tui

import (
	"strconv"
	"strings"

	xansi "github.com/charmbracelet/x/ansi"
	zone "github.com/lrstanley/bubblezone"
)

// Zone ids used to map mouse coordinates back to what was rendered there.
const (
	zoneList       = "list"
	zoneSlider     = "slider"
	zoneDatePrev   = "date:prev"
	zoneDateNext   = "date:next"
	zonePopupOK    = "btn:ok"
	zonePopupClose = "btn:cancel"
)

func zoneRow(i int) string      { return "row:" + strconv.Itoa(i) }
func zoneDot(i int) string      { return "dot:" + strconv.Itoa(i) }
func zoneTab(i int) string      { return "tab:" + strconv.Itoa(i) }
func zoneCategory(i int) string { return "cat:" + strconv.Itoa(i) }
func zoneHeader(name string) string {
	return "hdr:" + strings.ToLower(name)
}

// mark wraps s in a zone marker when a zone manager is running.
func mark(id, s string) string {
	if zone.DefaultManager == nil {
		return s
	}
	return zone.Mark(id, s)
}

// scanZones strips zone markers from the final frame and records positions.
func scanZones(s string) string {
	if zone.DefaultManager == nil {
		return s
	}
	return zone.Scan(s)
}

// normalizePane forces s to exactly width columns (ANSI-aware) and height
// lines. Long lines are cut with an ellipsis.
func normalizePane(s string, width, height int) string {
	width = max(0, width)
	height = max(0, height)

	lines := strings.Split(s, "\n")
	if height > 0 {
		if len(lines) > height {
			lines = lines[:height]
		}
		for len(lines) < height {
			lines = append(lines, "")
		}
	}
	for i, ln := range lines {
		lines[i] = fitLine(ln, width)
	}
	return strings.Join(lines, "\n")
}

// fitLine pads or truncates one line to width columns.
func fitLine(ln string, width int) string {
	w := xansi.StringWidth(ln)
	if w > width {
		switch {
		case width <= 0:
			return ""
		case width == 1:
			ln = xansi.Cut(ln, 0, 1)
		default:
			ln = xansi.Cut(ln, 0, width-1) + "…"
		}
		w = xansi.StringWidth(ln)
	}
	if w < width {
		ln += strings.Repeat(" ", width-w)
	}
	return ln
}
