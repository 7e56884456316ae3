package tui

import (
	"os"
	"strings"
	"sync"

	"chute-cli/internal/model"
)

// Some fonts render the block and arrow glyphs poorly, so an ASCII set can be
// chosen with CHUTE_TUI_GLYPHS=ascii.
const envGlyphs = "CHUTE_TUI_GLYPHS"

type glyphSet struct {
	planned, active, paused, done string
	dot                           string
	block, doneBlock, gap         string
	trackFilled, trackEmpty, knob string
	play                          string
}

var (
	unicodeGlyphs = glyphSet{
		planned: "·", active: "▶", paused: "‖", done: "✓",
		dot:   "●",
		block: "█", doneBlock: "▒", gap: "·",
		trackFilled: "━", trackEmpty: "─", knob: "●",
		play: "▶",
	}
	asciiGlyphs = glyphSet{
		planned: ".", active: ">", paused: "=", done: "x",
		dot:   "o",
		block: "#", doneBlock: "+", gap: ".",
		trackFilled: "=", trackEmpty: "-", knob: "O",
		play: ">",
	}
)

var (
	glyphsMu      sync.RWMutex
	currentGlyphs = unicodeGlyphs
)

func applyGlyphPreference() {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(envGlyphs))) {
	case "", "unicode", "utf8":
		setGlyphs(unicodeGlyphs)
	case "ascii":
		setGlyphs(asciiGlyphs)
	}
}

func setGlyphs(gs glyphSet) {
	glyphsMu.Lock()
	currentGlyphs = gs
	glyphsMu.Unlock()
}

func glyphs() glyphSet {
	glyphsMu.RLock()
	defer glyphsMu.RUnlock()
	return currentGlyphs
}

func stateIcon(s model.State) string {
	g := glyphs()
	switch s {
	case model.StateActive:
		return g.active
	case model.StatePaused:
		return g.paused
	case model.StateDone:
		return g.done
	default:
		return g.planned
	}
}
