package tui

import (
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme/palette helpers.
//
// The planner must stay readable on light and dark terminal backgrounds, so
// colors are adaptive and "faint" is only used on dark backgrounds.

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

func faintIfDark(st lipgloss.Style) lipgloss.Style {
	if lipgloss.HasDarkBackground() {
		return st.Faint(true)
	}
	return st
}

var (
	colorMuted      = ac("240", "243")
	colorSelectedBg = ac("#e9e9e9", "#262626")
	colorSelectedFg = ac("235", "255")
	colorHoverBg    = ac("254", "236")
	colorSurfaceBg  = ac("255", "235")
	colorSurfaceFg  = ac("235", "252")
	colorControlBg  = ac("252", "237")
	colorInputBg    = ac("254", "234")
	colorAccent     = ac("27", "62")
	colorAccentFg   = ac("255", "235")
	colorActive     = ac("28", "42")
	colorDone       = ac("244", "242")
	colorWarn       = ac("166", "214")
	colorDanger     = ac("160", "203")
)

func styleMuted() lipgloss.Style {
	return faintIfDark(lipgloss.NewStyle().Foreground(colorMuted))
}

// applyColorProfilePreference sets Lip Gloss's color profile for the TUI.
//
// termenv.EnvColorProfile honors CLICOLOR/CLICOLOR_FORCE, which suits CLI
// output but can disable colors inside the TUI. Here only NO_COLOR is honored;
// otherwise the terminal's capabilities win.
func applyColorProfilePreference() {
	if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}
	profile := termenv.ColorProfile()
	term := strings.ToLower(strings.TrimSpace(os.Getenv("TERM")))
	colorterm := strings.ToLower(strings.TrimSpace(os.Getenv("COLORTERM")))
	if strings.Contains(colorterm, "truecolor") || strings.Contains(colorterm, "24bit") {
		if profile != termenv.Ascii {
			profile = termenv.TrueColor
		}
	} else if strings.Contains(term, "256color") && (profile == termenv.Ascii || profile == termenv.ANSI) {
		profile = termenv.ANSI256
	}
	lipgloss.SetColorProfile(profile)
}

// themeOverride returns "light" or "dark" when the user forced one through
// CHUTE_TUI_THEME or the COLORFGBG heuristic, and "" otherwise.
func themeOverride() string {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("CHUTE_TUI_THEME"))) {
	case "light":
		return "light"
	case "dark":
		return "dark"
	}
	// COLORFGBG is usually "fg;bg"; xterm palette 0-6 is dark.
	if v := strings.TrimSpace(os.Getenv("COLORFGBG")); v != "" {
		parts := strings.Split(v, ";")
		if bg, err := strconv.Atoi(strings.TrimSpace(parts[len(parts)-1])); err == nil {
			if bg < 7 {
				return "dark"
			}
			return "light"
		}
	}
	return ""
}

// applyThemePreference configures background detection for adaptive colors.
func applyThemePreference() {
	switch themeOverride() {
	case "light":
		lipgloss.SetHasDarkBackground(false)
	case "dark":
		lipgloss.SetHasDarkBackground(true)
	}
}
