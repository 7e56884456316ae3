package tui

import (
	"fmt"
	"strings"
	"sync"

	"chute-cli/internal/config"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/ansi"
	"github.com/charmbracelet/glamour/styles"
	"github.com/charmbracelet/lipgloss"
)

var (
	mdRendererMu sync.Mutex
	// Renderers are cached by style and wrap width. WithAutoStyle can block on
	// terminal background queries, so a fixed style is chosen up front.
	mdRenderers = map[string]*glamour.TermRenderer{}
)

func renderMarkdown(md string, width int) string {
	md = strings.TrimSpace(md)
	if md == "" {
		return ""
	}
	width = max(10, width)
	style := markdownStyle()
	key := fmt.Sprintf("%s:%d", style, width)

	mdRendererMu.Lock()
	r := mdRenderers[key]
	mdRendererMu.Unlock()

	if r == nil {
		cfg := markdownStyleConfig(style)
		zero := uint(0)
		cfg.Document.Margin = &zero
		rr, err := glamour.NewTermRenderer(
			glamour.WithStyles(cfg),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return md
		}
		mdRendererMu.Lock()
		if existing := mdRenderers[key]; existing != nil {
			r = existing
		} else {
			mdRenderers[key] = rr
			r = rr
		}
		mdRendererMu.Unlock()
	}

	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimRight(out, "\n")
}

func markdownStyle() string {
	if s := themeOverride(); s != "" {
		return s
	}
	if lipgloss.HasDarkBackground() {
		return "dark"
	}
	return "light"
}

func markdownStyleConfig(styleName string) ansi.StyleConfig {
	cfg := styles.DarkStyleConfig
	if styleName == "light" {
		cfg = styles.LightStyleConfig
	}
	pick := func(c lipgloss.AdaptiveColor) *string {
		v := c.Dark
		if styleName == "light" {
			v = c.Light
		}
		return &v
	}
	fg := pick(colorSurfaceFg)
	cfg.Text.Color = fg
	cfg.Heading.Color = fg
	cfg.H1.Color = fg
	cfg.H2.Color = fg
	cfg.H3.Color = fg
	cfg.Code.Color = pick(colorAccent)
	cfg.Strong.Color = nil
	cfg.Emph.Color = nil
	return cfg
}

// keyReferenceMarkdown lists every action with its current bindings.
func keyReferenceMarkdown(km config.KeyMap) string {
	var b strings.Builder
	b.WriteString("## Keys\n\n| Key | Action |\n|---|---|\n")
	for _, a := range config.Actions() {
		h := km.Binding(a).Help()
		if h.Key == "" {
			continue
		}
		fmt.Fprintf(&b, "| `%s` | %s |\n", h.Key, h.Desc)
	}
	b.WriteString("\n## Command palette\n\n")
	b.WriteString("- `est +15m`, `est -5`, `est 90m` change the selected estimate\n")
	b.WriteString("- `at 13:30`, `at -` set or clear a fixed start\n")
	b.WriteString("- `base 0830` moves the day start and saves it to the config\n")
	b.WriteString("\n## Mouse\n\n")
	b.WriteString("- click selects, double click starts/pauses (Future: bring to Today)\n")
	b.WriteString("- drag a row to reorder; right click edits the estimate\n")
	b.WriteString("- right click the category dot to pick a category\n")
	return b.String()
}
