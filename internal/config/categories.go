package config

import (
	"fmt"
	"strings"

	"chute-cli/internal/model"

	"github.com/charmbracelet/lipgloss"
)

type CategoryStyle struct {
	Name  string
	Color lipgloss.Color
}

// Categories holds the display name and color of every category.
type Categories struct {
	styles [4]CategoryStyle
}

func DefaultCategories() Categories {
	return Categories{styles: [4]CategoryStyle{
		model.CategoryGeneral: {Name: "General", Color: namedColors["white"]},
		model.CategoryWork:    {Name: "Work", Color: namedColors["blue"]},
		model.CategoryHome:    {Name: "Home", Color: namedColors["yellow"]},
		model.CategoryHobby:   {Name: "Hobby", Color: namedColors["magenta"]},
	}}
}

func (c Categories) Style(cat model.Category) CategoryStyle {
	if int(cat) < 0 || int(cat) >= len(c.styles) {
		return c.styles[model.CategoryGeneral]
	}
	return c.styles[cat]
}

func (c *Categories) Set(cat model.Category, st CategoryStyle) {
	if int(cat) < 0 || int(cat) >= len(c.styles) {
		return
	}
	c.styles[cat] = st
}

func (c Categories) Name(cat model.Category) string { return c.Style(cat).Name }
func (c Categories) Color(cat model.Category) lipgloss.Color { return c.Style(cat).Color }

// ANSI palette indices.
var namedColors = map[string]lipgloss.Color{
	"black":    "0",
	"red":      "1",
	"green":    "2",
	"yellow":   "3",
	"blue":     "4",
	"magenta":  "5",
	"cyan":     "6",
	"gray":     "7",
	"grey":     "7",
	"darkgray": "8",
	"darkgrey": "8",
	"white":    "15",
}

// ParseColor accepts a color name from the ANSI palette or #RRGGBB.
func ParseColor(s string) (lipgloss.Color, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	if c, ok := namedColors[v]; ok {
		return c, nil
	}
	if len(v) == 7 && v[0] == '#' {
		for _, r := range v[1:] {
			if !strings.ContainsRune("0123456789abcdef", r) {
				return "", fmt.Errorf("bad hex color %q", s)
			}
		}
		return lipgloss.Color(v), nil
	}
	return "", fmt.Errorf("unknown color %q", s)
}
