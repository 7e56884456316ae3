// Package config loads the user's chute configuration: day start, default
// estimate, key bindings, category names/colors and an optional snapshot path.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"chute-cli/internal/model"
	"chute-cli/internal/schedule"

	"github.com/pelletier/go-toml/v2"
)

const (
	EnvConfig        = "CHUTE_CONFIG"
	EnvDisableConfig = "CHUTE_DISABLE_CONFIG"

	DefaultDayStartMin = 9 * 60
	DefaultEstimateMin = 25
)

type Config struct {
	DayStartMin        int
	DefaultEstimateMin int
	Keys               KeyMap
	Categories         Categories
	// StatePath overrides every other snapshot location when set.
	StatePath string
}

func Defaults() Config {
	return Config{
		DayStartMin:        DefaultDayStartMin,
		DefaultEstimateMin: DefaultEstimateMin,
		Keys:               DefaultKeyMap(),
		Categories:         DefaultCategories(),
	}
}

type rawConfig struct {
	DayStart        *string                     `toml:"day_start"`
	DefaultEstimate *int                        `toml:"default_estimate"`
	StatePath       *string                     `toml:"state_path"`
	Keys            map[string]any              `toml:"keys"`
	Categories      map[string]rawCategoryStyle `toml:"categories"`
}

type rawCategoryStyle struct {
	Name  *string `toml:"name"`
	Color *string `toml:"color"`
}

// Parse builds a Config from TOML text, starting from Defaults.
func Parse(s string) (Config, error) {
	var raw rawConfig
	if err := toml.Unmarshal([]byte(s), &raw); err != nil {
		return Config{}, fmt.Errorf("parse config toml: %w", err)
	}
	cfg := Defaults()
	if raw.DayStart != nil {
		m, err := schedule.ParseHHMM(*raw.DayStart)
		if err != nil {
			return Config{}, fmt.Errorf("day_start: %w", err)
		}
		cfg.DayStartMin = m
	}
	if raw.DefaultEstimate != nil {
		if *raw.DefaultEstimate < 0 {
			return Config{}, errors.New("default_estimate must not be negative")
		}
		cfg.DefaultEstimateMin = *raw.DefaultEstimate
	}
	for name, v := range raw.Keys {
		specs, err := oneOrMany(v)
		if err != nil {
			return Config{}, fmt.Errorf("keys.%s: %w", name, err)
		}
		if err := cfg.Keys.Rebind(name, specs); err != nil {
			return Config{}, fmt.Errorf("keys.%s: %w", name, err)
		}
	}
	for name, ent := range raw.Categories {
		cat, ok := model.ParseCategory(name)
		if !ok {
			return Config{}, fmt.Errorf("unknown category %q", name)
		}
		st := cfg.Categories.Style(cat)
		if ent.Name != nil {
			st.Name = *ent.Name
		}
		if ent.Color != nil {
			c, err := ParseColor(*ent.Color)
			if err != nil {
				return Config{}, fmt.Errorf("categories.%s.color: %w", name, err)
			}
			st.Color = c
		}
		cfg.Categories.Set(cat, st)
	}
	if raw.StatePath != nil {
		if p, ok := ExpandStatePath(*raw.StatePath); ok {
			cfg.StatePath = p
		} else {
			slog.Warn("ignoring state_path", "value", *raw.StatePath)
		}
	}
	return cfg, nil
}

func oneOrMany(v any) ([]string, error) {
	switch t := v.(type) {
	case string:
		return []string{t}, nil
	case []any:
		out := make([]string, 0, len(t))
		for _, x := range t {
			s, ok := x.(string)
			if !ok {
				return nil, fmt.Errorf("expected string, got %T", x)
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("expected string or array of strings, got %T", v)
	}
}

// Path resolves the config file location: CHUTE_CONFIG, then
// $XDG_CONFIG_HOME/chute/config.toml, then ~/.config/chute/config.toml.
func Path() (string, error) {
	if v := strings.TrimSpace(os.Getenv(EnvConfig)); v != "" {
		return v, nil
	}
	if xdg := strings.TrimSpace(os.Getenv("XDG_CONFIG_HOME")); xdg != "" {
		return filepath.Join(xdg, "chute", "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve config path: %w", err)
	}
	return filepath.Join(home, ".config", "chute", "config.toml"), nil
}

// Load reads the config file. A missing, unreadable or invalid file yields
// Defaults; problems are logged, never returned.
func Load() Config {
	if strings.TrimSpace(os.Getenv(EnvDisableConfig)) != "" {
		return Defaults()
	}
	path, err := Path()
	if err != nil {
		slog.Warn("config path unavailable", "err", err)
		return Defaults()
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			slog.Warn("read config", "path", path, "err", err)
		}
		return Defaults()
	}
	cfg, err := Parse(string(b))
	if err != nil {
		slog.Warn("invalid config, using defaults", "path", path, "err", err)
		return Defaults()
	}
	return cfg
}
