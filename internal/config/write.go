package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"chute-cli/internal/fsutil"
	"chute-cli/internal/schedule"
)

// DefaultTOML is the commented config written by --init-config.
func DefaultTOML() string {
	var b strings.Builder
	b.WriteString(`# chute configuration
# Location: $CHUTE_CONFIG, else $XDG_CONFIG_HOME/chute/config.toml, else ~/.config/chute/config.toml

# Start of the planning day ("HH:MM").
day_start = "09:00"

# Estimate (minutes) pre-filled for new tasks. Interrupts always start at 15.
default_estimate = 25

# Optional snapshot location. Takes precedence over --state and CHUTE_STATE.
# "~" and ${HOME}, ${XDG_DATA_HOME}, ${XDG_STATE_HOME}, ${XDG_CONFIG_HOME} are expanded.
# state_path = "${XDG_DATA_HOME}/chute/snapshot.toml"

[keys]
# Each action takes one key or a list of keys. Uppercase letters mean Shift.
`)
	for _, info := range actionTable {
		b.WriteString(info.name)
		b.WriteString(" = ")
		if len(info.defaults) == 1 {
			fmt.Fprintf(&b, "%q\n", info.defaults[0])
			continue
		}
		quoted := make([]string, 0, len(info.defaults))
		for _, d := range info.defaults {
			quoted = append(quoted, fmt.Sprintf("%q", d))
		}
		b.WriteString("[" + strings.Join(quoted, ", ") + "]\n")
	}
	b.WriteString(`
# Category names and colors: black, red, green, yellow, blue, magenta, cyan,
# gray, darkgray, white or "#RRGGBB".
[categories.general]
name = "General"
color = "white"

[categories.work]
name = "Work"
color = "blue"

[categories.home]
name = "Home"
color = "yellow"

[categories.hobby]
name = "Hobby"
color = "magenta"
`)
	return b.String()
}

// WriteDefaultFile writes DefaultTOML to Path unless a file already exists
// there. It returns the path either way.
func WriteDefaultFile() (string, error) {
	path, err := Path()
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(path); err == nil {
		return path, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return "", err
	}
	if err := fsutil.WriteFileAtomic(path, []byte(DefaultTOML()), 0o644); err != nil {
		return "", fmt.Errorf("write default config: %w", err)
	}
	return path, nil
}

// SetDayStartInTOML replaces the day_start line in contents, or inserts one
// at the top. Everything else, comments included, is kept as is.
func SetDayStartInTOML(contents, hhmm string) string {
	line := fmt.Sprintf("day_start = %q", hhmm)
	lines := strings.Split(strings.TrimSuffix(contents, "\n"), "\n")
	replaced := false
	for i, ln := range lines {
		trimmed := strings.TrimLeft(ln, " \t")
		if !strings.HasPrefix(trimmed, "day_start") {
			continue
		}
		rest := strings.TrimLeft(strings.TrimPrefix(trimmed, "day_start"), " \t")
		if !strings.HasPrefix(rest, "=") {
			continue
		}
		lines[i] = line
		replaced = true
	}
	if !replaced {
		if contents == "" {
			return line + "\n"
		}
		lines = append([]string{line}, lines...)
	}
	return strings.Join(lines, "\n") + "\n"
}

// WriteDayStart persists minutes as the configured day start, creating the
// config file from defaults first if needed.
func WriteDayStart(minutes int) (string, error) {
	if minutes < 0 || minutes >= schedule.MinutesPerDay {
		return "", fmt.Errorf("%w: %d minutes", schedule.ErrInvalidTime, minutes)
	}
	path, err := WriteDefaultFile()
	if err != nil {
		return "", err
	}
	contents := DefaultTOML()
	if b, err := os.ReadFile(path); err == nil {
		contents = string(b)
	}
	updated := SetDayStartInTOML(contents, schedule.FormatHHMM(minutes))
	if err := fsutil.WriteFileAtomic(path, []byte(updated), 0o644); err != nil {
		return "", fmt.Errorf("write day_start: %w", err)
	}
	return path, nil
}
