package store

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

const (
	EnvState         = "CHUTE_STATE"
	snapshotFileName = "snapshot.toml"
	journalFileName  = "journal.sqlite"
)

// ResolveStatePath picks the snapshot location. Precedence: the config's
// state_path, then the --state flag, then DefaultStatePath.
func ResolveStatePath(configPath, flagPath string) (string, error) {
	if p := strings.TrimSpace(configPath); p != "" {
		return p, nil
	}
	if p := strings.TrimSpace(flagPath); p != "" {
		return p, nil
	}
	return DefaultStatePath()
}

// DefaultStatePath is CHUTE_STATE, else $XDG_DATA_HOME/chute/snapshot.toml,
// else ~/.local/share/chute/snapshot.toml.
func DefaultStatePath() (string, error) {
	if v := strings.TrimSpace(os.Getenv(EnvState)); v != "" {
		return v, nil
	}
	if xdg := strings.TrimSpace(os.Getenv("XDG_DATA_HOME")); xdg != "" {
		return filepath.Join(xdg, "chute", snapshotFileName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil || strings.TrimSpace(home) == "" {
		return "", errors.New("cannot resolve snapshot path: set --state, CHUTE_STATE or HOME")
	}
	return filepath.Join(home, ".local", "share", "chute", snapshotFileName), nil
}

// JournalPath places the activity journal next to the snapshot.
func JournalPath(statePath string) string {
	return filepath.Join(filepath.Dir(statePath), journalFileName)
}
