package store

import (
	"errors"
	"fmt"
	"os"

	"chute-cli/internal/fsutil"
	"chute-cli/internal/model"

	"github.com/pelletier/go-toml/v2"
)

const SnapshotVersion = 1

// Snapshot is the persisted planner state.
type Snapshot struct {
	Version int          `toml:"version"`
	Today   []model.Task `toml:"today"`
	Future  []model.Task `toml:"future"`
	Past    []model.Task `toml:"past"`
}

func SaveString(s *Snapshot) (string, error) {
	if s.Version == 0 {
		s.Version = SnapshotVersion
	}
	b, err := toml.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("encode snapshot: %w", err)
	}
	return string(b), nil
}

func LoadString(s string) (*Snapshot, error) {
	var snap Snapshot
	if err := toml.Unmarshal([]byte(s), &snap); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	if snap.Version == 0 {
		snap.Version = SnapshotVersion
	}
	if snap.Version > SnapshotVersion {
		return nil, fmt.Errorf("snapshot version %d is newer than supported (%d)", snap.Version, SnapshotVersion)
	}
	return &snap, nil
}

// SaveFile writes s to path atomically, creating parent directories.
func SaveFile(path string, s *Snapshot) error {
	body, err := SaveString(s)
	if err != nil {
		return err
	}
	if err := fsutil.WriteFileAtomic(path, []byte(body), 0o644); err != nil {
		return fmt.Errorf("save snapshot %s: %w", path, err)
	}
	return nil
}

// LoadFile reads the snapshot at path. A missing file yields (nil, nil).
func LoadFile(path string) (*Snapshot, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	snap, err := LoadString(string(b))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return snap, nil
}
