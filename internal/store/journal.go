package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"chute-cli/internal/model"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Entry is one row of the activity journal.
type Entry struct {
	ID          string     `json:"id"`
	Day         model.Date `json:"day"`
	Minute      int        `json:"minute"`
	Type        string     `json:"type"`
	TaskID      string     `json:"taskId"`
	Title       string     `json:"title"`
	EstimateMin int        `json:"estimateMin"`
	ActualMin   int        `json:"actualMin"`
	State       string     `json:"state"`
	CreatedAt   time.Time  `json:"createdAt"`
}

func EntryFromActivity(a model.Activity) Entry {
	return Entry{
		Day:         a.Day,
		Minute:      a.Minute,
		Type:        string(a.Kind),
		TaskID:      a.Task.ID,
		Title:       a.Task.Title,
		EstimateMin: a.Task.EstimateMin,
		ActualMin:   a.Task.ActualMin,
		State:       a.Task.State.String(),
	}
}

// Journal is an append-only log of task lifecycle changes backed by SQLite.
type Journal struct {
	db *sql.DB
}

func OpenJournal(ctx context.Context, path string) (*Journal, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if err := migrateJournal(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Journal{db: db}, nil
}

func migrateJournal(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS entries (
			entry_id TEXT PRIMARY KEY,
			day INTEGER NOT NULL,
			minute INTEGER NOT NULL,
			type TEXT NOT NULL,
			task_id TEXT NOT NULL,
			title TEXT NOT NULL,
			estimate_min INTEGER NOT NULL,
			actual_min INTEGER NOT NULL,
			state TEXT NOT NULL,
			created_at_unixms INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_entries_day ON entries(day, created_at_unixms);`,
		`CREATE INDEX IF NOT EXISTS idx_entries_task ON entries(task_id);`,
	}
	for _, st := range stmts {
		if _, err := db.ExecContext(ctx, st); err != nil {
			return fmt.Errorf("migrate journal: %w", err)
		}
	}
	return nil
}

// Append stores e, filling in ID and CreatedAt when unset.
func (j *Journal) Append(ctx context.Context, e Entry) (Entry, error) {
	if e.ID == "" {
		e.ID = "ent-" + uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	_, err := j.db.ExecContext(ctx, `
		INSERT INTO entries(entry_id, day, minute, type, task_id, title, estimate_min, actual_min, state, created_at_unixms)
		VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, int(e.Day), e.Minute, e.Type, e.TaskID, e.Title, e.EstimateMin, e.ActualMin, e.State, e.CreatedAt.UnixMilli(),
	)
	if err != nil {
		return Entry{}, fmt.Errorf("append journal entry: %w", err)
	}
	return e, nil
}

// ListDay returns the entries recorded on day, oldest first.
func (j *Journal) ListDay(ctx context.Context, day model.Date) ([]Entry, error) {
	rows, err := j.db.QueryContext(ctx, `
		SELECT entry_id, day, minute, type, task_id, title, estimate_min, actual_min, state, created_at_unixms
		FROM entries
		WHERE day = ?
		ORDER BY created_at_unixms ASC, rowid ASC`, int(day))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var (
			e       Entry
			d       int
			created int64
		)
		if err := rows.Scan(&e.ID, &d, &e.Minute, &e.Type, &e.TaskID, &e.Title, &e.EstimateMin, &e.ActualMin, &e.State, &created); err != nil {
			return nil, err
		}
		e.Day = model.Date(d)
		e.CreatedAt = time.UnixMilli(created).UTC()
		out = append(out, e)
	}
	return out, rows.Err()
}

func (j *Journal) Close() error {
	if j == nil || j.db == nil {
		return nil
	}
	return j.db.Close()
}
