package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"chute-cli/internal/clock"
	"chute-cli/internal/config"
	"chute-cli/internal/logging"
	"chute-cli/internal/model"
	"chute-cli/internal/store"

	"github.com/fatih/color"
)

func runCLI(t *testing.T, args []string) (stdout []byte, stderr []byte, err error) {
	t.Helper()

	cmd := NewRootCmd()

	var outBuf bytes.Buffer
	var errBuf bytes.Buffer
	cmd.SetOut(&outBuf)
	cmd.SetErr(&errBuf)
	cmd.SetArgs(args)

	e := cmd.Execute()
	return outBuf.Bytes(), errBuf.Bytes(), e
}

// isolate points config, state and "today" at a temp dir and returns the
// snapshot path.
func isolate(t *testing.T) (configPath, statePath string) {
	t.Helper()
	dir := t.TempDir()
	configPath = filepath.Join(dir, "config", "config.toml")
	statePath = filepath.Join(dir, "data", "snapshot.toml")
	t.Setenv(config.EnvConfig, configPath)
	t.Setenv(config.EnvDisableConfig, "")
	t.Setenv(store.EnvState, statePath)
	t.Setenv(clock.EnvToday, "2025-03-10")
	t.Setenv(logging.EnvSink, "none")
	return configPath, statePath
}

func mustEnvelope(t *testing.T, stdout []byte) map[string]any {
	t.Helper()
	var env map[string]any
	if err := json.Unmarshal(stdout, &env); err != nil {
		t.Fatalf("unmarshal stdout as json envelope: %v\nstdout:\n%s", err, string(stdout))
	}
	data, ok := env["data"].(map[string]any)
	if !ok {
		t.Fatalf("expected data object; got: %v", env)
	}
	return data
}

func seedSnapshot(t *testing.T, statePath string) {
	t.Helper()
	day := model.Date(20250310)
	a := model.NewTask("Write report", 30, day)
	b := model.NewTask("Review", 15, day)
	later := model.NewTask("Dentist", 60, day.AddDays(2))
	snap := &store.Snapshot{
		Version: store.SnapshotVersion,
		Today:   []model.Task{a, b},
		Future:  []model.Task{later},
	}
	if err := store.SaveFile(statePath, snap); err != nil {
		t.Fatalf("seed snapshot: %v", err)
	}
}

func TestInitConfigWritesOnce(t *testing.T) {
	configPath, _ := isolate(t)

	stdout, stderr, err := runCLI(t, []string{"--init-config"})
	if err != nil {
		t.Fatalf("init-config: %v\nstderr:\n%s", err, stderr)
	}
	if strings.TrimSpace(string(stdout)) != configPath {
		t.Fatalf("expected path %q, got %q", configPath, stdout)
	}
	if err := os.WriteFile(configPath, []byte("day_start = \"07:00\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := runCLI(t, []string{"--init-config"}); err != nil {
		t.Fatalf("second init-config: %v", err)
	}
	b, _ := os.ReadFile(configPath)
	if string(b) != "day_start = \"07:00\"\n" {
		t.Fatalf("existing config was overwritten:\n%s", b)
	}
}

func TestSetDayStart(t *testing.T) {
	configPath, _ := isolate(t)

	stdout, stderr, err := runCLI(t, []string{"--set-day-start", "0830"})
	if err != nil {
		t.Fatalf("set-day-start: %v\nstderr:\n%s", err, stderr)
	}
	if !strings.Contains(string(stdout), "08:30") {
		t.Fatalf("unexpected output: %s", stdout)
	}
	b, err := os.ReadFile(configPath)
	if err != nil {
		t.Fatalf("read config: %v", err)
	}
	cfg, err := config.Parse(string(b))
	if err != nil || cfg.DayStartMin != 8*60+30 {
		t.Fatalf("day start not persisted: %v %d", err, cfg.DayStartMin)
	}
}

func TestSetDayStartRejectsBadTime(t *testing.T) {
	configPath, _ := isolate(t)

	_, stderr, err := runCLI(t, []string{"--set-day-start", "25:00"})
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(string(stderr), "25:00") {
		t.Fatalf("expected stderr to name the value, got %q", stderr)
	}
	if _, err := os.Stat(configPath); !os.IsNotExist(err) {
		t.Fatalf("config should not be written: %v", err)
	}
}

func TestConfigFlagSetsConfigPath(t *testing.T) {
	isolate(t)
	other := filepath.Join(t.TempDir(), "other.toml")

	stdout, _, err := runCLI(t, []string{"--config", other, "--init-config"})
	if err != nil {
		t.Fatalf("init-config: %v", err)
	}
	if strings.TrimSpace(string(stdout)) != other {
		t.Fatalf("expected %q, got %q", other, stdout)
	}
}

func TestListJSON(t *testing.T) {
	_, statePath := isolate(t)
	seedSnapshot(t, statePath)

	stdout, stderr, err := runCLI(t, []string{"list", "--format", "json"})
	if err != nil {
		t.Fatalf("list: %v\nstderr:\n%s", err, stderr)
	}
	data := mustEnvelope(t, stdout)
	tasks, _ := data["tasks"].([]any)
	if data["view"] != "today" || len(tasks) != 2 {
		t.Fatalf("unexpected data: %#v", data)
	}
	if title, _ := tasks[0].(map[string]any)["title"].(string); title != "Write report" {
		t.Fatalf("unexpected first task: %#v", tasks[0])
	}

	stdout, _, err = runCLI(t, []string{"list", "future", "--format", "json"})
	if err != nil {
		t.Fatalf("list future: %v", err)
	}
	data = mustEnvelope(t, stdout)
	if tasks, _ := data["tasks"].([]any); len(tasks) != 1 {
		t.Fatalf("unexpected future list: %#v", data)
	}
}

func TestListTable(t *testing.T) {
	_, statePath := isolate(t)
	seedSnapshot(t, statePath)
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })

	stdout, _, err := runCLI(t, []string{"--state", statePath, "list"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	out := string(stdout)
	for _, want := range []string{"ESD", "PLAN", "09:00", "Write report", "09:30", "Review", "Planned", "General"} {
		if !strings.Contains(out, want) {
			t.Fatalf("table missing %q:\n%s", want, out)
		}
	}
}

func TestListRejectsUnknownView(t *testing.T) {
	isolate(t)
	if _, _, err := runCLI(t, []string{"list", "someday"}); err == nil {
		t.Fatalf("expected error")
	}
}

func TestLogListsJournalEntries(t *testing.T) {
	_, statePath := isolate(t)
	j, err := store.OpenJournal(context.Background(), store.JournalPath(statePath))
	if err != nil {
		t.Fatalf("open journal: %v", err)
	}
	task := model.NewTask("Write report", 30, 20250310)
	for _, kind := range []model.ActivityKind{model.ActivityAdd, model.ActivityStart} {
		if _, err := j.Append(context.Background(), store.EntryFromActivity(model.Activity{Kind: kind, Task: task, Day: 20250310, Minute: 540})); err != nil {
			t.Fatalf("append: %v", err)
		}
	}
	_ = j.Close()

	stdout, stderr, err := runCLI(t, []string{"log", "--day", "2025-03-10"})
	if err != nil {
		t.Fatalf("log: %v\nstderr:\n%s", err, stderr)
	}
	data := mustEnvelope(t, stdout)
	entries, _ := data["entries"].([]any)
	if data["day"] != "2025-03-10" || len(entries) != 2 {
		t.Fatalf("unexpected log: %#v", data)
	}

	stdout, _, err = runCLI(t, []string{"log", "--day", "2025-03-11"})
	if err != nil {
		t.Fatalf("log other day: %v", err)
	}
	if entries, _ := mustEnvelope(t, stdout)["entries"].([]any); len(entries) != 0 {
		t.Fatalf("expected no entries, got %#v", entries)
	}
}

func TestDocs(t *testing.T) {
	isolate(t)

	stdout, _, err := runCLI(t, []string{"docs"})
	if err != nil {
		t.Fatalf("docs: %v", err)
	}
	topics, _ := mustEnvelope(t, stdout)["topics"].([]any)
	if len(topics) == 0 {
		t.Fatalf("expected topics")
	}

	stdout, _, err = runCLI(t, []string{"docs", "keys", "--raw"})
	if err != nil || !strings.HasPrefix(string(stdout), "# Keys") {
		t.Fatalf("docs keys --raw: %v\n%s", err, stdout)
	}

	if _, _, err := runCLI(t, []string{"docs", "nope"}); err == nil {
		t.Fatalf("expected unknown topic error")
	}
}

func TestVersionEDN(t *testing.T) {
	isolate(t)
	stdout, _, err := runCLI(t, []string{"version", "--format", "edn"})
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if got := strings.TrimSpace(string(stdout)); got != `{:data {:version "`+Version+`"}}` {
		t.Fatalf("unexpected edn: %s", got)
	}
}

func TestUnknownFormat(t *testing.T) {
	isolate(t)
	_, stderr, err := runCLI(t, []string{"version", "--format", "yaml"})
	if err == nil || !strings.Contains(string(stderr), "yaml") {
		t.Fatalf("expected format error, got %v (%s)", err, stderr)
	}
}
