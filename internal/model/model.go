package model

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

type State int

const (
	StatePlanned State = iota
	StateActive
	StatePaused
	StateDone
)

func (s State) String() string {
	switch s {
	case StateActive:
		return "Active"
	case StatePaused:
		return "Paused"
	case StateDone:
		return "Done"
	default:
		return "Planned"
	}
}

func (s State) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *State) UnmarshalText(b []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(b))) {
	case "planned", "":
		*s = StatePlanned
	case "active":
		*s = StateActive
	case "paused":
		*s = StatePaused
	case "done":
		*s = StateDone
	default:
		return fmt.Errorf("unknown task state: %q", string(b))
	}
	return nil
}

// Category is a user-facing grouping of tasks. Display names and colors are
// configured; the set itself is fixed.
type Category int

const (
	CategoryGeneral Category = iota
	CategoryWork
	CategoryHome
	CategoryHobby
)

// Categories lists every category in cycle order.
var Categories = []Category{CategoryGeneral, CategoryWork, CategoryHome, CategoryHobby}

// Next returns the following category in cycle order, wrapping after Hobby.
func (c Category) Next() Category {
	return Categories[(int(c)+1)%len(Categories)]
}

func (c Category) Key() string {
	switch c {
	case CategoryWork:
		return "work"
	case CategoryHome:
		return "home"
	case CategoryHobby:
		return "hobby"
	default:
		return "general"
	}
}

func (c Category) String() string {
	k := c.Key()
	return strings.ToUpper(k[:1]) + k[1:]
}

func (c Category) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

func (c *Category) UnmarshalText(b []byte) error {
	v, ok := ParseCategory(string(b))
	if !ok {
		return fmt.Errorf("unknown category: %q", string(b))
	}
	*c = v
	return nil
}

func ParseCategory(s string) (Category, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "general", "":
		return CategoryGeneral, true
	case "work":
		return CategoryWork, true
	case "home":
		return CategoryHome, true
	case "hobby":
		return CategoryHobby, true
	}
	return CategoryGeneral, false
}

// Session is one contiguous stretch of work on a task, in minutes of the day.
// EndMin is nil while the session is still running.
type Session struct {
	StartMin int  `json:"startMin" toml:"start_min"`
	EndMin   *int `json:"endMin,omitempty" toml:"end_min,omitempty"`
}

func (s Session) Open() bool { return s.EndMin == nil }

type Task struct {
	ID             string    `json:"id" toml:"id,omitempty"`
	Title          string    `json:"title" toml:"title"`
	EstimateMin    int       `json:"estimateMin" toml:"estimate_min"`
	ActualMin      int       `json:"actualMin" toml:"actual_min"`
	ActualCarrySec int       `json:"actualCarrySec,omitempty" toml:"actual_carry_sec,omitempty"`
	State          State     `json:"state" toml:"state"`
	StartedAtMin   *int      `json:"startedAtMin,omitempty" toml:"started_at_min,omitempty"`
	FinishedAtMin  *int      `json:"finishedAtMin,omitempty" toml:"finished_at_min,omitempty"`
	Sessions       []Session `json:"sessions,omitempty" toml:"sessions,omitempty"`
	PlannedDate    Date      `json:"plannedDate" toml:"planned_ymd"`
	DoneDate       *Date     `json:"doneDate,omitempty" toml:"done_ymd,omitempty"`
	Category       Category  `json:"category" toml:"category"`
	FixedStartMin  *int      `json:"fixedStartMin,omitempty" toml:"fixed_start_min,omitempty"`
}

// NewTask returns a Planned task scheduled for day.
func NewTask(title string, estimateMin int, day Date) Task {
	if estimateMin < 0 {
		estimateMin = 0
	}
	return Task{
		ID:          uuid.NewString(),
		Title:       title,
		EstimateMin: estimateMin,
		State:       StatePlanned,
		PlannedDate: day,
	}
}

// StartSession opens a session at now unless one is already open.
func (t *Task) StartSession(now int) {
	if n := len(t.Sessions); n > 0 && t.Sessions[n-1].Open() {
		return
	}
	t.Sessions = append(t.Sessions, Session{StartMin: now})
}

// EndSession closes the most recent open session.
func (t *Task) EndSession(now int) {
	n := len(t.Sessions)
	if n == 0 || !t.Sessions[n-1].Open() {
		return
	}
	end := now
	t.Sessions[n-1].EndMin = &end
}

// LastFinishMin reports when work on the task last stopped: the finish
// time if set, otherwise the latest session end.
func (t Task) LastFinishMin() (int, bool) {
	if t.FinishedAtMin != nil {
		return *t.FinishedAtMin, true
	}
	best, ok := 0, false
	for _, s := range t.Sessions {
		if s.EndMin != nil && (!ok || *s.EndMin > best) {
			best, ok = *s.EndMin, true
		}
	}
	return best, ok
}

// FirstStartMin is the start of the first recorded session, falling back to StartedAtMin.
func (t Task) FirstStartMin() (int, bool) {
	if len(t.Sessions) > 0 {
		return t.Sessions[0].StartMin, true
	}
	if t.StartedAtMin != nil {
		return *t.StartedAtMin, true
	}
	return 0, false
}

func (t Task) RemainingMin() int {
	if t.State == StateDone {
		return 0
	}
	return max(0, t.EstimateMin-t.ActualMin)
}

func (t Task) Eligible() bool {
	return t.State == StatePlanned || t.State == StatePaused
}

// TCLogLine renders a one-line summary of a task for logs and the journal.
func TCLogLine(t Task) string {
	return fmt.Sprintf("tc-log | %s | act:%dm | est:%dm | state:%s", t.Title, t.ActualMin, t.EstimateMin, t.State)
}
