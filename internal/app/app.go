// Package app is the planner's interaction state machine. It owns the three
// task lists, the current view, selection/hover/drag cursors and the current
// interaction mode, and turns key, pointer and tick events into validated
// changes to those lists.
package app

import (
	"time"

	"chute-cli/internal/clock"
	"chute-cli/internal/config"
	"chute-cli/internal/model"
	"chute-cli/internal/store"
)

// DoubleClickWindow is the longest gap between two presses on the same row
// that still counts as a double click.
const DoubleClickWindow = 600 * time.Millisecond

type pressState struct {
	held bool
	row  int
}

type clickMemo struct {
	valid bool
	row   int
	at    time.Time
}

type App struct {
	cfg   config.Config
	clock clock.Clock

	today  *model.DayPlan
	future *model.DayPlan
	past   *model.DayPlan

	day      model.Date
	dayStart int

	view     View
	selected int
	mode     Mode

	hovered    int
	hover      Target
	press      pressState
	lastClick  clickMemo
	showHelp   bool
	showBlocks bool
	quit       bool

	revision uint64
	effects  []Effect
}

func New(cfg config.Config, clk clock.Clock) *App {
	return &App{
		cfg:      cfg,
		clock:    clk,
		today:    model.NewDayPlan(nil),
		future:   model.NewDayPlan(nil),
		past:     model.NewDayPlan(nil),
		day:      clk.Today(),
		dayStart: cfg.DayStartMin,
		view:     ViewToday,
		mode:     Normal{},
		hovered:  -1,
	}
}

// ApplySnapshot replaces all lists with the snapshot's contents. Done tasks
// from earlier days are moved from Today to Past.
func (a *App) ApplySnapshot(s *store.Snapshot) {
	if s == nil {
		return
	}
	a.day = a.clock.Today()
	today := append([]model.Task(nil), s.Today...)
	for i := range today {
		today[i].PlannedDate = today[i].PlannedDate.OrToday(a.day)
		if today[i].ActualCarrySec >= 60 {
			today[i].ActualMin += today[i].ActualCarrySec / 60
			today[i].ActualCarrySec %= 60
		}
	}
	a.today = model.NewDayPlan(today)
	a.future = model.NewDayPlan(demoteActive(s.Future))
	a.past = model.NewDayPlan(demoteActive(s.Past))
	a.sweepDone()
	a.mode = Normal{}
	a.hovered = -1
	a.clampSelection()
	a.touch()
}

func demoteActive(tasks []model.Task) []model.Task {
	out := append([]model.Task(nil), tasks...)
	for i := range out {
		if out[i].State == model.StateActive {
			out[i].State = model.StatePaused
		}
	}
	return out
}

// Snapshot captures the lists for persistence.
func (a *App) Snapshot() *store.Snapshot {
	return &store.Snapshot{
		Version: store.SnapshotVersion,
		Today:   append([]model.Task(nil), a.today.Tasks()...),
		Future:  append([]model.Task(nil), a.future.Tasks()...),
		Past:    append([]model.Task(nil), a.past.Tasks()...),
	}
}

func (a *App) Config() config.Config  { return a.cfg }
func (a *App) Today() *model.DayPlan  { return a.today }
func (a *App) Future() *model.DayPlan { return a.future }
func (a *App) Past() *model.DayPlan   { return a.past }
func (a *App) View() View             { return a.view }
func (a *App) Mode() Mode             { return a.mode }
func (a *App) Selected() int          { return a.selected }
func (a *App) DayStart() int          { return a.dayStart }
func (a *App) Day() model.Date        { return a.day }
func (a *App) ShowHelp() bool         { return a.showHelp }
func (a *App) ShowBlocks() bool       { return a.showBlocks }
func (a *App) ShouldQuit() bool       { return a.quit }
func (a *App) HoverTarget() Target    { return a.hover }
func (a *App) NowMinutes() int        { return a.clock.NowMinutes() }

// Revision changes whenever persisted state may have changed.
func (a *App) Revision() uint64 { return a.revision }

func (a *App) Hovered() (int, bool) {
	if a.hovered < 0 {
		return 0, false
	}
	return a.hovered, true
}

// Blocking reports whether a popup is open. Ticks must not be delivered
// while it is true.
func (a *App) Blocking() bool { return IsPopup(a.mode) }

// TakeEffects returns and clears the queued effects.
func (a *App) TakeEffects() []Effect {
	out := a.effects
	a.effects = nil
	return out
}

// List returns the task list shown in view v.
func (a *App) List(v View) *model.DayPlan {
	switch v {
	case ViewPast:
		return a.past
	case ViewFuture:
		return a.future
	default:
		return a.today
	}
}

func (a *App) current() *model.DayPlan { return a.List(a.view) }

// SelectedTask is the selected task of the current view.
func (a *App) SelectedTask() (*model.Task, bool) {
	return a.current().At(a.selected)
}

func (a *App) touch() { a.revision++ }

func (a *App) emit(kind model.ActivityKind, t model.Task) {
	a.effects = append(a.effects, EffectJournal{Activity: model.Activity{
		Kind:   kind,
		Task:   t,
		Day:    a.day,
		Minute: a.clock.NowMinutes(),
	}})
}

func (a *App) clampSelection() {
	n := a.current().Len()
	if n == 0 || a.selected < 0 {
		a.selected = 0
		return
	}
	if a.selected > n-1 {
		a.selected = n - 1
	}
}

// Tick credits seconds of work to the active task. Whole minutes move from
// the carry into the task's actual minutes. It also notices a change of day.
func (a *App) Tick(seconds int) {
	a.checkRollover()
	if seconds <= 0 {
		return
	}
	t, ok := a.today.ActiveTask()
	if !ok {
		return
	}
	t.ActualCarrySec += seconds
	for t.ActualCarrySec >= 60 {
		t.ActualCarrySec -= 60
		a.today.AddActualToActive(1)
	}
	a.touch()
}

func (a *App) checkRollover() {
	d := a.clock.Today()
	if d == a.day {
		return
	}
	a.day = d
	if a.sweepDone() > 0 {
		a.clampSelection()
		a.touch()
	}
}

func (a *App) sweepDone() int {
	swept := a.today.SweepDoneBefore(a.day)
	for _, t := range swept {
		a.past.Add(t)
	}
	return len(swept)
}
