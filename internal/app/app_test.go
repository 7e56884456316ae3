package app

import (
	"reflect"
	"testing"
	"time"

	"chute-cli/internal/clock"
	"chute-cli/internal/config"
	"chute-cli/internal/model"
	"chute-cli/internal/store"
)

const testDay = model.Date(20250310)

func newTestApp(t *testing.T, titles ...string) (*App, *clock.Fixed) {
	t.Helper()
	clk := &clock.Fixed{Minutes: 9 * 60, Day: testDay}
	a := New(config.Defaults(), clk)
	for _, title := range titles {
		a.AddTask(title, 30)
	}
	a.TakeEffects()
	return a, clk
}

func press(a *App, act config.Action) {
	a.HandleKey(KeyEvent{Kind: KeyPress, Action: act})
}

func key(a *App, code KeyCode) {
	a.HandleKey(KeyEvent{Kind: KeyPress, Code: code})
}

func typeRunes(a *App, s string) {
	for _, r := range s {
		a.HandleKey(KeyEvent{Kind: KeyPress, Code: KeyRune, Rune: r})
	}
}

func listTitles(p *model.DayPlan) []string {
	out := []string{}
	for _, t := range p.Tasks() {
		out = append(out, t.Title)
	}
	return out
}

func assertOneActive(t *testing.T, p *model.DayPlan) {
	t.Helper()
	n := 0
	for i, task := range p.Tasks() {
		if task.State == model.StateActive {
			n++
			if idx, ok := p.ActiveIndex(); !ok || idx != i {
				t.Fatalf("task %d active but ActiveIndex=(%d,%v)", i, idx, ok)
			}
		}
	}
	if n > 1 {
		t.Fatalf("%d active tasks", n)
	}
}

func TestAddTaskFlow_CreatesPlannedTaskInToday(t *testing.T) {
	a, _ := newTestApp(t)
	press(a, config.ActionAddTask)
	if _, ok := a.Mode().(TextInput); !ok {
		t.Fatalf("expected TextInput, got %T", a.Mode())
	}
	typeRunes(a, "Write report")
	key(a, KeyEnter)

	m, ok := a.Mode().(NewTaskEstimate)
	if !ok {
		t.Fatalf("expected NewTaskEstimate, got %T", a.Mode())
	}
	if m.Title != "Write report" || m.Minutes != config.DefaultEstimateMin || m.Date != testDay {
		t.Fatalf("unexpected draft: %+v", m)
	}
	key(a, KeyUp)
	key(a, KeyUp)
	key(a, KeyEnter)

	if _, ok := a.Mode().(Normal); !ok {
		t.Fatalf("expected Normal after commit, got %T", a.Mode())
	}
	if a.Today().Len() != 1 {
		t.Fatalf("expected 1 task, got %d", a.Today().Len())
	}
	task := a.Today().Tasks()[0]
	if task.EstimateMin != config.DefaultEstimateMin+10 || task.State != model.StatePlanned {
		t.Fatalf("unexpected task: %+v", task)
	}
	effects := a.TakeEffects()
	if len(effects) != 1 {
		t.Fatalf("expected one journal effect, got %v", effects)
	}
	if e, ok := effects[0].(EffectJournal); !ok || e.Activity.Kind != model.ActivityAdd {
		t.Fatalf("unexpected effect %#v", effects[0])
	}
}

func TestTextInput_BackspaceRemovesOneScalar(t *testing.T) {
	a, _ := newTestApp(t)
	press(a, config.ActionAddTask)
	typeRunes(a, "日本語")
	key(a, KeyBackspace)
	m := a.Mode().(TextInput)
	if string(m.Buffer) != "日本" {
		t.Fatalf("buffer = %q", string(m.Buffer))
	}
}

func TestTextInput_EmptyUsesDefaultTitleAndInterruptEstimate(t *testing.T) {
	a, _ := newTestApp(t)
	press(a, config.ActionAddInterrupt)
	key(a, KeyEnter)
	m := a.Mode().(NewTaskEstimate)
	if m.Title != "Interrupt" || m.Minutes != InterruptEstimateMin {
		t.Fatalf("unexpected draft: %+v", m)
	}
}

func TestTextInput_EscCreatesNothing(t *testing.T) {
	a, _ := newTestApp(t)
	press(a, config.ActionAddTask)
	typeRunes(a, "abc")
	key(a, KeyEsc)
	if _, ok := a.Mode().(Normal); !ok || a.Today().Len() != 0 {
		t.Fatalf("expected cancel without a task, mode=%T len=%d", a.Mode(), a.Today().Len())
	}
}

func TestPaste_FlattensNewlines(t *testing.T) {
	a, _ := newTestApp(t)
	press(a, config.ActionAddTask)
	a.HandlePaste("one\ntwo")
	if got := string(a.Mode().(TextInput).Buffer); got != "one two" {
		t.Fatalf("buffer = %q", got)
	}
}

func TestReleaseEventsAreIgnored(t *testing.T) {
	a, _ := newTestApp(t)
	a.HandleKey(KeyEvent{Kind: KeyRelease, Action: config.ActionAddTask})
	if _, ok := a.Mode().(Normal); !ok {
		t.Fatalf("release should not change mode, got %T", a.Mode())
	}
}

func TestNewTaskEstimate_ClampsAndFutureDateGoesToFuture(t *testing.T) {
	a, _ := newTestApp(t)
	press(a, config.ActionAddTask)
	typeRunes(a, "Later")
	key(a, KeyEnter)
	for i := 0; i < 20; i++ {
		key(a, KeyDown)
	}
	if m := a.Mode().(NewTaskEstimate); m.Minutes != 0 {
		t.Fatalf("estimate should clamp at 0, got %d", m.Minutes)
	}
	typeRunes(a, ",")
	if m := a.Mode().(NewTaskEstimate); m.Date != testDay {
		t.Fatalf("date should not go before today, got %v", m.Date)
	}
	typeRunes(a, "..")
	key(a, KeyEnter)
	if a.Today().Len() != 0 || a.Future().Len() != 1 {
		t.Fatalf("expected task in Future, today=%d future=%d", a.Today().Len(), a.Future().Len())
	}
	if got := a.Future().Tasks()[0].PlannedDate; got != testDay.AddDays(2) {
		t.Fatalf("planned date = %v", got)
	}
}

func TestStartOrResume_StartsSelectedThenPauses(t *testing.T) {
	a, clk := newTestApp(t, "A", "B")
	a.SelectDown()
	press(a, config.ActionStartOrResume)
	if idx, ok := a.Today().ActiveIndex(); !ok || idx != 1 {
		t.Fatalf("expected B active, got (%d,%v)", idx, ok)
	}
	clk.Advance(10)
	press(a, config.ActionStartOrResume)
	if _, ok := a.Today().ActiveIndex(); ok {
		t.Fatalf("expected pause")
	}
	b := a.Today().Tasks()[1]
	if b.State != model.StatePaused || len(b.Sessions) != 1 || b.Sessions[0].EndMin == nil || *b.Sessions[0].EndMin != 9*60+10 {
		t.Fatalf("unexpected task after pause: %+v", b)
	}
}

func TestStartOrResume_FallsBackToFirstEligible(t *testing.T) {
	a, _ := newTestApp(t, "A", "B")
	a.finishToday(0)
	a.selected = 0
	press(a, config.ActionStartOrResume)
	if idx, ok := a.Today().ActiveIndex(); !ok || idx != 1 || a.Selected() != 1 {
		t.Fatalf("expected B active and selected, got (%d,%v) sel=%d", idx, ok, a.Selected())
	}
}

func TestStartOrResume_OnlyInTodayView(t *testing.T) {
	a, _ := newTestApp(t, "A")
	a.SetView(ViewFuture)
	press(a, config.ActionStartOrResume)
	if _, ok := a.Today().ActiveIndex(); ok {
		t.Fatalf("start from Future view should be a no-op")
	}
}

func TestFinish_SetsDoneAndDate(t *testing.T) {
	a, clk := newTestApp(t, "A")
	press(a, config.ActionStartOrResume)
	clk.Advance(5)
	press(a, config.ActionFinishActive)
	task := a.Today().Tasks()[0]
	if task.State != model.StateDone || task.DoneDate == nil || *task.DoneDate != testDay {
		t.Fatalf("unexpected task: %+v", task)
	}
	if task.FinishedAtMin == nil || *task.FinishedAtMin != 9*60+5 {
		t.Fatalf("finished at = %v", task.FinishedAtMin)
	}
	if _, ok := a.Today().ActiveIndex(); ok {
		t.Fatalf("no task should be active after finish")
	}
}

func TestTick_FoldsCarryIntoMinutes(t *testing.T) {
	a, _ := newTestApp(t, "A")
	press(a, config.ActionStartOrResume)
	a.Tick(59)
	if got := a.Today().Tasks()[0].ActualMin; got != 0 {
		t.Fatalf("actual = %d after 59s", got)
	}
	a.Tick(1)
	task := a.Today().Tasks()[0]
	if task.ActualMin != 1 || task.ActualCarrySec != 0 {
		t.Fatalf("unexpected actual/carry: %d/%d", task.ActualMin, task.ActualCarrySec)
	}
	a.Tick(130)
	task = a.Today().Tasks()[0]
	if task.ActualMin != 3 || task.ActualCarrySec != 10 {
		t.Fatalf("unexpected actual/carry: %d/%d", task.ActualMin, task.ActualCarrySec)
	}
}

func TestTick_CarrySurvivesPauseResume(t *testing.T) {
	a, _ := newTestApp(t, "A")
	press(a, config.ActionStartOrResume)
	a.Tick(40)
	press(a, config.ActionStartOrResume)
	a.Tick(100)
	press(a, config.ActionStartOrResume)
	a.Tick(20)
	task := a.Today().Tasks()[0]
	if task.ActualMin != 1 || task.ActualCarrySec != 0 {
		t.Fatalf("unexpected actual/carry: %d/%d", task.ActualMin, task.ActualCarrySec)
	}
}

func TestTick_NoActiveIsNoop(t *testing.T) {
	a, _ := newTestApp(t, "A")
	rev := a.Revision()
	a.Tick(120)
	if a.Today().Tasks()[0].ActualMin != 0 || a.Revision() != rev {
		t.Fatalf("tick without an active task changed state")
	}
}

func TestPopupsBlockTicks(t *testing.T) {
	a, _ := newTestApp(t, "A")
	press(a, config.ActionDelete)
	if !a.Blocking() {
		t.Fatalf("ConfirmDelete should block ticks")
	}
	key(a, KeyEsc)
	if a.Blocking() {
		t.Fatalf("Normal should not block")
	}
}

func TestConfirmDelete(t *testing.T) {
	a, _ := newTestApp(t, "A", "B")
	a.SelectDown()
	press(a, config.ActionDelete)
	typeRunes(a, "n")
	if a.Today().Len() != 2 {
		t.Fatalf("n should cancel")
	}
	press(a, config.ActionDelete)
	key(a, KeyEnter)
	if got := listTitles(a.Today()); !reflect.DeepEqual(got, []string{"A"}) {
		t.Fatalf("titles = %v", got)
	}
	if a.Selected() != 0 {
		t.Fatalf("selection should clamp, got %d", a.Selected())
	}
}

func TestConfirmDelete_ActiveTaskClearsActive(t *testing.T) {
	a, _ := newTestApp(t, "A", "B")
	press(a, config.ActionStartOrResume)
	press(a, config.ActionDelete)
	typeRunes(a, "y")
	if _, ok := a.Today().ActiveIndex(); ok {
		t.Fatalf("deleting the active task must clear the active index")
	}
	assertOneActive(t, a.Today())
}

func TestPostponeAndBring(t *testing.T) {
	a, _ := newTestApp(t, "A", "B")
	press(a, config.ActionStartOrResume)
	press(a, config.ActionPostpone)
	if got := listTitles(a.Today()); !reflect.DeepEqual(got, []string{"B"}) {
		t.Fatalf("today = %v", got)
	}
	moved := a.Future().Tasks()[0]
	if moved.State != model.StatePlanned || moved.PlannedDate != testDay.AddDays(1) {
		t.Fatalf("unexpected postponed task: %+v", moved)
	}
	a.SetView(ViewFuture)
	press(a, config.ActionBringToToday)
	if got := listTitles(a.Today()); !reflect.DeepEqual(got, []string{"B", "A"}) {
		t.Fatalf("today = %v", got)
	}
	if _, ok := a.Today().ActiveIndex(); ok {
		t.Fatalf("bringing a task must not start it")
	}
}

func TestReorderKeysFollowSelection(t *testing.T) {
	a, _ := newTestApp(t, "A", "B", "C")
	press(a, config.ActionReorderDown)
	if got := listTitles(a.Today()); !reflect.DeepEqual(got, []string{"B", "A", "C"}) || a.Selected() != 1 {
		t.Fatalf("titles=%v sel=%d", got, a.Selected())
	}
	press(a, config.ActionReorderUp)
	if got := listTitles(a.Today()); !reflect.DeepEqual(got, []string{"A", "B", "C"}) || a.Selected() != 0 {
		t.Fatalf("titles=%v sel=%d", got, a.Selected())
	}
}

func TestCategoryCycleAndPicker(t *testing.T) {
	a, _ := newTestApp(t, "A")
	press(a, config.ActionCategoryCycle)
	if c := a.Today().Tasks()[0].Category; c != model.CategoryWork {
		t.Fatalf("category = %v", c)
	}
	press(a, config.ActionCategoryPicker)
	key(a, KeyDown)
	key(a, KeyDown)
	key(a, KeyEsc)
	if c := a.Today().Tasks()[0].Category; c != model.CategoryWork {
		t.Fatalf("Esc must not change category, got %v", c)
	}
	press(a, config.ActionCategoryPicker)
	key(a, KeyUp)
	key(a, KeyUp)
	key(a, KeyEnter)
	if c := a.Today().Tasks()[0].Category; c != model.CategoryHobby {
		t.Fatalf("category = %v", c)
	}
}

func TestEstimateEdit_EscDiscards(t *testing.T) {
	a, _ := newTestApp(t, "A")
	press(a, config.ActionEstimatePlus)
	key(a, KeyUp)
	key(a, KeyEsc)
	if got := a.Today().Tasks()[0].EstimateMin; got != 30 {
		t.Fatalf("estimate = %d", got)
	}
	press(a, config.ActionEstimatePlus)
	key(a, KeyUp)
	key(a, KeyEnter)
	if got := a.Today().Tasks()[0].EstimateMin; got != 35 {
		t.Fatalf("estimate = %d", got)
	}
}

func TestEstimateEdit_LaterDateMovesToFuture(t *testing.T) {
	a, _ := newTestApp(t, "A")
	press(a, config.ActionEstimatePlus)
	typeRunes(a, ".")
	key(a, KeyEnter)
	if a.Today().Len() != 0 || a.Future().Len() != 1 {
		t.Fatalf("expected move to Future")
	}
}

func TestStartTimeEdit_SetAndClear(t *testing.T) {
	a, _ := newTestApp(t, "A", "B")
	a.SelectDown()
	press(a, config.ActionPopup)
	m, ok := a.Mode().(StartTimeEdit)
	if !ok || m.Minutes != 9*60+30 {
		t.Fatalf("expected StartTimeEdit at projected 09:30, got %#v", a.Mode())
	}
	key(a, KeyUp)
	key(a, KeyEnter)
	if fs := a.Today().Tasks()[1].FixedStartMin; fs == nil || *fs != 9*60+35 {
		t.Fatalf("fixed start = %v", fs)
	}
	press(a, config.ActionPopup)
	key(a, KeyBackspace)
	if fs := a.Today().Tasks()[1].FixedStartMin; fs != nil {
		t.Fatalf("fixed start should be cleared, got %d", *fs)
	}
}

func TestCommandPalette(t *testing.T) {
	a, _ := newTestApp(t, "A")
	run := func(s string) {
		press(a, config.ActionCommand)
		typeRunes(a, s)
		key(a, KeyEnter)
		if _, ok := a.Mode().(Normal); !ok {
			t.Fatalf("palette should close after %q", s)
		}
	}
	run("est +15m")
	if got := a.Today().Tasks()[0].EstimateMin; got != 45 {
		t.Fatalf("est = %d", got)
	}
	run("est -50")
	if got := a.Today().Tasks()[0].EstimateMin; got != 0 {
		t.Fatalf("est = %d", got)
	}
	run("est 90m")
	if got := a.Today().Tasks()[0].EstimateMin; got != 90 {
		t.Fatalf("est = %d", got)
	}
	run("at 13:30")
	if fs := a.Today().Tasks()[0].FixedStartMin; fs == nil || *fs != 13*60+30 {
		t.Fatalf("fixed = %v", fs)
	}
	run("at -")
	if a.Today().Tasks()[0].FixedStartMin != nil {
		t.Fatalf("fixed start not cleared")
	}
	a.TakeEffects()
	run("base 0830")
	if a.DayStart() != 8*60+30 {
		t.Fatalf("day start = %d", a.DayStart())
	}
	effects := a.TakeEffects()
	if len(effects) != 1 || effects[0] != (EffectPersistDayStart{Minutes: 8*60 + 30}) {
		t.Fatalf("effects = %#v", effects)
	}
	run("frobnicate 1")
	run("est abc")
	if got := a.Today().Tasks()[0].EstimateMin; got != 90 {
		t.Fatalf("bad command changed estimate to %d", got)
	}
}

func TestDrag_ReordersAndSelectionFollows(t *testing.T) {
	a, _ := newTestApp(t, "A", "B", "C", "D")
	at := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	row := func(i int) Target { return Target{Kind: TargetRow, Row: i} }

	a.HandlePointer(PointerEvent{Kind: PointerDown, Button: ButtonLeft, Target: row(1), At: at})
	a.HandlePointer(PointerEvent{Kind: PointerDrag, Button: ButtonLeft, Target: row(2), At: at})
	if _, ok := a.Mode().(Dragging); !ok {
		t.Fatalf("expected Dragging, got %T", a.Mode())
	}
	a.HandlePointer(PointerEvent{Kind: PointerDrag, Button: ButtonLeft, Target: row(3), At: at})
	a.HandlePointer(PointerEvent{Kind: PointerUp, Button: ButtonLeft, Target: row(3), At: at})

	if got := listTitles(a.Today()); !reflect.DeepEqual(got, []string{"A", "C", "D", "B"}) {
		t.Fatalf("titles = %v", got)
	}
	if a.Selected() != 3 {
		t.Fatalf("selection = %d, want 3", a.Selected())
	}
	if _, ok := a.Mode().(Normal); !ok {
		t.Fatalf("expected Normal after drop")
	}
}

func TestDrag_SnapsOutsideRowsToEnds(t *testing.T) {
	a, _ := newTestApp(t, "A", "B", "C")
	at := time.Now()
	a.HandlePointer(PointerEvent{Kind: PointerDown, Button: ButtonLeft, Target: Target{Kind: TargetRow, Row: 2}, At: at})
	a.HandlePointer(PointerEvent{Kind: PointerDrag, Button: ButtonLeft, Target: Target{Kind: TargetRow, Row: -4}, At: at})
	if h, ok := a.Hovered(); !ok || h != 0 {
		t.Fatalf("hovered = (%d,%v), want 0", h, ok)
	}
	a.HandlePointer(PointerEvent{Kind: PointerUp, Button: ButtonLeft, At: at})
	if got := listTitles(a.Today()); !reflect.DeepEqual(got, []string{"C", "A", "B"}) {
		t.Fatalf("titles = %v", got)
	}
}

func TestDrag_KeepsActiveIndexConsistent(t *testing.T) {
	a, _ := newTestApp(t, "A", "B", "C", "D")
	a.selected = 2
	press(a, config.ActionStartOrResume)
	at := time.Now()
	a.HandlePointer(PointerEvent{Kind: PointerDown, Button: ButtonLeft, Target: Target{Kind: TargetRow, Row: 0}, At: at})
	a.HandlePointer(PointerEvent{Kind: PointerDrag, Button: ButtonLeft, Target: Target{Kind: TargetRow, Row: 3}, At: at})
	a.HandlePointer(PointerEvent{Kind: PointerUp, Button: ButtonLeft, At: at})
	if idx, ok := a.Today().ActiveIndex(); !ok || a.Today().Tasks()[idx].Title != "C" {
		t.Fatalf("active should still be C, got (%d,%v)", idx, ok)
	}
	assertOneActive(t, a.Today())
}

func TestDoubleClick_TogglesStartPause(t *testing.T) {
	a, _ := newTestApp(t, "A", "B")
	at := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	click := func(row int, when time.Time) {
		a.HandlePointer(PointerEvent{Kind: PointerDown, Button: ButtonLeft, Target: Target{Kind: TargetRow, Row: row}, At: when})
		a.HandlePointer(PointerEvent{Kind: PointerUp, Button: ButtonLeft, Target: Target{Kind: TargetRow, Row: row}, At: when})
	}
	click(1, at)
	if _, ok := a.Today().ActiveIndex(); ok {
		t.Fatalf("single click must not start")
	}
	click(1, at.Add(200*time.Millisecond))
	if idx, ok := a.Today().ActiveIndex(); !ok || idx != 1 {
		t.Fatalf("double click should start B, got (%d,%v)", idx, ok)
	}
	click(1, at.Add(2*time.Second))
	click(1, at.Add(2*time.Second+100*time.Millisecond))
	if _, ok := a.Today().ActiveIndex(); ok {
		t.Fatalf("second double click should pause")
	}
}

func TestDoubleClick_SlowClicksAreSingle(t *testing.T) {
	a, _ := newTestApp(t, "A")
	at := time.Now()
	a.HandlePointer(PointerEvent{Kind: PointerDown, Button: ButtonLeft, Target: Target{Kind: TargetRow, Row: 0}, At: at})
	a.HandlePointer(PointerEvent{Kind: PointerUp, Button: ButtonLeft, At: at})
	a.HandlePointer(PointerEvent{Kind: PointerDown, Button: ButtonLeft, Target: Target{Kind: TargetRow, Row: 0}, At: at.Add(DoubleClickWindow + time.Millisecond)})
	if _, ok := a.Today().ActiveIndex(); ok {
		t.Fatalf("clicks outside the window must not start a task")
	}
}

func TestDoubleClick_FutureBringsWithoutStarting(t *testing.T) {
	a, _ := newTestApp(t, "A")
	a.PostponeSelected()
	a.SetView(ViewFuture)
	at := time.Now()
	for i := 0; i < 2; i++ {
		a.HandlePointer(PointerEvent{Kind: PointerDown, Button: ButtonLeft, Target: Target{Kind: TargetRow, Row: 0}, At: at})
		a.HandlePointer(PointerEvent{Kind: PointerUp, Button: ButtonLeft, At: at})
	}
	if a.Future().Len() != 0 || a.Today().Len() != 1 {
		t.Fatalf("expected task brought to Today")
	}
	if _, ok := a.Today().ActiveIndex(); ok {
		t.Fatalf("bringing must not start")
	}
}

func TestRightClick(t *testing.T) {
	a, _ := newTestApp(t, "A", "B")
	a.HandlePointer(PointerEvent{Kind: PointerDown, Button: ButtonRight, Target: Target{Kind: TargetRow, Row: 1}})
	if m, ok := a.Mode().(EstimateEdit); !ok || m.TaskIndex != 1 || a.Selected() != 1 {
		t.Fatalf("expected EstimateEdit on row 1, got %#v sel=%d", a.Mode(), a.Selected())
	}
	key(a, KeyEsc)
	a.selected = 1
	a.HandlePointer(PointerEvent{Kind: PointerDown, Button: ButtonRight, Target: Target{Kind: TargetCategoryDot, Row: 0}})
	if m, ok := a.Mode().(CategoryPicker); !ok || m.TaskIndex != 0 {
		t.Fatalf("expected CategoryPicker on row 0, got %#v", a.Mode())
	}
	a.HandlePointer(PointerEvent{Kind: PointerDown, Button: ButtonLeft, Target: Target{Kind: TargetCategoryOption, Category: model.CategoryHome}})
	if c := a.Today().Tasks()[0].Category; c != model.CategoryHome {
		t.Fatalf("category = %v", c)
	}
}

func TestSliderPointerAndButtons(t *testing.T) {
	a, _ := newTestApp(t, "A")
	press(a, config.ActionEstimatePlus)
	a.HandlePointer(PointerEvent{Kind: PointerDown, Button: ButtonLeft, Target: Target{Kind: TargetSlider, X: 24, Width: 49}})
	if m := a.Mode().(EstimateEdit); m.Minutes != 120 {
		t.Fatalf("slider value = %d", m.Minutes)
	}
	a.HandlePointer(PointerEvent{Kind: PointerDrag, Button: ButtonLeft, Target: Target{Kind: TargetSlider, X: 48, Width: 49}})
	if m := a.Mode().(EstimateEdit); m.Minutes != 240 {
		t.Fatalf("slider value = %d", m.Minutes)
	}
	a.HandlePointer(PointerEvent{Kind: PointerDown, Button: ButtonLeft, Target: Target{Kind: TargetPopupOK}})
	if got := a.Today().Tasks()[0].EstimateMin; got != 240 {
		t.Fatalf("estimate = %d", got)
	}
}

func TestSlider_ValueAtAndOffsetAgree(t *testing.T) {
	for _, v := range []int{0, 5, 120, 235, 240} {
		x := EstimateSlider.OffsetFor(v, 49)
		if got := EstimateSlider.ValueAt(x, 49); got != v {
			t.Fatalf("ValueAt(OffsetFor(%d)) = %d", v, got)
		}
	}
	if got := EstimateSlider.ValueAt(-3, 10); got != 0 {
		t.Fatalf("left of track = %d", got)
	}
	if got := EstimateSlider.ValueAt(99, 10); got != 240 {
		t.Fatalf("right of track = %d", got)
	}
}

func TestHeaderButtons(t *testing.T) {
	a, _ := newTestApp(t, "A")
	if a.HeaderEnabled(HeaderStop) {
		t.Fatalf("Stop should be disabled without an active task")
	}
	a.HandlePointer(PointerEvent{Kind: PointerDown, Button: ButtonLeft, Target: Target{Kind: TargetHeader, Header: HeaderStart}})
	if _, ok := a.Today().ActiveIndex(); !ok {
		t.Fatalf("Start button should start the selected task")
	}
	a.HandlePointer(PointerEvent{Kind: PointerDown, Button: ButtonLeft, Target: Target{Kind: TargetHeader, Header: HeaderStop}})
	if _, ok := a.Today().ActiveIndex(); ok {
		t.Fatalf("Stop button should pause")
	}
	a.HandlePointer(PointerEvent{Kind: PointerDown, Button: ButtonLeft, Target: Target{Kind: TargetTab, Tab: ViewPast}})
	if a.View() != ViewPast {
		t.Fatalf("tab click should switch view")
	}
}

func TestHoverIgnoredWhilePopupOpen(t *testing.T) {
	a, _ := newTestApp(t, "A", "B")
	a.HandlePointer(PointerEvent{Kind: PointerMove, Target: Target{Kind: TargetRow, Row: 1}})
	if h, ok := a.Hovered(); !ok || h != 1 {
		t.Fatalf("hovered = (%d,%v)", h, ok)
	}
	press(a, config.ActionCommand)
	a.HandlePointer(PointerEvent{Kind: PointerMove, Target: Target{Kind: TargetRow, Row: 0}})
	if h, _ := a.Hovered(); h != 1 {
		t.Fatalf("hover should not move under a popup, got %d", h)
	}
}

func TestOutOfRangeIndicesAreNoops(t *testing.T) {
	a, _ := newTestApp(t)
	press(a, config.ActionStartOrResume)
	press(a, config.ActionFinishActive)
	press(a, config.ActionDelete)
	press(a, config.ActionReorderUp)
	press(a, config.ActionEstimatePlus)
	press(a, config.ActionPopup)
	press(a, config.ActionCategoryCycle)
	a.HandlePointer(PointerEvent{Kind: PointerDown, Button: ButtonLeft, Target: Target{Kind: TargetRow, Row: 5}})
	a.HandlePointer(PointerEvent{Kind: PointerDown, Button: ButtonRight, Target: Target{Kind: TargetRow, Row: 5}})
	if _, ok := a.Mode().(Normal); !ok {
		t.Fatalf("expected Normal, got %T", a.Mode())
	}
}

func TestSnapshotRoundTripThroughApp(t *testing.T) {
	a, _ := newTestApp(t, "A", "B")
	press(a, config.ActionStartOrResume)
	a.Tick(90)
	a.SelectDown()
	a.PostponeSelected()

	text, err := store.SaveString(a.Snapshot())
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	snap, err := store.LoadString(text)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	b, _ := newTestApp(t)
	b.ApplySnapshot(snap)
	if !reflect.DeepEqual(b.Today().Tasks(), a.Today().Tasks()) {
		t.Fatalf("today differs:\n%+v\n%+v", b.Today().Tasks(), a.Today().Tasks())
	}
	if !reflect.DeepEqual(b.Future().Tasks(), a.Future().Tasks()) {
		t.Fatalf("future differs")
	}
}

func TestRollover_SweepsDoneIntoPast(t *testing.T) {
	a, clk := newTestApp(t, "A", "B")
	a.finishToday(0)
	clk.Day = testDay.AddDays(1)
	a.Tick(0)
	if got := listTitles(a.Today()); !reflect.DeepEqual(got, []string{"B"}) {
		t.Fatalf("today = %v", got)
	}
	if got := listTitles(a.Past()); !reflect.DeepEqual(got, []string{"A"}) {
		t.Fatalf("past = %v", got)
	}
}
