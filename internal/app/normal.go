package app

import (
	"chute-cli/internal/config"
	"chute-cli/internal/model"
	"chute-cli/internal/schedule"
)

func (a *App) handleNormalAction(act config.Action) {
	switch act {
	case config.ActionQuit:
		a.quit = true
	case config.ActionAddTask:
		a.mode = TextInput{Purpose: PurposeNewTask}
	case config.ActionAddInterrupt:
		a.mode = TextInput{Purpose: PurposeInterrupt}
	case config.ActionStartOrResume:
		a.StartOrResume()
	case config.ActionFinishActive:
		a.FinishSelected()
	case config.ActionPopup:
		a.openStartTimeEdit()
	case config.ActionDelete:
		a.openConfirmDelete()
	case config.ActionReorderUp:
		a.reorder(-1)
	case config.ActionReorderDown:
		a.reorder(+1)
	case config.ActionEstimatePlus:
		a.openEstimateEdit()
	case config.ActionPostpone:
		a.PostponeSelected()
	case config.ActionBringToToday:
		a.BringSelected()
	case config.ActionViewNext:
		a.SetView(a.view.Next())
	case config.ActionViewPrev:
		a.SetView(a.view.Prev())
	case config.ActionSelectUp:
		a.SelectUp()
	case config.ActionSelectDown:
		a.SelectDown()
	case config.ActionToggleBlocks:
		a.showBlocks = !a.showBlocks
	case config.ActionCategoryCycle:
		a.CycleCategory()
	case config.ActionCategoryPicker:
		a.openCategoryPicker(a.selected)
	case config.ActionCommand:
		a.mode = CommandPalette{}
	case config.ActionHelp:
		a.showHelp = !a.showHelp
	}
}

func (a *App) SetView(v View) {
	if v == a.view {
		return
	}
	a.view = v
	a.hovered = -1
	a.press = pressState{}
	a.lastClick = clickMemo{}
	a.clampSelection()
}

func (a *App) SelectUp() {
	if a.selected > 0 {
		a.selected--
	}
}

func (a *App) SelectDown() {
	if a.selected < a.current().Len()-1 {
		a.selected++
	}
}

// AddTask appends a Planned task to Today and returns its index. It never
// starts the task or touches the active one.
func (a *App) AddTask(title string, estimateMin int) int {
	t := model.NewTask(title, estimateMin, a.day)
	idx := a.today.Add(t)
	a.emit(model.ActivityAdd, t)
	a.touch()
	return idx
}

// StartOrResume pauses the active task if there is one. Otherwise it starts
// the selected task when it is Planned or Paused, or else the first such
// task, which then becomes selected. Only the Today view starts tasks.
func (a *App) StartOrResume() {
	if a.view != ViewToday {
		return
	}
	if _, ok := a.today.ActiveIndex(); ok {
		a.PauseActive()
		return
	}
	if t, ok := a.today.At(a.selected); ok && t.Eligible() {
		a.startToday(a.selected)
		return
	}
	for i, t := range a.today.Tasks() {
		if t.Eligible() {
			a.selected = i
			a.startToday(i)
			return
		}
	}
}

func (a *App) startToday(i int) {
	t, ok := a.today.At(i)
	if !ok || !t.Eligible() {
		return
	}
	now := a.clock.NowMinutes()
	if cur, ok := a.today.ActiveIndex(); ok && cur != i {
		if ct, ok := a.today.At(cur); ok {
			ct.EndSession(now)
			a.today.PauseActive()
			a.emit(model.ActivityPause, *ct)
		}
	}
	a.today.Start(i)
	if t.StartedAtMin == nil {
		started := now
		t.StartedAtMin = &started
	}
	t.StartSession(now)
	a.emit(model.ActivityStart, *t)
	a.touch()
}

// PauseActive closes the running session and pauses the active task.
func (a *App) PauseActive() {
	t, ok := a.today.ActiveTask()
	if !ok {
		return
	}
	t.EndSession(a.clock.NowMinutes())
	a.today.PauseActive()
	a.emit(model.ActivityPause, *t)
	a.touch()
}

// FinishSelected marks the selected Today task Done.
func (a *App) FinishSelected() {
	if a.view != ViewToday {
		return
	}
	a.finishToday(a.selected)
}

func (a *App) finishToday(i int) {
	t, ok := a.today.At(i)
	if !ok || t.State == model.StateDone {
		return
	}
	now := a.clock.NowMinutes()
	finished := now
	t.FinishedAtMin = &finished
	t.EndSession(now)
	a.today.FinishAt(i, a.day)
	a.emit(model.ActivityFinish, *t)
	a.touch()
}

// PostponeSelected moves the selected Today task to tomorrow in Future.
func (a *App) PostponeSelected() {
	if a.view != ViewToday {
		return
	}
	a.moveTodayToFuture(a.selected, a.day.AddDays(1))
}

func (a *App) moveTodayToFuture(i int, date model.Date) {
	t, ok := a.today.At(i)
	if !ok || t.State == model.StateDone {
		return
	}
	if t.State == model.StateActive {
		t.EndSession(a.clock.NowMinutes())
		a.today.PauseActive()
	}
	moved, _ := a.today.Remove(i)
	moved.State = model.StatePlanned
	moved.PlannedDate = date
	a.future.Add(moved)
	a.emit(model.ActivityPostpone, moved)
	a.clampSelection()
	a.touch()
}

// BringSelected moves the selected Future task to the end of Today. The
// task is not started.
func (a *App) BringSelected() {
	if a.view != ViewFuture {
		return
	}
	a.bringFromFuture(a.selected)
}

func (a *App) bringFromFuture(i int) {
	moved, ok := a.future.Remove(i)
	if !ok {
		return
	}
	moved.State = model.StatePlanned
	moved.PlannedDate = a.day
	a.today.Add(moved)
	a.emit(model.ActivityBring, moved)
	a.clampSelection()
	a.touch()
}

func (a *App) deleteToday(i int) {
	t, ok := a.today.At(i)
	if !ok {
		return
	}
	if t.State == model.StateActive {
		t.EndSession(a.clock.NowMinutes())
	}
	removed, _ := a.today.Remove(i)
	a.emit(model.ActivityDelete, removed)
	a.clampSelection()
	a.touch()
}

// CycleCategory advances the selected task's category by one step.
func (a *App) CycleCategory() {
	t, ok := a.SelectedTask()
	if !ok {
		return
	}
	t.Category = t.Category.Next()
	a.touch()
}

func (a *App) reorder(dir int) {
	if a.view == ViewPast {
		return
	}
	list := a.current()
	if _, ok := list.At(a.selected); !ok {
		return
	}
	if dir < 0 {
		a.selected = list.ReorderUp(a.selected)
	} else {
		a.selected = list.ReorderDown(a.selected)
	}
	a.touch()
}

func (a *App) openStartTimeEdit() {
	if a.view != ViewToday {
		return
	}
	t, ok := a.today.At(a.selected)
	if !ok {
		return
	}
	minutes := 0
	if t.FixedStartMin != nil {
		minutes = *t.FixedStartMin
	} else {
		starts := schedule.PlannedStarts(a.dayStart, a.today.Tasks())
		minutes = starts[a.selected] / StartTimeSlider.Step * StartTimeSlider.Step
	}
	a.mode = StartTimeEdit{TaskIndex: a.selected, Minutes: StartTimeSlider.Clamp(minutes)}
}

func (a *App) openEstimateEdit() {
	if a.view == ViewPast {
		return
	}
	t, ok := a.current().At(a.selected)
	if !ok {
		return
	}
	a.mode = EstimateEdit{
		TaskIndex: a.selected,
		Minutes:   EstimateSlider.Clamp(t.EstimateMin),
		Date:      t.PlannedDate.OrToday(a.day),
	}
}

func (a *App) openConfirmDelete() {
	if a.view != ViewToday || a.today.Len() == 0 {
		return
	}
	if _, ok := a.today.At(a.selected); !ok {
		return
	}
	a.mode = ConfirmDelete{TaskIndex: a.selected}
}

func (a *App) openCategoryPicker(i int) {
	t, ok := a.current().At(i)
	if !ok {
		return
	}
	a.selected = i
	a.mode = CategoryPicker{TaskIndex: i, Highlighted: t.Category}
}

// HeaderEnabled reports whether clicking header button b would do anything.
func (a *App) HeaderEnabled(b HeaderButton) bool {
	switch b {
	case HeaderNew:
		return true
	case HeaderStart:
		t, ok := a.today.At(a.selected)
		return a.view == ViewToday && ok && t.Eligible()
	case HeaderStop:
		_, ok := a.today.ActiveIndex()
		return ok
	case HeaderFinish, HeaderDelete:
		return a.view == ViewToday && a.today.Len() > 0
	}
	return false
}

func (a *App) pressHeader(b HeaderButton) {
	if !a.HeaderEnabled(b) {
		return
	}
	switch b {
	case HeaderNew:
		a.mode = TextInput{Purpose: PurposeNewTask}
	case HeaderStart:
		a.startToday(a.selected)
	case HeaderStop:
		a.PauseActive()
	case HeaderFinish:
		a.FinishSelected()
	case HeaderDelete:
		a.openConfirmDelete()
	}
}
