package app

import "chute-cli/internal/model"

// HandlePointer applies a mouse event whose position the layout has already
// resolved to a semantic target.
//
// Presses on a row go through a small sub-state: a press is remembered while
// the button is held (press) and after release (lastClick). Movement while
// held turns the press into a drag; a second press on the same row inside
// DoubleClickWindow is a double click; anything else is a plain click.
func (a *App) HandlePointer(ev PointerEvent) {
	switch ev.Kind {
	case PointerMove:
		a.pointerMove(ev.Target)
	case PointerDown:
		a.hover = ev.Target
		if IsPopup(a.mode) {
			a.popupPointer(ev)
			return
		}
		switch ev.Button {
		case ButtonLeft:
			a.leftDown(ev)
		case ButtonRight:
			a.rightDown(ev.Target)
		}
	case PointerDrag:
		a.hover = ev.Target
		if IsPopup(a.mode) {
			a.popupPointer(ev)
			return
		}
		a.pointerDrag(ev.Target)
	case PointerUp:
		a.pointerUp()
	}
}

func (a *App) pointerMove(t Target) {
	a.hover = t
	if IsPopup(a.mode) {
		return
	}
	if _, dragging := a.mode.(Dragging); dragging {
		return
	}
	if (t.Kind == TargetRow || t.Kind == TargetCategoryDot) && a.rowValid(t.Row) {
		a.hovered = t.Row
		return
	}
	a.hovered = -1
}

func (a *App) rowValid(row int) bool {
	_, ok := a.current().At(row)
	return ok
}

func (a *App) leftDown(ev PointerEvent) {
	t := ev.Target
	switch t.Kind {
	case TargetTab:
		a.SetView(t.Tab)
	case TargetHeader:
		a.pressHeader(t.Header)
	case TargetRow, TargetCategoryDot:
		if !a.rowValid(t.Row) {
			a.press = pressState{}
			return
		}
		a.selected = t.Row
		last := a.lastClick
		if last.valid && last.row == t.Row && !ev.At.Before(last.at) && ev.At.Sub(last.at) <= DoubleClickWindow {
			a.lastClick = clickMemo{}
			a.press = pressState{}
			a.doubleClick(t.Row)
			return
		}
		a.press = pressState{held: true, row: t.Row}
		a.lastClick = clickMemo{valid: true, row: t.Row, at: ev.At}
	}
}

func (a *App) doubleClick(row int) {
	switch a.view {
	case ViewToday:
		if cur, ok := a.today.ActiveIndex(); ok && cur == row {
			a.PauseActive()
			return
		}
		a.startToday(row)
	case ViewFuture:
		a.bringFromFuture(row)
	}
}

func (a *App) rightDown(t Target) {
	if !a.rowValid(t.Row) {
		return
	}
	switch t.Kind {
	case TargetCategoryDot:
		a.openCategoryPicker(t.Row)
	case TargetRow:
		a.selected = t.Row
		a.openEstimateEdit()
	}
}

func (a *App) pointerDrag(t Target) {
	if _, ok := a.mode.(Dragging); ok {
		a.hovered = a.clampRow(t.Row)
		return
	}
	if !a.press.held || a.view == ViewPast {
		return
	}
	if !a.rowValid(a.press.row) {
		a.press = pressState{}
		return
	}
	a.mode = Dragging{SourceIndex: a.press.row}
	a.lastClick = clickMemo{}
	a.hovered = a.clampRow(t.Row)
}

// clampRow snaps a pointer row above or below the list to the first or last
// row.
func (a *App) clampRow(row int) int {
	n := a.current().Len()
	if n == 0 {
		return 0
	}
	return min(n-1, max(0, row))
}

func (a *App) pointerUp() {
	a.press = pressState{}
	d, ok := a.mode.(Dragging)
	if !ok {
		return
	}
	a.mode = Normal{}
	list := a.current()
	if !a.rowValid(d.SourceIndex) {
		return
	}
	to := a.clampRow(a.hovered)
	if to == d.SourceIndex {
		a.selected = to
		return
	}
	a.selected = list.MoveIndex(d.SourceIndex, to)
	a.hovered = a.selected
	a.touch()
}

// popupPointer handles presses and drags inside an open popup.
func (a *App) popupPointer(ev PointerEvent) {
	t := ev.Target
	if ev.Kind == PointerDrag && t.Kind != TargetSlider {
		return
	}
	if ev.Kind == PointerDown && ev.Button != ButtonLeft {
		return
	}
	switch t.Kind {
	case TargetSlider:
		a.setSlider(t.X, t.Width)
	case TargetDatePrev:
		a.nudgeDate(-1)
	case TargetDateNext:
		a.nudgeDate(+1)
	case TargetPopupOK:
		a.HandleKey(KeyEvent{Kind: KeyPress, Code: KeyEnter})
	case TargetPopupCancel:
		a.HandleKey(KeyEvent{Kind: KeyPress, Code: KeyEsc})
	case TargetCategoryOption:
		if m, ok := a.mode.(CategoryPicker); ok {
			a.commitCategory(m.TaskIndex, t.Category)
		}
	}
}

func (a *App) setSlider(x, width int) {
	switch m := a.mode.(type) {
	case NewTaskEstimate:
		m.Minutes = EstimateSlider.ValueAt(x, width)
		a.mode = m
	case EstimateEdit:
		m.Minutes = EstimateSlider.ValueAt(x, width)
		a.mode = m
	case StartTimeEdit:
		m.Minutes = StartTimeSlider.ValueAt(x, width)
		a.mode = m
	}
}

func (a *App) nudgeDate(days int) {
	switch m := a.mode.(type) {
	case NewTaskEstimate:
		m.Date = a.shiftDate(m.Date, days)
		a.mode = m
	case EstimateEdit:
		m.Date = a.shiftDate(m.Date, days)
		a.mode = m
	}
}

// DraftDate is the date shown by a date-carrying popup.
func DraftDate(m Mode) (model.Date, bool) {
	switch m := m.(type) {
	case NewTaskEstimate:
		return m.Date, true
	case EstimateEdit:
		return m.Date, true
	}
	return 0, false
}
