package app

import (
	"strings"

	"chute-cli/internal/model"
)

// HandleKey routes a key event to the current mode. Release events are ignored.
func (a *App) HandleKey(ev KeyEvent) {
	if ev.Kind == KeyRelease {
		return
	}
	switch m := a.mode.(type) {
	case TextInput:
		a.keyTextInput(m, ev)
	case NewTaskEstimate:
		a.keyNewTaskEstimate(m, ev)
	case EstimateEdit:
		a.keyEstimateEdit(m, ev)
	case StartTimeEdit:
		a.keyStartTimeEdit(m, ev)
	case CommandPalette:
		a.keyCommandPalette(m, ev)
	case CategoryPicker:
		a.keyCategoryPicker(m, ev)
	case ConfirmDelete:
		a.keyConfirmDelete(m, ev)
	case Dragging:
		if ev.Code == KeyEsc {
			a.mode = Normal{}
			a.press = pressState{}
		}
	default:
		if ev.Code == KeyEsc && a.showHelp {
			a.showHelp = false
			return
		}
		a.handleNormalAction(ev.Action)
	}
}

// HandlePaste appends pasted text to an open text buffer. Line breaks are
// flattened to spaces.
func (a *App) HandlePaste(s string) {
	s = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ", "\t", " ").Replace(s)
	switch m := a.mode.(type) {
	case TextInput:
		m.Buffer = append(append([]rune(nil), m.Buffer...), []rune(s)...)
		a.mode = m
	case CommandPalette:
		m.Buffer = append(append([]rune(nil), m.Buffer...), []rune(s)...)
		a.mode = m
	}
}

// editBuffer applies a text-editing key to buf. It reports false for keys
// that are not editing keys.
func editBuffer(buf []rune, ev KeyEvent) ([]rune, bool) {
	switch ev.Code {
	case KeyRune:
		return append(append([]rune(nil), buf...), ev.Rune), true
	case KeyBackspace:
		if len(buf) == 0 {
			return buf, true
		}
		return append([]rune(nil), buf[:len(buf)-1]...), true
	}
	return buf, false
}

func (a *App) keyTextInput(m TextInput, ev KeyEvent) {
	switch ev.Code {
	case KeyEnter:
		a.submitTextInput(m)
	case KeyEsc:
		a.mode = Normal{}
	default:
		if buf, ok := editBuffer(m.Buffer, ev); ok {
			m.Buffer = buf
			a.mode = m
		}
	}
}

func (a *App) submitTextInput(m TextInput) {
	title := strings.TrimSpace(string(m.Buffer))
	if title == "" {
		title = m.Purpose.defaultTitle()
	}
	est := a.cfg.DefaultEstimateMin
	if m.Purpose == PurposeInterrupt {
		est = InterruptEstimateMin
	}
	a.mode = NewTaskEstimate{
		Title:   title,
		Purpose: m.Purpose,
		Minutes: EstimateSlider.Clamp(est),
		Date:    a.day,
	}
}

// stepKey reports +1/-1 for the keys that nudge a slider.
func stepKey(ev KeyEvent) int {
	switch ev.Code {
	case KeyUp, KeyRight:
		return 1
	case KeyDown, KeyLeft:
		return -1
	case KeyRune:
		switch ev.Rune {
		case 'k', '+':
			return 1
		case 'j', '-':
			return -1
		}
	}
	return 0
}

// dateKey reports +1/-1 day for the date shortcut keys.
func dateKey(ev KeyEvent) int {
	if ev.Code != KeyRune {
		return 0
	}
	switch ev.Rune {
	case '.', '>':
		return 1
	case ',', '<':
		return -1
	}
	return 0
}

func (a *App) shiftDate(d model.Date, days int) model.Date {
	d = d.OrToday(a.day).AddDays(days)
	if d < a.day {
		return a.day
	}
	return d
}

func (a *App) keyNewTaskEstimate(m NewTaskEstimate, ev KeyEvent) {
	switch ev.Code {
	case KeyEnter:
		a.commitNewTask(m)
		return
	case KeyEsc:
		a.mode = Normal{}
		return
	}
	if s := stepKey(ev); s != 0 {
		m.Minutes = EstimateSlider.Clamp(m.Minutes + s*EstimateSlider.Step)
	} else if d := dateKey(ev); d != 0 {
		m.Date = a.shiftDate(m.Date, d)
	}
	a.mode = m
}

func (a *App) commitNewTask(m NewTaskEstimate) {
	a.mode = Normal{}
	t := model.NewTask(m.Title, m.Minutes, m.Date.OrToday(a.day))
	if t.PlannedDate <= a.day {
		t.PlannedDate = a.day
		idx := a.today.Add(t)
		if a.view == ViewToday {
			a.selected = idx
		}
	} else {
		idx := a.future.Add(t)
		if a.view == ViewFuture {
			a.selected = idx
		}
	}
	a.emit(model.ActivityAdd, t)
	a.touch()
}

func (a *App) keyEstimateEdit(m EstimateEdit, ev KeyEvent) {
	switch ev.Code {
	case KeyEnter:
		a.commitEstimateEdit(m)
		return
	case KeyEsc:
		a.mode = Normal{}
		return
	}
	if s := stepKey(ev); s != 0 {
		m.Minutes = EstimateSlider.Clamp(m.Minutes + s*EstimateSlider.Step)
	} else if d := dateKey(ev); d != 0 {
		m.Date = a.shiftDate(m.Date, d)
	}
	a.mode = m
}

// commitEstimateEdit applies the edited estimate and date. A date change
// can move the task between Today and Future.
func (a *App) commitEstimateEdit(m EstimateEdit) {
	a.mode = Normal{}
	list := a.current()
	t, ok := list.At(m.TaskIndex)
	if !ok || a.view == ViewPast {
		return
	}
	t.EstimateMin = m.Minutes
	a.touch()

	date := m.Date.OrToday(a.day)
	switch {
	case a.view == ViewToday && date > a.day:
		a.moveTodayToFuture(m.TaskIndex, date)
	case a.view == ViewFuture && date <= a.day:
		a.bringFromFuture(m.TaskIndex)
	default:
		t.PlannedDate = date
	}
}

func (a *App) keyStartTimeEdit(m StartTimeEdit, ev KeyEvent) {
	switch ev.Code {
	case KeyEnter:
		a.commitStartTime(m)
		return
	case KeyEsc:
		a.mode = Normal{}
		return
	case KeyBackspace, KeyDelete:
		a.mode = Normal{}
		if t, ok := a.today.At(m.TaskIndex); ok {
			t.FixedStartMin = nil
			a.touch()
		}
		return
	}
	if s := stepKey(ev); s != 0 {
		m.Minutes = StartTimeSlider.Clamp(m.Minutes + s*StartTimeSlider.Step)
		a.mode = m
	}
}

func (a *App) commitStartTime(m StartTimeEdit) {
	a.mode = Normal{}
	t, ok := a.today.At(m.TaskIndex)
	if !ok {
		return
	}
	v := StartTimeSlider.Clamp(m.Minutes)
	t.FixedStartMin = &v
	a.touch()
}

func (a *App) keyCommandPalette(m CommandPalette, ev KeyEvent) {
	switch ev.Code {
	case KeyEnter:
		a.mode = Normal{}
		a.RunCommand(string(m.Buffer))
	case KeyEsc:
		a.mode = Normal{}
	default:
		if buf, ok := editBuffer(m.Buffer, ev); ok {
			m.Buffer = buf
			a.mode = m
		}
	}
}

func (a *App) keyCategoryPicker(m CategoryPicker, ev KeyEvent) {
	n := len(model.Categories)
	switch {
	case ev.Code == KeyEnter:
		a.commitCategory(m.TaskIndex, m.Highlighted)
	case ev.Code == KeyEsc:
		a.mode = Normal{}
	case ev.Code == KeyUp, ev.Code == KeyRune && ev.Rune == 'k':
		m.Highlighted = model.Category((int(m.Highlighted) + n - 1) % n)
		a.mode = m
	case ev.Code == KeyDown, ev.Code == KeyRune && ev.Rune == 'j':
		m.Highlighted = model.Category((int(m.Highlighted) + 1) % n)
		a.mode = m
	}
}

func (a *App) commitCategory(i int, c model.Category) {
	a.mode = Normal{}
	t, ok := a.current().At(i)
	if !ok {
		return
	}
	t.Category = c
	a.touch()
}

func (a *App) keyConfirmDelete(m ConfirmDelete, ev KeyEvent) {
	switch {
	case ev.Code == KeyEnter, ev.Code == KeyRune && (ev.Rune == 'y' || ev.Rune == 'Y'):
		a.mode = Normal{}
		a.deleteToday(m.TaskIndex)
	case ev.Code == KeyEsc, ev.Code == KeyRune && (ev.Rune == 'n' || ev.Rune == 'N'):
		a.mode = Normal{}
	}
}
