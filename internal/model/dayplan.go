package model

// DayPlan is an ordered list of tasks with at most one active task.
//
// The active index always points at the single task in StateActive; every
// structural mutation below keeps it pointing at the same logical task (or
// clears it when that task leaves the list). Index arguments that are out of
// range make the operation a no-op.
type DayPlan struct {
	tasks  []Task
	active int
}

// NewDayPlan adopts tasks. The first Active task becomes the active one; any
// further Active tasks are demoted to Paused.
func NewDayPlan(tasks []Task) *DayPlan {
	p := &DayPlan{tasks: tasks, active: -1}
	for i := range p.tasks {
		if p.tasks[i].State != StateActive {
			continue
		}
		if p.active < 0 {
			p.active = i
			continue
		}
		p.tasks[i].State = StatePaused
	}
	return p
}

func (p *DayPlan) Len() int { return len(p.tasks) }

// Tasks returns the backing slice. Callers must not change task state through it.
func (p *DayPlan) Tasks() []Task { return p.tasks }

// At returns a pointer for editing non-state fields (title, estimate, category, fixed start).
func (p *DayPlan) At(i int) (*Task, bool) {
	if !p.valid(i) {
		return nil, false
	}
	return &p.tasks[i], true
}

func (p *DayPlan) ActiveIndex() (int, bool) {
	if p.active < 0 {
		return 0, false
	}
	return p.active, true
}

func (p *DayPlan) ActiveTask() (*Task, bool) {
	if p.active < 0 {
		return nil, false
	}
	return &p.tasks[p.active], true
}

func (p *DayPlan) valid(i int) bool { return i >= 0 && i < len(p.tasks) }

// Add appends t and returns its index. The active task is untouched.
func (p *DayPlan) Add(t Task) int {
	if t.State == StateActive {
		t.State = StatePaused
	}
	p.tasks = append(p.tasks, t)
	return len(p.tasks) - 1
}

// Start makes task i the active one, pausing whichever task was active before.
func (p *DayPlan) Start(i int) {
	if !p.valid(i) || i == p.active || p.tasks[i].State == StateDone {
		return
	}
	if p.active >= 0 {
		p.tasks[p.active].State = StatePaused
	}
	p.tasks[i].State = StateActive
	p.active = i
}

func (p *DayPlan) PauseActive() {
	if p.active < 0 {
		return
	}
	p.tasks[p.active].State = StatePaused
	p.active = -1
}

// FinishAt marks task i Done on doneDate.
func (p *DayPlan) FinishAt(i int, doneDate Date) {
	if !p.valid(i) {
		return
	}
	p.tasks[i].State = StateDone
	d := doneDate
	p.tasks[i].DoneDate = &d
	if p.active == i {
		p.active = -1
	}
}

func (p *DayPlan) AddActualToActive(minutes int) {
	if p.active < 0 {
		return
	}
	p.tasks[p.active].ActualMin += minutes
}

// RemainingTotalMinutes sums what is left of every unfinished estimate.
func (p *DayPlan) RemainingTotalMinutes() int {
	total := 0
	for _, t := range p.tasks {
		total += t.RemainingMin()
	}
	return total
}

// ESD is the estimated finish of the day in minutes since midnight.
//
// The baseline is the later of now and the most recent moment any work ended;
// every unfinished task then adds its full estimate, including time already
// spent on it.
func (p *DayPlan) ESD(now int) int {
	base := now
	for _, t := range p.tasks {
		if t.FinishedAtMin != nil && *t.FinishedAtMin > base {
			base = *t.FinishedAtMin
		}
		for _, s := range t.Sessions {
			if s.EndMin != nil && *s.EndMin > base {
				base = *s.EndMin
			}
		}
	}
	for _, t := range p.tasks {
		if t.State != StateDone {
			base += t.EstimateMin
		}
	}
	return base
}

// ReorderUp swaps task i with its predecessor and returns its new index.
func (p *DayPlan) ReorderUp(i int) int {
	if !p.valid(i) || i == 0 {
		return i
	}
	p.swap(i, i-1)
	return i - 1
}

// ReorderDown swaps task i with its successor and returns its new index.
func (p *DayPlan) ReorderDown(i int) int {
	if !p.valid(i) || i == len(p.tasks)-1 {
		return i
	}
	p.swap(i, i+1)
	return i + 1
}

func (p *DayPlan) swap(a, b int) {
	p.tasks[a], p.tasks[b] = p.tasks[b], p.tasks[a]
	switch p.active {
	case a:
		p.active = b
	case b:
		p.active = a
	}
}

// MoveIndex moves task from so that it ends up at index to of the resulting
// list (to is clamped to the last index). It returns the final index.
//
//	[A B C D]  MoveIndex(1, 3) -> [A C D B]
//	[A B C D]  MoveIndex(2, 0) -> [C A B D]
func (p *DayPlan) MoveIndex(from, to int) int {
	if !p.valid(from) {
		return from
	}
	if to < 0 {
		to = 0
	}
	if to > len(p.tasks)-1 {
		to = len(p.tasks) - 1
	}
	if from == to {
		return to
	}
	t := p.tasks[from]
	if from < to {
		copy(p.tasks[from:to], p.tasks[from+1:to+1])
	} else {
		copy(p.tasks[to+1:from+1], p.tasks[to:from])
	}
	p.tasks[to] = t

	switch {
	case p.active == from:
		p.active = to
	case from < to && p.active > from && p.active <= to:
		p.active--
	case to < from && p.active >= to && p.active < from:
		p.active++
	}
	return to
}

func (p *DayPlan) AdjustEstimate(i, delta int) {
	if !p.valid(i) {
		return
	}
	p.tasks[i].EstimateMin = max(0, p.tasks[i].EstimateMin+delta)
}

// Remove deletes task i and returns it.
func (p *DayPlan) Remove(i int) (Task, bool) {
	if !p.valid(i) {
		return Task{}, false
	}
	t := p.tasks[i]
	p.tasks = append(p.tasks[:i], p.tasks[i+1:]...)
	switch {
	case p.active == i:
		p.active = -1
	case p.active > i:
		p.active--
	}
	return t, true
}

// SweepDoneBefore removes Done tasks whose done date is before day and
// returns them in list order.
func (p *DayPlan) SweepDoneBefore(day Date) []Task {
	var swept []Task
	for i := 0; i < len(p.tasks); {
		t := p.tasks[i]
		if t.State == StateDone && t.DoneDate != nil && t.DoneDate.Before(day) {
			p.Remove(i)
			swept = append(swept, t)
			continue
		}
		i++
	}
	return swept
}
