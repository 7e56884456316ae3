// Package schedule holds the pure scheduling math: the estimated finish of the
// day and the projected start of each row.
package schedule

import (
	"chute-cli/internal/model"
)

// MinutesPerDay bounds minute-of-day values.
const MinutesPerDay = 24 * 60

// ESD returns the estimated finish of the day for plan at now.
func ESD(plan *model.DayPlan, now int) int {
	return plan.ESD(now)
}

// PlannedStarts projects a start minute for every task, in order, beginning
// at base. A fixed start only ever pushes the cursor later. Done tasks occupy
// their full estimate; the rest occupy what remains of theirs.
func PlannedStarts(base int, tasks []model.Task) []int {
	out := make([]int, len(tasks))
	cursor := base
	for i, t := range tasks {
		if t.FixedStartMin != nil && *t.FixedStartMin > cursor {
			cursor = *t.FixedStartMin
		}
		out[i] = cursor
		if t.State == model.StateDone {
			cursor += t.EstimateMin
		} else {
			cursor += max(0, t.EstimateMin-t.ActualMin)
		}
	}
	return out
}

// Totals is what the header shows: the sum of estimates and of tracked time.
type Totals struct {
	EstimateSec int
	ActualSec   int
}

func TotalsOf(tasks []model.Task) Totals {
	var tot Totals
	for _, t := range tasks {
		tot.EstimateSec += t.EstimateMin * 60
		tot.ActualSec += t.ActualMin*60 + t.ActualCarrySec
	}
	return tot
}
