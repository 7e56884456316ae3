package app

import (
	"strconv"
	"strings"

	"chute-cli/internal/schedule"
)

// RunCommand executes one command-palette line:
//
//	est +15m | est -5 | est 90m   change the selected task's estimate
//	at 13:30 | at -               set or clear the selected task's fixed start
//	base 0830 | base 8:30         move the day-start baseline
//
// Unknown verbs and malformed arguments do nothing.
func (a *App) RunCommand(line string) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return
	}
	verb, arg := fields[0], fields[1]
	switch verb {
	case "est":
		a.commandEstimate(arg)
	case "at":
		a.commandAt(arg)
	case "base":
		a.commandBase(arg)
	}
}

func parseMinutes(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSuffix(s, "m"))
	if err != nil {
		return 0, false
	}
	return n, true
}

func (a *App) commandEstimate(arg string) {
	if a.view == ViewPast {
		return
	}
	list := a.current()
	t, ok := list.At(a.selected)
	if !ok {
		return
	}
	if strings.HasPrefix(arg, "+") || strings.HasPrefix(arg, "-") {
		n, ok := parseMinutes(arg[1:])
		if !ok || n < 0 {
			return
		}
		if arg[0] == '-' {
			n = -n
		}
		list.AdjustEstimate(a.selected, n)
		a.touch()
		return
	}
	n, ok := parseMinutes(arg)
	if !ok || n < 0 {
		return
	}
	t.EstimateMin = n
	a.touch()
}

func (a *App) commandAt(arg string) {
	if a.view != ViewToday {
		return
	}
	t, ok := a.today.At(a.selected)
	if !ok {
		return
	}
	if arg == "-" {
		t.FixedStartMin = nil
		a.touch()
		return
	}
	m, err := schedule.ParseHHMM(arg)
	if err != nil {
		return
	}
	t.FixedStartMin = &m
	a.touch()
}

func (a *App) commandBase(arg string) {
	m, err := schedule.ParseHHMM(arg)
	if err != nil {
		return
	}
	a.dayStart = m
	a.effects = append(a.effects, EffectPersistDayStart{Minutes: m})
}
