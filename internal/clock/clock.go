// Package clock supplies the wall-clock readings the planner depends on.
package clock

import (
	"log/slog"
	"os"
	"strings"
	"time"

	"chute-cli/internal/model"
)

// EnvToday pins "today" to a fixed date (YYYY-MM-DD or YYYYMMDD). Used by
// tests and demos.
const EnvToday = "CHUTE_TODAY"

type Clock interface {
	// NowMinutes is the local minute of the day, 0..1439.
	NowMinutes() int
	Today() model.Date
}

type System struct{}

func (System) NowMinutes() int {
	now := time.Now()
	return now.Hour()*60 + now.Minute()
}

func (System) Today() model.Date {
	if d, ok := TodayOverride(); ok {
		return d
	}
	return model.DateOf(time.Now())
}

// TodayOverride reads EnvToday. Unparseable values are ignored.
func TodayOverride() (model.Date, bool) {
	v := strings.TrimSpace(os.Getenv(EnvToday))
	if v == "" {
		return 0, false
	}
	d, err := model.ParseDate(v)
	if err != nil {
		slog.Warn("ignoring invalid today override", "env", EnvToday, "value", v, "err", err)
		return 0, false
	}
	return d, true
}

// Fixed is a manually driven clock.
type Fixed struct {
	Minutes int
	Day     model.Date
}

func (f *Fixed) NowMinutes() int   { return f.Minutes }
func (f *Fixed) Today() model.Date { return f.Day }

func (f *Fixed) Advance(minutes int) {
	f.Minutes += minutes
	for f.Minutes >= 24*60 {
		f.Minutes -= 24 * 60
		f.Day = f.Day.AddDays(1)
	}
}
