package schedule

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrInvalidTime = errors.New("invalid time of day")

// FormatHHMM renders a minute-of-day as HH:MM. Values past midnight wrap.
func FormatHHMM(min int) string {
	min = ((min % MinutesPerDay) + MinutesPerDay) % MinutesPerDay
	return fmt.Sprintf("%02d:%02d", min/60, min%60)
}

// FormatMinSec renders a duration in seconds as "Xm Ys".
func FormatMinSec(sec int) string {
	if sec < 0 {
		sec = 0
	}
	return fmt.Sprintf("%dm %ds", sec/60, sec%60)
}

// ParseHHMM parses "HH:MM" or the compact forms "HMM" and "HHMM" into a minute-of-day.
func ParseHHMM(s string) (int, error) {
	s = strings.TrimSpace(s)
	var hs, ms string
	if h, m, ok := strings.Cut(s, ":"); ok {
		hs, ms = h, m
	} else {
		if len(s) != 3 && len(s) != 4 {
			return 0, fmt.Errorf("%w: %q", ErrInvalidTime, s)
		}
		hs, ms = s[:len(s)-2], s[len(s)-2:]
	}
	if hs == "" || len(ms) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}
	h, err := strconv.Atoi(hs)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}
	m, err := strconv.Atoi(ms)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}
	return h*60 + m, nil
}
