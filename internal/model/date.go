package model

import (
	"fmt"
	"strings"
	"time"
)

// Date is a calendar day packed as YYYYMMDD. The zero value means "unset".
type Date int

func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date(y*10000 + int(m)*100 + d)
}

func (d Date) IsZero() bool { return d == 0 }

func (d Date) Parts() (year int, month time.Month, day int) {
	v := int(d)
	return v / 10000, time.Month(v / 100 % 100), v % 100
}

func (d Date) Valid() bool {
	if d <= 0 {
		return false
	}
	y, m, dd := d.Parts()
	t := time.Date(y, m, dd, 0, 0, 0, 0, time.UTC)
	return DateOf(t) == d
}

// Time returns midnight of d in loc.
func (d Date) Time(loc *time.Location) time.Time {
	y, m, dd := d.Parts()
	return time.Date(y, m, dd, 0, 0, 0, 0, loc)
}

func (d Date) AddDays(n int) Date {
	return DateOf(d.Time(time.UTC).AddDate(0, 0, n))
}

func (d Date) Before(o Date) bool { return d < o }

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	y, m, dd := d.Parts()
	return fmt.Sprintf("%04d-%02d-%02d", y, int(m), dd)
}

// ParseDate accepts YYYY-MM-DD or YYYYMMDD.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	var layout string
	switch len(s) {
	case len("2006-01-02"):
		layout = "2006-01-02"
	case len("20060102"):
		layout = "20060102"
	default:
		return 0, fmt.Errorf("invalid date %q (want YYYY-MM-DD)", s)
	}
	t, err := time.Parse(layout, s)
	if err != nil {
		return 0, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return DateOf(t), nil
}

// OrToday substitutes today for an unset date.
func (d Date) OrToday(today Date) Date {
	if d.IsZero() {
		return today
	}
	return d
}
