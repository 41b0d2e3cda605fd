package calendar

import (
	"fmt"
	"time"
)

// MonthKey identifies one month grid.
type MonthKey struct {
	Year  int
	Month time.Month
}

func (k MonthKey) String() string {
	return fmt.Sprintf("%d-%d", k.Year, int(k.Month))
}

// KeyOf returns the month key of t as seen in loc.
func KeyOf(t time.Time, loc *time.Location) MonthKey {
	y, m, _ := t.In(loc).Date()
	return MonthKey{Year: y, Month: m}
}

// Midnight truncates t to the start of its day in loc.
func Midnight(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// SameDay reports whether a and b fall on the same calendar day in loc.
func SameDay(a, b time.Time, loc *time.Location) bool {
	if loc == nil {
		loc = time.UTC
	}
	ay, am, ad := a.In(loc).Date()
	by, bm, bd := b.In(loc).Date()
	return ay == by && am == bm && ad == bd
}

// SameMonth reports whether t falls within the month identified by key.
func SameMonth(t time.Time, key MonthKey, loc *time.Location) bool {
	return KeyOf(t, loc) == key
}

// InBounds reports lo <= date < hi. The upper bound is exclusive.
func InBounds(date, lo, hi time.Time) bool {
	return !date.Before(lo) && date.Before(hi)
}

// MinOf returns the earliest instant in dates.
func MinOf(dates []time.Time) (time.Time, bool) {
	if len(dates) == 0 {
		return time.Time{}, false
	}
	out := dates[0]
	for _, d := range dates[1:] {
		if d.Before(out) {
			out = d
		}
	}
	return out, true
}

// MaxOf returns the latest instant in dates.
func MaxOf(dates []time.Time) (time.Time, bool) {
	if len(dates) == 0 {
		return time.Time{}, false
	}
	out := dates[0]
	for _, d := range dates[1:] {
		if d.After(out) {
			out = d
		}
	}
	return out, true
}

func dayKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(time.DateOnly)
}

func containsDay(dates []time.Time, t time.Time, loc *time.Location) bool {
	for _, d := range dates {
		if SameDay(d, t, loc) {
			return true
		}
	}
	return false
}
