package calendar

import (
	"time"

	"cloudeng.io/datetime"
)

// SelectableFunc decides whether an in-bounds date may be selected. It is
// called for every current-month cell on every flag pass and its results
// are never cached.
type SelectableFunc func(date time.Time) bool

// Gate combines the static [Min, Max) bound with an optional predicate.
type Gate struct {
	Min, Max   time.Time
	Selectable SelectableFunc
}

func (g Gate) InBounds(date time.Time) bool {
	return InBounds(date, g.Min, g.Max)
}

// Allows reports whether date passes both the bound and the predicate.
func (g Gate) Allows(date time.Time) bool {
	if !g.InBounds(date) {
		return false
	}
	return g.Selectable == nil || g.Selectable(date)
}

// AllOf returns a predicate accepting a date only when every non-nil fn does.
func AllOf(fns ...SelectableFunc) SelectableFunc {
	var active []SelectableFunc
	for _, fn := range fns {
		if fn != nil {
			active = append(active, fn)
		}
	}
	switch len(active) {
	case 0:
		return nil
	case 1:
		return active[0]
	}
	return func(date time.Time) bool {
		for _, fn := range active {
			if !fn(date) {
				return false
			}
		}
		return true
	}
}

// ExcludeDays returns a predicate rejecting the calendar days of dates as
// seen in loc.
func ExcludeDays(loc *time.Location, dates ...time.Time) SelectableFunc {
	if loc == nil {
		loc = time.UTC
	}
	blocked := make(map[string]bool, len(dates))
	for _, d := range dates {
		blocked[dayKey(d, loc)] = true
	}
	return func(date time.Time) bool {
		return !blocked[dayKey(date, loc)]
	}
}

// FromConstraints adapts weekday/weekend and recurring-date constraints.
func FromConstraints(dc datetime.Constraints) SelectableFunc {
	return dc.Include
}
