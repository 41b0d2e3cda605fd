package calendar

import "time"

// buildGrid lays out the weeks for the month starting at first. Flags other
// than isCurrentMonth are left for the flag pass.
func buildGrid(first time.Time, weekStart time.Weekday, loc *time.Location) MonthGrid {
	target := KeyOf(first, loc)
	offset := int(weekStart) - int(first.Weekday())
	if offset > 0 {
		offset -= 7
	}
	cursor := Midnight(first.AddDate(0, 0, offset), loc)

	var grid MonthGrid
	for notPast(cursor, target) {
		var week Week
		for i := range week {
			y, m, d := cursor.Date()
			week[i] = &Cell{
				date:         cursor,
				currentMonth: y == target.Year && m == target.Month,
				value:        d,
			}
			cursor = Midnight(cursor.AddDate(0, 0, 1), loc)
		}
		grid = append(grid, week)
	}
	return grid
}

func notPast(t time.Time, target MonthKey) bool {
	y, m, _ := t.Date()
	return y < target.Year || (y == target.Year && m <= target.Month)
}

// flagState is a read-only snapshot of everything the flag pass depends on.
type flagState struct {
	loc         *time.Location
	gate        Gate
	today       time.Time
	selected    map[string]bool
	highlighted map[string]bool
	ranged      bool
	rangeStart  time.Time
	rangeEnd    time.Time
}

// apply recomputes every flag of c and reports whether c was painted as a
// range middle.
func (s *flagState) apply(c *Cell) bool {
	key := dayKey(c.date, s.loc)
	c.selectable = c.currentMonth && s.gate.Allows(c.date)
	c.selected = c.currentMonth && s.selected[key]
	c.today = SameDay(c.date, s.today, s.loc)
	c.highlighted = s.highlighted[key]
	c.rangeState = RangeNone
	if !s.ranged || !c.currentMonth {
		return false
	}
	switch {
	case SameDay(c.date, s.rangeStart, s.loc):
		c.rangeState = RangeFirst
	case SameDay(c.date, s.rangeEnd, s.loc):
		c.rangeState = RangeLast
	case c.selectable && c.date.After(s.rangeStart) && c.date.Before(s.rangeEnd):
		c.selected = true
		c.rangeState = RangeMiddle
		return true
	}
	return false
}
