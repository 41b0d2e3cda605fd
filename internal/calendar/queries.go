package calendar

import (
	"slices"
	"time"
)

// Range is a RANGE-mode selection. End is zero while only the start is set.
type Range struct {
	Start time.Time
	End   time.Time
}

func (r Range) IsZero() bool { return r.Start.IsZero() }

// Complete reports whether both endpoints are set.
func (r Range) Complete() bool { return !r.Start.IsZero() && !r.End.IsZero() }

// CellRef locates a cell within the display-ordered month list.
type CellRef struct {
	Cell  *Cell
	Month int
}

// Months returns the month descriptors in display order.
func (p *Picker) Months() []MonthDescriptor {
	out := make([]MonthDescriptor, len(p.months))
	for i, md := range p.months {
		out[p.displayIndex(i)] = md
	}
	return out
}

// MonthGrid returns the grid at display position i with fresh flags. The
// cells are shared with later reads.
func (p *Picker) MonthGrid(i int) (MonthGrid, bool) {
	if i < 0 || i >= len(p.months) {
		return nil, false
	}
	p.ensureFresh()
	return p.grids.At(p.displayIndex(i)), true
}

// SelectedDate returns the first selected date in selection order.
func (p *Picker) SelectedDate() (time.Time, bool) {
	if len(p.selectedDates) == 0 {
		return time.Time{}, false
	}
	return p.selectedDates[0], true
}

// SelectedDates returns every selected day in ascending order, including
// the days painted between range endpoints.
func (p *Picker) SelectedDates() []time.Time {
	p.ensureFresh()
	seen := make(map[string]bool, len(p.selectedDates)+len(p.rangeCells))
	var out []time.Time
	collect := func(d time.Time) {
		k := dayKey(d, p.loc)
		if !seen[k] {
			seen[k] = true
			out = append(out, d)
		}
	}
	for _, d := range p.selectedDates {
		collect(d)
	}
	for _, c := range p.rangeCells {
		collect(c.date)
	}
	slices.SortFunc(out, func(a, b time.Time) int { return a.Compare(b) })
	return out
}

// HighlightedDates returns the highlighted days in ascending order.
func (p *Picker) HighlightedDates() []time.Time {
	out := slices.Clone(p.highlightedDates)
	slices.SortFunc(out, func(a, b time.Time) int { return a.Compare(b) })
	return out
}

// SelectedRange returns the range endpoints in ModeRange and a zero Range
// otherwise.
func (p *Picker) SelectedRange() Range {
	if p.mode != ModeRange || len(p.selectedDates) == 0 {
		return Range{}
	}
	r := Range{Start: p.selectedDates[0]}
	if len(p.selectedDates) == 2 {
		r.End = p.selectedDates[1]
	}
	return r
}

// FindCell returns the current-month cell for date's day with fresh flags.
func (p *Picker) FindCell(date time.Time) (CellRef, bool) {
	p.ensureFresh()
	c, i, ok := p.currentCell(date)
	if !ok {
		return CellRef{}, false
	}
	return CellRef{Cell: c, Month: p.displayIndex(i)}, true
}

// MonthIndexOf returns the display position of the month containing date.
func (p *Picker) MonthIndexOf(date time.Time) (int, bool) {
	if !p.initialized() {
		return -1, false
	}
	i := p.grids.IndexOf(KeyOf(date, p.loc))
	if i < 0 {
		return -1, false
	}
	return p.displayIndex(i), true
}

// ScrollTarget returns the first month in display order holding a selected
// date, falling back to the month containing today.
func (p *Picker) ScrollTarget() (int, bool) {
	if !p.initialized() {
		return -1, false
	}
	months := p.Months()
	for i, md := range months {
		for _, d := range p.selectedDates {
			if SameMonth(d, md.Key(), p.loc) {
				return i, true
			}
		}
	}
	return p.MonthIndexOf(p.now())
}

// Bounds returns the normalized [min, max) bound set by Init.
func (p *Picker) Bounds() (minDate, maxDate time.Time) {
	return p.min, p.max
}

func (p *Picker) Location() *time.Location { return p.loc }

func (p *Picker) Locale() Locale { return p.locale }
