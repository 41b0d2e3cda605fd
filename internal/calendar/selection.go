package calendar

import (
	"time"

	cerrors "cloudeng.io/errors"
)

type outcome struct {
	selected   bool
	toggledOff bool
	unselected []time.Time
	complete   bool
}

// Click applies a user click on date. It returns true when date is selected
// afterwards. Rejected clicks leave the state untouched.
func (p *Picker) Click(date time.Time) bool {
	if p.displayOnly || !p.initialized() {
		return false
	}
	d := Midnight(date, p.loc)
	if p.listener.InterceptClick(d) {
		p.log.Debug("calendar click intercepted", "date", d.Format(time.DateOnly))
		return false
	}
	if !p.gate().Allows(d) {
		p.log.Debug("calendar click rejected", "date", d.Format(time.DateOnly))
		p.listener.InvalidDateSelected(d)
		return false
	}
	c, _, ok := p.currentCell(d)
	if !ok {
		return false
	}
	out := p.transition(d, c)
	for _, u := range out.unselected {
		p.listener.DateUnselected(u)
	}
	switch {
	case out.selected:
		p.listener.DateSelected(d)
	case out.toggledOff:
		p.listener.DateUnselected(d)
	}
	if out.complete {
		p.listener.RangeSelected(p.selectedDates[0], p.selectedDates[1])
	}
	p.log.Debug("calendar click",
		"date", d.Format(time.DateOnly),
		"mode", p.mode.String(),
		"selected", out.selected,
		"count", len(p.selectedDates))
	return out.selected
}

// SelectDate selects date as if clicked, without interception or selection
// callbacks. A date failing the bound or predicate is reported to
// Listener.InvalidDateSelected and false is returned.
func (p *Picker) SelectDate(date time.Time) bool {
	if !p.initialized() {
		return false
	}
	d := Midnight(date, p.loc)
	if !p.gate().Allows(d) {
		p.listener.InvalidDateSelected(d)
		return false
	}
	c, _, ok := p.currentCell(d)
	if !ok {
		return false
	}
	return p.transition(d, c).selected
}

// SelectDates preselects dates. The count must fit the mode and every date
// must lie within the bound; otherwise nothing is selected. In ModeRange the
// dates replace any existing anchors.
func (p *Picker) SelectDates(dates ...time.Time) error {
	if !p.initialized() {
		return configErr("dates", "picker is not initialized")
	}
	switch {
	case p.mode == ModeSingle && len(dates) > 1:
		return configErr("dates", "single mode accepts one date, got %d", len(dates))
	case p.mode == ModeRange && len(dates) > 2:
		return configErr("dates", "range mode accepts at most two dates, got %d", len(dates))
	}
	var errs cerrors.M
	for _, t := range dates {
		if d := Midnight(t, p.loc); !InBounds(d, p.min, p.max) {
			errs.Append(p.outOfBounds("dates", d))
		}
	}
	if err := errs.Err(); err != nil {
		return err
	}
	if p.mode == ModeRange && len(dates) > 0 {
		p.ClearSelection()
	}
	for _, t := range dates {
		if p.mode == ModeMultiple && p.selectedIndex(t) >= 0 {
			continue
		}
		p.SelectDate(t)
	}
	return nil
}

// HighlightDates marks dates as highlighted independently of selection.
// Dates outside the bound are skipped and reported together; the predicate
// is not consulted.
func (p *Picker) HighlightDates(dates ...time.Time) error {
	if !p.initialized() {
		return configErr("highlight", "picker is not initialized")
	}
	var errs cerrors.M
	seen := daySet(p.highlightedDates, p.loc)
	for _, t := range dates {
		d := Midnight(t, p.loc)
		if !InBounds(d, p.min, p.max) {
			errs.Append(p.outOfBounds("highlight", d))
			continue
		}
		k := dayKey(d, p.loc)
		if seen[k] {
			continue
		}
		c, _, ok := p.currentCell(d)
		if !ok {
			continue
		}
		seen[k] = true
		p.highlightedDates = append(p.highlightedDates, d)
		p.highlightedCells = append(p.highlightedCells, c)
	}
	p.stale = true
	return errs.Err()
}

func (p *Picker) ClearSelection() {
	p.clearSelection()
	p.stale = true
}

func (p *Picker) ClearHighlights() {
	p.highlightedDates = nil
	p.highlightedCells = nil
	p.stale = true
}

func (p *Picker) outOfBounds(field string, d time.Time) error {
	return configErr(field, "%s is outside [%s, %s)", d.Format(time.DateOnly),
		p.min.Format(time.DateOnly), p.max.Format(time.DateOnly))
}

func (p *Picker) transition(d time.Time, c *Cell) outcome {
	var out outcome
	p.stale = true
	switch p.mode {
	case ModeSingle:
		out.unselected = append(out.unselected, p.selectedDates...)
		p.clearSelection()
		p.add(d, c)
		out.selected = true
	case ModeMultiple:
		if i := p.selectedIndex(d); i >= 0 {
			p.remove(i)
			out.toggledOff = true
			return out
		}
		p.add(d, c)
		out.selected = true
	case ModeRange:
		if len(p.selectedDates) == 2 {
			if p.selectingNext {
				if !SameDay(p.selectedDates[0], p.selectedDates[1], p.loc) {
					out.unselected = append(out.unselected, p.selectedDates[1])
				}
				p.remove(1)
			} else {
				out.unselected = p.endpoints()
				p.clearSelection()
			}
		}
		p.add(d, c)
		if len(p.selectedDates) == 2 {
			if p.selectedDates[1].Before(p.selectedDates[0]) {
				p.selectedDates[0], p.selectedDates[1] = p.selectedDates[1], p.selectedDates[0]
				p.selectedCells[0], p.selectedCells[1] = p.selectedCells[1], p.selectedCells[0]
			}
			out.complete = true
		}
		out.selected = true
	}
	return out
}

func (p *Picker) add(d time.Time, c *Cell) {
	p.selectedDates = append(p.selectedDates, d)
	p.selectedCells = append(p.selectedCells, c)
}

func (p *Picker) remove(i int) {
	p.selectedDates = append(p.selectedDates[:i], p.selectedDates[i+1:]...)
	p.selectedCells = append(p.selectedCells[:i], p.selectedCells[i+1:]...)
}

func (p *Picker) clearSelection() {
	p.selectedDates = nil
	p.selectedCells = nil
	p.rangeCells = nil
}

func (p *Picker) selectedIndex(t time.Time) int {
	for i, d := range p.selectedDates {
		if SameDay(d, t, p.loc) {
			return i
		}
	}
	return -1
}

// endpoints returns the distinct range endpoints.
func (p *Picker) endpoints() []time.Time {
	switch len(p.selectedDates) {
	case 0:
		return nil
	case 1:
		return []time.Time{p.selectedDates[0]}
	}
	if SameDay(p.selectedDates[0], p.selectedDates[1], p.loc) {
		return []time.Time{p.selectedDates[0]}
	}
	return []time.Time{p.selectedDates[0], p.selectedDates[1]}
}
