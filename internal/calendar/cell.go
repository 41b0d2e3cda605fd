package calendar

import (
	"fmt"
	"time"
)

// RangeState is the position of a cell within a two-endpoint RANGE selection.
type RangeState int

const (
	RangeNone RangeState = iota
	RangeFirst
	RangeMiddle
	RangeLast
)

func (r RangeState) String() string {
	switch r {
	case RangeFirst:
		return "first"
	case RangeMiddle:
		return "middle"
	case RangeLast:
		return "last"
	default:
		return "none"
	}
}

// Cell is one day in a month grid. Only the Picker that built a cell mutates
// it; renderers read it and may compare pointers across reads.
type Cell struct {
	date         time.Time
	currentMonth bool
	selectable   bool
	selected     bool
	today        bool
	highlighted  bool
	value        int
	rangeState   RangeState
}

func (c *Cell) Date() time.Time { return c.date }

// IsCurrentMonth is false for lead/trail days borrowed from adjacent months.
func (c *Cell) IsCurrentMonth() bool { return c.currentMonth }

func (c *Cell) IsSelectable() bool { return c.selectable }

func (c *Cell) IsSelected() bool { return c.selected }

func (c *Cell) IsToday() bool { return c.today }

func (c *Cell) IsHighlighted() bool { return c.highlighted }

func (c *Cell) Value() int { return c.value }

func (c *Cell) RangeState() RangeState { return c.rangeState }

func (c *Cell) String() string {
	return fmt.Sprintf("Cell{%s current=%t selectable=%t selected=%t today=%t highlighted=%t range=%s}",
		c.date.Format(time.DateOnly), c.currentMonth, c.selectable, c.selected, c.today, c.highlighted, c.rangeState)
}

// Week is one grid row, starting on the locale's first day of week.
type Week [7]*Cell

// MonthGrid is the ordered list of week rows for one month.
type MonthGrid []Week

// Cells returns the grid's cells in row-major order.
func (g MonthGrid) Cells() []*Cell {
	out := make([]*Cell, 0, len(g)*7)
	for _, week := range g {
		out = append(out, week[:]...)
	}
	return out
}
