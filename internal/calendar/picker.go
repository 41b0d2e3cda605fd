package calendar

import (
	"log/slog"
	"time"

	cerrors "cloudeng.io/errors"
)

// Picker builds the month grids for a date bound and tracks selection and
// highlight state over them. It is not safe for concurrent use.
type Picker struct {
	loc    *time.Location
	locale Locale
	min    time.Time
	max    time.Time

	now        func() time.Time
	log        *slog.Logger
	listener   Listener
	selectable SelectableFunc

	mode          Mode
	selectingNext bool
	displayOnly   bool
	reverse       bool
	titles        []string

	months []MonthDescriptor
	grids  Index[MonthKey, MonthGrid]

	// selectedDates and selectedCells are index aligned. In ModeRange they
	// hold the endpoints in calendar order.
	selectedDates []time.Time
	selectedCells []*Cell
	rangeCells    []*Cell

	highlightedDates []time.Time
	highlightedCells []*Cell

	stale bool
}

type Option func(*Picker)

// WithSelectableFunc installs a predicate consulted after the bound check.
func WithSelectableFunc(fn SelectableFunc) Option {
	return func(p *Picker) { p.selectable = fn }
}

func WithListener(l Listener) Option {
	return func(p *Picker) {
		if l != nil {
			p.listener = l
		}
	}
}

// WithClock overrides time.Now for the today flag and scroll target.
func WithClock(now func() time.Time) Option {
	return func(p *Picker) {
		if now != nil {
			p.now = now
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(p *Picker) {
		if l != nil {
			p.log = l
		}
	}
}

// WithMonthsReverseOrder lists the latest month first.
func WithMonthsReverseOrder(reverse bool) Option {
	return func(p *Picker) { p.reverse = reverse }
}

// WithDisplayOnly makes Click ignore every date.
func WithDisplayOnly(displayOnly bool) Option {
	return func(p *Picker) { p.displayOnly = displayOnly }
}

func New(opts ...Option) *Picker {
	p := &Picker{
		now:      time.Now,
		log:      slog.New(slog.DiscardHandler),
		listener: nopListener{},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Init validates the bound, rebuilds every month grid and resets the
// picker to ModeSingle with no selection or highlights. maxDate is exclusive.
func (p *Picker) Init(minDate, maxDate time.Time, loc *time.Location, locale Locale) ([]MonthDescriptor, error) {
	var errs cerrors.M
	if minDate.IsZero() {
		errs.Append(configErr("min", "minimum date is required"))
	}
	if maxDate.IsZero() {
		errs.Append(configErr("max", "maximum date is required"))
	}
	if loc == nil {
		errs.Append(configErr("location", "time zone is required"))
	}
	if locale.IsZero() {
		errs.Append(configErr("locale", "locale is required"))
	}
	if !minDate.IsZero() && !maxDate.IsZero() && loc != nil {
		lo, hi := Midnight(minDate, loc), Midnight(maxDate, loc)
		if !lo.Before(hi) {
			errs.Append(configErr("max", "%s must be after min %s",
				hi.Format(time.DateOnly), lo.Format(time.DateOnly)))
		}
	}
	if err := errs.Err(); err != nil {
		return nil, err
	}

	p.loc = loc
	p.locale = locale
	p.min = Midnight(minDate, loc)
	p.max = Midnight(maxDate, loc)
	p.mode = ModeSingle
	p.titles = nil
	p.clearSelection()
	p.highlightedDates = nil
	p.highlightedCells = nil

	p.months = p.months[:0]
	p.grids.Clear()
	for _, first := range monthStarts(p.min, p.max, loc) {
		md := MonthDescriptor{
			Month:    first.Month(),
			Year:     first.Year(),
			FirstDay: first,
			Label:    locale.MonthLabel(first),
		}
		p.months = append(p.months, md)
		p.grids.Put(md.Key(), buildGrid(first, locale.FirstDayOfWeek(), loc))
	}
	p.stale = true

	p.log.Debug("calendar init",
		"min", p.min.Format(time.DateOnly),
		"max", p.max.Format(time.DateOnly),
		"months", len(p.months),
		"locale", locale.String(),
		"location", loc.String())
	return p.Months(), nil
}

func (p *Picker) initialized() bool {
	return p.loc != nil
}

// SetMode switches the selection discipline. Changing modes clears the
// selection; highlights are kept.
func (p *Picker) SetMode(m Mode) {
	if m == p.mode {
		return
	}
	p.mode = m
	p.clearSelection()
	p.stale = true
}

func (p *Picker) Mode() Mode { return p.mode }

// SetSelectingNext makes a click on a complete range keep its start and
// move the end instead of starting over.
func (p *Picker) SetSelectingNext(on bool) { p.selectingNext = on }

func (p *Picker) SelectingNext() bool { return p.selectingNext }

func (p *Picker) DisplayOnly() bool { return p.displayOnly }

// SetSelectableFunc swaps the predicate. Selected dates the new rule rejects
// are dropped and reported through Listener.DateUnselected; cell flags
// follow on the next read.
func (p *Picker) SetSelectableFunc(fn SelectableFunc) {
	p.selectable = fn
	p.stale = true
	p.dropUnselectable()
}

// SetMonthTitles overrides the locale month labels, in chronological month
// order. An empty slice restores the locale labels.
func (p *Picker) SetMonthTitles(titles []string) error {
	if len(titles) > 0 && len(titles) != len(p.months) {
		return configErr("month_titles", "got %d titles for %d months", len(titles), len(p.months))
	}
	p.titles = append([]string(nil), titles...)
	for i := range p.months {
		if len(p.titles) > 0 {
			p.months[i].Label = p.titles[i]
			continue
		}
		p.months[i].Label = p.locale.MonthLabel(p.months[i].FirstDay)
	}
	return nil
}

// Refresh re-applies the predicate to the selection and recomputes every
// cell flag now.
func (p *Picker) Refresh() {
	p.dropUnselectable()
	p.refresh()
}

// dropUnselectable removes selected dates the gate no longer allows.
func (p *Picker) dropUnselectable() {
	if !p.initialized() {
		return
	}
	g := p.gate()
	var dropped []time.Time
	for i := len(p.selectedDates) - 1; i >= 0; i-- {
		d := p.selectedDates[i]
		if g.Allows(d) {
			continue
		}
		p.remove(i)
		if len(dropped) == 0 || !SameDay(dropped[len(dropped)-1], d, p.loc) {
			dropped = append(dropped, d)
		}
	}
	if len(dropped) == 0 {
		return
	}
	p.stale = true
	for i := len(dropped) - 1; i >= 0; i-- {
		p.log.Debug("calendar selection dropped", "date", dropped[i].Format(time.DateOnly))
		p.listener.DateUnselected(dropped[i])
	}
}

func (p *Picker) gate() Gate {
	return Gate{Min: p.min, Max: p.max, Selectable: p.selectable}
}

func (p *Picker) ensureFresh() {
	if p.stale {
		p.refresh()
	}
}

func (p *Picker) refresh() {
	st := flagState{
		loc:         p.loc,
		gate:        p.gate(),
		today:       p.now(),
		selected:    daySet(p.selectedDates, p.loc),
		highlighted: daySet(p.highlightedDates, p.loc),
	}
	if p.mode == ModeRange && len(p.selectedDates) == 2 && !SameDay(p.selectedDates[0], p.selectedDates[1], p.loc) {
		st.ranged = true
		st.rangeStart = p.selectedDates[0]
		st.rangeEnd = p.selectedDates[1]
	}
	p.rangeCells = p.rangeCells[:0]
	for i := 0; i < p.grids.Len(); i++ {
		for _, week := range p.grids.At(i) {
			for _, c := range week {
				if st.apply(c) {
					p.rangeCells = append(p.rangeCells, c)
				}
			}
		}
	}
	p.stale = false
}

func daySet(dates []time.Time, loc *time.Location) map[string]bool {
	out := make(map[string]bool, len(dates))
	for _, d := range dates {
		out[dayKey(d, loc)] = true
	}
	return out
}

// displayIndex converts between chronological and display positions. The
// mapping is its own inverse.
func (p *Picker) displayIndex(i int) int {
	if p.reverse {
		return len(p.months) - 1 - i
	}
	return i
}

// currentCell returns the current-month cell for date's day and its
// chronological month position.
func (p *Picker) currentCell(date time.Time) (*Cell, int, bool) {
	if !p.initialized() {
		return nil, -1, false
	}
	d := Midnight(date, p.loc)
	key := KeyOf(d, p.loc)
	grid, ok := p.grids.Get(key)
	if !ok {
		return nil, -1, false
	}
	for _, week := range grid {
		for _, c := range week {
			if c.currentMonth && SameDay(c.date, d, p.loc) {
				return c, p.grids.IndexOf(key), true
			}
		}
	}
	return nil, -1, false
}
