package calendar

import (
	"errors"
	"strings"
	"testing"
	"time"

	"cloudeng.io/datetime"
)

var fixedNow = time.Date(2024, time.March, 15, 10, 30, 0, 0, time.UTC)

type recorder struct {
	selected   []time.Time
	unselected []time.Time
	invalid    []time.Time
	ranges     [][2]time.Time
	intercept  func(time.Time) bool
}

func (r *recorder) DateSelected(d time.Time)   { r.selected = append(r.selected, d) }
func (r *recorder) DateUnselected(d time.Time) { r.unselected = append(r.unselected, d) }
func (r *recorder) RangeSelected(s, e time.Time) {
	r.ranges = append(r.ranges, [2]time.Time{s, e})
}
func (r *recorder) InvalidDateSelected(d time.Time) { r.invalid = append(r.invalid, d) }
func (r *recorder) InterceptClick(d time.Time) bool {
	return r.intercept != nil && r.intercept(d)
}

func newPicker(t *testing.T, lo, hi time.Time, opts ...Option) *Picker {
	t.Helper()
	opts = append([]Option{WithClock(func() time.Time { return fixedNow })}, opts...)
	p := New(opts...)
	if _, err := p.Init(lo, hi, time.UTC, MustParseLocale("en-US")); err != nil {
		t.Fatalf("init: %v", err)
	}
	return p
}

func yearPicker(t *testing.T, opts ...Option) *Picker {
	t.Helper()
	return newPicker(t, day(2024, 1, 1), day(2025, 1, 1), opts...)
}

func assertDates(t *testing.T, got []time.Time, want ...time.Time) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("dates = %v, want %v", got, want)
	}
	for i := range want {
		if !got[i].Equal(want[i]) {
			t.Fatalf("dates[%d] = %v, want %v (all: %v)", i, got[i], want[i], got)
		}
	}
}

func mustCell(t *testing.T, p *Picker, d time.Time) *Cell {
	t.Helper()
	ref, ok := p.FindCell(d)
	if !ok {
		t.Fatalf("no cell for %v", d)
	}
	return ref.Cell
}

func TestInitBuildsMonths(t *testing.T) {
	p := New()
	months, err := p.Init(day(2024, 1, 1), day(2025, 1, 1), time.UTC, MustParseLocale("en-US"))
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	if len(months) != 12 {
		t.Fatalf("months = %d, want 12", len(months))
	}
	if months[0].Label != "January 2024" || months[11].Label != "December 2024" {
		t.Fatalf("labels = %q .. %q", months[0].Label, months[11].Label)
	}
	if months[2].Key() != (MonthKey{Year: 2024, Month: time.March}) {
		t.Fatalf("months[2] key = %v", months[2].Key())
	}
	for i := range months {
		g, ok := p.MonthGrid(i)
		if !ok {
			t.Fatalf("missing grid %d", i)
		}
		if len(g) < 4 || len(g) > 6 {
			t.Fatalf("grid %d has %d rows", i, len(g))
		}
	}
	if _, ok := p.MonthGrid(12); ok {
		t.Fatalf("grid 12 should not exist")
	}
	if p.Mode() != ModeSingle {
		t.Fatalf("mode = %v after init", p.Mode())
	}
}

func TestInitTruncatesToMidnight(t *testing.T) {
	p := newPicker(t, day(2024, 1, 1).Add(15*time.Hour), day(2024, 2, 1).Add(3*time.Hour))
	lo, hi := p.Bounds()
	if !lo.Equal(day(2024, 1, 1)) || !hi.Equal(day(2024, 2, 1)) {
		t.Fatalf("bounds = %v, %v", lo, hi)
	}
	if len(p.Months()) != 1 {
		t.Fatalf("months = %d, want 1", len(p.Months()))
	}
}

func TestInitValidation(t *testing.T) {
	p := New()
	_, err := p.Init(time.Time{}, time.Time{}, nil, Locale{})
	if !errors.Is(err, ErrConfig) {
		t.Fatalf("err = %v, want ErrConfig", err)
	}
	for _, field := range []string{"min", "max", "location", "locale"} {
		if !strings.Contains(err.Error(), "calendar: "+field+":") {
			t.Fatalf("error %q does not mention %s", err, field)
		}
	}

	// Bounds that collapse to the same day after truncation are inverted.
	_, err = p.Init(day(2024, 1, 1).Add(time.Hour), day(2024, 1, 1).Add(20*time.Hour), time.UTC, MustParseLocale("en-US"))
	var cfg *ConfigError
	if !errors.As(err, &cfg) || cfg.Field != "max" {
		t.Fatalf("err = %v, want max ConfigError", err)
	}
}

func TestInitResetsState(t *testing.T) {
	p := yearPicker(t)
	p.SetMode(ModeMultiple)
	p.SelectDate(day(2024, 2, 2))
	if err := p.HighlightDates(day(2024, 2, 3)); err != nil {
		t.Fatalf("highlight: %v", err)
	}
	if _, err := p.Init(day(2024, 1, 1), day(2025, 1, 1), time.UTC, MustParseLocale("en-US")); err != nil {
		t.Fatalf("init: %v", err)
	}
	if p.Mode() != ModeSingle || len(p.SelectedDates()) != 0 || len(p.HighlightedDates()) != 0 {
		t.Fatalf("state survived init: mode=%v selected=%v highlighted=%v", p.Mode(), p.SelectedDates(), p.HighlightedDates())
	}
}

func TestBoundsSelectability(t *testing.T) {
	rec := &recorder{}
	p := newPicker(t, day(2024, 1, 1), day(2024, 2, 1), WithListener(rec))

	if !mustCell(t, p, day(2024, 1, 1)).IsSelectable() {
		t.Fatalf("min should be selectable")
	}
	if !mustCell(t, p, day(2024, 1, 31)).IsSelectable() {
		t.Fatalf("max minus one day should be selectable")
	}
	if _, ok := p.FindCell(day(2024, 2, 1)); ok {
		t.Fatalf("max falls outside every month grid")
	}
	if p.SelectDate(day(2024, 2, 1)) {
		t.Fatalf("max should be rejected")
	}
	if len(rec.invalid) != 1 || !rec.invalid[0].Equal(day(2024, 2, 1)) {
		t.Fatalf("invalid callbacks = %v", rec.invalid)
	}
	if !p.SelectDate(day(2024, 1, 31)) {
		t.Fatalf("max minus one day should be accepted")
	}
	// Lead/trail days of January belong to other months and are never selectable.
	g, _ := p.MonthGrid(0)
	for _, c := range g.Cells() {
		if !c.IsCurrentMonth() && (c.IsSelectable() || c.IsSelected()) {
			t.Fatalf("lead/trail cell %v carries selection flags", c)
		}
	}
}

func TestSingleModeReplaces(t *testing.T) {
	rec := &recorder{}
	p := yearPicker(t, WithListener(rec))

	if !p.Click(day(2024, 3, 4)) || !p.Click(day(2024, 3, 20)) {
		t.Fatalf("clicks should select")
	}
	assertDates(t, p.SelectedDates(), day(2024, 3, 20))
	assertDates(t, rec.unselected, day(2024, 3, 4))
	assertDates(t, rec.selected, day(2024, 3, 4), day(2024, 3, 20))
	if mustCell(t, p, day(2024, 3, 4)).IsSelected() {
		t.Fatalf("replaced cell is still selected")
	}
	if got, ok := p.SelectedDate(); !ok || !got.Equal(day(2024, 3, 20)) {
		t.Fatalf("SelectedDate = %v, %v", got, ok)
	}
}

func TestMultipleModeToggles(t *testing.T) {
	rec := &recorder{}
	p := yearPicker(t, WithListener(rec))
	p.SetMode(ModeMultiple)

	p.Click(day(2024, 5, 9))
	p.Click(day(2024, 2, 1))
	p.Click(day(2024, 7, 30))
	assertDates(t, p.SelectedDates(), day(2024, 2, 1), day(2024, 5, 9), day(2024, 7, 30))
	if got, _ := p.SelectedDate(); !got.Equal(day(2024, 5, 9)) {
		t.Fatalf("SelectedDate should be the first selection, got %v", got)
	}

	if p.Click(day(2024, 2, 1)) {
		t.Fatalf("second click should deselect")
	}
	assertDates(t, p.SelectedDates(), day(2024, 5, 9), day(2024, 7, 30))
	assertDates(t, rec.unselected, day(2024, 2, 1))
	if mustCell(t, p, day(2024, 2, 1)).IsSelected() {
		t.Fatalf("toggled cell still selected")
	}
}

func TestRangeModeOrdersAndPaints(t *testing.T) {
	rec := &recorder{}
	p := yearPicker(t, WithListener(rec))
	p.SetMode(ModeRange)

	p.Click(day(2024, 3, 10))
	p.Click(day(2024, 3, 5))

	assertDates(t, p.SelectedDates(),
		day(2024, 3, 5), day(2024, 3, 6), day(2024, 3, 7), day(2024, 3, 8), day(2024, 3, 9), day(2024, 3, 10))
	if r := p.SelectedRange(); !r.Start.Equal(day(2024, 3, 5)) || !r.End.Equal(day(2024, 3, 10)) {
		t.Fatalf("range = %+v", r)
	}
	if len(rec.ranges) != 1 || !rec.ranges[0][0].Equal(day(2024, 3, 5)) {
		t.Fatalf("range callbacks = %v", rec.ranges)
	}

	wantStates := map[time.Time]RangeState{
		day(2024, 3, 4):  RangeNone,
		day(2024, 3, 5):  RangeFirst,
		day(2024, 3, 7):  RangeMiddle,
		day(2024, 3, 10): RangeLast,
		day(2024, 3, 11): RangeNone,
	}
	for d, want := range wantStates {
		c := mustCell(t, p, d)
		if c.RangeState() != want {
			t.Fatalf("%v range state = %v, want %v", d, c.RangeState(), want)
		}
		if c.IsSelected() != (want != RangeNone) {
			t.Fatalf("%v selected = %v", d, c.IsSelected())
		}
	}

	// A third click starts over.
	p.Click(day(2024, 4, 1))
	assertDates(t, p.SelectedDates(), day(2024, 4, 1))
	assertDates(t, rec.unselected, day(2024, 3, 5), day(2024, 3, 10))
	if mustCell(t, p, day(2024, 3, 7)).IsSelected() {
		t.Fatalf("middle cell still selected after reset")
	}
}

func TestRangeAcrossMonthsSkipsLeadTrail(t *testing.T) {
	p := yearPicker(t)
	p.SetMode(ModeRange)
	p.Click(day(2024, 3, 28))
	p.Click(day(2024, 4, 3))

	if got := len(p.SelectedDates()); got != 7 {
		t.Fatalf("selected days = %d, want 7", got)
	}
	// April's grid starts with 2024-03-31 as a lead day.
	i, _ := p.MonthIndexOf(day(2024, 4, 1))
	g, _ := p.MonthGrid(i)
	lead := g[0][0]
	if lead.IsCurrentMonth() || lead.IsSelected() || lead.RangeState() != RangeNone {
		t.Fatalf("lead cell %v carries range flags", lead)
	}
	if mustCell(t, p, day(2024, 3, 31)).RangeState() != RangeMiddle {
		t.Fatalf("current-month 03-31 should be a middle cell")
	}
}

func TestRangeSingleDay(t *testing.T) {
	rec := &recorder{}
	p := yearPicker(t, WithListener(rec))
	p.SetMode(ModeRange)
	p.Click(day(2024, 6, 6))
	p.Click(day(2024, 6, 6))

	assertDates(t, p.SelectedDates(), day(2024, 6, 6))
	r := p.SelectedRange()
	if !r.Complete() || !r.Start.Equal(r.End) {
		t.Fatalf("range = %+v, want one-day range", r)
	}
	if c := mustCell(t, p, day(2024, 6, 6)); !c.IsSelected() || c.RangeState() != RangeNone {
		t.Fatalf("one-day range cell = %v", c)
	}
	if len(rec.ranges) != 1 {
		t.Fatalf("range callbacks = %d", len(rec.ranges))
	}
}

func TestRangeMiddleRespectsPredicate(t *testing.T) {
	p := yearPicker(t, WithSelectableFunc(ExcludeDays(time.UTC, day(2024, 3, 7))))
	p.SetMode(ModeRange)
	p.Click(day(2024, 3, 5))
	p.Click(day(2024, 3, 9))

	assertDates(t, p.SelectedDates(),
		day(2024, 3, 5), day(2024, 3, 6), day(2024, 3, 8), day(2024, 3, 9))
	if c := mustCell(t, p, day(2024, 3, 7)); c.IsSelected() || c.RangeState() != RangeNone {
		t.Fatalf("unselectable middle cell painted: %v", c)
	}
}

func TestSelectingNextKeepsStart(t *testing.T) {
	p := yearPicker(t)
	p.SetMode(ModeRange)
	p.SetSelectingNext(true)
	p.Click(day(2024, 3, 5))
	p.Click(day(2024, 3, 10))
	p.Click(day(2024, 3, 14))

	r := p.SelectedRange()
	if !r.Start.Equal(day(2024, 3, 5)) || !r.End.Equal(day(2024, 3, 14)) {
		t.Fatalf("range = %+v, want 03-05..03-14", r)
	}
	if got := len(p.SelectedDates()); got != 10 {
		t.Fatalf("selected days = %d, want 10", got)
	}

	p.Click(day(2024, 3, 1))
	r = p.SelectedRange()
	if !r.Start.Equal(day(2024, 3, 1)) || !r.End.Equal(day(2024, 3, 5)) {
		t.Fatalf("range = %+v, want 03-01..03-05", r)
	}
}

func TestClickInterceptorAndDisplayOnly(t *testing.T) {
	rec := &recorder{intercept: func(d time.Time) bool { return d.Day() == 13 }}
	p := yearPicker(t, WithListener(rec))
	if p.Click(day(2024, 9, 13)) {
		t.Fatalf("intercepted click selected a date")
	}
	if len(rec.invalid) != 0 || len(rec.selected) != 0 {
		t.Fatalf("intercepted click fired callbacks: %+v", rec)
	}
	if !p.Click(day(2024, 9, 12)) {
		t.Fatalf("non-intercepted click should select")
	}

	ro := yearPicker(t, WithDisplayOnly(true))
	if ro.Click(day(2024, 9, 12)) {
		t.Fatalf("display-only picker accepted a click")
	}
	if len(ro.SelectedDates()) != 0 {
		t.Fatalf("display-only picker changed selection")
	}
	if !ro.SelectDate(day(2024, 9, 12)) {
		t.Fatalf("programmatic selection should still work in display-only mode")
	}
}

func TestInvalidClickLeavesState(t *testing.T) {
	rec := &recorder{}
	p := yearPicker(t, WithListener(rec), WithSelectableFunc(FromConstraints(datetime.Constraints{Weekdays: true})))
	p.Click(day(2024, 3, 4))
	// 2024-03-09 is a Saturday.
	if p.Click(day(2024, 3, 9)) {
		t.Fatalf("weekend click accepted")
	}
	assertDates(t, rec.invalid, day(2024, 3, 9))
	assertDates(t, p.SelectedDates(), day(2024, 3, 4))
	if p.Click(day(2023, 12, 31)) {
		t.Fatalf("click before min accepted")
	}
}

func TestPredicateIsReevaluated(t *testing.T) {
	p := yearPicker(t)
	saturday := day(2024, 3, 9)
	if !mustCell(t, p, saturday).IsSelectable() {
		t.Fatalf("saturday should start selectable")
	}
	blocked := false
	p.SetSelectableFunc(func(d time.Time) bool { return !(blocked && SameDay(d, saturday, time.UTC)) })
	if !mustCell(t, p, saturday).IsSelectable() {
		t.Fatalf("predicate not yet blocking")
	}
	blocked = true
	p.Refresh()
	if mustCell(t, p, saturday).IsSelectable() {
		t.Fatalf("predicate change not picked up by Refresh")
	}
	p.SetSelectableFunc(nil)
	if !mustCell(t, p, saturday).IsSelectable() {
		t.Fatalf("clearing the predicate should restore selectability")
	}
}

func TestPredicateChangeDropsSelection(t *testing.T) {
	rec := &recorder{}
	p := yearPicker(t, WithListener(rec))
	p.SetMode(ModeMultiple)
	p.Click(day(2024, 3, 4))
	p.Click(day(2024, 3, 9))

	p.SetSelectableFunc(FromConstraints(datetime.Constraints{Weekdays: true}))
	assertDates(t, p.SelectedDates(), day(2024, 3, 4))
	assertDates(t, rec.unselected, day(2024, 3, 9))
	if c := mustCell(t, p, day(2024, 3, 9)); c.IsSelected() {
		t.Fatalf("blocked day still selected: %v", c)
	}

	r := yearPicker(t)
	r.SetMode(ModeRange)
	r.Click(day(2024, 3, 5))
	r.Click(day(2024, 3, 10))
	blocked := false
	r.SetSelectableFunc(func(d time.Time) bool { return !(blocked && SameDay(d, day(2024, 3, 10), time.UTC)) })
	if got := len(r.SelectedDates()); got != 6 {
		t.Fatalf("range days = %d, want 6", got)
	}
	blocked = true
	r.Refresh()
	if rg := r.SelectedRange(); !rg.Start.Equal(day(2024, 3, 5)) || rg.Complete() {
		t.Fatalf("range = %+v, want open range at 03-05", rg)
	}
	assertDates(t, r.SelectedDates(), day(2024, 3, 5))
}

func TestHighlightDates(t *testing.T) {
	p := yearPicker(t)
	p.Click(day(2024, 5, 5))
	err := p.HighlightDates(day(2024, 5, 1), day(2024, 5, 1).Add(6*time.Hour), day(2025, 1, 1), day(2024, 4, 30))
	if !errors.Is(err, ErrConfig) {
		t.Fatalf("err = %v, want ErrConfig for out-of-bounds date", err)
	}
	assertDates(t, p.HighlightedDates(), day(2024, 4, 30), day(2024, 5, 1))
	if err := p.HighlightDates(day(2024, 5, 1)); err != nil {
		t.Fatalf("re-highlight: %v", err)
	}
	if got := len(p.HighlightedDates()); got != 2 {
		t.Fatalf("highlight count = %d after duplicate, want 2", got)
	}
	if c := mustCell(t, p, day(2024, 5, 1)); !c.IsHighlighted() || c.IsSelected() {
		t.Fatalf("highlighted cell = %v", c)
	}
	assertDates(t, p.SelectedDates(), day(2024, 5, 5))

	// Highlights ignore the predicate.
	p.SetSelectableFunc(func(time.Time) bool { return false })
	if err := p.HighlightDates(day(2024, 6, 1)); err != nil {
		t.Fatalf("highlight unselectable: %v", err)
	}
	if !mustCell(t, p, day(2024, 6, 1)).IsHighlighted() {
		t.Fatalf("unselectable date not highlighted")
	}

	p.ClearHighlights()
	if len(p.HighlightedDates()) != 0 || mustCell(t, p, day(2024, 5, 1)).IsHighlighted() {
		t.Fatalf("ClearHighlights left flags")
	}
}

func TestSelectDates(t *testing.T) {
	p := yearPicker(t)
	if err := p.SelectDates(day(2024, 1, 2), day(2024, 1, 3)); !errors.Is(err, ErrConfig) {
		t.Fatalf("single mode accepted two dates: %v", err)
	}
	p.SetMode(ModeRange)
	if err := p.SelectDates(day(2024, 1, 2), day(2024, 1, 3), day(2024, 1, 4)); !errors.Is(err, ErrConfig) {
		t.Fatalf("range mode accepted three dates: %v", err)
	}
	if err := p.SelectDates(day(2024, 1, 2), day(2026, 1, 1)); !errors.Is(err, ErrConfig) {
		t.Fatalf("out-of-bounds date accepted: %v", err)
	}
	if len(p.SelectedDates()) != 0 {
		t.Fatalf("failed SelectDates changed state")
	}
	if err := p.SelectDates(day(2024, 1, 8), day(2024, 1, 2)); err != nil {
		t.Fatalf("SelectDates: %v", err)
	}
	if got := len(p.SelectedDates()); got != 7 {
		t.Fatalf("range days = %d, want 7", got)
	}

	p.ClearSelection()
	p.SelectDate(day(2024, 5, 1))
	if err := p.SelectDates(day(2024, 3, 5), day(2024, 3, 10)); err != nil {
		t.Fatalf("SelectDates over an open anchor: %v", err)
	}
	if r := p.SelectedRange(); !r.Start.Equal(day(2024, 3, 5)) || !r.End.Equal(day(2024, 3, 10)) {
		t.Fatalf("range = %+v, want 03-05..03-10", r)
	}
	if err := p.SelectDates(day(2024, 4, 2)); err != nil {
		t.Fatalf("SelectDates one anchor: %v", err)
	}
	if r := p.SelectedRange(); !r.Start.Equal(day(2024, 4, 2)) || r.Complete() {
		t.Fatalf("range = %+v, want open range at 04-02", r)
	}

	p.SetMode(ModeMultiple)
	if err := p.SelectDates(day(2024, 2, 2), day(2024, 2, 2), day(2024, 2, 4)); err != nil {
		t.Fatalf("SelectDates: %v", err)
	}
	assertDates(t, p.SelectedDates(), day(2024, 2, 2), day(2024, 2, 4))
}

func TestSelectedCellsRoundTrip(t *testing.T) {
	p := yearPicker(t)
	p.SetMode(ModeMultiple)
	for _, d := range []time.Time{day(2024, 1, 31), day(2024, 3, 31), day(2024, 12, 31), day(2024, 2, 29)} {
		if !p.SelectDate(d) {
			t.Fatalf("select %v", d)
		}
	}
	for _, d := range p.SelectedDates() {
		ref, ok := p.FindCell(d)
		if !ok || !ref.Cell.IsSelected() || !ref.Cell.IsCurrentMonth() {
			t.Fatalf("FindCell(%v) = %+v, %v", d, ref, ok)
		}
		if got := p.Months()[ref.Month].Key(); got != KeyOf(d, time.UTC) {
			t.Fatalf("cell %v found in month %v", d, got)
		}
	}
}

func TestCellsAreStableAcrossReads(t *testing.T) {
	p := yearPicker(t)
	g1, _ := p.MonthGrid(2)
	p.Click(day(2024, 3, 3))
	g2, _ := p.MonthGrid(2)
	if g1[0][0] != g2[0][0] {
		t.Fatalf("grid cells were rebuilt by a selection change")
	}
	if !mustCell(t, p, day(2024, 3, 3)).IsSelected() {
		t.Fatalf("selection not reflected")
	}
}

func TestTodayAndScrollTarget(t *testing.T) {
	p := yearPicker(t)
	if !mustCell(t, p, day(2024, 3, 15)).IsToday() {
		t.Fatalf("today flag missing")
	}
	if mustCell(t, p, day(2024, 3, 16)).IsToday() {
		t.Fatalf("today flag on wrong day")
	}
	if i, ok := p.ScrollTarget(); !ok || i != 2 {
		t.Fatalf("scroll target = %d, %v, want today's month 2", i, ok)
	}
	p.Click(day(2024, 6, 1))
	if i, ok := p.ScrollTarget(); !ok || i != 5 {
		t.Fatalf("scroll target = %d, %v, want 5", i, ok)
	}

	later := newPicker(t, day(2030, 1, 1), day(2030, 3, 1))
	if _, ok := later.ScrollTarget(); ok {
		t.Fatalf("scroll target without selection or today should miss")
	}
}

func TestReverseOrder(t *testing.T) {
	p := yearPicker(t, WithMonthsReverseOrder(true))
	months := p.Months()
	if months[0].Month != time.December || months[11].Month != time.January {
		t.Fatalf("reverse months = %v .. %v", months[0], months[11])
	}
	g, _ := p.MonthGrid(0)
	if g[1][0].Date().Month() != time.December {
		t.Fatalf("grid 0 is not December")
	}
	ref, ok := p.FindCell(day(2024, 12, 5))
	if !ok || ref.Month != 0 {
		t.Fatalf("FindCell month = %d, %v, want 0", ref.Month, ok)
	}
	if i, _ := p.MonthIndexOf(day(2024, 1, 20)); i != 11 {
		t.Fatalf("MonthIndexOf(January) = %d, want 11", i)
	}
	p.Click(day(2024, 2, 2))
	if i, _ := p.ScrollTarget(); i != 10 {
		t.Fatalf("scroll target = %d, want 10", i)
	}
}

func TestSetMonthTitles(t *testing.T) {
	p := newPicker(t, day(2024, 1, 1), day(2024, 3, 1))
	if err := p.SetMonthTitles([]string{"only one"}); !errors.Is(err, ErrConfig) {
		t.Fatalf("mismatched titles accepted: %v", err)
	}
	if err := p.SetMonthTitles([]string{"Winter I", "Winter II"}); err != nil {
		t.Fatalf("SetMonthTitles: %v", err)
	}
	if got := p.Months()[1].Label; got != "Winter II" {
		t.Fatalf("label = %q", got)
	}
	if err := p.SetMonthTitles(nil); err != nil {
		t.Fatalf("reset titles: %v", err)
	}
	if got := p.Months()[1].Label; got != "February 2024" {
		t.Fatalf("label after reset = %q", got)
	}
}

func TestSetModeClearsSelection(t *testing.T) {
	p := yearPicker(t)
	p.Click(day(2024, 8, 8))
	p.SetMode(ModeMultiple)
	if len(p.SelectedDates()) != 0 {
		t.Fatalf("mode change kept selection")
	}
	p.Click(day(2024, 8, 8))
	p.SetMode(ModeMultiple)
	if len(p.SelectedDates()) != 1 {
		t.Fatalf("setting the same mode cleared selection")
	}
}

func TestListenerFuncs(t *testing.T) {
	var got []string
	l := ListenerFuncs{
		OnSelect: func(d time.Time) { got = append(got, "select "+d.Format(time.DateOnly)) },
		OnRange: func(s, e time.Time) {
			got = append(got, "range "+s.Format(time.DateOnly)+" "+e.Format(time.DateOnly))
		},
	}
	p := yearPicker(t, WithListener(l))
	p.SetMode(ModeRange)
	p.Click(day(2024, 2, 10))
	p.Click(day(2024, 2, 1))
	want := []string{"select 2024-02-10", "select 2024-02-01", "range 2024-02-01 2024-02-10"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Fatalf("callbacks = %v, want %v", got, want)
	}
	if l.InterceptClick(day(2024, 2, 1)) {
		t.Fatalf("nil interceptor should not intercept")
	}
}

func TestUninitializedPicker(t *testing.T) {
	p := New()
	if p.Click(day(2024, 1, 1)) || p.SelectDate(day(2024, 1, 1)) {
		t.Fatalf("uninitialized picker accepted a date")
	}
	if err := p.HighlightDates(day(2024, 1, 1)); !errors.Is(err, ErrConfig) {
		t.Fatalf("highlight err = %v", err)
	}
	if _, ok := p.ScrollTarget(); ok {
		t.Fatalf("uninitialized scroll target")
	}
}
