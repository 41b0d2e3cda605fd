package calendar

import "time"

// Listener receives user-intent notifications from Picker.Click. Programmatic
// calls such as SelectDate only report rejected dates.
type Listener interface {
	DateSelected(date time.Time)
	DateUnselected(date time.Time)
	// RangeSelected fires in RANGE mode once both endpoints are set.
	RangeSelected(start, end time.Time)
	InvalidDateSelected(date time.Time)
	// InterceptClick returns true to swallow a click before it is validated.
	InterceptClick(date time.Time) bool
}

// ListenerFuncs adapts optional funcs to Listener. Nil fields are no-ops.
type ListenerFuncs struct {
	OnSelect    func(date time.Time)
	OnUnselect  func(date time.Time)
	OnRange     func(start, end time.Time)
	OnInvalid   func(date time.Time)
	OnIntercept func(date time.Time) bool
}

func (f ListenerFuncs) DateSelected(date time.Time) {
	if f.OnSelect != nil {
		f.OnSelect(date)
	}
}

func (f ListenerFuncs) DateUnselected(date time.Time) {
	if f.OnUnselect != nil {
		f.OnUnselect(date)
	}
}

func (f ListenerFuncs) RangeSelected(start, end time.Time) {
	if f.OnRange != nil {
		f.OnRange(start, end)
	}
}

func (f ListenerFuncs) InvalidDateSelected(date time.Time) {
	if f.OnInvalid != nil {
		f.OnInvalid(date)
	}
}

func (f ListenerFuncs) InterceptClick(date time.Time) bool {
	return f.OnIntercept != nil && f.OnIntercept(date)
}

type nopListener struct{}

func (nopListener) DateSelected(time.Time)             {}
func (nopListener) DateUnselected(time.Time)           {}
func (nopListener) RangeSelected(time.Time, time.Time) {}
func (nopListener) InvalidDateSelected(time.Time)      {}
func (nopListener) InterceptClick(time.Time) bool      { return false }
