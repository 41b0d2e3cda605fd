package service

import (
	"context"
	"fmt"
	"time"

	"cloudeng.io/datetime"
	cerrors "cloudeng.io/errors"
	"cloudeng.io/logging/ctxlog"

	"github.com/jask/calpick/internal/calendar"
	"github.com/jask/calpick/internal/database/repository"
)

// Rules are the static selectability constraints layered over stored
// blackout days.
type Rules struct {
	WeekdaysOnly bool
	WeekendsOnly bool
	// Recurring days are blocked every year.
	Recurring datetime.DateList
}

// ParseRules validates the availability settings. recurring is a comma
// separated list such as "Dec-25, 01/01".
func ParseRules(weekdaysOnly, weekendsOnly bool, recurring string) (Rules, error) {
	if weekdaysOnly && weekendsOnly {
		return Rules{}, fmt.Errorf("weekdays_only and weekends_only are mutually exclusive")
	}
	r := Rules{WeekdaysOnly: weekdaysOnly, WeekendsOnly: weekendsOnly}
	// 2024 is a leap year so Feb-29 is accepted.
	if err := r.Recurring.Parse(2024, recurring); err != nil {
		return Rules{}, fmt.Errorf("parse recurring blackouts: %w", err)
	}
	for _, d := range r.Recurring {
		if d.Day == 0 {
			return Rules{}, fmt.Errorf("recurring blackout %v needs a day", d)
		}
	}
	return r, nil
}

// Predicate returns the rule-only predicate, nil when no rule applies.
func (r Rules) Predicate() calendar.SelectableFunc {
	var fns []calendar.SelectableFunc
	if r.WeekdaysOnly || r.WeekendsOnly {
		fns = append(fns, calendar.FromConstraints(datetime.Constraints{
			Weekdays: r.WeekdaysOnly,
			Weekends: r.WeekendsOnly,
		}))
	}
	// Constraints consults Custom before the weekday flags, so the
	// recurring list gets its own predicate.
	if len(r.Recurring) > 0 {
		fns = append(fns, calendar.FromConstraints(datetime.Constraints{Custom: r.Recurring}))
	}
	return calendar.AllOf(fns...)
}

// Plan is what a picker needs from the availability store for one bound.
type Plan struct {
	Selectable calendar.SelectableFunc
	Blackouts  []time.Time
	Highlights []time.Time
	// Invalid collects stored rows whose day could not be parsed.
	Invalid error
}

// Availability turns stored marked dates and rules into picker inputs.
type Availability struct {
	Dates *repository.MarkedDateRepo
	Rules Rules
}

// Load reads the marked dates within [minDate, maxDate) as calendar days in
// loc. Rows with unparseable days are skipped and reported in Plan.Invalid.
func (a *Availability) Load(ctx context.Context, minDate, maxDate time.Time, loc *time.Location) (Plan, error) {
	from, to := repository.DayString(minDate.In(loc)), repository.DayString(maxDate.In(loc))
	var errs cerrors.M

	blackouts, err := a.days(ctx, repository.KindBlackout, from, to, loc, &errs)
	if err != nil {
		return Plan{}, err
	}
	highlights, err := a.days(ctx, repository.KindHighlight, from, to, loc, &errs)
	if err != nil {
		return Plan{}, err
	}

	plan := Plan{
		Blackouts:  blackouts,
		Highlights: highlights,
		Invalid:    errs.Err(),
	}
	var block calendar.SelectableFunc
	if len(blackouts) > 0 {
		block = calendar.ExcludeDays(loc, blackouts...)
	}
	plan.Selectable = calendar.AllOf(block, a.Rules.Predicate())

	ctxlog.Logger(ctx).Debug("availability loaded",
		"from", from, "to", to,
		"blackouts", len(blackouts),
		"highlights", len(highlights),
		"recurring", len(a.Rules.Recurring))
	return plan, nil
}

func (a *Availability) days(ctx context.Context, kind repository.Kind, from, to string, loc *time.Location, errs *cerrors.M) ([]time.Time, error) {
	rows, err := a.Dates.Between(ctx, kind, from, to)
	if err != nil {
		return nil, fmt.Errorf("list %s dates: %w", kind, err)
	}
	out := make([]time.Time, 0, len(rows))
	for _, r := range rows {
		t, err := time.ParseInLocation(time.DateOnly, r.Day, loc)
		if err != nil {
			errs.Append(fmt.Errorf("%s %s: %w", kind, r.ID, err))
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

// ToggleBlackout blocks day when it is free and frees it when blocked. It
// reports whether day is blocked afterwards.
func (a *Availability) ToggleBlackout(ctx context.Context, day time.Time) (bool, error) {
	key := repository.DayString(day)
	existing, err := a.Dates.Get(ctx, repository.KindBlackout, key)
	if err != nil {
		return false, fmt.Errorf("get blackout %s: %w", key, err)
	}
	if existing != nil {
		if _, err := a.Dates.Delete(ctx, repository.KindBlackout, key); err != nil {
			return false, fmt.Errorf("delete blackout %s: %w", key, err)
		}
		ctxlog.Logger(ctx).Info("blackout removed", "day", key)
		return false, nil
	}
	if err := a.Dates.Upsert(ctx, repository.MarkedDate{Day: key, Kind: repository.KindBlackout}); err != nil {
		return false, fmt.Errorf("add blackout %s: %w", key, err)
	}
	ctxlog.Logger(ctx).Info("blackout added", "day", key)
	return true, nil
}
