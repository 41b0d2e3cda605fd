package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jask/calpick/internal/calendar"
	"github.com/jask/calpick/internal/database/repository"
)

func utcDay(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestParseRules(t *testing.T) {
	t.Parallel()
	r, err := ParseRules(true, false, "Dec-25, 01/01, Feb-29")
	require.NoError(t, err)
	require.Len(t, r.Recurring, 3)

	_, err = ParseRules(true, true, "")
	require.Error(t, err)
	_, err = ParseRules(false, false, "Smarch-01")
	require.Error(t, err)
	_, err = ParseRules(false, false, "Dec")
	require.Error(t, err)

	empty, err := ParseRules(false, false, "")
	require.NoError(t, err)
	require.Nil(t, empty.Predicate())
}

func TestRulesPredicate(t *testing.T) {
	t.Parallel()
	r, err := ParseRules(true, false, "Dec-25")
	require.NoError(t, err)
	fn := r.Predicate()
	require.NotNil(t, fn)

	require.True(t, fn(utcDay(2024, 12, 24)))  // Tuesday
	require.False(t, fn(utcDay(2024, 12, 25))) // recurring blackout
	require.False(t, fn(utcDay(2024, 12, 28))) // Saturday
	require.False(t, fn(utcDay(2025, 12, 25))) // every year
}

func TestAvailabilityLoad(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	db := openTestDB(t)
	repo := repository.NewMarkedDateRepo(db)

	for _, d := range []repository.MarkedDate{
		{Day: "2024-03-05", Kind: repository.KindBlackout},
		{Day: "2024-03-06", Kind: repository.KindHighlight},
		{Day: "2024-05-01", Kind: repository.KindBlackout},
		{Day: "2023-12-31", Kind: repository.KindBlackout},
	} {
		require.NoError(t, repo.Upsert(ctx, d))
	}

	rules, err := ParseRules(false, false, "Mar-17")
	require.NoError(t, err)
	svc := &Availability{Dates: repo, Rules: rules}

	plan, err := svc.Load(ctx, utcDay(2024, 3, 1), utcDay(2024, 5, 1), time.UTC)
	require.NoError(t, err)
	require.Equal(t, []time.Time{utcDay(2024, 3, 5)}, plan.Blackouts)
	require.Equal(t, []time.Time{utcDay(2024, 3, 6)}, plan.Highlights)
	require.NotNil(t, plan.Selectable)
	require.False(t, plan.Selectable(utcDay(2024, 3, 5)))
	require.False(t, plan.Selectable(utcDay(2024, 3, 17)))
	require.True(t, plan.Selectable(utcDay(2024, 3, 6)))

	// The plan drives a picker: blackout days are unselectable and
	// highlights are painted.
	p := calendar.New(calendar.WithSelectableFunc(plan.Selectable))
	_, err = p.Init(utcDay(2024, 3, 1), utcDay(2024, 5, 1), time.UTC, calendar.MustParseLocale("en-US"))
	require.NoError(t, err)
	require.NoError(t, p.HighlightDates(plan.Highlights...))
	require.False(t, p.SelectDate(utcDay(2024, 3, 5)))
	require.True(t, p.SelectDate(utcDay(2024, 3, 6)))
	ref, ok := p.FindCell(utcDay(2024, 3, 6))
	require.True(t, ok)
	require.True(t, ref.Cell.IsHighlighted())
}

func TestToggleBlackout(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	db := openTestDB(t)
	svc := &Availability{Dates: repository.NewMarkedDateRepo(db)}

	blocked, err := svc.ToggleBlackout(ctx, utcDay(2024, 8, 1))
	require.NoError(t, err)
	require.True(t, blocked)

	plan, err := svc.Load(ctx, utcDay(2024, 8, 1), utcDay(2024, 9, 1), time.UTC)
	require.NoError(t, err)
	require.False(t, plan.Selectable(utcDay(2024, 8, 1)))

	blocked, err = svc.ToggleBlackout(ctx, utcDay(2024, 8, 1))
	require.NoError(t, err)
	require.False(t, blocked)

	plan, err = svc.Load(ctx, utcDay(2024, 8, 1), utcDay(2024, 9, 1), time.UTC)
	require.NoError(t, err)
	require.Empty(t, plan.Blackouts)
	require.Nil(t, plan.Selectable)
}
