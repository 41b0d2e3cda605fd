package testdata

import (
	"context"
	"math/rand"
	"time"

	"github.com/jask/calpick/internal/database/repository"
)

var sampleLabels = []string{"Dentist", "Team offsite", "Travel", "School pickup", "On call"}

// Seed stores sample blackout and highlight days for the year starting at
// start. rng makes the output reproducible; nil uses a time seeded source.
// It returns the number of rows written.
func Seed(ctx context.Context, repo *repository.MarkedDateRepo, start time.Time, rng *rand.Rand) (int, error) {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	y, m, d := start.Date()
	start = time.Date(y, m, d, 0, 0, 0, 0, time.UTC)

	written := 0
	for month := 0; month < 12; month++ {
		first := start.AddDate(0, month, 0)
		for i := 0; i < 2; i++ {
			day := repository.DayString(first.AddDate(0, 0, rng.Intn(28)))
			ok, err := repo.InsertIfAbsent(ctx, repository.MarkedDate{
				ID:     repository.MarkedDateID(repository.KindBlackout, day),
				Day:    day,
				Kind:   repository.KindBlackout,
				Label:  sampleLabels[rng.Intn(len(sampleLabels))],
				Source: repository.SourceManual,
			})
			if err != nil {
				return written, err
			}
			if ok {
				written++
			}
		}
	}

	for _, h := range holidays(start) {
		ok, err := repo.InsertIfAbsent(ctx, h)
		if err != nil {
			return written, err
		}
		if ok {
			written++
		}
	}
	return written, nil
}

// holidays returns fixed-date highlights falling within a year of start.
func holidays(start time.Time) []repository.MarkedDate {
	type fixed struct {
		Month time.Month
		Day   int
		Label string
	}
	days := []fixed{
		{Month: time.January, Day: 1, Label: "New Year's Day"},
		{Month: time.May, Day: 1, Label: "Labour Day"},
		{Month: time.December, Day: 25, Label: "Christmas Day"},
		{Month: time.December, Day: 31, Label: "New Year's Eve"},
	}
	end := start.AddDate(1, 0, 0)
	var out []repository.MarkedDate
	for _, year := range []int{start.Year(), start.Year() + 1} {
		for _, f := range days {
			t := time.Date(year, f.Month, f.Day, 0, 0, 0, 0, time.UTC)
			if t.Before(start) || !t.Before(end) {
				continue
			}
			day := repository.DayString(t)
			out = append(out, repository.MarkedDate{
				ID:     repository.MarkedDateID(repository.KindHighlight, day),
				Day:    day,
				Kind:   repository.KindHighlight,
				Label:  f.Label,
				Source: repository.SourceManual,
			})
		}
	}
	return out
}
