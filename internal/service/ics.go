package service

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"cloudeng.io/logging/ctxlog"
	ics "github.com/arran4/golang-ical"

	"github.com/jask/calpick/internal/calendar"
	"github.com/jask/calpick/internal/database"
	"github.com/jask/calpick/internal/database/repository"
)

// maxEventDays caps how many days a single event may mark.
const maxEventDays = 366

type IngestResult struct {
	Imported int
	Skipped  int
	Errors   []error
}

// ICSImporter stores the days covered by iCalendar events as marked dates.
type ICSImporter struct {
	DB *sql.DB
}

// ImportFile imports the events of the .ics file at path.
func (s *ICSImporter) ImportFile(ctx context.Context, path string, kind repository.Kind, loc *time.Location) (IngestResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return IngestResult{}, fmt.Errorf("open ics: %w", err)
	}
	defer f.Close()
	return s.Import(ctx, f, kind, loc)
}

// Import marks every day touched by an event in r. Days already stored for
// kind are counted as skipped, so importing the same feed twice is a no-op.
// Events without a usable start are reported in the result and skipped.
func (s *ICSImporter) Import(ctx context.Context, r io.Reader, kind repository.Kind, loc *time.Location) (IngestResult, error) {
	if loc == nil {
		loc = time.Local
	}
	res := IngestResult{}
	cal, err := ics.ParseCalendar(r)
	if err != nil {
		return res, fmt.Errorf("parse ics: %w", err)
	}
	events := cal.Events()

	err = database.WithTx(ctx, s.DB, func(tx *sql.Tx) error {
		repo := repository.NewMarkedDateRepo(tx)
		for i, ev := range events {
			days, err := eventDays(ev, loc)
			if err != nil {
				res.Errors = append(res.Errors, fmt.Errorf("event %d (%s): %w", i+1, ev.Id(), err))
				continue
			}
			label := ""
			if p := ev.GetProperty(ics.ComponentPropertySummary); p != nil {
				label = p.Value
			}
			for _, day := range days {
				inserted, err := repo.InsertIfAbsent(ctx, repository.MarkedDate{
					Day:    repository.DayString(day),
					Kind:   kind,
					Label:  label,
					Source: repository.SourceICS,
				})
				if err != nil {
					return fmt.Errorf("insert %s: %w", repository.DayString(day), err)
				}
				if inserted {
					res.Imported++
				} else {
					res.Skipped++
				}
			}
		}
		return nil
	})
	if err != nil {
		return IngestResult{}, err
	}
	ctxlog.Logger(ctx).Info("ics import",
		"kind", string(kind),
		"events", len(events),
		"imported", res.Imported,
		"skipped", res.Skipped,
		"errors", len(res.Errors))
	return res, nil
}

// eventDays returns the calendar days in loc covered by ev. All-day events
// use their dates as written; DTEND is exclusive for both forms.
func eventDays(ev *ics.VEvent, loc *time.Location) ([]time.Time, error) {
	start := ev.GetProperty(ics.ComponentPropertyDtStart)
	if start == nil {
		return nil, fmt.Errorf("missing DTSTART")
	}
	var first, last time.Time
	if isDateValue(start.Value) {
		d, err := time.ParseInLocation("20060102", strings.TrimSpace(start.Value), loc)
		if err != nil {
			return nil, fmt.Errorf("parse DTSTART: %w", err)
		}
		first, last = d, d
		if end := ev.GetProperty(ics.ComponentPropertyDtEnd); end != nil && isDateValue(end.Value) {
			e, err := time.ParseInLocation("20060102", strings.TrimSpace(end.Value), loc)
			if err != nil {
				return nil, fmt.Errorf("parse DTEND: %w", err)
			}
			if e.After(d) {
				last = e.AddDate(0, 0, -1)
			}
		}
	} else {
		s, err := ev.GetStartAt()
		if err != nil {
			return nil, fmt.Errorf("parse DTSTART: %w", err)
		}
		first, last = calendar.Midnight(s, loc), calendar.Midnight(s, loc)
		if e, err := ev.GetEndAt(); err == nil && e.After(s) {
			last = calendar.Midnight(e.Add(-time.Nanosecond), loc)
		}
	}

	var out []time.Time
	for d := first; !d.After(last); d = calendar.Midnight(d.AddDate(0, 0, 1), loc) {
		if len(out) == maxEventDays {
			return nil, fmt.Errorf("event spans more than %d days", maxEventDays)
		}
		out = append(out, d)
	}
	return out, nil
}

func isDateValue(v string) bool {
	v = strings.TrimSpace(v)
	return len(v) == 8 && !strings.ContainsRune(v, 'T')
}
