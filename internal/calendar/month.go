package calendar

import (
	"fmt"
	"time"
)

// MonthDescriptor identifies one rendered month.
type MonthDescriptor struct {
	Month    time.Month
	Year     int
	FirstDay time.Time
	Label    string
}

func (m MonthDescriptor) Key() MonthKey {
	return MonthKey{Year: m.Year, Month: m.Month}
}

func (m MonthDescriptor) String() string {
	return fmt.Sprintf("MonthDescriptor{label=%q, month=%d, year=%d}", m.Label, int(m.Month), m.Year)
}

// monthStarts returns day 1 of every month from lo's month through the month
// containing the instant just before hi. An hi that lands on the first of a
// month therefore does not pull that month in.
func monthStarts(lo, hi time.Time, loc *time.Location) []time.Time {
	last := KeyOf(hi.Add(-time.Minute), loc)
	y, m, _ := lo.In(loc).Date()
	var out []time.Time
	for y < last.Year || (y == last.Year && m <= last.Month) {
		out = append(out, time.Date(y, m, 1, 0, 0, 0, 0, loc))
		m++
		if m > time.December {
			m = time.January
			y++
		}
	}
	return out
}
