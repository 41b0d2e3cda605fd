package service

import (
	"strconv"
	"strings"
	"time"

	"cloudeng.io/datetime"
	"github.com/agnivade/levenshtein"

	"github.com/jask/calpick/internal/calendar"
)

// fuzzyThreshold is the largest edit distance, relative to label length,
// accepted for a fuzzy label match.
const fuzzyThreshold = 0.4

// ResolveMonth maps a free-form jump query such as "2024-07", "jul 2025",
// "März" or a misspelt label to a position in months. Exact forms win over
// fuzzy label matches.
func ResolveMonth(query string, months []calendar.MonthDescriptor, locale calendar.Locale) (int, bool) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" || len(months) == 0 {
		return -1, false
	}
	if t, err := time.Parse("2006-01", q); err == nil {
		return findMonth(months, t.Month(), t.Year())
	}

	month, year := time.Month(0), 0
	for _, tok := range strings.Fields(q) {
		if n, err := strconv.Atoi(tok); err == nil {
			switch {
			case len(tok) == 4:
				year = n
			case n >= 1 && n <= 12:
				month = time.Month(n)
			}
			continue
		}
		if m, ok := localeMonth(tok, locale); ok {
			month = m
			continue
		}
		if m, err := datetime.ParseMonth(tok); err == nil {
			month = time.Month(m)
		}
	}
	if month != 0 {
		return findMonth(months, month, year)
	}
	if i, ok := fuzzyMonth(q, months); ok {
		return i, true
	}
	if year != 0 {
		for i, md := range months {
			if md.Year == year {
				return i, true
			}
		}
	}
	return -1, false
}

// findMonth returns the first month matching m and, when year is non-zero,
// year.
func findMonth(months []calendar.MonthDescriptor, m time.Month, year int) (int, bool) {
	for i, md := range months {
		if md.Month == m && (year == 0 || md.Year == year) {
			return i, true
		}
	}
	return -1, false
}

func localeMonth(tok string, locale calendar.Locale) (time.Month, bool) {
	if locale.IsZero() {
		return 0, false
	}
	for m := time.January; m <= time.December; m++ {
		if strings.HasPrefix(strings.ToLower(locale.MonthName(m)), tok) && len([]rune(tok)) >= 3 {
			return m, true
		}
	}
	return 0, false
}

func fuzzyMonth(q string, months []calendar.MonthDescriptor) (int, bool) {
	best, bestRatio := -1, fuzzyThreshold
	for i, md := range months {
		label := strings.ToLower(md.Label)
		dist := levenshtein.ComputeDistance(q, label)
		maxlen := len([]rune(label))
		if n := len([]rune(q)); n > maxlen {
			maxlen = n
		}
		if maxlen == 0 {
			continue
		}
		if ratio := float64(dist) / float64(maxlen); ratio < bestRatio {
			best, bestRatio = i, ratio
		}
	}
	return best, best >= 0
}
