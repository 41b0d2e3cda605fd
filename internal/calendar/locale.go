package calendar

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/language"
)

// Locale carries the week layout and month/weekday names used by a Picker.
// It is an explicit value: formatting never touches process-wide state.
type Locale struct {
	tag      language.Tag
	lang     string
	region   string
	firstDay time.Weekday
}

// ParseLocale parses a BCP 47 tag such as "en-US", "de" or "ar_EG". When the
// tag has no region the most likely one is used to pick the first day of the
// week.
func ParseLocale(s string) (Locale, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), "_", "-")
	if s == "" {
		return Locale{}, configErr("locale", "empty locale")
	}
	tag, err := language.Parse(s)
	if err != nil {
		return Locale{}, &ConfigError{Field: "locale", Reason: fmt.Sprintf("parse %q: %v", s, err)}
	}
	base, _ := tag.Base()
	region, _ := tag.Region()
	l := Locale{
		tag:    tag,
		lang:   strings.ToLower(base.String()),
		region: strings.ToUpper(region.String()),
	}
	l.firstDay = firstDayForRegion(l.region)
	return l, nil
}

// MustParseLocale is like ParseLocale but panics on error. It is intended
// for constants in tests and package-level defaults.
func MustParseLocale(s string) Locale {
	l, err := ParseLocale(s)
	if err != nil {
		panic(err)
	}
	return l
}

// IsZero reports whether l was never parsed.
func (l Locale) IsZero() bool {
	return l.lang == ""
}

func (l Locale) String() string {
	if l.IsZero() {
		return ""
	}
	return l.tag.String()
}

func (l Locale) Language() string { return l.lang }
func (l Locale) Region() string   { return l.region }

// FirstDayOfWeek returns the weekday that starts each grid row.
func (l Locale) FirstDayOfWeek() time.Weekday {
	return l.firstDay
}

// WithFirstDayOfWeek returns a copy of l with an explicit week start.
func (l Locale) WithFirstDayOfWeek(d time.Weekday) Locale {
	l.firstDay = d
	return l
}

// MonthLabel formats the month title for t, e.g. "March 2024".
func (l Locale) MonthLabel(t time.Time) string {
	names, ok := monthNames[l.lang]
	if !ok {
		return t.Format("January 2006")
	}
	return fmt.Sprintf("%s %d", names[int(t.Month())-1], t.Year())
}

// MonthName returns the standalone name of m.
func (l Locale) MonthName(m time.Month) string {
	names, ok := monthNames[l.lang]
	if !ok {
		return m.String()
	}
	return names[int(m)-1]
}

// WeekdayShort returns the abbreviated name of d.
func (l Locale) WeekdayShort(d time.Weekday) string {
	names, ok := weekdayShortNames[l.lang]
	if !ok {
		return d.String()[:3]
	}
	return names[int(d)]
}

// Weekdays returns the seven weekdays in grid column order.
func (l Locale) Weekdays() [7]time.Weekday {
	var out [7]time.Weekday
	for i := range out {
		out[i] = time.Weekday((int(l.firstDay) + i) % 7)
	}
	return out
}

func firstDayForRegion(region string) time.Weekday {
	switch region {
	case "US", "CA", "MX", "BR", "JP", "KR", "TW", "HK", "PH", "IL", "IN", "ZA", "SA", "PE", "CO", "VE", "GT", "PA", "PR", "TH":
		return time.Sunday
	case "AE", "AF", "BH", "DJ", "DZ", "EG", "IQ", "IR", "JO", "KW", "LY", "OM", "QA", "SD", "SY":
		return time.Saturday
	default:
		return time.Monday
	}
}

var monthNames = map[string][]string{
	"en": {"January", "February", "March", "April", "May", "June", "July", "August", "September", "October", "November", "December"},
	"ru": {"Январь", "Февраль", "Март", "Апрель", "Май", "Июнь", "Июль", "Август", "Сентябрь", "Октябрь", "Ноябрь", "Декабрь"},
	"de": {"Januar", "Februar", "März", "April", "Mai", "Juni", "Juli", "August", "September", "Oktober", "November", "Dezember"},
	"fr": {"janvier", "février", "mars", "avril", "mai", "juin", "juillet", "août", "septembre", "octobre", "novembre", "décembre"},
	"es": {"enero", "febrero", "marzo", "abril", "mayo", "junio", "julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre"},
	"pt": {"janeiro", "fevereiro", "março", "abril", "maio", "junho", "julho", "agosto", "setembro", "outubro", "novembro", "dezembro"},
}

var weekdayShortNames = map[string][]string{
	"en": {"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"},
	"ru": {"Вс", "Пн", "Вт", "Ср", "Чт", "Пт", "Сб"},
	"de": {"So", "Mo", "Di", "Mi", "Do", "Fr", "Sa"},
	"fr": {"dim", "lun", "mar", "mer", "jeu", "ven", "sam"},
	"es": {"dom", "lun", "mar", "mié", "jue", "vie", "sáb"},
	"pt": {"dom", "seg", "ter", "qua", "qui", "sex", "sáb"},
}
