package calendar

import (
	"errors"
	"fmt"
)

// ErrConfig matches every ConfigError through errors.Is.
var ErrConfig = errors.New("calendar: invalid configuration")

// ConfigError reports bad arguments to Init, SelectDates, HighlightDates or
// SetMonthTitles. It is never raised for an ordinary invalid click; those are
// reported through Listener.InvalidDateSelected instead.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	if e.Field == "" {
		return "calendar: " + e.Reason
	}
	return fmt.Sprintf("calendar: %s: %s", e.Field, e.Reason)
}

func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}

func configErr(field, format string, args ...any) *ConfigError {
	return &ConfigError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
