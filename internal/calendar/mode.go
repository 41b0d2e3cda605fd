package calendar

import (
	"fmt"
	"strings"
)

// Mode is the selection discipline of a Picker.
type Mode int

const (
	// ModeSingle keeps at most one selected date.
	ModeSingle Mode = iota
	// ModeMultiple toggles each clicked date independently.
	ModeMultiple
	// ModeRange selects two endpoints and every selectable day between them.
	ModeRange
)

func (m Mode) String() string {
	switch m {
	case ModeMultiple:
		return "multiple"
	case ModeRange:
		return "range"
	default:
		return "single"
	}
}

// ParseMode accepts the names returned by Mode.String, case-insensitively.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "single":
		return ModeSingle, nil
	case "multiple", "multi":
		return ModeMultiple, nil
	case "range":
		return ModeRange, nil
	}
	return ModeSingle, &ConfigError{Field: "mode", Reason: fmt.Sprintf("unknown selection mode %q", s)}
}
