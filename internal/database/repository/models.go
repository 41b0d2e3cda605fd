package repository

import (
	"fmt"
	"time"
)

// Kind classifies a marked date.
type Kind string

const (
	// KindBlackout dates can never be selected.
	KindBlackout Kind = "blackout"
	// KindHighlight dates are shown highlighted and stay selectable.
	KindHighlight Kind = "highlight"
)

// ParseKind validates a kind name.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindBlackout, KindHighlight:
		return Kind(s), nil
	}
	return "", fmt.Errorf("unknown kind %q (want blackout or highlight)", s)
}

// Source records where a marked date came from.
const (
	SourceManual = "manual"
	SourceICS    = "ics"
)

// MarkedDate represents a marked_dates row. Day is a calendar day stored as
// YYYY-MM-DD, independent of any timezone.
type MarkedDate struct {
	ID        string
	Day       string
	Kind      Kind
	Label     string
	Source    string
	CreatedAt time.Time
}
