package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/jask/calpick/internal/calendar"
)

const cellWidth = 4

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Underline(true).Foreground(colorAccent)
	subtitleStyle = lipgloss.NewStyle().Foreground(colorMuted)
	weekdayStyle  = lipgloss.NewStyle().Foreground(colorMuted).Bold(true).Width(cellWidth).Align(lipgloss.Right)

	cellStyle        = lipgloss.NewStyle().Foreground(colorText).Width(cellWidth).Align(lipgloss.Right)
	otherMonthStyle  = cellStyle.Foreground(colorBorder)
	disabledStyle    = cellStyle.Foreground(colorSurface1).Strikethrough(true)
	highlightedStyle = cellStyle.Foreground(colorWarn)
	selectedStyle    = cellStyle.Foreground(colorBase).Background(colorAccent).Bold(true)
	rangeMiddleStyle = cellStyle.Foreground(colorText).Background(colorSurface0)

	statusBarStyle    = lipgloss.NewStyle().Foreground(colorSuccess).Background(colorSurface0)
	statusErrBarStyle = lipgloss.NewStyle().Foreground(colorError).Background(colorSurface0)
	footerStyle       = lipgloss.NewStyle().Background(colorMantle)
	jumpPromptStyle   = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
)

// cellStyleFor picks the style of c. Selection wins over highlight, which
// wins over the plain and disabled looks.
func cellStyleFor(c *calendar.Cell, cursor bool) lipgloss.Style {
	var s lipgloss.Style
	switch {
	case !c.IsCurrentMonth():
		s = otherMonthStyle
	case c.RangeState() == calendar.RangeMiddle:
		s = rangeMiddleStyle
	case c.IsSelected():
		s = selectedStyle
	case c.IsHighlighted():
		s = highlightedStyle
	case !c.IsSelectable():
		s = disabledStyle
	default:
		s = cellStyle
	}
	if c.IsToday() {
		s = s.Bold(true).Underline(true)
	}
	if cursor {
		s = s.Reverse(true)
	}
	return s
}

func renderBar(style lipgloss.Style, width int, text string, bg lipgloss.TerminalColor) string {
	line := strings.ReplaceAll(text, "\n", " ")
	line = ansi.Truncate(line, width, "")
	lineW := ansi.StringWidth(line)
	if lineW < width {
		line += strings.Repeat(" ", width-lineW)
	}
	return style.
		Background(bg).
		Width(width).
		MaxWidth(width).
		Render(line)
}
