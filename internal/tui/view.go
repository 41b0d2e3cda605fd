package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jask/calpick/internal/calendar"
)

func (a *App) View() string {
	var b strings.Builder
	b.WriteString(a.renderHeader())
	b.WriteString("\n\n")
	b.WriteString(a.renderMonth())
	b.WriteString("\n")
	if a.jumping {
		b.WriteString(jumpPromptStyle.Render(a.jump.View()))
		b.WriteString("\n")
	}
	b.WriteString(a.renderStatusBar())
	b.WriteString("\n")
	b.WriteString(a.renderFooter())
	return b.String()
}

func (a *App) renderHeader() string {
	months := a.picker.Months()
	md := months[a.month]
	title := titleStyle.Render(md.Label)
	info := fmt.Sprintf("  %d/%d  mode: %s", a.month+1, len(months), a.picker.Mode())
	if a.picker.Mode() == calendar.ModeRange && a.picker.SelectingNext() {
		info += " (extend)"
	}
	if a.picker.DisplayOnly() {
		info += "  read only"
	}
	return title + subtitleStyle.Render(info)
}

func (a *App) renderMonth() string {
	grid, ok := a.picker.MonthGrid(a.month)
	if !ok {
		return ""
	}
	locale := a.picker.Locale()
	loc := a.picker.Location()

	header := make([]string, 0, 7)
	for _, wd := range locale.Weekdays() {
		header = append(header, weekdayStyle.Render(locale.WeekdayShort(wd)))
	}
	rows := []string{lipgloss.JoinHorizontal(lipgloss.Top, header...)}
	for _, week := range grid {
		cells := make([]string, 0, 7)
		for _, c := range week {
			cursor := c.IsCurrentMonth() && calendar.SameDay(c.Date(), a.cursor, loc)
			cells = append(cells, cellStyleFor(c, cursor).Render(fmt.Sprintf("%d", c.Value())))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (a *App) renderStatusBar() string {
	msg := strings.TrimSpace(a.status)
	if msg == "" {
		msg = a.selectionSummary()
	}
	if a.statusErr {
		return renderBar(statusErrBarStyle, max(1, a.width), msg, colorSurface0)
	}
	return renderBar(statusBarStyle, max(1, a.width), msg, colorSurface0)
}

func (a *App) selectionSummary() string {
	if a.picker.Mode() == calendar.ModeRange {
		r := a.picker.SelectedRange()
		switch {
		case r.IsZero():
			return "pick a start date"
		case !r.Complete():
			return "start " + r.Start.Format(a.dateFormat) + ", pick an end date"
		}
		days := len(a.picker.SelectedDates())
		return fmt.Sprintf("%s .. %s (%d days)", r.Start.Format(a.dateFormat), r.End.Format(a.dateFormat), days)
	}
	dates := a.picker.SelectedDates()
	switch len(dates) {
	case 0:
		return "nothing selected"
	case 1:
		return dates[0].Format(a.dateFormat)
	}
	return fmt.Sprintf("%d dates selected", len(dates))
}

func (a *App) renderFooter() string {
	return footerStyle.Render(a.help.View(a.keys))
}
