package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/calpick/internal/calendar"
	"github.com/jask/calpick/internal/service"
)

// AvailabilityStore is the persistence the TUI needs for blackout edits.
// *service.Availability satisfies it.
type AvailabilityStore interface {
	ToggleBlackout(ctx context.Context, day time.Time) (bool, error)
	Load(ctx context.Context, minDate, maxDate time.Time, loc *time.Location) (service.Plan, error)
}

// Options configures the picker shown by App.
type Options struct {
	Min, Max      time.Time
	Location      *time.Location
	Locale        calendar.Locale
	Mode          calendar.Mode
	SelectingNext bool
	Reverse       bool
	DisplayOnly   bool
	MonthTitles   []string
	Selected      []time.Time
	Plan          service.Plan
	DateFormat    string
	Store         AvailabilityStore
	Now           func() time.Time
	Logger        *slog.Logger
}

// App is the bubbletea model rendering one calendar.Picker.
type App struct {
	ctx        context.Context
	picker     *calendar.Picker
	store      AvailabilityStore
	keys       keyMap
	help       help.Model
	jump       textinput.Model
	jumping    bool
	month      int
	cursor     time.Time
	now        func() time.Time
	dateFormat string
	width      int
	status     string
	statusErr  bool
	confirmed  bool
}

type statusMsg string

type errMsg struct{ err error }

type planMsg struct {
	plan    service.Plan
	day     time.Time
	blocked bool
}

// New builds the picker from opts and positions the cursor on the scroll
// target.
func New(ctx context.Context, opts Options) (*App, error) {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.DateFormat == "" {
		opts.DateFormat = time.DateOnly
	}
	a := &App{
		ctx:        ctx,
		store:      opts.Store,
		keys:       defaultKeys(),
		help:       help.New(),
		now:        opts.Now,
		dateFormat: opts.DateFormat,
		width:      40,
	}
	a.jump = textinput.New()
	a.jump.Placeholder = "2024-07, jul, März 2025"
	a.jump.Prompt = "jump: "
	a.jump.CharLimit = 32

	a.picker = calendar.New(
		calendar.WithListener(a.listener()),
		calendar.WithSelectableFunc(opts.Plan.Selectable),
		calendar.WithClock(opts.Now),
		calendar.WithLogger(opts.Logger),
		calendar.WithMonthsReverseOrder(opts.Reverse),
		calendar.WithDisplayOnly(opts.DisplayOnly),
	)
	if _, err := a.picker.Init(opts.Min, opts.Max, opts.Location, opts.Locale); err != nil {
		return nil, err
	}
	a.picker.SetMode(opts.Mode)
	a.picker.SetSelectingNext(opts.SelectingNext)
	if err := a.picker.SetMonthTitles(opts.MonthTitles); err != nil {
		return nil, err
	}
	if err := a.picker.SelectDates(opts.Selected...); err != nil {
		return nil, fmt.Errorf("preselect: %w", err)
	}
	if err := a.picker.HighlightDates(opts.Plan.Highlights...); err != nil {
		return nil, fmt.Errorf("highlight: %w", err)
	}
	a.status = ""
	a.statusErr = false

	a.placeCursor()
	return a, nil
}

// placeCursor focuses the scroll target month, on its first selected day
// or today when either falls inside it.
func (a *App) placeCursor() {
	a.month = 0
	if i, ok := a.picker.ScrollTarget(); ok {
		a.month = i
	}
	md := a.picker.Months()[a.month]
	loc := a.picker.Location()
	a.cursor = md.FirstDay
	for _, d := range a.picker.SelectedDates() {
		if calendar.SameMonth(d, md.Key(), loc) {
			a.cursor = d
			return
		}
	}
	if now := a.now(); calendar.SameMonth(now, md.Key(), loc) {
		a.cursor = calendar.Midnight(now, loc)
	}
}

func (a *App) listener() calendar.Listener {
	return calendar.ListenerFuncs{
		OnSelect: func(d time.Time) {
			a.setStatus("selected "+d.Format(a.dateFormat), false)
		},
		OnUnselect: func(d time.Time) {
			a.setStatus("unselected "+d.Format(a.dateFormat), false)
		},
		OnRange: func(start, end time.Time) {
			a.setStatus(fmt.Sprintf("range %s .. %s", start.Format(a.dateFormat), end.Format(a.dateFormat)), false)
		},
		OnInvalid: func(d time.Time) {
			a.setStatus(d.Format(a.dateFormat)+" is not selectable", true)
		},
	}
}

func (a *App) setStatus(s string, isErr bool) {
	a.status = s
	a.statusErr = isErr
}

// Picker exposes the underlying engine.
func (a *App) Picker() *calendar.Picker { return a.picker }

// Cursor returns the focused day.
func (a *App) Cursor() time.Time { return a.cursor }

// Month returns the display index of the visible month.
func (a *App) Month() int { return a.month }

// Confirmed reports whether the user finished with enter rather than quit.
func (a *App) Confirmed() bool { return a.confirmed }

// Selected returns the chosen days when the user confirmed, else nil.
func (a *App) Selected() []time.Time {
	if !a.confirmed {
		return nil
	}
	return a.picker.SelectedDates()
}

func (a *App) Init() tea.Cmd {
	return nil
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = m.Width
		a.help.Width = m.Width
	case statusMsg:
		a.setStatus(string(m), false)
	case errMsg:
		a.setStatus(m.err.Error(), true)
	case planMsg:
		a.applyPlan(m.plan)
		verb := "freed"
		if m.blocked {
			verb = "blacked out"
		}
		a.setStatus(m.day.Format(a.dateFormat)+" "+verb, false)
	case tea.KeyMsg:
		if a.jumping {
			return a.handleJumpKey(m)
		}
		return a.handleKey(m)
	}
	return a, nil
}

func (a *App) handleKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(m, a.keys.Quit):
		return a, tea.Quit
	case key.Matches(m, a.keys.Confirm):
		a.confirmed = true
		return a, tea.Quit
	case key.Matches(m, a.keys.Left):
		a.moveCursor(0, -1)
	case key.Matches(m, a.keys.Right):
		a.moveCursor(0, 1)
	case key.Matches(m, a.keys.Up):
		a.moveCursor(0, -7)
	case key.Matches(m, a.keys.Down):
		a.moveCursor(0, 7)
	case key.Matches(m, a.keys.PrevMonth):
		a.stepMonth(-1)
	case key.Matches(m, a.keys.NextMonth):
		a.stepMonth(1)
	case key.Matches(m, a.keys.Today):
		a.moveTo(a.now())
	case key.Matches(m, a.keys.Select):
		if a.picker.DisplayOnly() {
			a.setStatus("read only", true)
			break
		}
		a.picker.Click(a.cursor)
	case key.Matches(m, a.keys.Clear):
		a.picker.ClearSelection()
		a.setStatus("selection cleared", false)
	case key.Matches(m, a.keys.Mode):
		next := (a.picker.Mode() + 1) % 3
		a.picker.SetMode(next)
		a.setStatus("mode: "+next.String(), false)
	case key.Matches(m, a.keys.Blackout):
		return a, a.toggleBlackoutCmd(a.cursor)
	case key.Matches(m, a.keys.Jump):
		a.jumping = true
		a.jump.Reset()
		return a, a.jump.Focus()
	case key.Matches(m, a.keys.Help):
		a.help.ShowAll = !a.help.ShowAll
	}
	return a, nil
}

func (a *App) handleJumpKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.Type {
	case tea.KeyEsc, tea.KeyCtrlC:
		a.jumping = false
		a.jump.Blur()
		return a, nil
	case tea.KeyEnter:
		a.jumping = false
		a.jump.Blur()
		query := strings.TrimSpace(a.jump.Value())
		i, ok := service.ResolveMonth(query, a.picker.Months(), a.picker.Locale())
		if !ok {
			a.setStatus(fmt.Sprintf("no month matches %q", query), true)
			return a, nil
		}
		a.month = i
		a.cursor = a.picker.Months()[i].FirstDay
		a.setStatus("", false)
		return a, nil
	}
	var cmd tea.Cmd
	a.jump, cmd = a.jump.Update(m)
	return a, cmd
}

// moveCursor shifts the cursor and keeps it inside the rendered months.
func (a *App) moveCursor(months, days int) {
	next := calendar.Midnight(a.cursor.AddDate(0, months, days), a.picker.Location())
	a.moveTo(next)
}

func (a *App) moveTo(t time.Time) {
	t = calendar.Midnight(t, a.picker.Location())
	i, ok := a.picker.MonthIndexOf(t)
	if !ok {
		a.setStatus(t.Format(a.dateFormat)+" is outside the calendar", true)
		return
	}
	a.cursor = t
	a.month = i
}

// stepMonth moves one month in display order, keeping the day of month
// where the target month has it.
func (a *App) stepMonth(delta int) {
	months := a.picker.Months()
	i := a.month + delta
	if i < 0 || i >= len(months) {
		return
	}
	first := months[i].FirstDay
	day := a.cursor.Day()
	if last := first.AddDate(0, 1, -1).Day(); day > last {
		day = last
	}
	a.month = i
	a.cursor = time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, first.Location())
}

func (a *App) toggleBlackoutCmd(day time.Time) tea.Cmd {
	if a.store == nil {
		return func() tea.Msg { return errMsg{fmt.Errorf("no availability store configured")} }
	}
	minDate, maxDate := a.picker.Bounds()
	loc := a.picker.Location()
	return func() tea.Msg {
		blocked, err := a.store.ToggleBlackout(a.ctx, day)
		if err != nil {
			return errMsg{err}
		}
		plan, err := a.store.Load(a.ctx, minDate, maxDate, loc)
		if err != nil {
			return errMsg{fmt.Errorf("reload availability: %w", err)}
		}
		return planMsg{plan: plan, day: day, blocked: blocked}
	}
}

// applyPlan swaps in a freshly loaded availability plan. It runs on the
// Update goroutine only.
func (a *App) applyPlan(plan service.Plan) {
	a.picker.SetSelectableFunc(plan.Selectable)
	a.picker.ClearHighlights()
	if err := a.picker.HighlightDates(plan.Highlights...); err != nil {
		a.setStatus(err.Error(), true)
	}
}
