package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"cloudeng.io/logging/ctxlog"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/jask/calpick/internal/calendar"
	"github.com/jask/calpick/internal/config"
	"github.com/jask/calpick/internal/database"
	"github.com/jask/calpick/internal/database/repository"
	"github.com/jask/calpick/internal/service"
	"github.com/jask/calpick/internal/tui"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		slog.New(slog.NewTextHandler(os.Stderr, nil)).Error("calpick", "err", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "calpick",
		Short:         "Pick dates from a terminal calendar",
		Long:          "calpick shows a scrollable month calendar bounded by --min and --max and prints the chosen days on confirm.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runPicker,
	}

	pf := root.PersistentFlags()
	pf.String("config", "", "config file (default ~/.config/calpick/config.toml)")
	pf.String("db", "", "sqlite database path")
	pf.String("log-level", "", "log level: debug, info, warn or error")
	pf.String("tz", "", "IANA timezone for the calendar, or Local")

	f := root.Flags()
	f.String("min", "", "first selectable day, YYYY-MM-DD (default today)")
	f.String("max", "", "exclusive upper bound, YYYY-MM-DD (default one year after min)")
	f.String("mode", "", "selection mode: single, multiple or range")
	f.String("locale", "", "BCP 47 locale used for names and the week start")
	f.Bool("selecting-next", false, "in range mode, restart the range from the next click")
	f.Bool("reverse", false, "show the latest month first")
	f.Bool("display-only", false, "render without accepting selections")
	f.StringSlice("highlight", nil, "days to highlight, YYYY-MM-DD")
	f.StringSlice("select", nil, "days selected on start, YYYY-MM-DD")
	f.Bool("weekdays-only", false, "only Monday to Friday are selectable")
	f.Bool("weekends-only", false, "only Saturday and Sunday are selectable")

	root.AddCommand(newBlackoutCmd(), newImportICSCmd(), newSeedCmd())
	return root
}

// env is the state shared by every command once flags are parsed.
type env struct {
	ctx context.Context
	cfg config.Config
	loc *time.Location
	db  *sql.DB
	log io.Closer
}

func (e *env) Close() {
	if e.db != nil {
		_ = e.db.Close()
	}
	if e.log != nil {
		_ = e.log.Close()
	}
}

func setup(cmd *cobra.Command) (*env, error) {
	if p, _ := cmd.Flags().GetString("config"); p != "" {
		if err := os.Setenv("CALPICK_CONFIG", p); err != nil {
			return nil, fmt.Errorf("set config path: %w", err)
		}
	}
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	e := &env{cfg: cfg}
	logFile, err := openLog(cfg.Log.Path)
	if err != nil {
		return nil, err
	}
	e.log = logFile
	e.ctx = ctxlog.NewJSONLogger(cmd.Context(), logFile, &slog.HandlerOptions{Level: parseLevel(cfg.Log.Level)})

	if e.loc, err = cfg.Calendar.Location(); err != nil {
		e.Close()
		return nil, err
	}

	if err := database.RunMigrations(cfg.Database.Path); err != nil {
		e.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	if e.db, err = database.Open(cfg.Database.Path); err != nil {
		e.Close()
		return nil, fmt.Errorf("open db: %w", err)
	}
	ctxlog.Logger(e.ctx).Debug("startup", "db", cfg.Database.Path, "tz", e.loc.String())
	return e, nil
}

func openLog(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("mkdir log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}
	return f, nil
}

func parseLevel(s string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo
	}
	return l
}

func runPicker(cmd *cobra.Command, _ []string) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	defer e.Close()
	ctx, cfg, loc := e.ctx, e.cfg, e.loc
	logger := ctxlog.Logger(ctx)

	locale, err := calendar.ParseLocale(cfg.Calendar.Locale)
	if err != nil {
		return err
	}
	mode, err := calendar.ParseMode(cfg.Calendar.Mode)
	if err != nil {
		return err
	}
	minDate, maxDate, err := cfg.Calendar.Bounds(time.Now(), loc)
	if err != nil {
		return err
	}
	rules, err := service.ParseRules(cfg.Availability.WeekdaysOnly, cfg.Availability.WeekendsOnly, cfg.Availability.RecurringBlackouts)
	if err != nil {
		return err
	}

	avail := &service.Availability{Dates: repository.NewMarkedDateRepo(e.db), Rules: rules}
	plan, err := avail.Load(ctx, minDate, maxDate, loc)
	if err != nil {
		return fmt.Errorf("load availability: %w", err)
	}
	if plan.Invalid != nil {
		logger.Warn("skipped stored dates", "err", plan.Invalid)
	}

	extra, err := parseDays(cfg.Calendar.Highlight, loc)
	if err != nil {
		return fmt.Errorf("highlight: %w", err)
	}
	plan.Highlights = append(plan.Highlights, inBounds(extra, minDate, maxDate, logger)...)

	raw, _ := cmd.Flags().GetStringSlice("select")
	selected, err := parseDays(raw, loc)
	if err != nil {
		return fmt.Errorf("select: %w", err)
	}

	app, err := tui.New(ctx, tui.Options{
		Min:           minDate,
		Max:           maxDate,
		Location:      loc,
		Locale:        locale,
		Mode:          mode,
		SelectingNext: cfg.Calendar.SelectingNext,
		Reverse:       cfg.Calendar.ReverseOrder,
		DisplayOnly:   cfg.Calendar.DisplayOnly,
		MonthTitles:   cfg.Calendar.MonthTitles,
		Selected:      selected,
		Plan:          plan,
		DateFormat:    cfg.UI.DateFormat,
		Store:         avail,
		Logger:        logger,
	})
	if err != nil {
		return err
	}

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	if !app.Confirmed() {
		logger.Info("picker cancelled")
		return nil
	}
	out := cmd.OutOrStdout()
	for _, d := range app.Selected() {
		fmt.Fprintln(out, d.Format(cfg.UI.DateFormat))
	}
	return nil
}

func parseDays(raw []string, loc *time.Location) ([]time.Time, error) {
	out := make([]time.Time, 0, len(raw))
	for _, s := range raw {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		t, err := time.ParseInLocation(time.DateOnly, s, loc)
		if err != nil {
			return nil, fmt.Errorf("parse %q: %w", s, err)
		}
		out = append(out, t)
	}
	return out, nil
}

// inBounds drops configured days outside [minDate, maxDate) so a stale
// config list does not stop the picker from starting.
func inBounds(days []time.Time, minDate, maxDate time.Time, logger *slog.Logger) []time.Time {
	out := days[:0]
	for _, d := range days {
		if !calendar.InBounds(d, minDate, maxDate) {
			logger.Debug("highlight out of range", "day", d.Format(time.DateOnly))
			continue
		}
		out = append(out, d)
	}
	return out
}
