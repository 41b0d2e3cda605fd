package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Calendar     CalendarConfig     `mapstructure:"calendar"`
	Availability AvailabilityConfig `mapstructure:"availability"`
	Database     DatabaseConfig     `mapstructure:"database"`
	UI           UIConfig           `mapstructure:"ui"`
	Log          LogConfig          `mapstructure:"log"`
}

// CalendarConfig describes the picker bound and selection behaviour.
// Min and Max use the YYYY-MM-DD layout; empty values mean today and one
// year after Min.
type CalendarConfig struct {
	Min           string   `mapstructure:"min"`
	Max           string   `mapstructure:"max"`
	Mode          string   `mapstructure:"mode"`
	Timezone      string   `mapstructure:"timezone"`
	Locale        string   `mapstructure:"locale"`
	SelectingNext bool     `mapstructure:"selecting_next"`
	ReverseOrder  bool     `mapstructure:"reverse_order"`
	DisplayOnly   bool     `mapstructure:"display_only"`
	MonthTitles   []string `mapstructure:"month_titles"`
	Highlight     []string `mapstructure:"highlight"`
}

// AvailabilityConfig holds the static selectability rules layered on top of
// stored blackout dates.
type AvailabilityConfig struct {
	WeekdaysOnly       bool   `mapstructure:"weekdays_only"`
	WeekendsOnly       bool   `mapstructure:"weekends_only"`
	RecurringBlackouts string `mapstructure:"recurring_blackouts"`
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	DateFormat string `mapstructure:"date_format"`
}

// LogConfig controls the JSON log file. stdout belongs to the TUI.
type LogConfig struct {
	Level string `mapstructure:"level"`
	Path  string `mapstructure:"path"`
}

// flagKeys maps command line flags to config keys.
var flagKeys = map[string]string{
	"min":            "calendar.min",
	"max":            "calendar.max",
	"mode":           "calendar.mode",
	"tz":             "calendar.timezone",
	"locale":         "calendar.locale",
	"selecting-next": "calendar.selecting_next",
	"reverse":        "calendar.reverse_order",
	"display-only":   "calendar.display_only",
	"highlight":      "calendar.highlight",
	"weekdays-only":  "availability.weekdays_only",
	"weekends-only":  "availability.weekends_only",
	"db":             "database.path",
	"log-level":      "log.level",
}

func dataDir() string {
	return filepath.Join(os.Getenv("HOME"), ".local", "share", "calpick")
}

// Path returns the config file location: CALPICK_CONFIG when set, else
// ~/.config/calpick/config.toml.
func Path() string {
	if p := os.Getenv("CALPICK_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(os.Getenv("HOME"), ".config", "calpick", "config.toml")
}

func newViper() *viper.Viper {
	v := viper.New()

	v.SetDefault("calendar.min", "")
	v.SetDefault("calendar.max", "")
	v.SetDefault("calendar.mode", "single")
	v.SetDefault("calendar.timezone", "Local")
	v.SetDefault("calendar.locale", "en-US")
	v.SetDefault("calendar.selecting_next", false)
	v.SetDefault("calendar.reverse_order", false)
	v.SetDefault("calendar.display_only", false)
	v.SetDefault("calendar.month_titles", []string{})
	v.SetDefault("calendar.highlight", []string{})
	v.SetDefault("availability.weekdays_only", false)
	v.SetDefault("availability.weekends_only", false)
	v.SetDefault("availability.recurring_blackouts", "")
	v.SetDefault("database.path", filepath.Join(dataDir(), "calpick.db"))
	v.SetDefault("ui.date_format", time.DateOnly)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.path", filepath.Join(dataDir(), "calpick.log"))

	v.SetConfigType("toml")
	v.SetEnvPrefix("CALPICK")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	return v
}

// Load reads configuration from defaults, the config file, env vars with
// prefix CALPICK_ and, when flags is non-nil, explicitly set flags.
func Load(flags *pflag.FlagSet) (Config, error) {
	v := newViper()

	if p := os.Getenv("CALPICK_CONFIG"); p != "" {
		v.SetConfigFile(p)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", p, err)
		}
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "calpick"))
		v.SetConfigName("config")
		// read config file if present
		_ = v.ReadInConfig()
	}

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return Config{}, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

// Save writes cfg to Path, creating the config directory if needed.
func Save(cfg Config) error {
	path := Path()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("calendar.min", cfg.Calendar.Min)
	v.Set("calendar.max", cfg.Calendar.Max)
	v.Set("calendar.mode", cfg.Calendar.Mode)
	v.Set("calendar.timezone", cfg.Calendar.Timezone)
	v.Set("calendar.locale", cfg.Calendar.Locale)
	v.Set("calendar.selecting_next", cfg.Calendar.SelectingNext)
	v.Set("calendar.reverse_order", cfg.Calendar.ReverseOrder)
	v.Set("calendar.display_only", cfg.Calendar.DisplayOnly)
	if len(cfg.Calendar.MonthTitles) > 0 {
		v.Set("calendar.month_titles", cfg.Calendar.MonthTitles)
	}
	if len(cfg.Calendar.Highlight) > 0 {
		v.Set("calendar.highlight", cfg.Calendar.Highlight)
	}
	v.Set("availability.weekdays_only", cfg.Availability.WeekdaysOnly)
	v.Set("availability.weekends_only", cfg.Availability.WeekendsOnly)
	v.Set("availability.recurring_blackouts", cfg.Availability.RecurringBlackouts)
	v.Set("database.path", cfg.Database.Path)
	v.Set("ui.date_format", cfg.UI.DateFormat)
	v.Set("log.level", cfg.Log.Level)
	v.Set("log.path", cfg.Log.Path)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Location resolves the configured timezone. "Local" and "" map to time.Local.
func (c CalendarConfig) Location() (*time.Location, error) {
	switch c.Timezone {
	case "", "Local", "local":
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// Bounds resolves Min and Max in loc relative to now.
func (c CalendarConfig) Bounds(now time.Time, loc *time.Location) (minDate, maxDate time.Time, err error) {
	y, m, d := now.In(loc).Date()
	minDate = time.Date(y, m, d, 0, 0, 0, 0, loc)
	if c.Min != "" {
		if minDate, err = time.ParseInLocation(time.DateOnly, c.Min, loc); err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("parse calendar.min: %w", err)
		}
	}
	maxDate = minDate.AddDate(1, 0, 0)
	if c.Max != "" {
		if maxDate, err = time.ParseInLocation(time.DateOnly, c.Max, loc); err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("parse calendar.max: %w", err)
		}
	}
	return minDate, maxDate, nil
}
