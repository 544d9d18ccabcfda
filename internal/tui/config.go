package tui

import (
	"time"

	"github.com/Veraticus/payroll-must-balance/internal/report"
	"github.com/Veraticus/payroll-must-balance/internal/tui/themes"
	"github.com/Veraticus/payroll-must-balance/internal/viewmodel"
)

// Config holds TUI configuration.
type Config struct {
	Theme           themes.Theme
	Clock           func() time.Time
	Report          report.Options
	TuitionIncrease float64
	PivotYear       int
	Width           int
	Height          int
	ShowHelp        bool
}

// Option is a functional option for configuring the TUI.
type Option func(*Config)

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		Theme:           themes.Default,
		Clock:           time.Now,
		TuitionIncrease: viewmodel.SliderDefault,
		PivotYear:       viewmodel.DefaultPivotYear,
		Width:           120,
		Height:          40,
	}
}

// WithTheme sets the visual theme.
func WithTheme(theme themes.Theme) Option {
	return func(c *Config) {
		c.Theme = theme
	}
}

// WithSize sets the initial terminal size.
func WithSize(width, height int) Option {
	return func(c *Config) {
		c.Width = width
		c.Height = height
	}
}

// WithTuition sets the starting slider position. The value is snapped to the
// slider grid.
func WithTuition(pct float64) Option {
	return func(c *Config) {
		c.TuitionIncrease = viewmodel.ClampTuition(pct)
	}
}

// WithPivotYear sets the year the start filter splits on.
func WithPivotYear(year int) Option {
	return func(c *Config) {
		if year > 0 {
			c.PivotYear = year
		}
	}
}

// WithReport sets the title, school and signatories of the report view.
func WithReport(opts report.Options) Option {
	return func(c *Config) {
		c.Report = opts
	}
}

// WithClock overrides the timestamp source of the report view.
func WithClock(clock func() time.Time) Option {
	return func(c *Config) {
		if clock != nil {
			c.Clock = clock
		}
	}
}

// WithHelp starts the dashboard with the full help expanded.
func WithHelp(show bool) Option {
	return func(c *Config) {
		c.ShowHelp = show
	}
}
