// Package themes holds the color palettes of the payroll dashboard.
package themes

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/payroll-must-balance/internal/model"
)

// Theme defines the visual style for the TUI.
type Theme struct {
	Title         lipgloss.Style
	Subtitle      lipgloss.Style
	Normal        lipgloss.Style
	Bold          lipgloss.Style
	Selected      lipgloss.Style
	Highlighted   lipgloss.Style
	BorderedBox   lipgloss.Style
	RoundedBox    lipgloss.Style
	Card          lipgloss.Style
	CardLabel     lipgloss.Style
	TableHeader   lipgloss.Style
	StatusSuccess lipgloss.Style
	StatusWarning lipgloss.Style
	StatusError   lipgloss.Style
	StatusInfo    lipgloss.Style
	StatusPending lipgloss.Style
	Name          string
	Primary       lipgloss.Color
	Secondary     lipgloss.Color
	Success       lipgloss.Color
	Warning       lipgloss.Color
	Error         lipgloss.Color
	Info          lipgloss.Color
	Background    lipgloss.Color
	Foreground    lipgloss.Color
	Border        lipgloss.Color
	Muted         lipgloss.Color
	Subtle        lipgloss.Color
	Surface       lipgloss.Color
}

type palette struct {
	name       string
	primary    string
	secondary  string
	success    string
	warning    string
	errorColor string
	info       string
	background string
	foreground string
	border     string
	muted      string
	subtle     string
	surface    string
}

func newTheme(p palette) Theme {
	fg := lipgloss.Color(p.foreground)
	border := lipgloss.Color(p.border)

	return Theme{
		Name:       p.name,
		Primary:    lipgloss.Color(p.primary),
		Secondary:  lipgloss.Color(p.secondary),
		Success:    lipgloss.Color(p.success),
		Warning:    lipgloss.Color(p.warning),
		Error:      lipgloss.Color(p.errorColor),
		Info:       lipgloss.Color(p.info),
		Background: lipgloss.Color(p.background),
		Foreground: fg,
		Border:     border,
		Muted:      lipgloss.Color(p.muted),
		Subtle:     lipgloss.Color(p.subtle),
		Surface:    lipgloss.Color(p.surface),

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(p.primary)),
		Subtitle: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.subtle)),
		Normal: lipgloss.NewStyle().
			Foreground(fg),
		Bold: lipgloss.NewStyle().
			Bold(true).
			Foreground(fg),
		Selected: lipgloss.NewStyle().
			Background(lipgloss.Color(p.primary)).
			Foreground(lipgloss.Color(p.background)).
			Bold(true),
		Highlighted: lipgloss.NewStyle().
			Background(lipgloss.Color(p.surface)).
			Foreground(fg),

		BorderedBox: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(border),
		RoundedBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Padding(0, 1),
		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Padding(0, 1),
		CardLabel: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.muted)),
		TableHeader: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(p.secondary)).
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(border).
			BorderBottom(true),

		StatusSuccess: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.success)).
			Bold(true),
		StatusWarning: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.warning)).
			Bold(true),
		StatusError: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.errorColor)).
			Bold(true),
		StatusInfo: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.info)).
			Bold(true),
		StatusPending: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.muted)).
			Italic(true),
	}
}

// Default is the default theme.
var Default = newTheme(palette{
	name:       "default",
	primary:    "#7c3aed",
	secondary:  "#a78bfa",
	success:    "#10b981",
	warning:    "#f59e0b",
	errorColor: "#ef4444",
	info:       "#3b82f6",
	background: "#1a1a1a",
	foreground: "#fafafa",
	border:     "#404040",
	muted:      "#737373",
	subtle:     "#a3a3a3",
	surface:    "#262626",
})

// CatppuccinMocha is the Catppuccin Mocha theme.
var CatppuccinMocha = newTheme(palette{
	name:       "catppuccin-mocha",
	primary:    "#cba6f7",
	secondary:  "#f5c2e7",
	success:    "#a6e3a1",
	warning:    "#f9e2af",
	errorColor: "#f38ba8",
	info:       "#89dceb",
	background: "#1e1e2e",
	foreground: "#cdd6f4",
	border:     "#45475a",
	muted:      "#6c7086",
	subtle:     "#a6adc8",
	surface:    "#313244",
})

// GetTheme returns a theme by name. Unknown names fall back to Default.
func GetTheme(name string) Theme {
	switch name {
	case CatppuccinMocha.Name:
		return CatppuccinMocha
	default:
		return Default
	}
}

// Verdict returns the style for a surplus or a deficit.
func (t Theme) Verdict(sustainable bool) lipgloss.Style {
	if sustainable {
		return t.StatusSuccess
	}
	return t.StatusError
}

// CategoryColor gives each tier its own accent in charts.
func (t Theme) CategoryColor(c model.Category) lipgloss.Color {
	switch c {
	case model.CategoryManagement:
		return t.Primary
	case model.CategoryEducators:
		return t.Info
	case model.CategoryAssistants:
		return t.Secondary
	case model.CategorySupport:
		return t.Warning
	default:
		return t.Muted
	}
}
