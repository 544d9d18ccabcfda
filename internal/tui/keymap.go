package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all keyboard shortcuts.
type KeyMap struct {
	// Tuition slider
	TuitionDown key.Binding
	TuitionUp   key.Binding

	// Table navigation, handled by the table component
	Up   key.Binding
	Down key.Binding

	// Filters and sorting
	CycleGroup   key.Binding
	CycleDegree  key.Binding
	CycleStart   key.Binding
	CycleSort    key.Binding
	ReverseSort  key.Binding
	ResetFilters key.Binding

	// Scenario
	ToggleDegree key.Binding

	// Views
	NextView key.Binding
	PrevView key.Binding

	// Application
	Help key.Binding
	Quit key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		TuitionDown: key.NewBinding(
			key.WithKeys("left", "h", "-"),
			key.WithHelp("←/h", "tuition -0.5%"),
		),
		TuitionUp: key.NewBinding(
			key.WithKeys("right", "l", "+"),
			key.WithHelp("→/l", "tuition +0.5%"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		CycleGroup: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "category group"),
		),
		CycleDegree: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "degree filter"),
		),
		CycleStart: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "start year filter"),
		),
		CycleSort: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "sort column"),
		),
		ReverseSort: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reverse sort"),
		),
		ResetFilters: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "clear filters"),
		),
		ToggleDegree: key.NewBinding(
			key.WithKeys(" ", "space", "enter"),
			key.WithHelp("space", "toggle MA"),
		),
		NextView: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next view"),
		),
		PrevView: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "previous view"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.TuitionDown, k.TuitionUp, k.ToggleDegree, k.NextView, k.Help, k.Quit}
}

// FullHelp returns all key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.TuitionDown, k.TuitionUp, k.ToggleDegree},
		{k.Up, k.Down, k.NextView, k.PrevView},
		{k.CycleGroup, k.CycleDegree, k.CycleStart, k.ResetFilters},
		{k.CycleSort, k.ReverseSort, k.Help, k.Quit},
	}
}
