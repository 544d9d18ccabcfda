// Package tui is the interactive payroll dashboard.
package tui

import (
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Veraticus/payroll-must-balance/internal/engine"
	"github.com/Veraticus/payroll-must-balance/internal/model"
	"github.com/Veraticus/payroll-must-balance/internal/report"
	"github.com/Veraticus/payroll-must-balance/internal/tui/components"
	"github.com/Veraticus/payroll-must-balance/internal/tui/themes"
	"github.com/Veraticus/payroll-must-balance/internal/viewmodel"
)

// ErrNoEngine is returned when the dashboard is built without an engine.
var ErrNoEngine = errors.New("dashboard requires an engine")

// View represents the current view mode.
type View int

const (
	ViewDashboard View = iota
	ViewCharts
	ViewReport
	viewCount
)

func (v View) String() string {
	switch v {
	case ViewDashboard:
		return "Dashboard"
	case ViewCharts:
		return "Charts"
	case ViewReport:
		return "Report"
	default:
		return "Unknown"
	}
}

// Model holds the dashboard state. The roster is a session copy: degree
// toggles change it but are never written back.
type Model struct {
	theme       themes.Theme
	clock       func() time.Time
	engine      *engine.Engine
	seed        model.Roster
	roster      model.Roster
	projections []model.EmployeeProjection
	table       viewmodel.Table
	reportOpts  report.Options
	stats       model.FinancialStats
	employees   components.EmployeeTableModel
	statsPanel  components.StatsPanelModel
	gauge       components.GaugeModel
	charts      components.ChartsModel
	report      viewport.Model
	help        help.Model
	keymap      KeyMap
	filters     viewmodel.Filters
	tuition     float64
	sortField   viewmodel.SortField
	width       int
	height      int
	view        View
	descending  bool
	quitting    bool
}

// New creates a dashboard over roster. The roster slice is copied.
func New(eng *engine.Engine, roster model.Roster, opts ...Option) (Model, error) {
	if eng == nil {
		return Model{}, ErrNoEngine
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	seed := make(model.Roster, len(roster))
	copy(seed, roster)

	filters := viewmodel.DefaultFilters()
	filters.PivotYear = cfg.PivotYear

	m := Model{
		theme:      cfg.Theme,
		clock:      cfg.Clock,
		engine:     eng,
		seed:       seed,
		roster:     seed,
		reportOpts: cfg.Report,
		employees:  components.NewEmployeeTableModel(cfg.Theme),
		statsPanel: components.NewStatsPanelModel(cfg.Theme),
		gauge:      components.NewGaugeModel(cfg.Theme),
		charts:     components.NewChartsModel(cfg.Theme),
		report:     viewport.New(cfg.Width, cfg.Height),
		help:       help.New(),
		keymap:     DefaultKeyMap(),
		filters:    filters,
		tuition:    viewmodel.ClampTuition(cfg.TuitionIncrease),
		width:      cfg.Width,
		height:     cfg.Height,
	}
	m.help.ShowAll = cfg.ShowHelp

	m.handleResize()
	m.recompute()
	return m, nil
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.handleResize()
		m.refreshReport()
		return m, nil

	case tea.KeyMsg:
		if handled, cmd := m.handleKeys(msg); handled {
			return m, cmd
		}
	}

	var cmd tea.Cmd
	switch m.view {
	case ViewDashboard:
		m.employees, cmd = m.employees.Update(msg)
	case ViewReport:
		m.report, cmd = m.report.Update(msg)
	}
	return m, cmd
}

// handleKeys applies dashboard keys. Keys it does not claim fall through to
// the active component.
func (m *Model) handleKeys(msg tea.KeyMsg) (bool, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.quitting = true
		return true, tea.Quit

	case key.Matches(msg, m.keymap.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.handleResize()

	case key.Matches(msg, m.keymap.NextView):
		m.setView((m.view + 1) % viewCount)

	case key.Matches(msg, m.keymap.PrevView):
		m.setView((m.view + viewCount - 1) % viewCount)

	case key.Matches(msg, m.keymap.TuitionDown):
		m.setTuition(m.tuition - viewmodel.SliderStep)

	case key.Matches(msg, m.keymap.TuitionUp):
		m.setTuition(m.tuition + viewmodel.SliderStep)

	case key.Matches(msg, m.keymap.CycleGroup):
		m.filters.Group = m.filters.Group.Next()
		m.recompute()

	case key.Matches(msg, m.keymap.CycleDegree):
		m.filters.Degree = m.filters.Degree.Next()
		m.recompute()

	case key.Matches(msg, m.keymap.CycleStart):
		m.filters.Start = m.filters.Start.Next()
		m.recompute()

	case key.Matches(msg, m.keymap.ResetFilters):
		m.filters = viewmodel.Filters{PivotYear: m.filters.PivotYear}
		m.recompute()

	case key.Matches(msg, m.keymap.CycleSort):
		m.sortField = m.sortField.Next()
		m.recompute()

	case key.Matches(msg, m.keymap.ReverseSort):
		m.descending = !m.descending
		m.recompute()

	case key.Matches(msg, m.keymap.ToggleDegree):
		if m.view != ViewDashboard {
			return false, nil
		}
		m.toggleSelectedDegree()

	default:
		return false, nil
	}
	return true, nil
}

func (m *Model) setView(v View) {
	m.view = v
	m.refreshReport()
}

func (m *Model) setTuition(pct float64) {
	pct = viewmodel.ClampTuition(pct)
	if pct == m.tuition {
		return
	}
	m.tuition = pct
	m.recompute()
}

func (m *Model) toggleSelectedDegree() {
	p, ok := m.employees.Selected()
	if !ok {
		return
	}
	m.roster = m.roster.WithAdvancedDegreeToggled(p.Employee.ID)
	m.recompute()
}

// recompute re-runs the engine for the current inputs and refreshes every
// derived view.
func (m *Model) recompute() {
	policy := m.engine.Policy()

	m.projections = m.engine.Project(m.roster)
	m.stats = m.engine.CalculateProjections(m.projections, m.tuition)
	m.table = viewmodel.BuildTable(m.projections, m.filters, m.sortField, m.descending)

	m.employees.SetRows(m.table.Rows)
	m.statsPanel.SetStats(m.stats)
	m.gauge.Set(m.tuition, m.stats.BreakEvenTuition, m.stats.IsSustainable)
	m.charts.SetData(
		m.stats,
		viewmodel.TenureBuckets(m.engine.Table(), policy.ReferenceYear, m.projections),
		viewmodel.Waterfall(m.stats),
		viewmodel.CompareGross(m.stats, policy.ReferenceYear),
	)
	m.refreshReport()
}

// refreshReport rebuilds the report text. It only runs while the report view
// is visible.
func (m *Model) refreshReport() {
	if m.view != ViewReport {
		return
	}
	doc := report.Build(m.engine, m.roster, m.tuition, m.clock(), m.reportOpts)
	m.report.SetContent(report.RenderText(doc))
}

// handleResize adjusts component sizes when the terminal resizes.
func (m *Model) handleResize() {
	inner := max(m.width-4, 20)
	m.help.Width = inner

	m.statsPanel.Resize(inner)
	m.gauge.Resize(inner / 2)
	m.charts.Resize(inner)

	// header, cards, gauge, totals, status bar and help
	reserved := 18
	if m.width < 100 {
		// cards stack in two rows
		reserved += 4
	}
	if m.help.ShowAll {
		reserved += 4
	}
	m.employees.Resize(inner, m.height-reserved)

	m.report.Width = inner
	m.report.Height = max(m.height-6, 3)
}

// Tuition returns the current slider value.
func (m Model) Tuition() float64 { return m.tuition }

// Stats returns the financial stats for the current scenario.
func (m Model) Stats() model.FinancialStats { return m.stats }

// Table returns the filtered, sorted employee view.
func (m Model) Table() viewmodel.Table { return m.table }

// Roster returns the session roster including degree toggles.
func (m Model) Roster() model.Roster { return m.roster }

// CurrentView returns the active view.
func (m Model) CurrentView() View { return m.view }

// Overrides counts employees whose degree flag differs from the seed roster.
func (m Model) Overrides() int {
	n := 0
	for i := range m.roster {
		if i < len(m.seed) && m.roster[i].AdvancedDegree != m.seed[i].AdvancedDegree {
			n++
		}
	}
	return n
}
