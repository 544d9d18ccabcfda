package components

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/payroll-must-balance/internal/engine"
	"github.com/Veraticus/payroll-must-balance/internal/model"
	"github.com/Veraticus/payroll-must-balance/internal/testutil/rosters"
	"github.com/Veraticus/payroll-must-balance/internal/tui/themes"
	"github.com/Veraticus/payroll-must-balance/internal/viewmodel"
)

func seedProjections(t *testing.T) (*engine.Engine, []model.EmployeeProjection) {
	t.Helper()
	eng, err := engine.New(model.DefaultPolicy())
	require.NoError(t, err)
	return eng, eng.Project(rosters.Seed())
}

func TestGaugeModel(t *testing.T) {
	tests := []struct {
		name        string
		want        string
		tuition     float64
		breakEven   float64
		fill        float64
		sustainable bool
	}{
		{name: "deficit with marker", tuition: 6, breakEven: 8, fill: 0.6, want: "break-even"},
		{name: "surplus", tuition: 10, breakEven: 8, fill: 1, sustainable: true, want: "SURPLUS"},
		{name: "beyond slider", tuition: 6, breakEven: 11.97, fill: 0.6, want: "beyond the slider"},
		{name: "no increase needed", tuition: 0, fill: 0, sustainable: true, want: "without a tuition increase"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGaugeModel(themes.Default)
			g.Resize(40)
			g.Set(tt.tuition, tt.breakEven, tt.sustainable)

			assert.InDelta(t, tt.fill, g.Fill(), 1e-9)
			assert.Contains(t, g.View(), tt.want)
		})
	}
}

func TestGaugeModel_ResizeBounds(t *testing.T) {
	g := NewGaugeModel(themes.Default)

	g.Resize(5)
	assert.Equal(t, minGaugeWidth, g.width)

	g.Resize(500)
	assert.Equal(t, maxGaugeWidth, g.width)
}

func TestStatsPanelModel(t *testing.T) {
	eng, projections := seedProjections(t)
	stats := eng.CalculateProjections(projections, 6)

	m := NewStatsPanelModel(themes.Default)
	m.SetStats(stats)

	kpis := m.KPIs()
	require.Len(t, kpis, 4)
	assert.Equal(t, "Revenue growth", kpis[0].Label)
	assert.Equal(t, "52.593,79 KM", kpis[0].Value)
	assert.Equal(t, "104.953,09 KM", kpis[1].Value)
	assert.Equal(t, "Break-even tuition", kpis[3].Label)

	m.Resize(140)
	assert.False(t, m.compact)
	assert.Contains(t, m.View(), "Operational buffer")

	m.Resize(80)
	assert.True(t, m.compact)
	assert.Contains(t, m.View(), "Break-even tuition")
}

func TestStatsPanelModel_NoBreakEvenNeeded(t *testing.T) {
	m := NewStatsPanelModel(themes.Default)
	m.SetStats(model.FinancialStats{IsSustainable: true})

	assert.Equal(t, "none needed", m.KPIs()[3].Value)
}

func TestEmployeeTableModel(t *testing.T) {
	_, projections := seedProjections(t)

	m := NewEmployeeTableModel(themes.Default)
	m.Resize(140, 20)
	m.SetRows(projections)
	assert.Equal(t, rosters.SeedSize, m.Len())

	sel, ok := m.Selected()
	require.True(t, ok)
	assert.Equal(t, 1, sel.Employee.ID)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	sel, _ = m.Selected()
	assert.Equal(t, 3, sel.Employee.ID)

	// the cursor follows the employee when rows are reordered
	reversed := make([]model.EmployeeProjection, len(projections))
	copy(reversed, projections)
	viewmodel.Sort(reversed, viewmodel.SortByID, true)
	m.SetRows(reversed)
	sel, _ = m.Selected()
	assert.Equal(t, 3, sel.Employee.ID)

	assert.Contains(t, m.View(), "HUREMOVIĆ ARMINA")
}

func TestEmployeeTableModel_CompactAndEmpty(t *testing.T) {
	_, projections := seedProjections(t)

	m := NewEmployeeTableModel(themes.Default)
	m.SetRows(projections)
	m.Resize(80, 10)
	assert.True(t, m.compact)
	assert.Len(t, m.columns(), 7)

	m.SetRows(nil)
	_, ok := m.Selected()
	assert.False(t, ok)
	assert.Contains(t, m.View(), "No employees match")
}

func TestChartsModel(t *testing.T) {
	eng, projections := seedProjections(t)
	stats := eng.CalculateProjections(projections, 6)
	policy := eng.Policy()

	m := NewChartsModel(themes.CatppuccinMocha)
	m.SetData(
		stats,
		viewmodel.TenureBuckets(eng.Table(), policy.ReferenceYear, projections),
		viewmodel.Waterfall(stats),
		viewmodel.CompareGross(stats, policy.ReferenceYear),
	)

	for _, width := range []int{100, 160} {
		m.Resize(width)
		view := m.View()
		assert.Contains(t, view, "Raise cost by category")
		assert.Contains(t, view, "Loyalty groups")
		assert.Contains(t, view, "Deficit")
		assert.Contains(t, view, "2025")
		assert.Contains(t, view, "33.862,08 KM")
	}
}

func TestThemes(t *testing.T) {
	assert.Equal(t, themes.CatppuccinMocha.Name, themes.GetTheme("catppuccin-mocha").Name)
	assert.Equal(t, themes.Default.Name, themes.GetTheme("unknown").Name)
	assert.Equal(t, themes.Default.Warning, themes.Default.CategoryColor(model.CategorySupport))
	assert.Equal(t, themes.Default.Muted, themes.Default.CategoryColor(model.Category("Z")))
}
