package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/payroll-must-balance/internal/common"
	"github.com/Veraticus/payroll-must-balance/internal/model"
	"github.com/Veraticus/payroll-must-balance/internal/tui/themes"
	"github.com/Veraticus/payroll-must-balance/internal/viewmodel"
)

const (
	barRune   = "█"
	labelCols = 22
	valueCols = 20
)

// ChartsModel renders the chart view: raise cost per category, the loyalty
// groups, the budget waterfall and the gross fund comparison.
type ChartsModel struct {
	theme     themes.Theme
	stats     model.FinancialStats
	buckets   []viewmodel.TenureBucket
	waterfall []viewmodel.WaterfallStep
	gross     viewmodel.GrossComparison
	width     int
}

// NewChartsModel creates an empty chart view.
func NewChartsModel(theme themes.Theme) ChartsModel {
	return ChartsModel{theme: theme, width: 80}
}

// SetData replaces the chart inputs.
func (m *ChartsModel) SetData(stats model.FinancialStats, buckets []viewmodel.TenureBucket, waterfall []viewmodel.WaterfallStep, gross viewmodel.GrossComparison) {
	m.stats = stats
	m.buckets = buckets
	m.waterfall = waterfall
	m.gross = gross
}

// Resize sets the available width.
func (m *ChartsModel) Resize(width int) {
	m.width = width
}

// View renders every chart. Wide terminals get two columns.
func (m ChartsModel) View() string {
	if m.width >= 140 {
		half := m.width/2 - 2
		left := lipgloss.JoinVertical(lipgloss.Left, m.renderCategories(half), "", m.renderBuckets(half))
		right := lipgloss.JoinVertical(lipgloss.Left, m.renderWaterfall(half), "", m.renderGross(half))
		return lipgloss.JoinHorizontal(lipgloss.Top,
			lipgloss.NewStyle().Width(half+2).Render(left),
			right,
		)
	}
	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderCategories(m.width),
		"",
		m.renderBuckets(m.width),
		"",
		m.renderWaterfall(m.width),
		"",
		m.renderGross(m.width),
	)
}

func (m ChartsModel) barCols(width int) int {
	return max(10, width-labelCols-valueCols-2)
}

func (m ChartsModel) renderCategories(width int) string {
	var maxCost float64
	for _, cs := range m.stats.CategorySummaries {
		maxCost = math.Max(maxCost, cs.RaiseCost)
	}

	lines := []string{m.theme.Title.Render("Raise cost by category (annual)")}
	for _, cs := range m.stats.CategorySummaries {
		label := fmt.Sprintf("%s %s (%d)", cs.Category, cs.Category.Label(), cs.Count)
		color := m.theme.CategoryColor(cs.Category)
		lines = append(lines, m.barLine(label, cs.RaiseCost, maxCost, width, color, common.FormatMoney(cs.RaiseCost)))
	}
	return strings.Join(lines, "\n")
}

func (m ChartsModel) renderBuckets(width int) string {
	var maxCost float64
	for _, b := range m.buckets {
		maxCost = math.Max(maxCost, b.BrutoCost)
	}

	lines := []string{m.theme.Title.Render("Loyalty groups (monthly bruto)")}
	for _, b := range m.buckets {
		label := fmt.Sprintf("%s · %d", b.Label, b.Count)
		value := common.FormatFraction(b.Bonus) + "  " + common.FormatMoney(b.BrutoCost)
		lines = append(lines, m.barLine(label, b.BrutoCost, maxCost, width, m.theme.Info, value))
	}
	if len(m.buckets) == 0 {
		lines = append(lines, m.theme.StatusPending.Render("No loyalty rules configured"))
	}
	return strings.Join(lines, "\n")
}

func (m ChartsModel) renderWaterfall(width int) string {
	var scale float64
	for _, s := range m.waterfall {
		scale = math.Max(scale, math.Abs(s.Value))
	}

	lines := []string{m.theme.Title.Render("Budget waterfall (annual)")}
	for _, s := range m.waterfall {
		color := m.theme.Warning
		switch s.Kind {
		case viewmodel.WaterfallRevenue:
			color = m.theme.Info
		case viewmodel.WaterfallResult:
			color = m.theme.Error
			if s.Value >= 0 {
				color = m.theme.Success
			}
		}
		lines = append(lines, m.barLine(s.Label, math.Abs(s.Value), scale, width, color, common.FormatSignedMoney(s.Value)))
	}
	return strings.Join(lines, "\n")
}

func (m ChartsModel) renderGross(width int) string {
	g := m.gross
	scale := math.Max(g.CurrentGross, g.NewGross)

	lines := []string{
		m.theme.Title.Render("Gross salary fund"),
		m.barLine(fmt.Sprintf("%d", g.CurrentYear), g.CurrentGross, scale, width, m.theme.Muted, common.FormatMoney(g.CurrentGross)),
		m.barLine(fmt.Sprintf("%d", g.NextYear), g.NewGross, scale, width, m.theme.Primary, common.FormatMoney(g.NewGross)),
		m.theme.CardLabel.Render(fmt.Sprintf("Increase %s (%s)",
			common.FormatSignedMoney(g.Increase()), common.FormatPercent(g.IncreasePercent()))),
	}
	return strings.Join(lines, "\n")
}

func (m ChartsModel) barLine(label string, value, scale float64, width int, color lipgloss.Color, text string) string {
	cols := m.barCols(width)
	n := viewmodel.BarWidth(value, scale, cols)

	bar := lipgloss.NewStyle().Foreground(color).Render(strings.Repeat(barRune, n)) +
		strings.Repeat(" ", cols-n)

	return lipgloss.NewStyle().Width(labelCols).MaxWidth(labelCols).Render(label) +
		bar + " " +
		lipgloss.NewStyle().Width(valueCols).Align(lipgloss.Right).Render(text)
}
