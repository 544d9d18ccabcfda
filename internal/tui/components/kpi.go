package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/payroll-must-balance/internal/common"
	"github.com/Veraticus/payroll-must-balance/internal/model"
	"github.com/Veraticus/payroll-must-balance/internal/tui/themes"
)

// KPI is one headline figure.
type KPI struct {
	Label string
	Value string
	Style lipgloss.Style
}

// StatsPanelModel shows the headline figures of the current scenario.
type StatsPanelModel struct {
	theme   themes.Theme
	stats   model.FinancialStats
	width   int
	compact bool
}

// NewStatsPanelModel creates a new stats panel.
func NewStatsPanelModel(theme themes.Theme) StatsPanelModel {
	return StatsPanelModel{theme: theme}
}

// SetStats replaces the figures shown.
func (m *StatsPanelModel) SetStats(stats model.FinancialStats) {
	m.stats = stats
}

// Resize sets the available width. Narrow panels stack into two rows.
func (m *StatsPanelModel) Resize(width int) {
	m.width = width
	m.compact = width < 100
}

// KPIs returns revenue growth, raise cost, operational buffer and break-even
// tuition, in that order.
func (m StatsPanelModel) KPIs() []KPI {
	s := m.stats
	verdict := m.theme.Verdict(s.IsSustainable)

	breakEven := common.FormatPercent(s.BreakEvenTuition)
	if s.BreakEvenTuition <= 0 {
		breakEven = "none needed"
	}

	return []KPI{
		{Label: "Revenue growth", Value: common.FormatMoney(s.RevenueGrowth), Style: m.theme.StatusInfo},
		{Label: "Cost of raises", Value: common.FormatMoney(s.GrossIncrease), Style: m.theme.StatusWarning},
		{Label: "Operational buffer", Value: common.FormatSignedMoney(s.OperationalBuffer), Style: verdict},
		{Label: "Break-even tuition", Value: breakEven, Style: m.theme.Bold},
	}
}

// View renders the panel.
func (m StatsPanelModel) View() string {
	kpis := m.KPIs()
	cards := make([]string, 0, len(kpis))
	cardWidth := m.cardWidth(len(kpis))
	for _, k := range kpis {
		cards = append(cards, m.renderCard(k, cardWidth))
	}

	if m.compact {
		return lipgloss.JoinVertical(
			lipgloss.Left,
			lipgloss.JoinHorizontal(lipgloss.Top, cards[0], cards[1]),
			lipgloss.JoinHorizontal(lipgloss.Top, cards[2], cards[3]),
		)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

func (m StatsPanelModel) cardWidth(n int) int {
	perRow := n
	if m.compact {
		perRow = 2
	}
	if m.width <= 0 {
		return 24
	}
	// border + padding per card
	return max(18, m.width/perRow-4)
}

func (m StatsPanelModel) renderCard(k KPI, width int) string {
	return m.theme.Card.
		Width(width).
		Render(lipgloss.JoinVertical(
			lipgloss.Left,
			m.theme.CardLabel.Render(k.Label),
			k.Style.Render(k.Value),
		))
}
