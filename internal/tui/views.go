package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/payroll-must-balance/internal/common"
)

// View renders the UI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width < 40 || m.height < 12 {
		return m.renderTooSmall()
	}

	var content string
	switch m.view {
	case ViewCharts:
		content = m.charts.View()
	case ViewReport:
		content = m.report.View()
	default:
		content = m.renderDashboard()
	}

	sections := []string{m.renderHeader(), content}
	if m.help.ShowAll {
		sections = append(sections, "", m.help.View(m.keymap))
	}
	sections = append(sections, m.renderStatusBar())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderTooSmall() string {
	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		m.theme.StatusWarning.Render("Terminal too small"),
	)
}

func (m Model) renderHeader() string {
	policy := m.engine.Policy()
	title := m.theme.Title.Render(fmt.Sprintf("Payroll %d", policy.ReferenceYear))

	tabs := make([]string, 0, viewCount)
	for v := ViewDashboard; v < viewCount; v++ {
		style := m.theme.CardLabel.Padding(0, 1)
		if v == m.view {
			style = m.theme.Selected.Padding(0, 1)
		}
		tabs = append(tabs, style.Render(v.String()))
	}

	return lipgloss.JoinHorizontal(lipgloss.Center, title, "  ", strings.Join(tabs, " ")) + "\n"
}

func (m Model) renderDashboard() string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.statsPanel.View(),
		m.gauge.View(),
		"",
		m.employees.View(),
		m.renderTotals(),
	)
}

// renderTotals shows monthly sums over the visible rows.
func (m Model) renderTotals() string {
	t := m.table.Totals
	return m.theme.Bold.Render(fmt.Sprintf(
		"%d shown · current %s · final %s · raise %s · bruto %s",
		t.Count,
		common.FormatMoney(t.CurrentNet),
		common.FormatMoney(t.FinalNet),
		common.FormatSignedMoney(t.NetIncrease),
		common.FormatMoney(t.BrutoCost),
	))
}

// renderStatusBar renders the bottom status bar.
func (m Model) renderStatusBar() string {
	f := m.table.Filters
	order := "↑"
	if m.table.Descending {
		order = "↓"
	}

	left := m.theme.StatusInfo.Render(m.view.String())
	center := fmt.Sprintf("%s · %s · %s · sort %s %s",
		f.Group, f.Degree, f.Start.Label(f.PivotYear), m.table.SortField, order)
	if n := m.Overrides(); n > 0 {
		center += fmt.Sprintf(" · %d MA override(s)", n)
	}
	right := "? Help"

	totalWidth := m.width - 2
	spacing := totalWidth - lipgloss.Width(left) - lipgloss.Width(center) - lipgloss.Width(right)
	if spacing < 2 {
		return m.theme.Highlighted.Width(totalWidth).MaxWidth(totalWidth).Render(left + " " + center)
	}
	leftPad := spacing / 2
	rightPad := spacing - leftPad

	status := left +
		strings.Repeat(" ", leftPad) +
		m.theme.Normal.Render(center) +
		strings.Repeat(" ", rightPad) +
		lipgloss.NewStyle().Foreground(m.theme.Muted).Render(right)

	return m.theme.Highlighted.
		Width(totalWidth).
		MaxWidth(totalWidth).
		Render(status)
}
