package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/Veraticus/payroll-must-balance/internal/common"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	goodStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#4ECDC4"))
	badStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF6B6B"))
	cardStyle  = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444444")).
			Padding(0, 2).
			MarginRight(1)
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

// RenderText renders doc for a terminal.
func RenderText(doc Document) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(doc.Title))
	b.WriteString("\n")
	if doc.School != "" {
		b.WriteString(labelStyle.Render(doc.School))
		b.WriteString("\n")
	}
	b.WriteString(labelStyle.Render("Generated " + doc.GeneratedAt.Format("02.01.2006 15:04")))
	b.WriteString("\n\n")

	b.WriteString(doc.Narrative)
	b.WriteString("\n\n")

	b.WriteString(renderCards(doc))
	b.WriteString("\n\n")

	b.WriteString(sectionTitle("Parameters"))
	b.WriteString(renderTable([]string{"Parameter", "Value"}, paramRows(doc)))
	b.WriteString("\n\n")

	b.WriteString(sectionTitle("Categories (annual)"))
	b.WriteString(renderTable([]string{"Category", "Employees", "Current net", "Final net", "Raise cost"}, categoryRows(doc)))
	b.WriteString("\n\n")

	b.WriteString(sectionTitle("Loyalty groups (monthly)"))
	b.WriteString(renderTable([]string{"Group", "Bonus", "Employees", "Bruto cost"}, bucketRows(doc)))
	b.WriteString("\n\n")

	b.WriteString(sectionTitle("Budget waterfall (annual)"))
	b.WriteString(renderTable([]string{"Step", "Amount"}, waterfallRows(doc)))
	b.WriteString("\n\n")

	b.WriteString(sectionTitle("Employees (monthly)"))
	b.WriteString(renderTable([]string{"Name", "Role", "Cat", "Start", "Bonus", "Current net", "Final net"}, employeeRows(doc)))
	b.WriteString("\n\n")

	if len(doc.Sweep) > 0 {
		b.WriteString(sectionTitle("Tuition sweep (annual)"))
		b.WriteString(renderTable([]string{"Tuition", "Revenue growth", "Gross increase", "Buffer", ""}, sweepRows(doc)))
		b.WriteString("\n\n")
	}

	b.WriteString(renderSignatures(doc.Signatories))
	b.WriteString("\n")
	return b.String()
}

func sectionTitle(s string) string {
	return titleStyle.Render(s) + "\n"
}

func renderCards(doc Document) string {
	burden := cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		labelStyle.Render("Monthly bruto burden"),
		common.FormatMoney(doc.MonthlyBrutoBurden),
	))

	style := goodStyle
	if doc.Verdict == VerdictDeficit {
		style = badStyle
	}
	result := cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		labelStyle.Render("Operating result"),
		style.Render(doc.Verdict),
		common.FormatSignedMoney(doc.Stats.OperationalBuffer),
	))

	gross := cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		labelStyle.Render(fmt.Sprintf("Gross fund %d → %d", doc.Gross.CurrentYear, doc.Gross.NextYear)),
		common.FormatMoney(doc.Gross.CurrentGross)+" → "+common.FormatMoney(doc.Gross.NewGross),
		common.FormatSignedMoney(doc.Gross.Increase()),
	))

	return lipgloss.JoinHorizontal(lipgloss.Top, burden, result, gross)
}

func renderTable(headers []string, rows [][]string) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(labelStyle).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	return t.Render()
}

func paramRows(doc Document) [][]string {
	params := doc.Parameters()
	rows := make([][]string, 0, len(params))
	for _, p := range params {
		rows = append(rows, []string{p[0], p[1]})
	}
	return rows
}

func categoryRows(doc Document) [][]string {
	rows := make([][]string, 0, len(doc.Stats.CategorySummaries)+1)
	for _, cs := range doc.Stats.CategorySummaries {
		rows = append(rows, []string{
			fmt.Sprintf("%s · %s", cs.Category, cs.Category.Label()),
			fmt.Sprintf("%d", cs.Count),
			common.FormatMoney(cs.CurrentNet),
			common.FormatMoney(cs.FinalNet),
			common.FormatMoney(cs.RaiseCost),
		})
	}
	rows = append(rows, []string{
		"Total",
		fmt.Sprintf("%d", doc.Stats.EmployeeCount),
		common.FormatMoney(doc.Stats.TotalCurrentNet),
		common.FormatMoney(doc.Stats.TotalNewNet),
		common.FormatMoney(doc.Stats.GrossIncrease),
	})
	return rows
}

func bucketRows(doc Document) [][]string {
	rows := make([][]string, 0, len(doc.Buckets))
	for _, bk := range doc.Buckets {
		rows = append(rows, []string{
			bk.Label,
			common.FormatFraction(bk.Bonus),
			fmt.Sprintf("%d", bk.Count),
			common.FormatMoney(bk.BrutoCost),
		})
	}
	return rows
}

func waterfallRows(doc Document) [][]string {
	rows := make([][]string, 0, len(doc.Waterfall))
	for _, step := range doc.Waterfall {
		rows = append(rows, []string{step.Label, common.FormatSignedMoney(step.Value)})
	}
	return rows
}

func employeeRows(doc Document) [][]string {
	src := doc.EmployeeRows()
	rows := make([][]string, 0, len(src)+1)
	for _, r := range src {
		rows = append(rows, []string{r.Name, r.Role, r.Category, r.StartYear, r.Bonus, r.CurrentNet, r.FinalNet})
	}
	rows = append(rows, []string{
		"Total", "", "", "", "",
		common.FormatMoney(doc.Totals.CurrentNet),
		common.FormatMoney(doc.Totals.FinalNet),
	})
	return rows
}

func sweepRows(doc Document) [][]string {
	rows := make([][]string, 0, len(doc.Sweep))
	for _, p := range doc.Sweep {
		mark := "✗"
		if p.IsSustainable {
			mark = "✓"
		}
		rows = append(rows, []string{
			common.FormatPercent(p.TuitionIncrease),
			common.FormatMoney(p.RevenueGrowth),
			common.FormatMoney(p.GrossIncrease),
			common.FormatSignedMoney(p.OperationalBuffer),
			mark,
		})
	}
	return rows
}

func renderSignatures(signatories []string) string {
	blocks := make([]string, 0, len(signatories))
	for _, s := range signatories {
		blocks = append(blocks, lipgloss.NewStyle().Width(36).Render(
			strings.Repeat("_", 30)+"\n"+strings.ToUpper(s),
		))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, blocks...)
}
