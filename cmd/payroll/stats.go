package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/Veraticus/payroll-must-balance/internal/cli"
	"github.com/Veraticus/payroll-must-balance/internal/common"
	"github.com/Veraticus/payroll-must-balance/internal/model"
)

func statsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print the headline figures for a tuition increase",
		Long: `Print revenue growth, the cost of the raises, the operational buffer,
the break-even tuition and a per-category summary for one tuition increase.`,
		RunE: runStats,
	}
	addTuitionFlag(cmd)
	return cmd
}

func runStats(cmd *cobra.Command, _ []string) error {
	eng, roster, err := loadScenario(cmd.Context())
	if err != nil {
		return err
	}

	pct := tuitionIncrease(cmd)
	stats := eng.Calculate(roster, pct)
	return printStats(cmd.OutOrStdout(), eng.Policy(), stats)
}

func printStats(out io.Writer, policy model.Policy, stats model.FinancialStats) error {
	verdict := "SURPLUS"
	if !stats.IsSustainable {
		verdict = "DEFICIT"
	}

	breakEven := common.FormatPercent(stats.BreakEvenTuition)
	if stats.BreakEvenTuition <= 0 {
		breakEven = "none needed"
	}

	summary := strings.Join([]string{
		fmt.Sprintf("Tuition increase     %s", common.FormatPercent(stats.TuitionIncrease)),
		fmt.Sprintf("Revenue growth       %s", common.FormatMoney(stats.RevenueGrowth)),
		fmt.Sprintf("Cost of raises       %s", common.FormatMoney(stats.GrossIncrease)),
		fmt.Sprintf("Operational buffer   %s", common.FormatSignedMoney(stats.OperationalBuffer)),
		fmt.Sprintf("Break-even tuition   %s", breakEven),
		fmt.Sprintf("Monthly bruto burden %s", common.FormatMoney(stats.GrossIncrease/float64(policy.MonthsPerYear))),
	}, "\n")

	title := fmt.Sprintf("%s Salary round %d · %d employees", cli.MoneyIcon, policy.ReferenceYear, stats.EmployeeCount)
	if _, err := fmt.Fprintln(out, cli.RenderBox(title, summary)); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(out, cli.FormatVerdict(stats.IsSustainable, verdict)); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(out); err != nil {
		return err
	}

	return printCategories(out, stats)
}

func printCategories(out io.Writer, stats model.FinancialStats) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)

	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(cli.PrimaryColor)
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t\n",
		headerStyle.Render("Category"),
		headerStyle.Render("Employees"),
		headerStyle.Render("Current net"),
		headerStyle.Render("Final net"),
		headerStyle.Render("Raise cost"))

	for _, cs := range stats.CategorySummaries {
		fmt.Fprintf(w, "%s %s\t%d\t%s\t%s\t%s\t\n",
			cs.Category, cs.Category.Label(),
			cs.Count,
			common.FormatMoney(cs.CurrentNet),
			common.FormatMoney(cs.FinalNet),
			common.FormatMoney(cs.RaiseCost))
	}
	fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%s\t\n",
		cli.BoldStyle.Render("Total (annual)"),
		stats.EmployeeCount,
		common.FormatMoney(stats.TotalCurrentNet),
		common.FormatMoney(stats.TotalNewNet),
		common.FormatMoney(stats.GrossIncrease))

	return w.Flush()
}
