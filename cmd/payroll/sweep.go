package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/Veraticus/payroll-must-balance/internal/cli"
	"github.com/Veraticus/payroll-must-balance/internal/common"
	"github.com/Veraticus/payroll-must-balance/internal/engine"
	"github.com/Veraticus/payroll-must-balance/internal/model"
	"github.com/Veraticus/payroll-must-balance/internal/viewmodel"
)

func sweepCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Evaluate a range of tuition increases",
		Long: `Evaluate the roster for every tuition increase between --from and --to.

The payroll cost does not depend on tuition, so the sweep shows where revenue
growth overtakes it.`,
		RunE: runSweep,
	}

	cmd.Flags().Float64("from", viewmodel.SliderMin, "first tuition increase in percent")
	cmd.Flags().Float64("to", viewmodel.SliderMax, "last tuition increase in percent")
	cmd.Flags().Float64("step", 1, "increment in percent")

	return cmd
}

func runSweep(cmd *cobra.Command, _ []string) error {
	from, _ := cmd.Flags().GetFloat64("from")
	to, _ := cmd.Flags().GetFloat64("to")
	step, _ := cmd.Flags().GetFloat64("step")

	if step <= 0 {
		return fmt.Errorf("%w: --step must be positive", common.ErrInvalidConfig)
	}
	if to < from {
		return fmt.Errorf("%w: --to must not be below --from", common.ErrInvalidConfig)
	}
	if engine.SweepSize(from, to, step) == 0 {
		return fmt.Errorf("%w: the range covers more than %d tuition values", common.ErrInvalidConfig, engine.MaxSweepPoints)
	}

	eng, roster, err := loadScenario(cmd.Context())
	if err != nil {
		return err
	}

	stats := eng.Calculate(roster, from)
	points := eng.Sweep(roster, from, to, step)
	return printSweep(cmd.OutOrStdout(), points, stats.BreakEvenTuition)
}

func printSweep(out io.Writer, points []model.SweepPoint, breakEven float64) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)

	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(cli.PrimaryColor)
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t\n",
		headerStyle.Render("Tuition"),
		headerStyle.Render("Revenue growth"),
		headerStyle.Render("Cost of raises"),
		headerStyle.Render("Buffer"),
		headerStyle.Render("Verdict"))

	for _, p := range points {
		verdict := cli.ErrorStyle.Render(cli.ErrorIcon + " deficit")
		if p.IsSustainable {
			verdict = cli.SuccessStyle.Render(cli.SuccessIcon + " surplus")
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t\n",
			common.FormatPercent(p.TuitionIncrease),
			common.FormatMoney(p.RevenueGrowth),
			common.FormatMoney(p.GrossIncrease),
			common.FormatSignedMoney(p.OperationalBuffer),
			verdict)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	var line string
	if breakEven <= 0 {
		line = cli.FormatSuccess("The roster is sustainable without a tuition increase")
	} else {
		line = cli.FormatInfo("Break-even tuition increase: " + common.FormatPercent(breakEven))
	}
	_, err := fmt.Fprintln(out, "\n"+line)
	return err
}
