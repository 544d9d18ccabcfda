package main

import (
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/payroll-must-balance/internal/config"
	"github.com/Veraticus/payroll-must-balance/internal/tui"
	"github.com/Veraticus/payroll-must-balance/internal/tui/themes"
)

func dashboardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Open the interactive payroll dashboard",
		Long: `Open the terminal dashboard.

Move the tuition slider with ←/→, filter the employee table with c, m and y,
sort with s and r, and toggle an employee's master's degree with space.
Every change recomputes the projection; the roster on disk is never modified.`,
		RunE: runDashboard,
	}

	addTuitionFlag(cmd)
	cmd.Flags().String("theme", "", "color theme (default, catppuccin-mocha)")
	_ = viper.BindPFlag(config.KeyTheme, cmd.Flags().Lookup("theme"))

	return cmd
}

func runDashboard(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	eng, roster, err := loadScenario(ctx)
	if err != nil {
		return err
	}

	theme := viper.GetString(config.KeyTheme)
	slog.Debug("Starting dashboard", "employees", len(roster), "theme", theme)

	return tui.Run(ctx, eng, roster,
		tui.WithTheme(themes.GetTheme(theme)),
		tui.WithTuition(tuitionIncrease(cmd)),
		tui.WithPivotYear(viper.GetInt(config.KeyPivotYear)),
		tui.WithReport(reportOptions()),
	)
}
