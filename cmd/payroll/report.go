package main

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Veraticus/payroll-must-balance/internal/cli"
	"github.com/Veraticus/payroll-must-balance/internal/report"
)

func reportCmd() *cobra.Command {
	names := make([]string, 0, len(report.Formats()))
	for _, f := range report.Formats() {
		names = append(names, string(f))
	}

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Render the salary strategy report",
		Long: `Render the salary strategy report for one tuition increase.

Without --output the report is written to stdout. With --output the format
follows the file extension unless --format is given.`,
		RunE: runReport,
	}

	addTuitionFlag(cmd)
	cmd.Flags().StringP("format", "f", "", "output format ("+strings.Join(names, ", ")+")")
	cmd.Flags().StringP("output", "o", "", "write the report to this file")

	return cmd
}

func runReport(cmd *cobra.Command, _ []string) error {
	formatFlag, _ := cmd.Flags().GetString("format")
	output, _ := cmd.Flags().GetString("output")

	format, err := report.ParseFormat(formatFlag)
	if err != nil {
		return err
	}
	if formatFlag == "" && output != "" {
		format = report.FormatForPath(output)
	}

	doc, err := buildReport(cmd)
	if err != nil {
		return err
	}

	if output == "" {
		return report.Write(cmd.OutOrStdout(), format, doc)
	}

	if err := report.WriteFile(output, format, doc); err != nil {
		return err
	}
	slog.Info("Report written", "path", output, "format", format)
	_, err = fmt.Fprintln(cmd.ErrOrStderr(), cli.FormatSuccess(fmt.Sprintf("Report written to %s", output)))
	return err
}

// buildReport assembles the report document shared by report and export.
func buildReport(cmd *cobra.Command) (report.Document, error) {
	eng, roster, err := loadScenario(cmd.Context())
	if err != nil {
		return report.Document{}, err
	}
	return report.Build(eng, roster, tuitionIncrease(cmd), time.Now(), reportOptions()), nil
}
