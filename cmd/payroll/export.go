package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/payroll-must-balance/internal/cli"
	"github.com/Veraticus/payroll-must-balance/internal/common"
	"github.com/Veraticus/payroll-must-balance/internal/config"
	"github.com/Veraticus/payroll-must-balance/internal/report"
	"github.com/Veraticus/payroll-must-balance/internal/sheets"
)

// reportExporter pushes a report document to an external destination and
// returns its ID there.
type reportExporter interface {
	Export(ctx context.Context, doc report.Document) (string, error)
}

// newSheetsExporter is replaced in tests.
var newSheetsExporter = func(ctx context.Context) (reportExporter, error) {
	cfg, err := config.LoadSheetsConfig(viper.GetViper())
	if err != nil {
		return nil, common.NewUserError(
			"Google Sheets is not configured; set sheets.service_account_path or sheets.client_id, sheets.client_secret and sheets.refresh_token",
			err)
	}
	return sheets.NewWriter(ctx, *cfg, slog.Default())
}

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the report to external services",
	}
	cmd.AddCommand(exportSheetsCmd())
	return cmd
}

func exportSheetsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sheets",
		Short: "Export the report to Google Sheets",
		Long: `Write the summary, employee and sweep tabs of the report into a Google
Sheets spreadsheet. Existing payroll tabs are cleared first; other tabs are
left alone. A new spreadsheet is created when sheets.spreadsheet_id is empty.`,
		RunE: runExportSheets,
	}
	addTuitionFlag(cmd)
	return cmd
}

func runExportSheets(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	doc, err := buildReport(cmd)
	if err != nil {
		return err
	}

	exporter, err := newSheetsExporter(ctx)
	if err != nil {
		return err
	}

	return exportDocument(ctx, exporter, doc, cmd.OutOrStdout())
}

func exportDocument(ctx context.Context, exporter reportExporter, doc report.Document, out io.Writer) error {
	if _, err := fmt.Fprintln(out, cli.FormatInfo("Exporting report to Google Sheets...")); err != nil {
		return err
	}

	id, err := exporter.Export(ctx, doc)
	if err != nil {
		return fmt.Errorf("failed to export report: %w", err)
	}

	_, err = fmt.Fprintln(out, cli.FormatSuccess("Exported to "+sheets.SpreadsheetURL(id)))
	return err
}
