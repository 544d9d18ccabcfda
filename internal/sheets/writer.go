package sheets

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/shopspring/decimal"

	"github.com/Veraticus/payroll-must-balance/internal/common"
	"github.com/Veraticus/payroll-must-balance/internal/report"
)

// Writer exports report documents to a Google spreadsheet.
type Writer struct {
	service *sheets.Service
	logger  *slog.Logger
	config  Config
}

// NewWriter creates a new Google Sheets report writer.
func NewWriter(ctx context.Context, config Config, logger *slog.Logger) (*Writer, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	srv, err := createSheetsService(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &Writer{
		config:  config,
		service: srv,
		logger:  logger,
	}, nil
}

// Export writes doc into the configured spreadsheet, replacing previous
// contents of the payroll tabs. It returns the spreadsheet ID.
func (w *Writer) Export(ctx context.Context, doc report.Document) (string, error) {
	w.logger.Info("starting sheets export",
		"title", doc.Title,
		"employees", len(doc.Employees),
		"tuition_increase", doc.TuitionIncrease)

	spreadsheetID, tabIDs, err := w.getOrCreateSpreadsheet(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to get spreadsheet: %w", err)
	}

	if clearErr := w.clearTabs(ctx, spreadsheetID); clearErr != nil {
		return "", fmt.Errorf("failed to clear sheet: %w", clearErr)
	}

	layouts := buildLayouts(NewTabData(doc))

	rows := 0
	for _, l := range layouts {
		opts := w.config.retryOptions("write " + l.tab)
		err = common.WithRetry(ctx, opts, classifyAPIError, func() error {
			return w.writeData(ctx, spreadsheetID, l.tab, l.values)
		})
		if err != nil {
			return "", fmt.Errorf("failed to write %s: %w", l.tab, err)
		}
		rows += len(l.values)
	}

	if w.config.EnableFormatting {
		opts := w.config.retryOptions("format " + spreadsheetID)
		err = common.WithRetry(ctx, opts, classifyAPIError, func() error {
			return w.applyFormatting(ctx, spreadsheetID, formatRequests(layouts, tabIDs))
		})
		if err != nil {
			w.logger.Warn("failed to apply formatting", "spreadsheet_id", spreadsheetID, "error", err)
		}
	}

	w.logger.Info("sheets export completed",
		"spreadsheet_id", spreadsheetID,
		"rows_written", rows)

	return spreadsheetID, nil
}

// classifyAPIError treats quota errors as throttled and other client errors
// as permanent. Server and transport errors are retried.
func classifyAPIError(err error) common.RetryClass {
	var apiErr *googleapi.Error
	if !errors.As(err, &apiErr) {
		return common.ClassifyError(err)
	}
	switch {
	case apiErr.Code == http.StatusTooManyRequests:
		return common.RetryThrottled
	case apiErr.Code >= 400 && apiErr.Code < 500:
		return common.RetryPermanent
	default:
		return common.RetryTransient
	}
}

// SpreadsheetURL returns the browser URL of a spreadsheet.
func SpreadsheetURL(id string) string {
	return "https://docs.google.com/spreadsheets/d/" + id
}

func createSheetsService(ctx context.Context, config Config) (*sheets.Service, error) {
	method, err := config.Auth()
	if err != nil {
		return nil, err
	}

	var tokenSource oauth2.TokenSource
	if method == AuthServiceAccount {
		jsonKey, err := os.ReadFile(config.ServiceAccountPath)
		if err != nil {
			return nil, fmt.Errorf("unable to read service account key file: %w", err)
		}

		jwtConfig, err := google.JWTConfigFromJSON(jsonKey, sheets.SpreadsheetsScope)
		if err != nil {
			return nil, fmt.Errorf("unable to parse service account key: %w", err)
		}

		tokenSource = jwtConfig.TokenSource(ctx)
	} else {
		client := &oauth2.Config{
			ClientID:     config.ClientID,
			ClientSecret: config.ClientSecret,
			Endpoint:     google.Endpoint,
			Scopes:       []string{sheets.SpreadsheetsScope},
		}

		token := &oauth2.Token{
			RefreshToken: config.RefreshToken,
			TokenType:    "Bearer",
		}

		tokenSource = client.TokenSource(ctx, token)
		if config.TokenFile != "" {
			tokenSource = &persistingTokenSource{src: tokenSource, path: config.TokenFile}
		}
	}

	httpClient := oauth2.NewClient(ctx, tokenSource)
	srv, err := sheets.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("unable to create sheets service: %w", err)
	}

	return srv, nil
}

// getOrCreateSpreadsheet returns the spreadsheet ID and the sheet ID of every payroll tab.
func (w *Writer) getOrCreateSpreadsheet(ctx context.Context) (string, map[string]int64, error) {
	if w.config.SpreadsheetID != "" {
		existing, err := w.service.Spreadsheets.Get(w.config.SpreadsheetID).Context(ctx).Do()
		if err != nil {
			return "", nil, fmt.Errorf("unable to access spreadsheet %s: %w", w.config.SpreadsheetID, err)
		}
		tabIDs, err := w.ensureTabs(ctx, existing)
		if err != nil {
			return "", nil, err
		}
		return existing.SpreadsheetId, tabIDs, nil
	}

	spreadsheet := &sheets.Spreadsheet{
		Properties: &sheets.SpreadsheetProperties{
			Title:    w.config.SpreadsheetName,
			TimeZone: w.config.TimeZone,
		},
	}
	for _, tab := range Tabs() {
		spreadsheet.Sheets = append(spreadsheet.Sheets, &sheets.Sheet{
			Properties: &sheets.SheetProperties{Title: tab},
		})
	}

	created, err := w.service.Spreadsheets.Create(spreadsheet).Context(ctx).Do()
	if err != nil {
		return "", nil, fmt.Errorf("unable to create spreadsheet: %w", err)
	}

	w.logger.Info("created new spreadsheet",
		"id", created.SpreadsheetId,
		"url", created.SpreadsheetUrl)

	return created.SpreadsheetId, sheetIDs(created), nil
}

// ensureTabs adds any payroll tab missing from an existing spreadsheet.
func (w *Writer) ensureTabs(ctx context.Context, ss *sheets.Spreadsheet) (map[string]int64, error) {
	ids := sheetIDs(ss)

	var requests []*sheets.Request
	for _, tab := range Tabs() {
		if _, ok := ids[tab]; !ok {
			requests = append(requests, &sheets.Request{
				AddSheet: &sheets.AddSheetRequest{Properties: &sheets.SheetProperties{Title: tab}},
			})
		}
	}
	if len(requests) == 0 {
		return ids, nil
	}

	resp, err := w.service.Spreadsheets.BatchUpdate(ss.SpreadsheetId, &sheets.BatchUpdateSpreadsheetRequest{
		Requests: requests,
	}).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("unable to add tabs: %w", err)
	}
	for _, reply := range resp.Replies {
		if reply.AddSheet != nil && reply.AddSheet.Properties != nil {
			ids[reply.AddSheet.Properties.Title] = reply.AddSheet.Properties.SheetId
		}
	}
	return ids, nil
}

func sheetIDs(ss *sheets.Spreadsheet) map[string]int64 {
	ids := make(map[string]int64, len(ss.Sheets))
	for _, sh := range ss.Sheets {
		if sh.Properties != nil {
			ids[sh.Properties.Title] = sh.Properties.SheetId
		}
	}
	return ids
}

func (w *Writer) clearTabs(ctx context.Context, spreadsheetID string) error {
	ranges := make([]string, 0, len(Tabs()))
	for _, tab := range Tabs() {
		ranges = append(ranges, tab+"!A:Z")
	}
	_, err := w.service.Spreadsheets.Values.BatchClear(spreadsheetID, &sheets.BatchClearValuesRequest{
		Ranges: ranges,
	}).Context(ctx).Do()
	return err
}

// writeData writes values into tab in batches to stay under API limits.
func (w *Writer) writeData(ctx context.Context, spreadsheetID, tab string, values [][]any) error {
	for i := 0; i < len(values); i += w.config.BatchSize {
		end := min(i+w.config.BatchSize, len(values))

		batch := values[i:end]
		rangeStr := fmt.Sprintf("%s!A%d", tab, i+1)
		_, err := w.service.Spreadsheets.Values.Update(spreadsheetID, rangeStr, &sheets.ValueRange{Values: batch}).
			ValueInputOption("USER_ENTERED").
			Context(ctx).
			Do()
		if err != nil {
			return fmt.Errorf("failed to write batch starting at row %d: %w", i+1, err)
		}

		w.logger.Debug("wrote batch", "tab", tab, "start_row", i+1, "rows", len(batch))
	}
	return nil
}

func (w *Writer) applyFormatting(ctx context.Context, spreadsheetID string, requests []*sheets.Request) error {
	if len(requests) == 0 {
		return nil
	}
	_, err := w.service.Spreadsheets.BatchUpdate(spreadsheetID, &sheets.BatchUpdateSpreadsheetRequest{
		Requests: requests,
	}).Context(ctx).Do()
	return err
}

// cellRange is a zero-based, end-exclusive block of cells.
type cellRange struct {
	startRow, endRow int
	startCol, endCol int
}

// tabLayout is the values of one tab plus where its headers and money cells sit.
type tabLayout struct {
	tab     string
	values  [][]any
	headers []int
	money   []cellRange
	columns int
}

func (l *tabLayout) add(row ...any) int {
	l.values = append(l.values, row)
	l.columns = max(l.columns, len(row))
	return len(l.values) - 1
}

func (l *tabLayout) header(row ...any) {
	l.headers = append(l.headers, l.add(row...))
}

func (l *tabLayout) moneyCells(row, fromCol, toCol int) {
	l.money = append(l.money, cellRange{startRow: row, endRow: row + 1, startCol: fromCol, endCol: toCol + 1})
}

func num(d decimal.Decimal) any {
	f, _ := d.Float64()
	return f
}

// text keeps USER_ENTERED from turning a value into a number or date.
func text(s string) string {
	return "'" + s
}

func buildLayouts(td TabData) []*tabLayout {
	return []*tabLayout{summaryLayout(td), employeeLayout(td), sweepLayout(td)}
}

func summaryLayout(td TabData) *tabLayout {
	l := &tabLayout{tab: TabSummary}
	l.header(td.Title, td.GeneratedAt.Format("2006-01-02 15:04"))
	l.add("Verdict", td.Verdict)
	l.add(td.Narrative)
	l.add()

	l.header("Parameter", "Value")
	for _, p := range td.Parameters {
		l.add(p[0], text(p[1]))
	}
	l.add()

	l.header("Figure", "Amount")
	for _, f := range td.Figures {
		l.moneyCells(l.add(f.Label, num(f.Amount)), 1, 1)
	}
	l.add()

	l.header("Category", "Employees", "Current net", "Final net", "Raise cost")
	for _, c := range td.Categories {
		l.moneyCells(l.add(c.Category, c.Count, num(c.CurrentNet), num(c.FinalNet), num(c.RaiseCost)), 2, 4)
	}
	return l
}

func employeeLayout(td TabData) *tabLayout {
	l := &tabLayout{tab: TabEmployees}
	l.header("ID", "Name", "Role", "Category", "Start year", "Tenure", "Bonus %",
		"Current net", "Target net", "Final net", "Net raise", "Bruto raise")
	for _, e := range td.Employees {
		row := l.add(e.ID, e.Name, e.Role, e.Category, e.StartYear, e.Tenure, num(e.BonusPct),
			num(e.CurrentNet), num(e.TargetNet), num(e.FinalNet), num(e.NetRaise), num(e.BrutoRaise))
		l.moneyCells(row, 7, 11)
	}
	t := td.Totals
	row := l.add("", t.Name, "", "", "", "", "", num(t.CurrentNet), "", num(t.FinalNet), num(t.NetRaise), num(t.BrutoRaise))
	l.headers = append(l.headers, row)
	l.moneyCells(row, 7, 11)
	return l
}

func sweepLayout(td TabData) *tabLayout {
	l := &tabLayout{tab: TabSweep}
	l.header("Tuition increase %", "Revenue growth", "Gross increase", "Operational buffer", "Sustainable")
	for _, s := range td.Sweep {
		l.moneyCells(l.add(num(s.TuitionPct), num(s.RevenueGrowth), num(s.GrossIncrease), num(s.Buffer), s.Sustainable), 1, 3)
	}
	return l
}

func formatRequests(layouts []*tabLayout, tabIDs map[string]int64) []*sheets.Request {
	var requests []*sheets.Request
	for _, l := range layouts {
		id, ok := tabIDs[l.tab]
		if !ok {
			continue
		}
		for _, row := range l.headers {
			requests = append(requests, repeatCell(id, cellRange{row, row + 1, 0, l.columns}, &sheets.CellFormat{
				TextFormat: &sheets.TextFormat{Bold: true},
			}, "userEnteredFormat.textFormat"))
		}
		for _, r := range l.money {
			requests = append(requests, repeatCell(id, r, &sheets.CellFormat{
				NumberFormat: &sheets.NumberFormat{Type: "NUMBER", Pattern: MoneyPattern},
			}, "userEnteredFormat.numberFormat"))
		}
		requests = append(requests,
			&sheets.Request{
				AutoResizeDimensions: &sheets.AutoResizeDimensionsRequest{
					Dimensions: &sheets.DimensionRange{
						SheetId:    id,
						Dimension:  "COLUMNS",
						StartIndex: 0,
						EndIndex:   int64(l.columns),
					},
				},
			},
			&sheets.Request{
				UpdateSheetProperties: &sheets.UpdateSheetPropertiesRequest{
					Properties: &sheets.SheetProperties{
						SheetId:        id,
						GridProperties: &sheets.GridProperties{FrozenRowCount: 1},
					},
					Fields: "gridProperties.frozenRowCount",
				},
			},
		)
	}
	return requests
}

func repeatCell(sheetID int64, r cellRange, format *sheets.CellFormat, fields string) *sheets.Request {
	return &sheets.Request{
		RepeatCell: &sheets.RepeatCellRequest{
			Range: &sheets.GridRange{
				SheetId:          sheetID,
				StartRowIndex:    int64(r.startRow),
				EndRowIndex:      int64(r.endRow),
				StartColumnIndex: int64(r.startCol),
				EndColumnIndex:   int64(r.endCol),
			},
			Cell:   &sheets.CellData{UserEnteredFormat: format},
			Fields: fields,
		},
	}
}
