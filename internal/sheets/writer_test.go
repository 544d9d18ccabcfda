package sheets

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
	"google.golang.org/api/googleapi"

	"github.com/Veraticus/payroll-must-balance/internal/common"
	"github.com/Veraticus/payroll-must-balance/internal/engine"
	"github.com/Veraticus/payroll-must-balance/internal/model"
	"github.com/Veraticus/payroll-must-balance/internal/report"
	"github.com/Veraticus/payroll-must-balance/internal/testutil/rosters"
)

func seedDocument(t *testing.T) report.Document {
	t.Helper()
	eng := engine.MustNew(model.DefaultPolicy())
	return report.Build(eng, rosters.Seed(), 6, time.Date(2026, 1, 15, 9, 0, 0, 0, time.UTC), report.Options{})
}

func TestConfig_Validate(t *testing.T) {
	serviceAccount := func(mutate func(*Config)) Config {
		c := DefaultConfig()
		c.ServiceAccountPath = "/etc/payroll/key.json"
		c.SpreadsheetName = DefaultSpreadsheetName
		if mutate != nil {
			mutate(&c)
		}
		return c
	}

	tests := []struct {
		wantErr error
		name    string
		errMsg  string
		config  Config
	}{
		{name: "service account", config: serviceAccount(nil)},
		{
			name: "refresh token into an existing spreadsheet",
			config: Config{
				ClientID:      "payroll-client",
				ClientSecret:  "secret",
				RefreshToken:  "refresh",
				SpreadsheetID: "sheet-1",
				BatchSize:     100,
			},
		},
		{
			name:    "no credentials",
			config:  Config{SpreadsheetName: "Payroll", BatchSize: 100},
			wantErr: common.ErrMissingConfig,
			errMsg:  "no Google credentials",
		},
		{
			name: "partial refresh token credentials",
			config: Config{
				ClientID:        "payroll-client",
				RefreshToken:    "refresh",
				SpreadsheetName: "Payroll",
				BatchSize:       100,
			},
			wantErr: common.ErrMissingConfig,
			errMsg:  "no Google credentials",
		},
		{
			name: "both credential sets",
			config: serviceAccount(func(c *Config) {
				c.ClientID, c.ClientSecret, c.RefreshToken = "payroll-client", "secret", "refresh"
			}),
			wantErr: common.ErrInvalidConfig,
			errMsg:  "keep one",
		},
		{
			name:    "nowhere to write",
			config:  serviceAccount(func(c *Config) { c.SpreadsheetName = "  " }),
			wantErr: common.ErrInvalidConfig,
			errMsg:  "spreadsheet ID or a name",
		},
		{
			name:    "zero batch size",
			config:  serviceAccount(func(c *Config) { c.BatchSize = 0 }),
			wantErr: common.ErrInvalidConfig,
			errMsg:  "at least 1 row",
		},
		{
			name:    "negative retry delay",
			config:  serviceAccount(func(c *Config) { c.RetryDelay = -time.Second }),
			wantErr: common.ErrInvalidConfig,
			errMsg:  "retry settings must not be negative",
		},
		{
			name:    "negative retry attempts",
			config:  serviceAccount(func(c *Config) { c.RetryAttempts = -1 }),
			wantErr: common.ErrInvalidConfig,
			errMsg:  "retry settings must not be negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestConfig_Auth(t *testing.T) {
	c := Config{ServiceAccountPath: "/etc/payroll/key.json"}
	method, err := c.Auth()
	require.NoError(t, err)
	assert.Equal(t, AuthServiceAccount, method)
	assert.Equal(t, "service account", method.String())

	c = Config{ClientID: "id", ClientSecret: "secret", RefreshToken: "refresh"}
	method, err = c.Auth()
	require.NoError(t, err)
	assert.Equal(t, AuthRefreshToken, method)

	method, err = (&Config{}).Auth()
	assert.Error(t, err)
	assert.Equal(t, "none", method.String())
}

func TestConfig_FillFromEnv(t *testing.T) {
	for _, suffix := range []string{"CLIENT_ID", "CLIENT_SECRET", "REFRESH_TOKEN", "SERVICE_ACCOUNT_PATH", "SPREADSHEET_ID", "SPREADSHEET_NAME"} {
		t.Setenv("GOOGLE_SHEETS_"+suffix, "")
	}

	t.Run("empty fields come from the environment", func(t *testing.T) {
		t.Setenv("GOOGLE_SHEETS_CLIENT_ID", "payroll-client")
		t.Setenv("GOOGLE_SHEETS_CLIENT_SECRET", "secret")
		t.Setenv("GOOGLE_SHEETS_REFRESH_TOKEN", "refresh")
		t.Setenv("GOOGLE_SHEETS_SPREADSHEET_NAME", "Plate 2026")

		c := DefaultConfig()
		c.FillFromEnv()

		assert.Equal(t, "payroll-client", c.ClientID)
		assert.Equal(t, "refresh", c.RefreshToken)
		assert.Equal(t, "Plate 2026", c.SpreadsheetName)
		assert.NoError(t, c.Validate())
	})

	t.Run("configured values win", func(t *testing.T) {
		t.Setenv("GOOGLE_SHEETS_SPREADSHEET_ID", "from-env")

		c := DefaultConfig()
		c.SpreadsheetID = "from-config"
		c.FillFromEnv()

		assert.Equal(t, "from-config", c.SpreadsheetID)
		assert.Equal(t, DefaultSpreadsheetName, c.SpreadsheetName)
		assert.ErrorIs(t, c.Validate(), common.ErrMissingConfig)
	})
}

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.True(t, config.EnableFormatting)
	assert.Equal(t, "Europe/Sarajevo", config.TimeZone)
	assert.Empty(t, config.SpreadsheetName)
	assert.Equal(t, 500, config.BatchSize)

	opts := config.retryOptions("write Employees")
	assert.Equal(t, "write Employees", opts.Operation)
	assert.Equal(t, 3, opts.MaxAttempts)
	assert.Equal(t, time.Second, opts.InitialDelay)
}

func TestNewTabData(t *testing.T) {
	td := NewTabData(seedDocument(t))

	assert.Equal(t, report.VerdictDeficit, td.Verdict)
	require.Len(t, td.Employees, rosters.SeedSize)
	require.Len(t, td.Categories, 4)
	require.Len(t, td.Figures, 8)
	assert.Len(t, td.Sweep, 11)

	first := td.Employees[0]
	assert.Equal(t, 1, first.ID)
	assert.Equal(t, "MULALIĆ DAVOR", first.Name)
	assert.Equal(t, 6, first.Tenure)
	assert.Equal(t, "15", first.BonusPct.String())
	assert.Equal(t, "1840", first.FinalNet.String())

	assert.Equal(t, "Gross increase", td.Figures[5].Label)
	assert.InDelta(t, 104953.09, td.Figures[5].Amount.InexactFloat64(), 0.01)
	assert.True(t, td.Figures[5].Amount.Exponent() >= -2, "money is rounded to cents")

	assert.Equal(t, "A Management", td.Categories[0].Category)
	assert.InDelta(t, 33862.08, td.Categories[0].RaiseCost.InexactFloat64(), 0.01)
	assert.InDelta(t, 32667.70, td.Totals.FinalNet.InexactFloat64(), 0.01)
}

func TestBuildLayouts(t *testing.T) {
	layouts := buildLayouts(NewTabData(seedDocument(t)))
	require.Len(t, layouts, 3)

	summary, employees, sweep := layouts[0], layouts[1], layouts[2]

	assert.Equal(t, TabSummary, summary.tab)
	assert.Len(t, summary.values, 27)
	assert.Equal(t, []int{0, 4, 12, 22}, summary.headers)
	assert.Len(t, summary.money, 12)
	assert.Equal(t, []any{"Reference year", "'2026"}, summary.values[5])

	assert.Equal(t, TabEmployees, employees.tab)
	require.Len(t, employees.values, 1+rosters.SeedSize+1)
	assert.Equal(t, 12, employees.columns)
	assert.Equal(t, 1, employees.values[1][0])
	assert.Equal(t, "MULALIĆ DAVOR", employees.values[1][1])
	assert.Equal(t, 1840.0, employees.values[1][9])
	assert.Equal(t, "Total", employees.values[rosters.SeedSize+1][1])

	assert.Equal(t, TabSweep, sweep.tab)
	assert.Len(t, sweep.values, 12)
	assert.Equal(t, false, sweep.values[7][4])
}

func TestFormatRequests(t *testing.T) {
	layouts := buildLayouts(NewTabData(seedDocument(t)))

	all := formatRequests(layouts, map[string]int64{TabSummary: 0, TabEmployees: 11, TabSweep: 22})
	assert.Len(t, all, 18+24+14)

	partial := formatRequests(layouts, map[string]int64{TabSummary: 0, TabEmployees: 11})
	assert.Len(t, partial, 18+24)

	var patterns int
	for _, r := range all {
		if r.RepeatCell != nil && r.RepeatCell.Cell.UserEnteredFormat.NumberFormat != nil {
			assert.Equal(t, MoneyPattern, r.RepeatCell.Cell.UserEnteredFormat.NumberFormat.Pattern)
			patterns++
		}
	}
	assert.Equal(t, 12+20+11, patterns)
}

func TestSpreadsheetURL(t *testing.T) {
	assert.Equal(t, "https://docs.google.com/spreadsheets/d/abc", SpreadsheetURL("abc"))
}

func TestClassifyAPIError(t *testing.T) {
	tests := []struct {
		err  error
		name string
		want common.RetryClass
	}{
		{name: "quota", err: &googleapi.Error{Code: 429}, want: common.RetryThrottled},
		{name: "forbidden", err: &googleapi.Error{Code: 403}, want: common.RetryPermanent},
		{name: "not found", err: &googleapi.Error{Code: 404}, want: common.RetryPermanent},
		{name: "server error", err: &googleapi.Error{Code: 503}, want: common.RetryTransient},
		{name: "wrapped", err: fmt.Errorf("batch at row 1: %w", &googleapi.Error{Code: 400}), want: common.RetryPermanent},
		{name: "transport", err: errors.New("connection reset"), want: common.RetryTransient},
		{name: "canceled", err: context.Canceled, want: common.RetryPermanent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classifyAPIError(tt.err))
		})
	}
}

func TestClassifyAPIError_StopsRetry(t *testing.T) {
	calls := 0
	cfg := DefaultConfig()
	opts := cfg.retryOptions("write Summary")
	opts.InitialDelay = time.Millisecond

	err := common.WithRetry(context.Background(), opts, classifyAPIError, func() error {
		calls++
		return &googleapi.Error{Code: 403, Message: "caller lacks permission"}
	})

	assert.Equal(t, 1, calls)
	var apiErr *googleapi.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 403, apiErr.Code)
}

func TestTokenPersistence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "auth", "token.json")
	src := &persistingTokenSource{
		src:  oauth2.StaticTokenSource(&oauth2.Token{AccessToken: "access", RefreshToken: "refresh"}),
		path: path,
	}

	tok, err := src.Token()
	require.NoError(t, err)
	assert.Equal(t, "access", tok.AccessToken)

	loaded, err := LoadToken(path)
	require.NoError(t, err)
	assert.Equal(t, "refresh", loaded.RefreshToken)

	_, err = LoadToken(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestMockWriter(t *testing.T) {
	doc := seedDocument(t)
	mock := NewMockWriter("sheet-1")

	id, err := mock.Export(context.Background(), doc)
	require.NoError(t, err)
	assert.Equal(t, "sheet-1", id)

	boom := errors.New("quota exceeded")
	mock.SetExportError(boom)
	_, err = mock.Export(context.Background(), doc)
	assert.ErrorIs(t, err, boom)

	calls := mock.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, doc.Title, calls[0].Document.Title)
	assert.ErrorIs(t, calls[1].Error, boom)
}
