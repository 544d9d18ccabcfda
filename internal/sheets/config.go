// Package sheets exports payroll reports to Google Sheets.
package sheets

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/Veraticus/payroll-must-balance/internal/common"
	"github.com/Veraticus/payroll-must-balance/internal/service"
)

// DefaultSpreadsheetName is used when a new spreadsheet is created.
const DefaultSpreadsheetName = "Payroll Strategy"

// AuthMethod is how the writer authenticates against the Sheets API.
type AuthMethod int

const (
	// AuthNone means the credentials are missing or incomplete.
	AuthNone AuthMethod = iota
	// AuthRefreshToken uses an OAuth2 client with a stored refresh token.
	AuthRefreshToken
	// AuthServiceAccount uses a service-account JSON key.
	AuthServiceAccount
)

func (m AuthMethod) String() string {
	switch m {
	case AuthRefreshToken:
		return "refresh token"
	case AuthServiceAccount:
		return "service account"
	default:
		return "none"
	}
}

// Config describes where the payroll report goes and how it gets there.
type Config struct {
	// Credentials. Exactly one method must be complete.
	ClientID           string
	ClientSecret       string
	RefreshToken       string
	TokenFile          string
	ServiceAccountPath string

	// Destination. An empty SpreadsheetID creates SpreadsheetName.
	SpreadsheetID   string
	SpreadsheetName string
	TimeZone        string

	// Rows per values.update call for the employee and sweep tabs.
	BatchSize int

	RetryAttempts    int
	RetryDelay       time.Duration
	EnableFormatting bool
}

// DefaultConfig returns the export settings used when nothing is configured.
// The spreadsheet name stays empty so GOOGLE_SHEETS_SPREADSHEET_NAME can fill
// it; FillFromEnv falls back to DefaultSpreadsheetName.
func DefaultConfig() Config {
	return Config{
		TimeZone:         "Europe/Sarajevo",
		BatchSize:        500,
		RetryAttempts:    3,
		RetryDelay:       time.Second,
		EnableFormatting: true,
	}
}

// envVars maps GOOGLE_SHEETS_* suffixes to the fields they fill.
func (c *Config) envVars() map[string]*string {
	return map[string]*string{
		"CLIENT_ID":            &c.ClientID,
		"CLIENT_SECRET":        &c.ClientSecret,
		"REFRESH_TOKEN":        &c.RefreshToken,
		"SERVICE_ACCOUNT_PATH": &c.ServiceAccountPath,
		"SPREADSHEET_ID":       &c.SpreadsheetID,
		"SPREADSHEET_NAME":     &c.SpreadsheetName,
	}
}

// FillFromEnv sets every empty credential or destination field from its
// GOOGLE_SHEETS_* variable. Values already present are kept.
func (c *Config) FillFromEnv() {
	for suffix, field := range c.envVars() {
		if *field == "" {
			*field = os.Getenv("GOOGLE_SHEETS_" + suffix)
		}
	}
	if c.SpreadsheetName == "" {
		c.SpreadsheetName = DefaultSpreadsheetName
	}
}

// Auth reports which credential set is complete. Partial OAuth2 credentials
// count as none; two complete sets are ambiguous and rejected.
func (c *Config) Auth() (AuthMethod, error) {
	refresh := c.ClientID != "" && c.ClientSecret != "" && c.RefreshToken != ""
	account := c.ServiceAccountPath != ""

	switch {
	case refresh && account:
		return AuthNone, fmt.Errorf("%w: both a service account and a refresh token are set for the payroll export; keep one",
			common.ErrInvalidConfig)
	case account:
		return AuthServiceAccount, nil
	case refresh:
		return AuthRefreshToken, nil
	default:
		return AuthNone, fmt.Errorf("%w: no Google credentials for the payroll export (service account key or client ID, secret and refresh token)",
			common.ErrMissingConfig)
	}
}

// Validate checks that an export with this configuration can start.
func (c *Config) Validate() error {
	if _, err := c.Auth(); err != nil {
		return err
	}
	if c.SpreadsheetID == "" && strings.TrimSpace(c.SpreadsheetName) == "" {
		return fmt.Errorf("%w: a spreadsheet ID or a name for the new payroll spreadsheet is required", common.ErrInvalidConfig)
	}
	if c.BatchSize <= 0 {
		return fmt.Errorf("%w: sheets batch size must be at least 1 row, got %d", common.ErrInvalidConfig, c.BatchSize)
	}
	if c.RetryAttempts < 0 || c.RetryDelay < 0 {
		return fmt.Errorf("%w: sheets retry settings must not be negative (attempts %d, delay %s)",
			common.ErrInvalidConfig, c.RetryAttempts, c.RetryDelay)
	}
	return nil
}

// retryOptions configures WithRetry for one step of an export.
func (c *Config) retryOptions(operation string) service.RetryOptions {
	return service.RetryOptions{
		Operation:    operation,
		MaxAttempts:  c.RetryAttempts,
		InitialDelay: c.RetryDelay,
		MaxDelay:     30 * time.Second,
		Multiplier:   2,
	}
}
