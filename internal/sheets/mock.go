package sheets

import (
	"context"
	"sync"

	"github.com/Veraticus/payroll-must-balance/internal/report"
)

// MockWriter records exports instead of calling the Sheets API.
type MockWriter struct {
	ExportFunc    func(ctx context.Context, doc report.Document) (string, error)
	ExportCalls   []ExportCall
	SpreadsheetID string
	mu            sync.Mutex
}

// ExportCall represents a single call to Export.
type ExportCall struct {
	Error    error
	Document report.Document
}

// NewMockWriter creates a mock that reports spreadsheetID on success.
func NewMockWriter(spreadsheetID string) *MockWriter {
	return &MockWriter{SpreadsheetID: spreadsheetID}
}

// Export records doc and returns the configured result.
func (m *MockWriter) Export(ctx context.Context, doc report.Document) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.SpreadsheetID
	var err error
	if m.ExportFunc != nil {
		id, err = m.ExportFunc(ctx, doc)
	}

	m.ExportCalls = append(m.ExportCalls, ExportCall{Document: doc, Error: err})
	return id, err
}

// Calls returns a copy of all export calls.
func (m *MockWriter) Calls() []ExportCall {
	m.mu.Lock()
	defer m.mu.Unlock()

	calls := make([]ExportCall, len(m.ExportCalls))
	copy(calls, m.ExportCalls)
	return calls
}

// SetExportError makes every following Export fail with err.
func (m *MockWriter) SetExportError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ExportFunc = func(context.Context, report.Document) (string, error) {
		return "", err
	}
}
