package config

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Veraticus/payroll-must-balance/internal/common"
	"github.com/Veraticus/payroll-must-balance/internal/model"
	"github.com/Veraticus/payroll-must-balance/internal/service"
	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"
)

// Roster source names accepted by roster.source and --roster.
const (
	SourceEmbedded = "embedded"
	SourceStore    = "store"
)

//go:embed seed_roster.yaml
var seedRosterYAML []byte

type rosterFile struct {
	Employees []model.Employee `yaml:"employees"`
}

// SeedRoster returns the roster shipped with the binary.
func SeedRoster() (model.Roster, error) {
	return ParseRosterYAML(seedRosterYAML)
}

// ParseRosterYAML decodes a roster document.
func ParseRosterYAML(data []byte) (model.Roster, error) {
	var f rosterFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse roster YAML: %w", err)
	}
	return normalizeRoster(f.Employees)
}

// MarshalRosterYAML encodes a roster in the same format ParseRosterYAML reads.
func MarshalRosterYAML(roster model.Roster) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(rosterFile{Employees: roster}); err != nil {
		return nil, fmt.Errorf("failed to encode roster: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode roster: %w", err)
	}
	return buf.Bytes(), nil
}

// Spreadsheet columns. Matching is case-insensitive; spaces and underscores are equivalent.
var xlsxColumns = []string{"id", "name", "role", "category", "start year", "advanced degree", "current net", "target net"}

// ReadRosterXLSX reads the first worksheet of a workbook. The first row must
// hold the column headers listed in xlsxColumns.
func ReadRosterXLSX(r io.Reader) (model.Roster, error) {
	file, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer func() { _ = file.Close() }()

	sheetName := file.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("no worksheet found")
	}

	rows, err := file.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read worksheet %q: %w", sheetName, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("worksheet %q is empty", sheetName)
	}

	headerIndex := map[string]int{}
	for i, header := range rows[0] {
		headerIndex[normalizeHeader(header)] = i
	}
	for _, col := range xlsxColumns {
		if _, ok := headerIndex[col]; !ok {
			return nil, fmt.Errorf("missing required column: %s", col)
		}
	}

	employees := make([]model.Employee, 0, len(rows)-1)
	for n, row := range rows[1:] {
		if isBlankRow(row) {
			continue
		}
		emp, err := employeeFromRow(row, headerIndex)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", n+2, err)
		}
		employees = append(employees, emp)
	}
	return normalizeRoster(employees)
}

func employeeFromRow(row []string, idx map[string]int) (model.Employee, error) {
	cell := func(col string) string { return cellValue(row, idx[col]) }

	id, err := strconv.Atoi(cell("id"))
	if err != nil {
		return model.Employee{}, fmt.Errorf("invalid id %q", cell("id"))
	}
	start, err := strconv.Atoi(cell("start year"))
	if err != nil {
		return model.Employee{}, fmt.Errorf("invalid start year %q", cell("start year"))
	}
	current, err := parseAmount(cell("current net"))
	if err != nil {
		return model.Employee{}, fmt.Errorf("invalid current net: %w", err)
	}
	target, err := parseAmount(cell("target net"))
	if err != nil {
		return model.Employee{}, fmt.Errorf("invalid target net: %w", err)
	}

	return model.Employee{
		ID:             id,
		Name:           cell("name"),
		Role:           cell("role"),
		Category:       model.Category(cell("category")),
		StartYear:      start,
		AdvancedDegree: parseFlag(cell("advanced degree")),
		CurrentNet:     current,
		TargetNet:      target,
	}, nil
}

func normalizeHeader(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.ReplaceAll(s, "_", " ")
}

func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func isBlankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// parseAmount accepts "1234.56", "1.234,56" and "1234,56".
func parseAmount(s string) (float64, error) {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), common.CurrencySuffix))
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", s)
	}
	return v, nil
}

func parseFlag(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "y", "da", "x", "ma":
		return true
	default:
		return false
	}
}

// normalizeRoster canonicalises category tags and rejects duplicate IDs.
func normalizeRoster(employees []model.Employee) (model.Roster, error) {
	seen := make(map[int]struct{}, len(employees))
	out := make(model.Roster, 0, len(employees))
	for _, e := range employees {
		cat, err := model.ParseCategory(string(e.Category))
		if err != nil {
			return nil, fmt.Errorf("%w: employee %d: %w", common.ErrInvalidEmployee, e.ID, err)
		}
		if _, dup := seen[e.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate employee id %d", common.ErrInvalidEmployee, e.ID)
		}
		seen[e.ID] = struct{}{}
		e.Category = cat
		e.Name = strings.TrimSpace(e.Name)
		out = append(out, e)
	}
	return out, nil
}

// EmbeddedSource serves the seed roster compiled into the binary.
type EmbeddedSource struct{}

// LoadRoster implements service.RosterSource.
func (EmbeddedSource) LoadRoster(_ context.Context) (model.Roster, error) {
	return SeedRoster()
}

// Name implements service.RosterSource.
func (EmbeddedSource) Name() string { return SourceEmbedded }

// FileSource reads a YAML or XLSX roster file, chosen by extension.
type FileSource struct {
	Path string
}

// LoadRoster implements service.RosterSource.
func (s FileSource) LoadRoster(ctx context.Context) (model.Roster, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return LoadRosterFile(s.Path)
}

// Name implements service.RosterSource.
func (s FileSource) Name() string { return s.Path }

// StoreSource reads the roster saved in the database.
type StoreSource struct {
	Store service.RosterStore
}

// LoadRoster implements service.RosterSource.
func (s StoreSource) LoadRoster(ctx context.Context) (model.Roster, error) {
	roster, err := s.Store.GetRoster(ctx)
	if err != nil {
		return nil, err
	}
	if len(roster) == 0 {
		return nil, common.NewUserError("the roster database is empty; run 'payroll roster seed' or 'payroll roster import'", common.ErrEmptyRoster)
	}
	return roster, nil
}

// Name implements service.RosterSource.
func (StoreSource) Name() string { return SourceStore }

// LoadRosterFile reads a roster from a .yaml/.yml or .xlsx file.
func LoadRosterFile(path string) (model.Roster, error) {
	path = ExpandPath(path)
	data, err := os.ReadFile(path) // #nosec G304
	if err != nil {
		return nil, fmt.Errorf("failed to read roster file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseRosterYAML(data)
	case ".xlsx":
		return ReadRosterXLSX(bytes.NewReader(data))
	default:
		return nil, fmt.Errorf("%w: unsupported roster file %q (expected .yaml, .yml or .xlsx)", common.ErrInvalidConfig, path)
	}
}

// ResolveSource maps a roster.source value to a RosterSource. store may be nil
// unless the value is "store".
func ResolveSource(spec string, store service.RosterStore) (service.RosterSource, error) {
	switch strings.ToLower(strings.TrimSpace(spec)) {
	case "", SourceEmbedded:
		return EmbeddedSource{}, nil
	case SourceStore:
		if store == nil {
			return nil, fmt.Errorf("%w: roster source %q needs a database", common.ErrMissingConfig, spec)
		}
		return StoreSource{Store: store}, nil
	default:
		return FileSource{Path: spec}, nil
	}
}
