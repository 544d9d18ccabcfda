package report

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Veraticus/payroll-must-balance/internal/common"
)

// Format is an output encoding for a Document.
type Format string

// Supported formats.
const (
	FormatText Format = "text"
	FormatPDF  Format = "pdf"
	FormatXLSX Format = "xlsx"
	FormatJSON Format = "json"
)

// Formats lists every supported format.
func Formats() []Format {
	return []Format{FormatText, FormatPDF, FormatXLSX, FormatJSON}
}

// ParseFormat accepts a format name, case-insensitive. "txt" is an alias for text.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, "txt", "":
		return FormatText, nil
	case FormatPDF, FormatXLSX, FormatJSON:
		return f, nil
	default:
		return "", fmt.Errorf("unknown report format %q (expected text, pdf, xlsx or json)", s)
	}
}

// FormatForPath guesses the format from a file extension, defaulting to text.
func FormatForPath(path string) Format {
	f, err := ParseFormat(strings.TrimPrefix(filepath.Ext(path), "."))
	if err != nil {
		return FormatText
	}
	return f
}

// Extension returns the file extension for f, including the dot.
func (f Format) Extension() string {
	if f == FormatText {
		return ".txt"
	}
	return "." + string(f)
}

// Write encodes doc to w.
func Write(w io.Writer, format Format, doc Document) error {
	switch format {
	case FormatText:
		_, err := io.WriteString(w, RenderText(doc))
		return err
	case FormatPDF:
		return WritePDF(w, doc)
	case FormatXLSX:
		return WriteXLSX(w, doc)
	case FormatJSON:
		return WriteJSON(w, doc)
	default:
		return fmt.Errorf("unknown report format %q", format)
	}
}

// WriteFile renders doc into path, creating parent directories as needed.
func WriteFile(path string, format Format, doc Document) (err error) {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("%w: empty output path", common.ErrExportFailed)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("failed to create report directory: %w", err)
	}

	f, err := os.Create(path) // #nosec G304 - path comes from the operator
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	w := bufio.NewWriter(f)
	if err := Write(w, format, doc); err != nil {
		return fmt.Errorf("%w: %s report: %w", common.ErrExportFailed, format, err)
	}
	return w.Flush()
}
