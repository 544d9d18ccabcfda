package report

import (
	"io"

	"github.com/goccy/go-json"
)

// WriteJSON encodes doc as indented JSON.
func WriteJSON(w io.Writer, doc Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
