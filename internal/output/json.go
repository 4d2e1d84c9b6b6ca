package output

import (
	"encoding/json"
	"io"

	"github.com/repodash/repodash/internal/model"
)

// JSONFormatter formats output as JSON
type JSONFormatter struct {
	Meta   Meta
	Pretty bool
}

// jsonOutput wraps the records with snapshot metadata.
type jsonOutput struct {
	Org         string         `json:"org,omitempty"`
	GeneratedAt string         `json:"generatedAt,omitempty"`
	Repos       []model.Record `json:"repos"`
}

// Format outputs records as JSON
func (f *JSONFormatter) Format(records []model.Record, w io.Writer) error {
	encoder := json.NewEncoder(w)
	if f.Pretty {
		encoder.SetIndent("", "  ")
	}
	return encoder.Encode(jsonOutput{
		Org:         f.Meta.Org,
		GeneratedAt: f.Meta.GeneratedAt,
		Repos:       records,
	})
}
