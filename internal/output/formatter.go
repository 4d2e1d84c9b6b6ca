// Package output renders repository records for different consumers:
// a terminal table, JSON, markdown, and a static HTML export.
package output

import (
	"fmt"
	"io"

	"github.com/repodash/repodash/internal/model"
)

// Format represents the output format
type Format string

const (
	FormatTable    Format = "table"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
)

// Meta carries snapshot context some formatters render alongside the
// records.
type Meta struct {
	Org         string
	GeneratedAt string
}

// Formatter defines the interface for output formatters
type Formatter interface {
	Format(records []model.Record, w io.Writer) error
}

// NewFormatter creates a formatter for the specified format.
func NewFormatter(format Format, meta Meta) (Formatter, error) {
	switch format {
	case FormatJSON:
		return &JSONFormatter{Meta: meta}, nil
	case FormatMarkdown:
		return &MarkdownFormatter{Meta: meta}, nil
	case FormatHTML:
		return &HTMLFormatter{Meta: meta}, nil
	case FormatTable, "":
		return &TableFormatter{}, nil
	default:
		return nil, fmt.Errorf("unknown output format %q (want table, json, markdown, or html)", format)
	}
}
