package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/repodash/repodash/internal/format"
	"github.com/repodash/repodash/internal/grid"
	"github.com/repodash/repodash/internal/model"
)

// TableFormatter formats output as a terminal table
type TableFormatter struct{}

// Column widths
const (
	colName     = 30
	colLicense  = 14
	colNumWidth = 8
)

var (
	headerColor   = color.New(color.Bold)
	noLicenseText = color.New(color.Faint).Sprint("none")
	archivedMark  = color.New(color.Faint).Sprint(" (archived)")
)

// hyperlink creates a clickable terminal hyperlink using OSC 8.
// Format: \033]8;;URL\033\\TEXT\033]8;;\033\\
func hyperlink(text, url string) string {
	if url == "" || !term.IsTerminal(int(os.Stdout.Fd())) {
		return text
	}
	return fmt.Sprintf("\033]8;;%s\033\\%s\033]8;;\033\\", url, text)
}

// Format outputs records as a table
func (f *TableFormatter) Format(records []model.Record, w io.Writer) error {
	if len(records) == 0 {
		fmt.Fprintln(w, "No repositories matched.")
		return nil
	}

	numericCols := numericColumns()

	// Header
	header := format.PadRight("Repository", len("Repository"), colName) + "  " +
		format.PadRight("License", len("License"), colLicense)
	for _, c := range numericCols {
		header += "  " + format.PadRight(c.Title(), len(c.Title()), colNumWidth)
	}
	fmt.Fprintln(w, headerColor.Sprint(strings.TrimRight(header, " ")))

	totalWidth := colName + 2 + colLicense + len(numericCols)*(colNumWidth+2)
	fmt.Fprintln(w, strings.Repeat("-", totalWidth))

	for _, r := range records {
		fmt.Fprintln(w, f.row(r, numericCols))
	}

	return nil
}

func (f *TableFormatter) row(r model.Record, numericCols []grid.Column) string {
	name, nameWidth := format.TruncateToWidth(r.Name, colName)
	if r.Archived {
		trimmed, tw := format.TruncateToWidth(r.Name, colName-len(" (archived)"))
		name = trimmed + archivedMark
		nameWidth = tw + len(" (archived)")
	}
	cell := format.PadRight(hyperlink(name, r.HTMLURL), nameWidth, colName)

	license := r.License
	if license == "" {
		license = noLicenseText
	}
	license, lw := format.TruncateToWidth(license, colLicense)
	cell += "  " + format.PadRight(license, lw, colLicense)

	for _, c := range numericCols {
		v := format.Count(c.NumericValue(r))
		cell += "  " + format.PadRight(v, format.DisplayWidth(v), colNumWidth)
	}

	return strings.TrimRight(cell, " ")
}

// numericColumns returns the numeric grid columns in display order.
func numericColumns() []grid.Column {
	var out []grid.Column
	for _, c := range grid.Columns {
		if c.Kind() == grid.KindNumeric {
			out = append(out, c)
		}
	}
	return out
}
