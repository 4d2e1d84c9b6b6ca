package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/repodash/repodash/internal/format"
	"github.com/repodash/repodash/internal/grid"
	"github.com/repodash/repodash/internal/model"
)

// Column widths for the grid view
const (
	colName    = 30
	colLicense = 14
	colNum     = 8
)

// chromeLines is the number of lines used around the table: title bar,
// header, separator, footer and status.
const chromeLines = 7

// renderGridView renders the complete grid view
func renderGridView(m GridModel) string {
	var b strings.Builder

	availableHeight := m.windowHeight - chromeLines
	if availableHeight < 1 {
		availableHeight = 1
	}

	// Title bar
	b.WriteString("\n")
	b.WriteString(renderTitleBar(m))
	b.WriteString("\n\n")

	if len(m.visible) == 0 {
		b.WriteString(renderGridEmptyState(m))
		b.WriteString("\n\n")
		b.WriteString(renderGridHelp(m))
		return b.String()
	}

	// Header
	b.WriteString(renderGridHeader(m))
	b.WriteString("\n")
	b.WriteString(gridSeparatorStyle.Render(strings.Repeat("─", gridTableWidth())))
	b.WriteString("\n")

	// Scroll window
	start, end := calculateGridWindow(m.cursor, len(m.visible), availableHeight)

	for i := start; i < end; i++ {
		b.WriteString(renderGridRow(m.visible[i], i == m.cursor))
		b.WriteString("\n")
	}

	// Footer
	b.WriteString("\n")
	b.WriteString(renderGridHelp(m))

	if m.statusMsg != "" {
		b.WriteString("\n")
		b.WriteString(gridStatusStyle.Render(m.statusMsg))
	}

	return b.String()
}

// renderTitleBar renders the org name plus the active filter summary,
// or the filter input while it has focus.
func renderTitleBar(m GridModel) string {
	title := gridTitleStyle.Render(fmt.Sprintf("%s repositories (%d/%d)", m.org, len(m.visible), len(m.source)))

	if m.filtering {
		return title + "   " + m.filterInput.View()
	}

	var parts []string
	if m.filter.Name != "" {
		parts = append(parts, fmt.Sprintf("name~%q", m.filter.Name))
	}
	if len(m.filter.Licenses) > 0 {
		parts = append(parts, "license:"+strings.Join(m.filter.Licenses, ","))
	}
	if m.filter.Collaborators != nil {
		parts = append(parts, "collaborators:"+m.filter.Collaborators.String())
	}
	if len(parts) == 0 {
		return title
	}
	return title + "   " + gridFilterStyle.Render(strings.Join(parts, "  "))
}

// renderGridHeader renders the column titles. The column under the
// column cursor is highlighted, and sorted columns carry a direction
// arrow plus their position in the sort chain.
func renderGridHeader(m GridModel) string {
	var b strings.Builder
	b.WriteString("  ")

	for i, col := range grid.Columns {
		title := col.Title()
		if dir, pos, ok := m.sortState.DirectionOf(col); ok {
			arrow := "▲"
			if dir == grid.Descending {
				arrow = "▼"
			}
			if len(m.sortState) > 1 {
				title = fmt.Sprintf("%s %s%d", title, arrow, pos+1)
			} else {
				title = fmt.Sprintf("%s %s", title, arrow)
			}
		}

		width := columnWidth(col)
		title, titleWidth := format.TruncateToWidth(title, width)
		title = format.PadRight(title, titleWidth, width)

		if i == m.colCursor {
			title = gridColCursorStyle.Render(title)
		} else {
			title = gridHeaderStyle.Render(title)
		}

		b.WriteString(title)
		b.WriteString("  ")
	}

	return strings.TrimRight(b.String(), " ")
}

// renderGridRow renders a single repository row
func renderGridRow(r model.Record, selected bool) string {
	cursor := "  "
	if selected {
		cursor = gridApply(gridCursorStyle, "> ", selected)
	}

	name := r.Name
	if r.Archived {
		name += " (archived)"
	}
	name, nameWidth := format.TruncateToWidth(name, colName)
	name = format.PadRight(name, nameWidth, colName)

	var license string
	if r.License == "" {
		license = format.PadRight(gridApply(gridDimStyle, "none", selected), 4, colLicense)
	} else {
		lic, w := format.TruncateToWidth(r.License, colLicense)
		license = format.PadRight(lic, w, colLicense)
	}

	var b strings.Builder
	b.WriteString(cursor)
	b.WriteString(name)
	b.WriteString("  ")
	b.WriteString(license)

	for _, col := range grid.Columns {
		if col.Kind() != grid.KindNumeric {
			continue
		}
		b.WriteString("  ")
		b.WriteString(fmt.Sprintf("%*s", colNum, format.Count(col.NumericValue(r))))
	}

	row := b.String()
	if selected {
		return gridSelectedStyle.Width(gridTableWidth()).Render(row)
	}
	return row
}

// columnWidth returns the display width for a grid column
func columnWidth(c grid.Column) int {
	switch c {
	case grid.ColumnName:
		return colName
	case grid.ColumnLicense:
		return colLicense
	default:
		return colNum
	}
}

// gridTableWidth calculates the total table width
func gridTableWidth() int {
	w := 2 // cursor
	for i, col := range grid.Columns {
		if i > 0 {
			w += 2
		}
		w += columnWidth(col)
	}
	return w
}

// calculateGridWindow determines which rows to show based on cursor position
func calculateGridWindow(cursor, total, viewHeight int) (start, end int) {
	if total <= viewHeight {
		return 0, total
	}

	start = cursor - viewHeight/2
	if start < 0 {
		start = 0
	}

	end = start + viewHeight
	if end > total {
		end = total
		start = end - viewHeight
		if start < 0 {
			start = 0
		}
	}

	return start, end
}

// renderGridEmptyState renders the message shown when no rows match
func renderGridEmptyState(m GridModel) string {
	if len(m.source) == 0 {
		return gridEmptyStyle.Render("No repositories in snapshot.\nRun 'repodash fetch' to collect data.")
	}
	return gridEmptyStyle.Render("No repositories match the current filters.\nPress 'c' to clear filters.")
}

// renderGridHelp renders the help text
func renderGridHelp(m GridModel) string {
	if m.filtering {
		return gridHelpStyle.Render("enter: apply   esc: clear filter")
	}
	return gridHelpStyle.Render("j/k: rows   h/l: columns   s/S: sort   /: filter   L: license   c: clear   enter: open   q: quit")
}

// gridApply renders text with the given style when not selected.
// Selected rows stay plain so the background highlight is not broken
// by ANSI reset codes.
func gridApply(s lipgloss.Style, text string, selected bool) string {
	if selected {
		return text
	}
	return s.Render(text)
}

// Grid view styles
var (
	gridTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#F1F5F9"))

	gridHeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#CBD5E1"))

	gridColCursorStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#60A5FA")).
				Underline(true)

	gridSeparatorStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#475569"))

	gridSelectedStyle = lipgloss.NewStyle().
				Background(lipgloss.Color("#334155")).
				Foreground(lipgloss.Color("#F1F5F9")).
				Bold(true)

	gridCursorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#60A5FA")).
			Bold(true)

	gridDimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6B7280"))

	gridFilterStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FBBF24"))

	gridHelpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#64748B"))

	gridStatusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#60A5FA"))

	gridEmptyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6B7280")).
			Italic(true)
)
