// Package grid implements the dashboard's table engine: a pure,
// in-memory sort and filter pipeline over repository records. The
// record collection is treated as immutable input; every operation
// returns a new ordering without touching the source slice.
package grid

import (
	"errors"
	"fmt"

	"github.com/repodash/repodash/internal/model"
)

// ErrUnsupportedColumn is returned when a sort or filter references a
// column outside the closed set below. This signals a programming error
// (a bad flag value or key name), not a data condition, and is never
// recovered silently.
var ErrUnsupportedColumn = errors.New("unsupported column")

// Kind tags a column with its comparison semantics.
type Kind int

const (
	// KindNumeric compares values by direct numeric comparison.
	KindNumeric Kind = iota
	// KindString compares values case-insensitively with locale-aware
	// collation.
	KindString
)

// Column identifies one sortable/filterable field of a Record. The set
// is closed: code that holds a Column value can never name an
// unsupported field, so the runtime check only lives at the string
// parsing boundary.
type Column int

const (
	ColumnName Column = iota
	ColumnLicense
	ColumnCollaborators
	ColumnIssues
	ColumnPullRequests
	ColumnForks
	ColumnWatchers
	ColumnDiscussions
	ColumnProjects
)

// Columns lists every column in display order.
var Columns = []Column{
	ColumnName,
	ColumnLicense,
	ColumnCollaborators,
	ColumnIssues,
	ColumnPullRequests,
	ColumnForks,
	ColumnWatchers,
	ColumnDiscussions,
	ColumnProjects,
}

// Key returns the stable string key used in flags, config, and JSON.
func (c Column) Key() string {
	switch c {
	case ColumnName:
		return "name"
	case ColumnLicense:
		return "license"
	case ColumnCollaborators:
		return "collaborators"
	case ColumnIssues:
		return "issues"
	case ColumnPullRequests:
		return "prs"
	case ColumnForks:
		return "forks"
	case ColumnWatchers:
		return "watchers"
	case ColumnDiscussions:
		return "discussions"
	case ColumnProjects:
		return "projects"
	default:
		return fmt.Sprintf("column(%d)", int(c))
	}
}

// Title returns the column header shown in table output.
func (c Column) Title() string {
	switch c {
	case ColumnName:
		return "Repository"
	case ColumnLicense:
		return "License"
	case ColumnCollaborators:
		return "Collab"
	case ColumnIssues:
		return "Issues"
	case ColumnPullRequests:
		return "PRs"
	case ColumnForks:
		return "Forks"
	case ColumnWatchers:
		return "Watchers"
	case ColumnDiscussions:
		return "Disc"
	case ColumnProjects:
		return "Projects"
	default:
		return c.Key()
	}
}

// Kind returns the comparison semantics for the column.
func (c Column) Kind() Kind {
	switch c {
	case ColumnName, ColumnLicense:
		return KindString
	default:
		return KindNumeric
	}
}

// StringValue extracts the column's value from a record for string columns.
func (c Column) StringValue(r model.Record) string {
	if c == ColumnLicense {
		return r.License
	}
	return r.Name
}

// NumericValue extracts the column's value from a record for numeric columns.
func (c Column) NumericValue(r model.Record) int {
	switch c {
	case ColumnCollaborators:
		return r.Collaborators
	case ColumnIssues:
		return r.Issues
	case ColumnPullRequests:
		return r.PullRequests
	case ColumnForks:
		return r.Forks
	case ColumnWatchers:
		return r.Watchers
	case ColumnDiscussions:
		return r.Discussions
	case ColumnProjects:
		return r.Projects
	default:
		return 0
	}
}

// ParseColumn resolves a string key to a Column. Unknown keys fail with
// ErrUnsupportedColumn.
func ParseColumn(key string) (Column, error) {
	for _, c := range Columns {
		if c.Key() == key {
			return c, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedColumn, key)
}
