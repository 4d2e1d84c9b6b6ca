package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/repodash/repodash/internal/model"
)

// MarkdownFormatter formats output as a GitHub-flavored markdown table,
// suitable for pasting into issues or READMEs.
type MarkdownFormatter struct {
	Meta Meta
}

// Format outputs records as a markdown table
func (f *MarkdownFormatter) Format(records []model.Record, w io.Writer) error {
	if f.Meta.Org != "" {
		fmt.Fprintf(w, "# %s repositories\n\n", f.Meta.Org)
	}
	if f.Meta.GeneratedAt != "" {
		fmt.Fprintf(w, "_Data collected %s._\n\n", f.Meta.GeneratedAt)
	}

	if len(records) == 0 {
		fmt.Fprintln(w, "No repositories matched.")
		return nil
	}

	fmt.Fprintln(w, "| Repository | License | Collab | Issues | PRs | Forks | Watchers | Disc | Projects |")
	fmt.Fprintln(w, "|---|---|---:|---:|---:|---:|---:|---:|---:|")

	for _, r := range records {
		name := escapeMarkdown(r.Name)
		if r.HTMLURL != "" {
			name = fmt.Sprintf("[%s](%s)", name, r.HTMLURL)
		}
		license := escapeMarkdown(r.License)
		if license == "" {
			license = "—"
		}

		fmt.Fprintf(w, "| %s | %s | %d | %d | %d | %d | %d | %d | %d |\n",
			name, license,
			r.Collaborators, r.Issues, r.PullRequests,
			r.Forks, r.Watchers, r.Discussions, r.Projects)
	}

	return nil
}

// escapeMarkdown escapes the characters that break table cells.
func escapeMarkdown(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	return strings.ReplaceAll(s, "_", "\\_")
}
