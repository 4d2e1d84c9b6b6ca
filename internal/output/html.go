package output

import (
	"fmt"
	"html/template"
	"io"

	"github.com/repodash/repodash/internal/model"
)

// HTMLFormatter renders the records as a self-contained static HTML
// page: the artifact the export command publishes to static hosting.
type HTMLFormatter struct {
	Meta Meta
}

type htmlData struct {
	Org         string
	GeneratedAt string
	Repos       []model.Record
}

const htmlTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{if .Org}}{{.Org}} {{end}}repository metrics</title>
<style>
:root { --bg: #fff; --fg: #1a1a2e; --card-bg: #f8f9fa; --border: #dee2e6; --table-alt: #f1f3f5; --muted: #6c757d; }
@media (prefers-color-scheme: dark) {
  :root { --bg: #1a1a2e; --fg: #e9ecef; --card-bg: #16213e; --border: #495057; --table-alt: #0f3460; --muted: #adb5bd; }
}
* { box-sizing: border-box; margin: 0; padding: 0; }
body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif; background: var(--bg); color: var(--fg); line-height: 1.5; padding: 1rem; max-width: 1200px; margin: 0 auto; }
header { margin-bottom: 1.5rem; }
header h1 { font-size: 1.5rem; margin-bottom: .25rem; }
header p { color: var(--muted); font-size: .875rem; }
table { width: 100%; border-collapse: collapse; font-size: .8125rem; }
thead { position: sticky; top: 0; background: var(--card-bg); }
th, td { padding: .5rem .625rem; text-align: left; border-bottom: 1px solid var(--border); white-space: nowrap; }
td.num, th.num { text-align: right; }
tr:nth-child(even) { background: var(--table-alt); }
.muted { color: var(--muted); }
</style>
</head>
<body>
<header>
<h1>{{if .Org}}{{.Org}} {{end}}repository metrics</h1>
{{if .GeneratedAt}}<p>Data collected {{.GeneratedAt}}</p>{{end}}
</header>
<table>
<thead>
<tr><th>Repository</th><th>License</th><th class="num">Collab</th><th class="num">Issues</th><th class="num">PRs</th><th class="num">Forks</th><th class="num">Watchers</th><th class="num">Disc</th><th class="num">Projects</th></tr>
</thead>
<tbody>
{{range .Repos}}<tr>
<td>{{if .HTMLURL}}<a href="{{.HTMLURL}}">{{.Name}}</a>{{else}}{{.Name}}{{end}}{{if .Archived}} <span class="muted">(archived)</span>{{end}}</td>
<td>{{if .License}}{{.License}}{{else}}<span class="muted">none</span>{{end}}</td>
<td class="num">{{.Collaborators}}</td>
<td class="num">{{.Issues}}</td>
<td class="num">{{.PullRequests}}</td>
<td class="num">{{.Forks}}</td>
<td class="num">{{.Watchers}}</td>
<td class="num">{{.Discussions}}</td>
<td class="num">{{.Projects}}</td>
</tr>
{{end}}</tbody>
</table>
</body>
</html>
`

var htmlTmpl = template.Must(template.New("dashboard").Parse(htmlTemplate))

// Format renders the static dashboard page
func (f *HTMLFormatter) Format(records []model.Record, w io.Writer) error {
	data := htmlData{
		Org:         f.Meta.Org,
		GeneratedAt: f.Meta.GeneratedAt,
		Repos:       records,
	}
	if err := htmlTmpl.Execute(w, data); err != nil {
		return fmt.Errorf("failed to render HTML: %w", err)
	}
	return nil
}
