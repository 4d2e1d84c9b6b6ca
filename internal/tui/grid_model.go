// Package tui implements the interactive dashboard grid.
package tui

import (
	"fmt"
	"os/exec"
	"runtime"
	"sort"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/repodash/repodash/internal/grid"
	"github.com/repodash/repodash/internal/model"
)

// GridModel is the Bubble Tea model for the interactive repository
// grid. The source collection is immutable; every interaction replaces
// the filter or sort state wholesale and recomputes the visible rows
// through the full pipeline. Column structure is fixed at construction,
// only the filter values are volatile, so the filter input keeps its
// identity (and focus) across refreshes.
type GridModel struct {
	source  []model.Record // read-only input, never mutated
	visible []model.Record

	filter    grid.Filter
	sortState grid.SortState

	cursor    int // selected row in visible
	colCursor int // selected column, index into grid.Columns

	filterInput textinput.Model
	filtering   bool

	// licenses holds the distinct license values present in the source,
	// sorted, for the cycle key. Empty licenses are skipped.
	licenses   []string
	licenseIdx int // 0 = no license filter, i>0 = licenses[i-1]

	org          string
	windowWidth  int
	windowHeight int
	statusMsg    string
	quitting     bool
}

// GridOption is a functional option for configuring GridModel
type GridOption func(*GridModel)

// WithFilter sets the initial filter state.
func WithFilter(f grid.Filter) GridOption {
	return func(m *GridModel) {
		m.filter = f
	}
}

// WithSort sets the initial sort state.
func WithSort(s grid.SortState) GridOption {
	return func(m *GridModel) {
		m.sortState = s
	}
}

// NewGridModel creates a grid over the records.
func NewGridModel(records []model.Record, org string, opts ...GridOption) GridModel {
	input := textinput.New()
	input.Placeholder = "repository name"
	input.Prompt = "/"
	input.CharLimit = 80

	m := GridModel{
		source:       records,
		org:          org,
		filterInput:  input,
		windowWidth:  80,
		windowHeight: 24,
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.licenses = distinctLicenses(records)
	m.filterInput.SetValue(m.filter.Name)
	m.refresh()
	return m
}

// distinctLicenses returns the sorted set of non-empty licenses.
func distinctLicenses(records []model.Record) []string {
	seen := make(map[string]bool)
	var out []string
	for _, r := range records {
		if r.License != "" && !seen[r.License] {
			seen[r.License] = true
			out = append(out, r.License)
		}
	}
	sort.Strings(out)
	return out
}

// refresh recomputes the visible rows from the current filter and sort
// state and clamps the cursor.
func (m *GridModel) refresh() {
	m.visible = grid.Apply(m.source, m.filter, m.sortState)
	if m.cursor >= len(m.visible) {
		m.cursor = len(m.visible) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// Visible returns the rows currently displayed, for tests.
func (m GridModel) Visible() []model.Record {
	return m.visible
}

// SortSpec returns the active sort state rendered as a spec string.
func (m GridModel) SortSpec() string {
	return m.sortState.String()
}

// Init implements tea.Model
func (m GridModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m GridModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.filtering {
			return m.handleFilterKey(msg)
		}
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.windowWidth = msg.Width
		m.windowHeight = msg.Height
		return m, nil

	case clearStatusMsg:
		m.statusMsg = ""
		return m, nil
	}

	return m, nil
}

// handleFilterKey routes keys while the name-filter input has focus.
// Every keystroke updates the filter and re-applies the pipeline.
func (m GridModel) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.filtering = false
		m.filterInput.Blur()
		return m, nil

	case "esc":
		m.filtering = false
		m.filterInput.Blur()
		m.filterInput.SetValue("")
		m.filter.Name = ""
		m.refresh()
		return m, nil
	}

	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	m.filter.Name = m.filterInput.Value()
	m.refresh()
	return m, cmd
}

// handleKey processes keyboard input in browse mode
func (m GridModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc", "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case "j", "down":
		if m.cursor < len(m.visible)-1 {
			m.cursor++
		}
		return m, nil

	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case "g", "home":
		m.cursor = 0
		return m, nil

	case "G", "end":
		if len(m.visible) > 0 {
			m.cursor = len(m.visible) - 1
		}
		return m, nil

	case "h", "left":
		if m.colCursor > 0 {
			m.colCursor--
		}
		return m, nil

	case "l", "right":
		if m.colCursor < len(grid.Columns)-1 {
			m.colCursor++
		}
		return m, nil

	case "s":
		return m.sortSelected(false)

	case "S":
		return m.sortSelected(true)

	case "/":
		m.filtering = true
		m.filterInput.Focus()
		return m, textinput.Blink

	case "L":
		return m.cycleLicense()

	case "c":
		m.filter = grid.Filter{}
		m.sortState = nil
		m.licenseIdx = 0
		m.filterInput.SetValue("")
		m.refresh()
		return m.withStatus("Filters and sort cleared")

	case "enter":
		return m.openInBrowser()
	}

	return m, nil
}

// sortSelected sorts by the column under the column cursor. With
// append=false the sort state is replaced wholesale; hitting the same
// primary column again flips its direction. With append=true the
// column is added to the chain as the next tiebreaker.
func (m GridModel) sortSelected(appendKey bool) (tea.Model, tea.Cmd) {
	col := grid.Columns[m.colCursor]

	dir := grid.Ascending
	if primary, ok := m.sortState.Primary(); ok && !appendKey && primary.Column == col && primary.Direction == grid.Ascending {
		dir = grid.Descending
	}

	key := grid.SortKey{Column: col, Direction: dir}
	if appendKey {
		m.sortState = m.sortState.With(key)
	} else {
		m.sortState = grid.SortState{key}
	}

	m.refresh()
	return m.withStatus(fmt.Sprintf("Sorted by %s", m.sortState))
}

// cycleLicense advances the license filter through the distinct
// licenses present in the source, then back to unfiltered.
func (m GridModel) cycleLicense() (tea.Model, tea.Cmd) {
	if len(m.licenses) == 0 {
		return m.withStatus("No licenses in snapshot")
	}

	m.licenseIdx = (m.licenseIdx + 1) % (len(m.licenses) + 1)
	if m.licenseIdx == 0 {
		m.filter.Licenses = nil
		m.refresh()
		return m.withStatus("License filter cleared")
	}

	license := m.licenses[m.licenseIdx-1]
	m.filter.Licenses = []string{license}
	m.refresh()
	return m.withStatus(fmt.Sprintf("License: %s", license))
}

// withStatus sets a transient status message.
func (m GridModel) withStatus(msg string) (tea.Model, tea.Cmd) {
	m.statusMsg = msg
	return m, clearStatusAfter(2 * time.Second)
}

// openInBrowser opens the selected repository in the default browser
func (m GridModel) openInBrowser() (tea.Model, tea.Cmd) {
	if len(m.visible) == 0 {
		return m, nil
	}

	url := m.visible[m.cursor].HTMLURL
	if url == "" {
		return m.withStatus("No URL available")
	}
	return m, openURL(url)
}

// View implements tea.Model
func (m GridModel) View() string {
	if m.quitting {
		return ""
	}
	return renderGridView(m)
}

// clearStatusMsg is a message to clear the status
type clearStatusMsg struct{}

// clearStatusAfter returns a command that clears the status after a delay
func clearStatusAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}

// openURL opens a URL in the default browser
func openURL(url string) tea.Cmd {
	return func() tea.Msg {
		var cmd *exec.Cmd

		switch runtime.GOOS {
		case "darwin":
			cmd = exec.Command("open", url)
		case "linux":
			cmd = exec.Command("xdg-open", url)
		case "windows":
			cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
		default:
			return nil
		}

		_ = cmd.Start()
		return nil
	}
}
