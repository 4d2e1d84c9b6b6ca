package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/repodash/repodash/internal/grid"
	"github.com/repodash/repodash/internal/model"
)

// makeRecord creates a Record with the given name and collaborator count.
func makeRecord(name, license string, collaborators int) model.Record {
	return model.Record{
		Name:          name,
		License:       license,
		Collaborators: collaborators,
		HTMLURL:       "https://github.com/acme/" + name,
	}
}

// press sends a key rune through Update and returns the updated model.
func press(t *testing.T, m GridModel, key string) GridModel {
	t.Helper()
	var msg tea.KeyMsg
	switch key {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	updated, _ := m.Update(msg)
	return updated.(GridModel)
}

func testRecords() []model.Record {
	return []model.Record{
		makeRecord("widget", "MIT", 3),
		makeRecord("core-api", "Apache-2.0", 7),
		makeRecord("corefront", "", 5),
	}
}

func TestCursorNavigation(t *testing.T) {
	m := NewGridModel(testRecords(), "acme")

	if m.cursor != 0 {
		t.Fatalf("expected cursor 0, got %d", m.cursor)
	}

	m = press(t, m, "j")
	m = press(t, m, "j")
	if m.cursor != 2 {
		t.Fatalf("expected cursor 2, got %d", m.cursor)
	}

	// Cursor does not run past the last row
	m = press(t, m, "j")
	if m.cursor != 2 {
		t.Fatalf("expected cursor clamped at 2, got %d", m.cursor)
	}

	m = press(t, m, "g")
	if m.cursor != 0 {
		t.Fatalf("expected cursor 0 after g, got %d", m.cursor)
	}

	m = press(t, m, "G")
	if m.cursor != 2 {
		t.Fatalf("expected cursor 2 after G, got %d", m.cursor)
	}
}

func TestSortKeyReplacesState(t *testing.T) {
	m := NewGridModel(testRecords(), "acme")

	// Move column cursor to Collaborators and sort
	for m.colCursor != 2 {
		m = press(t, m, "l")
	}
	m = press(t, m, "s")

	if got := m.SortSpec(); got != "collaborators" {
		t.Fatalf("expected sort spec %q, got %q", "collaborators", got)
	}
	if m.visible[0].Name != "widget" {
		t.Errorf("expected widget first (3 collaborators), got %s", m.visible[0].Name)
	}

	// Sorting the same column again flips direction
	m = press(t, m, "s")
	if got := m.SortSpec(); got != "-collaborators" {
		t.Fatalf("expected sort spec %q, got %q", "-collaborators", got)
	}
	if m.visible[0].Name != "core-api" {
		t.Errorf("expected core-api first (7 collaborators), got %s", m.visible[0].Name)
	}
}

func TestSortKeyAppendsToChain(t *testing.T) {
	m := NewGridModel(testRecords(), "acme")

	// Primary sort on license, then append name as tiebreaker
	m = press(t, m, "l")
	m = press(t, m, "s")
	m = press(t, m, "h")
	m = press(t, m, "S")

	if got := m.SortSpec(); got != "license,name" {
		t.Fatalf("expected sort spec %q, got %q", "license,name", got)
	}
}

func TestFilterInputReappliesPipeline(t *testing.T) {
	m := NewGridModel(testRecords(), "acme")

	m = press(t, m, "/")
	if !m.filtering {
		t.Fatal("expected filtering mode after /")
	}

	// Each keystroke narrows the visible set
	m = press(t, m, "c")
	m = press(t, m, "o")
	m = press(t, m, "r")
	m = press(t, m, "e")
	if len(m.Visible()) != 2 {
		t.Fatalf("expected 2 visible rows for \"core\", got %d", len(m.Visible()))
	}

	m = press(t, m, "f")
	if len(m.Visible()) != 1 || m.Visible()[0].Name != "corefront" {
		t.Fatalf("expected only corefront for \"coref\", got %v", m.Visible())
	}

	// Enter keeps the filter, esc from browse mode quits rather than clearing
	m = press(t, m, "enter")
	if m.filtering {
		t.Fatal("expected filtering mode to end on enter")
	}
	if m.filter.Name != "coref" {
		t.Errorf("expected filter name to survive enter, got %q", m.filter.Name)
	}
}

func TestFilterEscClearsInput(t *testing.T) {
	m := NewGridModel(testRecords(), "acme")

	m = press(t, m, "/")
	m = press(t, m, "x")
	if len(m.Visible()) != 0 {
		t.Fatalf("expected no matches for \"x\", got %d", len(m.Visible()))
	}

	m = press(t, m, "esc")
	if m.filtering {
		t.Fatal("expected filtering mode to end on esc")
	}
	if len(m.Visible()) != 3 {
		t.Fatalf("expected filter cleared on esc, got %d visible", len(m.Visible()))
	}
}

func TestClearResetsFilterAndSort(t *testing.T) {
	minC := 4
	m := NewGridModel(testRecords(), "acme",
		WithFilter(grid.Filter{Collaborators: &grid.Range{Min: &minC}}),
		WithSort(grid.SortState{{Column: grid.ColumnName, Direction: grid.Descending}}),
	)

	if len(m.Visible()) != 2 {
		t.Fatalf("expected 2 visible with initial filter, got %d", len(m.Visible()))
	}

	m = press(t, m, "c")
	if len(m.Visible()) != 3 {
		t.Fatalf("expected all rows after clear, got %d", len(m.Visible()))
	}
	if m.SortSpec() != "" {
		t.Errorf("expected empty sort spec after clear, got %q", m.SortSpec())
	}
	// Cleared state preserves insertion order
	if m.Visible()[0].Name != "widget" {
		t.Errorf("expected insertion order restored, got %s first", m.Visible()[0].Name)
	}
}

func TestCursorClampedWhenFilterShrinksView(t *testing.T) {
	m := NewGridModel(testRecords(), "acme")

	m = press(t, m, "G")
	if m.cursor != 2 {
		t.Fatalf("expected cursor 2, got %d", m.cursor)
	}

	m = press(t, m, "/")
	m = press(t, m, "w")
	if len(m.Visible()) != 1 {
		t.Fatalf("expected 1 visible row, got %d", len(m.Visible()))
	}
	if m.cursor != 0 {
		t.Errorf("expected cursor clamped to 0, got %d", m.cursor)
	}
}

func TestLicenseCycle(t *testing.T) {
	m := NewGridModel(testRecords(), "acme")

	// Licenses cycle in sorted order: Apache-2.0, MIT, then back to all
	m = press(t, m, "L")
	if len(m.Visible()) != 1 || m.Visible()[0].Name != "core-api" {
		t.Fatalf("expected only core-api (Apache-2.0), got %v", m.Visible())
	}

	m = press(t, m, "L")
	if len(m.Visible()) != 1 || m.Visible()[0].Name != "widget" {
		t.Fatalf("expected only widget (MIT), got %v", m.Visible())
	}

	m = press(t, m, "L")
	if len(m.Visible()) != 3 {
		t.Fatalf("expected cycle back to unfiltered, got %d visible", len(m.Visible()))
	}
}

func TestQuitKeys(t *testing.T) {
	for _, key := range []string{"q", "esc"} {
		m := NewGridModel(testRecords(), "acme")
		var msg tea.KeyMsg
		if key == "esc" {
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		} else {
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
		}
		updated, cmd := m.Update(msg)
		m = updated.(GridModel)
		if !m.quitting {
			t.Errorf("key %q: expected quitting", key)
		}
		if cmd == nil {
			t.Errorf("key %q: expected tea.Quit command", key)
		}
		if m.View() != "" {
			t.Errorf("key %q: expected empty view while quitting", key)
		}
	}
}

func TestViewContainsRowsAndSortIndicator(t *testing.T) {
	m := NewGridModel(testRecords(), "acme")
	m = press(t, m, "s")

	view := m.View()
	for _, want := range []string{"acme repositories (3/3)", "widget", "core-api", "▲"} {
		if !containsString(view, want) {
			t.Errorf("expected view to contain %q", want)
		}
	}
}

func containsString(s, sub string) bool {
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return true
		}
	}
	return false
}
