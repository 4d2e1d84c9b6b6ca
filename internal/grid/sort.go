package grid

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/repodash/repodash/internal/model"
)

// Direction orients a single sort key.
type Direction int

const (
	Ascending Direction = iota
	Descending
)

// SortKey pairs a column with a direction.
type SortKey struct {
	Column    Column
	Direction Direction
}

// SortState is an ordered comparator chain: the first key is the
// primary sort, later keys break ties. It is replaced wholesale on each
// user interaction and never persisted.
type SortState []SortKey

// With returns a new state with key appended as the next tiebreaker.
// A key for a column already in the chain replaces that entry in place.
func (s SortState) With(key SortKey) SortState {
	out := make(SortState, 0, len(s)+1)
	replaced := false
	for _, k := range s {
		if k.Column == key.Column {
			out = append(out, key)
			replaced = true
			continue
		}
		out = append(out, k)
	}
	if !replaced {
		out = append(out, key)
	}
	return out
}

// Primary returns the first key of the chain, if any.
func (s SortState) Primary() (SortKey, bool) {
	if len(s) == 0 {
		return SortKey{}, false
	}
	return s[0], true
}

// DirectionOf returns the direction for col and its position in the
// chain (0 = primary). ok is false when col is not part of the chain.
func (s SortState) DirectionOf(col Column) (dir Direction, pos int, ok bool) {
	for i, k := range s {
		if k.Column == col {
			return k.Direction, i, true
		}
	}
	return Ascending, 0, false
}

// Sort returns the records ordered by the comparator chain. The input
// slice is never mutated. An empty state is a no-op: the insertion
// order of the collection is preserved. The sort is stable, so records
// tying on every key keep their relative order.
func (s SortState) Sort(records []model.Record) []model.Record {
	out := make([]model.Record, len(records))
	copy(out, records)
	if len(s) == 0 {
		return out
	}

	// String columns compare case-insensitively with locale-aware
	// collation; numeric columns compare directly.
	coll := collate.New(language.English, collate.IgnoreCase)

	sort.SliceStable(out, func(i, j int) bool {
		return s.compare(coll, out[i], out[j]) < 0
	})
	return out
}

// compare applies the chain: the first key with a nonzero result wins,
// ties fall through to the next key. Descending negates per key.
func (s SortState) compare(coll *collate.Collator, a, b model.Record) int {
	for _, key := range s {
		var c int
		switch key.Column.Kind() {
		case KindString:
			c = coll.CompareString(key.Column.StringValue(a), key.Column.StringValue(b))
		default:
			c = compareInts(key.Column.NumericValue(a), key.Column.NumericValue(b))
		}
		if key.Direction == Descending {
			c = -c
		}
		if c != 0 {
			return c
		}
	}
	return 0
}

func compareInts(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// ParseSortSpec parses a comma-separated sort specification into a
// SortState. Each entry is a column key with an optional direction
// prefix: "+name" or "name" sorts ascending, "-collaborators" sorts
// descending. Entry order defines the comparator chain order. An
// unknown column key fails the whole spec with ErrUnsupportedColumn and
// yields no state.
func ParseSortSpec(spec string) (SortState, error) {
	if strings.TrimSpace(spec) == "" {
		return nil, nil
	}

	var state SortState
	for _, part := range strings.Split(spec, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		dir := Ascending
		switch part[0] {
		case '-':
			dir = Descending
			part = part[1:]
		case '+':
			part = part[1:]
		}

		col, err := ParseColumn(part)
		if err != nil {
			return nil, fmt.Errorf("invalid sort spec: %w", err)
		}
		state = state.With(SortKey{Column: col, Direction: dir})
	}
	return state, nil
}

// String renders the state back into the spec syntax accepted by
// ParseSortSpec.
func (s SortState) String() string {
	parts := make([]string, 0, len(s))
	for _, k := range s {
		prefix := ""
		if k.Direction == Descending {
			prefix = "-"
		}
		parts = append(parts, prefix+k.Column.Key())
	}
	return strings.Join(parts, ",")
}
