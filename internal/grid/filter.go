package grid

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/repodash/repodash/internal/model"
)

// LicenseAll is the sentinel license filter value meaning "ignore this
// filter dimension". Its presence anywhere in the license set accepts
// every record regardless of other entries.
const LicenseAll = "all"

// Filter holds the active column-level predicates. The zero value
// imposes no constraint on any dimension; dimensions that are set
// conjoin.
type Filter struct {
	// Name keeps records whose repository name contains this value as a
	// substring. The match is case-SENSITIVE while sorting on the same
	// column is case-insensitive. The original dashboard behaved this
	// way and users rely on it, so the asymmetry is kept.
	Name string

	// Licenses is the set of accepted license names. Empty means accept
	// all. A LicenseAll entry short-circuits to accept all.
	Licenses []string

	// Collaborators bounds the collaborator count, inclusive on both
	// ends. Nil means no bound.
	Collaborators *Range
}

// Range is an inclusive numeric interval. A nil Min defaults to 0, a
// nil Max is unbounded.
type Range struct {
	Min *int
	Max *int
}

// Contains reports whether n falls inside the range.
func (r *Range) Contains(n int) bool {
	min := 0
	if r.Min != nil {
		min = *r.Min
	}
	if n < min {
		return false
	}
	if r.Max != nil && n > *r.Max {
		return false
	}
	return true
}

// String renders the range in the same "min:max" form ParseRange reads.
func (r *Range) String() string {
	var b strings.Builder
	if r.Min != nil {
		b.WriteString(strconv.Itoa(*r.Min))
	}
	b.WriteString(":")
	if r.Max != nil {
		b.WriteString(strconv.Itoa(*r.Max))
	}
	return b.String()
}

// ParseRange parses "min:max" with either bound optional: "5:10", "5:",
// ":10". A bare number is treated as a lower bound. Unparsable bounds
// are an error; there is no silent coercion.
func ParseRange(spec string) (*Range, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return nil, nil
	}

	lo, hi, found := strings.Cut(spec, ":")
	if !found {
		hi = ""
	}

	r := &Range{}
	if strings.TrimSpace(lo) != "" {
		n, err := strconv.Atoi(strings.TrimSpace(lo))
		if err != nil {
			return nil, fmt.Errorf("invalid range minimum %q: %w", lo, err)
		}
		r.Min = &n
	}
	if strings.TrimSpace(hi) != "" {
		n, err := strconv.Atoi(strings.TrimSpace(hi))
		if err != nil {
			return nil, fmt.Errorf("invalid range maximum %q: %w", hi, err)
		}
		r.Max = &n
	}
	return r, nil
}

// IsZero reports whether no dimension is constrained.
func (f Filter) IsZero() bool {
	return f.Name == "" && len(f.Licenses) == 0 && f.Collaborators == nil
}

// Match reports whether the record passes every set dimension.
func (f Filter) Match(r model.Record) bool {
	if f.Name != "" && !strings.Contains(r.Name, f.Name) {
		return false
	}
	if !f.licenseAccepts(r.License) {
		return false
	}
	if f.Collaborators != nil && !f.Collaborators.Contains(r.Collaborators) {
		return false
	}
	return true
}

// licenseAccepts implements the license dimension: an empty set accepts
// everything, a LicenseAll entry accepts everything, and otherwise the
// record's license must be a member of the set.
func (f Filter) licenseAccepts(license string) bool {
	if len(f.Licenses) == 0 {
		return true
	}
	for _, l := range f.Licenses {
		if l == LicenseAll || l == license {
			return true
		}
	}
	return false
}

// Apply runs the full pipeline: sort (a no-op for an empty SortState)
// then filter. Pure and idempotent: identical inputs and states always
// produce identical output sequences, and the source slice is never
// mutated.
func Apply(records []model.Record, f Filter, s SortState) []model.Record {
	sorted := s.Sort(records)
	if f.IsZero() {
		return sorted
	}

	out := make([]model.Record, 0, len(sorted))
	for _, r := range sorted {
		if f.Match(r) {
			out = append(out, r)
		}
	}
	return out
}
