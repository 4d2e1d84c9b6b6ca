// Package stats computes aggregate summaries over repository records.
package stats

import (
	"fmt"

	mstats "github.com/montanaflynn/stats"

	"github.com/repodash/repodash/internal/grid"
	"github.com/repodash/repodash/internal/model"
)

// ColumnSummary aggregates one numeric column across the collection.
type ColumnSummary struct {
	Column string  `json:"column"`
	Total  int     `json:"total"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	P90    float64 `json:"p90"`
	Max    int     `json:"max"`
}

// Summary aggregates a record collection.
type Summary struct {
	Org      string          `json:"org,omitempty"`
	Repos    int             `json:"repos"`
	Licensed int             `json:"licensed"`
	Columns  []ColumnSummary `json:"columns"`
}

// Compute summarizes every numeric column of the records. An empty
// collection yields a zero summary without error.
func Compute(records []model.Record) (Summary, error) {
	summary := Summary{Repos: len(records)}
	for _, r := range records {
		if r.HasLicense() {
			summary.Licensed++
		}
	}

	if len(records) == 0 {
		return summary, nil
	}

	for _, col := range grid.Columns {
		if col.Kind() != grid.KindNumeric {
			continue
		}

		values := make([]float64, 0, len(records))
		total, max := 0, 0
		for _, r := range records {
			n := col.NumericValue(r)
			values = append(values, float64(n))
			total += n
			if n > max {
				max = n
			}
		}

		mean, err := mstats.Mean(values)
		if err != nil {
			return Summary{}, fmt.Errorf("failed to compute mean for %s: %w", col.Key(), err)
		}
		median, err := mstats.Median(values)
		if err != nil {
			return Summary{}, fmt.Errorf("failed to compute median for %s: %w", col.Key(), err)
		}
		p90, err := mstats.Percentile(values, 90)
		if err != nil {
			return Summary{}, fmt.Errorf("failed to compute p90 for %s: %w", col.Key(), err)
		}

		summary.Columns = append(summary.Columns, ColumnSummary{
			Column: col.Key(),
			Total:  total,
			Mean:   mean,
			Median: median,
			P90:    p90,
			Max:    max,
		})
	}

	return summary, nil
}
