package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/repodash/repodash/internal/model"
)

func TestComputeEmpty(t *testing.T) {
	summary, err := Compute(nil)
	require.NoError(t, err)
	assert.Equal(t, 0, summary.Repos)
	assert.Empty(t, summary.Columns)
}

func TestCompute(t *testing.T) {
	records := []model.Record{
		{Name: "a", License: "MIT", Collaborators: 2, Issues: 10},
		{Name: "b", License: "", Collaborators: 4, Issues: 20},
		{Name: "c", License: "Apache-2.0", Collaborators: 6, Issues: 30},
	}

	summary, err := Compute(records)
	require.NoError(t, err)

	assert.Equal(t, 3, summary.Repos)
	assert.Equal(t, 2, summary.Licensed)

	byColumn := make(map[string]ColumnSummary)
	for _, cs := range summary.Columns {
		byColumn[cs.Column] = cs
	}

	collab, ok := byColumn["collaborators"]
	require.True(t, ok, "expected a collaborators summary")
	assert.Equal(t, 12, collab.Total)
	assert.InDelta(t, 4.0, collab.Mean, 0.001)
	assert.InDelta(t, 4.0, collab.Median, 0.001)
	assert.Equal(t, 6, collab.Max)

	issues := byColumn["issues"]
	assert.Equal(t, 60, issues.Total)
	assert.Equal(t, 30, issues.Max)
}

func TestComputeSingleRecord(t *testing.T) {
	summary, err := Compute([]model.Record{{Name: "solo", Forks: 5}})
	require.NoError(t, err)

	for _, cs := range summary.Columns {
		if cs.Column == "forks" {
			assert.Equal(t, 5, cs.Total)
			assert.InDelta(t, 5.0, cs.P90, 0.001)
		}
	}
}
