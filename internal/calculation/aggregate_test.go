package calculation

import (
	"testing"

	"github.com/rgehrsitz/roadmap/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregateYearlyCosts(t *testing.T) {
	ivs := exampleConfiguration().Interventions
	windows := RoadmapWindows(roadmapStart)

	assertDecimal(t, "140075", AggregateYearlyCosts(ivs, windows[0].Start, windows[0].End, roadmapStart))
	assertDecimal(t, "51350", AggregateYearlyCosts(ivs, windows[1].Start, windows[1].End, roadmapStart))
	assertDecimal(t, "19980", AggregateYearlyCosts(ivs, windows[2].Start, windows[2].End, roadmapStart))
}

func TestAggregateYearlyCosts_Empty(t *testing.T) {
	w := RoadmapWindows(roadmapStart)[0]
	assert.True(t, AggregateYearlyCosts(nil, w.Start, w.End, roadmapStart).IsZero())
}

func TestAggregateYearlyCosts_OrderIndependent(t *testing.T) {
	w := RoadmapWindows(roadmapStart)[1]
	forward := []domain.Intervention{mentalHealthPlatform(), physicalWellnessProgram()}
	reversed := []domain.Intervention{physicalWellnessProgram(), mentalHealthPlatform()}

	assert.True(t, AggregateYearlyCosts(forward, w.Start, w.End, roadmapStart).
		Equal(AggregateYearlyCosts(reversed, w.Start, w.End, roadmapStart)))
}

func TestBuildCostTable(t *testing.T) {
	table := BuildCostTable(exampleConfiguration().Interventions, roadmapStart)

	require.Len(t, table.Rows, 2)
	assert.Equal(t, 1, table.Rows[0].InterventionID)
	assert.Equal(t, "Physical Wellness Program", table.Rows[1].Name)

	assertDecimal(t, "164775", table.Rows[0].Total)
	assertDecimal(t, "46630", table.Rows[1].Total)

	assertDecimal(t, "140075", table.YearTotals[0].Total)
	assertDecimal(t, "120000", table.YearTotals[0].ImplementationCost)
	assertDecimal(t, "51350", table.YearTotals[1].Total)
	assertDecimal(t, "31350", table.YearTotals[1].PEPMCost)
	assertDecimal(t, "19980", table.YearTotals[2].Total)
	assertDecimal(t, "211405", table.GrandTotal)
}

func TestBuildCostTable_Empty(t *testing.T) {
	table := BuildCostTable(nil, roadmapStart)
	assert.Empty(t, table.Rows)
	assert.True(t, table.GrandTotal.IsZero())
	for _, y := range table.YearTotals {
		assert.True(t, y.Total.IsZero())
	}
}
