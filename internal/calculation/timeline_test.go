package calculation

import (
	"testing"

	"github.com/rgehrsitz/roadmap/pkg/dateutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimelineBarFor(t *testing.T) {
	full := TimelineBarFor(roadmapStart, RoadmapEndDate(roadmapStart), roadmapStart)
	assertDecimal(t, "0", full.Position)
	assertDecimal(t, "100", full.Width)

	// year 2 starts 365 of 1096 days in
	second := TimelineBarFor(dateutil.Date(2026, 3, 13), dateutil.Date(2027, 3, 12), roadmapStart)
	assertDecimal(t, "33.3", second.Position)
	assertDecimal(t, "33.3", second.Width)

	clipped := TimelineBarFor(dateutil.Date(2020, 1, 1), dateutil.Date(2040, 1, 1), roadmapStart)
	assertDecimal(t, "0", clipped.Position)
	assertDecimal(t, "100", clipped.Width)

	before := TimelineBarFor(dateutil.Date(2020, 1, 1), dateutil.Date(2021, 1, 1), roadmapStart)
	assertDecimal(t, "0", before.Position)
	assertDecimal(t, "0", before.Width)

	after := TimelineBarFor(dateutil.Date(2030, 1, 1), dateutil.Date(2031, 1, 1), roadmapStart)
	assertDecimal(t, "100", after.Position)
	assertDecimal(t, "0", after.Width)
}

func TestBuildTimeline(t *testing.T) {
	rows := BuildTimeline(exampleConfiguration().Interventions, roadmapStart)
	require.Len(t, rows, 2)

	assert.Equal(t, "Mental Health Platform", rows[0].Name)
	assert.True(t, rows[0].Implementation.Position.LessThan(rows[0].Ongoing.Position))
	assert.True(t, rows[1].Ongoing.Position.Add(rows[1].Ongoing.Width).LessThanOrEqual(dec("100")))
}
