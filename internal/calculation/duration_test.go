package calculation

import (
	"testing"
	"time"

	"github.com/rgehrsitz/roadmap/pkg/dateutil"
	"github.com/stretchr/testify/assert"
)

func TestActiveMonths(t *testing.T) {
	y1Start, y1End := dateutil.Date(2025, 3, 13), dateutil.Date(2026, 3, 12)

	tests := []struct {
		name       string
		start, end time.Time
		want       int
	}{
		{"partial first year", dateutil.Date(2025, 9, 1), dateutil.Date(2027, 3, 12), 7},
		{"covers whole year", dateutil.Date(2024, 1, 1), dateutil.Date(2030, 1, 1), 12},
		{"single day", dateutil.Date(2025, 6, 15), dateutil.Date(2025, 6, 15), 1},
		{"touches last day only", dateutil.Date(2026, 3, 12), dateutil.Date(2027, 1, 1), 1},
		{"touches first day only", dateutil.Date(2024, 1, 1), dateutil.Date(2025, 3, 13), 1},
		{"entirely before", dateutil.Date(2024, 1, 1), dateutil.Date(2025, 3, 12), 0},
		{"entirely after", dateutil.Date(2026, 3, 13), dateutil.Date(2027, 1, 1), 0},
		{"inverted window", dateutil.Date(2025, 10, 1), dateutil.Date(2025, 9, 1), 0},
		{"inverted within one month", dateutil.Date(2025, 9, 30), dateutil.Date(2025, 9, 1), 1},
		{"inverted across months", dateutil.Date(2025, 12, 15), dateutil.Date(2025, 9, 1), -2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ActiveMonths(tt.start, tt.end, y1Start, y1End))
		})
	}
}

func TestActiveMonths_NeverExceedsTwelve(t *testing.T) {
	for _, w := range RoadmapWindows(dateutil.Date(2024, 1, 31)) {
		months := ActiveMonths(dateutil.Date(2000, 1, 1), dateutil.Date(2100, 1, 1), w.Start, w.End)
		assert.GreaterOrEqual(t, months, 1)
		assert.LessOrEqual(t, months, 12)
	}
}

func TestOverlaps(t *testing.T) {
	a, b := dateutil.Date(2025, 1, 1), dateutil.Date(2025, 12, 31)

	assert.True(t, Overlaps(dateutil.Date(2025, 12, 31), dateutil.Date(2026, 6, 1), a, b))
	assert.True(t, Overlaps(dateutil.Date(2024, 6, 1), dateutil.Date(2025, 1, 1), a, b))
	assert.True(t, Overlaps(dateutil.Date(2025, 5, 1), dateutil.Date(2025, 6, 1), a, b))
	assert.True(t, Overlaps(dateutil.Date(2024, 1, 1), dateutil.Date(2026, 1, 1), a, b))
	assert.False(t, Overlaps(dateutil.Date(2026, 1, 1), dateutil.Date(2026, 6, 1), a, b))
	assert.False(t, Overlaps(dateutil.Date(2024, 1, 1), dateutil.Date(2024, 12, 31), a, b))
}
