package calculation

import (
	"time"

	"github.com/rgehrsitz/roadmap/internal/domain"
	"github.com/rgehrsitz/roadmap/pkg/dateutil"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// TimelineBarFor places the closed window [start, end] on the roadmap strip.
// Parts of the window outside the roadmap are cut off; a window entirely
// outside gets a zero-width bar pinned to the nearest edge.
func TimelineBarFor(start, end, roadmapStart time.Time) domain.TimelineBar {
	roadmapEnd := RoadmapEndDate(roadmapStart)
	totalDays := decimal.NewFromInt(int64(dateutil.DaysBetween(roadmapStart, roadmapEnd) + 1))

	s := dateutil.Max(start, roadmapStart)
	e := dateutil.Min(end, roadmapEnd)

	position := decimal.NewFromInt(int64(dateutil.DaysBetween(roadmapStart, s))).Div(totalDays).Mul(hundred).Round(2)
	if position.GreaterThan(hundred) {
		position = hundred
	}
	if dateutil.After(s, e) {
		return domain.TimelineBar{Position: position, Width: decimal.Zero}
	}

	width := decimal.NewFromInt(int64(dateutil.DaysBetween(s, e) + 1)).Div(totalDays).Mul(hundred).Round(2)
	if limit := hundred.Sub(position); width.GreaterThan(limit) {
		width = limit
	}
	return domain.TimelineBar{Position: position, Width: width}
}

// BuildTimeline positions the implementation and ongoing windows of every intervention
func BuildTimeline(ivs []domain.Intervention, roadmapStart time.Time) []domain.TimelineRow {
	rows := make([]domain.TimelineRow, 0, len(ivs))
	for _, iv := range ivs {
		tl := iv.Timeline
		rows = append(rows, domain.TimelineRow{
			InterventionID: iv.ID,
			Name:           iv.Name,
			Implementation: TimelineBarFor(tl.ImplementationStartDate, tl.ImplementationEndDate, roadmapStart),
			Ongoing:        TimelineBarFor(tl.OngoingStartDate, tl.OngoingEndDate, roadmapStart),
		})
	}
	return rows
}
