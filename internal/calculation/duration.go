package calculation

import (
	"time"

	"github.com/rgehrsitz/roadmap/pkg/dateutil"
)

// ActiveMonths counts the billable months of an activity inside a financial year.
// The activity is clamped to the year; any month it touches bills in full.
// Returns 0 when the activity lies wholly before or after the year. An inverted
// activity inside the year is not rejected and may yield 0 or a negative count.
func ActiveMonths(activityStart, activityEnd, yearStart, yearEnd time.Time) int {
	effStart := dateutil.Max(activityStart, yearStart)
	effEnd := dateutil.Min(activityEnd, yearEnd)
	if dateutil.After(effStart, yearEnd) || dateutil.Before(effEnd, yearStart) {
		return 0
	}
	return dateutil.MonthsBetween(effStart, effEnd) + 1
}

// Overlaps reports whether two closed date intervals share at least one day
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return !dateutil.After(aStart, bEnd) && !dateutil.Before(aEnd, bStart)
}
