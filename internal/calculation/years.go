package calculation

import (
	"time"

	"github.com/rgehrsitz/roadmap/internal/domain"
	"github.com/rgehrsitz/roadmap/pkg/dateutil"
)

// FinancialYear is the zero-based index of a roadmap year
type FinancialYear int

const (
	Year1 FinancialYear = 0
	Year2 FinancialYear = 1
	Year3 FinancialYear = 2

	// OutsideRoadmap marks a date before the roadmap start or after the end of year 3
	OutsideRoadmap FinancialYear = -1
)

// RoadmapYears is the fixed number of financial years in a roadmap
const RoadmapYears = 3

// Valid reports whether y is one of the three roadmap years
func (y FinancialYear) Valid() bool {
	return y >= Year1 && y <= Year3
}

func (y FinancialYear) String() string {
	switch y {
	case Year1:
		return "Year 1"
	case Year2:
		return "Year 2"
	case Year3:
		return "Year 3"
	default:
		return "outside"
	}
}

// YearStartDate returns the first day of financial year k
func YearStartDate(roadmapStart time.Time, k int) time.Time {
	return dateutil.Civil(dateutil.AddMonths(roadmapStart, 12*k))
}

// GetYearEndDate returns the last day of the financial year starting at yearStart:
// twelve calendar months later, minus one day.
func GetYearEndDate(yearStart time.Time) time.Time {
	return dateutil.AddDays(dateutil.AddMonths(dateutil.Civil(yearStart), 12), -1)
}

// ResolveFinancialYear maps date to the roadmap year whose closed window contains it
func ResolveFinancialYear(date, roadmapStart time.Time) FinancialYear {
	for k := 0; k < RoadmapYears; k++ {
		start := YearStartDate(roadmapStart, k)
		if dateutil.Within(date, start, GetYearEndDate(start)) {
			return FinancialYear(k)
		}
	}
	return OutsideRoadmap
}

// RoadmapWindows returns the three year windows of a roadmap
func RoadmapWindows(roadmapStart time.Time) [RoadmapYears]domain.YearWindow {
	var out [RoadmapYears]domain.YearWindow
	for k := range out {
		start := YearStartDate(roadmapStart, k)
		out[k] = domain.YearWindow{Index: k, Start: start, End: GetYearEndDate(start)}
	}
	return out
}

// RoadmapEndDate returns the last day of year 3
func RoadmapEndDate(roadmapStart time.Time) time.Time {
	return GetYearEndDate(YearStartDate(roadmapStart, RoadmapYears-1))
}
