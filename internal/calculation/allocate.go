package calculation

import (
	"time"

	"github.com/rgehrsitz/roadmap/internal/domain"
	"github.com/shopspring/decimal"
)

// AllocateYearlyCosts decides how much of each cost component of iv is charged
// in the financial year [yearStart, yearEnd].
//
// Implementation cost and the one-time fee land in the single year containing
// their anchor date, and nowhere when the anchor falls outside the roadmap.
// A year window that itself resolves outside the roadmap never receives them,
// even when its anchor is also outside; a plain resolve-equals-current test
// would charge them there.
// PEPM is prorated by active months. The fixed annual cost is charged in full
// for every year touched by the ongoing window.
func AllocateYearlyCosts(iv domain.Intervention, yearStart, yearEnd, roadmapStart time.Time) domain.YearlyCostBreakdown {
	currentYear := ResolveFinancialYear(yearStart, roadmapStart)
	tl := iv.Timeline

	implementation := decimal.Zero
	if currentYear != OutsideRoadmap && ResolveFinancialYear(tl.ImplementationStartDate, roadmapStart) == currentYear {
		implementation = iv.Costs.ImplementationCost
	}

	months := ActiveMonths(tl.OngoingStartDate, tl.OngoingEndDate, yearStart, yearEnd)
	pepm := iv.MonthlyPEPMCharge().Mul(decimal.NewFromInt(int64(months)))

	fixedAnnual := decimal.Zero
	if Overlaps(tl.OngoingStartDate, tl.OngoingEndDate, yearStart, yearEnd) {
		fixedAnnual = iv.Costs.OngoingCostFixed
	}

	oneTime := decimal.Zero
	if currentYear != OutsideRoadmap && ResolveFinancialYear(tl.OngoingStartDate, roadmapStart) == currentYear {
		oneTime = iv.Costs.OneTimeFixedFee
	}

	return domain.NewYearlyCostBreakdown(implementation, pepm, fixedAnnual, oneTime)
}

// AllocateRoadmap allocates iv across all three roadmap years
func AllocateRoadmap(iv domain.Intervention, roadmapStart time.Time) [RoadmapYears]domain.YearlyCostBreakdown {
	var out [RoadmapYears]domain.YearlyCostBreakdown
	for _, w := range RoadmapWindows(roadmapStart) {
		out[w.Index] = AllocateYearlyCosts(iv, w.Start, w.End, roadmapStart)
	}
	return out
}
