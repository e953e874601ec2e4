package calculation

import (
	"github.com/rgehrsitz/roadmap/internal/domain"
	"github.com/shopspring/decimal"
)

// CompareBudget pairs spend with its allocation. Spending exactly the allocation is not over budget.
func CompareBudget(allocated, spent decimal.Decimal) domain.YearlyBudget {
	return domain.YearlyBudget{
		Allocated:    allocated,
		Spent:        spent,
		IsOverBudget: spent.GreaterThan(allocated),
	}
}

// Recompute re-derives the budget status of all three years from scratch.
// Call it after every change to the roadmap or its interventions.
func Recompute(roadmap domain.Roadmap, ivs []domain.Intervention) [RoadmapYears]domain.YearlyBudget {
	var out [RoadmapYears]domain.YearlyBudget
	for _, w := range RoadmapWindows(roadmap.StartDate) {
		spent := AggregateYearlyCosts(ivs, w.Start, w.End, roadmap.StartDate)
		out[w.Index] = CompareBudget(roadmap.AllocatedFor(w.Index), spent)
	}
	return out
}

func budgetsFromTable(roadmap domain.Roadmap, table domain.CostTable) [RoadmapYears]domain.YearlyBudget {
	var out [RoadmapYears]domain.YearlyBudget
	for k, totals := range table.YearTotals {
		out[k] = CompareBudget(roadmap.AllocatedFor(k), totals.Total)
	}
	return out
}
