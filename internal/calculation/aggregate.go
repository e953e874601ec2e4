package calculation

import (
	"time"

	"github.com/rgehrsitz/roadmap/internal/domain"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// AggregateYearlyCosts sums the allocated totals of every intervention for one year
func AggregateYearlyCosts(ivs []domain.Intervention, yearStart, yearEnd, roadmapStart time.Time) decimal.Decimal {
	return lo.Reduce(ivs, func(acc decimal.Decimal, iv domain.Intervention, _ int) decimal.Decimal {
		return acc.Add(AllocateYearlyCosts(iv, yearStart, yearEnd, roadmapStart).Total)
	}, decimal.Zero)
}

// BuildCostTable keeps the per-intervention, per-year breakdowns in caller order
// along with per-year and grand totals.
func BuildCostTable(ivs []domain.Intervention, roadmapStart time.Time) domain.CostTable {
	return buildCostTable(ivs, func(iv domain.Intervention) [RoadmapYears]domain.YearlyCostBreakdown {
		return AllocateRoadmap(iv, roadmapStart)
	})
}

func buildCostTable(ivs []domain.Intervention, allocate func(domain.Intervention) [RoadmapYears]domain.YearlyCostBreakdown) domain.CostTable {
	table := domain.CostTable{
		Rows:       make([]domain.CostRow, 0, len(ivs)),
		GrandTotal: decimal.Zero,
	}
	for k := range table.YearTotals {
		table.YearTotals[k] = domain.NewYearlyCostBreakdown(decimal.Zero, decimal.Zero, decimal.Zero, decimal.Zero)
	}

	for _, iv := range ivs {
		years := allocate(iv)
		row := domain.CostRow{InterventionID: iv.ID, Name: iv.Name, Years: years, Total: decimal.Zero}
		for k, b := range years {
			row.Total = row.Total.Add(b.Total)
			table.YearTotals[k] = table.YearTotals[k].Add(b)
		}
		table.Rows = append(table.Rows, row)
		table.GrandTotal = table.GrandTotal.Add(row.Total)
	}
	return table
}
