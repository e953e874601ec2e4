package compare

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/roadmap/internal/domain"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// ComparisonResult represents a single roadmap variant with calculated metrics
type ComparisonResult struct {
	ScenarioName string                `json:"scenarioName"`
	Description  string                `json:"description"`
	Report       *domain.RoadmapReport `json:"-"`

	// Key Metrics
	YearSpend         [3]decimal.Decimal `json:"yearSpend"`
	YearAllocated     [3]decimal.Decimal `json:"yearAllocated"`
	TotalInvestment   decimal.Decimal    `json:"totalInvestment"`
	TotalAllocated    decimal.Decimal    `json:"totalAllocated"`
	OverBudgetYears   []int              `json:"overBudgetYears"` // 1-based
	PeakUtilization   decimal.Decimal    `json:"peakUtilization"`
	InterventionCount int                `json:"interventionCount"`

	// Comparison to Base
	TotalDiffFromBase decimal.Decimal    `json:"totalDiffFromBase"`
	TotalPctFromBase  decimal.Decimal    `json:"totalPctFromBase"`
	YearDiffFromBase  [3]decimal.Decimal `json:"yearDiffFromBase"`
	OverBudgetDiff    int                `json:"overBudgetDiff"`
}

// WithinBudget reports whether every year stays inside its allocation
func (r *ComparisonResult) WithinBudget() bool {
	return len(r.OverBudgetYears) == 0
}

// Headroom is the total allocation left unspent; negative when the roadmap overspends overall
func (r *ComparisonResult) Headroom() decimal.Decimal {
	return r.TotalAllocated.Sub(r.TotalInvestment)
}

// ComparisonSet represents a collection of roadmap comparisons
type ComparisonSet struct {
	BaseScenarioName   string             `json:"baseScenarioName"`
	BaseResult         *ComparisonResult  `json:"baseResult"`
	AlternativeResults []ComparisonResult `json:"alternativeResults"`
	Recommendations    []string           `json:"recommendations"`
	ConfigPath         string             `json:"configPath"`
}

// MetricsCalculator extracts key metrics from roadmap reports
type MetricsCalculator struct{}

// NewMetricsCalculator creates a new metrics calculator
func NewMetricsCalculator() *MetricsCalculator {
	return &MetricsCalculator{}
}

// CalculateMetrics computes all comparison metrics for a report
func (mc *MetricsCalculator) CalculateMetrics(name string, report *domain.RoadmapReport) ComparisonResult {
	result := ComparisonResult{
		ScenarioName:      name,
		Report:            report,
		TotalInvestment:   report.CostTable.GrandTotal,
		InterventionCount: len(report.CostTable.Rows),
		OverBudgetYears:   []int{},
	}

	for k, b := range report.Budgets {
		result.YearSpend[k] = b.Spent
		result.YearAllocated[k] = b.Allocated
		result.TotalAllocated = result.TotalAllocated.Add(b.Allocated)
		if b.IsOverBudget {
			result.OverBudgetYears = append(result.OverBudgetYears, k+1)
		}
		if u := b.Utilization(); u.GreaterThan(result.PeakUtilization) {
			result.PeakUtilization = u
		}
	}

	return result
}

// CalculateComparison computes comparison metrics between a variant and the base
func (mc *MetricsCalculator) CalculateComparison(scenario, base ComparisonResult) ComparisonResult {
	scenario.TotalDiffFromBase = scenario.TotalInvestment.Sub(base.TotalInvestment)

	if !base.TotalInvestment.IsZero() {
		scenario.TotalPctFromBase = scenario.TotalDiffFromBase.
			Div(base.TotalInvestment).
			Mul(decimal.NewFromInt(100))
	}

	for k := range scenario.YearSpend {
		scenario.YearDiffFromBase[k] = scenario.YearSpend[k].Sub(base.YearSpend[k])
	}
	scenario.OverBudgetDiff = len(scenario.OverBudgetYears) - len(base.OverBudgetYears)

	return scenario
}

// GenerateRecommendations creates recommendations based on comparison results
func GenerateRecommendations(compSet *ComparisonSet) []string {
	recommendations := []string{}

	base := compSet.BaseResult
	if base == nil {
		return recommendations
	}

	if !base.WithinBudget() {
		recommendations = append(recommendations,
			fmt.Sprintf("Budget Risk: %s exceeds its allocation in %s", base.ScenarioName, joinYears(base.OverBudgetYears)))
	}

	if len(compSet.AlternativeResults) == 0 {
		return recommendations
	}

	// Find lowest total investment
	cheapest := lo.MinBy(compSet.AlternativeResults, func(a, b ComparisonResult) bool {
		return a.TotalInvestment.LessThan(b.TotalInvestment)
	})
	if cheapest.TotalInvestment.LessThan(base.TotalInvestment) {
		savings := base.TotalInvestment.Sub(cheapest.TotalInvestment)
		recommendations = append(recommendations,
			"Lowest Cost: "+cheapest.ScenarioName+" spends $"+savings.StringFixed(0)+
				" less over three years than the base roadmap")
	}

	// Find a variant that fixes an overspend
	if !base.WithinBudget() {
		if fix, ok := lo.Find(compSet.AlternativeResults, func(r ComparisonResult) bool { return r.WithinBudget() }); ok {
			recommendations = append(recommendations,
				"Within Budget: "+fix.ScenarioName+" keeps every year within its allocation")
		}
	}

	// Find most headroom
	roomiest := lo.MaxBy(compSet.AlternativeResults, func(a, b ComparisonResult) bool {
		return a.Headroom().GreaterThan(b.Headroom())
	})
	if roomiest.Headroom().GreaterThan(base.Headroom()) && roomiest.ScenarioName != cheapest.ScenarioName {
		recommendations = append(recommendations,
			"Most Headroom: "+roomiest.ScenarioName+" leaves $"+roomiest.Headroom().StringFixed(0)+
				" of the allocation unspent")
	}

	// Flag variants that introduce an overspend
	for _, alt := range compSet.AlternativeResults {
		if base.WithinBudget() && !alt.WithinBudget() {
			recommendations = append(recommendations,
				fmt.Sprintf("Caution: %s exceeds its allocation in %s", alt.ScenarioName, joinYears(alt.OverBudgetYears)))
		}
	}

	return recommendations
}

func joinYears(years []int) string {
	labels := lo.Map(years, func(y int, _ int) string { return fmt.Sprintf("year %d", y) })
	return strings.Join(labels, ", ")
}
