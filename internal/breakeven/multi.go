package breakeven

import (
	"context"
	"fmt"

	"github.com/samber/lo"

	"github.com/rgehrsitz/roadmap/internal/domain"
	"github.com/rgehrsitz/roadmap/internal/output"
)

// OptimizeMultiDimensional solves every target for one intervention and compares the results
func (s *Solver) OptimizeMultiDimensional(
	ctx context.Context,
	config *domain.Configuration,
	constraints Constraints,
) (*MultiDimensionalResult, error) {
	if config == nil {
		return nil, &BreakEvenError{Operation: "optimize_multi_dimensional", Message: "configuration cannot be nil"}
	}
	if err := constraints.Validate(); err != nil {
		return nil, err
	}

	var results []OptimizationResult
	for _, target := range Targets() {
		req := OptimizationRequest{
			Config:        config,
			Target:        target,
			Constraints:   constraints,
			MaxIterations: s.Options.MaxIterations,
			Tolerance:     s.Options.Tolerance,
		}

		result, err := s.Optimize(ctx, req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			// a target that cannot run for this roadmap is skipped
			continue
		}
		if result != nil && result.Success {
			results = append(results, *result)
		}
	}

	if len(results) == 0 {
		return nil, &BreakEvenError{
			Operation: "optimize_multi_dimensional",
			Message:   "no successful optimizations found",
		}
	}

	mdResult := &MultiDimensionalResult{Results: results}
	if iv, ok := config.Interventions.Find(constraints.InterventionID); ok {
		mdResult.InterventionName = iv.Name
	}

	cheapest := lo.MinBy(results, func(a, b OptimizationResult) bool {
		return a.TotalCost.LessThan(b.TotalCost)
	})
	for i := range mdResult.Results {
		if mdResult.Results[i].Target == cheapest.Target {
			mdResult.Cheapest = &mdResult.Results[i]
		}
	}

	mdResult.Recommendations = s.generateMultiDimensionalRecommendations(mdResult)
	return mdResult, nil
}

// generateMultiDimensionalRecommendations turns solved parameters into sentences
func (s *Solver) generateMultiDimensionalRecommendations(result *MultiDimensionalResult) []string {
	name := result.InterventionName
	if name == "" {
		name = "The roadmap"
	}

	var recommendations []string
	for _, r := range result.Results {
		switch {
		case r.OptimalHeadcount != nil:
			recommendations = append(recommendations,
				fmt.Sprintf("Headcount: %s fits the budget for up to %d eligible employees", name, *r.OptimalHeadcount))
		case r.OptimalPEPM != nil:
			recommendations = append(recommendations,
				fmt.Sprintf("PEPM: %s fits the budget at up to $%s per employee per month", name, r.OptimalPEPM.StringFixed(2)))
		case r.OptimalDelayMonths != nil && *r.OptimalDelayMonths == 0:
			recommendations = append(recommendations,
				fmt.Sprintf("Timing: %s already fits the budget on its current dates", name))
		case r.OptimalDelayMonths != nil:
			recommendations = append(recommendations,
				fmt.Sprintf("Timing: delaying %s by %d months brings every year within budget", name, *r.OptimalDelayMonths))
		case r.RequiredBudget != nil:
			recommendations = append(recommendations,
				fmt.Sprintf("Budget: a yearly budget of %s covers every year", output.FormatCurrency(*r.RequiredBudget)))
		}
	}

	if result.Cheapest != nil && result.Cheapest.CostDiffFromBase.IsNegative() {
		recommendations = append(recommendations,
			fmt.Sprintf("Lowest cost: solving for %s spends %s less than the roadmap as configured",
				result.Cheapest.Target, output.FormatCurrency(result.Cheapest.CostDiffFromBase.Abs())))
	}

	return recommendations
}

// OptimizeAllTargets is a convenience wrapper over OptimizeMultiDimensional with default bounds
func (s *Solver) OptimizeAllTargets(
	ctx context.Context,
	config *domain.Configuration,
	interventionID int,
) (*MultiDimensionalResult, error) {
	return s.OptimizeMultiDimensional(ctx, config, DefaultConstraints(interventionID))
}
