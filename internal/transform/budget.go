package transform

import (
	"fmt"

	"github.com/rgehrsitz/roadmap/internal/domain"
	"github.com/rgehrsitz/roadmap/pkg/dateutil"
	"github.com/shopspring/decimal"
)

// SetYearlyBudget replaces the single yearly budget and clears per-year overrides
type SetYearlyBudget struct {
	Amount decimal.Decimal
}

func (sb *SetYearlyBudget) Name() string {
	return "set_budget"
}

func (sb *SetYearlyBudget) Description() string {
	return fmt.Sprintf("Set yearly budget to %s", sb.Amount.StringFixed(0))
}

func (sb *SetYearlyBudget) Validate(base *domain.Configuration) error {
	if sb.Amount.IsNegative() {
		return NewTransformError(sb.Name(), "validate", fmt.Sprintf("budget cannot be negative, got %s", sb.Amount.String()), nil)
	}
	if base == nil {
		return NewTransformError(sb.Name(), "validate", "base roadmap cannot be nil", nil)
	}
	return nil
}

func (sb *SetYearlyBudget) Apply(base *domain.Configuration) (*domain.Configuration, error) {
	modified := base.DeepCopy()
	modified.Roadmap.YearlyBudget = sb.Amount
	modified.Roadmap.YearBudgets = nil
	return modified, nil
}

// AdjustBudget adds Delta to every year's allocation. Allocations never drop below zero.
type AdjustBudget struct {
	Delta decimal.Decimal
}

func (ab *AdjustBudget) Name() string {
	return "adjust_budget"
}

func (ab *AdjustBudget) Description() string {
	return fmt.Sprintf("Adjust budget by %s per year", ab.Delta.StringFixed(0))
}

func (ab *AdjustBudget) Validate(base *domain.Configuration) error {
	if base == nil {
		return NewTransformError(ab.Name(), "validate", "base roadmap cannot be nil", nil)
	}
	return nil
}

func (ab *AdjustBudget) Apply(base *domain.Configuration) (*domain.Configuration, error) {
	modified := base.DeepCopy()
	modified.Roadmap.YearlyBudget = clampZero(modified.Roadmap.YearlyBudget.Add(ab.Delta))
	for k, b := range modified.Roadmap.YearBudgets {
		modified.Roadmap.YearBudgets[k] = clampZero(b.Add(ab.Delta))
	}
	return modified, nil
}

// ScaleBudget multiplies every year's allocation by (1 + Percent/100)
type ScaleBudget struct {
	Percent decimal.Decimal
}

func (sb *ScaleBudget) Name() string {
	return "scale_budget"
}

func (sb *ScaleBudget) Description() string {
	return fmt.Sprintf("Scale budget by %s%%", sb.Percent.StringFixed(1))
}

func (sb *ScaleBudget) Validate(base *domain.Configuration) error {
	if sb.Percent.LessThan(decimal.NewFromInt(-100)) {
		return NewTransformError(sb.Name(), "validate", fmt.Sprintf("percent cannot be below -100, got %s", sb.Percent.String()), nil)
	}
	if base == nil {
		return NewTransformError(sb.Name(), "validate", "base roadmap cannot be nil", nil)
	}
	return nil
}

func (sb *ScaleBudget) Apply(base *domain.Configuration) (*domain.Configuration, error) {
	factor := decimal.NewFromInt(1).Add(sb.Percent.Div(decimal.NewFromInt(100)))
	modified := base.DeepCopy()
	modified.Roadmap.YearlyBudget = modified.Roadmap.YearlyBudget.Mul(factor)
	for k, b := range modified.Roadmap.YearBudgets {
		modified.Roadmap.YearBudgets[k] = b.Mul(factor)
	}
	return modified, nil
}

// SetYearBudget overrides the allocation of a single year
type SetYearBudget struct {
	Year   int // zero-based
	Amount decimal.Decimal
}

func (sy *SetYearBudget) Name() string {
	return "set_year_budget"
}

func (sy *SetYearBudget) Description() string {
	return fmt.Sprintf("Set year %d budget to %s", sy.Year+1, sy.Amount.StringFixed(0))
}

func (sy *SetYearBudget) Validate(base *domain.Configuration) error {
	if sy.Year < 0 || sy.Year > 2 {
		return NewTransformError(sy.Name(), "validate", fmt.Sprintf("year must be 1, 2 or 3, got %d", sy.Year+1), nil)
	}
	if sy.Amount.IsNegative() {
		return NewTransformError(sy.Name(), "validate", "budget cannot be negative", nil)
	}
	if base == nil {
		return NewTransformError(sy.Name(), "validate", "base roadmap cannot be nil", nil)
	}
	return nil
}

func (sy *SetYearBudget) Apply(base *domain.Configuration) (*domain.Configuration, error) {
	modified := base.DeepCopy()
	budgets := make([]decimal.Decimal, 3)
	for k := range budgets {
		budgets[k] = modified.Roadmap.AllocatedFor(k)
	}
	budgets[sy.Year] = sy.Amount
	modified.Roadmap.YearBudgets = budgets
	return modified, nil
}

// ShiftRoadmapStart moves the roadmap start; interventions stay where they are
type ShiftRoadmapStart struct {
	Months int
}

func (sr *ShiftRoadmapStart) Name() string {
	return "shift_start"
}

func (sr *ShiftRoadmapStart) Description() string {
	return fmt.Sprintf("Shift roadmap start by %+d months", sr.Months)
}

func (sr *ShiftRoadmapStart) Validate(base *domain.Configuration) error {
	if base == nil {
		return NewTransformError(sr.Name(), "validate", "base roadmap cannot be nil", nil)
	}
	if base.Roadmap.StartDate.IsZero() {
		return NewTransformError(sr.Name(), "validate", "roadmap has no start date", nil)
	}
	return nil
}

func (sr *ShiftRoadmapStart) Apply(base *domain.Configuration) (*domain.Configuration, error) {
	modified := base.DeepCopy()
	modified.Roadmap.StartDate = dateutil.AddMonths(modified.Roadmap.StartDate, sr.Months)
	return modified, nil
}

func clampZero(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
