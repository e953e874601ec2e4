package breakeven

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/roadmap/internal/domain"
	"github.com/rgehrsitz/roadmap/internal/output"
)

// OptimizationTarget defines what parameter to solve for
type OptimizationTarget string

const (
	OptimizeHeadcount OptimizationTarget = "headcount" // largest eligible headcount that fits
	OptimizePEPM      OptimizationTarget = "pepm"      // largest PEPM rate that fits
	OptimizeDelay     OptimizationTarget = "delay"     // smallest delay that fits
	OptimizeBudget    OptimizationTarget = "budget"    // smallest yearly budget that fits
	OptimizeAll       OptimizationTarget = "all"
)

// Targets lists the single-parameter targets in the order OptimizeAll runs them
func Targets() []OptimizationTarget {
	return []OptimizationTarget{OptimizeHeadcount, OptimizePEPM, OptimizeDelay, OptimizeBudget}
}

// Constraints define bounds for the solved parameter
type Constraints struct {
	// Intervention the parameter belongs to. Zero means every intervention
	// for the delay target and is rejected by headcount and pepm.
	InterventionID int `json:"intervention_id"`

	MinHeadcount *int `json:"min_headcount,omitempty"`
	MaxHeadcount *int `json:"max_headcount,omitempty"`

	MinPEPM *decimal.Decimal `json:"min_pepm,omitempty"`
	MaxPEPM *decimal.Decimal `json:"max_pepm,omitempty"`

	MaxDelayMonths *int `json:"max_delay_months,omitempty"`
}

// DefaultConstraints returns sensible default bounds for intervention id
func DefaultConstraints(id int) Constraints {
	minHeadcount, maxHeadcount := 0, 100000
	minPEPM, maxPEPM := decimal.Zero, decimal.NewFromInt(100)
	maxDelay := 36

	return Constraints{
		InterventionID: id,
		MinHeadcount:   &minHeadcount,
		MaxHeadcount:   &maxHeadcount,
		MinPEPM:        &minPEPM,
		MaxPEPM:        &maxPEPM,
		MaxDelayMonths: &maxDelay,
	}
}

// OptimizationRequest defines the parameters for a solver run
type OptimizationRequest struct {
	Config        *domain.Configuration
	Target        OptimizationTarget
	Constraints   Constraints
	MaxIterations int             // Maximum solver iterations
	Tolerance     decimal.Decimal // Convergence width for the PEPM bisection
}

// OptimizationResult contains the results of a solver run
type OptimizationResult struct {
	Target          OptimizationTarget `json:"target"`
	InterventionID  int                `json:"intervention_id,omitempty"`
	Success         bool               `json:"success"`
	Iterations      int                `json:"iterations"`
	ConvergenceInfo string             `json:"convergence_info"`

	// Solved parameter; exactly one is set on success
	OptimalHeadcount   *int             `json:"optimal_headcount,omitempty"`
	OptimalPEPM        *decimal.Decimal `json:"optimal_pepm,omitempty"`
	OptimalDelayMonths *int             `json:"optimal_delay_months,omitempty"`
	RequiredBudget     *decimal.Decimal `json:"required_budget,omitempty"`

	// Roadmap at the solved parameter
	Report          *domain.RoadmapReport `json:"-"`
	YearSpend       [3]decimal.Decimal    `json:"year_spend"`
	TotalCost       decimal.Decimal       `json:"total_cost"`
	PeakUtilization decimal.Decimal       `json:"peak_utilization"`

	// Comparison to the roadmap as configured
	BaseTotalCost    decimal.Decimal `json:"base_total_cost"`
	CostDiffFromBase decimal.Decimal `json:"cost_diff_from_base"`
}

// Value renders the solved parameter, or "n/a" when the search failed
func (r *OptimizationResult) Value() string {
	switch {
	case r.OptimalHeadcount != nil:
		return fmt.Sprintf("%d employees", *r.OptimalHeadcount)
	case r.OptimalPEPM != nil:
		return "$" + r.OptimalPEPM.StringFixed(2) + " PEPM"
	case r.OptimalDelayMonths != nil:
		return fmt.Sprintf("%d months later", *r.OptimalDelayMonths)
	case r.RequiredBudget != nil:
		return output.FormatCurrency(*r.RequiredBudget) + " per year"
	}
	return "n/a"
}

// MultiDimensionalResult contains the results of every target
type MultiDimensionalResult struct {
	InterventionName string               `json:"intervention_name,omitempty"`
	Results          []OptimizationResult `json:"results"`
	Cheapest         *OptimizationResult  `json:"cheapest,omitempty"`
	Recommendations  []string             `json:"recommendations"`
}

// SolverOptions configures the solver algorithm
type SolverOptions struct {
	Tolerance     decimal.Decimal // Convergence width for decimal searches
	MaxIterations int             // Maximum iterations
}

// DefaultSolverOptions returns default solver configuration
func DefaultSolverOptions() SolverOptions {
	return SolverOptions{
		Tolerance:     decimal.RequireFromString("0.01"), // one cent
		MaxIterations: 64,
	}
}

// Validate checks if constraints are internally consistent
func (c *Constraints) Validate() error {
	if c.InterventionID < 0 {
		return &BreakEvenError{
			Operation: "validate_constraints",
			Message:   "intervention id cannot be negative",
		}
	}

	if c.MinHeadcount != nil && *c.MinHeadcount < 0 {
		return &BreakEvenError{
			Operation: "validate_constraints",
			Message:   "min_headcount cannot be negative",
		}
	}
	if c.MinHeadcount != nil && c.MaxHeadcount != nil && *c.MinHeadcount > *c.MaxHeadcount {
		return &BreakEvenError{
			Operation: "validate_constraints",
			Message:   "min_headcount cannot be greater than max_headcount",
		}
	}

	if c.MinPEPM != nil && c.MinPEPM.IsNegative() {
		return &BreakEvenError{
			Operation: "validate_constraints",
			Message:   "min_pepm cannot be negative",
		}
	}
	if c.MinPEPM != nil && c.MaxPEPM != nil && c.MinPEPM.GreaterThan(*c.MaxPEPM) {
		return &BreakEvenError{
			Operation: "validate_constraints",
			Message:   "min_pepm cannot be greater than max_pepm",
		}
	}

	if c.MaxDelayMonths != nil && *c.MaxDelayMonths < 0 {
		return &BreakEvenError{
			Operation: "validate_constraints",
			Message:   "max_delay_months cannot be negative",
		}
	}

	return nil
}

// BreakEvenError represents errors from the solver
type BreakEvenError struct {
	Operation string
	Message   string
	Cause     error
}

func (e *BreakEvenError) Error() string {
	if e.Cause != nil {
		return e.Operation + ": " + e.Message + ": " + e.Cause.Error()
	}
	return e.Operation + ": " + e.Message
}

func (e *BreakEvenError) Unwrap() error {
	return e.Cause
}
