package breakeven

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/roadmap/internal/calculation"
	"github.com/rgehrsitz/roadmap/internal/domain"
	"github.com/rgehrsitz/roadmap/internal/transform"
)

var (
	two  = decimal.NewFromInt(2)
	cent = decimal.New(1, -2)
)

// Solver finds the break-even value of one roadmap parameter: the point where
// every financial year still fits its budget
type Solver struct {
	CalcEngine *calculation.Engine
	Options    SolverOptions
}

// NewSolver creates a new break-even solver
func NewSolver(calcEngine *calculation.Engine, options SolverOptions) *Solver {
	if calcEngine == nil {
		calcEngine = calculation.NewEngine()
	}
	return &Solver{
		CalcEngine: calcEngine,
		Options:    options,
	}
}

// NewDefaultSolver creates a solver with default options
func NewDefaultSolver(calcEngine *calculation.Engine) *Solver {
	return NewSolver(calcEngine, DefaultSolverOptions())
}

// Optimize performs optimization based on the request
func (s *Solver) Optimize(ctx context.Context, req OptimizationRequest) (*OptimizationResult, error) {
	if req.Config == nil {
		return nil, &BreakEvenError{Operation: "optimize", Message: "configuration cannot be nil"}
	}
	if err := req.Constraints.Validate(); err != nil {
		return nil, err
	}

	if req.MaxIterations == 0 {
		req.MaxIterations = s.Options.MaxIterations
	}
	if req.Tolerance.IsZero() {
		req.Tolerance = s.Options.Tolerance
	}

	switch req.Target {
	case OptimizeHeadcount:
		return s.optimizeHeadcount(ctx, req)
	case OptimizePEPM:
		return s.optimizePEPM(ctx, req)
	case OptimizeDelay:
		return s.optimizeDelay(ctx, req)
	case OptimizeBudget:
		return s.optimizeBudget(ctx, req)
	default:
		return nil, &BreakEvenError{
			Operation: "optimize",
			Message:   fmt.Sprintf("unsupported optimization target: %s", req.Target),
		}
	}
}

// optimizeHeadcount binary searches the largest eligible headcount that fits.
// Cost grows with headcount, so the fitting range is a prefix of the bounds.
func (s *Solver) optimizeHeadcount(ctx context.Context, req OptimizationRequest) (*OptimizationResult, error) {
	const op = "optimize_headcount"
	if err := requireIntervention(op, req); err != nil {
		return nil, err
	}

	lo, hi := 0, 100000
	if req.Constraints.MinHeadcount != nil {
		lo = *req.Constraints.MinHeadcount
	}
	if req.Constraints.MaxHeadcount != nil {
		hi = *req.Constraints.MaxHeadcount
	}

	try := func(n int) (*domain.RoadmapReport, error) {
		return s.evaluate(req.Config, &transform.SetHeadcount{ID: req.Constraints.InterventionID, Employees: n})
	}

	iterations := 0
	best, err := try(lo)
	iterations++
	if err != nil {
		return nil, &BreakEvenError{Operation: op, Message: "failed to evaluate roadmap", Cause: err}
	}
	if best.IsOverBudget() {
		return s.failure(req, iterations, fmt.Sprintf("even %d eligible employees exceed the budget", lo)), nil
	}

	top, err := try(hi)
	iterations++
	if err != nil {
		return nil, &BreakEvenError{Operation: op, Message: "failed to evaluate roadmap", Cause: err}
	}
	if !top.IsOverBudget() {
		result := s.evaluateResult(req, top, iterations)
		result.OptimalHeadcount = &hi
		result.Success = true
		result.ConvergenceInfo = fmt.Sprintf("Upper bound of %d employees fits the budget", hi)
		return result, nil
	}

	// lo fits, hi does not
	for hi-lo > 1 {
		if iterations >= req.MaxIterations {
			return s.failure(req, iterations, fmt.Sprintf("Max iterations (%d) reached", req.MaxIterations)), nil
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		mid := lo + (hi-lo)/2
		report, err := try(mid)
		iterations++
		if err != nil {
			return nil, &BreakEvenError{Operation: op, Message: "failed to evaluate roadmap", Cause: err}
		}
		if report.IsOverBudget() {
			hi = mid
		} else {
			lo, best = mid, report
		}
	}

	result := s.evaluateResult(req, best, iterations)
	result.OptimalHeadcount = &lo
	result.Success = true
	result.ConvergenceInfo = "Binary search converged"
	return result, nil
}

// optimizePEPM bisects the largest PEPM rate that fits, floored to whole cents
func (s *Solver) optimizePEPM(ctx context.Context, req OptimizationRequest) (*OptimizationResult, error) {
	const op = "optimize_pepm"
	if err := requireIntervention(op, req); err != nil {
		return nil, err
	}

	lo, hi := decimal.Zero, decimal.NewFromInt(100)
	if req.Constraints.MinPEPM != nil {
		lo = *req.Constraints.MinPEPM
	}
	if req.Constraints.MaxPEPM != nil {
		hi = *req.Constraints.MaxPEPM
	}

	try := func(rate decimal.Decimal) (*domain.RoadmapReport, error) {
		return s.evaluate(req.Config, &transform.SetCost{
			ID:        req.Constraints.InterventionID,
			Component: transform.CostPEPM,
			Amount:    rate,
		})
	}

	iterations := 0
	report, err := try(lo)
	iterations++
	if err != nil {
		return nil, &BreakEvenError{Operation: op, Message: "failed to evaluate roadmap", Cause: err}
	}
	if report.IsOverBudget() {
		return s.failure(req, iterations, fmt.Sprintf("even a rate of %s exceeds the budget", lo.StringFixed(2))), nil
	}

	top, err := try(hi)
	iterations++
	if err != nil {
		return nil, &BreakEvenError{Operation: op, Message: "failed to evaluate roadmap", Cause: err}
	}
	if !top.IsOverBudget() {
		result := s.evaluateResult(req, top, iterations)
		result.OptimalPEPM = &hi
		result.Success = true
		result.ConvergenceInfo = fmt.Sprintf("Upper bound of %s fits the budget", hi.StringFixed(2))
		return result, nil
	}

	for hi.Sub(lo).GreaterThanOrEqual(req.Tolerance) {
		if iterations >= req.MaxIterations {
			return s.failure(req, iterations, fmt.Sprintf("Max iterations (%d) reached", req.MaxIterations)), nil
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		mid := lo.Add(hi).Div(two)
		report, err := try(mid)
		iterations++
		if err != nil {
			return nil, &BreakEvenError{Operation: op, Message: "failed to evaluate roadmap", Cause: err}
		}
		if report.IsOverBudget() {
			hi = mid
		} else {
			lo = mid
		}
	}

	// flooring keeps the rate on the fitting side; then step up whole cents below hi
	rate := lo.RoundFloor(2)
	final, err := try(rate)
	iterations++
	if err != nil {
		return nil, &BreakEvenError{Operation: op, Message: "failed to evaluate roadmap", Cause: err}
	}
	for next := rate.Add(cent); next.LessThan(hi) && iterations < req.MaxIterations; next = next.Add(cent) {
		report, err := try(next)
		iterations++
		if err != nil {
			return nil, &BreakEvenError{Operation: op, Message: "failed to evaluate roadmap", Cause: err}
		}
		if report.IsOverBudget() {
			break
		}
		rate, final = next, report
	}

	result := s.evaluateResult(req, final, iterations)
	result.OptimalPEPM = &rate
	result.Success = true
	result.ConvergenceInfo = fmt.Sprintf("Bisection converged within %s", req.Tolerance.String())
	return result, nil
}

// optimizeDelay grid searches the smallest delay, month by month, that fits.
// Moving costs between years is not monotone, so every month is evaluated in order.
func (s *Solver) optimizeDelay(ctx context.Context, req OptimizationRequest) (*OptimizationResult, error) {
	const op = "optimize_delay"
	id := req.Constraints.InterventionID
	if id != 0 {
		if err := requireIntervention(op, req); err != nil {
			return nil, err
		}
	}

	maxDelay := 36
	if req.Constraints.MaxDelayMonths != nil {
		maxDelay = *req.Constraints.MaxDelayMonths
	}

	iterations := 0
	for months := 0; months <= maxDelay && iterations < req.MaxIterations; months++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var t transform.RoadmapTransform = &transform.ShiftIntervention{ID: id, Months: months}
		if id == 0 {
			t = &transform.ShiftAllInterventions{Months: months}
		}
		report, err := s.evaluate(req.Config, t)
		iterations++
		if err != nil {
			return nil, &BreakEvenError{Operation: op, Message: "failed to evaluate roadmap", Cause: err}
		}
		if report.IsOverBudget() {
			continue
		}

		delay := months
		result := s.evaluateResult(req, report, iterations)
		result.OptimalDelayMonths = &delay
		result.Success = true
		if months == 0 {
			result.ConvergenceInfo = "Roadmap fits without a delay"
		} else {
			result.ConvergenceInfo = fmt.Sprintf("Evaluated %d delays", iterations)
		}
		return result, nil
	}

	return s.failure(req, iterations, fmt.Sprintf("no delay up to %d months fits the budget", maxDelay)), nil
}

// optimizeBudget returns the smallest single yearly budget that covers every year
func (s *Solver) optimizeBudget(ctx context.Context, req OptimizationRequest) (*OptimizationResult, error) {
	const op = "optimize_budget"
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	base, err := s.CalcEngine.Evaluate(req.Config)
	if err != nil {
		return nil, &BreakEvenError{Operation: op, Message: "failed to evaluate roadmap", Cause: err}
	}

	required := decimal.Zero
	for _, b := range base.Budgets {
		required = decimal.Max(required, b.Spent)
	}

	report, err := s.evaluate(req.Config, &transform.SetYearlyBudget{Amount: required})
	if err != nil {
		return nil, &BreakEvenError{Operation: op, Message: "failed to evaluate roadmap", Cause: err}
	}

	result := s.evaluateResult(req, report, 2)
	result.RequiredBudget = &required
	result.Success = true
	result.ConvergenceInfo = "Peak year spend"
	return result, nil
}

func (s *Solver) evaluate(cfg *domain.Configuration, t transform.RoadmapTransform) (*domain.RoadmapReport, error) {
	modified, err := transform.ApplyTransforms(cfg, []transform.RoadmapTransform{t})
	if err != nil {
		return nil, err
	}
	return s.CalcEngine.Evaluate(modified)
}

// evaluateResult creates an optimization result from a roadmap report
func (s *Solver) evaluateResult(req OptimizationRequest, report *domain.RoadmapReport, iterations int) *OptimizationResult {
	result := &OptimizationResult{
		Target:         req.Target,
		InterventionID: req.Constraints.InterventionID,
		Iterations:     iterations,
		Report:         report,
		TotalCost:      report.CostTable.GrandTotal,
	}
	for k, b := range report.Budgets {
		result.YearSpend[k] = b.Spent
		result.PeakUtilization = decimal.Max(result.PeakUtilization, b.Utilization())
	}

	if base, err := s.CalcEngine.Evaluate(req.Config); err == nil {
		result.BaseTotalCost = base.CostTable.GrandTotal
		result.CostDiffFromBase = result.TotalCost.Sub(result.BaseTotalCost)
	}
	return result
}

func (s *Solver) failure(req OptimizationRequest, iterations int, info string) *OptimizationResult {
	return &OptimizationResult{
		Target:          req.Target,
		InterventionID:  req.Constraints.InterventionID,
		Iterations:      iterations,
		ConvergenceInfo: info,
	}
}

func requireIntervention(op string, req OptimizationRequest) error {
	id := req.Constraints.InterventionID
	if id == 0 {
		return &BreakEvenError{Operation: op, Message: "intervention id is required"}
	}
	if _, ok := req.Config.Interventions.Find(id); !ok {
		return &BreakEvenError{
			Operation: op,
			Message:   fmt.Sprintf("intervention %d", id),
			Cause:     domain.ErrInterventionNotFound,
		}
	}
	return nil
}
