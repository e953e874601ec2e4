package calculation

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/roadmap/internal/domain"
)

// MonteCarloEngine estimates how likely a roadmap is to stay within budget
// when vendor pricing, enrolment and delivery dates drift from the plan
type MonteCarloEngine struct {
	baseConfig *domain.Configuration
	engine     *Engine
	config     MonteCarloConfig
}

// MonteCarloConfig holds configuration for budget risk simulations
type MonteCarloConfig struct {
	NumSimulations int
	Seed           int64

	PEPMVariability      decimal.Decimal // Standard deviation of the PEPM rate multiplier
	HeadcountVariability decimal.Decimal // Standard deviation of the headcount multiplier
	MaxSlipMonths        int             // Timelines slip uniformly by 0..MaxSlipMonths
}

// DefaultMonteCarloConfig returns the default simulation settings
func DefaultMonteCarloConfig() MonteCarloConfig {
	return MonteCarloConfig{
		NumSimulations:       1000,
		Seed:                 time.Now().UnixNano(),
		PEPMVariability:      decimal.NewFromFloat(0.10),
		HeadcountVariability: decimal.NewFromFloat(0.05),
		MaxSlipMonths:        3,
	}
}

// CostCondition is the drift drawn for one intervention in one simulation
type CostCondition struct {
	InterventionID  int             `json:"interventionId"`
	PEPMFactor      decimal.Decimal `json:"pepmFactor"`
	HeadcountFactor decimal.Decimal `json:"headcountFactor"`
	SlipMonths      int             `json:"slipMonths"`
}

// MonteCarloSimulation is a single simulated roadmap outcome
type MonteCarloSimulation struct {
	SimulationID    int                           `json:"simulationId"`
	Conditions      []CostCondition               `json:"conditions"`
	YearSpend       [RoadmapYears]decimal.Decimal `json:"yearSpend"`
	TotalCost       decimal.Decimal               `json:"totalCost"`
	WithinBudget    bool                          `json:"withinBudget"`
	OverBudgetYears []int                         `json:"overBudgetYears,omitempty"`
}

// PercentileRanges holds the 10th, 25th, 50th, 75th and 90th percentiles of simulated spend
type PercentileRanges struct {
	YearSpend [RoadmapYears]map[string]decimal.Decimal `json:"yearSpend"`
	TotalCost map[string]decimal.Decimal               `json:"totalCost"`
}

// MonteCarloResult summarises a simulation run
type MonteCarloResult struct {
	NumSimulations   int                           `json:"numSimulations"`
	Seed             int64                         `json:"seed"`
	FitRate          decimal.Decimal               `json:"fitRate"`      // share of runs where every year fits
	YearFitRates     [RoadmapYears]decimal.Decimal `json:"yearFitRates"` // share of runs where year k fits
	MedianTotalCost  decimal.Decimal               `json:"medianTotalCost"`
	PercentileRanges PercentileRanges              `json:"percentileRanges"`
	Simulations      []MonteCarloSimulation        `json:"simulations"`
}

// NewMonteCarloEngine creates a simulation engine over baseConfig; a nil engine gets a plain one
func NewMonteCarloEngine(baseConfig *domain.Configuration, engine *Engine, config MonteCarloConfig) *MonteCarloEngine {
	if engine == nil {
		engine = NewEngine()
	}
	return &MonteCarloEngine{
		baseConfig: baseConfig,
		engine:     engine,
		config:     config,
	}
}

// Run draws every simulation from one seeded source, so a fixed seed reproduces
// the same result, then evaluates the simulated roadmaps concurrently
func (mce *MonteCarloEngine) Run(ctx context.Context) (*MonteCarloResult, error) {
	if mce.baseConfig == nil {
		return nil, fmt.Errorf("base configuration cannot be nil")
	}
	if mce.config.NumSimulations <= 0 {
		return nil, fmt.Errorf("number of simulations must be positive, got %d", mce.config.NumSimulations)
	}
	if mce.config.MaxSlipMonths < 0 {
		return nil, fmt.Errorf("max slip months cannot be negative, got %d", mce.config.MaxSlipMonths)
	}

	rng := rand.New(rand.NewSource(mce.config.Seed))

	conditions := make([][]CostCondition, mce.config.NumSimulations)
	cfgs := make([]*domain.Configuration, mce.config.NumSimulations)
	for i := range cfgs {
		conditions[i] = mce.generateConditions(rng)
		cfgs[i] = mce.createModifiedConfig(conditions[i])
	}

	reports, err := mce.engine.EvaluateAll(ctx, cfgs)
	if err != nil {
		return nil, fmt.Errorf("failed to evaluate simulations: %w", err)
	}

	simulations := make([]MonteCarloSimulation, len(reports))
	for i, report := range reports {
		sim := MonteCarloSimulation{
			SimulationID: i,
			Conditions:   conditions[i],
			TotalCost:    report.CostTable.GrandTotal,
			WithinBudget: true,
		}
		for k, b := range report.Budgets {
			sim.YearSpend[k] = b.Spent
			if b.IsOverBudget {
				sim.WithinBudget = false
				sim.OverBudgetYears = append(sim.OverBudgetYears, k+1)
			}
		}
		simulations[i] = sim
	}

	return mce.calculateSummary(simulations), nil
}

// generateConditions draws the drift of every intervention for one simulation
func (mce *MonteCarloEngine) generateConditions(rng *rand.Rand) []CostCondition {
	conditions := make([]CostCondition, 0, len(mce.baseConfig.Interventions))
	for _, iv := range mce.baseConfig.Interventions {
		conditions = append(conditions, CostCondition{
			InterventionID:  iv.ID,
			PEPMFactor:      drawFactor(rng, mce.config.PEPMVariability),
			HeadcountFactor: drawFactor(rng, mce.config.HeadcountVariability),
			SlipMonths:      rng.Intn(mce.config.MaxSlipMonths + 1),
		})
	}
	return conditions
}

// drawFactor returns a normally distributed multiplier around 1, never negative
func drawFactor(rng *rand.Rand, stdDev decimal.Decimal) decimal.Decimal {
	sd, _ := stdDev.Float64()
	factor := 1 + rng.NormFloat64()*sd
	if factor < 0 {
		factor = 0
	}
	return decimal.NewFromFloat(factor).Round(4)
}

// createModifiedConfig applies one simulation's drift to a deep copy of the base roadmap
func (mce *MonteCarloEngine) createModifiedConfig(conditions []CostCondition) *domain.Configuration {
	modified := mce.baseConfig.DeepCopy()
	for i := range modified.Interventions {
		iv := &modified.Interventions[i]
		c := conditions[i]

		iv.Costs.OngoingCostPEPM = iv.Costs.OngoingCostPEPM.Mul(c.PEPMFactor).Round(2)
		if iv.EligibleEmployees != nil {
			f, _ := c.HeadcountFactor.Float64()
			n := int(math.Round(float64(*iv.EligibleEmployees) * f))
			iv.EligibleEmployees = &n
		}
		iv.Timeline = iv.Timeline.Shift(c.SlipMonths)
	}
	return modified
}

// calculateSummary calculates fit rates and spend percentiles
func (mce *MonteCarloEngine) calculateSummary(simulations []MonteCarloSimulation) *MonteCarloResult {
	n := decimal.NewFromInt(int64(len(simulations)))

	fits := 0
	var yearFits [RoadmapYears]int
	totals := make([]decimal.Decimal, 0, len(simulations))
	var yearSpend [RoadmapYears][]decimal.Decimal

	for _, sim := range simulations {
		if sim.WithinBudget {
			fits++
		}
		totals = append(totals, sim.TotalCost)
		for k := 0; k < RoadmapYears; k++ {
			yearSpend[k] = append(yearSpend[k], sim.YearSpend[k])
			if !slices.Contains(sim.OverBudgetYears, k+1) {
				yearFits[k]++
			}
		}
	}

	result := &MonteCarloResult{
		NumSimulations:  len(simulations),
		Seed:            mce.config.Seed,
		FitRate:         decimal.NewFromInt(int64(fits)).Div(n),
		MedianTotalCost: calculateMedian(totals),
		PercentileRanges: PercentileRanges{
			TotalCost: calculatePercentiles(totals),
		},
		Simulations: simulations,
	}
	for k := 0; k < RoadmapYears; k++ {
		result.YearFitRates[k] = decimal.NewFromInt(int64(yearFits[k])).Div(n)
		result.PercentileRanges.YearSpend[k] = calculatePercentiles(yearSpend[k])
	}
	return result
}

// Helper functions for statistical calculations

func sortedCopy(values []decimal.Decimal) []decimal.Decimal {
	sorted := slices.Clone(values)
	slices.SortFunc(sorted, func(a, b decimal.Decimal) int { return a.Cmp(b) })
	return sorted
}

func calculateMedian(values []decimal.Decimal) decimal.Decimal {
	if len(values) == 0 {
		return decimal.Zero
	}
	return getPercentile(sortedCopy(values), 0.5)
}

func calculatePercentiles(values []decimal.Decimal) map[string]decimal.Decimal {
	if len(values) == 0 {
		return map[string]decimal.Decimal{
			"10th": decimal.Zero, "25th": decimal.Zero, "50th": decimal.Zero,
			"75th": decimal.Zero, "90th": decimal.Zero,
		}
	}

	sorted := sortedCopy(values)
	return map[string]decimal.Decimal{
		"10th": getPercentile(sorted, 0.1),
		"25th": getPercentile(sorted, 0.25),
		"50th": getPercentile(sorted, 0.5),
		"75th": getPercentile(sorted, 0.75),
		"90th": getPercentile(sorted, 0.9),
	}
}

// getPercentile interpolates linearly between the two nearest ranks of sorted values
func getPercentile(values []decimal.Decimal, percentile float64) decimal.Decimal {
	index := percentile * float64(len(values)-1)
	if index == float64(int(index)) {
		return values[int(index)]
	}

	lower := values[int(index)]
	upper := values[int(index)+1]
	fraction := decimal.NewFromFloat(index - float64(int(index))).Round(6)

	return lower.Add(upper.Sub(lower).Mul(fraction))
}
