package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Roadmap anchors the three financial years and carries the budget allocated to each
type Roadmap struct {
	StartDate    time.Time         `yaml:"start_date" json:"startDate"`
	YearlyBudget decimal.Decimal   `yaml:"yearly_budget" json:"yearlyBudget"`
	YearBudgets  []decimal.Decimal `yaml:"year_budgets,omitempty" json:"yearBudgets,omitempty"` // optional per-year overrides
}

// AllocatedFor returns the budget allocated to the given zero-based year.
// A per-year override wins over the single yearly figure.
func (r Roadmap) AllocatedFor(year int) decimal.Decimal {
	if year >= 0 && year < len(r.YearBudgets) {
		return r.YearBudgets[year]
	}
	return r.YearlyBudget
}

// Configuration is the complete roadmap document
type Configuration struct {
	Roadmap       Roadmap         `yaml:"roadmap" json:"roadmap"`
	Interventions InterventionSet `yaml:"interventions" json:"interventions"`
}

// YearlyCostBreakdown is the cost charged to one intervention in one financial year
type YearlyCostBreakdown struct {
	ImplementationCost decimal.Decimal `json:"implementationCost"`
	PEPMCost           decimal.Decimal `json:"pepmCost"`
	FixedAnnualCost    decimal.Decimal `json:"fixedAnnualCost"`
	OneTimeFixedFee    decimal.Decimal `json:"oneTimeFixedFee"`
	Total              decimal.Decimal `json:"total"`
}

// NewYearlyCostBreakdown builds a breakdown and derives its total
func NewYearlyCostBreakdown(implementation, pepm, fixedAnnual, oneTime decimal.Decimal) YearlyCostBreakdown {
	return YearlyCostBreakdown{
		ImplementationCost: implementation,
		PEPMCost:           pepm,
		FixedAnnualCost:    fixedAnnual,
		OneTimeFixedFee:    oneTime,
		Total:              implementation.Add(pepm).Add(fixedAnnual).Add(oneTime),
	}
}

// Add sums two breakdowns component by component
func (b YearlyCostBreakdown) Add(o YearlyCostBreakdown) YearlyCostBreakdown {
	return NewYearlyCostBreakdown(
		b.ImplementationCost.Add(o.ImplementationCost),
		b.PEPMCost.Add(o.PEPMCost),
		b.FixedAnnualCost.Add(o.FixedAnnualCost),
		b.OneTimeFixedFee.Add(o.OneTimeFixedFee),
	)
}

// YearlyBudget compares the spend of one financial year against its allocation
type YearlyBudget struct {
	Allocated    decimal.Decimal `json:"allocated"`
	Spent        decimal.Decimal `json:"spent"`
	IsOverBudget bool            `json:"isOverBudget"`
}

// Variance returns allocated minus spent; negative when over budget
func (b YearlyBudget) Variance() decimal.Decimal {
	return b.Allocated.Sub(b.Spent)
}

// Utilization returns spent as a percentage of allocated, zero when nothing is allocated
func (b YearlyBudget) Utilization() decimal.Decimal {
	if b.Allocated.IsZero() {
		return decimal.Zero
	}
	return b.Spent.Div(b.Allocated).Mul(decimal.NewFromInt(100))
}

// YearWindow is the closed date interval of one financial year
type YearWindow struct {
	Index int       `json:"index"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Label renders the window the way the roadmap tables head their columns
func (w YearWindow) Label() string {
	return w.Start.Format("02/01/2006") + " - " + w.End.Format("02/01/2006")
}

// CostRow holds the per-year breakdown of a single intervention
type CostRow struct {
	InterventionID int                    `json:"interventionId"`
	Name           string                 `json:"name"`
	Years          [3]YearlyCostBreakdown `json:"years"`
	Total          decimal.Decimal        `json:"total"`
}

// CostTable is the detailed investment breakdown across the roadmap
type CostTable struct {
	Rows       []CostRow              `json:"rows"`
	YearTotals [3]YearlyCostBreakdown `json:"yearTotals"`
	GrandTotal decimal.Decimal        `json:"grandTotal"`
}

// TimelineBar positions one window of an intervention on the 36-month roadmap strip.
// Offsets are percentages of the roadmap length.
type TimelineBar struct {
	Position decimal.Decimal `json:"position"`
	Width    decimal.Decimal `json:"width"`
}

// TimelineRow is the rendered timeline of one intervention
type TimelineRow struct {
	InterventionID int         `json:"interventionId"`
	Name           string      `json:"name"`
	Implementation TimelineBar `json:"implementation"`
	Ongoing        TimelineBar `json:"ongoing"`
}

// RoadmapReport is everything a presentation layer needs to draw a roadmap
type RoadmapReport struct {
	Name      string          `json:"name,omitempty"`
	Roadmap   Roadmap         `json:"roadmap"`
	Windows   [3]YearWindow   `json:"windows"`
	Budgets   [3]YearlyBudget `json:"budgets"`
	CostTable CostTable       `json:"costTable"`
	Timeline  []TimelineRow   `json:"timeline"`
}

// IsOverBudget reports whether any year exceeds its allocation
func (r *RoadmapReport) IsOverBudget() bool {
	for _, b := range r.Budgets {
		if b.IsOverBudget {
			return true
		}
	}
	return false
}

// DeepCopy returns a copy sharing no mutable state with c
func (c *Configuration) DeepCopy() *Configuration {
	if c == nil {
		return nil
	}
	out := &Configuration{Roadmap: c.Roadmap}
	if c.Roadmap.YearBudgets != nil {
		out.Roadmap.YearBudgets = append([]decimal.Decimal(nil), c.Roadmap.YearBudgets...)
	}
	if c.Interventions != nil {
		out.Interventions = make(InterventionSet, len(c.Interventions))
		for i, iv := range c.Interventions {
			if iv.EligibleEmployees != nil {
				iv.EligibleEmployees = IntPtr(*iv.EligibleEmployees)
			}
			out.Interventions[i] = iv
		}
	}
	return out
}
