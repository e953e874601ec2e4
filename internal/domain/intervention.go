package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/rgehrsitz/roadmap/pkg/dateutil"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

var (
	// ErrInterventionNotFound is returned when a replace or lookup targets an unknown id
	ErrInterventionNotFound = errors.New("intervention not found")
	// ErrDuplicateInterventionID is returned when two interventions share an id
	ErrDuplicateInterventionID = errors.New("duplicate intervention id")
)

// InterventionTimeline holds the implementation and ongoing-operation windows of an intervention.
// Both windows are closed intervals at day granularity.
type InterventionTimeline struct {
	ImplementationStartDate time.Time `yaml:"implementation_start_date" json:"implementationStartDate"`
	ImplementationEndDate   time.Time `yaml:"implementation_end_date" json:"implementationEndDate"`
	OngoingStartDate        time.Time `yaml:"ongoing_start_date" json:"ongoingStartDate"`
	OngoingEndDate          time.Time `yaml:"ongoing_end_date" json:"ongoingEndDate"`
}

// Shift moves every date of the timeline by the given number of calendar months
func (t InterventionTimeline) Shift(months int) InterventionTimeline {
	return InterventionTimeline{
		ImplementationStartDate: dateutil.AddMonths(t.ImplementationStartDate, months),
		ImplementationEndDate:   dateutil.AddMonths(t.ImplementationEndDate, months),
		OngoingStartDate:        dateutil.AddMonths(t.OngoingStartDate, months),
		OngoingEndDate:          dateutil.AddMonths(t.OngoingEndDate, months),
	}
}

// CostBreakdown holds the four independent cost components of an intervention
type CostBreakdown struct {
	ImplementationCost decimal.Decimal `yaml:"implementation_cost" json:"implementationCost"`
	OngoingCostPEPM    decimal.Decimal `yaml:"ongoing_cost_pepm" json:"ongoingCostPEPM"`   // per eligible employee per month
	OngoingCostFixed   decimal.Decimal `yaml:"ongoing_cost_fixed" json:"ongoingCostFixed"` // charged once per year of activity
	OneTimeFixedFee    decimal.Decimal `yaml:"one_time_fixed_fee" json:"oneTimeFixedFee"`
}

// Intervention is a benefit program considered for the roadmap
type Intervention struct {
	ID                int                  `yaml:"id" json:"id"`
	Name              string               `yaml:"name" json:"name"`
	Description       string               `yaml:"description,omitempty" json:"description"`
	Timeline          InterventionTimeline `yaml:"timeline" json:"timeline"`
	Costs             CostBreakdown        `yaml:"costs" json:"costs"`
	EligibleEmployees *int                 `yaml:"eligible_employees,omitempty" json:"eligibleEmployees,omitempty"`
}

// Headcount returns the eligible employee count, zero when absent
func (iv *Intervention) Headcount() int {
	if iv.EligibleEmployees == nil {
		return 0
	}
	return *iv.EligibleEmployees
}

// MonthlyPEPMCharge returns the PEPM rate multiplied by the eligible headcount
func (iv *Intervention) MonthlyPEPMCharge() decimal.Decimal {
	return iv.Costs.OngoingCostPEPM.Mul(decimal.NewFromInt(int64(iv.Headcount())))
}

// Fingerprint identifies the cost-relevant content of an intervention.
// Two interventions with the same fingerprint always allocate identically.
func (iv *Intervention) Fingerprint() string {
	t := iv.Timeline
	return fmt.Sprintf("%d|%s|%s|%s|%s|%s|%s|%s|%s|%d",
		iv.ID,
		t.ImplementationStartDate.Format(time.DateOnly),
		t.ImplementationEndDate.Format(time.DateOnly),
		t.OngoingStartDate.Format(time.DateOnly),
		t.OngoingEndDate.Format(time.DateOnly),
		iv.Costs.ImplementationCost.String(),
		iv.Costs.OngoingCostPEPM.String(),
		iv.Costs.OngoingCostFixed.String(),
		iv.Costs.OneTimeFixedFee.String(),
		iv.Headcount(),
	)
}

// IntPtr returns a pointer to n, handy for EligibleEmployees literals
func IntPtr(n int) *int {
	return &n
}

// InterventionSet is an ordered collection of interventions
type InterventionSet []Intervention

// Find returns the intervention with the given id
func (s InterventionSet) Find(id int) (Intervention, bool) {
	return lo.Find(s, func(iv Intervention) bool { return iv.ID == id })
}

// IDs returns the ids in collection order
func (s InterventionSet) IDs() []int {
	return lo.Map(s, func(iv Intervention, _ int) int { return iv.ID })
}

// ReplaceByID returns a copy of the set with the intervention sharing updated's id
// replaced in place. Other entries and their order are untouched.
func (s InterventionSet) ReplaceByID(updated Intervention) (InterventionSet, error) {
	_, idx, ok := lo.FindIndexOf(s, func(iv Intervention) bool { return iv.ID == updated.ID })
	if !ok {
		return nil, fmt.Errorf("replace intervention %d: %w", updated.ID, ErrInterventionNotFound)
	}

	out := make(InterventionSet, len(s))
	copy(out, s)
	out[idx] = updated
	return out, nil
}

// CheckUniqueIDs reports the first id that appears more than once
func (s InterventionSet) CheckUniqueIDs() error {
	dups := lo.FindDuplicates(s.IDs())
	if len(dups) > 0 {
		return fmt.Errorf("id %d: %w", dups[0], ErrDuplicateInterventionID)
	}
	return nil
}
