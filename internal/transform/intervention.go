package transform

import (
	"fmt"
	"time"

	"github.com/rgehrsitz/roadmap/internal/domain"
	"github.com/shopspring/decimal"
)

// ShiftIntervention moves one intervention's whole timeline by a number of calendar months.
// Negative months move it earlier.
type ShiftIntervention struct {
	ID     int
	Months int
}

func (si *ShiftIntervention) Name() string {
	return "shift_intervention"
}

func (si *ShiftIntervention) Description() string {
	return fmt.Sprintf("Shift intervention %d by %+d months", si.ID, si.Months)
}

func (si *ShiftIntervention) Validate(base *domain.Configuration) error {
	return requireIntervention(si.Name(), base, si.ID)
}

func (si *ShiftIntervention) Apply(base *domain.Configuration) (*domain.Configuration, error) {
	return replaceIntervention(base, si.ID, func(iv domain.Intervention) domain.Intervention {
		iv.Timeline = iv.Timeline.Shift(si.Months)
		return iv
	})
}

// ShiftAllInterventions moves every intervention by the same number of months
type ShiftAllInterventions struct {
	Months int
}

func (sa *ShiftAllInterventions) Name() string {
	return "shift_all"
}

func (sa *ShiftAllInterventions) Description() string {
	return fmt.Sprintf("Shift all interventions by %+d months", sa.Months)
}

func (sa *ShiftAllInterventions) Validate(base *domain.Configuration) error {
	if base == nil {
		return NewTransformError(sa.Name(), "validate", "base roadmap cannot be nil", nil)
	}
	return nil
}

func (sa *ShiftAllInterventions) Apply(base *domain.Configuration) (*domain.Configuration, error) {
	modified := base.DeepCopy()
	for _, iv := range modified.Interventions {
		iv.Timeline = iv.Timeline.Shift(sa.Months)
		updated, err := modified.Interventions.ReplaceByID(iv)
		if err != nil {
			return nil, err
		}
		modified.Interventions = updated
	}
	return modified, nil
}

// Cost component names accepted by SetCost
const (
	CostImplementation = "implementation"
	CostPEPM           = "pepm"
	CostFixed          = "fixed"
	CostOneTime        = "one_time"
)

// SetCost replaces one cost component of an intervention
type SetCost struct {
	ID        int
	Component string
	Amount    decimal.Decimal
}

func (sc *SetCost) Name() string {
	return "set_cost"
}

func (sc *SetCost) Description() string {
	return fmt.Sprintf("Set %s cost of intervention %d to %s", sc.Component, sc.ID, sc.Amount.String())
}

func (sc *SetCost) Validate(base *domain.Configuration) error {
	switch sc.Component {
	case CostImplementation, CostPEPM, CostFixed, CostOneTime:
	default:
		return NewTransformError(sc.Name(), "validate",
			fmt.Sprintf("component must be one of %s, %s, %s, %s; got %q", CostImplementation, CostPEPM, CostFixed, CostOneTime, sc.Component), nil)
	}
	if sc.Amount.IsNegative() {
		return NewTransformError(sc.Name(), "validate", fmt.Sprintf("amount cannot be negative, got %s", sc.Amount.String()), nil)
	}
	return requireIntervention(sc.Name(), base, sc.ID)
}

func (sc *SetCost) Apply(base *domain.Configuration) (*domain.Configuration, error) {
	return replaceIntervention(base, sc.ID, func(iv domain.Intervention) domain.Intervention {
		switch sc.Component {
		case CostImplementation:
			iv.Costs.ImplementationCost = sc.Amount
		case CostPEPM:
			iv.Costs.OngoingCostPEPM = sc.Amount
		case CostFixed:
			iv.Costs.OngoingCostFixed = sc.Amount
		case CostOneTime:
			iv.Costs.OneTimeFixedFee = sc.Amount
		}
		return iv
	})
}

// SetHeadcount changes the eligible employee count of an intervention
type SetHeadcount struct {
	ID        int
	Employees int
}

func (sh *SetHeadcount) Name() string {
	return "set_headcount"
}

func (sh *SetHeadcount) Description() string {
	return fmt.Sprintf("Set eligible employees of intervention %d to %d", sh.ID, sh.Employees)
}

func (sh *SetHeadcount) Validate(base *domain.Configuration) error {
	if sh.Employees < 0 {
		return NewTransformError(sh.Name(), "validate", fmt.Sprintf("employees must be non-negative, got %d", sh.Employees), nil)
	}
	return requireIntervention(sh.Name(), base, sh.ID)
}

func (sh *SetHeadcount) Apply(base *domain.Configuration) (*domain.Configuration, error) {
	return replaceIntervention(base, sh.ID, func(iv domain.Intervention) domain.Intervention {
		iv.EligibleEmployees = domain.IntPtr(sh.Employees)
		return iv
	})
}

// RemoveIntervention drops an intervention from the roadmap
type RemoveIntervention struct {
	ID int
}

func (ri *RemoveIntervention) Name() string {
	return "remove_intervention"
}

func (ri *RemoveIntervention) Description() string {
	return fmt.Sprintf("Remove intervention %d", ri.ID)
}

func (ri *RemoveIntervention) Validate(base *domain.Configuration) error {
	return requireIntervention(ri.Name(), base, ri.ID)
}

func (ri *RemoveIntervention) Apply(base *domain.Configuration) (*domain.Configuration, error) {
	modified := base.DeepCopy()
	kept := make(domain.InterventionSet, 0, len(modified.Interventions))
	for _, iv := range modified.Interventions {
		if iv.ID != ri.ID {
			kept = append(kept, iv)
		}
	}
	modified.Interventions = kept
	return modified, nil
}

// AddCatalogEntry appends a placeholder intervention for a catalog program
type AddCatalogEntry struct {
	CatalogID int
	Start     time.Time // zero means the roadmap start
}

func (ac *AddCatalogEntry) Name() string {
	return "add_catalog"
}

func (ac *AddCatalogEntry) Description() string {
	return fmt.Sprintf("Add catalog program %d", ac.CatalogID)
}

func (ac *AddCatalogEntry) Validate(base *domain.Configuration) error {
	if base == nil {
		return NewTransformError(ac.Name(), "validate", "base roadmap cannot be nil", nil)
	}
	if _, ok := domain.LookupCatalogEntry(ac.CatalogID); !ok {
		return NewTransformError(ac.Name(), "validate", fmt.Sprintf("catalog program %d does not exist", ac.CatalogID), nil)
	}
	if _, exists := base.Interventions.Find(ac.CatalogID); exists {
		return NewTransformError(ac.Name(), "validate", fmt.Sprintf("intervention %d already on the roadmap", ac.CatalogID), domain.ErrDuplicateInterventionID)
	}
	return nil
}

func (ac *AddCatalogEntry) Apply(base *domain.Configuration) (*domain.Configuration, error) {
	entry, _ := domain.LookupCatalogEntry(ac.CatalogID)
	start := ac.Start
	if start.IsZero() {
		start = base.Roadmap.StartDate
	}
	modified := base.DeepCopy()
	modified.Interventions = append(modified.Interventions, entry.ToIntervention(start))
	return modified, nil
}
