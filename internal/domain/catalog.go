package domain

import (
	"sort"
	"time"

	"github.com/rgehrsitz/roadmap/pkg/dateutil"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

const (
	// PlaceholderImplementationMonths is the implementation length given to a freshly selected program
	PlaceholderImplementationMonths = 3
	// PlaceholderOngoingMonths is the ongoing length given to a freshly selected program
	PlaceholderOngoingMonths = 24
)

// CatalogEntry is a benefit program offered on the selection screen
type CatalogEntry struct {
	ID          int    `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
}

var catalog = []CatalogEntry{
	{ID: 1, Name: "Mental Health Support", Description: "24/7 access to mental health professionals"},
	{ID: 2, Name: "Fitness Program", Description: "Access to gym memberships and virtual fitness classes"},
	{ID: 3, Name: "Telemedicine", Description: "Virtual doctor consultations"},
	{ID: 4, Name: "Dental Coverage", Description: "Comprehensive dental care"},
	{ID: 5, Name: "Vision Care", Description: "Eye examinations and eyewear coverage"},
	{ID: 6, Name: "Nutrition Counseling", Description: "Professional dietary guidance"},
	{ID: 7, Name: "Physical Therapy", Description: "Rehabilitation services"},
	{ID: 8, Name: "Wellness Programs", Description: "Stress management and wellness workshops"},
	{ID: 9, Name: "Prescription Coverage", Description: "Medication cost coverage"},
	{ID: 10, Name: "Preventive Care", Description: "Regular health screenings"},
	{ID: 11, Name: "Alternative Medicine", Description: "Acupuncture and chiropractic care"},
	{ID: 12, Name: "Maternity Support", Description: "Pregnancy and postpartum care"},
	{ID: 13, Name: "Sleep Health", Description: "Sleep disorder treatments and consultations"},
	{ID: 14, Name: "Chronic Disease Management", Description: "Ongoing support for chronic conditions"},
	{ID: 15, Name: "Emergency Care", Description: "24/7 emergency medical services"},
	{ID: 16, Name: "Health Coaching", Description: "Personal health and wellness coaching"},
	{ID: 17, Name: "Smoking Cessation", Description: "Support to quit smoking"},
	{ID: 18, Name: "Weight Management", Description: "Personalized weight loss programs"},
	{ID: 19, Name: "Substance Abuse Support", Description: "Addiction recovery services"},
	{ID: 20, Name: "Work-Life Balance", Description: "Stress management and counseling"},
}

// Catalog returns a copy of the built-in program catalog
func Catalog() []CatalogEntry {
	out := make([]CatalogEntry, len(catalog))
	copy(out, catalog)
	return out
}

// LookupCatalogEntry finds a catalog entry by id
func LookupCatalogEntry(id int) (CatalogEntry, bool) {
	return lo.Find(catalog, func(e CatalogEntry) bool { return e.ID == id })
}

// ToIntervention turns the entry into a placeholder intervention starting at start.
// Costs are zero until the planner fills them in.
func (e CatalogEntry) ToIntervention(start time.Time) Intervention {
	ongoingStart := dateutil.AddMonths(start, PlaceholderImplementationMonths)
	return Intervention{
		ID:          e.ID,
		Name:        e.Name,
		Description: e.Description,
		Timeline: InterventionTimeline{
			ImplementationStartDate: start,
			ImplementationEndDate:   dateutil.AddDays(ongoingStart, -1),
			OngoingStartDate:        ongoingStart,
			OngoingEndDate:          dateutil.AddDays(dateutil.AddMonths(ongoingStart, PlaceholderOngoingMonths), -1),
		},
		Costs: CostBreakdown{
			ImplementationCost: decimal.Zero,
			OngoingCostPEPM:    decimal.Zero,
			OngoingCostFixed:   decimal.Zero,
			OneTimeFixedFee:    decimal.Zero,
		},
	}
}

// Selection is the set of catalog ids picked by the planner
type Selection map[int]struct{}

// NewSelection builds a selection from ids, ignoring ids absent from the catalog
func NewSelection(ids ...int) Selection {
	s := Selection{}
	for _, id := range ids {
		if _, ok := LookupCatalogEntry(id); ok {
			s[id] = struct{}{}
		}
	}
	return s
}

// Toggle adds id when absent and removes it when present
func (s Selection) Toggle(id int) {
	if _, ok := s[id]; ok {
		delete(s, id)
		return
	}
	s[id] = struct{}{}
}

// Has reports whether id is selected
func (s Selection) Has(id int) bool {
	_, ok := s[id]
	return ok
}

// Entries returns the selected catalog entries in catalog order
func (s Selection) Entries() []CatalogEntry {
	return lo.Filter(catalog, func(e CatalogEntry, _ int) bool { return s.Has(e.ID) })
}

// IDs returns the selected ids in ascending order
func (s Selection) IDs() []int {
	ids := lo.Keys(s)
	sort.Ints(ids)
	return ids
}

// Interventions converts the selection into placeholder interventions starting at start
func (s Selection) Interventions(start time.Time) InterventionSet {
	return lo.Map(s.Entries(), func(e CatalogEntry, _ int) Intervention { return e.ToIntervention(start) })
}
