package config

import (
	"fmt"
	"os"

	"github.com/rgehrsitz/roadmap/internal/domain"
	"github.com/rgehrsitz/roadmap/pkg/dateutil"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// DefaultYearlyBudget is the budget used when a roadmap does not set one
var DefaultYearlyBudget = decimal.NewFromInt(500000)

// documentKeys records which optional keys a roadmap document spells out
type documentKeys struct {
	Roadmap struct {
		YearlyBudget *yaml.Node `yaml:"yearly_budget"`
	} `yaml:"roadmap"`
}

// InputParser handles parsing of roadmap documents
type InputParser struct {
	// Lenient skips boundary validation; the engine accepts whatever it is given
	Lenient bool
}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a roadmap document from a YAML file
func (ip *InputParser) LoadFromFile(filename string) (*domain.Configuration, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse decodes and validates a roadmap document
func (ip *InputParser) Parse(data []byte) (*domain.Configuration, error) {
	var config domain.Configuration
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	var keys documentKeys
	if err := yaml.Unmarshal(data, &keys); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	// an explicit yearly_budget, zero included, is kept as written
	budgetSet := keys.Roadmap.YearlyBudget != nil
	partial := len(config.Roadmap.YearBudgets) < 3
	if !budgetSet && partial {
		config.Roadmap.YearlyBudget = DefaultYearlyBudget
	}

	if ip.Lenient {
		return &config, nil
	}
	if !budgetSet && partial && len(config.Roadmap.YearBudgets) > 0 {
		return nil, fmt.Errorf("configuration validation failed: roadmap: year_budgets covers %d of 3 years; set yearly_budget for the rest",
			len(config.Roadmap.YearBudgets))
	}
	if err := ip.ValidateConfiguration(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &config, nil
}

// ValidateConfiguration checks a roadmap document before it reaches the engine
func (ip *InputParser) ValidateConfiguration(config *domain.Configuration) error {
	if err := ip.validateRoadmap(&config.Roadmap); err != nil {
		return fmt.Errorf("roadmap: %w", err)
	}
	if err := config.Interventions.CheckUniqueIDs(); err != nil {
		return err
	}
	for i := range config.Interventions {
		iv := &config.Interventions[i]
		if err := ip.ValidateIntervention(iv); err != nil {
			return fmt.Errorf("intervention %d (%s): %w", iv.ID, iv.Name, err)
		}
	}
	return nil
}

func (ip *InputParser) validateRoadmap(r *domain.Roadmap) error {
	if r.StartDate.IsZero() {
		return fmt.Errorf("start date is required")
	}
	if r.YearlyBudget.IsNegative() {
		return fmt.Errorf("yearly budget cannot be negative")
	}
	if len(r.YearBudgets) > 3 {
		return fmt.Errorf("at most 3 year budgets may be given, got %d", len(r.YearBudgets))
	}
	for k, b := range r.YearBudgets {
		if b.IsNegative() {
			return fmt.Errorf("budget for year %d cannot be negative", k+1)
		}
	}
	return nil
}

// ValidateIntervention checks a single intervention record
func (ip *InputParser) ValidateIntervention(iv *domain.Intervention) error {
	if iv.ID <= 0 {
		return fmt.Errorf("id must be positive")
	}
	if iv.Name == "" {
		return fmt.Errorf("name is required")
	}

	tl := iv.Timeline
	if tl.ImplementationStartDate.IsZero() || tl.ImplementationEndDate.IsZero() {
		return fmt.Errorf("implementation dates are required")
	}
	if tl.OngoingStartDate.IsZero() || tl.OngoingEndDate.IsZero() {
		return fmt.Errorf("ongoing dates are required")
	}
	if dateutil.Before(tl.ImplementationEndDate, tl.ImplementationStartDate) {
		return fmt.Errorf("implementation end date (%s) cannot be before start date (%s)",
			dateutil.Format(tl.ImplementationEndDate), dateutil.Format(tl.ImplementationStartDate))
	}
	if dateutil.Before(tl.OngoingEndDate, tl.OngoingStartDate) {
		return fmt.Errorf("ongoing end date (%s) cannot be before start date (%s)",
			dateutil.Format(tl.OngoingEndDate), dateutil.Format(tl.OngoingStartDate))
	}

	if iv.Costs.ImplementationCost.IsNegative() {
		return fmt.Errorf("implementation cost cannot be negative")
	}
	if iv.Costs.OngoingCostPEPM.IsNegative() {
		return fmt.Errorf("ongoing PEPM cost cannot be negative")
	}
	if iv.Costs.OngoingCostFixed.IsNegative() {
		return fmt.Errorf("ongoing fixed cost cannot be negative")
	}
	if iv.Costs.OneTimeFixedFee.IsNegative() {
		return fmt.Errorf("one-time fixed fee cannot be negative")
	}
	if iv.EligibleEmployees != nil && *iv.EligibleEmployees < 0 {
		return fmt.Errorf("eligible employees cannot be negative")
	}
	return nil
}

// SaveConfiguration writes a roadmap document as YAML
func (ip *InputParser) SaveConfiguration(config *domain.Configuration, filename string) error {
	data, err := ip.Marshal(config)
	if err != nil {
		return err
	}
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", filename, err)
	}
	return nil
}

// Marshal renders a roadmap document as YAML
func (ip *InputParser) Marshal(config *domain.Configuration) ([]byte, error) {
	data, err := yaml.Marshal(config)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal configuration: %w", err)
	}
	return data, nil
}

// CreateExampleConfiguration returns the two-program demo roadmap
func (ip *InputParser) CreateExampleConfiguration() *domain.Configuration {
	return &domain.Configuration{
		Roadmap: domain.Roadmap{
			StartDate:    dateutil.Date(2025, 3, 13),
			YearlyBudget: DefaultYearlyBudget,
		},
		Interventions: domain.InterventionSet{
			{
				ID:          1,
				Name:        "Mental Health Platform",
				Description: "Digital mental health support with on-demand counselling",
				Timeline: domain.InterventionTimeline{
					ImplementationStartDate: dateutil.Date(2025, 8, 1),
					ImplementationEndDate:   dateutil.Date(2025, 10, 31),
					OngoingStartDate:        dateutil.Date(2025, 9, 1),
					OngoingEndDate:          dateutil.Date(2027, 3, 12),
				},
				Costs: domain.CostBreakdown{
					ImplementationCost: decimal.NewFromInt(120000),
					OngoingCostPEPM:    decimal.RequireFromString("2.45"),
					OngoingCostFixed:   decimal.NewFromInt(10000),
					OneTimeFixedFee:    decimal.NewFromInt(1500),
				},
				EligibleEmployees: domain.IntPtr(500),
			},
			{
				ID:          2,
				Name:        "Physical Wellness Program",
				Description: "Gym memberships and virtual fitness classes",
				Timeline: domain.InterventionTimeline{
					ImplementationStartDate: dateutil.Date(2026, 4, 1),
					ImplementationEndDate:   dateutil.Date(2026, 5, 31),
					OngoingStartDate:        dateutil.Date(2026, 6, 1),
					OngoingEndDate:          dateutil.Date(2028, 3, 12),
				},
				Costs: domain.CostBreakdown{
					ImplementationCost: decimal.Zero,
					OngoingCostPEPM:    decimal.RequireFromString("3.33"),
					OngoingCostFixed:   decimal.Zero,
					OneTimeFixedFee:    decimal.NewFromInt(10000),
				},
				EligibleEmployees: domain.IntPtr(500),
			},
		},
	}
}
