package transform

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// TemplateRegistry manages built-in roadmap templates
type TemplateRegistry struct {
	templates map[string]Template
}

// Template represents a named collection of transforms
type Template struct {
	Name        string
	Description string
	Transforms  []RoadmapTransform
}

// NewTemplateRegistry creates an empty template registry
func NewTemplateRegistry() *TemplateRegistry {
	return &TemplateRegistry{
		templates: make(map[string]Template),
	}
}

// Register adds a template to the registry
func (tr *TemplateRegistry) Register(t Template) {
	tr.templates[strings.ToLower(t.Name)] = t
}

// Get retrieves a template by name (case-insensitive)
func (tr *TemplateRegistry) Get(name string) (Template, bool) {
	t, ok := tr.templates[strings.ToLower(name)]
	return t, ok
}

// List returns all registered template names in alphabetical order
func (tr *TemplateRegistry) List() []string {
	names := make([]string, 0, len(tr.templates))
	for name := range tr.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CreateBuiltInTemplates creates a template registry with common what-if roadmaps
func CreateBuiltInTemplates() *TemplateRegistry {
	registry := NewTemplateRegistry()

	registry.Register(Template{
		Name:        "delay_3mo",
		Description: "Delay every intervention by 3 months",
		Transforms:  []RoadmapTransform{&ShiftAllInterventions{Months: 3}},
	})
	registry.Register(Template{
		Name:        "delay_6mo",
		Description: "Delay every intervention by 6 months",
		Transforms:  []RoadmapTransform{&ShiftAllInterventions{Months: 6}},
	})
	registry.Register(Template{
		Name:        "accelerate_3mo",
		Description: "Bring every intervention forward by 3 months",
		Transforms:  []RoadmapTransform{&ShiftAllInterventions{Months: -3}},
	})
	registry.Register(Template{
		Name:        "budget_cut_10pct",
		Description: "Reduce the yearly budget by 10%",
		Transforms:  []RoadmapTransform{&ScaleBudget{Percent: decimal.NewFromInt(-10)}},
	})
	registry.Register(Template{
		Name:        "budget_plus_10pct",
		Description: "Increase the yearly budget by 10%",
		Transforms:  []RoadmapTransform{&ScaleBudget{Percent: decimal.NewFromInt(10)}},
	})
	registry.Register(Template{
		Name:        "start_6mo_later",
		Description: "Start the roadmap 6 months later, interventions unchanged",
		Transforms:  []RoadmapTransform{&ShiftRoadmapStart{Months: 6}},
	})

	return registry
}
