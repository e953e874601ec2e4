package compare

import (
	"context"
	"fmt"
	"strings"

	"github.com/rgehrsitz/roadmap/internal/calculation"
	"github.com/rgehrsitz/roadmap/internal/domain"
	"github.com/rgehrsitz/roadmap/internal/transform"
)

// DefaultBaseName labels the unmodified roadmap in a comparison
const DefaultBaseName = "base"

// CompareEngine orchestrates roadmap comparison
type CompareEngine struct {
	CalcEngine        *calculation.Engine
	MetricsCalculator *MetricsCalculator
	TemplateRegistry  *transform.TemplateRegistry
	TransformRegistry *transform.TransformRegistry
}

// NewCompareEngine creates a new comparison engine
func NewCompareEngine(calcEngine *calculation.Engine) *CompareEngine {
	if calcEngine == nil {
		calcEngine = calculation.NewEngine()
	}
	return &CompareEngine{
		CalcEngine:        calcEngine,
		MetricsCalculator: NewMetricsCalculator(),
		TemplateRegistry:  transform.CreateBuiltInTemplates(),
		TransformRegistry: transform.NewTransformRegistry(),
	}
}

// CompareOptions configures comparison behavior
type CompareOptions struct {
	BaseName  string   // Label for the unmodified roadmap
	Templates []string // Built-in template names, one variant each
	// Transforms holds ad-hoc variants. Each entry is one variant made of
	// transform specs separated by ';', e.g. "shift_all:months=3;set_budget:amount=400000".
	Transforms []string
}

type variant struct {
	name        string
	description string
	cfg         *domain.Configuration
}

// Compare evaluates the base roadmap and every requested variant concurrently
func (ce *CompareEngine) Compare(
	ctx context.Context,
	config *domain.Configuration,
	options CompareOptions,
) (*ComparisonSet, error) {
	if config == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}

	baseName := options.BaseName
	if baseName == "" {
		baseName = DefaultBaseName
	}

	variants, err := ce.buildVariants(config, options)
	if err != nil {
		return nil, err
	}

	cfgs := make([]*domain.Configuration, 0, len(variants)+1)
	cfgs = append(cfgs, config)
	for _, v := range variants {
		cfgs = append(cfgs, v.cfg)
	}

	reports, err := ce.CalcEngine.EvaluateAll(ctx, cfgs)
	if err != nil {
		return nil, fmt.Errorf("failed to evaluate roadmaps: %w", err)
	}

	baseResult := ce.MetricsCalculator.CalculateMetrics(baseName, reports[0])
	baseResult.Description = "Roadmap as configured"

	alternatives := make([]ComparisonResult, 0, len(variants))
	for i, v := range variants {
		altResult := ce.MetricsCalculator.CalculateMetrics(v.name, reports[i+1])
		altResult.Description = v.description
		altResult = ce.MetricsCalculator.CalculateComparison(altResult, baseResult)
		alternatives = append(alternatives, altResult)
	}

	compSet := &ComparisonSet{
		BaseScenarioName:   baseName,
		BaseResult:         &baseResult,
		AlternativeResults: alternatives,
	}
	compSet.Recommendations = GenerateRecommendations(compSet)

	return compSet, nil
}

func (ce *CompareEngine) buildVariants(config *domain.Configuration, options CompareOptions) ([]variant, error) {
	variants := make([]variant, 0, len(options.Templates)+len(options.Transforms))

	for _, templateName := range options.Templates {
		template, ok := ce.TemplateRegistry.Get(templateName)
		if !ok {
			return nil, fmt.Errorf("template %s not found (available: %s)", templateName, strings.Join(ce.TemplateRegistry.List(), ", "))
		}
		modified, err := transform.ApplyTransforms(config, template.Transforms)
		if err != nil {
			return nil, fmt.Errorf("failed to apply template %s: %w", templateName, err)
		}
		variants = append(variants, variant{name: template.Name, description: template.Description, cfg: modified})
	}

	for _, raw := range options.Transforms {
		specs := strings.Split(raw, ";")
		transforms, err := ce.TransformRegistry.ParseTransformSpecs(specs)
		if err != nil {
			return nil, fmt.Errorf("failed to parse variant %q: %w", raw, err)
		}
		modified, err := transform.ApplyTransforms(config, transforms)
		if err != nil {
			return nil, fmt.Errorf("failed to apply variant %q: %w", raw, err)
		}
		variants = append(variants, variant{name: raw, description: transform.Describe(transforms), cfg: modified})
	}

	return variants, nil
}
