package transform

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/rgehrsitz/roadmap/pkg/dateutil"
	"github.com/shopspring/decimal"
)

// TransformRegistry provides a central registry for all available transforms.
// It enables creation of transforms from string parameters, useful for CLI commands.
type TransformRegistry struct {
	factories map[string]TransformFactory
}

// TransformFactory is a function that creates a transform from parameters.
type TransformFactory func(params map[string]string) (RoadmapTransform, error)

// NewTransformRegistry creates a new registry with all built-in transforms registered.
func NewTransformRegistry() *TransformRegistry {
	registry := &TransformRegistry{
		factories: make(map[string]TransformFactory),
	}

	registry.Register("shift_intervention", createShiftIntervention)
	registry.Register("shift_all", createShiftAll)
	registry.Register("set_cost", createSetCost)
	registry.Register("set_headcount", createSetHeadcount)
	registry.Register("remove_intervention", createRemoveIntervention)
	registry.Register("add_catalog", createAddCatalog)

	registry.Register("set_budget", createSetBudget)
	registry.Register("adjust_budget", createAdjustBudget)
	registry.Register("scale_budget", createScaleBudget)
	registry.Register("set_year_budget", createSetYearBudget)
	registry.Register("shift_start", createShiftStart)

	return registry
}

// Register adds a transform factory to the registry.
func (r *TransformRegistry) Register(name string, factory TransformFactory) {
	r.factories[name] = factory
}

// Create creates a transform by name with the given parameters.
func (r *TransformRegistry) Create(name string, params map[string]string) (RoadmapTransform, error) {
	factory, exists := r.factories[name]
	if !exists {
		return nil, fmt.Errorf("unknown transform: %s", name)
	}

	return factory(params)
}

// List returns the names of all registered transforms in alphabetical order.
func (r *TransformRegistry) List() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseTransformSpec parses a transform specification string.
// Format: "transform_name:param1=value1,param2=value2"
// Example: "shift_intervention:id=2,months=-3"
func (r *TransformRegistry) ParseTransformSpec(spec string) (RoadmapTransform, error) {
	parts := strings.SplitN(spec, ":", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid transform spec format, expected 'name:params', got: %s", spec)
	}

	name := strings.TrimSpace(parts[0])
	paramsStr := strings.TrimSpace(parts[1])

	params := make(map[string]string)
	if paramsStr != "" {
		for _, paramPair := range strings.Split(paramsStr, ",") {
			kv := strings.SplitN(paramPair, "=", 2)
			if len(kv) != 2 {
				return nil, fmt.Errorf("invalid parameter format, expected 'key=value', got: %s", paramPair)
			}
			params[strings.TrimSpace(kv[0])] = strings.TrimSpace(kv[1])
		}
	}

	return r.Create(name, params)
}

// ParseTransformSpecs parses several specs in order
func (r *TransformRegistry) ParseTransformSpecs(specs []string) ([]RoadmapTransform, error) {
	out := make([]RoadmapTransform, 0, len(specs))
	for _, spec := range specs {
		t, err := r.ParseTransformSpec(spec)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

// Factory functions for each transform

func intParam(transform string, params map[string]string, key string) (int, error) {
	raw, ok := params[key]
	if !ok {
		return 0, fmt.Errorf("%s requires '%s' parameter", transform, key)
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return v, nil
}

func decimalParam(transform string, params map[string]string, key string) (decimal.Decimal, error) {
	raw, ok := params[key]
	if !ok {
		return decimal.Zero, fmt.Errorf("%s requires '%s' parameter", transform, key)
	}
	v, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return v, nil
}

func createShiftIntervention(params map[string]string) (RoadmapTransform, error) {
	id, err := intParam("shift_intervention", params, "id")
	if err != nil {
		return nil, err
	}
	months, err := intParam("shift_intervention", params, "months")
	if err != nil {
		return nil, err
	}
	return &ShiftIntervention{ID: id, Months: months}, nil
}

func createShiftAll(params map[string]string) (RoadmapTransform, error) {
	months, err := intParam("shift_all", params, "months")
	if err != nil {
		return nil, err
	}
	return &ShiftAllInterventions{Months: months}, nil
}

func createSetCost(params map[string]string) (RoadmapTransform, error) {
	id, err := intParam("set_cost", params, "id")
	if err != nil {
		return nil, err
	}
	component, ok := params["component"]
	if !ok {
		return nil, fmt.Errorf("set_cost requires 'component' parameter")
	}
	amount, err := decimalParam("set_cost", params, "amount")
	if err != nil {
		return nil, err
	}
	return &SetCost{ID: id, Component: component, Amount: amount}, nil
}

func createSetHeadcount(params map[string]string) (RoadmapTransform, error) {
	id, err := intParam("set_headcount", params, "id")
	if err != nil {
		return nil, err
	}
	employees, err := intParam("set_headcount", params, "employees")
	if err != nil {
		return nil, err
	}
	return &SetHeadcount{ID: id, Employees: employees}, nil
}

func createRemoveIntervention(params map[string]string) (RoadmapTransform, error) {
	id, err := intParam("remove_intervention", params, "id")
	if err != nil {
		return nil, err
	}
	return &RemoveIntervention{ID: id}, nil
}

func createAddCatalog(params map[string]string) (RoadmapTransform, error) {
	id, err := intParam("add_catalog", params, "id")
	if err != nil {
		return nil, err
	}
	t := &AddCatalogEntry{CatalogID: id}
	if raw, ok := params["start"]; ok {
		start, err := dateutil.Parse(raw)
		if err != nil {
			return nil, err
		}
		t.Start = start
	}
	return t, nil
}

func createSetBudget(params map[string]string) (RoadmapTransform, error) {
	amount, err := decimalParam("set_budget", params, "amount")
	if err != nil {
		return nil, err
	}
	return &SetYearlyBudget{Amount: amount}, nil
}

func createAdjustBudget(params map[string]string) (RoadmapTransform, error) {
	delta, err := decimalParam("adjust_budget", params, "delta")
	if err != nil {
		return nil, err
	}
	return &AdjustBudget{Delta: delta}, nil
}

func createScaleBudget(params map[string]string) (RoadmapTransform, error) {
	pct, err := decimalParam("scale_budget", params, "percent")
	if err != nil {
		return nil, err
	}
	return &ScaleBudget{Percent: pct}, nil
}

func createSetYearBudget(params map[string]string) (RoadmapTransform, error) {
	year, err := intParam("set_year_budget", params, "year")
	if err != nil {
		return nil, err
	}
	amount, err := decimalParam("set_year_budget", params, "amount")
	if err != nil {
		return nil, err
	}
	return &SetYearBudget{Year: year - 1, Amount: amount}, nil
}

func createShiftStart(params map[string]string) (RoadmapTransform, error) {
	months, err := intParam("shift_start", params, "months")
	if err != nil {
		return nil, err
	}
	return &ShiftRoadmapStart{Months: months}, nil
}
