package transform

import (
	"fmt"

	"github.com/rgehrsitz/roadmap/internal/domain"
)

// RoadmapTransform defines the interface for all roadmap transformations.
// Transforms are composable what-if edits used by roadmap comparison and the interactive viewer.
type RoadmapTransform interface {
	// Apply returns a modified copy of base; base itself is never changed.
	Apply(base *domain.Configuration) (*domain.Configuration, error)

	// Name returns a short identifier for this transform (e.g., "shift_intervention").
	Name() string

	// Description returns a human-readable description of what this transform does.
	Description() string

	// Validate checks the transform parameters against base without applying it.
	Validate(base *domain.Configuration) error
}

// ApplyTransforms applies a sequence of transforms to a base roadmap.
// Each transform receives the output of the previous one.
func ApplyTransforms(base *domain.Configuration, transforms []RoadmapTransform) (*domain.Configuration, error) {
	if base == nil {
		return nil, fmt.Errorf("base roadmap cannot be nil")
	}

	if len(transforms) == 0 {
		return base.DeepCopy(), nil
	}

	current := base
	for i, transform := range transforms {
		if transform == nil {
			return nil, fmt.Errorf("transform at index %d is nil", i)
		}

		if err := transform.Validate(current); err != nil {
			return nil, fmt.Errorf("transform %s validation failed: %w", transform.Name(), err)
		}

		next, err := transform.Apply(current)
		if err != nil {
			return nil, fmt.Errorf("transform %s failed: %w", transform.Name(), err)
		}
		current = next
	}

	return current, nil
}

// Describe joins the descriptions of a transform sequence
func Describe(transforms []RoadmapTransform) string {
	out := ""
	for i, t := range transforms {
		if i > 0 {
			out += "; "
		}
		out += t.Description()
	}
	return out
}

// TransformError represents an error that occurred during transformation.
type TransformError struct {
	TransformName string
	Operation     string
	Reason        string
	Err           error
}

func (e *TransformError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("transform %s (%s): %s: %v", e.TransformName, e.Operation, e.Reason, e.Err)
	}
	return fmt.Sprintf("transform %s (%s): %s", e.TransformName, e.Operation, e.Reason)
}

func (e *TransformError) Unwrap() error {
	return e.Err
}

// NewTransformError creates a new TransformError.
func NewTransformError(transformName, operation, reason string, err error) error {
	return &TransformError{
		TransformName: transformName,
		Operation:     operation,
		Reason:        reason,
		Err:           err,
	}
}

func requireIntervention(name string, base *domain.Configuration, id int) error {
	if base == nil {
		return NewTransformError(name, "validate", "base roadmap cannot be nil", nil)
	}
	if _, ok := base.Interventions.Find(id); !ok {
		return NewTransformError(name, "validate", fmt.Sprintf("intervention %d not found", id), domain.ErrInterventionNotFound)
	}
	return nil
}

// replaceIntervention copies base and swaps in edit(iv) for the intervention with id
func replaceIntervention(base *domain.Configuration, id int, edit func(iv domain.Intervention) domain.Intervention) (*domain.Configuration, error) {
	modified := base.DeepCopy()
	iv, ok := modified.Interventions.Find(id)
	if !ok {
		return nil, fmt.Errorf("intervention %d: %w", id, domain.ErrInterventionNotFound)
	}
	updated, err := modified.Interventions.ReplaceByID(edit(iv))
	if err != nil {
		return nil, err
	}
	modified.Interventions = updated
	return modified, nil
}
