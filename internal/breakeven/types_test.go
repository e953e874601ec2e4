package breakeven

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestDefaultConstraints(t *testing.T) {
	c := DefaultConstraints(2)

	if c.InterventionID != 2 {
		t.Errorf("Expected intervention 2, got %d", c.InterventionID)
	}

	if c.MinHeadcount == nil || *c.MinHeadcount != 0 {
		t.Errorf("Expected MinHeadcount 0, got %v", c.MinHeadcount)
	}
	if c.MaxHeadcount == nil || *c.MaxHeadcount != 100000 {
		t.Errorf("Expected MaxHeadcount 100000, got %v", c.MaxHeadcount)
	}

	if c.MaxPEPM == nil {
		t.Fatal("Expected MaxPEPM to be set")
	}
	if !c.MaxPEPM.Equal(decimal.NewFromInt(100)) {
		t.Errorf("Expected MaxPEPM 100, got %s", c.MaxPEPM.String())
	}

	if c.MaxDelayMonths == nil || *c.MaxDelayMonths != 36 {
		t.Errorf("Expected MaxDelayMonths 36, got %v", c.MaxDelayMonths)
	}

	if err := c.Validate(); err != nil {
		t.Errorf("Expected default constraints to be valid, got %v", err)
	}
}

func TestConstraints_Validate(t *testing.T) {
	intPtr := func(v int) *int { return &v }
	decPtr := func(s string) *decimal.Decimal { d := decimal.RequireFromString(s); return &d }

	tests := []struct {
		name string
		c    Constraints
	}{
		{"negative intervention", Constraints{InterventionID: -1}},
		{"negative min headcount", Constraints{MinHeadcount: intPtr(-5)}},
		{"inverted headcount range", Constraints{MinHeadcount: intPtr(10), MaxHeadcount: intPtr(5)}},
		{"negative min pepm", Constraints{MinPEPM: decPtr("-1")}},
		{"inverted pepm range", Constraints{MinPEPM: decPtr("10"), MaxPEPM: decPtr("2.5")}},
		{"negative delay", Constraints{MaxDelayMonths: intPtr(-1)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.c.Validate()
			if err == nil {
				t.Fatal("Expected validation error")
			}
			var bee *BreakEvenError
			if !errors.As(err, &bee) {
				t.Errorf("Expected BreakEvenError, got %T", err)
			}
		})
	}
}

func TestConstraints_Validate_Unbounded(t *testing.T) {
	c := Constraints{InterventionID: 1}
	if err := c.Validate(); err != nil {
		t.Errorf("Expected constraints without bounds to be valid, got %v", err)
	}
}

func TestDefaultSolverOptions(t *testing.T) {
	opts := DefaultSolverOptions()

	if !opts.Tolerance.Equal(decimal.RequireFromString("0.01")) {
		t.Errorf("Expected tolerance 0.01, got %s", opts.Tolerance.String())
	}
	if opts.MaxIterations <= 0 {
		t.Errorf("Expected positive max iterations, got %d", opts.MaxIterations)
	}
}

func TestBreakEvenError(t *testing.T) {
	cause := errors.New("boom")
	err := &BreakEvenError{Operation: "optimize_pepm", Message: "failed to evaluate roadmap", Cause: cause}

	if got := err.Error(); got != "optimize_pepm: failed to evaluate roadmap: boom" {
		t.Errorf("Unexpected error message: %s", got)
	}
	if !errors.Is(err, cause) {
		t.Error("Expected error to unwrap to its cause")
	}

	plain := &BreakEvenError{Operation: "optimize", Message: "bad target"}
	if got := plain.Error(); got != "optimize: bad target" {
		t.Errorf("Unexpected error message: %s", got)
	}
}

func TestTargets(t *testing.T) {
	targets := Targets()
	if len(targets) != 4 {
		t.Fatalf("Expected 4 targets, got %d", len(targets))
	}
	for _, target := range targets {
		if target == OptimizeAll {
			t.Error("Targets should not include the all target")
		}
	}
}
