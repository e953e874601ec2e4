package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgehrsitz/roadmap/internal/config"
	"github.com/rgehrsitz/roadmap/internal/domain"
)

const exampleFile = "../../testdata/example_roadmap.yaml"

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRootCommand(t *testing.T) {
	cmd := rootCmd
	require.NotNil(t, cmd)
	assert.Equal(t, "roadmap", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)

	for _, name := range []string{"calculate", "validate", "example", "version", "year", "allocate", "catalog", "compare", "sensitivity", "fit", "simulate", "serve"} {
		sub, _, err := cmd.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, sub.Name())
	}
}

func TestRootCommand_Help(t *testing.T) {
	out, err := run(t, "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "three financial year roadmap")
	assert.Contains(t, out, "calculate")
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "roadmap dev")
}

func TestCalculateCommand(t *testing.T) {
	out, err := run(t, "calculate", exampleFile)
	require.NoError(t, err)
	assert.Contains(t, out, "Mental Health Platform")
	assert.Contains(t, out, "$140,075")
	assert.Contains(t, out, "$211,405")
}

func TestCalculateCommand_Overrides(t *testing.T) {
	t.Run("later start moves costs", func(t *testing.T) {
		out, err := run(t, "calculate", exampleFile, "--start", "2025-08-01", "--format", "csv")
		require.NoError(t, err)
		assert.NotContains(t, out, "140075")
	})

	t.Run("invalid budget", func(t *testing.T) {
		_, err := run(t, "calculate", exampleFile, "--budget", "lots")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid --budget")
	})

	t.Run("negative budget rejected unless lenient", func(t *testing.T) {
		_, err := run(t, "calculate", exampleFile, "--budget=-1")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "yearly budget cannot be negative")

		_, err = run(t, "calculate", exampleFile, "--budget=-1", "--lenient")
		assert.NoError(t, err)
	})

	t.Run("unknown format", func(t *testing.T) {
		_, err := run(t, "calculate", exampleFile, "--format", "pdf")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown output format")
	})
}

func TestCalculateCommand_Expand(t *testing.T) {
	out, err := run(t, "calculate", exampleFile, "--expand")
	require.NoError(t, err)
	assert.Contains(t, out, "Ongoing Cost (PEPM)")
}

func TestValidateCommand(t *testing.T) {
	out, err := run(t, "validate", exampleFile)
	require.NoError(t, err)
	assert.Contains(t, out, "is valid (2 interventions)")

	_, err = run(t, "validate", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestExampleCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "example.yaml")
	out, err := run(t, "example", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Example roadmap written to")

	out, err = run(t, "validate", path)
	require.NoError(t, err)
	assert.Contains(t, out, "is valid (2 interventions)")

	out, err = run(t, "example")
	require.NoError(t, err)
	assert.Contains(t, out, "Physical Wellness Program")
}

func TestYearCommand(t *testing.T) {
	out, err := run(t, "year", "--start", "2025-03-13", "2026-03-12", "2026-03-13", "2028-03-13")
	require.NoError(t, err)
	assert.Contains(t, out, "2026-03-12 falls in Year 1 (2025-03-13 to 2026-03-12)")
	assert.Contains(t, out, "2026-03-13 falls in Year 2 (2026-03-13 to 2027-03-12)")
	assert.Contains(t, out, "2028-03-13 is outside the roadmap")

	out, err = run(t, "year", "--start", "2025-03-13")
	require.NoError(t, err)
	assert.Contains(t, out, "Year 3")
	assert.Contains(t, out, "2028-03-12")

	_, err = run(t, "year")
	assert.Error(t, err, "--start is required")
}

func TestAllocateCommand(t *testing.T) {
	out, err := run(t, "allocate", exampleFile, "--id", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "Physical Wellness Program (id 2)")
	assert.Contains(t, out, "$26,650")
	assert.Contains(t, out, "$19,980")
	assert.Contains(t, out, "$46,630")

	_, err = run(t, "allocate", exampleFile, "--id", "9")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInterventionNotFound)
}

func TestCatalogCommand(t *testing.T) {
	out, err := run(t, "catalog")
	require.NoError(t, err)
	assert.Contains(t, out, "Telemedicine")
	assert.Contains(t, out, "Work-Life Balance")

	out, err = run(t, "catalog", "--select", "3, 1", "--start", "2025-03-13", "--budget", "250000")
	require.NoError(t, err)
	cfg, err := (&config.InputParser{Lenient: true}).Parse([]byte(out))
	require.NoError(t, err)
	require.Len(t, cfg.Interventions, 2)
	assert.Equal(t, "Mental Health Support", cfg.Interventions[0].Name)
	assert.Equal(t, "Telemedicine", cfg.Interventions[1].Name)
	assert.Equal(t, "250000", cfg.Roadmap.YearlyBudget.String())

	_, err = run(t, "catalog", "--select", "99", "--start", "2025-03-13")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "catalog entry 99 does not exist")

	_, err = run(t, "catalog", "--select", "one", "--start", "2025-03-13")
	assert.Error(t, err)
}

func TestCompareCommand(t *testing.T) {
	out, err := run(t, "compare", exampleFile, "--with", "delay_3mo,budget_cut_10pct")
	require.NoError(t, err)
	assert.Contains(t, out, "ROADMAP SCENARIO COMPARISON")
	assert.Contains(t, out, "delay_3mo")
	assert.Contains(t, out, "budget_cut_10pct")

	out, err = run(t, "compare", exampleFile, "--transform", "set_budget:amount=100000", "--format", "compact")
	require.NoError(t, err)
	assert.Contains(t, out, "Base: base")

	out, err = run(t, "compare", exampleFile, "--with", "delay_6mo", "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, out, "delay_6mo")
}

func TestCompareCommand_Errors(t *testing.T) {
	_, err := run(t, "compare")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "input file required")

	_, err = run(t, "compare", exampleFile)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--with or --transform is required")

	_, err = run(t, "compare", exampleFile, "--with", "nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "template nope not found")

	_, err = run(t, "compare", exampleFile, "--with", "delay_3mo", "--format", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown output format")
}

func TestCompareCommand_ListTemplates(t *testing.T) {
	out, err := run(t, "compare", "--list-templates")
	require.NoError(t, err)
	assert.Contains(t, out, "budget_cut_10pct")
	assert.Contains(t, out, "shift_all")
}

func TestFitCommand(t *testing.T) {
	out, err := run(t, "fit", exampleFile)
	require.NoError(t, err)
	assert.Contains(t, out, "BUDGET BREAK-EVEN RESULTS")
	assert.Contains(t, out, "$140,075")

	out, err = run(t, "fit", exampleFile, "--id", "2", "--target", "headcount")
	require.NoError(t, err)
	assert.Contains(t, out, "Eligible Employees:  12512")

	out, err = run(t, "fit", exampleFile, "--id", "2", "--target", "headcount", "--max", "800")
	require.NoError(t, err)
	assert.Contains(t, out, "Eligible Employees:  800")

	out, err = run(t, "fit", exampleFile, "--id", "2", "--target", "pepm", "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"optimal_pepm": "83.33"`)

	out, err = run(t, "fit", exampleFile, "--id", "2", "--target", "all")
	require.NoError(t, err)
	assert.Contains(t, out, "BUDGET BREAK-EVEN SUMMARY")
	assert.Contains(t, out, "RECOMMENDATIONS")
}

func TestFitCommand_Errors(t *testing.T) {
	_, err := run(t, "fit")
	assert.Error(t, err)

	_, err = run(t, "fit", exampleFile, "--target", "salary")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported optimization target")

	_, err = run(t, "fit", exampleFile, "--id", "9", "--target", "pepm")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInterventionNotFound)

	_, err = run(t, "fit", exampleFile, "--target", "budget", "--max", "10")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not supported for the budget target")

	_, err = run(t, "fit", exampleFile, "--id", "2", "--target", "headcount", "--min", "900", "--max", "10")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "min_headcount cannot be greater")

	_, err = run(t, "fit", exampleFile, "--format", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown output format")
}

func TestSimulateCommand(t *testing.T) {
	out, err := run(t, "simulate", exampleFile, "--runs", "20", "--seed", "1", "--pepm-sd", "0", "--headcount-sd", "0", "--max-slip", "0")
	require.NoError(t, err)
	assert.Contains(t, out, "BUDGET RISK SIMULATION")
	assert.Contains(t, out, "Every year within budget: 100.0% of runs")
	assert.Contains(t, out, "$140,075")
	assert.Contains(t, out, "20 simulations")

	out, err = run(t, "simulate", exampleFile, "--runs", "10", "--seed", "3", "--budget", "100000", "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"fitRate": "0"`)
	assert.NotContains(t, out, `"simulationId"`)

	out, err = run(t, "simulate", exampleFile, "--runs", "2", "--seed", "3", "--format", "json", "--include-runs")
	require.NoError(t, err)
	assert.Contains(t, out, `"simulationId"`)
}

func TestSimulateCommand_Errors(t *testing.T) {
	_, err := run(t, "simulate", exampleFile, "--runs", "0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be positive")

	_, err = run(t, "simulate", exampleFile, "--pepm-sd", "-1")
	assert.Error(t, err)

	_, err = run(t, "simulate", exampleFile, "--format", "xml")
	assert.Error(t, err)
}

func TestSensitivityCommand(t *testing.T) {
	out, err := run(t, "sensitivity", exampleFile, "--sweep", "pepm:id=2,min=0,max=100")
	require.NoError(t, err)
	assert.Contains(t, out, "ROADMAP SENSITIVITY ANALYSIS")
	assert.Contains(t, out, "Risk level: MEDIUM")

	out, err = run(t, "sensitivity", exampleFile, "--sweep", "budget:min=100000,max=200000,steps=3", "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"minFitting": "150000"`)

	_, err = run(t, "sensitivity", exampleFile)
	assert.Error(t, err)

	_, err = run(t, "sensitivity", exampleFile, "--sweep", "salary:min=1,max=2")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid --sweep")

	_, err = run(t, "sensitivity", exampleFile, "--sweep", "pepm:id=9,min=1,max=2")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInterventionNotFound)
}
