package integration

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgehrsitz/roadmap/internal/calculation"
	"github.com/rgehrsitz/roadmap/internal/config"
	"github.com/rgehrsitz/roadmap/internal/domain"
	"github.com/rgehrsitz/roadmap/internal/output"
	"github.com/rgehrsitz/roadmap/internal/transform"
	"github.com/rgehrsitz/roadmap/pkg/dateutil"
)

// setupTestEnvironment points the process settings at test values
func setupTestEnvironment(t *testing.T) {
	t.Helper()
	t.Setenv("ROADMAP_PORT", "18080")
	t.Setenv("ROADMAP_DEBUG", "false")
	t.Setenv("ROADMAP_CACHE_SIZE", "64")
}

// TestIntegrationSmokeTest runs a quick smoke test of core functionality
func TestIntegrationSmokeTest(t *testing.T) {
	setupTestEnvironment(t)

	t.Run("settings_from_environment", func(t *testing.T) {
		s, err := config.LoadSettings(config.NewViper())
		require.NoError(t, err)
		assert.Equal(t, 18080, s.Port)
		assert.Equal(t, 64, s.CacheSize)
		assert.True(t, config.DefaultYearlyBudget.Equal(s.DefaultBudget))
	})

	t.Run("basic_calculation", func(t *testing.T) {
		s, err := config.LoadSettings(config.NewViper())
		require.NoError(t, err)

		engine := calculation.NewCachedEngine(s.CacheSize)
		report, err := engine.Evaluate(loadExample(t))
		require.NoError(t, err)
		require.Len(t, report.CostTable.Rows, 2)
		assert.Len(t, report.Timeline, 2)
	})
}

// TestIntegrationRegression tests for regression issues
func TestIntegrationRegression(t *testing.T) {
	setupTestEnvironment(t)

	t.Run("cached_matches_uncached", func(t *testing.T) {
		cfg := loadExample(t)
		plain, err := calculation.NewEngine().Evaluate(cfg)
		require.NoError(t, err)

		cached := calculation.NewCachedEngine(calculation.DefaultCacheSize)
		for i := 0; i < 3; i++ {
			report, err := cached.Evaluate(cfg)
			require.NoError(t, err)
			for k := range report.CostTable.YearTotals {
				assert.True(t, plain.CostTable.YearTotals[k].Total.Equal(report.CostTable.YearTotals[k].Total), "run %d year %d", i, k+1)
			}
		}
		hits, _ := cached.CacheStats()
		assert.Positive(t, hits)
	})

	t.Run("evaluation_does_not_mutate_input", func(t *testing.T) {
		cfg := loadExample(t)
		before := cfg.DeepCopy()
		_, err := calculation.NewEngine().Evaluate(cfg)
		require.NoError(t, err)
		assert.Equal(t, before, cfg)
	})

	t.Run("transforms_do_not_mutate_base", func(t *testing.T) {
		cfg := loadExample(t)
		before := cfg.DeepCopy()
		_, err := transform.ApplyTransforms(cfg, []transform.RoadmapTransform{
			&transform.ShiftAllInterventions{Months: 6},
		})
		require.NoError(t, err)
		assert.Equal(t, before, cfg)
	})
}

// TestIntegrationBenchmarks runs performance checks
func TestIntegrationBenchmarks(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping benchmarks in short mode")
	}
	setupTestEnvironment(t)

	t.Run("catalog_sized_roadmap", func(t *testing.T) {
		start := dateutil.Date(2025, 3, 13)
		ids := make([]int, 0, len(domain.Catalog()))
		for _, e := range domain.Catalog() {
			ids = append(ids, e.ID)
		}
		cfg := &domain.Configuration{
			Roadmap:       domain.Roadmap{StartDate: start, YearlyBudget: config.DefaultYearlyBudget},
			Interventions: domain.NewSelection(ids...).Interventions(start),
		}

		began := time.Now()
		report, err := calculation.NewEngine().Evaluate(cfg)
		elapsed := time.Since(began)
		require.NoError(t, err)
		assert.Len(t, report.CostTable.Rows, len(ids))
		assert.Less(t, elapsed, 5*time.Second)
		t.Logf("Evaluated %d interventions in %v", len(ids), elapsed)
	})

	t.Run("concurrent_evaluation", func(t *testing.T) {
		base := loadExample(t)
		cfgs := make([]*domain.Configuration, 0, 24)
		for months := 0; months < 24; months++ {
			cfg, err := transform.ApplyTransforms(base, []transform.RoadmapTransform{
				&transform.ShiftAllInterventions{Months: months},
			})
			require.NoError(t, err)
			cfgs = append(cfgs, cfg)
		}

		reports, err := calculation.NewCachedEngine(calculation.DefaultCacheSize).EvaluateAll(context.Background(), cfgs)
		require.NoError(t, err)
		require.Len(t, reports, len(cfgs))
		assert.True(t, decimal.NewFromInt(211405).Equal(reports[0].CostTable.GrandTotal))
	})
}

// TestIntegrationDataValidation checks report invariants across the system
func TestIntegrationDataValidation(t *testing.T) {
	setupTestEnvironment(t)

	variants := map[string][]transform.RoadmapTransform{
		"as_configured": nil,
		"delayed":       {&transform.ShiftAllInterventions{Months: 9}},
		"late_start":    {&transform.ShiftRoadmapStart{Months: 14}},
	}

	for name, transforms := range variants {
		t.Run(name, func(t *testing.T) {
			cfg, err := transform.ApplyTransforms(loadExample(t), transforms)
			require.NoError(t, err)

			report, err := calculation.NewEngine().Evaluate(cfg)
			require.NoError(t, err)

			// column totals are the sum of the rows
			for k := 0; k < calculation.RoadmapYears; k++ {
				sum := decimal.Zero
				for _, row := range report.CostTable.Rows {
					sum = sum.Add(row.Years[k].Total)
				}
				assert.True(t, sum.Equal(report.CostTable.YearTotals[k].Total), "year %d", k+1)
				assert.True(t, sum.Equal(report.Budgets[k].Spent), "budget year %d", k+1)
			}

			// every row total is the sum of its years and nothing is negative
			grand := decimal.Zero
			for _, row := range report.CostTable.Rows {
				rowSum := decimal.Zero
				for _, y := range row.Years {
					assert.False(t, y.Total.IsNegative())
					rowSum = rowSum.Add(y.Total)
				}
				assert.True(t, rowSum.Equal(row.Total), fmt.Sprintf("row %s", row.Name))
				grand = grand.Add(rowSum)
			}
			assert.True(t, grand.Equal(report.CostTable.GrandTotal))

			// every formatter renders the report
			for _, f := range output.Formatters() {
				_, err := f.Format(report)
				assert.NoError(t, err, f.Name())
			}
		})
	}
}
