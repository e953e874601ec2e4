package compare

import (
	"context"
	"testing"

	"github.com/rgehrsitz/roadmap/internal/calculation"
	"github.com/rgehrsitz/roadmap/internal/config"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompareEngine_BaseOnly(t *testing.T) {
	ce := NewCompareEngine(calculation.NewEngine())
	cfg := config.NewInputParser().CreateExampleConfiguration()

	set, err := ce.Compare(context.Background(), cfg, CompareOptions{})
	require.NoError(t, err)

	require.NotNil(t, set.BaseResult)
	assert.Equal(t, DefaultBaseName, set.BaseScenarioName)
	assert.True(t, decimal.NewFromInt(140075).Equal(set.BaseResult.YearSpend[0]))
	assert.True(t, decimal.NewFromInt(51350).Equal(set.BaseResult.YearSpend[1]))
	assert.True(t, decimal.NewFromInt(19980).Equal(set.BaseResult.YearSpend[2]))
	assert.True(t, decimal.NewFromInt(211405).Equal(set.BaseResult.TotalInvestment))
	assert.True(t, decimal.NewFromInt(1500000).Equal(set.BaseResult.TotalAllocated))
	assert.Empty(t, set.BaseResult.OverBudgetYears)
	assert.Equal(t, 2, set.BaseResult.InterventionCount)
	assert.Empty(t, set.AlternativeResults)
	assert.Empty(t, set.Recommendations)
}

func TestCompareEngine_TemplatesAndTransforms(t *testing.T) {
	ce := NewCompareEngine(nil)
	cfg := config.NewInputParser().CreateExampleConfiguration()

	set, err := ce.Compare(context.Background(), cfg, CompareOptions{
		BaseName:   "current",
		Templates:  []string{"budget_cut_10pct"},
		Transforms: []string{"set_budget:amount=100000", "remove_intervention:id=1; set_budget:amount=600000"},
	})
	require.NoError(t, err)
	require.Len(t, set.AlternativeResults, 3)

	cut := set.AlternativeResults[0]
	assert.Equal(t, "budget_cut_10pct", cut.ScenarioName)
	assert.True(t, cut.TotalDiffFromBase.IsZero(), "a budget change does not move spend")
	assert.True(t, decimal.NewFromInt(1350000).Equal(cut.TotalAllocated))

	tight := set.AlternativeResults[1]
	assert.Equal(t, []int{1}, tight.OverBudgetYears)
	assert.Equal(t, 1, tight.OverBudgetDiff)

	trimmed := set.AlternativeResults[2]
	assert.Equal(t, "Remove intervention 1; Set yearly budget to 600000", trimmed.Description)
	assert.True(t, decimal.NewFromInt(46630).Equal(trimmed.TotalInvestment))
	assert.True(t, decimal.NewFromInt(-164775).Equal(trimmed.TotalDiffFromBase))
	assert.True(t, decimal.NewFromInt(-140075).Equal(trimmed.YearDiffFromBase[0]))

	assert.Contains(t, set.Recommendations, "Lowest Cost: remove_intervention:id=1; set_budget:amount=600000 spends $164775 less over three years than the base roadmap")
	assert.Contains(t, set.Recommendations, "Caution: set_budget:amount=100000 exceeds its allocation in year 1")

	// base untouched by the variants
	assert.Len(t, cfg.Interventions, 2)
	assert.True(t, decimal.NewFromInt(500000).Equal(cfg.Roadmap.YearlyBudget))
}

func TestCompareEngine_Errors(t *testing.T) {
	ce := NewCompareEngine(nil)
	cfg := config.NewInputParser().CreateExampleConfiguration()

	_, err := ce.Compare(context.Background(), nil, CompareOptions{})
	assert.Error(t, err)

	_, err = ce.Compare(context.Background(), cfg, CompareOptions{Templates: []string{"nope"}})
	assert.ErrorContains(t, err, "template nope not found")

	_, err = ce.Compare(context.Background(), cfg, CompareOptions{Transforms: []string{"shift_intervention:id=42,months=1"}})
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = ce.Compare(ctx, cfg, CompareOptions{Templates: []string{"delay_3mo"}})
	assert.ErrorIs(t, err, context.Canceled)
}
