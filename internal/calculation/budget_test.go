package calculation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCompareBudget(t *testing.T) {
	tests := []struct {
		name             string
		allocated, spent string
		over             bool
	}{
		{"under", "500000", "140075", false},
		{"exactly spent", "500000", "500000", false},
		{"over by a cent", "500000", "500000.01", true},
		{"nothing allocated", "0", "1", true},
		{"nothing spent", "0", "0", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := CompareBudget(dec(tt.allocated), dec(tt.spent))
			assert.Equal(t, tt.over, b.IsOverBudget)
			assertDecimal(t, tt.allocated, b.Allocated)
			assertDecimal(t, tt.spent, b.Spent)
		})
	}
}

func TestRecompute(t *testing.T) {
	cfg := exampleConfiguration()
	budgets := Recompute(cfg.Roadmap, cfg.Interventions)

	assertDecimal(t, "140075", budgets[0].Spent)
	assertDecimal(t, "51350", budgets[1].Spent)
	assertDecimal(t, "19980", budgets[2].Spent)
	for _, b := range budgets {
		assertDecimal(t, "500000", b.Allocated)
		assert.False(t, b.IsOverBudget)
	}
}

func TestRecompute_AfterReplace(t *testing.T) {
	cfg := exampleConfiguration()
	cfg.Roadmap.YearlyBudget = decimal.NewFromInt(150000)
	before := Recompute(cfg.Roadmap, cfg.Interventions)
	assert.False(t, before[0].IsOverBudget)

	edited := mentalHealthPlatform()
	edited.Costs.ImplementationCost = decimal.NewFromInt(200000)
	ivs, err := cfg.Interventions.ReplaceByID(edited)
	assert.NoError(t, err)

	after := Recompute(cfg.Roadmap, ivs)
	assertDecimal(t, "220075", after[0].Spent)
	assert.True(t, after[0].IsOverBudget)
	assert.Equal(t, before[1], after[1])
	assert.Equal(t, before[2], after[2])
}

func TestRecompute_PerYearBudgets(t *testing.T) {
	cfg := exampleConfiguration()
	cfg.Roadmap.YearBudgets = []decimal.Decimal{decimal.NewFromInt(100000), decimal.NewFromInt(60000), decimal.NewFromInt(19980)}

	budgets := Recompute(cfg.Roadmap, cfg.Interventions)
	assert.True(t, budgets[0].IsOverBudget)
	assert.False(t, budgets[1].IsOverBudget)
	assert.False(t, budgets[2].IsOverBudget)
}

func TestRecompute_Idempotent(t *testing.T) {
	cfg := exampleConfiguration()
	assert.Equal(t, Recompute(cfg.Roadmap, cfg.Interventions), Recompute(cfg.Roadmap, cfg.Interventions))
}
