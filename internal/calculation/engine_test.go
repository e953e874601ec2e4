package calculation

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/rgehrsitz/roadmap/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEngine(t *testing.T) {
	engine := NewEngine()

	assert.NotNil(t, engine, "Should create engine")
	assert.NotNil(t, engine.Logger, "Should initialize logger")
	hits, misses := engine.CacheStats()
	assert.Zero(t, hits)
	assert.Zero(t, misses)
}

func TestEngine_SetLogger(t *testing.T) {
	engine := NewEngine()

	customLogger := &TestLogger{}
	engine.SetLogger(customLogger)
	assert.Equal(t, customLogger, engine.Logger, "Should set custom logger")

	engine.SetLogger(nil)
	assert.NotNil(t, engine.Logger, "Should not be nil")
	assert.IsType(t, NopLogger{}, engine.Logger, "Should be no-op logger")
}

func TestEngine_Evaluate(t *testing.T) {
	engine := NewEngine()
	logger := &TestLogger{}
	engine.SetLogger(logger)

	report, err := engine.Evaluate(exampleConfiguration())
	require.NoError(t, err)

	assert.Equal(t, "13/03/2025 - 12/03/2026", report.Windows[0].Label())
	assertDecimal(t, "140075", report.Budgets[0].Spent)
	assertDecimal(t, "51350", report.Budgets[1].Spent)
	assertDecimal(t, "19980", report.Budgets[2].Spent)
	assertDecimal(t, "211405", report.CostTable.GrandTotal)
	assert.Len(t, report.Timeline, 2)
	assert.False(t, report.IsOverBudget())
	assert.NotEmpty(t, logger.messages)
}

func TestEngine_Evaluate_MatchesRecompute(t *testing.T) {
	cfg := exampleConfiguration()
	report, err := NewEngine().Evaluate(cfg)
	require.NoError(t, err)

	assert.Equal(t, Recompute(cfg.Roadmap, cfg.Interventions), report.Budgets)
}

func TestEngine_Evaluate_WarnsWhenOverBudget(t *testing.T) {
	cfg := exampleConfiguration()
	cfg.Roadmap.YearlyBudget = decimal.NewFromInt(100000)

	engine := NewEngine()
	logger := &TestLogger{}
	engine.SetLogger(logger)

	report, err := engine.Evaluate(cfg)
	require.NoError(t, err)
	assert.True(t, report.IsOverBudget())
	assert.True(t, logger.contains("WARN: year %d over budget"))
}

func TestEngine_Evaluate_Nil(t *testing.T) {
	report, err := NewEngine().Evaluate(nil)
	assert.ErrorIs(t, err, ErrNilConfiguration)
	assert.Nil(t, report)
}

func TestEngine_Evaluate_EmptyRoadmap(t *testing.T) {
	cfg := &domain.Configuration{Roadmap: domain.Roadmap{StartDate: roadmapStart, YearlyBudget: decimal.NewFromInt(1)}}
	report, err := NewEngine().Evaluate(cfg)
	require.NoError(t, err)
	assert.True(t, report.CostTable.GrandTotal.IsZero())
	assert.Empty(t, report.Timeline)
}

func TestCachedEngine_SameResultAsUncached(t *testing.T) {
	cached := NewCachedEngine(DefaultCacheSize)
	plain := NewEngine()
	cfg := exampleConfiguration()

	first, err := cached.Evaluate(cfg)
	require.NoError(t, err)
	second, err := cached.Evaluate(cfg)
	require.NoError(t, err)
	want, err := plain.Evaluate(cfg)
	require.NoError(t, err)

	assert.Equal(t, want.CostTable, first.CostTable)
	assert.Equal(t, want.CostTable, second.CostTable)

	hits, misses := cached.CacheStats()
	assert.Equal(t, uint64(6), misses)
	assert.Equal(t, uint64(6), hits)
}

func TestCachedEngine_EditInvalidatesByFingerprint(t *testing.T) {
	engine := NewCachedEngine(DefaultCacheSize)
	cfg := exampleConfiguration()
	_, err := engine.Evaluate(cfg)
	require.NoError(t, err)

	edited := mentalHealthPlatform()
	edited.Costs.ImplementationCost = decimal.NewFromInt(1)
	cfg.Interventions, err = cfg.Interventions.ReplaceByID(edited)
	require.NoError(t, err)

	report, err := engine.Evaluate(cfg)
	require.NoError(t, err)
	assertDecimal(t, "20076", report.Budgets[0].Spent)
}

func TestEngine_EvaluateAll(t *testing.T) {
	engine := NewCachedEngine(16)

	tight := exampleConfiguration()
	tight.Roadmap.YearlyBudget = decimal.NewFromInt(100000)
	cfgs := []*domain.Configuration{exampleConfiguration(), tight, exampleConfiguration()}

	reports, err := engine.EvaluateAll(context.Background(), cfgs)
	require.NoError(t, err)
	require.Len(t, reports, 3)

	assert.False(t, reports[0].IsOverBudget())
	assert.True(t, reports[1].IsOverBudget())
	assert.Equal(t, reports[0].CostTable, reports[2].CostTable)
}

func TestEngine_EvaluateAll_PropagatesError(t *testing.T) {
	_, err := NewEngine().EvaluateAll(context.Background(), []*domain.Configuration{exampleConfiguration(), nil})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNilConfiguration)
	assert.Contains(t, err.Error(), "roadmap 1")
}

func TestEngine_EvaluateAll_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	reports, err := NewEngine().EvaluateAll(ctx, []*domain.Configuration{exampleConfiguration()})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, reports)
}

// TestLogger records formats so tests can assert on what was logged
type TestLogger struct {
	mu       sync.Mutex
	messages []string
}

func (tl *TestLogger) record(level, format string) {
	tl.mu.Lock()
	defer tl.mu.Unlock()
	tl.messages = append(tl.messages, level+": "+format)
}

func (tl *TestLogger) Debugf(format string, args ...interface{}) { tl.record("DEBUG", format) }
func (tl *TestLogger) Infof(format string, args ...interface{})  { tl.record("INFO", format) }
func (tl *TestLogger) Warnf(format string, args ...interface{})  { tl.record("WARN", format) }
func (tl *TestLogger) Errorf(format string, args ...interface{}) { tl.record("ERROR", format) }

func (tl *TestLogger) contains(prefix string) bool {
	tl.mu.Lock()
	defer tl.mu.Unlock()
	for _, m := range tl.messages {
		if strings.HasPrefix(m, prefix) {
			return true
		}
	}
	return false
}
