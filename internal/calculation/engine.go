package calculation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rgehrsitz/roadmap/internal/domain"
	"golang.org/x/sync/errgroup"
)

// DefaultCacheSize bounds the allocation memo of NewCachedEngine
const DefaultCacheSize = 4096

// ErrNilConfiguration is returned when Evaluate receives no configuration
var ErrNilConfiguration = errors.New("configuration is nil")

type allocationKey struct {
	fingerprint  string
	year         int
	roadmapStart string
}

// Engine evaluates roadmaps. The zero value is not usable; use NewEngine.
type Engine struct {
	Logger Logger

	cache *LRUCache[allocationKey, domain.YearlyCostBreakdown]
}

// NewEngine creates an engine that recomputes every allocation
func NewEngine() *Engine {
	return &Engine{Logger: NopLogger{}}
}

// NewCachedEngine creates an engine that memoizes allocations per intervention and year
func NewCachedEngine(size int) *Engine {
	e := NewEngine()
	e.cache = NewLRUCache[allocationKey, domain.YearlyCostBreakdown](size)
	return e
}

// SetLogger sets the engine logger; nil restores the no-op logger
func (e *Engine) SetLogger(l Logger) {
	if l == nil {
		e.Logger = NopLogger{}
		return
	}
	e.Logger = l
}

// CacheStats reports memo hits and misses, zero when caching is off
func (e *Engine) CacheStats() (hits, misses uint64) {
	if e.cache == nil {
		return 0, 0
	}
	return e.cache.Stats()
}

// Allocate returns the per-year breakdown of one intervention, consulting the memo when enabled
func (e *Engine) Allocate(iv domain.Intervention, roadmapStart time.Time) [RoadmapYears]domain.YearlyCostBreakdown {
	if e.cache == nil {
		return AllocateRoadmap(iv, roadmapStart)
	}

	var out [RoadmapYears]domain.YearlyCostBreakdown
	fp := iv.Fingerprint()
	start := roadmapStart.Format(time.DateOnly)
	for _, w := range RoadmapWindows(roadmapStart) {
		key := allocationKey{fingerprint: fp, year: w.Index, roadmapStart: start}
		if b, ok := e.cache.Get(key); ok {
			out[w.Index] = b
			continue
		}
		b := AllocateYearlyCosts(iv, w.Start, w.End, roadmapStart)
		e.cache.Set(key, b)
		out[w.Index] = b
	}
	return out
}

// Evaluate builds the full report for one roadmap: windows, budgets, cost table and timeline
func (e *Engine) Evaluate(cfg *domain.Configuration) (*domain.RoadmapReport, error) {
	if cfg == nil {
		return nil, ErrNilConfiguration
	}

	start := cfg.Roadmap.StartDate
	e.Logger.Debugf("evaluating roadmap starting %s with %d interventions", start.Format(time.DateOnly), len(cfg.Interventions))

	windows := RoadmapWindows(start)
	for _, w := range windows {
		e.Logger.Debugf("  year %d: %s", w.Index+1, w.Label())
	}

	table := buildCostTable(cfg.Interventions, func(iv domain.Intervention) [RoadmapYears]domain.YearlyCostBreakdown {
		return e.Allocate(iv, start)
	})
	budgets := budgetsFromTable(cfg.Roadmap, table)

	for k, b := range budgets {
		if b.IsOverBudget {
			e.Logger.Warnf("year %d over budget: spent %s of %s", k+1, b.Spent.StringFixed(2), b.Allocated.StringFixed(2))
		} else {
			e.Logger.Debugf("year %d: spent %s of %s", k+1, b.Spent.StringFixed(2), b.Allocated.StringFixed(2))
		}
	}

	return &domain.RoadmapReport{
		Roadmap:   cfg.Roadmap,
		Windows:   windows,
		Budgets:   budgets,
		CostTable: table,
		Timeline:  BuildTimeline(cfg.Interventions, start),
	}, nil
}

// EvaluateAll evaluates several roadmaps concurrently and returns the reports in input order.
// The first failure or a cancelled context stops the remaining work.
func (e *Engine) EvaluateAll(ctx context.Context, cfgs []*domain.Configuration) ([]*domain.RoadmapReport, error) {
	reports := make([]*domain.RoadmapReport, len(cfgs))
	g, ctx := errgroup.WithContext(ctx)

	for i, cfg := range cfgs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			report, err := e.Evaluate(cfg)
			if err != nil {
				return fmt.Errorf("roadmap %d: %w", i, err)
			}
			reports[i] = report
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}
