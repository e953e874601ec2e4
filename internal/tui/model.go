package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/roadmap/internal/breakeven"
	"github.com/rgehrsitz/roadmap/internal/calculation"
	"github.com/rgehrsitz/roadmap/internal/compare"
	"github.com/rgehrsitz/roadmap/internal/config"
	"github.com/rgehrsitz/roadmap/internal/domain"
	"github.com/rgehrsitz/roadmap/internal/transform"
	"github.com/rgehrsitz/roadmap/internal/tui/scenes"
)

// BudgetStep is the amount +/- move the yearly budget by
var BudgetStep = decimal.NewFromInt(10000)

// Model represents the entire application state
type Model struct {
	// Navigation
	currentScene  Scene
	previousScene Scene

	// Terminal dimensions
	width  int
	height int

	// Roadmap document and its evaluation
	configPath string
	config     *domain.Configuration
	report     *domain.RoadmapReport
	dirty      bool

	engine        *calculation.Engine
	compareEngine *compare.CompareEngine
	solver        *breakeven.Solver
	parser        *config.InputParser

	// Current selection
	selected int
	expanded map[int]bool

	dashboardModel *scenes.DashboardModel
	costsModel     *scenes.CostsModel
	compareModel   *scenes.CompareModel
	fitModel       *scenes.FitModel

	keys keyMap
	help help.Model

	err     error
	status  string
	loading bool
}

// NewModel creates a model that loads its roadmap from configPath on Init
func NewModel(configPath string) Model {
	engine := calculation.NewCachedEngine(calculation.DefaultCacheSize)
	compareEngine := compare.NewCompareEngine(engine)
	return Model{
		currentScene:   SceneDashboard,
		configPath:     configPath,
		engine:         engine,
		compareEngine:  compareEngine,
		solver:         breakeven.NewDefaultSolver(engine),
		parser:         config.NewInputParser(),
		expanded:       map[int]bool{},
		dashboardModel: scenes.NewDashboardModel(),
		costsModel:     scenes.NewCostsModel(),
		compareModel:   scenes.NewCompareModel(compareEngine.TemplateRegistry),
		fitModel:       scenes.NewFitModel(),
		keys:           defaultKeyMap(),
		help:           help.New(),
		width:          100,
		height:         40,
		loading:        configPath != "",
	}
}

// NewModelWithConfig creates a model around an already loaded roadmap
func NewModelWithConfig(cfg *domain.Configuration) Model {
	m := NewModel("")
	m = m.setConfig(cfg)
	return m
}

// Init initializes the model (required by tea.Model interface)
func (m Model) Init() tea.Cmd {
	if m.configPath == "" {
		return nil
	}
	return loadConfigCmd(m.parser, m.configPath)
}

// Report returns the current evaluation
func (m Model) Report() *domain.RoadmapReport {
	return m.report
}

// Config returns the current roadmap document
func (m Model) Config() *domain.Configuration {
	return m.config
}

// loadConfigCmd returns a command that loads the roadmap file
func loadConfigCmd(parser *config.InputParser, path string) tea.Cmd {
	return func() tea.Msg {
		cfg, err := parser.LoadFromFile(path)
		if err != nil {
			return ErrorMsg{Err: err}
		}
		return ConfigLoadedMsg{Config: cfg}
	}
}

func saveConfigCmd(parser *config.InputParser, cfg *domain.Configuration, path string) tea.Cmd {
	return func() tea.Msg {
		if err := parser.SaveConfiguration(cfg, path); err != nil {
			return ErrorMsg{Err: err}
		}
		return ConfigSavedMsg{Path: path}
	}
}

func compareCmd(engine *compare.CompareEngine, cfg *domain.Configuration, templates []string) tea.Cmd {
	return func() tea.Msg {
		set, err := engine.Compare(context.Background(), cfg, compare.CompareOptions{Templates: templates})
		return ComparisonCompleteMsg{Set: set, Err: err}
	}
}

func fitCmd(solver *breakeven.Solver, cfg *domain.Configuration, id int) tea.Cmd {
	return func() tea.Msg {
		result, err := solver.OptimizeAllTargets(context.Background(), cfg, id)
		return FitCompleteMsg{InterventionID: id, Result: result, Err: err}
	}
}

// setConfig installs cfg and recomputes everything derived from it
func (m Model) setConfig(cfg *domain.Configuration) Model {
	m.config = cfg
	m.loading = false
	return m.recompute()
}

// recompute re-evaluates the whole roadmap and refreshes the scenes
func (m Model) recompute() Model {
	if m.config == nil {
		return m
	}
	report, err := m.engine.Evaluate(m.config)
	if err != nil {
		m.err = err
		return m
	}
	m.report = report
	if n := len(m.config.Interventions); m.selected >= n {
		m.selected = max(n-1, 0)
	}
	m.dashboardModel.SetReport(report)
	m.dashboardModel.SetSelected(m.selected)
	m.costsModel.SetReport(report)
	m.costsModel.SetSelected(m.selected)
	m.costsModel.SetExpanded(m.expanded)
	return m
}

// apply runs transforms against the current roadmap and recomputes
func (m Model) apply(transforms ...transform.RoadmapTransform) Model {
	if m.config == nil {
		return m
	}
	updated, err := transform.ApplyTransforms(m.config, transforms)
	if err != nil {
		m.status = err.Error()
		return m
	}
	m.config = updated
	m.dirty = true
	m.status = transform.Describe(transforms)
	return m.recompute()
}

func (m Model) selectedIntervention() (domain.Intervention, bool) {
	if m.config == nil || m.selected < 0 || m.selected >= len(m.config.Interventions) {
		return domain.Intervention{}, false
	}
	return m.config.Interventions[m.selected], true
}
