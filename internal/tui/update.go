package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/roadmap/internal/transform"
	"github.com/rgehrsitz/roadmap/internal/tui/tuimsg"
)

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.dashboardModel.SetSize(msg.Width, msg.Height)
		return m, nil

	case NavigateMsg:
		if msg.Scene != m.currentScene {
			m.previousScene = m.currentScene
			m.currentScene = msg.Scene
		}
		return m, nil

	case ErrorMsg:
		m.err = msg.Err
		m.loading = false
		return m, nil

	case tuimsg.ErrorMsg:
		m.err = msg.Err
		return m, nil

	case ConfigLoadedMsg:
		return m.setConfig(msg.Config), nil

	case ConfigSavedMsg:
		m.dirty = false
		m.status = "saved " + msg.Path
		return m, nil

	case tuimsg.CompareRequestedMsg:
		if m.config == nil {
			return m, nil
		}
		m.loading = true
		return m, compareCmd(m.compareEngine, m.config, msg.Templates)

	case ComparisonCompleteMsg:
		m.loading = false
		if msg.Err != nil {
			m.status = msg.Err.Error()
			return m, nil
		}
		m.compareModel.SetResult(msg.Set)
		return m, nil

	case tuimsg.FitRequestedMsg:
		return m.startFit(msg.InterventionID)

	case FitCompleteMsg:
		m.loading = false
		if msg.Err != nil {
			m.status = msg.Err.Error()
			return m, nil
		}
		m.fitModel.SetResult(msg.InterventionID, msg.Result)
		return m, nil
	}

	return m.updateCurrentScene(msg)
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// any key dismisses an error
	if m.err != nil {
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		m.err = nil
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, navigate(SceneHelp)

	case key.Matches(msg, m.keys.Back):
		if m.currentScene != SceneDashboard {
			target := m.previousScene
			if target == m.currentScene {
				target = SceneDashboard
			}
			return m, navigate(target)
		}
		return m, nil

	case key.Matches(msg, m.keys.Dashboard):
		return m, navigate(SceneDashboard)

	case key.Matches(msg, m.keys.Costs):
		return m, navigate(SceneCosts)

	case key.Matches(msg, m.keys.Compare):
		return m, navigate(SceneCompare)

	case key.Matches(msg, m.keys.Fit):
		if m.currentScene == SceneFit {
			break
		}
		iv, ok := m.selectedIntervention()
		if !ok {
			return m, navigate(SceneFit)
		}
		m.previousScene = m.currentScene
		m.currentScene = SceneFit
		return m.startFit(iv.ID)

	case key.Matches(msg, m.keys.Save):
		if m.config == nil || m.configPath == "" {
			m.status = "nothing to save"
			return m, nil
		}
		return m, saveConfigCmd(m.parser, m.config, m.configPath)
	}

	// the compare and fit scenes own their keys while showing
	if m.currentScene == SceneCompare || m.currentScene == SceneFit {
		return m.updateCurrentScene(msg)
	}

	return m.handleRoadmapKeys(msg)
}

// handleRoadmapKeys applies selection and what-if edits on the dashboard and cost table
func (m Model) handleRoadmapKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.config == nil {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		if m.selected > 0 {
			m.selected--
		}
		return m.recompute(), nil

	case key.Matches(msg, m.keys.Down):
		if m.selected < len(m.config.Interventions)-1 {
			m.selected++
		}
		return m.recompute(), nil

	case key.Matches(msg, m.keys.Expand):
		if iv, ok := m.selectedIntervention(); ok {
			expanded := make(map[int]bool, len(m.expanded)+1)
			for id, v := range m.expanded {
				expanded[id] = v
			}
			expanded[iv.ID] = !expanded[iv.ID]
			m.expanded = expanded
		}
		return m.recompute(), nil

	case key.Matches(msg, m.keys.ShiftEarly):
		if iv, ok := m.selectedIntervention(); ok {
			return m.apply(&transform.ShiftIntervention{ID: iv.ID, Months: -1}), nil
		}

	case key.Matches(msg, m.keys.ShiftLate):
		if iv, ok := m.selectedIntervention(); ok {
			return m.apply(&transform.ShiftIntervention{ID: iv.ID, Months: 1}), nil
		}

	case key.Matches(msg, m.keys.BudgetUp):
		return m.apply(&transform.AdjustBudget{Delta: BudgetStep}), nil

	case key.Matches(msg, m.keys.BudgetDown):
		return m.apply(&transform.AdjustBudget{Delta: BudgetStep.Neg()}), nil

	case key.Matches(msg, m.keys.StartEarly):
		return m.apply(&transform.ShiftRoadmapStart{Months: -1}), nil

	case key.Matches(msg, m.keys.StartLate):
		return m.apply(&transform.ShiftRoadmapStart{Months: 1}), nil
	}

	return m, nil
}

// updateCurrentScene delegates updates to the current scene's model
func (m Model) updateCurrentScene(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m.currentScene {
	case SceneCompare:
		updated, cmd := m.compareModel.Update(msg)
		m.compareModel = updated
		return m, cmd
	case SceneFit:
		updated, cmd := m.fitModel.Update(msg)
		m.fitModel = updated
		return m, cmd
	}
	return m, nil
}

// startFit runs the break-even search for intervention id against the current roadmap
func (m Model) startFit(id int) (tea.Model, tea.Cmd) {
	if m.config == nil {
		return m, nil
	}
	m.loading = true
	return m, fitCmd(m.solver, m.config, id)
}

func navigate(scene Scene) tea.Cmd {
	return func() tea.Msg { return NavigateMsg{Scene: scene} }
}
