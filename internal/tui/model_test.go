package tui

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgehrsitz/roadmap/internal/config"
	"github.com/rgehrsitz/roadmap/internal/tui/tuimsg"
	"github.com/rgehrsitz/roadmap/pkg/dateutil"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	m := NewModelWithConfig(config.NewInputParser().CreateExampleConfiguration())
	require.NotNil(t, m.Report())
	return m
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

// send feeds msg through Update and then resolves any follow-up command once
func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, cmd := m.Update(msg)
	m = next.(Model)
	if cmd != nil {
		if follow := cmd(); follow != nil {
			next, _ = m.Update(follow)
			m = next.(Model)
		}
	}
	return m
}

func TestNewModelWithConfig_Evaluates(t *testing.T) {
	m := newTestModel(t)
	assert.True(t, decimal.NewFromInt(140075).Equal(m.Report().Budgets[0].Spent))
	assert.False(t, m.dirty)
	assert.Equal(t, SceneDashboard, m.currentScene)
}

func TestSelectionBounds(t *testing.T) {
	m := newTestModel(t)

	m = send(t, m, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, m.selected)

	m = send(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = send(t, m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, m.selected)
}

func TestShiftSelectedIntervention(t *testing.T) {
	m := newTestModel(t)

	m = send(t, m, runeKey(']'))
	iv := m.Config().Interventions[0]
	assert.Equal(t, dateutil.Date(2025, 9, 1), iv.Timeline.ImplementationStartDate)
	assert.True(t, m.dirty)
	assert.Equal(t, "Shift intervention 1 by +1 months", m.status)
	assert.Equal(t, "Physical Wellness Program", m.Config().Interventions[1].Name, "order is preserved")

	m = send(t, m, runeKey('['))
	assert.Equal(t, dateutil.Date(2025, 8, 1), m.Config().Interventions[0].Timeline.ImplementationStartDate)
}

func TestBudgetKeys(t *testing.T) {
	m := newTestModel(t)

	m = send(t, m, runeKey('+'))
	assert.True(t, decimal.NewFromInt(510000).Equal(m.Config().Roadmap.YearlyBudget))
	assert.True(t, decimal.NewFromInt(510000).Equal(m.Report().Budgets[2].Allocated))

	m = send(t, m, runeKey('-'))
	m = send(t, m, runeKey('-'))
	assert.True(t, decimal.NewFromInt(490000).Equal(m.Config().Roadmap.YearlyBudget))
}

func TestStartKeys(t *testing.T) {
	m := newTestModel(t)

	m = send(t, m, runeKey('>'))
	assert.Equal(t, dateutil.Date(2025, 4, 13), m.Config().Roadmap.StartDate)
	assert.Equal(t, dateutil.Date(2025, 4, 13), m.Report().Windows[0].Start)

	m = send(t, m, runeKey('<'))
	assert.Equal(t, dateutil.Date(2025, 3, 13), m.Config().Roadmap.StartDate)
}

func TestExpandToggle(t *testing.T) {
	m := newTestModel(t)

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, m.expanded[1])

	m = send(t, m, runeKey('t'))
	assert.Equal(t, SceneCosts, m.currentScene)
	assert.Contains(t, m.View(), "Ongoing (PEPM)")

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, m.expanded[1])
	assert.NotContains(t, m.View(), "Ongoing (PEPM)")
}

func TestNavigation(t *testing.T) {
	m := newTestModel(t)

	m = send(t, m, runeKey('c'))
	assert.Equal(t, SceneCompare, m.currentScene)

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, SceneDashboard, m.currentScene)

	m = send(t, m, runeKey('?'))
	assert.Equal(t, SceneHelp, m.currentScene)
	assert.Contains(t, m.View(), "shift 1 month later")
}

func TestCompareScene(t *testing.T) {
	m := newTestModel(t)
	m = send(t, m, runeKey('c'))

	// enter with nothing checked does nothing
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, m.loading)

	m = send(t, m, runeKey(' '))
	require.Len(t, m.compareModel.Selected(), 1)

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(Model)
	require.NotNil(t, cmd)
	req, ok := cmd().(tuimsg.CompareRequestedMsg)
	require.True(t, ok)

	m = send(t, m, req)
	assert.False(t, m.loading)
	view := m.View()
	assert.Contains(t, view, "RESULTS")
	assert.Contains(t, view, "$211,405")
}

func TestErrorIsDismissed(t *testing.T) {
	m := newTestModel(t)
	m = send(t, m, ErrorMsg{Err: errors.New("boom")})
	assert.Contains(t, m.View(), "Error: boom")

	m = send(t, m, runeKey('x'))
	assert.Nil(t, m.err)
}

func TestLoadAndSave(t *testing.T) {
	parser := config.NewInputParser()
	path := filepath.Join(t.TempDir(), "roadmap.yaml")
	require.NoError(t, parser.SaveConfiguration(parser.CreateExampleConfiguration(), path))

	m := NewModel(path)
	assert.Contains(t, m.View(), "Loading")

	msg := m.Init()()
	m = send(t, m, msg)
	require.NotNil(t, m.Report())
	assert.True(t, decimal.NewFromInt(211405).Equal(m.Report().CostTable.GrandTotal))

	m = send(t, m, runeKey('+'))
	assert.True(t, m.dirty)
	m = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	assert.False(t, m.dirty)
	assert.True(t, strings.HasPrefix(m.status, "saved "))

	reloaded, err := parser.LoadFromFile(path)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(510000).Equal(reloaded.Roadmap.YearlyBudget))
}

func TestLoadError(t *testing.T) {
	m := NewModel(filepath.Join(t.TempDir(), "missing.yaml"))
	m = send(t, m, m.Init()())
	require.Error(t, m.err)
	assert.Contains(t, m.View(), "Error:")
}

func TestFitScene(t *testing.T) {
	m := newTestModel(t)
	m = send(t, m, tea.KeyMsg{Type: tea.KeyDown})

	m = send(t, m, runeKey('f'))
	assert.Equal(t, SceneFit, m.currentScene)
	assert.False(t, m.loading)
	require.NotNil(t, m.fitModel.Result())
	assert.Len(t, m.fitModel.Result().Results, 4)

	view := m.View()
	assert.Contains(t, view, "Physical Wellness Program (intervention 2)")
	assert.Contains(t, view, "12512 employees")
	assert.Contains(t, view, "$83.33 PEPM")
	assert.Contains(t, view, "Cheapest fit")
	assert.Contains(t, view, "RECOMMENDATIONS")

	// r re-runs against the edited roadmap
	next, cmd := m.Update(runeKey('r'))
	m = next.(Model)
	require.NotNil(t, cmd)
	req, ok := cmd().(tuimsg.FitRequestedMsg)
	require.True(t, ok)
	assert.Equal(t, 2, req.InterventionID)

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, SceneDashboard, m.currentScene)
}

func TestFitScene_Empty(t *testing.T) {
	m := newTestModel(t)
	m.currentScene = SceneFit
	assert.Contains(t, m.View(), "press f")
}
