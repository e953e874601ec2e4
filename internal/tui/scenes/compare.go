package scenes

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rgehrsitz/roadmap/internal/compare"
	"github.com/rgehrsitz/roadmap/internal/transform"
	"github.com/rgehrsitz/roadmap/internal/tui/components"
	"github.com/rgehrsitz/roadmap/internal/tui/tuimsg"
	"github.com/rgehrsitz/roadmap/internal/tui/tuistyles"
)

// CompareModel lets the user pick what-if templates and shows the comparison
type CompareModel struct {
	templates []transform.Template
	checked   map[string]bool
	cursor    int
	result    *compare.ComparisonSet
}

// NewCompareModel lists the templates of registry
func NewCompareModel(registry *transform.TemplateRegistry) *CompareModel {
	m := &CompareModel{checked: map[string]bool{}}
	for _, name := range registry.List() {
		t, _ := registry.Get(name)
		m.templates = append(m.templates, t)
	}
	return m
}

// SetResult shows a finished comparison
func (m *CompareModel) SetResult(set *compare.ComparisonSet) {
	m.result = set
}

// Selected returns the checked template names in list order
func (m *CompareModel) Selected() []string {
	out := []string{}
	for _, t := range m.templates {
		if m.checked[t.Name] {
			out = append(out, t.Name)
		}
	}
	return out
}

// Update handles messages for the compare scene
func (m *CompareModel) Update(msg tea.Msg) (*CompareModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("up", "k"))):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("down", "j"))):
		if m.cursor < len(m.templates)-1 {
			m.cursor++
		}
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys(" ", "x"))):
		if m.cursor < len(m.templates) {
			name := m.templates[m.cursor].Name
			m.checked[name] = !m.checked[name]
		}
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("enter"))):
		selected := m.Selected()
		if len(selected) == 0 {
			return m, nil
		}
		return m, func() tea.Msg { return tuimsg.CompareRequestedMsg{Templates: selected} }
	}
	return m, nil
}

// View renders the template picker and the latest result
func (m *CompareModel) View() string {
	var b strings.Builder
	b.WriteString(tuistyles.TableHeaderStyle.Render("WHAT-IF TEMPLATES") + "\n")
	for i, t := range m.templates {
		box := "[ ]"
		if m.checked[t.Name] {
			box = "[x]"
		}
		style := tuistyles.UnselectedItemStyle
		cursor := "  "
		if i == m.cursor {
			style = tuistyles.SelectedItemStyle
			cursor = "▶ "
		}
		b.WriteString(cursor + style.Render(fmt.Sprintf("%s %-18s %s", box, t.Name, t.Description)) + "\n")
	}
	b.WriteString(tuistyles.SubtitleStyle.Render("space toggles, enter compares") + "\n")

	if m.result == nil || m.result.BaseResult == nil {
		return b.String()
	}

	b.WriteString("\n" + tuistyles.TableHeaderStyle.Render("RESULTS") + "\n")
	base := m.result.BaseResult.TotalInvestment
	cards := []*components.MetricCard{
		components.NewSpendCard(m.result.BaseScenarioName, base, nil).WithWidth(24),
	}
	for _, alt := range m.result.AlternativeResults {
		card := components.NewSpendCard(alt.ScenarioName, alt.TotalInvestment, &base).WithWidth(24)
		if !alt.WithinBudget() {
			card.WithDescription("over budget")
		}
		cards = append(cards, card)
	}
	b.WriteString(components.MetricGrid(cards, 3) + "\n")

	for _, rec := range m.result.Recommendations {
		b.WriteString(tuistyles.InfoStyle.Render("• "+rec) + "\n")
	}
	return b.String()
}
