package scenes

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/roadmap/internal/breakeven"
	"github.com/rgehrsitz/roadmap/internal/output"
	"github.com/rgehrsitz/roadmap/internal/tui/components"
	"github.com/rgehrsitz/roadmap/internal/tui/tuimsg"
	"github.com/rgehrsitz/roadmap/internal/tui/tuistyles"
)

// FitModel shows the break-even values of one intervention
type FitModel struct {
	interventionID int
	result         *breakeven.MultiDimensionalResult
}

// NewFitModel creates an empty fit scene
func NewFitModel() *FitModel {
	return &FitModel{}
}

// SetResult shows a finished search for intervention id
func (m *FitModel) SetResult(id int, result *breakeven.MultiDimensionalResult) {
	m.interventionID = id
	m.result = result
}

// Result returns the search on display, if any
func (m *FitModel) Result() *breakeven.MultiDimensionalResult {
	return m.result
}

// Update handles messages for the fit scene
func (m *FitModel) Update(msg tea.Msg) (*FitModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || m.interventionID == 0 {
		return m, nil
	}
	if key.Matches(keyMsg, key.NewBinding(key.WithKeys("r"))) {
		id := m.interventionID
		return m, func() tea.Msg { return tuimsg.FitRequestedMsg{InterventionID: id} }
	}
	return m, nil
}

// View renders one row per target and the recommendations
func (m *FitModel) View() string {
	var b strings.Builder

	title := lipgloss.NewStyle().Bold(true).Foreground(tuistyles.ColorPrimary)
	b.WriteString(title.Render("Break-Even Finder") + "\n")

	if m.result == nil {
		b.WriteString(tuistyles.SubtitleStyle.Render("Select an intervention on the dashboard and press f") + "\n")
		return b.String()
	}

	b.WriteString(tuistyles.SubtitleStyle.Render(
		fmt.Sprintf("%s (intervention %d)", m.result.InterventionName, m.interventionID)) + "\n")
	if c := m.result.Cheapest; c != nil {
		label := fmt.Sprintf("Cheapest fit (%s)", c.Target)
		b.WriteString(components.NewSpendCard(label, c.TotalCost, &c.BaseTotalCost).RenderCompact() + "\n")
	}
	b.WriteString("\n")

	b.WriteString(tuistyles.TableHeaderStyle.Render(
		fmt.Sprintf("%-10s %-24s %14s %10s", "TARGET", "VALUE", "TOTAL COST", "PEAK")) + "\n")
	for i := range m.result.Results {
		r := &m.result.Results[i]
		style := tuistyles.TableCellStyle
		if m.result.Cheapest != nil && m.result.Cheapest.Target == r.Target {
			style = tuistyles.TableHighlightStyle
		}
		if !r.Success {
			b.WriteString(style.Render(fmt.Sprintf("%-10s %-24s", r.Target, "no fit")) + "\n")
			continue
		}
		b.WriteString(style.Render(fmt.Sprintf("%-10s %-24s %14s %10s",
			r.Target, r.Value(),
			output.FormatCurrency(r.TotalCost),
			output.FormatPercentage(r.PeakUtilization))) + "\n")
	}

	if len(m.result.Recommendations) > 0 {
		b.WriteString("\n" + tuistyles.TableHeaderStyle.Render("RECOMMENDATIONS") + "\n")
		for _, rec := range m.result.Recommendations {
			b.WriteString(tuistyles.InfoStyle.Render("• "+rec) + "\n")
		}
	}
	b.WriteString("\n" + tuistyles.SubtitleStyle.Render("r re-runs the search") + "\n")
	return b.String()
}
