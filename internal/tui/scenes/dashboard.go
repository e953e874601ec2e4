package scenes

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/roadmap/internal/domain"
	"github.com/rgehrsitz/roadmap/internal/tui/components"
	"github.com/rgehrsitz/roadmap/internal/tui/tuistyles"
)

const laneNameWidth = 28

// DashboardModel renders budget gauges and the implementation timeline
type DashboardModel struct {
	report   *domain.RoadmapReport
	selected int
	width    int
}

// NewDashboardModel creates an empty dashboard
func NewDashboardModel() *DashboardModel {
	return &DashboardModel{width: 80}
}

// SetReport replaces the report being shown
func (m *DashboardModel) SetReport(report *domain.RoadmapReport) {
	m.report = report
}

// SetSelected highlights the timeline row at index
func (m *DashboardModel) SetSelected(index int) {
	m.selected = index
}

// SetSize updates the scene width
func (m *DashboardModel) SetSize(width, _ int) {
	m.width = width
}

// View renders the dashboard
func (m *DashboardModel) View() string {
	if m.report == nil {
		return tuistyles.SubtitleStyle.Render("No roadmap loaded.")
	}

	gauges := make([]string, 0, len(m.report.Budgets))
	for k, b := range m.report.Budgets {
		label := fmt.Sprintf("Year %d  %s", k+1, m.report.Windows[k].Label())
		gauges = append(gauges, components.NewBudgetGauge(label, b).WithWidth(m.gaugeWidth()).Render())
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		tuistyles.TableHeaderStyle.Render("BUDGET"),
		strings.Join(gauges, "\n\n"),
		"",
		tuistyles.TableHeaderStyle.Render("IMPLEMENTATION TIMELINE"),
		m.timeline(),
	)
}

func (m *DashboardModel) gaugeWidth() int {
	return min(max(m.width-30, 10), 50)
}

func (m *DashboardModel) timeline() string {
	if len(m.report.Timeline) == 0 {
		return tuistyles.SubtitleStyle.Render("No interventions.")
	}

	var b strings.Builder
	b.WriteString(strings.Repeat(" ", laneNameWidth+2) + components.YearRuler(components.TimelineCells) + "\n")
	for i, row := range m.report.Timeline {
		name := truncate(row.Name, laneNameWidth)
		style := tuistyles.UnselectedItemStyle
		cursor := "  "
		if i == m.selected {
			style = tuistyles.SelectedItemStyle
			cursor = "▶ "
		}
		b.WriteString(cursor + style.Render(fmt.Sprintf("%-*s", laneNameWidth, name)) + components.TimelineLane(row, components.TimelineCells) + "\n")
	}
	b.WriteString(tuistyles.SubtitleStyle.Render("▓ implementation  █ ongoing"))
	return b.String()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
