package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/roadmap/internal/domain"
	"github.com/rgehrsitz/roadmap/internal/tui/tuistyles"
	"github.com/shopspring/decimal"
)

// BudgetGauge displays how much of one year's allocation is spent
type BudgetGauge struct {
	Label  string
	Budget domain.YearlyBudget
	Width  int
}

// NewBudgetGauge creates a gauge for one financial year
func NewBudgetGauge(label string, budget domain.YearlyBudget) *BudgetGauge {
	return &BudgetGauge{
		Label:  label,
		Budget: budget,
		Width:  40,
	}
}

// WithWidth sets the bar width
func (g *BudgetGauge) WithWidth(width int) *BudgetGauge {
	g.Width = width
	return g
}

// Filled returns the number of bar cells to fill; an overspent year fills the whole bar
func (g *BudgetGauge) Filled() int {
	if g.Width <= 0 {
		return 0
	}
	if g.Budget.IsOverBudget {
		return g.Width
	}
	pct := g.Budget.Utilization()
	filled := int(pct.Mul(decimal.NewFromInt(int64(g.Width))).Div(decimal.NewFromInt(100)).Round(0).IntPart())
	return min(max(filled, 0), g.Width)
}

// Render returns the styled gauge
func (g *BudgetGauge) Render() string {
	var content strings.Builder

	status := tuistyles.MetricPositiveStyle.Render("OK")
	barColor := tuistyles.ColorSuccess
	if g.Budget.IsOverBudget {
		status = tuistyles.MetricNegativeStyle.Render("OVER BUDGET")
		barColor = tuistyles.ColorDanger
	}

	if g.Label != "" {
		labelStyle := lipgloss.NewStyle().
			Foreground(tuistyles.ColorForeground).
			Bold(true)
		content.WriteString(labelStyle.Render(g.Label) + "  " + status)
		content.WriteString("\n")
	}

	filled := g.Filled()
	barStyle := lipgloss.NewStyle().Foreground(barColor)
	emptyStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorBorder)

	content.WriteString("[")
	if filled > 0 {
		content.WriteString(barStyle.Render(strings.Repeat("█", filled)))
	}
	if empty := g.Width - filled; empty > 0 {
		content.WriteString(emptyStyle.Render(strings.Repeat("░", empty)))
	}
	content.WriteString("] ")
	content.WriteString(lipgloss.NewStyle().Foreground(tuistyles.ColorPrimary).Bold(true).
		Render(fmt.Sprintf("%s%%", g.Budget.Utilization().StringFixed(1))))
	content.WriteString("\n")

	verdict, diff := "Under by", g.Budget.Variance()
	if g.Budget.IsOverBudget {
		verdict, diff = "Over by", diff.Neg()
	}
	muted := tuistyles.MetricLabelStyle
	content.WriteString(muted.Render(fmt.Sprintf("Allocated %s  Spent %s  %s %s",
		tuistyles.FormatCurrency(g.Budget.Allocated),
		tuistyles.FormatCurrency(g.Budget.Spent),
		verdict,
		tuistyles.FormatCurrency(diff))))

	return content.String()
}
