package scenes

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/roadmap/internal/domain"
	"github.com/rgehrsitz/roadmap/internal/output"
	"github.com/rgehrsitz/roadmap/internal/tui/tuistyles"
	"github.com/shopspring/decimal"
)

const (
	costNameWidth   = 30
	costAmountWidth = 13
)

// CostsModel renders the detailed investment breakdown
type CostsModel struct {
	report   *domain.RoadmapReport
	selected int
	expanded map[int]bool // by intervention id
}

// NewCostsModel creates an empty cost table
func NewCostsModel() *CostsModel {
	return &CostsModel{expanded: map[int]bool{}}
}

// SetReport replaces the report being shown
func (m *CostsModel) SetReport(report *domain.RoadmapReport) {
	m.report = report
}

// SetSelected highlights the row at index
func (m *CostsModel) SetSelected(index int) {
	m.selected = index
}

// SetExpanded sets which interventions show their component rows
func (m *CostsModel) SetExpanded(expanded map[int]bool) {
	m.expanded = expanded
}

// View renders the cost table
func (m *CostsModel) View() string {
	if m.report == nil {
		return tuistyles.SubtitleStyle.Render("No roadmap loaded.")
	}

	var b strings.Builder
	header := fmt.Sprintf("  %-*s", costNameWidth, "Intervention")
	for k := range m.report.Windows {
		header += fmt.Sprintf("%*s", costAmountWidth, fmt.Sprintf("Year %d", k+1))
	}
	header += fmt.Sprintf("%*s", costAmountWidth, "Total")
	b.WriteString(tuistyles.TableHeaderStyle.Render(header) + "\n")

	for i, row := range m.report.CostTable.Rows {
		style := tuistyles.TableCellStyle
		cursor := "  "
		if i == m.selected {
			style = tuistyles.TableHighlightStyle
			cursor = "▶ "
		}
		line := fmt.Sprintf("%-*s", costNameWidth, truncate(row.Name, costNameWidth))
		for _, y := range row.Years {
			line += fmt.Sprintf("%*s", costAmountWidth, output.FormatCurrency(y.Total))
		}
		line += fmt.Sprintf("%*s", costAmountWidth, output.FormatCurrency(row.Total))
		b.WriteString(cursor + style.Render(line) + "\n")

		if m.expanded[row.InterventionID] {
			for _, c := range componentRows(row) {
				b.WriteString(tuistyles.SubtitleStyle.Render(c) + "\n")
			}
		}
	}

	footer := fmt.Sprintf("  %-*s", costNameWidth, "Total costs")
	for _, y := range m.report.CostTable.YearTotals {
		footer += fmt.Sprintf("%*s", costAmountWidth, output.FormatCurrency(y.Total))
	}
	footer += fmt.Sprintf("%*s", costAmountWidth, output.FormatCurrency(m.report.CostTable.GrandTotal))
	b.WriteString(tuistyles.TableHeaderStyle.Render(footer))

	return b.String()
}

func componentRows(row domain.CostRow) []string {
	components := []struct {
		label string
		get   func(domain.YearlyCostBreakdown) decimal.Decimal
	}{
		{"Implementation", func(y domain.YearlyCostBreakdown) decimal.Decimal { return y.ImplementationCost }},
		{"Ongoing (PEPM)", func(y domain.YearlyCostBreakdown) decimal.Decimal { return y.PEPMCost }},
		{"Ongoing (fixed annual)", func(y domain.YearlyCostBreakdown) decimal.Decimal { return y.FixedAnnualCost }},
		{"One-time fee", func(y domain.YearlyCostBreakdown) decimal.Decimal { return y.OneTimeFixedFee }},
	}

	out := make([]string, 0, len(components))
	for _, c := range components {
		line := fmt.Sprintf("    %-*s", costNameWidth-2, c.label)
		sum := decimal.Zero
		for _, y := range row.Years {
			v := c.get(y)
			sum = sum.Add(v)
			line += fmt.Sprintf("%*s", costAmountWidth, output.FormatCurrencyOrBlank(v))
		}
		line += fmt.Sprintf("%*s", costAmountWidth, output.FormatCurrencyOrBlank(sum))
		out = append(out, line)
	}
	return out
}
