package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/rgehrsitz/roadmap/internal/domain"
	"github.com/shopspring/decimal"
)

const (
	gaugeWidth    = 40
	timelineCells = 36
	nameWidth     = 30
	typeWidth     = 28
	amountWidth   = 14
)

// ConsoleVerboseFormatter renders budget gauges, the implementation timeline and the cost table
type ConsoleVerboseFormatter struct {
	// Expand shows the four cost components under every intervention
	Expand bool
}

func (c ConsoleVerboseFormatter) Name() string { return "console" }

func (c ConsoleVerboseFormatter) Format(report *domain.RoadmapReport) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintln(&buf, strings.Repeat("=", 81))
	if report.Name != "" {
		fmt.Fprintf(&buf, "BENEFIT INTERVENTION ROADMAP: %s\n", report.Name)
	} else {
		fmt.Fprintln(&buf, "BENEFIT INTERVENTION ROADMAP")
	}
	fmt.Fprintln(&buf, strings.Repeat("=", 81))
	fmt.Fprintf(&buf, "Roadmap start: %s\n", FormatDate(report.Roadmap.StartDate))
	fmt.Fprintln(&buf)

	writeBudgetGauges(&buf, report)
	writeTimeline(&buf, report)
	writeCostTable(&buf, report, c.Expand)

	fmt.Fprintln(&buf, "ALLOCATION RULES:")
	for _, a := range DefaultAssumptions {
		fmt.Fprintf(&buf, "• %s\n", a)
	}
	return buf.Bytes(), nil
}

func writeBudgetGauges(buf *bytes.Buffer, report *domain.RoadmapReport) {
	fmt.Fprintln(buf, "BUDGET")
	fmt.Fprintln(buf, strings.Repeat("-", 6))
	for k, b := range report.Budgets {
		verdict, diff := budgetVerdict(b)
		status := "OK"
		if b.IsOverBudget {
			status = "OVER BUDGET"
		}
		fmt.Fprintf(buf, "Year %d Investment (%s)  %s\n", k+1, report.Windows[k].Label(), status)
		fmt.Fprintf(buf, "  %s %s\n", gaugeBar(b), FormatPercentage(b.Utilization()))
		fmt.Fprintf(buf, "  Allocated:  %s\n", FormatCurrency(b.Allocated))
		fmt.Fprintf(buf, "  Investment: %s\n", FormatCurrency(b.Spent))
		fmt.Fprintf(buf, "  %-10s  %s\n", verdict+":", FormatCurrency(diff))
		fmt.Fprintln(buf)
	}
}

func gaugeBar(b domain.YearlyBudget) string {
	filled := int(gaugeFill(b).Mul(decimal.NewFromInt(gaugeWidth)).Div(decimal.NewFromInt(100)).Round(0).IntPart())
	mark := "#"
	if b.IsOverBudget {
		mark = "!"
	}
	return "[" + strings.Repeat(mark, filled) + strings.Repeat(".", gaugeWidth-filled) + "]"
}

func writeTimeline(buf *bytes.Buffer, report *domain.RoadmapReport) {
	fmt.Fprintln(buf, "IMPLEMENTATION TIMELINE")
	fmt.Fprintln(buf, strings.Repeat("-", 23))
	if len(report.Timeline) == 0 {
		fmt.Fprintln(buf, "No interventions.")
		fmt.Fprintln(buf)
		return
	}

	header := fmt.Sprintf("%-*s ", nameWidth, "")
	for k := range report.Windows {
		header += fmt.Sprintf("|%-11s", fmt.Sprintf("Year %d", k+1))
	}
	fmt.Fprintln(buf, header+"|")

	for _, row := range report.Timeline {
		fmt.Fprintf(buf, "%-*s |%s|\n", nameWidth, truncate(row.Name, nameWidth), TimelineStrip(row, timelineCells))
	}
	fmt.Fprintln(buf, "Legend: = implementation, # ongoing, . inactive")
	fmt.Fprintln(buf)
}

// TimelineStrip draws a row as cells characters, one per equal slice of the roadmap.
// Ongoing wins over implementation where the two overlap.
func TimelineStrip(row domain.TimelineRow, cells int) string {
	var b strings.Builder
	step := decimal.NewFromInt(100).Div(decimal.NewFromInt(int64(cells)))
	for i := 0; i < cells; i++ {
		lo := step.Mul(decimal.NewFromInt(int64(i)))
		hi := lo.Add(step)
		switch {
		case barCovers(row.Ongoing, lo, hi):
			b.WriteByte('#')
		case barCovers(row.Implementation, lo, hi):
			b.WriteByte('=')
		default:
			b.WriteByte('.')
		}
	}
	return b.String()
}

func barCovers(bar domain.TimelineBar, lo, hi decimal.Decimal) bool {
	if !bar.Width.IsPositive() {
		return false
	}
	return bar.Position.LessThan(hi) && bar.Position.Add(bar.Width).GreaterThan(lo)
}

func writeCostTable(buf *bytes.Buffer, report *domain.RoadmapReport, expand bool) {
	fmt.Fprintln(buf, "INVESTMENT BREAKDOWN")
	fmt.Fprintln(buf, strings.Repeat("-", 20))

	fmt.Fprintf(buf, "%-*s %-*s", nameWidth, "Intervention", typeWidth, "Cost Type")
	for k := range report.Windows {
		fmt.Fprintf(buf, " %*s", amountWidth, fmt.Sprintf("Year %d", k+1))
	}
	fmt.Fprintf(buf, " %*s\n", amountWidth, "Total")
	width := nameWidth + typeWidth + 1 + (amountWidth+1)*(len(report.Windows)+1)
	fmt.Fprintln(buf, strings.Repeat("-", width))

	for _, row := range report.CostTable.Rows {
		marker := "▶ "
		if expand {
			marker = "▼ "
		}
		fmt.Fprintf(buf, "%-*s %-*s", nameWidth, truncate(marker+row.Name, nameWidth), typeWidth, "Total Cost")
		for _, y := range row.Years {
			fmt.Fprintf(buf, " %*s", amountWidth, FormatCurrency(y.Total))
		}
		fmt.Fprintf(buf, " %*s\n", amountWidth, FormatCurrency(row.Total))

		if !expand {
			continue
		}
		for _, comp := range costComponents {
			fmt.Fprintf(buf, "%-*s %-*s", nameWidth, "", typeWidth, comp.Label)
			sum := decimal.Zero
			for _, y := range row.Years {
				v := comp.Value(y)
				sum = sum.Add(v)
				fmt.Fprintf(buf, " %*s", amountWidth, FormatCurrencyOrBlank(v))
			}
			fmt.Fprintf(buf, " %*s\n", amountWidth, FormatCurrencyOrBlank(sum))
		}
	}

	fmt.Fprintln(buf, strings.Repeat("-", width))
	fmt.Fprintf(buf, "%-*s", nameWidth+typeWidth+1, "Total costs")
	for _, y := range report.CostTable.YearTotals {
		fmt.Fprintf(buf, " %*s", amountWidth, FormatCurrency(y.Total))
	}
	fmt.Fprintf(buf, " %*s\n", amountWidth, FormatCurrency(report.CostTable.GrandTotal))
	fmt.Fprintln(buf)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
