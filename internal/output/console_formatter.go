package output

import (
	"bytes"
	"fmt"

	"github.com/rgehrsitz/roadmap/internal/domain"
)

// ConsoleFormatter prints a short budget summary, one line per year
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console-lite" }

func (c ConsoleFormatter) Format(report *domain.RoadmapReport) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "ROADMAP BUDGET SUMMARY")
	fmt.Fprintln(&buf, "======================")
	if report.Name != "" {
		fmt.Fprintf(&buf, "Roadmap: %s\n", report.Name)
	}
	for k, b := range report.Budgets {
		verdict, diff := budgetVerdict(b)
		fmt.Fprintf(&buf, "Year %d (%s): spent %s of %s, %s %s\n",
			k+1, report.Windows[k].Label(), FormatCurrency(b.Spent), FormatCurrency(b.Allocated), verdict, FormatCurrency(diff))
	}
	fmt.Fprintf(&buf, "Total investment: %s\n", FormatCurrency(report.CostTable.GrandTotal))
	if report.IsOverBudget() {
		fmt.Fprintln(&buf, "Status: OVER BUDGET")
	} else {
		fmt.Fprintln(&buf, "Status: within budget")
	}
	return buf.Bytes(), nil
}
