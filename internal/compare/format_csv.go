package compare

import (
	"encoding/csv"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

// CSVFormatter formats comparison results as CSV
type CSVFormatter struct{}

// Format generates CSV output for comparison results
func (cf *CSVFormatter) Format(compSet *ComparisonSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"Scenario",
		"Type",
		"Year 1 Spend",
		"Year 2 Spend",
		"Year 3 Spend",
		"Total Investment",
		"Total Allocated",
		"Over Budget Years",
		"Peak Utilization %",
		"Total Diff from Base",
		"Total % Change",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	if compSet.BaseResult != nil {
		if err := writer.Write(cf.formatRow(compSet.BaseResult, "base")); err != nil {
			return "", err
		}
	}

	for _, alt := range compSet.AlternativeResults {
		if err := writer.Write(cf.formatRow(&alt, "alternative")); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}

	return sb.String(), nil
}

// formatRow formats a comparison result as a CSV row
func (cf *CSVFormatter) formatRow(result *ComparisonResult, scenarioType string) []string {
	years := lo.Map(result.OverBudgetYears, func(y int, _ int) string { return strconv.Itoa(y) })
	return []string{
		result.ScenarioName,
		scenarioType,
		result.YearSpend[0].StringFixed(2),
		result.YearSpend[1].StringFixed(2),
		result.YearSpend[2].StringFixed(2),
		result.TotalInvestment.StringFixed(2),
		result.TotalAllocated.StringFixed(2),
		strings.Join(years, " "),
		result.PeakUtilization.StringFixed(1),
		result.TotalDiffFromBase.StringFixed(2),
		result.TotalPctFromBase.StringFixed(2),
	}
}
