package breakeven

import (
	"fmt"
	"strings"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/roadmap/internal/output"
)

// TableFormatter formats solver results as a console table
type TableFormatter struct{}

// Format generates a formatted table for one solver result
func (tf *TableFormatter) Format(result *OptimizationResult) string {
	var sb strings.Builder

	sb.WriteString("BUDGET BREAK-EVEN RESULTS\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")

	sb.WriteString(fmt.Sprintf("Solved For:          %s\n", result.Target))
	if result.InterventionID != 0 {
		sb.WriteString(fmt.Sprintf("Intervention:        %d\n", result.InterventionID))
	}
	sb.WriteString(fmt.Sprintf("Status:              %s\n", tf.formatStatus(result.Success)))
	sb.WriteString(fmt.Sprintf("Iterations:          %d\n", result.Iterations))
	if result.ConvergenceInfo != "" {
		sb.WriteString(fmt.Sprintf("Convergence:         %s\n", result.ConvergenceInfo))
	}
	sb.WriteString("\n")

	if !result.Success {
		return sb.String()
	}

	sb.WriteString("BREAK-EVEN VALUE\n")
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	sb.WriteString(tf.parameterLine(result) + "\n\n")

	sb.WriteString("ROADMAP AT BREAK-EVEN\n")
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	for k, spend := range result.YearSpend {
		sb.WriteString(fmt.Sprintf("Year %d Spend:        %s\n", k+1, output.FormatCurrency(spend)))
	}
	sb.WriteString(fmt.Sprintf("Total Cost:          %s\n", output.FormatCurrency(result.TotalCost)))
	sb.WriteString(fmt.Sprintf("Peak Utilization:    %s\n", output.FormatPercentage(result.PeakUtilization)))
	sb.WriteString("\n")

	if !result.CostDiffFromBase.IsZero() {
		sb.WriteString("COMPARISON TO ROADMAP AS CONFIGURED\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		sb.WriteString(fmt.Sprintf("Total Cost Change:   %s%s\n",
			tf.deltaSymbol(result.CostDiffFromBase), output.FormatCurrency(result.CostDiffFromBase.Abs())))
		sb.WriteString("\n")
	}

	return sb.String()
}

// FormatMultiDimensional formats the results of every target
func (tf *TableFormatter) FormatMultiDimensional(result *MultiDimensionalResult) string {
	var sb strings.Builder

	sb.WriteString("BUDGET BREAK-EVEN SUMMARY\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	if result.InterventionName != "" {
		sb.WriteString(fmt.Sprintf("Intervention: %s\n", result.InterventionName))
	}
	sb.WriteString("\n")

	sb.WriteString(fmt.Sprintf("%-12s %-28s %12s %12s %10s\n", "Solved For", "Break-Even Value", "Total Cost", "vs Base", "Peak"))
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	for _, res := range result.Results {
		sb.WriteString(fmt.Sprintf("%-12s %-28s %12s %12s %10s\n",
			res.Target,
			tf.truncate(tf.parameterValue(&res), 28),
			tf.formatShort(res.TotalCost),
			tf.deltaSymbol(res.CostDiffFromBase)+tf.formatShort(res.CostDiffFromBase.Abs()),
			output.FormatPercentage(res.PeakUtilization)))
	}
	sb.WriteString("\n")

	if len(result.Recommendations) > 0 {
		sb.WriteString("RECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, rec := range result.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// JSONFormatter formats results as JSON
type JSONFormatter struct {
	Pretty bool
}

// Format generates JSON output
func (jf *JSONFormatter) Format(result *OptimizationResult) (string, error) {
	return jf.marshal(result)
}

// FormatMultiDimensional formats multi-dimensional results as JSON
func (jf *JSONFormatter) FormatMultiDimensional(result *MultiDimensionalResult) (string, error) {
	return jf.marshal(result)
}

func (jf *JSONFormatter) marshal(v any) (string, error) {
	var data []byte
	var err error

	if jf.Pretty {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}

	if err != nil {
		return "", err
	}

	return string(data), nil
}

// Helper methods

func (tf *TableFormatter) parameterLine(result *OptimizationResult) string {
	switch {
	case result.OptimalHeadcount != nil:
		return fmt.Sprintf("Eligible Employees:  %d", *result.OptimalHeadcount)
	case result.OptimalPEPM != nil:
		return fmt.Sprintf("PEPM Rate:           $%s", result.OptimalPEPM.StringFixed(2))
	case result.OptimalDelayMonths != nil:
		return fmt.Sprintf("Delay:               %d months", *result.OptimalDelayMonths)
	case result.RequiredBudget != nil:
		return fmt.Sprintf("Yearly Budget:       %s", output.FormatCurrency(*result.RequiredBudget))
	}
	return "n/a"
}

func (tf *TableFormatter) parameterValue(result *OptimizationResult) string {
	return result.Value()
}

func (tf *TableFormatter) formatStatus(success bool) string {
	if success {
		return "✓ Converged"
	}
	return "⚠ Did not converge"
}

func (tf *TableFormatter) formatShort(d decimal.Decimal) string {
	if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(1000000)) {
		millions := d.Div(decimal.NewFromInt(1000000))
		return "$" + millions.StringFixed(2) + "M"
	} else if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(1000)) {
		thousands := d.Div(decimal.NewFromInt(1000))
		return "$" + thousands.StringFixed(1) + "K"
	}
	return "$" + d.StringFixed(0)
}

func (tf *TableFormatter) deltaSymbol(delta decimal.Decimal) string {
	if delta.IsPositive() {
		return "+"
	} else if delta.IsNegative() {
		return "-"
	}
	return " "
}

func (tf *TableFormatter) truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
