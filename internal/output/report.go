package output

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rgehrsitz/roadmap/internal/domain"
	"github.com/shopspring/decimal"
)

// Formatter renders a roadmap report into bytes
type Formatter interface {
	Name() string
	Format(report *domain.RoadmapReport) ([]byte, error)
}

// FormatterFunc adapts a plain function into a Formatter
type FormatterFunc struct {
	ID string
	F  func(report *domain.RoadmapReport) ([]byte, error)
}

func (f FormatterFunc) Name() string { return f.ID }

func (f FormatterFunc) Format(report *domain.RoadmapReport) ([]byte, error) { return f.F(report) }

// Formatters lists every built-in output format
func Formatters() []Formatter {
	return []Formatter{
		ConsoleVerboseFormatter{},
		ConsoleFormatter{},
		CSVFormatter{},
		JSONFormatter{Indent: true},
		HTMLFormatter{},
	}
}

// FormatNames returns the names accepted by GetFormatterByName
func FormatNames() []string {
	names := make([]string, 0, len(Formatters()))
	for _, f := range Formatters() {
		names = append(names, f.Name())
	}
	return names
}

// GetFormatterByName returns the formatter registered under name, or nil
func GetFormatterByName(name string) Formatter {
	switch strings.ToLower(name) {
	case "console-expanded", "expanded":
		return ConsoleVerboseFormatter{Expand: true}
	case "text":
		return ConsoleVerboseFormatter{}
	}
	for _, f := range Formatters() {
		if f.Name() == strings.ToLower(name) {
			return f
		}
	}
	return nil
}

// WriteFormatted renders report with f into a timestamped file in the working directory
func WriteFormatted(f Formatter, report *domain.RoadmapReport, ext string) (string, error) {
	data, err := f.Format(report)
	if err != nil {
		return "", err
	}
	filename := fmt.Sprintf("roadmap_report_%s.%s", time.Now().Format("20060102_150405"), ext)
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", filename, err)
	}
	return filename, nil
}

// FormatCurrency renders whole dollars with thousands separators, e.g. $140,075
func FormatCurrency(amount decimal.Decimal) string {
	rounded := amount.Round(0)
	sign := ""
	if rounded.IsNegative() {
		sign = "-"
		rounded = rounded.Neg()
	}
	return sign + "$" + groupThousands(rounded.String())
}

// FormatCurrencyOrBlank renders zero as an empty cell
func FormatCurrencyOrBlank(amount decimal.Decimal) string {
	if amount.Round(0).IsZero() {
		return ""
	}
	return FormatCurrency(amount)
}

// FormatPercentage formats a decimal as percentage
func FormatPercentage(amount decimal.Decimal) string {
	return amount.StringFixed(1) + "%"
}

// FormatDate renders a date the way the roadmap labels its years
func FormatDate(t time.Time) string {
	return t.Format("02/01/2006")
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// budgetVerdict returns the over/under label and the absolute difference
func budgetVerdict(b domain.YearlyBudget) (string, decimal.Decimal) {
	if b.IsOverBudget {
		return "Over by", b.Variance().Abs()
	}
	return "Under by", b.Variance().Abs()
}

// gaugeFill returns the filled share of a gauge, capped at 100
func gaugeFill(b domain.YearlyBudget) decimal.Decimal {
	u := b.Utilization()
	if b.Allocated.IsZero() && b.Spent.IsPositive() {
		return decimal.NewFromInt(100)
	}
	if u.GreaterThan(decimal.NewFromInt(100)) {
		return decimal.NewFromInt(100)
	}
	return u
}

// costComponents names the four expanded rows of the cost table in display order
var costComponents = []struct {
	Label string
	Value func(domain.YearlyCostBreakdown) decimal.Decimal
}{
	{"Implementation Cost (fixed)", func(b domain.YearlyCostBreakdown) decimal.Decimal { return b.ImplementationCost }},
	{"Ongoing Cost (PEPM)", func(b domain.YearlyCostBreakdown) decimal.Decimal { return b.PEPMCost }},
	{"Ongoing Cost (fixed annual)", func(b domain.YearlyCostBreakdown) decimal.Decimal { return b.FixedAnnualCost }},
	{"One Time Fixed Fee", func(b domain.YearlyCostBreakdown) decimal.Decimal { return b.OneTimeFixedFee }},
}
