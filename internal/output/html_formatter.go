package output

import (
	"bytes"
	_ "embed"
	"html/template"

	"github.com/rgehrsitz/roadmap/internal/domain"
	"github.com/shopspring/decimal"
)

// HTMLFormatter produces a standalone HTML page with gauges, timeline and cost table
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"curr":      FormatCurrency,
	"currBlank": FormatCurrencyOrBlank,
	"pct":       FormatPercentage,
	"date":      FormatDate,
	"fill":      gaugeFill,
	"verdict": func(b domain.YearlyBudget) string {
		v, _ := budgetVerdict(b)
		return v
	},
	"diff": func(b domain.YearlyBudget) decimal.Decimal {
		_, d := budgetVerdict(b)
		return d
	},
	"inc": func(i int) int { return i + 1 },
}).Parse(htmlTemplateSource))

type htmlComponentRow struct {
	Label  string
	Values []decimal.Decimal
}

type htmlCostRow struct {
	domain.CostRow
	Components []htmlComponentRow
}

func (h HTMLFormatter) Format(report *domain.RoadmapReport) ([]byte, error) {
	rows := make([]htmlCostRow, 0, len(report.CostTable.Rows))
	for _, r := range report.CostTable.Rows {
		row := htmlCostRow{CostRow: r}
		for _, comp := range costComponents {
			values := make([]decimal.Decimal, 0, len(r.Years))
			for _, y := range r.Years {
				values = append(values, comp.Value(y))
			}
			row.Components = append(row.Components, htmlComponentRow{Label: comp.Label, Values: values})
		}
		rows = append(rows, row)
	}

	var buf bytes.Buffer
	data := struct {
		*domain.RoadmapReport
		Rows        []htmlCostRow
		Assumptions []string
	}{report, rows, DefaultAssumptions}
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
