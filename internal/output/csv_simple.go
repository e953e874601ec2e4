package output

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/rgehrsitz/roadmap/internal/domain"
	"github.com/shopspring/decimal"
)

// CSVFormatter writes one row per intervention and cost type, followed by totals
type CSVFormatter struct{}

func (c CSVFormatter) Name() string { return "csv" }

func (c CSVFormatter) Format(report *domain.RoadmapReport) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)

	header := []string{"InterventionID", "Intervention", "CostType"}
	for _, win := range report.Windows {
		header = append(header, win.Label())
	}
	header = append(header, "Total")
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for _, row := range report.CostTable.Rows {
		id := strconv.Itoa(row.InterventionID)
		for _, comp := range costComponents {
			record := []string{id, row.Name, comp.Label}
			sum := decimal.Zero
			for _, y := range row.Years {
				v := comp.Value(y)
				sum = sum.Add(v)
				record = append(record, v.StringFixed(2))
			}
			record = append(record, sum.StringFixed(2))
			if err := w.Write(record); err != nil {
				return nil, err
			}
		}
		record := []string{id, row.Name, "Total Cost"}
		for _, y := range row.Years {
			record = append(record, y.Total.StringFixed(2))
		}
		record = append(record, row.Total.StringFixed(2))
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	totals := []string{"", "Total costs", ""}
	allocated := []string{"", "Allocated budget", ""}
	allocatedSum := decimal.Zero
	for k, y := range report.CostTable.YearTotals {
		totals = append(totals, y.Total.StringFixed(2))
		allocated = append(allocated, report.Budgets[k].Allocated.StringFixed(2))
		allocatedSum = allocatedSum.Add(report.Budgets[k].Allocated)
	}
	totals = append(totals, report.CostTable.GrandTotal.StringFixed(2))
	allocated = append(allocated, allocatedSum.StringFixed(2))
	if err := w.Write(totals); err != nil {
		return nil, err
	}
	if err := w.Write(allocated); err != nil {
		return nil, err
	}

	w.Flush()
	return buf.Bytes(), w.Error()
}
