package compare

import (
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"
)

func sampleComparisonSet() *ComparisonSet {
	calc := NewMetricsCalculator()
	base := calc.CalculateMetrics("base", reportWith([3]int64{140075, 51350, 19980}, 500000))
	alt := calc.CalculateComparison(calc.CalculateMetrics("delay_3mo", reportWith([3]int64{120000, 60000, 25000}, 500000)), base)
	alt.Description = "Delay every intervention by 3 months"
	set := &ComparisonSet{
		BaseScenarioName:   "base",
		ConfigPath:         "/path/to/roadmap.yaml",
		BaseResult:         &base,
		AlternativeResults: []ComparisonResult{alt},
	}
	set.Recommendations = GenerateRecommendations(set)
	return set
}

func contains(s, substr string) bool {
	return strings.Contains(s, substr)
}

func TestTableFormatter_Format(t *testing.T) {
	formatter := &TableFormatter{}
	result := formatter.Format(sampleComparisonSet())

	if result == "" {
		t.Fatal("Expected formatted output, got empty string")
	}

	for _, want := range []string{
		"ROADMAP SCENARIO COMPARISON",
		"Base Scenario: base",
		"Configuration: /path/to/roadmap.yaml",
		"base (base)",
		"$140.1K",
		"delay_3mo",
		"Delay every intervention by 3 months",
		"Total Investment: -$6.4K",
		"RECOMMENDATIONS",
		"Lowest Cost: delay_3mo",
	} {
		if !contains(result, want) {
			t.Errorf("Expected %q in output:\n%s", want, result)
		}
	}
}

func TestTableFormatter_Format_EmptyAlternatives(t *testing.T) {
	formatter := &TableFormatter{}
	set := sampleComparisonSet()
	set.AlternativeResults = nil
	set.Recommendations = nil

	result := formatter.Format(set)
	if contains(result, "COMPARISON TO BASE") {
		t.Error("Expected no comparison section without alternatives")
	}
	if contains(result, "RECOMMENDATIONS") {
		t.Error("Expected no recommendations section")
	}
}

func TestTableFormatter_FormatCompact(t *testing.T) {
	formatter := &TableFormatter{}
	result := formatter.FormatCompact(sampleComparisonSet())
	if result != "Base: base | delay_3mo: -$6.4K" {
		t.Errorf("Unexpected compact output: %q", result)
	}
}

func TestTableFormatter_formatDecimal(t *testing.T) {
	tf := &TableFormatter{}
	tests := []struct {
		in   decimal.Decimal
		want string
	}{
		{decimal.NewFromInt(999), "999"},
		{decimal.NewFromInt(1500), "1.5K"},
		{decimal.NewFromInt(2500000), "2.50M"},
	}
	for _, tt := range tests {
		if got := tf.formatDecimal(tt.in); got != tt.want {
			t.Errorf("formatDecimal(%s) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCSVFormatter_Format(t *testing.T) {
	formatter := &CSVFormatter{}
	result, err := formatter.Format(sampleComparisonSet())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	lines := strings.Split(strings.TrimSpace(result), "\n")
	if len(lines) != 3 {
		t.Fatalf("Expected header plus 2 rows, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[0], "Scenario,Type,Year 1 Spend") {
		t.Errorf("Unexpected header: %s", lines[0])
	}
	if !strings.HasPrefix(lines[1], "base,base,140075.00,51350.00,19980.00,211405.00,1500000.00") {
		t.Errorf("Unexpected base row: %s", lines[1])
	}
	if !strings.HasPrefix(lines[2], "delay_3mo,alternative,") {
		t.Errorf("Unexpected alternative row: %s", lines[2])
	}
}

func TestJSONFormatter_Format(t *testing.T) {
	for _, pretty := range []bool{false, true} {
		formatter := &JSONFormatter{Pretty: pretty}
		result, err := formatter.Format(sampleComparisonSet())
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}

		var decoded map[string]any
		if err := json.Unmarshal([]byte(result), &decoded); err != nil {
			t.Fatalf("Expected valid JSON, got %v", err)
		}
		if decoded["baseScenarioName"] != "base" {
			t.Errorf("Expected base name in JSON, got %v", decoded["baseScenarioName"])
		}
		if pretty && !contains(result, "\n  ") {
			t.Error("Expected indented JSON")
		}
	}
}
