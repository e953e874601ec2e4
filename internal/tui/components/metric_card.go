package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/roadmap/internal/tui/tuistyles"
	"github.com/shopspring/decimal"
)

// MetricCard displays a single metric with label, value, and optional trend
type MetricCard struct {
	Label       string
	Value       string
	Trend       *Trend
	Description string
	Width       int
}

// Trend represents a metric's change direction and amount
type Trend struct {
	IsPositive bool
	Change     string // e.g. "-$6,405"
}

// NewMetricCard creates a new metric card
func NewMetricCard(label, value string) *MetricCard {
	return &MetricCard{
		Label: label,
		Value: value,
		Width: 30,
	}
}

// NewSpendCard shows an amount and, when base is given, its change against base.
// Spending less than base counts as a positive trend.
func NewSpendCard(label string, amount decimal.Decimal, base *decimal.Decimal) *MetricCard {
	card := NewMetricCard(label, tuistyles.FormatCurrency(amount))
	if base != nil && !amount.Equal(*base) {
		diff := amount.Sub(*base)
		sign := "+"
		if diff.IsNegative() {
			sign = "-"
		}
		card.WithTrend(diff.IsNegative(), sign+tuistyles.FormatCurrency(diff.Abs()))
	}
	return card
}

// WithTrend adds a trend indicator to the metric card
func (m *MetricCard) WithTrend(isPositive bool, change string) *MetricCard {
	m.Trend = &Trend{
		IsPositive: isPositive,
		Change:     change,
	}
	return m
}

// WithDescription adds a description line
func (m *MetricCard) WithDescription(desc string) *MetricCard {
	m.Description = desc
	return m
}

// WithWidth sets the card width
func (m *MetricCard) WithWidth(width int) *MetricCard {
	m.Width = width
	return m
}

// Render returns the styled metric card
func (m *MetricCard) Render() string {
	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(tuistyles.ColorBorder).
		Padding(0, 1).
		Width(m.Width)

	return cardStyle.Render(m.content("\n"))
}

// RenderCompact returns an inline version without border
func (m *MetricCard) RenderCompact() string {
	label := tuistyles.MetricLabelStyle.Render(m.Label + ":")
	value := tuistyles.MetricValueStyle.Render(m.Value)
	return label + " " + value + m.trend(" ")
}

func (m *MetricCard) content(sep string) string {
	out := tuistyles.MetricLabelStyle.Render(m.Label) + sep + tuistyles.MetricValueStyle.Render(m.Value) + m.trend(sep)
	if m.Description != "" {
		out += sep + tuistyles.SubtitleStyle.Render(m.Description)
	}
	return out
}

func (m *MetricCard) trend(sep string) string {
	if m.Trend == nil {
		return ""
	}
	arrow := tuistyles.TrendIndicator(m.Trend.IsPositive)
	return sep + tuistyles.MetricTrendStyle(m.Trend.IsPositive).Render(fmt.Sprintf("%s %s", arrow, m.Trend.Change))
}

// MetricGrid renders multiple metric cards in rows of columns
func MetricGrid(cards []*MetricCard, columns int) string {
	if len(cards) == 0 || columns <= 0 {
		return ""
	}

	rows := []string{}
	currentRow := []string{}

	for i, card := range cards {
		currentRow = append(currentRow, card.Render())
		if (i+1)%columns == 0 || i == len(cards)-1 {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, currentRow...))
			currentRow = []string{}
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
