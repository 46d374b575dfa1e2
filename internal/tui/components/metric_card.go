package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/takehome/internal/tui/tuistyles"
	"github.com/shopspring/decimal"
)

// MetricCard displays a single amount with label and optional change
type MetricCard struct {
	Label       string
	Value       decimal.Decimal
	Change      *decimal.Decimal
	HigherIsBad bool // Colour increases red (taxes)
	Description string
	Width       int
}

// NewMetricCard creates a new metric card
func NewMetricCard(label string, value decimal.Decimal) *MetricCard {
	return &MetricCard{
		Label: label,
		Value: value,
		Width: 22,
	}
}

// WithChange adds the difference from a reference value
func (m *MetricCard) WithChange(change decimal.Decimal, higherIsBad bool) *MetricCard {
	m.Change = &change
	m.HigherIsBad = higherIsBad
	return m
}

// WithDescription adds a description/subtitle
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
	content := tuistyles.MetricLabelStyle.Render(m.Label) + "\n" +
		tuistyles.MetricValueStyle.Render(tuistyles.FormatCurrency(m.Value))

	if m.Change != nil && !m.Change.IsZero() {
		up := m.Change.IsPositive()
		good := up != m.HigherIsBad
		sign := ""
		if up {
			sign = "+"
		}
		content += "\n" + tuistyles.MetricTrendStyle(good).Render(
			fmt.Sprintf("%s %s%s", tuistyles.TrendIndicator(up), sign, tuistyles.FormatCurrency(*m.Change)))
	}

	if m.Description != "" {
		content += "\n" + tuistyles.SubtitleStyle.Render(m.Description)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(tuistyles.ColorBorder).
		Padding(0, 1).
		Width(m.Width).
		Render(content)
}

// MetricGrid renders multiple metric cards in a grid layout
func MetricGrid(cards []*MetricCard, columns int) string {
	if len(cards) == 0 {
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
