package compare

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/rgehrsitz/takehome/internal/output"
	"github.com/shopspring/decimal"
)

// TableFormatter formats comparison results as a console table
type TableFormatter struct{}

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

// Format generates a formatted table comparing scenarios
func (tf *TableFormatter) Format(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString("TAKE-HOME PAY SCENARIO COMPARISON\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Base Scenario: %s\n", compSet.BaseScenarioName))
	if compSet.ConfigPath != "" {
		sb.WriteString(fmt.Sprintf("Configuration: %s\n", compSet.ConfigPath))
	}
	sb.WriteString("\n")

	rows := [][]string{tf.formatRow(compSet.BaseResult, true)}
	for i := range compSet.AlternativeResults {
		rows = append(rows, tf.formatRow(&compSet.AlternativeResults[i], false))
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Scenario", "Tax Year", "Gross", "Income Tax", "NI", "Take-Home", "Eff. Rate").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if col == 0 {
				return cellStyle
			}
			return cellStyle.Align(lipgloss.Right)
		})
	sb.WriteString(t.String())
	sb.WriteString("\n")

	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString("\nCOMPARISON TO BASE\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")

		for _, alt := range compSet.AlternativeResults {
			sb.WriteString(fmt.Sprintf("\n%s:\n", alt.ScenarioName))
			if alt.Description != "" {
				sb.WriteString(fmt.Sprintf("  %s\n", alt.Description))
			}

			sb.WriteString(fmt.Sprintf("  Take-Home:          %s (%s%%)\n",
				tf.formatDelta(alt.TakeHomeDiffFromBase),
				alt.TakeHomePctFromBase.StringFixed(1)))

			if !alt.TaxDiffFromBase.IsZero() {
				sb.WriteString(fmt.Sprintf("  Income Tax:         %s\n", tf.formatDelta(alt.TaxDiffFromBase)))
			}
			if !alt.NIDiffFromBase.IsZero() {
				sb.WriteString(fmt.Sprintf("  National Insurance: %s\n", tf.formatDelta(alt.NIDiffFromBase)))
			}
		}
		sb.WriteString("\n")
	}

	if len(compSet.Recommendations) > 0 {
		sb.WriteString("\nRECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, rec := range compSet.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// formatRow formats a single scenario row
func (tf *TableFormatter) formatRow(result *ComparisonResult, isBase bool) []string {
	name := result.ScenarioName
	if isBase {
		name += " (base)"
	}

	return []string{
		tf.truncate(name, 32),
		result.TaxYear,
		output.FormatCurrency(result.GrossSalary),
		output.FormatCurrency(result.IncomeTax),
		output.FormatCurrency(result.NationalInsurance),
		output.FormatCurrency(result.TakeHomePay),
		output.FormatPercentage(result.EffectiveRate),
	}
}

// formatDelta formats a signed difference in pounds
func (tf *TableFormatter) formatDelta(delta decimal.Decimal) string {
	if delta.IsPositive() {
		return "+" + output.FormatCurrency(delta)
	}
	return output.FormatCurrency(delta)
}

// truncate truncates a string to maxLen
func (tf *TableFormatter) truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// FormatCompact creates a compact single-line summary for each scenario
func (tf *TableFormatter) FormatCompact(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Base: %s | ", compSet.BaseScenarioName))

	for i, alt := range compSet.AlternativeResults {
		if i > 0 {
			sb.WriteString(" | ")
		}
		change := "="
		if !alt.TakeHomeDiffFromBase.IsZero() {
			change = tf.formatDelta(alt.TakeHomeDiffFromBase)
		}
		sb.WriteString(fmt.Sprintf("%s: %s", alt.ScenarioName, change))
	}

	return sb.String()
}
