package output

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/rgehrsitz/takehome/internal/domain"
	"github.com/shopspring/decimal"
)

// SensitivityFormatter renders parameter sweeps as a table or JSON
type SensitivityFormatter struct {
	format string
}

// NewSensitivityFormatter creates a formatter for "table" or "json"
func NewSensitivityFormatter(format string) *SensitivityFormatter {
	return &SensitivityFormatter{format: strings.ToLower(strings.TrimSpace(format))}
}

// FormatSensitivityAnalysis renders every analysis in order
func (sf *SensitivityFormatter) FormatSensitivityAnalysis(analyses []*domain.ParameterSensitivityAnalysis) (string, error) {
	switch sf.format {
	case "json":
		data, err := json.MarshalIndent(analyses, "", "  ")
		if err != nil {
			return "", err
		}
		return string(data) + "\n", nil
	case "", "table", "console":
		var sb strings.Builder
		for _, a := range analyses {
			sf.writeTable(&sb, a)
		}
		return sb.String(), nil
	default:
		return "", fmt.Errorf("unsupported format: %s (expected table or json)", sf.format)
	}
}

func (sf *SensitivityFormatter) writeTable(sb *strings.Builder, a *domain.ParameterSensitivityAnalysis) {
	fmt.Fprintf(sb, "SENSITIVITY: %s for %s (%s)\n", a.Parameter.Name, a.ProfileName, a.TaxYear)
	sb.WriteString(strings.Repeat("=", 80) + "\n")

	rows := make([][]string, 0, len(a.Points))
	for i, p := range a.Points {
		change, marginal := "", ""
		if i > 0 {
			change = FormatCurrency(p.TakeHomeChange)
			if p.TakeHomeChange.IsPositive() {
				change = "+" + change
			}
			marginal = FormatRate(p.MarginalRate)
		}
		rows = append(rows, []string{
			sf.formatValue(a.Parameter, p.Value),
			FormatCurrency(p.Breakdown.TaxPayable),
			FormatCurrency(p.Breakdown.NationalInsurance),
			FormatCurrency(p.Breakdown.StudentLoanRepayment),
			FormatCurrency(p.Breakdown.TakeHomePay),
			change,
			marginal,
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(a.Parameter.Name, "Income Tax", "NI", "Student Loan", "Take-Home", "Change", "Marginal").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			style := lipgloss.NewStyle().Padding(0, 1)
			if row == table.HeaderRow {
				return style.Bold(true)
			}
			if col > 0 {
				return style.Align(lipgloss.Right)
			}
			return style
		})
	sb.WriteString(t.String())
	sb.WriteString("\n")

	for _, rec := range a.Summary.Recommendations {
		fmt.Fprintf(sb, "• %s\n", rec)
	}
	sb.WriteString("\n")
}

func (sf *SensitivityFormatter) formatValue(param domain.SensitivityParameter, v decimal.Decimal) string {
	if param.Unit == "percent" {
		return FormatRate(v)
	}
	return FormatCurrency(v)
}
