package breakeven

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// TableFormatter formats optimization results as a console table
type TableFormatter struct{}

// Format generates a formatted table for optimization result
func (tf *TableFormatter) Format(result *OptimizationResult) string {
	var sb strings.Builder

	sb.WriteString("BREAK-EVEN RESULTS\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")

	sb.WriteString(fmt.Sprintf("Profile:             %s\n", result.Profile))
	sb.WriteString(fmt.Sprintf("Solve For:           %s\n", result.Request.Target))
	sb.WriteString(fmt.Sprintf("Target Take-Home:    £%s\n", tf.formatCurrency(result.Request.Constraints.TargetTakeHome)))
	sb.WriteString(fmt.Sprintf("Status:              %s\n", tf.formatStatus(result.Success)))
	sb.WriteString(fmt.Sprintf("Iterations:          %d\n", result.Iterations))
	if result.ConvergenceInfo != "" {
		sb.WriteString(fmt.Sprintf("Convergence:         %s\n", result.ConvergenceInfo))
	}
	sb.WriteString("\n")

	sb.WriteString("SOLUTION\n")
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	if result.OptimalGrossSalary != nil {
		sb.WriteString(fmt.Sprintf("Gross Salary:        £%s\n", tf.formatCurrency(*result.OptimalGrossSalary)))
	}
	if result.OptimalPensionPercent != nil {
		pct := result.OptimalPensionPercent.Mul(decimal.NewFromInt(100))
		sb.WriteString(fmt.Sprintf("Pension Sacrifice:   %s%% (£%s)\n", pct.StringFixed(2), tf.formatCurrency(result.Breakdown.PensionSacrifice)))
	}
	sb.WriteString("\n")

	sb.WriteString("RESULTING PAY\n")
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Income Tax:          £%s\n", tf.formatCurrency(result.Breakdown.TaxPayable)))
	sb.WriteString(fmt.Sprintf("National Insurance:  £%s\n", tf.formatCurrency(result.Breakdown.NationalInsurance)))
	sb.WriteString(fmt.Sprintf("Student Loan:        £%s\n", tf.formatCurrency(result.Breakdown.StudentLoanRepayment)))
	sb.WriteString(fmt.Sprintf("Take-Home Pay:       £%s\n", tf.formatCurrency(result.Breakdown.TakeHomePay)))
	diff := result.Breakdown.TakeHomePay.Sub(result.Request.Constraints.TargetTakeHome)
	sb.WriteString(fmt.Sprintf("Above Target By:     %s£%s\n", tf.deltaSymbol(diff), tf.formatCurrency(diff.Abs())))
	sb.WriteString("\n")

	if result.BaseBreakdown != nil {
		sb.WriteString("COMPARISON TO CURRENT PROFILE\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		sb.WriteString(fmt.Sprintf("Take-Home Change:    %s£%s\n",
			tf.deltaSymbol(result.TakeHomeDiffFromBase), tf.formatCurrency(result.TakeHomeDiffFromBase.Abs())))
		sb.WriteString(fmt.Sprintf("Tax + NI Change:     %s£%s\n",
			tf.deltaSymbol(result.TaxDiffFromBase), tf.formatCurrency(result.TaxDiffFromBase.Abs())))
		sb.WriteString("\n")
	}

	return sb.String()
}

// FormatMultiDimensional formats results from multiple optimizations
func (tf *TableFormatter) FormatMultiDimensional(result *MultiDimensionalResult) string {
	var sb strings.Builder

	sb.WriteString("MULTI-TARGET BREAK-EVEN RESULTS\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n\n")

	sb.WriteString(fmt.Sprintf("%-20s %15s %15s %12s %15s\n",
		"Solve For", "Solution", "Take-Home", "Tax + NI", "Iterations"))
	sb.WriteString(strings.Repeat("-", 80) + "\n")

	for _, res := range result.Results {
		solution := ""
		if res.OptimalGrossSalary != nil {
			solution = "£" + tf.formatShort(*res.OptimalGrossSalary)
		} else if res.OptimalPensionPercent != nil {
			solution = res.OptimalPensionPercent.Mul(decimal.NewFromInt(100)).StringFixed(2) + "%"
		}
		sb.WriteString(fmt.Sprintf("%-20s %15s %15s %12s %15d\n",
			tf.truncate(string(res.Request.Target), 20),
			solution,
			"£"+tf.formatShort(res.Breakdown.TakeHomePay),
			"£"+tf.formatShort(totalTax(&res)),
			res.Iterations))
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

func (tf *TableFormatter) formatStatus(success bool) string {
	if success {
		return "✓ Converged"
	}
	return "⚠ Did not converge"
}

func (tf *TableFormatter) formatCurrency(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func (tf *TableFormatter) formatShort(d decimal.Decimal) string {
	if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(1000000)) {
		millions := d.Div(decimal.NewFromInt(1000000))
		return millions.StringFixed(2) + "M"
	} else if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(1000)) {
		thousands := d.Div(decimal.NewFromInt(1000))
		return thousands.StringFixed(1) + "K"
	}
	return d.StringFixed(0)
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
