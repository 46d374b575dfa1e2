package output

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/takehome/internal/domain"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	sectionStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	totalStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
)

// ConsoleFormatter renders a detailed breakdown of each profile
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(results *domain.ProfileComparison) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintln(&buf, strings.Repeat("=", 60))
	fmt.Fprintln(&buf, titleStyle.Render("UK TAKE-HOME PAY BREAKDOWN"))
	fmt.Fprintln(&buf, strings.Repeat("=", 60))
	fmt.Fprintln(&buf)

	for i, profile := range results.Profiles {
		fmt.Fprintf(&buf, "PROFILE %d: %s (%s)\n", i+1, profile.Name, profile.Breakdown.TaxYear)
		fmt.Fprintln(&buf, strings.Repeat("-", 60))
		WriteBreakdown(&buf, profile.Breakdown)
		fmt.Fprintln(&buf)
	}

	if len(results.Profiles) > 1 {
		writeSummaryTable(&buf, results)
	}

	return buf.Bytes(), nil
}

// WriteBreakdown writes every figure of a breakdown as labelled lines
func WriteBreakdown(w io.Writer, tb domain.TaxBreakdown) {
	line := func(label string, value string) {
		fmt.Fprintf(w, "  %-28s %14s\n", label+":", value)
	}

	fmt.Fprintln(w, sectionStyle.Render("INCOME"))
	line("Gross Salary", FormatCurrency(tb.GrossSalary))
	if bik := tb.TotalIncome.Sub(tb.GrossSalary); !bik.IsZero() {
		line("Benefits in Kind", FormatCurrency(bik))
	}
	line("Total Income", FormatCurrency(tb.TotalIncome))
	if !tb.PensionSacrifice.IsZero() {
		line("Pension Sacrifice", FormatCurrency(tb.PensionSacrifice))
	}
	line("Income Deductions", FormatCurrency(tb.IncomeDeductions))
	fmt.Fprintln(w)

	fmt.Fprintln(w, sectionStyle.Render("ALLOWANCES"))
	line("Base Personal Allowance", FormatCurrency(tb.BasePersonalAllowance))
	line("Tapered Allowance", FormatCurrency(tb.MaxPersonalAllowance))
	line("Personal Allowance Used", FormatCurrency(tb.PersonalAllowance))
	line("Taxable Income", FormatCurrency(tb.TaxableIncome))
	fmt.Fprintln(w)

	fmt.Fprintln(w, sectionStyle.Render("INCOME TAX"))
	band := func(label string, u domain.BandUsage) {
		fmt.Fprintf(w, "  %-28s %14s @ %-4s %12s\n", fmt.Sprintf("%s:", label),
			FormatCurrency(u.Usage), FormatRate(u.Rate), FormatCurrency(u.Tax))
	}
	band("Basic Rate", tb.BasicRate)
	band("Higher Rate", tb.HigherRate)
	band("Additional Rate", tb.AdditionalRate)
	line("Total Income Tax", FormatCurrency(tb.TaxPayable))
	fmt.Fprintln(w)

	fmt.Fprintln(w, sectionStyle.Render("NATIONAL INSURANCE"))
	band("Primary Threshold Band", tb.NatInsPrimaryThreshold)
	band("Upper Earnings Band", tb.NatInsUpperEarnings)
	line("Total National Insurance", FormatCurrency(tb.NationalInsurance))
	fmt.Fprintln(w)

	if !tb.StudentLoanRepayment.IsZero() {
		fmt.Fprintln(w, sectionStyle.Render("STUDENT LOAN"))
		line("Repayment", FormatCurrency(tb.StudentLoanRepayment))
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "  %-28s %14s\n", "TAKE-HOME PAY:", totalStyle.Render(FormatCurrency(tb.TakeHomePay)))
	line("Total Deductions", FormatCurrency(tb.TotalDeductions()))
	line("Effective Tax Rate", FormatRate(tb.EffectiveTaxRate().Round(4)))
}

func writeSummaryTable(w io.Writer, results *domain.ProfileComparison) {
	fmt.Fprintln(w, sectionStyle.Render("SUMMARY"))
	fmt.Fprintf(w, "%-20s %10s %14s %12s %12s %14s\n",
		"Profile", "Tax Year", "Gross", "Income Tax", "NI", "Take-Home")
	fmt.Fprintln(w, strings.Repeat("-", 87))
	for _, p := range results.Profiles {
		fmt.Fprintf(w, "%-20s %10s %14s %12s %12s %14s\n",
			truncate(p.Name, 20),
			p.Breakdown.TaxYear,
			FormatCurrency(p.Breakdown.GrossSalary),
			FormatCurrency(p.Breakdown.TaxPayable),
			FormatCurrency(p.Breakdown.NationalInsurance),
			FormatCurrency(p.Breakdown.TakeHomePay))
	}
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
