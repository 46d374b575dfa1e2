package compare

import (
	"encoding/csv"
	"strings"
)

// CSVFormatter formats comparison results as CSV
type CSVFormatter struct{}

// Format generates CSV output for comparison results
func (cf *CSVFormatter) Format(compSet *ComparisonSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"Scenario",
		"Type",
		"Tax Year",
		"Gross Salary",
		"Income Tax",
		"National Insurance",
		"Student Loan",
		"Pension Sacrifice",
		"Take-Home Pay",
		"Effective Rate %",
		"Take-Home Diff from Base",
		"Take-Home % Change",
		"Tax Diff from Base",
		"NI Diff from Base",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	if err := writer.Write(cf.formatRow(compSet.BaseResult, "base")); err != nil {
		return "", err
	}

	for i := range compSet.AlternativeResults {
		if err := writer.Write(cf.formatRow(&compSet.AlternativeResults[i], "alternative")); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}

	return sb.String(), nil
}

// formatRow formats a comparison result as a CSV row
func (cf *CSVFormatter) formatRow(result *ComparisonResult, scenarioType string) []string {
	return []string{
		result.ScenarioName,
		scenarioType,
		result.TaxYear,
		result.GrossSalary.StringFixed(2),
		result.IncomeTax.StringFixed(2),
		result.NationalInsurance.StringFixed(2),
		result.StudentLoan.StringFixed(2),
		result.PensionSacrifice.StringFixed(2),
		result.TakeHomePay.StringFixed(2),
		result.EffectiveRate.StringFixed(2),
		result.TakeHomeDiffFromBase.StringFixed(2),
		result.TakeHomePctFromBase.StringFixed(2),
		result.TaxDiffFromBase.StringFixed(2),
		result.NIDiffFromBase.StringFixed(2),
	}
}
