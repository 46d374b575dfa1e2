package compare

import (
	"fmt"

	"github.com/rgehrsitz/takehome/internal/domain"
	"github.com/shopspring/decimal"
)

// ComparisonResult represents a single scenario with its headline figures
type ComparisonResult struct {
	ScenarioName string              `json:"scenarioName"`
	Description  string              `json:"description,omitempty"`
	Breakdown    domain.TaxBreakdown `json:"breakdown"`

	// Key Metrics
	TaxYear           string          `json:"taxYear"`
	GrossSalary       decimal.Decimal `json:"grossSalary"`
	IncomeTax         decimal.Decimal `json:"incomeTax"`
	NationalInsurance decimal.Decimal `json:"nationalInsurance"`
	StudentLoan       decimal.Decimal `json:"studentLoan"`
	PensionSacrifice  decimal.Decimal `json:"pensionSacrifice"`
	TakeHomePay       decimal.Decimal `json:"takeHomePay"`
	EffectiveRate     decimal.Decimal `json:"effectiveRate"` // income tax + NI over gross, as a percentage

	// Comparison to Base
	TakeHomeDiffFromBase decimal.Decimal `json:"takeHomeDiffFromBase"`
	TakeHomePctFromBase  decimal.Decimal `json:"takeHomePctFromBase"`
	TaxDiffFromBase      decimal.Decimal `json:"taxDiffFromBase"`
	NIDiffFromBase       decimal.Decimal `json:"niDiffFromBase"`
}

// TotalTax returns income tax plus National Insurance
func (r *ComparisonResult) TotalTax() decimal.Decimal {
	return r.IncomeTax.Add(r.NationalInsurance)
}

// ComparisonSet represents a collection of scenario comparisons
type ComparisonSet struct {
	BaseScenarioName   string             `json:"baseScenarioName"`
	BaseResult         *ComparisonResult  `json:"baseResult"`
	AlternativeResults []ComparisonResult `json:"alternativeResults"`
	Recommendations    []string           `json:"recommendations"`
	ConfigPath         string             `json:"configPath,omitempty"`
}

// MetricsCalculator extracts key metrics from tax breakdowns
type MetricsCalculator struct{}

// NewMetricsCalculator creates a new metrics calculator
func NewMetricsCalculator() *MetricsCalculator {
	return &MetricsCalculator{}
}

// CalculateMetrics computes the headline figures for a named breakdown
func (mc *MetricsCalculator) CalculateMetrics(name string, tb domain.TaxBreakdown) ComparisonResult {
	return ComparisonResult{
		ScenarioName:      name,
		Breakdown:         tb,
		TaxYear:           tb.TaxYear,
		GrossSalary:       tb.GrossSalary,
		IncomeTax:         tb.TaxPayable,
		NationalInsurance: tb.NationalInsurance,
		StudentLoan:       tb.StudentLoanRepayment,
		PensionSacrifice:  tb.PensionSacrifice,
		TakeHomePay:       tb.TakeHomePay,
		EffectiveRate:     tb.EffectiveTaxRate().Mul(decimal.NewFromInt(100)),
	}
}

// CalculateComparison computes comparison metrics between a scenario and a base
func (mc *MetricsCalculator) CalculateComparison(scenario, base ComparisonResult) ComparisonResult {
	scenario.TakeHomeDiffFromBase = scenario.TakeHomePay.Sub(base.TakeHomePay)

	if !base.TakeHomePay.IsZero() {
		scenario.TakeHomePctFromBase = scenario.TakeHomeDiffFromBase.
			Div(base.TakeHomePay).
			Mul(decimal.NewFromInt(100))
	}

	scenario.TaxDiffFromBase = scenario.IncomeTax.Sub(base.IncomeTax)
	scenario.NIDiffFromBase = scenario.NationalInsurance.Sub(base.NationalInsurance)

	return scenario
}

// GenerateRecommendations creates recommendations based on comparison results
func GenerateRecommendations(compSet *ComparisonSet) []string {
	recommendations := []string{}

	if compSet.BaseResult == nil || len(compSet.AlternativeResults) == 0 {
		return recommendations
	}
	base := compSet.BaseResult

	bestTakeHome := base
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.TakeHomePay.GreaterThan(bestTakeHome.TakeHomePay) {
			bestTakeHome = alt
		}
	}

	if bestTakeHome != base {
		diff := bestTakeHome.TakeHomePay.Sub(base.TakeHomePay)
		recommendations = append(recommendations,
			fmt.Sprintf("Highest Take-Home: %s leaves £%s more per year than %s",
				bestTakeHome.ScenarioName, diff.StringFixed(2), base.ScenarioName))
	}

	lowestTax := base
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.TotalTax().LessThan(lowestTax.TotalTax()) {
			lowestTax = alt
		}
	}

	if lowestTax != base {
		saving := base.TotalTax().Sub(lowestTax.TotalTax())
		recommendations = append(recommendations,
			fmt.Sprintf("Lowest Tax: %s saves £%s in income tax and National Insurance",
				lowestTax.ScenarioName, saving.StringFixed(2)))
	}

	lowestRate := base
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.EffectiveRate.LessThan(lowestRate.EffectiveRate) {
			lowestRate = alt
		}
	}

	if lowestRate != base {
		recommendations = append(recommendations,
			fmt.Sprintf("Lowest Effective Rate: %s at %s%% against %s%%",
				lowestRate.ScenarioName, lowestRate.EffectiveRate.StringFixed(1), base.EffectiveRate.StringFixed(1)))
	}

	return recommendations
}
