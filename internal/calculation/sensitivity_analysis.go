package calculation

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/takehome/internal/domain"
	"github.com/shopspring/decimal"
)

// SensitivityAnalyzer performs parameter sweep analysis
type SensitivityAnalyzer struct {
	calculationEngine *CalculationEngine
}

// NewSensitivityAnalyzer creates a new sensitivity analyzer
func NewSensitivityAnalyzer(engine *CalculationEngine) *SensitivityAnalyzer {
	return &SensitivityAnalyzer{calculationEngine: engine}
}

// AnalyzeSingleParameter sweeps one parameter across its range for the given
// profile and reports the marginal rate between neighbouring points
func (sa *SensitivityAnalyzer) AnalyzeSingleParameter(
	ctx context.Context,
	input *domain.ProfileInput,
	defaultTaxYear string,
	parameter domain.SensitivityParameter,
) (*domain.ParameterSensitivityAnalysis, error) {
	if input == nil {
		return nil, domain.ErrMissingAttributes
	}
	if err := parameter.Validate(); err != nil {
		return nil, err
	}

	analysis := &domain.ParameterSensitivityAnalysis{
		ProfileName: input.Name,
		Parameter:   parameter,
	}

	for _, value := range parameter.Values() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		p, err := sa.calculationEngine.NewProfile(sa.modifyParameter(input, parameter.Name, value), defaultTaxYear)
		if err != nil {
			return nil, fmt.Errorf("failed to build profile for %s=%s: %w", parameter.Name, value, err)
		}
		point := domain.SensitivityPoint{Value: value, Breakdown: Compute(p)}

		if n := len(analysis.Points); n > 0 {
			sa.marginal(&point, analysis.Points[n-1], parameter.Name)
		}
		analysis.Points = append(analysis.Points, point)
	}

	analysis.TaxYear = analysis.Points[0].Breakdown.TaxYear
	analysis.Summary = sa.calculateSensitivitySummary(analysis)

	sa.calculationEngine.Logger.Debugf("sensitivity %s for %s: %d points, peak marginal rate %s",
		parameter.Name, input.Name, len(analysis.Points), analysis.Summary.PeakMarginalRate)

	return analysis, nil
}

// AnalyzeMultipleParameters runs an independent sweep for each parameter
func (sa *SensitivityAnalyzer) AnalyzeMultipleParameters(
	ctx context.Context,
	input *domain.ProfileInput,
	defaultTaxYear string,
	parameters []domain.SensitivityParameter,
) ([]*domain.ParameterSensitivityAnalysis, error) {
	analyses := make([]*domain.ParameterSensitivityAnalysis, 0, len(parameters))
	for _, param := range parameters {
		analysis, err := sa.AnalyzeSingleParameter(ctx, input, defaultTaxYear, param)
		if err != nil {
			return nil, fmt.Errorf("failed to analyze parameter %s: %w", param.Name, err)
		}
		analyses = append(analyses, analysis)
	}
	return analyses, nil
}

// modifyParameter returns a copy of input with the swept fact replaced
func (sa *SensitivityAnalyzer) modifyParameter(input *domain.ProfileInput, paramName string, value decimal.Decimal) *domain.ProfileInput {
	modified := input.DeepCopy()
	v := value
	switch paramName {
	case domain.SweepGrossSalary:
		modified.Facts.GrossSalary = &v
	case domain.SweepPensionSacrifice:
		modified.Facts.PensionSacrificePercent = &v
	}
	return modified
}

// marginal fills the change fields of point relative to prev
func (sa *SensitivityAnalyzer) marginal(point *domain.SensitivityPoint, prev domain.SensitivityPoint, paramName string) {
	point.TakeHomeChange = point.Breakdown.TakeHomePay.Sub(prev.Breakdown.TakeHomePay)

	var moved decimal.Decimal
	switch paramName {
	case domain.SweepGrossSalary:
		moved = point.Breakdown.GrossSalary.Sub(prev.Breakdown.GrossSalary)
	case domain.SweepPensionSacrifice:
		moved = point.Breakdown.PensionSacrifice.Sub(prev.Breakdown.PensionSacrifice)
	}
	if moved.IsZero() {
		return
	}
	point.MarginalRate = decimal.NewFromInt(1).Sub(point.TakeHomeChange.Abs().Div(moved.Abs())).Round(4)
}

// calculateSensitivitySummary finds the steepest step of the sweep
func (sa *SensitivityAnalyzer) calculateSensitivitySummary(analysis *domain.ParameterSensitivityAnalysis) domain.SensitivitySummary {
	summary := domain.SensitivitySummary{}
	points := analysis.Points
	for i := 1; i < len(points); i++ {
		if points[i].MarginalRate.GreaterThan(summary.PeakMarginalRate) {
			summary.PeakMarginalRate = points[i].MarginalRate
			summary.PeakFrom = points[i-1].Value
			summary.PeakTo = points[i].Value
		}
	}

	pct := func(d decimal.Decimal) string { return d.Mul(decimal.NewFromInt(100)).StringFixed(1) + "%" }
	label := func(d decimal.Decimal) string {
		if analysis.Parameter.Unit == "percent" {
			return pct(d)
		}
		return "£" + d.StringFixed(0)
	}

	if len(points) < 2 {
		summary.Recommendations = []string{"Add more steps to measure marginal rates"}
		return summary
	}

	switch analysis.Parameter.Name {
	case domain.SweepGrossSalary:
		summary.Recommendations = append(summary.Recommendations,
			fmt.Sprintf("Highest marginal rate: %s of each extra pound between %s and %s is withheld",
				pct(summary.PeakMarginalRate), label(summary.PeakFrom), label(summary.PeakTo)))
		if summary.PeakMarginalRate.GreaterThanOrEqual(decimal.NewFromFloat(0.6)) {
			summary.Recommendations = append(summary.Recommendations,
				"Salary sacrifice within that range recovers the tapered personal allowance")
		}
	case domain.SweepPensionSacrifice:
		summary.Recommendations = append(summary.Recommendations,
			fmt.Sprintf("Best relief: each pound sacrificed between %s and %s costs %s of take-home",
				label(summary.PeakFrom), label(summary.PeakTo),
				pct(decimal.NewFromInt(1).Sub(summary.PeakMarginalRate))))
	}

	return summary
}
