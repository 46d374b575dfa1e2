package calculation

import (
	"context"
	"testing"

	"github.com/rgehrsitz/takehome/internal/domain"
	"github.com/rgehrsitz/takehome/internal/rules"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sweepInput(salary int64) *domain.ProfileInput {
	gross := decimal.NewFromInt(salary)
	return &domain.ProfileInput{Name: "alice", Facts: domain.Facts{GrossSalary: &gross}}
}

func TestSensitivityAnalyzer_SalaryTaper(t *testing.T) {
	analyzer := NewSensitivityAnalyzer(NewCalculationEngine(rules.MustDefault()))
	param := domain.SensitivityParameter{
		Name:     domain.SweepGrossSalary,
		MinValue: decimal.NewFromInt(90000),
		MaxValue: decimal.NewFromInt(120000),
		Steps:    4,
		Unit:     "pounds",
	}

	analysis, err := analyzer.AnalyzeSingleParameter(context.Background(), sweepInput(50000), "2015/2016", param)
	require.NoError(t, err)
	require.Len(t, analysis.Points, 4)

	assert.Equal(t, "alice", analysis.ProfileName)
	assert.Equal(t, "2015/2016", analysis.TaxYear)
	assert.True(t, analysis.Points[0].MarginalRate.IsZero())

	// Higher rate tax plus the upper NI rate below the taper
	assert.True(t, analysis.Points[1].MarginalRate.Equal(decimal.NewFromFloat(0.42)), "got %s", analysis.Points[1].MarginalRate)
	// The allowance taper adds a further 20% between £100,000 and £120,000
	assert.True(t, analysis.Points[2].MarginalRate.Equal(decimal.NewFromFloat(0.62)), "got %s", analysis.Points[2].MarginalRate)
	assert.True(t, analysis.Points[2].TakeHomeChange.Equal(decimal.NewFromInt(3800)))
	assert.True(t, analysis.Points[2].Breakdown.TakeHomePay.Equal(decimal.RequireFromString("69125.7")))

	assert.True(t, analysis.Summary.PeakMarginalRate.Equal(decimal.NewFromFloat(0.62)))
	assert.True(t, analysis.Summary.PeakFrom.Equal(decimal.NewFromInt(100000)))
	assert.True(t, analysis.Summary.PeakTo.Equal(decimal.NewFromInt(110000)))
	require.Len(t, analysis.Summary.Recommendations, 2)
	assert.Contains(t, analysis.Summary.Recommendations[0], "62.0%")
}

func TestSensitivityAnalyzer_PensionRelief(t *testing.T) {
	analyzer := NewSensitivityAnalyzer(NewCalculationEngine(rules.MustDefault()))
	param := domain.SensitivityParameter{
		Name:     domain.SweepPensionSacrifice,
		MinValue: decimal.Zero,
		MaxValue: decimal.NewFromFloat(0.05),
		Steps:    2,
		Unit:     "percent",
	}

	analysis, err := analyzer.AnalyzeSingleParameter(context.Background(), sweepInput(50000), "", param)
	require.NoError(t, err)
	require.Len(t, analysis.Points, 2)

	last := analysis.Points[1]
	assert.True(t, last.TakeHomeChange.Equal(decimal.NewFromInt(-1500)), "got %s", last.TakeHomeChange)
	assert.True(t, last.MarginalRate.Equal(decimal.NewFromFloat(0.4)), "got %s", last.MarginalRate)
	assert.Contains(t, analysis.Summary.Recommendations[0], "costs 60.0% of take-home")
}

func TestSensitivityAnalyzer_Errors(t *testing.T) {
	analyzer := NewSensitivityAnalyzer(NewCalculationEngine(rules.MustDefault()))

	_, err := analyzer.AnalyzeSingleParameter(context.Background(), nil, "", domain.GrossSalaryParam)
	assert.ErrorIs(t, err, domain.ErrMissingAttributes)

	_, err = analyzer.AnalyzeSingleParameter(context.Background(), sweepInput(1), "", domain.SensitivityParameter{Name: "inflation_rate", Steps: 2})
	assert.ErrorContains(t, err, "unknown sensitivity parameter")

	_, err = analyzer.AnalyzeSingleParameter(context.Background(), sweepInput(1), "1999/2000", domain.GrossSalaryParam)
	assert.ErrorIs(t, err, domain.ErrUnknownTaxYear)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = analyzer.AnalyzeSingleParameter(ctx, sweepInput(1), "", domain.GrossSalaryParam)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSensitivityAnalyzer_MultipleParameters(t *testing.T) {
	analyzer := NewSensitivityAnalyzer(NewCalculationEngine(rules.MustDefault()))

	analyses, err := analyzer.AnalyzeMultipleParameters(context.Background(), sweepInput(40000), "", domain.GetCommonParameters())
	require.NoError(t, err)
	require.Len(t, analyses, 2)
	assert.Len(t, analyses[0].Points, domain.GrossSalaryParam.Steps)
	assert.Len(t, analyses[1].Points, domain.PensionSacrificeParam.Steps)
}

func TestSensitivityParameter_Values(t *testing.T) {
	param := domain.SensitivityParameter{
		Name:     domain.SweepGrossSalary,
		MinValue: decimal.NewFromInt(0),
		MaxValue: decimal.NewFromInt(100),
		Steps:    4,
	}

	values := param.Values()
	require.Len(t, values, 4)
	assert.True(t, values[0].IsZero())
	assert.True(t, values[3].Equal(decimal.NewFromInt(100)))

	param.Steps = 1
	assert.Len(t, param.Values(), 1)

	_, ok := domain.FindCommonParameter(domain.SweepPensionSacrifice)
	assert.True(t, ok)
	_, ok = domain.FindCommonParameter("cola_rate")
	assert.False(t, ok)
}
