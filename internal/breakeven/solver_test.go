package breakeven

import (
	"context"
	"errors"
	"testing"

	"github.com/rgehrsitz/takehome/internal/calculation"
	"github.com/rgehrsitz/takehome/internal/domain"
	"github.com/rgehrsitz/takehome/internal/rules"
	"github.com/rgehrsitz/takehome/internal/transform"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSolver() *Solver {
	return NewDefaultSolver(calculation.NewCalculationEngine(rules.MustDefault()))
}

func salaryInput(salary int64) *domain.ProfileInput {
	gross := decimal.NewFromInt(salary)
	return &domain.ProfileInput{
		Name:  "alice",
		Facts: domain.Facts{GrossSalary: &gross},
	}
}

func TestNewSolver(t *testing.T) {
	calcEngine := calculation.NewCalculationEngine(rules.MustDefault())
	options := DefaultSolverOptions()

	solver := NewSolver(calcEngine, options)

	require.NotNil(t, solver)
	assert.Same(t, calcEngine, solver.CalcEngine)
	assert.Equal(t, options.MaxIterations, solver.Options.MaxIterations)
	assert.True(t, solver.Options.Tolerance.Equal(decimal.NewFromFloat(0.01)))
}

func TestSolver_Optimize_MissingBase(t *testing.T) {
	_, err := newTestSolver().Optimize(context.Background(), OptimizationRequest{Target: OptimizeGrossSalary})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrMissingAttributes)
}

func TestSolver_Optimize_UnsupportedTarget(t *testing.T) {
	_, err := newTestSolver().Optimize(context.Background(), OptimizationRequest{
		Base:   salaryInput(50000),
		Target: "retirement_date",
	})

	var bee *BreakEvenError
	require.True(t, errors.As(err, &bee))
	assert.Contains(t, bee.Message, "unsupported optimization target")
}

func TestSolver_OptimizeGrossSalary(t *testing.T) {
	tests := []struct {
		name     string
		target   string
		expected string
	}{
		// Take-home at £50,000 and at £110,000 (inside the allowance taper)
		{"higher rate", "36325.70", "50000"},
		{"tapered allowance", "69125.70", "110000"},
		{"zero target", "0", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := newTestSolver().Optimize(context.Background(), OptimizationRequest{
				Base:        salaryInput(30000),
				Target:      OptimizeGrossSalary,
				Constraints: Constraints{TargetTakeHome: decimal.RequireFromString(tt.target)},
			})
			require.NoError(t, err)
			require.NotNil(t, result.OptimalGrossSalary)

			assert.True(t, result.Success)
			assert.Nil(t, result.OptimalPensionPercent)
			assert.True(t, result.OptimalGrossSalary.Equal(decimal.RequireFromString(tt.expected)),
				"expected %s, got %s", tt.expected, result.OptimalGrossSalary)
			assert.True(t, result.Breakdown.TakeHomePay.GreaterThanOrEqual(decimal.RequireFromString(tt.target)))
			assert.Equal(t, "alice", result.Profile)
			require.NotNil(t, result.BaseBreakdown)
			assert.True(t, result.TakeHomeDiffFromBase.Equal(result.Breakdown.TakeHomePay.Sub(result.BaseBreakdown.TakeHomePay)))
		})
	}
}

func TestSolver_OptimizeGrossSalary_PennyResolution(t *testing.T) {
	solver := newTestSolver()
	target := decimal.RequireFromString("25000.37")

	result, err := solver.Optimize(context.Background(), OptimizationRequest{
		Base:        salaryInput(20000),
		Target:      OptimizeGrossSalary,
		Constraints: Constraints{TargetTakeHome: target},
	})
	require.NoError(t, err)

	salary := *result.OptimalGrossSalary
	assert.True(t, salary.Equal(salary.Round(2)), "salary should be whole pence")
	assert.True(t, result.Breakdown.TakeHomePay.GreaterThanOrEqual(target))

	below, err := solver.evaluate(result.Request, &transform.SetSalary{Amount: salary.Sub(decimal.NewFromFloat(0.01))})
	require.NoError(t, err)
	assert.True(t, below.TakeHomePay.LessThan(target), "one penny less should miss the target")
}

func TestSolver_OptimizeGrossSalary_Unreachable(t *testing.T) {
	limit := decimal.NewFromInt(20000)

	_, err := newTestSolver().Optimize(context.Background(), OptimizationRequest{
		Base:   salaryInput(10000),
		Target: OptimizeGrossSalary,
		Constraints: Constraints{
			TargetTakeHome: decimal.NewFromInt(30000),
			MaxGrossSalary: &limit,
		},
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not reachable")
}

func TestSolver_OptimizeGrossSalary_MaxIterations(t *testing.T) {
	result, err := newTestSolver().Optimize(context.Background(), OptimizationRequest{
		Base:          salaryInput(10000),
		Target:        OptimizeGrossSalary,
		Constraints:   Constraints{TargetTakeHome: decimal.NewFromInt(36000)},
		MaxIterations: 5,
	})

	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, "Max iterations (5) reached", result.ConvergenceInfo)
}

func TestSolver_OptimizeGrossSalary_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestSolver().Optimize(ctx, OptimizationRequest{
		Base:        salaryInput(10000),
		Target:      OptimizeGrossSalary,
		Constraints: Constraints{TargetTakeHome: decimal.NewFromInt(36000)},
	})

	assert.ErrorIs(t, err, context.Canceled)
}

func TestSolver_OptimizePensionSacrifice(t *testing.T) {
	result, err := newTestSolver().Optimize(context.Background(), OptimizationRequest{
		Base:   salaryInput(50000),
		Target: OptimizePensionSacrifice,
		// Take-home at £50,000 with a 5% sacrifice
		Constraints: Constraints{TargetTakeHome: decimal.RequireFromString("34825.70")},
	})
	require.NoError(t, err)
	require.NotNil(t, result.OptimalPensionPercent)

	assert.True(t, result.Success)
	assert.Nil(t, result.OptimalGrossSalary)
	assert.True(t, result.OptimalPensionPercent.Equal(decimal.NewFromFloat(0.05)), "got %s", result.OptimalPensionPercent)
	assert.True(t, result.Breakdown.PensionSacrifice.Equal(decimal.NewFromInt(2500)))
	assert.True(t, result.TaxDiffFromBase.Equal(decimal.NewFromInt(-1000)), "sacrifice should save higher-rate tax")
}

func TestSolver_OptimizePensionSacrifice_MaximumMeetsTarget(t *testing.T) {
	maxPct := decimal.NewFromFloat(0.1)

	result, err := newTestSolver().Optimize(context.Background(), OptimizationRequest{
		Base:   salaryInput(50000),
		Target: OptimizePensionSacrifice,
		Constraints: Constraints{
			TargetTakeHome:    decimal.NewFromInt(30000),
			MaxPensionPercent: &maxPct,
		},
	})
	require.NoError(t, err)

	assert.True(t, result.OptimalPensionPercent.Equal(maxPct))
	assert.Equal(t, "Maximum sacrifice still meets target", result.ConvergenceInfo)
	assertDecimalString(t, "33325.7", result.Breakdown.TakeHomePay)
}

func TestSolver_OptimizePensionSacrifice_TargetTooHigh(t *testing.T) {
	_, err := newTestSolver().Optimize(context.Background(), OptimizationRequest{
		Base:        salaryInput(50000),
		Target:      OptimizePensionSacrifice,
		Constraints: Constraints{TargetTakeHome: decimal.NewFromInt(40000)},
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeds take-home 36325.70")
}

func TestSolver_OptimizeAllTargets(t *testing.T) {
	result, err := newTestSolver().OptimizeAllTargets(context.Background(), OptimizationRequest{
		Base:        salaryInput(50000),
		Constraints: Constraints{TargetTakeHome: decimal.RequireFromString("36325.70")},
	})
	require.NoError(t, err)

	require.Len(t, result.Results, 2)
	assert.Equal(t, OptimizeGrossSalary, result.Results[0].Request.Target)
	assert.Equal(t, OptimizePensionSacrifice, result.Results[1].Request.Target)
	assert.True(t, result.Results[1].OptimalPensionPercent.IsZero())
	require.NotNil(t, result.LowestTax)
	assert.Len(t, result.Recommendations, 3)
}

func TestSolver_OptimizeAllTargets_NoneSucceed(t *testing.T) {
	limit := decimal.NewFromInt(1000)

	_, err := newTestSolver().OptimizeAllTargets(context.Background(), OptimizationRequest{
		Base: salaryInput(500),
		Constraints: Constraints{
			TargetTakeHome: decimal.NewFromInt(50000),
			MaxGrossSalary: &limit,
		},
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no successful optimizations found")
}

func TestTableFormatter_Format(t *testing.T) {
	result, err := newTestSolver().Optimize(context.Background(), OptimizationRequest{
		Base:        salaryInput(40000),
		Target:      OptimizeGrossSalary,
		Constraints: Constraints{TargetTakeHome: decimal.RequireFromString("36325.70")},
	})
	require.NoError(t, err)

	out := (&TableFormatter{}).Format(result)
	assert.Contains(t, out, "BREAK-EVEN RESULTS")
	assert.Contains(t, out, "Gross Salary:        £50000.00")
	assert.Contains(t, out, "Take-Home Pay:       £36325.70")
	assert.Contains(t, out, "✓ Converged")
	assert.Contains(t, out, "COMPARISON TO CURRENT PROFILE")

	js, err := (&JSONFormatter{Pretty: true}).Format(result)
	require.NoError(t, err)
	assert.Contains(t, js, `"optimal_gross_salary": "50000"`)
	assert.NotContains(t, js, `"Base"`)
}

func assertDecimalString(t *testing.T, expected string, actual decimal.Decimal) {
	t.Helper()
	assert.True(t, actual.Equal(decimal.RequireFromString(expected)), "expected %s, got %s", expected, actual)
}
