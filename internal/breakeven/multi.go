package breakeven

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
)

// OptimizeMultiDimensional solves every target for the same constraints and
// compares the outcomes
func (s *Solver) OptimizeMultiDimensional(ctx context.Context, req OptimizationRequest, targets []OptimizationTarget) (*MultiDimensionalResult, error) {
	if err := req.Constraints.Validate(); err != nil {
		return nil, err
	}

	var results []OptimizationResult
	for _, target := range targets {
		next := req
		next.Target = target
		// Tolerances differ in unit between targets
		next.Tolerance = decimal.Zero

		result, err := s.Optimize(ctx, next)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			s.CalcEngine.Logger.Warnf("break-even %s skipped: %v", target, err)
			continue
		}

		if result != nil && result.Success {
			results = append(results, *result)
		}
	}

	if len(results) == 0 {
		return nil, &BreakEvenError{
			Operation: "optimize_multi_dimensional",
			Message:   "no successful optimizations found",
		}
	}

	mdResult := &MultiDimensionalResult{Results: results}
	for i := range results {
		if mdResult.LowestTax == nil || totalTax(&results[i]).LessThan(totalTax(mdResult.LowestTax)) {
			mdResult.LowestTax = &results[i]
		}
	}
	mdResult.Recommendations = s.generateMultiDimensionalRecommendations(mdResult)

	return mdResult, nil
}

// OptimizeAllTargets is a convenience method to solve every supported target
func (s *Solver) OptimizeAllTargets(ctx context.Context, req OptimizationRequest) (*MultiDimensionalResult, error) {
	return s.OptimizeMultiDimensional(ctx, req, []OptimizationTarget{OptimizeGrossSalary, OptimizePensionSacrifice})
}

func totalTax(r *OptimizationResult) decimal.Decimal {
	return r.Breakdown.TaxPayable.Add(r.Breakdown.NationalInsurance)
}

// generateMultiDimensionalRecommendations creates recommendations from multi-dimensional results
func (s *Solver) generateMultiDimensionalRecommendations(result *MultiDimensionalResult) []string {
	var recommendations []string

	for _, r := range result.Results {
		switch {
		case r.OptimalGrossSalary != nil:
			recommendations = append(recommendations,
				fmt.Sprintf("A gross salary of £%s reaches take-home of £%s",
					r.OptimalGrossSalary.StringFixed(2), r.Breakdown.TakeHomePay.StringFixed(2)))
		case r.OptimalPensionPercent != nil:
			recommendations = append(recommendations,
				fmt.Sprintf("Up to %s%% of salary (£%s) can go into a pension while keeping take-home of £%s",
					r.OptimalPensionPercent.Mul(decimal.NewFromInt(100)).StringFixed(2),
					r.Breakdown.PensionSacrifice.StringFixed(2),
					r.Breakdown.TakeHomePay.StringFixed(2)))
		}
	}

	if result.LowestTax != nil && len(result.Results) > 1 {
		recommendations = append(recommendations,
			fmt.Sprintf("Lowest tax and National Insurance: solve for %s (£%s)",
				result.LowestTax.Request.Target, totalTax(result.LowestTax).StringFixed(2)))
	}

	return recommendations
}
