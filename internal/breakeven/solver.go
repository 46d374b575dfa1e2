package breakeven

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/takehome/internal/calculation"
	"github.com/rgehrsitz/takehome/internal/domain"
	"github.com/rgehrsitz/takehome/internal/transform"
	"github.com/shopspring/decimal"
)

// Solver searches for the salary or pension parameters that reach a target
// take-home pay
type Solver struct {
	CalcEngine *calculation.CalculationEngine
	Options    SolverOptions
}

// NewSolver creates a new break-even solver
func NewSolver(calcEngine *calculation.CalculationEngine, options SolverOptions) *Solver {
	return &Solver{
		CalcEngine: calcEngine,
		Options:    options,
	}
}

// NewDefaultSolver creates a solver with default options
func NewDefaultSolver(calcEngine *calculation.CalculationEngine) *Solver {
	return NewSolver(calcEngine, DefaultSolverOptions())
}

// Optimize performs optimization based on the request
func (s *Solver) Optimize(ctx context.Context, req OptimizationRequest) (*OptimizationResult, error) {
	if req.Base == nil {
		return nil, &BreakEvenError{
			Operation: "optimize",
			Message:   "base profile is required",
			Cause:     domain.ErrMissingAttributes,
		}
	}
	if err := req.Constraints.Validate(); err != nil {
		return nil, err
	}

	if req.MaxIterations == 0 {
		req.MaxIterations = s.Options.MaxIterations
	}

	switch req.Target {
	case OptimizeGrossSalary:
		if req.Tolerance.IsZero() {
			req.Tolerance = s.Options.Tolerance
		}
		return s.OptimizeGrossSalary(ctx, req)
	case OptimizePensionSacrifice:
		if req.Tolerance.IsZero() {
			req.Tolerance = s.Options.PercentTolerance
		}
		return s.OptimizePensionSacrifice(ctx, req)
	default:
		return nil, &BreakEvenError{
			Operation: "optimize",
			Message:   fmt.Sprintf("unsupported optimization target: %s", req.Target),
		}
	}
}

// OptimizeGrossSalary finds the lowest gross salary, to the penny, whose
// take-home pay reaches the target
func (s *Solver) OptimizeGrossSalary(ctx context.Context, req OptimizationRequest) (*OptimizationResult, error) {
	const op = "optimize_gross_salary"
	target := req.Constraints.TargetTakeHome

	low := decimal.Zero
	if req.Constraints.MinGrossSalary != nil {
		low = *req.Constraints.MinGrossSalary
	}
	high := s.Options.MaxGrossSalary
	if req.Constraints.MaxGrossSalary != nil {
		high = *req.Constraints.MaxGrossSalary
	}

	salaryAt := func(salary decimal.Decimal) (domain.TaxBreakdown, error) {
		return s.evaluate(req, &transform.SetSalary{Amount: salary})
	}

	lowBreakdown, err := salaryAt(low)
	if err != nil {
		return nil, &BreakEvenError{Operation: op, Message: "failed to evaluate profile", Cause: err}
	}
	if lowBreakdown.TakeHomePay.GreaterThanOrEqual(target) {
		return s.result(req, low, nil, lowBreakdown, 1, "Minimum salary already meets target")
	}

	highBreakdown, err := salaryAt(high)
	if err != nil {
		return nil, &BreakEvenError{Operation: op, Message: "failed to evaluate profile", Cause: err}
	}
	if highBreakdown.TakeHomePay.LessThan(target) {
		return nil, &BreakEvenError{
			Operation: op,
			Message: fmt.Sprintf("target take-home %s is not reachable below a gross salary of %s",
				target.StringFixed(2), high.StringFixed(2)),
		}
	}

	iterations := 2
	two := decimal.NewFromInt(2)

	for high.Sub(low).GreaterThan(req.Tolerance) && iterations < req.MaxIterations {
		iterations++

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		mid := low.Add(high).Div(two)
		tb, err := salaryAt(mid)
		if err != nil {
			return nil, &BreakEvenError{Operation: op, Message: "failed to evaluate profile", Cause: err}
		}

		if tb.TakeHomePay.GreaterThanOrEqual(target) {
			high = mid
		} else {
			low = mid
		}
	}

	// Settle on a whole penny: the floor when it still reaches target, else the ceiling
	var best domain.TaxBreakdown
	salary := high.RoundFloor(2)
	for _, candidate := range []decimal.Decimal{salary, high.RoundCeil(2)} {
		tb, err := salaryAt(candidate)
		if err != nil {
			return nil, &BreakEvenError{Operation: op, Message: "failed to evaluate profile", Cause: err}
		}
		iterations++
		salary, best = candidate, tb
		if tb.TakeHomePay.GreaterThanOrEqual(target) {
			break
		}
	}

	info := fmt.Sprintf("Converged to within £%s", req.Tolerance.StringFixed(2))
	result, err := s.result(req, salary, nil, best, iterations, info)
	if err != nil {
		return nil, err
	}
	if high.Sub(low).GreaterThan(req.Tolerance) {
		result.Success = false
		result.ConvergenceInfo = fmt.Sprintf("Max iterations (%d) reached", req.MaxIterations)
	}
	return result, nil
}

// OptimizePensionSacrifice finds the largest pension sacrifice percentage that
// still leaves take-home pay at or above the target
func (s *Solver) OptimizePensionSacrifice(ctx context.Context, req OptimizationRequest) (*OptimizationResult, error) {
	const op = "optimize_pension_sacrifice"
	target := req.Constraints.TargetTakeHome

	low := decimal.Zero
	if req.Constraints.MinPensionPercent != nil {
		low = *req.Constraints.MinPensionPercent
	}
	high := decimal.NewFromInt(1)
	if req.Constraints.MaxPensionPercent != nil {
		high = *req.Constraints.MaxPensionPercent
	}

	pensionAt := func(pct decimal.Decimal) (domain.TaxBreakdown, error) {
		return s.evaluate(req, &transform.SetPensionSacrifice{Percent: pct})
	}

	lowBreakdown, err := pensionAt(low)
	if err != nil {
		return nil, &BreakEvenError{Operation: op, Message: "failed to evaluate profile", Cause: err}
	}
	if lowBreakdown.TakeHomePay.LessThan(target) {
		return nil, &BreakEvenError{
			Operation: op,
			Message: fmt.Sprintf("target take-home %s exceeds take-home %s at the minimum sacrifice",
				target.StringFixed(2), lowBreakdown.TakeHomePay.StringFixed(2)),
		}
	}

	highBreakdown, err := pensionAt(high)
	if err != nil {
		return nil, &BreakEvenError{Operation: op, Message: "failed to evaluate profile", Cause: err}
	}
	if highBreakdown.TakeHomePay.GreaterThanOrEqual(target) {
		return s.result(req, decimal.Zero, &high, highBreakdown, 2, "Maximum sacrifice still meets target")
	}

	iterations := 2
	two := decimal.NewFromInt(2)

	for high.Sub(low).GreaterThan(req.Tolerance) && iterations < req.MaxIterations {
		iterations++

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		mid := low.Add(high).Div(two)
		tb, err := pensionAt(mid)
		if err != nil {
			return nil, &BreakEvenError{Operation: op, Message: "failed to evaluate profile", Cause: err}
		}

		if tb.TakeHomePay.GreaterThanOrEqual(target) {
			low = mid
		} else {
			high = mid
		}
	}

	// Settle on a hundredth of a percent: the ceiling when it still reaches target, else the floor
	var best domain.TaxBreakdown
	pct := low.RoundCeil(4)
	for _, candidate := range []decimal.Decimal{pct, low.RoundFloor(4)} {
		tb, err := pensionAt(candidate)
		if err != nil {
			return nil, &BreakEvenError{Operation: op, Message: "failed to evaluate profile", Cause: err}
		}
		iterations++
		pct, best = candidate, tb
		if tb.TakeHomePay.GreaterThanOrEqual(target) {
			break
		}
	}

	info := fmt.Sprintf("Converged to within %s%%", req.Tolerance.Mul(decimal.NewFromInt(100)).String())
	result, err := s.result(req, decimal.Zero, &pct, best, iterations, info)
	if err != nil {
		return nil, err
	}
	if high.Sub(low).GreaterThan(req.Tolerance) {
		result.Success = false
		result.ConvergenceInfo = fmt.Sprintf("Max iterations (%d) reached", req.MaxIterations)
	}
	return result, nil
}

// evaluate applies tr to the base profile and computes its breakdown
func (s *Solver) evaluate(req OptimizationRequest, tr transform.ProfileTransform) (domain.TaxBreakdown, error) {
	modified, err := transform.ApplyTransforms(req.Base, []transform.ProfileTransform{tr})
	if err != nil {
		return domain.TaxBreakdown{}, err
	}
	p, err := s.CalcEngine.NewProfile(modified, req.DefaultTaxYear)
	if err != nil {
		return domain.TaxBreakdown{}, err
	}
	return calculation.Compute(p), nil
}

// result assembles an optimization result and compares it with the base.
// Exactly one of salary or pct is reported, chosen by the request target.
func (s *Solver) result(
	req OptimizationRequest,
	salary decimal.Decimal,
	pct *decimal.Decimal,
	tb domain.TaxBreakdown,
	iterations int,
	info string,
) (*OptimizationResult, error) {
	result := &OptimizationResult{
		Profile:         req.Base.Name,
		Request:         req,
		Success:         true,
		Iterations:      iterations,
		ConvergenceInfo: info,
		Breakdown:       tb,
	}

	if pct != nil {
		pctCopy := *pct
		result.OptimalPensionPercent = &pctCopy
	} else {
		result.OptimalGrossSalary = &salary
	}

	baseProfile, err := s.CalcEngine.NewProfile(req.Base, req.DefaultTaxYear)
	if err != nil {
		return nil, &BreakEvenError{Operation: "optimize", Message: "failed to evaluate base profile", Cause: err}
	}
	base := s.CalcEngine.Evaluate(baseProfile)
	result.BaseBreakdown = &base
	result.TakeHomeDiffFromBase = tb.TakeHomePay.Sub(base.TakeHomePay)
	result.TaxDiffFromBase = tb.TaxPayable.Add(tb.NationalInsurance).Sub(base.TaxPayable.Add(base.NationalInsurance))

	s.CalcEngine.Logger.Debugf("break-even %s for %s: %d iterations, %s", req.Target, req.Base.Name, iterations, info)

	return result, nil
}
