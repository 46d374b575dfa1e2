package breakeven

import (
	"github.com/rgehrsitz/takehome/internal/domain"
	"github.com/shopspring/decimal"
)

// OptimizationTarget defines what parameter to solve for
type OptimizationTarget string

const (
	OptimizeGrossSalary      OptimizationTarget = "gross_salary"
	OptimizePensionSacrifice OptimizationTarget = "pension_sacrifice"
	OptimizeAll              OptimizationTarget = "all"
)

// ParseTarget maps a CLI name onto a target
func ParseTarget(name string) (OptimizationTarget, error) {
	switch OptimizationTarget(name) {
	case OptimizeGrossSalary, OptimizePensionSacrifice, OptimizeAll:
		return OptimizationTarget(name), nil
	case "salary":
		return OptimizeGrossSalary, nil
	case "pension":
		return OptimizePensionSacrifice, nil
	}
	return "", &BreakEvenError{
		Operation: "parse_target",
		Message:   "unknown optimization target: " + name,
	}
}

// Constraints define bounds for optimization parameters
type Constraints struct {
	// Annual take-home pay the solution must reach (required)
	TargetTakeHome decimal.Decimal `json:"target_take_home"`

	// Gross salary search bounds
	MinGrossSalary *decimal.Decimal `json:"min_gross_salary,omitempty"`
	MaxGrossSalary *decimal.Decimal `json:"max_gross_salary,omitempty"`

	// Pension sacrifice bounds (as decimal, e.g., 0.05 for 5%)
	MinPensionPercent *decimal.Decimal `json:"min_pension_percent,omitempty"`
	MaxPensionPercent *decimal.Decimal `json:"max_pension_percent,omitempty"`
}

// OptimizationRequest defines the parameters for an optimization run
type OptimizationRequest struct {
	Base           *domain.ProfileInput `json:"-"`
	DefaultTaxYear string               `json:"default_tax_year,omitempty"`
	Target         OptimizationTarget   `json:"target"`
	Constraints    Constraints          `json:"constraints"`
	MaxIterations  int                  `json:"max_iterations"`
	Tolerance      decimal.Decimal      `json:"tolerance"` // Width at which the search interval is considered converged
}

// OptimizationResult contains the results of an optimization run
type OptimizationResult struct {
	Profile         string              `json:"profile"`
	Request         OptimizationRequest `json:"request"`
	Success         bool                `json:"success"`
	Iterations      int                 `json:"iterations"`
	ConvergenceInfo string              `json:"convergence_info,omitempty"`

	// Solved parameters
	OptimalGrossSalary    *decimal.Decimal `json:"optimal_gross_salary,omitempty"`
	OptimalPensionPercent *decimal.Decimal `json:"optimal_pension_percent,omitempty"`

	// Results at the solved parameters
	Breakdown domain.TaxBreakdown `json:"breakdown"`

	// Comparison to base
	BaseBreakdown        *domain.TaxBreakdown `json:"base_breakdown,omitempty"`
	TakeHomeDiffFromBase decimal.Decimal      `json:"take_home_diff_from_base"`
	TaxDiffFromBase      decimal.Decimal      `json:"tax_diff_from_base"`
}

// MultiDimensionalResult contains results when solving for several parameters
type MultiDimensionalResult struct {
	Results         []OptimizationResult `json:"results"`
	LowestTax       *OptimizationResult  `json:"lowest_tax,omitempty"`
	Recommendations []string             `json:"recommendations"`
}

// SolverOptions configures the solver algorithm
type SolverOptions struct {
	Tolerance        decimal.Decimal // Salary convergence tolerance in pounds
	PercentTolerance decimal.Decimal // Pension percent convergence tolerance
	MaxIterations    int
	MaxGrossSalary   decimal.Decimal // Default upper bound when searching for a salary
}

// DefaultSolverOptions returns default solver configuration
func DefaultSolverOptions() SolverOptions {
	return SolverOptions{
		Tolerance:        decimal.NewFromFloat(0.01),
		PercentTolerance: decimal.NewFromFloat(0.0001),
		MaxIterations:    100,
		MaxGrossSalary:   decimal.NewFromInt(10000000),
	}
}

// Validate checks if constraints are internally consistent
func (c *Constraints) Validate() error {
	if c.TargetTakeHome.IsNegative() {
		return &BreakEvenError{
			Operation: "validate_constraints",
			Message:   "target take-home pay cannot be negative",
		}
	}

	if c.MinGrossSalary != nil && c.MinGrossSalary.IsNegative() {
		return &BreakEvenError{
			Operation: "validate_constraints",
			Message:   "min_gross_salary cannot be negative",
		}
	}
	if c.MinGrossSalary != nil && c.MaxGrossSalary != nil {
		if c.MinGrossSalary.GreaterThan(*c.MaxGrossSalary) {
			return &BreakEvenError{
				Operation: "validate_constraints",
				Message:   "min_gross_salary cannot be greater than max_gross_salary",
			}
		}
	}

	one := decimal.NewFromInt(1)
	for _, pct := range []*decimal.Decimal{c.MinPensionPercent, c.MaxPensionPercent} {
		if pct != nil && (pct.IsNegative() || pct.GreaterThan(one)) {
			return &BreakEvenError{
				Operation: "validate_constraints",
				Message:   "pension percent bounds must be between 0 and 1",
			}
		}
	}
	if c.MinPensionPercent != nil && c.MaxPensionPercent != nil {
		if c.MinPensionPercent.GreaterThan(*c.MaxPensionPercent) {
			return &BreakEvenError{
				Operation: "validate_constraints",
				Message:   "min_pension_percent cannot be greater than max_pension_percent",
			}
		}
	}

	return nil
}

// BreakEvenError represents errors from break-even solver
type BreakEvenError struct {
	Operation string
	Message   string
	Cause     error
}

func (e *BreakEvenError) Error() string {
	if e.Cause != nil {
		return e.Operation + ": " + e.Message + ": " + e.Cause.Error()
	}
	return e.Operation + ": " + e.Message
}

func (e *BreakEvenError) Unwrap() error {
	return e.Cause
}
