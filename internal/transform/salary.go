package transform

import (
	"fmt"

	"github.com/rgehrsitz/takehome/internal/domain"
	"github.com/shopspring/decimal"
)

// SetSalary replaces the gross salary outright.
type SetSalary struct {
	Amount decimal.Decimal
}

func (ss *SetSalary) Name() string {
	return "set_salary"
}

func (ss *SetSalary) Description() string {
	return fmt.Sprintf("Set gross salary to £%s", ss.Amount.StringFixed(2))
}

func (ss *SetSalary) Validate(base *domain.ProfileInput) error {
	if ss.Amount.IsNegative() {
		return NewTransformError(ss.Name(), "validate", fmt.Sprintf("salary cannot be negative, got %s", ss.Amount), nil)
	}
	return requireBase(ss.Name(), base)
}

func (ss *SetSalary) Apply(base *domain.ProfileInput) (*domain.ProfileInput, error) {
	modified := base.DeepCopy()
	amount := ss.Amount
	modified.Facts.GrossSalary = &amount
	return modified, nil
}

// RaiseSalary increases the gross salary by a percentage, a fixed amount, or both.
// The percentage is applied first. Negative values model a pay cut; the result
// is floored at zero.
type RaiseSalary struct {
	Percent decimal.Decimal // e.g. 0.05 for a 5% raise
	Amount  decimal.Decimal
}

func (rs *RaiseSalary) Name() string {
	return "raise_salary"
}

func (rs *RaiseSalary) Description() string {
	switch {
	case !rs.Percent.IsZero() && !rs.Amount.IsZero():
		return fmt.Sprintf("Raise salary by %s%% plus £%s", rs.Percent.Mul(decimal.NewFromInt(100)).StringFixed(1), rs.Amount.StringFixed(2))
	case !rs.Amount.IsZero():
		return fmt.Sprintf("Raise salary by £%s", rs.Amount.StringFixed(2))
	default:
		return fmt.Sprintf("Raise salary by %s%%", rs.Percent.Mul(decimal.NewFromInt(100)).StringFixed(1))
	}
}

func (rs *RaiseSalary) Validate(base *domain.ProfileInput) error {
	if rs.Percent.LessThanOrEqual(decimal.NewFromInt(-1)) {
		return NewTransformError(rs.Name(), "validate", fmt.Sprintf("percent must be greater than -1, got %s", rs.Percent), nil)
	}
	return requireBase(rs.Name(), base)
}

func (rs *RaiseSalary) Apply(base *domain.ProfileInput) (*domain.ProfileInput, error) {
	modified := base.DeepCopy()

	current := decimal.Zero
	if modified.Facts.GrossSalary != nil {
		current = *modified.Facts.GrossSalary
	}

	raised := current.Mul(decimal.NewFromInt(1).Add(rs.Percent)).Add(rs.Amount)
	raised = decimal.Max(raised, decimal.Zero)
	modified.Facts.GrossSalary = &raised

	return modified, nil
}
