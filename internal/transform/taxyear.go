package transform

import (
	"fmt"

	"github.com/rgehrsitz/takehome/internal/domain"
)

// SetTaxYear re-evaluates the profile under another year's rules. When Rules
// is set the year must be one it can resolve.
type SetTaxYear struct {
	TaxYear string
	Rules   domain.RuleResolver
}

func (sty *SetTaxYear) Name() string {
	return "set_tax_year"
}

func (sty *SetTaxYear) Description() string {
	return fmt.Sprintf("Use the %s tax year", sty.TaxYear)
}

func (sty *SetTaxYear) Validate(base *domain.ProfileInput) error {
	if sty.TaxYear == "" {
		return NewTransformError(sty.Name(), "validate", "tax year cannot be empty", domain.ErrUnknownTaxYear)
	}
	if sty.Rules != nil {
		if _, err := sty.Rules.Resolve(sty.TaxYear); err != nil {
			return NewTransformError(sty.Name(), "validate", "tax year not available", err)
		}
	}
	return requireBase(sty.Name(), base)
}

func (sty *SetTaxYear) Apply(base *domain.ProfileInput) (*domain.ProfileInput, error) {
	modified := base.DeepCopy()
	modified.TaxYear = sty.TaxYear
	return modified, nil
}
