package transform

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/takehome/internal/domain"
)

// SetAge changes the taxpayer's age. Crossing the state pension age removes
// National Insurance.
type SetAge struct {
	Age int
}

func (sa *SetAge) Name() string {
	return "set_age"
}

func (sa *SetAge) Description() string {
	return fmt.Sprintf("Set age to %d", sa.Age)
}

func (sa *SetAge) Validate(base *domain.ProfileInput) error {
	if sa.Age < 0 {
		return NewTransformError(sa.Name(), "validate", fmt.Sprintf("age must be non-negative, got %d", sa.Age), nil)
	}
	return requireBase(sa.Name(), base)
}

func (sa *SetAge) Apply(base *domain.ProfileInput) (*domain.ProfileInput, error) {
	modified := base.DeepCopy()
	age := sa.Age
	modified.Facts.Age = &age
	return modified, nil
}

// SetTaxCode overrides the statutory personal allowance with the one encoded
// in an HMRC tax code such as "1060L".
type SetTaxCode struct {
	Code string
}

func (stc *SetTaxCode) Name() string {
	return "set_tax_code"
}

func (stc *SetTaxCode) Description() string {
	return fmt.Sprintf("Use tax code %s", stc.Code)
}

func (stc *SetTaxCode) Validate(base *domain.ProfileInput) error {
	code := strings.TrimSpace(stc.Code)
	if code == "" {
		return NewTransformError(stc.Name(), "validate", "tax code cannot be empty", nil)
	}
	if strings.IndexFunc(code, func(r rune) bool { return r >= '0' && r <= '9' }) < 0 {
		return NewTransformError(stc.Name(), "validate", fmt.Sprintf("tax code %s carries no allowance digits", code), nil)
	}
	return requireBase(stc.Name(), base)
}

func (stc *SetTaxCode) Apply(base *domain.ProfileInput) (*domain.ProfileInput, error) {
	modified := base.DeepCopy()
	code := strings.ToUpper(strings.TrimSpace(stc.Code))
	modified.Facts.TaxCode = &code
	return modified, nil
}

// ClearTaxCode removes any tax code so the statutory allowance applies again.
type ClearTaxCode struct{}

func (ctc *ClearTaxCode) Name() string {
	return "clear_tax_code"
}

func (ctc *ClearTaxCode) Description() string {
	return "Remove tax code and use the statutory personal allowance"
}

func (ctc *ClearTaxCode) Validate(base *domain.ProfileInput) error {
	return requireBase(ctc.Name(), base)
}

func (ctc *ClearTaxCode) Apply(base *domain.ProfileInput) (*domain.ProfileInput, error) {
	modified := base.DeepCopy()
	modified.Facts.TaxCode = nil
	return modified, nil
}

// SetBlind toggles the Blind Person's Allowance top-up.
type SetBlind struct {
	Blind bool
}

func (sb *SetBlind) Name() string {
	return "set_blind"
}

func (sb *SetBlind) Description() string {
	if sb.Blind {
		return "Claim Blind Person's Allowance"
	}
	return "Remove Blind Person's Allowance"
}

func (sb *SetBlind) Validate(base *domain.ProfileInput) error {
	return requireBase(sb.Name(), base)
}

func (sb *SetBlind) Apply(base *domain.ProfileInput) (*domain.ProfileInput, error) {
	modified := base.DeepCopy()
	blind := sb.Blind
	modified.Facts.Blind = &blind
	return modified, nil
}
