package transform

import (
	"fmt"

	"github.com/rgehrsitz/takehome/internal/domain"
	"github.com/shopspring/decimal"
)

// SetPensionSacrifice sets the share of gross salary given up into a pension
// before tax.
type SetPensionSacrifice struct {
	Percent decimal.Decimal // e.g. 0.05 for 5%
}

func (sps *SetPensionSacrifice) Name() string {
	return "set_pension_sacrifice"
}

func (sps *SetPensionSacrifice) Description() string {
	return fmt.Sprintf("Sacrifice %s%% of salary into a pension", sps.Percent.Mul(decimal.NewFromInt(100)).StringFixed(1))
}

func (sps *SetPensionSacrifice) Validate(base *domain.ProfileInput) error {
	if sps.Percent.IsNegative() || sps.Percent.GreaterThan(decimal.NewFromInt(1)) {
		return NewTransformError(sps.Name(), "validate", fmt.Sprintf("percent must be between 0 and 1, got %s", sps.Percent), nil)
	}
	return requireBase(sps.Name(), base)
}

func (sps *SetPensionSacrifice) Apply(base *domain.ProfileInput) (*domain.ProfileInput, error) {
	modified := base.DeepCopy()
	pct := sps.Percent
	modified.Facts.PensionSacrificePercent = &pct
	return modified, nil
}

// SetGiftAid sets the annual Gift Aid donations, which are deducted from
// taxable income.
type SetGiftAid struct {
	Amount decimal.Decimal
}

func (sga *SetGiftAid) Name() string {
	return "set_gift_aid"
}

func (sga *SetGiftAid) Description() string {
	return fmt.Sprintf("Donate £%s under Gift Aid", sga.Amount.StringFixed(2))
}

func (sga *SetGiftAid) Validate(base *domain.ProfileInput) error {
	if sga.Amount.IsNegative() {
		return NewTransformError(sga.Name(), "validate", fmt.Sprintf("gift aid cannot be negative, got %s", sga.Amount), nil)
	}
	return requireBase(sga.Name(), base)
}

func (sga *SetGiftAid) Apply(base *domain.ProfileInput) (*domain.ProfileInput, error) {
	modified := base.DeepCopy()
	amount := sga.Amount
	modified.Facts.GiftAid = &amount
	return modified, nil
}

// SetBenefitsInKind sets the taxable value of non-cash benefits.
type SetBenefitsInKind struct {
	Amount decimal.Decimal
}

func (sbk *SetBenefitsInKind) Name() string {
	return "set_benefits_in_kind"
}

func (sbk *SetBenefitsInKind) Description() string {
	return fmt.Sprintf("Receive £%s of benefits in kind", sbk.Amount.StringFixed(2))
}

func (sbk *SetBenefitsInKind) Validate(base *domain.ProfileInput) error {
	if sbk.Amount.IsNegative() {
		return NewTransformError(sbk.Name(), "validate", fmt.Sprintf("benefits in kind cannot be negative, got %s", sbk.Amount), nil)
	}
	return requireBase(sbk.Name(), base)
}

func (sbk *SetBenefitsInKind) Apply(base *domain.ProfileInput) (*domain.ProfileInput, error) {
	modified := base.DeepCopy()
	amount := sbk.Amount
	modified.Facts.BenefitsInKind = &amount
	return modified, nil
}
