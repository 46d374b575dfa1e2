package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Profile defaults applied to any fact that is not supplied
const (
	DefaultAge             = 40
	DefaultStudentLoanPlan = StudentLoanPlan1
)

// Facts holds the raw facts used to build a Profile. Nil fields take the
// documented default; a zero-valued Facts is a valid fact set.
type Facts struct {
	GrossSalary             *decimal.Decimal `yaml:"gross_salary,omitempty" json:"gross_salary,omitempty"`
	Age                     *int             `yaml:"age,omitempty" json:"age,omitempty"`
	Blind                   *bool            `yaml:"blind,omitempty" json:"blind,omitempty"`
	TaxCode                 *string          `yaml:"tax_code,omitempty" json:"tax_code,omitempty"`
	BenefitsInKind          *decimal.Decimal `yaml:"benefits_in_kind,omitempty" json:"benefits_in_kind,omitempty"`
	GiftAid                 *decimal.Decimal `yaml:"gift_aid,omitempty" json:"gift_aid,omitempty"`
	PensionSacrificePercent *decimal.Decimal `yaml:"pension_sacrifice_percent,omitempty" json:"pension_sacrifice_percent,omitempty"`
	StudentLoanRepayments   *bool            `yaml:"student_loan_repayments,omitempty" json:"student_loan_repayments,omitempty"`
	StudentLoanPlan         *int             `yaml:"student_loan_plan,omitempty" json:"student_loan_plan,omitempty"`
}

// DeepCopy returns a copy of the facts that shares no pointers with f
func (f *Facts) DeepCopy() *Facts {
	if f == nil {
		return nil
	}
	c := &Facts{}
	if f.GrossSalary != nil {
		v := *f.GrossSalary
		c.GrossSalary = &v
	}
	if f.Age != nil {
		v := *f.Age
		c.Age = &v
	}
	if f.Blind != nil {
		v := *f.Blind
		c.Blind = &v
	}
	if f.TaxCode != nil {
		v := *f.TaxCode
		c.TaxCode = &v
	}
	if f.BenefitsInKind != nil {
		v := *f.BenefitsInKind
		c.BenefitsInKind = &v
	}
	if f.GiftAid != nil {
		v := *f.GiftAid
		c.GiftAid = &v
	}
	if f.PensionSacrificePercent != nil {
		v := *f.PensionSacrificePercent
		c.PensionSacrificePercent = &v
	}
	if f.StudentLoanRepayments != nil {
		v := *f.StudentLoanRepayments
		c.StudentLoanRepayments = &v
	}
	if f.StudentLoanPlan != nil {
		v := *f.StudentLoanPlan
		c.StudentLoanPlan = &v
	}
	return c
}

// Profile is a taxpayer's raw facts together with the tax year selected for
// them and the rule set that year resolves to.
//
// Raw fields may be written directly; every derived figure is recomputed from
// them on each read. A Profile is not safe for concurrent mutation.
type Profile struct {
	GrossSalary             decimal.Decimal
	Age                     int
	Blind                   bool
	TaxCode                 string // empty when no tax code applies
	BenefitsInKind          decimal.Decimal
	GiftAid                 decimal.Decimal
	PensionSacrificePercent decimal.Decimal
	StudentLoanRepayments   bool
	StudentLoanPlan         StudentLoanPlan

	resolver RuleResolver
	taxYear  string
	rules    *RuleSet
}

// NewProfile creates a profile from facts merged over the defaults and
// resolves taxYear (or the resolver's default when empty).
func NewProfile(resolver RuleResolver, facts *Facts, taxYear string) (*Profile, error) {
	if facts == nil {
		return nil, ErrMissingAttributes
	}
	if resolver == nil {
		return nil, fmt.Errorf("rule resolver is required")
	}

	p := &Profile{
		GrossSalary:     decimal.Zero,
		Age:             DefaultAge,
		StudentLoanPlan: DefaultStudentLoanPlan,
		resolver:        resolver,
	}
	p.ApplyFacts(facts)

	if taxYear == "" {
		taxYear = resolver.DefaultTaxYear()
	}
	if err := p.SetTaxYear(taxYear); err != nil {
		return nil, err
	}
	return p, nil
}

// NewProfileFromSalary creates a profile from a gross salary alone, with
// every other fact at its default
func NewProfileFromSalary(resolver RuleResolver, grossSalary decimal.Decimal, taxYear string) (*Profile, error) {
	return NewProfile(resolver, &Facts{GrossSalary: &grossSalary}, taxYear)
}

// ApplyFacts overwrites the raw fields present in facts. Absent fields keep
// their current values.
func (p *Profile) ApplyFacts(facts *Facts) {
	if facts == nil {
		return
	}
	if facts.GrossSalary != nil {
		p.GrossSalary = *facts.GrossSalary
	}
	if facts.Age != nil {
		p.Age = *facts.Age
	}
	if facts.Blind != nil {
		p.Blind = *facts.Blind
	}
	if facts.TaxCode != nil {
		p.TaxCode = *facts.TaxCode
	}
	if facts.BenefitsInKind != nil {
		p.BenefitsInKind = *facts.BenefitsInKind
	}
	if facts.GiftAid != nil {
		p.GiftAid = *facts.GiftAid
	}
	if facts.PensionSacrificePercent != nil {
		p.PensionSacrificePercent = *facts.PensionSacrificePercent
	}
	if facts.StudentLoanRepayments != nil {
		p.StudentLoanRepayments = *facts.StudentLoanRepayments
	}
	if facts.StudentLoanPlan != nil {
		p.StudentLoanPlan = StudentLoanPlan(*facts.StudentLoanPlan)
	}
}

// Facts returns the current raw fields as a fully populated fact set
func (p *Profile) Facts() *Facts {
	salary := p.GrossSalary
	age := p.Age
	blind := p.Blind
	bik := p.BenefitsInKind
	giftAid := p.GiftAid
	pension := p.PensionSacrificePercent
	studentLoan := p.StudentLoanRepayments
	plan := int(p.StudentLoanPlan)

	f := &Facts{
		GrossSalary:             &salary,
		Age:                     &age,
		Blind:                   &blind,
		BenefitsInKind:          &bik,
		GiftAid:                 &giftAid,
		PensionSacrificePercent: &pension,
		StudentLoanRepayments:   &studentLoan,
		StudentLoanPlan:         &plan,
	}
	if p.TaxCode != "" {
		code := p.TaxCode
		f.TaxCode = &code
	}
	return f
}

// TaxYear returns the selected tax-year identifier
func (p *Profile) TaxYear() string {
	return p.taxYear
}

// Rules returns the rule set for the selected tax year
func (p *Profile) Rules() *RuleSet {
	return p.rules
}

// SetTaxYear selects a new tax year and re-resolves the rules. On failure
// the previous selection is kept.
func (p *Profile) SetTaxYear(taxYear string) error {
	rules, err := p.resolver.Resolve(taxYear)
	if err != nil {
		return err
	}
	p.taxYear = taxYear
	p.rules = rules
	return nil
}
