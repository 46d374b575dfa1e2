package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// RuleSet contains every statutory figure in force for a single tax year.
// A RuleSet is shared read-only between profiles once it has been loaded.
type RuleSet struct {
	IncomeTax             IncomeTaxRules                  `yaml:"income_tax" json:"income_tax"`
	NationalInsurance     NationalInsuranceRules          `yaml:"national_insurance" json:"national_insurance"`
	StudentLoanRepayments map[string]StudentLoanPlanRules `yaml:"student_loan_repayments" json:"student_loan_repayments"`
}

// IncomeTaxRules contains personal allowance parameters and the income tax bands
type IncomeTaxRules struct {
	PersonalAllowance PersonalAllowanceRules `yaml:"personal_allowance" json:"personal_allowance"`
	Bands             []Band                 `yaml:"bands" json:"bands"`
}

// PersonalAllowanceRules contains the statutory allowance, the income limit
// above which it tapers and the blind person's allowance top-up
type PersonalAllowanceRules struct {
	Standard    decimal.Decimal `yaml:"standard" json:"standard"`
	IncomeLimit decimal.Decimal `yaml:"income_limit" json:"income_limit"`
	BlindTopup  decimal.Decimal `yaml:"blind_topup" json:"blind_topup"`
}

// NationalInsuranceRules contains Class 1 employee contribution rules
type NationalInsuranceRules struct {
	PensionAge int    `yaml:"pension_age" json:"pension_age"`
	Bands      []Band `yaml:"bands" json:"bands"`
}

// StudentLoanPlanRules contains the repayment threshold and rate for one plan
type StudentLoanPlanRules struct {
	Threshold decimal.Decimal `yaml:"threshold" json:"threshold"`
	Rate      decimal.Decimal `yaml:"rate" json:"rate"`
}

// Band is a contiguous income range charged at a fixed rate.
// A nil UpperLimit marks an open-ended top band.
type Band struct {
	LowerLimit decimal.Decimal  `yaml:"lower_limit" json:"lower_limit"`
	UpperLimit *decimal.Decimal `yaml:"upper_limit,omitempty" json:"upper_limit,omitempty"`
	Rate       decimal.Decimal  `yaml:"rate" json:"rate"`
}

// Width returns the size of a bounded band. ok is false for the open top band.
func (b Band) Width() (width decimal.Decimal, ok bool) {
	if b.UpperLimit == nil {
		return decimal.Zero, false
	}
	return b.UpperLimit.Sub(b.LowerLimit), true
}

// Income tax band indexes
const (
	BasicRateBand = iota
	HigherRateBand
	AdditionalRateBand
)

// National Insurance band indexes
const (
	PrimaryThresholdBand = iota
	UpperEarningsBand
)

// StudentLoanPlan identifies a student loan repayment plan
type StudentLoanPlan int

const (
	StudentLoanPlan1 StudentLoanPlan = 1
	StudentLoanPlan2 StudentLoanPlan = 2
)

// Key returns the rule table key for the plan ("plan1", "plan2")
func (p StudentLoanPlan) Key() string {
	return fmt.Sprintf("plan%d", int(p))
}

// Valid reports whether p is a known plan
func (p StudentLoanPlan) Valid() bool {
	return p == StudentLoanPlan1 || p == StudentLoanPlan2
}

// StudentLoanPlan returns the parameters for plan. Plans missing from the
// table yield zero threshold and rate.
func (rs *RuleSet) StudentLoanPlan(plan StudentLoanPlan) StudentLoanPlanRules {
	return rs.StudentLoanRepayments[plan.Key()]
}

// RuleResolver resolves a tax-year identifier to its rule set
type RuleResolver interface {
	Resolve(taxYear string) (*RuleSet, error)
	DefaultTaxYear() string
}

// ValidateBands checks the ordering and contiguity of a band table: bands
// ascend by lower limit, each lower limit equals the previous upper limit,
// and only the final band may omit its upper limit.
func ValidateBands(bands []Band) error {
	if len(bands) == 0 {
		return fmt.Errorf("at least one band is required")
	}
	for i, b := range bands {
		if b.Rate.LessThan(decimal.Zero) || b.Rate.GreaterThan(decimal.NewFromInt(1)) {
			return fmt.Errorf("band %d: rate must be between 0 and 1", i)
		}
		if b.LowerLimit.LessThan(decimal.Zero) {
			return fmt.Errorf("band %d: lower limit cannot be negative", i)
		}
		last := i == len(bands)-1
		if b.UpperLimit == nil {
			if !last {
				return fmt.Errorf("band %d: only the final band may omit its upper limit", i)
			}
		} else if !b.UpperLimit.GreaterThan(b.LowerLimit) {
			return fmt.Errorf("band %d: upper limit %s must exceed lower limit %s", i, b.UpperLimit, b.LowerLimit)
		}
		if last && b.UpperLimit != nil {
			return fmt.Errorf("band %d: final band must not have an upper limit", i)
		}
		if i > 0 {
			prev := bands[i-1]
			if !prev.UpperLimit.Equal(b.LowerLimit) {
				return fmt.Errorf("band %d: lower limit %s does not meet previous upper limit %s", i, b.LowerLimit, prev.UpperLimit)
			}
		}
	}
	return nil
}

// Validate checks that the rule set is internally consistent
func (rs *RuleSet) Validate() error {
	pa := rs.IncomeTax.PersonalAllowance
	if pa.Standard.LessThan(decimal.Zero) {
		return fmt.Errorf("personal allowance cannot be negative")
	}
	if pa.IncomeLimit.LessThan(decimal.Zero) {
		return fmt.Errorf("personal allowance income limit cannot be negative")
	}
	if pa.BlindTopup.LessThan(decimal.Zero) {
		return fmt.Errorf("blind allowance top-up cannot be negative")
	}

	if len(rs.IncomeTax.Bands) != 3 {
		return fmt.Errorf("income tax requires exactly 3 bands, got %d", len(rs.IncomeTax.Bands))
	}
	if err := ValidateBands(rs.IncomeTax.Bands); err != nil {
		return fmt.Errorf("income tax bands: %w", err)
	}
	if !rs.IncomeTax.Bands[0].LowerLimit.IsZero() {
		return fmt.Errorf("income tax bands: basic band must start at 0, got %s (income tax limits are measured from zero taxable income)",
			rs.IncomeTax.Bands[0].LowerLimit)
	}

	if rs.NationalInsurance.PensionAge <= 0 {
		return fmt.Errorf("national insurance pension age must be positive")
	}
	if len(rs.NationalInsurance.Bands) != 2 {
		return fmt.Errorf("national insurance requires exactly 2 bands, got %d", len(rs.NationalInsurance.Bands))
	}
	if err := ValidateBands(rs.NationalInsurance.Bands); err != nil {
		return fmt.Errorf("national insurance bands: %w", err)
	}

	for _, plan := range []StudentLoanPlan{StudentLoanPlan1, StudentLoanPlan2} {
		p, ok := rs.StudentLoanRepayments[plan.Key()]
		if !ok {
			return fmt.Errorf("student loan %s is missing", plan.Key())
		}
		if p.Threshold.LessThan(decimal.Zero) {
			return fmt.Errorf("student loan %s threshold cannot be negative", plan.Key())
		}
		if p.Rate.LessThan(decimal.Zero) || p.Rate.GreaterThan(decimal.NewFromInt(1)) {
			return fmt.Errorf("student loan %s rate must be between 0 and 1", plan.Key())
		}
	}
	return nil
}
