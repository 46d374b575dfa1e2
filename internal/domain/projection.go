package domain

import (
	"github.com/shopspring/decimal"
)

// BandUsage is the portion of an income that falls in one band and the
// charge raised on it
type BandUsage struct {
	Usage decimal.Decimal `yaml:"usage" json:"usage"`
	Rate  decimal.Decimal `yaml:"rate" json:"rate"`
	Tax   decimal.Decimal `yaml:"tax" json:"tax"`
}

// TaxBreakdown is a point-in-time snapshot of every derived figure for a profile
type TaxBreakdown struct {
	TaxYear     string          `yaml:"tax_year" json:"tax_year"`
	GrossSalary decimal.Decimal `yaml:"gross_salary" json:"gross_salary"`

	// Allowances
	BasePersonalAllowance decimal.Decimal `yaml:"base_personal_allowance" json:"base_personal_allowance"`
	MaxPersonalAllowance  decimal.Decimal `yaml:"max_personal_allowance" json:"max_personal_allowance"`
	PersonalAllowance     decimal.Decimal `yaml:"personal_allowance" json:"personal_allowance"`

	// Income
	TotalIncome      decimal.Decimal `yaml:"total_income" json:"total_income"`
	PensionSacrifice decimal.Decimal `yaml:"pension_sacrifice" json:"pension_sacrifice"`
	IncomeDeductions decimal.Decimal `yaml:"income_deductions" json:"income_deductions"`
	TaxableIncome    decimal.Decimal `yaml:"taxable_income" json:"taxable_income"`

	// Income tax
	BasicRate      BandUsage       `yaml:"basic_rate" json:"basic_rate"`
	HigherRate     BandUsage       `yaml:"higher_rate" json:"higher_rate"`
	AdditionalRate BandUsage       `yaml:"additional_rate" json:"additional_rate"`
	TaxPayable     decimal.Decimal `yaml:"tax_payable" json:"tax_payable"`

	// National Insurance
	NatInsPrimaryThreshold BandUsage       `yaml:"nat_ins_primary_threshold" json:"nat_ins_primary_threshold"`
	NatInsUpperEarnings    BandUsage       `yaml:"nat_ins_upper_earnings" json:"nat_ins_upper_earnings"`
	NationalInsurance      decimal.Decimal `yaml:"national_insurance" json:"national_insurance"`

	StudentLoanRepayment decimal.Decimal `yaml:"student_loan_repayment" json:"student_loan_repayment"`
	TakeHomePay          decimal.Decimal `yaml:"take_home_pay" json:"take_home_pay"`
}

// TotalDeductions returns everything withheld from gross salary
func (tb TaxBreakdown) TotalDeductions() decimal.Decimal {
	return tb.GrossSalary.Sub(tb.TakeHomePay)
}

// EffectiveTaxRate returns income tax plus NI as a fraction of gross salary
func (tb TaxBreakdown) EffectiveTaxRate() decimal.Decimal {
	if tb.GrossSalary.IsZero() {
		return decimal.Zero
	}
	return tb.TaxPayable.Add(tb.NationalInsurance).Div(tb.GrossSalary)
}

// ProfileSummary is the computed result for one named profile
type ProfileSummary struct {
	Name      string       `yaml:"name" json:"name"`
	Breakdown TaxBreakdown `yaml:"breakdown" json:"breakdown"`
}

// ProfileComparison holds the results for every profile in an input file
type ProfileComparison struct {
	Profiles []ProfileSummary `yaml:"profiles" json:"profiles"`
}
