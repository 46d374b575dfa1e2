package calculation

import (
	"github.com/rgehrsitz/takehome/internal/domain"
	"github.com/shopspring/decimal"
)

// PensionSacrifice returns the salary diverted into a pension before tax
func PensionSacrifice(p *domain.Profile) decimal.Decimal {
	return p.GrossSalary.Mul(p.PensionSacrificePercent)
}

// TotalIncome returns gross salary plus taxable benefits in kind
func TotalIncome(p *domain.Profile) decimal.Decimal {
	return p.GrossSalary.Add(p.BenefitsInKind)
}

// IncomeDeductions returns the amounts deducted from income before tax
func IncomeDeductions(p *domain.Profile) decimal.Decimal {
	return PensionSacrifice(p).Add(p.GiftAid)
}

// TaxableIncome returns income left to tax once deductions and the personal
// allowance are taken off. It may be negative when deductions exceed income.
func TaxableIncome(p *domain.Profile) decimal.Decimal {
	return TotalIncome(p).Sub(IncomeDeductions(p)).Sub(PersonalAllowance(p))
}

// StudentLoanRepayment returns the annual repayment for the selected plan,
// or zero when the taxpayer has not opted in
func StudentLoanRepayment(p *domain.Profile) decimal.Decimal {
	if !p.StudentLoanRepayments {
		return decimal.Zero
	}
	plan := p.Rules().StudentLoanPlan(p.StudentLoanPlan)
	rateable := decimal.Max(p.GrossSalary.Sub(plan.Threshold), decimal.Zero)
	return rateable.Mul(plan.Rate)
}

// TakeHomePay returns gross salary less pension sacrifice, student loan
// repayment, income tax and National Insurance. Benefits in kind and gift aid
// only reach take-home pay through the tax they change.
func TakeHomePay(p *domain.Profile) decimal.Decimal {
	withheld := PensionSacrifice(p).
		Add(StudentLoanRepayment(p)).
		Add(TaxPayable(p)).
		Add(NationalInsurance(p))
	return p.GrossSalary.Sub(withheld)
}

// Compute evaluates every derived figure for p into a snapshot
func Compute(p *domain.Profile) domain.TaxBreakdown {
	rules := p.Rules()
	taxable := TaxableIncome(p)
	bands := rules.IncomeTax.Bands

	basic := bandUsage(taxable, decimal.Zero, bands[domain.BasicRateBand])
	higher := bandUsage(taxable, basic, bands[domain.HigherRateBand])
	additional := bandUsage(taxable, basic.Add(higher), bands[domain.AdditionalRateBand])

	tb := domain.TaxBreakdown{
		TaxYear:               p.TaxYear(),
		GrossSalary:           p.GrossSalary,
		BasePersonalAllowance: BasePersonalAllowance(p),
		MaxPersonalAllowance:  MaxPersonalAllowance(p),
		PersonalAllowance:     PersonalAllowance(p),
		TotalIncome:           TotalIncome(p),
		PensionSacrifice:      PensionSacrifice(p),
		IncomeDeductions:      IncomeDeductions(p),
		TaxableIncome:         taxable,
		BasicRate:             usageAt(basic, bands[domain.BasicRateBand].Rate),
		HigherRate:            usageAt(higher, bands[domain.HigherRateBand].Rate),
		AdditionalRate:        usageAt(additional, bands[domain.AdditionalRateBand].Rate),
		StudentLoanRepayment:  StudentLoanRepayment(p),
	}
	tb.TaxPayable = tb.BasicRate.Tax.Add(tb.HigherRate.Tax).Add(tb.AdditionalRate.Tax)

	ni := nationalInsuranceUsages(p)
	tb.NatInsPrimaryThreshold = ni[domain.PrimaryThresholdBand]
	tb.NatInsUpperEarnings = ni[domain.UpperEarningsBand]
	tb.NationalInsurance = tb.NatInsPrimaryThreshold.Tax.Add(tb.NatInsUpperEarnings.Tax)

	tb.TakeHomePay = p.GrossSalary.Sub(
		tb.PensionSacrifice.Add(tb.StudentLoanRepayment).Add(tb.TaxPayable).Add(tb.NationalInsurance))
	return tb
}

func usageAt(usage, rate decimal.Decimal) domain.BandUsage {
	return domain.BandUsage{Usage: usage, Rate: rate, Tax: usage.Mul(rate)}
}
