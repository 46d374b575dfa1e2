package calculation

import (
	"strings"

	"github.com/rgehrsitz/takehome/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	taxCodeMultiplier = decimal.NewFromInt(10)
	taperDivisor      = decimal.NewFromInt(2)
)

// TaxCodeAllowance extracts the allowance expressed by a tax code: its first
// run of digits multiplied by ten ("1060L" is 10600). ok is false when the
// code carries no digits.
func TaxCodeAllowance(code string) (allowance decimal.Decimal, ok bool) {
	start := strings.IndexFunc(code, isASCIIDigit)
	if start < 0 {
		return decimal.Zero, false
	}
	end := start
	for end < len(code) && isASCIIDigit(rune(code[end])) {
		end++
	}
	digits, err := decimal.NewFromString(code[start:end])
	if err != nil {
		return decimal.Zero, false
	}
	return digits.Mul(taxCodeMultiplier), true
}

func isASCIIDigit(r rune) bool { return r >= '0' && r <= '9' }

// BasePersonalAllowance returns the allowance before tapering. A tax code
// replaces the statutory allowance outright; otherwise blind taxpayers get
// the blind person's top-up on the statutory figure.
func BasePersonalAllowance(p *domain.Profile) decimal.Decimal {
	if p.TaxCode != "" {
		if allowance, ok := TaxCodeAllowance(p.TaxCode); ok {
			return allowance
		}
	}

	pa := p.Rules().IncomeTax.PersonalAllowance
	base := pa.Standard
	if p.Blind {
		base = base.Add(pa.BlindTopup)
	}
	return base
}

// MaxPersonalAllowance returns the base allowance after tapering: one pound
// is withdrawn for every two pounds of salary above the income limit, never
// below zero.
func MaxPersonalAllowance(p *domain.Profile) decimal.Decimal {
	base := BasePersonalAllowance(p)
	incomeLimit := p.Rules().IncomeTax.PersonalAllowance.IncomeLimit

	modifier := p.GrossSalary.Sub(incomeLimit).Div(taperDivisor)
	modifier = decimal.Max(decimal.Min(modifier, base), decimal.Zero)

	return base.Sub(modifier)
}

// PersonalAllowance returns the allowance actually used, which cannot exceed
// gross salary
func PersonalAllowance(p *domain.Profile) decimal.Decimal {
	return decimal.Min(p.GrossSalary, MaxPersonalAllowance(p))
}
