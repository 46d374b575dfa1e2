package calculation

import (
	"github.com/rgehrsitz/takehome/internal/domain"
	"github.com/shopspring/decimal"
)

// BAND APPORTIONMENT:
//
// Income tax and National Insurance are both charged over an ordered table
// of contiguous bands. Usage is cascading: each band takes whatever
// chargeable income remains after the bands below it, capped at its own
// width. The open top band takes the remainder and has no upper limit to read.
// Any negative remainder is clamped to zero.

// bandUsage returns the slice of chargeable income that falls in band once
// consumed has already been taken by lower bands
func bandUsage(chargeable, consumed decimal.Decimal, band domain.Band) decimal.Decimal {
	remaining := decimal.Max(chargeable.Sub(consumed), decimal.Zero)
	if width, ok := band.Width(); ok {
		remaining = decimal.Min(remaining, width)
	}
	return remaining
}

// ApportionBands splits income across bands, lowest first. Income below the
// first band's lower limit is not chargeable.
func ApportionBands(income decimal.Decimal, bands []domain.Band) []domain.BandUsage {
	usages := make([]domain.BandUsage, len(bands))
	if len(bands) == 0 {
		return usages
	}

	chargeable := income.Sub(bands[0].LowerLimit)
	consumed := decimal.Zero
	for i, band := range bands {
		usage := bandUsage(chargeable, consumed, band)
		usages[i] = domain.BandUsage{Usage: usage, Rate: band.Rate, Tax: usage.Mul(band.Rate)}
		consumed = consumed.Add(usage)
	}
	return usages
}

func incomeTaxBand(p *domain.Profile, index int) domain.Band {
	return p.Rules().IncomeTax.Bands[index]
}

// BasicRateUsage returns the taxable income charged at the basic rate
func BasicRateUsage(p *domain.Profile) decimal.Decimal {
	return bandUsage(TaxableIncome(p), decimal.Zero, incomeTaxBand(p, domain.BasicRateBand))
}

// BasicRateTax returns the tax charged at the basic rate
func BasicRateTax(p *domain.Profile) decimal.Decimal {
	return BasicRateUsage(p).Mul(incomeTaxBand(p, domain.BasicRateBand).Rate)
}

// HigherRateUsage returns the taxable income charged at the higher rate
func HigherRateUsage(p *domain.Profile) decimal.Decimal {
	return bandUsage(TaxableIncome(p), BasicRateUsage(p), incomeTaxBand(p, domain.HigherRateBand))
}

// HigherRateTax returns the tax charged at the higher rate
func HigherRateTax(p *domain.Profile) decimal.Decimal {
	return HigherRateUsage(p).Mul(incomeTaxBand(p, domain.HigherRateBand).Rate)
}

// AdditionalRateUsage returns the taxable income left over once the basic and
// higher rate bands are used
func AdditionalRateUsage(p *domain.Profile) decimal.Decimal {
	consumed := BasicRateUsage(p).Add(HigherRateUsage(p))
	return bandUsage(TaxableIncome(p), consumed, incomeTaxBand(p, domain.AdditionalRateBand))
}

// AdditionalRateTax returns the tax charged at the additional rate
func AdditionalRateTax(p *domain.Profile) decimal.Decimal {
	return AdditionalRateUsage(p).Mul(incomeTaxBand(p, domain.AdditionalRateBand).Rate)
}

// TaxPayable returns total income tax. National Insurance is not included.
func TaxPayable(p *domain.Profile) decimal.Decimal {
	return BasicRateTax(p).Add(HigherRateTax(p)).Add(AdditionalRateTax(p))
}

// NATIONAL INSURANCE:
//
// Class 1 employee contributions are charged on gross salary directly, not on
// taxable income, and nothing is due once the taxpayer reaches pension age.

func nationalInsuranceUsages(p *domain.Profile) []domain.BandUsage {
	ni := p.Rules().NationalInsurance
	usages := ApportionBands(p.GrossSalary, ni.Bands)
	if p.Age >= ni.PensionAge {
		for i := range usages {
			usages[i].Usage = decimal.Zero
			usages[i].Tax = decimal.Zero
		}
	}
	return usages
}

// NatInsPtUsage returns the salary charged in the primary threshold band
func NatInsPtUsage(p *domain.Profile) decimal.Decimal {
	return nationalInsuranceUsages(p)[domain.PrimaryThresholdBand].Usage
}

// NatInsPtTax returns the contribution due in the primary threshold band
func NatInsPtTax(p *domain.Profile) decimal.Decimal {
	return nationalInsuranceUsages(p)[domain.PrimaryThresholdBand].Tax
}

// NatInsUelUsage returns the salary above the upper earnings limit
func NatInsUelUsage(p *domain.Profile) decimal.Decimal {
	return nationalInsuranceUsages(p)[domain.UpperEarningsBand].Usage
}

// NatInsUelTax returns the contribution due above the upper earnings limit
func NatInsUelTax(p *domain.Profile) decimal.Decimal {
	return nationalInsuranceUsages(p)[domain.UpperEarningsBand].Tax
}

// NationalInsurance returns the total employee contribution
func NationalInsurance(p *domain.Profile) decimal.Decimal {
	return NatInsPtTax(p).Add(NatInsUelTax(p))
}
