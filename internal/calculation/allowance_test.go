package calculation

import (
	"testing"

	"github.com/rgehrsitz/takehome/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestTaxCodeAllowance(t *testing.T) {
	tests := []struct {
		code     string
		expected string
		ok       bool
	}{
		{"1060L", "10600", true},
		{"700L", "7000", true},
		{"S1100L", "11000", true},
		{"0T", "0", true},
		{"BR", "0", false},
		{"", "0", false},
		{"K475", "4750", true},
		{"A٣1060L", "10600", true},
		{"٣L", "0", false},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			allowance, ok := TaxCodeAllowance(tt.code)
			assert.Equal(t, tt.ok, ok)
			assertDecimal(t, tt.expected, allowance, "allowance")
		})
	}
}

func TestBasePersonalAllowance(t *testing.T) {
	tests := []struct {
		name     string
		facts    *domain.Facts
		expected string
	}{
		{"statutory", &domain.Facts{}, "10600"},
		{"blind top-up", &domain.Facts{Blind: boolPtr(true)}, "12890"},
		{"tax code override", &domain.Facts{TaxCode: stringPtr("700L")}, "7000"},
		{"tax code ignores blind top-up", &domain.Facts{TaxCode: stringPtr("1000L"), Blind: boolPtr(true)}, "10000"},
		{"code without digits falls back", &domain.Facts{TaxCode: stringPtr("NT")}, "10600"},
		{"zero allowance code", &domain.Facts{TaxCode: stringPtr("0T")}, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestProfile(t, tt.facts, "")
			assertDecimal(t, tt.expected, BasePersonalAllowance(p), "base allowance")
		})
	}
}

func TestMaxPersonalAllowance_Tapering(t *testing.T) {
	tests := []struct {
		name     string
		salary   int64
		expected string
	}{
		{"no salary", 0, "10600"},
		{"below limit", 50000, "10600"},
		{"at limit", 100000, "10600"},
		{"part tapered", 110000, "5600"},
		{"odd pound tapered", 100001, "10599.5"},
		{"fully tapered", 121200, "0"},
		{"far above limit", 200000, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := salaryProfile(t, tt.salary)
			assertDecimal(t, tt.expected, MaxPersonalAllowance(p), "max allowance")
		})
	}
}

func TestPersonalAllowance_BoundedBySalary(t *testing.T) {
	p := salaryProfile(t, 5000)
	assertDecimal(t, "5000", PersonalAllowance(p), "personal allowance")
	assertDecimal(t, "0", TaxableIncome(p), "taxable income")
}

func TestPersonalAllowance_Invariants(t *testing.T) {
	facts := []*domain.Facts{
		{},
		{Blind: boolPtr(true)},
		{TaxCode: stringPtr("1250L")},
		{TaxCode: stringPtr("0T")},
	}
	for _, f := range facts {
		for _, salary := range []int64{0, 1, 9000, 100000, 105000, 125780, 1000000} {
			p := newTestProfile(t, f.DeepCopy(), "")
			p.GrossSalary = decimal.NewFromInt(salary)

			base := BasePersonalAllowance(p)
			maxPA := MaxPersonalAllowance(p)
			assert.False(t, maxPA.IsNegative(), "salary %d", salary)
			assert.True(t, maxPA.LessThanOrEqual(base), "salary %d: max %s > base %s", salary, maxPA, base)
			assert.True(t, PersonalAllowance(p).Equal(decimal.Min(p.GrossSalary, maxPA)), "salary %d", salary)
		}
	}
}

func TestPersonalAllowance_TaxCodeScenario(t *testing.T) {
	p := newTestProfile(t, &domain.Facts{
		GrossSalary: decimalPtr(decimal.NewFromInt(50000)),
		TaxCode:     stringPtr("700L"),
	}, "")

	assertDecimal(t, "7000", BasePersonalAllowance(p), "base allowance")
	assertDecimal(t, "7000", PersonalAllowance(p), "personal allowance")
	assertDecimal(t, "43000", TaxableIncome(p), "taxable income")
	assertDecimal(t, "4486", HigherRateTax(p), "higher tax")
}
