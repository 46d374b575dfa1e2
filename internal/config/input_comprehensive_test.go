package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rgehrsitz/takehome/internal/domain"
	"github.com/rgehrsitz/takehome/internal/rules"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decimalPtr(v float64) *decimal.Decimal {
	d := decimal.NewFromFloat(v)
	return &d
}

func intPtr(v int) *int { return &v }

func stringPtr(v string) *string { return &v }

func TestNewInputParser(t *testing.T) {
	parser := NewInputParser(rules.MustDefault())
	assert.NotNil(t, parser, "Should create input parser")
}

func TestInputParser_LoadFromFile_FileNotFound(t *testing.T) {
	parser := NewInputParser(rules.MustDefault())

	config, err := parser.LoadFromFile("nonexistent.yaml")

	assert.Error(t, err, "Should error for nonexistent file")
	assert.Nil(t, config, "Should return nil config")
	assert.Contains(t, err.Error(), "failed to read file", "Should have specific error message")
}

func TestInputParser_LoadFromFile_InvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	invalidFile := filepath.Join(tmpDir, "invalid.yaml")

	err := os.WriteFile(invalidFile, []byte("invalid: yaml: content: [unclosed"), 0644)
	assert.NoError(t, err)

	parser := NewInputParser(rules.MustDefault())
	config, err := parser.LoadFromFile(invalidFile)

	assert.Error(t, err, "Should error for invalid YAML")
	assert.Nil(t, config, "Should return nil config")
	assert.Contains(t, err.Error(), "failed to parse YAML", "Should have specific error message")
}

func TestInputParser_LoadFromFile_ValidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	validFile := filepath.Join(tmpDir, "valid.yaml")

	validYAML := `
default_tax_year: "2014/2015"
profiles:
  - name: "alice"
    tax_year: "2015/2016"
    gross_salary: 50000
    pension_sacrifice_percent: 0.05
    student_loan_repayments: true
    student_loan_plan: 2
  - name: "bob"
    gross_salary: 120000
    age: 66
    blind: true
    tax_code: "1100L"
    gift_aid: 1000
    benefits_in_kind: 2500
`

	err := os.WriteFile(validFile, []byte(validYAML), 0644)
	require.NoError(t, err)

	parser := NewInputParser(rules.MustDefault())
	config, err := parser.LoadFromFile(validFile)

	require.NoError(t, err, "Should not error for valid YAML")
	require.NotNil(t, config, "Should return config")
	assert.Equal(t, "2014/2015", config.DefaultTaxYear)
	require.Len(t, config.Profiles, 2, "Should parse profiles")

	alice := config.FindProfile("alice")
	require.NotNil(t, alice)
	assert.Equal(t, "2015/2016", alice.TaxYear)
	assert.True(t, alice.Facts.GrossSalary.Equal(decimal.NewFromInt(50000)))
	assert.True(t, alice.Facts.PensionSacrificePercent.Equal(decimal.NewFromFloat(0.05)))
	assert.True(t, *alice.Facts.StudentLoanRepayments)
	assert.Equal(t, 2, *alice.Facts.StudentLoanPlan)
	assert.Nil(t, alice.Facts.Age, "Unset facts stay nil")

	bob := config.FindProfile("bob")
	require.NotNil(t, bob)
	assert.Equal(t, 66, *bob.Facts.Age)
	assert.True(t, *bob.Facts.Blind)
	assert.Equal(t, "1100L", *bob.Facts.TaxCode)
	assert.True(t, bob.Facts.GiftAid.Equal(decimal.NewFromInt(1000)))
	assert.True(t, bob.Facts.BenefitsInKind.Equal(decimal.NewFromInt(2500)))
	assert.Equal(t, "2014/2015", config.EffectiveTaxYear(bob))
}

func TestInputParser_Parse_JSON(t *testing.T) {
	parser := NewInputParser(nil)

	config, err := parser.Parse([]byte(`{"profiles": [{"name": "json", "gross_salary": 30000}]}`))
	require.NoError(t, err)
	assert.True(t, config.Profiles[0].Facts.GrossSalary.Equal(decimal.NewFromInt(30000)))
}

func TestInputParser_ValidateConfiguration(t *testing.T) {
	tests := []struct {
		name   string
		config *domain.Configuration
		errMsg string
	}{
		{
			name:   "nil configuration",
			config: nil,
			errMsg: domain.ErrMissingAttributes.Error(),
		},
		{
			name:   "no profiles",
			config: &domain.Configuration{},
			errMsg: "no profiles provided",
		},
		{
			name:   "empty name",
			config: &domain.Configuration{Profiles: []domain.ProfileInput{{Name: " "}}},
			errMsg: "name is required",
		},
		{
			name: "duplicate names",
			config: &domain.Configuration{Profiles: []domain.ProfileInput{
				{Name: "a"}, {Name: "a"},
			}},
			errMsg: "duplicate profile name: a",
		},
		{
			name:   "unknown default tax year",
			config: &domain.Configuration{DefaultTaxYear: "2099/2100", Profiles: []domain.ProfileInput{{Name: "a"}}},
			errMsg: "default tax year",
		},
		{
			name:   "unknown profile tax year",
			config: &domain.Configuration{Profiles: []domain.ProfileInput{{Name: "a", TaxYear: "2099/2100"}}},
			errMsg: "profile 0 (a) validation failed",
		},
		{
			name: "negative salary",
			config: &domain.Configuration{Profiles: []domain.ProfileInput{
				{Name: "a", Facts: domain.Facts{GrossSalary: decimalPtr(-1)}},
			}},
			errMsg: "gross salary cannot be negative",
		},
	}

	parser := NewInputParser(rules.MustDefault())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := parser.ValidateConfiguration(tt.config)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestInputParser_ValidateConfiguration_UnknownYearIsSentinel(t *testing.T) {
	parser := NewInputParser(rules.MustDefault())

	err := parser.ValidateConfiguration(&domain.Configuration{
		Profiles: []domain.ProfileInput{{Name: "a", TaxYear: "2099/2100"}},
	})
	assert.ErrorIs(t, err, domain.ErrUnknownTaxYear)
}

func TestInputParser_ValidateConfiguration_NoResolverSkipsYears(t *testing.T) {
	parser := NewInputParser(nil)

	err := parser.ValidateConfiguration(&domain.Configuration{
		Profiles: []domain.ProfileInput{{Name: "a", TaxYear: "2099/2100"}},
	})
	assert.NoError(t, err)
}

func TestValidateFacts(t *testing.T) {
	tests := []struct {
		name   string
		facts  *domain.Facts
		errMsg string
	}{
		{"nil", nil, "must be provided"},
		{"negative age", &domain.Facts{Age: intPtr(-1)}, "age cannot be negative"},
		{"negative benefits", &domain.Facts{BenefitsInKind: decimalPtr(-10)}, "benefits in kind cannot be negative"},
		{"negative gift aid", &domain.Facts{GiftAid: decimalPtr(-10)}, "gift aid cannot be negative"},
		{"pension above one", &domain.Facts{PensionSacrificePercent: decimalPtr(1.5)}, "between 0 and 1"},
		{"pension negative", &domain.Facts{PensionSacrificePercent: decimalPtr(-0.1)}, "between 0 and 1"},
		{"plan three", &domain.Facts{StudentLoanPlan: intPtr(3)}, "student loan plan must be 1 or 2"},
		{"empty tax code", &domain.Facts{TaxCode: stringPtr("")}, "tax code cannot be empty"},
		{"tax code punctuation", &domain.Facts{TaxCode: stringPtr("1060-L")}, "invalid character"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFacts(tt.facts)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}

	valid := &domain.Facts{
		GrossSalary:             decimalPtr(0),
		Age:                     intPtr(0),
		PensionSacrificePercent: decimalPtr(1),
		StudentLoanPlan:         intPtr(1),
		TaxCode:                 stringPtr("K475"),
	}
	assert.NoError(t, ValidateFacts(valid))
	assert.NoError(t, ValidateFacts(&domain.Facts{}))
}
