package transform

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplateRegistry_RegisterAndGet(t *testing.T) {
	registry := NewTemplateRegistry()

	template := Template{
		Name:        "test_template",
		Description: "A test template",
		Transforms:  []ProfileTransform{},
	}
	registry.Register(template)

	retrieved, ok := registry.Get("test_template")
	require.True(t, ok, "Expected to find template")
	assert.Equal(t, template.Name, retrieved.Name)

	_, ok = registry.Get("TEST_TEMPLATE")
	assert.True(t, ok, "Expected case-insensitive lookup to work")

	_, ok = registry.Get("nonexistent")
	assert.False(t, ok)
}

func TestTemplateRegistry_List(t *testing.T) {
	registry := NewTemplateRegistry()
	registry.Register(Template{Name: "template2", Description: "Second"})
	registry.Register(Template{Name: "template1", Description: "First"})

	assert.Equal(t, []string{"template1", "template2"}, registry.List())
}

func TestCreateBuiltInTemplates(t *testing.T) {
	registry := CreateBuiltInTemplates()

	for _, name := range []string{
		"raise_3pct", "raise_5pct", "raise_10pct",
		"pension_5pct", "pension_10pct",
		"student_loan_plan1", "student_loan_plan2",
		"blind_allowance", "gift_aid_1000",
		"raise_5pct_pension_5pct",
	} {
		template, ok := registry.Get(name)
		if !assert.True(t, ok, "Expected to find template: %s", name) {
			continue
		}
		assert.NotEmpty(t, template.Transforms, "Template %s has no transforms", name)
		assert.NotEmpty(t, template.Description)
	}
}

func TestApplyTemplate(t *testing.T) {
	registry := CreateBuiltInTemplates()
	template, ok := registry.Get("raise_5pct_pension_5pct")
	require.True(t, ok)

	base := createTestProfile()
	result, err := ApplyTemplate(base, template)
	require.NoError(t, err)

	assert.True(t, result.Facts.GrossSalary.Equal(decimal.NewFromInt(52500)))
	assert.True(t, result.Facts.PensionSacrificePercent.Equal(decimal.NewFromFloat(0.05)))
	assert.True(t, base.Facts.GrossSalary.Equal(decimal.NewFromInt(50000)), "Base should be unchanged")
}

func TestApplyTemplate_EmptyTransforms(t *testing.T) {
	base := createTestProfile()

	result, err := ApplyTemplate(base, Template{Name: "empty"})
	require.NoError(t, err)
	assert.NotSame(t, base, result)
	assert.Equal(t, base.Name, result.Name)

	_, err = ApplyTemplate(nil, Template{Name: "empty"})
	assert.Error(t, err)
}

func TestParseTemplateList(t *testing.T) {
	tests := []struct {
		input    string
		expected []string
	}{
		{"", nil},
		{"raise_5pct", []string{"raise_5pct"}},
		{"raise_5pct, pension_5pct", []string{"raise_5pct", "pension_5pct"}},
		{" , raise_5pct,,", []string{"raise_5pct"}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseTemplateList(tt.input))
		})
	}
}

func TestGetTemplateHelp(t *testing.T) {
	help := GetTemplateHelp(CreateBuiltInTemplates())

	assert.True(t, strings.HasPrefix(help, "Available Templates:"))
	for _, section := range []string{"Salary:", "Pension:", "Student Loans:", "Allowances:", "Combination Strategies:", "Usage:"} {
		assert.Contains(t, help, section)
	}
	assert.Less(t, strings.Index(help, "Allowances:"), strings.Index(help, "Salary:"), "Categories should be sorted")
}

func TestGetTemplateHelp_EmptyRegistry(t *testing.T) {
	assert.Equal(t, "No templates registered", GetTemplateHelp(NewTemplateRegistry()))
}
