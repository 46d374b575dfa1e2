package output

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/rgehrsitz/takehome/internal/calculation"
	"github.com/rgehrsitz/takehome/internal/domain"
	"github.com/rgehrsitz/takehome/internal/rules"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildTestComparison(t *testing.T, salaries ...int64) *domain.ProfileComparison {
	t.Helper()
	names := []string{"alice", "bob", "carol"}
	results := &domain.ProfileComparison{}
	for i, salary := range salaries {
		p, err := domain.NewProfileFromSalary(rules.MustDefault(), decimal.NewFromInt(salary), "")
		require.NoError(t, err)
		results.Profiles = append(results.Profiles, domain.ProfileSummary{
			Name:      names[i],
			Breakdown: calculation.Compute(p),
		})
	}
	return results
}

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "£0.00"},
		{"7", "£7.00"},
		{"999.999", "£1,000.00"},
		{"1234.567", "£1,234.57"},
		{"36325.7", "£36,325.70"},
		{"1000000", "£1,000,000.00"},
		{"-1234.5", "-£1,234.50"},
		{"-0.001", "£0.00"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatCurrency(decimal.RequireFromString(tt.in)))
		})
	}
}

func TestFormatRate(t *testing.T) {
	assert.Equal(t, "20%", FormatRate(decimal.NewFromFloat(0.2)))
	assert.Equal(t, "2%", FormatRate(decimal.NewFromFloat(0.02)))
	assert.Equal(t, "18.6%", FormatRate(decimal.NewFromFloat(0.186)))
	assert.Equal(t, "12.50%", FormatPercentage(decimal.NewFromFloat(12.5)))
}

func TestFormatterFunc(t *testing.T) {
	called := false
	var received *domain.ProfileComparison

	formatter := FormatterFunc{
		ID: "test-formatter",
		F: func(results *domain.ProfileComparison) ([]byte, error) {
			called = true
			received = results
			return []byte("test output"), nil
		},
	}

	results := buildTestComparison(t, 50000)
	out, err := formatter.Format(results)

	require.NoError(t, err)
	assert.True(t, called)
	assert.Same(t, results, received)
	assert.Equal(t, []byte("test output"), out)
	assert.Equal(t, "test-formatter", formatter.Name())
}

func TestGetFormatterByName(t *testing.T) {
	for _, name := range FormatterNames {
		f, err := GetFormatterByName(name)
		require.NoError(t, err, name)
		assert.Equal(t, name, f.Name())
	}

	f, err := GetFormatterByName("")
	require.NoError(t, err)
	assert.Equal(t, "console", f.Name())

	_, err = GetFormatterByName("html")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported format: html")
}

func TestConsoleFormatter(t *testing.T) {
	out, err := ConsoleFormatter{}.Format(buildTestComparison(t, 50000))
	require.NoError(t, err)

	text := string(out)
	assert.Contains(t, text, "UK TAKE-HOME PAY BREAKDOWN")
	assert.Contains(t, text, "PROFILE 1: alice (2015/2016)")
	assert.Contains(t, text, "£10,600.00")
	assert.Contains(t, text, "£31,785.00 @ 20%")
	assert.Contains(t, text, "£9,403.00")
	assert.Contains(t, text, "£4,271.30")
	assert.Contains(t, text, "£36,325.70")
	assert.NotContains(t, text, "STUDENT LOAN")
	assert.NotContains(t, text, "SUMMARY")
}

func TestConsoleFormatter_SummaryForSeveralProfiles(t *testing.T) {
	out, err := ConsoleFormatter{}.Format(buildTestComparison(t, 50000, 110000))
	require.NoError(t, err)

	text := string(out)
	assert.Contains(t, text, "PROFILE 2: bob (2015/2016)")
	assert.Contains(t, text, "SUMMARY")
	assert.Contains(t, text, "£69,125.70")
}

func TestCSVSummarizer(t *testing.T) {
	out, err := CSVSummarizer{}.Format(buildTestComparison(t, 50000, 110000))
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(string(out))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, "Profile", records[0][0])
	assert.Equal(t, "TakeHomePay", records[0][9])
	assert.Equal(t, []string{"alice", "2015/2016", "50000.00", "10600.00", "39400.00",
		"9403.00", "4271.30", "0.00", "0.00", "36325.70"}, records[1])
	assert.Equal(t, "69125.70", records[2][9])
}

func TestJSONFormatter(t *testing.T) {
	out, err := JSONFormatter{Pretty: true}.Format(buildTestComparison(t, 50000))
	require.NoError(t, err)

	var decoded struct {
		Profiles []struct {
			Name      string `json:"name"`
			Breakdown struct {
				TakeHomePay decimal.Decimal `json:"take_home_pay"`
			} `json:"breakdown"`
		} `json:"profiles"`
	}
	require.NoError(t, json.Unmarshal(out, &decoded))
	require.Len(t, decoded.Profiles, 1)
	assert.Equal(t, "alice", decoded.Profiles[0].Name)
	assert.True(t, decoded.Profiles[0].Breakdown.TakeHomePay.Equal(decimal.RequireFromString("36325.7")))
}

func TestYAMLFormatter(t *testing.T) {
	out, err := YAMLFormatter{}.Format(buildTestComparison(t, 50000))
	require.NoError(t, err)

	assert.Contains(t, string(out), "name: alice")
	assert.Contains(t, string(out), "take_home_pay:")
	assert.Contains(t, string(out), "2015/2016")
}

func TestWriteFormatted(t *testing.T) {
	t.Chdir(t.TempDir())

	formatter := FormatterFunc{
		ID: "test-formatter",
		F: func(*domain.ProfileComparison) ([]byte, error) {
			return []byte("test output content"), nil
		},
	}

	filename, err := WriteFormatted(formatter, buildTestComparison(t, 50000), "txt")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(filename, "takehome_report_"))
	assert.True(t, strings.HasSuffix(filename, ".txt"))

	content, err := os.ReadFile(filename)
	require.NoError(t, err)
	assert.Equal(t, "test output content", string(content))
}

func TestWriteFormatted_FormatterError(t *testing.T) {
	formatter := FormatterFunc{
		ID: "broken",
		F: func(*domain.ProfileComparison) ([]byte, error) {
			return nil, errors.New("formatter error")
		},
	}

	filename, err := WriteFormatted(formatter, buildTestComparison(t, 50000), "txt")
	assert.EqualError(t, err, "formatter error")
	assert.Empty(t, filename)
}

func TestSaveConfiguration(t *testing.T) {
	salary := decimal.NewFromInt(42000)
	config := &domain.Configuration{
		DefaultTaxYear: "2014/2015",
		Profiles:       []domain.ProfileInput{{Name: "dave", Facts: domain.Facts{GrossSalary: &salary}}},
	}

	path := t.TempDir() + "/profiles.yaml"
	require.NoError(t, SaveConfiguration(config, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "default_tax_year: 2014/2015")
	assert.Contains(t, string(data), "name: dave")
	assert.Contains(t, string(data), "gross_salary:")
}

func TestSensitivityFormatter(t *testing.T) {
	gross := decimal.NewFromInt(50000)
	input := &domain.ProfileInput{Name: "alice", Facts: domain.Facts{GrossSalary: &gross}}
	param := domain.SensitivityParameter{
		Name:     domain.SweepGrossSalary,
		MinValue: decimal.NewFromInt(100000),
		MaxValue: decimal.NewFromInt(110000),
		Steps:    2,
		Unit:     "pounds",
	}

	analyzer := calculation.NewSensitivityAnalyzer(calculation.NewCalculationEngine(rules.MustDefault()))
	analysis, err := analyzer.AnalyzeSingleParameter(context.Background(), input, "", param)
	require.NoError(t, err)
	analyses := []*domain.ParameterSensitivityAnalysis{analysis}

	out, err := NewSensitivityFormatter("table").FormatSensitivityAnalysis(analyses)
	require.NoError(t, err)
	assert.Contains(t, out, "SENSITIVITY: gross_salary for alice (2015/2016)")
	assert.Contains(t, out, "£110,000.00")
	assert.Contains(t, out, "+£3,800.00")
	assert.Contains(t, out, "62%")
	assert.Contains(t, out, "• Highest marginal rate")

	js, err := NewSensitivityFormatter("JSON").FormatSensitivityAnalysis(analyses)
	require.NoError(t, err)
	var decoded []map[string]any
	require.NoError(t, json.Unmarshal([]byte(js), &decoded))
	assert.Equal(t, "alice", decoded[0]["profileName"])

	_, err = NewSensitivityFormatter("pdf").FormatSensitivityAnalysis(analyses)
	assert.Error(t, err)
}
