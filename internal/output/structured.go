package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"

	"github.com/rgehrsitz/takehome/internal/domain"
	"gopkg.in/yaml.v3"
)

// JSONFormatter renders results as JSON
type JSONFormatter struct {
	Pretty bool
}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(results *domain.ProfileComparison) ([]byte, error) {
	if j.Pretty {
		return json.MarshalIndent(results, "", "  ")
	}
	return json.Marshal(results)
}

// YAMLFormatter renders results as YAML
type YAMLFormatter struct{}

func (y YAMLFormatter) Name() string { return "yaml" }

func (y YAMLFormatter) Format(results *domain.ProfileComparison) ([]byte, error) {
	return yaml.Marshal(results)
}

// CSVSummarizer implements the summary CSV output (one row per profile).
// Amounts are rounded to the penny.
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string { return "csv" }

func (c CSVSummarizer) Format(results *domain.ProfileComparison) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{
		"Profile", "TaxYear", "GrossSalary", "PersonalAllowance", "TaxableIncome",
		"IncomeTax", "NationalInsurance", "StudentLoan", "PensionSacrifice", "TakeHomePay",
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, p := range results.Profiles {
		tb := p.Breakdown
		row := []string{
			p.Name,
			tb.TaxYear,
			tb.GrossSalary.StringFixed(2),
			tb.PersonalAllowance.StringFixed(2),
			tb.TaxableIncome.StringFixed(2),
			tb.TaxPayable.StringFixed(2),
			tb.NationalInsurance.StringFixed(2),
			tb.StudentLoanRepayment.StringFixed(2),
			tb.PensionSacrifice.StringFixed(2),
			tb.TakeHomePay.StringFixed(2),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

// SaveConfiguration writes an input configuration as YAML
func SaveConfiguration(config *domain.Configuration, filename string) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return err
	}
	return os.WriteFile(filename, data, 0644)
}
