package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Parameter names accepted by a sensitivity sweep
const (
	SweepGrossSalary      = "gross_salary"
	SweepPensionSacrifice = "pension_sacrifice"
)

// SensitivityParameter represents a parameter to sweep in sensitivity analysis
type SensitivityParameter struct {
	Name        string          `yaml:"name" json:"name"`
	MinValue    decimal.Decimal `yaml:"min_value" json:"minValue"`
	MaxValue    decimal.Decimal `yaml:"max_value" json:"maxValue"`
	Steps       int             `yaml:"steps" json:"steps"`
	Unit        string          `yaml:"unit" json:"unit"` // "pounds" or "percent"
	Description string          `yaml:"description" json:"description"`
}

// Validate checks the parameter names a known sweep and a usable range
func (sp SensitivityParameter) Validate() error {
	switch sp.Name {
	case SweepGrossSalary:
		if sp.MinValue.IsNegative() {
			return fmt.Errorf("%s: minimum cannot be negative", sp.Name)
		}
	case SweepPensionSacrifice:
		if sp.MinValue.IsNegative() || sp.MaxValue.GreaterThan(decimal.NewFromInt(1)) {
			return fmt.Errorf("%s: range must lie between 0 and 1", sp.Name)
		}
	default:
		return fmt.Errorf("unknown sensitivity parameter: %s", sp.Name)
	}
	if sp.MaxValue.LessThan(sp.MinValue) {
		return fmt.Errorf("%s: maximum %s is below minimum %s", sp.Name, sp.MaxValue, sp.MinValue)
	}
	if sp.Steps < 1 {
		return fmt.Errorf("%s: at least one step is required", sp.Name)
	}
	return nil
}

// Values returns the evenly spaced sweep values from MinValue to MaxValue
func (sp SensitivityParameter) Values() []decimal.Decimal {
	if sp.Steps <= 1 {
		return []decimal.Decimal{sp.MinValue}
	}

	step := sp.MaxValue.Sub(sp.MinValue).Div(decimal.NewFromInt(int64(sp.Steps - 1)))
	values := make([]decimal.Decimal, 0, sp.Steps)
	for i := 0; i < sp.Steps; i++ {
		values = append(values, sp.MinValue.Add(step.Mul(decimal.NewFromInt(int64(i)))))
	}
	// Keep the last value exact despite division rounding
	values[len(values)-1] = sp.MaxValue
	return values
}

// SensitivityPoint is the breakdown at one sweep value
type SensitivityPoint struct {
	Value     decimal.Decimal `json:"value"`
	Breakdown TaxBreakdown    `json:"breakdown"`

	// Relative to the previous point; zero for the first
	TakeHomeChange decimal.Decimal `json:"takeHomeChange"`
	// Share of the money moved since the previous point that did not reach
	// (or, for a sacrifice, did not leave) take-home pay
	MarginalRate decimal.Decimal `json:"marginalRate"`
}

// ParameterSensitivityAnalysis is a complete sweep of one parameter for one profile
type ParameterSensitivityAnalysis struct {
	ProfileName string               `json:"profileName"`
	TaxYear     string               `json:"taxYear"`
	Parameter   SensitivityParameter `json:"parameter"`
	Points      []SensitivityPoint   `json:"points"`
	Summary     SensitivitySummary   `json:"summary"`
}

// SensitivitySummary describes where the sweep is most sensitive
type SensitivitySummary struct {
	PeakMarginalRate decimal.Decimal `json:"peakMarginalRate"`
	PeakFrom         decimal.Decimal `json:"peakFrom"`
	PeakTo           decimal.Decimal `json:"peakTo"`
	Recommendations  []string        `json:"recommendations"`
}

// Common sensitivity parameters
var (
	GrossSalaryParam = SensitivityParameter{
		Name:        SweepGrossSalary,
		MinValue:    decimal.NewFromInt(10000),
		MaxValue:    decimal.NewFromInt(160000),
		Steps:       16,
		Unit:        "pounds",
		Description: "Gross annual salary",
	}

	PensionSacrificeParam = SensitivityParameter{
		Name:        SweepPensionSacrifice,
		MinValue:    decimal.Zero,
		MaxValue:    decimal.NewFromFloat(0.2),
		Steps:       5,
		Unit:        "percent",
		Description: "Share of salary sacrificed into a pension",
	}
)

// GetCommonParameters returns the built-in sweeps
func GetCommonParameters() []SensitivityParameter {
	return []SensitivityParameter{GrossSalaryParam, PensionSacrificeParam}
}

// FindCommonParameter returns the built-in sweep called name
func FindCommonParameter(name string) (SensitivityParameter, bool) {
	for _, p := range GetCommonParameters() {
		if p.Name == name {
			return p, true
		}
	}
	return SensitivityParameter{}, false
}
