package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/rgehrsitz/takehome/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// InputParser handles parsing of profile input files
type InputParser struct {
	rules domain.RuleResolver
}

// NewInputParser creates a new input parser. When rules is non-nil every tax
// year named in the file must be resolvable.
func NewInputParser(rules domain.RuleResolver) *InputParser {
	return &InputParser{rules: rules}
}

// LoadFromFile loads configuration from a YAML or JSON file
func (ip *InputParser) LoadFromFile(filename string) (*domain.Configuration, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse decodes and validates configuration bytes
func (ip *InputParser) Parse(data []byte) (*domain.Configuration, error) {
	var config domain.Configuration
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateConfiguration(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

// ValidateConfiguration validates the loaded configuration
func (ip *InputParser) ValidateConfiguration(config *domain.Configuration) error {
	if config == nil {
		return domain.ErrMissingAttributes
	}
	if len(config.Profiles) == 0 {
		return fmt.Errorf("no profiles provided")
	}
	if config.DefaultTaxYear != "" {
		if err := ip.validateTaxYear(config.DefaultTaxYear); err != nil {
			return fmt.Errorf("default tax year: %w", err)
		}
	}

	seen := make(map[string]bool, len(config.Profiles))
	for i := range config.Profiles {
		profile := &config.Profiles[i]
		if err := ip.validateProfile(profile); err != nil {
			return fmt.Errorf("profile %d (%s) validation failed: %w", i, profile.Name, err)
		}
		if seen[profile.Name] {
			return fmt.Errorf("duplicate profile name: %s", profile.Name)
		}
		seen[profile.Name] = true
	}

	return nil
}

// validateProfile validates a single named profile
func (ip *InputParser) validateProfile(profile *domain.ProfileInput) error {
	if strings.TrimSpace(profile.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if profile.TaxYear != "" {
		if err := ip.validateTaxYear(profile.TaxYear); err != nil {
			return err
		}
	}
	return ValidateFacts(&profile.Facts)
}

func (ip *InputParser) validateTaxYear(taxYear string) error {
	if ip.rules == nil {
		return nil
	}
	_, err := ip.rules.Resolve(taxYear)
	return err
}

// ValidateFacts checks the ranges of every supplied fact
func ValidateFacts(facts *domain.Facts) error {
	if facts == nil {
		return domain.ErrMissingAttributes
	}

	if facts.GrossSalary != nil && facts.GrossSalary.IsNegative() {
		return fmt.Errorf("gross salary cannot be negative")
	}
	if facts.Age != nil && *facts.Age < 0 {
		return fmt.Errorf("age cannot be negative")
	}
	if facts.BenefitsInKind != nil && facts.BenefitsInKind.IsNegative() {
		return fmt.Errorf("benefits in kind cannot be negative")
	}
	if facts.GiftAid != nil && facts.GiftAid.IsNegative() {
		return fmt.Errorf("gift aid cannot be negative")
	}
	if facts.PensionSacrificePercent != nil {
		pct := *facts.PensionSacrificePercent
		if pct.IsNegative() || pct.GreaterThan(decimal.NewFromInt(1)) {
			return fmt.Errorf("pension sacrifice percent must be between 0 and 1")
		}
	}
	if facts.StudentLoanPlan != nil && !domain.StudentLoanPlan(*facts.StudentLoanPlan).Valid() {
		return fmt.Errorf("student loan plan must be 1 or 2")
	}
	if facts.TaxCode != nil {
		if err := validateTaxCode(*facts.TaxCode); err != nil {
			return err
		}
	}

	return nil
}

// validateTaxCode accepts letters and digits only
func validateTaxCode(code string) error {
	if code == "" {
		return fmt.Errorf("tax code cannot be empty when provided")
	}
	for _, r := range code {
		if !(r >= '0' && r <= '9') && !(r >= 'A' && r <= 'Z') && !(r >= 'a' && r <= 'z') {
			return fmt.Errorf("tax code %q contains invalid character %q", code, r)
		}
	}
	return nil
}
