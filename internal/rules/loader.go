package rules

import (
	_ "embed"
	"fmt"
	"os"
	"sync"

	"github.com/rgehrsitz/takehome/internal/domain"
	"gopkg.in/yaml.v3"
)

//go:embed data/rules.yaml
var defaultRulesSource []byte

// ruleFile is the on-disk layout of a rule table file
type ruleFile struct {
	DefaultTaxYear string                     `yaml:"default_tax_year"`
	TaxYears       map[string]*domain.RuleSet `yaml:"tax_years"`
}

var loadDefault = sync.OnceValues(func() (*Repository, error) {
	return Parse(defaultRulesSource)
})

// Default returns the repository built from the embedded rule tables
func Default() (*Repository, error) {
	return loadDefault()
}

// MustDefault is like Default but panics if the embedded tables are invalid.
func MustDefault() *Repository {
	repo, err := Default()
	if err != nil {
		panic(fmt.Sprintf("embedded rule tables are invalid: %v", err))
	}
	return repo
}

// LoadFromFile loads a repository from a YAML rule table file
func LoadFromFile(filename string) (*Repository, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read rules file %s: %w", filename, err)
	}
	repo, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("rules file %s: %w", filename, err)
	}
	return repo, nil
}

// Parse decodes and validates YAML rule tables
func Parse(data []byte) (*Repository, error) {
	var rf ruleFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return NewRepository(rf.TaxYears, rf.DefaultTaxYear)
}

// Marshal encodes a repository back to the rule table layout
func Marshal(r *Repository) ([]byte, error) {
	return yaml.Marshal(ruleFile{DefaultTaxYear: r.defaultYear, TaxYears: r.sets})
}
