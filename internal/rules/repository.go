// Package rules holds the versioned tax-year rule tables. A Repository is
// built once at startup and is read-only afterwards, so it may be shared
// between goroutines without locking.
package rules

import (
	"fmt"
	"sort"

	"github.com/rgehrsitz/takehome/internal/domain"
)

// Repository maps tax-year identifiers to their rule sets
type Repository struct {
	sets        map[string]*domain.RuleSet
	defaultYear string
}

// NewRepository validates every rule set and returns a repository over them.
// defaultYear must be one of the registered identifiers.
func NewRepository(sets map[string]*domain.RuleSet, defaultYear string) (*Repository, error) {
	if len(sets) == 0 {
		return nil, fmt.Errorf("at least one tax year is required")
	}

	owned := make(map[string]*domain.RuleSet, len(sets))
	for year, rs := range sets {
		if year == "" {
			return nil, fmt.Errorf("tax year identifier cannot be empty")
		}
		if rs == nil {
			return nil, fmt.Errorf("tax year %s: rule set is empty", year)
		}
		if err := rs.Validate(); err != nil {
			return nil, fmt.Errorf("tax year %s: %w", year, err)
		}
		owned[year] = rs
	}

	if _, ok := owned[defaultYear]; !ok {
		return nil, fmt.Errorf("default tax year %q: %w", defaultYear, domain.ErrUnknownTaxYear)
	}

	return &Repository{sets: owned, defaultYear: defaultYear}, nil
}

// Resolve returns the rule set registered for taxYear
func (r *Repository) Resolve(taxYear string) (*domain.RuleSet, error) {
	rs, ok := r.sets[taxYear]
	if !ok {
		return nil, fmt.Errorf("tax year %q: %w", taxYear, domain.ErrUnknownTaxYear)
	}
	return rs, nil
}

// DefaultTaxYear returns the identifier used when none is given
func (r *Repository) DefaultTaxYear() string {
	return r.defaultYear
}

// TaxYears returns every registered identifier in ascending order
func (r *Repository) TaxYears() []string {
	years := make([]string, 0, len(r.sets))
	for year := range r.sets {
		years = append(years, year)
	}
	sort.Strings(years)
	return years
}

// Has reports whether taxYear is registered
func (r *Repository) Has(taxYear string) bool {
	_, ok := r.sets[taxYear]
	return ok
}
