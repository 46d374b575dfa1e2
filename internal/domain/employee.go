package domain

// ProfileInput is one named taxpayer in an input file
type ProfileInput struct {
	Name    string `yaml:"name" json:"name"`
	TaxYear string `yaml:"tax_year,omitempty" json:"tax_year,omitempty"`
	Facts   Facts  `yaml:",inline" json:"facts"`
}

// DeepCopy returns an independent copy of the input
func (pi *ProfileInput) DeepCopy() *ProfileInput {
	if pi == nil {
		return nil
	}
	return &ProfileInput{
		Name:    pi.Name,
		TaxYear: pi.TaxYear,
		Facts:   *pi.Facts.DeepCopy(),
	}
}

// Configuration represents the complete input configuration
type Configuration struct {
	DefaultTaxYear string         `yaml:"default_tax_year,omitempty" json:"default_tax_year,omitempty"`
	Profiles       []ProfileInput `yaml:"profiles" json:"profiles"`
}

// FindProfile returns the named profile input, or nil
func (c *Configuration) FindProfile(name string) *ProfileInput {
	for i := range c.Profiles {
		if c.Profiles[i].Name == name {
			return &c.Profiles[i]
		}
	}
	return nil
}

// EffectiveTaxYear returns the tax year a profile input should be evaluated
// under: its own, then the file default, then empty for the repository default
func (c *Configuration) EffectiveTaxYear(pi *ProfileInput) string {
	if pi.TaxYear != "" {
		return pi.TaxYear
	}
	return c.DefaultTaxYear
}
