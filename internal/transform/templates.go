package transform

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rgehrsitz/takehome/internal/domain"
	"github.com/shopspring/decimal"
)

// TemplateRegistry manages built-in what-if templates
type TemplateRegistry struct {
	templates map[string]Template
}

// Template represents a named collection of transforms
type Template struct {
	Name        string
	Category    string
	Description string
	Transforms  []ProfileTransform
}

// NewTemplateRegistry creates an empty template registry
func NewTemplateRegistry() *TemplateRegistry {
	return &TemplateRegistry{
		templates: make(map[string]Template),
	}
}

// Register adds a template to the registry
func (tr *TemplateRegistry) Register(t Template) {
	tr.templates[strings.ToLower(t.Name)] = t
}

// Get retrieves a template by name (case-insensitive)
func (tr *TemplateRegistry) Get(name string) (Template, bool) {
	t, ok := tr.templates[strings.ToLower(name)]
	return t, ok
}

// List returns all registered template names in sorted order
func (tr *TemplateRegistry) List() []string {
	names := make([]string, 0, len(tr.templates))
	for name := range tr.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CreateBuiltInTemplates creates a template registry with common what-if edits
func CreateBuiltInTemplates() *TemplateRegistry {
	registry := NewTemplateRegistry()

	for _, pct := range []int64{3, 5, 10} {
		registry.Register(Template{
			Name:        fmt.Sprintf("raise_%dpct", pct),
			Category:    "Salary",
			Description: fmt.Sprintf("Pay rise of %d%%", pct),
			Transforms: []ProfileTransform{
				&RaiseSalary{Percent: decimal.New(pct, -2)},
			},
		})
	}

	for _, pct := range []int64{5, 10} {
		registry.Register(Template{
			Name:        fmt.Sprintf("pension_%dpct", pct),
			Category:    "Pension",
			Description: fmt.Sprintf("Salary sacrifice of %d%% into a pension", pct),
			Transforms: []ProfileTransform{
				&SetPensionSacrifice{Percent: decimal.New(pct, -2)},
			},
		})
	}

	registry.Register(Template{
		Name:        "student_loan_plan1",
		Category:    "Student Loans",
		Description: "Start repaying a plan 1 student loan",
		Transforms:  []ProfileTransform{&EnableStudentLoan{Plan: domain.StudentLoanPlan1}},
	})

	registry.Register(Template{
		Name:        "student_loan_plan2",
		Category:    "Student Loans",
		Description: "Start repaying a plan 2 student loan",
		Transforms:  []ProfileTransform{&EnableStudentLoan{Plan: domain.StudentLoanPlan2}},
	})

	registry.Register(Template{
		Name:        "blind_allowance",
		Category:    "Allowances",
		Description: "Claim Blind Person's Allowance",
		Transforms:  []ProfileTransform{&SetBlind{Blind: true}},
	})

	registry.Register(Template{
		Name:        "gift_aid_1000",
		Category:    "Allowances",
		Description: "Donate £1,000 under Gift Aid",
		Transforms:  []ProfileTransform{&SetGiftAid{Amount: decimal.NewFromInt(1000)}},
	})

	registry.Register(Template{
		Name:        "raise_5pct_pension_5pct",
		Category:    "Combination Strategies",
		Description: "5% pay rise with the rise sacrificed into a pension",
		Transforms: []ProfileTransform{
			&RaiseSalary{Percent: decimal.New(5, -2)},
			&SetPensionSacrifice{Percent: decimal.New(5, -2)},
		},
	})

	return registry
}

// ApplyTemplate applies a template to a base profile
func ApplyTemplate(base *domain.ProfileInput, template Template) (*domain.ProfileInput, error) {
	if len(template.Transforms) == 0 {
		if base == nil {
			return nil, fmt.Errorf("base profile cannot be nil")
		}
		return base.DeepCopy(), nil
	}
	return ApplyTransforms(base, template.Transforms)
}

// ParseTemplateList parses a comma-separated list of template names
func ParseTemplateList(templateList string) []string {
	if templateList == "" {
		return nil
	}

	parts := strings.Split(templateList, ",")
	templates := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			templates = append(templates, trimmed)
		}
	}
	return templates
}

// GetTemplateHelp returns formatted help text for all templates
func GetTemplateHelp(registry *TemplateRegistry) string {
	if len(registry.templates) == 0 {
		return "No templates registered"
	}

	var sb strings.Builder
	sb.WriteString("Available Templates:\n\n")

	categories := make(map[string][]Template)
	var order []string
	for _, name := range registry.List() {
		t := registry.templates[name]
		category := t.Category
		if category == "" {
			category = "Other"
		}
		if _, seen := categories[category]; !seen {
			order = append(order, category)
		}
		categories[category] = append(categories[category], t)
	}
	sort.Strings(order)

	for _, category := range order {
		sb.WriteString(fmt.Sprintf("%s:\n", category))
		for _, t := range categories[category] {
			sb.WriteString(fmt.Sprintf("  %-30s %s\n", t.Name, t.Description))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("Usage:\n")
	sb.WriteString("  taxcalc compare profiles.yaml --base alice --with raise_5pct,pension_5pct\n")
	sb.WriteString("  taxcalc compare profiles.yaml --base alice --transform set_salary:amount=60000\n")

	return sb.String()
}
