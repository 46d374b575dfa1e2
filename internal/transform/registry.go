package transform

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/rgehrsitz/takehome/internal/domain"
	"github.com/shopspring/decimal"
)

// TransformRegistry provides a central registry for all available transforms.
// It enables creation of transforms from string parameters, useful for CLI commands.
type TransformRegistry struct {
	factories map[string]TransformFactory
	rules     domain.RuleResolver
}

// TransformFactory is a function that creates a transform from parameters.
type TransformFactory func(params map[string]string) (ProfileTransform, error)

// NewTransformRegistry creates a new registry with all built-in transforms
// registered. rules may be nil, in which case set_tax_year is not checked
// against the available years until evaluation.
func NewTransformRegistry(rules domain.RuleResolver) *TransformRegistry {
	registry := &TransformRegistry{
		factories: make(map[string]TransformFactory),
		rules:     rules,
	}

	registry.Register("set_salary", createSetSalary)
	registry.Register("raise_salary", createRaiseSalary)

	registry.Register("set_age", createSetAge)
	registry.Register("set_tax_code", createSetTaxCode)
	registry.Register("clear_tax_code", func(map[string]string) (ProfileTransform, error) { return &ClearTaxCode{}, nil })
	registry.Register("set_blind", createSetBlind)

	registry.Register("set_pension_sacrifice", createSetPensionSacrifice)
	registry.Register("set_gift_aid", createSetGiftAid)
	registry.Register("set_benefits_in_kind", createSetBenefitsInKind)

	registry.Register("enable_student_loan", createEnableStudentLoan)
	registry.Register("disable_student_loan", func(map[string]string) (ProfileTransform, error) { return &DisableStudentLoan{}, nil })

	registry.Register("set_tax_year", registry.createSetTaxYear)

	return registry
}

// Register adds a transform factory to the registry.
func (r *TransformRegistry) Register(name string, factory TransformFactory) {
	r.factories[name] = factory
}

// Create creates a transform by name with the given parameters.
func (r *TransformRegistry) Create(name string, params map[string]string) (ProfileTransform, error) {
	factory, exists := r.factories[name]
	if !exists {
		return nil, fmt.Errorf("unknown transform: %s", name)
	}

	return factory(params)
}

// List returns the names of all registered transforms in sorted order.
func (r *TransformRegistry) List() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseTransformSpec parses a transform specification string.
// Format: "transform_name:param1=value1,param2=value2"
// Example: "raise_salary:percent=0.05"
// Transforms without parameters may omit the colon: "clear_tax_code".
func (r *TransformRegistry) ParseTransformSpec(spec string) (ProfileTransform, error) {
	parts := strings.SplitN(spec, ":", 2)
	name := strings.TrimSpace(parts[0])
	if name == "" {
		return nil, fmt.Errorf("invalid transform spec format, expected 'name:params', got: %s", spec)
	}

	params := make(map[string]string)
	if len(parts) == 2 {
		paramsStr := strings.TrimSpace(parts[1])
		if paramsStr != "" {
			for _, paramPair := range strings.Split(paramsStr, ",") {
				kv := strings.SplitN(paramPair, "=", 2)
				if len(kv) != 2 {
					return nil, fmt.Errorf("invalid parameter format, expected 'key=value', got: %s", paramPair)
				}
				params[strings.TrimSpace(kv[0])] = strings.TrimSpace(kv[1])
			}
		}
	}

	return r.Create(name, params)
}

// ParseTransformSpecs parses each spec in order
func (r *TransformRegistry) ParseTransformSpecs(specs []string) ([]ProfileTransform, error) {
	transforms := make([]ProfileTransform, 0, len(specs))
	for _, spec := range specs {
		t, err := r.ParseTransformSpec(spec)
		if err != nil {
			return nil, err
		}
		transforms = append(transforms, t)
	}
	return transforms, nil
}

// Factory functions for each transform

func requireDecimal(transform, key string, params map[string]string) (decimal.Decimal, error) {
	raw, ok := params[key]
	if !ok {
		return decimal.Zero, fmt.Errorf("%s requires '%s' parameter", transform, key)
	}
	value, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return value, nil
}

func optionalDecimal(key string, params map[string]string) (decimal.Decimal, error) {
	raw, ok := params[key]
	if !ok {
		return decimal.Zero, nil
	}
	value, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return value, nil
}

func parseFlag(raw string) bool {
	switch strings.ToLower(raw) {
	case "true", "yes", "1", "y":
		return true
	}
	return false
}

func createSetSalary(params map[string]string) (ProfileTransform, error) {
	amount, err := requireDecimal("set_salary", "amount", params)
	if err != nil {
		return nil, err
	}
	return &SetSalary{Amount: amount}, nil
}

func createRaiseSalary(params map[string]string) (ProfileTransform, error) {
	_, hasPercent := params["percent"]
	_, hasAmount := params["amount"]
	if !hasPercent && !hasAmount {
		return nil, fmt.Errorf("raise_salary requires 'percent' or 'amount' parameter")
	}

	percent, err := optionalDecimal("percent", params)
	if err != nil {
		return nil, err
	}
	amount, err := optionalDecimal("amount", params)
	if err != nil {
		return nil, err
	}

	return &RaiseSalary{Percent: percent, Amount: amount}, nil
}

func createSetAge(params map[string]string) (ProfileTransform, error) {
	ageStr, ok := params["age"]
	if !ok {
		return nil, fmt.Errorf("set_age requires 'age' parameter")
	}

	age, err := strconv.Atoi(ageStr)
	if err != nil {
		return nil, fmt.Errorf("invalid age value: %w", err)
	}

	return &SetAge{Age: age}, nil
}

func createSetTaxCode(params map[string]string) (ProfileTransform, error) {
	code, ok := params["code"]
	if !ok {
		return nil, fmt.Errorf("set_tax_code requires 'code' parameter")
	}
	return &SetTaxCode{Code: code}, nil
}

func createSetBlind(params map[string]string) (ProfileTransform, error) {
	blind := true
	if raw, ok := params["blind"]; ok {
		blind = parseFlag(raw)
	}
	return &SetBlind{Blind: blind}, nil
}

func createSetPensionSacrifice(params map[string]string) (ProfileTransform, error) {
	percent, err := requireDecimal("set_pension_sacrifice", "percent", params)
	if err != nil {
		return nil, err
	}
	return &SetPensionSacrifice{Percent: percent}, nil
}

func createSetGiftAid(params map[string]string) (ProfileTransform, error) {
	amount, err := requireDecimal("set_gift_aid", "amount", params)
	if err != nil {
		return nil, err
	}
	return &SetGiftAid{Amount: amount}, nil
}

func createSetBenefitsInKind(params map[string]string) (ProfileTransform, error) {
	amount, err := requireDecimal("set_benefits_in_kind", "amount", params)
	if err != nil {
		return nil, err
	}
	return &SetBenefitsInKind{Amount: amount}, nil
}

func createEnableStudentLoan(params map[string]string) (ProfileTransform, error) {
	plan := domain.DefaultStudentLoanPlan
	if raw, ok := params["plan"]; ok {
		n, err := strconv.Atoi(strings.TrimPrefix(strings.ToLower(raw), "plan"))
		if err != nil {
			return nil, fmt.Errorf("invalid plan value: %w", err)
		}
		plan = domain.StudentLoanPlan(n)
	}
	return &EnableStudentLoan{Plan: plan}, nil
}

func (r *TransformRegistry) createSetTaxYear(params map[string]string) (ProfileTransform, error) {
	year, ok := params["year"]
	if !ok {
		return nil, fmt.Errorf("set_tax_year requires 'year' parameter")
	}
	return &SetTaxYear{TaxYear: year, Rules: r.rules}, nil
}
