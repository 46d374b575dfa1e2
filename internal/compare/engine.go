package compare

import (
	"context"
	"fmt"
	"strings"

	"github.com/rgehrsitz/takehome/internal/calculation"
	"github.com/rgehrsitz/takehome/internal/domain"
	"github.com/rgehrsitz/takehome/internal/transform"
)

// CompareEngine orchestrates scenario comparison
type CompareEngine struct {
	CalcEngine        *calculation.CalculationEngine
	MetricsCalculator *MetricsCalculator
	TemplateRegistry  *transform.TemplateRegistry
}

// NewCompareEngine creates a new comparison engine
func NewCompareEngine(calcEngine *calculation.CalculationEngine) *CompareEngine {
	return &CompareEngine{
		CalcEngine:        calcEngine,
		MetricsCalculator: NewMetricsCalculator(),
		TemplateRegistry:  transform.CreateBuiltInTemplates(),
	}
}

// CompareOptions configures comparison behavior
type CompareOptions struct {
	BaseProfileName string                       // Profile in the input file to compare against
	Templates       []string                     // Built-in templates, one scenario each
	Transforms      []transform.ProfileTransform // Ad-hoc edits applied together as one scenario
	TransformLabel  string                       // Scenario name for Transforms (default "custom")
}

// Compare evaluates the base profile and each what-if scenario built from it
func (ce *CompareEngine) Compare(
	ctx context.Context,
	config *domain.Configuration,
	options CompareOptions,
) (*ComparisonSet, error) {
	if config == nil {
		return nil, domain.ErrMissingAttributes
	}

	base := config.FindProfile(options.BaseProfileName)
	if base == nil {
		return nil, fmt.Errorf("base profile %s not found in configuration", options.BaseProfileName)
	}

	baseResult, err := ce.evaluate(ctx, base, config.EffectiveTaxYear(base), base.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate base profile: %w", err)
	}

	alternatives := []ComparisonResult{}

	for _, templateName := range options.Templates {
		template, ok := ce.TemplateRegistry.Get(templateName)
		if !ok {
			return nil, fmt.Errorf("template %s not found", templateName)
		}

		modified, err := transform.ApplyTemplate(base, template)
		if err != nil {
			return nil, fmt.Errorf("failed to apply template %s: %w", templateName, err)
		}

		altResult, err := ce.evaluate(ctx, modified, config.EffectiveTaxYear(modified), base.Name+"_"+template.Name)
		if err != nil {
			return nil, fmt.Errorf("failed to calculate scenario %s: %w", templateName, err)
		}
		altResult.Description = template.Description
		alternatives = append(alternatives, ce.MetricsCalculator.CalculateComparison(altResult, baseResult))
	}

	if len(options.Transforms) > 0 {
		label := options.TransformLabel
		if label == "" {
			label = "custom"
		}

		modified, err := transform.ApplyTransforms(base, options.Transforms)
		if err != nil {
			return nil, fmt.Errorf("failed to apply transforms: %w", err)
		}

		altResult, err := ce.evaluate(ctx, modified, config.EffectiveTaxYear(modified), base.Name+"_"+label)
		if err != nil {
			return nil, fmt.Errorf("failed to calculate scenario %s: %w", label, err)
		}
		altResult.Description = strings.Join(transform.Describe(options.Transforms), "; ")
		alternatives = append(alternatives, ce.MetricsCalculator.CalculateComparison(altResult, baseResult))
	}

	compSet := &ComparisonSet{
		BaseScenarioName:   base.Name,
		BaseResult:         &baseResult,
		AlternativeResults: alternatives,
	}
	compSet.Recommendations = GenerateRecommendations(compSet)

	return compSet, nil
}

// CompareProfiles compares profiles already present in the configuration
func (ce *CompareEngine) CompareProfiles(
	ctx context.Context,
	config *domain.Configuration,
	baseProfileName string,
	alternativeProfileNames []string,
) (*ComparisonSet, error) {
	if config == nil {
		return nil, domain.ErrMissingAttributes
	}

	base := config.FindProfile(baseProfileName)
	if base == nil {
		return nil, fmt.Errorf("base profile %s not found", baseProfileName)
	}
	baseResult, err := ce.evaluate(ctx, base, config.EffectiveTaxYear(base), base.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate base profile: %w", err)
	}

	alternatives := []ComparisonResult{}

	for _, altName := range alternativeProfileNames {
		alt := config.FindProfile(altName)
		if alt == nil {
			return nil, fmt.Errorf("alternative profile %s not found", altName)
		}

		altResult, err := ce.evaluate(ctx, alt, config.EffectiveTaxYear(alt), alt.Name)
		if err != nil {
			return nil, fmt.Errorf("failed to calculate profile %s: %w", altName, err)
		}
		alternatives = append(alternatives, ce.MetricsCalculator.CalculateComparison(altResult, baseResult))
	}

	compSet := &ComparisonSet{
		BaseScenarioName:   baseProfileName,
		BaseResult:         &baseResult,
		AlternativeResults: alternatives,
	}
	compSet.Recommendations = GenerateRecommendations(compSet)

	return compSet, nil
}

// CompareTaxYears evaluates the same profile under each tax year. The first
// year is the base.
func (ce *CompareEngine) CompareTaxYears(
	ctx context.Context,
	input *domain.ProfileInput,
	taxYears []string,
) (*ComparisonSet, error) {
	if input == nil {
		return nil, domain.ErrMissingAttributes
	}
	if len(taxYears) == 0 {
		return nil, fmt.Errorf("at least one tax year is required")
	}

	var results []ComparisonResult
	for _, year := range taxYears {
		pinned := input.DeepCopy()
		pinned.TaxYear = year

		result, err := ce.evaluate(ctx, pinned, year, year)
		if err != nil {
			return nil, fmt.Errorf("failed to calculate tax year %s: %w", year, err)
		}
		result.Description = fmt.Sprintf("%s under %s rules", input.Name, year)
		results = append(results, result)
	}

	baseResult := results[0]
	alternatives := make([]ComparisonResult, 0, len(results)-1)
	for _, r := range results[1:] {
		alternatives = append(alternatives, ce.MetricsCalculator.CalculateComparison(r, baseResult))
	}

	compSet := &ComparisonSet{
		BaseScenarioName:   taxYears[0],
		BaseResult:         &baseResult,
		AlternativeResults: alternatives,
	}
	compSet.Recommendations = GenerateRecommendations(compSet)

	return compSet, nil
}

func (ce *CompareEngine) evaluate(ctx context.Context, input *domain.ProfileInput, taxYear, name string) (ComparisonResult, error) {
	if err := ctx.Err(); err != nil {
		return ComparisonResult{}, err
	}
	p, err := ce.CalcEngine.NewProfile(input, taxYear)
	if err != nil {
		return ComparisonResult{}, err
	}
	ce.CalcEngine.Logger.Debugf("comparing scenario %s (%s)", name, p.TaxYear())
	return ce.MetricsCalculator.CalculateMetrics(name, ce.CalcEngine.Evaluate(p)), nil
}
