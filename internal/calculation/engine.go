package calculation

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/takehome/internal/domain"
)

// Logger is the logging surface used by the calculation engine
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// NopLogger discards all log output
type NopLogger struct{}

func (NopLogger) Debugf(string, ...any) {}
func (NopLogger) Infof(string, ...any)  {}
func (NopLogger) Warnf(string, ...any)  {}
func (NopLogger) Errorf(string, ...any) {}

// CalculationEngine builds profiles against a rule repository and evaluates them
type CalculationEngine struct {
	Rules  domain.RuleResolver
	Logger Logger
	Debug  bool // Log every derived figure
}

// NewCalculationEngine creates a new calculation engine over the given rules
func NewCalculationEngine(rules domain.RuleResolver) *CalculationEngine {
	return &CalculationEngine{
		Rules:  rules,
		Logger: NopLogger{},
	}
}

// SetLogger installs l, or a no-op logger when l is nil
func (ce *CalculationEngine) SetLogger(l Logger) {
	if l == nil {
		ce.Logger = NopLogger{}
		return
	}
	ce.Logger = l
}

// NewProfile builds a profile from an input entry. Entries without a tax year
// use defaultTaxYear, then the repository default.
func (ce *CalculationEngine) NewProfile(input *domain.ProfileInput, defaultTaxYear string) (*domain.Profile, error) {
	if input == nil {
		return nil, domain.ErrMissingAttributes
	}
	taxYear := input.TaxYear
	if taxYear == "" {
		taxYear = defaultTaxYear
	}
	p, err := domain.NewProfile(ce.Rules, &input.Facts, taxYear)
	if err != nil {
		return nil, fmt.Errorf("profile %s: %w", input.Name, err)
	}
	return p, nil
}

// Evaluate computes the breakdown for p
func (ce *CalculationEngine) Evaluate(p *domain.Profile) domain.TaxBreakdown {
	tb := Compute(p)
	if ce.Debug {
		ce.Logger.Debugf("tax year %s: gross=%s allowance=%s taxable=%s",
			tb.TaxYear, tb.GrossSalary, tb.PersonalAllowance, tb.TaxableIncome)
		ce.Logger.Debugf("income tax basic=%s higher=%s additional=%s total=%s",
			tb.BasicRate.Tax, tb.HigherRate.Tax, tb.AdditionalRate.Tax, tb.TaxPayable)
		ce.Logger.Debugf("national insurance pt=%s uel=%s total=%s student loan=%s take home=%s",
			tb.NatInsPrimaryThreshold.Tax, tb.NatInsUpperEarnings.Tax, tb.NationalInsurance,
			tb.StudentLoanRepayment, tb.TakeHomePay)
	}
	return tb
}

// RunProfile evaluates a single input entry
func (ce *CalculationEngine) RunProfile(ctx context.Context, config *domain.Configuration, input *domain.ProfileInput) (*domain.ProfileSummary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p, err := ce.NewProfile(input, config.DefaultTaxYear)
	if err != nil {
		return nil, err
	}
	ce.Logger.Infof("evaluating profile %s (%s)", input.Name, p.TaxYear())
	return &domain.ProfileSummary{Name: input.Name, Breakdown: ce.Evaluate(p)}, nil
}

// RunProfiles evaluates every profile in config, in file order
func (ce *CalculationEngine) RunProfiles(ctx context.Context, config *domain.Configuration) (*domain.ProfileComparison, error) {
	if config == nil || len(config.Profiles) == 0 {
		return nil, fmt.Errorf("no profiles provided")
	}
	results := &domain.ProfileComparison{Profiles: make([]domain.ProfileSummary, 0, len(config.Profiles))}
	for i := range config.Profiles {
		summary, err := ce.RunProfile(ctx, config, &config.Profiles[i])
		if err != nil {
			ce.Logger.Errorf("profile %s failed: %v", config.Profiles[i].Name, err)
			return nil, err
		}
		results.Profiles = append(results.Profiles, *summary)
	}
	return results, nil
}
