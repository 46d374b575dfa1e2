package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rgehrsitz/takehome/internal/calculation"
	"github.com/rgehrsitz/takehome/internal/domain"
	"github.com/rgehrsitz/takehome/internal/output"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func sensitivityCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sensitivity [input-file]",
		Short: "Sweep salary or pension sacrifice and show marginal rates",
		Long: `Sweep a parameter across a range and show take-home pay and the marginal
rate between each step.

Parameters: gross_salary, pension_sacrifice

Examples:
  taxcalc sensitivity --salary 50000 --parameter gross_salary:90000-130000:5
  taxcalc sensitivity profiles.yaml --base alice --parameter pension_sacrifice
  taxcalc sensitivity profiles.yaml --parameter-set common --format json
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := loadRules(cmd)
			if err != nil {
				return err
			}

			var cfg *domain.Configuration
			if len(args) == 1 {
				if cmd.Flags().Changed("salary") {
					return fmt.Errorf("--salary cannot be combined with an input file")
				}
				cfg, err = loadInput(cmd, repo, args[0])
			} else {
				cfg, err = quickConfiguration(cmd, repo)
			}
			if err != nil {
				return err
			}

			base := &cfg.Profiles[0]
			if baseName, _ := cmd.Flags().GetString("base"); baseName != "" {
				if base = cfg.FindProfile(baseName); base == nil {
					return fmt.Errorf("profile %s not found in configuration", baseName)
				}
			}

			var parameters []domain.SensitivityParameter
			paramSet, _ := cmd.Flags().GetString("parameter-set")
			paramSpecs, _ := cmd.Flags().GetStringArray("parameter")
			switch {
			case paramSet == "common":
				parameters = domain.GetCommonParameters()
			case paramSet != "":
				return fmt.Errorf("unknown parameter set: %s (expected common)", paramSet)
			case len(paramSpecs) == 0:
				parameters = []domain.SensitivityParameter{domain.GrossSalaryParam}
			default:
				for _, spec := range paramSpecs {
					param, err := parseParameterString(spec)
					if err != nil {
						return err
					}
					parameters = append(parameters, param)
				}
			}

			analyzer := calculation.NewSensitivityAnalyzer(newEngine(cmd, repo))
			analyses, err := analyzer.AnalyzeMultipleParameters(cmd.Context(), base, cfg.EffectiveTaxYear(base), parameters)
			if err != nil {
				return err
			}

			format, _ := cmd.Flags().GetString("format")
			out, err := output.NewSensitivityFormatter(format).FormatSensitivityAnalysis(analyses)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().String("base", "", "Profile to analyze (default: the first profile in the file)")
	cmd.Flags().StringArray("parameter", nil, "Parameter to sweep: name or name:min-max:steps (repeatable)")
	cmd.Flags().String("parameter-set", "", "Use a predefined parameter set (common)")
	cmd.Flags().StringP("format", "f", "table", "Output format (table, json)")

	cmd.Flags().String("name", "you", "Profile name for --salary mode")
	cmd.Flags().String("salary", "", "Gross annual salary (quick mode, no input file)")
	cmd.Flags().String("pension", "", "Salary sacrificed to a pension, as a fraction (0.05 for 5%)")
	cmd.Flags().Bool("student-loan", false, "Make student loan repayments")
	cmd.Flags().Int("plan", int(domain.DefaultStudentLoanPlan), "Student loan plan (1 or 2)")

	return cmd
}

// parseParameterString parses "name" or "name:min-max:steps"; a bare name
// takes the built-in range
func parseParameterString(paramStr string) (domain.SensitivityParameter, error) {
	parts := strings.Split(paramStr, ":")
	param, ok := domain.FindCommonParameter(parts[0])
	if !ok {
		return domain.SensitivityParameter{}, fmt.Errorf("unknown sensitivity parameter: %s", parts[0])
	}
	if len(parts) == 1 {
		return param, nil
	}
	if len(parts) != 3 {
		return domain.SensitivityParameter{}, fmt.Errorf("invalid parameter format: %s (expected name:min-max:steps)", paramStr)
	}

	minStr, maxStr, found := strings.Cut(parts[1], "-")
	if !found {
		return domain.SensitivityParameter{}, fmt.Errorf("invalid range format: %s (expected min-max)", parts[1])
	}
	minValue, err := decimal.NewFromString(minStr)
	if err != nil {
		return domain.SensitivityParameter{}, fmt.Errorf("invalid min value: %w", err)
	}
	maxValue, err := decimal.NewFromString(maxStr)
	if err != nil {
		return domain.SensitivityParameter{}, fmt.Errorf("invalid max value: %w", err)
	}
	steps, err := strconv.Atoi(parts[2])
	if err != nil {
		return domain.SensitivityParameter{}, fmt.Errorf("invalid steps value: %w", err)
	}

	param.MinValue = minValue
	param.MaxValue = maxValue
	param.Steps = steps
	return param, param.Validate()
}
