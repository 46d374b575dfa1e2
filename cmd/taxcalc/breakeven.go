package main

import (
	"fmt"

	"github.com/rgehrsitz/takehome/internal/breakeven"
	"github.com/rgehrsitz/takehome/internal/domain"
	"github.com/spf13/cobra"
)

func breakEvenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "break-even [input-file]",
		Short: "Solve for the salary or pension sacrifice that reaches a target take-home pay",
		Long: `Solve for the gross salary needed to reach a target take-home pay, or the
largest pension salary sacrifice that keeps take-home pay at or above it.

Examples:
  taxcalc break-even --salary 30000 --target 36000
  taxcalc break-even profiles.yaml --base alice --target 34000 --solve pension_sacrifice
  taxcalc break-even profiles.yaml --base alice --target 34000 --solve all --format json
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

			baseName, _ := cmd.Flags().GetString("base")
			base := &cfg.Profiles[0]
			if baseName != "" {
				if base = cfg.FindProfile(baseName); base == nil {
					return fmt.Errorf("profile %s not found in configuration", baseName)
				}
			}

			target, err := decimalFlag(cmd, "target")
			if err != nil {
				return err
			}
			if target == nil {
				return fmt.Errorf("--target flag is required")
			}

			solveStr, _ := cmd.Flags().GetString("solve")
			solveFor, err := breakeven.ParseTarget(solveStr)
			if err != nil {
				return err
			}

			constraints := breakeven.Constraints{TargetTakeHome: *target}
			if constraints.MinGrossSalary, err = decimalFlag(cmd, "min-salary"); err != nil {
				return err
			}
			if constraints.MaxGrossSalary, err = decimalFlag(cmd, "max-salary"); err != nil {
				return err
			}
			if constraints.MinPensionPercent, err = decimalFlag(cmd, "min-pension"); err != nil {
				return err
			}
			if constraints.MaxPensionPercent, err = decimalFlag(cmd, "max-pension"); err != nil {
				return err
			}

			maxIterations, _ := cmd.Flags().GetInt("max-iterations")
			request := breakeven.OptimizationRequest{
				Base:           base,
				DefaultTaxYear: cfg.EffectiveTaxYear(base),
				Target:         solveFor,
				Constraints:    constraints,
				MaxIterations:  maxIterations,
			}

			solver := breakeven.NewDefaultSolver(newEngine(cmd, repo))
			format, _ := cmd.Flags().GetString("format")
			out := cmd.OutOrStdout()

			if solveFor == breakeven.OptimizeAll {
				result, err := solver.OptimizeAllTargets(cmd.Context(), request)
				if err != nil {
					return fmt.Errorf("break-even failed: %w", err)
				}
				switch format {
				case "json":
					js, err := (&breakeven.JSONFormatter{Pretty: true}).FormatMultiDimensional(result)
					if err != nil {
						return err
					}
					fmt.Fprintln(out, js)
				case "table", "console", "":
					fmt.Fprint(out, (&breakeven.TableFormatter{}).FormatMultiDimensional(result))
				default:
					return fmt.Errorf("unknown output format: %s (valid: table, json)", format)
				}
				return nil
			}

			result, err := solver.Optimize(cmd.Context(), request)
			if err != nil {
				return fmt.Errorf("break-even failed: %w", err)
			}
			switch format {
			case "json":
				js, err := (&breakeven.JSONFormatter{Pretty: true}).Format(result)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, js)
			case "table", "console", "":
				fmt.Fprint(out, (&breakeven.TableFormatter{}).Format(result))
			default:
				return fmt.Errorf("unknown output format: %s (valid: table, json)", format)
			}
			return nil
		},
	}

	cmd.Flags().String("base", "", "Profile to solve for (default: the first profile in the file)")
	cmd.Flags().String("target", "", "Target annual take-home pay (required)")
	cmd.Flags().String("solve", string(breakeven.OptimizeGrossSalary), "What to solve for: gross_salary, pension_sacrifice or all")
	cmd.Flags().String("min-salary", "", "Lower bound for the gross salary search")
	cmd.Flags().String("max-salary", "", "Upper bound for the gross salary search")
	cmd.Flags().String("min-pension", "", "Lower bound for the pension sacrifice, as a fraction")
	cmd.Flags().String("max-pension", "", "Upper bound for the pension sacrifice, as a fraction")
	cmd.Flags().Int("max-iterations", 0, "Search iteration limit (default 100)")
	cmd.Flags().StringP("format", "f", "table", "Output format (table, json)")

	cmd.Flags().String("name", "you", "Profile name for --salary mode")
	cmd.Flags().String("salary", "", "Gross annual salary (quick mode, no input file)")
	cmd.Flags().String("pension", "", "Salary sacrificed to a pension, as a fraction (0.05 for 5%)")
	cmd.Flags().Bool("student-loan", false, "Make student loan repayments")
	cmd.Flags().Int("plan", int(domain.DefaultStudentLoanPlan), "Student loan plan (1 or 2)")

	return cmd
}
