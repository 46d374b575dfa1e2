package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/rgehrsitz/takehome/internal/compare"
	"github.com/rgehrsitz/takehome/internal/transform"
	"github.com/spf13/cobra"
)

func compareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare [input-file]",
		Short: "Compare a profile against what-if scenarios",
		Long: `Compare a base profile against built-in templates, ad-hoc transforms, or
other profiles from the same file.

Examples:
  taxcalc compare profiles.yaml --base alice --with pension_5pct,student_loan_plan2
  taxcalc compare profiles.yaml --base alice --transform set_salary:amount=55000 --transform set_pension_sacrifice:percent=0.08
  taxcalc compare profiles.yaml --base alice --profiles bob,carol --format csv
  taxcalc compare --list-templates
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if list, _ := cmd.Flags().GetBool("list-templates"); list {
				fmt.Fprint(cmd.OutOrStdout(), transform.GetTemplateHelp(transform.CreateBuiltInTemplates()))
				return nil
			}

			if len(args) == 0 {
				return fmt.Errorf("input file required for comparison (use --list-templates to see available templates)")
			}
			inputFile := args[0]

			repo, err := loadRules(cmd)
			if err != nil {
				return err
			}
			cfg, err := loadInput(cmd, repo, inputFile)
			if err != nil {
				return err
			}

			baseName, _ := cmd.Flags().GetString("base")
			templatesStr, _ := cmd.Flags().GetString("with")
			transformSpecs, _ := cmd.Flags().GetStringArray("transform")
			label, _ := cmd.Flags().GetString("label")
			profilesStr, _ := cmd.Flags().GetString("profiles")

			if baseName == "" {
				if len(cfg.Profiles) != 1 {
					return fmt.Errorf("--base flag is required when the file has more than one profile")
				}
				baseName = cfg.Profiles[0].Name
			}

			engine := compare.NewCompareEngine(newEngine(cmd, repo))

			var compSet *compare.ComparisonSet
			if profilesStr != "" {
				if templatesStr != "" || len(transformSpecs) > 0 {
					return fmt.Errorf("--profiles cannot be combined with --with or --transform")
				}
				compSet, err = engine.CompareProfiles(cmd.Context(), cfg, baseName, transform.ParseTemplateList(profilesStr))
			} else {
				templateNames := transform.ParseTemplateList(templatesStr)
				transforms, perr := transform.NewTransformRegistry(repo).ParseTransformSpecs(transformSpecs)
				if perr != nil {
					return perr
				}
				if len(templateNames) == 0 && len(transforms) == 0 {
					return fmt.Errorf("--with, --transform or --profiles is required (use --list-templates to see available templates)")
				}
				compSet, err = engine.Compare(cmd.Context(), cfg, compare.CompareOptions{
					BaseProfileName: baseName,
					Templates:       templateNames,
					Transforms:      transforms,
					TransformLabel:  label,
				})
			}
			if err != nil {
				return fmt.Errorf("comparison failed: %w", err)
			}

			compSet.ConfigPath = inputFile
			format, _ := cmd.Flags().GetString("format")
			return writeComparison(cmd.OutOrStdout(), compSet, format)
		},
	}

	cmd.Flags().String("base", "", "Base profile name to compare against (default: the only profile in the file)")
	cmd.Flags().String("with", "", "Comma-separated list of templates to compare")
	cmd.Flags().StringArray("transform", nil, "Transform spec name:key=value,... (repeatable, applied together as one scenario)")
	cmd.Flags().String("label", "custom", "Scenario label for --transform")
	cmd.Flags().String("profiles", "", "Comma-separated list of other profiles in the file to compare")
	cmd.Flags().Bool("list-templates", false, "List all available scenario templates")
	cmd.Flags().StringP("format", "f", "table", "Output format (table, compact, csv, json)")

	return cmd
}

func compareYearsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare-years [input-file]",
		Short: "Compare one profile across tax years",
		Long: `Evaluate the same profile under several tax years. The first year listed
is the base the others are measured against.

Examples:
  taxcalc compare-years profiles.yaml --base alice --years 2013/2014,2015/2016
  taxcalc compare-years --salary 50000
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := loadRules(cmd)
			if err != nil {
				return err
			}

			years := repo.TaxYears()
			if yearsStr, _ := cmd.Flags().GetString("years"); yearsStr != "" {
				years = transform.ParseTemplateList(yearsStr)
			}

			var compSet *compare.ComparisonSet
			engine := compare.NewCompareEngine(newEngine(cmd, repo))

			if len(args) == 1 {
				if cmd.Flags().Changed("salary") {
					return fmt.Errorf("--salary cannot be combined with an input file")
				}
				cfg, err := loadInput(cmd, repo, args[0])
				if err != nil {
					return err
				}
				baseName, _ := cmd.Flags().GetString("base")
				if baseName == "" {
					baseName = cfg.Profiles[0].Name
				}
				input := cfg.FindProfile(baseName)
				if input == nil {
					return fmt.Errorf("profile %s not found in configuration", baseName)
				}
				compSet, err = engine.CompareTaxYears(cmd.Context(), input, years)
				if err != nil {
					return fmt.Errorf("comparison failed: %w", err)
				}
				compSet.ConfigPath = args[0]
			} else {
				cfg, err := quickConfiguration(cmd, repo)
				if err != nil {
					return err
				}
				compSet, err = engine.CompareTaxYears(cmd.Context(), &cfg.Profiles[0], years)
				if err != nil {
					return fmt.Errorf("comparison failed: %w", err)
				}
			}

			format, _ := cmd.Flags().GetString("format")
			return writeComparison(cmd.OutOrStdout(), compSet, format)
		},
	}

	cmd.Flags().String("base", "", "Profile to evaluate (default: the first profile in the file)")
	cmd.Flags().String("years", "", "Comma-separated tax years, base first (default: every supported year)")
	cmd.Flags().StringP("format", "f", "table", "Output format (table, compact, csv, json)")
	cmd.Flags().String("name", "you", "Profile name for --salary mode")
	cmd.Flags().String("salary", "", "Gross annual salary (quick mode, no input file)")
	cmd.Flags().String("pension", "", "Salary sacrificed to a pension, as a fraction (0.05 for 5%)")
	cmd.Flags().Bool("student-loan", false, "Make student loan repayments")
	cmd.Flags().Int("plan", 1, "Student loan plan (1 or 2)")

	return cmd
}

// writeComparison renders a comparison set in the named format
func writeComparison(w io.Writer, compSet *compare.ComparisonSet, format string) error {
	switch strings.ToLower(format) {
	case "csv":
		out, err := (&compare.CSVFormatter{}).Format(compSet)
		if err != nil {
			return fmt.Errorf("failed to format CSV: %w", err)
		}
		fmt.Fprint(w, out)

	case "json":
		out, err := (&compare.JSONFormatter{Pretty: true}).Format(compSet)
		if err != nil {
			return fmt.Errorf("failed to format JSON: %w", err)
		}
		fmt.Fprintln(w, out)

	case "compact":
		fmt.Fprint(w, (&compare.TableFormatter{}).FormatCompact(compSet))

	case "table", "console", "":
		fmt.Fprint(w, (&compare.TableFormatter{}).Format(compSet))

	default:
		return fmt.Errorf("unknown output format: %s (valid: table, compact, csv, json)", format)
	}
	return nil
}
