package main

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/takehome/internal/config"
	"github.com/rgehrsitz/takehome/internal/domain"
	"github.com/rgehrsitz/takehome/internal/output"
	"github.com/rgehrsitz/takehome/internal/rules"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func calculateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calculate [input-file]",
		Short: "Calculate take-home pay for the profiles in a file, or for a single salary",
		Long: `Calculate income tax, National Insurance, student loan repayments and
take-home pay.

Examples:
  taxcalc calculate profiles.yaml
  taxcalc calculate profiles.yaml --format json
  taxcalc calculate --salary 50000 --pension 0.05 --student-loan --plan 2
  taxcalc calculate --salary 50000 --tax-code 1060L --save me.yaml
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

			if savePath, _ := cmd.Flags().GetString("save"); savePath != "" {
				if err := output.SaveConfiguration(cfg, savePath); err != nil {
					return fmt.Errorf("failed to save profiles: %w", err)
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "Profiles saved to %s\n", savePath)
			}

			results, err := newEngine(cmd, repo).RunProfiles(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			f, err := output.GetFormatterByName(stringSetting(cmd, "format", envFormat))
			if err != nil {
				return err
			}

			if report, _ := cmd.Flags().GetBool("report"); report {
				filename, err := output.WriteFormatted(f, results, reportExtension(f))
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", filename)
				return nil
			}

			data, err := f.Format(results)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), string(data))
			return nil
		},
	}

	cmd.Flags().StringP("format", "f", "console", "Output format ("+strings.Join(output.FormatterNames, ", ")+"; default $"+envFormat+")")
	cmd.Flags().Bool("report", false, "Write the output to a timestamped report file instead of stdout")
	cmd.Flags().String("save", "", "Save the evaluated profiles as a YAML input file")

	cmd.Flags().String("name", "you", "Profile name for --salary mode")
	cmd.Flags().String("salary", "", "Gross annual salary (quick mode, no input file)")
	cmd.Flags().Int("age", domain.DefaultAge, "Age on the last day of the tax year")
	cmd.Flags().Bool("blind", false, "Claim blind person's allowance")
	cmd.Flags().String("tax-code", "", "PAYE tax code, e.g. 1060L")
	cmd.Flags().String("pension", "", "Salary sacrificed to a pension, as a fraction (0.05 for 5%)")
	cmd.Flags().String("gift-aid", "", "Gross gift aid donations")
	cmd.Flags().String("benefits-in-kind", "", "Taxable benefits in kind")
	cmd.Flags().Bool("student-loan", false, "Make student loan repayments")
	cmd.Flags().Int("plan", int(domain.DefaultStudentLoanPlan), "Student loan plan (1 or 2)")

	return cmd
}

// quickConfiguration builds a one-profile configuration from the fact flags
func quickConfiguration(cmd *cobra.Command, repo *rules.Repository) (*domain.Configuration, error) {
	if !cmd.Flags().Changed("salary") {
		return nil, fmt.Errorf("an input file or --salary is required")
	}

	flags := cmd.Flags()
	var facts domain.Facts
	var err error

	if facts.GrossSalary, err = decimalFlag(cmd, "salary"); err != nil {
		return nil, err
	}
	if facts.PensionSacrificePercent, err = decimalFlag(cmd, "pension"); err != nil {
		return nil, err
	}
	if facts.GiftAid, err = decimalFlag(cmd, "gift-aid"); err != nil {
		return nil, err
	}
	if facts.BenefitsInKind, err = decimalFlag(cmd, "benefits-in-kind"); err != nil {
		return nil, err
	}
	if flags.Changed("age") {
		age, _ := flags.GetInt("age")
		facts.Age = &age
	}
	if flags.Changed("blind") {
		blind, _ := flags.GetBool("blind")
		facts.Blind = &blind
	}
	if code, _ := flags.GetString("tax-code"); code != "" {
		facts.TaxCode = &code
	}
	if flags.Changed("student-loan") || flags.Changed("plan") {
		repay, _ := flags.GetBool("student-loan")
		if flags.Changed("plan") && !flags.Changed("student-loan") {
			repay = true
		}
		plan, _ := flags.GetInt("plan")
		facts.StudentLoanRepayments = &repay
		facts.StudentLoanPlan = &plan
	}

	year, err := defaultTaxYear(cmd, repo)
	if err != nil {
		return nil, err
	}
	name, _ := flags.GetString("name")

	cfg := &domain.Configuration{
		DefaultTaxYear: year,
		Profiles:       []domain.ProfileInput{{Name: name, Facts: facts}},
	}
	if err := config.NewInputParser(repo).ValidateConfiguration(cfg); err != nil {
		return nil, fmt.Errorf("invalid profile: %w", err)
	}
	return cfg, nil
}

// decimalFlag parses a string flag as a decimal; unset flags yield nil
func decimalFlag(cmd *cobra.Command, name string) (*decimal.Decimal, error) {
	if !cmd.Flags().Changed(name) {
		return nil, nil
	}
	raw, _ := cmd.Flags().GetString(name)
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return nil, fmt.Errorf("invalid --%s value %q: %w", name, raw, err)
	}
	return &d, nil
}

func reportExtension(f output.Formatter) string {
	switch f.Name() {
	case "console":
		return "txt"
	default:
		return f.Name()
	}
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [input-file]",
		Short: "Validate a profile input file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := loadRules(cmd)
			if err != nil {
				return err
			}
			cfg, err := config.NewInputParser(repo).LoadFromFile(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Configuration file %s is valid (%d profiles)\n", args[0], len(cfg.Profiles))
			return nil
		},
	}
}

func yearsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "years",
		Short: "List the supported tax years",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := loadRules(cmd)
			if err != nil {
				return err
			}
			for _, year := range repo.TaxYears() {
				marker := ""
				if year == repo.DefaultTaxYear() {
					marker = " (default)"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s%s\n", year, marker)
			}
			return nil
		},
	}
}

func rulesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "Print the active rule tables as YAML",
		Long: `Print the active rule tables as YAML. The output can be edited and passed
back with --rules to model other thresholds.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := loadRules(cmd)
			if err != nil {
				return err
			}
			data, err := rules.Marshal(repo)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), string(data))
			return nil
		},
	}
}
