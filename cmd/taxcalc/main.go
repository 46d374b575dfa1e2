package main

import (
	"fmt"
	"log"
	"os"
	"runtime/debug"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rgehrsitz/takehome/internal/calculation"
	"github.com/rgehrsitz/takehome/internal/config"
	"github.com/rgehrsitz/takehome/internal/domain"
	"github.com/rgehrsitz/takehome/internal/rules"
	"github.com/spf13/cobra"
)

// Environment variables consulted when the matching flag is not given
const (
	envTaxYear   = "TAXCALC_TAX_YEAR"
	envRulesFile = "TAXCALC_RULES_FILE"
	envFormat    = "TAXCALC_FORMAT"
)

// simpleCLILogger implements calculation.Logger using the standard log package
type simpleCLILogger struct{}

func (simpleCLILogger) Debugf(format string, args ...any) { log.Printf("DEBUG: "+format, args...) }
func (simpleCLILogger) Infof(format string, args ...any)  { log.Printf("INFO: "+format, args...) }
func (simpleCLILogger) Warnf(format string, args ...any)  { log.Printf("WARN: "+format, args...) }
func (simpleCLILogger) Errorf(format string, args ...any) { log.Printf("ERROR: "+format, args...) }

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "taxcalc",
		Short: "UK take-home pay calculator CLI",
		Long: `Calculates UK income tax, National Insurance, student loan repayments
and take-home pay for one or more salary profiles across supported tax years.`,
		SilenceUsage: true,
	}

	root.PersistentFlags().String("rules", "", "Path to a rule table YAML file (default: built-in tables, or $"+envRulesFile+")")
	root.PersistentFlags().String("tax-year", "", "Tax year for profiles that do not name one (default: $"+envTaxYear+", then the rule table default)")
	root.PersistentFlags().Bool("debug", false, "Enable debug output for detailed calculations")

	root.AddCommand(calculateCmd())
	root.AddCommand(validateCmd())
	root.AddCommand(yearsCmd())
	root.AddCommand(rulesCmd())
	root.AddCommand(compareCmd())
	root.AddCommand(compareYearsCmd())
	root.AddCommand(breakEvenCmd())
	root.AddCommand(sensitivityCmd())
	root.AddCommand(versionCmd())

	return root
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "taxcalc %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.String()
	}
	return ""
}

// stringSetting returns the flag value when it was set on the command line,
// else the environment variable, else the flag default
func stringSetting(cmd *cobra.Command, flag, env string) string {
	f := cmd.Flags().Lookup(flag)
	if f == nil {
		return strings.TrimSpace(os.Getenv(env))
	}
	if f.Changed {
		return f.Value.String()
	}
	if v := strings.TrimSpace(os.Getenv(env)); v != "" {
		return v
	}
	return f.Value.String()
}

// loadRules returns the rule repository selected by --rules or the environment
func loadRules(cmd *cobra.Command) (*rules.Repository, error) {
	path := stringSetting(cmd, "rules", envRulesFile)
	if path == "" {
		return rules.Default()
	}
	return rules.LoadFromFile(path)
}

// defaultTaxYear returns the tax year for profiles that do not name one,
// checked against the repository
func defaultTaxYear(cmd *cobra.Command, repo *rules.Repository) (string, error) {
	year := stringSetting(cmd, "tax-year", envTaxYear)
	if year == "" {
		return repo.DefaultTaxYear(), nil
	}
	if !repo.Has(year) {
		return "", fmt.Errorf("%w: %s (available: %s)", domain.ErrUnknownTaxYear, year, strings.Join(repo.TaxYears(), ", "))
	}
	return year, nil
}

// newEngine builds a calculation engine honouring --debug
func newEngine(cmd *cobra.Command, repo *rules.Repository) *calculation.CalculationEngine {
	engine := calculation.NewCalculationEngine(repo)
	debugMode, _ := cmd.Flags().GetBool("debug")
	if debugMode {
		engine.SetLogger(simpleCLILogger{})
	}
	engine.Debug = debugMode
	return engine
}

// loadInput parses a profile file and fills in the default tax year when the
// file does not set one
func loadInput(cmd *cobra.Command, repo *rules.Repository, path string) (*domain.Configuration, error) {
	cfg, err := config.NewInputParser(repo).LoadFromFile(path)
	if err != nil {
		return nil, err
	}
	if cfg.DefaultTaxYear == "" {
		year, err := defaultTaxYear(cmd, repo)
		if err != nil {
			return nil, err
		}
		cfg.DefaultTaxYear = year
	}
	return cfg, nil
}

func main() {
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
