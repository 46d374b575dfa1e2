package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"github.com/rgehrsitz/takehome/internal/rules"
	"github.com/rgehrsitz/takehome/internal/tui"
)

func main() {
	_ = godotenv.Load()

	rulesPath := flag.String("rules", os.Getenv("TAXCALC_RULES_FILE"), "Path to a rule table YAML file")
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: taxcalc-tui [--rules rules.yaml] [profiles.yaml]")
		flag.PrintDefaults()
	}
	flag.Parse()

	// Optional profile file; without one the calculator starts from a default salary
	configPath := flag.Arg(0)
	if configPath != "" {
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			fmt.Printf("Error: Config file not found: %s\n", configPath)
			os.Exit(1)
		}
	}

	repo, err := loadRules(*rulesPath)
	if err != nil {
		fmt.Printf("Error loading rules: %v\n", err)
		os.Exit(1)
	}

	p := tea.NewProgram(
		tui.NewModel(configPath, repo),
		tea.WithAltScreen(),
	)

	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running TUI: %v\n", err)
		os.Exit(1)
	}
}

func loadRules(path string) (*rules.Repository, error) {
	if path == "" {
		return rules.Default()
	}
	return rules.LoadFromFile(path)
}
