package output

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rgehrsitz/takehome/internal/domain"
)

// Formatter renders computed profiles in one output format
type Formatter interface {
	Name() string
	Format(results *domain.ProfileComparison) ([]byte, error)
}

// FormatterFunc adapts a function to the Formatter interface
type FormatterFunc struct {
	ID string
	F  func(results *domain.ProfileComparison) ([]byte, error)
}

func (f FormatterFunc) Name() string { return f.ID }

func (f FormatterFunc) Format(results *domain.ProfileComparison) ([]byte, error) {
	return f.F(results)
}

// FormatterNames lists the formats accepted by GetFormatterByName
var FormatterNames = []string{"console", "json", "csv", "yaml"}

// GetFormatterByName returns the formatter registered under name
func GetFormatterByName(name string) (Formatter, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "console", "table":
		return ConsoleFormatter{}, nil
	case "json":
		return JSONFormatter{Pretty: true}, nil
	case "csv":
		return CSVSummarizer{}, nil
	case "yaml", "yml":
		return YAMLFormatter{}, nil
	default:
		return nil, fmt.Errorf("unsupported format: %s (expected one of %s)", name, strings.Join(FormatterNames, ", "))
	}
}

// WriteFormatted renders results and writes them to a timestamped report file
// in the working directory, returning the file name
func WriteFormatted(f Formatter, results *domain.ProfileComparison, ext string) (string, error) {
	data, err := f.Format(results)
	if err != nil {
		return "", err
	}
	filename := fmt.Sprintf("takehome_report_%s.%s", time.Now().Format("20060102_150405"), ext)
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return "", err
	}
	return filename, nil
}
