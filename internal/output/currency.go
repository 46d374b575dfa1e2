package output

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatCurrency formats an amount in pounds with thousands separators,
// rounded to the penny: £1,234.56
func FormatCurrency(amount decimal.Decimal) string {
	fixed := amount.StringFixed(2)
	sign := ""
	if strings.HasPrefix(fixed, "-") {
		fixed = fixed[1:]
		if strings.Trim(fixed, "0.") != "" {
			sign = "-"
		}
	}

	whole, pence, _ := strings.Cut(fixed, ".")
	return sign + "£" + groupThousands(whole) + "." + pence
}

// FormatPercentage formats an amount that is already a percentage
func FormatPercentage(amount decimal.Decimal) string {
	return amount.StringFixed(2) + "%"
}

// FormatRate formats a fractional rate (0.2) as a percentage (20%)
func FormatRate(rate decimal.Decimal) string {
	pct := rate.Mul(decimal.NewFromInt(100))
	if pct.Equal(pct.Truncate(0)) {
		return pct.StringFixed(0) + "%"
	}
	return pct.String() + "%"
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var sb strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		sb.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if sb.Len() > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(digits[i : i+3])
	}
	return sb.String()
}
