package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatAmount formats money with thousand separators and two decimals.
// Example: 15000.5 -> "15,000.50"
func FormatAmount(amount decimal.Decimal) string {
	formatted := amount.Abs().StringFixed(2)

	parts := strings.SplitN(formatted, ".", 2)
	integerPart := parts[0]
	decimalPart := parts[1]

	// Tambahkan pemisah ribuan
	var groups []string
	for i := len(integerPart); i > 0; i -= 3 {
		start := i - 3
		if start < 0 {
			start = 0
		}
		groups = append([]string{integerPart[start:i]}, groups...)
	}

	out := strings.Join(groups, ",") + "." + decimalPart
	if amount.IsNegative() {
		return "-" + out
	}
	return out
}
