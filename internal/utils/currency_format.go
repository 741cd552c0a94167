package utils

import (
	"github.com/shopspring/decimal"
)

// FormatWithPrecision formats an amount with exactly the given number of fractional digits.
// Example: 1 with precision 6 returns "1.000000"
func FormatWithPrecision(amount decimal.Decimal, precision int32) string {
	return amount.StringFixed(precision)
}

// FormatAmount formats a monetary amount with at least minPrecision fractional digits,
// keeping any extra digits the value already carries.
// Example: 77.3 returns "77.30"; 50.125 returns "50.125"
func FormatAmount(amount decimal.Decimal, minPrecision int32) string {
	if -amount.Exponent() > minPrecision {
		return amount.String()
	}
	return amount.StringFixed(minPrecision)
}
