package domain

import "strings"

// CurrencyCode is an ISO 4217 style three-letter code, e.g. "USD".
type CurrencyCode string

// NormalizeCurrencyCode trims and upper-cases a code so that store lookups compare exactly.
func NormalizeCurrencyCode(code string) CurrencyCode {
	return CurrencyCode(strings.ToUpper(strings.TrimSpace(code)))
}

// Valid reports whether the code is exactly three ASCII letters.
func (c CurrencyCode) Valid() bool {
	if len(c) != 3 {
		return false
	}
	for i := 0; i < len(c); i++ {
		ch := c[i]
		if (ch < 'A' || ch > 'Z') && (ch < 'a' || ch > 'z') {
			return false
		}
	}
	return true
}

func (c CurrencyCode) String() string { return string(c) }

// ConversionSide names which leg of a conversion a currency belongs to.
type ConversionSide string

const (
	SideSource ConversionSide = "source"
	SideTarget ConversionSide = "target"
)
