package utils

import (
	"github.com/shopspring/decimal"
)

// FormatWithPrecision formats an amount rounded half-up to the given number of places.
// Example: 10.125 with precision 2 returns "10.13", 150 returns "150.00".
func FormatWithPrecision(amount decimal.Decimal, precision int32) string {
	return amount.StringFixed(precision)
}

// FormatWithCurrency formats an amount like FormatWithPrecision followed by the currency code.
// Example: 1350 with precision 2 and "TRY" returns "1350.00 TRY".
func FormatWithCurrency(amount decimal.Decimal, precision int32, currencyCode string) string {
	s := FormatWithPrecision(amount, precision)
	if currencyCode == "" {
		return s
	}
	return s + " " + currencyCode
}

// FormatPercent formats a fraction as a percentage with the given number of places.
// Example: 0.015 with precision 2 returns "1.50%".
func FormatPercent(fraction decimal.Decimal, precision int32) string {
	return fraction.Mul(decimal.NewFromInt(100)).StringFixed(precision) + "%"
}
