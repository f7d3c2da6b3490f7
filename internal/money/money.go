// Package money holds the monetary helpers shared by the settlement engine.
// All amounts are decimal-exact; float64 never touches money.
package money

import (
	"github.com/shopspring/decimal"
)

// Round2 rounds a monetary value to 2 decimal places, half up.
// 0.005 rounds to 0.01 so merchants are never systematically underpaid.
func Round2(v decimal.Decimal) decimal.Decimal {
	return v.Round(2)
}

// Zero is the canonical zero amount.
var Zero = decimal.Zero

// FromString parses a decimal amount, e.g. from CSV input.
func FromString(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(s)
}
