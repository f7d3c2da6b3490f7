// Package commission computes the per-order commission taken on settlement.
package commission

import (
	"github.com/shopspring/decimal"
)

// Tiered commission rates keyed by order amount. Boundaries are
// inclusive-lower/exclusive-upper: an order of exactly 50.00 pays the middle
// rate, one of exactly 300.00 pays the top rate.
var (
	RateBelow50         = decimal.RequireFromString("0.01")
	RateBetween50And300 = decimal.RequireFromString("0.0095")
	RateAbove300        = decimal.RequireFromString("0.0085")

	tierMiddle = decimal.NewFromInt(50)
	tierTop    = decimal.NewFromInt(300)
)

// RateFor returns the commission rate tier for a non-negative order amount.
func RateFor(amount decimal.Decimal) decimal.Decimal {
	switch {
	case amount.LessThan(tierMiddle):
		return RateBelow50
	case amount.LessThan(tierTop):
		return RateBetween50And300
	default:
		return RateAbove300
	}
}
