package commission

import (
	"errors"

	"disburser/internal/models"
	"disburser/internal/money"

	"github.com/shopspring/decimal"
)

var ErrInvalidAmount = errors.New("invalid order amount")

// Result is one order's commission: the rounded amount and the rate applied.
type Result struct {
	Amount decimal.Decimal
	Rate   decimal.Decimal
}

type Calculator struct{}

func NewCalculator() *Calculator {
	return &Calculator{}
}

// Compute applies the rate tier to one order and rounds per order. The
// per-order rounding matters: batch totals are sums of these rounded values,
// never a re-rounding of a blended figure.
func (c *Calculator) Compute(order models.Order) (Result, error) {
	if order.Amount.IsNegative() {
		return Result{}, ErrInvalidAmount
	}
	rate := RateFor(order.Amount)
	return Result{
		Amount: money.Round2(order.Amount.Mul(rate)),
		Rate:   rate,
	}, nil
}
