// Package disbursement turns a batch of eligible orders into a disbursement
// and its commission records.
package disbursement

import (
	"disburser/internal/models"
	"disburser/internal/money"
	"disburser/internal/services/commission"

	"github.com/shopspring/decimal"
)

// OrderCommission pairs an order with its computed commission.
type OrderCommission struct {
	Order      models.Order
	Commission commission.Result
}

// Breakdown is the aggregate of one settlement batch. TotalCommission is the
// sum of the per-order rounded commissions; it is never re-derived from a
// blended rate.
type Breakdown struct {
	TotalGrossAmount decimal.Decimal
	TotalCommission  decimal.Decimal
	TotalNetAmount   decimal.Decimal
	Items            []OrderCommission
}

type Aggregator struct {
	calculator *commission.Calculator
}

func NewAggregator(calculator *commission.Calculator) *Aggregator {
	return &Aggregator{calculator: calculator}
}

// Aggregate computes gross, commission and net totals for a batch. An empty
// batch yields exact zeros for all three.
func (a *Aggregator) Aggregate(orders []models.Order) (Breakdown, error) {
	items := make([]OrderCommission, 0, len(orders))
	for _, order := range orders {
		result, err := a.calculator.Compute(order)
		if err != nil {
			return Breakdown{}, err
		}
		items = append(items, OrderCommission{Order: order, Commission: result})
	}
	return breakdownOf(items), nil
}

func breakdownOf(items []OrderCommission) Breakdown {
	gross := decimal.Zero
	totalCommission := decimal.Zero
	for _, item := range items {
		gross = gross.Add(item.Order.Amount)
		totalCommission = totalCommission.Add(item.Commission.Amount)
	}
	gross = money.Round2(gross)
	totalCommission = money.Round2(totalCommission)

	return Breakdown{
		TotalGrossAmount: gross,
		TotalCommission:  totalCommission,
		TotalNetAmount:   gross.Sub(totalCommission),
		Items:            items,
	}
}
