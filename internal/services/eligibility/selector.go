package eligibility

import (
	"context"
	"time"

	"disburser/internal/models"
	"disburser/internal/repositories"
)

// Selector picks the orders eligible for one settlement run. Already-settled
// orders are excluded at query time as a second line of defense; the unique
// constraint on commissions.order_id remains the authoritative guard.
type Selector struct {
	orders repositories.OrderRepository
}

func NewSelector(orders repositories.OrderRepository) *Selector {
	return &Selector{orders: orders}
}

// Select returns the merchant's eligible orders for the reference date. An
// empty slice is a normal outcome (weekly merchant on the wrong weekday, or
// simply nothing to settle), not an error.
func (s *Selector) Select(ctx context.Context, merchant models.Merchant, referenceDate time.Time) ([]models.Order, error) {
	window, ok, err := WindowFor(merchant, referenceDate)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	window = ClampToLiveOn(window, merchant.LiveOn)
	if !window.Start.Before(window.End) {
		return nil, nil
	}

	return s.orders.InWindowUnsettled(ctx, merchant.Reference, window.Start, window.End)
}
