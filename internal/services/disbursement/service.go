package disbursement

import (
	"context"
	"fmt"
	"log"
	"time"

	"disburser/internal/models"
	"disburser/internal/repositories"
	"disburser/internal/services/eligibility"
)

// Service is the settlement orchestrator. One Settle call is one atomic unit
// of work: the disbursement row and every commission row commit together or
// not at all.
type Service struct {
	store      repositories.SettlementStore
	aggregator *Aggregator
}

func NewService(store repositories.SettlementStore, aggregator *Aggregator) *Service {
	return &Service{store: store, aggregator: aggregator}
}

// Settle creates the disbursement for one merchant's batch on the given
// date. Orders that already carry a commission (a concurrent or retried run
// got there first) are skipped individually; any other failure rolls the
// whole batch back. On return the disbursement totals equal the sum of the
// commission rows actually created.
func (s *Service) Settle(ctx context.Context, merchant models.Merchant, orders []models.Order, date time.Time) (*models.Disbursement, error) {
	breakdown, err := s.aggregator.Aggregate(orders)
	if err != nil {
		return nil, fmt.Errorf("%w for merchant %s on %s: %w",
			ErrSettlementFailed, merchant.Reference, date.Format("2006-01-02"), err)
	}

	reference, err := Reference(merchant, merchant.DisbursementFrequency, date)
	if err != nil {
		return nil, fmt.Errorf("%w for merchant %s on %s: %w",
			ErrSettlementFailed, merchant.Reference, date.Format("2006-01-02"), err)
	}

	settlementDate := eligibility.StartOfDay(date)
	record := &models.Disbursement{
		MerchantID:       merchant.ID,
		Frequency:        merchant.DisbursementFrequency,
		DisbursementDate: settlementDate,
		TotalGrossAmount: breakdown.TotalGrossAmount,
		TotalCommission:  breakdown.TotalCommission,
		TotalNetAmount:   breakdown.TotalNetAmount,
		Reference:        reference,
	}

	err = s.store.InTransaction(ctx, func(tx repositories.SettlementStore) error {
		if err := tx.CreateDisbursement(ctx, record); err != nil {
			return fmt.Errorf("failed to create disbursement %s: %w", reference, err)
		}

		created := make([]OrderCommission, 0, len(breakdown.Items))
		skipped := 0
		for _, item := range breakdown.Items {
			com := &models.Commission{
				DisbursementID:   record.ID,
				OrderID:          item.Order.ID,
				CommissionAmount: item.Commission.Amount,
				CommissionRate:   item.Commission.Rate,
				CommissionDate:   settlementDate,
			}
			if err := tx.CreateCommission(ctx, com); err != nil {
				if repositories.IsUniqueViolation(err) {
					skipped++
					continue
				}
				return fmt.Errorf("failed to create commission for order %s: %w", item.Order.ID, err)
			}
			created = append(created, item)
		}

		if skipped > 0 {
			log.Printf("settlement %s: skipped %d already-settled orders", reference, skipped)
			totals := breakdownOf(created)
			record.TotalGrossAmount = totals.TotalGrossAmount
			record.TotalCommission = totals.TotalCommission
			record.TotalNetAmount = totals.TotalNetAmount
			if err := tx.UpdateDisbursementTotals(ctx, record); err != nil {
				return fmt.Errorf("failed to adjust totals for %s: %w", reference, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w for merchant %s on %s: %w",
			ErrSettlementFailed, merchant.Reference, date.Format("2006-01-02"), err)
	}

	return record, nil
}
