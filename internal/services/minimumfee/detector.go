// Package minimumfee detects merchants whose monthly commissions fell short
// of their contracted minimum.
package minimumfee

import (
	"context"
	"errors"
	"fmt"
	"time"

	"disburser/internal/models"
	"disburser/internal/money"
	"disburser/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ErrAlreadyRecorded means a default record for the (merchant, period) pair
// already exists. A second evaluation of the same month is a scheduling bug
// upstream, so this is surfaced, not skipped.
var ErrAlreadyRecorded = errors.New("minimum fee default already recorded for period")

// Shortfall is one defaulting merchant's result for a month.
type Shortfall struct {
	MerchantID        uuid.UUID
	MerchantReference string
	MinimumMonthlyFee decimal.Decimal
	TotalPaid         decimal.Decimal
	DefaultedAmount   decimal.Decimal
}

type Detector struct {
	commissions repositories.CommissionRepository
	defaults    repositories.FeeDefaultRepository
}

func NewDetector(commissions repositories.CommissionRepository, defaults repositories.FeeDefaultRepository) *Detector {
	return &Detector{commissions: commissions, defaults: defaults}
}

// MonthStart truncates t to the first day of its calendar month.
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// Detect scans one calendar month's commissions grouped by the order's
// merchant and returns the merchants that paid less than their minimum.
// Merchants with no commissions in the month are not evaluated at all.
func (d *Detector) Detect(ctx context.Context, month time.Time) ([]Shortfall, error) {
	periodStart := MonthStart(month)
	periodEnd := periodStart.AddDate(0, 1, 0)

	rows, err := d.commissions.ForPeriodWithMerchant(ctx, periodStart, periodEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to load commissions for %s: %w", periodStart.Format("2006-01"), err)
	}

	type merchantTotal struct {
		reference string
		minimum   decimal.Decimal
		paid      decimal.Decimal
	}
	totals := make(map[uuid.UUID]*merchantTotal)
	order := make([]uuid.UUID, 0)
	for _, row := range rows {
		t, ok := totals[row.MerchantID]
		if !ok {
			t = &merchantTotal{reference: row.MerchantReference, minimum: row.MinimumMonthlyFee}
			totals[row.MerchantID] = t
			order = append(order, row.MerchantID)
		}
		t.paid = t.paid.Add(row.CommissionAmount)
	}

	var shortfalls []Shortfall
	for _, id := range order {
		t := totals[id]
		paid := money.Round2(t.paid)
		gap := money.Round2(t.minimum.Sub(paid))
		if !gap.IsPositive() {
			continue
		}
		shortfalls = append(shortfalls, Shortfall{
			MerchantID:        id,
			MerchantReference: t.reference,
			MinimumMonthlyFee: t.minimum,
			TotalPaid:         paid,
			DefaultedAmount:   gap,
		})
	}
	return shortfalls, nil
}

// Record detects and persists one MonthlyMinimumFeeDefault per defaulting
// merchant for the month, all in a single transaction: a failure part way
// through commits nothing, so the month stays retryable. A uniqueness
// conflict on (merchant, period) aborts with ErrAlreadyRecorded.
func (d *Detector) Record(ctx context.Context, month time.Time) ([]models.MonthlyMinimumFeeDefault, error) {
	periodStart := MonthStart(month)

	shortfalls, err := d.Detect(ctx, periodStart)
	if err != nil {
		return nil, err
	}

	records := make([]models.MonthlyMinimumFeeDefault, 0, len(shortfalls))
	err = d.defaults.InTransaction(ctx, func(defaults repositories.FeeDefaultRepository) error {
		for _, shortfall := range shortfalls {
			record := models.MonthlyMinimumFeeDefault{
				MerchantID:           shortfall.MerchantID,
				MinimumMonthlyFee:    shortfall.MinimumMonthlyFee,
				ActualCommissionPaid: shortfall.TotalPaid,
				DefaultedAmount:      shortfall.DefaultedAmount,
				PeriodDate:           periodStart,
			}
			if err := defaults.Create(ctx, &record); err != nil {
				if repositories.IsUniqueViolation(err) {
					return fmt.Errorf("%w: merchant %s, period %s",
						ErrAlreadyRecorded, shortfall.MerchantReference, periodStart.Format("2006-01"))
				}
				return fmt.Errorf("failed to record default for merchant %s: %w", shortfall.MerchantReference, err)
			}
			records = append(records, record)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}
