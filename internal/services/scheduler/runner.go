// Package scheduler fans a settlement run out across live merchants and
// triggers the monthly minimum fee evaluation.
package scheduler

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"disburser/internal/models"
	"disburser/internal/repositories"
	"disburser/internal/repositories/cache"
	"disburser/internal/services/eligibility"
	"disburser/internal/services/minimumfee"
)

// ErrRunInProgress means another settlement run already holds the advisory
// lock for this date.
var ErrRunInProgress = errors.New("settlement run already in progress for date")

// Settler settles one merchant's batch; satisfied by disbursement.Service.
type Settler interface {
	Settle(ctx context.Context, merchant models.Merchant, orders []models.Order, date time.Time) (*models.Disbursement, error)
}

// Selector picks a merchant's eligible orders; satisfied by eligibility.Selector.
type Selector interface {
	Select(ctx context.Context, merchant models.Merchant, referenceDate time.Time) ([]models.Order, error)
}

// Locker guards a run date against concurrent runs; satisfied by cache.CacheService.
type Locker interface {
	AcquireLock(ctx context.Context, key string, ttl time.Duration) (bool, error)
	ReleaseLock(ctx context.Context, key string) error
}

type Config struct {
	Merchants repositories.MerchantRepository
	Selector  Selector
	Settler   Settler
	Detector  *minimumfee.Detector
	Locker    Locker // optional; nil disables run locking
	PageSize  int
	Workers   int
}

// Runner executes settlement and minimum-fee runs. Merchants are processed
// in pages with one worker goroutine per slot; merchants share no mutable
// state, so parallelism across them is safe.
type Runner struct {
	merchants repositories.MerchantRepository
	selector  Selector
	settler   Settler
	detector  *minimumfee.Detector
	locker    Locker
	pageSize  int
	workers   int
}

func NewRunner(cfg Config) *Runner {
	if cfg.PageSize <= 0 {
		cfg.PageSize = 100
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 8
	}
	return &Runner{
		merchants: cfg.Merchants,
		selector:  cfg.Selector,
		settler:   cfg.Settler,
		detector:  cfg.Detector,
		locker:    cfg.Locker,
		pageSize:  cfg.PageSize,
		workers:   cfg.Workers,
	}
}

// RunSettlement settles every merchant live as of date. A weekly merchant on
// a non-matching weekday is skipped with no side effects. One merchant's
// failure is recorded and the run continues.
func (r *Runner) RunSettlement(ctx context.Context, date time.Time) (*RunReport, error) {
	if r.locker != nil {
		key := cache.RunLockKey(date)
		ok, err := r.locker.AcquireLock(ctx, key, time.Hour)
		if err != nil {
			log.Printf("run lock unavailable, proceeding without it: %v", err)
		} else if !ok {
			return nil, ErrRunInProgress
		} else {
			defer func() {
				if err := r.locker.ReleaseLock(ctx, key); err != nil {
					log.Printf("failed to release run lock: %v", err)
				}
			}()
		}
	}

	report := &RunReport{Date: eligibility.StartOfDay(date)}
	var mu sync.Mutex

	for offset := 0; ; offset += r.pageSize {
		page, err := r.merchants.LiveAsOf(ctx, date, offset, r.pageSize)
		if err != nil {
			return nil, err
		}
		if len(page) == 0 {
			break
		}

		jobs := make(chan models.Merchant)
		var wg sync.WaitGroup
		for i := 0; i < r.workers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for merchant := range jobs {
					settled, skipped, err := r.settleMerchant(ctx, merchant, date)
					mu.Lock()
					if err != nil {
						report.Failures = append(report.Failures, MerchantFailure{
							MerchantReference: merchant.Reference,
							Date:              report.Date,
							Reason:            err.Error(),
						})
					}
					report.Settled += settled
					report.Skipped += skipped
					mu.Unlock()
				}
			}()
		}
		for _, merchant := range page {
			jobs <- merchant
		}
		close(jobs)
		wg.Wait()

		if len(page) < r.pageSize {
			break
		}
	}

	log.Printf("settlement run %s: settled %d, skipped %d, failed %d",
		report.Date.Format("2006-01-02"), report.Settled, report.Skipped, len(report.Failures))
	return report, nil
}

func (r *Runner) settleMerchant(ctx context.Context, merchant models.Merchant, date time.Time) (settled, skipped int, err error) {
	_, ok, err := eligibility.WindowFor(merchant, date)
	if err != nil {
		return 0, 0, err
	}
	if !ok {
		// weekly merchant outside its settlement weekday
		return 0, 1, nil
	}

	orders, err := r.selector.Select(ctx, merchant, date)
	if err != nil {
		return 0, 0, err
	}

	if _, err := r.settler.Settle(ctx, merchant, orders, date); err != nil {
		return 0, 0, err
	}
	return 1, 0, nil
}

// RunMonthlyMinimumFees evaluates the calendar month preceding date and
// persists one default record per defaulting merchant.
func (r *Runner) RunMonthlyMinimumFees(ctx context.Context, date time.Time) ([]models.MonthlyMinimumFeeDefault, error) {
	period := minimumfee.MonthStart(date).AddDate(0, -1, 0)
	records, err := r.detector.Record(ctx, period)
	if err != nil {
		return nil, err
	}
	log.Printf("minimum fee run for %s: %d merchants defaulting", period.Format("2006-01"), len(records))
	return records, nil
}
