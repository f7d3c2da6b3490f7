package repositories

import (
	"context"
	"time"

	"disburser/internal/models"

	"gorm.io/gorm"
)

// FeeDefaultRepository persists monthly minimum fee default records. Writers
// run inside InTransaction so one month's records commit together or not at
// all: a partially written month would make every retry collide with its own
// leftovers.
type FeeDefaultRepository interface {
	InTransaction(ctx context.Context, fn func(FeeDefaultRepository) error) error
	// Create writes one default record. A uniqueness conflict on the
	// (merchant, period) pair is returned to the caller untranslated so it
	// can be classified with IsUniqueViolation.
	Create(ctx context.Context, record *models.MonthlyMinimumFeeDefault) error
	ListForPeriod(ctx context.Context, period time.Time) ([]models.MonthlyMinimumFeeDefault, error)
}

type feeDefaultRepository struct {
	db *gorm.DB
}

func NewFeeDefaultRepository(db *gorm.DB) FeeDefaultRepository {
	return &feeDefaultRepository{db: db}
}

func (r *feeDefaultRepository) InTransaction(ctx context.Context, fn func(FeeDefaultRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&feeDefaultRepository{db: tx})
	})
}

func (r *feeDefaultRepository) Create(ctx context.Context, record *models.MonthlyMinimumFeeDefault) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *feeDefaultRepository) ListForPeriod(ctx context.Context, period time.Time) ([]models.MonthlyMinimumFeeDefault, error) {
	var records []models.MonthlyMinimumFeeDefault
	err := r.db.WithContext(ctx).
		Where("period_date = ?", period.Format("2006-01-02")).
		Order("defaulted_amount DESC").
		Find(&records).Error
	return records, err
}
