package repositories

import (
	"context"
	"errors"
	"log"
	"time"

	"disburser/internal/models"
	"disburser/internal/repositories/cache"

	"gorm.io/gorm"
)

// MerchantRepository exposes the merchant reads the settlement engine needs.
type MerchantRepository interface {
	GetByReference(ctx context.Context, reference string) (*models.Merchant, error)
	LiveAsOf(ctx context.Context, date time.Time, offset, limit int) ([]models.Merchant, error)
	Create(ctx context.Context, merchant *models.Merchant) error
	CreateInBatches(ctx context.Context, merchants []models.Merchant, batchSize int) error
}

type merchantRepository struct {
	db    *gorm.DB
	cache *cache.CacheService
}

func NewMerchantRepository(db *gorm.DB, cacheService *cache.CacheService) MerchantRepository {
	return &merchantRepository{db: db, cache: cacheService}
}

func (r *merchantRepository) GetByReference(ctx context.Context, reference string) (*models.Merchant, error) {
	if r.cache != nil {
		var cached models.Merchant
		found, err := r.cache.Get(ctx, cache.MerchantKey(reference), &cached)
		if err != nil {
			log.Printf("merchant cache read failed for %s: %v", reference, err)
		} else if found {
			return &cached, nil
		}
	}

	var merchant models.Merchant
	if err := r.db.WithContext(ctx).Where("reference = ?", reference).First(&merchant).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if r.cache != nil {
		if err := r.cache.Set(ctx, cache.MerchantKey(reference), &merchant); err != nil {
			log.Printf("merchant cache write failed for %s: %v", reference, err)
		}
	}
	return &merchant, nil
}

// LiveAsOf pages through merchants whose live_on date is on or before date.
// Ordered by reference so paging is stable across a run.
func (r *merchantRepository) LiveAsOf(ctx context.Context, date time.Time, offset, limit int) ([]models.Merchant, error) {
	var merchants []models.Merchant
	err := r.db.WithContext(ctx).
		Where("live_on <= ?", date).
		Order("reference").
		Offset(offset).
		Limit(limit).
		Find(&merchants).Error
	return merchants, err
}

func (r *merchantRepository) Create(ctx context.Context, merchant *models.Merchant) error {
	return r.db.WithContext(ctx).Create(merchant).Error
}

func (r *merchantRepository) CreateInBatches(ctx context.Context, merchants []models.Merchant, batchSize int) error {
	return r.db.WithContext(ctx).CreateInBatches(merchants, batchSize).Error
}
