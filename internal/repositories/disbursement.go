package repositories

import (
	"context"
	"errors"
	"time"

	"disburser/internal/models"

	"gorm.io/gorm"
)

// DisbursementRepository serves the read side: reporting and the admin API.
type DisbursementRepository interface {
	GetByReference(ctx context.Context, reference string) (*models.Disbursement, error)
	List(ctx context.Context, merchantReference string, date *time.Time, limit int) ([]models.Disbursement, error)
}

type disbursementRepository struct {
	db *gorm.DB
}

func NewDisbursementRepository(db *gorm.DB) DisbursementRepository {
	return &disbursementRepository{db: db}
}

func (r *disbursementRepository) GetByReference(ctx context.Context, reference string) (*models.Disbursement, error) {
	var disbursement models.Disbursement
	err := r.db.WithContext(ctx).
		Preload("Commissions").
		Where("reference = ?", reference).
		First(&disbursement).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &disbursement, nil
}

func (r *disbursementRepository) List(ctx context.Context, merchantReference string, date *time.Time, limit int) ([]models.Disbursement, error) {
	query := r.db.WithContext(ctx).Model(&models.Disbursement{}).Order("disbursement_date DESC")
	if merchantReference != "" {
		query = query.
			Joins("JOIN merchants ON merchants.id = disbursements.merchant_id").
			Where("merchants.reference = ?", merchantReference)
	}
	if date != nil {
		query = query.Where("disbursement_date = ?", date.Format("2006-01-02"))
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	var disbursements []models.Disbursement
	err := query.Find(&disbursements).Error
	return disbursements, err
}
