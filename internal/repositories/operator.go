package repositories

import (
	"context"
	"errors"

	"disburser/internal/models"

	"gorm.io/gorm"
)

// OperatorRepository manages admin API users.
type OperatorRepository interface {
	GetByEmail(ctx context.Context, email string) (*models.Operator, error)
	Create(ctx context.Context, operator *models.Operator) error
}

type operatorRepository struct {
	db *gorm.DB
}

func NewOperatorRepository(db *gorm.DB) OperatorRepository {
	return &operatorRepository{db: db}
}

func (r *operatorRepository) GetByEmail(ctx context.Context, email string) (*models.Operator, error) {
	var operator models.Operator
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&operator).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &operator, nil
}

func (r *operatorRepository) Create(ctx context.Context, operator *models.Operator) error {
	return r.db.WithContext(ctx).Create(operator).Error
}
