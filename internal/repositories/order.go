package repositories

import (
	"context"
	"time"

	"disburser/internal/models"

	"gorm.io/gorm"
)

// OrderRepository exposes order reads for eligibility selection and writes
// for the importer.
type OrderRepository interface {
	// InWindowUnsettled returns the merchant's orders created inside
	// [windowStart, windowEnd) that do not have a commission yet.
	InWindowUnsettled(ctx context.Context, merchantReference string, windowStart, windowEnd time.Time) ([]models.Order, error)
	CreateInBatches(ctx context.Context, orders []models.Order, batchSize int) error
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) InWindowUnsettled(ctx context.Context, merchantReference string, windowStart, windowEnd time.Time) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.WithContext(ctx).
		Where("merchant_reference = ?", merchantReference).
		Where("created_at >= ? AND created_at < ?", windowStart, windowEnd).
		Where("NOT EXISTS (SELECT 1 FROM commissions WHERE commissions.order_id = orders.id)").
		Order("created_at").
		Find(&orders).Error
	return orders, err
}

func (r *orderRepository) CreateInBatches(ctx context.Context, orders []models.Order, batchSize int) error {
	return r.db.WithContext(ctx).CreateInBatches(orders, batchSize).Error
}
