package repositories

import (
	"context"
	"time"

	"disburser/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// MerchantCommission is one commission row joined to the merchant that owns
// the settled order. The join goes through orders, not disbursements, so a
// disbursement spanning a month boundary cannot misattribute a commission.
type MerchantCommission struct {
	MerchantID        uuid.UUID
	MerchantReference string
	MinimumMonthlyFee decimal.Decimal
	CommissionAmount  decimal.Decimal
	CommissionDate    time.Time
}

// CommissionRepository serves the monthly minimum fee detector.
type CommissionRepository interface {
	// ForPeriodWithMerchant returns every commission whose commission date
	// falls in [periodStart, periodEnd), joined to the order's merchant.
	ForPeriodWithMerchant(ctx context.Context, periodStart, periodEnd time.Time) ([]MerchantCommission, error)
}

type commissionRepository struct {
	db *gorm.DB
}

func NewCommissionRepository(db *gorm.DB) CommissionRepository {
	return &commissionRepository{db: db}
}

func (r *commissionRepository) ForPeriodWithMerchant(ctx context.Context, periodStart, periodEnd time.Time) ([]MerchantCommission, error) {
	var rows []MerchantCommission
	err := r.db.WithContext(ctx).
		Model(&models.Commission{}).
		Select(`merchants.id AS merchant_id,
			merchants.reference AS merchant_reference,
			merchants.minimum_monthly_fee,
			commissions.commission_amount,
			commissions.commission_date`).
		Joins("JOIN orders ON orders.id = commissions.order_id").
		Joins("JOIN merchants ON merchants.reference = orders.merchant_reference").
		Where("commissions.commission_date >= ? AND commissions.commission_date < ?",
			periodStart.Format("2006-01-02"), periodEnd.Format("2006-01-02")).
		Scan(&rows).Error
	return rows, err
}
