package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// MonthlyMinimumFeeDefault records a merchant whose commissions for one
// calendar month fell short of the contracted minimum. At most one record
// exists per merchant and period; a second write for the same pair is a
// scheduling bug upstream and is rejected, not tolerated.
type MonthlyMinimumFeeDefault struct {
	ID                   uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	MerchantID           uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:uidx_fee_defaults_merchant_period" json:"merchant_id"`
	MinimumMonthlyFee    decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"minimum_monthly_fee"`
	ActualCommissionPaid decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"actual_commission_paid"`
	DefaultedAmount      decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"defaulted_amount"`
	PeriodDate           time.Time       `gorm:"type:date;not null;uniqueIndex:uidx_fee_defaults_merchant_period" json:"period_date"`
	CreatedAt            time.Time       `json:"created_at"`
	UpdatedAt            time.Time       `json:"updated_at"`
}

func (d *MonthlyMinimumFeeDefault) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}
