package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Commission links exactly one order to the disbursement that settled it.
// The unique index on OrderID is the authoritative exactly-once guard; the
// (disbursement, order) pair is additionally unique so a disbursement can
// never reference the same order twice.
type Commission struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	DisbursementID   uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:uidx_commissions_disbursement_order" json:"disbursement_id"`
	OrderID          string          `gorm:"not null;uniqueIndex;uniqueIndex:uidx_commissions_disbursement_order" json:"order_id"`
	CommissionAmount decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"commission_amount"`
	CommissionRate   decimal.Decimal `gorm:"type:numeric(6,4);not null" json:"commission_rate"`
	CommissionDate   time.Time       `gorm:"type:date;not null;index" json:"commission_date"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

func (c *Commission) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
