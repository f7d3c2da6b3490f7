package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Disbursement is the payout aggregate for one merchant and one settlement
// period. Totals are immutable once the creating transaction commits and are
// always the materialized sum of the linked commissions.
type Disbursement struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	MerchantID       uuid.UUID       `gorm:"type:uuid;not null;index" json:"merchant_id"`
	Frequency        Frequency       `gorm:"not null" json:"frequency"`
	DisbursementDate time.Time       `gorm:"type:date;not null" json:"disbursement_date"`
	TotalGrossAmount decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"total_gross_amount"`
	TotalCommission  decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"total_commission"`
	TotalNetAmount   decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"total_net_amount"`
	Reference        string          `gorm:"uniqueIndex;not null" json:"reference"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`

	Commissions []Commission `gorm:"constraint:OnDelete:CASCADE" json:"commissions,omitempty"`
}

func (d *Disbursement) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}
