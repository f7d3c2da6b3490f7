package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order comes from the external intake system, which assigns its string ID.
// An order is settled at most once: at most one Commission ever points at it.
type Order struct {
	ID                string          `gorm:"primaryKey" json:"id"`
	MerchantReference string          `gorm:"not null;index" json:"merchant_reference"`
	Amount            decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"amount"`
	CreatedAt         time.Time       `gorm:"not null;index" json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}
