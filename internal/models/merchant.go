package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Frequency is how often a merchant is disbursed.
type Frequency string

const (
	FrequencyDaily  Frequency = "DAILY"
	FrequencyWeekly Frequency = "WEEKLY"
)

// Valid reports whether the frequency is one of the known values.
func (f Frequency) Valid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly:
		return true
	}
	return false
}

// Merchant is owned by onboarding; the settlement engine only reads it.
type Merchant struct {
	ID                    uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	Reference             string          `gorm:"uniqueIndex;not null" json:"reference"`
	Email                 string          `gorm:"not null" json:"email"`
	LiveOn                time.Time       `gorm:"type:date;not null;index" json:"live_on"`
	DisbursementFrequency Frequency       `gorm:"not null" json:"disbursement_frequency"`
	MinimumMonthlyFee     decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"minimum_monthly_fee"`
	CreatedAt             time.Time       `json:"created_at"`
	UpdatedAt             time.Time       `json:"updated_at"`
}

func (m *Merchant) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
