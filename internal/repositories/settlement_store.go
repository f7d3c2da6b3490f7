package repositories

import (
	"context"

	"disburser/internal/models"

	"gorm.io/gorm"
)

// SettlementStore is the write surface of one settlement transaction. The
// orchestrator runs entirely inside InTransaction: either the disbursement
// and all its commissions commit together or nothing does.
type SettlementStore interface {
	InTransaction(ctx context.Context, fn func(SettlementStore) error) error
	CreateDisbursement(ctx context.Context, disbursement *models.Disbursement) error
	CreateCommission(ctx context.Context, commission *models.Commission) error
	UpdateDisbursementTotals(ctx context.Context, disbursement *models.Disbursement) error
}

type settlementStore struct {
	db *gorm.DB
}

func NewSettlementStore(db *gorm.DB) SettlementStore {
	return &settlementStore{db: db}
}

func (s *settlementStore) InTransaction(ctx context.Context, fn func(SettlementStore) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&settlementStore{db: tx})
	})
}

func (s *settlementStore) CreateDisbursement(ctx context.Context, disbursement *models.Disbursement) error {
	return s.db.WithContext(ctx).Create(disbursement).Error
}

func (s *settlementStore) CreateCommission(ctx context.Context, commission *models.Commission) error {
	return s.db.WithContext(ctx).Create(commission).Error
}

func (s *settlementStore) UpdateDisbursementTotals(ctx context.Context, disbursement *models.Disbursement) error {
	return s.db.WithContext(ctx).Model(disbursement).Updates(map[string]interface{}{
		"total_gross_amount": disbursement.TotalGrossAmount,
		"total_commission":   disbursement.TotalCommission,
		"total_net_amount":   disbursement.TotalNetAmount,
	}).Error
}
