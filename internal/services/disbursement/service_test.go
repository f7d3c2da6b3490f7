package disbursement

import (
	"context"
	"errors"
	"testing"
	"time"

	"disburser/internal/models"
	"disburser/internal/repositories"
	"disburser/internal/services/commission"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fakeStore scripts the storage behavior of one settlement transaction:
// duplicate order IDs fail with the translated uniqueness sentinel, and a
// rolled-back transaction discards everything written inside it.
type fakeStore struct {
	settledOrders map[string]bool

	disbursements []models.Disbursement
	commissions   []models.Commission
	totalUpdates  []models.Disbursement

	failCommissionFor string
}

func newFakeStore(settled ...string) *fakeStore {
	s := &fakeStore{settledOrders: map[string]bool{}}
	for _, id := range settled {
		s.settledOrders[id] = true
	}
	return s
}

func (s *fakeStore) InTransaction(ctx context.Context, fn func(repositories.SettlementStore) error) error {
	snapshot := *s
	if err := fn(s); err != nil {
		// roll back
		s.disbursements = snapshot.disbursements
		s.commissions = snapshot.commissions
		s.totalUpdates = snapshot.totalUpdates
		return err
	}
	return nil
}

func (s *fakeStore) CreateDisbursement(ctx context.Context, d *models.Disbursement) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	s.disbursements = append(s.disbursements, *d)
	return nil
}

func (s *fakeStore) CreateCommission(ctx context.Context, c *models.Commission) error {
	if c.OrderID == s.failCommissionFor {
		return errors.New("insert failed: connection reset")
	}
	if s.settledOrders[c.OrderID] {
		return gorm.ErrDuplicatedKey
	}
	s.settledOrders[c.OrderID] = true
	s.commissions = append(s.commissions, *c)
	return nil
}

func (s *fakeStore) UpdateDisbursementTotals(ctx context.Context, d *models.Disbursement) error {
	s.totalUpdates = append(s.totalUpdates, *d)
	return nil
}

func newTestService(store repositories.SettlementStore) *Service {
	return NewService(store, NewAggregator(commission.NewCalculator()))
}

var testDate = time.Date(2024, time.January, 15, 8, 30, 0, 0, time.UTC)

func testMerchant() models.Merchant {
	return models.Merchant{
		ID:                    uuid.New(),
		Reference:             "windler_and_sons",
		DisbursementFrequency: models.FrequencyDaily,
	}
}

func TestSettleCreatesDisbursementAndCommissions(t *testing.T) {
	store := newFakeStore()
	merchant := testMerchant()

	orders := []models.Order{
		{ID: "o1", Amount: dec("25.00")},
		{ID: "o2", Amount: dec("150.00")},
		{ID: "o3", Amount: dec("500.00")},
	}

	result, err := newTestService(store).Settle(context.Background(), merchant, orders, testDate)
	require.NoError(t, err)

	assert.Equal(t, "D15-windler_and_sons-20240115-2024", result.Reference)
	assert.True(t, result.TotalGrossAmount.Equal(dec("675.00")))
	assert.True(t, result.TotalCommission.Equal(dec("5.93")))
	assert.True(t, result.TotalNetAmount.Equal(dec("669.07")))
	assert.Equal(t, time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC), result.DisbursementDate)

	require.Len(t, store.disbursements, 1)
	require.Len(t, store.commissions, 3)
	for _, c := range store.commissions {
		assert.Equal(t, result.ID, c.DisbursementID)
		assert.Equal(t, result.DisbursementDate, c.CommissionDate)
	}
	assert.Empty(t, store.totalUpdates, "no duplicate means no totals adjustment")
}

func TestSettleSkipsAlreadySettledOrdersAndAdjustsTotals(t *testing.T) {
	// o2 was settled by a concurrent run that committed first
	store := newFakeStore("o2")
	merchant := testMerchant()

	orders := []models.Order{
		{ID: "o1", Amount: dec("25.00")},
		{ID: "o2", Amount: dec("150.00")},
		{ID: "o3", Amount: dec("500.00")},
	}

	result, err := newTestService(store).Settle(context.Background(), merchant, orders, testDate)
	require.NoError(t, err, "a duplicate must not abort the batch")

	require.Len(t, store.commissions, 2)
	assert.True(t, result.TotalGrossAmount.Equal(dec("525.00")), "gross = %s", result.TotalGrossAmount)
	assert.True(t, result.TotalCommission.Equal(dec("4.50")), "commission = %s", result.TotalCommission)
	assert.True(t, result.TotalNetAmount.Equal(dec("520.50")), "net = %s", result.TotalNetAmount)
	require.Len(t, store.totalUpdates, 1, "totals must be rewritten to match created commissions")
}

func TestSettleIsIdempotentPerOrder(t *testing.T) {
	store := newFakeStore()
	merchant := testMerchant()
	orders := []models.Order{{ID: "o1", Amount: dec("25.00")}}
	service := newTestService(store)

	_, err := service.Settle(context.Background(), merchant, orders, testDate)
	require.NoError(t, err)

	// retried run with the same order set
	second, err := service.Settle(context.Background(), merchant, orders, testDate)
	require.NoError(t, err)

	assert.Len(t, store.commissions, 1, "exactly one commission survives per order")
	assert.True(t, second.TotalGrossAmount.IsZero())
	assert.True(t, second.TotalCommission.IsZero())
	assert.True(t, second.TotalNetAmount.IsZero())
}

func TestSettleAbortsOnNonDuplicateFailure(t *testing.T) {
	store := newFakeStore()
	store.failCommissionFor = "o2"
	merchant := testMerchant()

	orders := []models.Order{
		{ID: "o1", Amount: dec("25.00")},
		{ID: "o2", Amount: dec("150.00")},
	}

	_, err := newTestService(store).Settle(context.Background(), merchant, orders, testDate)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSettlementFailed)
	assert.Contains(t, err.Error(), merchant.Reference, "failure must carry merchant context")

	assert.Empty(t, store.disbursements, "rollback must discard the disbursement")
	assert.Empty(t, store.commissions, "rollback must discard partial commissions")
}

func TestSettleFailurePreservesCause(t *testing.T) {
	merchant := testMerchant()
	merchant.DisbursementFrequency = models.Frequency("FORTNIGHTLY")

	_, err := newTestService(newFakeStore()).Settle(context.Background(), merchant, nil, testDate)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSettlementFailed)
	assert.ErrorIs(t, err, ErrUnknownFrequency, "the cause must survive the wrap")
}

func TestSettleEmptyBatchCreatesZeroDisbursement(t *testing.T) {
	store := newFakeStore()
	merchant := testMerchant()

	result, err := newTestService(store).Settle(context.Background(), merchant, nil, testDate)
	require.NoError(t, err)

	require.Len(t, store.disbursements, 1)
	assert.Empty(t, store.commissions)
	assert.True(t, result.TotalGrossAmount.IsZero())
	assert.True(t, result.TotalCommission.IsZero())
	assert.True(t, result.TotalNetAmount.IsZero())
	assert.NotEmpty(t, result.Reference)
}
