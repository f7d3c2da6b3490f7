package disbursement

import (
	"testing"

	"disburser/internal/models"
	"disburser/internal/services/commission"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestAggregate(t *testing.T) {
	aggregator := NewAggregator(commission.NewCalculator())

	orders := []models.Order{
		{ID: "o1", Amount: dec("25.00")},
		{ID: "o2", Amount: dec("150.00")},
		{ID: "o3", Amount: dec("500.00")},
	}

	breakdown, err := aggregator.Aggregate(orders)
	require.NoError(t, err)

	assert.True(t, breakdown.TotalGrossAmount.Equal(dec("675.00")), "gross = %s", breakdown.TotalGrossAmount)
	// 0.25 + 1.43 + 4.25: per-order rounded values summed, not a blended rate
	assert.True(t, breakdown.TotalCommission.Equal(dec("5.93")), "commission = %s", breakdown.TotalCommission)
	assert.True(t, breakdown.TotalNetAmount.Equal(dec("669.07")), "net = %s", breakdown.TotalNetAmount)
	require.Len(t, breakdown.Items, 3)
	assert.True(t, breakdown.Items[1].Commission.Amount.Equal(dec("1.43")))
}

func TestAggregateNetIsExactlyGrossMinusCommission(t *testing.T) {
	aggregator := NewAggregator(commission.NewCalculator())

	orders := []models.Order{
		{ID: "o1", Amount: dec("49.99")},
		{ID: "o2", Amount: dec("50.00")},
		{ID: "o3", Amount: dec("299.99")},
		{ID: "o4", Amount: dec("300.00")},
		{ID: "o5", Amount: dec("0.01")},
	}

	breakdown, err := aggregator.Aggregate(orders)
	require.NoError(t, err)
	diff := breakdown.TotalGrossAmount.Sub(breakdown.TotalCommission)
	assert.True(t, breakdown.TotalNetAmount.Equal(diff),
		"net %s != gross %s - commission %s", breakdown.TotalNetAmount, breakdown.TotalGrossAmount, breakdown.TotalCommission)
}

func TestAggregateEmptyBatchIsAllZeros(t *testing.T) {
	aggregator := NewAggregator(commission.NewCalculator())

	breakdown, err := aggregator.Aggregate(nil)
	require.NoError(t, err)
	assert.True(t, breakdown.TotalGrossAmount.IsZero())
	assert.True(t, breakdown.TotalCommission.IsZero())
	assert.True(t, breakdown.TotalNetAmount.IsZero())
	assert.Empty(t, breakdown.Items)
}

func TestAggregatePropagatesInvalidAmount(t *testing.T) {
	aggregator := NewAggregator(commission.NewCalculator())

	_, err := aggregator.Aggregate([]models.Order{{ID: "bad", Amount: dec("-5")}})
	assert.ErrorIs(t, err, commission.ErrInvalidAmount)
}
