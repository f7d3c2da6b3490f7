package commission

import (
	"testing"

	"disburser/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestRateFor(t *testing.T) {
	tests := []struct {
		name   string
		amount string
		want   decimal.Decimal
	}{
		{"zero amount uses bottom tier", "0", RateBelow50},
		{"just below 50", "49.99", RateBelow50},
		{"exactly 50 uses middle tier", "50", RateBetween50And300},
		{"just below 300", "299.99", RateBetween50And300},
		{"exactly 300 uses top tier", "300", RateAbove300},
		{"far above 300", "100000", RateAbove300},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RateFor(dec(tt.amount))
			assert.True(t, got.Equal(tt.want), "RateFor(%s) = %s, want %s", tt.amount, got, tt.want)
		})
	}
}

func TestRateForIsNonIncreasing(t *testing.T) {
	amounts := []string{"0", "10", "49.99", "50", "150", "299.99", "300", "1000"}
	prev := dec("1")
	for _, raw := range amounts {
		rate := RateFor(dec(raw))
		assert.True(t, rate.LessThanOrEqual(prev), "rate increased at amount %s", raw)
		prev = rate
	}
}

func TestCalculatorCompute(t *testing.T) {
	calc := NewCalculator()

	tests := []struct {
		name       string
		amount     string
		wantAmount string
		wantRate   decimal.Decimal
	}{
		{"bottom tier", "25.00", "0.25", RateBelow50},
		{"middle tier rounds half up", "150.00", "1.43", RateBetween50And300},
		{"top tier", "500.00", "4.25", RateAbove300},
		{"zero order", "0", "0", RateBelow50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := calc.Compute(models.Order{ID: "o1", Amount: dec(tt.amount)})
			require.NoError(t, err)
			assert.True(t, result.Amount.Equal(dec(tt.wantAmount)),
				"commission for %s = %s, want %s", tt.amount, result.Amount, tt.wantAmount)
			assert.True(t, result.Rate.Equal(tt.wantRate))
			assert.False(t, result.Amount.IsNegative())
		})
	}
}

func TestCalculatorComputeRejectsNegativeAmount(t *testing.T) {
	calc := NewCalculator()
	_, err := calc.Compute(models.Order{ID: "o1", Amount: dec("-1")})
	assert.ErrorIs(t, err, ErrInvalidAmount)
}
