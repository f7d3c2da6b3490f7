package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRound2(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"already two decimals", "1.43", "1.43"},
		{"half rounds up", "1.425", "1.43"},
		{"exact half cent rounds up", "0.005", "0.01"},
		{"below half rounds down", "1.4249", "1.42"},
		{"no systematic underpayment on 2.675", "2.675", "2.68"},
		{"zero stays zero", "0", "0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Round2(decimal.RequireFromString(tt.input))
			want := decimal.RequireFromString(tt.want)
			assert.True(t, got.Equal(want), "Round2(%s) = %s, want %s", tt.input, got, want)
		})
	}
}

// Summing many small amounts must not drift the way binary floating point
// does. This is the divergence the decimal representation exists to prevent.
func TestDecimalSumDoesNotDrift(t *testing.T) {
	const n = 100000
	cent := decimal.RequireFromString("0.01")

	sum := decimal.Zero
	for i := 0; i < n; i++ {
		sum = sum.Add(cent)
	}
	assert.True(t, sum.Equal(decimal.NewFromInt(1000)), "decimal sum drifted: %s", sum)

	floatSum := 0.0
	for i := 0; i < n; i++ {
		floatSum += 0.01
	}
	assert.NotEqual(t, 1000.0, floatSum, "float64 accumulation should drift on large N")
}
