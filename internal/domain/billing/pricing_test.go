package billing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdjustedAmount(t *testing.T) {
	tests := []struct {
		name     string
		base     string
		vat      string
		charges  string
		expected string
	}{
		{
			name:     "standard vat and bank charges",
			base:     "100.00",
			vat:      "0.15",
			charges:  "0.01",
			expected: "116.00",
		},
		{
			name:     "zero rates leave base unchanged",
			base:     "250.50",
			vat:      "0",
			charges:  "0",
			expected: "250.50",
		},
		{
			name:     "rounds the final sum to two places",
			base:     "33.33",
			vat:      "0.15",
			charges:  "0.01",
			expected: "38.66",
		},
		{
			name:     "zero base",
			base:     "0",
			vat:      "0.15",
			charges:  "0.01",
			expected: "0.00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base, err := decimal.NewFromString(tt.base)
			require.NoError(t, err)
			vat, err := decimal.NewFromString(tt.vat)
			require.NoError(t, err)
			charges, err := decimal.NewFromString(tt.charges)
			require.NoError(t, err)

			got := AdjustedAmount(base, vat, charges)
			assert.Equal(t, tt.expected, got.StringFixed(2))
		})
	}
}

func TestItemTotal(t *testing.T) {
	tests := []struct {
		name      string
		quantity  int64
		unitPrice string
		expected  string
	}{
		{name: "two units at 199.99", quantity: 2, unitPrice: "199.99", expected: "399.98"},
		{name: "single unit", quantity: 1, unitPrice: "49.95", expected: "49.95"},
		{name: "zero quantity", quantity: 0, unitPrice: "10.00", expected: "0.00"},
		{name: "fractional price rounds", quantity: 3, unitPrice: "0.335", expected: "1.01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			price, err := decimal.NewFromString(tt.unitPrice)
			require.NoError(t, err)

			got := ItemTotal(tt.quantity, price)
			assert.Equal(t, tt.expected, got.StringFixed(2))
		})
	}
}

func TestAdjustedAmountNoFloatDrift(t *testing.T) {
	// 0.1 + 0.2 style inputs must not pick up binary float noise.
	base := decimal.RequireFromString("0.30")
	got := AdjustedAmount(base, decimal.Zero, decimal.Zero)
	assert.True(t, got.Equal(decimal.RequireFromString("0.30")))
}
