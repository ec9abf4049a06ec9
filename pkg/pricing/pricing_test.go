package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculate_DefaultRate(t *testing.T) {
	b := Calculate(1000, 1)

	assert.InDelta(t, 1000.0, b.Subtotal, 0.001)
	assert.InDelta(t, 180.0, b.Tax, 0.001)
	assert.InDelta(t, 1180.0, b.Total, 0.001)
	assert.Equal(t, DefaultTaxRate, b.TaxRate)
}

func TestCalculateWithRate_TotalIsSubtotalPlusTax(t *testing.T) {
	cases := []struct {
		basePrice float64
		hours     float64
		rate      float64
	}{
		{1200, 2, 0.18},
		{850, 1.5, 0.18},
		{0, 3, 0.18},
		{500, 0, 0.18},
		{999.99, 2.5, 0.05},
	}

	for _, c := range cases {
		b := CalculateWithRate(c.basePrice, c.hours, c.rate)
		assert.InDelta(t, b.Subtotal+b.Tax, b.Total, 0.011)
		assert.InDelta(t, b.Subtotal*c.rate, b.Tax, 0.011)
	}
}

func TestFormatINR(t *testing.T) {
	assert.Equal(t, "₹0", FormatINR(0))
	assert.Equal(t, "₹1,000", FormatINR(1000))
	assert.Equal(t, "₹1,180", FormatINR(1180))
	assert.Equal(t, "₹1,00,000", FormatINR(100000))
	assert.Equal(t, "₹850.5", FormatINR(850.5))
}

func TestCalculate_DisplayStrings(t *testing.T) {
	b := Calculate(1000, 1)

	assert.Equal(t, "₹1,000", b.SubtotalDisplay)
	assert.Equal(t, "₹180", b.TaxDisplay)
	assert.Equal(t, "₹1,180", b.TotalDisplay)
}
