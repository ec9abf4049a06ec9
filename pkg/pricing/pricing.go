package pricing

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// DefaultTaxRate is the GST rate applied to turf bookings
const DefaultTaxRate = 0.18

var inr = message.NewPrinter(language.MustParse("en-IN"))

// Breakdown holds the priced components of a booking
type Breakdown struct {
	BasePrice float64 `json:"base_price"`
	Hours     float64 `json:"hours"`
	TaxRate   float64 `json:"tax_rate"`
	Subtotal  float64 `json:"subtotal"`
	Tax       float64 `json:"tax"`
	Total     float64 `json:"total"`

	SubtotalDisplay string `json:"subtotal_display"`
	TaxDisplay      string `json:"tax_display"`
	TotalDisplay    string `json:"total_display"`
}

// Calculate computes a booking total at the default GST rate
func Calculate(basePrice, hours float64) Breakdown {
	return CalculateWithRate(basePrice, hours, DefaultTaxRate)
}

// CalculateWithRate computes subtotal, tax and total for a booking.
// subtotal = basePrice * hours; tax = subtotal * rate; total = subtotal + tax.
func CalculateWithRate(basePrice, hours, rate float64) Breakdown {
	subtotal := round2(basePrice * hours)
	tax := round2(subtotal * rate)
	total := round2(subtotal + tax)

	return Breakdown{
		BasePrice:       basePrice,
		Hours:           hours,
		TaxRate:         rate,
		Subtotal:        subtotal,
		Tax:             tax,
		Total:           total,
		SubtotalDisplay: FormatINR(subtotal),
		TaxDisplay:      FormatINR(tax),
		TotalDisplay:    FormatINR(total),
	}
}

// FormatINR formats an amount as an Indian Rupee string with en-IN digit
// grouping and zero to two fractional digits.
func FormatINR(amount float64) string {
	return inr.Sprintf("₹%v", number.Decimal(amount,
		number.MinFractionDigits(0),
		number.MaxFractionDigits(2),
	))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
