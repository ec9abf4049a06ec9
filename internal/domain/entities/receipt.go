package entities

import "time"

// Receipt is derived from a confirmed booking at display/download time. It is
// not authoritative: the priced breakdown is recomputed from the booking and
// only the receipt number and encoded payload outlive the request.
type Receipt struct {
	ReceiptNumber string    `json:"receipt_number"`
	BookingID     string    `json:"booking_id"`
	TurfName      string    `json:"turf_name"`
	CustomerName  string    `json:"customer_name"`
	CustomerEmail string    `json:"customer_email"`
	StartTime     time.Time `json:"start_time"`
	EndTime       time.Time `json:"end_time"`
	HourlyRate    float64   `json:"hourly_rate"`
	Subtotal      float64   `json:"subtotal"`
	Tax           float64   `json:"tax"`
	Total         float64   `json:"total"`
	TotalDisplay  string    `json:"total_display"`
	GeneratedAt   time.Time `json:"generated_at"`

	// Base64-encoded JSON payload served as the downloadable artifact.
	Payload string `json:"payload,omitempty"`
}
