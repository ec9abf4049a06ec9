package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"html/template"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/Aryaman129/play-nest-nagpur-sub001/internal/domain/entities"
	"github.com/Aryaman129/play-nest-nagpur-sub001/internal/domain/repositories"
	apperrors "github.com/Aryaman129/play-nest-nagpur-sub001/pkg/errors"
	"github.com/Aryaman129/play-nest-nagpur-sub001/pkg/pricing"
)

// ReceiptService generates receipts for confirmed bookings. Receipts are
// derived on demand: the breakdown is recomputed from the stored booking so
// the receipt always agrees with what was charged.
type ReceiptService struct {
	bookingRepo repositories.BookingRepository
	turfRepo    repositories.TurfRepository
}

// NewReceiptService creates a new receipt service
func NewReceiptService(bookingRepo repositories.BookingRepository, turfRepo repositories.TurfRepository) *ReceiptService {
	return &ReceiptService{
		bookingRepo: bookingRepo,
		turfRepo:    turfRepo,
	}
}

// Generate builds the receipt for a confirmed booking, on behalf of the user
// who made it. The stored booking price is GST-inclusive, so the hourly rate
// is recovered by backing the tax out before dividing by the window length.
func (s *ReceiptService) Generate(ctx context.Context, bookingID, userID string) (*entities.Receipt, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if booking.UserID != userID {
		return nil, apperrors.NewForbiddenError("booking belongs to another user")
	}

	if booking.Status != entities.BookingStatusConfirmed {
		return nil, apperrors.NewConflictError(fmt.Sprintf("booking %s is %s; receipts are only issued for confirmed bookings", bookingID, booking.Status))
	}

	turf, err := s.turfRepo.GetByID(ctx, booking.TurfID)
	if err != nil {
		return nil, err
	}

	hours := booking.DurationHours()
	if hours <= 0 {
		return nil, apperrors.NewValidationError("booking has a zero-length window")
	}

	subtotal := booking.Price / (1 + pricing.DefaultTaxRate)
	hourlyRate := math.Round(subtotal/hours*100) / 100

	breakdown := pricing.Calculate(hourlyRate, hours)

	receipt := &entities.Receipt{
		ReceiptNumber: fmt.Sprintf("PNR-%s", uuid.New().String()),
		BookingID:     booking.ID,
		TurfName:      turf.Name,
		CustomerName:  booking.CustomerName,
		CustomerEmail: booking.CustomerEmail,
		StartTime:     booking.StartTime,
		EndTime:       booking.EndTime,
		HourlyRate:    hourlyRate,
		Subtotal:      breakdown.Subtotal,
		Tax:           breakdown.Tax,
		Total:         breakdown.Total,
		TotalDisplay:  breakdown.TotalDisplay,
		GeneratedAt:   time.Now(),
	}

	payload, err := s.encode(receipt)
	if err != nil {
		return nil, err
	}
	receipt.Payload = payload

	return receipt, nil
}

// encode serializes the receipt to the base64 JSON artifact served for
// download
func (s *ReceiptService) encode(receipt *entities.Receipt) (string, error) {
	data, err := json.Marshal(receipt)
	if err != nil {
		return "", apperrors.NewInternalError("failed to encode receipt", err)
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

var receiptEmailTemplate = template.Must(template.New("receipt_email").Funcs(template.FuncMap{
	"inr": pricing.FormatINR,
	"when": func(t time.Time) string {
		return t.Format("Mon 2 Jan 2006, 3:04 PM")
	},
}).Parse(`<!DOCTYPE html>
<html>
<body style="font-family: sans-serif; color: #1a1a1a;">
  <h2>Booking confirmed 🎉</h2>
  <p>Hi {{.CustomerName}}, here is your receipt for <strong>{{.TurfName}}</strong>.</p>
  <p>Receipt no: {{.ReceiptNumber}}</p>
  <table cellpadding="6" style="border-collapse: collapse;">
    <tr><td>Slot</td><td>{{when .StartTime}} &ndash; {{when .EndTime}}</td></tr>
    <tr><td>Hourly rate</td><td>{{inr .HourlyRate}}</td></tr>
    <tr><td>Subtotal</td><td>{{inr .Subtotal}}</td></tr>
    <tr><td>GST (18%)</td><td>{{inr .Tax}}</td></tr>
    <tr><td><strong>Total paid</strong></td><td><strong>{{.TotalDisplay}}</strong></td></tr>
  </table>
  <p>See you on the turf!</p>
</body>
</html>
`))

// RenderEmail renders the HTML body of the receipt email. Delivery belongs to
// the notification layer; this service only produces the document.
func (s *ReceiptService) RenderEmail(receipt *entities.Receipt) (string, error) {
	var buf bytes.Buffer
	if err := receiptEmailTemplate.Execute(&buf, receipt); err != nil {
		return "", apperrors.NewInternalError("failed to render receipt email", err)
	}
	return buf.String(), nil
}
