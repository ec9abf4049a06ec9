package services_test

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Aryaman129/play-nest-nagpur-sub001/internal/application/services"
	"github.com/Aryaman129/play-nest-nagpur-sub001/internal/domain/entities"
	apperrors "github.com/Aryaman129/play-nest-nagpur-sub001/pkg/errors"
)

func confirmedBooking() *entities.Booking {
	start := time.Date(2026, time.March, 14, 18, 0, 0, 0, time.Local)
	return &entities.Booking{
		ID:            "booking-1",
		UserID:        "user-1",
		TurfID:        "turf-1",
		SlotID:        "slot-1",
		StartTime:     start,
		EndTime:       start.Add(time.Hour),
		Price:         1180,
		Status:        entities.BookingStatusConfirmed,
		CustomerName:  "Rohan Deshmukh",
		CustomerEmail: "rohan@example.com",
	}
}

func TestReceiptService_Generate_BacksOutGSTFromStoredPrice(t *testing.T) {
	ctx := context.Background()

	bookingRepo := new(mockBookingRepo)
	turfRepo := new(mockTurfRepo)
	service := services.NewReceiptService(bookingRepo, turfRepo)

	bookingRepo.On("GetByID", mock.Anything, "booking-1").Return(confirmedBooking(), nil)
	turfRepo.On("GetByID", mock.Anything, "turf-1").Return(&entities.Turf{ID: "turf-1", Name: "Greenfield Arena"}, nil)

	receipt, err := service.Generate(ctx, "booking-1", "user-1")

	require.NoError(t, err)
	assert.Equal(t, 1000.0, receipt.HourlyRate)
	assert.Equal(t, 1000.0, receipt.Subtotal)
	assert.Equal(t, 180.0, receipt.Tax)
	assert.Equal(t, 1180.0, receipt.Total)
	assert.Equal(t, "₹1,180", receipt.TotalDisplay)
	assert.Equal(t, "Greenfield Arena", receipt.TurfName)
	assert.True(t, strings.HasPrefix(receipt.ReceiptNumber, "PNR-"))
}

func TestReceiptService_Generate_PayloadDecodesToReceipt(t *testing.T) {
	ctx := context.Background()

	bookingRepo := new(mockBookingRepo)
	turfRepo := new(mockTurfRepo)
	service := services.NewReceiptService(bookingRepo, turfRepo)

	bookingRepo.On("GetByID", mock.Anything, "booking-1").Return(confirmedBooking(), nil)
	turfRepo.On("GetByID", mock.Anything, "turf-1").Return(&entities.Turf{ID: "turf-1", Name: "Greenfield Arena"}, nil)

	receipt, err := service.Generate(ctx, "booking-1", "user-1")
	require.NoError(t, err)
	require.NotEmpty(t, receipt.Payload)

	raw, err := base64.StdEncoding.DecodeString(receipt.Payload)
	require.NoError(t, err)

	var decoded entities.Receipt
	require.NoError(t, json.Unmarshal(raw, &decoded))

	assert.Equal(t, receipt.ReceiptNumber, decoded.ReceiptNumber)
	assert.Equal(t, receipt.Total, decoded.Total)
	assert.Equal(t, receipt.TotalDisplay, decoded.TotalDisplay)
}

func TestReceiptService_Generate_UniqueReceiptNumbers(t *testing.T) {
	ctx := context.Background()

	bookingRepo := new(mockBookingRepo)
	turfRepo := new(mockTurfRepo)
	service := services.NewReceiptService(bookingRepo, turfRepo)

	bookingRepo.On("GetByID", mock.Anything, "booking-1").Return(confirmedBooking(), nil)
	turfRepo.On("GetByID", mock.Anything, "turf-1").Return(&entities.Turf{ID: "turf-1", Name: "Greenfield Arena"}, nil)

	first, err := service.Generate(ctx, "booking-1", "user-1")
	require.NoError(t, err)
	second, err := service.Generate(ctx, "booking-1", "user-1")
	require.NoError(t, err)

	assert.NotEqual(t, first.ReceiptNumber, second.ReceiptNumber)
}

func TestReceiptService_RenderEmail_IncludesBreakdown(t *testing.T) {
	ctx := context.Background()

	bookingRepo := new(mockBookingRepo)
	turfRepo := new(mockTurfRepo)
	service := services.NewReceiptService(bookingRepo, turfRepo)

	bookingRepo.On("GetByID", mock.Anything, "booking-1").Return(confirmedBooking(), nil)
	turfRepo.On("GetByID", mock.Anything, "turf-1").Return(&entities.Turf{ID: "turf-1", Name: "Greenfield Arena"}, nil)

	receipt, err := service.Generate(ctx, "booking-1", "user-1")
	require.NoError(t, err)

	body, err := service.RenderEmail(receipt)
	require.NoError(t, err)

	assert.Contains(t, body, "Greenfield Arena")
	assert.Contains(t, body, receipt.ReceiptNumber)
	assert.Contains(t, body, "Rohan Deshmukh")
	assert.Contains(t, body, "₹1,180")
	assert.Contains(t, body, "Sat 14 Mar 2026, 6:00 PM")
}

func TestReceiptService_Generate_RejectsAnotherUsersBooking(t *testing.T) {
	ctx := context.Background()

	bookingRepo := new(mockBookingRepo)
	service := services.NewReceiptService(bookingRepo, new(mockTurfRepo))

	bookingRepo.On("GetByID", mock.Anything, "booking-1").Return(confirmedBooking(), nil)

	_, err := service.Generate(ctx, "booking-1", "user-2")

	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrorTypeForbidden, appErr.Type)
}

func TestReceiptService_Generate_RejectsUnconfirmedBooking(t *testing.T) {
	ctx := context.Background()

	bookingRepo := new(mockBookingRepo)
	service := services.NewReceiptService(bookingRepo, new(mockTurfRepo))

	pending := confirmedBooking()
	pending.Status = entities.BookingStatusPending
	bookingRepo.On("GetByID", mock.Anything, "booking-1").Return(pending, nil)

	_, err := service.Generate(ctx, "booking-1", "user-1")

	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrorTypeConflict, appErr.Type)
}
