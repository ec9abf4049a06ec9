package entities

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/Aryaman129/play-nest-nagpur-sub001/pkg/errors"
)

func validBooking() *Booking {
	start := time.Date(2024, 1, 1, 18, 0, 0, 0, time.UTC)
	return &Booking{
		ID:          "bkg-1",
		TurfID:      "turf-1",
		SlotID:      "slot-1",
		StartTime:   start,
		EndTime:     start.Add(time.Hour),
		Price:       1180,
		AdvancePaid: 300,
		Status:      BookingStatusPending,
	}
}

func TestBookingValidate(t *testing.T) {
	b := validBooking()
	require.NoError(t, b.Validate())

	b = validBooking()
	b.EndTime = b.StartTime
	err := b.Validate()
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrorTypeValidation, appErr.Type)

	b = validBooking()
	b.AdvancePaid = b.Price + 1
	assert.Error(t, b.Validate())

	b = validBooking()
	b.AdvancePaid = b.Price
	assert.NoError(t, b.Validate())
}

func TestBookingTransitions_ForwardOnly(t *testing.T) {
	b := validBooking()

	require.NoError(t, b.TransitionTo(BookingStatusConfirmed))
	assert.Equal(t, BookingStatusConfirmed, b.Status)

	// Backward transition is rejected.
	err := b.TransitionTo(BookingStatusPending)
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrorTypeConflict, appErr.Type)
	assert.Equal(t, BookingStatusConfirmed, b.Status)

	require.NoError(t, b.TransitionTo(BookingStatusCancelled))

	// Cancelled is terminal.
	assert.Error(t, b.TransitionTo(BookingStatusConfirmed))
	assert.Error(t, b.TransitionTo(BookingStatusPending))
}

func TestBookingTransitions_PendingMayCancel(t *testing.T) {
	b := validBooking()
	assert.NoError(t, b.TransitionTo(BookingStatusCancelled))
}

func TestBookingDurationHours(t *testing.T) {
	b := validBooking()
	assert.InDelta(t, 1.0, b.DurationHours(), 0.0001)
}
