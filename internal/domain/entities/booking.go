package entities

import (
	"time"

	apperrors "github.com/Aryaman129/play-nest-nagpur-sub001/pkg/errors"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// Forward-only transitions: pending -> confirmed -> cancelled. Cancelled is
// terminal and pending may cancel directly.
var allowedTransitions = map[BookingStatus][]BookingStatus{
	BookingStatusPending:   {BookingStatusConfirmed, BookingStatusCancelled},
	BookingStatusConfirmed: {BookingStatusCancelled},
	BookingStatusCancelled: {},
}

// Booking represents a turf reservation
type Booking struct {
	ID            string        `json:"id" db:"id"`
	UserID        string        `json:"user_id" db:"user_id"`
	TurfID        string        `json:"turf_id" db:"turf_id"`
	SlotID        string        `json:"slot_id" db:"slot_id"`
	StartTime     time.Time     `json:"start_time" db:"start_time"`
	EndTime       time.Time     `json:"end_time" db:"end_time"`
	Price         float64       `json:"price" db:"price"`
	AdvancePaid   float64       `json:"advance_paid" db:"advance_paid"`
	PaymentMethod PaymentMethod `json:"payment_method" db:"payment_method"`
	Status        BookingStatus `json:"status" db:"status"`
	CustomerName  string        `json:"customer_name" db:"customer_name"`
	CustomerEmail string        `json:"customer_email" db:"customer_email"`
	CustomerPhone string        `json:"customer_phone" db:"customer_phone"`
	CheckInToken  *string       `json:"check_in_token,omitempty" db:"check_in_token"`
	CreatedAt     time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at" db:"updated_at"`
}

// Validate checks the booking invariants: end after start and advance not
// exceeding the total price
func (b *Booking) Validate() error {
	if !b.EndTime.After(b.StartTime) {
		return apperrors.NewValidationError("booking end time must be after start time")
	}
	if b.AdvancePaid < 0 {
		return apperrors.NewValidationError("advance paid cannot be negative")
	}
	if b.AdvancePaid > b.Price {
		return apperrors.NewValidationError("advance paid cannot exceed booking price")
	}
	return nil
}

// CanTransitionTo reports whether moving to the target status is allowed
func (b *Booking) CanTransitionTo(target BookingStatus) bool {
	for _, s := range allowedTransitions[b.Status] {
		if s == target {
			return true
		}
	}
	return false
}

// TransitionTo moves the booking to the target status or fails with a
// conflict error when the transition would go backward
func (b *Booking) TransitionTo(target BookingStatus) error {
	if !b.CanTransitionTo(target) {
		return apperrors.NewConflictError("invalid booking status transition from " + string(b.Status) + " to " + string(target))
	}
	b.Status = target
	b.UpdatedAt = time.Now()
	return nil
}

// DurationHours returns the booked window length in hours
func (b *Booking) DurationHours() float64 {
	return b.EndTime.Sub(b.StartTime).Hours()
}
