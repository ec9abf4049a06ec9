package repositories

import (
	"context"
	"time"

	"github.com/Aryaman129/play-nest-nagpur-sub001/internal/domain/entities"
)

// BookingRepository defines the interface for booking data operations
type BookingRepository interface {
	// Create creates a new booking
	Create(ctx context.Context, booking *entities.Booking) error

	// GetByID retrieves a booking by ID
	GetByID(ctx context.Context, id string) (*entities.Booking, error)

	// Update updates a booking
	Update(ctx context.Context, booking *entities.Booking) error

	// UpdateStatus moves a booking to a new status
	UpdateStatus(ctx context.Context, id string, status entities.BookingStatus) error

	// ListByUser retrieves bookings for a user
	ListByUser(ctx context.Context, userID string, filter BookingFilter) ([]*entities.Booking, error)

	// ListByTurf retrieves bookings for a turf
	ListByTurf(ctx context.Context, turfID string, filter BookingFilter) ([]*entities.Booking, error)
}

// BookingFilter defines filters for listing bookings
type BookingFilter struct {
	Status entities.BookingStatus
	From   *time.Time
	To     *time.Time
	Limit  int
	Offset int
}

// SlotRepository defines the interface for time slot data operations
type SlotRepository interface {
	// Create creates a new slot
	Create(ctx context.Context, slot *entities.TimeSlot) error

	// GetByID retrieves a slot by ID
	GetByID(ctx context.Context, id string) (*entities.TimeSlot, error)

	// ListByTurf retrieves slots for a turf within a time range
	ListByTurf(ctx context.Context, turfID string, from, to time.Time) ([]*entities.TimeSlot, error)

	// MarkAvailability flips a slot's availability flag
	MarkAvailability(ctx context.Context, id string, available bool) error
}

// WaitlistRepository defines the interface for waitlist operations
type WaitlistRepository interface {
	// Create stores a waitlist entry
	Create(ctx context.Context, entry *entities.WaitlistEntry) error

	// ListBySlot retrieves waitlist entries for a slot
	ListBySlot(ctx context.Context, slotID string) ([]*entities.WaitlistEntry, error)

	// Delete removes a waitlist entry
	Delete(ctx context.Context, id string) error
}
