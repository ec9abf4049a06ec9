package entities

import (
	"time"

	"github.com/google/uuid"
)

// BookingEventType represents the type of booking event
type BookingEventType string

const (
	BookingEventCreated        BookingEventType = "booking_created"
	BookingEventConfirmed      BookingEventType = "booking_confirmed"
	BookingEventCancelled      BookingEventType = "booking_cancelled"
	BookingEventPaymentSuccess BookingEventType = "payment_success"
	BookingEventPaymentFailed  BookingEventType = "payment_failed"
	BookingEventSlotReleased   BookingEventType = "slot_released"
	BookingEventWaitlistJoined BookingEventType = "waitlist_joined"
)

// BookingEvent is a real-time update published on the event bus
type BookingEvent struct {
	ID        string                 `json:"id"`
	TurfID    string                 `json:"turf_id"`
	BookingID string                 `json:"booking_id,omitempty"`
	UserID    string                 `json:"user_id,omitempty"`
	EventType BookingEventType       `json:"event_type"`
	Timestamp time.Time              `json:"timestamp"`
	Payload   map[string]interface{} `json:"payload,omitempty"`
}

// NewBookingEvent creates a booking event with a collision-resistant ID
func NewBookingEvent(turfID, bookingID, userID string, eventType BookingEventType, payload map[string]interface{}) *BookingEvent {
	return &BookingEvent{
		ID:        uuid.New().String(),
		TurfID:    turfID,
		BookingID: bookingID,
		UserID:    userID,
		EventType: eventType,
		Timestamp: time.Now(),
		Payload:   payload,
	}
}
