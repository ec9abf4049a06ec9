package entities

import "time"

// TimeSlot is a bookable interval at a turf. Slots are immutable once issued
// by the availability source; booking flips IsAvailable through the slot
// repository, never through the entity.
type TimeSlot struct {
	ID          string    `json:"id" db:"id"`
	TurfID      string    `json:"turf_id" db:"turf_id"`
	StartTime   time.Time `json:"start_time" db:"start_time"`
	EndTime     time.Time `json:"end_time" db:"end_time"`
	Price       float64   `json:"price" db:"price"`
	IsAvailable bool      `json:"is_available" db:"is_available"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// DurationHours returns the slot length in hours
func (s *TimeSlot) DurationHours() float64 {
	return s.EndTime.Sub(s.StartTime).Hours()
}

// SlotSelection is the (date, slot) pair emitted when a user picks an
// available slot
type SlotSelection struct {
	TurfID string    `json:"turf_id"`
	Date   time.Time `json:"date"`
	Slot   *TimeSlot `json:"slot"`
}

// WaitlistEntry is a notify-me request for a currently unavailable slot
type WaitlistEntry struct {
	ID        string    `json:"id" db:"id"`
	SlotID    string    `json:"slot_id" db:"slot_id"`
	TurfID    string    `json:"turf_id" db:"turf_id"`
	UserID    string    `json:"user_id" db:"user_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
