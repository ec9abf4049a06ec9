package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/Aryaman129/play-nest-nagpur-sub001/internal/domain/entities"
	"github.com/Aryaman129/play-nest-nagpur-sub001/internal/domain/providers"
	"github.com/Aryaman129/play-nest-nagpur-sub001/internal/domain/repositories"
	apperrors "github.com/Aryaman129/play-nest-nagpur-sub001/pkg/errors"
	"github.com/Aryaman129/play-nest-nagpur-sub001/pkg/pricing"
)

// BookingService handles slot selection and the booking lifecycle
type BookingService struct {
	bookingRepo  repositories.BookingRepository
	slotRepo     repositories.SlotRepository
	waitlistRepo repositories.WaitlistRepository
	turfRepo     repositories.TurfRepository
	eventBus     providers.EventBus
}

// NewBookingService creates a new booking service
func NewBookingService(
	bookingRepo repositories.BookingRepository,
	slotRepo repositories.SlotRepository,
	waitlistRepo repositories.WaitlistRepository,
	turfRepo repositories.TurfRepository,
	eventBus providers.EventBus,
) *BookingService {
	return &BookingService{
		bookingRepo:  bookingRepo,
		slotRepo:     slotRepo,
		waitlistRepo: waitlistRepo,
		turfRepo:     turfRepo,
		eventBus:     eventBus,
	}
}

// AvailableSlots lists a turf's slots for the given date
func (s *BookingService) AvailableSlots(ctx context.Context, turfID string, date time.Time) ([]*entities.TimeSlot, error) {
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	dayEnd := dayStart.Add(24 * time.Hour)
	return s.slotRepo.ListByTurf(ctx, turfID, dayStart, dayEnd)
}

// SelectSlot resolves a slot pick. Unavailable slots are rejected with a
// conflict error so the caller can offer the waitlist instead; the selection
// is only ever produced for a slot that can actually be booked.
func (s *BookingService) SelectSlot(ctx context.Context, turfID, slotID string, date time.Time) (*entities.SlotSelection, error) {
	slot, err := s.slotRepo.GetByID(ctx, slotID)
	if err != nil {
		return nil, err
	}

	if slot.TurfID != turfID {
		return nil, apperrors.NewValidationError("slot does not belong to the requested turf")
	}

	if !slot.IsAvailable {
		return nil, apperrors.NewConflictError("slot is already booked; join the waitlist to be notified if it frees up")
	}

	return &entities.SlotSelection{
		TurfID: turfID,
		Date:   date,
		Slot:   slot,
	}, nil
}

// JoinWaitlist records a notify-me request for an unavailable slot. Joining
// the waitlist for an open slot is rejected: the user should just book it.
func (s *BookingService) JoinWaitlist(ctx context.Context, turfID, slotID, userID string) (*entities.WaitlistEntry, error) {
	slot, err := s.slotRepo.GetByID(ctx, slotID)
	if err != nil {
		return nil, err
	}

	if slot.IsAvailable {
		return nil, apperrors.NewConflictError("slot is available; book it directly instead of joining the waitlist")
	}

	entry := &entities.WaitlistEntry{
		ID:        uuid.New().String(),
		SlotID:    slotID,
		TurfID:    turfID,
		UserID:    userID,
		CreatedAt: time.Now(),
	}

	if err := s.waitlistRepo.Create(ctx, entry); err != nil {
		return nil, err
	}

	s.publish(ctx, entities.NewBookingEvent(turfID, "", userID, entities.BookingEventWaitlistJoined, map[string]interface{}{
		"slot_id": slotID,
	}))

	return entry, nil
}

// Create books an available slot. The price is computed from the slot price
// and window length with GST; the slot is taken before the booking row is
// written so double-booking surfaces as a conflict.
func (s *BookingService) Create(ctx context.Context, booking *entities.Booking) (*entities.Booking, error) {
	if booking.StartTime.Before(time.Now()) {
		return nil, apperrors.NewValidationError("booking start time must be in the future")
	}

	if !entities.ValidPaymentMethod(booking.PaymentMethod) {
		return nil, apperrors.NewValidationError(fmt.Sprintf("invalid payment method: %s", booking.PaymentMethod))
	}

	selection, err := s.SelectSlot(ctx, booking.TurfID, booking.SlotID, booking.StartTime)
	if err != nil {
		return nil, err
	}

	slot := selection.Slot
	booking.StartTime = slot.StartTime
	booking.EndTime = slot.EndTime

	breakdown := pricing.Calculate(slot.Price, slot.DurationHours())
	booking.Price = breakdown.Total

	if err := booking.Validate(); err != nil {
		return nil, err
	}

	now := time.Now()
	if booking.ID == "" {
		booking.ID = uuid.New().String()
	}
	booking.Status = entities.BookingStatusPending
	booking.CreatedAt = now
	booking.UpdatedAt = now

	if err := s.slotRepo.MarkAvailability(ctx, slot.ID, false); err != nil {
		return nil, err
	}

	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		// Put the slot back; the booking row never existed
		if relErr := s.slotRepo.MarkAvailability(ctx, slot.ID, true); relErr != nil {
			log.Printf("Failed to release slot %s after booking error: %v", slot.ID, relErr)
		}
		return nil, err
	}

	s.publish(ctx, entities.NewBookingEvent(booking.TurfID, booking.ID, booking.UserID, entities.BookingEventCreated, map[string]interface{}{
		"slot_id": booking.SlotID,
		"total":   booking.Price,
	}))

	return booking, nil
}

// GetByID retrieves a booking on behalf of the user who made it
func (s *BookingService) GetByID(ctx context.Context, id, userID string) (*entities.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if booking.UserID != userID {
		return nil, apperrors.NewForbiddenError("booking belongs to another user")
	}

	return booking, nil
}

// Confirm moves a booking to confirmed after payment and issues a check-in
// token
func (s *BookingService) Confirm(ctx context.Context, id string) (*entities.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := booking.TransitionTo(entities.BookingStatusConfirmed); err != nil {
		return nil, err
	}

	token := uuid.New().String()
	booking.CheckInToken = &token

	if err := s.bookingRepo.Update(ctx, booking); err != nil {
		return nil, err
	}

	s.publish(ctx, entities.NewBookingEvent(booking.TurfID, booking.ID, booking.UserID, entities.BookingEventConfirmed, nil))

	return booking, nil
}

// Cancel cancels a booking on behalf of the user who made it, releases its
// slot and pings the slot's waitlist
func (s *BookingService) Cancel(ctx context.Context, id, userID string) (*entities.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if booking.UserID != userID {
		return nil, apperrors.NewForbiddenError("booking belongs to another user")
	}

	if err := booking.TransitionTo(entities.BookingStatusCancelled); err != nil {
		return nil, err
	}

	if err := s.bookingRepo.Update(ctx, booking); err != nil {
		return nil, err
	}

	if err := s.slotRepo.MarkAvailability(ctx, booking.SlotID, true); err != nil {
		log.Printf("Failed to release slot %s for cancelled booking %s: %v", booking.SlotID, booking.ID, err)
	}

	s.publish(ctx, entities.NewBookingEvent(booking.TurfID, booking.ID, booking.UserID, entities.BookingEventCancelled, nil))

	s.notifyWaitlist(ctx, booking)

	return booking, nil
}

// ListByUser retrieves a user's bookings
func (s *BookingService) ListByUser(ctx context.Context, userID string, filter repositories.BookingFilter) ([]*entities.Booking, error) {
	return s.bookingRepo.ListByUser(ctx, userID, filter)
}

// ListByTurf retrieves a turf's bookings
func (s *BookingService) ListByTurf(ctx context.Context, turfID string, filter repositories.BookingFilter) ([]*entities.Booking, error) {
	return s.bookingRepo.ListByTurf(ctx, turfID, filter)
}

// notifyWaitlist publishes a slot_released event to everyone waiting on the
// freed slot and clears their entries
func (s *BookingService) notifyWaitlist(ctx context.Context, booking *entities.Booking) {
	entries, err := s.waitlistRepo.ListBySlot(ctx, booking.SlotID)
	if err != nil {
		log.Printf("Failed to load waitlist for slot %s: %v", booking.SlotID, err)
		return
	}

	for _, entry := range entries {
		s.publish(ctx, entities.NewBookingEvent(booking.TurfID, "", entry.UserID, entities.BookingEventSlotReleased, map[string]interface{}{
			"slot_id":    booking.SlotID,
			"start_time": booking.StartTime,
			"end_time":   booking.EndTime,
		}))

		if err := s.waitlistRepo.Delete(ctx, entry.ID); err != nil {
			log.Printf("Failed to remove waitlist entry %s: %v", entry.ID, err)
		}
	}
}

// publish fans an event out to the firehose, turf and user channels
func (s *BookingService) publish(ctx context.Context, event *entities.BookingEvent) {
	if s.eventBus == nil {
		return
	}

	channels := []string{providers.EventChannelBookingUpdates, providers.GetTurfChannel(event.TurfID)}
	if event.UserID != "" {
		channels = append(channels, providers.GetUserChannel(event.UserID))
	}

	for _, channel := range channels {
		if err := s.eventBus.Publish(ctx, channel, event); err != nil {
			log.Printf("Failed to publish %s event to %s: %v", event.EventType, channel, err)
		}
	}
}
