package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/Aryaman129/play-nest-nagpur-sub001/internal/domain/entities"
	"github.com/Aryaman129/play-nest-nagpur-sub001/internal/domain/providers"
	"github.com/Aryaman129/play-nest-nagpur-sub001/internal/domain/repositories"
	apperrors "github.com/Aryaman129/play-nest-nagpur-sub001/pkg/errors"
	"github.com/Aryaman129/play-nest-nagpur-sub001/pkg/pricing"
)

// WhatsAppSender sends customer-facing booking messages
type WhatsAppSender interface {
	SendBookingConfirmation(to, turfName, window, totalDisplay string) (string, error)
}

// OwnerAlerter pushes booking alerts to the turf owner
type OwnerAlerter interface {
	NotifyBooking(turfName, event, window, totalDisplay string) error
}

// NotificationService consumes booking events and turns them into in-app
// notifications plus best-effort outbound messages. Channel failures are
// logged, never propagated: a dead WhatsApp integration must not block
// bookings.
type NotificationService struct {
	notificationRepo repositories.NotificationRepository
	bookingRepo      repositories.BookingRepository
	turfRepo         repositories.TurfRepository
	eventBus         providers.EventBus
	whatsapp         WhatsAppSender
	ownerAlerter     OwnerAlerter
}

// NewNotificationService creates a new notification service
func NewNotificationService(
	notificationRepo repositories.NotificationRepository,
	bookingRepo repositories.BookingRepository,
	turfRepo repositories.TurfRepository,
	eventBus providers.EventBus,
	whatsapp WhatsAppSender,
	ownerAlerter OwnerAlerter,
) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
		bookingRepo:      bookingRepo,
		turfRepo:         turfRepo,
		eventBus:         eventBus,
		whatsapp:         whatsapp,
		ownerAlerter:     ownerAlerter,
	}
}

// Run subscribes to the booking firehose and processes events until the
// context is cancelled
func (s *NotificationService) Run(ctx context.Context) error {
	events, err := s.eventBus.Subscribe(ctx, providers.EventChannelBookingUpdates)
	if err != nil {
		return fmt.Errorf("failed to subscribe to booking events: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-events:
			if !ok {
				return nil
			}
			s.HandleEvent(ctx, event)
		}
	}
}

// HandleEvent converts a single booking event into notifications
func (s *NotificationService) HandleEvent(ctx context.Context, event *entities.BookingEvent) {
	title, message, category := s.render(ctx, event)
	if title == "" {
		return
	}

	if event.UserID != "" {
		notification := &entities.Notification{
			ID:        uuid.New().String(),
			UserID:    event.UserID,
			Category:  category,
			Title:     title,
			Message:   message,
			CreatedAt: time.Now(),
		}
		if err := s.notificationRepo.Create(ctx, notification); err != nil {
			log.Warn().Err(err).Str("event", string(event.EventType)).Msg("failed to store notification")
		}
	}

	if event.EventType == entities.BookingEventConfirmed {
		s.sendConfirmation(ctx, event)
	}
}

// ListByUser retrieves a user's notifications, newest first
func (s *NotificationService) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entities.Notification, error) {
	return s.notificationRepo.ListByUser(ctx, userID, limit, offset)
}

// CountUnread counts a user's unread notifications
func (s *NotificationService) CountUnread(ctx context.Context, userID string) (int, error) {
	return s.notificationRepo.CountUnread(ctx, userID)
}

// MarkRead marks one of the user's notifications as read
func (s *NotificationService) MarkRead(ctx context.Context, id, userID string) error {
	if err := s.authorize(ctx, id, userID); err != nil {
		return err
	}
	return s.notificationRepo.MarkRead(ctx, id)
}

// MarkAllRead marks all of a user's notifications as read
func (s *NotificationService) MarkAllRead(ctx context.Context, userID string) error {
	return s.notificationRepo.MarkAllRead(ctx, userID)
}

// Delete removes one of the user's notifications
func (s *NotificationService) Delete(ctx context.Context, id, userID string) error {
	if err := s.authorize(ctx, id, userID); err != nil {
		return err
	}
	return s.notificationRepo.Delete(ctx, id)
}

// authorize rejects operations on notifications addressed to someone else
func (s *NotificationService) authorize(ctx context.Context, id, userID string) error {
	notification, err := s.notificationRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if notification.UserID != userID {
		return apperrors.NewForbiddenError("notification belongs to another user")
	}
	return nil
}

func (s *NotificationService) render(ctx context.Context, event *entities.BookingEvent) (title, message string, category entities.NotificationCategory) {
	turfName := s.turfName(ctx, event.TurfID)

	switch event.EventType {
	case entities.BookingEventCreated:
		return "Booking received", fmt.Sprintf("Your booking at %s is awaiting payment.", turfName), entities.CategoryBooking
	case entities.BookingEventConfirmed:
		return "Booking confirmed", fmt.Sprintf("You're all set at %s. Show your check-in token at the venue.", turfName), entities.CategoryBooking
	case entities.BookingEventCancelled:
		return "Booking cancelled", fmt.Sprintf("Your booking at %s was cancelled.", turfName), entities.CategoryBooking
	case entities.BookingEventPaymentSuccess:
		return "Payment successful", fmt.Sprintf("Payment for your booking at %s went through.", turfName), entities.CategoryPayment
	case entities.BookingEventPaymentFailed:
		return "Payment failed", fmt.Sprintf("Payment for your booking at %s did not go through. You can try again.", turfName), entities.CategoryPayment
	case entities.BookingEventSlotReleased:
		return "Slot available", fmt.Sprintf("A slot you were waiting for at %s just opened up.", turfName), entities.CategoryReminder
	case entities.BookingEventWaitlistJoined:
		return "Waitlist joined", fmt.Sprintf("We'll let you know if your slot at %s frees up.", turfName), entities.CategorySystem
	default:
		return "", "", ""
	}
}

func (s *NotificationService) sendConfirmation(ctx context.Context, event *entities.BookingEvent) {
	if event.BookingID == "" {
		return
	}

	booking, err := s.bookingRepo.GetByID(ctx, event.BookingID)
	if err != nil {
		log.Warn().Err(err).Str("booking_id", event.BookingID).Msg("failed to load booking for confirmation message")
		return
	}

	turfName := s.turfName(ctx, booking.TurfID)
	window := formatWindow(booking.StartTime, booking.EndTime)
	totalDisplay := pricing.FormatINR(booking.Price)

	if s.whatsapp != nil && booking.CustomerPhone != "" {
		if _, err := s.whatsapp.SendBookingConfirmation(booking.CustomerPhone, turfName, window, totalDisplay); err != nil {
			log.Warn().Err(err).Str("booking_id", booking.ID).Msg("failed to send WhatsApp confirmation")
		}
	}

	if s.ownerAlerter != nil {
		if err := s.ownerAlerter.NotifyBooking(turfName, "New booking", window, totalDisplay); err != nil {
			log.Warn().Err(err).Str("booking_id", booking.ID).Msg("failed to alert owner")
		}
	}
}

func (s *NotificationService) turfName(ctx context.Context, turfID string) string {
	if turfID == "" {
		return "the turf"
	}
	turf, err := s.turfRepo.GetByID(ctx, turfID)
	if err != nil {
		return "the turf"
	}
	return turf.Name
}

func formatWindow(start, end time.Time) string {
	return fmt.Sprintf("%s, %s - %s",
		start.Format("Mon 2 Jan 2006"),
		start.Format("3:04 PM"),
		end.Format("3:04 PM"),
	)
}
