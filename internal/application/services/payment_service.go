package services

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/Aryaman129/play-nest-nagpur-sub001/internal/domain/entities"
	"github.com/Aryaman129/play-nest-nagpur-sub001/internal/domain/providers"
	"github.com/Aryaman129/play-nest-nagpur-sub001/internal/domain/repositories"
	apperrors "github.com/Aryaman129/play-nest-nagpur-sub001/pkg/errors"
)

// CompletionFunc is invoked once a payment settles
type CompletionFunc func(ctx context.Context, details *entities.PaymentDetails)

// PaymentSession tracks one booking's walk through the payment flow
type PaymentSession struct {
	BookingID string                 `json:"booking_id"`
	UserID    string                 `json:"-"`
	State     entities.PaymentState  `json:"state"`
	Method    entities.PaymentMethod `json:"method,omitempty"`
	OrderID   string                 `json:"order_id,omitempty"`
	ChargeID  string                 `json:"charge_id,omitempty"`
	Amount    float64                `json:"amount"`
	Error     string                 `json:"error,omitempty"`
	UpdatedAt time.Time              `json:"updated_at"`
}

// Allowed state moves. Failed loops back to method selection through Retry;
// success is terminal.
var paymentTransitions = map[entities.PaymentState][]entities.PaymentState{
	entities.PaymentStateMethods:    {entities.PaymentStateProcessing},
	entities.PaymentStateProcessing: {entities.PaymentStateSuccess, entities.PaymentStateFailed},
	entities.PaymentStateFailed:     {entities.PaymentStateMethods},
	entities.PaymentStateSuccess:    {},
}

// PaymentService drives the payment flow: method selection, processing
// through the gateway, and the success/failed outcomes. Sessions are held in
// memory; a payment attempt never outlives the process.
type PaymentService struct {
	provider    providers.PaymentProvider
	bookingRepo repositories.BookingRepository
	eventBus    providers.EventBus
	callTimeout time.Duration
	onComplete  CompletionFunc

	mu       sync.RWMutex
	sessions map[string]*PaymentSession
}

// NewPaymentService creates a new payment service
func NewPaymentService(
	provider providers.PaymentProvider,
	bookingRepo repositories.BookingRepository,
	eventBus providers.EventBus,
	callTimeout time.Duration,
) *PaymentService {
	if callTimeout <= 0 {
		callTimeout = 15 * time.Second
	}
	return &PaymentService{
		provider:    provider,
		bookingRepo: bookingRepo,
		eventBus:    eventBus,
		callTimeout: callTimeout,
		sessions:    make(map[string]*PaymentSession),
	}
}

// OnCompletion registers the callback fired after a successful payment
func (s *PaymentService) OnCompletion(fn CompletionFunc) {
	s.onComplete = fn
}

// Start opens a payment session for a pending booking at method selection.
// Only the user who made the booking may pay for it.
func (s *PaymentService) Start(ctx context.Context, bookingID, userID string) (*PaymentSession, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if booking.UserID != userID {
		return nil, apperrors.NewForbiddenError("booking belongs to another user")
	}

	if booking.Status != entities.BookingStatusPending {
		return nil, apperrors.NewConflictError(fmt.Sprintf("booking %s is %s, not awaiting payment", bookingID, booking.Status))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.sessions[bookingID]; ok && existing.State != entities.PaymentStateFailed {
		return existing.clone(), nil
	}

	session := &PaymentSession{
		BookingID: bookingID,
		UserID:    booking.UserID,
		State:     entities.PaymentStateMethods,
		Amount:    booking.Price,
		UpdatedAt: time.Now(),
	}
	s.sessions[bookingID] = session

	return session.clone(), nil
}

// Get returns the current session for a booking, if it belongs to the caller
func (s *PaymentService) Get(bookingID, userID string) (*PaymentSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[bookingID]
	if !ok {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("no payment session for booking %s", bookingID))
	}
	if session.UserID != userID {
		return nil, apperrors.NewForbiddenError("payment session belongs to another user")
	}
	return session.clone(), nil
}

// Pay runs the gateway sequence for the chosen method: create order, charge,
// verify. Each call gets its own timeout so a stuck gateway fails the attempt
// instead of hanging the flow. Any rejection lands the session in failed.
func (s *PaymentService) Pay(ctx context.Context, bookingID, userID string, method entities.PaymentMethod) (*PaymentSession, error) {
	if !entities.ValidPaymentMethod(method) {
		return nil, apperrors.NewValidationError(fmt.Sprintf("invalid payment method: %s", method))
	}

	if _, err := s.Get(bookingID, userID); err != nil {
		return nil, err
	}

	if err := s.transition(bookingID, entities.PaymentStateProcessing, func(session *PaymentSession) {
		session.Method = method
		session.Error = ""
	}); err != nil {
		return nil, err
	}

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		s.fail(ctx, bookingID, err)
		return s.Get(bookingID, userID)
	}

	order, err := s.createOrder(ctx, booking)
	if err != nil {
		s.fail(ctx, bookingID, err)
		return s.Get(bookingID, userID)
	}

	s.update(bookingID, func(session *PaymentSession) {
		session.OrderID = order.ID
	})

	charge, err := s.charge(ctx, order, method)
	if err != nil {
		s.fail(ctx, bookingID, err)
		return s.Get(bookingID, userID)
	}

	s.update(bookingID, func(session *PaymentSession) {
		session.ChargeID = charge.ID
	})

	if err := s.verify(ctx, charge); err != nil {
		s.fail(ctx, bookingID, err)
		return s.Get(bookingID, userID)
	}

	if err := s.transition(bookingID, entities.PaymentStateSuccess, nil); err != nil {
		return nil, err
	}

	s.publish(ctx, booking, entities.BookingEventPaymentSuccess, map[string]interface{}{
		"order_id":  order.ID,
		"charge_id": charge.ID,
	})

	if s.onComplete != nil {
		s.onComplete(ctx, &entities.PaymentDetails{
			BookingID:   bookingID,
			OrderID:     order.ID,
			ChargeID:    charge.ID,
			Method:      method,
			Amount:      order.Amount,
			Currency:    order.Currency,
			CompletedAt: time.Now(),
		})
	}

	return s.Get(bookingID, userID)
}

// Retry moves a failed session back to method selection
func (s *PaymentService) Retry(ctx context.Context, bookingID, userID string) (*PaymentSession, error) {
	if _, err := s.Get(bookingID, userID); err != nil {
		return nil, err
	}

	if err := s.transition(bookingID, entities.PaymentStateMethods, func(session *PaymentSession) {
		session.Method = ""
		session.OrderID = ""
		session.ChargeID = ""
		session.Error = ""
	}); err != nil {
		return nil, err
	}
	return s.Get(bookingID, userID)
}

func (s *PaymentService) createOrder(ctx context.Context, booking *entities.Booking) (*entities.PaymentOrder, error) {
	callCtx, cancel := context.WithTimeout(ctx, s.callTimeout)
	defer cancel()
	return s.provider.CreateOrder(callCtx, booking.ID, booking.Price, "INR")
}

func (s *PaymentService) charge(ctx context.Context, order *entities.PaymentOrder, method entities.PaymentMethod) (*entities.PaymentCharge, error) {
	callCtx, cancel := context.WithTimeout(ctx, s.callTimeout)
	defer cancel()
	return s.provider.Charge(callCtx, order, method)
}

func (s *PaymentService) verify(ctx context.Context, charge *entities.PaymentCharge) error {
	callCtx, cancel := context.WithTimeout(ctx, s.callTimeout)
	defer cancel()
	return s.provider.Verify(callCtx, charge)
}

func (s *PaymentService) fail(ctx context.Context, bookingID string, cause error) {
	if err := s.transition(bookingID, entities.PaymentStateFailed, func(session *PaymentSession) {
		session.Error = cause.Error()
	}); err != nil {
		log.Printf("Failed to mark payment failed for booking %s: %v", bookingID, err)
		return
	}

	if booking, err := s.bookingRepo.GetByID(ctx, bookingID); err == nil {
		s.publish(ctx, booking, entities.BookingEventPaymentFailed, map[string]interface{}{
			"error": cause.Error(),
		})
	}
}

func (s *PaymentService) transition(bookingID string, target entities.PaymentState, apply func(*PaymentSession)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[bookingID]
	if !ok {
		return apperrors.NewNotFoundError(fmt.Sprintf("no payment session for booking %s", bookingID))
	}

	allowed := false
	for _, next := range paymentTransitions[session.State] {
		if next == target {
			allowed = true
			break
		}
	}
	if !allowed {
		return apperrors.NewConflictError(fmt.Sprintf("cannot move payment from %s to %s", session.State, target))
	}

	session.State = target
	session.UpdatedAt = time.Now()
	if apply != nil {
		apply(session)
	}

	return nil
}

func (s *PaymentService) update(bookingID string, apply func(*PaymentSession)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if session, ok := s.sessions[bookingID]; ok {
		apply(session)
		session.UpdatedAt = time.Now()
	}
}

func (s *PaymentService) publish(ctx context.Context, booking *entities.Booking, eventType entities.BookingEventType, payload map[string]interface{}) {
	if s.eventBus == nil {
		return
	}

	event := entities.NewBookingEvent(booking.TurfID, booking.ID, booking.UserID, eventType, payload)
	channels := []string{providers.EventChannelBookingUpdates, providers.GetTurfChannel(booking.TurfID), providers.GetUserChannel(booking.UserID)}
	for _, channel := range channels {
		if err := s.eventBus.Publish(ctx, channel, event); err != nil {
			log.Printf("Failed to publish %s event to %s: %v", eventType, channel, err)
		}
	}
}

func (p *PaymentSession) clone() *PaymentSession {
	copied := *p
	return &copied
}
