package services_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/Aryaman129/play-nest-nagpur-sub001/internal/domain/entities"
	"github.com/Aryaman129/play-nest-nagpur-sub001/internal/domain/repositories"
)

type mockTurfRepo struct {
	mock.Mock
}

func (m *mockTurfRepo) Create(ctx context.Context, turf *entities.Turf) error {
	return m.Called(ctx, turf).Error(0)
}

func (m *mockTurfRepo) GetByID(ctx context.Context, id string) (*entities.Turf, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Turf), args.Error(1)
}

func (m *mockTurfRepo) GetByIDs(ctx context.Context, ids []string) ([]*entities.Turf, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Turf), args.Error(1)
}

func (m *mockTurfRepo) Update(ctx context.Context, turf *entities.Turf) error {
	return m.Called(ctx, turf).Error(0)
}

func (m *mockTurfRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockTurfRepo) List(ctx context.Context, filter repositories.TurfFilter) ([]*entities.Turf, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Turf), args.Error(1)
}

func (m *mockTurfRepo) ListByOwner(ctx context.Context, ownerID string) ([]*entities.Turf, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Turf), args.Error(1)
}

func (m *mockTurfRepo) Search(ctx context.Context, params repositories.SearchParams) ([]*entities.Turf, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Turf), args.Error(1)
}

type mockSearchRepo struct {
	mock.Mock
}

func (m *mockSearchRepo) Search(ctx context.Context, params repositories.SearchParams) ([]*entities.Turf, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Turf), args.Error(1)
}

func (m *mockSearchRepo) Index(ctx context.Context, turf *entities.Turf) error {
	return m.Called(ctx, turf).Error(0)
}

func (m *mockSearchRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type mockBookingRepo struct {
	mock.Mock
}

func (m *mockBookingRepo) Create(ctx context.Context, booking *entities.Booking) error {
	return m.Called(ctx, booking).Error(0)
}

func (m *mockBookingRepo) GetByID(ctx context.Context, id string) (*entities.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Booking), args.Error(1)
}

func (m *mockBookingRepo) Update(ctx context.Context, booking *entities.Booking) error {
	return m.Called(ctx, booking).Error(0)
}

func (m *mockBookingRepo) UpdateStatus(ctx context.Context, id string, status entities.BookingStatus) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *mockBookingRepo) ListByUser(ctx context.Context, userID string, filter repositories.BookingFilter) ([]*entities.Booking, error) {
	args := m.Called(ctx, userID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Booking), args.Error(1)
}

func (m *mockBookingRepo) ListByTurf(ctx context.Context, turfID string, filter repositories.BookingFilter) ([]*entities.Booking, error) {
	args := m.Called(ctx, turfID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Booking), args.Error(1)
}

type mockSlotRepo struct {
	mock.Mock
}

func (m *mockSlotRepo) Create(ctx context.Context, slot *entities.TimeSlot) error {
	return m.Called(ctx, slot).Error(0)
}

func (m *mockSlotRepo) GetByID(ctx context.Context, id string) (*entities.TimeSlot, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.TimeSlot), args.Error(1)
}

func (m *mockSlotRepo) ListByTurf(ctx context.Context, turfID string, from, to time.Time) ([]*entities.TimeSlot, error) {
	args := m.Called(ctx, turfID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.TimeSlot), args.Error(1)
}

func (m *mockSlotRepo) MarkAvailability(ctx context.Context, id string, available bool) error {
	return m.Called(ctx, id, available).Error(0)
}

type mockWaitlistRepo struct {
	mock.Mock
}

func (m *mockWaitlistRepo) Create(ctx context.Context, entry *entities.WaitlistEntry) error {
	return m.Called(ctx, entry).Error(0)
}

func (m *mockWaitlistRepo) ListBySlot(ctx context.Context, slotID string) ([]*entities.WaitlistEntry, error) {
	args := m.Called(ctx, slotID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.WaitlistEntry), args.Error(1)
}

func (m *mockWaitlistRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, user *entities.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id string) (*entities.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *mockUserRepo) GetByIDs(ctx context.Context, ids []string) ([]*entities.User, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.User), args.Error(1)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *mockUserRepo) Update(ctx context.Context, user *entities.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type mockNotificationRepo struct {
	mock.Mock
}

func (m *mockNotificationRepo) Create(ctx context.Context, notification *entities.Notification) error {
	return m.Called(ctx, notification).Error(0)
}

func (m *mockNotificationRepo) GetByID(ctx context.Context, id string) (*entities.Notification, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Notification), args.Error(1)
}

func (m *mockNotificationRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entities.Notification, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Notification), args.Error(1)
}

func (m *mockNotificationRepo) CountUnread(ctx context.Context, userID string) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *mockNotificationRepo) MarkRead(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockNotificationRepo) MarkAllRead(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *mockNotificationRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type mockEventBus struct {
	mock.Mock
}

func (m *mockEventBus) Publish(ctx context.Context, channel string, event *entities.BookingEvent) error {
	return m.Called(ctx, channel, event).Error(0)
}

func (m *mockEventBus) Subscribe(ctx context.Context, channel string) (<-chan *entities.BookingEvent, error) {
	args := m.Called(ctx, channel)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(<-chan *entities.BookingEvent), args.Error(1)
}

func (m *mockEventBus) Unsubscribe(ctx context.Context, channel string) error {
	return m.Called(ctx, channel).Error(0)
}

func (m *mockEventBus) Close() error {
	return m.Called().Error(0)
}

type mockPaymentProvider struct {
	mock.Mock
}

func (m *mockPaymentProvider) CreateOrder(ctx context.Context, bookingID string, amount float64, currency string) (*entities.PaymentOrder, error) {
	args := m.Called(ctx, bookingID, amount, currency)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.PaymentOrder), args.Error(1)
}

func (m *mockPaymentProvider) Charge(ctx context.Context, order *entities.PaymentOrder, method entities.PaymentMethod) (*entities.PaymentCharge, error) {
	args := m.Called(ctx, order, method)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.PaymentCharge), args.Error(1)
}

func (m *mockPaymentProvider) Verify(ctx context.Context, charge *entities.PaymentCharge) error {
	return m.Called(ctx, charge).Error(0)
}
