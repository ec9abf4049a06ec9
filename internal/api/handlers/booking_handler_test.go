package handlers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/Aryaman129/play-nest-nagpur-sub001/internal/api/handlers"
	"github.com/Aryaman129/play-nest-nagpur-sub001/internal/application/services"
	"github.com/Aryaman129/play-nest-nagpur-sub001/internal/domain/entities"
	"github.com/Aryaman129/play-nest-nagpur-sub001/internal/domain/repositories"
)

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) Create(ctx context.Context, booking *entities.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

func (m *MockBookingRepository) GetByID(ctx context.Context, id string) (*entities.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Booking), args.Error(1)
}

func (m *MockBookingRepository) Update(ctx context.Context, booking *entities.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

func (m *MockBookingRepository) UpdateStatus(ctx context.Context, id string, status entities.BookingStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockBookingRepository) ListByUser(ctx context.Context, userID string, filter repositories.BookingFilter) ([]*entities.Booking, error) {
	args := m.Called(ctx, userID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListByTurf(ctx context.Context, turfID string, filter repositories.BookingFilter) ([]*entities.Booking, error) {
	args := m.Called(ctx, turfID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Booking), args.Error(1)
}

func storedBooking() *entities.Booking {
	start := time.Now().Add(24 * time.Hour)
	return &entities.Booking{
		ID:        "booking-1",
		UserID:    "user-1",
		TurfID:    "turf-1",
		SlotID:    "slot-1",
		StartTime: start,
		EndTime:   start.Add(time.Hour),
		Price:     1180,
		Status:    entities.BookingStatusConfirmed,
	}
}

func newBookingHandler(repo *MockBookingRepository) *handlers.BookingHandler {
	service := services.NewBookingService(repo, nil, nil, nil, nil)
	return handlers.NewBookingHandler(service, new(MockTurfRepository), new(MockUserRepository))
}

func TestBookingHandler_GetBooking_OwnerSeesIt(t *testing.T) {
	repo := new(MockBookingRepository)
	handler := newBookingHandler(repo)

	repo.On("GetByID", mock.Anything, "booking-1").Return(storedBooking(), nil)

	req := httptest.NewRequest("GET", "/api/bookings/booking-1", nil)
	req.SetPathValue("id", "booking-1")
	req = withClaims(req, "user-1", "player")
	w := httptest.NewRecorder()

	handler.GetBooking(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestBookingHandler_GetBooking_AnotherUserIsForbidden(t *testing.T) {
	repo := new(MockBookingRepository)
	handler := newBookingHandler(repo)

	repo.On("GetByID", mock.Anything, "booking-1").Return(storedBooking(), nil)

	req := httptest.NewRequest("GET", "/api/bookings/booking-1", nil)
	req.SetPathValue("id", "booking-1")
	req = withClaims(req, "user-2", "player")
	w := httptest.NewRecorder()

	handler.GetBooking(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestBookingHandler_CancelBooking_AnotherUserIsForbidden(t *testing.T) {
	repo := new(MockBookingRepository)
	handler := newBookingHandler(repo)

	repo.On("GetByID", mock.Anything, "booking-1").Return(storedBooking(), nil)

	req := httptest.NewRequest("POST", "/api/bookings/booking-1/cancel", nil)
	req.SetPathValue("id", "booking-1")
	req = withClaims(req, "user-2", "player")
	w := httptest.NewRecorder()

	handler.CancelBooking(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}
