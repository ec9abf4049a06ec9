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
)

func newPaymentHandler(repo *MockBookingRepository) *handlers.PaymentHandler {
	service := services.NewPaymentService(nil, repo, nil, time.Second)
	return handlers.NewPaymentHandler(service)
}

func pendingStoredBooking() *entities.Booking {
	booking := storedBooking()
	booking.Status = entities.BookingStatusPending
	return booking
}

func TestPaymentHandler_StartPayment_OwnerOpensSession(t *testing.T) {
	repo := new(MockBookingRepository)
	handler := newPaymentHandler(repo)

	repo.On("GetByID", mock.Anything, "booking-1").Return(pendingStoredBooking(), nil)

	req := httptest.NewRequest("POST", "/api/bookings/booking-1/payment", nil)
	req.SetPathValue("id", "booking-1")
	req = withClaims(req, "user-1", "player")
	w := httptest.NewRecorder()

	handler.StartPayment(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestPaymentHandler_StartPayment_AnotherUserIsForbidden(t *testing.T) {
	repo := new(MockBookingRepository)
	handler := newPaymentHandler(repo)

	repo.On("GetByID", mock.Anything, "booking-1").Return(pendingStoredBooking(), nil)

	req := httptest.NewRequest("POST", "/api/bookings/booking-1/payment", nil)
	req.SetPathValue("id", "booking-1")
	req = withClaims(req, "user-2", "player")
	w := httptest.NewRecorder()

	handler.StartPayment(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestPaymentHandler_GetPayment_AnotherUserIsForbidden(t *testing.T) {
	repo := new(MockBookingRepository)
	service := services.NewPaymentService(nil, repo, nil, time.Second)
	handler := handlers.NewPaymentHandler(service)

	repo.On("GetByID", mock.Anything, "booking-1").Return(pendingStoredBooking(), nil)

	_, err := service.Start(context.Background(), "booking-1", "user-1")
	assert.NoError(t, err)

	req := httptest.NewRequest("GET", "/api/bookings/booking-1/payment", nil)
	req.SetPathValue("id", "booking-1")
	req = withClaims(req, "user-2", "player")
	w := httptest.NewRecorder()

	handler.GetPayment(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}
