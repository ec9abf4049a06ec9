package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/Aryaman129/play-nest-nagpur-sub001/internal/api/handlers"
	"github.com/Aryaman129/play-nest-nagpur-sub001/internal/application/services"
	"github.com/Aryaman129/play-nest-nagpur-sub001/internal/domain/entities"
)

func TestReceiptHandler_GetReceipt_AnotherUserIsForbidden(t *testing.T) {
	bookingRepo := new(MockBookingRepository)
	turfRepo := new(MockTurfRepository)
	handler := handlers.NewReceiptHandler(services.NewReceiptService(bookingRepo, turfRepo))

	bookingRepo.On("GetByID", mock.Anything, "booking-1").Return(storedBooking(), nil)

	req := httptest.NewRequest("GET", "/api/bookings/booking-1/receipt", nil)
	req.SetPathValue("id", "booking-1")
	req = withClaims(req, "user-2", "player")
	w := httptest.NewRecorder()

	handler.GetReceipt(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestReceiptHandler_GetReceipt_OwnerGetsReceipt(t *testing.T) {
	bookingRepo := new(MockBookingRepository)
	turfRepo := new(MockTurfRepository)
	handler := handlers.NewReceiptHandler(services.NewReceiptService(bookingRepo, turfRepo))

	bookingRepo.On("GetByID", mock.Anything, "booking-1").Return(storedBooking(), nil)
	turfRepo.On("GetByID", mock.Anything, "turf-1").Return(&entities.Turf{ID: "turf-1", Name: "Greenfield Arena"}, nil)

	req := httptest.NewRequest("GET", "/api/bookings/booking-1/receipt", nil)
	req.SetPathValue("id", "booking-1")
	req = withClaims(req, "user-1", "player")
	w := httptest.NewRecorder()

	handler.GetReceipt(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
