package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/Aryaman129/play-nest-nagpur-sub001/internal/application/services"
	"github.com/Aryaman129/play-nest-nagpur-sub001/internal/domain/entities"
	"github.com/Aryaman129/play-nest-nagpur-sub001/pkg/auth"
)

// PaymentHandler exposes the payment flow over HTTP. Every operation runs on
// behalf of the authenticated user; sessions on someone else's booking are
// rejected by the service.
type PaymentHandler struct {
	service *services.PaymentService
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(service *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{
		service: service,
	}
}

// StartPayment handles POST /api/bookings/{id}/payment. The session opens at
// method selection.
func (h *PaymentHandler) StartPayment(w http.ResponseWriter, r *http.Request) {
	bookingID, claims, ok := h.requestScope(w, r)
	if !ok {
		return
	}

	session, err := h.service.Start(r.Context(), bookingID, claims.Sub)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, session)
}

// GetPayment handles GET /api/bookings/{id}/payment
func (h *PaymentHandler) GetPayment(w http.ResponseWriter, r *http.Request) {
	bookingID, claims, ok := h.requestScope(w, r)
	if !ok {
		return
	}

	session, err := h.service.Get(bookingID, claims.Sub)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, session)
}

// Pay handles POST /api/bookings/{id}/payment/pay. A gateway rejection is not
// an HTTP error: the session comes back in the failed state and the client
// offers a retry.
func (h *PaymentHandler) Pay(w http.ResponseWriter, r *http.Request) {
	bookingID, claims, ok := h.requestScope(w, r)
	if !ok {
		return
	}

	var payload struct {
		Method entities.PaymentMethod `json:"method"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	session, err := h.service.Pay(r.Context(), bookingID, claims.Sub, payload.Method)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, session)
}

// RetryPayment handles POST /api/bookings/{id}/payment/retry
func (h *PaymentHandler) RetryPayment(w http.ResponseWriter, r *http.Request) {
	bookingID, claims, ok := h.requestScope(w, r)
	if !ok {
		return
	}

	session, err := h.service.Retry(r.Context(), bookingID, claims.Sub)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, session)
}

// requestScope pulls the booking ID and caller claims out of the request,
// writing the error response itself when either is missing
func (h *PaymentHandler) requestScope(w http.ResponseWriter, r *http.Request) (string, *auth.Claims, bool) {
	bookingID := r.PathValue("id")
	if bookingID == "" {
		respondWithError(w, http.StatusBadRequest, "booking ID is required")
		return "", nil, false
	}

	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "authentication required")
		return "", nil, false
	}

	return bookingID, claims, true
}
