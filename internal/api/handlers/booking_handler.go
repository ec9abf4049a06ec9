package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/Aryaman129/play-nest-nagpur-sub001/internal/application/services"
	"github.com/Aryaman129/play-nest-nagpur-sub001/internal/domain/entities"
	"github.com/Aryaman129/play-nest-nagpur-sub001/internal/domain/repositories"
	"github.com/Aryaman129/play-nest-nagpur-sub001/internal/query/loaders"
	"github.com/Aryaman129/play-nest-nagpur-sub001/pkg/auth"
)

// BookingHandler handles booking and slot requests
type BookingHandler struct {
	service  *services.BookingService
	turfRepo repositories.TurfRepository
	userRepo repositories.UserRepository
}

// NewBookingHandler creates a new booking handler
func NewBookingHandler(service *services.BookingService, turfRepo repositories.TurfRepository, userRepo repositories.UserRepository) *BookingHandler {
	return &BookingHandler{
		service:  service,
		turfRepo: turfRepo,
		userRepo: userRepo,
	}
}

// BookingView is a booking hydrated with its turf for list responses
type BookingView struct {
	*entities.Booking
	Turf *entities.Turf `json:"turf,omitempty"`
}

// GetAvailability handles GET /api/turfs/{id}/availability?date=YYYY-MM-DD
func (h *BookingHandler) GetAvailability(w http.ResponseWriter, r *http.Request) {
	turfID := r.PathValue("id")
	if turfID == "" {
		respondWithError(w, http.StatusBadRequest, "turf ID is required")
		return
	}

	date := time.Now()
	if dateStr := r.URL.Query().Get("date"); dateStr != "" {
		parsed, err := time.ParseInLocation("2006-01-02", dateStr, time.Local)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid date format (use YYYY-MM-DD)")
			return
		}
		date = parsed
	}

	slots, err := h.service.AvailableSlots(r.Context(), turfID, date)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"slots": slots,
		"date":  date.Format("2006-01-02"),
	})
}

// SelectSlot handles POST /api/turfs/{id}/slots/{slotId}/select. It resolves
// the pick so the client can show the priced summary before payment; an
// unavailable slot comes back as a conflict with a waitlist hint.
func (h *BookingHandler) SelectSlot(w http.ResponseWriter, r *http.Request) {
	turfID := r.PathValue("id")
	slotID := r.PathValue("slotId")
	if turfID == "" || slotID == "" {
		respondWithError(w, http.StatusBadRequest, "turf ID and slot ID are required")
		return
	}

	selection, err := h.service.SelectSlot(r.Context(), turfID, slotID, time.Now())
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, selection)
}

// JoinWaitlist handles POST /api/turfs/{id}/slots/{slotId}/waitlist
func (h *BookingHandler) JoinWaitlist(w http.ResponseWriter, r *http.Request) {
	turfID := r.PathValue("id")
	slotID := r.PathValue("slotId")
	if turfID == "" || slotID == "" {
		respondWithError(w, http.StatusBadRequest, "turf ID and slot ID are required")
		return
	}

	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	entry, err := h.service.JoinWaitlist(r.Context(), turfID, slotID, claims.Sub)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, entry)
}

// CreateBooking handles POST /api/bookings
func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var booking entities.Booking
	if err := json.NewDecoder(r.Body).Decode(&booking); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	if claims, ok := auth.ClaimsFromContext(r.Context()); ok {
		booking.UserID = claims.Sub
	}

	created, err := h.service.Create(r.Context(), &booking)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, created)
}

// GetBooking handles GET /api/bookings/{id}
func (h *BookingHandler) GetBooking(w http.ResponseWriter, r *http.Request) {
	bookingID := r.PathValue("id")
	if bookingID == "" {
		respondWithError(w, http.StatusBadRequest, "booking ID is required")
		return
	}

	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	booking, err := h.service.GetByID(r.Context(), bookingID, claims.Sub)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, booking)
}

// CancelBooking handles POST /api/bookings/{id}/cancel
func (h *BookingHandler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	bookingID := r.PathValue("id")
	if bookingID == "" {
		respondWithError(w, http.StatusBadRequest, "booking ID is required")
		return
	}

	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	booking, err := h.service.Cancel(r.Context(), bookingID, claims.Sub)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, booking)
}

// ListMyBookings handles GET /api/bookings
func (h *BookingHandler) ListMyBookings(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	query := r.URL.Query()
	filter := repositories.BookingFilter{
		Status: entities.BookingStatus(query.Get("status")),
		Limit:  parseIntOr(query.Get("limit"), 30),
		Offset: parseIntOr(query.Get("offset"), 0),
	}

	bookings, err := h.service.ListByUser(r.Context(), claims.Sub, filter)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"bookings": h.hydrate(r, bookings),
		"count":    len(bookings),
	})
}

// hydrate attaches each booking's turf, batching the lookups through a
// per-request dataloader so a page of bookings costs one turf query.
func (h *BookingHandler) hydrate(r *http.Request, bookings []*entities.Booking) []BookingView {
	ctx := loaders.WithLoaders(r.Context(), loaders.NewLoaders(h.turfRepo, h.userRepo))
	turfLoader := loaders.For(ctx).TurfLoader

	thunks := make([]func() (*entities.Turf, error), len(bookings))
	for i, booking := range bookings {
		thunks[i] = turfLoader.Load(ctx, booking.TurfID)
	}

	views := make([]BookingView, len(bookings))
	for i, booking := range bookings {
		turf, err := thunks[i]()
		if err != nil {
			turf = nil
		}
		views[i] = BookingView{Booking: booking, Turf: turf}
	}
	return views
}
