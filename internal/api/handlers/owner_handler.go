package handlers

import (
	"net/http"

	"github.com/Aryaman129/play-nest-nagpur-sub001/internal/application/services"
	"github.com/Aryaman129/play-nest-nagpur-sub001/internal/domain/entities"
	"github.com/Aryaman129/play-nest-nagpur-sub001/internal/domain/repositories"
	"github.com/Aryaman129/play-nest-nagpur-sub001/internal/query/loaders"
	"github.com/Aryaman129/play-nest-nagpur-sub001/pkg/auth"
)

// OwnerHandler serves the turf owner dashboard
type OwnerHandler struct {
	service  *services.OwnerService
	turfRepo repositories.TurfRepository
	userRepo repositories.UserRepository
}

// NewOwnerHandler creates a new owner handler
func NewOwnerHandler(service *services.OwnerService, turfRepo repositories.TurfRepository, userRepo repositories.UserRepository) *OwnerHandler {
	return &OwnerHandler{
		service:  service,
		turfRepo: turfRepo,
		userRepo: userRepo,
	}
}

// OwnerBookingView is a booking hydrated with the player who made it
type OwnerBookingView struct {
	*entities.Booking
	Player *entities.User `json:"player,omitempty"`
}

// GetDashboard handles GET /api/owner/dashboard
func (h *OwnerHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	dashboard, err := h.service.Dashboard(r.Context(), claims.Sub)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, dashboard)
}

// GetTurfBookings handles GET /api/owner/turfs/{id}/bookings
func (h *OwnerHandler) GetTurfBookings(w http.ResponseWriter, r *http.Request) {
	turfID := r.PathValue("id")
	if turfID == "" {
		respondWithError(w, http.StatusBadRequest, "turf ID is required")
		return
	}

	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	query := r.URL.Query()
	filter := repositories.BookingFilter{
		Status: entities.BookingStatus(query.Get("status")),
		Limit:  parseIntOr(query.Get("limit"), 50),
		Offset: parseIntOr(query.Get("offset"), 0),
	}

	bookings, err := h.service.TurfBookings(r.Context(), claims.Sub, turfID, filter)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"bookings": h.hydratePlayers(r, bookings),
		"count":    len(bookings),
	})
}

// hydratePlayers attaches each booking's player, batched through a
// per-request dataloader so a page of bookings costs one user query.
func (h *OwnerHandler) hydratePlayers(r *http.Request, bookings []*entities.Booking) []OwnerBookingView {
	ctx := loaders.WithLoaders(r.Context(), loaders.NewLoaders(h.turfRepo, h.userRepo))
	userLoader := loaders.For(ctx).UserLoader

	thunks := make([]func() (*entities.User, error), len(bookings))
	for i, booking := range bookings {
		thunks[i] = userLoader.Load(ctx, booking.UserID)
	}

	views := make([]OwnerBookingView, len(bookings))
	for i, booking := range bookings {
		player, err := thunks[i]()
		if err != nil {
			player = nil
		}
		views[i] = OwnerBookingView{Booking: booking, Player: player}
	}
	return views
}
