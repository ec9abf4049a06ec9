package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/Aryaman129/play-nest-nagpur-sub001/internal/application/services"
	"github.com/Aryaman129/play-nest-nagpur-sub001/internal/domain/entities"
	"github.com/Aryaman129/play-nest-nagpur-sub001/internal/domain/repositories"
	"github.com/Aryaman129/play-nest-nagpur-sub001/pkg/auth"
	apperrors "github.com/Aryaman129/play-nest-nagpur-sub001/pkg/errors"
)

// TurfHandler handles turf-related HTTP requests
type TurfHandler struct {
	service *services.TurfService
}

// NewTurfHandler creates a new turf handler
func NewTurfHandler(service *services.TurfService) *TurfHandler {
	return &TurfHandler{
		service: service,
	}
}

// GetTurf handles GET /api/turfs/{id}
func (h *TurfHandler) GetTurf(w http.ResponseWriter, r *http.Request) {
	turfID := r.PathValue("id")
	if turfID == "" {
		respondWithError(w, http.StatusBadRequest, "turf ID is required")
		return
	}

	turf, err := h.service.GetByID(r.Context(), turfID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, turf)
}

// ListTurfs handles GET /api/turfs
func (h *TurfHandler) ListTurfs(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	filter := repositories.TurfFilter{
		Sport:  query.Get("sport"),
		Limit:  parseIntOr(query.Get("limit"), 30),
		Offset: parseIntOr(query.Get("offset"), 0),
	}

	if maxPriceStr := query.Get("max_price"); maxPriceStr != "" {
		maxPrice, err := strconv.ParseFloat(maxPriceStr, 64)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid max_price parameter")
			return
		}
		filter.MaxPrice = &maxPrice
	}

	turfs, err := h.service.List(r.Context(), filter)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"turfs": turfs,
		"count": len(turfs),
	})
}

// SearchTurfs handles GET /api/turfs/search?lat=X&lon=Y&radius=Z
func (h *TurfHandler) SearchTurfs(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	lat, err := strconv.ParseFloat(query.Get("lat"), 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid lat parameter")
		return
	}

	lon, err := strconv.ParseFloat(query.Get("lon"), 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid lon parameter")
		return
	}

	params := repositories.SearchParams{
		Query:     query.Get("q"),
		Latitude:  lat,
		Longitude: lon,
		RadiusKm:  10,
		Sport:     query.Get("sport"),
		Limit:     parseIntOr(query.Get("limit"), 30),
		Offset:    parseIntOr(query.Get("offset"), 0),
	}

	if radiusStr := query.Get("radius"); radiusStr != "" {
		radius, err := strconv.ParseFloat(radiusStr, 64)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid radius parameter")
			return
		}
		params.RadiusKm = radius
	}

	if maxPriceStr := query.Get("max_price"); maxPriceStr != "" {
		maxPrice, err := strconv.ParseFloat(maxPriceStr, 64)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid max_price parameter")
			return
		}
		params.MaxPrice = &maxPrice
	}

	results, err := h.service.Search(r.Context(), params)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"results": results,
		"count":   len(results),
	})
}

// CreateTurf handles POST /api/turfs
func (h *TurfHandler) CreateTurf(w http.ResponseWriter, r *http.Request) {
	var turf entities.Turf
	if err := json.NewDecoder(r.Body).Decode(&turf); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	if claims, ok := auth.ClaimsFromContext(r.Context()); ok {
		turf.OwnerID = claims.Sub
	}

	if err := h.service.Create(r.Context(), &turf); err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, turf)
}

// TurfPatch carries the owner-updatable turf fields; omitted fields are left
// untouched. Ownership, rating and review counts are never client-writable.
type TurfPatch struct {
	Name        *string            `json:"name"`
	Description *string            `json:"description"`
	Address     *entities.Address  `json:"address"`
	Location    *entities.Location `json:"location"`
	Sports      []string           `json:"sports"`
	Amenities   []string           `json:"amenities"`
	HourlyPrice *float64           `json:"hourly_price"`
	Images      []string           `json:"images"`
	PhoneNumber *string            `json:"phone_number"`
	IsActive    *bool              `json:"is_active"`
}

func (p *TurfPatch) apply(turf *entities.Turf) {
	if p.Name != nil {
		turf.Name = *p.Name
	}
	if p.Description != nil {
		turf.Description = *p.Description
	}
	if p.Address != nil {
		turf.Address = *p.Address
	}
	if p.Location != nil {
		turf.Location = *p.Location
	}
	if p.Sports != nil {
		turf.Sports = p.Sports
	}
	if p.Amenities != nil {
		turf.Amenities = p.Amenities
	}
	if p.HourlyPrice != nil {
		turf.HourlyPrice = *p.HourlyPrice
	}
	if p.Images != nil {
		turf.Images = p.Images
	}
	if p.PhoneNumber != nil {
		turf.PhoneNumber = *p.PhoneNumber
	}
	if p.IsActive != nil {
		turf.IsActive = *p.IsActive
	}
}

// UpdateTurf handles PATCH /api/turfs/{id}. Only the turf's owner may update
// it, and only the fields present in the payload change.
func (h *TurfHandler) UpdateTurf(w http.ResponseWriter, r *http.Request) {
	turf, ok := h.ownedTurf(w, r)
	if !ok {
		return
	}

	var patch TurfPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	patch.apply(turf)

	if err := h.service.Update(r.Context(), turf); err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, turf)
}

// DeleteTurf handles DELETE /api/turfs/{id}. Only the turf's owner may delete
// it.
func (h *TurfHandler) DeleteTurf(w http.ResponseWriter, r *http.Request) {
	turf, ok := h.ownedTurf(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), turf.ID); err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// ownedTurf loads the turf from the path and verifies it belongs to the
// authenticated owner, writing the error response itself otherwise
func (h *TurfHandler) ownedTurf(w http.ResponseWriter, r *http.Request) (*entities.Turf, bool) {
	turfID := r.PathValue("id")
	if turfID == "" {
		respondWithError(w, http.StatusBadRequest, "turf ID is required")
		return nil, false
	}

	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "authentication required")
		return nil, false
	}

	turf, err := h.service.GetByID(r.Context(), turfID)
	if err != nil {
		respondWithAppError(w, err)
		return nil, false
	}

	if turf.OwnerID != claims.Sub {
		respondWithError(w, http.StatusForbidden, "turf belongs to another owner")
		return nil, false
	}

	return turf, true
}

// Helper functions
func respondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

func respondWithError(w http.ResponseWriter, statusCode int, message string) {
	respondWithJSON(w, statusCode, map[string]string{
		"error": message,
	})
}

// respondWithAppError maps an application error to its HTTP status
func respondWithAppError(w http.ResponseWriter, err error) {
	if appErr, ok := apperrors.AsAppError(err); ok {
		switch appErr.Type {
		case apperrors.ErrorTypeNotFound:
			respondWithError(w, http.StatusNotFound, appErr.Message)
		case apperrors.ErrorTypeValidation:
			respondWithError(w, http.StatusBadRequest, appErr.Message)
		case apperrors.ErrorTypeConflict:
			respondWithError(w, http.StatusConflict, appErr.Message)
		case apperrors.ErrorTypeUnauthorized:
			respondWithError(w, http.StatusUnauthorized, appErr.Message)
		case apperrors.ErrorTypeForbidden:
			respondWithError(w, http.StatusForbidden, appErr.Message)
		case apperrors.ErrorTypeExternal, apperrors.ErrorTypeGateway:
			respondWithError(w, http.StatusBadGateway, appErr.Message)
		default:
			respondWithError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}
	respondWithError(w, http.StatusInternalServerError, "internal server error")
}

func parseIntOr(s string, fallback int) int {
	if s == "" {
		return fallback
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 {
		return fallback
	}
	return v
}
