package handlers

import (
	"encoding/base64"
	"fmt"
	"net/http"

	"github.com/Aryaman129/play-nest-nagpur-sub001/internal/application/services"
	"github.com/Aryaman129/play-nest-nagpur-sub001/pkg/auth"
)

// ReceiptHandler serves booking receipts
type ReceiptHandler struct {
	service *services.ReceiptService
}

// NewReceiptHandler creates a new receipt handler
func NewReceiptHandler(service *services.ReceiptService) *ReceiptHandler {
	return &ReceiptHandler{
		service: service,
	}
}

// GetReceipt handles GET /api/bookings/{id}/receipt
func (h *ReceiptHandler) GetReceipt(w http.ResponseWriter, r *http.Request) {
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

	receipt, err := h.service.Generate(r.Context(), bookingID, claims.Sub)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, receipt)
}

// DownloadReceipt handles GET /api/bookings/{id}/receipt/download. It serves
// the decoded receipt JSON as an attachment, or the HTML email rendition with
// ?format=html.
func (h *ReceiptHandler) DownloadReceipt(w http.ResponseWriter, r *http.Request) {
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

	receipt, err := h.service.Generate(r.Context(), bookingID, claims.Sub)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	if r.URL.Query().Get("format") == "html" {
		body, err := h.service.RenderEmail(receipt)
		if err != nil {
			respondWithAppError(w, err)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, body)
		return
	}

	data, err := base64.StdEncoding.DecodeString(receipt.Payload)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "failed to decode receipt payload")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", receipt.ReceiptNumber+".json"))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
