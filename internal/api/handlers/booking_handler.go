package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/lifeline-health/bedfinder/internal/application/services"
	"github.com/lifeline-health/bedfinder/internal/domain/entities"
	"github.com/lifeline-health/bedfinder/internal/domain/repositories"
)

// BookingHandler handles patient reservation HTTP requests
type BookingHandler struct {
	bookings *services.BookingService
}

// NewBookingHandler creates a new booking handler
func NewBookingHandler(bookings *services.BookingService) *BookingHandler {
	return &BookingHandler{bookings: bookings}
}

type createBookingRequest struct {
	FacilityID    string `json:"facility_id"`
	PatientName   string `json:"patient_name"`
	ContactNumber string `json:"contact_number"`
	EmergencyType string `json:"emergency_type"`
}

// CreateBooking handles POST /api/bookings
func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req createBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	booking, err := h.bookings.Create(r.Context(), services.CreateBookingInput{
		FacilityID:    req.FacilityID,
		PatientName:   req.PatientName,
		ContactNumber: req.ContactNumber,
		EmergencyType: req.EmergencyType,
	})
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, booking)
}

// GetBooking handles GET /api/bookings/{id}
func (h *BookingHandler) GetBooking(w http.ResponseWriter, r *http.Request) {
	bookingID := r.PathValue("id")
	if bookingID == "" {
		respondWithError(w, http.StatusBadRequest, "booking ID is required")
		return
	}

	booking, err := h.bookings.GetByID(r.Context(), bookingID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, booking)
}

// ListBookings handles GET /api/bookings?facility_id=...&status=...
func (h *BookingHandler) ListBookings(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	filter := repositories.BookingFilter{
		FacilityID: strings.TrimSpace(query.Get("facility_id")),
	}
	if statusParam := strings.TrimSpace(query.Get("status")); statusParam != "" {
		status := entities.BookingStatus(statusParam)
		if !status.Valid() {
			respondWithError(w, http.StatusBadRequest, "invalid status parameter")
			return
		}
		filter.Status = &status
	}

	bookings, err := h.bookings.List(r.Context(), filter)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"bookings": bookings,
		"count":    len(bookings),
	})
}

type setBookingStatusRequest struct {
	Status entities.BookingStatus `json:"status"`
}

// SetBookingStatus handles PATCH /api/bookings/{id}/status. Unknown ids and
// already-terminal bookings are skipped by the service; those come back as
// 204 No Content rather than an error.
func (h *BookingHandler) SetBookingStatus(w http.ResponseWriter, r *http.Request) {
	bookingID := r.PathValue("id")
	if bookingID == "" {
		respondWithError(w, http.StatusBadRequest, "booking ID is required")
		return
	}

	var req setBookingStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	booking, err := h.bookings.SetStatus(r.Context(), bookingID, req.Status)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	if booking == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	respondWithJSON(w, http.StatusOK, booking)
}
