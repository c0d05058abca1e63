package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/lifeline-health/bedfinder/internal/application/services"
	"github.com/lifeline-health/bedfinder/internal/domain/entities"
	apperrors "github.com/lifeline-health/bedfinder/pkg/errors"
)

// FacilityHandler handles facility directory HTTP requests
type FacilityHandler struct {
	discovery       *services.DiscoveryService
	defaultLocation entities.Location
}

// NewFacilityHandler creates a new facility handler. The default location is
// used for ranking when the caller sends no coordinates, mirroring the
// dashboard's hardcoded fallback when device geolocation is unavailable.
func NewFacilityHandler(discovery *services.DiscoveryService, defaultLocation entities.Location) *FacilityHandler {
	return &FacilityHandler{
		discovery:       discovery,
		defaultLocation: defaultLocation,
	}
}

// GetFacility handles GET /api/facilities/{id}
func (h *FacilityHandler) GetFacility(w http.ResponseWriter, r *http.Request) {
	facilityID := r.PathValue("id")
	if facilityID == "" {
		respondWithError(w, http.StatusBadRequest, "facility ID is required")
		return
	}

	facility, err := h.discovery.GetByID(r.Context(), facilityID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, facility)
}

// ListFacilities handles GET /api/facilities
func (h *FacilityHandler) ListFacilities(w http.ResponseWriter, r *http.Request) {
	facilities, err := h.discovery.List(r.Context())
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "failed to list facilities")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"facilities": facilities,
		"count":      len(facilities),
	})
}

// RankFacilities handles GET /api/facilities/rank?lat=...&lon=...&filter=...
func (h *FacilityHandler) RankFacilities(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	location := h.defaultLocation
	latStr := strings.TrimSpace(query.Get("lat"))
	lonStr := strings.TrimSpace(query.Get("lon"))
	if latStr != "" && lonStr != "" {
		lat, latErr := strconv.ParseFloat(latStr, 64)
		lon, lonErr := strconv.ParseFloat(lonStr, 64)
		if latErr != nil || lonErr != nil {
			respondWithError(w, http.StatusBadRequest, "invalid lat or lon parameter")
			return
		}
		location = entities.Location{Latitude: lat, Longitude: lon}
	}

	filter := entities.AvailabilityFilter(strings.TrimSpace(query.Get("filter")))

	ranked, err := h.discovery.Rank(r.Context(), &location, filter)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"facilities": ranked,
		"count":      len(ranked),
		"origin":     location,
	})
}

// createFacilityRequest is the admin payload for registering a facility
type createFacilityRequest struct {
	Name              string   `json:"name"`
	Address           string   `json:"address"`
	Latitude          float64  `json:"latitude"`
	Longitude         float64  `json:"longitude"`
	Contact           string   `json:"contact"`
	EstablishmentYear *int     `json:"establishment_year,omitempty"`
	Achievements      []string `json:"achievements,omitempty"`
	GeneralTotal      int      `json:"general_total"`
	GeneralAvailable  *int     `json:"general_available,omitempty"`
	ICUTotal          int      `json:"icu_total"`
	ICUAvailable      *int     `json:"icu_available,omitempty"`
}

// CreateFacility handles POST /api/facilities
func (h *FacilityHandler) CreateFacility(w http.ResponseWriter, r *http.Request) {
	var req createFacilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	generalAvailable := req.GeneralTotal
	if req.GeneralAvailable != nil {
		generalAvailable = *req.GeneralAvailable
	}
	icuAvailable := req.ICUTotal
	if req.ICUAvailable != nil {
		icuAvailable = *req.ICUAvailable
	}

	facility := &entities.Facility{
		Name:              req.Name,
		Address:           req.Address,
		Location:          entities.Location{Latitude: req.Latitude, Longitude: req.Longitude},
		Contact:           req.Contact,
		EstablishmentYear: req.EstablishmentYear,
		Achievements:      req.Achievements,
		GeneralBeds:       entities.BedPool{Total: req.GeneralTotal, Available: generalAvailable},
		ICUBeds:           entities.BedPool{Total: req.ICUTotal, Available: icuAvailable},
	}

	if err := h.discovery.Create(r.Context(), facility); err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, facility)
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

// respondWithAppError maps application error types to HTTP status codes
func respondWithAppError(w http.ResponseWriter, err error) {
	if appErr, ok := err.(*apperrors.AppError); ok {
		switch appErr.Type {
		case apperrors.ErrorTypeNotFound:
			respondWithError(w, http.StatusNotFound, appErr.Message)
		case apperrors.ErrorTypeValidation:
			respondWithError(w, http.StatusBadRequest, appErr.Message)
		case apperrors.ErrorTypeConflict:
			respondWithError(w, http.StatusConflict, appErr.Message)
		case apperrors.ErrorTypeExternal:
			respondWithError(w, http.StatusBadGateway, appErr.Message)
		default:
			respondWithError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}
	respondWithError(w, http.StatusInternalServerError, "internal server error")
}
