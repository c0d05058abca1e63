package handlers

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/lifeline-health/bedfinder/internal/application/services"
)

// MapsHandler builds external navigation links for facilities. The
// dashboard hands these straight to the browser; nothing is proxied.
type MapsHandler struct {
	discovery *services.DiscoveryService
}

// NewMapsHandler creates a new maps handler
func NewMapsHandler(discovery *services.DiscoveryService) *MapsHandler {
	return &MapsHandler{discovery: discovery}
}

// GetDirections handles GET /api/facilities/{id}/directions?lat=...&lon=...
// It returns a Google Maps directions URL and a tel: link for the facility.
// The origin is optional; without it Maps falls back to the device location.
func (h *MapsHandler) GetDirections(w http.ResponseWriter, r *http.Request) {
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

	query := r.URL.Query()
	var origin string
	latStr := strings.TrimSpace(query.Get("lat"))
	lonStr := strings.TrimSpace(query.Get("lon"))
	if latStr != "" && lonStr != "" {
		lat, latErr := strconv.ParseFloat(latStr, 64)
		lon, lonErr := strconv.ParseFloat(lonStr, 64)
		if latErr != nil || lonErr != nil {
			respondWithError(w, http.StatusBadRequest, "invalid lat or lon parameter")
			return
		}
		origin = fmt.Sprintf("%f,%f", lat, lon)
	}

	values := url.Values{}
	values.Set("api", "1")
	values.Set("destination", fmt.Sprintf("%f,%f", facility.Location.Latitude, facility.Location.Longitude))
	if origin != "" {
		values.Set("origin", origin)
	}

	response := map[string]string{
		"facility_id":    facility.ID,
		"directions_url": "https://www.google.com/maps/dir/?" + values.Encode(),
	}
	if facility.Contact != "" {
		response["contact_uri"] = "tel:" + strings.ReplaceAll(facility.Contact, " ", "")
	}

	respondWithJSON(w, http.StatusOK, response)
}
