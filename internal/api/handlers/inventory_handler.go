package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/lifeline-health/bedfinder/internal/application/services"
	"github.com/lifeline-health/bedfinder/internal/domain/entities"
)

// InventoryHandler handles admin bed availability mutations
type InventoryHandler struct {
	inventory *services.InventoryService
}

// NewInventoryHandler creates a new inventory handler
func NewInventoryHandler(inventory *services.InventoryService) *InventoryHandler {
	return &InventoryHandler{inventory: inventory}
}

type adjustBedsRequest struct {
	BedType entities.BedType `json:"bed_type"`
	Delta   int              `json:"delta"`
}

// AdjustBeds handles PATCH /api/facilities/{id}/beds. Adjustments against
// an unknown facility answer 204: the write was a no-op, not a failure.
func (h *InventoryHandler) AdjustBeds(w http.ResponseWriter, r *http.Request) {
	facilityID := r.PathValue("id")
	if facilityID == "" {
		respondWithError(w, http.StatusBadRequest, "facility ID is required")
		return
	}

	var req adjustBedsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	facility, err := h.inventory.AdjustBeds(r.Context(), facilityID, req.BedType, req.Delta)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	if facility == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	respondWithJSON(w, http.StatusOK, facility)
}

// Lockdown handles POST /api/facilities/{id}/lockdown, zeroing both pools
func (h *InventoryHandler) Lockdown(w http.ResponseWriter, r *http.Request) {
	facilityID := r.PathValue("id")
	if facilityID == "" {
		respondWithError(w, http.StatusBadRequest, "facility ID is required")
		return
	}

	facility, err := h.inventory.Lockdown(r.Context(), facilityID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	if facility == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	respondWithJSON(w, http.StatusOK, facility)
}
