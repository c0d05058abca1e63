package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/lifeline-health/bedfinder/internal/application/services"
)

// TriageHandler handles the emergency triage chat endpoint
type TriageHandler struct {
	triage *services.TriageService
}

// NewTriageHandler creates a new triage handler
func NewTriageHandler(triage *services.TriageService) *TriageHandler {
	return &TriageHandler{triage: triage}
}

type triageRequest struct {
	Query string `json:"query"`
}

// GetAdvice handles POST /api/triage. The response is always 200 with
// advisory text; advisor failures surface as the fallback message, never
// as an error status.
func (h *TriageHandler) GetAdvice(w http.ResponseWriter, r *http.Request) {
	var req triageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		respondWithError(w, http.StatusBadRequest, "query is required")
		return
	}

	advice := h.triage.GetAdvice(r.Context(), req.Query)

	respondWithJSON(w, http.StatusOK, map[string]string{
		"advice": advice,
	})
}
