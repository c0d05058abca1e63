package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/lifeline-health/bedfinder/internal/adapters/memory"
	"github.com/lifeline-health/bedfinder/internal/api/handlers"
	"github.com/lifeline-health/bedfinder/internal/application/services"
	"github.com/lifeline-health/bedfinder/internal/domain/entities"
)

func newMapsHandler(facilities ...*entities.Facility) *handlers.MapsHandler {
	store := memory.NewFacilityStoreWith(facilities)
	return handlers.NewMapsHandler(services.NewDiscoveryService(store))
}

func TestGetDirections(t *testing.T) {
	handler := newMapsHandler(fixtureFacility("h1", "SGPGI", 26.7431, 80.9385, 15, 4))

	req := httptest.NewRequest("GET", "/api/facilities/h1/directions", nil)
	req.SetPathValue("id", "h1")
	w := httptest.NewRecorder()

	handler.GetDirections(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]string
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, "h1", response["facility_id"])
	assert.Contains(t, response["directions_url"], "https://www.google.com/maps/dir/?")
	assert.Contains(t, response["directions_url"], "api=1")
	assert.Contains(t, response["directions_url"], "destination=26.743100%2C80.938500")
	assert.NotContains(t, response["directions_url"], "origin=")
	assert.Equal(t, "tel:05220000000", response["contact_uri"])
}

func TestGetDirections_WithOrigin(t *testing.T) {
	handler := newMapsHandler(fixtureFacility("h1", "SGPGI", 26.7431, 80.9385, 15, 4))

	req := httptest.NewRequest("GET", "/api/facilities/h1/directions?lat=26.8467&lon=80.9462", nil)
	req.SetPathValue("id", "h1")
	w := httptest.NewRecorder()

	handler.GetDirections(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]string
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Contains(t, response["directions_url"], "origin=26.846700%2C80.946200")
}

func TestGetDirections_InvalidOrigin(t *testing.T) {
	handler := newMapsHandler(fixtureFacility("h1", "SGPGI", 26.7431, 80.9385, 15, 4))

	req := httptest.NewRequest("GET", "/api/facilities/h1/directions?lat=abc&lon=80.9462", nil)
	req.SetPathValue("id", "h1")
	w := httptest.NewRecorder()

	handler.GetDirections(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetDirections_UnknownFacility(t *testing.T) {
	handler := newMapsHandler()

	req := httptest.NewRequest("GET", "/api/facilities/ghost/directions", nil)
	req.SetPathValue("id", "ghost")
	w := httptest.NewRecorder()

	handler.GetDirections(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
