package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/lifeline-health/bedfinder/internal/adapters/memory"
	"github.com/lifeline-health/bedfinder/internal/api/handlers"
	"github.com/lifeline-health/bedfinder/internal/application/services"
	"github.com/lifeline-health/bedfinder/internal/domain/entities"
)

func newInventoryHandler(facilities ...*entities.Facility) (*handlers.InventoryHandler, *memory.FacilityStore) {
	store := memory.NewFacilityStoreWith(facilities)
	inventory := services.NewInventoryService(store, nil, nil)
	return handlers.NewInventoryHandler(inventory), store
}

func TestAdjustBeds_Decrement(t *testing.T) {
	handler, _ := newInventoryHandler(fixtureFacility("h1", "SGPGI", 26.74, 80.94, 15, 4))

	body := `{"bed_type":"general","delta":-1}`
	req := httptest.NewRequest("PATCH", "/api/facilities/h1/beds", strings.NewReader(body))
	req.SetPathValue("id", "h1")
	w := httptest.NewRecorder()

	handler.AdjustBeds(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var facility entities.Facility
	require.NoError(t, json.NewDecoder(w.Body).Decode(&facility))
	assert.Equal(t, 14, facility.GeneralBeds.Available)
}

func TestAdjustBeds_UnknownFacilityNoContent(t *testing.T) {
	handler, _ := newInventoryHandler()

	body := `{"bed_type":"icu","delta":1}`
	req := httptest.NewRequest("PATCH", "/api/facilities/ghost/beds", strings.NewReader(body))
	req.SetPathValue("id", "ghost")
	w := httptest.NewRecorder()

	handler.AdjustBeds(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestAdjustBeds_InvalidBedType(t *testing.T) {
	handler, _ := newInventoryHandler(fixtureFacility("h1", "SGPGI", 26.74, 80.94, 15, 4))

	body := `{"bed_type":"pediatric","delta":1}`
	req := httptest.NewRequest("PATCH", "/api/facilities/h1/beds", strings.NewReader(body))
	req.SetPathValue("id", "h1")
	w := httptest.NewRecorder()

	handler.AdjustBeds(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAdjustBeds_InvalidBody(t *testing.T) {
	handler, _ := newInventoryHandler()

	req := httptest.NewRequest("PATCH", "/api/facilities/h1/beds", strings.NewReader("nope"))
	req.SetPathValue("id", "h1")
	w := httptest.NewRecorder()

	handler.AdjustBeds(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLockdown(t *testing.T) {
	handler, store := newInventoryHandler(fixtureFacility("h1", "SGPGI", 26.74, 80.94, 15, 4))

	req := httptest.NewRequest("POST", "/api/facilities/h1/lockdown", nil)
	req.SetPathValue("id", "h1")
	w := httptest.NewRecorder()

	handler.Lockdown(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	facility, err := store.GetByID(req.Context(), "h1")
	require.NoError(t, err)
	assert.Equal(t, 0, facility.GeneralBeds.Available)
	assert.Equal(t, 0, facility.ICUBeds.Available)
}

func TestLockdown_UnknownFacilityNoContent(t *testing.T) {
	handler, _ := newInventoryHandler()

	req := httptest.NewRequest("POST", "/api/facilities/ghost/lockdown", nil)
	req.SetPathValue("id", "ghost")
	w := httptest.NewRecorder()

	handler.Lockdown(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
}
