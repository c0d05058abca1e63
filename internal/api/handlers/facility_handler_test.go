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

var lucknowCenter = entities.Location{Latitude: 26.8467, Longitude: 80.9462}

func fixtureFacility(id, name string, lat, lon float64, generalAvail, icuAvail int) *entities.Facility {
	return &entities.Facility{
		ID:          id,
		Name:        name,
		Location:    entities.Location{Latitude: lat, Longitude: lon},
		Contact:     "0522 000 0000",
		GeneralBeds: entities.BedPool{Total: 50, Available: generalAvail},
		ICUBeds:     entities.BedPool{Total: 10, Available: icuAvail},
	}
}

func newFacilityHandler(facilities ...*entities.Facility) (*handlers.FacilityHandler, *memory.FacilityStore) {
	store := memory.NewFacilityStoreWith(facilities)
	discovery := services.NewDiscoveryService(store)
	return handlers.NewFacilityHandler(discovery, lucknowCenter), store
}

func TestGetFacility_Found(t *testing.T) {
	handler, _ := newFacilityHandler(fixtureFacility("h1", "SGPGI", 26.74, 80.94, 15, 4))

	req := httptest.NewRequest("GET", "/api/facilities/h1", nil)
	req.SetPathValue("id", "h1")
	w := httptest.NewRecorder()

	handler.GetFacility(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var facility entities.Facility
	require.NoError(t, json.NewDecoder(w.Body).Decode(&facility))
	assert.Equal(t, "SGPGI", facility.Name)
	assert.Equal(t, 15, facility.GeneralBeds.Available)
}

func TestGetFacility_NotFound(t *testing.T) {
	handler, _ := newFacilityHandler()

	req := httptest.NewRequest("GET", "/api/facilities/ghost", nil)
	req.SetPathValue("id", "ghost")
	w := httptest.NewRecorder()

	handler.GetFacility(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListFacilities(t *testing.T) {
	handler, _ := newFacilityHandler(
		fixtureFacility("h1", "SGPGI", 26.74, 80.94, 15, 4),
		fixtureFacility("h2", "KGMU", 26.87, 80.92, 0, 2),
	)

	req := httptest.NewRequest("GET", "/api/facilities", nil)
	w := httptest.NewRecorder()

	handler.ListFacilities(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Facilities []*entities.Facility `json:"facilities"`
		Count      int                  `json:"count"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, 2, response.Count)
	assert.Equal(t, "h1", response.Facilities[0].ID)
}

func TestRankFacilities_SortsByDistance(t *testing.T) {
	handler, _ := newFacilityHandler(
		fixtureFacility("far", "Far", 27.0, 81.3, 15, 4),
		fixtureFacility("near", "Near", 26.85, 80.95, 15, 4),
	)

	req := httptest.NewRequest("GET", "/api/facilities/rank?lat=26.8467&lon=80.9462", nil)
	w := httptest.NewRecorder()

	handler.RankFacilities(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Facilities []*entities.RankedFacility `json:"facilities"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	require.Len(t, response.Facilities, 2)
	assert.Equal(t, "near", response.Facilities[0].Facility.ID)
}

func TestRankFacilities_DefaultsToConfiguredLocation(t *testing.T) {
	handler, _ := newFacilityHandler(
		fixtureFacility("h1", "SGPGI", 26.74, 80.94, 15, 4),
	)

	req := httptest.NewRequest("GET", "/api/facilities/rank", nil)
	w := httptest.NewRecorder()

	handler.RankFacilities(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Facilities []*entities.RankedFacility `json:"facilities"`
		Origin     entities.Location          `json:"origin"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, lucknowCenter, response.Origin)
	require.Len(t, response.Facilities, 1)
	assert.Greater(t, response.Facilities[0].DistanceKm, 0.0)
}

func TestRankFacilities_InvalidCoordinates(t *testing.T) {
	handler, _ := newFacilityHandler()

	req := httptest.NewRequest("GET", "/api/facilities/rank?lat=abc&lon=80.9", nil)
	w := httptest.NewRecorder()

	handler.RankFacilities(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRankFacilities_InvalidFilter(t *testing.T) {
	handler, _ := newFacilityHandler()

	req := httptest.NewRequest("GET", "/api/facilities/rank?filter=BOGUS", nil)
	w := httptest.NewRecorder()

	handler.RankFacilities(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateFacility(t *testing.T) {
	handler, store := newFacilityHandler()

	body := `{"name":"New Hospital","address":"Gomti Nagar","latitude":26.86,"longitude":81.0,"contact":"0522 123 4567","general_total":100,"icu_total":20}`
	req := httptest.NewRequest("POST", "/api/facilities", strings.NewReader(body))
	w := httptest.NewRecorder()

	handler.CreateFacility(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var facility entities.Facility
	require.NoError(t, json.NewDecoder(w.Body).Decode(&facility))
	assert.NotEmpty(t, facility.ID)
	// Pools start fully available when no availability is given
	assert.Equal(t, 100, facility.GeneralBeds.Available)
	assert.Equal(t, 20, facility.ICUBeds.Available)

	listed, err := store.List(req.Context())
	require.NoError(t, err)
	assert.Len(t, listed, 1)
}

func TestCreateFacility_InvalidBody(t *testing.T) {
	handler, _ := newFacilityHandler()

	req := httptest.NewRequest("POST", "/api/facilities", strings.NewReader("{not json"))
	w := httptest.NewRecorder()

	handler.CreateFacility(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
