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

func newBookingHandler(facilities ...*entities.Facility) (*handlers.BookingHandler, *memory.FacilityStore) {
	facilityStore := memory.NewFacilityStoreWith(facilities)
	inventory := services.NewInventoryService(facilityStore, nil, nil)
	bookings := services.NewBookingService(memory.NewBookingStore(), inventory, nil)
	return handlers.NewBookingHandler(bookings), facilityStore
}

func TestCreateBooking(t *testing.T) {
	handler, store := newBookingHandler(fixtureFacility("h1", "SGPGI", 26.74, 80.94, 15, 4))

	body := `{"facility_id":"h1","patient_name":"Jane Doe","contact_number":"555-0100","emergency_type":"Cardiac Concern"}`
	req := httptest.NewRequest("POST", "/api/bookings", strings.NewReader(body))
	w := httptest.NewRecorder()

	handler.CreateBooking(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var booking entities.Booking
	require.NoError(t, json.NewDecoder(w.Body).Decode(&booking))
	assert.Equal(t, entities.BookingStatusPending, booking.Status)
	assert.Len(t, booking.ID, 9)

	facility, err := store.GetByID(req.Context(), "h1")
	require.NoError(t, err)
	assert.Equal(t, 14, facility.GeneralBeds.Available)
}

func TestCreateBooking_MissingFacilityID(t *testing.T) {
	handler, _ := newBookingHandler()

	body := `{"patient_name":"Jane Doe","contact_number":"555-0100"}`
	req := httptest.NewRequest("POST", "/api/bookings", strings.NewReader(body))
	w := httptest.NewRecorder()

	handler.CreateBooking(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateBooking_EmptyPatientFieldsAccepted(t *testing.T) {
	handler, _ := newBookingHandler(fixtureFacility("h1", "SGPGI", 26.74, 80.94, 15, 4))

	body := `{"facility_id":"h1"}`
	req := httptest.NewRequest("POST", "/api/bookings", strings.NewReader(body))
	w := httptest.NewRecorder()

	handler.CreateBooking(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestSetBookingStatus(t *testing.T) {
	handler, _ := newBookingHandler(fixtureFacility("h1", "SGPGI", 26.74, 80.94, 15, 4))

	createBody := `{"facility_id":"h1","patient_name":"Jane Doe","contact_number":"555-0100","emergency_type":"Trauma"}`
	createReq := httptest.NewRequest("POST", "/api/bookings", strings.NewReader(createBody))
	createW := httptest.NewRecorder()
	handler.CreateBooking(createW, createReq)
	require.Equal(t, http.StatusCreated, createW.Code)

	var booking entities.Booking
	require.NoError(t, json.NewDecoder(createW.Body).Decode(&booking))

	statusBody := `{"status":"ARRIVED"}`
	req := httptest.NewRequest("PATCH", "/api/bookings/"+booking.ID+"/status", strings.NewReader(statusBody))
	req.SetPathValue("id", booking.ID)
	w := httptest.NewRecorder()

	handler.SetBookingStatus(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var updated entities.Booking
	require.NoError(t, json.NewDecoder(w.Body).Decode(&updated))
	assert.Equal(t, entities.BookingStatusArrived, updated.Status)

	// ARRIVED is terminal; a second transition is skipped
	again := httptest.NewRequest("PATCH", "/api/bookings/"+booking.ID+"/status", strings.NewReader(`{"status":"CANCELLED"}`))
	again.SetPathValue("id", booking.ID)
	againW := httptest.NewRecorder()

	handler.SetBookingStatus(againW, again)

	assert.Equal(t, http.StatusNoContent, againW.Code)
}

func TestSetBookingStatus_UnknownBookingNoContent(t *testing.T) {
	handler, _ := newBookingHandler()

	req := httptest.NewRequest("PATCH", "/api/bookings/ghost/status", strings.NewReader(`{"status":"ARRIVED"}`))
	req.SetPathValue("id", "ghost")
	w := httptest.NewRecorder()

	handler.SetBookingStatus(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestSetBookingStatus_InvalidStatus(t *testing.T) {
	handler, _ := newBookingHandler()

	req := httptest.NewRequest("PATCH", "/api/bookings/ghost/status", strings.NewReader(`{"status":"LOST"}`))
	req.SetPathValue("id", "ghost")
	w := httptest.NewRecorder()

	handler.SetBookingStatus(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListBookings_InvalidStatus(t *testing.T) {
	handler, _ := newBookingHandler()

	req := httptest.NewRequest("GET", "/api/bookings?status=LOST", nil)
	w := httptest.NewRecorder()

	handler.ListBookings(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListBookings(t *testing.T) {
	handler, _ := newBookingHandler(fixtureFacility("h1", "SGPGI", 26.74, 80.94, 15, 4))

	createBody := `{"facility_id":"h1","patient_name":"Jane Doe","contact_number":"555-0100","emergency_type":"Trauma"}`
	createReq := httptest.NewRequest("POST", "/api/bookings", strings.NewReader(createBody))
	createW := httptest.NewRecorder()
	handler.CreateBooking(createW, createReq)
	require.Equal(t, http.StatusCreated, createW.Code)

	req := httptest.NewRequest("GET", "/api/bookings?facility_id=h1&status=PENDING", nil)
	w := httptest.NewRecorder()

	handler.ListBookings(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Bookings []*entities.Booking `json:"bookings"`
		Count    int                 `json:"count"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, 1, response.Count)
}
