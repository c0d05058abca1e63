package routes

import (
	"net/http"

	"github.com/lifeline-health/bedfinder/internal/api/handlers"
	"github.com/lifeline-health/bedfinder/internal/api/middleware"
	"github.com/lifeline-health/bedfinder/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	facilityHandler    *handlers.FacilityHandler
	inventoryHandler   *handlers.InventoryHandler
	bookingHandler     *handlers.BookingHandler
	triageHandler      *handlers.TriageHandler
	geolocationHandler *handlers.GeolocationHandler
	mapsHandler        *handlers.MapsHandler
	sseHandler         *handlers.SSEHandler

	cacheMiddleware *middleware.CacheMiddleware
	metrics         *observability.Metrics
}

// NewRouter creates a new router
func NewRouter(
	facilityHandler *handlers.FacilityHandler,
	inventoryHandler *handlers.InventoryHandler,
	bookingHandler *handlers.BookingHandler,
	triageHandler *handlers.TriageHandler,
	geolocationHandler *handlers.GeolocationHandler,
	mapsHandler *handlers.MapsHandler,
	sseHandler *handlers.SSEHandler,
	cacheMiddleware *middleware.CacheMiddleware,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux:                http.NewServeMux(),
		facilityHandler:    facilityHandler,
		inventoryHandler:   inventoryHandler,
		bookingHandler:     bookingHandler,
		triageHandler:      triageHandler,
		geolocationHandler: geolocationHandler,
		mapsHandler:        mapsHandler,
		sseHandler:         sseHandler,
		cacheMiddleware:    cacheMiddleware,
		metrics:            metrics,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	// Health check endpoint
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	// Facility directory endpoints
	r.mux.HandleFunc("GET /api/facilities", r.facilityHandler.ListFacilities)
	r.mux.HandleFunc("POST /api/facilities", r.facilityHandler.CreateFacility)
	r.mux.HandleFunc("GET /api/facilities/rank", r.facilityHandler.RankFacilities)
	r.mux.HandleFunc("GET /api/facilities/{id}", r.facilityHandler.GetFacility)
	r.mux.HandleFunc("GET /api/facilities/{id}/directions", r.mapsHandler.GetDirections)

	// Bed inventory endpoints
	r.mux.HandleFunc("PATCH /api/facilities/{id}/beds", r.inventoryHandler.AdjustBeds)
	r.mux.HandleFunc("POST /api/facilities/{id}/lockdown", r.inventoryHandler.Lockdown)

	// Booking endpoints
	r.mux.HandleFunc("POST /api/bookings", r.bookingHandler.CreateBooking)
	r.mux.HandleFunc("GET /api/bookings", r.bookingHandler.ListBookings)
	r.mux.HandleFunc("GET /api/bookings/{id}", r.bookingHandler.GetBooking)
	r.mux.HandleFunc("PATCH /api/bookings/{id}/status", r.bookingHandler.SetBookingStatus)

	// Triage endpoint
	r.mux.HandleFunc("POST /api/triage", r.triageHandler.GetAdvice)

	// Geolocation endpoints
	if r.geolocationHandler != nil {
		r.mux.HandleFunc("GET /api/geocode", r.geolocationHandler.Geocode)
		r.mux.HandleFunc("GET /api/reverse-geocode", r.geolocationHandler.ReverseGeocode)
	}

	// Streaming endpoints
	if r.sseHandler != nil {
		r.mux.HandleFunc("GET /api/stream/beds", r.sseHandler.StreamBedUpdates)
		r.mux.HandleFunc("GET /api/stream/facilities/{id}", r.sseHandler.StreamFacilityBedUpdates)
	}

	// Apply middleware in reverse order (last middleware wraps first)
	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)

	if r.cacheMiddleware != nil {
		handler = r.cacheMiddleware.Middleware(handler)
	}

	if r.metrics != nil {
		handler = middleware.ObservabilityMiddleware(r.metrics)(handler)
	}

	// CORS wraps everything so headers are set even on cache HITs
	handler = middleware.CORSMiddleware(handler)

	return handler
}
