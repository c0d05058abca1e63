package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/lifeline-health/bedfinder/internal/domain/entities"
	"github.com/lifeline-health/bedfinder/internal/domain/providers"
	"github.com/lifeline-health/bedfinder/pkg/geo"
)

// SSEHandler handles Server-Sent Events for real-time bed availability
// updates
type SSEHandler struct {
	eventBus providers.EventBus
	clients  map[string]map[chan *entities.BedEvent]bool // channel -> clients
	mu       sync.RWMutex
}

// NewSSEHandler creates a new SSE handler
func NewSSEHandler(eventBus providers.EventBus) *SSEHandler {
	return &SSEHandler{
		eventBus: eventBus,
		clients:  make(map[string]map[chan *entities.BedEvent]bool),
	}
}

// StreamFacilityBedUpdates handles SSE connections for one facility's bed
// updates
// GET /api/stream/facilities/{id}
func (h *SSEHandler) StreamFacilityBedUpdates(w http.ResponseWriter, r *http.Request) {
	facilityID := r.PathValue("id")
	if facilityID == "" {
		respondWithError(w, http.StatusBadRequest, "facility ID is required")
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		respondWithError(w, http.StatusInternalServerError, "streaming not supported")
		return
	}

	// The server-wide write timeout would sever long-lived streams well
	// before the first heartbeat; clear the deadline for this connection
	if err := http.NewResponseController(w).SetWriteDeadline(time.Time{}); err != nil {
		log.Printf("Failed to clear write deadline for stream: %v", err)
	}

	// Set headers for SSE
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	clientChan := make(chan *entities.BedEvent, 10)
	channel := providers.GetFacilityChannel(facilityID)

	h.registerClient(channel, clientChan)
	defer h.unregisterClient(channel, clientChan)

	eventChan, err := h.eventBus.Subscribe(r.Context(), channel)
	if err != nil {
		log.Printf("Failed to subscribe to channel %s: %v", channel, err)
		return
	}

	h.sendEvent(w, "connected", map[string]interface{}{
		"facility_id": facilityID,
		"timestamp":   time.Now(),
	})
	flusher.Flush()

	go h.forwardEvents(r.Context(), eventChan, clientChan)

	h.streamLoop(w, r, flusher, clientChan, fmt.Sprintf("facility %s", facilityID))
}

// StreamBedUpdates handles SSE connections for the whole network, with an
// optional regional filter
// GET /api/stream/beds?lat=X&lon=Y&radius=Z
func (h *SSEHandler) StreamBedUpdates(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	var filterByRegion bool
	var lat, lon, radiusKm float64
	if query.Get("lat") != "" || query.Get("lon") != "" {
		var err error
		lat, err = strconv.ParseFloat(query.Get("lat"), 64)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid latitude parameter")
			return
		}
		lon, err = strconv.ParseFloat(query.Get("lon"), 64)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid longitude parameter")
			return
		}
		radiusKm = 50
		if radiusParam := query.Get("radius"); radiusParam != "" {
			if parsed, err := strconv.ParseFloat(radiusParam, 64); err == nil {
				radiusKm = parsed
			}
		}
		filterByRegion = true
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		respondWithError(w, http.StatusInternalServerError, "streaming not supported")
		return
	}

	// The server-wide write timeout would sever long-lived streams well
	// before the first heartbeat; clear the deadline for this connection
	if err := http.NewResponseController(w).SetWriteDeadline(time.Time{}); err != nil {
		log.Printf("Failed to clear write deadline for stream: %v", err)
	}

	// Set headers for SSE
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	clientChan := make(chan *entities.BedEvent, 50)
	channel := providers.EventChannelBedUpdates

	h.registerClient(channel, clientChan)
	defer h.unregisterClient(channel, clientChan)

	eventChan, err := h.eventBus.Subscribe(r.Context(), channel)
	if err != nil {
		log.Printf("Failed to subscribe to channel %s: %v", channel, err)
		return
	}

	connected := map[string]interface{}{"timestamp": time.Now()}
	if filterByRegion {
		connected["lat"] = lat
		connected["lon"] = lon
		connected["radius_km"] = radiusKm
	}
	h.sendEvent(w, "connected", connected)
	flusher.Flush()

	if filterByRegion {
		go h.forwardRegionalEvents(r.Context(), eventChan, clientChan, lat, lon, radiusKm)
	} else {
		go h.forwardEvents(r.Context(), eventChan, clientChan)
	}

	h.streamLoop(w, r, flusher, clientChan, "bed updates")
}

// streamLoop pumps heartbeats and events until the client goes away
func (h *SSEHandler) streamLoop(w http.ResponseWriter, r *http.Request, flusher http.Flusher, clientChan chan *entities.BedEvent, streamName string) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			log.Printf("Client disconnected from %s stream", streamName)
			return
		case <-ticker.C:
			h.sendEvent(w, "heartbeat", map[string]interface{}{
				"timestamp": time.Now(),
			})
			flusher.Flush()
		case event := <-clientChan:
			if event == nil {
				continue
			}
			h.sendEvent(w, string(event.EventType), event)
			flusher.Flush()
		}
	}
}

// forwardEvents forwards events from the event bus to a client channel
func (h *SSEHandler) forwardEvents(ctx context.Context, eventChan <-chan *entities.BedEvent, clientChan chan<- *entities.BedEvent) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-eventChan:
			if !ok {
				return
			}
			select {
			case clientChan <- event:
			default:
				// Client channel full, skip event
			}
		}
	}
}

// forwardRegionalEvents forwards only events whose facility lies within the
// requested radius
func (h *SSEHandler) forwardRegionalEvents(ctx context.Context, eventChan <-chan *entities.BedEvent, clientChan chan<- *entities.BedEvent, lat, lon, radiusKm float64) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-eventChan:
			if !ok {
				return
			}
			distance := geo.DistanceKm(lat, lon, event.Location.Latitude, event.Location.Longitude)
			if distance <= radiusKm {
				select {
				case clientChan <- event:
				default:
					// Client channel full, skip event
				}
			}
		}
	}
}

// registerClient registers a client for a channel
func (h *SSEHandler) registerClient(channel string, clientChan chan *entities.BedEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.clients[channel] == nil {
		h.clients[channel] = make(map[chan *entities.BedEvent]bool)
	}
	h.clients[channel][clientChan] = true
	log.Printf("Client registered for channel: %s (total: %d)", channel, len(h.clients[channel]))
}

// unregisterClient unregisters a client from a channel
func (h *SSEHandler) unregisterClient(channel string, clientChan chan *entities.BedEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if clients, exists := h.clients[channel]; exists {
		delete(clients, clientChan)
		log.Printf("Client unregistered from channel: %s (remaining: %d)", channel, len(clients))

		if len(clients) == 0 {
			delete(h.clients, channel)
		}
	}
}

// sendEvent sends an SSE event to the client
func (h *SSEHandler) sendEvent(w http.ResponseWriter, eventType string, data interface{}) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		log.Printf("Failed to marshal event data: %v", err)
		return
	}

	fmt.Fprintf(w, "event: %s\n", eventType)
	fmt.Fprintf(w, "data: %s\n\n", jsonData)
}

// GetClientCount returns the number of connected clients for debugging
func (h *SSEHandler) GetClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	count := 0
	for _, clients := range h.clients {
		count += len(clients)
	}
	return count
}
