package entities

import (
	"time"
)

// BedEventType identifies what kind of inventory change occurred
type BedEventType string

const (
	BedEventAdjusted BedEventType = "beds_adjusted"
	BedEventBooked   BedEventType = "bed_booked"
)

// BedEvent is published whenever a facility's bed availability changes so
// that dashboards can re-render without polling
type BedEvent struct {
	ID             string         `json:"id"`
	EventType      BedEventType   `json:"event_type"`
	FacilityID     string         `json:"facility_id"`
	BedType        BedType        `json:"bed_type"`
	Available      int            `json:"available"`
	Total          int            `json:"total"`
	CapacityStatus CapacityStatus `json:"capacity_status"`
	Location       Location       `json:"location"`
	OccurredAt     time.Time      `json:"occurred_at"`
}
