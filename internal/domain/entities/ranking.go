package entities

// AvailabilityFilter narrows the ranked facility list to those with free
// beds in a given pool
type AvailabilityFilter string

const (
	FilterAll         AvailabilityFilter = "ALL"
	FilterICUOnly     AvailabilityFilter = "ICU_ONLY"
	FilterGeneralOnly AvailabilityFilter = "GENERAL_ONLY"
)

// Valid reports whether the filter is one of the known variants
func (f AvailabilityFilter) Valid() bool {
	switch f {
	case FilterAll, FilterICUOnly, FilterGeneralOnly:
		return true
	}
	return false
}

// CapacityStatus is the derived status bucket shown on the map
type CapacityStatus string

const (
	CapacityStatusAvailable CapacityStatus = "available"
	CapacityStatusLimited   CapacityStatus = "limited"
	CapacityStatusCritical  CapacityStatus = "critical"
)

// CapacityStatusFor buckets a combined available-bed count into the map
// marker status: more than 20 free beds reads as available, 1-20 as
// limited, none as critical.
func CapacityStatusFor(totalAvailable int) CapacityStatus {
	switch {
	case totalAvailable > 20:
		return CapacityStatusAvailable
	case totalAvailable > 0:
		return CapacityStatusLimited
	default:
		return CapacityStatusCritical
	}
}

// RankedFacility is one row of the distance-sorted facility view
type RankedFacility struct {
	Facility       *Facility      `json:"facility"`
	DistanceKm     float64        `json:"distance_km"`
	CapacityStatus CapacityStatus `json:"capacity_status"`
}
