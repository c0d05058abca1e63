package entities

import (
	"time"
)

// BedType identifies one of a facility's two bed pools
type BedType string

const (
	BedTypeGeneral BedType = "general"
	BedTypeICU     BedType = "icu"
)

// Valid reports whether the bed type is one of the known pools
func (b BedType) Valid() bool {
	return b == BedTypeGeneral || b == BedTypeICU
}

// BedPool tracks capacity for one category of beds. Total is fixed at
// facility creation; Available always stays within [0, Total].
type BedPool struct {
	Total     int `json:"total" db:"total"`
	Available int `json:"available" db:"available"`
}

// Facility represents a hospital participating in the emergency bed network
type Facility struct {
	ID                string    `json:"id" db:"id"`
	Name              string    `json:"name" db:"name"`
	Address           string    `json:"address" db:"address"`
	Location          Location  `json:"location" db:"-"`
	Contact           string    `json:"contact" db:"contact"`
	EstablishmentYear *int      `json:"establishment_year,omitempty" db:"establishment_year"`
	Achievements      []string  `json:"achievements,omitempty" db:"-"`
	GeneralBeds       BedPool   `json:"general_beds" db:"-"`
	ICUBeds           BedPool   `json:"icu_beds" db:"-"`
	LastUpdated       time.Time `json:"last_updated" db:"last_updated"`
	CreatedAt         time.Time `json:"created_at" db:"created_at"`
}

// Pool returns the requested bed pool
func (f *Facility) Pool(bedType BedType) BedPool {
	if bedType == BedTypeICU {
		return f.ICUBeds
	}
	return f.GeneralBeds
}

// TotalAvailable returns the combined free beds across both pools
func (f *Facility) TotalAvailable() int {
	return f.GeneralBeds.Available + f.ICUBeds.Available
}

// Location represents geographical coordinates
type Location struct {
	Latitude  float64 `json:"latitude" db:"latitude"`
	Longitude float64 `json:"longitude" db:"longitude"`
}
