package entities

import (
	"time"
)

// BookingStatus represents the status of a bed reservation
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "PENDING"
	BookingStatusArrived   BookingStatus = "ARRIVED"
	BookingStatusCancelled BookingStatus = "CANCELLED"
)

// Valid reports whether the status is one of the known states
func (s BookingStatus) Valid() bool {
	switch s {
	case BookingStatusPending, BookingStatusArrived, BookingStatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether the status permits no further transition
func (s BookingStatus) Terminal() bool {
	return s == BookingStatusArrived || s == BookingStatusCancelled
}

// Booking represents a patient's reservation against a facility's general
// bed pool. The facility reference is by id only; there is no referential
// integrity with the facility list.
type Booking struct {
	ID            string        `json:"id" db:"id"`
	FacilityID    string        `json:"facility_id" db:"facility_id"`
	PatientName   string        `json:"patient_name" db:"patient_name"`
	ContactNumber string        `json:"contact_number" db:"contact_number"`
	EmergencyType string        `json:"emergency_type" db:"emergency_type"`
	Status        BookingStatus `json:"status" db:"status"`
	CreatedAt     time.Time     `json:"created_at" db:"created_at"`
}
