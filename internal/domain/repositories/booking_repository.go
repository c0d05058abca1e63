package repositories

import (
	"context"

	"github.com/lifeline-health/bedfinder/internal/domain/entities"
)

// BookingRepository defines the interface for booking ledger operations
type BookingRepository interface {
	// Create appends a new booking to the ledger
	Create(ctx context.Context, booking *entities.Booking) error

	// GetByID retrieves a booking by ID
	GetByID(ctx context.Context, id string) (*entities.Booking, error)

	// List retrieves bookings with filters, oldest first
	List(ctx context.Context, filter BookingFilter) ([]*entities.Booking, error)

	// UpdateStatus sets the status of a booking
	UpdateStatus(ctx context.Context, id string, status entities.BookingStatus) error
}

// BookingFilter defines filters for listing bookings
type BookingFilter struct {
	FacilityID string
	Status     *entities.BookingStatus
}
