package services

import (
	"context"
	"math/rand"
	"strings"
	"time"

	"github.com/lifeline-health/bedfinder/internal/domain/entities"
	"github.com/lifeline-health/bedfinder/internal/domain/repositories"
	"github.com/lifeline-health/bedfinder/internal/infrastructure/observability"
	apperrors "github.com/lifeline-health/bedfinder/pkg/errors"
)

// BookingService handles the patient reservation ledger. Creating a booking
// also claims a general bed at the target facility; the two writes are not
// transactional, matching the dashboard's append-then-decrement flow.
type BookingService struct {
	bookings  repositories.BookingRepository
	inventory *InventoryService
	metrics   *observability.Metrics
}

// NewBookingService creates a new booking service
func NewBookingService(bookings repositories.BookingRepository, inventory *InventoryService, metrics *observability.Metrics) *BookingService {
	return &BookingService{
		bookings:  bookings,
		inventory: inventory,
		metrics:   metrics,
	}
}

// CreateBookingInput carries the patient details for a new reservation
type CreateBookingInput struct {
	FacilityID    string
	PatientName   string
	ContactNumber string
	EmergencyType string
}

// Create appends a PENDING booking and decrements the facility's general
// pool by one. The decrement clamps at zero, so booking a full facility
// still succeeds: the ward sorts out the overflow, not the software. An
// unknown facility id leaves the pools untouched but the booking is still
// recorded. Patient name and contact are taken as given, empty included;
// intake staff fill gaps over the phone.
func (s *BookingService) Create(ctx context.Context, input CreateBookingInput) (*entities.Booking, error) {
	if strings.TrimSpace(input.FacilityID) == "" {
		return nil, apperrors.NewValidationError("facility id is required")
	}

	booking := &entities.Booking{
		ID:            newBookingID(),
		FacilityID:    input.FacilityID,
		PatientName:   input.PatientName,
		ContactNumber: input.ContactNumber,
		EmergencyType: input.EmergencyType,
		Status:        entities.BookingStatusPending,
		CreatedAt:     time.Now().UTC(),
	}

	if err := s.bookings.Create(ctx, booking); err != nil {
		return nil, err
	}

	// Bookings always claim a general bed regardless of emergency type;
	// ICU assignment happens on arrival, outside this system.
	if _, err := s.inventory.BookBed(ctx, booking.FacilityID); err != nil {
		observability.LoggerFromContext(ctx).Error().Err(err).
			Str("booking_id", booking.ID).
			Str("facility_id", booking.FacilityID).
			Msg("failed to decrement beds for booking")
	}

	observability.RecordBooking(ctx, s.metrics, booking.FacilityID)

	return booking, nil
}

// GetByID retrieves a booking by ID
func (s *BookingService) GetByID(ctx context.Context, id string) (*entities.Booking, error) {
	return s.bookings.GetByID(ctx, id)
}

// List retrieves bookings matching the filter, oldest first
func (s *BookingService) List(ctx context.Context, filter repositories.BookingFilter) ([]*entities.Booking, error) {
	return s.bookings.List(ctx, filter)
}

// SetStatus moves a PENDING booking to ARRIVED or CANCELLED. Transitions
// apply from PENDING only: an unknown id or an already-terminal booking is
// skipped silently, returning nil without error. Cancelling does not hand
// the bed back.
func (s *BookingService) SetStatus(ctx context.Context, id string, status entities.BookingStatus) (*entities.Booking, error) {
	if status != entities.BookingStatusArrived && status != entities.BookingStatusCancelled {
		return nil, apperrors.NewValidationError("status must be ARRIVED or CANCELLED")
	}

	booking, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		if apperrors.IsNotFound(err) {
			observability.LoggerFromContext(ctx).Debug().
				Str("booking_id", id).
				Msg("status change for unknown booking, skipping")
			return nil, nil
		}
		return nil, err
	}

	if booking.Status.Terminal() {
		observability.LoggerFromContext(ctx).Debug().
			Str("booking_id", id).
			Str("status", string(booking.Status)).
			Msg("status change for terminal booking, skipping")
		return nil, nil
	}

	if err := s.bookings.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}

	booking.Status = status
	return booking, nil
}

const bookingIDAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// newBookingID generates a short reference code patients can read over the
// phone. Not cryptographically strong; collisions are vanishingly unlikely
// at dashboard scale.
func newBookingID() string {
	b := make([]byte, 9)
	for i := range b {
		b[i] = bookingIDAlphabet[rand.Intn(len(bookingIDAlphabet))]
	}
	return string(b)
}
