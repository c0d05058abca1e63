package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/lifeline-health/bedfinder/internal/domain/entities"
	"github.com/lifeline-health/bedfinder/internal/domain/repositories"
	apperrors "github.com/lifeline-health/bedfinder/pkg/errors"
)

// BookingStore is an in-memory append-only BookingRepository
type BookingStore struct {
	mu       sync.RWMutex
	bookings []*entities.Booking
}

// NewBookingStore creates an empty in-memory booking store
func NewBookingStore() *BookingStore {
	return &BookingStore{}
}

var _ repositories.BookingRepository = (*BookingStore)(nil)

// Create appends a booking to the ledger
func (s *BookingStore) Create(_ context.Context, booking *entities.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, b := range s.bookings {
		if b.ID == booking.ID {
			return apperrors.NewConflictError(fmt.Sprintf("booking with id %s already exists", booking.ID))
		}
	}

	clone := *booking
	next := make([]*entities.Booking, 0, len(s.bookings)+1)
	next = append(next, s.bookings...)
	next = append(next, &clone)
	s.bookings = next
	return nil
}

// GetByID retrieves a booking by ID
func (s *BookingStore) GetByID(_ context.Context, id string) (*entities.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, b := range s.bookings {
		if b.ID == id {
			clone := *b
			return &clone, nil
		}
	}
	return nil, apperrors.NewNotFoundError(fmt.Sprintf("booking with id %s not found", id))
}

// List retrieves bookings matching the filter, oldest first
func (s *BookingStore) List(_ context.Context, filter repositories.BookingFilter) ([]*entities.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*entities.Booking
	for _, b := range s.bookings {
		if filter.FacilityID != "" && b.FacilityID != filter.FacilityID {
			continue
		}
		if filter.Status != nil && b.Status != *filter.Status {
			continue
		}
		clone := *b
		out = append(out, &clone)
	}
	return out, nil
}

// UpdateStatus sets the status of a booking
func (s *BookingStore) UpdateStatus(_ context.Context, id string, status entities.BookingStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]*entities.Booking, len(s.bookings))
	found := false
	for i, b := range s.bookings {
		if b.ID != id {
			next[i] = b
			continue
		}
		clone := *b
		clone.Status = status
		next[i] = &clone
		found = true
	}

	if !found {
		return apperrors.NewNotFoundError(fmt.Sprintf("booking with id %s not found", id))
	}

	s.bookings = next
	return nil
}
