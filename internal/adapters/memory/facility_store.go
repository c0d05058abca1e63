package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/lifeline-health/bedfinder/internal/domain/entities"
	"github.com/lifeline-health/bedfinder/internal/domain/repositories"
	apperrors "github.com/lifeline-health/bedfinder/pkg/errors"
)

// FacilityStore is an in-memory FacilityRepository. Mutations replace the
// whole slice (copy-then-swap), so readers always observe a consistent
// snapshot. Insertion order is preserved for stable ranking ties.
type FacilityStore struct {
	mu         sync.RWMutex
	facilities []*entities.Facility
}

// NewFacilityStore creates an empty in-memory facility store
func NewFacilityStore() *FacilityStore {
	return &FacilityStore{}
}

// NewFacilityStoreWith creates a store pre-populated with the given facilities
func NewFacilityStoreWith(facilities []*entities.Facility) *FacilityStore {
	s := NewFacilityStore()
	for _, f := range facilities {
		clone := cloneFacility(f)
		s.facilities = append(s.facilities, &clone)
	}
	return s
}

var _ repositories.FacilityRepository = (*FacilityStore)(nil)

// Create appends a facility to the store
func (s *FacilityStore) Create(_ context.Context, facility *entities.Facility) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, f := range s.facilities {
		if f.ID == facility.ID {
			return apperrors.NewConflictError(fmt.Sprintf("facility with id %s already exists", facility.ID))
		}
	}

	if facility.CreatedAt.IsZero() {
		facility.CreatedAt = time.Now()
	}
	if facility.LastUpdated.IsZero() {
		facility.LastUpdated = facility.CreatedAt
	}

	clone := cloneFacility(facility)
	next := make([]*entities.Facility, 0, len(s.facilities)+1)
	next = append(next, s.facilities...)
	next = append(next, &clone)
	s.facilities = next
	return nil
}

// GetByID retrieves a facility by ID
func (s *FacilityStore) GetByID(_ context.Context, id string) (*entities.Facility, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, f := range s.facilities {
		if f.ID == id {
			clone := cloneFacility(f)
			return &clone, nil
		}
	}
	return nil, apperrors.NewNotFoundError(fmt.Sprintf("facility with id %s not found", id))
}

// List retrieves all facilities in insertion order
func (s *FacilityStore) List(_ context.Context) ([]*entities.Facility, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*entities.Facility, 0, len(s.facilities))
	for _, f := range s.facilities {
		clone := cloneFacility(f)
		out = append(out, &clone)
	}
	return out, nil
}

// AdjustBeds applies a clamped delta to one bed pool and bumps the
// last-updated timestamp, even when the clamped value did not change.
func (s *FacilityStore) AdjustBeds(_ context.Context, facilityID string, bedType entities.BedType, delta int) (*entities.Facility, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]*entities.Facility, len(s.facilities))
	var updated *entities.Facility

	for i, f := range s.facilities {
		if f.ID != facilityID {
			next[i] = f
			continue
		}

		clone := cloneFacility(f)
		pool := &clone.GeneralBeds
		if bedType == entities.BedTypeICU {
			pool = &clone.ICUBeds
		}
		pool.Available = clamp(pool.Available+delta, 0, pool.Total)
		clone.LastUpdated = time.Now()

		next[i] = &clone
		updated = &clone
	}

	if updated == nil {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("facility with id %s not found", facilityID))
	}

	s.facilities = next
	result := cloneFacility(updated)
	return &result, nil
}

func clamp(value, low, high int) int {
	if value < low {
		return low
	}
	if value > high {
		return high
	}
	return value
}

func cloneFacility(f *entities.Facility) entities.Facility {
	clone := *f
	if f.Achievements != nil {
		clone.Achievements = append([]string(nil), f.Achievements...)
	}
	if f.EstablishmentYear != nil {
		year := *f.EstablishmentYear
		clone.EstablishmentYear = &year
	}
	return clone
}
