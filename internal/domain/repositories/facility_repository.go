package repositories

import (
	"context"

	"github.com/lifeline-health/bedfinder/internal/domain/entities"
)

// FacilityRepository defines the interface for facility data operations
type FacilityRepository interface {
	// Create creates a new facility
	Create(ctx context.Context, facility *entities.Facility) error

	// GetByID retrieves a facility by ID
	GetByID(ctx context.Context, id string) (*entities.Facility, error)

	// List retrieves all facilities in insertion order
	List(ctx context.Context) ([]*entities.Facility, error)

	// AdjustBeds applies a clamped delta to one of a facility's bed pools
	// and bumps its last-updated timestamp, returning the updated facility.
	// The new available count is clamp(available+delta, 0, total); the
	// timestamp moves even when the clamped value is unchanged.
	AdjustBeds(ctx context.Context, facilityID string, bedType entities.BedType, delta int) (*entities.Facility, error)
}
