package services

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lifeline-health/bedfinder/internal/domain/entities"
	"github.com/lifeline-health/bedfinder/internal/domain/repositories"
	"github.com/lifeline-health/bedfinder/pkg/errors"
	"github.com/lifeline-health/bedfinder/pkg/geo"
)

// DiscoveryService handles the facility directory and the distance-ranked
// view the dashboard renders
type DiscoveryService struct {
	facilities repositories.FacilityRepository
}

// NewDiscoveryService creates a new discovery service
func NewDiscoveryService(facilities repositories.FacilityRepository) *DiscoveryService {
	return &DiscoveryService{
		facilities: facilities,
	}
}

// Create registers a new facility. New pools start fully available unless
// the caller says otherwise.
func (s *DiscoveryService) Create(ctx context.Context, facility *entities.Facility) error {
	if strings.TrimSpace(facility.Name) == "" {
		return errors.NewValidationError("facility name is required")
	}
	if facility.GeneralBeds.Total < 0 || facility.ICUBeds.Total < 0 {
		return errors.NewValidationError("bed totals cannot be negative")
	}
	if facility.GeneralBeds.Available > facility.GeneralBeds.Total || facility.ICUBeds.Available > facility.ICUBeds.Total {
		return errors.NewValidationError("available beds cannot exceed total beds")
	}

	if facility.ID == "" {
		facility.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	if facility.CreatedAt.IsZero() {
		facility.CreatedAt = now
	}
	if facility.LastUpdated.IsZero() {
		facility.LastUpdated = now
	}

	return s.facilities.Create(ctx, facility)
}

// GetByID retrieves a facility by ID
func (s *DiscoveryService) GetByID(ctx context.Context, id string) (*entities.Facility, error) {
	return s.facilities.GetByID(ctx, id)
}

// List retrieves all facilities in insertion order
func (s *DiscoveryService) List(ctx context.Context) ([]*entities.Facility, error) {
	return s.facilities.List(ctx)
}

// Rank returns the facility list sorted by distance from the user, nearest
// first, after dropping facilities the availability filter excludes. The
// sort is stable, so equidistant facilities keep their insertion order.
// With no user location every distance is zero and the list comes back in
// insertion order.
func (s *DiscoveryService) Rank(ctx context.Context, userLocation *entities.Location, filter entities.AvailabilityFilter) ([]*entities.RankedFacility, error) {
	if filter == "" {
		filter = entities.FilterAll
	}
	if !filter.Valid() {
		return nil, errors.NewValidationError("filter must be one of ALL, ICU_ONLY, GENERAL_ONLY")
	}

	facilities, err := s.facilities.List(ctx)
	if err != nil {
		return nil, err
	}

	ranked := make([]*entities.RankedFacility, 0, len(facilities))
	for _, facility := range facilities {
		if !matchesFilter(facility, filter) {
			continue
		}

		distance := 0.0
		if userLocation != nil {
			distance = geo.DistanceKm(
				userLocation.Latitude, userLocation.Longitude,
				facility.Location.Latitude, facility.Location.Longitude,
			)
		}

		ranked = append(ranked, &entities.RankedFacility{
			Facility:       facility,
			DistanceKm:     distance,
			CapacityStatus: entities.CapacityStatusFor(facility.TotalAvailable()),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].DistanceKm < ranked[j].DistanceKm
	})

	return ranked, nil
}

func matchesFilter(facility *entities.Facility, filter entities.AvailabilityFilter) bool {
	switch filter {
	case entities.FilterICUOnly:
		return facility.ICUBeds.Available > 0
	case entities.FilterGeneralOnly:
		return facility.GeneralBeds.Available > 0
	default:
		return true
	}
}
