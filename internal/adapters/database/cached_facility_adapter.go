package database

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/lifeline-health/bedfinder/internal/domain/entities"
	"github.com/lifeline-health/bedfinder/internal/domain/providers"
	"github.com/lifeline-health/bedfinder/internal/domain/repositories"
)

// CachedFacilityAdapter wraps a FacilityRepository with caching. Bed
// availability changes fast, so TTLs are short and every mutation
// invalidates the affected keys.
type CachedFacilityAdapter struct {
	adapter repositories.FacilityRepository
	cache   providers.CacheProvider
}

// NewCachedFacilityAdapter creates a new cached facility adapter
func NewCachedFacilityAdapter(adapter repositories.FacilityRepository, cache providers.CacheProvider) repositories.FacilityRepository {
	return &CachedFacilityAdapter{
		adapter: adapter,
		cache:   cache,
	}
}

const (
	facilityByIDTTL   = 60 * time.Second
	facilitiesListTTL = 30 * time.Second
)

func facilityCacheKey(id string) string {
	return fmt.Sprintf("facility:%s", id)
}

const facilitiesListCacheKey = "facilities:list"

// GetByID retrieves a facility by ID with caching
func (a *CachedFacilityAdapter) GetByID(ctx context.Context, id string) (*entities.Facility, error) {
	cacheKey := facilityCacheKey(id)

	if cached, err := a.cache.Get(ctx, cacheKey); err == nil {
		var facility entities.Facility
		if err := json.Unmarshal(cached, &facility); err == nil {
			return &facility, nil
		}
		log.Printf("Failed to unmarshal cached facility %s: %v", id, err)
	}

	facility, err := a.adapter.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Update cache asynchronously to avoid blocking the response
	go func() {
		bgCtx := context.Background()
		if data, err := json.Marshal(facility); err == nil {
			if err := a.cache.Set(bgCtx, cacheKey, data, facilityByIDTTL); err != nil {
				log.Printf("Failed to cache facility %s: %v", id, err)
			}
		}
	}()

	return facility, nil
}

// List retrieves all facilities with caching
func (a *CachedFacilityAdapter) List(ctx context.Context) ([]*entities.Facility, error) {
	if cached, err := a.cache.Get(ctx, facilitiesListCacheKey); err == nil {
		var facilities []*entities.Facility
		if err := json.Unmarshal(cached, &facilities); err == nil {
			return facilities, nil
		}
		log.Printf("Failed to unmarshal cached facility list: %v", err)
	}

	facilities, err := a.adapter.List(ctx)
	if err != nil {
		return nil, err
	}

	go func() {
		bgCtx := context.Background()
		if data, err := json.Marshal(facilities); err == nil {
			if err := a.cache.Set(bgCtx, facilitiesListCacheKey, data, facilitiesListTTL); err != nil {
				log.Printf("Failed to cache facility list: %v", err)
			}
		}
	}()

	return facilities, nil
}

// Create creates a facility and invalidates the list cache
func (a *CachedFacilityAdapter) Create(ctx context.Context, facility *entities.Facility) error {
	if err := a.adapter.Create(ctx, facility); err != nil {
		return err
	}
	a.invalidate(ctx, facility.ID)
	return nil
}

// AdjustBeds adjusts a bed pool and invalidates the affected cache entries
func (a *CachedFacilityAdapter) AdjustBeds(ctx context.Context, facilityID string, bedType entities.BedType, delta int) (*entities.Facility, error) {
	facility, err := a.adapter.AdjustBeds(ctx, facilityID, bedType, delta)
	if err != nil {
		return nil, err
	}
	a.invalidate(ctx, facilityID)
	return facility, nil
}

func (a *CachedFacilityAdapter) invalidate(ctx context.Context, facilityID string) {
	if err := a.cache.Delete(ctx, facilityCacheKey(facilityID)); err != nil {
		log.Printf("Failed to invalidate facility cache %s: %v", facilityID, err)
	}
	if err := a.cache.Delete(ctx, facilitiesListCacheKey); err != nil {
		log.Printf("Failed to invalidate facility list cache: %v", err)
	}
}
