package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/lifeline-health/bedfinder/internal/adapters/memory"
	"github.com/lifeline-health/bedfinder/internal/domain/entities"
)

func testFacility(id, name string, lat, lon float64, generalAvail, icuAvail int) *entities.Facility {
	return &entities.Facility{
		ID:          id,
		Name:        name,
		Location:    entities.Location{Latitude: lat, Longitude: lon},
		GeneralBeds: entities.BedPool{Total: 50, Available: generalAvail},
		ICUBeds:     entities.BedPool{Total: 10, Available: icuAvail},
	}
}

func TestRank_NearestFirst(t *testing.T) {
	store := memory.NewFacilityStoreWith([]*entities.Facility{
		testFacility("far", "Far Hospital", 26.9, 81.1, 10, 2),
		testFacility("near", "Near Hospital", 26.85, 80.95, 10, 2),
	})
	svc := NewDiscoveryService(store)

	user := &entities.Location{Latitude: 26.8467, Longitude: 80.9462}
	ranked, err := svc.Rank(context.Background(), user, entities.FilterAll)
	require.NoError(t, err)
	require.Len(t, ranked, 2)

	assert.Equal(t, "near", ranked[0].Facility.ID)
	assert.Equal(t, "far", ranked[1].Facility.ID)
	assert.Less(t, ranked[0].DistanceKm, ranked[1].DistanceKm)
}

func TestRank_EquidistantKeepsInsertionOrder(t *testing.T) {
	// A and B share coordinates; C is further away. The tie must resolve
	// in insertion order.
	store := memory.NewFacilityStoreWith([]*entities.Facility{
		testFacility("a", "Hospital A", 26.87, 80.96, 5, 1),
		testFacility("b", "Hospital B", 26.87, 80.96, 5, 1),
		testFacility("c", "Hospital C", 27.0, 81.2, 5, 1),
	})
	svc := NewDiscoveryService(store)

	user := &entities.Location{Latitude: 26.8467, Longitude: 80.9462}
	ranked, err := svc.Rank(context.Background(), user, entities.FilterAll)
	require.NoError(t, err)
	require.Len(t, ranked, 3)

	assert.Equal(t, "a", ranked[0].Facility.ID)
	assert.Equal(t, "b", ranked[1].Facility.ID)
	assert.Equal(t, "c", ranked[2].Facility.ID)
	assert.Equal(t, ranked[0].DistanceKm, ranked[1].DistanceKm)
}

func TestRank_NoUserLocation(t *testing.T) {
	store := memory.NewFacilityStoreWith([]*entities.Facility{
		testFacility("first", "First", 26.9, 81.1, 5, 1),
		testFacility("second", "Second", 26.85, 80.95, 5, 1),
	})
	svc := NewDiscoveryService(store)

	ranked, err := svc.Rank(context.Background(), nil, entities.FilterAll)
	require.NoError(t, err)
	require.Len(t, ranked, 2)

	// Without a location every distance is zero and insertion order holds
	assert.Equal(t, "first", ranked[0].Facility.ID)
	assert.Equal(t, "second", ranked[1].Facility.ID)
	assert.Zero(t, ranked[0].DistanceKm)
	assert.Zero(t, ranked[1].DistanceKm)
}

func TestRank_ICUOnlyFilter(t *testing.T) {
	store := memory.NewFacilityStoreWith([]*entities.Facility{
		testFacility("with-icu", "With ICU", 26.85, 80.95, 5, 3),
		testFacility("no-icu", "No ICU", 26.85, 80.95, 5, 0),
	})
	svc := NewDiscoveryService(store)

	ranked, err := svc.Rank(context.Background(), nil, entities.FilterICUOnly)
	require.NoError(t, err)
	require.Len(t, ranked, 1)
	assert.Equal(t, "with-icu", ranked[0].Facility.ID)
}

func TestRank_GeneralOnlyFilter(t *testing.T) {
	store := memory.NewFacilityStoreWith([]*entities.Facility{
		testFacility("full", "Full House", 26.85, 80.95, 0, 3),
		testFacility("open", "Open Beds", 26.85, 80.95, 5, 0),
	})
	svc := NewDiscoveryService(store)

	ranked, err := svc.Rank(context.Background(), nil, entities.FilterGeneralOnly)
	require.NoError(t, err)
	require.Len(t, ranked, 1)
	assert.Equal(t, "open", ranked[0].Facility.ID)
}

func TestRank_EmptyFilterDefaultsToAll(t *testing.T) {
	store := memory.NewFacilityStoreWith([]*entities.Facility{
		testFacility("f1", "One", 26.85, 80.95, 0, 0),
	})
	svc := NewDiscoveryService(store)

	ranked, err := svc.Rank(context.Background(), nil, "")
	require.NoError(t, err)
	assert.Len(t, ranked, 1)
}

func TestRank_InvalidFilter(t *testing.T) {
	svc := NewDiscoveryService(memory.NewFacilityStore())

	_, err := svc.Rank(context.Background(), nil, "ICU_PREFERRED")
	assert.Error(t, err)
}

func TestRank_CapacityStatusBuckets(t *testing.T) {
	store := memory.NewFacilityStoreWith([]*entities.Facility{
		testFacility("plenty", "Plenty", 26.85, 80.95, 25, 5),
		testFacility("few", "Few", 26.85, 80.95, 3, 0),
		testFacility("none", "None", 26.85, 80.95, 0, 0),
	})
	svc := NewDiscoveryService(store)

	ranked, err := svc.Rank(context.Background(), nil, entities.FilterAll)
	require.NoError(t, err)
	require.Len(t, ranked, 3)

	assert.Equal(t, entities.CapacityStatusAvailable, ranked[0].CapacityStatus)
	assert.Equal(t, entities.CapacityStatusLimited, ranked[1].CapacityStatus)
	assert.Equal(t, entities.CapacityStatusCritical, ranked[2].CapacityStatus)
}

func TestCreate_Validation(t *testing.T) {
	svc := NewDiscoveryService(memory.NewFacilityStore())

	err := svc.Create(context.Background(), &entities.Facility{Name: "   "})
	assert.Error(t, err)

	err = svc.Create(context.Background(), &entities.Facility{
		Name:        "Over Capacity",
		GeneralBeds: entities.BedPool{Total: 5, Available: 6},
	})
	assert.Error(t, err)
}

func TestCreate_FillsDefaults(t *testing.T) {
	store := memory.NewFacilityStore()
	svc := NewDiscoveryService(store)

	facility := testFacility("", "Defaulted", 26.85, 80.95, 5, 1)
	err := svc.Create(context.Background(), facility)
	require.NoError(t, err)

	assert.NotEmpty(t, facility.ID)
	assert.False(t, facility.CreatedAt.IsZero())
	assert.False(t, facility.LastUpdated.IsZero())

	got, err := svc.GetByID(context.Background(), facility.ID)
	require.NoError(t, err)
	assert.Equal(t, "Defaulted", got.Name)
}
