package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/lifeline-health/bedfinder/internal/domain/entities"
	apperrors "github.com/lifeline-health/bedfinder/pkg/errors"
)

func storeFacility(id string, generalTotal, generalAvail, icuTotal, icuAvail int) *entities.Facility {
	return &entities.Facility{
		ID:          id,
		Name:        "Facility " + id,
		GeneralBeds: entities.BedPool{Total: generalTotal, Available: generalAvail},
		ICUBeds:     entities.BedPool{Total: icuTotal, Available: icuAvail},
	}
}

func TestFacilityStore_CreateAndGet(t *testing.T) {
	store := NewFacilityStore()

	err := store.Create(context.Background(), storeFacility("f1", 10, 5, 2, 1))
	require.NoError(t, err)

	got, err := store.GetByID(context.Background(), "f1")
	require.NoError(t, err)
	assert.Equal(t, 5, got.GeneralBeds.Available)
	assert.False(t, got.LastUpdated.IsZero())
}

func TestFacilityStore_CreateDuplicateConflicts(t *testing.T) {
	store := NewFacilityStore()

	require.NoError(t, store.Create(context.Background(), storeFacility("f1", 10, 5, 2, 1)))
	err := store.Create(context.Background(), storeFacility("f1", 10, 5, 2, 1))
	require.Error(t, err)

	appErr, ok := err.(*apperrors.AppError)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrorTypeConflict, appErr.Type)
}

func TestFacilityStore_GetUnknown(t *testing.T) {
	store := NewFacilityStore()

	_, err := store.GetByID(context.Background(), "ghost")
	assert.True(t, apperrors.IsNotFound(err))
}

func TestFacilityStore_ListPreservesInsertionOrder(t *testing.T) {
	store := NewFacilityStore()
	for _, id := range []string{"c", "a", "b"} {
		require.NoError(t, store.Create(context.Background(), storeFacility(id, 10, 5, 2, 1)))
	}

	facilities, err := store.List(context.Background())
	require.NoError(t, err)
	require.Len(t, facilities, 3)
	assert.Equal(t, "c", facilities[0].ID)
	assert.Equal(t, "a", facilities[1].ID)
	assert.Equal(t, "b", facilities[2].ID)
}

func TestFacilityStore_AdjustBedsClampsBothEnds(t *testing.T) {
	store := NewFacilityStoreWith([]*entities.Facility{
		storeFacility("f1", 10, 5, 4, 2),
	})

	got, err := store.AdjustBeds(context.Background(), "f1", entities.BedTypeGeneral, -100)
	require.NoError(t, err)
	assert.Equal(t, 0, got.GeneralBeds.Available)

	got, err = store.AdjustBeds(context.Background(), "f1", entities.BedTypeGeneral, 100)
	require.NoError(t, err)
	assert.Equal(t, 10, got.GeneralBeds.Available)

	// The other pool is untouched
	assert.Equal(t, 2, got.ICUBeds.Available)
}

func TestFacilityStore_AdjustBedsBumpsTimestamp(t *testing.T) {
	store := NewFacilityStoreWith([]*entities.Facility{
		storeFacility("f1", 10, 0, 4, 2),
	})

	before, err := store.GetByID(context.Background(), "f1")
	require.NoError(t, err)

	// Clamped no-change adjustment still moves the timestamp
	got, err := store.AdjustBeds(context.Background(), "f1", entities.BedTypeGeneral, -1)
	require.NoError(t, err)
	assert.Equal(t, 0, got.GeneralBeds.Available)
	assert.True(t, got.LastUpdated.After(before.LastUpdated))
}

func TestFacilityStore_AdjustBedsUnknown(t *testing.T) {
	store := NewFacilityStore()

	_, err := store.AdjustBeds(context.Background(), "ghost", entities.BedTypeGeneral, 1)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestFacilityStore_ReturnedCopiesAreIsolated(t *testing.T) {
	store := NewFacilityStoreWith([]*entities.Facility{
		storeFacility("f1", 10, 5, 4, 2),
	})

	got, err := store.GetByID(context.Background(), "f1")
	require.NoError(t, err)
	got.GeneralBeds.Available = 0

	again, err := store.GetByID(context.Background(), "f1")
	require.NoError(t, err)
	assert.Equal(t, 5, again.GeneralBeds.Available)
}
