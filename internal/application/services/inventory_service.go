package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/lifeline-health/bedfinder/internal/domain/entities"
	"github.com/lifeline-health/bedfinder/internal/domain/providers"
	"github.com/lifeline-health/bedfinder/internal/domain/repositories"
	"github.com/lifeline-health/bedfinder/internal/infrastructure/observability"
	apperrors "github.com/lifeline-health/bedfinder/pkg/errors"
)

// InventoryService handles bed availability mutations. Adjustments against
// unknown facilities are swallowed: the dashboard treats a stale facility id
// as a non-event, not a failure.
type InventoryService struct {
	facilities repositories.FacilityRepository
	eventBus   providers.EventBus
	metrics    *observability.Metrics
}

// NewInventoryService creates a new inventory service
func NewInventoryService(facilities repositories.FacilityRepository, eventBus providers.EventBus, metrics *observability.Metrics) *InventoryService {
	return &InventoryService{
		facilities: facilities,
		eventBus:   eventBus,
		metrics:    metrics,
	}
}

// AdjustBeds applies a clamped delta to one of a facility's bed pools and
// publishes the resulting availability. Returns nil without error when the
// facility does not exist.
func (s *InventoryService) AdjustBeds(ctx context.Context, facilityID string, bedType entities.BedType, delta int) (*entities.Facility, error) {
	if !bedType.Valid() {
		return nil, apperrors.NewValidationError("bed type must be general or icu")
	}
	return s.adjust(ctx, facilityID, bedType, delta, entities.BedEventAdjusted)
}

// BookBed decrements the general pool by one on behalf of a new booking.
// Unknown facility ids are swallowed the same way as AdjustBeds, so a
// booking against a stale facility never fails.
func (s *InventoryService) BookBed(ctx context.Context, facilityID string) (*entities.Facility, error) {
	return s.adjust(ctx, facilityID, entities.BedTypeGeneral, -1, entities.BedEventBooked)
}

// Lockdown zeroes both bed pools of a facility. It is a convenience over
// per-pool adjustments, not a distinct primitive: each pool gets a delta of
// minus its current availability. Returns nil without error when the
// facility does not exist.
func (s *InventoryService) Lockdown(ctx context.Context, facilityID string) (*entities.Facility, error) {
	facility, err := s.facilities.GetByID(ctx, facilityID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			observability.LoggerFromContext(ctx).Debug().
				Str("facility_id", facilityID).
				Msg("lockdown requested for unknown facility, skipping")
			return nil, nil
		}
		return nil, err
	}

	result := facility
	for _, pool := range []struct {
		bedType   entities.BedType
		available int
	}{
		{entities.BedTypeGeneral, facility.GeneralBeds.Available},
		{entities.BedTypeICU, facility.ICUBeds.Available},
	} {
		if pool.available == 0 {
			continue
		}
		updated, err := s.adjust(ctx, facilityID, pool.bedType, -pool.available, entities.BedEventAdjusted)
		if err != nil {
			return nil, err
		}
		if updated != nil {
			result = updated
		}
	}

	return result, nil
}

func (s *InventoryService) adjust(ctx context.Context, facilityID string, bedType entities.BedType, delta int, eventType entities.BedEventType) (*entities.Facility, error) {
	facility, err := s.facilities.AdjustBeds(ctx, facilityID, bedType, delta)
	if err != nil {
		if apperrors.IsNotFound(err) {
			observability.LoggerFromContext(ctx).Debug().
				Str("facility_id", facilityID).
				Str("bed_type", string(bedType)).
				Int("delta", delta).
				Msg("bed adjustment for unknown facility, skipping")
			return nil, nil
		}
		return nil, err
	}

	observability.RecordBedAdjustment(ctx, s.metrics, facilityID, string(bedType))
	s.publish(ctx, facility, bedType, eventType)

	return facility, nil
}

// publish broadcasts the new availability on the global and per-facility
// channels. Publish failures are logged, never surfaced: the write already
// happened and subscribers will catch up on the next event.
func (s *InventoryService) publish(ctx context.Context, facility *entities.Facility, bedType entities.BedType, eventType entities.BedEventType) {
	if s.eventBus == nil {
		return
	}

	pool := facility.Pool(bedType)
	event := &entities.BedEvent{
		ID:             uuid.New().String(),
		EventType:      eventType,
		FacilityID:     facility.ID,
		BedType:        bedType,
		Available:      pool.Available,
		Total:          pool.Total,
		CapacityStatus: entities.CapacityStatusFor(facility.TotalAvailable()),
		Location:       facility.Location,
		OccurredAt:     time.Now().UTC(),
	}

	for _, channel := range []string{
		providers.EventChannelBedUpdates,
		providers.GetFacilityChannel(facility.ID),
	} {
		if err := s.eventBus.Publish(ctx, channel, event); err != nil {
			observability.LoggerFromContext(ctx).Error().Err(err).
				Str("channel", channel).
				Str("facility_id", facility.ID).
				Msg("failed to publish bed event")
		}
	}
}
