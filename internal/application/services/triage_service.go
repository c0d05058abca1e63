package services

import (
	"context"
	"sync/atomic"

	"github.com/lifeline-health/bedfinder/internal/domain/entities"
	"github.com/lifeline-health/bedfinder/internal/domain/providers"
	"github.com/lifeline-health/bedfinder/internal/domain/repositories"
	"github.com/lifeline-health/bedfinder/internal/infrastructure/observability"
)

// FallbackAdvice is returned whenever the external advisor cannot produce
// text. Triage never fails visibly; in the worst case the user is pointed
// at the list they can already see.
const FallbackAdvice = "Unable to connect to triage AI. Please refer to the hospital availability list below."

// TriageService turns a free-text emergency query into dispatcher-style
// advice grounded in the current bed availability snapshot
type TriageService struct {
	facilities repositories.FacilityRepository
	provider   providers.TriageProvider
	busy       atomic.Bool
}

// NewTriageService creates a new triage service. A nil provider is allowed;
// every query then resolves to the fallback text.
func NewTriageService(facilities repositories.FacilityRepository, provider providers.TriageProvider) *TriageService {
	return &TriageService{
		facilities: facilities,
		provider:   provider,
	}
}

// GetAdvice resolves a query to advisory text. It never returns an error:
// provider failures, snapshot failures and overlapping submissions all
// resolve to the fallback string. One request is in flight at a time.
func (s *TriageService) GetAdvice(ctx context.Context, query string) string {
	if !s.busy.CompareAndSwap(false, true) {
		observability.LoggerFromContext(ctx).Warn().Msg("triage request rejected, another is in flight")
		return FallbackAdvice
	}
	defer s.busy.Store(false)

	if s.provider == nil {
		return FallbackAdvice
	}

	facilities, err := s.facilities.List(ctx)
	if err != nil {
		observability.LoggerFromContext(ctx).Error().Err(err).Msg("failed to load facilities for triage snapshot")
		return FallbackAdvice
	}

	advice, err := s.provider.Advise(ctx, query, entities.SnapshotForTriage(facilities))
	if err != nil {
		observability.LoggerFromContext(ctx).Error().Err(err).Msg("triage advisor call failed")
		return FallbackAdvice
	}
	if advice == "" {
		observability.LoggerFromContext(ctx).Error().Msg("triage advisor returned empty advice")
		return FallbackAdvice
	}

	return advice
}
