package providers

import (
	"context"

	"github.com/lifeline-health/bedfinder/internal/domain/entities"
)

// TriageProvider defines the interface for the external triage advisor.
// Implementations make exactly one request per call; retrying and fallback
// wording belong to the caller.
type TriageProvider interface {
	// Advise returns dispatcher-style advice for a free-text emergency
	// query given the current bed availability snapshot.
	Advise(ctx context.Context, query string, snapshot []entities.TriageFacilitySnapshot) (string, error)
}
