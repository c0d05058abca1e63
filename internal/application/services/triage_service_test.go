package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/lifeline-health/bedfinder/internal/adapters/memory"
	"github.com/lifeline-health/bedfinder/internal/domain/entities"
)

type stubTriageProvider struct {
	advice   string
	err      error
	snapshot []entities.TriageFacilitySnapshot
}

func (p *stubTriageProvider) Advise(_ context.Context, _ string, snapshot []entities.TriageFacilitySnapshot) (string, error) {
	p.snapshot = snapshot
	return p.advice, p.err
}

// blockingTriageProvider holds a call open until released
type blockingTriageProvider struct {
	entered chan struct{}
	release chan struct{}
	once    sync.Once
}

func (p *blockingTriageProvider) Advise(_ context.Context, _ string, _ []entities.TriageFacilitySnapshot) (string, error) {
	p.once.Do(func() { close(p.entered) })
	<-p.release
	return "advice after wait", nil
}

func TestGetAdvice_ReturnsProviderText(t *testing.T) {
	store := memory.NewFacilityStoreWith([]*entities.Facility{
		testFacility("f1", "SGPGI", 26.74, 80.94, 12, 3),
	})
	provider := &stubTriageProvider{advice: "Go to SGPGI, 12 general beds free."}
	svc := NewTriageService(store, provider)

	advice := svc.GetAdvice(context.Background(), "chest pain and shortness of breath")
	assert.Equal(t, "Go to SGPGI, 12 general beds free.", advice)

	require.Len(t, provider.snapshot, 1)
	assert.Equal(t, "SGPGI", provider.snapshot[0].Name)
	assert.Equal(t, 12, provider.snapshot[0].AvailableGeneral)
	assert.Equal(t, 3, provider.snapshot[0].AvailableICU)
}

func TestGetAdvice_ProviderFailureResolvesToFallback(t *testing.T) {
	store := memory.NewFacilityStore()
	provider := &stubTriageProvider{err: errors.New("connection refused")}
	svc := NewTriageService(store, provider)

	advice := svc.GetAdvice(context.Background(), "severe bleeding")
	assert.Equal(t, FallbackAdvice, advice)
}

func TestGetAdvice_EmptyProviderTextResolvesToFallback(t *testing.T) {
	svc := NewTriageService(memory.NewFacilityStore(), &stubTriageProvider{advice: ""})

	advice := svc.GetAdvice(context.Background(), "severe bleeding")
	assert.Equal(t, FallbackAdvice, advice)
}

func TestGetAdvice_NilProviderResolvesToFallback(t *testing.T) {
	svc := NewTriageService(memory.NewFacilityStore(), nil)

	advice := svc.GetAdvice(context.Background(), "head injury")
	assert.Equal(t, FallbackAdvice, advice)
}

func TestGetAdvice_OverlappingSubmissionResolvesToFallback(t *testing.T) {
	provider := &blockingTriageProvider{
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
	svc := NewTriageService(memory.NewFacilityStore(), provider)

	firstDone := make(chan string)
	go func() {
		firstDone <- svc.GetAdvice(context.Background(), "first query")
	}()

	<-provider.entered
	// The first call is still inside the provider; the busy flag must
	// bounce this one straight to the fallback text.
	assert.Equal(t, FallbackAdvice, svc.GetAdvice(context.Background(), "second query"))

	close(provider.release)
	assert.Equal(t, "advice after wait", <-firstDone)

	// Once the first call resolves the guard is released again
	assert.Equal(t, "advice after wait", svc.GetAdvice(context.Background(), "third query"))
}
