package memory

import (
	"context"
	"sync"

	"github.com/keystone-labs/kbs-cli/internal/core/domain"
	"github.com/keystone-labs/kbs-cli/internal/core/ports/driven"
)

// Ensure TelemetryStore implements the interface.
var _ driven.TelemetryStore = (*TelemetryStore)(nil)

// TelemetryStore is an in-memory implementation of driven.TelemetryStore.
type TelemetryStore struct {
	mu       sync.RWMutex
	searches []domain.SearchEvent
	views    []domain.ViewEvent

	// SearchErr and ViewErr force failures when set.
	SearchErr error
	ViewErr   error
}

// NewTelemetryStore creates an empty in-memory telemetry store.
func NewTelemetryStore() *TelemetryStore {
	return &TelemetryStore{}
}

// RecordSearch appends one search-history row.
func (s *TelemetryStore) RecordSearch(_ context.Context, event domain.SearchEvent) error {
	if s.SearchErr != nil {
		return domain.NewStoreError("record search", s.SearchErr)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.searches = append(s.searches, event)
	return nil
}

// RecordView appends one document-view row.
func (s *TelemetryStore) RecordView(_ context.Context, event domain.ViewEvent) error {
	if s.ViewErr != nil {
		return domain.NewStoreError("record view", s.ViewErr)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.views = append(s.views, event)
	return nil
}

// Searches returns a snapshot of recorded search events.
func (s *TelemetryStore) Searches() []domain.SearchEvent {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.SearchEvent(nil), s.searches...)
}

// Views returns a snapshot of recorded view events.
func (s *TelemetryStore) Views() []domain.ViewEvent {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.ViewEvent(nil), s.views...)
}
