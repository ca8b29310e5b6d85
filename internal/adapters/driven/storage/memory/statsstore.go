package memory

import (
	"context"
	"sync"

	"github.com/keystone-labs/kbs-cli/internal/core/domain"
	"github.com/keystone-labs/kbs-cli/internal/core/ports/driven"
)

// Ensure StatsStore implements the interface.
var _ driven.StatsStore = (*StatsStore)(nil)

// StatsStore is an in-memory implementation of driven.StatsStore with
// fixed answers, for service tests.
type StatsStore struct {
	mu sync.RWMutex

	DocumentCount int
	SearchCounts  map[string]int
	Recent        map[string][]domain.RecentSearch
	Popular       []domain.PopularDocument

	// Per-query error injection.
	CountDocumentsErr   error
	CountSearchesErr    error
	RecentSearchesErr   error
	PopularDocumentsErr error
}

// NewStatsStore creates an empty in-memory stats store.
func NewStatsStore() *StatsStore {
	return &StatsStore{
		SearchCounts: make(map[string]int),
		Recent:       make(map[string][]domain.RecentSearch),
	}
}

// CountDocuments returns the configured total document count.
func (s *StatsStore) CountDocuments(_ context.Context) (int, error) {
	if s.CountDocumentsErr != nil {
		return 0, domain.NewStoreError("count documents", s.CountDocumentsErr)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.DocumentCount, nil
}

// CountSearches returns the configured search count for userID.
func (s *StatsStore) CountSearches(_ context.Context, userID string) (int, error) {
	if s.CountSearchesErr != nil {
		return 0, domain.NewStoreError("count searches", s.CountSearchesErr)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.SearchCounts[userID], nil
}

// RecentSearches returns the configured recent searches for userID.
func (s *StatsStore) RecentSearches(_ context.Context, userID string, limit int) ([]domain.RecentSearch, error) {
	if s.RecentSearchesErr != nil {
		return nil, domain.NewStoreError("recent searches", s.RecentSearchesErr)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	recent := s.Recent[userID]
	if limit > 0 && len(recent) > limit {
		recent = recent[:limit]
	}
	return append([]domain.RecentSearch(nil), recent...), nil
}

// PopularDocuments returns the configured popular documents.
func (s *StatsStore) PopularDocuments(_ context.Context, limit int) ([]domain.PopularDocument, error) {
	if s.PopularDocumentsErr != nil {
		return nil, domain.NewStoreError("popular documents", s.PopularDocumentsErr)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	popular := s.Popular
	if limit > 0 && len(popular) > limit {
		popular = popular[:limit]
	}
	return append([]domain.PopularDocument(nil), popular...), nil
}
