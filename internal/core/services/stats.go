package services

import (
	"context"
	"errors"
	"sync"

	"github.com/keystone-labs/kbs-cli/internal/core/domain"
	"github.com/keystone-labs/kbs-cli/internal/core/ports/driven"
	"github.com/keystone-labs/kbs-cli/internal/core/ports/driving"
	"github.com/keystone-labs/kbs-cli/internal/logger"
)

// Ensure StatsAggregator implements the interface.
var _ driving.StatsService = (*StatsAggregator)(nil)

// recentSearchLimit and popularDocumentLimit bound the analytics panels.
const (
	recentSearchLimit    = 5
	popularDocumentLimit = 5
)

// StatsAggregator assembles the analytics snapshot from four independent
// aggregate queries run concurrently.
type StatsAggregator struct {
	store    driven.StatsStore
	sessions driving.SessionService
}

// NewStatsAggregator creates the analytics aggregator.
func NewStatsAggregator(store driven.StatsStore, sessions driving.SessionService) *StatsAggregator {
	return &StatsAggregator{
		store:    store,
		sessions: sessions,
	}
}

// Load fans out the four queries, joins them, and combines whatever
// succeeded. Each branch captures its own error; a failed branch logs and
// leaves its zero value so the panel renders the surviving subset. The
// returned error is non-nil only when every branch failed.
func (s *StatsAggregator) Load(ctx context.Context) (*domain.Stats, error) {
	session := s.sessions.Current()
	if session == nil {
		return nil, domain.ErrNoSession
	}

	var stats domain.Stats
	var errs [4]error

	var wg sync.WaitGroup
	wg.Add(4)

	go func() {
		defer wg.Done()
		stats.TotalDocuments, errs[0] = s.store.CountDocuments(ctx)
	}()

	go func() {
		defer wg.Done()
		stats.TotalSearches, errs[1] = s.store.CountSearches(ctx, session.UserID)
	}()

	go func() {
		defer wg.Done()
		stats.RecentSearches, errs[2] = s.store.RecentSearches(ctx, session.UserID, recentSearchLimit)
	}()

	go func() {
		defer wg.Done()
		stats.PopularDocuments, errs[3] = s.store.PopularDocuments(ctx, popularDocumentLimit)
	}()

	wg.Wait()

	failed := 0
	for _, err := range errs {
		if err != nil {
			failed++
			logger.Warn("Stats query failed: %v", err)
		}
	}

	if failed == len(errs) {
		return &stats, domain.NewStoreError("stats", errors.Join(errs[:]...))
	}
	return &stats, nil
}
