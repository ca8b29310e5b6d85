package services

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/keystone-labs/kbs-cli/internal/core/domain"
	"github.com/keystone-labs/kbs-cli/internal/core/ports/driven"
	"github.com/keystone-labs/kbs-cli/internal/core/ports/driving"
	"github.com/keystone-labs/kbs-cli/internal/logger"
)

// Ensure Browser implements the interface.
var _ driving.BrowseService = (*Browser)(nil)

// TelemetryRecorder accepts fire-and-forget telemetry writes. Calls never
// block and never report failure to the caller.
type TelemetryRecorder interface {
	// RecordSearch enqueues a search event.
	RecordSearch(event domain.SearchEvent)

	// RecordView enqueues a view event.
	RecordView(event domain.ViewEvent)
}

// Browser is the search/filter controller. It exclusively owns the full
// document collection and the displayed subset for the lifetime of the
// session; presentation reads immutable snapshots.
type Browser struct {
	store    driven.DocumentStore
	sessions driving.SessionService
	recorder TelemetryRecorder

	mu         sync.Mutex
	documents  []domain.Document
	displayed  []domain.Document
	categories []string
	category   string
	query      string
	searched   bool
	searching  bool
	loaded     bool
}

// NewBrowser creates the browse controller. The session service is the
// explicit session context; there is no ambient global identity.
func NewBrowser(
	store driven.DocumentStore,
	sessions driving.SessionService,
	recorder TelemetryRecorder,
) *Browser {
	return &Browser{
		store:    store,
		sessions: sessions,
		recorder: recorder,
		category: domain.CategoryAll,
	}
}

// Load fetches the full active set and recomputes the category list.
// The first load resets the filter to all; refreshes (e.g. after adding a
// document) preserve the current filter or search display. On failure the
// previously displayed set is left unchanged.
func (b *Browser) Load(ctx context.Context) error {
	docs, err := b.store.LoadActive(ctx)
	if err != nil {
		logger.Warn("Load failed, keeping prior state: %v", err)
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.documents = docs
	b.categories = domain.DistinctCategories(docs)

	switch {
	case !b.loaded:
		b.loaded = true
		b.category = domain.CategoryAll
		b.query = ""
		b.searched = false
		b.displayed = docs
	case b.searched:
		// A search result is on screen; re-running the query would
		// record a second search event. Keep the display as is.
	default:
		b.displayed = domain.FilterByCategory(docs, b.category)
	}

	logger.Debug("Loaded %d documents, %d categories", len(docs), len(b.categories))
	return nil
}

// ChangeCategory clears any active search and derives the displayed set
// from the full collection. Idempotent.
func (b *Browser) ChangeCategory(category string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.query = ""
	b.searched = false
	b.category = category
	b.displayed = domain.FilterByCategory(b.documents, category)
}

// SubmitSearch runs the query against the store and replaces the displayed
// set with the results. Empty queries and anonymous sessions are no-ops.
// Only one search may be in flight at a time; overlapping submissions are
// ignored and reported as domain.ErrSearchInFlight.
func (b *Browser) SubmitSearch(ctx context.Context, query string) error {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}

	session := b.sessions.Current()
	if session == nil {
		return nil
	}

	b.mu.Lock()
	if b.searching {
		b.mu.Unlock()
		logger.Debug("Ignoring search %q: previous search still in flight", query)
		return domain.ErrSearchInFlight
	}
	b.searching = true
	b.mu.Unlock()

	results, err := b.store.Search(ctx, query)

	b.mu.Lock()
	defer b.mu.Unlock()
	b.searching = false

	if err != nil {
		logger.Warn("Search %q failed, keeping prior state: %v", query, err)
		return err
	}

	b.displayed = results
	b.query = query
	b.searched = true

	b.recorder.RecordSearch(domain.SearchEvent{
		UserID:       session.UserID,
		Query:        query,
		ResultsCount: len(results),
		CreatedAt:    time.Now(),
	})

	logger.Debug("Search %q: %d results", query, len(results))
	return nil
}

// SelectResult looks up id within the currently displayed set only. The
// full collection is deliberately not consulted: a result that is no
// longer on screen cannot be opened. Absent ids are a silent no-op.
func (b *Browser) SelectResult(id string) *domain.Document {
	session := b.sessions.Current()
	if session == nil {
		return nil
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	for i := range b.displayed {
		if b.displayed[i].ID == id {
			doc := b.displayed[i]
			b.recorder.RecordView(domain.ViewEvent{
				DocumentID: id,
				UserID:     session.UserID,
				ViewedAt:   time.Now(),
			})
			return &doc
		}
	}
	return nil
}

// Documents returns a snapshot of the full active collection.
func (b *Browser) Documents() []domain.Document {
	b.mu.Lock()
	defer b.mu.Unlock()
	return slices.Clone(b.documents)
}

// Displayed returns a snapshot of the currently displayed subset.
func (b *Browser) Displayed() []domain.Document {
	b.mu.Lock()
	defer b.mu.Unlock()
	return slices.Clone(b.displayed)
}

// Categories returns the distinct categories of the full collection.
func (b *Browser) Categories() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return slices.Clone(b.categories)
}

// Category returns the active category filter.
func (b *Browser) Category() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.category
}

// Query returns the last submitted query.
func (b *Browser) Query() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.query
}

// Searching reports whether a search request is in flight.
func (b *Browser) Searching() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.searching
}

// Searched reports whether the display reflects a search result.
func (b *Browser) Searched() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.searched
}
