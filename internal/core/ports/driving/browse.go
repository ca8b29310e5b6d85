package driving

import (
	"context"

	"github.com/keystone-labs/kbs-cli/internal/core/domain"
)

// BrowseService owns the in-memory document collection and the displayed
// subset derived from either a category filter or the last search. All
// accessors return snapshots safe for concurrent reads.
type BrowseService interface {
	// Load fetches the full active document set. The first load resets
	// the filter to all; later loads preserve the current display mode.
	// On failure prior state is kept intact.
	Load(ctx context.Context) error

	// ChangeCategory clears any active search and filters the displayed
	// set by category (domain.CategoryAll removes the filter).
	ChangeCategory(category string)

	// SubmitSearch queries the store and replaces the displayed set with
	// the results. No-op for empty (trimmed) queries, anonymous sessions
	// and while a previous search is in flight. A search event is
	// recorded as a side effect.
	SubmitSearch(ctx context.Context, query string) error

	// SelectResult looks up id within the currently displayed set only.
	// Absent ids return nil with no side effect; found documents are
	// returned and a view event is recorded.
	SelectResult(id string) *domain.Document

	// Documents returns the full active collection.
	Documents() []domain.Document

	// Displayed returns the currently displayed subset.
	Displayed() []domain.Document

	// Categories returns the distinct categories of the full collection.
	Categories() []string

	// Category returns the active category filter.
	Category() string

	// Query returns the last submitted query, "" after a filter change.
	Query() string

	// Searching reports whether a search request is in flight.
	Searching() bool

	// Searched reports whether the display reflects a search result.
	Searched() bool
}
