package driven

import (
	"context"

	"github.com/keystone-labs/kbs-cli/internal/core/domain"
)

// DocumentStore reads and inserts documents against the backing store.
// Each call is a single round trip: no caching, no retry. On failure the
// caller must preserve its prior state.
type DocumentStore interface {
	// LoadActive returns all non-archived documents, newest created-at
	// first. Fails with *domain.StoreError on transport or auth failure.
	LoadActive(ctx context.Context) ([]domain.Document, error)

	// Search returns non-archived documents whose title or content
	// contains query as a case-insensitive substring, newest first.
	// Ordering is strictly by recency; there is no relevance scoring.
	// Callers guard against empty queries.
	Search(ctx context.Context, query string) ([]domain.Document, error)

	// Insert appends a new document row. The draft must already be
	// validated and normalised; createdBy is the session identity.
	Insert(ctx context.Context, draft domain.DocumentDraft, createdBy string) error
}
