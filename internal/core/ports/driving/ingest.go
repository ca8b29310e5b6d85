package driving

import (
	"context"

	"github.com/keystone-labs/kbs-cli/internal/core/domain"
)

// IngestService adds documents to the knowledge base.
type IngestService interface {
	// Add validates and inserts a draft, attributing it to the current
	// session, then refreshes the browse collection while preserving
	// the active filter or search display.
	Add(ctx context.Context, draft domain.DocumentDraft) error
}
