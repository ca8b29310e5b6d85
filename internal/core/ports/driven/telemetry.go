package driven

import (
	"context"

	"github.com/keystone-labs/kbs-cli/internal/core/domain"
)

// TelemetryStore appends search and view events. Writes are best-effort:
// failures are logged by the caller and never surfaced to the user or
// allowed to block the action they accompany.
type TelemetryStore interface {
	// RecordSearch appends one search-history row.
	RecordSearch(ctx context.Context, event domain.SearchEvent) error

	// RecordView appends one document-view row.
	RecordView(ctx context.Context, event domain.ViewEvent) error
}
