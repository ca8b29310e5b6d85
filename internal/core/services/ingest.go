package services

import (
	"context"

	"github.com/keystone-labs/kbs-cli/internal/core/domain"
	"github.com/keystone-labs/kbs-cli/internal/core/ports/driven"
	"github.com/keystone-labs/kbs-cli/internal/core/ports/driving"
	"github.com/keystone-labs/kbs-cli/internal/logger"
)

// Ensure Ingester implements the interface.
var _ driving.IngestService = (*Ingester)(nil)

// Ingester adds documents on behalf of the current session and keeps the
// browse collection in sync afterwards.
type Ingester struct {
	store    driven.DocumentStore
	sessions driving.SessionService
	browser  driving.BrowseService
}

// NewIngester creates the ingest service. browser may be nil when no
// browse state needs refreshing (e.g. one-shot CLI adds).
func NewIngester(
	store driven.DocumentStore,
	sessions driving.SessionService,
	browser driving.BrowseService,
) *Ingester {
	return &Ingester{
		store:    store,
		sessions: sessions,
		browser:  browser,
	}
}

// Add validates and inserts the draft, then refreshes the browse
// collection. The refresh preserves the active filter or search display;
// a failed refresh does not fail the add.
func (i *Ingester) Add(ctx context.Context, draft domain.DocumentDraft) error {
	session := i.sessions.Current()
	if session == nil {
		return domain.ErrNoSession
	}

	if err := draft.Validate(); err != nil {
		return err
	}
	draft.Normalise()

	if err := i.store.Insert(ctx, draft, session.UserID); err != nil {
		return err
	}

	logger.Debug("Added document %q (category %s)", draft.Title, draft.Category)

	if i.browser != nil {
		if err := i.browser.Load(ctx); err != nil {
			logger.Warn("Refresh after add failed: %v", err)
		}
	}
	return nil
}
