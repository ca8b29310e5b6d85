package driven

import (
	"context"

	"github.com/keystone-labs/kbs-cli/internal/core/domain"
)

// StatsStore answers the aggregate queries behind the analytics panel.
type StatsStore interface {
	// CountDocuments returns the total document count.
	CountDocuments(ctx context.Context) (int, error)

	// CountSearches returns the total search count for a user.
	CountSearches(ctx context.Context, userID string) (int, error)

	// RecentSearches returns the newest searches for a user, newest
	// first, at most limit rows.
	RecentSearches(ctx context.Context, userID string, limit int) ([]domain.RecentSearch, error)

	// PopularDocuments returns the top documents by view count via the
	// remote aggregate procedure, at most limit rows.
	PopularDocuments(ctx context.Context, limit int) ([]domain.PopularDocument, error)
}
