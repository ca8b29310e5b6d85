package remote

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"github.com/keystone-labs/kbs-cli/internal/core/domain"
	"github.com/keystone-labs/kbs-cli/internal/core/ports/driven"
)

// Ensure StatsStore implements the interface.
var _ driven.StatsStore = (*StatsStore)(nil)

// popularDocumentsProc is the remote aggregate procedure.
const popularDocumentsProc = "get_popular_documents"

// StatsStore answers aggregate queries over the data API.
type StatsStore struct {
	client *Client
}

// CountDocuments returns the total document count.
func (s *StatsStore) CountDocuments(ctx context.Context) (int, error) {
	query := url.Values{}
	query.Set("select", "id")
	return s.client.count(ctx, "count documents", documentsPath, query)
}

// CountSearches returns the total search count for userID.
func (s *StatsStore) CountSearches(ctx context.Context, userID string) (int, error) {
	query := url.Values{}
	query.Set("select", "id")
	query.Set("user_id", "eq."+userID)
	return s.client.count(ctx, "count searches", searchHistoryPath, query)
}

// recentSearchRow is the wire shape of a recent-search row.
type recentSearchRow struct {
	Query        string    `json:"query"`
	ResultsCount int       `json:"results_count"`
	CreatedAt    time.Time `json:"created_at"`
}

// RecentSearches returns the newest searches for userID, newest first.
func (s *StatsStore) RecentSearches(
	ctx context.Context, userID string, limit int,
) ([]domain.RecentSearch, error) {
	query := url.Values{}
	query.Set("select", "query,results_count,created_at")
	query.Set("user_id", "eq."+userID)
	query.Set("order", "created_at.desc")
	query.Set("limit", strconv.Itoa(limit))

	var rows []recentSearchRow
	if err := s.client.getJSON(ctx, "recent searches", searchHistoryPath, query, &rows); err != nil {
		return nil, err
	}

	recent := make([]domain.RecentSearch, len(rows))
	for i, row := range rows {
		recent[i] = domain.RecentSearch{
			Query:        row.Query,
			ResultsCount: row.ResultsCount,
			CreatedAt:    row.CreatedAt,
		}
	}
	return recent, nil
}

// popularDocumentRow is the wire shape of the aggregate result.
type popularDocumentRow struct {
	Title     string `json:"title"`
	ViewCount int    `json:"view_count"`
}

// PopularDocuments calls the remote aggregate procedure for the top
// documents by view count.
func (s *StatsStore) PopularDocuments(ctx context.Context, limit int) ([]domain.PopularDocument, error) {
	query := url.Values{}
	query.Set("limit", strconv.Itoa(limit))

	var rows []popularDocumentRow
	if err := s.client.rpc(ctx, "popular documents", popularDocumentsProc, query, &rows); err != nil {
		return nil, err
	}

	popular := make([]domain.PopularDocument, len(rows))
	for i, row := range rows {
		popular[i] = domain.PopularDocument{Title: row.Title, ViewCount: row.ViewCount}
	}
	return popular, nil
}
