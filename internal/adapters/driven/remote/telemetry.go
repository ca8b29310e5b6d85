package remote

import (
	"context"

	"github.com/keystone-labs/kbs-cli/internal/core/domain"
	"github.com/keystone-labs/kbs-cli/internal/core/ports/driven"
)

// Ensure TelemetryStore implements the interface.
var _ driven.TelemetryStore = (*TelemetryStore)(nil)

const (
	searchHistoryPath = restPath + "/search_history"
	documentViewsPath = restPath + "/document_views"
)

// TelemetryStore appends search and view events over the data API.
type TelemetryStore struct {
	client *Client
}

// searchHistoryRow is the wire shape of a search_history insert.
type searchHistoryRow struct {
	UserID           string  `json:"user_id"`
	Query            string  `json:"query"`
	ResultsCount     int     `json:"results_count"`
	SelectedResultID *string `json:"selected_result_id,omitempty"`
}

// documentViewRow is the wire shape of a document_views insert.
type documentViewRow struct {
	DocumentID string `json:"document_id"`
	UserID     string `json:"user_id"`
}

// RecordSearch appends one search-history row.
func (s *TelemetryStore) RecordSearch(ctx context.Context, event domain.SearchEvent) error {
	row := searchHistoryRow{
		UserID:       event.UserID,
		Query:        event.Query,
		ResultsCount: event.ResultsCount,
	}
	if event.SelectedResultID != "" {
		row.SelectedResultID = &event.SelectedResultID
	}
	return s.client.postJSON(ctx, "record search", searchHistoryPath, row)
}

// RecordView appends one document-view row.
func (s *TelemetryStore) RecordView(ctx context.Context, event domain.ViewEvent) error {
	return s.client.postJSON(ctx, "record view", documentViewsPath, documentViewRow{
		DocumentID: event.DocumentID,
		UserID:     event.UserID,
	})
}
