package remote

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/keystone-labs/kbs-cli/internal/core/domain"
	"github.com/keystone-labs/kbs-cli/internal/core/ports/driven"
)

// Ensure DocumentStore implements the interface.
var _ driven.DocumentStore = (*DocumentStore)(nil)

const documentsPath = restPath + "/documents"

// DocumentStore reads and inserts document rows over the data API.
type DocumentStore struct {
	client *Client
}

// documentRow is the wire shape of a documents row.
type documentRow struct {
	ID         string         `json:"id,omitempty"`
	Title      string         `json:"title"`
	Content    string         `json:"content"`
	Category   string         `json:"category,omitempty"`
	Tags       []string       `json:"tags,omitempty"`
	FileURL    *string        `json:"file_url,omitempty"`
	FileType   *string        `json:"file_type,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty"`
	CreatedBy  string         `json:"created_by"`
	CreatedAt  time.Time      `json:"created_at,omitempty"`
	UpdatedAt  time.Time      `json:"updated_at,omitempty"`
	IsArchived bool           `json:"is_archived,omitempty"`
}

// LoadActive returns all non-archived documents, newest first.
func (s *DocumentStore) LoadActive(ctx context.Context) ([]domain.Document, error) {
	query := url.Values{}
	query.Set("select", "*")
	query.Set("is_archived", "eq.false")
	query.Set("order", "created_at.desc")

	var rows []documentRow
	if err := s.client.getJSON(ctx, "load", documentsPath, query, &rows); err != nil {
		return nil, err
	}
	return toDocuments(rows), nil
}

// Search returns non-archived documents whose title or content contains
// query as a case-insensitive substring, newest first. The backend keeps
// ordering strictly by recency.
func (s *DocumentStore) Search(ctx context.Context, searchQuery string) ([]domain.Document, error) {
	pattern := filterValue("*" + searchQuery + "*")

	query := url.Values{}
	query.Set("select", "*")
	query.Set("is_archived", "eq.false")
	query.Set("or", fmt.Sprintf("(title.ilike.%s,content.ilike.%s)", pattern, pattern))
	query.Set("order", "created_at.desc")

	var rows []documentRow
	if err := s.client.getJSON(ctx, "search", documentsPath, query, &rows); err != nil {
		return nil, err
	}
	return toDocuments(rows), nil
}

// Insert appends a document row. The backend assigns id and timestamps.
func (s *DocumentStore) Insert(ctx context.Context, draft domain.DocumentDraft, createdBy string) error {
	row := documentRow{
		Title:     draft.Title,
		Content:   draft.Content,
		Category:  draft.Category,
		Tags:      draft.Tags,
		Metadata:  draft.Metadata,
		CreatedBy: createdBy,
	}
	if draft.FileURL != "" {
		row.FileURL = &draft.FileURL
	}
	if draft.FileType != "" {
		row.FileType = &draft.FileType
	}

	return s.client.postJSON(ctx, "insert", documentsPath, row)
}

func toDocuments(rows []documentRow) []domain.Document {
	docs := make([]domain.Document, len(rows))
	for i, row := range rows {
		docs[i] = domain.Document{
			ID:        row.ID,
			Title:     row.Title,
			Content:   row.Content,
			Category:  row.Category,
			Tags:      row.Tags,
			Metadata:  row.Metadata,
			CreatedBy: row.CreatedBy,
			CreatedAt: row.CreatedAt,
			UpdatedAt: row.UpdatedAt,
			Archived:  row.IsArchived,
		}
		if row.FileURL != nil {
			docs[i].FileURL = *row.FileURL
		}
		if row.FileType != nil {
			docs[i].FileType = *row.FileType
		}
	}
	return docs
}
