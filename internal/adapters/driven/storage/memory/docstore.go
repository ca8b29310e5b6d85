// Package memory provides in-memory implementations of the driven store
// ports, used by service tests and as seed fixtures.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/keystone-labs/kbs-cli/internal/core/domain"
	"github.com/keystone-labs/kbs-cli/internal/core/ports/driven"
)

// Ensure DocumentStore implements the interface.
var _ driven.DocumentStore = (*DocumentStore)(nil)

// DocumentStore is an in-memory implementation of driven.DocumentStore.
type DocumentStore struct {
	mu        sync.RWMutex
	documents []domain.Document

	// LoadErr, SearchErr and InsertErr force failures when set.
	LoadErr   error
	SearchErr error
	InsertErr error
}

// NewDocumentStore creates an empty in-memory document store.
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{}
}

// Seed replaces the stored documents.
func (s *DocumentStore) Seed(docs ...domain.Document) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.documents = append([]domain.Document(nil), docs...)
}

// LoadActive returns non-archived documents, newest created-at first.
func (s *DocumentStore) LoadActive(_ context.Context) ([]domain.Document, error) {
	if s.LoadErr != nil {
		return nil, domain.NewStoreError("load", s.LoadErr)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.activeNewestFirst(func(*domain.Document) bool { return true }), nil
}

// Search returns non-archived documents matching query, newest first.
func (s *DocumentStore) Search(_ context.Context, query string) ([]domain.Document, error) {
	if s.SearchErr != nil {
		return nil, domain.NewStoreError("search", s.SearchErr)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.activeNewestFirst(func(d *domain.Document) bool { return d.Matches(query) }), nil
}

// Insert appends a document row with a fresh identifier and timestamps.
func (s *DocumentStore) Insert(_ context.Context, draft domain.DocumentDraft, createdBy string) error {
	if s.InsertErr != nil {
		return domain.NewStoreError("insert", s.InsertErr)
	}

	now := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.documents = append(s.documents, domain.Document{
		ID:        uuid.NewString(),
		Title:     draft.Title,
		Content:   draft.Content,
		Category:  draft.Category,
		Tags:      draft.Tags,
		FileURL:   draft.FileURL,
		FileType:  draft.FileType,
		Metadata:  draft.Metadata,
		CreatedBy: createdBy,
		CreatedAt: now,
		UpdatedAt: now,
	})
	return nil
}

// Len returns the number of stored rows, archived included.
func (s *DocumentStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.documents)
}

func (s *DocumentStore) activeNewestFirst(keep func(*domain.Document) bool) []domain.Document {
	out := make([]domain.Document, 0, len(s.documents))
	for i := range s.documents {
		if s.documents[i].Archived {
			continue
		}
		if keep(&s.documents[i]) {
			out = append(out, s.documents[i])
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}
