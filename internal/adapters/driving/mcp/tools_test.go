package mcp

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keystone-labs/kbs-cli/internal/core/domain"
)

func newTestServer(t *testing.T, browse *mockBrowseService) *Server {
	t.Helper()
	server, err := NewServer(&Ports{
		Session: &mockSessionService{session: &domain.Session{UserID: "user-1"}},
		Browse:  browse,
	})
	require.NoError(t, err)
	return server
}

func TestServer_handleSearch(t *testing.T) {
	ctx := context.Background()

	t.Run("returns matching documents", func(t *testing.T) {
		browse := &mockBrowseService{
			displayed: []domain.Document{
				{
					ID:        "doc-1",
					Title:     "VPN Setup",
					Category:  "it",
					Tags:      []string{"network"},
					CreatedAt: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
				},
			},
		}
		server := newTestServer(t, browse)

		input := SearchInput{Query: "vpn", Limit: 10}
		_, output, err := server.handleSearch(ctx, nil, input)

		require.NoError(t, err)
		assert.Equal(t, "vpn", browse.searchQuery)
		assert.Equal(t, 1, output.Count)
		require.Len(t, output.Results, 1)
		assert.Equal(t, "doc-1", output.Results[0].ID)
		assert.Equal(t, "VPN Setup", output.Results[0].Title)
		assert.Equal(t, "it", output.Results[0].Category)
		assert.Equal(t, "2026-03-01", output.Results[0].Created)
	})

	t.Run("truncates to limit", func(t *testing.T) {
		browse := &mockBrowseService{
			displayed: []domain.Document{{ID: "a"}, {ID: "b"}, {ID: "c"}},
		}
		server := newTestServer(t, browse)

		_, output, err := server.handleSearch(ctx, nil, SearchInput{Query: "q", Limit: 2})

		require.NoError(t, err)
		assert.Equal(t, 2, output.Count)
	})

	t.Run("returns error on search failure", func(t *testing.T) {
		browse := &mockBrowseService{searchErr: errors.New("search failed")}
		server := newTestServer(t, browse)

		_, _, err := server.handleSearch(ctx, nil, SearchInput{Query: "q"})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "search failed")
	})
}

func TestServer_handleGetDocument(t *testing.T) {
	ctx := context.Background()

	t.Run("returns full document and records view", func(t *testing.T) {
		doc := &domain.Document{
			ID:      "doc-1",
			Title:   "Onboarding",
			Content: "Welcome to the team.",
			FileURL: "https://example.com/handbook.pdf",
		}
		browse := &mockBrowseService{selected: doc}
		server := newTestServer(t, browse)

		_, output, err := server.handleGetDocument(ctx, nil, GetDocumentInput{ID: "doc-1"})

		require.NoError(t, err)
		assert.Equal(t, 1, browse.loadCalls)
		assert.Equal(t, domain.CategoryAll, browse.category)
		assert.Equal(t, "doc-1", browse.selectedID)
		assert.Equal(t, "Welcome to the team.", output.Content)
		assert.Equal(t, "https://example.com/handbook.pdf", output.FileURL)
	})

	t.Run("unknown id returns error", func(t *testing.T) {
		browse := &mockBrowseService{}
		server := newTestServer(t, browse)

		_, _, err := server.handleGetDocument(ctx, nil, GetDocumentInput{ID: "nope"})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "not found")
	})

	t.Run("load failure propagates", func(t *testing.T) {
		browse := &mockBrowseService{loadErr: errors.New("store down")}
		server := newTestServer(t, browse)

		_, _, err := server.handleGetDocument(ctx, nil, GetDocumentInput{ID: "doc-1"})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "store down")
	})
}

func TestServer_handleList(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults to all categories", func(t *testing.T) {
		browse := &mockBrowseService{
			displayed:  []domain.Document{{ID: "a"}, {ID: "b"}},
			categories: []string{domain.CategoryAll, "it", "hr"},
		}
		server := newTestServer(t, browse)

		_, output, err := server.handleList(ctx, nil, ListInput{})

		require.NoError(t, err)
		assert.Equal(t, domain.CategoryAll, browse.category)
		assert.Equal(t, 2, output.Count)
		assert.Equal(t, []string{domain.CategoryAll, "it", "hr"}, output.Categories)
	})

	t.Run("filters by category", func(t *testing.T) {
		browse := &mockBrowseService{}
		server := newTestServer(t, browse)

		_, _, err := server.handleList(ctx, nil, ListInput{Category: "hr"})

		require.NoError(t, err)
		assert.Equal(t, "hr", browse.category)
	})
}
