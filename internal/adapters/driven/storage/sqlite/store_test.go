package sqlite

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keystone-labs/kbs-cli/internal/core/domain"
)

// setupTestStore creates a temporary SQLite store for testing.
func setupTestStore(t *testing.T) (*Store, func()) {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "kbs-test-*")
	require.NoError(t, err)

	store, err := NewStore(tempDir)
	require.NoError(t, err)
	require.NotNil(t, store)

	cleanup := func() {
		assert.NoError(t, store.Close())
		assert.NoError(t, os.RemoveAll(tempDir))
	}

	return store, cleanup
}

// insertTestDocument inserts a draft and returns the stored row.
func insertTestDocument(t *testing.T, store *Store, title, content, category string) domain.Document {
	t.Helper()
	ctx := context.Background()

	draft := domain.DocumentDraft{
		Title:    title,
		Content:  content,
		Category: category,
		Tags:     []string{},
	}
	require.NoError(t, store.DocumentStore().Insert(ctx, draft, "u1"))

	docs, err := store.DocumentStore().LoadActive(ctx)
	require.NoError(t, err)
	for _, doc := range docs {
		if doc.Title == title {
			return doc
		}
	}
	t.Fatalf("inserted document %q not found", title)
	return domain.Document{}
}

func TestMigrationsAreIdempotent(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "kbs-test-*")
	require.NoError(t, err)
	defer os.RemoveAll(tempDir)

	store, err := NewStore(tempDir)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	// Reopening runs migrate() again against the same file.
	store, err = NewStore(tempDir)
	require.NoError(t, err)
	assert.NoError(t, store.Close())
}

func TestInsertAndLoadActive(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	draft := domain.DocumentDraft{
		Title:    "VPN setup",
		Content:  "Install the client and import the profile.",
		Category: "it",
		Tags:     []string{"network", "remote"},
		FileURL:  "https://files.example.com/vpn.pdf",
		FileType: "pdf",
	}
	require.NoError(t, store.DocumentStore().Insert(ctx, draft, "u1"))

	docs, err := store.DocumentStore().LoadActive(ctx)
	require.NoError(t, err)
	require.Len(t, docs, 1)

	doc := docs[0]
	assert.NotEmpty(t, doc.ID)
	assert.Equal(t, "VPN setup", doc.Title)
	assert.Equal(t, "it", doc.Category)
	assert.Equal(t, []string{"network", "remote"}, doc.Tags)
	assert.Equal(t, "https://files.example.com/vpn.pdf", doc.FileURL)
	assert.Equal(t, "pdf", doc.FileType)
	assert.Equal(t, "u1", doc.CreatedBy)
	assert.False(t, doc.Archived)
	assert.False(t, doc.CreatedAt.IsZero())
}

func TestLoadActiveExcludesArchived(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	doc := insertTestDocument(t, store, "Old policy", "Superseded.", "hr")
	_, err := store.db.ExecContext(ctx,
		"UPDATE documents SET is_archived = 1 WHERE id = ?", doc.ID)
	require.NoError(t, err)

	insertTestDocument(t, store, "New policy", "Current.", "hr")

	docs, err := store.DocumentStore().LoadActive(ctx)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "New policy", docs[0].Title)
}

func TestLoadActiveOrdersNewestFirst(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	old := time.Now().UTC().Add(-time.Hour)
	doc := insertTestDocument(t, store, "First", "Oldest entry.", "general")
	_, err := store.db.ExecContext(ctx,
		"UPDATE documents SET created_at = ? WHERE id = ?", old, doc.ID)
	require.NoError(t, err)

	insertTestDocument(t, store, "Second", "Newest entry.", "general")

	docs, err := store.DocumentStore().LoadActive(ctx)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "Second", docs[0].Title)
	assert.Equal(t, "First", docs[1].Title)
}

func TestSearchMatchesTitleAndContent(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	insertTestDocument(t, store, "VPN setup", "Install the client.", "it")
	insertTestDocument(t, store, "Onboarding", "Request VPN access on day one.", "hr")
	insertTestDocument(t, store, "Expense policy", "Submit within 30 days.", "hr")

	docs, err := store.DocumentStore().Search(ctx, "vpn")
	require.NoError(t, err)
	require.Len(t, docs, 2)

	titles := []string{docs[0].Title, docs[1].Title}
	assert.Contains(t, titles, "VPN setup")
	assert.Contains(t, titles, "Onboarding")
}

func TestSearchTreatsWildcardsLiterally(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	insertTestDocument(t, store, "Discounts", "Staff get 100% off parking.", "general")
	insertTestDocument(t, store, "Plain", "Nothing special here.", "general")

	docs, err := store.DocumentStore().Search(ctx, "100%")
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "Discounts", docs[0].Title)
}

func TestRecordSearchAndCounts(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	telemetry := store.TelemetryStore()
	require.NoError(t, telemetry.RecordSearch(ctx, domain.SearchEvent{
		UserID: "u1", Query: "vpn", ResultsCount: 2,
	}))
	require.NoError(t, telemetry.RecordSearch(ctx, domain.SearchEvent{
		UserID: "u1", Query: "expenses", ResultsCount: 1,
	}))
	require.NoError(t, telemetry.RecordSearch(ctx, domain.SearchEvent{
		UserID: "u2", Query: "onboarding", ResultsCount: 0,
	}))

	count, err := store.StatsStore().CountSearches(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	count, err = store.StatsStore().CountSearches(ctx, "nobody")
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestRecentSearchesNewestFirstWithLimit(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	base := time.Now().UTC().Add(-time.Hour)
	for i, q := range []string{"first", "second", "third"} {
		require.NoError(t, store.TelemetryStore().RecordSearch(ctx, domain.SearchEvent{
			UserID:       "u1",
			Query:        q,
			ResultsCount: i,
			CreatedAt:    base.Add(time.Duration(i) * time.Minute),
		}))
	}

	recent, err := store.StatsStore().RecentSearches(ctx, "u1", 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "third", recent[0].Query)
	assert.Equal(t, "second", recent[1].Query)
}

func TestPopularDocumentsRankedByViews(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	vpn := insertTestDocument(t, store, "VPN setup", "Install the client.", "it")
	expense := insertTestDocument(t, store, "Expense policy", "Submit within 30 days.", "hr")
	insertTestDocument(t, store, "Unviewed", "Nobody reads this.", "general")

	telemetry := store.TelemetryStore()
	for range 3 {
		require.NoError(t, telemetry.RecordView(ctx, domain.ViewEvent{
			DocumentID: vpn.ID, UserID: "u1",
		}))
	}
	require.NoError(t, telemetry.RecordView(ctx, domain.ViewEvent{
		DocumentID: expense.ID, UserID: "u2",
	}))

	popular, err := store.StatsStore().PopularDocuments(ctx, 5)
	require.NoError(t, err)
	require.Len(t, popular, 2)
	assert.Equal(t, "VPN setup", popular[0].Title)
	assert.Equal(t, 3, popular[0].ViewCount)
	assert.Equal(t, "Expense policy", popular[1].Title)
	assert.Equal(t, 1, popular[1].ViewCount)
}

func TestCountDocumentsIncludesArchived(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	doc := insertTestDocument(t, store, "Old", "Superseded.", "hr")
	_, err := store.db.ExecContext(ctx,
		"UPDATE documents SET is_archived = 1 WHERE id = ?", doc.ID)
	require.NoError(t, err)
	insertTestDocument(t, store, "New", "Current.", "hr")

	count, err := store.StatsStore().CountDocuments(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}
