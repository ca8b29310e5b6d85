package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/keystone-labs/kbs-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/keystone-labs/kbs-cli/internal/core/domain"
	"github.com/keystone-labs/kbs-cli/internal/core/ports/driven"
)

// Store is a unified SQLite-based storage that provides access to
// all store interfaces through wrapper types.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.kbs/data/kb.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".kbs", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "kb.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	// Run migrations
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// DocumentStore returns a DocumentStore interface backed by this store.
func (s *Store) DocumentStore() driven.DocumentStore {
	return &documentStore{store: s}
}

// TelemetryStore returns a TelemetryStore interface backed by this store.
func (s *Store) TelemetryStore() driven.TelemetryStore {
	return &telemetryStore{store: s}
}

// StatsStore returns a StatsStore interface backed by this store.
func (s *Store) StatsStore() driven.StatsStore {
	return &statsStore{store: s}
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	// Ensure schema_migrations table exists
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	// Find all up migrations
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	// Sort and run migrations
	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		// Read and execute migration
		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
	}

	return nil
}

// ==================== Document Store ====================

// documentStore implements driven.DocumentStore.
type documentStore struct {
	store *Store
}

var _ driven.DocumentStore = (*documentStore)(nil)

const documentColumns = `id, title, content, category, tags, file_url, file_type,
	metadata, created_by, created_at, updated_at, is_archived`

// LoadActive returns all non-archived documents, newest first.
func (s *documentStore) LoadActive(ctx context.Context) ([]domain.Document, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT `+documentColumns+`
		FROM documents WHERE is_archived = 0
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, domain.NewStoreError("load", err)
	}
	defer rows.Close()

	return scanDocuments(rows, "load")
}

// Search returns non-archived documents whose title or content contains
// query as a case-insensitive substring, newest first.
func (s *documentStore) Search(ctx context.Context, query string) ([]domain.Document, error) {
	pattern := "%" + escapeLike(query) + "%"

	rows, err := s.store.db.QueryContext(ctx, `
		SELECT `+documentColumns+`
		FROM documents
		WHERE is_archived = 0
		  AND (title LIKE ? ESCAPE '\' OR content LIKE ? ESCAPE '\')
		ORDER BY created_at DESC
	`, pattern, pattern)
	if err != nil {
		return nil, domain.NewStoreError("search", err)
	}
	defer rows.Close()

	return scanDocuments(rows, "search")
}

// Insert appends a new document row with a generated id.
func (s *documentStore) Insert(ctx context.Context, draft domain.DocumentDraft, createdBy string) error {
	tagsJSON, err := json.Marshal(draft.Tags)
	if err != nil {
		return domain.NewStoreError("insert", fmt.Errorf("marshalling tags: %w", err))
	}

	var metadataJSON any
	if draft.Metadata != nil {
		data, err := json.Marshal(draft.Metadata)
		if err != nil {
			return domain.NewStoreError("insert", fmt.Errorf("marshalling metadata: %w", err))
		}
		metadataJSON = string(data)
	}

	now := time.Now().UTC()
	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO documents
			(id, title, content, category, tags, file_url, file_type,
			 metadata, created_by, created_at, updated_at, is_archived)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 0)
	`, uuid.NewString(), draft.Title, draft.Content, draft.Category, string(tagsJSON),
		nullString(draft.FileURL), nullString(draft.FileType),
		metadataJSON, createdBy, now, now)

	if err != nil {
		return domain.NewStoreError("insert", err)
	}
	return nil
}

// ==================== Telemetry Store ====================

// telemetryStore implements driven.TelemetryStore.
type telemetryStore struct {
	store *Store
}

var _ driven.TelemetryStore = (*telemetryStore)(nil)

// RecordSearch appends one search-history row.
func (s *telemetryStore) RecordSearch(ctx context.Context, event domain.SearchEvent) error {
	createdAt := event.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO search_history (id, user_id, query, results_count, selected_result_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, uuid.NewString(), event.UserID, event.Query, event.ResultsCount,
		nullString(event.SelectedResultID), createdAt)

	if err != nil {
		return domain.NewStoreError("record search", err)
	}
	return nil
}

// RecordView appends one document-view row.
func (s *telemetryStore) RecordView(ctx context.Context, event domain.ViewEvent) error {
	viewedAt := event.ViewedAt
	if viewedAt.IsZero() {
		viewedAt = time.Now().UTC()
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO document_views (id, document_id, user_id, viewed_at)
		VALUES (?, ?, ?, ?)
	`, uuid.NewString(), event.DocumentID, event.UserID, viewedAt)

	if err != nil {
		return domain.NewStoreError("record view", err)
	}
	return nil
}

// ==================== Stats Store ====================

// statsStore implements driven.StatsStore.
type statsStore struct {
	store *Store
}

var _ driven.StatsStore = (*statsStore)(nil)

// CountDocuments returns the total document count.
func (s *statsStore) CountDocuments(ctx context.Context) (int, error) {
	var count int
	err := s.store.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM documents").Scan(&count)
	if err != nil {
		return 0, domain.NewStoreError("count documents", err)
	}
	return count, nil
}

// CountSearches returns the total search count for userID.
func (s *statsStore) CountSearches(ctx context.Context, userID string) (int, error) {
	var count int
	err := s.store.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM search_history WHERE user_id = ?", userID).Scan(&count)
	if err != nil {
		return 0, domain.NewStoreError("count searches", err)
	}
	return count, nil
}

// RecentSearches returns the newest searches for userID, newest first.
func (s *statsStore) RecentSearches(
	ctx context.Context, userID string, limit int,
) ([]domain.RecentSearch, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT query, results_count, created_at
		FROM search_history WHERE user_id = ?
		ORDER BY created_at DESC
		LIMIT ?
	`, userID, limit)
	if err != nil {
		return nil, domain.NewStoreError("recent searches", err)
	}
	defer rows.Close()

	var recent []domain.RecentSearch
	for rows.Next() {
		var r domain.RecentSearch
		if err := rows.Scan(&r.Query, &r.ResultsCount, &r.CreatedAt); err != nil {
			return nil, domain.NewStoreError("recent searches", err)
		}
		recent = append(recent, r)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.NewStoreError("recent searches", err)
	}

	return recent, nil
}

// PopularDocuments returns the top documents by view count.
func (s *statsStore) PopularDocuments(ctx context.Context, limit int) ([]domain.PopularDocument, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT d.title, COUNT(v.id) AS view_count
		FROM document_views v
		JOIN documents d ON d.id = v.document_id
		GROUP BY v.document_id
		ORDER BY view_count DESC, d.title
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, domain.NewStoreError("popular documents", err)
	}
	defer rows.Close()

	var popular []domain.PopularDocument
	for rows.Next() {
		var p domain.PopularDocument
		if err := rows.Scan(&p.Title, &p.ViewCount); err != nil {
			return nil, domain.NewStoreError("popular documents", err)
		}
		popular = append(popular, p)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.NewStoreError("popular documents", err)
	}

	return popular, nil
}

// ==================== Helper Functions ====================

// scanDocuments reads document rows into domain values.
func scanDocuments(rows *sql.Rows, op string) ([]domain.Document, error) {
	var docs []domain.Document //nolint:prealloc // size unknown from query
	for rows.Next() {
		var doc domain.Document
		var tagsJSON string
		var fileURL, fileType, metadataJSON sql.NullString
		var archived int

		if err := rows.Scan(&doc.ID, &doc.Title, &doc.Content, &doc.Category, &tagsJSON,
			&fileURL, &fileType, &metadataJSON, &doc.CreatedBy,
			&doc.CreatedAt, &doc.UpdatedAt, &archived); err != nil {
			return nil, domain.NewStoreError(op, fmt.Errorf("scanning document: %w", err))
		}

		if err := json.Unmarshal([]byte(tagsJSON), &doc.Tags); err != nil {
			return nil, domain.NewStoreError(op, fmt.Errorf("unmarshaling tags: %w", err))
		}
		if metadataJSON.Valid && metadataJSON.String != "" {
			if err := json.Unmarshal([]byte(metadataJSON.String), &doc.Metadata); err != nil {
				return nil, domain.NewStoreError(op, fmt.Errorf("unmarshaling metadata: %w", err))
			}
		}

		doc.FileURL = fileURL.String
		doc.FileType = fileType.String
		doc.Archived = archived != 0
		docs = append(docs, doc)
	}

	if err := rows.Err(); err != nil {
		return nil, domain.NewStoreError(op, fmt.Errorf("iterating documents: %w", err))
	}

	return docs, nil
}

// escapeLike neutralises LIKE wildcards in a user-supplied query.
func escapeLike(s string) string {
	replacer := strings.NewReplacer(
		`\`, `\\`,
		`%`, `\%`,
		`_`, `\_`,
	)
	return replacer.Replace(s)
}

// nullString converts an empty string to NULL for storage.
func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
