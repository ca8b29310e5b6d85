package cli

import (
	"bytes"
	"context"
	"time"

	"github.com/keystone-labs/kbs-cli/internal/core/domain"
)

// mockSessionService is a mock implementation of driving.SessionService.
type mockSessionService struct {
	session    *domain.Session
	restoreErr error
	signInErr  error
	signOutErr error

	signedInEmail string
	signedOut     bool
}

func (m *mockSessionService) SignIn(_ context.Context, email, _ string) (*domain.Session, error) {
	m.signedInEmail = email
	return m.session, m.signInErr
}

func (m *mockSessionService) SignUp(_ context.Context, email, _ string) (*domain.Session, error) {
	m.signedInEmail = email
	return m.session, m.signInErr
}

func (m *mockSessionService) SignOut(_ context.Context) error {
	m.signedOut = true
	return m.signOutErr
}

func (m *mockSessionService) Restore(_ context.Context) (*domain.Session, error) {
	if m.restoreErr != nil {
		return nil, m.restoreErr
	}
	return m.session, nil
}

func (m *mockSessionService) Current() *domain.Session {
	return m.session
}

// mockBrowseService is a mock implementation of driving.BrowseService.
type mockBrowseService struct {
	documents  []domain.Document
	displayed  []domain.Document
	categories []string
	selected   *domain.Document

	loadErr   error
	searchErr error

	category    string
	searchQuery string
	selectedID  string
}

func (m *mockBrowseService) Load(_ context.Context) error {
	return m.loadErr
}

func (m *mockBrowseService) ChangeCategory(category string) {
	m.category = category
}

func (m *mockBrowseService) SubmitSearch(_ context.Context, query string) error {
	m.searchQuery = query
	return m.searchErr
}

func (m *mockBrowseService) SelectResult(id string) *domain.Document {
	m.selectedID = id
	return m.selected
}

func (m *mockBrowseService) Documents() []domain.Document {
	return m.documents
}

func (m *mockBrowseService) Displayed() []domain.Document {
	return m.displayed
}

func (m *mockBrowseService) Categories() []string {
	return m.categories
}

func (m *mockBrowseService) Category() string {
	return m.category
}

func (m *mockBrowseService) Query() string {
	return m.searchQuery
}

func (m *mockBrowseService) Searching() bool {
	return false
}

func (m *mockBrowseService) Searched() bool {
	return m.searchQuery != ""
}

// mockStatsService is a mock implementation of driving.StatsService.
type mockStatsService struct {
	stats *domain.Stats
	err   error
}

func (m *mockStatsService) Load(_ context.Context) (*domain.Stats, error) {
	return m.stats, m.err
}

// mockIngestService is a mock implementation of driving.IngestService.
type mockIngestService struct {
	draft domain.DocumentDraft
	err   error
}

func (m *mockIngestService) Add(_ context.Context, draft domain.DocumentDraft) error {
	m.draft = draft
	return m.err
}

// testSession is the signed-in identity used by the happy-path mocks.
var testSession = &domain.Session{
	UserID:      "user-1",
	Email:       "dev@example.com",
	AccessToken: "token",
	ExpiresAt:   time.Now().Add(time.Hour),
}

// setupTestServices installs happy-path mocks for all services and
// returns a cleanup that restores the previous wiring.
func setupTestServices() func() {
	oldSession := sessionService
	oldBrowse := browseService
	oldStats := statsService
	oldIngest := ingestService

	docs := []domain.Document{
		{
			ID:        "doc-1",
			Title:     "VPN Setup",
			Content:   "Install the client.\nThen connect.",
			Category:  "it",
			CreatedAt: time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC),
		},
		{
			ID:        "doc-2",
			Title:     "Expense Policy",
			Content:   "Submit receipts.",
			Category:  "finance",
			CreatedAt: time.Date(2026, 1, 15, 9, 0, 0, 0, time.UTC),
		},
	}

	sessionService = &mockSessionService{session: testSession}
	browseService = &mockBrowseService{
		documents:  docs,
		displayed:  docs,
		categories: []string{domain.CategoryAll, "it", "finance"},
		selected:   &docs[0],
	}
	statsService = &mockStatsService{stats: &domain.Stats{
		TotalDocuments: 2,
		TotalSearches:  5,
	}}
	ingestService = &mockIngestService{}

	return func() {
		sessionService = oldSession
		browseService = oldBrowse
		statsService = oldStats
		ingestService = oldIngest
	}
}

// executeCommand runs the root command with args and captures output.
func executeCommand(args ...string) (string, error) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	return buf.String(), err
}
