package mcp

import (
	"context"

	"github.com/keystone-labs/kbs-cli/internal/core/domain"
)

// mockSessionService is a mock implementation of driving.SessionService.
type mockSessionService struct {
	session *domain.Session
	err     error
}

func (m *mockSessionService) SignIn(_ context.Context, _, _ string) (*domain.Session, error) {
	return m.session, m.err
}

func (m *mockSessionService) SignUp(_ context.Context, _, _ string) (*domain.Session, error) {
	return m.session, m.err
}

func (m *mockSessionService) SignOut(_ context.Context) error {
	return m.err
}

func (m *mockSessionService) Restore(_ context.Context) (*domain.Session, error) {
	return m.session, m.err
}

func (m *mockSessionService) Current() *domain.Session {
	return m.session
}

// mockBrowseService is a mock implementation of driving.BrowseService.
type mockBrowseService struct {
	documents  []domain.Document
	displayed  []domain.Document
	categories []string
	category   string
	query      string
	selected   *domain.Document

	loadErr   error
	searchErr error

	loadCalls   int
	searchQuery string
	selectedID  string
}

func (m *mockBrowseService) Load(_ context.Context) error {
	m.loadCalls++
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
	return m.query
}

func (m *mockBrowseService) Searching() bool {
	return false
}

func (m *mockBrowseService) Searched() bool {
	return m.query != ""
}

// mockStatsService is a mock implementation of driving.StatsService.
type mockStatsService struct {
	stats *domain.Stats
	err   error
}

func (m *mockStatsService) Load(_ context.Context) (*domain.Stats, error) {
	return m.stats, m.err
}
