package tui

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/keystone-labs/kbs-cli/internal/core/domain"
)

// MockSessionService implements driving.SessionService for testing.
type MockSessionService struct {
	SignInFunc  func(ctx context.Context, email, password string) (*domain.Session, error)
	SignUpFunc  func(ctx context.Context, email, password string) (*domain.Session, error)
	SignOutFunc func(ctx context.Context) error
	RestoreFunc func(ctx context.Context) (*domain.Session, error)
	CurrentFunc func() *domain.Session
}

func (m *MockSessionService) SignIn(ctx context.Context, email, password string) (*domain.Session, error) {
	if m.SignInFunc != nil {
		return m.SignInFunc(ctx, email, password)
	}
	return nil, nil
}

func (m *MockSessionService) SignUp(ctx context.Context, email, password string) (*domain.Session, error) {
	if m.SignUpFunc != nil {
		return m.SignUpFunc(ctx, email, password)
	}
	return nil, nil
}

func (m *MockSessionService) SignOut(ctx context.Context) error {
	if m.SignOutFunc != nil {
		return m.SignOutFunc(ctx)
	}
	return nil
}

func (m *MockSessionService) Restore(ctx context.Context) (*domain.Session, error) {
	if m.RestoreFunc != nil {
		return m.RestoreFunc(ctx)
	}
	return nil, nil
}

func (m *MockSessionService) Current() *domain.Session {
	if m.CurrentFunc != nil {
		return m.CurrentFunc()
	}
	return nil
}

// MockBrowseService implements driving.BrowseService for testing.
type MockBrowseService struct {
	LoadFunc         func(ctx context.Context) error
	SubmitSearchFunc func(ctx context.Context, query string) error
	SelectResultFunc func(id string) *domain.Document

	DisplayedDocs []domain.Document
	AllCategories []string

	category string
	query    string
}

func (m *MockBrowseService) Load(ctx context.Context) error {
	if m.LoadFunc != nil {
		return m.LoadFunc(ctx)
	}
	return nil
}

func (m *MockBrowseService) ChangeCategory(category string) {
	m.category = category
}

func (m *MockBrowseService) SubmitSearch(ctx context.Context, query string) error {
	m.query = query
	if m.SubmitSearchFunc != nil {
		return m.SubmitSearchFunc(ctx, query)
	}
	return nil
}

func (m *MockBrowseService) SelectResult(id string) *domain.Document {
	if m.SelectResultFunc != nil {
		return m.SelectResultFunc(id)
	}
	return nil
}

func (m *MockBrowseService) Documents() []domain.Document {
	return m.DisplayedDocs
}

func (m *MockBrowseService) Displayed() []domain.Document {
	return m.DisplayedDocs
}

func (m *MockBrowseService) Categories() []string {
	return m.AllCategories
}

func (m *MockBrowseService) Category() string {
	if m.category == "" {
		return domain.CategoryAll
	}
	return m.category
}

func (m *MockBrowseService) Query() string {
	return m.query
}

func (m *MockBrowseService) Searching() bool {
	return false
}

func (m *MockBrowseService) Searched() bool {
	return m.query != ""
}

// MockStatsService implements driving.StatsService for testing.
type MockStatsService struct {
	LoadFunc func(ctx context.Context) (*domain.Stats, error)
}

func (m *MockStatsService) Load(ctx context.Context) (*domain.Stats, error) {
	if m.LoadFunc != nil {
		return m.LoadFunc(ctx)
	}
	return &domain.Stats{}, nil
}

// MockIngestService implements driving.IngestService for testing.
type MockIngestService struct {
	AddFunc func(ctx context.Context, draft domain.DocumentDraft) error
}

func (m *MockIngestService) Add(ctx context.Context, draft domain.DocumentDraft) error {
	if m.AddFunc != nil {
		return m.AddFunc(ctx, draft)
	}
	return nil
}

func TestPorts_Validate_AllSet(t *testing.T) {
	ports := &Ports{
		Session: &MockSessionService{},
		Browse:  &MockBrowseService{},
		Stats:   &MockStatsService{},
		Ingest:  &MockIngestService{},
	}

	err := ports.Validate()

	assert.NoError(t, err)
}

func TestPorts_Validate_MissingSession(t *testing.T) {
	ports := &Ports{
		Session: nil,
		Browse:  &MockBrowseService{},
		Stats:   &MockStatsService{},
		Ingest:  &MockIngestService{},
	}

	err := ports.Validate()

	assert.ErrorIs(t, err, ErrMissingSessionService)
}

func TestPorts_Validate_MissingBrowse(t *testing.T) {
	ports := &Ports{
		Session: &MockSessionService{},
		Browse:  nil,
		Stats:   &MockStatsService{},
		Ingest:  &MockIngestService{},
	}

	err := ports.Validate()

	assert.ErrorIs(t, err, ErrMissingBrowseService)
}

func TestPorts_Validate_MissingStats(t *testing.T) {
	ports := &Ports{
		Session: &MockSessionService{},
		Browse:  &MockBrowseService{},
		Stats:   nil,
		Ingest:  &MockIngestService{},
	}

	err := ports.Validate()

	assert.ErrorIs(t, err, ErrMissingStatsService)
}

func TestPorts_Validate_MissingIngest(t *testing.T) {
	ports := &Ports{
		Session: &MockSessionService{},
		Browse:  &MockBrowseService{},
		Stats:   &MockStatsService{},
		Ingest:  nil,
	}

	err := ports.Validate()

	assert.ErrorIs(t, err, ErrMissingIngestService)
}
