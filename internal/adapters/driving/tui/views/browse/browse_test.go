package browse

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keystone-labs/kbs-cli/internal/adapters/driving/tui/components/status"
	"github.com/keystone-labs/kbs-cli/internal/adapters/driving/tui/messages"
	"github.com/keystone-labs/kbs-cli/internal/core/domain"
)

type mockBrowseService struct {
	displayed  []domain.Document
	categories []string
	category   string
	query      string
	selected   *domain.Document

	loadErr   error
	searchErr error

	loadCalls   int
	selectedID  string
	searchQuery string
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
	m.query = query
	return m.searchErr
}

func (m *mockBrowseService) SelectResult(id string) *domain.Document {
	m.selectedID = id
	return m.selected
}

func (m *mockBrowseService) Documents() []domain.Document {
	return m.displayed
}

func (m *mockBrowseService) Displayed() []domain.Document {
	return m.displayed
}

func (m *mockBrowseService) Categories() []string {
	return m.categories
}

func (m *mockBrowseService) Category() string {
	if m.category == "" {
		return domain.CategoryAll
	}
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

type mockSessionService struct {
	signOutErr error
	signedOut  bool
}

func (m *mockSessionService) SignIn(_ context.Context, _, _ string) (*domain.Session, error) {
	return nil, nil
}

func (m *mockSessionService) SignUp(_ context.Context, _, _ string) (*domain.Session, error) {
	return nil, nil
}

func (m *mockSessionService) SignOut(_ context.Context) error {
	m.signedOut = true
	return m.signOutErr
}

func (m *mockSessionService) Restore(_ context.Context) (*domain.Session, error) {
	return nil, domain.ErrNoSession
}

func (m *mockSessionService) Current() *domain.Session {
	return nil
}

func testDocs() []domain.Document {
	return []domain.Document{
		{ID: "doc-1", Title: "VPN Setup", Category: "it", Content: "Install the client.", CreatedAt: time.Now()},
		{ID: "doc-2", Title: "Expense Policy", Category: "finance", Content: "Submit receipts.", CreatedAt: time.Now()},
	}
}

func newLoadedView(browse *mockBrowseService) *View {
	v := NewView(nil, browse, &mockSessionService{})
	v.Init()
	v.Update(messages.DocumentsLoaded{})
	return v
}

func press(v *View, key string) (*View, tea.Cmd) {
	switch key {
	case "enter":
		return v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	case "esc":
		return v.Update(tea.KeyMsg{Type: tea.KeyEsc})
	case "tab":
		return v.Update(tea.KeyMsg{Type: tea.KeyTab})
	case "shift+tab":
		return v.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	case "down":
		return v.Update(tea.KeyMsg{Type: tea.KeyDown})
	case "up":
		return v.Update(tea.KeyMsg{Type: tea.KeyUp})
	default:
		return v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)})
	}
}

func TestView_Init_FocusesSearchAndLoads(t *testing.T) {
	browse := &mockBrowseService{}
	v := NewView(nil, browse, &mockSessionService{})

	cmd := v.Init()

	require.NotNil(t, cmd)
	assert.True(t, v.search.Focused())
}

func TestView_DocumentsLoaded_RefreshesList(t *testing.T) {
	browse := &mockBrowseService{
		displayed:  testDocs(),
		categories: []string{"it", "finance"},
	}
	v := NewView(nil, browse, &mockSessionService{})
	v.Init()

	v.Update(messages.DocumentsLoaded{})

	assert.True(t, v.Loaded())
	assert.Len(t, v.Documents(), 2)
	assert.Equal(t, domain.CategoryAll, v.SelectedCategory())
}

func TestView_DocumentsLoaded_Error(t *testing.T) {
	v := NewView(nil, &mockBrowseService{}, &mockSessionService{})
	v.Init()

	v.Update(messages.DocumentsLoaded{Err: errors.New("store unavailable")})

	assert.False(t, v.Loaded())
	assert.Equal(t, status.StateError, v.statusBar.State())
	assert.Contains(t, v.View(), "Loading documents")
}

func TestView_SubmitSearch(t *testing.T) {
	browse := &mockBrowseService{displayed: testDocs()}
	v := newLoadedView(browse)
	v.search.Focus()

	for _, r := range "vpn" {
		press(v, string(r))
	}
	_, cmd := press(v, "enter")

	require.NotNil(t, cmd)
	assert.False(t, v.search.Focused())
	assert.Equal(t, status.StateSearching, v.statusBar.State())

	result := cmd()
	completed, ok := result.(messages.SearchCompleted)
	require.True(t, ok)
	assert.Equal(t, "vpn", completed.Query)
	assert.Equal(t, "vpn", browse.searchQuery)
}

func TestView_SubmitSearch_EmptyQueryBlurs(t *testing.T) {
	browse := &mockBrowseService{displayed: testDocs()}
	v := newLoadedView(browse)
	v.search.Focus()

	_, cmd := press(v, "enter")

	assert.Nil(t, cmd)
	assert.False(t, v.search.Focused())
	assert.Empty(t, browse.searchQuery)
}

func TestView_SearchCompleted_ShowsResultCount(t *testing.T) {
	browse := &mockBrowseService{displayed: testDocs()[:1], query: "vpn"}
	v := newLoadedView(browse)

	v.Update(messages.SearchCompleted{Query: "vpn"})

	assert.Equal(t, status.StateResults, v.statusBar.State())
	assert.Contains(t, v.statusBar.Message(), `1 result(s) for "vpn"`)
}

func TestView_SearchCompleted_Error(t *testing.T) {
	v := newLoadedView(&mockBrowseService{})

	v.Update(messages.SearchCompleted{Query: "vpn", Err: errors.New("search failed")})

	assert.Equal(t, status.StateError, v.statusBar.State())
}

func TestView_Tab_CyclesCategory(t *testing.T) {
	browse := &mockBrowseService{
		displayed:  testDocs(),
		categories: []string{"it", "finance"},
	}
	v := newLoadedView(browse)

	_, cmd := press(v, "tab")

	require.NotNil(t, cmd)
	assert.Equal(t, "it", browse.category)

	result := cmd()
	changed, ok := result.(messages.CategoryChanged)
	require.True(t, ok)
	assert.Equal(t, "it", changed.Category)
}

func TestView_ShiftTab_CyclesBackward(t *testing.T) {
	browse := &mockBrowseService{
		displayed:  testDocs(),
		categories: []string{"it", "finance"},
	}
	v := newLoadedView(browse)

	press(v, "shift+tab")

	// Wraps from all to the last category.
	assert.Equal(t, "finance", browse.category)
}

func TestView_CategoryChanged_ClearsSearchField(t *testing.T) {
	browse := &mockBrowseService{displayed: testDocs()}
	v := newLoadedView(browse)
	v.search.SetValue("vpn")

	v.Update(messages.CategoryChanged{Category: "it"})

	assert.Empty(t, v.search.Value())
}

func TestView_Enter_OpensSelectedDocument(t *testing.T) {
	docs := testDocs()
	browse := &mockBrowseService{displayed: docs, selected: &docs[0]}
	v := newLoadedView(browse)
	v.search.Blur()

	_, cmd := press(v, "enter")

	require.NotNil(t, cmd)
	assert.Equal(t, "doc-1", browse.selectedID)

	result := cmd()
	selected, ok := result.(messages.DocumentSelected)
	require.True(t, ok)
	assert.Equal(t, "VPN Setup", selected.Document.Title)
}

func TestView_Enter_NoDocuments(t *testing.T) {
	v := newLoadedView(&mockBrowseService{})
	v.search.Blur()

	_, cmd := press(v, "enter")

	assert.Nil(t, cmd)
}

func TestView_Navigation_MovesSelection(t *testing.T) {
	browse := &mockBrowseService{displayed: testDocs()}
	v := newLoadedView(browse)
	v.search.Blur()

	press(v, "down")
	assert.Equal(t, 1, v.docs.Selected())

	press(v, "up")
	assert.Equal(t, 0, v.docs.Selected())
}

func TestView_Slash_StartsNewSearch(t *testing.T) {
	browse := &mockBrowseService{displayed: testDocs()}
	v := newLoadedView(browse)
	v.search.Blur()
	v.search.SetValue("old query")

	press(v, "/")

	assert.True(t, v.search.Focused())
	assert.Empty(t, v.search.Value())
}

func TestView_A_OpensAddForm(t *testing.T) {
	v := newLoadedView(&mockBrowseService{displayed: testDocs()})
	v.search.Blur()

	_, cmd := press(v, "a")

	require.NotNil(t, cmd)
	result := cmd()
	changed, ok := result.(messages.ViewChanged)
	require.True(t, ok)
	assert.Equal(t, messages.ViewAddDoc, changed.View)
}

func TestView_S_OpensStats(t *testing.T) {
	v := newLoadedView(&mockBrowseService{displayed: testDocs()})
	v.search.Blur()

	_, cmd := press(v, "s")

	require.NotNil(t, cmd)
	result := cmd()
	changed, ok := result.(messages.ViewChanged)
	require.True(t, ok)
	assert.Equal(t, messages.ViewStats, changed.View)
}

func TestView_CtrlL_SignsOut(t *testing.T) {
	sessions := &mockSessionService{}
	v := NewView(nil, &mockBrowseService{}, sessions)
	v.Init()
	v.Update(messages.DocumentsLoaded{})
	v.search.Blur()

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyCtrlL})

	require.NotNil(t, cmd)
	result := cmd()
	ended, ok := result.(messages.SessionEnded)
	require.True(t, ok)
	assert.NoError(t, ended.Err)
	assert.True(t, sessions.signedOut)
}

func TestView_View_EmptyCollection(t *testing.T) {
	v := newLoadedView(&mockBrowseService{})

	assert.Contains(t, v.View(), "No documents yet")
}

func TestView_View_NoSearchResults(t *testing.T) {
	browse := &mockBrowseService{query: "nonexistent"}
	v := newLoadedView(browse)

	assert.Contains(t, v.View(), `No results for "nonexistent"`)
}

func TestView_Reset(t *testing.T) {
	v := newLoadedView(&mockBrowseService{displayed: testDocs()})
	v.search.SetValue("vpn")

	v.Reset()

	assert.False(t, v.Loaded())
	assert.Empty(t, v.search.Value())
	assert.Empty(t, v.Documents())
}
