// Package browse provides the main document browsing view: a search
// field, category filter chips, the result list and a status bar.
package browse

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/keystone-labs/kbs-cli/internal/adapters/driving/tui/components/chips"
	"github.com/keystone-labs/kbs-cli/internal/adapters/driving/tui/components/input"
	"github.com/keystone-labs/kbs-cli/internal/adapters/driving/tui/components/list"
	"github.com/keystone-labs/kbs-cli/internal/adapters/driving/tui/components/status"
	"github.com/keystone-labs/kbs-cli/internal/adapters/driving/tui/keymap"
	"github.com/keystone-labs/kbs-cli/internal/adapters/driving/tui/messages"
	"github.com/keystone-labs/kbs-cli/internal/adapters/driving/tui/styles"
	"github.com/keystone-labs/kbs-cli/internal/core/domain"
	"github.com/keystone-labs/kbs-cli/internal/core/ports/driving"
)

// View is the browse view. The search field and the result list share
// focus: typing happens in the field, navigation in the list.
type View struct {
	styles *styles.Styles
	keymap *keymap.KeyMap

	search     *input.TextField
	categories *chips.Row
	docs       *list.DocList
	statusBar  *status.Bar

	browse   driving.BrowseService
	sessions driving.SessionService
	ctx      context.Context

	loaded bool
	width  int
	height int
}

// NewView creates the browse view.
func NewView(s *styles.Styles, browse driving.BrowseService, sessions driving.SessionService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	km := keymap.DefaultKeyMap()

	return &View{
		styles:     s,
		keymap:     km,
		search:     input.NewTextField(s, "Search", "Search the knowledge base..."),
		categories: chips.NewRow(s),
		docs:       list.NewDocList(s),
		statusBar:  status.NewBar(s, km),
		browse:     browse,
		sessions:   sessions,
		ctx:        context.Background(),
		width:      80,
		height:     24,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init focuses the search field and loads the document collection.
func (v *View) Init() tea.Cmd {
	v.statusBar.SetState(status.StateLoading)
	return tea.Batch(v.search.Focus(), v.loadCmd())
}

func (v *View) loadCmd() tea.Cmd {
	return func() tea.Msg {
		err := v.browse.Load(v.ctx)
		return messages.DocumentsLoaded{Err: err}
	}
}

// Update handles messages for the browse view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.DocumentsLoaded:
		if msg.Err != nil {
			v.statusBar.SetState(status.StateError)
			v.statusBar.SetMessage(msg.Err.Error())
			return v, nil
		}
		v.loaded = true
		v.refresh()
		return v, nil

	case messages.SearchCompleted:
		if msg.Err != nil {
			v.statusBar.SetState(status.StateError)
			v.statusBar.SetMessage(msg.Err.Error())
			return v, nil
		}
		v.refresh()
		return v, nil

	case messages.CategoryChanged:
		v.search.Reset()
		v.refresh()
		return v, nil
	}

	return v, nil
}

// handleKeyMsg processes keyboard input. Category and action keys only
// fire when the search field is not capturing text.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	keyStr := msg.String()

	if keymap.Matches(keyStr, v.keymap.NextCategory) {
		return v, v.changeCategoryCmd(v.categories.Next())
	}
	if keymap.Matches(keyStr, v.keymap.PrevCategory) {
		return v, v.changeCategoryCmd(v.categories.Prev())
	}

	if v.search.Focused() {
		switch {
		case keymap.Matches(keyStr, v.keymap.Search):
			return v.submitSearch()
		case keymap.Matches(keyStr, v.keymap.Back):
			v.search.Blur()
			return v, nil
		}
		var cmd tea.Cmd
		v.search, cmd = v.search.Update(msg)
		return v, cmd
	}

	switch {
	case keymap.Matches(keyStr, v.keymap.Up):
		v.docs.MoveUp()
		return v, nil
	case keymap.Matches(keyStr, v.keymap.Down):
		v.docs.MoveDown()
		return v, nil
	case keymap.Matches(keyStr, v.keymap.Select):
		return v.openSelected()
	case keymap.Matches(keyStr, v.keymap.NewSearch):
		v.search.Reset()
		return v, v.search.Focus()
	case keymap.Matches(keyStr, v.keymap.Add):
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewAddDoc}
		}
	case keymap.Matches(keyStr, v.keymap.Stats):
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewStats}
		}
	case keymap.Matches(keyStr, v.keymap.SignOut):
		return v, v.signOutCmd()
	}

	return v, nil
}

// submitSearch runs the query as a command. Empty queries fall back to
// the category filter instead of searching.
func (v *View) submitSearch() (*View, tea.Cmd) {
	query := strings.TrimSpace(v.search.Value())
	if query == "" {
		v.search.Blur()
		return v, nil
	}
	if v.browse.Searching() {
		return v, nil
	}

	v.search.Blur()
	v.statusBar.SetState(status.StateSearching)

	return v, func() tea.Msg {
		err := v.browse.SubmitSearch(v.ctx, query)
		return messages.SearchCompleted{Query: query, Err: err}
	}
}

// openSelected records the view and navigates to the detail screen.
func (v *View) openSelected() (*View, tea.Cmd) {
	selected := v.docs.SelectedDocument()
	if selected == nil {
		return v, nil
	}

	doc := v.browse.SelectResult(selected.ID)
	if doc == nil {
		return v, nil
	}

	opened := *doc
	return v, func() tea.Msg {
		return messages.DocumentSelected{Document: opened}
	}
}

func (v *View) changeCategoryCmd(category string) tea.Cmd {
	v.browse.ChangeCategory(category)
	return func() tea.Msg {
		return messages.CategoryChanged{Category: category}
	}
}

func (v *View) signOutCmd() tea.Cmd {
	return func() tea.Msg {
		err := v.sessions.SignOut(v.ctx)
		return messages.SessionEnded{Err: err}
	}
}

// refresh snapshots the service state into the components.
func (v *View) refresh() {
	v.docs.SetDocuments(v.browse.Displayed())
	v.categories.SetCategories(v.browse.Categories())
	v.categories.Select(v.browse.Category())

	count := v.docs.Count()
	v.statusBar.SetResultCount(count)
	if v.browse.Searched() {
		v.statusBar.SetState(status.StateResults)
		v.statusBar.SetMessage(fmt.Sprintf("%d result(s) for %q", count, v.browse.Query()))
	} else {
		v.statusBar.SetState(status.StateReady)
		v.statusBar.SetMessage("")
	}
}

// View renders the browse view.
func (v *View) View() string {
	var body string
	switch {
	case !v.loaded:
		body = v.styles.Muted.Render("Loading documents...")
	case v.docs.IsEmpty() && v.browse.Searched():
		body = v.styles.Muted.Render(fmt.Sprintf("No results for %q", v.browse.Query()))
	case v.docs.IsEmpty():
		body = v.styles.Muted.Render("No documents yet. Press 'a' to add one.")
	default:
		body = v.docs.View()
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		v.search.View(),
		v.categories.View(),
		"",
		body,
		"",
		v.statusBar.View(),
	)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.search.SetWidth(width)
	v.statusBar.SetWidth(width)
	// Search field, chips, status bar and spacing take six rows.
	v.docs.SetDimensions(width, height-6)
}

// Loaded reports whether the initial load has completed.
func (v *View) Loaded() bool {
	return v.loaded
}

// Documents returns the documents currently listed.
func (v *View) Documents() []domain.Document {
	return v.docs.Documents()
}

// SelectedCategory returns the active category chip.
func (v *View) SelectedCategory() string {
	return v.categories.Selected()
}

// Reset clears the view back to its initial state.
func (v *View) Reset() {
	v.search.Reset()
	v.docs.SetDocuments(nil)
	v.statusBar.Clear()
	v.loaded = false
}
