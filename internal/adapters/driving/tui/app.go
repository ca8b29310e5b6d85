package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/keystone-labs/kbs-cli/internal/adapters/driving/tui/messages"
	"github.com/keystone-labs/kbs-cli/internal/adapters/driving/tui/styles"
	"github.com/keystone-labs/kbs-cli/internal/adapters/driving/tui/views/adddoc"
	"github.com/keystone-labs/kbs-cli/internal/adapters/driving/tui/views/auth"
	"github.com/keystone-labs/kbs-cli/internal/adapters/driving/tui/views/browse"
	"github.com/keystone-labs/kbs-cli/internal/adapters/driving/tui/views/detail"
	"github.com/keystone-labs/kbs-cli/internal/adapters/driving/tui/views/stats"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	// styles holds the TUI styles.
	styles *styles.Styles

	// authView is the sign-in and sign-up form.
	authView *auth.View

	// browseView is the search and document list view.
	browseView *browse.View

	// detailView shows a single document.
	detailView *detail.View

	// addDocView is the add document form.
	addDocView *adddoc.View

	// statsView is the usage analytics panel.
	statsView *stats.View

	// currentView tracks which view is active.
	currentView messages.ViewType

	// restored reports whether the startup session restore has run.
	// Its failure is expected for fresh installs and stays silent.
	restored bool

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()

	return &App{
		ports:       ports,
		ctx:         context.Background(),
		styles:      s,
		authView:    auth.NewView(s, ports.Session),
		browseView:  browse.NewView(s, ports.Browse, ports.Session),
		detailView:  detail.NewView(s),
		addDocView:  adddoc.NewView(s, ports.Ingest),
		statsView:   stats.NewView(s, ports.Stats),
		currentView: messages.ViewAuth, // Auth gate comes first
	}, nil
}

// WithContext sets the context for the app and its views.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.authView.WithContext(ctx)
	a.browseView.WithContext(ctx)
	a.addDocView.WithContext(ctx)
	a.statsView.WithContext(ctx)
	return a
}

// Init implements tea.Model.
// It enters the alt screen and tries to restore a persisted session.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("kbs - Knowledge Base"),
		a.authView.Init(),
		a.restoreCmd(),
	)
}

func (a *App) restoreCmd() tea.Cmd {
	return func() tea.Msg {
		session, err := a.ports.Session.Restore(a.ctx)
		return messages.SessionStarted{Session: session, Err: err}
	}
}

// Update implements tea.Model.
// It handles messages and updates the model state.
//
//nolint:gocognit,gocyclo // central message handler requires complexity
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		// Forward to all views for proper sizing
		a.authView.SetDimensions(msg.Width, msg.Height)
		a.browseView.SetDimensions(msg.Width, msg.Height)
		a.detailView.SetDimensions(msg.Width, msg.Height)
		a.addDocView.SetDimensions(msg.Width, msg.Height)
		a.statsView.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		// Global quit with ctrl+c
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		return a.forwardToCurrent(msg)

	case messages.SessionStarted:
		firstRestore := !a.restored
		a.restored = true
		if msg.Err != nil {
			// A failed startup restore just means signing in manually.
			if firstRestore {
				return a, nil
			}
			a.authView, cmd = a.authView.Update(msg)
			return a, cmd
		}
		a.err = nil
		a.currentView = messages.ViewBrowse
		return a, a.browseView.Init()

	case messages.SessionEnded:
		a.browseView.Reset()
		a.detailView.Reset()
		a.addDocView.Reset()
		a.statsView.Reset()
		a.authView.Reset()
		a.currentView = messages.ViewAuth
		return a, a.authView.Init()

	case messages.ViewChanged:
		a.currentView = msg.View
		switch msg.View {
		case messages.ViewBrowse:
			// Browse keeps its state between visits.
			return a, nil
		case messages.ViewAddDoc:
			a.addDocView.Reset()
			return a, a.addDocView.Init()
		case messages.ViewStats:
			return a, a.statsView.Init()
		case messages.ViewAuth:
			a.authView.Reset()
			return a, a.authView.Init()
		case messages.ViewDetail, messages.ViewHelp:
			// No initialisation needed
		}
		return a, nil

	case messages.DocumentSelected:
		a.detailView.SetDocument(msg.Document)
		a.detailView.SetDimensions(a.width, a.height)
		a.currentView = messages.ViewDetail
		return a, nil

	case messages.DocumentAdded:
		if msg.Err == nil && a.currentView == messages.ViewAddDoc {
			// Pick up the new document when returning to browse.
			a.addDocView, cmd = a.addDocView.Update(msg)
			return a, cmd
		}
		return a.forwardToCurrent(msg)

	case messages.ErrorOccurred:
		a.err = msg.Err
		return a.forwardToCurrent(msg)

	case messages.Quit:
		return a, tea.Quit
	}

	// Forward other messages to the active view
	return a.forwardToCurrent(msg)
}

// forwardToCurrent routes a message to the active view.
func (a *App) forwardToCurrent(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch a.currentView {
	case messages.ViewAuth:
		a.authView, cmd = a.authView.Update(msg)
	case messages.ViewBrowse:
		a.browseView, cmd = a.browseView.Update(msg)
	case messages.ViewDetail:
		a.detailView, cmd = a.detailView.Update(msg)
	case messages.ViewAddDoc:
		a.addDocView, cmd = a.addDocView.Update(msg)
	case messages.ViewStats:
		a.statsView, cmd = a.statsView.Update(msg)
	case messages.ViewHelp:
		if key, ok := msg.(tea.KeyMsg); ok && key.Type == tea.KeyEsc {
			a.currentView = messages.ViewBrowse
		}
	}

	return a, cmd
}

// View implements tea.Model.
// It renders the current view as a string.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewAuth:
		return a.authView.View()
	case messages.ViewBrowse:
		return a.browseView.View()
	case messages.ViewDetail:
		return a.detailView.View()
	case messages.ViewAddDoc:
		return a.addDocView.View()
	case messages.ViewStats:
		return a.statsView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	default:
		return a.authView.View()
	}
}

// viewHelp renders the help view.
func (a *App) viewHelp() string {
	return `Help

Browse:
  (type)      Enter search query
  enter       Submit search
  tab         Next category filter
  shift+tab   Previous category filter
  j/k, ↑/↓    Navigate results
  enter       Open selected document
  /           New search
  a           Add document
  s           Statistics
  ctrl+l      Sign out

Document:
  j/k, ↑/↓    Scroll
  esc         Back to browse

General:
  esc         Back
  ctrl+c      Quit

[esc] back to browse`
}

// SetDimensions sets the terminal dimensions and marks the app ready.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.authView.SetDimensions(width, height)
	a.browseView.SetDimensions(width, height)
	a.detailView.SetDimensions(width, height)
	a.addDocView.SetDimensions(width, height)
	a.statsView.SetDimensions(width, height)
}

// Ready reports whether the app has received terminal dimensions.
func (a *App) Ready() bool {
	return a.ready
}

// CurrentView returns the active view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the last error seen by the router.
func (a *App) Err() error {
	return a.err
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
