// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/keystone-labs/kbs-cli/internal/core/domain"
)

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewAuth is the sign-in / sign-up form.
	ViewAuth ViewType = iota
	// ViewBrowse is the main search and category browse view.
	ViewBrowse
	// ViewDetail shows a single document's content.
	ViewDetail
	// ViewAddDoc is the add document form.
	ViewAddDoc
	// ViewStats is the usage statistics panel.
	ViewStats
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewAuth:
		return "auth"
	case ViewBrowse:
		return "browse"
	case ViewDetail:
		return "detail"
	case ViewAddDoc:
		return "add_doc"
	case ViewStats:
		return "stats"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// SessionStarted carries the outcome of a sign-in, sign-up or restore.
type SessionStarted struct {
	Session *domain.Session
	Err     error
}

// SessionEnded signals the user signed out.
type SessionEnded struct {
	Err error
}

// DocumentsLoaded signals the browse collection finished loading.
type DocumentsLoaded struct {
	Err error
}

// SearchCompleted signals a search finished; results live in the
// browse service.
type SearchCompleted struct {
	Query string
	Err   error
}

// CategoryChanged signals the category filter moved.
type CategoryChanged struct {
	Category string
}

// DocumentSelected signals a document was chosen from the displayed set.
type DocumentSelected struct {
	Document domain.Document
}

// DocumentAdded signals an add form submission completed.
type DocumentAdded struct {
	Title string
	Err   error
}

// StatsLoaded carries the usage statistics snapshot.
type StatsLoaded struct {
	Stats *domain.Stats
	Err   error
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
