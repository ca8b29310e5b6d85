package domain

import (
	"strings"
	"time"
)

// DefaultCategory is assigned when a document is created without a category.
const DefaultCategory = "general"

// Document is a unit of knowledge-base content.
// It is the canonical row shape returned by the backing store.
type Document struct {
	// ID is the opaque unique identifier assigned on insert.
	ID string

	// Title is the human-readable title. Searchable.
	Title string

	// Content is the full text body. Searchable.
	Content string

	// Category is an open-ended label, DefaultCategory if unset.
	Category string

	// Tags are display labels in insertion order.
	Tags []string

	// FileURL is an optional attachment reference.
	FileURL string

	// FileType is the attachment content type, if FileURL is set.
	FileType string

	// Metadata contains arbitrary key-value pairs.
	Metadata map[string]any

	// CreatedBy is the identity of the creating session.
	CreatedBy string

	// CreatedAt is when the document was inserted.
	CreatedAt time.Time

	// UpdatedAt is when the document was last modified.
	UpdatedAt time.Time

	// Archived documents are excluded from every load and search.
	Archived bool
}

// DocumentDraft carries the caller-supplied fields for an insert.
// The store assigns ID and timestamps; CreatedBy comes from the session.
type DocumentDraft struct {
	Title    string
	Content  string
	Category string
	Tags     []string
	FileURL  string
	FileType string
	Metadata map[string]any
}

// Validate checks the required insert fields.
func (d *DocumentDraft) Validate() error {
	if strings.TrimSpace(d.Title) == "" {
		return ErrMissingTitle
	}
	if strings.TrimSpace(d.Content) == "" {
		return ErrMissingContent
	}
	return nil
}

// Normalise fills defaults for optional fields.
func (d *DocumentDraft) Normalise() {
	if strings.TrimSpace(d.Category) == "" {
		d.Category = DefaultCategory
	}
	if d.Tags == nil {
		d.Tags = []string{}
	}
}

// Matches reports whether the query occurs in the title or content,
// case-insensitively. Mirrors the substring semantics of the remote
// store's ilike filter; used by local store implementations.
func (d *Document) Matches(query string) bool {
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(d.Title), q) ||
		strings.Contains(strings.ToLower(d.Content), q)
}
