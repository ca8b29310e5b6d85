package domain

import "time"

// SearchEvent is an immutable record of one search submission.
// Created exactly once per submission; never mutated or deleted.
type SearchEvent struct {
	// UserID is the session identity that searched.
	UserID string

	// Query is the submitted query text.
	Query string

	// ResultsCount is the size of the result set at search time.
	// It is not re-validated later.
	ResultsCount int

	// SelectedResultID optionally links the result the user opened.
	SelectedResultID string

	// CreatedAt is when the search was submitted.
	CreatedAt time.Time
}

// ViewEvent is an immutable record of one document open action.
// Recorded on every result click; duplicates are expected.
type ViewEvent struct {
	// DocumentID is the opened document.
	DocumentID string

	// UserID is the session identity that opened it.
	UserID string

	// ViewedAt is when the document was opened.
	ViewedAt time.Time
}
