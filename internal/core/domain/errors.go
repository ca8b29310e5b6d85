package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrMissingTitle indicates a document insert without a title.
	ErrMissingTitle = errors.New("document title is required")

	// ErrMissingContent indicates a document insert without content.
	ErrMissingContent = errors.New("document content is required")

	// ErrNoSession indicates an operation that requires an authenticated
	// session was attempted anonymously.
	ErrNoSession = errors.New("no active session")

	// ErrSearchInFlight indicates a search submission arrived while a
	// previous one was still outstanding. The new submission is ignored.
	ErrSearchInFlight = errors.New("search already in flight")

	// ErrWeakPassword indicates a password below the minimum length.
	ErrWeakPassword = errors.New("password must be at least 6 characters")
)

// AuthError carries a human-readable message from the auth service.
// It surfaces inline on the session form, never as a blocking dialog.
type AuthError struct {
	// Message is shown to the user verbatim.
	Message string

	// Err is the underlying cause, if any.
	Err error
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("auth: %s: %v", e.Message, e.Err)
	}
	return "auth: " + e.Message
}

func (e *AuthError) Unwrap() error { return e.Err }

// NewAuthError wraps err with a user-facing message.
func NewAuthError(message string, err error) *AuthError {
	return &AuthError{Message: message, Err: err}
}

// StoreError indicates a query or transport failure against the backing
// store. Callers log it and keep their prior state intact.
type StoreError struct {
	// Op names the failed operation, e.g. "load" or "search".
	Op string

	// Err is the underlying cause.
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store: %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// NewStoreError wraps err for the named store operation.
func NewStoreError(op string, err error) *StoreError {
	return &StoreError{Op: op, Err: err}
}
