// Package tui provides the interactive terminal interface for kbs.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/keystone-labs/kbs-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Session gates everything on an authenticated identity.
	Session driving.SessionService

	// Browse owns the document collection and the displayed subset.
	Browse driving.BrowseService

	// Stats assembles the usage analytics snapshot.
	Stats driving.StatsService

	// Ingest adds documents to the knowledge base.
	Ingest driving.IngestService
}

// Validate ensures all required ports are set.
// Returns an error if any port is nil.
func (p *Ports) Validate() error {
	if p.Session == nil {
		return ErrMissingSessionService
	}
	if p.Browse == nil {
		return ErrMissingBrowseService
	}
	if p.Stats == nil {
		return ErrMissingStatsService
	}
	if p.Ingest == nil {
		return ErrMissingIngestService
	}
	return nil
}
