package mcp

import (
	"github.com/keystone-labs/kbs-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Session gates every operation on an authenticated identity.
	Session driving.SessionService

	// Browse provides document loading, searching and selection.
	Browse driving.BrowseService

	// Stats provides the usage analytics snapshot.
	Stats driving.StatsService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Session == nil {
		return ErrMissingSessionService
	}
	if p.Browse == nil {
		return ErrMissingBrowseService
	}
	// Stats is optional; the stats resource degrades without it
	return nil
}
