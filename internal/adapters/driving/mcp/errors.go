// Package mcp provides an MCP (Model Context Protocol) server adapter for the
// knowledge base. It enables AI assistants to search and read documents.
package mcp

import "errors"

// ErrMissingBrowseService is returned when the browse service is not provided.
var ErrMissingBrowseService = errors.New("mcp: browse service is required")

// ErrMissingSessionService is returned when the session service is not provided.
var ErrMissingSessionService = errors.New("mcp: session service is required")
