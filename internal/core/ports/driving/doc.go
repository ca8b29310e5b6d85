// Package driving defines the inbound port interfaces through which
// external actors (CLI, TUI, MCP) drive the core services.
package driving
