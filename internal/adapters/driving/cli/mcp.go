package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/keystone-labs/kbs-cli/internal/adapters/driving/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server for AI assistant integration.

The server exposes the knowledge base as search and read tools. A
stored session is required; run 'kbs login' first.

By default, the server communicates over stdio using JSON-RPC and can
be used with Claude Desktop and other MCP-compatible AI assistants.
Use --port to start an HTTP server instead.

Examples:
  # Stdio mode (default, for Claude Desktop)
  kbs mcp serve

  # HTTP mode (for MCP Inspector, remote access)
  kbs mcp serve --port 8080

Claude Desktop configuration (claude_desktop_config.json):
  {
    "mcpServers": {
      "kbs": {
        "command": "/path/to/kbs",
        "args": ["mcp", "serve"]
      }
    }
  }`,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}

	// Tools run against the current identity, so the session must be
	// restored up front rather than lazily per call.
	if _, err := requireSession(cmd.Context()); err != nil {
		return err
	}

	ports := &mcp.Ports{
		Session: sessionService,
		Browse:  browseService,
		Stats:   statsService,
	}

	server, err := mcp.NewServer(ports)
	if err != nil {
		return err
	}

	if port > 0 {
		addr := fmt.Sprintf(":%d", port)
		fmt.Fprintf(cmd.OutOrStdout(), "MCP server listening on http://localhost%s\n", addr)
		return server.RunHTTP(cmd.Context(), addr)
	}

	return server.Run(cmd.Context())
}
