package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/framescope/internal/adapters/driving/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server so AI assistants can search
keyframes on the hub.

Tools: search_frames, scroll_frames, neighbors.
Resources: history://searches and history://searches/{index}.

By default the server speaks JSON-RPC over stdio. Use --port to serve over
HTTP instead, e.g. for the MCP Inspector.

Examples:
  # Stdio mode (default)
  framescope mcp serve

  # HTTP mode
  framescope mcp serve --port 8080

Client configuration:
  {
    "mcpServers": {
      "framescope": {
        "command": "/path/to/framescope",
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

	server, err := mcp.NewServer(&mcp.Ports{
		Search:    searchService,
		History:   historyService,
		Filter:    filterService,
		Navigator: navigator,
		Settings:  settingsService,
	}, version)
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
