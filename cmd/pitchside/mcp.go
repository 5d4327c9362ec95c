// ABOUTME: CLI command for starting MCP server.
// ABOUTME: Runs stdio-based MCP server exposing the derived tables.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/harperreed/pitchside/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server",
	Long: `Start the Model Context Protocol (MCP) server for AI assistant integration.

The server communicates via stdin/stdout and answers questions about the
squad from the tables computed at startup. Logs go to stderr.

CLAUDE DESKTOP CONFIGURATION:

  {
    "mcpServers": {
      "pitchside": {
        "command": "pitchside",
        "args": ["mcp", "--data-dir", "/path/to/data"]
      }
    }
  }

AVAILABLE TOOLS:

  list_players       List every player
  get_player         Get one player's profile
  get_last_matches   Player rows among the most recent matches
  get_load           Training load records (TRIMP, ACWR)
  get_recovery       Recovery view: daily, heatmap, weekly, summary
  get_injuries       Unavailability bands and ACWR injury markers

AVAILABLE RESOURCES:

  pitchside://players   Every player
  pitchside://summary   Dataset id, table counts, seasons`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		server, err := mcp.NewServer(result)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		// Handle shutdown signals
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			<-sigChan
			cancel()
		}()

		return server.Serve(ctx)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
