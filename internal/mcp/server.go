// ABOUTME: MCP server setup for the pitchside tables.
// ABOUTME: Wraps the MCP server around one immutable pipeline result.
package mcp

import (
	"context"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/pitchside/internal/pipeline"
)

// Server wraps the MCP server with read access to a pipeline result.
type Server struct {
	mcpServer *mcp.Server
	res       *pipeline.Result
}

// NewServer creates a new MCP server over res.
func NewServer(res *pipeline.Result) (*Server, error) {
	if res == nil {
		return nil, errors.New("pipeline result is required")
	}

	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "pitchside",
			Version: "1.0.0",
		},
		nil,
	)

	s := &Server{
		mcpServer: mcpServer,
		res:       res,
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Serve starts the MCP server using stdio transport.
func (s *Server) Serve(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}
