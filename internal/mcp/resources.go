// ABOUTME: MCP resource implementations for the pitchside tables.
// ABOUTME: Provides pitchside://players and pitchside://summary resources.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	playersURI = "pitchside://players"
	summaryURI = "pitchside://summary"
)

func (s *Server) registerResources() {
	// pitchside://players - every player resume
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         playersURI,
		Name:        "Players",
		Description: "Every player with profile, age, and season stats",
		MIMEType:    "application/json",
	}, s.handlePlayersResource)

	// pitchside://summary - dataset id, table counts, and seasons
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         summaryURI,
		Name:        "Dataset Summary",
		Description: "Dataset fingerprint, row count per table, and selectable seasons",
		MIMEType:    "application/json",
	}, s.handleSummaryResource)
}

// Resource handlers

func (s *Server) handlePlayersResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	return jsonResource(playersURI, orEmpty(s.res.Players()))
}

func (s *Server) handleSummaryResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	result := map[string]interface{}{
		"dataset_id": s.res.DatasetID.String(),
		"tables":     s.res.TableCounts(),
		"seasons": map[string][]string{
			"load":     orEmpty(s.res.LoadSeasons()),
			"recovery": orEmpty(s.res.RecoverySeasons()),
		},
	}
	return jsonResource(summaryURI, result)
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
