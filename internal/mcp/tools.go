// ABOUTME: MCP tool implementations over the pipeline result.
// ABOUTME: Provides read-only lookups of players, matches, load, recovery, and injuries.
package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/pitchside/internal/models"
)

// Recovery views accepted by get_recovery.
const (
	viewDaily   = "daily"
	viewHeatmap = "heatmap"
	viewWeekly  = "weekly"
	viewSummary = "summary"
)

func (s *Server) registerTools() {
	// list_players
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_players",
		Description: "List every player with profile, age, and season stats",
	}, s.handleListPlayers)

	// get_player
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_player",
		Description: "Get one player's profile by player id",
	}, s.handleGetPlayer)

	// get_last_matches
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_last_matches",
		Description: "Get a player's rows among the most recent team matches",
	}, s.handleGetLastMatches)

	// get_load
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_load",
		Description: "Get a player's training load records (TRIMP, acute, chronic, ACWR)",
	}, s.handleGetLoad)

	// get_recovery
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_recovery",
		Description: "Get a player's recovery view: daily, heatmap, weekly, or summary",
	}, s.handleGetRecovery)

	// get_injuries
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_injuries",
		Description: "Get a player's unavailability bands and ACWR injury markers",
	}, s.handleGetInjuries)
}

// Tool input/output types

type listPlayersInput struct{}

type playersOutput struct {
	Count   int                   `json:"count"`
	Players []models.PlayerResume `json:"players"`
}

type playerInput struct {
	PlayerID int `json:"player_id" jsonschema:"Player id (required)"`
}

type matchesOutput struct {
	PlayerID int                      `json:"player_id"`
	Matches  []models.MatchHistoryRow `json:"matches"`
}

type loadInput struct {
	PlayerID int    `json:"player_id" jsonschema:"Player id (required)"`
	Season   string `json:"season,omitempty" jsonschema:"Season label such as 2024/2025 (empty = all seasons)"`
	Limit    int    `json:"limit,omitempty" jsonschema:"Return only the most recent N records (0 = all)"`
}

type loadOutput struct {
	PlayerID int                 `json:"player_id"`
	Season   string              `json:"season,omitempty"`
	Seasons  []string            `json:"seasons"`
	Records  []models.LoadRecord `json:"records"`
}

type recoveryInput struct {
	PlayerID int    `json:"player_id" jsonschema:"Player id (required)"`
	View     string `json:"view,omitempty" jsonschema:"One of daily, heatmap, weekly, summary (default summary)"`
	Season   string `json:"season,omitempty" jsonschema:"Season label (ignored by summary; empty = all seasons)"`
}

type recoveryOutput struct {
	PlayerID int                      `json:"player_id"`
	View     string                   `json:"view"`
	Daily    []models.DailyRecovery   `json:"daily,omitempty"`
	Heatmap  []models.HeatmapRow      `json:"heatmap,omitempty"`
	Weekly   []models.WeeklyRecovery  `json:"weekly,omitempty"`
	Summary  []models.RecoverySummary `json:"summary,omitempty"`
	Message  string                   `json:"message,omitempty"`
}

type injuriesInput struct {
	PlayerID int    `json:"player_id" jsonschema:"Player id (required)"`
	Season   string `json:"season,omitempty" jsonschema:"Season label (empty = all seasons)"`
}

type injuriesOutput struct {
	PlayerID int                   `json:"player_id"`
	Bands    []models.InjuryBand   `json:"bands"`
	Markers  []models.InjuryMarker `json:"markers"`
}

// Tool handlers

func (s *Server) handleListPlayers(ctx context.Context, req *mcp.CallToolRequest, input listPlayersInput) (*mcp.CallToolResult, any, error) {
	players := s.res.Players()
	if len(players) == 0 {
		return nil, map[string]interface{}{"message": "No players found."}, nil
	}
	return nil, playersOutput{Count: len(players), Players: players}, nil
}

func (s *Server) handleGetPlayer(ctx context.Context, req *mcp.CallToolRequest, input playerInput) (*mcp.CallToolResult, any, error) {
	p, err := s.player(input.PlayerID)
	if err != nil {
		return nil, nil, err
	}
	return nil, p, nil
}

func (s *Server) handleGetLastMatches(ctx context.Context, req *mcp.CallToolRequest, input playerInput) (*mcp.CallToolResult, any, error) {
	if _, err := s.player(input.PlayerID); err != nil {
		return nil, nil, err
	}
	return nil, matchesOutput{
		PlayerID: input.PlayerID,
		Matches:  orEmpty(s.res.LastMatches(input.PlayerID)),
	}, nil
}

func (s *Server) handleGetLoad(ctx context.Context, req *mcp.CallToolRequest, input loadInput) (*mcp.CallToolResult, any, error) {
	if _, err := s.player(input.PlayerID); err != nil {
		return nil, nil, err
	}
	records := s.res.Load(input.PlayerID, input.Season)
	if input.Limit > 0 && len(records) > input.Limit {
		records = records[len(records)-input.Limit:]
	}
	return nil, loadOutput{
		PlayerID: input.PlayerID,
		Season:   input.Season,
		Seasons:  orEmpty(s.res.LoadSeasons()),
		Records:  orEmpty(records),
	}, nil
}

func (s *Server) handleGetRecovery(ctx context.Context, req *mcp.CallToolRequest, input recoveryInput) (*mcp.CallToolResult, any, error) {
	if _, err := s.player(input.PlayerID); err != nil {
		return nil, nil, err
	}

	view := strings.ToLower(strings.TrimSpace(input.View))
	if view == "" {
		view = viewSummary
	}
	out := recoveryOutput{PlayerID: input.PlayerID, View: view}
	var n int
	switch view {
	case viewDaily:
		out.Daily = s.res.Daily(input.PlayerID, input.Season)
		n = len(out.Daily)
	case viewHeatmap:
		out.Heatmap = s.res.Heatmap(input.PlayerID, input.Season)
		n = len(out.Heatmap)
	case viewWeekly:
		out.Weekly = s.res.Weekly(input.PlayerID, input.Season)
		n = len(out.Weekly)
	case viewSummary:
		out.Summary = s.res.Summary(input.PlayerID)
		n = len(out.Summary)
	default:
		return nil, nil, fmt.Errorf("unknown recovery view: %s (want daily, heatmap, weekly, or summary)", input.View)
	}
	if n == 0 {
		out.Message = "No recovery data found."
	}
	return nil, out, nil
}

func (s *Server) handleGetInjuries(ctx context.Context, req *mcp.CallToolRequest, input injuriesInput) (*mcp.CallToolResult, any, error) {
	if _, err := s.player(input.PlayerID); err != nil {
		return nil, nil, err
	}
	return nil, injuriesOutput{
		PlayerID: input.PlayerID,
		Bands:    orEmpty(s.res.UnavailabilityBands(input.PlayerID, input.Season)),
		Markers:  orEmpty(s.res.InjuryMarkers(input.PlayerID, input.Season)),
	}, nil
}

func (s *Server) player(id int) (models.PlayerResume, error) {
	p, ok := s.res.Resume(id)
	if !ok {
		return models.PlayerResume{}, fmt.Errorf("player not found: %d", id)
	}
	return p, nil
}

func orEmpty[T any](rows []T) []T {
	if rows == nil {
		return []T{}
	}
	return rows
}
