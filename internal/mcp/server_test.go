// ABOUTME: Tests for MCP server, tools, and resources.
// ABOUTME: Covers NewServer, tool handlers, and resource handlers over a small pipeline run.
package mcp

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/pitchside/internal/models"
	"github.com/harperreed/pitchside/internal/pipeline"
	"github.com/harperreed/pitchside/internal/storage"
)

func f(v float64) *float64 { return &v }

// setupTestServer runs the pipeline on a tiny dataset and wraps it.
func setupTestServer(t *testing.T) *Server {
	t.Helper()

	season := "2024/2025"
	day := models.Day(2024, time.September, 12)
	session := func(d int) models.Session {
		return models.Session{PlayerID: 7, Date: models.Day(2024, time.September, d), Season: season, Distance: 4000, DayDuration: 50}
	}
	tables := &storage.Tables{
		DatasetID: uuid.MustParse("11111111-2222-5333-8444-555555555555"),
		Players: []models.Player{
			{PlayerID: 7, Name: "Alex", Number: "10"},
			{PlayerID: 9, Name: "Sam", Number: "4"},
		},
		Sessions: []models.Session{session(1), session(3), session(5), session(12)},
		Injuries: []models.Injury{
			{PlayerID: 7, InjuryDate: models.Day(2024, time.September, 3), ReturnDate: models.Day(2024, time.September, 10), BodyPart: "Hamstring"},
		},
		Recovery: []models.RecoveryRow{
			{PlayerID: 7, SessionDate: day, SeasonName: season, Metric: models.MetricSleepComposite, Category: "sleep", Value: f(0.5)},
			{PlayerID: 7, SessionDate: day, SeasonName: season, Metric: models.MetricSleepCompleteness, Category: "sleep", Value: f(1)},
			{PlayerID: 7, SessionDate: day, SeasonName: season, Metric: models.MetricEmbossScore, Category: "total", Value: f(0.3)},
		},
	}

	opts := pipeline.DefaultOptions()
	opts.Today = models.Day(2025, time.March, 13)
	opts.ReferenceDate = models.Day(2024, time.September, 14)
	res, err := pipeline.New(opts, nil).Run(context.Background(), tables)
	if err != nil {
		t.Fatalf("pipeline run failed: %v", err)
	}

	server, err := NewServer(res)
	if err != nil {
		t.Fatalf("NewServer failed: %v", err)
	}
	return server
}

func TestNewServer(t *testing.T) {
	server := setupTestServer(t)
	if server.mcpServer == nil {
		t.Error("Expected non-nil mcpServer")
	}
	if server.res == nil {
		t.Error("Expected non-nil result")
	}

	if _, err := NewServer(nil); err == nil {
		t.Error("Expected error for nil result")
	}
}

func TestHandleListPlayers(t *testing.T) {
	server := setupTestServer(t)

	_, output, err := server.handleListPlayers(context.Background(), &mcp.CallToolRequest{}, listPlayersInput{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	players, ok := output.(playersOutput)
	if !ok {
		t.Fatalf("output type = %T, want playersOutput", output)
	}
	if players.Count != 2 || players.Players[0].Name != "Alex" {
		t.Errorf("players = %+v", players)
	}
}

func TestHandleGetPlayer(t *testing.T) {
	server := setupTestServer(t)
	ctx := context.Background()

	tests := []struct {
		name      string
		playerID  int
		wantErr   bool
		wantName  string
		errSubstr string
	}{
		{name: "known player", playerID: 9, wantName: "Sam"},
		{name: "unknown player", playerID: 42, wantErr: true, errSubstr: "player not found"},
		{name: "zero id", playerID: 0, wantErr: true, errSubstr: "player not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, output, err := server.handleGetPlayer(ctx, &mcp.CallToolRequest{}, playerInput{PlayerID: tt.playerID})
			if tt.wantErr {
				if err == nil || !strings.Contains(err.Error(), tt.errSubstr) {
					t.Errorf("err = %v, want containing %q", err, tt.errSubstr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if p := output.(models.PlayerResume); p.Name != tt.wantName {
				t.Errorf("Name = %s, want %s", p.Name, tt.wantName)
			}
		})
	}
}

func TestHandleGetLastMatchesEmpty(t *testing.T) {
	server := setupTestServer(t)

	_, output, err := server.handleGetLastMatches(context.Background(), &mcp.CallToolRequest{}, playerInput{PlayerID: 7})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	matches := output.(matchesOutput)
	if matches.Matches == nil || len(matches.Matches) != 0 {
		t.Errorf("Matches = %v, want empty non-nil slice", matches.Matches)
	}
}

func TestHandleGetLoad(t *testing.T) {
	server := setupTestServer(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		input loadInput
		want  int
	}{
		{name: "all seasons", input: loadInput{PlayerID: 7}, want: 4},
		{name: "season filter", input: loadInput{PlayerID: 7, Season: "2024/2025"}, want: 4},
		{name: "other season", input: loadInput{PlayerID: 7, Season: "2023/2024"}, want: 0},
		{name: "limit keeps latest", input: loadInput{PlayerID: 7, Limit: 2}, want: 2},
		{name: "player without sessions", input: loadInput{PlayerID: 9}, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, output, err := server.handleGetLoad(ctx, &mcp.CallToolRequest{}, tt.input)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			load := output.(loadOutput)
			if len(load.Records) != tt.want {
				t.Errorf("records = %d, want %d", len(load.Records), tt.want)
			}
			if tt.input.Limit > 0 && !load.Records[len(load.Records)-1].Date.Equal(models.Day(2024, time.September, 12)) {
				t.Errorf("last record = %v, want 2024-09-12", load.Records[len(load.Records)-1].Date)
			}
		})
	}
}

func TestHandleGetRecovery(t *testing.T) {
	server := setupTestServer(t)
	ctx := context.Background()

	tests := []struct {
		view      string
		rows      func(recoveryOutput) int
		want      int
		wantErr   bool
		wantEmpty bool
	}{
		{view: "daily", rows: func(o recoveryOutput) int { return len(o.Daily) }, want: 1},
		{view: "heatmap", rows: func(o recoveryOutput) int { return len(o.Heatmap) }, want: 1},
		{view: "WEEKLY", rows: func(o recoveryOutput) int { return len(o.Weekly) }, want: 1},
		{view: "", rows: func(o recoveryOutput) int { return len(o.Summary) }, want: 2},
		{view: "monthly", wantErr: true},
	}

	for _, tt := range tests {
		t.Run("view="+tt.view, func(t *testing.T) {
			_, output, err := server.handleGetRecovery(ctx, &mcp.CallToolRequest{}, recoveryInput{PlayerID: 7, View: tt.view})
			if tt.wantErr {
				if err == nil || !strings.Contains(err.Error(), "unknown recovery view") {
					t.Errorf("err = %v, want unknown recovery view", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			out := output.(recoveryOutput)
			if got := tt.rows(out); got != tt.want {
				t.Errorf("rows = %d, want %d", got, tt.want)
			}
		})
	}

	_, output, err := server.handleGetRecovery(ctx, &mcp.CallToolRequest{}, recoveryInput{PlayerID: 9, View: "summary"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if out := output.(recoveryOutput); out.Message != "No recovery data found." {
		t.Errorf("Message = %q, want no-data message", out.Message)
	}
}

func TestHandleGetInjuries(t *testing.T) {
	server := setupTestServer(t)

	_, output, err := server.handleGetInjuries(context.Background(), &mcp.CallToolRequest{}, injuriesInput{PlayerID: 7})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	inj := output.(injuriesOutput)
	if len(inj.Bands) != 1 || inj.Bands[0].Injury.BodyPart != "Hamstring" {
		t.Errorf("bands = %+v", inj.Bands)
	}
	if len(inj.Markers) != 1 || !inj.Markers[0].Date.Equal(models.Day(2024, time.September, 3)) {
		t.Errorf("markers = %+v", inj.Markers)
	}

	if _, _, err := server.handleGetInjuries(context.Background(), &mcp.CallToolRequest{}, injuriesInput{PlayerID: 42}); err == nil {
		t.Error("Expected error for unknown player")
	}
}

func TestHandlePlayersResource(t *testing.T) {
	server := setupTestServer(t)

	result, err := server.handlePlayersResource(context.Background(), &mcp.ReadResourceRequest{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(result.Contents) != 1 || result.Contents[0].URI != playersURI {
		t.Fatalf("contents = %+v", result.Contents)
	}

	var players []models.PlayerResume
	if err := json.Unmarshal([]byte(result.Contents[0].Text), &players); err != nil {
		t.Fatalf("Failed to parse players: %v", err)
	}
	if len(players) != 2 {
		t.Errorf("players = %d, want 2", len(players))
	}
}

func TestHandleSummaryResource(t *testing.T) {
	server := setupTestServer(t)

	result, err := server.handleSummaryResource(context.Background(), &mcp.ReadResourceRequest{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	var summary struct {
		DatasetID string              `json:"dataset_id"`
		Tables    map[string]int      `json:"tables"`
		Seasons   map[string][]string `json:"seasons"`
	}
	if err := json.Unmarshal([]byte(result.Contents[0].Text), &summary); err != nil {
		t.Fatalf("Failed to parse summary: %v", err)
	}
	if summary.DatasetID != "11111111-2222-5333-8444-555555555555" {
		t.Errorf("dataset_id = %s", summary.DatasetID)
	}
	if summary.Tables[pipeline.TableLoad] != 4 || summary.Tables[pipeline.TablePlayers] != 2 {
		t.Errorf("tables = %v", summary.Tables)
	}
	if len(summary.Seasons["load"]) != 1 || summary.Seasons["recovery"][0] != "2024/2025" {
		t.Errorf("seasons = %v", summary.Seasons)
	}
}
