// ABOUTME: Pipeline runs every data-preparation stage once over the input tables.
// ABOUTME: Produces an immutable Result shared by the CLI, exports, HTTP, and MCP.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/harperreed/pitchside/internal/injury"
	"github.com/harperreed/pitchside/internal/load"
	"github.com/harperreed/pitchside/internal/logger"
	"github.com/harperreed/pitchside/internal/models"
	"github.com/harperreed/pitchside/internal/recovery"
	"github.com/harperreed/pitchside/internal/reference"
	"github.com/harperreed/pitchside/internal/storage"
)

// Options configures a pipeline run.
type Options struct {
	// Today is the date ages are computed against.
	Today time.Time
	// ReferenceDate ends the trailing 7-day recovery summary.
	ReferenceDate time.Time
	// WindowStart and WindowEnd bound GPS session dates, inclusive.
	WindowStart time.Time
	WindowEnd   time.Time
	// OwnTeamID identifies the followed team in the match list.
	OwnTeamID int
	// LastMatches is how many recent matches the form strip keeps.
	LastMatches int
	// CompletenessThreshold is the completeness a composite must exceed.
	CompletenessThreshold float64
	// Workers caps concurrent per-player load computations.
	Workers int
}

// DefaultOptions returns the options matching the bundled dataset.
func DefaultOptions() Options {
	return Options{
		Today:                 models.Truncate(time.Now()),
		ReferenceDate:         recovery.DefaultReferenceDate,
		WindowStart:           models.Day(2023, time.August, 1),
		WindowEnd:             models.Day(2025, time.March, 13),
		OwnTeamID:             reference.DefaultOwnTeamID,
		LastMatches:           reference.DefaultLastMatches,
		CompletenessThreshold: recovery.DefaultThreshold,
		Workers:               4,
	}
}

// Pipeline turns loaded tables into the derived output tables.
type Pipeline struct {
	opts Options
	log  *logger.Logger
}

// New creates a pipeline.
func New(opts Options, log *logger.Logger) *Pipeline {
	if log == nil {
		log = logger.Nop()
	}
	return &Pipeline{opts: opts, log: log}
}

// Run executes every stage in order. The reference joiner and the injury
// index are independent and run concurrently; the load processor needs the
// index; the recovery views only need the raw recovery rows.
func (p *Pipeline) Run(ctx context.Context, t *storage.Tables) (*Result, error) {
	if t == nil {
		return nil, fmt.Errorf("run pipeline: no input tables")
	}
	start := time.Now()
	res := &Result{DatasetID: t.DatasetID}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		res.Resumes = reference.BuildResumes(t.Players, t.SeasonAggregates, t.Countries, p.opts.Today)
		res.MatchHistory = reference.BuildMatchHistory(t.Matches, t.PlayerMatches, t.Teams, p.opts.OwnTeamID)
		res.RecentMatches = reference.LastMatches(res.MatchHistory, p.opts.LastMatches)
		return gctx.Err()
	})
	g.Go(func() error {
		res.Injuries = injury.NewIndex(t.Injuries)
		return gctx.Err()
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("reference stage: %w", err)
	}
	p.log.Info("reference tables built",
		"players", len(res.Resumes),
		"match_rows", len(res.MatchHistory),
		"last_match_rows", len(res.RecentMatches),
		"injuries", res.Injuries.Len())

	processor := load.NewProcessor(load.Options{
		WindowStart: p.opts.WindowStart,
		WindowEnd:   p.opts.WindowEnd,
		Workers:     p.opts.Workers,
	}, res.Injuries, t.Teams)
	records, err := processor.Process(ctx, t.Sessions)
	if err != nil {
		return nil, fmt.Errorf("load stage: %w", err)
	}
	res.LoadRecords = records
	p.log.Info("training load computed",
		"sessions", len(t.Sessions),
		"records", len(res.LoadRecords))

	agg := recovery.NewAggregator(p.opts.CompletenessThreshold)
	res.DailyRecovery = agg.Daily(t.Recovery)
	res.HeatmapRecovery = agg.Heatmap(t.Recovery)
	res.WeeklyRecovery = agg.Weekly(t.Recovery)
	p.log.Info("recovery views built",
		"rows", len(t.Recovery),
		"daily", len(res.DailyRecovery),
		"heatmap", len(res.HeatmapRecovery),
		"weekly", len(res.WeeklyRecovery))

	res.RecoverySummary = recovery.Summarize(t.Recovery, p.opts.ReferenceDate)
	p.log.Info("recovery summary built",
		"reference_date", models.FormatDay(p.opts.ReferenceDate),
		"rows", len(res.RecoverySummary))

	res.loadSeasons = seasonsOf(res.LoadRecords, func(r models.LoadRecord) string { return r.Season }, false)
	res.recoverySeasons = seasonsOf(t.Recovery, func(r models.RecoveryRow) string { return r.SeasonName }, true)

	p.log.Debug("pipeline finished", "dataset_id", res.DatasetID.String(), "elapsed", time.Since(start).String())
	return res, nil
}
