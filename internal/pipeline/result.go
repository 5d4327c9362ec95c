// ABOUTME: Result holds the derived tables and the per-player query helpers.
// ABOUTME: Consumers filter by player and season here instead of recomputing.
package pipeline

import (
	"sort"

	"github.com/google/uuid"

	"github.com/harperreed/pitchside/internal/injury"
	"github.com/harperreed/pitchside/internal/models"
)

// Result is the output of one pipeline run. It is not modified after Run
// returns and is safe for concurrent readers.
type Result struct {
	DatasetID       uuid.UUID
	Resumes         []models.PlayerResume
	MatchHistory    []models.MatchHistoryRow
	RecentMatches   []models.MatchHistoryRow
	LoadRecords     []models.LoadRecord
	DailyRecovery   []models.DailyRecovery
	HeatmapRecovery []models.HeatmapRow
	WeeklyRecovery  []models.WeeklyRecovery
	RecoverySummary []models.RecoverySummary
	Injuries        *injury.Index

	loadSeasons     []string
	recoverySeasons []string
}

// TableCounts reports the row count of every output table, keyed by table name.
func (r *Result) TableCounts() map[string]int {
	return map[string]int{
		TablePlayers:         len(r.Resumes),
		TableLastMatches:     len(r.RecentMatches),
		TableLoad:            len(r.LoadRecords),
		TableRecoveryDaily:   len(r.DailyRecovery),
		TableRecoveryHeatmap: len(r.HeatmapRecovery),
		TableRecoveryWeekly:  len(r.WeeklyRecovery),
		TableRecoverySummary: len(r.RecoverySummary),
	}
}

// Players returns every player resume.
func (r *Result) Players() []models.PlayerResume {
	return r.Resumes
}

// Resume returns the resume for a player.
func (r *Result) Resume(playerID int) (models.PlayerResume, bool) {
	for _, p := range r.Resumes {
		if p.PlayerID == playerID {
			return p, true
		}
	}
	return models.PlayerResume{}, false
}

// LastMatches returns the player's rows among the most recent matches.
func (r *Result) LastMatches(playerID int) []models.MatchHistoryRow {
	return filter(r.RecentMatches, func(m models.MatchHistoryRow) bool {
		return m.PlayerID == playerID
	})
}

// Load returns the player's load records for a season; an empty season
// matches all seasons.
func (r *Result) Load(playerID int, season string) []models.LoadRecord {
	return filter(r.LoadRecords, func(l models.LoadRecord) bool {
		return l.PlayerID == playerID && matchesSeason(l.Season, season)
	})
}

// Daily returns the player's daily recovery rows for a season.
func (r *Result) Daily(playerID int, season string) []models.DailyRecovery {
	return filter(r.DailyRecovery, func(d models.DailyRecovery) bool {
		return d.PlayerID == playerID && matchesSeason(d.SeasonName, season)
	})
}

// Heatmap returns the player's heatmap rows for a season.
func (r *Result) Heatmap(playerID int, season string) []models.HeatmapRow {
	return filter(r.HeatmapRecovery, func(h models.HeatmapRow) bool {
		return h.PlayerID == playerID && matchesSeason(h.SeasonName, season)
	})
}

// Weekly returns the player's weekly recovery rows for a season.
func (r *Result) Weekly(playerID int, season string) []models.WeeklyRecovery {
	return filter(r.WeeklyRecovery, func(w models.WeeklyRecovery) bool {
		return w.PlayerID == playerID && matchesSeason(w.SeasonName, season)
	})
}

// Summary returns the player's trailing 7-day recovery summary.
func (r *Result) Summary(playerID int) []models.RecoverySummary {
	return filter(r.RecoverySummary, func(s models.RecoverySummary) bool {
		return s.PlayerID == playerID
	})
}

// UnavailabilityBands returns the player's injuries overlapping the span of
// their load records for a season, clipped to that span. Bands that shrink
// to a single day are dropped.
func (r *Result) UnavailabilityBands(playerID int, season string) []models.InjuryBand {
	records := r.Load(playerID, season)
	if len(records) == 0 || r.Injuries == nil {
		return nil
	}
	start, end := records[0].Date, records[0].Date
	for _, rec := range records[1:] {
		if rec.Date.Before(start) {
			start = rec.Date
		}
		if rec.Date.After(end) {
			end = rec.Date
		}
	}

	var bands []models.InjuryBand
	for _, b := range r.Injuries.Overlapping(playerID, start, end) {
		if b.From.Before(b.To) {
			bands = append(bands, b)
		}
	}
	return bands
}

// InjuryMarkers pins each injury onto the ACWR series at the load record
// dated on its injury day.
func (r *Result) InjuryMarkers(playerID int, season string) []models.InjuryMarker {
	if r.Injuries == nil {
		return nil
	}
	var markers []models.InjuryMarker
	for _, rec := range r.Load(playerID, season) {
		for _, inj := range r.Injuries.StartingOn(playerID, rec.Date) {
			markers = append(markers, models.InjuryMarker{
				PlayerID:   playerID,
				Date:       rec.Date,
				ACWR:       rec.ACWR,
				BodyPart:   inj.BodyPart,
				InjuryName: inj.InjuryName,
			})
		}
	}
	return markers
}

// LoadSeasons lists the seasons present in the load table, ascending.
func (r *Result) LoadSeasons() []string {
	return r.loadSeasons
}

// RecoverySeasons lists the seasons present in the recovery input, descending.
func (r *Result) RecoverySeasons() []string {
	return r.recoverySeasons
}

func matchesSeason(have, want string) bool {
	return want == "" || have == want
}

func filter[T any](rows []T, keep func(T) bool) []T {
	var out []T
	for _, row := range rows {
		if keep(row) {
			out = append(out, row)
		}
	}
	return out
}

func seasonsOf[T any](rows []T, season func(T) string, descending bool) []string {
	seen := make(map[string]bool)
	var out []string
	for _, row := range rows {
		s := season(row)
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	if descending {
		sort.Sort(sort.Reverse(sort.StringSlice(out)))
	} else {
		sort.Strings(out)
	}
	return out
}
