// ABOUTME: Input source registry: file names, delimiters, date layouts, schemas.
// ABOUTME: Each source carries its own date layout; formats are never inferred.
package storage

import (
	"fmt"
	"sort"
)

// SourceID names one of the flat input tables.
type SourceID string

const (
	SourcePlayers          SourceID = "players"
	SourceCountries        SourceID = "countries"
	SourceTeams            SourceID = "teams"
	SourceSeasonAggregates SourceID = "season_aggregates"
	SourcePlayerMatches    SourceID = "player_matches"
	SourceMatches          SourceID = "matches"
	SourceSessions         SourceID = "sessions"
	SourceInjuries         SourceID = "injuries"
	SourceRecovery         SourceID = "recovery"
)

// AllSources lists every input in load order.
var AllSources = []SourceID{
	SourcePlayers, SourceCountries, SourceTeams, SourceSeasonAggregates,
	SourcePlayerMatches, SourceMatches, SourceSessions, SourceInjuries,
	SourceRecovery,
}

// Date layouts used by the source exports.
const (
	LayoutYearFirst = "2006/01/02"
	LayoutDayFirst  = "02/01/2006"
)

// SourceSpec describes how to read one input file.
type SourceSpec struct {
	File       string `json:"file" yaml:"file" mapstructure:"file"`
	Delimiter  string `json:"delimiter" yaml:"delimiter" mapstructure:"delimiter"`
	DateLayout string `json:"date_layout" yaml:"date_layout" mapstructure:"date_layout"`
}

// DefaultSources returns the stock file layout of the performance exports.
func DefaultSources() map[SourceID]SourceSpec {
	return map[SourceID]SourceSpec{
		SourcePlayers:          {File: "ref_player.csv", Delimiter: ";", DateLayout: LayoutYearFirst},
		SourceCountries:        {File: "ref_country.csv", Delimiter: ";"},
		SourceTeams:            {File: "ref_team.csv", Delimiter: ";"},
		SourceSeasonAggregates: {File: "agg_player_season.csv", Delimiter: ";"},
		SourcePlayerMatches:    {File: "agg_player_matches.csv", Delimiter: ";"},
		SourceMatches:          {File: "matches.csv", Delimiter: ";", DateLayout: LayoutYearFirst},
		SourceSessions:         {File: "cfc_gps_data_augmented.csv", Delimiter: ",", DateLayout: LayoutDayFirst},
		SourceInjuries:         {File: "injuries_histo.csv", Delimiter: ";", DateLayout: LayoutDayFirst},
		SourceRecovery:         {File: "cfc_recovery_status_data_augmented.csv", Delimiter: ",", DateLayout: LayoutDayFirst},
	}
}

// MergeSources overlays non-empty fields of overrides onto the defaults.
func MergeSources(overrides map[SourceID]SourceSpec) (map[SourceID]SourceSpec, error) {
	out := DefaultSources()
	ids := make([]string, 0, len(overrides))
	for id := range overrides {
		ids = append(ids, string(id))
	}
	sort.Strings(ids)

	for _, raw := range ids {
		id := SourceID(raw)
		base, ok := out[id]
		if !ok {
			return nil, fmt.Errorf("unknown source %q", raw)
		}
		o := overrides[id]
		if o.File != "" {
			base.File = o.File
		}
		if o.Delimiter != "" {
			if len([]rune(o.Delimiter)) != 1 {
				return nil, fmt.Errorf("source %s: delimiter must be one character, got %q", id, o.Delimiter)
			}
			base.Delimiter = o.Delimiter
		}
		if o.DateLayout != "" {
			base.DateLayout = o.DateLayout
		}
		out[id] = base
	}
	return out, nil
}

// requiredColumns are the columns each source must carry. Anything else is
// optional and read when present.
var requiredColumns = map[SourceID][]string{
	SourcePlayers:          {"player_id", "name", "birthdate", "country_id"},
	SourceCountries:        {"country_id", "url_picture"},
	SourceTeams:            {"team_id", "team_name", "url_picture"},
	SourceSeasonAggregates: {"player_id"},
	SourcePlayerMatches:    {"match_id", "player_id", "starter_group", "minutes_played", "goals", "assists"},
	SourceMatches:          {"match_id", "match_date", "home_team_id", "away_team_id", "home_team_score", "away_team_score"},
	SourceSessions: {
		"player_id", "date", "opposition_full", "day_duration", "distance",
		"hr_zone_1_hms", "hr_zone_2_hms", "hr_zone_3_hms", "hr_zone_4_hms", "hr_zone_5_hms",
	},
	SourceInjuries: {"player_id", "injury_date", "return_date", "body_part", "injury_name", "is_injury_active"},
	SourceRecovery: {"player_id", "sessionDate", "seasonName", "metric", "category", "value"},
}

// RequiredColumns returns the schema of a source.
func RequiredColumns(id SourceID) []string {
	return requiredColumns[id]
}
