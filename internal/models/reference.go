// ABOUTME: Player, team, country, and match reference records.
// ABOUTME: Includes the joined player resume and match history output rows.
package models

import "time"

// Player is one row of the player reference table.
type Player struct {
	PlayerID   int
	Name       string
	Number     string
	Group      string
	GroupID    int
	Foot       string
	Height     *float64
	Weight     *float64
	PictureURL string
	CountryID  int
	Birthdate  time.Time
}

// Country is one row of the country reference table.
type Country struct {
	CountryID  int
	Name       string
	PictureURL string
}

// Team is one row of the team reference table.
type Team struct {
	TeamID     int
	Name       string
	PictureURL string
}

// SeasonAggregate holds a player's season totals keyed by column name
// (appearances, starts, minutes, goals, starting_eleven_pct, ...).
type SeasonAggregate struct {
	PlayerID int
	Stats    map[string]float64
}

// Match is one fixture from the match list.
type Match struct {
	MatchID       int
	MatchDate     time.Time
	HomeTeamID    int
	AwayTeamID    int
	HomeTeamScore *int
	AwayTeamScore *int
}

// PlayerMatch is one player's line for one match.
type PlayerMatch struct {
	MatchID       int
	PlayerID      int
	StarterGroup  string
	MinutesPlayed float64
	Goals         int
	Assists       int
}

// PlayerResume is the joined player profile shown on the overview tab.
type PlayerResume struct {
	PlayerID          int                `json:"player_id" yaml:"player_id"`
	Name              string             `json:"name" yaml:"name"`
	Number            string             `json:"number" yaml:"number"`
	Group             string             `json:"group" yaml:"group"`
	GroupID           int                `json:"group_id" yaml:"group_id"`
	Foot              string             `json:"foot,omitempty" yaml:"foot,omitempty"`
	Height            *float64           `json:"height,omitempty" yaml:"height,omitempty"`
	Weight            *float64           `json:"weight,omitempty" yaml:"weight,omitempty"`
	PictureURL        string             `json:"player_picture_url" yaml:"player_picture_url"`
	CountryID         int                `json:"country_id" yaml:"country_id"`
	CountryPictureURL string             `json:"url_picture_country" yaml:"url_picture_country"`
	Birthdate         time.Time          `json:"birthdate" yaml:"birthdate"`
	Age               int                `json:"age" yaml:"age"`
	Stats             map[string]float64 `json:"stats,omitempty" yaml:"stats,omitempty"`
}

// Result is the outcome of a match from the player's team point of view.
type Result string

const (
	ResultWin     Result = "W"
	ResultDraw    Result = "D"
	ResultLoss    Result = "L"
	ResultUnknown Result = ""
)

// MatchHistoryRow is one (match, player) line of the match history view.
// PlayerID is 0 for a match with no player line.
type MatchHistoryRow struct {
	MatchID            int       `json:"match_id" yaml:"match_id"`
	MatchDate          time.Time `json:"match_date" yaml:"match_date"`
	PlayerID           int       `json:"player_id" yaml:"player_id"`
	IsHome             bool      `json:"is_home" yaml:"is_home"`
	OpponentID         int       `json:"opponent_id" yaml:"opponent_id"`
	OpponentName       string    `json:"opponent_name" yaml:"opponent_name"`
	OpponentPictureURL string    `json:"opponent_url_picture" yaml:"opponent_url_picture"`
	StarterGroup       string    `json:"starter_group" yaml:"starter_group"`
	MinutesPlayed      float64   `json:"minutes_played" yaml:"minutes_played"`
	Goals              int       `json:"goals" yaml:"goals"`
	Assists            int       `json:"assists" yaml:"assists"`
	HomeTeamScore      *int      `json:"home_team_score" yaml:"home_team_score"`
	AwayTeamScore      *int      `json:"away_team_score" yaml:"away_team_score"`
	Result             Result    `json:"result" yaml:"result"`
	Score              string    `json:"score" yaml:"score"`
}
