// ABOUTME: Match history view joining fixtures, player lines, and opponents.
// ABOUTME: Derives home flag, W/D/L result, score string, and the last-N cut.
package reference

import (
	"fmt"
	"sort"

	"github.com/harperreed/pitchside/internal/models"
)

// DefaultOwnTeamID is the team_id of the club the dashboard follows.
const DefaultOwnTeamID = 1

// DefaultLastMatches is the size of the recent-form strip.
const DefaultLastMatches = 5

// BuildMatchHistory left-joins matches with player match lines and resolves
// the opponent. A match with no player lines yields one row with PlayerID 0.
// Rows are sorted by match date, most recent first; ties keep input order.
func BuildMatchHistory(matches []models.Match, lines []models.PlayerMatch, teams []models.Team, ownTeamID int) []models.MatchHistoryRow {
	linesByMatch := make(map[int][]models.PlayerMatch)
	for _, l := range lines {
		linesByMatch[l.MatchID] = append(linesByMatch[l.MatchID], l)
	}
	teamByID := make(map[int]models.Team, len(teams))
	for _, t := range teams {
		if _, ok := teamByID[t.TeamID]; !ok {
			teamByID[t.TeamID] = t
		}
	}

	var out []models.MatchHistoryRow
	for _, m := range matches {
		isHome := m.HomeTeamID == ownTeamID
		opponentID := m.HomeTeamID
		if isHome {
			opponentID = m.AwayTeamID
		}
		opp := teamByID[opponentID]
		result, score := ResultAndScore(isHome, m.HomeTeamScore, m.AwayTeamScore)

		base := models.MatchHistoryRow{
			MatchID:            m.MatchID,
			MatchDate:          m.MatchDate,
			IsHome:             isHome,
			OpponentID:         opponentID,
			OpponentName:       opp.Name,
			OpponentPictureURL: opp.PictureURL,
			HomeTeamScore:      m.HomeTeamScore,
			AwayTeamScore:      m.AwayTeamScore,
			Result:             result,
			Score:              score,
		}

		ls := linesByMatch[m.MatchID]
		if len(ls) == 0 {
			out = append(out, base)
			continue
		}
		for _, l := range ls {
			row := base
			row.PlayerID = l.PlayerID
			row.StarterGroup = l.StarterGroup
			row.MinutesPlayed = l.MinutesPlayed
			row.Goals = l.Goals
			row.Assists = l.Assists
			out = append(out, row)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].MatchDate.After(out[j].MatchDate)
	})
	return out
}

// ResultAndScore derives the result from the followed team's point of view
// and formats the score as "home - away". Both are empty when either score
// is missing.
func ResultAndScore(isHome bool, home, away *int) (models.Result, string) {
	if home == nil || away == nil {
		return models.ResultUnknown, ""
	}
	team, opp := *away, *home
	if isHome {
		team, opp = *home, *away
	}

	var result models.Result
	switch {
	case team > opp:
		result = models.ResultWin
	case team == opp:
		result = models.ResultDraw
	default:
		result = models.ResultLoss
	}
	return result, fmt.Sprintf("%d - %d", *home, *away)
}

// LastMatches keeps every row belonging to the n most recent distinct matches
// of history, which must already be sorted most recent first.
func LastMatches(history []models.MatchHistoryRow, n int) []models.MatchHistoryRow {
	keep := make(map[int]bool, n)
	for _, row := range history {
		if len(keep) == n {
			break
		}
		keep[row.MatchID] = true
	}

	var out []models.MatchHistoryRow
	for _, row := range history {
		if keep[row.MatchID] {
			out = append(out, row)
		}
	}
	return out
}
