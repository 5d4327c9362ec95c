// ABOUTME: Markdown report of players, recent form, load status, and recovery.
// ABOUTME: One section per player with tables readable in any markdown viewer.
package export

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/harperreed/pitchside/internal/models"
	"github.com/harperreed/pitchside/internal/pipeline"
)

// Markdown renders the filtered export as a report.
func Markdown(res *pipeline.Result, filter Filter) string {
	data := Collect(res, filter)

	var sb strings.Builder
	sb.WriteString("# Pitchside Report\n\n")
	sb.WriteString(fmt.Sprintf("Dataset: %s\n\n", data.DatasetID))
	if filter.Season != "" {
		sb.WriteString(fmt.Sprintf("Season: %s\n\n", filter.Season))
	}
	sb.WriteString(fmt.Sprintf("%s players, %s load records, %s recovery days\n\n",
		humanize.Comma(int64(len(data.Players))),
		humanize.Comma(int64(len(data.Load))),
		humanize.Comma(int64(len(data.RecoveryDaily)))))

	if len(data.Players) == 0 {
		sb.WriteString("No players.\n")
		return sb.String()
	}

	for _, p := range data.Players {
		sb.WriteString(fmt.Sprintf("## %s", p.Name))
		if p.Number != "" {
			sb.WriteString(fmt.Sprintf(" #%s", p.Number))
		}
		sb.WriteString("\n\n")

		sb.WriteString("| Group | Foot | Age | Birthdate |\n")
		sb.WriteString("|-------|------|-----|-----------|\n")
		sb.WriteString(fmt.Sprintf("| %s | %s | %d | %s |\n\n",
			p.Group, p.Foot, p.Age, models.FormatDay(p.Birthdate)))

		writeMatches(&sb, data.LastMatches, p.PlayerID)
		writeLoad(&sb, data.Load, p.PlayerID)
		writeSummary(&sb, data.RecoverySummary, p.PlayerID)
	}
	return sb.String()
}

func writeMatches(sb *strings.Builder, matches []models.MatchHistoryRow, playerID int) {
	var rows []models.MatchHistoryRow
	for _, m := range matches {
		if m.PlayerID == playerID {
			rows = append(rows, m)
		}
	}
	if len(rows) == 0 {
		return
	}

	sb.WriteString("### Last matches\n\n")
	sb.WriteString("| Date | Opponent | Venue | Score | Result | Minutes | Goals | Assists |\n")
	sb.WriteString("|------|----------|-------|-------|--------|---------|-------|---------|\n")
	for _, m := range rows {
		venue := "Away"
		if m.IsHome {
			venue = "Home"
		}
		sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %s | %.0f | %d | %d |\n",
			models.FormatDay(m.MatchDate), m.OpponentName, venue, m.Score, m.Result,
			m.MinutesPlayed, m.Goals, m.Assists))
	}
	sb.WriteString("\n")
}

func writeLoad(sb *strings.Builder, records []models.LoadRecord, playerID int) {
	var latest *models.LoadRecord
	sessions, injured := 0, 0
	var totalKM float64
	for i := range records {
		r := &records[i]
		if r.PlayerID != playerID {
			continue
		}
		sessions++
		totalKM += r.DistanceKM
		if r.Status == models.StatusInjured {
			injured++
		}
		if latest == nil || !r.Date.Before(latest.Date) {
			latest = r
		}
	}
	if latest == nil {
		return
	}

	sb.WriteString("### Training load\n\n")
	sb.WriteString(fmt.Sprintf("%s sessions (%d injured), %s km covered\n\n",
		humanize.Comma(int64(sessions)), injured, humanize.CommafWithDigits(totalKM, 1)))
	sb.WriteString("| Latest | Acute | Chronic | ACWR | Zone |\n")
	sb.WriteString("|--------|-------|---------|------|------|\n")
	sb.WriteString(fmt.Sprintf("| %s | %.1f | %.1f | %.2f | %s |\n\n",
		models.FormatDay(latest.Date), latest.AcuteLoad, latest.ChronicLoad, latest.ACWR, latest.RiskZone))
}

func writeSummary(sb *strings.Builder, summary []models.RecoverySummary, playerID int) {
	var rows []models.RecoverySummary
	for _, s := range summary {
		if s.PlayerID == playerID {
			rows = append(rows, s)
		}
	}
	if len(rows) == 0 {
		return
	}

	sb.WriteString("### Recovery, last 7 days\n\n")
	sb.WriteString("| Metric | Average | Type |\n")
	sb.WriteString("|--------|---------|------|\n")
	for _, s := range rows {
		sb.WriteString(fmt.Sprintf("| %s | %s | %s |\n", s.Metric, s.Avg, s.AvgType))
	}
	sb.WriteString("\n")
}
