// ABOUTME: CSV export of a single output table with a fixed column layout.
// ABOUTME: Daily and heatmap views are written wide, one column per metric or day.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/harperreed/pitchside/internal/models"
	"github.com/harperreed/pitchside/internal/pipeline"
)

// CSV writes one table of the filtered export to w.
func CSV(w io.Writer, res *pipeline.Result, table string, filter Filter) error {
	header, rows, err := tableRows(Collect(res, filter), table)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("write %s rows: %w", table, err)
	}
	return nil
}

func tableRows(data *Data, table string) (header []string, rows [][]string, err error) {
	switch table {
	case pipeline.TablePlayers:
		header, rows = playerRows(data.Players)
	case pipeline.TableLastMatches:
		header, rows = matchRows(data.LastMatches)
	case pipeline.TableLoad:
		header, rows = loadRows(data.Load)
	case pipeline.TableRecoveryDaily:
		header, rows = dailyRows(data.RecoveryDaily)
	case pipeline.TableRecoveryHeatmap:
		header, rows = heatmapRows(data.RecoveryHeatmap)
	case pipeline.TableRecoveryWeekly:
		header, rows = weeklyRows(data.RecoveryWeekly)
	case pipeline.TableRecoverySummary:
		header, rows = summaryRows(data.RecoverySummary)
	default:
		return nil, nil, fmt.Errorf("unknown table %q", table)
	}
	return header, rows, nil
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func optNum(v *float64) string {
	if v == nil {
		return ""
	}
	return num(*v)
}

func optInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func playerRows(players []models.PlayerResume) ([]string, [][]string) {
	header := []string{
		"player_id", "name", "number", "group", "group_id", "foot", "height", "weight",
		"player_picture_url", "country_id", "url_picture_country", "birthdate", "age",
	}
	rows := make([][]string, 0, len(players))
	for _, p := range players {
		rows = append(rows, []string{
			strconv.Itoa(p.PlayerID), p.Name, p.Number, p.Group, strconv.Itoa(p.GroupID), p.Foot,
			optNum(p.Height), optNum(p.Weight), p.PictureURL, strconv.Itoa(p.CountryID),
			p.CountryPictureURL, models.FormatDay(p.Birthdate), strconv.Itoa(p.Age),
		})
	}
	return header, rows
}

func matchRows(matches []models.MatchHistoryRow) ([]string, [][]string) {
	header := []string{
		"match_id", "match_date", "player_id", "is_home", "opponent_id", "opponent_name",
		"opponent_url_picture", "starter_group", "minutes_played", "goals", "assists",
		"home_team_score", "away_team_score", "result", "score",
	}
	rows := make([][]string, 0, len(matches))
	for _, m := range matches {
		rows = append(rows, []string{
			strconv.Itoa(m.MatchID), models.FormatDay(m.MatchDate), strconv.Itoa(m.PlayerID),
			strconv.FormatBool(m.IsHome), strconv.Itoa(m.OpponentID), m.OpponentName,
			m.OpponentPictureURL, m.StarterGroup, num(m.MinutesPlayed), strconv.Itoa(m.Goals),
			strconv.Itoa(m.Assists), optInt(m.HomeTeamScore), optInt(m.AwayTeamScore),
			string(m.Result), m.Score,
		})
	}
	return header, rows
}

func loadRows(records []models.LoadRecord) ([]string, [][]string) {
	header := []string{
		"player_id", "date", "season", "opposition_code", "opposition_full", "url_logo_opponent",
		"md_plus_code", "md_minus_code", "is_match_day", "distance", "distance_km",
		"distance_over_21", "distance_over_24", "distance_over_27",
		"accel_decel_over_2_5", "accel_decel_over_3_5", "accel_decel_over_4_5",
		"day_duration", "peak_speed",
		"hr_zone_1_hms", "hr_zone_2_hms", "hr_zone_3_hms", "hr_zone_4_hms", "hr_zone_5_hms",
		"injury_date", "return_date", "body_part", "injury_name", "is_injury_active", "status",
		"trimp_edwards", "trimp_edwards_acute_load", "trimp_edwards_chronic_load", "acwr", "risk_zone",
	}
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		row := []string{
			strconv.Itoa(r.PlayerID), models.FormatDay(r.Date), r.Season, r.OppositionCode,
			r.OppositionFull, r.OpponentLogoURL, r.MDPlusCode, r.MDMinusCode,
			strconv.FormatBool(r.IsMatchDay), num(r.Distance), num(r.DistanceKM),
			num(r.DistanceOver21), num(r.DistanceOver24), num(r.DistanceOver27),
			num(r.AccelDecelOver2_5), num(r.AccelDecelOver3_5), num(r.AccelDecelOver4_5),
			num(r.DayDuration), num(r.PeakSpeed),
		}
		for _, z := range r.HRZones {
			row = append(row, z.String())
		}
		if inj := r.Injury; inj != nil {
			row = append(row, models.FormatDay(inj.InjuryDate), models.FormatDay(inj.ReturnDate),
				inj.BodyPart, inj.InjuryName, inj.IsInjuryActive)
		} else {
			row = append(row, "", "", "", "", "")
		}
		row = append(row, r.Status, num(r.TRIMPEdwards), num(r.AcuteLoad), num(r.ChronicLoad),
			num(r.ACWR), string(r.RiskZone))
		rows = append(rows, row)
	}
	return header, rows
}

func dailyRows(daily []models.DailyRecovery) ([]string, [][]string) {
	header := append([]string{"player_id", "sessionDate", "seasonName"}, models.DailyMetrics...)
	rows := make([][]string, 0, len(daily))
	for _, d := range daily {
		row := []string{strconv.Itoa(d.PlayerID), models.FormatDay(d.SessionDate), d.SeasonName}
		for _, metric := range models.DailyMetrics {
			if v, ok := d.Values[metric]; ok {
				row = append(row, num(v))
			} else {
				row = append(row, "")
			}
		}
		rows = append(rows, row)
	}
	return header, rows
}

func heatmapRows(heatmap []models.HeatmapRow) ([]string, [][]string) {
	header := []string{"player_id", "Month", "seasonName"}
	for day := 1; day <= 31; day++ {
		header = append(header, strconv.Itoa(day))
	}
	rows := make([][]string, 0, len(heatmap))
	for _, h := range heatmap {
		row := []string{strconv.Itoa(h.PlayerID), h.Month, h.SeasonName}
		for day := 1; day <= 31; day++ {
			if v, ok := h.Days[day]; ok {
				row = append(row, num(v))
			} else {
				row = append(row, "")
			}
		}
		rows = append(rows, row)
	}
	return header, rows
}

func weeklyRows(weekly []models.WeeklyRecovery) ([]string, [][]string) {
	header := []string{"player_id", "year_week", "seasonName", "metric", "value_composite", "week_date"}
	rows := make([][]string, 0, len(weekly))
	for _, w := range weekly {
		rows = append(rows, []string{
			strconv.Itoa(w.PlayerID), w.YearWeek, w.SeasonName, w.Metric,
			optNum(w.Value), models.FormatDay(w.WeekDate),
		})
	}
	return header, rows
}

func summaryRows(summary []models.RecoverySummary) ([]string, [][]string) {
	header := []string{"player_id", "metric", "avg_type", "avg"}
	rows := make([][]string, 0, len(summary))
	for _, s := range summary {
		rows = append(rows, []string{strconv.Itoa(s.PlayerID), s.Metric, string(s.AvgType), s.Avg})
	}
	return header, rows
}
