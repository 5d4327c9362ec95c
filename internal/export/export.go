// ABOUTME: Export of the derived tables as JSON and YAML documents.
// ABOUTME: Output carries no timestamp so identical inputs give identical bytes.
package export

import (
	"encoding/json"

	"gopkg.in/yaml.v3"

	"github.com/harperreed/pitchside/internal/models"
	"github.com/harperreed/pitchside/internal/pipeline"
)

// Version is the export document format version.
const Version = "1.0"

// Tool names the producer in every export envelope.
const Tool = "pitchside"

// Data is the full export document.
type Data struct {
	Version         string                   `json:"version" yaml:"version"`
	Tool            string                   `json:"tool" yaml:"tool"`
	DatasetID       string                   `json:"dataset_id" yaml:"dataset_id"`
	Players         []models.PlayerResume    `json:"players" yaml:"players"`
	LastMatches     []models.MatchHistoryRow `json:"last_matches" yaml:"last_matches"`
	Load            []models.LoadRecord      `json:"load" yaml:"load"`
	RecoveryDaily   []models.DailyRecovery   `json:"recovery_daily" yaml:"recovery_daily"`
	RecoveryHeatmap []models.HeatmapRow      `json:"recovery_heatmap" yaml:"recovery_heatmap"`
	RecoveryWeekly  []models.WeeklyRecovery  `json:"recovery_weekly" yaml:"recovery_weekly"`
	RecoverySummary []models.RecoverySummary `json:"recovery_summary" yaml:"recovery_summary"`
}

// Filter narrows an export to one player and season. Zero values keep all.
type Filter struct {
	PlayerID int
	Season   string
}

func (f Filter) player(id int) bool {
	return f.PlayerID == 0 || f.PlayerID == id
}

func (f Filter) season(s string) bool {
	return f.Season == "" || f.Season == s
}

// Collect gathers the result tables selected by filter into an export document.
// The recovery summary has no season and is only narrowed by player.
func Collect(res *pipeline.Result, filter Filter) *Data {
	data := &Data{
		Version:         Version,
		Tool:            Tool,
		DatasetID:       res.DatasetID.String(),
		Players:         []models.PlayerResume{},
		LastMatches:     []models.MatchHistoryRow{},
		Load:            []models.LoadRecord{},
		RecoveryDaily:   []models.DailyRecovery{},
		RecoveryHeatmap: []models.HeatmapRow{},
		RecoveryWeekly:  []models.WeeklyRecovery{},
		RecoverySummary: []models.RecoverySummary{},
	}

	for _, p := range res.Resumes {
		if filter.player(p.PlayerID) {
			data.Players = append(data.Players, p)
		}
	}
	for _, m := range res.RecentMatches {
		if filter.player(m.PlayerID) {
			data.LastMatches = append(data.LastMatches, m)
		}
	}
	for _, l := range res.LoadRecords {
		if filter.player(l.PlayerID) && filter.season(l.Season) {
			data.Load = append(data.Load, l)
		}
	}
	for _, d := range res.DailyRecovery {
		if filter.player(d.PlayerID) && filter.season(d.SeasonName) {
			data.RecoveryDaily = append(data.RecoveryDaily, d)
		}
	}
	for _, h := range res.HeatmapRecovery {
		if filter.player(h.PlayerID) && filter.season(h.SeasonName) {
			data.RecoveryHeatmap = append(data.RecoveryHeatmap, h)
		}
	}
	for _, w := range res.WeeklyRecovery {
		if filter.player(w.PlayerID) && filter.season(w.SeasonName) {
			data.RecoveryWeekly = append(data.RecoveryWeekly, w)
		}
	}
	for _, s := range res.RecoverySummary {
		if filter.player(s.PlayerID) {
			data.RecoverySummary = append(data.RecoverySummary, s)
		}
	}
	return data
}

// JSON exports the selected tables as indented JSON.
func JSON(res *pipeline.Result, filter Filter) ([]byte, error) {
	return json.MarshalIndent(Collect(res, filter), "", "  ")
}

// YAML exports the selected tables grouped per player.
func YAML(res *pipeline.Result, filter Filter) ([]byte, error) {
	data := Collect(res, filter)

	doc := yamlDocument{
		Version:   data.Version,
		Tool:      data.Tool,
		DatasetID: data.DatasetID,
		Players:   make([]yamlPlayer, 0, len(data.Players)),
	}
	for _, p := range data.Players {
		yp := yamlPlayer{
			ID:     p.PlayerID,
			Name:   p.Name,
			Number: p.Number,
			Group:  p.Group,
			Age:    p.Age,
		}
		for _, m := range data.LastMatches {
			if m.PlayerID != p.PlayerID {
				continue
			}
			yp.LastMatches = append(yp.LastMatches, yamlMatch{
				Date:     models.FormatDay(m.MatchDate),
				Opponent: m.OpponentName,
				Home:     m.IsHome,
				Result:   string(m.Result),
				Score:    m.Score,
				Minutes:  m.MinutesPlayed,
				Goals:    m.Goals,
				Assists:  m.Assists,
			})
		}
		for _, l := range data.Load {
			if l.PlayerID != p.PlayerID {
				continue
			}
			yp.Load = append(yp.Load, yamlLoad{
				Date:     models.FormatDay(l.Date),
				Season:   l.Season,
				Status:   l.Status,
				TRIMP:    l.TRIMPEdwards,
				Acute:    l.AcuteLoad,
				Chronic:  l.ChronicLoad,
				ACWR:     l.ACWR,
				RiskZone: string(l.RiskZone),
			})
		}
		for _, s := range data.RecoverySummary {
			if s.PlayerID != p.PlayerID {
				continue
			}
			if yp.Recovery == nil {
				yp.Recovery = make(map[string]string)
			}
			yp.Recovery[s.Metric] = s.Avg
		}
		doc.Players = append(doc.Players, yp)
	}
	return yaml.Marshal(doc)
}

type yamlDocument struct {
	Version   string       `yaml:"version"`
	Tool      string       `yaml:"tool"`
	DatasetID string       `yaml:"dataset_id"`
	Players   []yamlPlayer `yaml:"players"`
}

type yamlPlayer struct {
	ID          int               `yaml:"id"`
	Name        string            `yaml:"name"`
	Number      string            `yaml:"number,omitempty"`
	Group       string            `yaml:"group,omitempty"`
	Age         int               `yaml:"age,omitempty"`
	LastMatches []yamlMatch       `yaml:"last_matches,omitempty"`
	Load        []yamlLoad        `yaml:"load,omitempty"`
	Recovery    map[string]string `yaml:"recovery_last_7d,omitempty"`
}

type yamlMatch struct {
	Date     string  `yaml:"date"`
	Opponent string  `yaml:"opponent"`
	Home     bool    `yaml:"home"`
	Result   string  `yaml:"result,omitempty"`
	Score    string  `yaml:"score,omitempty"`
	Minutes  float64 `yaml:"minutes"`
	Goals    int     `yaml:"goals,omitempty"`
	Assists  int     `yaml:"assists,omitempty"`
}

type yamlLoad struct {
	Date     string  `yaml:"date"`
	Season   string  `yaml:"season"`
	Status   string  `yaml:"status"`
	TRIMP    float64 `yaml:"trimp"`
	Acute    float64 `yaml:"acute"`
	Chronic  float64 `yaml:"chronic"`
	ACWR     float64 `yaml:"acwr"`
	RiskZone string  `yaml:"risk_zone"`
}
