// ABOUTME: Recovery status rows and the aggregated recovery views.
// ABOUTME: Covers daily pivot, monthly heatmap, weekly means, and the 7-day summary.
package models

import "time"

// RecoveryRow is one metric value from the recovery export. Value is nil
// when the cell was empty.
type RecoveryRow struct {
	PlayerID    int
	SessionDate time.Time
	SeasonName  string
	Metric      string
	Category    string
	Value       *float64
}

// DailyRecovery is one (player, day, season) row with a column per composite.
type DailyRecovery struct {
	PlayerID    int                `json:"player_id" yaml:"player_id"`
	SessionDate time.Time          `json:"session_date" yaml:"session_date"`
	SeasonName  string             `json:"season_name" yaml:"season_name"`
	Values      map[string]float64 `json:"values" yaml:"values"`
}

// HeatmapRow is one (player, month, season) row with a mean per day of month.
type HeatmapRow struct {
	PlayerID   int             `json:"player_id" yaml:"player_id"`
	Month      string          `json:"month" yaml:"month"`
	MonthStart time.Time       `json:"month_start" yaml:"month_start"`
	SeasonName string          `json:"season_name" yaml:"season_name"`
	Days       map[int]float64 `json:"days" yaml:"days"`
}

// WeeklyRecovery is the mean composite for one ISO week.
type WeeklyRecovery struct {
	PlayerID   int       `json:"player_id" yaml:"player_id"`
	YearWeek   string    `json:"year_week" yaml:"year_week"`
	WeekDate   time.Time `json:"week_date" yaml:"week_date"`
	SeasonName string    `json:"season_name" yaml:"season_name"`
	Metric     string    `json:"metric" yaml:"metric"`
	Value      *float64  `json:"value" yaml:"value"`
}

// AvgType tells whether a summary value is completeness-weighted or a plain mean.
type AvgType string

const (
	AvgWeighted AvgType = "weighted"
	AvgSimple   AvgType = "simple"
)

// NoData is the display sentinel for an undefined average.
const NoData = "/"

// RecoverySummary is one (player, metric) line of the trailing 7-day summary.
type RecoverySummary struct {
	PlayerID int      `json:"player_id" yaml:"player_id"`
	Metric   string   `json:"metric" yaml:"metric"`
	AvgType  AvgType  `json:"avg_type" yaml:"avg_type"`
	Avg      string   `json:"avg" yaml:"avg"`
	Value    *float64 `json:"value,omitempty" yaml:"value,omitempty"`
}
