// ABOUTME: Recovery aggregator producing the daily, heatmap, and weekly views.
// ABOUTME: Pairs composites with completeness and drops low-confidence rows.
package recovery

import (
	"sort"
	"time"

	"github.com/harperreed/pitchside/internal/models"
)

// DefaultThreshold is the completeness a composite must exceed to be shown.
const DefaultThreshold = 0.2

// Aggregator builds the recovery views. It is season-agnostic; consumers
// filter by player and season.
type Aggregator struct {
	threshold float64
}

// NewAggregator creates an aggregator that keeps rows whose completeness is
// strictly greater than threshold.
func NewAggregator(threshold float64) *Aggregator {
	return &Aggregator{threshold: threshold}
}

type pairKey struct {
	playerID int
	date     time.Time
	season   string
	category string
	metric   string
}

func completenessKey(r models.RecoveryRow, metric string) pairKey {
	return pairKey{
		playerID: r.PlayerID,
		date:     r.SessionDate,
		season:   r.SeasonName,
		category: r.Category,
		metric:   metric,
	}
}

// completenessIndex maps each completeness row to its values. A key may hold
// several values when the export repeats a row.
func completenessIndex(rows []models.RecoveryRow) map[pairKey][]*float64 {
	idx := make(map[pairKey][]*float64)
	for _, r := range rows {
		if models.KindOf(r.Metric) != models.KindCompleteness {
			continue
		}
		k := completenessKey(r, r.Metric)
		idx[k] = append(idx[k], r.Value)
	}
	return idx
}

// paired returns the rows of the wanted metrics that clear the completeness
// threshold. A row is repeated once per passing completeness row; a row with
// no completeness partner is dropped.
func (a *Aggregator) paired(rows []models.RecoveryRow, wanted []string) []models.RecoveryRow {
	want := make(map[string]bool, len(wanted))
	for _, m := range wanted {
		want[m] = true
	}
	idx := completenessIndex(rows)

	var out []models.RecoveryRow
	for _, r := range rows {
		if !want[r.Metric] {
			continue
		}
		for _, c := range idx[completenessKey(r, models.CompletenessFor(r.Metric))] {
			if a.passes(c) {
				out = append(out, r)
			}
		}
	}
	return out
}

func (a *Aggregator) passes(completeness *float64) bool {
	return completeness != nil && *completeness > a.threshold
}

type mean struct {
	sum float64
	n   int
}

func (m *mean) add(v *float64) {
	if v != nil {
		m.sum += *v
		m.n++
	}
}

func (m mean) value() (float64, bool) {
	if m.n == 0 {
		return 0, false
	}
	return m.sum / float64(m.n), true
}

// Daily pivots the daily composites to one row per (player, day, season),
// averaging duplicates. Missing composites are left out of Values.
func (a *Aggregator) Daily(rows []models.RecoveryRow) []models.DailyRecovery {
	type dayKey struct {
		playerID int
		date     time.Time
		season   string
	}
	cells := make(map[dayKey]map[string]*mean)
	var keys []dayKey

	for _, r := range a.paired(rows, models.DailyMetrics) {
		if r.Value == nil {
			continue
		}
		k := dayKey{r.PlayerID, r.SessionDate, r.SeasonName}
		if cells[k] == nil {
			cells[k] = make(map[string]*mean)
			keys = append(keys, k)
		}
		if cells[k][r.Metric] == nil {
			cells[k][r.Metric] = &mean{}
		}
		cells[k][r.Metric].add(r.Value)
	}

	sort.Slice(keys, func(i, j int) bool {
		if keys[i].playerID != keys[j].playerID {
			return keys[i].playerID < keys[j].playerID
		}
		if !keys[i].date.Equal(keys[j].date) {
			return keys[i].date.Before(keys[j].date)
		}
		return keys[i].season < keys[j].season
	})

	out := make([]models.DailyRecovery, 0, len(keys))
	for _, k := range keys {
		values := make(map[string]float64, len(cells[k]))
		for metric, m := range cells[k] {
			if v, ok := m.value(); ok {
				values[metric] = v
			}
		}
		out = append(out, models.DailyRecovery{
			PlayerID:    k.playerID,
			SessionDate: k.date,
			SeasonName:  k.season,
			Values:      values,
		})
	}
	return out
}

// Heatmap averages emboss_baseline_score per (player, month, season) and day
// of month. Rows without a value or season are skipped, as are rows whose
// paired completeness exists and fails the threshold.
func (a *Aggregator) Heatmap(rows []models.RecoveryRow) []models.HeatmapRow {
	type monthKey struct {
		playerID int
		month    time.Time
		season   string
	}
	idx := completenessIndex(rows)
	cells := make(map[monthKey]map[int]*mean)
	var keys []monthKey

	for _, r := range rows {
		if r.Metric != models.HeatmapMetric || r.Value == nil || r.SeasonName == "" {
			continue
		}
		if cs, ok := idx[completenessKey(r, models.CompletenessFor(r.Metric))]; ok && !a.anyPasses(cs) {
			continue
		}
		k := monthKey{r.PlayerID, models.MonthStart(r.SessionDate), r.SeasonName}
		if cells[k] == nil {
			cells[k] = make(map[int]*mean)
			keys = append(keys, k)
		}
		day := r.SessionDate.Day()
		if cells[k][day] == nil {
			cells[k][day] = &mean{}
		}
		cells[k][day].add(r.Value)
	}

	sort.Slice(keys, func(i, j int) bool {
		if keys[i].playerID != keys[j].playerID {
			return keys[i].playerID < keys[j].playerID
		}
		if !keys[i].month.Equal(keys[j].month) {
			return keys[i].month.Before(keys[j].month)
		}
		return keys[i].season < keys[j].season
	})

	out := make([]models.HeatmapRow, 0, len(keys))
	for _, k := range keys {
		days := make(map[int]float64, len(cells[k]))
		for day, m := range cells[k] {
			if v, ok := m.value(); ok {
				days[day] = v
			}
		}
		out = append(out, models.HeatmapRow{
			PlayerID:   k.playerID,
			Month:      models.MonthLabel(k.month),
			MonthStart: k.month,
			SeasonName: k.season,
			Days:       days,
		})
	}
	return out
}

func (a *Aggregator) anyPasses(values []*float64) bool {
	for _, v := range values {
		if a.passes(v) {
			return true
		}
	}
	return false
}

// Weekly averages the weekly composites per (player, ISO week, season,
// metric). Value is nil when every composite in the group was missing. Rows
// are ordered by year_week.
func (a *Aggregator) Weekly(rows []models.RecoveryRow) []models.WeeklyRecovery {
	type weekKey struct {
		playerID int
		yearWeek string
		season   string
		metric   string
	}
	groups := make(map[weekKey]*mean)
	weekDates := make(map[string]time.Time)
	var keys []weekKey

	for _, r := range a.paired(rows, models.WeeklyMetrics) {
		yw := models.YearWeek(r.SessionDate)
		k := weekKey{r.PlayerID, yw, r.SeasonName, r.Metric}
		if groups[k] == nil {
			groups[k] = &mean{}
			keys = append(keys, k)
			weekDates[yw] = models.ISOWeekStart(r.SessionDate)
		}
		groups[k].add(r.Value)
	}

	sort.Slice(keys, func(i, j int) bool {
		x, y := keys[i], keys[j]
		if x.yearWeek != y.yearWeek {
			return x.yearWeek < y.yearWeek
		}
		if x.playerID != y.playerID {
			return x.playerID < y.playerID
		}
		if x.season != y.season {
			return x.season < y.season
		}
		return x.metric < y.metric
	})

	out := make([]models.WeeklyRecovery, 0, len(keys))
	for _, k := range keys {
		row := models.WeeklyRecovery{
			PlayerID:   k.playerID,
			YearWeek:   k.yearWeek,
			WeekDate:   weekDates[k.yearWeek],
			SeasonName: k.season,
			Metric:     k.metric,
		}
		if v, ok := groups[k].value(); ok {
			row.Value = &v
		}
		out = append(out, row)
	}
	return out
}
