// ABOUTME: Trailing 7-day recovery summary with completeness-weighted averages.
// ABOUTME: Undefined averages render as the "/" no-data sentinel, never as zero.
package recovery

import (
	"fmt"
	"sort"
	"time"

	"github.com/harperreed/pitchside/internal/models"
)

// SummaryDays is the length of the trailing summary window.
const SummaryDays = 7

// DefaultReferenceDate is the frozen end of the summary window.
var DefaultReferenceDate = models.Day(2025, time.March, 13)

type cellKey struct {
	playerID int
	date     time.Time
	base     string
	category string
}

type metricKey struct {
	playerID int
	base     string
}

// weightedCell holds the averaged composite and completeness for one
// (player, day, base metric, category).
type weightedCell struct {
	composite    mean
	completeness mean
}

// Summarize averages every metric over [ref-6, ref]. Composite metrics are
// weighted by their completeness; simple metrics take a plain mean. Weighted
// rows come first, each group sorted by player then metric.
func Summarize(rows []models.RecoveryRow, ref time.Time) []models.RecoverySummary {
	ref = models.Truncate(ref)
	start := ref.AddDate(0, 0, -(SummaryDays - 1))

	cells := make(map[cellKey]*weightedCell)
	var cellOrder []cellKey
	simple := make(map[metricKey]*mean)

	for _, r := range rows {
		if r.SessionDate.Before(start) || r.SessionDate.After(ref) {
			continue
		}
		kind := models.KindOf(r.Metric)
		base := models.BaseMetric(r.Metric)

		if kind == models.KindSimple {
			k := metricKey{r.PlayerID, base}
			if simple[k] == nil {
				simple[k] = &mean{}
			}
			simple[k].add(r.Value)
			continue
		}

		k := cellKey{r.PlayerID, r.SessionDate, base, r.Category}
		if cells[k] == nil {
			cells[k] = &weightedCell{}
			cellOrder = append(cellOrder, k)
		}
		if kind == models.KindComposite {
			cells[k].composite.add(r.Value)
		} else {
			cells[k].completeness.add(r.Value)
		}
	}

	type weightedSum struct {
		num, den float64
	}
	weighted := make(map[metricKey]*weightedSum)
	for _, k := range cellOrder {
		c := cells[k]
		composite, hasComposite := c.composite.value()
		completeness, hasCompleteness := c.completeness.value()
		if !hasComposite && !hasCompleteness {
			continue
		}

		mk := metricKey{k.playerID, k.base}
		if weighted[mk] == nil {
			weighted[mk] = &weightedSum{}
		}
		if !hasCompleteness {
			continue
		}
		if completeness == 0 && !hasComposite {
			continue
		}
		weighted[mk].num += composite * completeness
		weighted[mk].den += completeness
	}

	out := make([]models.RecoverySummary, 0, len(weighted)+len(simple))
	for _, k := range sortedMetricKeys(weighted) {
		s := weighted[k]
		var value *float64
		if s.den != 0 {
			v := s.num / s.den
			value = &v
		}
		out = append(out, summaryRow(k, models.AvgWeighted, value))
	}
	for _, k := range sortedMetricKeys(simple) {
		var value *float64
		if v, ok := simple[k].value(); ok {
			value = &v
		}
		out = append(out, summaryRow(k, models.AvgSimple, value))
	}
	return out
}

func summaryRow(k metricKey, avgType models.AvgType, value *float64) models.RecoverySummary {
	return models.RecoverySummary{
		PlayerID: k.playerID,
		Metric:   k.base,
		AvgType:  avgType,
		Avg:      FormatAverage(value),
		Value:    value,
	}
}

// FormatAverage renders a value with two decimals, or the no-data sentinel
// when it is undefined.
func FormatAverage(v *float64) string {
	if v == nil {
		return models.NoData
	}
	return fmt.Sprintf("%.2f", *v)
}

func sortedMetricKeys[V any](m map[metricKey]V) []metricKey {
	keys := make([]metricKey, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].playerID != keys[j].playerID {
			return keys[i].playerID < keys[j].playerID
		}
		return keys[i].base < keys[j].base
	})
	return keys
}
