// ABOUTME: Tests for the trailing 7-day recovery summary.
// ABOUTME: Covers weighting, missing composites, the sentinel, and row order.
package recovery

import (
	"testing"
	"time"

	"github.com/harperreed/pitchside/internal/models"
)

func TestSummarizeWeightedScenario(t *testing.T) {
	ref := DefaultReferenceDate
	rows := []models.RecoveryRow{
		row(1, ref, models.MetricSleepComposite, f(0.5)),
		row(1, ref, models.MetricSleepCompleteness, f(0.4)),
		row(1, ref.AddDate(0, 0, -1), models.MetricSleepComposite, nil),
		row(1, ref.AddDate(0, 0, -1), models.MetricSleepCompleteness, f(0.6)),
	}

	got := Summarize(rows, ref)
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
	s := got[0]
	if s.Metric != "sleep_baseline" || s.AvgType != models.AvgWeighted {
		t.Errorf("row = %s %s, want sleep_baseline weighted", s.Metric, s.AvgType)
	}
	if s.Avg != "0.20" {
		t.Errorf("avg = %q, want 0.20", s.Avg)
	}
}

func TestSummarizeNoDataSentinel(t *testing.T) {
	ref := DefaultReferenceDate
	rows := []models.RecoveryRow{
		row(1, ref, models.MetricSorenessComposite, nil),
		row(1, ref, models.MetricSorenessCompleteness, f(0)),
		row(1, ref.AddDate(0, 0, -2), models.MetricSorenessComposite, nil),
		row(1, ref.AddDate(0, 0, -2), models.MetricSorenessCompleteness, f(0)),
		row(1, ref, models.MetricEmbossScore, nil),
	}

	got := Summarize(rows, ref)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	for _, s := range got {
		if s.Avg != models.NoData {
			t.Errorf("%s avg = %q, want %q", s.Metric, s.Avg, models.NoData)
		}
		if s.Value != nil {
			t.Errorf("%s value = %v, want nil", s.Metric, *s.Value)
		}
	}
}

func TestSummarizeCompletenessWithoutComposite(t *testing.T) {
	ref := DefaultReferenceDate
	rows := []models.RecoveryRow{
		row(1, ref, models.MetricBioComposite, f(0.8)),
		row(1, ref.AddDate(0, 0, -1), models.MetricBioComposite, f(0.2)),
		row(1, ref.AddDate(0, 0, -1), models.MetricBioCompleteness, f(1)),
	}

	got := Summarize(rows, ref)
	if len(got) != 1 || got[0].Avg != "0.20" {
		t.Errorf("got %+v, want one bio row at 0.20 (missing completeness dropped)", got)
	}
}

func TestSummarizeWindowAndOrder(t *testing.T) {
	ref := models.Day(2025, time.March, 13)
	rows := []models.RecoveryRow{
		row(2, ref, models.MetricEmbossScore, f(0.1)),
		row(2, ref.AddDate(0, 0, -6), models.MetricEmbossScore, f(0.3)),
		row(2, ref.AddDate(0, 0, -7), models.MetricEmbossScore, f(5)),
		row(2, ref.AddDate(0, 0, 1), models.MetricEmbossScore, f(5)),
		row(2, ref, models.MetricSleepComposite, f(0.1)),
		row(2, ref, models.MetricSleepCompleteness, f(1)),
		row(1, ref, models.MetricSubjectiveComposite, f(-0.25)),
		row(1, ref, models.MetricSubjectiveCompleteness, f(0.5)),
		row(1, ref, models.MetricBioComposite, f(0.75)),
		row(1, ref, models.MetricBioCompleteness, f(0.5)),
	}

	got := Summarize(rows, ref)
	want := []struct {
		player  int
		metric  string
		avgType models.AvgType
		avg     string
	}{
		{1, "bio_baseline", models.AvgWeighted, "0.75"},
		{1, "subjective_baseline", models.AvgWeighted, "-0.25"},
		{2, "sleep_baseline", models.AvgWeighted, "0.10"},
		{2, models.MetricEmbossScore, models.AvgSimple, "0.20"},
	}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d: %+v", len(got), len(want), got)
	}
	for i, w := range want {
		g := got[i]
		if g.PlayerID != w.player || g.Metric != w.metric || g.AvgType != w.avgType || g.Avg != w.avg {
			t.Errorf("row %d = %d %s %s %s, want %d %s %s %s", i, g.PlayerID, g.Metric, g.AvgType, g.Avg, w.player, w.metric, w.avgType, w.avg)
		}
	}
}

func TestFormatAverage(t *testing.T) {
	if got := FormatAverage(nil); got != "/" {
		t.Errorf("FormatAverage(nil) = %q, want /", got)
	}
	if got := FormatAverage(f(0)); got != "0.00" {
		t.Errorf("FormatAverage(0) = %q, want 0.00", got)
	}
	if got := FormatAverage(f(1.005)); got != "1.00" && got != "1.01" {
		t.Errorf("FormatAverage(1.005) = %q", got)
	}
}
