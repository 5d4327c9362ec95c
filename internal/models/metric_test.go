// ABOUTME: Tests for recovery metric naming rules and metric sets.
// ABOUTME: Validates suffix classification, base names, and completeness pairing.
package models

import (
	"testing"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		metric string
		want   MetricKind
	}{
		{MetricSleepComposite, KindComposite},
		{MetricSleepCompleteness, KindCompleteness},
		{MetricEmbossScore, KindSimple},
		{"anything_else", KindSimple},
	}

	for _, tt := range tests {
		t.Run(tt.metric, func(t *testing.T) {
			if got := KindOf(tt.metric); got != tt.want {
				t.Errorf("KindOf(%s) = %s, want %s", tt.metric, got, tt.want)
			}
		})
	}
}

func TestBaseMetric(t *testing.T) {
	tests := []struct {
		metric string
		want   string
	}{
		{MetricBioComposite, "bio_baseline"},
		{MetricBioCompleteness, "bio_baseline"},
		{MetricMSKLoadToleranceComposite, "msk_load_tolerance_baseline"},
		{MetricEmbossScore, MetricEmbossScore},
	}

	for _, tt := range tests {
		if got := BaseMetric(tt.metric); got != tt.want {
			t.Errorf("BaseMetric(%s) = %s, want %s", tt.metric, got, tt.want)
		}
	}
}

func TestCompletenessFor(t *testing.T) {
	tests := []struct {
		metric string
		want   string
	}{
		{MetricSleepComposite, MetricSleepCompleteness},
		{MetricSleepCompleteness, MetricSleepCompleteness},
		{MetricEmbossScore, "emboss_baseline_completeness"},
	}

	for _, tt := range tests {
		if got := CompletenessFor(tt.metric); got != tt.want {
			t.Errorf("CompletenessFor(%s) = %s, want %s", tt.metric, got, tt.want)
		}
	}
}

func TestMetricSetsArePaired(t *testing.T) {
	for _, m := range WeeklyMetrics {
		if KindOf(m) != KindComposite {
			t.Errorf("weekly metric %s is not a composite", m)
		}
		if !IsKnownMetric(CompletenessFor(m)) {
			t.Errorf("weekly metric %s has no known completeness pair", m)
		}
	}
	for _, m := range DailyMetrics {
		found := false
		for _, w := range WeeklyMetrics {
			if w == m {
				found = true
			}
		}
		if !found {
			t.Errorf("daily metric %s missing from weekly set", m)
		}
	}
	if IsKnownMetric("steps") {
		t.Error("expected steps to be unknown")
	}
}
