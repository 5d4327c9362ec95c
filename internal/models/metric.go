// ABOUTME: Recovery metric names and the suffix rules that classify them.
// ABOUTME: Defines composite/completeness pairs and the metric sets each view reads.
package models

import "strings"

// MetricKind classifies a recovery metric by its name suffix.
type MetricKind string

const (
	KindComposite    MetricKind = "composite"
	KindCompleteness MetricKind = "completeness"
	KindSimple       MetricKind = "simple"
)

const (
	compositeSuffix    = "_composite"
	completenessSuffix = "_completeness"
)

// Recovery metric names as they appear in the recovery export.
const (
	MetricBioComposite                 = "bio_baseline_composite"
	MetricBioCompleteness              = "bio_baseline_completeness"
	MetricMSKJointRangeComposite       = "msk_joint_range_baseline_composite"
	MetricMSKJointRangeCompleteness    = "msk_joint_range_baseline_completeness"
	MetricMSKLoadToleranceComposite    = "msk_load_tolerance_baseline_composite"
	MetricMSKLoadToleranceCompleteness = "msk_load_tolerance_baseline_completeness"
	MetricSleepComposite               = "sleep_baseline_composite"
	MetricSleepCompleteness            = "sleep_baseline_completeness"
	MetricSorenessComposite            = "soreness_baseline_composite"
	MetricSorenessCompleteness         = "soreness_baseline_completeness"
	MetricSubjectiveComposite          = "subjective_baseline_composite"
	MetricSubjectiveCompleteness       = "subjective_baseline_completeness"
	MetricEmbossScore                  = "emboss_baseline_score"
)

// DailyMetrics are the composites pivoted into the daily recovery view.
var DailyMetrics = []string{
	MetricSubjectiveComposite,
	MetricSleepComposite,
	MetricSorenessComposite,
}

// WeeklyMetrics are the composites averaged into the weekly recovery view.
var WeeklyMetrics = []string{
	MetricBioComposite,
	MetricMSKJointRangeComposite,
	MetricMSKLoadToleranceComposite,
	MetricSorenessComposite,
	MetricSubjectiveComposite,
	MetricSleepComposite,
}

// HeatmapMetric is the single finished score shown on the monthly heatmap.
const HeatmapMetric = MetricEmbossScore

// KindOf returns the kind of a metric from its name suffix.
func KindOf(metric string) MetricKind {
	switch {
	case strings.HasSuffix(metric, compositeSuffix):
		return KindComposite
	case strings.HasSuffix(metric, completenessSuffix):
		return KindCompleteness
	default:
		return KindSimple
	}
}

// BaseMetric strips the composite/completeness suffix. Simple metrics are
// returned unchanged.
func BaseMetric(metric string) string {
	if s, ok := strings.CutSuffix(metric, compositeSuffix); ok {
		return s
	}
	if s, ok := strings.CutSuffix(metric, completenessSuffix); ok {
		return s
	}
	return metric
}

// CompletenessFor returns the completeness metric paired with a composite or
// simple score, e.g. sleep_baseline_composite -> sleep_baseline_completeness
// and emboss_baseline_score -> emboss_baseline_completeness.
func CompletenessFor(metric string) string {
	if KindOf(metric) == KindCompleteness {
		return metric
	}
	base := BaseMetric(metric)
	if KindOf(metric) == KindSimple {
		if i := strings.LastIndex(base, "_"); i > 0 {
			base = base[:i]
		}
	}
	return base + completenessSuffix
}

// IsKnownMetric reports whether metric belongs to one of the recovery views.
func IsKnownMetric(metric string) bool {
	if metric == HeatmapMetric {
		return true
	}
	for _, m := range WeeklyMetrics {
		if m == metric || CompletenessFor(m) == metric {
			return true
		}
	}
	return false
}
