// ABOUTME: Day-granularity date helpers shared by every table.
// ABOUTME: Dates are UTC midnights so calendar arithmetic never drifts.
package models

import (
	"fmt"
	"strings"
	"time"
)

// DayLayout is the canonical output format for dates.
const DayLayout = "2006-01-02"

// Day returns the UTC midnight for the given calendar date.
func Day(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Truncate drops the time of day, keeping the calendar date of t.
func Truncate(t time.Time) time.Time {
	return Day(t.Year(), t.Month(), t.Day())
}

// ParseDay parses s with layout and returns a UTC midnight.
func ParseDay(layout, s string) (time.Time, error) {
	t, err := time.ParseInLocation(layout, strings.TrimSpace(s), time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q with layout %q: %w", s, layout, err)
	}
	return Truncate(t), nil
}

// DaysBetween returns the whole number of calendar days from a to b.
func DaysBetween(a, b time.Time) int {
	return int(Truncate(b).Sub(Truncate(a)).Hours() / 24)
}

// ISOWeekStart returns the Monday of the ISO week containing t.
func ISOWeekStart(t time.Time) time.Time {
	t = Truncate(t)
	offset := (int(t.Weekday()) + 6) % 7
	return t.AddDate(0, 0, -offset)
}

// YearWeek formats the ISO year and week of t as "YYYY-WW".
func YearWeek(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d-%02d", year, week)
}

// MonthStart returns the first day of t's month.
func MonthStart(t time.Time) time.Time {
	return Day(t.Year(), t.Month(), 1)
}

// MonthLabel formats t as "January 2006".
func MonthLabel(t time.Time) string {
	return t.Format("January 2006")
}

// FormatDay renders t as YYYY-MM-DD, or "" for the zero time.
func FormatDay(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DayLayout)
}
