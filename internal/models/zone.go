// ABOUTME: Heart-rate time-in-zone durations read from HH:MM:SS cells.
// ABOUTME: Provides parsing, formatting, and minute conversion for TRIMP.
package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ZoneCount is the number of heart-rate zones tracked per session.
const ZoneCount = 5

// ZoneDuration is the time a player spent in one heart-rate zone.
type ZoneDuration time.Duration

// ParseZoneDuration parses "HH:MM:SS" (fractional seconds allowed). An empty
// cell is a zero duration.
func ParseZoneDuration(s string) (ZoneDuration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return 0, fmt.Errorf("invalid zone duration %q: want HH:MM:SS", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid hours in %q: %w", s, err)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid minutes in %q: %w", s, err)
	}
	sec, err := strconv.ParseFloat(parts[2], 64)
	if err != nil {
		return 0, fmt.Errorf("invalid seconds in %q: %w", s, err)
	}
	if h < 0 || m < 0 || sec < 0 {
		return 0, fmt.Errorf("negative zone duration %q", s)
	}
	d := time.Duration(h)*time.Hour + time.Duration(m)*time.Minute +
		time.Duration(sec*float64(time.Second))
	return ZoneDuration(d), nil
}

// Minutes returns the duration in fractional minutes.
func (z ZoneDuration) Minutes() float64 {
	return time.Duration(z).Minutes()
}

// String formats the duration as HH:MM:SS; the zero duration is "00:00:00".
func (z ZoneDuration) String() string {
	total := int64(time.Duration(z) / time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, (total%3600)/60, total%60)
}

// MarshalText renders the duration in its HH:MM:SS form.
func (z ZoneDuration) MarshalText() ([]byte, error) {
	return []byte(z.String()), nil
}

// UnmarshalText parses the HH:MM:SS form.
func (z *ZoneDuration) UnmarshalText(b []byte) error {
	d, err := ParseZoneDuration(string(b))
	if err != nil {
		return err
	}
	*z = d
	return nil
}
