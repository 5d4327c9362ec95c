// ABOUTME: GPS session, injury interval, and derived training-load records.
// ABOUTME: Session.Blank zeroes a session that falls inside an injury.
package models

import (
	"strings"
	"time"
)

// Session is one player's GPS export for one day.
type Session struct {
	PlayerID          int
	Date              time.Time
	Season            string
	OppositionCode    string
	OppositionFull    string
	MDPlusCode        string
	MDMinusCode       string
	Distance          float64
	DistanceOver21    float64
	DistanceOver24    float64
	DistanceOver27    float64
	AccelDecelOver2_5 float64
	AccelDecelOver3_5 float64
	AccelDecelOver4_5 float64
	DayDuration       float64
	PeakSpeed         float64
	HRZones           [ZoneCount]ZoneDuration
}

// IsMatchDay reports whether the session was a match (opponent present).
func (s *Session) IsMatchDay() bool {
	return s.OppositionFull != ""
}

// Blank zeroes every numeric training metric and heart-rate zone.
func (s *Session) Blank() {
	s.Distance = 0
	s.DistanceOver21 = 0
	s.DistanceOver24 = 0
	s.DistanceOver27 = 0
	s.AccelDecelOver2_5 = 0
	s.AccelDecelOver3_5 = 0
	s.AccelDecelOver4_5 = 0
	s.DayDuration = 0
	s.PeakSpeed = 0
	for i := range s.HRZones {
		s.HRZones[i] = 0
	}
}

// Injury is one interval from the injury history.
type Injury struct {
	PlayerID       int       `json:"player_id" yaml:"player_id"`
	InjuryDate     time.Time `json:"injury_date" yaml:"injury_date"`
	ReturnDate     time.Time `json:"return_date" yaml:"return_date"`
	BodyPart       string    `json:"body_part" yaml:"body_part"`
	InjuryName     string    `json:"injury_name" yaml:"injury_name"`
	IsInjuryActive string    `json:"is_injury_active" yaml:"is_injury_active"`
}

// Session status shown on load charts.
const (
	StatusFit     = "FIT"
	StatusInjured = "INJURED"
)

// RiskZone buckets an ACWR value.
type RiskZone string

const (
	RiskUnder   RiskZone = "under"
	RiskOptimal RiskZone = "optimal"
	RiskDanger  RiskZone = "danger"
)

// ACWR risk band boundaries.
const (
	ACWRUnderBelow  = 0.8
	ACWRDangerAbove = 1.5
)

// ClassifyACWR returns the risk zone for an ACWR value.
func ClassifyACWR(acwr float64) RiskZone {
	switch {
	case acwr < ACWRUnderBelow:
		return RiskUnder
	case acwr > ACWRDangerAbove:
		return RiskDanger
	default:
		return RiskOptimal
	}
}

// LoadRecord is a session with its injury stamp and derived load columns.
type LoadRecord struct {
	PlayerID          int                     `json:"player_id" yaml:"player_id"`
	Date              time.Time               `json:"date" yaml:"date"`
	Season            string                  `json:"season" yaml:"season"`
	OppositionCode    string                  `json:"opposition_code,omitempty" yaml:"opposition_code,omitempty"`
	OppositionFull    string                  `json:"opposition_full,omitempty" yaml:"opposition_full,omitempty"`
	OpponentLogoURL   string                  `json:"url_logo_opponent,omitempty" yaml:"url_logo_opponent,omitempty"`
	MDPlusCode        string                  `json:"md_plus_code,omitempty" yaml:"md_plus_code,omitempty"`
	MDMinusCode       string                  `json:"md_minus_code,omitempty" yaml:"md_minus_code,omitempty"`
	IsMatchDay        bool                    `json:"is_match_day" yaml:"is_match_day"`
	Distance          float64                 `json:"distance" yaml:"distance"`
	DistanceKM        float64                 `json:"distance_km" yaml:"distance_km"`
	DistanceOver21    float64                 `json:"distance_over_21" yaml:"distance_over_21"`
	DistanceOver24    float64                 `json:"distance_over_24" yaml:"distance_over_24"`
	DistanceOver27    float64                 `json:"distance_over_27" yaml:"distance_over_27"`
	AccelDecelOver2_5 float64                 `json:"accel_decel_over_2_5" yaml:"accel_decel_over_2_5"`
	AccelDecelOver3_5 float64                 `json:"accel_decel_over_3_5" yaml:"accel_decel_over_3_5"`
	AccelDecelOver4_5 float64                 `json:"accel_decel_over_4_5" yaml:"accel_decel_over_4_5"`
	DayDuration       float64                 `json:"day_duration" yaml:"day_duration"`
	PeakSpeed         float64                 `json:"peak_speed" yaml:"peak_speed"`
	HRZones           [ZoneCount]ZoneDuration `json:"hr_zones" yaml:"hr_zones"`
	Injury            *Injury                 `json:"injury,omitempty" yaml:"injury,omitempty"`
	Status            string                  `json:"status" yaml:"status"`
	TRIMPEdwards      float64                 `json:"trimp_edwards" yaml:"trimp_edwards"`
	AcuteLoad         float64                 `json:"trimp_edwards_acute_load" yaml:"trimp_edwards_acute_load"`
	ChronicLoad       float64                 `json:"trimp_edwards_chronic_load" yaml:"trimp_edwards_chronic_load"`
	ACWR              float64                 `json:"acwr" yaml:"acwr"`
	RiskZone          RiskZone                `json:"risk_zone" yaml:"risk_zone"`
}

// NewLoadRecord copies a session into a load record with no derived values.
func NewLoadRecord(s *Session) *LoadRecord {
	return &LoadRecord{
		PlayerID:          s.PlayerID,
		Date:              s.Date,
		Season:            s.Season,
		OppositionCode:    s.OppositionCode,
		OppositionFull:    s.OppositionFull,
		MDPlusCode:        s.MDPlusCode,
		MDMinusCode:       s.MDMinusCode,
		IsMatchDay:        s.IsMatchDay(),
		Distance:          s.Distance,
		DistanceOver21:    s.DistanceOver21,
		DistanceOver24:    s.DistanceOver24,
		DistanceOver27:    s.DistanceOver27,
		AccelDecelOver2_5: s.AccelDecelOver2_5,
		AccelDecelOver3_5: s.AccelDecelOver3_5,
		AccelDecelOver4_5: s.AccelDecelOver4_5,
		DayDuration:       s.DayDuration,
		PeakSpeed:         s.PeakSpeed,
		HRZones:           s.HRZones,
		Status:            StatusFit,
	}
}

// WithInjury stamps the injury that blanked this record. The status turns
// INJURED only when the injury carries an active flag.
func (r *LoadRecord) WithInjury(inj *Injury) *LoadRecord {
	cp := *inj
	r.Injury = &cp
	if strings.TrimSpace(inj.IsInjuryActive) != "" {
		r.Status = StatusInjured
	}
	return r
}

// InjuryBand is an injury interval clipped to a display window.
type InjuryBand struct {
	Injury Injury    `json:"injury" yaml:"injury"`
	From   time.Time `json:"from" yaml:"from"`
	To     time.Time `json:"to" yaml:"to"`
}

// InjuryMarker pins an injury onto the ACWR series at the day it occurred.
type InjuryMarker struct {
	PlayerID   int       `json:"player_id" yaml:"player_id"`
	Date       time.Time `json:"date" yaml:"date"`
	ACWR       float64   `json:"acwr" yaml:"acwr"`
	BodyPart   string    `json:"body_part" yaml:"body_part"`
	InjuryName string    `json:"injury_name" yaml:"injury_name"`
}
