// ABOUTME: Tests for the training load processor and its window arithmetic.
// ABOUTME: Covers TRIMP, acute/chronic windows, injury blanking, and match caps.
package load

import (
	"context"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/harperreed/pitchside/internal/injury"
	"github.com/harperreed/pitchside/internal/models"
)

const eps = 1e-9

func near(a, b float64) bool { return math.Abs(a-b) < eps }

// zonesForTRIMP puts all minutes in zone 1 so TRIMP equals the minute count.
func zonesForTRIMP(minutes float64) [models.ZoneCount]models.ZoneDuration {
	var z [models.ZoneCount]models.ZoneDuration
	z[0] = models.ZoneDuration(time.Duration(minutes * float64(time.Minute)))
	return z
}

func session(player int, d time.Time, trimp float64) models.Session {
	return models.Session{
		PlayerID:    player,
		Date:        d,
		Season:      "2023/2024",
		Distance:    5000,
		DayDuration: 60,
		HRZones:     zonesForTRIMP(trimp),
	}
}

func TestTRIMP(t *testing.T) {
	var zones [models.ZoneCount]models.ZoneDuration
	for i := range zones {
		zones[i] = models.ZoneDuration(10 * time.Minute)
	}
	if got := TRIMP(zones); !near(got, 150) {
		t.Errorf("TRIMP = %v, want 150", got)
	}

	var zero [models.ZoneCount]models.ZoneDuration
	if got := TRIMP(zero); got != 0 {
		t.Errorf("TRIMP(zero) = %v, want 0", got)
	}
}

func TestACWR(t *testing.T) {
	tests := []struct {
		acute, chronic, want float64
	}{
		{100, 50, 2},
		{100, 0, 0},
		{0, 0, 0},
		{30, 40, 0.75},
	}
	for _, tc := range tests {
		got := ACWR(tc.acute, tc.chronic)
		if !near(got, tc.want) {
			t.Errorf("ACWR(%v, %v) = %v, want %v", tc.acute, tc.chronic, got, tc.want)
		}
		if math.IsNaN(got) || math.IsInf(got, 0) {
			t.Errorf("ACWR(%v, %v) is not finite", tc.acute, tc.chronic)
		}
	}
}

func TestProcessAcuteLoadScenario(t *testing.T) {
	loads := []float64{10, 20, 30, 10, 20, 30, 10}
	var sessions []models.Session
	for i, v := range loads {
		sessions = append(sessions, session(5, models.Day(2024, time.January, 1+i), v))
	}

	p := NewProcessor(Options{}, nil, nil)
	got, err := p.Process(context.Background(), sessions)
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	if len(got) != 7 {
		t.Fatalf("len = %d, want 7", len(got))
	}

	last := got[6]
	if !near(last.AcuteLoad, 130) {
		t.Errorf("acute on 01-07 = %v, want 130", last.AcuteLoad)
	}
	if !near(last.ChronicLoad, 32.5) {
		t.Errorf("chronic on 01-07 = %v, want 32.5", last.ChronicLoad)
	}
	if !near(last.ACWR, 4) {
		t.Errorf("acwr on 01-07 = %v, want 4", last.ACWR)
	}
	if last.RiskZone != models.RiskDanger {
		t.Errorf("risk zone = %q, want danger", last.RiskZone)
	}
}

func TestRollingLoadsRespectsDateGaps(t *testing.T) {
	records := []models.LoadRecord{
		{Date: models.Day(2024, time.March, 1), TRIMPEdwards: 100},
		{Date: models.Day(2024, time.March, 7), TRIMPEdwards: 10},
		{Date: models.Day(2024, time.March, 8), TRIMPEdwards: 1},
		{Date: models.Day(2024, time.March, 28), TRIMPEdwards: 5},
		{Date: models.Day(2024, time.March, 29), TRIMPEdwards: 7},
	}
	RollingLoads(records)

	tests := []struct {
		acute, chronic float64
	}{
		{100, 25},
		{110, 27.5},
		{11, 27.75},
		{5, 29},
		{12, 5.75},
	}
	for i, tc := range tests {
		if !near(records[i].AcuteLoad, tc.acute) {
			t.Errorf("record %d acute = %v, want %v", i, records[i].AcuteLoad, tc.acute)
		}
		if !near(records[i].ChronicLoad, tc.chronic) {
			t.Errorf("record %d chronic = %v, want %v", i, records[i].ChronicLoad, tc.chronic)
		}
	}
}

func TestRollingLoadsMatchesBruteForce(t *testing.T) {
	var records []models.LoadRecord
	day := models.Day(2024, time.January, 1)
	for i := 0; i < 60; i++ {
		if i%4 == 3 {
			continue
		}
		records = append(records, models.LoadRecord{
			Date:         day.AddDate(0, 0, i),
			TRIMPEdwards: float64((i*37)%50 + 1),
		})
	}
	RollingLoads(records)

	for i, r := range records {
		var acute, chronic float64
		for _, o := range records[:i+1] {
			gap := models.DaysBetween(o.Date, r.Date)
			if gap < AcuteDays {
				acute += o.TRIMPEdwards
			}
			if gap < ChronicDays {
				chronic += o.TRIMPEdwards
			}
		}
		if math.Abs(r.AcuteLoad-acute) > 1e-6 {
			t.Errorf("%s acute = %v, want %v", models.FormatDay(r.Date), r.AcuteLoad, acute)
		}
		if math.Abs(r.ChronicLoad-chronic/ChronicWeeks) > 1e-6 {
			t.Errorf("%s chronic = %v, want %v", models.FormatDay(r.Date), r.ChronicLoad, chronic/ChronicWeeks)
		}
	}
}

func TestProcessBlanksStrictlyInsideInjury(t *testing.T) {
	injuries := injury.NewIndex([]models.Injury{{
		PlayerID:       2,
		InjuryDate:     models.Day(2024, time.February, 1),
		ReturnDate:     models.Day(2024, time.February, 10),
		BodyPart:       "Hamstring",
		InjuryName:     "Strain",
		IsInjuryActive: "No",
	}})

	sessions := []models.Session{
		session(2, models.Day(2024, time.February, 1), 40),
		session(2, models.Day(2024, time.February, 5), 40),
		session(2, models.Day(2024, time.February, 10), 40),
		session(3, models.Day(2024, time.February, 5), 40),
	}

	p := NewProcessor(Options{}, injuries, nil)
	got, err := p.Process(context.Background(), sessions)
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}

	byKey := make(map[string]models.LoadRecord)
	for _, r := range got {
		byKey[fmt.Sprintf("%s/%d", models.FormatDay(r.Date), r.PlayerID)] = r
	}

	blanked := byKey["2024-02-05/2"]
	if blanked.Distance != 0 || blanked.DayDuration != 0 || blanked.TRIMPEdwards != 0 {
		t.Errorf("blanked row kept metrics: distance=%v duration=%v trimp=%v", blanked.Distance, blanked.DayDuration, blanked.TRIMPEdwards)
	}
	for i, z := range blanked.HRZones {
		if z.String() != "00:00:00" {
			t.Errorf("zone %d = %s, want 00:00:00", i+1, z)
		}
	}
	if blanked.Injury == nil || blanked.Injury.BodyPart != "Hamstring" {
		t.Fatalf("blanked row injury = %+v, want Hamstring stamp", blanked.Injury)
	}
	if blanked.Status != models.StatusInjured {
		t.Errorf("status = %q, want %q", blanked.Status, models.StatusInjured)
	}

	for _, key := range []string{"2024-02-01/2", "2024-02-10/2", "2024-02-05/3"} {
		r := byKey[key]
		if r.Injury != nil || r.Distance != 5000 || !near(r.TRIMPEdwards, 40) {
			t.Errorf("%s modified: injury=%v distance=%v trimp=%v", key, r.Injury, r.Distance, r.TRIMPEdwards)
		}
		if r.Status != models.StatusFit {
			t.Errorf("%s status = %q, want FIT", key, r.Status)
		}
	}
}

func TestProcessWindowOrderAndEnrichment(t *testing.T) {
	teams := []models.Team{{TeamID: 5, Name: "Rovers", PictureURL: "rovers.png"}}

	match := session(9, models.Day(2024, time.March, 2), 50)
	match.OppositionFull = "Rovers"
	match.DayDuration = 97.5
	longTraining := session(9, models.Day(2024, time.March, 3), 10)
	longTraining.DayDuration = 120

	sessions := []models.Session{
		session(4, models.Day(2024, time.March, 5), 20),
		longTraining,
		session(4, models.Day(2024, time.March, 1), 20),
		match,
		session(4, models.Day(2023, time.July, 31), 20),
		session(4, models.Day(2025, time.March, 14), 20),
	}

	p := NewProcessor(Options{
		WindowStart: models.Day(2023, time.August, 1),
		WindowEnd:   models.Day(2025, time.March, 13),
		Workers:     2,
	}, nil, teams)
	got, err := p.Process(context.Background(), sessions)
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	if len(got) != 4 {
		t.Fatalf("len = %d, want 4 (out-of-window rows dropped)", len(got))
	}

	wantOrder := []struct {
		player int
		day    int
	}{{4, 1}, {4, 5}, {9, 2}, {9, 3}}
	for i, w := range wantOrder {
		if got[i].PlayerID != w.player || got[i].Date.Day() != w.day {
			t.Errorf("row %d = player %d day %d, want player %d day %d", i, got[i].PlayerID, got[i].Date.Day(), w.player, w.day)
		}
	}

	m := got[2]
	if !m.IsMatchDay || m.OpponentLogoURL != "rovers.png" {
		t.Errorf("match row = match %v logo %q, want true rovers.png", m.IsMatchDay, m.OpponentLogoURL)
	}
	if m.DayDuration != MatchMinutesCap {
		t.Errorf("match duration = %v, want %v", m.DayDuration, MatchMinutesCap)
	}
	if !near(m.DistanceKM, 5) {
		t.Errorf("distance_km = %v, want 5", m.DistanceKM)
	}
	if got[3].DayDuration != 120 {
		t.Errorf("training duration = %v, want 120 (uncapped)", got[3].DayDuration)
	}
	if got[3].OpponentLogoURL != "" {
		t.Errorf("training logo = %q, want empty", got[3].OpponentLogoURL)
	}
}

func TestProcessCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := NewProcessor(Options{}, nil, nil)
	_, err := p.Process(ctx, []models.Session{session(1, models.Day(2024, time.January, 1), 10)})
	if err == nil {
		t.Error("expected error for canceled context")
	}
}

func TestProcessEmpty(t *testing.T) {
	p := NewProcessor(Options{}, nil, nil)
	got, err := p.Process(context.Background(), nil)
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("len = %d, want 0", len(got))
	}
}
