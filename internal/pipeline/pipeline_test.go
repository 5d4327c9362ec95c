// ABOUTME: Tests for the pipeline run and the Result query helpers.
// ABOUTME: Uses small in-memory tables covering every stage.
package pipeline

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/harperreed/pitchside/internal/models"
	"github.com/harperreed/pitchside/internal/storage"
)

func f(v float64) *float64 { return &v }
func i(v int) *int         { return &v }

func zones(minutes float64) [models.ZoneCount]models.ZoneDuration {
	var z [models.ZoneCount]models.ZoneDuration
	z[0] = models.ZoneDuration(time.Duration(minutes * float64(time.Minute)))
	return z
}

func testTables() *storage.Tables {
	season := "2024/2025"
	return &storage.Tables{
		DatasetID: uuid.MustParse("00000000-0000-5000-8000-000000000001"),
		Players: []models.Player{
			{PlayerID: 7, Name: "Alex", CountryID: 1, Birthdate: models.Day(2000, time.January, 1)},
			{PlayerID: 9, Name: "Sam"},
		},
		Countries: []models.Country{{CountryID: 1, PictureURL: "flag.png"}},
		Teams: []models.Team{
			{TeamID: 1, Name: "Home FC"},
			{TeamID: 2, Name: "Rovers", PictureURL: "rovers.png"},
		},
		Matches: []models.Match{
			{MatchID: 1, MatchDate: models.Day(2024, time.September, 1), HomeTeamID: 1, AwayTeamID: 2, HomeTeamScore: i(3), AwayTeamScore: i(1)},
		},
		PlayerMatches: []models.PlayerMatch{{MatchID: 1, PlayerID: 7, MinutesPlayed: 90}},
		Sessions: []models.Session{
			{PlayerID: 7, Date: models.Day(2024, time.September, 1), Season: season, OppositionFull: "Rovers", DayDuration: 95, HRZones: zones(40)},
			{PlayerID: 7, Date: models.Day(2024, time.September, 3), Season: season, HRZones: zones(20)},
			{PlayerID: 7, Date: models.Day(2024, time.September, 5), Season: season, Distance: 4000, HRZones: zones(20)},
			{PlayerID: 7, Date: models.Day(2023, time.September, 5), Season: "2023/2024", HRZones: zones(20)},
		},
		Injuries: []models.Injury{
			{PlayerID: 7, InjuryDate: models.Day(2024, time.September, 3), ReturnDate: models.Day(2024, time.September, 10), BodyPart: "Ankle", IsInjuryActive: "Yes"},
		},
		Recovery: []models.RecoveryRow{
			{PlayerID: 7, SessionDate: models.Day(2025, time.March, 12), SeasonName: season, Metric: models.MetricSleepComposite, Category: "sleep", Value: f(0.5)},
			{PlayerID: 7, SessionDate: models.Day(2025, time.March, 12), SeasonName: season, Metric: models.MetricSleepCompleteness, Category: "sleep", Value: f(0.9)},
			{PlayerID: 7, SessionDate: models.Day(2025, time.March, 12), SeasonName: season, Metric: models.MetricEmbossScore, Category: "total", Value: f(0.3)},
			{PlayerID: 7, SessionDate: models.Day(2023, time.October, 2), SeasonName: "2023/2024", Metric: models.MetricEmbossScore, Category: "total", Value: f(0.1)},
		},
	}
}

func testOptions() Options {
	opts := DefaultOptions()
	opts.Today = models.Day(2025, time.March, 13)
	return opts
}

func TestRun(t *testing.T) {
	res, err := New(testOptions(), nil).Run(context.Background(), testTables())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	counts := res.TableCounts()
	want := map[string]int{
		TablePlayers:         2,
		TableLastMatches:     1,
		TableLoad:            4,
		TableRecoveryDaily:   1,
		TableRecoveryHeatmap: 2,
		TableRecoveryWeekly:  1,
		TableRecoverySummary: 2,
	}
	if !reflect.DeepEqual(counts, want) {
		t.Errorf("TableCounts = %v, want %v", counts, want)
	}

	alex, ok := res.Resume(7)
	if !ok {
		t.Fatal("Resume(7) not found")
	}
	if alex.Age != 25 || alex.CountryPictureURL != "flag.png" {
		t.Errorf("resume = age %d picture %q, want 25 flag.png", alex.Age, alex.CountryPictureURL)
	}
	if _, ok := res.Resume(404); ok {
		t.Error("Resume(404) should not be found")
	}

	if got := res.LastMatches(7); len(got) != 1 || got[0].Result != models.ResultWin {
		t.Errorf("LastMatches(7) = %+v, want one win", got)
	}
	if got := res.LastMatches(9); len(got) != 0 {
		t.Errorf("LastMatches(9) len = %d, want 0", len(got))
	}
}

func TestRunLoadSeasonFilterAndInjuries(t *testing.T) {
	res, err := New(testOptions(), nil).Run(context.Background(), testTables())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if got := res.Load(7, ""); len(got) != 4 {
		t.Errorf("Load(7, all) len = %d, want 4", len(got))
	}
	season := res.Load(7, "2024/2025")
	if len(season) != 3 {
		t.Fatalf("Load(7, 2024/2025) len = %d, want 3", len(season))
	}

	if season[0].DayDuration != 90 || season[0].OpponentLogoURL != "rovers.png" {
		t.Errorf("match row = duration %v logo %q, want 90 rovers.png", season[0].DayDuration, season[0].OpponentLogoURL)
	}
	if season[1].Injury != nil {
		t.Error("injury day itself should not be blanked")
	}
	if season[2].Injury == nil || season[2].Status != models.StatusInjured || season[2].Distance != 0 {
		t.Errorf("09-05 = injury %v status %q distance %v, want blanked INJURED", season[2].Injury, season[2].Status, season[2].Distance)
	}

	bands := res.UnavailabilityBands(7, "2024/2025")
	if len(bands) != 1 {
		t.Fatalf("bands len = %d, want 1", len(bands))
	}
	if !bands[0].From.Equal(models.Day(2024, time.September, 3)) || !bands[0].To.Equal(models.Day(2024, time.September, 5)) {
		t.Errorf("band = %s..%s, want 2024-09-03..2024-09-05", models.FormatDay(bands[0].From), models.FormatDay(bands[0].To))
	}

	markers := res.InjuryMarkers(7, "2024/2025")
	if len(markers) != 1 || markers[0].BodyPart != "Ankle" || !markers[0].Date.Equal(models.Day(2024, time.September, 3)) {
		t.Errorf("markers = %+v, want one Ankle marker on 2024-09-03", markers)
	}
	if got := res.InjuryMarkers(7, "2023/2024"); len(got) != 0 {
		t.Errorf("markers in 2023/2024 = %d, want 0", len(got))
	}
}

func TestRunSeasons(t *testing.T) {
	res, err := New(testOptions(), nil).Run(context.Background(), testTables())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if got, want := res.LoadSeasons(), []string{"2023/2024", "2024/2025"}; !reflect.DeepEqual(got, want) {
		t.Errorf("LoadSeasons = %v, want %v", got, want)
	}
	if got, want := res.RecoverySeasons(), []string{"2024/2025", "2023/2024"}; !reflect.DeepEqual(got, want) {
		t.Errorf("RecoverySeasons = %v, want %v", got, want)
	}

	if got := res.Heatmap(7, "2023/2024"); len(got) != 1 || got[0].Month != "October 2023" {
		t.Errorf("Heatmap(7, 2023/2024) = %+v, want October 2023", got)
	}
	if got := res.Daily(7, "2024/2025"); len(got) != 1 {
		t.Errorf("Daily len = %d, want 1", len(got))
	}
	if got := res.Weekly(7, "2023/2024"); len(got) != 0 {
		t.Errorf("Weekly(7, 2023/2024) len = %d, want 0", len(got))
	}

	summary := res.Summary(7)
	if len(summary) != 2 || summary[0].Avg != "0.50" || summary[1].Avg != "0.30" {
		t.Errorf("Summary(7) = %+v, want sleep 0.50 then emboss 0.30", summary)
	}
}

func TestRunIsIdempotent(t *testing.T) {
	p := New(testOptions(), nil)
	first, err := p.Run(context.Background(), testTables())
	if err != nil {
		t.Fatalf("first Run failed: %v", err)
	}
	second, err := p.Run(context.Background(), testTables())
	if err != nil {
		t.Fatalf("second Run failed: %v", err)
	}
	if !reflect.DeepEqual(first.LoadRecords, second.LoadRecords) {
		t.Error("load records differ between runs")
	}
	if !reflect.DeepEqual(first.RecoverySummary, second.RecoverySummary) {
		t.Error("summary differs between runs")
	}
	if !reflect.DeepEqual(first.Resumes, second.Resumes) {
		t.Error("resumes differ between runs")
	}
}

func TestRunNilTables(t *testing.T) {
	if _, err := New(testOptions(), nil).Run(context.Background(), nil); err == nil {
		t.Error("expected error for nil tables")
	}
}
