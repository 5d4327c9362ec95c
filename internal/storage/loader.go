// ABOUTME: CSV loader that reads every input source into typed tables.
// ABOUTME: Validates headers up front and fingerprints the dataset contents.
package storage

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/pitchside/internal/logger"
	"github.com/harperreed/pitchside/internal/models"
)

var errNotInteger = errors.New("not an integer")

// datasetNamespace scopes dataset fingerprints.
var datasetNamespace = uuid.MustParse("6f1c5a52-8f0e-4c8e-9a57-3a3d2f1b7c11")

// Tables holds every input table as typed records, in file order.
type Tables struct {
	DatasetID        uuid.UUID
	Players          []models.Player
	Countries        []models.Country
	Teams            []models.Team
	SeasonAggregates []models.SeasonAggregate
	PlayerMatches    []models.PlayerMatch
	Matches          []models.Match
	Sessions         []models.Session
	Injuries         []models.Injury
	Recovery         []models.RecoveryRow
}

// Loader reads the input sources from a data directory.
type Loader struct {
	dataDir string
	sources map[SourceID]SourceSpec
	log     *logger.Logger
}

// NewLoader creates a loader for dataDir using the given source specs.
func NewLoader(dataDir string, sources map[SourceID]SourceSpec, log *logger.Logger) *Loader {
	if log == nil {
		log = logger.Nop()
	}
	return &Loader{dataDir: dataDir, sources: sources, log: log}
}

// Load reads all sources. The first schema or parse error aborts the load.
func (l *Loader) Load(ctx context.Context) (*Tables, error) {
	t := &Tables{}
	digest := sha256.New()

	for _, id := range AllSources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		spec, ok := l.sources[id]
		if !ok {
			return nil, fmt.Errorf("source %s: not configured", id)
		}
		path := spec.File
		if !filepath.IsAbs(path) {
			path = filepath.Join(l.dataDir, path)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("source %s: read %s: %w", id, path, err)
		}
		digest.Write([]byte(id))
		digest.Write(data)

		tbl, err := readTable(id, spec, path, data)
		if err != nil {
			return nil, err
		}
		n, err := t.fill(id, spec, tbl)
		if err != nil {
			return nil, err
		}
		l.log.Debug("loaded source", "source", string(id), "file", path, "rows", n)
	}

	t.DatasetID = uuid.NewSHA1(datasetNamespace, digest.Sum(nil))
	return t, nil
}

// table is a parsed CSV file with a header index.
type table struct {
	source SourceID
	file   string
	cols   map[string]int
	rows   [][]string
	lines  []int
}

func readTable(id SourceID, spec SourceSpec, path string, data []byte) (*table, error) {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	if spec.Delimiter != "" {
		r.Comma = []rune(spec.Delimiter)[0]
	}

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		header = nil
	} else if err != nil {
		return nil, fmt.Errorf("source %s: read header of %s: %w", id, path, err)
	}

	t := &table{source: id, file: path, cols: make(map[string]int, len(header))}
	for i, h := range header {
		t.cols[strings.TrimSpace(h)] = i
	}
	for _, col := range requiredColumns[id] {
		if _, ok := t.cols[col]; !ok {
			return nil, &SchemaError{Source: id, File: path, Column: col}
		}
	}

	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("source %s: read %s: %w", id, path, err)
		}
		if blankRecord(rec) {
			continue
		}
		line, _ := r.FieldPos(0)
		t.rows = append(t.rows, rec)
		t.lines = append(t.lines, line)
	}
	return t, nil
}

func blankRecord(rec []string) bool {
	for _, f := range rec {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

// rowReader extracts typed cells from one record; the first failure sticks.
type rowReader struct {
	t      *table
	i      int
	layout string
	err    error
}

func (r *rowReader) raw(col string) string {
	idx, ok := r.t.cols[col]
	if !ok {
		return ""
	}
	rec := r.t.rows[r.i]
	if idx >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[idx])
}

func (r *rowReader) fail(col, value string, err error) {
	if r.err != nil {
		return
	}
	r.err = &ParseError{
		Source: r.t.source,
		File:   r.t.file,
		Line:   r.t.lines[r.i],
		Column: col,
		Value:  value,
		Err:    err,
	}
}

func (r *rowReader) String(col string) string {
	v := r.raw(col)
	if strings.EqualFold(v, "nan") {
		return ""
	}
	return v
}

// Int parses an integer cell; values written as "3.0" are accepted.
func (r *rowReader) Int(col string) int {
	v := r.raw(col)
	if v == "" {
		r.fail(col, v, errors.New("empty value"))
		return 0
	}
	n, err := parseInt(v)
	if err != nil {
		r.fail(col, v, err)
	}
	return n
}

// OptInt is like Int but an empty cell yields nil.
func (r *rowReader) OptInt(col string) *int {
	v := r.raw(col)
	if v == "" || strings.EqualFold(v, "nan") {
		return nil
	}
	n, err := parseInt(v)
	if err != nil {
		r.fail(col, v, err)
		return nil
	}
	return &n
}

// Float parses a numeric cell; an empty cell is 0.
func (r *rowReader) Float(col string) float64 {
	if p := r.OptFloat(col); p != nil {
		return *p
	}
	return 0
}

// OptFloat parses a numeric cell; an empty cell yields nil.
func (r *rowReader) OptFloat(col string) *float64 {
	v := r.raw(col)
	if v == "" || strings.EqualFold(v, "nan") {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		r.fail(col, v, err)
		return nil
	}
	return &f
}

// Date parses a date cell with the source's layout.
func (r *rowReader) Date(col string) time.Time {
	v := r.raw(col)
	d, err := models.ParseDay(r.layout, v)
	if err != nil {
		r.fail(col, v, err)
	}
	return d
}

// OptDate is like Date but an empty cell yields the zero time.
func (r *rowReader) OptDate(col string) time.Time {
	if r.raw(col) == "" {
		return time.Time{}
	}
	return r.Date(col)
}

func (r *rowReader) Zone(col string) models.ZoneDuration {
	v := r.raw(col)
	z, err := models.ParseZoneDuration(v)
	if err != nil {
		r.fail(col, v, err)
	}
	return z
}

func parseInt(v string) (int, error) {
	if n, err := strconv.Atoi(v); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, errNotInteger
	}
	if f != float64(int(f)) {
		return 0, errNotInteger
	}
	return int(f), nil
}

// fill decodes every row of tbl into the matching slice of t.
func (t *Tables) fill(id SourceID, spec SourceSpec, tbl *table) (int, error) {
	for i := range tbl.rows {
		r := &rowReader{t: tbl, i: i, layout: spec.DateLayout}
		switch id {
		case SourcePlayers:
			t.Players = append(t.Players, decodePlayer(r))
		case SourceCountries:
			t.Countries = append(t.Countries, models.Country{
				CountryID:  r.Int("country_id"),
				Name:       r.String("country_name"),
				PictureURL: r.String("url_picture"),
			})
		case SourceTeams:
			t.Teams = append(t.Teams, models.Team{
				TeamID:     r.Int("team_id"),
				Name:       r.String("team_name"),
				PictureURL: r.String("url_picture"),
			})
		case SourceSeasonAggregates:
			t.SeasonAggregates = append(t.SeasonAggregates, decodeSeasonAggregate(r))
		case SourcePlayerMatches:
			t.PlayerMatches = append(t.PlayerMatches, models.PlayerMatch{
				MatchID:       r.Int("match_id"),
				PlayerID:      r.Int("player_id"),
				StarterGroup:  r.String("starter_group"),
				MinutesPlayed: r.Float("minutes_played"),
				Goals:         int(r.Float("goals")),
				Assists:       int(r.Float("assists")),
			})
		case SourceMatches:
			t.Matches = append(t.Matches, models.Match{
				MatchID:       r.Int("match_id"),
				MatchDate:     r.Date("match_date"),
				HomeTeamID:    r.Int("home_team_id"),
				AwayTeamID:    r.Int("away_team_id"),
				HomeTeamScore: r.OptInt("home_team_score"),
				AwayTeamScore: r.OptInt("away_team_score"),
			})
		case SourceSessions:
			t.Sessions = append(t.Sessions, decodeSession(r))
		case SourceInjuries:
			inj := models.Injury{
				PlayerID:       r.Int("player_id"),
				InjuryDate:     r.Date("injury_date"),
				ReturnDate:     r.Date("return_date"),
				BodyPart:       r.String("body_part"),
				InjuryName:     r.String("injury_name"),
				IsInjuryActive: r.String("is_injury_active"),
			}
			if r.err == nil && inj.ReturnDate.Before(inj.InjuryDate) {
				r.fail("return_date", models.FormatDay(inj.ReturnDate), errors.New("return date before injury date"))
			}
			t.Injuries = append(t.Injuries, inj)
		case SourceRecovery:
			t.Recovery = append(t.Recovery, models.RecoveryRow{
				PlayerID:    r.Int("player_id"),
				SessionDate: r.Date("sessionDate"),
				SeasonName:  r.String("seasonName"),
				Metric:      r.String("metric"),
				Category:    r.String("category"),
				Value:       r.OptFloat("value"),
			})
		default:
			return 0, fmt.Errorf("unknown source %q", id)
		}
		if r.err != nil {
			return 0, r.err
		}
	}
	return len(tbl.rows), nil
}

func decodePlayer(r *rowReader) models.Player {
	p := models.Player{
		PlayerID:   r.Int("player_id"),
		Name:       r.String("name"),
		Number:     r.String("number"),
		Group:      r.String("group"),
		Foot:       r.String("foot"),
		Height:     r.OptFloat("height"),
		Weight:     r.OptFloat("weight"),
		PictureURL: r.String("player_picture_url"),
		CountryID:  r.Int("country_id"),
		Birthdate:  r.OptDate("birthdate"),
	}
	if gid := r.OptInt("group_id"); gid != nil {
		p.GroupID = *gid
	}
	return p
}

// decodeSeasonAggregate keeps every numeric column besides player_id.
// Non-numeric columns (labels, season names) are skipped.
func decodeSeasonAggregate(r *rowReader) models.SeasonAggregate {
	agg := models.SeasonAggregate{PlayerID: r.Int("player_id"), Stats: map[string]float64{}}
	for col := range r.t.cols {
		if col == "player_id" || col == "" {
			continue
		}
		v := r.raw(col)
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			continue
		}
		agg.Stats[col] = f
	}
	return agg
}

func decodeSession(r *rowReader) models.Session {
	s := models.Session{
		PlayerID:       r.Int("player_id"),
		Date:           r.Date("date"),
		Season:         r.String("season"),
		OppositionCode: r.String("opposition_code"),
		OppositionFull: r.String("opposition_full"),
		MDPlusCode:     r.String("md_plus_code"),
		MDMinusCode:    r.String("md_minus_code"),
		Distance:       r.Float("distance"),
		DayDuration:    r.Float("day_duration"),
	}
	// Optional columns read as 0 when the export omits them.
	s.DistanceOver21 = r.Float("distance_over_21")
	s.DistanceOver24 = r.Float("distance_over_24")
	s.DistanceOver27 = r.Float("distance_over_27")
	s.AccelDecelOver2_5 = r.Float("accel_decel_over_2_5")
	s.AccelDecelOver3_5 = r.Float("accel_decel_over_3_5")
	s.AccelDecelOver4_5 = r.Float("accel_decel_over_4_5")
	s.PeakSpeed = r.Float("peak_speed")
	for z := 0; z < models.ZoneCount; z++ {
		s.HRZones[z] = r.Zone(fmt.Sprintf("hr_zone_%d_hms", z+1))
	}
	return s
}
