// ABOUTME: SQLite sink that writes the derived tables to a database file.
// ABOUTME: Uses modernc.org/sqlite (pure Go, no CGO required).
package export

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/harperreed/pitchside/internal/models"
	"github.com/harperreed/pitchside/internal/pipeline"
)

// DB wraps the SQLite database connection.
type DB struct {
	db     *sql.DB
	dbPath string
}

// Open opens or creates a SQLite database at the given path.
func Open(dbPath string) (*DB, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	d := &DB{db: db, dbPath: dbPath}

	if err := d.configurePragmas(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("configure pragmas: %w", err)
	}

	if err := os.Chmod(dbPath, 0600); err != nil && !os.IsNotExist(err) {
		_ = db.Close()
		return nil, fmt.Errorf("set database permissions: %w", err)
	}

	if err := d.initSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	return d, nil
}

// Path returns the database file path.
func (d *DB) Path() string {
	return d.dbPath
}

// Close closes the database connection.
func (d *DB) Close() error {
	if d.db != nil {
		return d.db.Close()
	}
	return nil
}

func (d *DB) configurePragmas() error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, pragma := range pragmas {
		if _, err := d.db.Exec(pragma); err != nil {
			return fmt.Errorf("execute %s: %w", pragma, err)
		}
	}
	return nil
}

// CountRows returns the number of rows in an output table.
func (d *DB) CountRows(ctx context.Context, table string) (int, error) {
	if !pipeline.IsTable(table) {
		return 0, fmt.Errorf("unknown table %q", table)
	}
	var n int
	if err := d.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %s: %w", table, err)
	}
	return n, nil
}

// DatasetID returns the dataset fingerprint of the last written result.
func (d *DB) DatasetID(ctx context.Context) (string, error) {
	var id string
	err := d.db.QueryRowContext(ctx, "SELECT value FROM meta WHERE key = 'dataset_id'").Scan(&id)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read dataset id: %w", err)
	}
	return id, nil
}

// WriteResult replaces every table's contents with the result in one
// transaction.
func (d *DB) WriteResult(ctx context.Context, res *pipeline.Result) error {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, table := range append([]string{"meta"}, pipeline.TableNames...) {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	if _, err := tx.ExecContext(ctx, "INSERT INTO meta (key, value) VALUES ('dataset_id', ?), ('version', ?)",
		res.DatasetID.String(), Version); err != nil {
		return fmt.Errorf("write meta: %w", err)
	}

	writers := []func(context.Context, *sql.Tx, *pipeline.Result) error{
		writePlayers, writeMatchRows, writeLoadRecords,
		writeDaily, writeHeatmap, writeWeekly, writeSummaryRows,
	}
	for _, write := range writers {
		if err := write(ctx, tx, res); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// insertAll prepares query once and executes it for each row of args.
func insertAll(ctx context.Context, tx *sql.Tx, table, query string, n int, args func(i int) []any) error {
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("prepare %s insert: %w", table, err)
	}
	defer func() { _ = stmt.Close() }()

	for i := 0; i < n; i++ {
		if _, err := stmt.ExecContext(ctx, args(i)...); err != nil {
			return fmt.Errorf("insert %s row %d: %w", table, i, err)
		}
	}
	return nil
}

func nullFloat(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}

func nullInt(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}

func nullDay(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func writePlayers(ctx context.Context, tx *sql.Tx, res *pipeline.Result) error {
	rows := res.Resumes
	return insertAll(ctx, tx, pipeline.TablePlayers, `
		INSERT INTO players (player_id, name, number, player_group, group_id, foot, height, weight,
			picture_url, country_id, country_picture_url, birthdate, age)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`, len(rows), func(i int) []any {
		p := rows[i]
		return []any{p.PlayerID, p.Name, p.Number, p.Group, p.GroupID, p.Foot,
			nullFloat(p.Height), nullFloat(p.Weight), p.PictureURL, p.CountryID,
			p.CountryPictureURL, nullDay(models.FormatDay(p.Birthdate)), p.Age}
	})
}

func writeMatchRows(ctx context.Context, tx *sql.Tx, res *pipeline.Result) error {
	rows := res.RecentMatches
	return insertAll(ctx, tx, pipeline.TableLastMatches, `
		INSERT INTO last_matches (match_id, match_date, player_id, is_home, opponent_id, opponent_name,
			opponent_picture_url, starter_group, minutes_played, goals, assists,
			home_team_score, away_team_score, result, score)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`, len(rows), func(i int) []any {
		m := rows[i]
		return []any{m.MatchID, models.FormatDay(m.MatchDate), m.PlayerID, m.IsHome, m.OpponentID,
			m.OpponentName, m.OpponentPictureURL, m.StarterGroup, m.MinutesPlayed, m.Goals, m.Assists,
			nullInt(m.HomeTeamScore), nullInt(m.AwayTeamScore), string(m.Result), m.Score}
	})
}

func writeLoadRecords(ctx context.Context, tx *sql.Tx, res *pipeline.Result) error {
	rows := res.LoadRecords
	return insertAll(ctx, tx, pipeline.TableLoad, `
		INSERT INTO load (player_id, date, season, opposition_full, opponent_logo_url, is_match_day,
			distance_km, day_duration, hr_zones, injury_name, body_part, status,
			trimp_edwards, acute_load, chronic_load, acwr, risk_zone)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`, len(rows), func(i int) []any {
		r := rows[i]
		var injuryName, bodyPart any
		if r.Injury != nil {
			injuryName, bodyPart = r.Injury.InjuryName, r.Injury.BodyPart
		}
		zones := ""
		for k, z := range r.HRZones {
			if k > 0 {
				zones += ","
			}
			zones += z.String()
		}
		return []any{r.PlayerID, models.FormatDay(r.Date), r.Season, r.OppositionFull, r.OpponentLogoURL,
			r.IsMatchDay, r.DistanceKM, r.DayDuration, zones, injuryName, bodyPart, r.Status,
			r.TRIMPEdwards, r.AcuteLoad, r.ChronicLoad, r.ACWR, string(r.RiskZone)}
	})
}

// writeDaily stores the daily pivot in long form, one row per metric.
func writeDaily(ctx context.Context, tx *sql.Tx, res *pipeline.Result) error {
	type cell struct {
		d      models.DailyRecovery
		metric string
	}
	var cells []cell
	for _, d := range res.DailyRecovery {
		for _, metric := range models.DailyMetrics {
			if _, ok := d.Values[metric]; ok {
				cells = append(cells, cell{d, metric})
			}
		}
	}
	return insertAll(ctx, tx, pipeline.TableRecoveryDaily, `
		INSERT INTO recovery_daily (player_id, session_date, season_name, metric, value)
		VALUES (?, ?, ?, ?, ?)`, len(cells), func(i int) []any {
		c := cells[i]
		return []any{c.d.PlayerID, models.FormatDay(c.d.SessionDate), c.d.SeasonName, c.metric, c.d.Values[c.metric]}
	})
}

// writeHeatmap stores the heatmap in long form, one row per day of month.
func writeHeatmap(ctx context.Context, tx *sql.Tx, res *pipeline.Result) error {
	type cell struct {
		h   models.HeatmapRow
		day int
	}
	var cells []cell
	for _, h := range res.HeatmapRecovery {
		for day := 1; day <= 31; day++ {
			if _, ok := h.Days[day]; ok {
				cells = append(cells, cell{h, day})
			}
		}
	}
	return insertAll(ctx, tx, pipeline.TableRecoveryHeatmap, `
		INSERT INTO recovery_heatmap (player_id, month, month_start, season_name, day, value)
		VALUES (?, ?, ?, ?, ?, ?)`, len(cells), func(i int) []any {
		c := cells[i]
		return []any{c.h.PlayerID, c.h.Month, models.FormatDay(c.h.MonthStart), c.h.SeasonName, c.day, c.h.Days[c.day]}
	})
}

func writeWeekly(ctx context.Context, tx *sql.Tx, res *pipeline.Result) error {
	rows := res.WeeklyRecovery
	return insertAll(ctx, tx, pipeline.TableRecoveryWeekly, `
		INSERT INTO recovery_weekly (player_id, year_week, week_date, season_name, metric, value)
		VALUES (?, ?, ?, ?, ?, ?)`, len(rows), func(i int) []any {
		w := rows[i]
		return []any{w.PlayerID, w.YearWeek, models.FormatDay(w.WeekDate), w.SeasonName, w.Metric, nullFloat(w.Value)}
	})
}

func writeSummaryRows(ctx context.Context, tx *sql.Tx, res *pipeline.Result) error {
	rows := res.RecoverySummary
	return insertAll(ctx, tx, pipeline.TableRecoverySummary, `
		INSERT INTO recovery_summary (player_id, metric, avg_type, avg, value)
		VALUES (?, ?, ?, ?, ?)`, len(rows), func(i int) []any {
		s := rows[i]
		return []any{s.PlayerID, s.Metric, string(s.AvgType), s.Avg, nullFloat(s.Value)}
	})
}
