// ABOUTME: SQLite schema definition and initialization for the output tables.
// ABOUTME: Daily and heatmap views are stored long, one row per value.
package export

// initSchema creates the output tables if they do not exist.
func (d *DB) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS players (
		player_id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		number TEXT,
		player_group TEXT,
		group_id INTEGER,
		foot TEXT,
		height REAL,
		weight REAL,
		picture_url TEXT,
		country_id INTEGER,
		country_picture_url TEXT,
		birthdate TEXT,
		age INTEGER
	);

	CREATE TABLE IF NOT EXISTS last_matches (
		match_id INTEGER NOT NULL,
		match_date TEXT NOT NULL,
		player_id INTEGER NOT NULL,
		is_home BOOLEAN NOT NULL,
		opponent_id INTEGER,
		opponent_name TEXT,
		opponent_picture_url TEXT,
		starter_group TEXT,
		minutes_played REAL,
		goals INTEGER,
		assists INTEGER,
		home_team_score INTEGER,
		away_team_score INTEGER,
		result TEXT,
		score TEXT
	);

	CREATE TABLE IF NOT EXISTS load (
		player_id INTEGER NOT NULL,
		date TEXT NOT NULL,
		season TEXT,
		opposition_full TEXT,
		opponent_logo_url TEXT,
		is_match_day BOOLEAN NOT NULL,
		distance_km REAL,
		day_duration REAL,
		hr_zones TEXT,
		injury_name TEXT,
		body_part TEXT,
		status TEXT NOT NULL,
		trimp_edwards REAL NOT NULL,
		acute_load REAL NOT NULL,
		chronic_load REAL NOT NULL,
		acwr REAL NOT NULL,
		risk_zone TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS recovery_daily (
		player_id INTEGER NOT NULL,
		session_date TEXT NOT NULL,
		season_name TEXT,
		metric TEXT NOT NULL,
		value REAL NOT NULL
	);

	CREATE TABLE IF NOT EXISTS recovery_heatmap (
		player_id INTEGER NOT NULL,
		month TEXT NOT NULL,
		month_start TEXT NOT NULL,
		season_name TEXT,
		day INTEGER NOT NULL,
		value REAL NOT NULL
	);

	CREATE TABLE IF NOT EXISTS recovery_weekly (
		player_id INTEGER NOT NULL,
		year_week TEXT NOT NULL,
		week_date TEXT NOT NULL,
		season_name TEXT,
		metric TEXT NOT NULL,
		value REAL
	);

	CREATE TABLE IF NOT EXISTS recovery_summary (
		player_id INTEGER NOT NULL,
		metric TEXT NOT NULL,
		avg_type TEXT NOT NULL,
		avg TEXT NOT NULL,
		value REAL
	);

	CREATE INDEX IF NOT EXISTS idx_last_matches_player ON last_matches(player_id);
	CREATE INDEX IF NOT EXISTS idx_load_player_date ON load(player_id, date);
	CREATE INDEX IF NOT EXISTS idx_recovery_daily_player ON recovery_daily(player_id, session_date);
	CREATE INDEX IF NOT EXISTS idx_recovery_weekly_player ON recovery_weekly(player_id, year_week);
	`

	_, err := d.db.Exec(schema)
	return err
}
