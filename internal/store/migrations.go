package store

// Migrations is the ordered schema history of the timer database. Entries
// are only ever appended; existing batches never change once released.
var Migrations = []Migration{
	{
		Version:     1,
		Description: "create_timer_settings",
		Kind:        MigrationUp,
		SQL: `
		CREATE TABLE IF NOT EXISTS timer_settings (
			id                         INTEGER PRIMARY KEY CHECK (id = 1),
			work_duration              INTEGER NOT NULL DEFAULT 25,
			short_break_duration       INTEGER NOT NULL DEFAULT 5,
			long_break_duration        INTEGER NOT NULL DEFAULT 15,
			sessions_before_long_break INTEGER NOT NULL DEFAULT 4,
			updated_at                 TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ','now'))
		);

		INSERT OR IGNORE INTO timer_settings
			(id, work_duration, short_break_duration, long_break_duration, sessions_before_long_break)
		VALUES (1, 25, 5, 15, 4);
		`,
	},
	{
		Version:     2,
		Description: "create_session_history",
		Kind:        MigrationUp,
		SQL: `
		CREATE TABLE IF NOT EXISTS session_history (
			id                INTEGER PRIMARY KEY AUTOINCREMENT,
			session_type      TEXT NOT NULL CHECK (session_type IN ('pomodoro', 'shortBreak', 'longBreak')),
			event_type        TEXT NOT NULL CHECK (event_type IN ('completed', 'skipped', 'manual_switch')),
			timestamp         TEXT NOT NULL,
			duration          INTEGER NOT NULL DEFAULT 0,
			expected_duration INTEGER NOT NULL DEFAULT 0,
			session_number    INTEGER,
			created_at        TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ','now'))
		);

		CREATE INDEX IF NOT EXISTS idx_session_history_timestamp ON session_history(timestamp);

		CREATE TRIGGER IF NOT EXISTS session_history_immutable
		BEFORE UPDATE ON session_history
		BEGIN
			SELECT RAISE(ABORT, 'session_history rows are immutable');
		END;
		`,
	},
	{
		Version:     3,
		Description: "create_session_tracking",
		Kind:        MigrationUp,
		SQL: `
		CREATE TABLE IF NOT EXISTS sessions (
			id               INTEGER PRIMARY KEY AUTOINCREMENT,
			session_type     TEXT NOT NULL CHECK (session_type IN ('pomodoro', 'shortBreak', 'longBreak')),
			status           TEXT NOT NULL CHECK (status IN ('completed', 'skipped', 'abandoned')),
			planned_duration INTEGER NOT NULL,
			actual_duration  INTEGER NOT NULL,
			started_at       TEXT NOT NULL,
			completed_at     TEXT NOT NULL,
			date             TEXT NOT NULL,
			break_activity   TEXT,
			created_at       TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ','now'))
		);

		CREATE INDEX IF NOT EXISTS idx_sessions_date        ON sessions(date);
		CREATE INDEX IF NOT EXISTS idx_sessions_type_status ON sessions(session_type, status);

		CREATE TRIGGER IF NOT EXISTS sessions_immutable
		BEFORE UPDATE ON sessions
		BEGIN
			SELECT RAISE(ABORT, 'sessions rows are immutable');
		END;

		CREATE TABLE IF NOT EXISTS daily_stats (
			id                       INTEGER PRIMARY KEY AUTOINCREMENT,
			date                     TEXT NOT NULL UNIQUE,
			work_sessions_completed  INTEGER NOT NULL DEFAULT 0,
			work_sessions_skipped    INTEGER NOT NULL DEFAULT 0,
			break_sessions_completed INTEGER NOT NULL DEFAULT 0,
			break_sessions_skipped   INTEGER NOT NULL DEFAULT 0,
			total_sessions_started   INTEGER NOT NULL DEFAULT 0,
			total_work_time          INTEGER NOT NULL DEFAULT 0,
			total_break_time         INTEGER NOT NULL DEFAULT 0,
			total_standing_time      INTEGER NOT NULL DEFAULT 0,
			total_exercise_time      INTEGER NOT NULL DEFAULT 0,
			standing_breaks          INTEGER NOT NULL DEFAULT 0,
			walking_breaks           INTEGER NOT NULL DEFAULT 0,
			stretching_breaks        INTEGER NOT NULL DEFAULT 0,
			other_breaks             INTEGER NOT NULL DEFAULT 0,
			completion_rate          REAL NOT NULL DEFAULT 0,
			focus_score              REAL NOT NULL DEFAULT 0,
			is_streak_day            INTEGER NOT NULL DEFAULT 0 CHECK (is_streak_day IN (0, 1)),
			created_at               TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ','now')),
			updated_at               TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ','now'))
		);

		CREATE TABLE IF NOT EXISTS streak_info (
			id                 INTEGER PRIMARY KEY CHECK (id = 1),
			current_streak     INTEGER NOT NULL DEFAULT 0,
			longest_streak     INTEGER NOT NULL DEFAULT 0,
			last_activity_date TEXT,
			updated_at         TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ','now'))
		);

		INSERT OR IGNORE INTO streak_info (id, current_streak, longest_streak) VALUES (1, 0, 0);
		`,
	},
	{
		Version:     4,
		Description: "add_timer_preferences",
		Kind:        MigrationUp,
		SQL: `
		ALTER TABLE timer_settings ADD COLUMN sound_enabled INTEGER NOT NULL DEFAULT 1
			CHECK (sound_enabled IN (0, 1));
		ALTER TABLE timer_settings ADD COLUMN default_break_activity TEXT NOT NULL DEFAULT 'ask'
			CHECK (default_break_activity IN ('ask', 'stretch', 'walk', 'exercise', 'hydrate', 'rest', 'other'));
		ALTER TABLE timer_settings ADD COLUMN show_cycle_preview INTEGER NOT NULL DEFAULT 1
			CHECK (show_cycle_preview IN (0, 1));

		ALTER TABLE session_history ADD COLUMN activity_type TEXT
			CHECK (activity_type IN ('stretch', 'walk', 'exercise', 'hydrate', 'rest', 'other'));
		`,
	},
	{
		Version:     5,
		Description: "add_session_settings_snapshot",
		Kind:        MigrationUp,
		SQL: `
		ALTER TABLE sessions ADD COLUMN work_duration INTEGER;
		ALTER TABLE sessions ADD COLUMN short_break_duration INTEGER;
		ALTER TABLE sessions ADD COLUMN long_break_duration INTEGER;
		ALTER TABLE sessions ADD COLUMN sessions_before_long_break INTEGER;

		CREATE INDEX IF NOT EXISTS idx_sessions_settings ON sessions(
			work_duration, short_break_duration, long_break_duration, sessions_before_long_break
		);
		`,
	},
}
