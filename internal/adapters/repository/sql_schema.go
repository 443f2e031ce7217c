package repository

// Portable DDL: timestamps are RFC 3339 text and booleans use BOOLEAN, which both
// SQLite and PostgreSQL accept.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS snapshot_meta (
		id INTEGER PRIMARY KEY,
		version INTEGER NOT NULL,
		notifications_enabled BOOLEAN NOT NULL,
		email_reminders_enabled BOOLEAN NOT NULL,
		dark_mode BOOLEAN NOT NULL,
		saved_at TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS routines (
		id TEXT PRIMARY KEY,
		position INTEGER NOT NULL,
		title TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		category TEXT NOT NULL DEFAULT '',
		scheduled_time TEXT NOT NULL DEFAULT '',
		is_completed BOOLEAN NOT NULL,
		completed_at TEXT,
		created_at TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS routine_tasks (
		routine_id TEXT NOT NULL REFERENCES routines(id) ON DELETE CASCADE,
		id TEXT NOT NULL,
		position INTEGER NOT NULL,
		title TEXT NOT NULL,
		is_completed BOOLEAN NOT NULL,
		completed_at TEXT,
		PRIMARY KEY (routine_id, id)
	)`,
	`CREATE TABLE IF NOT EXISTS routine_completions (
		routine_id TEXT NOT NULL REFERENCES routines(id) ON DELETE CASCADE,
		day TEXT NOT NULL,
		PRIMARY KEY (routine_id, day)
	)`,
	`CREATE TABLE IF NOT EXISTS habits (
		id TEXT PRIMARY KEY,
		position INTEGER NOT NULL,
		title TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		color TEXT NOT NULL,
		category TEXT NOT NULL DEFAULT '',
		target_days TEXT NOT NULL,
		current_streak INTEGER NOT NULL,
		longest_streak INTEGER NOT NULL,
		created_at TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS habit_completions (
		habit_id TEXT NOT NULL REFERENCES habits(id) ON DELETE CASCADE,
		id TEXT NOT NULL,
		day TEXT NOT NULL,
		completed_at TEXT NOT NULL,
		PRIMARY KEY (habit_id, day)
	)`,
}

// Children first so foreign keys never block the wipe.
var snapshotTables = []string{
	"habit_completions",
	"habits",
	"routine_completions",
	"routine_tasks",
	"routines",
	"snapshot_meta",
}
