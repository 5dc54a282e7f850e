package db

import (
	"database/sql"
	"fmt"
)

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS work_items (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		parent_id TEXT REFERENCES work_items(id) ON DELETE SET NULL,
		start_date TEXT,
		finish_date TEXT,
		scheduling_mode TEXT NOT NULL CHECK (scheduling_mode IN ('manual', 'automatic')),
		ignore_non_working_days INTEGER NOT NULL DEFAULT 0,
		duration_days INTEGER,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_work_items_parent ON work_items(parent_id)`,

	`CREATE TABLE IF NOT EXISTS relations (
		id TEXT PRIMARY KEY,
		predecessor_id TEXT NOT NULL REFERENCES work_items(id) ON DELETE CASCADE,
		successor_id TEXT NOT NULL REFERENCES work_items(id) ON DELETE CASCADE,
		lag INTEGER NOT NULL DEFAULT 0 CHECK (lag >= 0),
		created_at TEXT NOT NULL,
		UNIQUE (predecessor_id, successor_id),
		CHECK (predecessor_id <> successor_id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_relations_successor ON relations(successor_id)`,

	`CREATE TABLE IF NOT EXISTS non_working_dates (
		date TEXT PRIMARY KEY
	)`,
}

// Migrate runs all schema migrations. Statements are idempotent so the full
// list re-runs on every open.
func Migrate(database *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := database.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
