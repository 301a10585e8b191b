package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS assignees (
		key         TEXT PRIMARY KEY COLLATE NOCASE,
		name        TEXT NOT NULL,
		role        TEXT NOT NULL DEFAULT 'member'
		            CHECK(role IN ('member','client')),
		daily_hours REAL,
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS tasks (
		id              INTEGER PRIMARY KEY AUTOINCREMENT,
		title           TEXT NOT NULL,
		description     TEXT NOT NULL DEFAULT '',
		assignee_key    TEXT NOT NULL DEFAULT '' COLLATE NOCASE,
		estimated_hours REAL NOT NULL DEFAULT 0,
		due_date        TEXT,
		priority        INTEGER NOT NULL DEFAULT 3,
		status          TEXT NOT NULL DEFAULT 'todo'
		                CHECK(status IN ('pending','todo','in_progress','completed','canceled')),
		created_at      TEXT NOT NULL,
		updated_at      TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_tasks_assignee ON tasks(assignee_key)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_status ON tasks(status)`,

	// Client the task is billed to
	`ALTER TABLE tasks ADD COLUMN client TEXT NOT NULL DEFAULT ''`,
}
