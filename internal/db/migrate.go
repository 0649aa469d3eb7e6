package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate applies every schema statement. Statements are written to be
// re-runnable, so Migrate is safe on every open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// ALTER TABLE ADD COLUMN has no IF NOT EXISTS form.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS operational_periods (
		id           TEXT PRIMARY KEY,
		name         TEXT NOT NULL,
		starts_at    TEXT,
		ends_at      TEXT,
		active_phase TEXT NOT NULL DEFAULT 'incident-briefing',
		created_at   TEXT NOT NULL,
		updated_at   TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS phase_data (
		period_id  TEXT PRIMARY KEY REFERENCES operational_periods(id) ON DELETE CASCADE,
		payload    TEXT NOT NULL DEFAULT '{}',
		revision   INTEGER NOT NULL DEFAULT 0,
		updated_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS phase_data_history (
		period_id TEXT NOT NULL REFERENCES operational_periods(id) ON DELETE CASCADE,
		revision  INTEGER NOT NULL,
		payload   TEXT NOT NULL,
		saved_at  TEXT NOT NULL,
		PRIMARY KEY (period_id, revision)
	)`,

	`ALTER TABLE operational_periods ADD COLUMN incident_name TEXT NOT NULL DEFAULT ''`,

	`CREATE INDEX IF NOT EXISTS idx_periods_starts_at ON operational_periods(starts_at)`,
	`CREATE INDEX IF NOT EXISTS idx_history_saved_at ON phase_data_history(period_id, saved_at)`,
}
