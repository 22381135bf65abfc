package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Every statement is safe to re-run.
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
	`CREATE TABLE IF NOT EXISTS day_blocks (
		date_key     TEXT NOT NULL,
		position     INTEGER NOT NULL CHECK(position >= 0),
		category     TEXT NOT NULL
		             CHECK(category IN ('attraction','food','accommodation','transport','shopping')),
		title        TEXT NOT NULL DEFAULT '',
		location     TEXT NOT NULL DEFAULT '',
		notes        TEXT NOT NULL DEFAULT '',
		start_min    INTEGER NOT NULL CHECK(start_min >= 0 AND start_min < 1440),
		duration_min INTEGER NOT NULL
		             CHECK(duration_min >= 30 AND duration_min <= 1440 AND duration_min % 30 = 0),
		updated_at   TEXT NOT NULL,
		PRIMARY KEY (date_key, position),
		CHECK(start_min + duration_min <= 1440)
	)`,

	`CREATE TABLE IF NOT EXISTS preference_profiles (
		id         TEXT PRIMARY KEY,
		scores     TEXT NOT NULL DEFAULT '{}',
		progress   TEXT NOT NULL DEFAULT '{}',
		swiped_ids TEXT NOT NULL DEFAULT '[]',
		trip       TEXT,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS itineraries (
		id          TEXT PRIMARY KEY,
		profile_id  TEXT REFERENCES preference_profiles(id) ON DELETE SET NULL,
		destination TEXT NOT NULL,
		start_date  TEXT NOT NULL,
		end_date    TEXT NOT NULL,
		total_cost  REAL NOT NULL DEFAULT 0,
		body        TEXT NOT NULL,
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_itineraries_profile ON itineraries(profile_id)`,
	`CREATE INDEX IF NOT EXISTS idx_itineraries_created ON itineraries(created_at)`,

	// Cached nearby-place suggestions, refreshed on demand.
	`ALTER TABLE itineraries ADD COLUMN nearby TEXT NOT NULL DEFAULT '[]'`,
}
