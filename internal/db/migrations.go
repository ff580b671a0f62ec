package db

import "fmt"

// migrate runs database migrations.
func (s *SQLite) migrate() error {
	query := `
		CREATE TABLE IF NOT EXISTS bookings (
			seq         INTEGER PRIMARY KEY AUTOINCREMENT,
			id          TEXT NOT NULL UNIQUE,
			day         TEXT NOT NULL,
			start_min   INTEGER NOT NULL CHECK(start_min >= 0 AND start_min < 1440),
			end_min     INTEGER NOT NULL CHECK(end_min > start_min AND end_min <= 1440),
			room        TEXT NOT NULL,
			lecturer    TEXT NOT NULL,
			label       TEXT NOT NULL DEFAULT '',
			created_at  DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE INDEX IF NOT EXISTS idx_bookings_day ON bookings(day);

		CREATE TABLE IF NOT EXISTS audit_log (
			seq         INTEGER PRIMARY KEY AUTOINCREMENT,
			id          TEXT NOT NULL,
			booking_id  TEXT NOT NULL,
			status      TEXT NOT NULL CHECK(status IN ('ADDED', 'REJECTED', 'UPDATED', 'UPDATE_REJECTED', 'DELETED')),
			conflicts   TEXT NOT NULL DEFAULT '[]',
			created_at  TEXT NOT NULL
		);
	`

	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("creating tables: %w", err)
	}

	return nil
}
