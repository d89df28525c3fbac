package postgres

import (
	"database/sql"

	_ "github.com/lib/pq"
)

// Open connects to PostgreSQL and verifies the connection with a ping.
func Open(databaseURL string) (*sql.DB, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// Migrate applies the schema. Every statement is idempotent, so it is safe
// to run on each startup.
//
// event_checkins is a bare many-to-many edge: the composite primary key is
// what makes concurrent joins collapse to a single row.
func Migrate(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			name TEXT NOT NULL,
			email TEXT NOT NULL UNIQUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);

		CREATE TABLE IF NOT EXISTS events (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			name TEXT NOT NULL,
			location TEXT NOT NULL,
			start_time TIMESTAMPTZ NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);

		CREATE TABLE IF NOT EXISTS event_checkins (
			event_id UUID NOT NULL REFERENCES events(id) ON DELETE CASCADE,
			user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			PRIMARY KEY (event_id, user_id)
		);

		CREATE INDEX IF NOT EXISTS idx_event_checkins_user
			ON event_checkins (user_id);
	`)
	return err
}

// Reset empties all tables. Development tooling only.
func Reset(db *sql.DB) error {
	_, err := db.Exec(`TRUNCATE TABLE event_checkins, events, users`)
	return err
}
